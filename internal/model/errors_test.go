package model

import (
	"errors"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
)

func TestErrorKind(t *testing.T) {
	assert.Equal(t, Kind(""), ErrorKind(nil))
	assert.Equal(t, EINVALID, ErrorKind(Errorf(EINVALID, "bad input")))
	assert.Equal(t, EINTERNAL, ErrorKind(errors.New("plain error")))

	// Kind survives wrapping.
	wrapped := eris.Wrap(Errorf(EUNAVAILABLE, "no key"), "dispatch")
	assert.Equal(t, EUNAVAILABLE, ErrorKind(wrapped))
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "", ErrorMessage(nil))
	assert.Equal(t, "bad input", ErrorMessage(Errorf(EINVALID, "bad input")))

	// Unclassified internals are not leaked to the user.
	assert.Equal(t, "an internal error occurred", ErrorMessage(errors.New("pq: connection refused at 10.0.0.3")))
}

func TestWrapErrorUnwrap(t *testing.T) {
	cause := errors.New("dial tcp: i/o timeout")
	err := WrapError(ENETWORK, cause, "firecrawl request failed")

	assert.Equal(t, ENETWORK, ErrorKind(err))
	assert.Equal(t, "firecrawl request failed", err.Error())
	assert.ErrorIs(t, err, cause)
}
