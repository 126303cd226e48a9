// Package telemetry forwards execution traces to Langfuse on a best-effort
// basis. Sends happen on detached goroutines; the request path never waits on
// them and delivery failures are logged, not propagated.
package telemetry

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/KI-IAN/llm-web-scrapper/pkg/langfuse"
)

const sendTimeout = 10 * time.Second

// Tracer records scrape and extraction operations. A nil Tracer or a Tracer
// constructed with Disabled is a no-op and safe to call.
type Tracer struct {
	client langfuse.Client
	wg     sync.WaitGroup
}

// New creates a Tracer backed by the given Langfuse client.
func New(client langfuse.Client) *Tracer {
	return &Tracer{client: client}
}

// Disabled returns a no-op Tracer.
func Disabled() *Tracer {
	return &Tracer{}
}

// Enabled reports whether traces are actually forwarded.
func (t *Tracer) Enabled() bool {
	return t != nil && t.client != nil
}

// Close waits for in-flight sends to finish, up to the send timeout.
func (t *Tracer) Close() {
	if !t.Enabled() {
		return
	}
	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(sendTimeout):
	}
}

// Trace is one traced operation.
type Trace struct {
	tracer *Tracer
	id     string
	name   string
	start  time.Time
	input  map[string]any
}

// Start begins a trace for a named operation.
func (t *Tracer) Start(name string, input map[string]any) *Trace {
	return &Trace{
		tracer: t,
		id:     uuid.NewString(),
		name:   name,
		start:  time.Now().UTC(),
		input:  input,
	}
}

// ID returns the trace identifier.
func (tr *Trace) ID() string {
	return tr.id
}

// End finishes the trace and ships it. err marks the trace as failed; the
// classified message ends up in the output payload.
func (tr *Trace) End(output map[string]any, err error) {
	tr.finish(output, err, nil)
}

// EndGeneration finishes the trace as an LLM generation, attaching the model
// name and token usage alongside the trace itself.
func (tr *Trace) EndGeneration(model string, output map[string]any, usage map[string]any, err error) {
	tr.finish(output, err, &langfuse.GenerationBody{
		ID:        uuid.NewString(),
		TraceID:   tr.id,
		Name:      tr.name,
		StartTime: tr.start,
		Model:     model,
		Input:     tr.input,
		Usage:     usage,
	})
}

func (tr *Trace) finish(output map[string]any, err error, gen *langfuse.GenerationBody) {
	if tr == nil || !tr.tracer.Enabled() {
		return
	}

	end := time.Now().UTC()
	if output == nil {
		output = map[string]any{}
	}
	if err != nil {
		output["status"] = "Error"
		output["error"] = err.Error()
	} else {
		output["status"] = "Success"
	}

	events := []langfuse.Event{{
		ID:        uuid.NewString(),
		Type:      langfuse.EventTraceCreate,
		Timestamp: end,
		Body: langfuse.TraceBody{
			ID:        tr.id,
			Name:      tr.name,
			Timestamp: tr.start,
			Input:     tr.input,
			Output:    output,
		},
	}}
	if gen != nil {
		gen.EndTime = end
		gen.Output = output
		if err != nil {
			gen.Level = "ERROR"
			gen.StatusMessage = err.Error()
		}
		events = append(events, langfuse.Event{
			ID:        uuid.NewString(),
			Type:      langfuse.EventGenerationCreate,
			Timestamp: end,
			Body:      *gen,
		})
	}

	tr.tracer.wg.Add(1)
	go func() {
		defer tr.tracer.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()

		if sendErr := tr.tracer.client.Ingest(ctx, events); sendErr != nil {
			zap.L().Debug("telemetry: trace delivery failed",
				zap.String("trace", tr.name),
				zap.Error(sendErr),
			)
		}
	}()
}
