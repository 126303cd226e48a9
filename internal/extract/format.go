package extract

import (
	"encoding/json"
	"strings"

	"github.com/KI-IAN/llm-web-scrapper/internal/model"
)

// Normalize post-processes a raw model answer to the requested format.
// For JSON output the answer is unwrapped from markdown code fences and must
// parse; anything else fails as malformed output.
func Normalize(answer string, format model.OutputFormat) (string, error) {
	answer = strings.TrimSpace(answer)
	if format != model.FormatJSON {
		return answer, nil
	}

	cleaned := stripCodeFence(answer)
	if !json.Valid([]byte(cleaned)) {
		return "", model.Errorf(model.EMALFORMED,
			"the model's response is not valid JSON: try again or switch models")
	}
	return cleaned, nil
}

// stripCodeFence removes a surrounding ```json ... ``` (or bare ```) fence.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	body, ok := strings.CutPrefix(s, "```json")
	if !ok {
		body = strings.TrimPrefix(s, "```")
	}
	body = strings.TrimSuffix(strings.TrimSpace(body), "```")
	return strings.TrimSpace(body)
}
