package extract

import (
	"fmt"
	"strings"

	"github.com/KI-IAN/llm-web-scrapper/internal/model"
)

const promptPreamble = `You are an expert assistant who extracts useful information from the content provided to you. The content usually comes from a scraped web page (often an e-commerce site), and users ask you to extract things like product names, prices and ratings, or to summarize the page.

You have a strict policy against processing harmful content. If the query or the provided context involves adult content, gambling, or any illegal activity, refuse with exactly: "Warning: The requested content is inappropriate and violates the safety guidelines. This tool cannot be used for such purposes."

Answer using only the provided context. If you do not find the answer in the context, do not make one up; state "No relevant information found to answer your question." instead. Never respond with an empty answer.`

// formatDirective tells the model how to shape its answer.
func formatDirective(format model.OutputFormat) string {
	switch format {
	case model.FormatTable:
		return "Present the final answer as a markdown table with one column per requested field."
	case model.FormatJSON:
		return "Respond with valid JSON only. No surrounding prose, no markdown code fences."
	default:
		return "Respond in plain markdown text."
	}
}

// BuildPrompt assembles the single-turn extraction prompt.
func BuildPrompt(query, content string, format model.OutputFormat) string {
	var sb strings.Builder
	sb.WriteString(promptPreamble)
	sb.WriteString("\n\n")
	sb.WriteString(formatDirective(format))
	sb.WriteString("\n\nContext:\n")
	fmt.Fprintf(&sb, "<content>\n%s\n</content>\n\n", content)
	fmt.Fprintf(&sb, "Question: %s\n", query)
	return sb.String()
}
