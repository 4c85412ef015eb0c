// Package translate rewrites the text of a cue list into another
// language while leaving timing untouched.
package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/ryokoh/cueline/internal/cue"
)

// items per API request
const DefaultBatchSize = 50

// single text item to translate
type Item struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// translated text item
type Result struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// interface for text translation
type Translator interface {
	Translate(ctx context.Context, items []Item) ([]Result, error)
}

type Options struct {
	SourceLanguage string
	TargetLanguage string
	Model          string
	Prompt         string
	BatchSize      int
}

// TranslateCues sends every cue's text through the translator and
// returns a new list with the translated text in place. Cue numbering
// and time ranges are preserved.
func TranslateCues(ctx context.Context, tr Translator, cues cue.List) (cue.List, error) {
	if len(cues) == 0 {
		return cue.List{}, nil
	}

	items := make([]Item, len(cues))
	for i, c := range cues {
		items[i] = Item{Index: i, Text: c.Text}
	}

	results, err := tr.Translate(ctx, items)
	if err != nil {
		return nil, err
	}

	translated := make(cue.List, len(cues))
	copy(translated, cues)
	for _, r := range results {
		if r.Index < 0 || r.Index >= len(translated) {
			return nil, fmt.Errorf("translation result index %d out of range", r.Index)
		}
		translated[r.Index].Text = r.Text
	}
	return translated, nil
}

// BuildPrompt creates the translation prompt sent to the model
func BuildPrompt(opts Options, items []Item) string {
	var sb strings.Builder

	if opts.SourceLanguage != "" {
		sb.WriteString(fmt.Sprintf(
			"Translate the following %s subtitle texts to %s.\n\n",
			opts.SourceLanguage, opts.TargetLanguage))
	} else {
		sb.WriteString(fmt.Sprintf(
			"Translate the following subtitle texts to %s.\n\n",
			opts.TargetLanguage))
	}

	sb.WriteString("IMPORTANT INSTRUCTIONS:\n")
	sb.WriteString("1. Translate ONLY the text content, preserving the meaning.\n")
	sb.WriteString("2. Preserve line breaks in the same positions.\n")
	sb.WriteString("3. Return ONLY a JSON array with the same structure.\n")
	sb.WriteString("4. Each object must have 'index' and 'text' fields.\n")
	sb.WriteString("5. The 'index' values must match the input indices exactly.\n")
	sb.WriteString("6. Do not add any explanation or markdown formatting.\n\n")

	if opts.Prompt != "" {
		sb.WriteString(fmt.Sprintf("Additional instructions: %s\n\n", opts.Prompt))
	}

	sb.WriteString("Input JSON:\n")
	inputJSON, _ := json.MarshalIndent(items, "", "  ")
	sb.Write(inputJSON)
	sb.WriteString("\n\nOutput the translated JSON array only:")

	return sb.String()
}

// removes markdown code fences from a model response
func cleanResponse(s string) string {
	s = strings.TrimSpace(s)

	jsonBlockRegex := regexp.MustCompile("```(?:json)?\\s*")
	s = jsonBlockRegex.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "```", "")

	return strings.TrimSpace(s)
}

// fixes invalid JSON escape sequences the model sometimes emits, like
// \N, by escaping the backslash so the literal survives parsing
func fixInvalidEscapes(s string) string {
	var result strings.Builder
	result.Grow(len(s))

	i := 0
	for i < len(s) {
		if i < len(s)-1 && s[i] == '\\' {
			next := s[i+1]
			switch next {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't', 'u':
				result.WriteByte(s[i])
				result.WriteByte(next)
				i += 2
			default:
				result.WriteString("\\\\")
				result.WriteByte(next)
				i += 2
			}
		} else {
			result.WriteByte(s[i])
			i++
		}
	}

	return result.String()
}

// extractResults finds the first parseable translation array in the
// response text, tolerating wrapper objects and leading prose.
func extractResults(text string) ([]Result, error) {
	text = fixInvalidEscapes(text)

	for i := 0; i < len(text); i++ {
		if text[i] != '[' && text[i] != '{' {
			continue
		}
		decoder := json.NewDecoder(strings.NewReader(text[i:]))
		var raw json.RawMessage
		if err := decoder.Decode(&raw); err != nil {
			continue
		}
		if results, ok := tryExtractResults(raw); ok && len(results) > 0 {
			return results, nil
		}
	}
	return nil, fmt.Errorf("no valid translation JSON found in response")
}

func tryExtractResults(raw json.RawMessage) ([]Result, bool) {
	var results []Result
	if err := json.Unmarshal(raw, &results); err == nil && validateResults(results) {
		return results, true
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil, false
	}

	for _, key := range []string{"results", "translations", "data", "items"} {
		if fieldRaw, exists := wrapper[key]; exists {
			var fieldResults []Result
			if err := json.Unmarshal(fieldRaw, &fieldResults); err == nil && validateResults(fieldResults) {
				return fieldResults, true
			}
		}
	}

	for _, fieldRaw := range wrapper {
		var fieldResults []Result
		if err := json.Unmarshal(fieldRaw, &fieldResults); err == nil && validateResults(fieldResults) {
			return fieldResults, true
		}
	}

	return nil, false
}

func validateResults(results []Result) bool {
	for _, r := range results {
		if r.Text != "" {
			return true
		}
	}
	return false
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
