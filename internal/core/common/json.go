package common

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseJSON decodes the first JSON object in an LLM reply into T. Replies are
// often wrapped in a markdown fence or surrounded by prose; both are skipped.
func ParseJSON[T any](response string) (T, error) {
	var out T

	body := stripFence(response)
	start := strings.IndexByte(body, '{')
	if start < 0 {
		return out, fmt.Errorf("no JSON object in response")
	}
	end := strings.LastIndexByte(body, '}')
	if end < start {
		return out, fmt.Errorf("unterminated JSON object in response")
	}

	dec := json.NewDecoder(strings.NewReader(body[start : end+1]))
	if err := dec.Decode(&out); err != nil {
		return out, fmt.Errorf("failed to decode JSON reply: %w", err)
	}
	return out, nil
}

func stripFence(s string) string {
	open := strings.Index(s, "```")
	if open < 0 {
		return s
	}
	rest := s[open+3:]
	// Drop the info string, e.g. ```json
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[nl+1:]
	}
	if closing := strings.Index(rest, "```"); closing >= 0 {
		rest = rest[:closing]
	}
	return rest
}
