package frontmatter

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const fence = "---"

// Extract splits text into its front matter mapping and the remaining
// document body.
//
// A document without a front matter block (no opening fence on the first
// line, or an opening fence that is never closed) is returned unchanged
// with a nil map. A well-fenced block that is not valid YAML, or whose
// top level is not a mapping, is an error.
func Extract(text string) (map[string]any, string, error) {
	body := strings.TrimPrefix(text, "\ufeff")

	line, rest, found := cutLine(body)
	if !found || strings.TrimRight(line, "\r") != fence {
		return nil, text, nil
	}

	var block strings.Builder
	for {
		line, next, ok := cutLine(rest)
		if !ok {
			// Unterminated block: treat the whole document as body.
			return nil, text, nil
		}
		if trimmed := strings.TrimRight(line, "\r"); trimmed == fence || trimmed == "..." {
			rest = next
			break
		}
		block.WriteString(line)
		block.WriteString("\n")
		rest = next
	}

	fm := make(map[string]any)
	if err := yaml.Unmarshal([]byte(block.String()), &fm); err != nil {
		return nil, "", fmt.Errorf("invalid front matter: %w", err)
	}
	return fm, rest, nil
}

// cutLine splits s at the first newline. The newline is consumed. A
// non-empty final line without a trailing newline is still returned with
// found=true; found is false only for empty input.
func cutLine(s string) (line, rest string, found bool) {
	if s == "" {
		return "", "", false
	}
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i], s[i+1:], true
	}
	return s, "", true
}
