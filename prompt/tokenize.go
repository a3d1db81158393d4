/*
Copyright 2026 Clinsift Authors
SPDX-License-Identifier: Apache-2.0
*/

package prompt

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// resolveFunc supplies the replacement for one placeholder name.
type resolveFunc func(name string) (string, error)

// walk tokenizes the template and calls resolve for each {{name}} placeholder.
func walk(template string, resolve resolveFunc) (string, error) {
	var out strings.Builder

	for len(template) > 0 {
		start := strings.Index(template, "{{")
		if start == -1 {
			out.WriteString(template)
			break
		}
		out.WriteString(template[:start])

		end := strings.Index(template[start:], "}}")
		if end == -1 {
			return "", errors.New("unclosed placeholder: missing '}}'")
		}
		end += start + 2

		name := strings.TrimSpace(template[start+2 : end-2])
		if !isIdentifier(name) {
			return "", fmt.Errorf("invalid placeholder identifier %q", name)
		}
		replacement, err := resolve(name)
		if err != nil {
			return "", err
		}
		out.WriteString(replacement)

		template = template[end:]
	}

	return out.String(), nil
}

// isIdentifier reports whether s is a letter followed by letters, digits, or
// underscores.
func isIdentifier(s string) bool {
	runes := []rune(s)
	if len(runes) == 0 || !unicode.IsLetter(runes[0]) {
		return false
	}
	for _, r := range runes[1:] {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}
	return true
}
