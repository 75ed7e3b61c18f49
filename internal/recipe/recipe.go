// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package recipe turns the free-text ingredient and step fields of a
// recipe into display lists.
package recipe

import (
	"regexp"
	"strings"
)

// listMarker matches a leading bullet ("-", "*", "•") or number ("1.", "2)").
var listMarker = regexp.MustCompile(`^(?:[-*•]\s*|\d+[.)](?:\s+|$))`)

// SplitLines returns one entry per non-blank line of text, trimmed and
// stripped of any leading list marker.
func SplitLines(text string) []string {
	var out []string
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimSpace(listMarker.ReplaceAllString(line, ""))
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
