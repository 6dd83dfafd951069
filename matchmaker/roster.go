// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package matchmaker

import (
	"regexp"
	"strings"
)

var (
	membersPrefix   = regexp.MustCompile(`(?is)members\s*:\s*(.*)$`)
	commandPrefix   = regexp.MustCompile(`^/?scrim(?:\s+|$)`)
	rosterSeparator = regexp.MustCompile(`(?:\r\n|\r|\n|,|;|\||\x{3000}|\s{2,})+`)
)

// ParseRoster pulls player names out of free-form chat input. Names may be
// separated by newlines, commas, semicolons, pipes, ideographic spaces, or
// runs of two or more spaces; a single space stays part of a name.
func ParseRoster(text string) []string {
	if m := membersPrefix.FindStringSubmatch(text); m != nil {
		text = m[1]
	}
	text = strings.TrimSpace(commandPrefix.ReplaceAllString(strings.TrimSpace(text), ""))

	var names []string
	for _, tok := range rosterSeparator.Split(text, -1) {
		if tok = strings.TrimSpace(tok); tok != "" {
			names = append(names, tok)
		}
	}
	return names
}
