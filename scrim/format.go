// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scrim

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/danielhkuo/scrim-pick/models"
)

const (
	headerWidth = 25
	cellWidth   = 23
	ruleWidth   = 53
)

// matchTable renders one match as a fixed-width block. Widths are measured
// in terminal cells so double-width names stay aligned.
func matchTable(title string, n int, m models.Match) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s match %d**\n", title, n)
	fmt.Fprintf(&b, "Total A: %d / Total B: %d\n", m.A.Total, m.B.Total)
	b.WriteString("```\n")
	b.WriteString(runewidth.FillRight("Team A", headerWidth) + " | " + runewidth.FillRight("Team B", headerWidth) + "\n")
	b.WriteString(strings.Repeat("-", ruleWidth) + "\n")
	for r := 0; r < models.RoleCount; r++ {
		b.WriteString(runewidth.FillRight(slotCell(m.A.Slots[r]), cellWidth) + " | " + slotCell(m.B.Slots[r]) + "\n")
	}
	b.WriteString("```")
	return b.String()
}

func slotCell(s models.RoleAssignment) string {
	return fmt.Sprintf("%s: %s (%d)", s.Role, s.Player, s.Score)
}

func announcementText(mode models.Mode, matches []models.Match) string {
	blocks := make([]string, len(matches))
	for i, m := range matches {
		blocks[i] = matchTable(mode.Title(), i+1, m)
	}
	return strings.Join(blocks, "\n\n")
}

func pollMessage(voteLink, closeLink string) string {
	return "Vote with /vote, then /reveal to publish the result.\n" +
		"Backup web vote: " + voteLink + "\n" +
		"Close web vote: " + closeLink
}

func optionLabel(i int) string {
	return strconv.Itoa(i + 1)
}

// tallyBlock renders "label : count" lines inside a code block.
func tallyBlock(labels []string, tally []int) string {
	lines := []string{"```"}
	for i, c := range tally {
		label := optionLabel(i)
		if i < len(labels) {
			label = labels[i]
		}
		lines = append(lines, fmt.Sprintf("%s : %d", label, c))
	}
	lines = append(lines, "```")
	return strings.Join(lines, "\n")
}

func unresolvedLines(entries []models.PendingEntry) []string {
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = "- " + e.Link
	}
	return lines
}

func recordLines(link, recorder string) []string {
	return []string{
		"🧾 **Record link**: " + link,
		"📝 **Today's recorder**: " + recorder,
	}
}
