// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package dispatch

// Discord component type ids.
const (
	componentActionRow = 1
	componentButton    = 2
)

// ButtonStyle is a Discord button colour.
type ButtonStyle int

const (
	StylePrimary   ButtonStyle = 1
	StyleSecondary ButtonStyle = 2
	StyleSuccess   ButtonStyle = 3
	StyleDanger    ButtonStyle = 4
)

// MaxCustomIDLen is Discord's limit on a button custom_id.
const MaxCustomIDLen = 100

// Payload is an interactive message: text content plus optional button rows.
type Payload struct {
	Content    string      `json:"content"`
	Components []ActionRow `json:"components,omitempty"`
}

// ActionRow groups up to five buttons on one line.
type ActionRow struct {
	Type       int      `json:"type"`
	Components []Button `json:"components"`
}

// Button is a clickable component that posts its CustomID back to the
// interactions endpoint.
type Button struct {
	Type     int         `json:"type"`
	Style    ButtonStyle `json:"style"`
	Label    string      `json:"label"`
	CustomID string      `json:"custom_id"`
}

func NewActionRow(buttons ...Button) ActionRow {
	return ActionRow{Type: componentActionRow, Components: buttons}
}

func NewButton(style ButtonStyle, label, customID string) Button {
	return Button{Type: componentButton, Style: style, Label: label, CustomID: customID}
}

type textMessage struct {
	Content string `json:"content"`
}

// rawMessage asks the relay to forward the inner object untouched.
type rawMessage struct {
	Raw Payload `json:"raw"`
}
