// Package style holds the colors, lipgloss styles and pterm badges used in
// terminal output, plus a small markup language ("[error]...[/error]") so
// that renderers can produce styled or plain text from the same templates.
package style
