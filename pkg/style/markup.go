package style

import (
	"regexp"

	"github.com/charmbracelet/lipgloss"
)

var tagPattern = regexp.MustCompile(`\[(\w+)\](.*?)\[/(\w+)\]`)

// MarkupParser handles parsing and rendering of markup tags such as
// "[error]failed[/error]"
type MarkupParser struct {
	styles map[string]lipgloss.Style
	plain  bool
}

// NewMarkupParser creates a new markup parser with default styles
func NewMarkupParser() *MarkupParser {
	return &MarkupParser{
		styles: map[string]lipgloss.Style{
			"title":   TitleStyle,
			"success": SuccessStyle,
			"error":   ErrorStyle,
			"skip":    SkipStyle,
			"muted":   MutedStyle,
			"command": CommandStyle,
			"path":    PathStyle,
			"bold":    lipgloss.NewStyle().Bold(true),
		},
	}
}

// NewPlainParser creates a parser that strips tags without styling
func NewPlainParser() *MarkupParser {
	p := NewMarkupParser()
	p.plain = true
	return p
}

// Render replaces known tags with styled text. Unknown or mismatched tags are
// left as they are.
func (p *MarkupParser) Render(text string) string {
	for {
		changed := false
		text = tagPattern.ReplaceAllStringFunc(text, func(match string) string {
			parts := tagPattern.FindStringSubmatch(match)
			open, content, closing := parts[1], parts[2], parts[3]
			style, ok := p.styles[open]
			if !ok || open != closing {
				return match
			}
			changed = true
			if p.plain {
				return content
			}
			return style.Render(content)
		})
		if !changed {
			return text
		}
	}
}

// AddStyle allows adding custom styles
func (p *MarkupParser) AddStyle(tag string, style lipgloss.Style) {
	p.styles[tag] = style
}

var defaultParser = NewMarkupParser()

// Render is a convenience function using the default parser
func Render(text string) string {
	return defaultParser.Render(text)
}
