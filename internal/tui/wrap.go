package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

type styledRune struct {
	s     string
	width int
}

func buildStyledRunes(password string) []styledRune {
	runes := []rune(password)
	out := make([]styledRune, 0, len(runes))
	for _, r := range runes {
		style := symbolStyle
		switch {
		case r >= 'a' && r <= 'z':
			style = lowerStyle
		case r >= 'A' && r <= 'Z':
			style = upperStyle
		case r >= '0' && r <= '9':
			style = digitStyle
		}
		out = append(out, styledRune{
			s:     style.Render(string(r)),
			width: runewidth.RuneWidth(r),
		})
	}
	return out
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

// wrapStyledRunes breaks at the display width; passwords have no spaces to prefer.
func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	lineWidth := 0
	for _, item := range runes {
		if lineWidth+item.width > width && lineWidth > 0 {
			out.WriteRune('\n')
			lineWidth = 0
		}
		out.WriteString(item.s)
		lineWidth += item.width
	}
	return out.String()
}
