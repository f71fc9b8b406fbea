// Package overlay draws a modal view on top of another view.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"
)

// Placement positions the foreground. Zero positions mean centered.
type Placement struct {
	Horizontal lipgloss.Position
	Vertical   lipgloss.Position
	MarginX    int
	MarginY    int
}

// Compose draws foreground over background inside a width x height canvas.
// Background cells outside the foreground keep their content and styling.
func Compose(background string, width, height int, foreground string, placement Placement) string {
	bg := canvas(background, width, height)
	if foreground == "" || width <= 0 || height <= 0 {
		return strings.Join(bg, "\n")
	}

	fg := strings.Split(foreground, "\n")
	fgWidth := 0
	for _, line := range fg {
		fgWidth = max(fgWidth, lipgloss.Width(line))
	}
	fgWidth = min(fgWidth, width)
	fgHeight := min(len(fg), height)

	x := offset(placement.Horizontal, width, fgWidth, placement.MarginX)
	y := offset(placement.Vertical, height, fgHeight, placement.MarginY)

	for row := 0; row < fgHeight; row++ {
		line := bg[y+row]
		bg[y+row] = truncate.String(line, uint(x)) + "\x1b[0m" +
			pad(fg[row], fgWidth) + "\x1b[0m" +
			skip(line, x+fgWidth)
	}
	return strings.Join(bg, "\n")
}

func canvas(view string, width, height int) []string {
	lines := strings.Split(view, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i := range lines {
		lines[i] = pad(lines[i], width)
	}
	return lines
}

func pad(s string, width int) string {
	w := lipgloss.Width(s)
	if w > width {
		return truncate.String(s, uint(width))
	}
	return s + strings.Repeat(" ", width-w)
}

// skip drops the first n printable cells of s. Escape sequences seen along
// the way are kept so the remainder renders with the same style.
func skip(s string, n int) string {
	var (
		b      strings.Builder
		seen   int
		escape bool
	)
	for _, r := range s {
		switch {
		case r == ansi.Marker:
			escape = true
			b.WriteRune(r)
		case escape:
			b.WriteRune(r)
			if ansi.IsTerminator(r) {
				escape = false
			}
		case seen < n:
			seen += lipgloss.Width(string(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func offset(pos lipgloss.Position, outer, inner, margin int) int {
	var o int
	switch pos {
	case lipgloss.Right, lipgloss.Bottom:
		o = outer - inner - margin
	case lipgloss.Left, lipgloss.Top:
		o = margin
	default:
		o = (outer - inner) / 2
	}
	return min(max(o, 0), outer-inner)
}
