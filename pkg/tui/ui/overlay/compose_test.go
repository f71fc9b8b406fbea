package overlay

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss/v2"
)

func TestComposeCentersForeground(t *testing.T) {
	bg := strings.Join([]string{"aaaaaaaaaa", "bbbbbbbbbb", "cccccccccc"}, "\n")
	got := Compose(bg, 10, 3, "XX", Placement{})
	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	plain := strip(lines[1])
	if plain != "bbbbXXbbbb" {
		t.Fatalf("expected foreground in the middle, got %q", plain)
	}
	if strip(lines[0]) != "aaaaaaaaaa" || strip(lines[2]) != "cccccccccc" {
		t.Fatalf("background rows changed: %q", got)
	}
}

func TestComposePlacesTopRight(t *testing.T) {
	bg := strings.Join([]string{"..........", ".........."}, "\n")
	got := Compose(bg, 10, 2, "ab\ncd", Placement{Horizontal: lipgloss.Right, Vertical: lipgloss.Top, MarginX: 1})
	lines := strings.Split(got, "\n")
	if strip(lines[0]) != ".......ab." || strip(lines[1]) != ".......cd." {
		t.Fatalf("unexpected placement %q", got)
	}
}

func TestComposePadsShortBackground(t *testing.T) {
	got := Compose("x", 4, 3, "", Placement{})
	lines := strings.Split(got, "\n")
	if len(lines) != 3 || lines[0] != "x   " || lines[2] != "    " {
		t.Fatalf("expected padded 4x3 canvas, got %q", got)
	}
}

func TestComposeKeepsStyledBackground(t *testing.T) {
	styled := lipgloss.NewStyle().Bold(true).Render("hello world")
	got := Compose(styled, 11, 1, "__", Placement{})
	if strip(got) != "hell__world" {
		t.Fatalf("unexpected plain text %q", strip(got))
	}
}

func strip(s string) string {
	var b strings.Builder
	escape := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			escape = true
		case escape:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				escape = false
			}
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
