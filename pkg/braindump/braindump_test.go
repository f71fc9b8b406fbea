package braindump

import (
	"testing"

	"tableflip.dev/cmdcenter/pkg/task"
)

func texts(drafts []task.Task) []string {
	out := make([]string, len(drafts))
	for i, d := range drafts {
		out[i] = d.Text
	}
	return out
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"mixed markers", "- a\n\nb\n* c", []string{"a", "b", "c"}},
		{"empty", "", nil},
		{"only blanks", "\n   \n\t\n", nil},
		{"bullet glyph", "• buy milk\r\n• call mom", []string{"buy milk", "call mom"}},
		{"marker without space kept", "-flag\n*bold*", []string{"-flag", "*bold*"}},
		{"single marker only", "-\n*  \n- real", []string{"real"}},
		{"one marker stripped", "- - nested", []string{"- nested"}},
		{"indented", "   + plus item   ", []string{"plus item"}},
		{"carriage returns", "a\rb", []string{"a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := texts(Parse(tt.in))
			if len(got) != len(tt.want) {
				t.Fatalf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
				}
			}
		})
	}
}

func TestParseDraftDefaults(t *testing.T) {
	for _, d := range Parse("- a\n\nb\n* c") {
		if d.Category != task.CategoryWork || d.Status != task.StatusTodo || d.Priority != task.PriorityMedium {
			t.Fatalf("unexpected draft %+v", d)
		}
		if d.Notes != "From brain dump" {
			t.Fatalf("notes = %q", d.Notes)
		}
		if d.ID != "" || !d.CreatedAt.IsZero() {
			t.Fatalf("drafts must not carry identity: %+v", d)
		}
	}
}
