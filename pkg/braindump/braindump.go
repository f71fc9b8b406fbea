// Package braindump turns a block of free text into draft tasks, one per line.
package braindump

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"tableflip.dev/cmdcenter/pkg/task"
)

// markers are the bullet glyphs stripped from the start of a line when they
// are followed by whitespace.
var markers = []rune{'-', '*', '+', '•', '◦', '‣', '▪', '–'}

// Parse splits text into draft tasks. Drafts carry no id or timestamps; the
// caller inserts them with task.Repository.Add.
func Parse(text string) []task.Task {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	drafts := make([]task.Task, 0)
	for _, line := range strings.Split(text, "\n") {
		line = stripMarker(strings.TrimSpace(line))
		if line == "" {
			continue
		}
		drafts = append(drafts, task.Task{
			Text:     line,
			Category: task.CategoryWork,
			Priority: task.PriorityMedium,
			Status:   task.StatusTodo,
			Notes:    task.DraftNotes,
			Subtasks: []task.Subtask{},
		})
	}
	return drafts
}

// stripMarker removes one leading bullet marker. A line holding only a
// marker becomes empty.
func stripMarker(line string) string {
	r, size := utf8.DecodeRuneInString(line)
	if !isMarker(r) {
		return line
	}
	rest := line[size:]
	if rest == "" {
		return ""
	}
	next, _ := utf8.DecodeRuneInString(rest)
	if !unicode.IsSpace(next) {
		return line
	}
	return strings.TrimSpace(rest)
}

func isMarker(r rune) bool {
	for _, m := range markers {
		if r == m {
			return true
		}
	}
	return false
}
