package transfer

import (
	"strings"

	"github.com/aretw0/jot/pkg/core"
)

const idPrefixLen = 8

// Slugify lowercases s and replaces every character that is not an ASCII
// letter or digit with '-'. Runs of separators are kept as-is.
func Slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteByte('-')
		}
	}
	return b.String()
}

// FileName derives the export file name of a note: the slugified title, or
// "note-<first 8 chars of id>" for untitled notes.
func FileName(n core.Note, ext string) string {
	if n.Title != "" {
		return Slugify(n.Title) + ext
	}
	id := []rune(n.ID)
	if len(id) > idPrefixLen {
		id = id[:idPrefixLen]
	}
	return "note-" + string(id) + ext
}
