package transfer

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// maxTitleLen is the longest first line still taken as a title.
const maxTitleLen = 100

var headingPattern = regexp.MustCompile(`^#\s+(.+)(\n|$)`)

// SplitTitleAndBody extracts a title from markdown text.
//
// A leading level-1 heading wins. Otherwise a first line of at most 100
// characters is the title. Otherwise there is no title and the whole text is
// the body. The body is always trimmed.
func SplitTitleAndBody(text string) (title, body string) {
	text = normalizeNewlines(text)

	if m := headingPattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(text[len(m[0]):])
	}

	first, rest, _ := strings.Cut(text, "\n")
	first = strings.TrimSpace(first)
	if utf8.RuneCountInString(first) <= maxTitleLen {
		return first, strings.TrimSpace(rest)
	}
	return "", strings.TrimSpace(text)
}

// SplitPlainText applies the first-line title rule to plain text and drops
// the blank line separating title from body. The body is otherwise untouched.
func SplitPlainText(text string) (title, body string) {
	text = normalizeNewlines(text)

	first, rest, _ := strings.Cut(text, "\n")
	first = strings.TrimSpace(first)
	if utf8.RuneCountInString(first) > maxTitleLen {
		return "", text
	}

	line, after, found := strings.Cut(rest, "\n")
	if strings.TrimSpace(line) == "" {
		if found {
			rest = after
		} else {
			rest = ""
		}
	}
	return first, rest
}

func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}
