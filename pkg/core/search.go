package core

import (
	"context"
	"strings"
)

// SearchNotes filters notes by a case-insensitive substring.
// Title matches come first, then notes matching only in content.
// Both groups keep the ListNotes order. A blank query returns ListNotes.
func (s *Service) SearchNotes(ctx context.Context, query string) ([]Note, error) {
	notes, err := s.ListNotes(ctx)
	if err != nil {
		return nil, err
	}
	return Rank(notes, query), nil
}

// Rank applies the two-tier search ranking to an already ordered slice.
func Rank(notes []Note, query string) []Note {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return notes
	}

	titleHits := make([]Note, 0)
	contentHits := make([]Note, 0)
	for _, n := range notes {
		switch {
		case strings.Contains(strings.ToLower(n.Title), q):
			titleHits = append(titleHits, n)
		case strings.Contains(strings.ToLower(n.Content), q):
			contentHits = append(contentHits, n)
		}
	}
	return append(titleHits, contentHits...)
}
