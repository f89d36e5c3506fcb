// Package transfer converts notes to and from portable files.
//
// Exports are pure: they read the collection and return File values, leaving
// the decision of where to write them to the caller. Imports parse a file and
// create or update notes through the Notes interface.
package transfer

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aretw0/jot/pkg/core"
)

// Errors reported by the codec.
var (
	ErrNothingToExport     = errors.New("no notes to export")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrInvalidBackup       = errors.New("backup is not a list of notes")
)

// MIME types of produced files.
const (
	MIMEMarkdown = "text/markdown;charset=utf-8"
	MIMEText     = "text/plain;charset=utf-8"
	MIMEJSON     = "application/json"
	MIMEYAML     = "application/yaml"
	MIMEZip      = "application/zip"
)

// Notes is the part of core.Service the codec depends on.
type Notes interface {
	ListNotes(ctx context.Context) ([]core.Note, error)
	CreateNote(ctx context.Context, note core.Note) (string, error)
	UpdateNote(ctx context.Context, id string, note core.Note) (bool, error)
	NewNote(title, content string) core.Note
	Now() time.Time
}

// File is an exported file, ready to be written or downloaded.
type File struct {
	Name string
	MIME string
	Data []byte
}

// ImportResult reports the outcome of an import.
// NoteID is set for single-note imports, Count for multi-note ones.
type ImportResult struct {
	Success bool   `json:"success"`
	NoteID  string `json:"noteId,omitempty"`
	Count   int    `json:"count"`
}

// Codec implements every export and import operation.
type Codec struct {
	notes  Notes
	logger *slog.Logger
}

// NewCodec creates a Codec over notes.
func NewCodec(notes Notes, logger *slog.Logger) *Codec {
	if logger == nil {
		logger = slog.Default()
	}
	return &Codec{notes: notes, logger: logger}
}

var _ Notes = (*core.Service)(nil)
