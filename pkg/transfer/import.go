package transfer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/klauspost/compress/zip"
)

// ImportMarkdown creates a new note from a markdown document.
func (c *Codec) ImportMarkdown(ctx context.Context, r io.Reader) (ImportResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to read markdown: %w", err)
	}
	title, body := SplitTitleAndBody(string(data))
	return c.createNote(ctx, title, body)
}

// ImportText creates a new note from a plain text document.
func (c *Codec) ImportText(ctx context.Context, r io.Reader) (ImportResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to read text: %w", err)
	}
	title, body := SplitPlainText(string(data))
	return c.createNote(ctx, title, body)
}

// ImportArchive imports every markdown entry of a zip archive as a new note.
// Entries that are not markdown files are skipped.
func (c *Codec) ImportArchive(ctx context.Context, r io.ReaderAt, size int64) (ImportResult, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to open archive: %w", err)
	}

	count := 0
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !isMarkdown(path.Ext(f.Name)) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return ImportResult{}, fmt.Errorf("failed to open %s: %w", f.Name, err)
		}
		_, err = c.ImportMarkdown(ctx, rc)
		rc.Close()
		if err != nil {
			return ImportResult{}, fmt.Errorf("failed to import %s: %w", f.Name, err)
		}
		count++
	}

	c.logger.Info("archive imported", "notes", count)
	return ImportResult{Success: true, Count: count}, nil
}

// ImportFile imports a file from disk, choosing the format by extension.
// Unsupported extensions are rejected before the file is opened.
func (c *Codec) ImportFile(ctx context.Context, filename string) (ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !Supported(ext) {
		return ImportResult{}, fmt.Errorf("%w: %q", ErrUnsupportedFileType, ext)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to read %s: %w", filename, err)
	}

	c.logger.Debug("importing file", "path", filename, "bytes", len(data))
	r := bytes.NewReader(data)
	switch ext {
	case ".txt":
		return c.ImportText(ctx, r)
	case ".json":
		return c.ImportBackup(ctx, r)
	case ".yaml", ".yml":
		return c.ImportYAMLBackup(ctx, r)
	case ".zip":
		return c.ImportArchive(ctx, r, int64(len(data)))
	default:
		return c.ImportMarkdown(ctx, r)
	}
}

// FileResult is the outcome of importing one file of a batch.
type FileResult struct {
	Path   string
	Result ImportResult
	Err    error
}

// ImportGlob imports every file under root matching a doublestar pattern
// (e.g. "**/*.md"). A failing file does not stop the batch.
func (c *Codec) ImportGlob(ctx context.Context, root, pattern string) ([]FileResult, error) {
	matches, err := doublestar.Glob(os.DirFS(root), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	sort.Strings(matches)

	results := make([]FileResult, 0, len(matches))
	for _, m := range matches {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		p := filepath.Join(root, filepath.FromSlash(m))
		res, err := c.ImportFile(ctx, p)
		if err != nil {
			c.logger.Warn("import failed", "path", p, "error", err)
		}
		results = append(results, FileResult{Path: p, Result: res, Err: err})
	}
	return results, nil
}

// Supported reports whether ext (with leading dot) can be imported.
func Supported(ext string) bool {
	switch strings.ToLower(ext) {
	case ".md", ".markdown", ".txt", ".json", ".yaml", ".yml", ".zip":
		return true
	}
	return false
}

func isMarkdown(ext string) bool {
	ext = strings.ToLower(ext)
	return ext == ".md" || ext == ".markdown"
}

func (c *Codec) createNote(ctx context.Context, title, body string) (ImportResult, error) {
	id, err := c.notes.CreateNote(ctx, c.notes.NewNote(title, body))
	if err != nil {
		return ImportResult{}, err
	}
	return ImportResult{Success: true, NoteID: id, Count: 1}, nil
}
