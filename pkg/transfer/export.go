package transfer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/klauspost/compress/zip"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/jot/pkg/core"
)

const (
	untitled   = "Untitled Note"
	dateLayout = "2006-01-02"
)

// MarkdownOf renders a note as "# <title>\n\n<content>".
func MarkdownOf(n core.Note) string {
	title := n.Title
	if title == "" {
		title = untitled
	}
	return "# " + title + "\n\n" + n.Content
}

// TextOf renders a note as "<title>\n\n<content>".
func TextOf(n core.Note) string {
	return n.Title + "\n\n" + n.Content
}

// ExportMarkdown exports a single note as a markdown file.
func (c *Codec) ExportMarkdown(n core.Note) File {
	return File{
		Name: FileName(n, ".md"),
		MIME: MIMEMarkdown,
		Data: []byte(MarkdownOf(n)),
	}
}

// ExportText exports a single note as a plain text file.
func (c *Codec) ExportText(n core.Note) File {
	return File{
		Name: FileName(n, ".txt"),
		MIME: MIMEText,
		Data: []byte(TextOf(n)),
	}
}

// ExportBackup serializes the whole collection as a pretty-printed JSON array.
func (c *Codec) ExportBackup(ctx context.Context) (File, error) {
	notes, err := c.allNotes(ctx)
	if err != nil {
		return File{}, err
	}

	data, err := json.MarshalIndent(notes, "", "  ")
	if err != nil {
		return File{}, fmt.Errorf("failed to encode backup: %w", err)
	}
	return File{
		Name: c.datedName("notes-backup", ".json"),
		MIME: MIMEJSON,
		Data: data,
	}, nil
}

// ExportYAMLBackup serializes the whole collection as a YAML sequence.
func (c *Codec) ExportYAMLBackup(ctx context.Context) (File, error) {
	notes, err := c.allNotes(ctx)
	if err != nil {
		return File{}, err
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(notes); err != nil {
		return File{}, fmt.Errorf("failed to encode backup: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return File{}, fmt.Errorf("failed to encode backup: %w", err)
	}
	return File{
		Name: c.datedName("notes-backup", ".yaml"),
		MIME: MIMEYAML,
		Data: buf.Bytes(),
	}, nil
}

// ExportArchive bundles every note as a markdown file inside one zip archive.
// Colliding file names get a numeric suffix ("todo.md", "todo-2.md").
func (c *Codec) ExportArchive(ctx context.Context) (File, error) {
	notes, err := c.allNotes(ctx)
	if err != nil {
		return File{}, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	used := make(map[string]int, len(notes))

	for _, n := range notes {
		name := uniqueName(FileName(n, ".md"), used)
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     name,
			Method:   zip.Deflate,
			Modified: n.UpdatedAt,
		})
		if err != nil {
			return File{}, fmt.Errorf("failed to add %s to archive: %w", name, err)
		}
		if _, err := w.Write([]byte(MarkdownOf(n))); err != nil {
			return File{}, fmt.Errorf("failed to write %s to archive: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return File{}, fmt.Errorf("failed to finalize archive: %w", err)
	}

	c.logger.Debug("archive exported", "notes", len(notes), "bytes", buf.Len())
	return File{
		Name: c.datedName("notes-export", ".zip"),
		MIME: MIMEZip,
		Data: buf.Bytes(),
	}, nil
}

// allNotes lists the collection and refuses to export an empty one.
func (c *Codec) allNotes(ctx context.Context) ([]core.Note, error) {
	notes, err := c.notes.ListNotes(ctx)
	if err != nil {
		return nil, err
	}
	if len(notes) == 0 {
		return nil, ErrNothingToExport
	}
	return notes, nil
}

func (c *Codec) datedName(prefix, ext string) string {
	return prefix + "-" + c.notes.Now().Format(dateLayout) + ext
}

func uniqueName(name string, used map[string]int) string {
	used[name]++
	n := used[name]
	if n == 1 {
		return name
	}
	ext := path.Ext(name)
	candidate := fmt.Sprintf("%s-%d%s", strings.TrimSuffix(name, ext), n, ext)
	// A slug may already end in "-2"; keep counting until free.
	for used[candidate] > 0 {
		n++
		candidate = fmt.Sprintf("%s-%d%s", strings.TrimSuffix(name, ext), n, ext)
	}
	used[name] = n
	used[candidate]++
	return candidate
}
