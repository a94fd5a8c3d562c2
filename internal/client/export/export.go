// Package export writes notes to disk as Markdown files with YAML front
// matter, one file per note.
package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/dmitrijs2005/voicenotes/internal/dto"
	"github.com/dmitrijs2005/voicenotes/internal/filex"
	"gopkg.in/yaml.v3"
)

var unsafeChars = regexp.MustCompile(`[^a-z0-9]+`)

// FileName derives a stable file name from the note's title and id.
func FileName(n dto.Note) string {
	slug := strings.Trim(unsafeChars.ReplaceAllString(strings.ToLower(n.Title), "-"), "-")
	if len(slug) > 40 {
		slug = strings.TrimRight(slug[:40], "-")
	}
	if slug == "" {
		slug = "note"
	}
	return slug + "-" + n.ID + ".md"
}

// Render returns the Markdown document for n: front matter followed by the
// transcript and the user's own content.
func Render(n dto.Note) ([]byte, error) {
	meta, err := yaml.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("error encoding front matter: %w", err)
	}

	var b bytes.Buffer
	b.WriteString("---\n")
	b.Write(meta)
	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "# %s\n", n.Title)

	if t := strings.TrimSpace(n.TranscribedText); t != "" {
		fmt.Fprintf(&b, "\n## Transcript\n\n%s\n", t)
	}
	if c := strings.TrimSpace(n.Content); c != "" {
		fmt.Fprintf(&b, "\n## Notes\n\n%s\n", c)
	}
	for i, img := range n.Images {
		fmt.Fprintf(&b, "\n![image %d](%s)\n", i+1, img)
	}
	return b.Bytes(), nil
}

// Markdown writes every note into dir, creating it when needed, and returns
// the written paths in note order.
func Markdown(dir string, notes []dto.Note) ([]string, error) {
	dir, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, fmt.Errorf("error creating export dir: %w", err)
	}

	paths := make([]string, 0, len(notes))
	for _, n := range notes {
		data, err := Render(n)
		if err != nil {
			return paths, err
		}
		path := filepath.Join(dir, FileName(n))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, fmt.Errorf("error writing %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
