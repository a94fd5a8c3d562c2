package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/voicenotes/internal/dto"
)

const dateLayout = "02 Jan 2006, 15:04"

func formatDateTime(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

func favMark(n dto.Note) string {
	if n.IsFavourite {
		return "*"
	}
	return " "
}

func printNotes(w io.Writer, notes []dto.Note) {
	if len(notes) == 0 {
		fmt.Fprintln(w, "No notes found")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\tID\tTITLE\tCREATED\tIMAGES")
	for _, n := range notes {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", favMark(n), n.ID, n.Title, formatDateTime(n.CreatedAt), len(n.Images))
	}
	tw.Flush()
}

func printNote(w io.Writer, n dto.Note) {
	fmt.Fprintf(w, "%s %s\n", favMark(n), n.Title)
	fmt.Fprintf(w, "  id:      %s\n", n.ID)
	fmt.Fprintf(w, "  created: %s\n", formatDateTime(n.CreatedAt))
	fmt.Fprintf(w, "  audio:   %s\n", n.Audio)
	if n.TranscribedText != "" {
		fmt.Fprintf(w, "  transcript:\n    %s\n", indent(n.TranscribedText))
	}
	if n.Content != "" {
		fmt.Fprintf(w, "  content:\n    %s\n", indent(n.Content))
	}
	for _, img := range n.Images {
		fmt.Fprintf(w, "  image:   %s\n", img)
	}
}

func indent(s string) string {
	return strings.ReplaceAll(s, "\n", "\n    ")
}
