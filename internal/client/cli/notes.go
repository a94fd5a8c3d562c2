package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/voicenotes/internal/client/api"
	"github.com/dmitrijs2005/voicenotes/internal/client/export"
	"github.com/dmitrijs2005/voicenotes/internal/recorder"
)

var (
	getMultiline = GetMultiline
	getList      = GetList
	confirm      = Confirm
)

var errRecordingCancelled = errors.New("recording cancelled")

func (a *App) List(ctx context.Context, view api.View, query string) error {
	notes, err := a.api.Fetch(ctx, view, query)
	if err != nil {
		return err
	}
	printNotes(a.out, notes)
	return nil
}

// awaitEnter reports the next line on reader. It is a test seam for the
// stop key; done closes when the session has ended on its own.
var awaitEnter = func(reader *bufio.Reader, _ <-chan struct{}) <-chan struct{} {
	pressed := make(chan struct{})
	go func() {
		_, _ = reader.ReadString('\n')
		close(pressed)
	}()
	return pressed
}

// Record plays back audioPath as a recording session, optionally with a
// transcript file, and submits the result as a new note. Enter stops the
// recording; otherwise it ends with the file or at RecordingLimit.
func (a *App) Record(ctx context.Context, audioPath, scriptPath string) error {
	opts := []recorder.Option{
		recorder.WithLimit(a.config.RecordingLimit),
		recorder.WithLogger(a.logger),
	}
	if scriptPath != "" {
		rec, err := recorder.LoadScript(scriptPath)
		if err != nil {
			return fmt.Errorf("error loading transcript: %w", err)
		}
		opts = append(opts, recorder.WithRecognizer(rec))
	}

	src := &recorder.FileSource{
		Path:      audioPath,
		ChunkSize: a.config.ChunkSize,
		Interval:  a.config.ChunkInterval,
	}
	session := recorder.New(src, opts...)
	if err := session.Start(ctx); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Recording... press Enter to stop (limit %s)\n", a.config.RecordingLimit)

	// Every stop path, including ctx cancellation, closes Done.
	pressed := awaitEnter(a.reader, session.Done())
	select {
	case <-pressed:
		session.Stop()
		<-session.Done()
	case <-session.Done():
	}

	res, _ := session.Result()
	if res.Reason == recorder.StopCancelled {
		return errRecordingCancelled
	}
	if res.Reason != recorder.StopManual {
		// The pending read owns the reader until the user answers.
		fmt.Fprintf(a.out, "Recording stopped (%s), press Enter to continue\n", res.Reason)
		select {
		case <-pressed:
		case <-ctx.Done():
			return errRecordingCancelled
		}
	}

	fmt.Fprintf(a.out, "Recorded %d bytes in %d chunks (%s)\n", len(res.Blob.Data), res.Chunks, res.Reason)
	if res.Transcript != "" {
		fmt.Fprintln(a.out, "Transcript:", res.Transcript)
	} else {
		fmt.Fprintln(a.out, "No transcript available")
	}

	title, err := getSimpleText(a.reader, "Enter title", a.out)
	if err != nil {
		return err
	}

	note, err := a.api.CreateNote(ctx, title, res)
	if err != nil {
		return err
	}
	a.logger.Debug(ctx, "note created", "note_id", note.ID)
	fmt.Fprintf(a.out, "Note %s created\n", note.ID)
	return nil
}

type attachments []*os.File

func (f attachments) Close() {
	for _, file := range f {
		file.Close()
	}
}

func openImages(paths []string) ([]api.Attachment, attachments, error) {
	var files attachments
	out := make([]api.Attachment, 0, len(paths))
	for _, p := range paths {
		file, err := os.Open(p)
		if err != nil {
			files.Close()
			return nil, nil, err
		}
		files = append(files, file)
		out = append(out, api.Attachment{
			Name:        filepath.Base(p),
			ContentType: mime.TypeByExtension(strings.ToLower(filepath.Ext(p))),
			Body:        file,
		})
	}
	return out, files, nil
}

// Edit shows the note and submits a partial update. Empty answers keep the
// stored values; attached images are appended.
func (a *App) Edit(ctx context.Context, id string) error {
	note, err := a.api.GetNote(ctx, id)
	if err != nil {
		return err
	}
	printNote(a.out, note)

	var e api.Edit
	if e.Title, err = getSimpleText(a.reader, "New title (empty keeps current)", a.out); err != nil {
		return err
	}
	if e.Content, err = getMultiline(a.reader, "New content (empty keeps current)", a.out); err != nil {
		return err
	}
	if e.TranscribedText, err = getSimpleText(a.reader, "New transcript (empty keeps current)", a.out); err != nil {
		return err
	}
	paths, err := getList(a.reader, "Image files to attach, one per line", a.out)
	if err != nil {
		return err
	}

	if e.Title == "" && e.Content == "" && e.TranscribedText == "" && len(paths) == 0 {
		fmt.Fprintln(a.out, "Nothing to update")
		return nil
	}

	images, files, err := openImages(paths)
	if err != nil {
		return err
	}
	defer files.Close()
	e.Images = images

	updated, err := a.api.UpdateNote(ctx, id, e)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Note updated")
	printNote(a.out, updated)
	return nil
}

func (a *App) ToggleFavourite(ctx context.Context, id string) error {
	note, err := a.api.ToggleFavourite(ctx, id)
	if err != nil {
		return err
	}
	if note.IsFavourite {
		fmt.Fprintf(a.out, "%q added to favourites\n", note.Title)
	} else {
		fmt.Fprintf(a.out, "%q removed from favourites\n", note.Title)
	}
	return nil
}

func (a *App) Delete(ctx context.Context, id string) error {
	ok, err := confirm(a.reader, fmt.Sprintf("Delete note %s?", id), a.out)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}
	if err := a.api.DeleteNote(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Note deleted")
	return nil
}

// Export writes every note to the configured export directory.
func (a *App) Export(ctx context.Context) error {
	notes, err := a.api.Fetch(ctx, api.AllView, "")
	if err != nil {
		return err
	}
	paths, err := export.Markdown(a.config.ExportDir, notes)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Exported %d notes to %s\n", len(paths), a.config.ExportDir)
	return nil
}
