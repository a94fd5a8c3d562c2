package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/voicenotes/internal/dto"
	"github.com/dmitrijs2005/voicenotes/internal/recorder"
)

// Attachment is a file sent with a note update.
type Attachment struct {
	Name        string
	ContentType string
	Body        io.Reader
}

// Edit is a partial note update. Empty fields keep their stored values and
// images are appended after the existing ones.
type Edit struct {
	Title           string
	Content         string
	TranscribedText string
	Images          []Attachment
}

func (c *Client) listNotes(ctx context.Context, path string) ([]dto.Note, error) {
	var resp dto.NotesResponse
	if err := c.do(ctx, request{method: http.MethodGet, path: path, auth: true}, &resp); err != nil {
		return nil, err
	}
	if resp.Notes == nil {
		return []dto.Note{}, nil
	}
	return resp.Notes, nil
}

// AllNotes returns the user's notes, oldest first.
func (c *Client) AllNotes(ctx context.Context) ([]dto.Note, error) {
	return c.listNotes(ctx, dto.PathAllNotes)
}

func (c *Client) FavouriteNotes(ctx context.Context) ([]dto.Note, error) {
	return c.listNotes(ctx, dto.PathFavourites)
}

func (c *Client) SearchNotes(ctx context.Context, query string) ([]dto.Note, error) {
	q := url.Values{dto.QuerySearch: {query}}
	return c.listNotes(ctx, dto.PathSearch+"?"+q.Encode())
}

// CreateNote submits a finished recording as a new note.
func (c *Client) CreateNote(ctx context.Context, title string, res recorder.Result) (dto.Note, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return dto.Note{}, ErrTitleRequired
	}
	if len(res.Blob.Data) == 0 {
		return dto.Note{}, ErrEmptyAudio
	}

	form := newForm()
	form.field(dto.FieldTitle, title)
	form.field(dto.FieldTranscribedText, res.Transcript)
	form.file(dto.FieldAudio, "recording.webm", res.Blob.MediaType, bytes.NewReader(res.Blob.Data))
	r, err := form.request(http.MethodPost, dto.PathCreateNote)
	if err != nil {
		return dto.Note{}, err
	}

	var resp dto.NewNoteResponse
	if err := c.do(ctx, r, &resp); err != nil {
		return dto.Note{}, err
	}
	return resp.NewNote, nil
}

// GetNote loads one note for editing. The API has no single-note route, so
// it is looked up in the full list.
func (c *Client) GetNote(ctx context.Context, id string) (dto.Note, error) {
	notes, err := c.AllNotes(ctx)
	if err != nil {
		return dto.Note{}, err
	}
	for _, n := range notes {
		if n.ID == id {
			return n, nil
		}
	}
	return dto.Note{}, ErrNoteNotFound
}

func (c *Client) UpdateNote(ctx context.Context, id string, e Edit) (dto.Note, error) {
	form := newForm()
	form.field(dto.FieldTitle, e.Title)
	form.field(dto.FieldContent, e.Content)
	form.field(dto.FieldTranscribedText, e.TranscribedText)
	for _, img := range e.Images {
		form.file(dto.FieldImages, img.Name, img.ContentType, img.Body)
	}
	r, err := form.request(http.MethodPut, dto.PathUpdateNote+url.PathEscape(id))
	if err != nil {
		return dto.Note{}, err
	}

	var resp dto.NoteResponse
	if err := c.do(ctx, r, &resp); err != nil {
		return dto.Note{}, err
	}
	return resp.Note, nil
}

func (c *Client) DeleteNote(ctx context.Context, id string) error {
	r := request{method: http.MethodDelete, path: dto.PathDeleteNote + url.PathEscape(id), auth: true}
	return c.do(ctx, r, nil)
}

// ToggleFavourite flips the favourite flag and returns the updated note.
func (c *Client) ToggleFavourite(ctx context.Context, id string) (dto.Note, error) {
	var resp dto.NoteResponse
	r := request{method: http.MethodPut, path: dto.PathMarkFavourite + url.PathEscape(id), auth: true}
	if err := c.do(ctx, r, &resp); err != nil {
		return dto.Note{}, err
	}
	return resp.Note, nil
}
