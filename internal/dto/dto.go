// Package dto defines the JSON and form schema of the voicenotes REST API.
// The server encodes these types and the client decodes them.
package dto

import "time"

// Routes.
const (
	PathRoot          = "/"
	PathMetrics       = "/metrics"
	PathSignup        = "/user/signup"
	PathLogin         = "/user/login"
	PathAllNotes      = "/notes/all-notes"
	PathCreateNote    = "/notes/create-notes"
	PathUpdateNote    = "/notes/update/"
	PathDeleteNote    = "/notes/delete/"
	PathMarkFavourite = "/notes/mark-favourite/"
	PathFavourites    = "/notes/favourite-notes"
	PathSearch        = "/notes/search-notes"
)

// Multipart form fields and query parameters.
const (
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldTitle           = "title"
	FieldAudio           = "audio"
	FieldTranscribedText = "transcribedText"
	FieldContent         = "content"
	FieldImages          = "images"
	QuerySearch          = "search"
)

// Note is the public representation of a stored note.
type Note struct {
	ID              string    `json:"id" yaml:"id"`
	User            string    `json:"user" yaml:"-"`
	Title           string    `json:"title" yaml:"title"`
	Audio           string    `json:"audio" yaml:"audio"`
	TranscribedText string    `json:"transcribedText" yaml:"-"`
	Content         string    `json:"content" yaml:"-"`
	Images          []string  `json:"images" yaml:"images,omitempty"`
	IsFavourite     bool      `json:"isFavourite" yaml:"favourite"`
	CreatedAt       time.Time `json:"createdAt" yaml:"created"`
}

func (n Note) GetTitle() string { return n.Title }

func (n Note) GetIsFavourite() bool { return n.IsFavourite }

// User is the public representation of an account; it never carries the
// password hash.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Notes     []string  `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
}

// Credentials is the body of signup and login, as JSON or form fields.
type Credentials struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type SignupResponse struct {
	Message string `json:"message"`
	NewUser User   `json:"newUser"`
}

type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type NotesResponse struct {
	Message string `json:"message"`
	Notes   []Note `json:"notes"`
}

type NewNoteResponse struct {
	Message string `json:"message"`
	NewNote Note   `json:"newNote"`
}

type NoteResponse struct {
	Message string `json:"message"`
	Note    Note   `json:"note"`
}
