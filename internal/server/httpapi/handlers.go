package httpapi

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/dmitrijs2005/voicenotes/internal/common"
	"github.com/dmitrijs2005/voicenotes/internal/dto"
	"github.com/dmitrijs2005/voicenotes/internal/server/models"
	"github.com/dmitrijs2005/voicenotes/internal/server/services"
	"github.com/labstack/echo/v4"
)

type createNoteRequest struct {
	Title           string `json:"title" form:"title"`
	TranscribedText string `json:"transcribedText" form:"transcribedText"`
}

type updateNoteRequest struct {
	Title           string `json:"title" form:"title"`
	Content         string `json:"content" form:"content"`
	TranscribedText string `json:"transcribedText" form:"transcribedText"`
}

func badBody(err error) error {
	return common.WithMessage(common.ErrorValidation, "invalid request body: "+err.Error())
}

func (s *Server) root(c echo.Context) error {
	return c.String(http.StatusOK, "voicenotes api")
}

func (s *Server) signup(c echo.Context) error {
	var req dto.Credentials
	if err := c.Bind(&req); err != nil {
		return badBody(err)
	}

	user, err := s.users.Signup(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	s.logger.Info(c.Request().Context(), "user registered", "user_id", user.ID)
	return c.JSON(http.StatusCreated, dto.SignupResponse{
		Message: "User created successfully",
		NewUser: userDTO(user),
	})
}

func (s *Server) login(c echo.Context) error {
	var req dto.Credentials
	if err := c.Bind(&req); err != nil {
		return badBody(err)
	}

	token, err := s.users.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.LoginResponse{
		Message: "User logged in successfully",
		Token:   token,
	})
}

func (s *Server) allNotes(c echo.Context) error {
	notes, err := s.notes.List(c.Request().Context(), currentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.NotesResponse{Message: "Notes fetched successfully", Notes: notesDTO(notes)})
}

func (s *Server) favouriteNotes(c echo.Context) error {
	notes, err := s.notes.Favourites(c.Request().Context(), currentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.NotesResponse{Message: "Favorite notes fetched successfully", Notes: notesDTO(notes)})
}

func (s *Server) searchNotes(c echo.Context) error {
	notes, err := s.notes.Search(c.Request().Context(), currentUser(c), c.QueryParam(dto.QuerySearch))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.NotesResponse{Message: "Search results fetched successfully", Notes: notesDTO(notes)})
}

// openUpload opens a received file. The caller closes the returned closer.
func openUpload(fh *multipart.FileHeader) (services.Upload, io.Closer, error) {
	f, err := fh.Open()
	if err != nil {
		return services.Upload{}, nil, err
	}
	return services.Upload{
		Name:        fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Body:        f,
	}, f, nil
}

func (s *Server) createNote(c echo.Context) error {
	var req createNoteRequest
	if err := c.Bind(&req); err != nil {
		return badBody(err)
	}

	var audio *services.Upload
	if fh, err := c.FormFile(dto.FieldAudio); err == nil {
		up, closer, err := openUpload(fh)
		if err != nil {
			return err
		}
		defer closer.Close()
		audio = &up
	}

	note, err := s.notes.Create(c.Request().Context(), currentUser(c), req.Title, req.TranscribedText, audio)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dto.NewNoteResponse{Message: "Note created successfully", NewNote: noteDTO(note)})
}

func (s *Server) updateNote(c echo.Context) error {
	var req updateNoteRequest
	if err := c.Bind(&req); err != nil {
		return badBody(err)
	}

	var images []services.Upload
	if form, err := c.MultipartForm(); err == nil {
		for _, fh := range form.File[dto.FieldImages] {
			up, closer, err := openUpload(fh)
			if err != nil {
				return err
			}
			defer closer.Close()
			images = append(images, up)
		}
	}

	patch := models.NotePatch{
		Title:           req.Title,
		Content:         req.Content,
		TranscribedText: req.TranscribedText,
	}

	note, err := s.notes.Update(c.Request().Context(), currentUser(c), c.Param("id"), patch, images)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.NoteResponse{Message: "Note updated successfully", Note: noteDTO(note)})
}

func (s *Server) deleteNote(c echo.Context) error {
	if err := s.notes.Delete(c.Request().Context(), currentUser(c), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Note deleted successfully"})
}

func (s *Server) toggleFavourite(c echo.Context) error {
	note, err := s.notes.ToggleFavourite(c.Request().Context(), currentUser(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.NoteResponse{Message: "Note favorite status updated successfully", Note: noteDTO(note)})
}
