package notes

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/voicenotes/internal/common"
	"github.com/dmitrijs2005/voicenotes/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(db), mock, db
}

var noteCols = []string{"id", "user_id", "title", "audio_url", "transcribed_text", "content", "images", "is_favourite", "created_at"}

func TestCreate_Success(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+notes\s*\(user_id,\s*title,\s*audio_url,\s*transcribed_text,\s*content,\s*images,\s*is_favourite\).+RETURNING\s+id,\s*created_at`).
		WithArgs("u-1", "Groceries", "http://s3/a.webm", "milk eggs", "", "[]", false).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("n-1", created))

	n, err := repo.Create(context.Background(), &models.Note{
		UserID: "u-1", Title: "Groceries", AudioURL: "http://s3/a.webm", TranscribedText: "milk eggs",
	})
	require.NoError(t, err)
	assert.Equal(t, "n-1", n.ID)
	assert.Equal(t, created, n.CreatedAt)
	assert.Equal(t, []string{}, n.Images)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(`INSERT\s+INTO\s+notes`).WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.Note{UserID: "u-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error")
}

func TestGetByID(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	q := `(?s)^SELECT\s+n\.id.+FROM\s+notes\s+n\s+WHERE\s+n\.id\s*=\s*\$1`
	mock.ExpectQuery(q).WithArgs("n-1").
		WillReturnRows(sqlmock.NewRows(noteCols).
			AddRow("n-1", "u-1", "T", "url", "text", "c", []byte(`["i1","i2"]`), true, time.Now()))
	mock.ExpectQuery(q).WithArgs("n-2").WillReturnError(sql.ErrNoRows)

	n, err := repo.GetByID(context.Background(), "n-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"i1", "i2"}, n.Images)
	assert.True(t, n.IsFavourite)
	assert.Equal(t, "u-1", n.UserID)

	_, err = repo.GetByID(context.Background(), "n-2")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGetByID_BadImages(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(`FROM\s+notes`).WithArgs("n-1").
		WillReturnRows(sqlmock.NewRows(noteCols).
			AddRow("n-1", "u-1", "T", "url", "text", "c", []byte(`{`), false, time.Now()))

	_, err := repo.GetByID(context.Background(), "n-1")
	require.Error(t, err)
}

func TestPatch(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	q := `(?s)^UPDATE\s+notes\s+AS\s+n\s+SET\s+title\s*=\s*COALESCE\(NULLIF\(\$2,\s*''\),\s*n\.title\).+images\s*=\s*n\.images\s*\|\|\s*\$5::jsonb\s+WHERE\s+n\.id\s*=\s*\$1\s+RETURNING\s+n\.id`
	mock.ExpectQuery(q).WithArgs("n-1", "T", "", "", `["b"]`).
		WillReturnRows(sqlmock.NewRows(noteCols).
			AddRow("n-1", "u-1", "T", "url", "text", "c", []byte(`["a","b"]`), false, time.Now()))
	mock.ExpectQuery(q).WithArgs("n-2", "", "C", "", `[]`).WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(q).WillReturnError(errors.New("db down"))

	n, err := repo.Patch(context.Background(), "n-1", models.NotePatch{Title: "T"}, []string{"b"})
	require.NoError(t, err)
	assert.Equal(t, "T", n.Title)
	assert.Equal(t, []string{"a", "b"}, n.Images)

	_, err = repo.Patch(context.Background(), "n-2", models.NotePatch{Content: "C"}, nil)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = repo.Patch(context.Background(), "n-3", models.NotePatch{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToggleFavourite(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	q := `(?s)^UPDATE\s+notes\s+AS\s+n\s+SET\s+is_favourite\s*=\s*NOT\s+n\.is_favourite\s+WHERE\s+n\.id\s*=\s*\$1\s+RETURNING\s+n\.id`
	mock.ExpectQuery(q).WithArgs("n-1").
		WillReturnRows(sqlmock.NewRows(noteCols).
			AddRow("n-1", "u-1", "T", "url", "text", "", []byte(`[]`), true, time.Now()))
	mock.ExpectQuery(q).WithArgs("n-2").WillReturnError(sql.ErrNoRows)

	n, err := repo.ToggleFavourite(context.Background(), "n-1")
	require.NoError(t, err)
	assert.True(t, n.IsFavourite)

	_, err = repo.ToggleFavourite(context.Background(), "n-2")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMalformedIDIsNotFound(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	badUUID := &pgconn.PgError{Code: "22P02", Message: `invalid input syntax for type uuid: "abc"`}
	mock.ExpectQuery(`FROM\s+notes`).WithArgs("abc").WillReturnError(badUUID)
	mock.ExpectQuery(`UPDATE\s+notes`).WithArgs("abc").WillReturnError(badUUID)
	mock.ExpectExec(`DELETE\s+FROM\s+notes`).WithArgs("abc").WillReturnError(badUUID)

	_, err := repo.GetByID(context.Background(), "abc")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = repo.ToggleFavourite(context.Background(), "abc")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	assert.ErrorIs(t, repo.Delete(context.Background(), "abc"), common.ErrorNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	q := `(?s)^DELETE\s+FROM\s+notes\s+WHERE\s+id\s*=\s*\$1`
	mock.ExpectExec(q).WithArgs("n-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q).WithArgs("n-2").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(q).WithArgs("n-3").WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, repo.Delete(context.Background(), "n-1"))
	assert.ErrorIs(t, repo.Delete(context.Background(), "n-2"), common.ErrorNotFound)
	assert.ErrorContains(t, repo.Delete(context.Background(), "n-3"), "unexpected rows affected")
}

func TestListByUser(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	t1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	mock.ExpectQuery(`(?s)^SELECT.+FROM\s+notes\s+n\s+JOIN\s+user_notes\s+un\s+ON\s+un\.note_id\s*=\s*n\.id\s+WHERE\s+un\.user_id\s*=\s*\$1\s+ORDER\s+BY\s+n\.created_at`).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows(noteCols).
			AddRow("n-1", "u-1", "first", "url1", "t1", "", []byte(`[]`), false, t1).
			AddRow("n-2", "u-1", "second", "url2", "t2", "", nil, true, t2))

	got, err := repo.ListByUser(context.Background(), "u-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Title)
	assert.Equal(t, "second", got[1].Title)
	assert.Equal(t, []string{}, got[1].Images)
}

func TestListByUser_Empty(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(`FROM\s+notes`).WithArgs("u-1").WillReturnRows(sqlmock.NewRows(noteCols))

	got, err := repo.ListByUser(context.Background(), "u-1")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListByUser_QueryError(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(`FROM\s+notes`).WillReturnError(errors.New("db down"))

	_, err := repo.ListByUser(context.Background(), "u-1")
	assert.ErrorContains(t, err, "failed to select notes")
}
