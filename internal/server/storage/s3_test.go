package storage

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	sc "github.com/dmitrijs2005/voicenotes/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type s3Request struct {
	method      string
	path        string
	contentType string
	body        string
}

// fakeS3 records requests and answers like a minimal S3 endpoint.
type fakeS3 struct {
	mu       sync.Mutex
	requests []s3Request
	status   int
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, s3Request{
		method:      r.Method,
		path:        r.URL.Path,
		contentType: r.Header.Get("Content-Type"),
		body:        string(b),
	})
	status := f.status
	f.mu.Unlock()

	if status == 0 {
		status = http.StatusOK
	}
	if r.Method == http.MethodDelete && status == http.StatusOK {
		status = http.StatusNoContent
	}
	if status >= 400 {
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>AccessDenied</Code><Message>denied</Message></Error>`)
		return
	}
	w.Header().Set("ETag", `"etag"`)
	w.WriteHeader(status)
}

func newTestUploader(t *testing.T, fake *fakeS3) *S3Uploader {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	orig := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = orig })
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		return aws.Config{
			Region:      lo.Region,
			Credentials: credentials.NewStaticCredentialsProvider("admin", "secret", ""),
		}, nil
	}

	cfg := &sc.Config{}
	cfg.LoadDefaults()
	cfg.S3BaseEndpoint = srv.URL
	cfg.S3PublicURL = "https://cdn.example.com/"

	u, err := NewS3Uploader(context.Background(), cfg)
	require.NoError(t, err)
	return u
}

func TestNewKey(t *testing.T) {
	orig := now
	t.Cleanup(func() { now = orig })
	now = func() time.Time { return time.Date(2024, 3, 7, 12, 0, 0, 0, time.UTC) }

	k := NewKey("voicenotes", "Clip.WEBM")
	assert.True(t, strings.HasPrefix(k, "voicenotes/2024/03/07/"), k)
	assert.True(t, strings.HasSuffix(k, ".webm"), k)

	assert.NotEqual(t, NewKey("", "a.png"), NewKey("", "a.png"))
	assert.True(t, strings.HasPrefix(NewKey("", "a"), "2024/03/07/"))
}

func TestUpload_PutsObjectAndReturnsPublicURL(t *testing.T) {
	fake := &fakeS3{}
	u := newTestUploader(t, fake)

	obj, err := u.Upload(context.Background(), "note.webm", "audio/webm", strings.NewReader("audio-bytes"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(obj.Key, "voicenotes/"))
	assert.Equal(t, "https://cdn.example.com/voicenotes/"+obj.Key, obj.URL)

	require.Len(t, fake.requests, 1)
	req := fake.requests[0]
	assert.Equal(t, http.MethodPut, req.method)
	assert.Equal(t, "/voicenotes/"+obj.Key, req.path)
	assert.Equal(t, "audio/webm", req.contentType)
	assert.Contains(t, req.body, "audio-bytes")
}

func TestUpload_ServerError(t *testing.T) {
	fake := &fakeS3{status: http.StatusForbidden}
	u := newTestUploader(t, fake)

	_, err := u.Upload(context.Background(), "a.png", "image/png", strings.NewReader("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error uploading a.png")
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("read failed") }

func TestUpload_ReadError(t *testing.T) {
	fake := &fakeS3{}
	u := newTestUploader(t, fake)

	_, err := u.Upload(context.Background(), "a.png", "", failingReader{})
	require.Error(t, err)
	assert.Empty(t, fake.requests)
}

func TestDelete(t *testing.T) {
	fake := &fakeS3{}
	u := newTestUploader(t, fake)

	require.NoError(t, u.Delete(context.Background(), "voicenotes/k.webm"))
	require.Len(t, fake.requests, 1)
	assert.Equal(t, http.MethodDelete, fake.requests[0].method)
	assert.Equal(t, "/voicenotes/voicenotes/k.webm", fake.requests[0].path)
}

func TestNewS3Uploader_ConfigError(t *testing.T) {
	orig := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = orig })
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no config")
	}

	cfg := &sc.Config{}
	cfg.LoadDefaults()
	_, err := NewS3Uploader(context.Background(), cfg)
	assert.ErrorContains(t, err, "no config")
}
