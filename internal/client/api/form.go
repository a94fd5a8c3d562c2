package api

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
)

// form builds a multipart body, keeping the first error.
type form struct {
	buf bytes.Buffer
	w   *multipart.Writer
	err error
}

func newForm() *form {
	f := &form{}
	f.w = multipart.NewWriter(&f.buf)
	return f
}

func (f *form) field(name, value string) {
	if f.err != nil || value == "" {
		return
	}
	f.err = f.w.WriteField(name, value)
}

func (f *form) file(field, name, contentType string, body io.Reader) {
	if f.err != nil {
		return
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, escapeQuotes(field), escapeQuotes(name)))
	h.Set("Content-Type", contentType)

	part, err := f.w.CreatePart(h)
	if err != nil {
		f.err = err
		return
	}
	if _, err := io.Copy(part, body); err != nil {
		f.err = fmt.Errorf("error reading %s: %w", name, err)
	}
}

// request closes the writer and returns an authenticated request.
func (f *form) request(method, path string) (request, error) {
	if f.err != nil {
		return request{}, f.err
	}
	if err := f.w.Close(); err != nil {
		return request{}, err
	}
	return request{
		method:      method,
		path:        path,
		body:        &f.buf,
		contentType: f.w.FormDataContentType(),
		auth:        true,
	}, nil
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
