package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readerOf(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer

	got, err := GetSimpleText(readerOf("  hello world \nnext\n"), "Say", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Say\n> ", out.String())
}

func TestGetSimpleText_PartialLineAtEOF(t *testing.T) {
	got, err := GetSimpleText(readerOf("tail"), "Say", &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "tail", got)
}

func TestGetSimpleText_EmptyEOF(t *testing.T) {
	_, err := GetSimpleText(readerOf(""), "Say", &bytes.Buffer{})
	assert.Error(t, err)
}

func TestGetPassword(t *testing.T) {
	orig := readPassword
	t.Cleanup(func() { readPassword = orig })

	readPassword = func(int) ([]byte, error) { return []byte("s3cret"), nil }
	var out bytes.Buffer
	pw, err := GetPassword(&out)
	require.NoError(t, err)
	assert.Equal(t, []byte("s3cret"), pw)
	assert.Equal(t, "Enter password: \n", out.String())

	readPassword = func(int) ([]byte, error) { return nil, errors.New("not a terminal") }
	_, err = GetPassword(&bytes.Buffer{})
	assert.EqualError(t, err, "not a terminal")
}

func TestGetMultiline(t *testing.T) {
	got, err := GetMultiline(readerOf("first line\r\nsecond line\n\nignored\n"), "Content", &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "first line\nsecond line", got)

	got, err = GetMultiline(readerOf("\n"), "Content", &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "", got)

	got, err = GetMultiline(readerOf("no newline"), "Content", &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "no newline", got)
}

func TestGetList(t *testing.T) {
	got, err := GetList(readerOf(" a.png \n   \nb.jpg\n\nc.gif\n"), "Files", &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.png", "b.jpg"}, got)
}

func TestConfirm(t *testing.T) {
	for input, want := range map[string]bool{
		"y\n":   true,
		"YES\n": true,
		"n\n":   false,
		"\n":    false,
		"sure":  false,
	} {
		got, err := Confirm(readerOf(input), "Sure?", &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, want, got, "input %q", input)
	}
}
