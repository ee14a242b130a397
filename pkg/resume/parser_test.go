package resume

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDocx(t *testing.T, paragraphs ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<w:document><w:body>`))
	require.NoError(t, err)
	for _, p := range paragraphs {
		_, err = w.Write([]byte(`<w:p><w:r><w:t>` + p + `</w:t></w:r></w:p>`))
		require.NoError(t, err)
	}
	_, err = w.Write([]byte(`</w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtractTextDocx(t *testing.T) {
	data := buildDocx(t, "Senior Go Developer", "Skills: Go, PostgreSQL, Docker")

	text, err := ExtractText(MimeDOCX, data)
	require.NoError(t, err)
	assert.Contains(t, text, "Senior Go Developer")
	assert.Contains(t, text, "Skills: Go, PostgreSQL, Docker")
}

func TestExtractTextDocxCorrupt(t *testing.T) {
	_, err := ExtractText(MimeDOCX, []byte("definitely not a zip archive"))
	require.ErrorIs(t, err, ErrParseFailure)
}

func TestExtractTextDocxWithoutDocument(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/styles.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte("<w:styles/>"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = ExtractText(MimeDOCX, buf.Bytes())
	require.ErrorIs(t, err, ErrParseFailure)
}

func TestExtractTextPlain(t *testing.T) {
	text, err := ExtractText(MimeTXT, []byte("  Go \t developer\n\n\nPython  "))
	require.NoError(t, err)
	assert.Equal(t, "Go developer\nPython", text)
}

func TestExtractTextPlainEmpty(t *testing.T) {
	_, err := ExtractText(MimeTXT, []byte("   \n  "))
	require.ErrorIs(t, err, ErrParseFailure)
}

func TestExtractTextPDFCorrupt(t *testing.T) {
	_, err := ExtractText(MimePDF, []byte("%PDF-1.7 broken"))
	require.ErrorIs(t, err, ErrParseFailure)
}

func TestExtractTextUnsupportedMime(t *testing.T) {
	_, err := ExtractText("image/png", []byte{0x89, 0x50})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestExtractTextDeterministic(t *testing.T) {
	data := buildDocx(t, "Backend Engineer", "Go, Kafka")
	first, err := ExtractText(MimeDOCX, data)
	require.NoError(t, err)
	second, err := ExtractText(MimeDOCX, data)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
