package export

import (
	"bytes"
	"testing"

	"notesapp/internal/client"

	"github.com/jung-kurt/gofpdf"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var sample = []client.Note{{ID: "1", Text: "a"}, {ID: "01J", Text: "b"}}

func TestExportJSON(t *testing.T) {
	fs := afero.NewMemMapFs()
	ex := NewExporter(fs)

	require.NoError(t, ex.Export(sample, FormatJSON, "out/notes.json"))

	b, err := afero.ReadFile(fs, "out/notes.json")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"1","text":"a"},{"id":"01J","text":"b"}]`, string(b))
}

func TestExportYAML(t *testing.T) {
	fs := afero.NewMemMapFs()
	ex := NewExporter(fs)

	require.NoError(t, ex.Export(sample, FormatYAML, "notes.yaml"))

	b, err := afero.ReadFile(fs, "notes.yaml")
	require.NoError(t, err)
	var got []map[string]string
	require.NoError(t, yaml.Unmarshal(b, &got))
	assert.Equal(t, []map[string]string{{"id": "1", "text": "a"}, {"id": "01J", "text": "b"}}, got)
}

func TestExportPDF(t *testing.T) {
	fs := afero.NewMemMapFs()
	ex := NewExporter(fs)

	require.NoError(t, ex.Export(append(sample, client.Note{ID: "2", Text: "café"}), FormatPDF, "notes.pdf"))

	b, err := afero.ReadFile(fs, "notes.pdf")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF-")))
}

func TestExportPDFRejectsUnencodableText(t *testing.T) {
	for _, text := range []string{"日本語", "done ✓", "smile 🙂"} {
		var buf bytes.Buffer
		err := Write(&buf, []client.Note{{ID: "1", Text: "café"}, {ID: "2", Text: text}}, FormatPDF)
		assert.ErrorIs(t, err, ErrUnencodable, text)
	}

	fs := afero.NewMemMapFs()
	err := NewExporter(fs).Export([]client.Note{{ID: "1", Text: "日本語"}}, FormatPDF, "notes.pdf")
	require.ErrorIs(t, err, ErrUnencodable)
	exists, _ := afero.Exists(fs, "notes.pdf")
	assert.False(t, exists)
}

func TestEncodeCP1252(t *testing.T) {
	tr := gofpdf.New("P", "mm", "A4", "").UnicodeTranslatorFromDescriptor("")

	out, err := encodeCP1252(tr, "- café. €5")
	require.NoError(t, err)
	assert.Equal(t, "- caf\xe9. \x805", out)

	_, err = encodeCP1252(tr, "- 日本語 ✓ café")
	assert.ErrorIs(t, err, ErrUnencodable)
}

func TestExportEmptyList(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, nil, FormatJSON))
	assert.JSONEq(t, `[]`, buf.String())
}

func TestUnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Write(&buf, sample, "xml"))
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFromPath("notes.yml"))
	assert.Equal(t, FormatYAML, FormatFromPath("notes.YAML"))
	assert.Equal(t, FormatPDF, FormatFromPath("/tmp/notes.pdf"))
	assert.Equal(t, FormatJSON, FormatFromPath("notes"))
}
