package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"notesapp/internal/client"

	"github.com/jung-kurt/gofpdf"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatPDF  = "pdf"
)

// ErrUnencodable is returned for PDF exports of text outside the cp1252
// range of the core fonts.
var ErrUnencodable = errors.New("text cannot be encoded for PDF")

type record struct {
	ID   string `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
}

type Exporter struct {
	FS afero.Fs
}

func NewExporter(fs afero.Fs) *Exporter {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Exporter{FS: fs}
}

// FormatFromPath guesses the format from the file extension, defaulting to
// JSON.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".pdf":
		return FormatPDF
	}
	return FormatJSON
}

// Export writes notes to path in the given format.
func (e *Exporter) Export(notes []client.Note, format, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := e.FS.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export dir: %w", err)
		}
	}
	f, err := e.FS.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	if err := Write(f, notes, format); err != nil {
		f.Close()
		e.FS.Remove(path)
		return err
	}
	return f.Close()
}

func Write(w io.Writer, notes []client.Note, format string) error {
	records := make([]record, 0, len(notes))
	for _, n := range notes {
		records = append(records, record{ID: n.ID.String(), Text: n.Text})
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return err
		}
		return enc.Close()
	case FormatPDF:
		return writePDF(w, records)
	}
	return fmt.Errorf("unsupported export format %q", format)
}

func writePDF(w io.Writer, records []record) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Notes", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Notes")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	for _, r := range records {
		line, err := encodeCP1252(tr, "- "+r.Text)
		if err != nil {
			return fmt.Errorf("note %s: %w", r.ID, err)
		}
		pdf.MultiCell(0, 6, line, "", "L", false)
	}
	return pdf.Output(w)
}

// encodeCP1252 runs s through tr, which writes one byte per rune and '.' for
// any rune it cannot map.
func encodeCP1252(tr func(string) string, s string) (string, error) {
	out := tr(s)
	i := 0
	for _, r := range s {
		if r >= 0x80 && out[i] == '.' {
			return "", fmt.Errorf("%w: %q", ErrUnencodable, r)
		}
		i++
	}
	return out, nil
}
