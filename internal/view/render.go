package view

import (
	"bufio"
	"io"
)

// Render writes s as plain text: a heading, the draft line and one line per
// note in list order.
func Render(w io.Writer, s Snapshot) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("Notes\n")
	bw.WriteString("> " + s.Draft + "\n")
	if s.Load == Loading {
		bw.WriteString("(loading)\n")
	}
	for _, n := range s.Notes {
		bw.WriteString("- " + n.Text + "\n")
	}
	return bw.Flush()
}
