package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriter_Status(t *testing.T) {
	tests := []struct {
		name  string
		write func(w *Writer)
		want  string
	}{
		{"icon", func(w *Writer) { w.Status(">", "Checking") }, "> Checking\n"},
		{"no icon", func(w *Writer) { w.Status("", "indented") }, "  indented\n"},
		{"formatted", func(w *Writer) { w.Statusf("#", "%d records", 3) }, "# 3 records\n"},
		{"success", func(w *Writer) { w.Success("done") }, "✓ done\n"},
		{"successf", func(w *Writer) { w.Successf("wrote %s", "x") }, "✓ wrote x\n"},
		{"warning", func(w *Writer) { w.Warning("careful") }, "! careful\n"},
		{"error", func(w *Writer) { w.Error("failed") }, "✗ failed\n"},
		{"field", func(w *Writer) { w.Field("Location", "/tmp/x") }, "  Location: /tmp/x\n"},
		{"newline", func(w *Writer) { w.Newline() }, "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			tt.write(New(buf))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestWriter_Code_IndentsLines(t *testing.T) {
	buf := &bytes.Buffer{}
	w := New(buf)

	w.Code("line1\nline2\n")

	assert.Equal(t, "\n  line1\n  line2\n\n", buf.String())
}
