// Package markdown persists rendered report tables as Markdown pipe-tables.
package markdown

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"world-report/internal/observability/metrics"
	"world-report/internal/render"
)

// ErrInvalidName is returned when a report file name has no usable base
// element.
var ErrInvalidName = errors.New("invalid report file name")

// Writer writes report files under one root directory.
type Writer struct {
	dir    string
	logger *slog.Logger
}

// NewWriter creates a writer rooted at dir. The directory is created on the
// first write.
func NewWriter(dir string, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{dir: dir, logger: logger}
}

// Dir returns the root directory.
func (w *Writer) Dir() string { return w.dir }

// Save writes t to name under the root directory and returns the file path.
// An empty table writes nothing. Failures are logged and reported as an
// empty path; a report file is a best-effort artifact.
func (w *Writer) Save(name string, t render.Table) string {
	if t.Empty() {
		metrics.RecordReportFileSkipped()
		w.logger.Debug("report has no rows, no file written", slog.String("name", name))
		return ""
	}

	path, n, err := w.write(name, t)
	if err != nil {
		metrics.RecordReportFileFailed()
		w.logger.Error("failed to write report",
			slog.String("name", name),
			slog.String("dir", w.dir),
			slog.Any("error", err))
		return ""
	}

	metrics.RecordReportFileWritten(n)
	w.logger.Info("report written", slog.String("path", path), slog.Int("rows", len(t.Rows)))
	return path
}

func (w *Writer) write(name string, t render.Table) (string, int, error) {
	base := filepath.Base(filepath.Clean("/" + name))
	if base == "/" || base == "." {
		return "", 0, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", 0, fmt.Errorf("create report dir: %w", err)
	}
	path := filepath.Join(w.dir, base)
	data := Encode(t)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", 0, fmt.Errorf("write report: %w", err)
	}
	return path, len(data), nil
}

// Encode renders t as a Markdown table. Numeric columns are right-aligned.
func Encode(t render.Table) []byte {
	var b bytes.Buffer
	row(&b, t.Headers)

	sep := make([]string, len(t.Headers))
	for i := range sep {
		sep[i] = "---"
		if i < len(t.Numeric) && t.Numeric[i] {
			sep[i] = "---:"
		}
	}
	b.WriteString("| " + strings.Join(sep, " | ") + " |\n")

	for _, r := range t.Rows {
		row(&b, r)
	}
	return b.Bytes()
}

var cellEscaper = strings.NewReplacer("|", `\|`, "\r\n", " ", "\n", " ")

func row(b *bytes.Buffer, cells []string) {
	b.WriteString("|")
	for _, c := range cells {
		b.WriteString(" ")
		b.WriteString(cellEscaper.Replace(c))
		b.WriteString(" |")
	}
	b.WriteString("\n")
}
