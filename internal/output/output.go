// Package output delivers converted documents to stdout, the clipboard or a file.
package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/afero"
)

// ErrNoPath is returned for file mode without a destination.
var ErrNoPath = errors.New("output: file mode needs a path")

// ============================================================================
// Clipboard Interface
// ============================================================================

// Clipboard defines the interface for clipboard operations
type Clipboard interface {
	Copy(text string) error
}

// systemClipboard implements Clipboard using atotto/clipboard
type systemClipboard struct{}

// SystemClipboard returns the platform clipboard
func SystemClipboard() Clipboard {
	return systemClipboard{}
}

// Copy copies text to the system clipboard
func (systemClipboard) Copy(text string) error {
	if clipboard.Unsupported {
		return errors.New("output: no clipboard available")
	}
	return clipboard.WriteAll(text)
}

// ============================================================================
// Writer
// ============================================================================

// Mode represents how a result should be delivered
type Mode string

const (
	Print Mode = "print"
	Copy  Mode = "copy"
	File  Mode = "file"
)

// ParseMode maps a config value to a Mode. Unknown values print.
func ParseMode(s string) Mode {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case Copy:
		return Copy
	case File:
		return File
	default:
		return Print
	}
}

// Writer delivers results according to a Mode
type Writer struct {
	out       io.Writer
	fs        afero.Fs
	clipboard Clipboard
}

// NewWriter creates a writer printing to out
func NewWriter(out io.Writer) *Writer {
	if out == nil {
		out = os.Stdout
	}
	return &Writer{out: out, fs: afero.NewOsFs(), clipboard: systemClipboard{}}
}

// WithFs sets the file system used in file mode
func (w *Writer) WithFs(fs afero.Fs) *Writer {
	w.fs = fs
	return w
}

// WithClipboard sets a custom clipboard implementation (useful for testing)
func (w *Writer) WithClipboard(c Clipboard) *Writer {
	w.clipboard = c
	return w
}

// Write delivers text. path is only used in file mode.
func (w *Writer) Write(text string, mode Mode, path string) error {
	switch mode {
	case Copy:
		return w.clipboard.Copy(text)
	case File:
		if path == "" {
			return ErrNoPath
		}
		if err := afero.WriteFile(w.fs, path, []byte(ensureNewline(text)), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		return nil
	default: // print
		_, err := io.WriteString(w.out, ensureNewline(text))
		return err
	}
}

func ensureNewline(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
