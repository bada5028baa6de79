package alerts

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// Writer prints alerts as an icon, a message and indented details.
type Writer struct {
	writer      io.Writer
	useColor    bool
	showDetails bool
}

// NewWriter creates a Writer. Color is used only on a terminal when NO_COLOR is unset.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		writer:      w,
		useColor:    isTerminal(w) && os.Getenv("NO_COLOR") == "",
		showDetails: true,
	}
}

// WithDetails toggles detail lines.
func (aw *Writer) WithDetails(show bool) *Writer {
	aw.showDetails = show
	return aw
}

// WriteAlert writes one alert.
func (aw *Writer) WriteAlert(alert *Alert) error {
	message := alert.String()
	if aw.useColor {
		message = alert.Level.Color() + message + resetColor
	}

	if _, err := fmt.Fprintln(aw.writer, message); err != nil {
		return err
	}

	if aw.showDetails {
		for _, detail := range alert.Details {
			if _, err := fmt.Fprintf(aw.writer, "   %s\n", detail); err != nil {
				return err
			}
		}
	}

	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
