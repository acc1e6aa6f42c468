package logging

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/Graylog2/go-gelf/gelf"
)

// NewGraylogHandler opens a GELF UDP writer to addr and returns a JSON handler
// that writes to it. Close the returned writer when logging is done.
func NewGraylogHandler(addr string, level slog.Leveler) (slog.Handler, io.Closer, error) {
	w, err := gelf.NewWriter(addr)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open graylog writer: %w", err)
	}
	return slog.NewJSONHandler(w, HandlerOptions(level)), w, nil
}
