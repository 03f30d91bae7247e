package logging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/go-logfmt/logfmt"
)

type slogWriter struct {
	service *Service
}

// NewSlogWriter returns a writer for slog.TextHandler that decodes each
// logfmt record and stores it in service.
func NewSlogWriter(service *Service) io.Writer {
	return &slogWriter{service: service}
}

func (w *slogWriter) Write(p []byte) (int, error) {
	d := logfmt.NewDecoder(bytes.NewReader(p))
	for d.ScanRecord() {
		entry := Log{Attributes: make(map[string]string)}

		for d.ScanKeyval() {
			key := string(d.Key())
			value := string(d.Value())

			switch key {
			case "time":
				parsed, err := time.Parse(time.RFC3339Nano, value)
				if err != nil {
					slog.Debug("logging: unparseable time", "value", value, "error", err)
					parsed = time.Now()
				}
				entry.Timestamp = parsed
			case "level":
				entry.Level = strings.ToLower(value)
			case "msg", "message":
				entry.Message = value
			default:
				entry.Attributes[key] = value
			}
		}
		if d.Err() != nil {
			return len(p), fmt.Errorf("logfmt.ScanRecord: %w", d.Err())
		}

		if w.service != nil {
			w.service.Create(context.Background(), entry)
		}
	}
	if d.Err() != nil {
		return len(p), fmt.Errorf("logfmt.ScanRecord final: %w", d.Err())
	}
	return len(p), nil
}
