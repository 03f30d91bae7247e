package logging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"
)

// PanicDir is where RecoverPanic writes its reports.
var PanicDir = "."

// RecoverPanic must be deferred. It logs the panic, writes a report with the
// stack trace to PanicDir and runs cleanup.
func RecoverPanic(name string, cleanup func()) {
	if r := recover(); r != nil {
		slog.Error("panic recovered", "component", name, "panic", r)

		filename := filepath.Join(PanicDir, fmt.Sprintf("widgetlink-panic-%s-%s.log", name, time.Now().Format("20060102-150405")))
		if err := writePanicReport(filename, name, r, debug.Stack()); err != nil {
			slog.Error("failed to write panic report", "file", filename, "error", err)
		} else {
			slog.Info("panic details written", "file", filename)
		}

		if cleanup != nil {
			cleanup()
		}
	}
}

func writePanicReport(filename, name string, r any, stack []byte) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("create panic log: %w", err)
	}
	defer file.Close()

	_, err = fmt.Fprintf(file, "Panic in %s: %v\n\nTime: %s\n\nStack Trace:\n%s\n", name, r, time.Now().Format(time.RFC3339), stack)
	if err != nil {
		return fmt.Errorf("write panic log: %w", err)
	}
	return nil
}
