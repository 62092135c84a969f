// internal/logging/logging.go
// Package logging tees the standard logger to stderr and an optional log file.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

var (
	mu      sync.Mutex
	logFile *os.File
)

// Init points the standard logger at stderr and, when logPath is set, at an
// append-only log file as well. Calling Init again closes the previous file.
func Init(logPath string) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}

	var writers []io.Writer
	writers = append(writers, os.Stderr)

	if logPath != "" {
		if dir := filepath.Dir(logPath); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		logFile = file
		writers = append(writers, logFile)
	}

	log.SetOutput(io.MultiWriter(writers...))
	return nil
}

// Close releases the log file, if any, and restores stderr output.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	log.SetOutput(os.Stderr)
	err := logFile.Close()
	logFile = nil
	return err
}

func LogEvent(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Println(msg)
}

// LogSelection records one dashboard render.
func LogSelection(renderID, country, qualification, measure string, outcome any) {
	log.Println(buildSelectionMessage(renderID, country, qualification, measure, outcome))
}

// LogRequest records one HTTP request served by the dashboard API.
func LogRequest(method, path string, status int, latency time.Duration) {
	log.Printf("[HTTP] method=%s path=%s status=%d latency=%s", strings.ToUpper(method), path, status, latency)
}

func buildSelectionMessage(renderID, country, qualification, measure string, outcome any) string {
	id := strings.TrimSpace(renderID)
	if id == "" {
		id = "unknown"
	}
	parts := []string{"[RENDER]", fmt.Sprintf("id=%s", id)}
	parts = append(parts, fmt.Sprintf("country=%q", strings.TrimSpace(country)))
	parts = append(parts, fmt.Sprintf("qualification=%q", strings.TrimSpace(qualification)))
	parts = append(parts, fmt.Sprintf("measure=%q", strings.TrimSpace(measure)))
	parts = append(parts, fmt.Sprintf("outcome=%s", formatPayload(outcome)))
	return strings.Join(parts, " ")
}

func formatPayload(payload any) string {
	switch v := payload.(type) {
	case nil:
		return "null"
	case error:
		return v.Error()
	case string:
		if strings.TrimSpace(v) == "" {
			return `""`
		}
		return v
	case []byte:
		if len(v) == 0 {
			return "[]"
		}
		return string(v)
	case fmt.Stringer:
		return v.String()
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}
