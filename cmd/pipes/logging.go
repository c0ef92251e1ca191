package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

const (
	logDir      = "logs"
	logFileName = "pipes.log"
	maxLogSize  = 10 * 1024 * 1024
)

// setupLogging discards log output unless debug is set, then appends to logs/pipes.log
// A log above maxLogSize is rotated to a timestamped name first
// The returned file is nil when logging is discarded
func setupLogging(debug bool) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create log directory: %v\n", err)
		log.SetOutput(io.Discard)
		return nil
	}

	logPath := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(logDir, fmt.Sprintf("pipes-%s.log", time.Now().Format("20060102-150405")))
		if err := os.Rename(logPath, rotated); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to rotate log file: %v\n", err)
		}
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		log.SetOutput(io.Discard)
		return nil
	}

	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	log.Printf("logging started")
	return f
}
