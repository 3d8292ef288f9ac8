package util

import (
	"fmt"
	"io"
	"log"
	"sync/atomic"
)

type Logger struct {
	Verbose     bool
	Quiet       bool
	Prefix      *string
	Destination *log.Logger

	// Shared between a logger and all loggers derived from it via WithPrefix
	errorCount *int64
}

// NewLogger - Returns a logger writing to w with the collector's default flags
func NewLogger(w io.Writer, verbose bool, quiet bool) *Logger {
	return &Logger{
		Verbose:     verbose,
		Quiet:       quiet,
		Destination: log.New(w, "", log.LstdFlags),
		errorCount:  new(int64),
	}
}

func (logger *Logger) WithPrefix(prefix string) *Logger {
	return &Logger{Verbose: logger.Verbose, Quiet: logger.Quiet, Destination: logger.Destination, Prefix: &prefix, errorCount: logger.errorCount}
}

// ErrorCount - Number of errors printed by this logger and its prefixed children
func (logger *Logger) ErrorCount() int64 {
	if logger.errorCount == nil {
		return 0
	}
	return atomic.LoadInt64(logger.errorCount)
}

func (logger *Logger) print(logLevel string, format string, args ...interface{}) {
	if logger.Destination == nil {
		return
	}

	if logger.Prefix != nil {
		format = fmt.Sprintf("[%s] %s", *logger.Prefix, format)
	}

	format = fmt.Sprintf("%s %s", logLevel, format)

	logger.Destination.Printf(format, args...)
}

func (logger *Logger) PrintVerbose(format string, args ...interface{}) {
	if logger.Quiet || !logger.Verbose {
		return
	}

	logger.print("V", format, args...)
}

func (logger *Logger) PrintInfo(format string, args ...interface{}) {
	if logger.Quiet {
		return
	}

	logger.print("I", format, args...)
}

func (logger *Logger) PrintWarning(format string, args ...interface{}) {
	logger.print("W", format, args...)
}

func (logger *Logger) PrintError(format string, args ...interface{}) {
	if logger.errorCount != nil {
		atomic.AddInt64(logger.errorCount, 1)
	}
	logger.print("E", format, args...)
}
