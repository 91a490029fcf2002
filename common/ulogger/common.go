/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Package ulogger writes event-ID tagged log lines to a daily rotated file
// and, optionally, to a console writer.
package ulogger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/UnifyEM/storefront/common/interfaces"
)

// This package implements interfaces.Logger
var _ interfaces.Logger = (*SFLogger)(nil)

// Option is a function that configures a SFLogger
type Option func(*SFLogger) error

// New creates a new instance of SFLogger with the provided options
func New(options ...Option) (*SFLogger, error) {
	u := &SFLogger{retainDays: 30, console: os.Stdout}

	for _, option := range options {
		if err := option(u); err != nil {
			return nil, err
		}
	}

	// Call the OS-specific constructor
	return u.osNew()
}

// WithPrefix sets a process name or similar short identifier
func WithPrefix(prefix string) Option {
	return func(u *SFLogger) error {
		u.prefix = prefix
		return nil
	}
}

// WithLogFile sets the log file
func WithLogFile(logfile string) Option {
	return func(u *SFLogger) error {
		u.logfile = logfile
		return nil
	}
}

// WithLogStdout enables or disables console logging
func WithLogStdout(logStdout bool) Option {
	return func(u *SFLogger) error {
		u.logStdout = logStdout
		return nil
	}
}

// WithConsole replaces stdout as the console writer. sfcli sends log lines
// to stderr so that command output can be piped.
func WithConsole(w io.Writer) Option {
	return func(u *SFLogger) error {
		if w == nil {
			return fmt.Errorf("console writer is nil")
		}
		u.console = w
		return nil
	}
}

// WithWindowsEvents enables or disables logging to the windows event log
func WithWindowsEvents(logWindowsEvents bool) Option {
	return func(u *SFLogger) error {
		u.logWindowsEvents = logWindowsEvents
		return nil
	}
}

// WithDebug enables or disables debug logging
func WithDebug(debug bool) Option {
	return func(u *SFLogger) error {
		u.debug = debug
		return nil
	}
}

// WithRetention sets the number of days to retain logs
func WithRetention(retainDays int) Option {
	return func(u *SFLogger) error {
		u.retainDays = retainDays
		return nil
	}
}

// formatMessage formats the log message without a timestamp
func (u *SFLogger) formatMessage(eid uint32, level string, message string, fields interfaces.Fields) string {
	msg := fmt.Sprintf("[%s] %04d %s", level, eid, message)
	if fields != nil {
		if text := fields.ToText(); text != "" {
			msg += ": " + text
		}
	}
	return msg
}

// writeLog rotates if required and hands the line to the OS-specific writer
func (u *SFLogger) writeLog(eid uint32, level string, message string, fields interfaces.Fields) {
	if level == "DEBUG" && !u.debug {
		return
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	if err := u.rotateLogs(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "log rotation error: %s\n", err.Error())
	}

	formatted := u.formatMessage(eid, level, message, fields)
	line := fmt.Sprintf("%s %s %s%s",
		time.Now().Format("2006-01-02 15:04:05"), u.prefix, formatted, lineEnding)

	u.osWrite(level, formatted)

	if u.fileHandle != nil {
		_, _ = u.fileHandle.WriteString(line)
		_ = u.fileHandle.Sync()
	}

	if u.logStdout && u.console != nil {
		_, _ = io.WriteString(u.console, line)
	}
}

// Close flushes and closes the log file
func (u *SFLogger) Close() {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.osClose()
	if u.fileHandle != nil {
		_ = u.fileHandle.Sync()
		_ = u.fileHandle.Close()
		u.fileHandle = nil
	}
}

func (u *SFLogger) Debug(eid uint32, message string, fields interfaces.Fields) {
	u.writeLog(eid, "DEBUG", message, fields)
}

func (u *SFLogger) Info(eid uint32, message string, fields interfaces.Fields) {
	u.writeLog(eid, "INFO", message, fields)
}

func (u *SFLogger) Warning(eid uint32, message string, fields interfaces.Fields) {
	u.writeLog(eid, "WARNING", message, fields)
}

func (u *SFLogger) Error(eid uint32, message string, fields interfaces.Fields) {
	u.writeLog(eid, "ERROR", message, fields)
}

func (u *SFLogger) Fatal(eid uint32, message string, fields interfaces.Fields) {
	u.writeLog(eid, "FATAL", message, fields)
}

func (u *SFLogger) Debugf(eid uint32, format string, v ...any) {
	u.writeLog(eid, "DEBUG", fmt.Sprintf(format, v...), nil)
}

func (u *SFLogger) Infof(eid uint32, format string, v ...any) {
	u.writeLog(eid, "INFO", fmt.Sprintf(format, v...), nil)
}

func (u *SFLogger) Warningf(eid uint32, format string, v ...any) {
	u.writeLog(eid, "WARNING", fmt.Sprintf(format, v...), nil)
}

func (u *SFLogger) Errorf(eid uint32, format string, v ...any) {
	u.writeLog(eid, "ERROR", fmt.Sprintf(format, v...), nil)
}

func (u *SFLogger) Fatalf(eid uint32, format string, v ...any) {
	u.writeLog(eid, "FATAL", fmt.Sprintf(format, v...), nil)
}

// openLogFile prepares the directory, records the date used for rotation,
// and opens the file for appending. On failure console logging is forced.
func (u *SFLogger) openLogFile() error {
	if u.logfile == "" {
		u.logStdout = true
		return nil
	}

	dir := filepath.Dir(u.logfile)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	if fileInfo, err := os.Stat(u.logfile); err == nil {
		u.currentLogDate = fileInfo.ModTime().Format("20060102")
	} else {
		u.currentLogDate = time.Now().Format("20060102")
	}

	fh, err := os.OpenFile(u.logfile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		u.fileHandle = nil
		u.logStdout = true
		return nil
	}
	u.fileHandle = fh
	return nil
}
