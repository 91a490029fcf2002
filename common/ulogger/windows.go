/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Code for windows
//go:build windows

package ulogger

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sys/windows/svc/eventlog"
)

const lineEnding = "\r\n"

// windowsEID is the event ID for the custom event log source
// Using other event IDs will create messy log entries unless a DLL with
// messages strings is created and registered with the event log source
const windowsEID = 1

type SFLogger struct {
	mu               sync.Mutex
	logger           *eventlog.Log
	fileHandle       *os.File
	console          io.Writer
	logfile          string
	logStdout        bool
	logWindowsEvents bool
	debug            bool
	prefix           string
	retainDays       int
	currentLogDate   string
}

func (u *SFLogger) osNew() (*SFLogger, error) {
	var err error

	if u.logWindowsEvents {
		_ = eventlog.InstallAsEventCreate(u.prefix, eventlog.Info|eventlog.Warning|eventlog.Error)
		u.logger, err = eventlog.Open(u.prefix)
		if err != nil {
			u.logger = nil
		}
	}

	if u.logfile != "" {
		u.logfile = filepath.Clean(u.logfile)
	}
	if err = u.openLogFile(); err != nil {
		return nil, err
	}
	return u, nil
}

// osWrite copies the message to the event log when enabled
func (u *SFLogger) osWrite(level string, formatted string) {
	if u.logger == nil {
		return
	}
	switch level {
	case "DEBUG", "INFO":
		_ = u.logger.Info(windowsEID, formatted)
	case "WARNING":
		_ = u.logger.Warning(windowsEID, formatted)
	case "ERROR", "FATAL":
		_ = u.logger.Error(windowsEID, formatted)
	}
}

func (u *SFLogger) osClose() {
	if u.logger != nil {
		_ = u.logger.Close()
		u.logger = nil
	}
}
