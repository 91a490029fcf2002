//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

// Code for operating systems other than windows
//go:build !windows

package ulogger

import (
	"io"
	"os"
	"path/filepath"
	"sync"
)

const lineEnding = "\n"

type SFLogger struct {
	mu               sync.Mutex
	fileHandle       *os.File
	console          io.Writer
	logfile          string
	logStdout        bool
	logWindowsEvents bool // Ignored on non-Windows systems
	debug            bool
	prefix           string
	retainDays       int
	currentLogDate   string
}

func (u *SFLogger) osNew() (*SFLogger, error) {
	if u.logfile != "" {
		u.logfile = filepath.Clean(u.logfile)
	}
	if err := u.openLogFile(); err != nil {
		return nil, err
	}
	return u, nil
}

func (u *SFLogger) osWrite(_ string, _ string) {}

func (u *SFLogger) osClose() {}
