/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package ulogger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// rotateLogs renames the log file to <file>-YYYYMMDD when the date changes.
// The caller must hold u.mu.
func (u *SFLogger) rotateLogs() error {
	if u.logfile == "" || u.fileHandle == nil {
		return nil
	}

	currentDate := time.Now().Format("20060102")
	if u.currentLogDate == currentDate {
		return nil
	}

	previousLogDate := u.currentLogDate

	_ = u.fileHandle.Sync()
	_ = u.fileHandle.Close()
	u.fileHandle = nil

	err := os.Rename(u.logfile, fmt.Sprintf("%s-%s", u.logfile, previousLogDate))
	if err != nil {
		// Keep logging to the same file rather than losing events
		u.currentLogDate = currentDate
		_ = u.reopen()
		return fmt.Errorf("failed to rotate log file: %w", err)
	}

	u.currentLogDate = currentDate
	if err = u.reopen(); err != nil {
		return err
	}

	if err = u.deleteOldLogs(); err != nil {
		return fmt.Errorf("failed to delete old log files: %w", err)
	}
	return nil
}

func (u *SFLogger) reopen() error {
	fh, err := os.OpenFile(u.logfile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		u.logStdout = true
		return fmt.Errorf("failed to open new log file after rotating: %w", err)
	}
	u.fileHandle = fh
	return nil
}

// deleteOldLogs deletes rotated files older than retainDays
func (u *SFLogger) deleteOldLogs() error {
	if u.retainDays <= 1 {
		return nil
	}

	cutoffDate := time.Now().AddDate(0, 0, -u.retainDays).Format("20060102")
	logDir := filepath.Dir(u.logfile)
	prefix := filepath.Base(u.logfile) + "-"

	files, err := os.ReadDir(logDir)
	if err != nil {
		return fmt.Errorf("failed to read log directory: %w", err)
	}

	for _, file := range files {
		name := file.Name()
		if file.IsDir() || !strings.HasPrefix(name, prefix) {
			continue
		}
		fileDate := strings.TrimPrefix(name, prefix)
		if len(fileDate) != 8 {
			continue
		}
		if fileDate < cutoffDate {
			if err = os.Remove(filepath.Join(logDir, name)); err != nil {
				return fmt.Errorf("failed to delete old log file: %w", err)
			}
		}
	}
	return nil
}
