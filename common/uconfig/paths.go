/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package uconfig

import (
	"os"
	"path/filepath"
)

// CreateDir attempts to create the specified directory and
// returns a bool to indicate success or failure. If the directory
// already exists that is considered a success.
func CreateDir(path string) bool {
	err := os.MkdirAll(path, 0700)
	return err == nil
}

// CreateSubDir joins dir and subDir and creates the result.
// It returns "" if the directory could not be created.
func CreateSubDir(dir string, subDir string) string {
	newDir := filepath.Join(dir, subDir)
	if CreateDir(newDir) {
		return newDir
	}
	return ""
}

// UserDir returns ~/<name>, creating it if necessary
func UserDir(name string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, name)
	if !CreateDir(dir) {
		return "", os.ErrPermission
	}
	return dir, nil
}
