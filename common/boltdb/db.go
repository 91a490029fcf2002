/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Package boltdb is a thin JSON document layer over bbolt. sfcli keeps its
// credentials in it and sfsandbox keeps its catalog, carts, and orders in it.
package boltdb

import (
	"errors"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/UnifyEM/storefront/common/interfaces"
)

var (
	ErrBucketNotFound = errors.New("bucket not found")
	ErrKeyNotFound    = errors.New("key not found")
)

type DB struct {
	db     *bbolt.DB
	logger interfaces.Logger
}

// Open opens (or creates) a Bolt DB at the specified path and creates
// the listed buckets if they do not already exist.
func Open(filePath string, buckets []string, logger interfaces.Logger) (*DB, error) {

	logger.Debugf(900, "opening database: %s", filePath)

	// 0600 means read/write permissions for the current user only.
	// The Timeout option allows Bolt to wait if the file is locked by another process.
	db, err := bbolt.Open(filePath, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	// Create all buckets within a single transaction
	err = db.Update(func(tx *bbolt.Tx) error {
		for _, bucketName := range buckets {
			_, createErr := tx.CreateBucketIfNotExists([]byte(bucketName))
			if createErr != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucketName, createErr)
			}
		}
		return nil
	})
	if err != nil {
		// If creating buckets failed, close the DB to avoid resource leaks.
		_ = db.Close()
		return nil, err
	}

	return &DB{db: db, logger: logger}, nil
}

// Close the database, ignore any errors
func (d *DB) Close() {
	if d == nil || d.db == nil {
		return
	}
	_ = d.db.Close()
}

// Path returns the file backing the database
func (d *DB) Path() string {
	return d.db.Path()
}
