// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store is the PostgreSQL mirror of the content store. Store
// implements content.Source with the same filtering and ordering as the
// hosted query catalog, and Import replaces the mirror from a snapshot.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

// Store reads and writes the content mirror tables.
type Store struct {
	db *sql.DB
}

// New creates a Store backed by db.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// decodeJSON unmarshals a nullable JSONB column. NULL leaves dst as is.
func decodeJSON(raw []byte, dst any, column string) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode %s: %w", column, err)
	}
	return nil
}

// encodeJSON marshals v for a JSONB column; nil pointers become NULL.
func encodeJSON(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if string(data) == "null" {
		return nil, nil
	}
	return string(data), nil
}
