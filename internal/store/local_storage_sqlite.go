// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/campus-archive/internal/logger"
)

const localStorageTable = "local_storage"

type sqliteLocalStorage struct {
	db     *DB
	logger *logger.Logger
}

// NewSQLiteLocalStorage returns a LocalStorage backed by the local_storage
// table of db. The schema must already be migrated.
func NewSQLiteLocalStorage(db *DB, log *logger.Logger) LocalStorage {
	return &sqliteLocalStorage{
		db:     db,
		logger: log,
	}
}

func (s *sqliteLocalStorage) GetItem(ctx context.Context, key string) (string, bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := sq.Select("value").
		From(localStorageTable).
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return "", false, fmt.Errorf("%w: %w: %w", ErrLocalStorageUnavailable, ErrBuildingSQLQuery, err)
	}

	var value string
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		log.Err(err).
			Str("func", "sqliteLocalStorage.GetItem").
			Str("key", key).
			Msg("failed to read local storage item")
		return "", false, fmt.Errorf("%w: %w: %w", ErrLocalStorageUnavailable, ErrExecutingQuery, err)
	}

	return value, true, nil
}

func (s *sqliteLocalStorage) SetItem(ctx context.Context, key, value string) error {
	log := logger.FromContext(ctx)

	query, args, err := sq.Insert(localStorageTable).
		Columns("key", "value", "updated_at").
		Values(key, value, time.Now().UTC()).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w: %w", ErrLocalStorageUnavailable, ErrBuildingSQLQuery, err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "sqliteLocalStorage.SetItem").
			Str("key", key).
			Msg("failed to write local storage item")
		return fmt.Errorf("%w: %w: %w", ErrLocalStorageUnavailable, ErrExecutingStatement, err)
	}

	return nil
}

func (s *sqliteLocalStorage) RemoveItem(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	log := logger.FromContext(ctx)

	query, args, err := sq.Delete(localStorageTable).
		Where(sq.Eq{"key": keys}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w: %w", ErrLocalStorageUnavailable, ErrBuildingSQLQuery, err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "sqliteLocalStorage.RemoveItem").
			Strs("keys", keys).
			Msg("failed to remove local storage items")
		return fmt.Errorf("%w: %w: %w", ErrLocalStorageUnavailable, ErrExecutingStatement, err)
	}

	return nil
}

func (s *sqliteLocalStorage) Close() error {
	return s.db.Close()
}
