package store

import (
	"context"
	"database/sql"
	"errors"
)

// KVStore is a namespace-scoped string key/value store backed by DuckDB.
type KVStore struct {
	db *sql.DB
}

// NewKVStore creates a new key/value store.
func NewKVStore(db *sql.DB) *KVStore {
	return &KVStore{db: db}
}

// Get returns the value stored under namespace/key or ErrNotFound.
func (s *KVStore) Get(ctx context.Context, namespace, key string) (string, error) {
	var v string
	err := s.db.QueryRowContext(ctx, queryGetValue, namespace, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

// Set stores or replaces the value under namespace/key.
func (s *KVStore) Set(ctx context.Context, namespace, key, value string) error {
	_, err := s.db.ExecContext(ctx, queryUpsertValue, namespace, key, value)
	return err
}

// Delete removes namespace/key. Deleting a missing key is not an error.
func (s *KVStore) Delete(ctx context.Context, namespace, key string) error {
	_, err := s.db.ExecContext(ctx, queryDeleteValue, namespace, key)
	return err
}

// Clear removes every key of a namespace.
func (s *KVStore) Clear(ctx context.Context, namespace string) error {
	_, err := s.db.ExecContext(ctx, queryDeleteNamespace, namespace)
	return err
}
