package store

import "database/sql"

// Store provides access to all storage repositories.
type Store struct {
	db          *sql.DB
	kv          *KVStore
	credentials *CredentialsStore
}

func NewStore(db *sql.DB) *Store {
	kv := NewKVStore(db)
	return &Store{
		db:          db,
		kv:          kv,
		credentials: NewCredentialsStore(kv),
	}
}

func (s *Store) KV() *KVStore {
	return s.kv
}

func (s *Store) Credentials() *CredentialsStore {
	return s.credentials
}

func (s *Store) Close() error {
	return s.db.Close()
}
