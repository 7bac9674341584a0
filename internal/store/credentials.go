package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/kubev2v/wifi-provisioner/internal/models"
)

// ErrNotFound is returned when a record is not found.
var ErrNotFound = errors.New("not found")

// Persisted layout of the provisioned credentials.
const (
	NamespaceWifi = "WIFI"
	KeyNetworkID  = "network_id"
	KeySecret     = "secret"
)

// KV is the key/value surface the credentials store is built on.
type KV interface {
	Get(ctx context.Context, namespace, key string) (string, error)
	Set(ctx context.Context, namespace, key, value string) error
	Delete(ctx context.Context, namespace, key string) error
}

// CredentialsStore persists the network credentials as two independent keys.
type CredentialsStore struct {
	kv KV
}

// NewCredentialsStore creates a new credentials store.
func NewCredentialsStore(kv KV) *CredentialsStore {
	return &CredentialsStore{kv: kv}
}

// Get retrieves the stored credentials. A missing or empty key of either half is
// reported as ErrNotFound.
func (s *CredentialsStore) Get(ctx context.Context) (*models.Credentials, error) {
	networkID, err := s.kv.Get(ctx, NamespaceWifi, KeyNetworkID)
	if err != nil {
		return nil, err
	}
	secret, err := s.kv.Get(ctx, NamespaceWifi, KeySecret)
	if err != nil {
		return nil, err
	}
	if networkID == "" || secret == "" {
		return nil, ErrNotFound
	}
	return &models.Credentials{NetworkID: networkID, Secret: secret}, nil
}

// Save writes both keys. There is no multi-key transaction: a failure of one write
// does not prevent the other, and both errors are returned joined.
func (s *CredentialsStore) Save(ctx context.Context, creds *models.Credentials) error {
	var errs []error
	if err := s.kv.Set(ctx, NamespaceWifi, KeyNetworkID, creds.NetworkID); err != nil {
		errs = append(errs, fmt.Errorf("writing %s: %w", KeyNetworkID, err))
	}
	if err := s.kv.Set(ctx, NamespaceWifi, KeySecret, creds.Secret); err != nil {
		errs = append(errs, fmt.Errorf("writing %s: %w", KeySecret, err))
	}
	return errors.Join(errs...)
}

// Delete removes the stored credentials.
func (s *CredentialsStore) Delete(ctx context.Context) error {
	return errors.Join(
		s.kv.Delete(ctx, NamespaceWifi, KeyNetworkID),
		s.kv.Delete(ctx, NamespaceWifi, KeySecret),
	)
}
