package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const (
	// MaxNetworkIDLength is the longest network identifier a radio accepts (SSID limit).
	MaxNetworkIDLength = 32
	// MaxSecretLength is the longest pre-shared secret a radio accepts.
	MaxSecretLength = 64
)

// ErrInvalidSubmission is returned when a submitted payload cannot be turned into Credentials.
var ErrInvalidSubmission = errors.New("invalid credentials submission")

// Credentials are the network identifier and secret used to join a wireless network.
type Credentials struct {
	NetworkID string `json:"network_id"`
	Secret    string `json:"secret"`
}

// DecodeCredentials decodes a serialized submission payload and validates it.
func DecodeCredentials(payload []byte) (Credentials, error) {
	var c Credentials
	if err := json.Unmarshal(payload, &c); err != nil {
		return Credentials{}, fmt.Errorf("%w: %w", ErrInvalidSubmission, err)
	}
	if err := c.Validate(); err != nil {
		return Credentials{}, fmt.Errorf("%w: %w", ErrInvalidSubmission, err)
	}
	return c, nil
}

// Encode serializes the credentials into the submission payload format.
func (c Credentials) Encode() ([]byte, error) {
	return json.Marshal(c)
}

func (c Credentials) Validate() error {
	if strings.TrimSpace(c.NetworkID) == "" {
		return errors.New("network_id is empty")
	}
	if len(c.NetworkID) > MaxNetworkIDLength {
		return fmt.Errorf("network_id is %d bytes, max %d", len(c.NetworkID), MaxNetworkIDLength)
	}
	if len(c.Secret) > MaxSecretLength {
		return fmt.Errorf("secret is %d bytes, max %d", len(c.Secret), MaxSecretLength)
	}
	return nil
}

// IsZero reports whether no network identifier is set.
func (c Credentials) IsZero() bool {
	return c.NetworkID == ""
}

// String keeps the secret out of logs.
func (c Credentials) String() string {
	return fmt.Sprintf("{network_id:%q secret:<redacted>}", c.NetworkID)
}
