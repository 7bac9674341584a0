// Package v1 holds the provisioning portal API types and routing.
package v1

// Network defines model for Network.
type Network struct {
	NetworkId string `json:"network_id"`
	Signal    int    `json:"signal"`
}

// NetworkList defines model for NetworkList.
type NetworkList struct {
	Networks []Network `json:"networks"`
	// Ready is false until the first scan completed.
	Ready bool `json:"ready"`
}

// SetupResultStatus defines model for SetupResult.Status.
type SetupResultStatus string

const (
	SetupResultStatusAccepted  SetupResultStatus = "accepted"
	SetupResultStatusConnected SetupResultStatus = "connected"
	SetupResultStatusTimedOut  SetupResultStatus = "timed_out"
	SetupResultStatusRejected  SetupResultStatus = "rejected"
)

// SetupResult defines model for SetupResult.
type SetupResult struct {
	SessionId string            `json:"session_id"`
	Status    SetupResultStatus `json:"status"`
}

// SessionStatus defines model for SessionStatus.
type SessionStatus struct {
	SessionId   string             `json:"session_id"`
	Identifier  string             `json:"identifier"`
	LastOutcome *SetupResultStatus `json:"last_outcome,omitempty"`
	Provisioned bool               `json:"provisioned"`
}

// Error defines model for Error.
type Error struct {
	Error string `json:"error"`
}

// GetNetworksParamsFormat defines parameters for GetNetworks.
type GetNetworksParamsFormat string

const (
	GetNetworksParamsFormatJson GetNetworksParamsFormat = "json"
	GetNetworksParamsFormatText GetNetworksParamsFormat = "text"
)

// GetNetworksParams defines parameters for GetNetworks.
type GetNetworksParams struct {
	Format *GetNetworksParamsFormat `form:"format,omitempty"`
}

// PostSetupParams defines parameters for PostSetup.
type PostSetupParams struct {
	Wait *bool `form:"wait,omitempty"`
}
