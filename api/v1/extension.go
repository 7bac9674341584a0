package v1

import (
	"github.com/kubev2v/wifi-provisioner/internal/models"
)

func (n *NetworkList) FromModel(snapshot models.ScanSnapshot, ready bool) {
	n.Ready = ready
	n.Networks = make([]Network, 0, len(snapshot))
	for _, net := range snapshot {
		n.Networks = append(n.Networks, Network{NetworkId: net.ID, Signal: net.Signal})
	}
}

func (s *SessionStatus) FromModel(m models.SessionStatus) {
	s.SessionId = m.SessionID
	s.Identifier = m.Identifier
	s.Provisioned = m.Provisioned
	if m.LastOutcome != nil {
		status := NewSetupResultStatus(*m.LastOutcome)
		s.LastOutcome = &status
	}
}

func NewSetupResultStatus(o models.ConnectionOutcome) SetupResultStatus {
	switch o {
	case models.OutcomeConnected:
		return SetupResultStatusConnected
	case models.OutcomeRejected:
		return SetupResultStatusRejected
	default:
		return SetupResultStatusTimedOut
	}
}
