package signals

import (
	"context"
	"errors"

	"github.com/kubev2v/wifi-provisioner/internal/models"
)

// ErrSuperseded is returned by AwaitAnswer when a later submission replaced the
// awaited one before the coordinator took it.
var ErrSuperseded = errors.New("submission superseded")

// Answer is the outcome of the connect attempt made for one submission.
type Answer struct {
	// Submission is the ticket returned by Submit for the payload that was tried.
	Submission uint64
	Outcome    models.ConnectionOutcome
}

// Bus is the set of primitives shared by one provisioning session. It is created
// fresh for every session and dropped once the session hands off to the supervisor.
type Bus struct {
	SessionID string
	// Identifier is the fallback access point name advertised by this session.
	Identifier string

	// Scans holds the most recent complete scan snapshot.
	Scans *Mailbox[models.ScanSnapshot]
	// Submissions carries serialized Credentials payloads from listeners.
	Submissions *Mailbox[[]byte]
	// Result carries the answer to the latest connect attempt to whoever waits on it.
	Result *Mailbox[Answer]
	// End fires once the session has provisioned and persisted credentials.
	End *Broadcast
}

func NewBus(sessionID, identifier string) *Bus {
	return &Bus{
		SessionID:   sessionID,
		Identifier:  identifier,
		Scans:       NewMailbox[models.ScanSnapshot](),
		Submissions: NewMailbox[[]byte](),
		Result:      NewMailbox[Answer](),
		End:         NewBroadcast(),
	}
}

// Submit hands a raw payload to the coordinator and returns its ticket. Malformed
// payloads are accepted here and rejected when decoded.
func (b *Bus) Submit(payload []byte) uint64 {
	buf := make([]byte, len(payload))
	copy(buf, payload)
	return b.Submissions.Put(buf)
}

// TakeSubmission consumes the pending payload together with its ticket.
func (b *Bus) TakeSubmission() ([]byte, uint64, bool) {
	return b.Submissions.TryTakeVersion()
}

// Answer publishes the outcome of the attempt made for the given ticket.
func (b *Bus) Answer(submission uint64, outcome models.ConnectionOutcome) {
	b.Result.Put(Answer{Submission: submission, Outcome: outcome})
}

// AwaitAnswer waits for the outcome of the given ticket. Answers to earlier
// submissions are skipped.
func (b *Bus) AwaitAnswer(ctx context.Context, submission uint64) (models.ConnectionOutcome, error) {
	for {
		answer, err := b.Result.Take(ctx)
		if err != nil {
			return models.OutcomeTimedOut, err
		}
		switch {
		case answer.Submission == submission:
			return answer.Outcome, nil
		case answer.Submission > submission:
			return models.OutcomeTimedOut, ErrSuperseded
		}
	}
}

// LastOutcome is the last connect outcome, whether or not it has been consumed.
func (b *Bus) LastOutcome() (models.ConnectionOutcome, bool) {
	answer, ok := b.Result.Load()
	return answer.Outcome, ok
}

// Status is the session as reported to clients.
func (b *Bus) Status() models.SessionStatus {
	status := models.SessionStatus{
		SessionID:   b.SessionID,
		Identifier:  b.Identifier,
		Provisioned: b.End.Published(),
	}
	if outcome, ok := b.LastOutcome(); ok {
		status.LastOutcome = &outcome
	}
	return status
}
