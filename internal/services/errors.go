package services

import (
	"errors"
	"fmt"
)

// Kind classifies a provisioning failure.
type Kind int

const (
	KindRadioInit Kind = iota + 1
	KindRadioConfig
	KindConnectTimeout
	KindStoreRead
	KindStoreWrite
	KindSubmissionDecode
	KindTaskSpawn
)

// Sentinels matched by errors.Is against an *Error of the same kind.
var (
	ErrRadioInit        = errors.New("radio initialization failed")
	ErrRadioConfig      = errors.New("radio configuration failed")
	ErrConnectTimeout   = errors.New("connect timed out")
	ErrStoreRead        = errors.New("credential store read failed")
	ErrStoreWrite       = errors.New("credential store write failed")
	ErrSubmissionDecode = errors.New("submission decode failed")
	ErrTaskSpawn        = errors.New("task spawn failed")

	// ErrRestartTriggered is returned after the device restart hook ran. It is a
	// control-flow exit, not a failure kind.
	ErrRestartTriggered = errors.New("device restart triggered")
)

func (k Kind) sentinel() error {
	switch k {
	case KindRadioInit:
		return ErrRadioInit
	case KindRadioConfig:
		return ErrRadioConfig
	case KindConnectTimeout:
		return ErrConnectTimeout
	case KindStoreRead:
		return ErrStoreRead
	case KindStoreWrite:
		return ErrStoreWrite
	case KindSubmissionDecode:
		return ErrSubmissionDecode
	case KindTaskSpawn:
		return ErrTaskSpawn
	default:
		return errors.New("unknown provisioning error")
	}
}

func (k Kind) String() string {
	return k.sentinel().Error()
}

// Fatal reports whether the kind aborts startup.
func (k Kind) Fatal() bool {
	switch k {
	case KindRadioInit, KindRadioConfig, KindTaskSpawn:
		return true
	default:
		return false
	}
}

// Error is the single error type threaded through the provisioning path.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// Fatal reports whether err carries a fatal kind.
func Fatal(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind.Fatal()
	}
	return false
}

func radioInitError(err error) error      { return &Error{Kind: KindRadioInit, Err: err} }
func radioConfigError(err error) error    { return &Error{Kind: KindRadioConfig, Err: err} }
func connectTimeoutError(err error) error { return &Error{Kind: KindConnectTimeout, Err: err} }
func storeReadError(err error) error      { return &Error{Kind: KindStoreRead, Err: err} }
func storeWriteError(err error) error     { return &Error{Kind: KindStoreWrite, Err: err} }
func decodeError(err error) error         { return &Error{Kind: KindSubmissionDecode, Err: err} }
func taskSpawnError(err error) error      { return &Error{Kind: KindTaskSpawn, Err: err} }
