package errors

import "fmt"

var (
	ErrWorkerPanic    = fmt.Errorf("worker panic")
	ErrInvalidPayload = fmt.Errorf("invalid event payload")

	ErrInvalidPhase        = fmt.Errorf("operation not allowed in current phase")
	ErrAlreadyStarted      = fmt.Errorf("%w: session already started", ErrInvalidPhase)
	ErrInsufficientPlayers = fmt.Errorf("not enough players to start")
	ErrSessionNotFound     = fmt.Errorf("session not found")
	ErrSessionExists       = fmt.Errorf("session already registered")
	ErrAlreadyEnded        = fmt.Errorf("session already ended")
	ErrAlreadyEnding       = fmt.Errorf("session termination already in progress")
	ErrInvalidSlot         = fmt.Errorf("invalid slot number")

	ErrDeliveryFailure  = fmt.Errorf("delivery failure")
	ErrPermissionDenied = fmt.Errorf("permission denied")
	ErrArtifactNotFound = fmt.Errorf("artifact not found")
	ErrStaleHandle      = fmt.Errorf("stale artifact handle")
	ErrUndeliverable    = fmt.Errorf("recipient unreachable")

	ErrWrongChannel         = fmt.Errorf("control used outside of its session channel")
	ErrUnknownControl       = fmt.Errorf("unknown control")
	ErrNotDesignatedChannel = fmt.Errorf("channel is not designated for sessions")
	ErrMissingRole          = fmt.Errorf("missing required role")

	ErrInvalidClaims    = fmt.Errorf("invalid token claims")
	ErrConnectionClosed = fmt.Errorf("connection closed")
	ErrWriteTimeout     = fmt.Errorf("write timeout")
	ErrInvalidFrame     = fmt.Errorf("invalid frame")
)
