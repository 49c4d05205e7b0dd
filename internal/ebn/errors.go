package ebn

import "errors"

var (
	// ErrNetworkConfiguration is returned when wiring references a node that
	// is not part of the network, or the structure is otherwise malformed.
	// A network that fails this way must not be run.
	ErrNetworkConfiguration = errors.New("network configuration")

	ErrInvalidParams = errors.New("invalid network parameters")
	ErrInboxFull     = errors.New("network inbox full")
)
