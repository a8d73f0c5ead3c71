package transport

import "errors"

var (
	// ErrUnsupportedCommand is returned when a switch or transport cannot run a command
	ErrUnsupportedCommand = errors.New("unsupported command")
	// ErrUnknownTransport is returned for a transport name no client exists for
	ErrUnknownTransport = errors.New("unknown transport")
)
