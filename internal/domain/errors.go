package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidAddress is returned when an Ethereum address is invalid
	ErrInvalidAddress = errors.New("invalid address")

	// ErrInvalidChainID is returned when a chain ID is invalid
	ErrInvalidChainID = errors.New("invalid chain ID")

	// ErrNoAccounts is returned when a network has no signing credential configured
	ErrNoAccounts = errors.New("no accounts configured")

	// ErrNoNetwork is returned when a command needs a network and none was selected
	ErrNoNetwork = errors.New("no network selected")

	// ErrUnlinkedBytecode is returned for artifacts that still carry library placeholders
	ErrUnlinkedBytecode = errors.New("bytecode has unlinked libraries")

	// ErrNoCode is returned when an address holds no contract code
	ErrNoCode = errors.New("no code at address")

	// ErrAborted is returned when the user declines a confirmation prompt
	ErrAborted = errors.New("aborted by user")

	// ErrVerificationFailed is returned when contract verification fails
	ErrVerificationFailed = errors.New("verification failed")
)

// UnknownNameErr is returned when a blueprint or network name does not resolve.
type UnknownNameErr struct {
	Kind        string
	Name        string
	Suggestions []string
}

func (e UnknownNameErr) Error() string {
	msg := fmt.Sprintf("%s '%s' not found", e.Kind, e.Name)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

func (e UnknownNameErr) Unwrap() error {
	return ErrNotFound
}
