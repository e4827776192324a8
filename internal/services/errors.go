package services

import "errors"

var (
	// ErrAborted is returned when the operator declines a destructive action
	ErrAborted = errors.New("aborted")

	// ErrNoPublicIP is returned when a droplet has no public IPv4 address
	ErrNoPublicIP = errors.New("droplet has no public IPv4 address")

	// ErrPollTimeout is returned when a droplet does not reach the expected
	// state before the poll deadline
	ErrPollTimeout = errors.New("timed out waiting for droplet")
)
