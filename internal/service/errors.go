package service

import "errors"

var (
	// ErrNoSession is returned when an engine operation is invoked without
	// an authenticated session.
	ErrNoSession = errors.New("no active session")

	// ErrNoSnapshot is returned when neither the remote store nor the local
	// cache can supply a snapshot during initialization with a configured
	// credential and an unreachable remote.
	ErrNoSnapshot = errors.New("no snapshot available")
)
