package model

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrBusy is returned when an operation of the same kind is already in
	// flight. The caller may retry once the current one settles.
	ErrBusy = goerr.New("operation already in flight")

	// ErrClosed is returned when a component has been torn down. Results of
	// calls that were outstanding at teardown are discarded, never applied.
	ErrClosed = goerr.New("component is closed")
)
