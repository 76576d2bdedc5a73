package monitor

import "errors"

// ErrAlreadyRunning is returned when Run is called on a monitor whose
// loop is still active.
var ErrAlreadyRunning = errors.New("monitor already running")
