package state

import (
	"time"
)

// newLocalEnv creates a new LocalEnv instance with default values, the rest
// is filled in by the application Before hook.
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start: time.Now(),
	}
}
