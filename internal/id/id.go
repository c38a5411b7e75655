package id

import "github.com/google/uuid"

// New returns a random UUID string used for test results and sessions.
func New() string {
	return uuid.NewString()
}
