package engine

import (
	"crypto/rand"
	"fmt"
)

// generateRunID creates a short random hex ID used to correlate log lines
// from a single engine lifetime.
func generateRunID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		// Fallback -- should never happen.
		return fmt.Sprintf("run-%d", b)
	}
	return fmt.Sprintf("%x", b)
}
