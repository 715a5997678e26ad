package chat

import (
	"net"

	"github.com/google/uuid"
)

// newSessionID - generates unique session identity.
func newSessionID() string {
	return uuid.NewString()
}

// formatAddress - formats specified network address for logging purposes.
func formatAddress(a net.Addr) string {
	if a == nil {
		return "unknown"
	}
	return a.Network() + " " + a.String()
}
