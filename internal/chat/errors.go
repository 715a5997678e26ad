package chat

import (
	"errors"
	"fmt"

	"github.com/wtask/linechat/internal/chat/broker"
)

var (
	// ErrServerClosed - returns when server is terminating and does not accept connections.
	// The connection passed in is not closed, the caller owns it.
	ErrServerClosed = errors.New("chat.Server: server is closed")

	// ErrDuplicateSession - returns if the session is registered already.
	ErrDuplicateSession = broker.ErrDuplicateMember
)

// BindError - listening socket can not be opened on requested address.
type BindError struct {
	Address string
	Err     error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("chat: unable to listen %s: %v", e.Address, e.Err)
}

func (e *BindError) Unwrap() error {
	return e.Err
}
