package broker

import "errors"

var (
	// ErrDuplicateMember - returns in case if member is registered already.
	// Normal flow never adds the same member twice, so treat it as a bug of the caller.
	ErrDuplicateMember = errors.New("broker.Registry: member is registered already")

	// ErrNilMember - returns on attempt to register nil member.
	ErrNilMember = errors.New("broker.Registry: member is nil")
)
