package chat

import (
	"errors"
	"fmt"
	"time"
)

type serverOption func(s *Server) error

func setup(s *Server, options ...serverOption) error {
	if s == nil {
		return nil
	}
	for _, option := range options {
		if option == nil {
			continue
		}
		if err := option(s); err != nil {
			return err
		}
	}
	return nil
}

// WithLogger - attaches logger to server. Without logger server is silent.
func WithLogger(logger Logger) serverOption {
	return func(s *Server) error {
		if logger == nil {
			return errors.New("chat.WithLogger: logger is nil")
		}
		s.logger = logger
		return nil
	}
}

// WithWriteTimeout - overwrites default timeout for sending a line to a single client.
func WithWriteTimeout(timeout time.Duration) serverOption {
	return func(s *Server) error {
		if timeout <= 0 {
			return fmt.Errorf("chat.WithWriteTimeout: invalid timeout (%v)", timeout)
		}
		s.writeTimeout = timeout
		return nil
	}
}

// WithMaxLineSize - overwrites default limit of incoming line size in bytes.
// A client which sends longer line is disconnected.
func WithMaxLineSize(size int) serverOption {
	return func(s *Server) error {
		if size <= 0 {
			return fmt.Errorf("chat.WithMaxLineSize: invalid size (%d)", size)
		}
		s.maxLineSize = size
		return nil
	}
}
