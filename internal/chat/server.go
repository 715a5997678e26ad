package chat

import (
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/wtask/linechat/internal/chat/broker"
	"github.com/wtask/linechat/internal/chat/message"
	"github.com/wtask/linechat/internal/chat/wsline"
	"github.com/wtask/linechat/pkg/background"
)

// Server - chat server over any number of net.Listener.
type Server struct {
	logger       Logger
	writeTimeout time.Duration
	maxLineSize  int

	registry *broker.Registry
	sessions *background.Scope

	// mu guards closing and listeners; accepted connections are registered under it,
	// so Terminate never misses a session.
	mu        sync.Mutex
	closing   bool
	listeners []io.Closer
	terminate sync.Once
}

// Listen - opens TCP listening socket on given address and port.
// Empty address means all interfaces. Fails with *BindError.
func Listen(address string, port uint16) (net.Listener, error) {
	node := net.JoinHostPort(address, strconv.FormatUint(uint64(port), 10))
	listener, err := net.Listen("tcp", node)
	if err != nil {
		return nil, &BindError{Address: node, Err: err}
	}
	return listener, nil
}

// NewServer - creates new chat server ready to serve network listeners.
func NewServer(options ...serverOption) (*Server, error) {
	s := &Server{
		writeTimeout: 30 * time.Second,
		maxLineSize:  message.DefaultMaxLineSize,
		registry:     broker.NewRegistry(),
		sessions:     &background.Scope{},
	}
	if err := setup(s, options...); err != nil {
		return nil, err
	}
	return s, nil
}

// Len - returns number of registered sessions.
func (s *Server) Len() int {
	return s.registry.Len()
}

// Serve - accepts connections from listener and runs a session for each one.
// Blocks until listener is closed. Returns nil when the listener is closed
// by Terminate or by the caller.
func (s *Server) Serve(listener net.Listener) error {
	if listener == nil {
		return errors.New("chat.Server: listener is nil")
	}
	if !s.track(listener) {
		listener.Close()
		return ErrServerClosed
	}
	logInfo(s.logger, "Listen", formatAddress(listener.Addr()))

	var delay time.Duration
	for {
		conn, err := listener.Accept()
		if err != nil {
			if s.isClosing() || errors.Is(err, net.ErrClosed) {
				return nil
			}
			if delay == 0 {
				delay = 5 * time.Millisecond
			} else if delay *= 2; delay > time.Second {
				delay = time.Second
			}
			logError(s.logger, "accept failed, retry in", delay, err)
			time.Sleep(delay)
			continue
		}
		delay = 0

		if _, err := s.Keep(conn); err != nil {
			logError(s.logger, "drop connection", formatAddress(conn.RemoteAddr()), err)
			conn.Close()
		}
	}
}

// ServeWebSocket - serves chat over WebSocket on given listener.
// Blocks like Serve does.
func (s *Server) ServeWebSocket(listener net.Listener) error {
	if listener == nil {
		return errors.New("chat.Server: listener is nil")
	}
	srv := &http.Server{
		Handler: wsline.NewHandler(func(c *wsline.Conn) error {
			_, err := s.Keep(c)
			return err
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}
	if !s.track(srv) {
		listener.Close()
		return ErrServerClosed
	}
	logInfo(s.logger, "Listen WebSocket", formatAddress(listener.Addr()))
	if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		if s.isClosing() {
			return nil
		}
		return err
	}
	return nil
}

// Keep - registers session for accepted connection and runs it in background.
// On error the connection stays open, the caller should close it.
func (s *Server) Keep(conn Conn) (*Session, error) {
	if conn == nil {
		return nil, errors.New("chat.Server: connection is nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closing {
		return nil, ErrServerClosed
	}
	session := newSession(conn, s)
	if err := s.registry.Add(session); err != nil {
		return nil, err
	}
	logInfo(s.logger, sessionTag(session), "accepted")
	s.sessions.Go(session.Run)
	return session, nil
}

// Terminate - closes connections of all sessions, then all listeners, and waits
// up to timeout for the sessions to finish. Concurrent and repeated calls are safe,
// only the first one does the job, others wait for it.
// Returns duration of the call.
func (s *Server) Terminate(timeout time.Duration) time.Duration {
	from := time.Now()
	s.terminate.Do(func() {
		s.mu.Lock()
		s.closing = true
		listeners := s.listeners
		s.listeners = nil
		s.mu.Unlock()

		sessions := s.registry.Snapshot()
		logInfo(s.logger, "terminating", len(sessions), "session(s)")
		for _, m := range sessions {
			if err := m.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
				logError(s.logger, "close session", m.ID(), "failed:", err)
			}
		}
		for _, l := range listeners {
			if err := l.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
				logError(s.logger, "close listener failed:", err)
			}
		}
		if !s.sessions.Wait(timeout) {
			logError(s.logger, s.sessions.Running(), "session(s) still running after", timeout)
		}
	})
	return time.Since(from)
}

func (s *Server) track(l io.Closer) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closing {
		return false
	}
	s.listeners = append(s.listeners, l)
	return true
}

func (s *Server) isClosing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closing
}
