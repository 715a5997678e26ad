package chat

import (
	"errors"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/wtask/linechat/internal/chat/broker"
	"github.com/wtask/linechat/internal/chat/message"
)

// Conn - bidirectional line stream of a single client.
// net.Conn satisfies it.
type Conn interface {
	io.ReadWriteCloser
	RemoteAddr() net.Addr
	SetWriteDeadline(t time.Time) error
}

// PartReason - describes why the session has ended.
type PartReason int

const (
	_ PartReason = iota
	// PartLeft - client has sent the leave keyword.
	PartLeft
	// PartDisconnected - client has closed the stream.
	PartDisconnected
	// PartFailed - reading from the client has failed.
	PartFailed
	// PartTerminated - server has closed the connection.
	PartTerminated
)

func (r PartReason) String() string {
	switch r {
	case PartLeft:
		return "left"
	case PartDisconnected:
		return "disconnected"
	case PartFailed:
		return "failed"
	case PartTerminated:
		return "terminated"
	default:
		return "unknown part reason"
	}
}

// Session - handles single client connection from accept till close.
type Session struct {
	id           string
	conn         Conn
	registry     *broker.Registry
	logger       Logger
	writeTimeout time.Duration
	maxLineSize  int

	// guards writes into conn, several broadcasters may address the session at once
	wmu sync.Mutex

	mu       sync.Mutex
	nickname string
	leftChat bool

	terminated atomic.Bool
	closeOnce  sync.Once
	closeErr   error
	done       chan struct{}
}

func newSession(conn Conn, s *Server) *Session {
	return &Session{
		id:           newSessionID(),
		conn:         conn,
		registry:     s.registry,
		logger:       s.logger,
		writeTimeout: s.writeTimeout,
		maxLineSize:  s.maxLineSize,
		done:         make(chan struct{}),
	}
}

// ID - returns unique session identity.
func (s *Session) ID() string {
	return s.id
}

// Nickname - returns assigned nickname, empty until handshake is done.
func (s *Session) Nickname() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nickname
}

// LeftChat - reports whether client has sent the leave keyword.
func (s *Session) LeftChat() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.leftChat
}

// Done - closed after the session is deregistered and its connection is closed.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Send - writes single line to the client.
func (s *Session) Send(line string) error {
	s.wmu.Lock()
	defer s.wmu.Unlock()
	if s.writeTimeout > 0 {
		if err := s.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(s.conn, line+"\n")
	return err
}

// Close - closes client connection, so blocked read of the session fails and
// the session finishes. Safe to call several times and concurrently.
func (s *Session) Close() error {
	s.terminated.Store(true)
	return s.release()
}

func (s *Session) release() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.conn.Close()
	})
	return s.closeErr
}

// Run - serves the client until it leaves, disconnects or the connection is closed.
// The session is deregistered and its connection is closed on return whatever the cause is.
func (s *Session) Run() {
	reason := PartFailed
	defer func() {
		s.finish(reason)
	}()

	lines := message.NewReader(s.conn, s.maxLineSize)
	nickname, err := s.handshake(lines)
	if err != nil {
		reason = s.partReason(err)
		logInfo(s.logger, sessionTag(s), "handshake is interrupted:", err)
		return
	}
	logInfo(s.logger, sessionTag(s), "nickname is set:", nickname)

	s.broadcast(message.Joined(nickname))
	reason = s.receive(lines, nickname)
	s.broadcast(message.Left(nickname))
}

func (s *Session) handshake(lines *message.Reader) (string, error) {
	if err := s.Send(message.NicknamePrompt()); err != nil {
		return "", err
	}
	reply, err := lines.ReadLine()
	if err != nil {
		return "", err
	}
	nickname, anonymous := message.Nickname(reply)
	if anonymous {
		if err := s.Send(message.NoNickname()); err != nil {
			return "", err
		}
	}
	s.mu.Lock()
	s.nickname = nickname
	s.mu.Unlock()
	for _, line := range []string{message.NicknameSet(nickname), message.Welcome()} {
		if err := s.Send(line); err != nil {
			return "", err
		}
	}
	return nickname, nil
}

func (s *Session) receive(lines *message.Reader, nickname string) PartReason {
	for {
		line, err := lines.ReadLine()
		if err != nil {
			return s.partReason(err)
		}
		if line == message.LeaveKeyword {
			s.mu.Lock()
			s.leftChat = true
			s.mu.Unlock()
			return PartLeft
		}
		s.broadcast(message.Chat(nickname, line))
	}
}

func (s *Session) broadcast(line string) {
	d := s.registry.Broadcast(line)
	if s.terminated.Load() {
		// peers are being closed by Terminate, failures are expected
		return
	}
	for id, err := range d.Failed {
		logError(s.logger, sessionTag(s), "broadcast to", id, "failed:", err)
	}
}

func (s *Session) partReason(err error) PartReason {
	switch {
	case s.terminated.Load():
		return PartTerminated
	case errors.Is(err, io.EOF):
		return PartDisconnected
	default:
		return PartFailed
	}
}

func (s *Session) finish(reason PartReason) {
	s.registry.Remove(s)
	if err := s.release(); err != nil && !errors.Is(err, net.ErrClosed) {
		logError(s.logger, sessionTag(s), "close failed:", err)
	}
	logInfo(s.logger, sessionTag(s), "session is closed:", reason)
	close(s.done)
}
