package server

import (
	"github.com/pkg/errors"
	"my_http/internal/errors_"
	"net"
	"sync"
)

// Server accepts connections and runs one handler goroutine per connection.
type Server struct {
	config Config

	mutex    sync.Mutex
	listener net.Listener
	conns    map[net.Conn]struct{}
	closed   bool
	handlers sync.WaitGroup
}

func New(config Config) *Server {
	return &Server{config: config.withDefaults(), conns: map[net.Conn]struct{}{}}
}

func (s *Server) ListenAndServe() error {
	listener, err := netListen("tcp", s.config.Addr)
	if err != nil {
		return errors_.Format(s.ListenAndServe, err)
	}
	errors_.Info(s.ListenAndServe, "serving "+s.config.Root+" on "+listener.Addr().String())
	return s.Serve(listener)
}

// Serve blocks until the listener is closed, which is not reported as an error.
func (s *Server) Serve(listener net.Listener) error {
	s.mutex.Lock()
	if s.closed {
		s.mutex.Unlock()
		listener.Close()
		return nil
	}
	s.listener = listener
	s.mutex.Unlock()
	for {
		conn, err := listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			errors_.Log(s.Serve, err)
			continue
		}
		if !s.track(conn) {
			conn.Close()
			return nil
		}
		go func() {
			defer s.untrack(conn)
			newHandler(conn, s.config).run()
		}()
	}
}

func (s *Server) track(conn net.Conn) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.closed {
		return false
	}
	s.conns[conn] = struct{}{}
	s.handlers.Add(1)
	return true
}

func (s *Server) untrack(conn net.Conn) {
	s.mutex.Lock()
	delete(s.conns, conn)
	s.mutex.Unlock()
	s.handlers.Done()
}

// Close stops accepting connections, closes the open ones and waits for
// their handlers to return.
func (s *Server) Close() error {
	s.mutex.Lock()
	s.closed = true
	var err error
	if s.listener != nil {
		err = s.listener.Close()
	}
	for conn := range s.conns {
		conn.Close()
	}
	s.mutex.Unlock()
	s.handlers.Wait()
	return err
}
