package client

import (
	"github.com/stretchr/testify/require"
	"my_http/internal/http_"
	"my_http/internal/wire"
	"net"
	"sync"
	"testing"
)

type received struct {
	method string
	target string
	header http_.Header
	body   []byte
}

type reply struct {
	raw   string
	close bool
}

// fakeServer answers every request with whatever respond returns and records
// what it received.
type fakeServer struct {
	listener net.Listener
	respond  func(received) reply

	mutex    sync.Mutex
	accepted int
	requests []received
}

func newFakeServer(t *testing.T, respond func(received) reply) *fakeServer {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	s := &fakeServer{listener: listener, respond: respond}
	t.Cleanup(func() { listener.Close() })
	go s.serve()
	return s
}

func (s *fakeServer) port() int {
	return s.listener.Addr().(*net.TCPAddr).Port
}

func (s *fakeServer) address(path string) Address {
	return Address{Host: "127.0.0.1", Port: s.port(), Path: path}
}

func (s *fakeServer) serve() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}
		s.mutex.Lock()
		s.accepted++
		s.mutex.Unlock()
		go s.handle(conn)
	}
}

func (s *fakeServer) handle(conn net.Conn) {
	defer conn.Close()
	reader := wire.NewReader(conn)
	for {
		line, err := reader.ReadLine()
		if err != nil {
			return
		}
		method, target, _, err := wire.ParseRequestLine(line)
		if err != nil {
			return
		}
		header, err := reader.ReadHeaders()
		if err != nil {
			return
		}
		request := received{method: method, target: target, header: header}
		if header.Has("Content-Length") {
			if request.body, err = reader.ReadBody(header); err != nil {
				return
			}
		}
		s.mutex.Lock()
		s.requests = append(s.requests, request)
		s.mutex.Unlock()
		r := s.respond(request)
		if _, err := conn.Write([]byte(r.raw)); err != nil || r.close {
			return
		}
	}
}

func (s *fakeServer) stats() (int, []received) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.accepted, append([]received(nil), s.requests...)
}

func (s *fakeServer) targets() []string {
	_, requests := s.stats()
	targets := make([]string, 0, len(requests))
	for _, request := range requests {
		targets = append(targets, request.target)
	}
	return targets
}

func okReply(body string) reply {
	return reply{raw: "HTTP/1.1 200 OK\r\nContent-Type: text/plain\r\nContent-Length: " +
		itoa(len(body)) + "\r\n\r\n" + body}
}
