package client

import (
	"fmt"
	"my_http/internal/errors_"
	"my_http/internal/http_"
	"my_http/internal/wire"
	"net"
	"strconv"
	"time"
)

const (
	maxRedirects   = 10
	DefaultTimeout = 10 * time.Second
)

var ErrClosed = errors_.New("connection is closed")

// Connection carries one request at a time to a single host and port, and
// keeps its socket open between requests until either side asks to close it.
type Connection struct {
	host string
	port int
	// Timeout bounds dialing and each exchange, writing included.
	Timeout time.Duration

	conn      net.Conn
	reader    *wire.Reader
	writer    *wire.Writer
	closed    bool
	redirects int
}

func Open(host string, port int) (*Connection, error) {
	c := &Connection{host: host, port: port, Timeout: DefaultTimeout}
	if err := c.Initialize(); err != nil {
		return nil, err
	}
	return c, nil
}

// Initialize dials a fresh socket, replacing the current one if any.
func (c *Connection) Initialize() error {
	if c.conn != nil {
		c.closeSocket()
	}
	conn, err := netDialTimeout("tcp", c.addr(), c.Timeout)
	if err != nil {
		c.closed = true
		return errors_.Format(c.Initialize, err)
	}
	c.conn = conn
	c.reader = wire.NewReader(conn)
	c.writer = wire.NewWriter(conn)
	c.closed = false
	return nil
}

func (c *Connection) Host() string {
	return c.host
}

func (c *Connection) Port() int {
	return c.port
}

func (c *Connection) Closed() bool {
	return c.closed
}

func (c *Connection) addr() string {
	return net.JoinHostPort(c.host, strconv.Itoa(c.port))
}

// Execute sends the request and returns the final response, following up to
// ten redirects. A redirect that points back at the same host and path, or
// one past the limit, is returned as is.
func (c *Connection) Execute(request *Request) (*http_.Response, error) {
	if c.closed {
		return nil, ErrClosed
	}
	defer func() { c.redirects = 0 }()
	for {
		response, err := c.execute(request)
		if err != nil {
			return nil, err
		}
		next := c.nextRequest(request, response)
		if next == nil {
			return response, nil
		}
		c.redirects++
		errors_.Info(c.Execute, fmt.Sprintf("%d %s: redirecting to %s", response.StatusCode, request.Address, next.Address))
		request = next
	}
}

func (c *Connection) execute(request *Request) (*http_.Response, error) {
	if c.host != request.Address.Host || c.port != request.Address.Port {
		c.Close()
		c.host, c.port = request.Address.Host, request.Address.Port
	}
	if c.closed {
		if err := c.Initialize(); err != nil {
			return nil, err
		}
	}
	return c.exchange(request)
}

func (c *Connection) exchange(request *Request) (*http_.Response, error) {
	if err := c.conn.SetDeadline(timeDotNow().Add(c.Timeout)); err != nil {
		c.Close()
		return nil, errors_.Format(c.exchange, err)
	}
	if err := c.writer.WriteRequest(request.outgoing()); err != nil {
		c.Close()
		return nil, errors_.Format(c.exchange, err)
	}
	response, err := newResponseBuilder(c.reader, request.Method).
		setStatusCode().
		setHeaders().
		setBody().
		build()
	if err != nil {
		c.Close()
		return nil, errors_.Format(c.exchange, err)
	}
	if c.mustClose(request, response) {
		c.Close()
	}
	return response, nil
}

func (c *Connection) mustClose(request *Request, response *http_.Response) bool {
	if response.Header.Is("Connection", "close") || request.Version == http_.HTTP10 {
		return true
	}
	// the body, if any, ran until the server closed the stream
	return response.Body != nil && wire.EndsWithClose(response.Header)
}

func (c *Connection) nextRequest(request *Request, response *http_.Response) *Request {
	if !response.IsRedirect() {
		c.redirects = 0
		return nil
	}
	if c.redirects >= maxRedirects {
		return nil
	}
	target, err := request.Address.Resolve(response.Location())
	if err != nil {
		errors_.Log(c.nextRequest, err)
		return nil
	}
	if target.Host == request.Address.Host && target.Path == request.Address.Path {
		return nil
	}
	method := http_.GET
	if request.Method == http_.HEAD {
		method = http_.HEAD
	}
	next, err := NewRequest(method, target, nil)
	if err != nil {
		errors_.Log(c.nextRequest, err)
		return nil
	}
	return next
}

// Close marks the connection closed and closes its socket; Initialize makes
// it usable again.
func (c *Connection) Close() error {
	c.closed = true
	if c.conn == nil {
		return nil
	}
	err := c.closeSocket()
	errors_.Info(c.Close, fmt.Sprintf("connection to %s closed", c.addr()))
	return err
}

func (c *Connection) closeSocket() error {
	err := c.conn.Close()
	c.conn, c.reader, c.writer = nil, nil, nil
	return err
}
