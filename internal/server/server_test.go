package server

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io"
	"my_http/internal/errors_"
	"my_http/internal/http_"
	"my_http/internal/wire"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"
)

func startServer(t *testing.T, h *handler) string {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	s := New(h.config)
	done := make(chan error, 1)
	go func() { done <- s.Serve(listener) }()
	t.Cleanup(func() {
		s.Close()
		listener.Close()
		assert.NoError(t, <-done)
	})
	return listener.Addr().String()
}

type rawClient struct {
	conn   net.Conn
	reader *wire.Reader
}

func dial(t *testing.T, addr string) *rawClient {
	conn, err := net.DialTimeout("tcp", addr, time.Second)
	require.NoError(t, err)
	require.NoError(t, conn.SetDeadline(time.Now().Add(5*time.Second)))
	t.Cleanup(func() { conn.Close() })
	return &rawClient{conn: conn, reader: wire.NewReader(conn)}
}

func (c *rawClient) send(t *testing.T, raw string) {
	_, err := c.conn.Write([]byte(raw))
	require.NoError(t, err)
}

func (c *rawClient) receive(t *testing.T, method http_.Method) *http_.Response {
	line, err := c.reader.ReadLine()
	require.NoError(t, err)
	version, statusCode, err := wire.ParseStatusLine(line)
	require.NoError(t, err)
	header, err := c.reader.ReadHeaders()
	require.NoError(t, err)
	response := &http_.Response{Version: version, StatusCode: statusCode, Header: header}
	if statusCode >= 200 && statusCode != 304 && method != http_.HEAD {
		length, err := strconv.Atoi(header.Get("Content-Length"))
		require.NoError(t, err)
		response.Body, err = c.reader.ReadBytes(length)
		require.NoError(t, err)
	}
	return response
}

func (c *rawClient) receiveContinue(t *testing.T) {
	response := c.receive(t, http_.GET)
	assert.Equal(t, "HTTP/1.1 100 Continue", response.StatusLine())
	assert.Empty(t, response.Header)
}

func (c *rawClient) requireClosed(t *testing.T) {
	_, err := c.reader.ReadLine()
	assert.ErrorIs(t, err, wire.ErrConnection)
}

func TestServeGetIndex(t *testing.T) {
	c := dial(t, startServer(t, newTestHandler(t)))
	c.send(t, "GET /1/index.html HTTP/1.1\r\nHost: test\r\n\r\n")
	c.receiveContinue(t)
	response := c.receive(t, http_.GET)
	assert.Equal(t, "HTTP/1.1 200 OK", response.StatusLine())
	assert.Equal(t, "text/html", response.Header.Get("Content-Type"))
	assert.Equal(t, http_.ServerName, response.Header.Get("Server"))
	assert.NotEmpty(t, response.Header.Get("Date"))
	assert.False(t, response.Header.Has("Connection"))
	assert.Equal(t, indexContent, string(response.Body))
}

func TestServePutUpload(t *testing.T) {
	h := newTestHandler(t)
	c := dial(t, startServer(t, h))
	c.send(t, "PUT /upload HTTP/1.1\r\nHost: test\r\nContent-Type: text/plain\r\nContent-Length: 5\r\n\r\nhello")
	c.receiveContinue(t)
	response := c.receive(t, http_.PUT)
	expected := `{"method":"PUT","version":"HTTP/1.1","file":"/upload","message":"hello"}`
	assert.Equal(t, 200, response.StatusCode)
	assert.Equal(t, "application/json", response.Header.Get("Content-Type"))
	assert.Equal(t, expected, string(response.Body))

	entries, err := os.ReadDir(h.config.OutputDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	stored, err := os.ReadFile(filepath.Join(h.config.OutputDir, entries[0].Name(), recordFileName))
	require.NoError(t, err)
	assert.Equal(t, expected, string(stored))
}

func TestServeChunkedPost(t *testing.T) {
	c := dial(t, startServer(t, newTestHandler(t)))
	c.send(t, "POST /form HTTP/1.1\r\nHost: test\r\nTransfer-Encoding: chunked\r\n\r\n"+
		"5\r\nhello\r\n3;ext=1\r\nabc\r\n0\r\nX-Footer: yes\r\n\r\n")
	c.receiveContinue(t)
	response := c.receive(t, http_.POST)
	assert.Equal(t, `{"method":"POST","version":"HTTP/1.1","file":"/form","message":"helloabc"}`, string(response.Body))

	c.send(t, "GET /1/index.html HTTP/1.1\r\nHost: test\r\n\r\n")
	c.receiveContinue(t)
	assert.Equal(t, 200, c.receive(t, http_.GET).StatusCode)
}

func TestServeKeepAlive(t *testing.T) {
	c := dial(t, startServer(t, newTestHandler(t)))
	for _, method := range []http_.Method{http_.GET, http_.HEAD, http_.GET} {
		c.send(t, string(method)+" /1/ HTTP/1.1\r\nHost: test\r\n\r\n")
		c.receiveContinue(t)
		response := c.receive(t, method)
		assert.Equal(t, 200, response.StatusCode)
		assert.Equal(t, "13", response.Header.Get("Content-Length"))
	}
}

func TestServeConditionalGet(t *testing.T) {
	c := dial(t, startServer(t, newTestHandler(t)))
	c.send(t, "GET /1/index.html HTTP/1.1\r\nHost: test\r\nIf-Modified-Since: Sat, 01 Oct 2022 13:00:00 GMT\r\n\r\n")
	c.receiveContinue(t)
	response := c.receive(t, http_.GET)
	assert.Equal(t, "HTTP/1.1 304 Not Modified", response.StatusLine())
	assert.Equal(t, "13", response.Header.Get("Content-Length"))

	c.send(t, "GET /1/index.html HTTP/1.1\r\nHost: test\r\nIf-Modified-Since: soon\r\n\r\n")
	c.receiveContinue(t)
	response = c.receive(t, http_.GET)
	assert.Equal(t, 400, response.StatusCode)
}

func TestServeConnectionClose(t *testing.T) {
	c := dial(t, startServer(t, newTestHandler(t)))
	c.send(t, "GET /1/index.html HTTP/1.1\r\nHost: test\r\nConnection: Close\r\n\r\n")
	c.receiveContinue(t)
	response := c.receive(t, http_.GET)
	assert.Equal(t, 200, response.StatusCode)
	assert.Equal(t, "close", response.Header.Get("Connection"))
	c.requireClosed(t)
}

func TestServeHTTP10(t *testing.T) {
	c := dial(t, startServer(t, newTestHandler(t)))
	c.send(t, "GET /1/index.html HTTP/1.0\r\n\r\n")
	response := c.receive(t, http_.GET)
	assert.Equal(t, "HTTP/1.0 200 OK", response.StatusLine())
	assert.Equal(t, indexContent, string(response.Body))
	c.requireClosed(t)
}

func TestServeProtocolErrors(t *testing.T) {
	tests := []struct {
		name       string
		request    string
		continued  bool
		statusCode int
	}{
		{name: "unsupported method", request: "DELETE /x HTTP/1.1\r\nHost: test\r\nContent-Length: 3\r\n\r\nabc", statusCode: 400},
		{name: "malformed request line", request: "GET /x\r\nHost: test\r\n\r\n", statusCode: 400},
		{name: "missing host", request: "GET /1/ HTTP/1.1\r\n\r\n", continued: true, statusCode: 400},
		{name: "unsupported version", request: "GET /1/ HTTP/2.0\r\nHost: test\r\n\r\n", statusCode: 400},
		{name: "not found", request: "GET /nothing.html HTTP/1.1\r\nHost: test\r\n\r\n", continued: true, statusCode: 404},
	}
	addr := startServer(t, newTestHandler(t))
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := dial(t, addr)
			c.send(t, test.request)
			if test.continued {
				c.receiveContinue(t)
			}
			response := c.receive(t, http_.GET)
			assert.Equal(t, http_.HTTP11, response.Version)
			assert.Equal(t, test.statusCode, response.StatusCode)
			assert.Equal(t, "text/html", response.Header.Get("Content-Type"))
			statusError := &errors_.StatusError{Kind: errors_.KindBadRequest}
			if test.statusCode == 404 {
				statusError.Kind = errors_.KindNotFound
			}
			assert.Equal(t, statusError.HTMLBody(), string(response.Body))

			// the connection survives the error
			c.send(t, "GET /1/index.html HTTP/1.1\r\nHost: test\r\n\r\n")
			c.receiveContinue(t)
			assert.Equal(t, 200, c.receive(t, http_.GET).StatusCode)
		})
	}
}

func TestServeBodyUntilClose(t *testing.T) {
	tests := []struct {
		name     string
		request  string
		version  string
		expected string
	}{
		{
			name:     "HTTP/1.0 body",
			request:  "PUT /upload HTTP/1.0\r\n\r\nhello",
			version:  http_.HTTP10,
			expected: `{"method":"PUT","version":"HTTP/1.0","file":"/upload","message":"hello"}`,
		},
		{
			name:     "no framing headers",
			request:  "POST /form HTTP/1.1\r\nHost: test\r\n\r\n",
			version:  http_.HTTP11,
			expected: `{"method":"POST","version":"HTTP/1.1","file":"/form","message":""}`,
		},
	}
	addr := startServer(t, newTestHandler(t))
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := dial(t, addr)
			c.send(t, test.request)
			require.NoError(t, c.conn.(*net.TCPConn).CloseWrite())
			if test.version == http_.HTTP11 {
				c.receiveContinue(t)
			}
			response := c.receive(t, http_.PUT)
			assert.Equal(t, test.version, response.Version)
			assert.Equal(t, 200, response.StatusCode)
			assert.Equal(t, "close", response.Header.Get("Connection"))
			assert.Equal(t, test.expected, string(response.Body))
			c.requireClosed(t)
		})
	}
}

func TestServeMalformedHeaderCloses(t *testing.T) {
	c := dial(t, startServer(t, newTestHandler(t)))
	c.send(t, "GET /1/ HTTP/1.1\r\nHost: test\r\nno colon here\r\n")
	c.receiveContinue(t)
	response := c.receive(t, http_.GET)
	assert.Equal(t, 400, response.StatusCode)
	assert.Equal(t, "close", response.Header.Get("Connection"))
	c.requireClosed(t)
}

func TestServeReadTimeout(t *testing.T) {
	h := newTestHandler(t)
	h.config.ReadTimeout = 50 * time.Millisecond
	c := dial(t, startServer(t, h))
	c.send(t, "GET /1/ HTTP/1.1\r\nHost: test\r\n\r\n")
	c.receiveContinue(t)
	assert.Equal(t, 200, c.receive(t, http_.GET).StatusCode)
	c.requireClosed(t)
}

func TestServeWriteTimeout(t *testing.T) {
	h := newTestHandler(t)
	h.config.ReadTimeout = 100 * time.Millisecond
	size := 32 << 20
	writeFile(t, filepath.Join(h.config.Root, "large.bin"), string(make([]byte, size)), indexModTime)
	c := dial(t, startServer(t, h))
	c.send(t, "GET /large.bin HTTP/1.0\r\n\r\n")

	// the server must give up on a client that does not read
	time.Sleep(500 * time.Millisecond)
	n, _ := io.Copy(io.Discard, c.conn)
	assert.Less(t, n, int64(size))
}

func TestServerCloseEndsConnections(t *testing.T) {
	h := newTestHandler(t)
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	s := New(h.config)
	done := make(chan error, 1)
	go func() { done <- s.Serve(listener) }()

	c := dial(t, listener.Addr().String())
	c.send(t, "GET /1/ HTTP/1.1\r\nHost: test\r\n\r\n")
	c.receiveContinue(t)
	assert.Equal(t, 200, c.receive(t, http_.GET).StatusCode)

	require.NoError(t, s.Close())
	require.NoError(t, <-done)
	c.requireClosed(t)
}

func TestServerCloseBeforeListen(t *testing.T) {
	assert.NoError(t, New(Config{}).Close())
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("SERVER_ROOT", "www")
	t.Setenv("OUTPUT_DIR_NAME", "")
	t.Setenv("SERVER_ADDR", "127.0.0.1:9090")
	assert.Equal(t, Config{
		Root:        "www",
		OutputDir:   "output",
		Addr:        "127.0.0.1:9090",
		ReadTimeout: DefaultReadTimeout,
	}, ConfigFromEnv())
}

func TestConfigWithDefaults(t *testing.T) {
	assert.Equal(t, Config{
		Root:        "files",
		OutputDir:   "output",
		Addr:        DefaultAddr,
		ReadTimeout: DefaultReadTimeout,
	}, Config{}.withDefaults())
	config := Config{Root: "r", OutputDir: "o", Addr: ":1", ReadTimeout: time.Second}
	assert.Equal(t, config, config.withDefaults())
}
