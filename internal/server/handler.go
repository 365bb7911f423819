package server

import (
	"github.com/pkg/errors"
	"my_http/internal/errors_"
	"my_http/internal/http_"
	"my_http/internal/wire"
	"net"
)

// handler serves the requests of one accepted connection, one at a time,
// until the client asks to close, the read deadline expires or the socket
// fails.
type handler struct {
	conn   net.Conn
	reader *wire.Reader
	writer *wire.Writer
	config Config

	// version and keepAlive describe the request being served, as far as
	// it could be read.
	version   string
	keepAlive bool
	closed    bool
}

func newHandler(conn net.Conn, config Config) *handler {
	return &handler{
		conn:   conn,
		reader: wire.NewReader(conn),
		writer: wire.NewWriter(conn),
		config: config,
	}
}

func (h *handler) run() {
	defer func() {
		if r := recover(); r != nil {
			errors_.Log(h.run, errors.Errorf("panic: %v", r))
		}
		h.close()
	}()
	errors_.Info(h.run, "accepted "+h.conn.RemoteAddr().String())
	for !h.closed {
		if err := h.conn.SetDeadline(timeDotNow().Add(h.config.ReadTimeout)); err != nil {
			errors_.Log(h.run, err)
			return
		}
		if err := h.serveNext(); err != nil {
			if errors.Is(err, wire.ErrTimeout) || errors.Is(err, wire.ErrConnection) {
				errors_.Info(h.run, err.Error())
			} else {
				errors_.Log(h.run, err)
			}
			return
		}
	}
}

// serveNext answers one request. Protocol errors become error responses;
// the returned error means the connection is unusable.
func (h *handler) serveNext() error {
	request, err := h.readRequest()
	if errors.Is(err, wire.ErrMalformed) {
		// the rest of the message cannot be located on the stream
		h.keepAlive = false
		err = errors_.BadRequest(err.Error())
	}
	var response *http_.Response
	if err == nil {
		errors_.Info(h.serveNext, request.RequestLine())
		response, err = h.handle(request)
	}
	if err != nil {
		statusError, ok := errors_.AsStatus(err)
		if !ok {
			return err
		}
		errors_.Log(h.serveNext, err)
		response = errorResponse(h.version, statusError)
	}
	if !h.keepAlive {
		response.Header.Set("Connection", "close")
		h.closed = true
	}
	return h.writer.WriteResponse(response)
}

func (h *handler) readRequest() (*http_.Request, error) {
	h.version, h.keepAlive = http_.HTTP11, false
	line, err := h.reader.ReadLine()
	if err != nil {
		return nil, err
	}
	methodName, target, version, lineErr := wire.ParseRequestLine(line)
	if version == http_.HTTP10 || version == http_.HTTP11 {
		h.version = version
	}
	method, methodErr := http_.ParseMethod(methodName)
	valid := lineErr == nil && methodErr == nil
	if valid && version == http_.HTTP11 {
		if err := h.writer.WriteResponse(http_.NewContinue(version)); err != nil {
			return nil, err
		}
	}
	header, err := h.reader.ReadHeaders()
	if err != nil {
		return nil, err
	}
	h.keepAlive = h.version == http_.HTTP11 && !header.Is("Connection", "close")
	if !valid {
		h.drain(header)
		if lineErr != nil {
			return nil, errors_.BadRequest(lineErr.Error())
		}
		return nil, methodErr
	}
	var body []byte
	if method.HasBody() {
		if body, err = h.reader.ReadBody(header); err != nil {
			return nil, err
		}
		if wire.EndsWithClose(header) {
			// the client half-closed the stream to end the body
			h.keepAlive = false
		}
	}
	return http_.NewRequest(method, target, version, header, body)
}

// drain skips the framed body of a rejected request. A body delimited by the
// connection closing cannot be skipped, so such a request ends the connection.
func (h *handler) drain(header http_.Header) {
	if wire.EndsWithClose(header) {
		return
	}
	if _, err := h.reader.ReadBody(header); err != nil {
		h.keepAlive = false
	}
}

func (h *handler) handle(request *http_.Request) (*http_.Response, error) {
	switch request.Method {
	case http_.GET, http_.HEAD:
		return h.serveFile(request)
	default:
		return h.storeRecord(request)
	}
}

func errorResponse(version string, statusError *errors_.StatusError) *http_.Response {
	header := http_.Header{"Content-Type": "text/html"}
	return http_.NewResponse(version, statusError.StatusCode(), header, []byte(statusError.HTMLBody()))
}

func (h *handler) close() {
	if err := h.conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		errors_.Log(h.close, err)
		return
	}
	errors_.Info(h.close, "closed "+h.conn.RemoteAddr().String())
}
