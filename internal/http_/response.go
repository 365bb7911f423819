package http_

import (
	"fmt"
	"strconv"
)

const ServerName = "my_http"

type Response struct {
	Version    string
	StatusCode int
	Header     Header
	// Body is nil for HEAD, 304 and 100 responses.
	Body []byte
}

// NewResponse builds a server response, adding Server, Date and, when a body
// is present, Content-Length unless the header already carries them.
func NewResponse(version string, statusCode int, header Header, body []byte) *Response {
	if header == nil {
		header = Header{}
	}
	header.SetDefault("Server", ServerName)
	header.SetDefault("Date", FormatDate(timeDotNow()))
	if body != nil {
		header.SetDefault("Content-Length", strconv.Itoa(len(body)))
	}
	return &Response{
		Version:    version,
		StatusCode: statusCode,
		Header:     header,
		Body:       body,
	}
}

// NewContinue builds the provisional "100 Continue" response: no headers, no body.
func NewContinue(version string) *Response {
	return &Response{Version: version, StatusCode: 100, Header: Header{}}
}

func (r *Response) ReasonPhrase() string {
	return ReasonPhrase(r.StatusCode)
}

func (r *Response) StatusLine() string {
	return fmt.Sprintf("%s %d %s", r.Version, r.StatusCode, r.ReasonPhrase())
}

// IsRedirect reports a 3xx status carrying a Location header.
func (r *Response) IsRedirect() bool {
	return r.StatusCode/100 == 3 && r.Header.Has("Location")
}

func (r *Response) Location() string {
	return r.Header.Get("Location")
}
