package http_

import (
	"fmt"
	"my_http/internal/errors_"
	"strings"
)

type Request struct {
	Method  Method
	Target  string
	Version string
	Header  Header
	// Body is nil for GET and HEAD; PUT and POST always carry one, possibly empty.
	Body []byte
}

func NewRequest(method Method, target, version string, header Header, body []byte) (*Request, error) {
	if _, err := ParseMethod(string(method)); err != nil {
		return nil, err
	}
	if version != HTTP10 && version != HTTP11 {
		return nil, errors_.BadRequest(fmt.Sprintf("unsupported version %q", version))
	}
	if target == "" {
		return nil, errors_.BadRequest("empty request target")
	}
	if header == nil {
		header = Header{}
	}
	if method.HasBody() && body == nil {
		return nil, errors_.BadRequest(fmt.Sprintf("%s request without a body", method))
	}
	if !method.HasBody() {
		body = nil
	}
	if version == HTTP11 && !header.Has("Host") {
		return nil, errors_.BadRequest("HTTP/1.1 request without a Host header")
	}
	return &Request{
		Method:  method,
		Target:  target,
		Version: version,
		Header:  header,
		Body:    body,
	}, nil
}

func (r *Request) RequestLine() string {
	return fmt.Sprintf("%s %s %s", r.Method, r.Target, r.Version)
}

// KeepAlive reports whether the connection may carry another exchange after this one.
func (r *Request) KeepAlive() bool {
	return r.Version == HTTP11 && !r.Header.Is("Connection", "close")
}

func (r *Request) String() string {
	builder := strings.Builder{}
	builder.WriteString(r.RequestLine())
	for _, name := range r.Header.Names() {
		builder.WriteString(fmt.Sprintf("\n%s: %s", name, r.Header[name]))
	}
	if r.Body != nil {
		builder.WriteString("\n\n")
		builder.Write(r.Body)
	}
	return builder.String()
}
