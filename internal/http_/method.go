package http_

import (
	"fmt"
	"my_http/internal/errors_"
)

type Method string

const (
	GET  Method = "GET"
	HEAD Method = "HEAD"
	PUT  Method = "PUT"
	POST Method = "POST"
)

// Request method names are case-sensitive
// See https://www.rfc-editor.org/rfc/rfc7230#section-3.1.1
var supportedMethods = map[string]Method{
	"GET":  GET,
	"HEAD": HEAD,
	"PUT":  PUT,
	"POST": POST,
}

func ParseMethod(name string) (Method, error) {
	if method, ok := supportedMethods[name]; ok {
		return method, nil
	}
	return "", errors_.BadRequest(fmt.Sprintf("unsupported method %q", name))
}

// HasBody reports whether requests with this method must carry a body.
func (m Method) HasBody() bool {
	return m == PUT || m == POST
}

const (
	HTTP10 = "HTTP/1.0"
	HTTP11 = "HTTP/1.1"
)
