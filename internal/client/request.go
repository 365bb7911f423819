package client

import (
	"my_http/internal/http_"
	"strconv"
)

// Request is a message bound for a given address.
type Request struct {
	*http_.Request
	Address Address
}

// NewRequest builds an HTTP/1.1 request carrying a Host header. PUT and POST
// need a non-nil body.
func NewRequest(method http_.Method, address Address, body []byte) (*Request, error) {
	header := http_.Header{"Host": address.HostHeader()}
	request, err := http_.NewRequest(method, address.Path, http_.HTTP11, header, body)
	if err != nil {
		return nil, err
	}
	return &Request{Request: request, Address: address}, nil
}

// outgoing is the message as written on the wire.
func (r *Request) outgoing() *http_.Request {
	header := r.Header.Clone()
	header.SetDefault("Host", r.Address.HostHeader())
	if r.Method.HasBody() {
		header.SetDefault("Content-Type", "text/plain")
		header.Set("Content-Length", strconv.Itoa(len(r.Body)))
	}
	outgoing := *r.Request
	outgoing.Header = header
	return &outgoing
}
