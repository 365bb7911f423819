package client

import (
	"my_http/internal/errors_"
	"my_http/internal/http_"
	"my_http/internal/wire"
)

type responseBuilder struct {
	response *http_.Response
	reader   *wire.Reader
	method   http_.Method
	err      error
}

func newResponseBuilder(reader *wire.Reader, method http_.Method) *responseBuilder {
	return &responseBuilder{response: &http_.Response{}, reader: reader, method: method}
}

// setStatusCode skips any provisional "100 Continue" response.
func (b *responseBuilder) setStatusCode() *responseBuilder {
	for b.err == nil {
		line, err := b.reader.ReadLine()
		if err != nil {
			b.err = errors_.Format(b.setStatusCode, err)
			return b
		}
		version, statusCode, err := wire.ParseStatusLine(line)
		if err != nil {
			b.err = errors_.Format(b.setStatusCode, err)
			return b
		}
		if statusCode != 100 {
			b.response.Version = version
			b.response.StatusCode = statusCode
			return b
		}
		if _, err := b.reader.ReadHeaders(); err != nil {
			b.err = errors_.Format(b.setStatusCode, err)
		}
	}
	return b
}

func (b *responseBuilder) setHeaders() *responseBuilder {
	if b.err != nil {
		return b
	}
	header, err := b.reader.ReadHeaders()
	if err != nil {
		b.err = errors_.Format(b.setHeaders, err)
		return b
	}
	b.response.Header = header
	return b
}

func (b *responseBuilder) setBody() *responseBuilder {
	if b.err != nil || !b.hasBody() {
		return b
	}
	body, err := b.reader.ReadBody(b.response.Header)
	if err != nil {
		b.err = errors_.Format(b.setBody, err)
		return b
	}
	b.response.Body = body
	return b
}

// hasBody follows RFC 7230 section 3.3.3: HEAD responses, 1xx, 204 and 304
// never carry a body, whatever their framing headers say.
func (b *responseBuilder) hasBody() bool {
	statusCode := b.response.StatusCode
	return b.method != http_.HEAD && statusCode >= 200 && statusCode != 204 && statusCode != 304
}

func (b *responseBuilder) build() (*http_.Response, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.response, nil
}
