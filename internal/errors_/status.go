package errors_

import (
	"fmt"
	"github.com/pkg/errors"
)

// Kind tags the protocol errors a server turns into an error response.
type Kind int

const (
	KindBadRequest Kind = iota + 1
	KindNotFound
	KindInternal
)

type errorPage struct {
	statusCode  int
	title       string
	description string
}

var errorPages = map[Kind]errorPage{
	KindBadRequest: {400, "Bad Request", "The HTTP request sent was not valid."},
	KindNotFound:   {404, "Not Found", "The page you requested cannot be found on this server."},
	KindInternal:   {500, "Internal Server Error", "The server experienced some issues."},
}

const htmlTemplate = `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>%[1]d - %[2]s</title></head>` +
	`<body><h1>%[1]d - %[2]s</h1><p>%[3]s</p></body></html>`

type StatusError struct {
	Kind Kind
	Err  error
}

func (e *StatusError) StatusCode() int {
	return errorPages[e.Kind].statusCode
}

func (e *StatusError) HTMLBody() string {
	page := errorPages[e.Kind]
	return fmt.Sprintf(htmlTemplate, page.statusCode, page.title, page.description)
}

func (e *StatusError) Error() string {
	page := errorPages[e.Kind]
	if e.Err == nil {
		return fmt.Sprintf("%d %s", page.statusCode, page.title)
	}
	return fmt.Sprintf("%d %s: %v", page.statusCode, page.title, e.Err)
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

func BadRequest(reason string) error {
	return &StatusError{Kind: KindBadRequest, Err: New(reason)}
}

func NotFound(target string) error {
	return &StatusError{Kind: KindNotFound, Err: errors.Errorf("no such resource %q", target)}
}

func Internal(err error) error {
	return &StatusError{Kind: KindInternal, Err: err}
}

// AsStatus reports whether err carries a StatusError somewhere in its chain.
func AsStatus(err error) (*StatusError, bool) {
	var statusError *StatusError
	if errors.As(err, &statusError) {
		return statusError, true
	}
	return nil, false
}
