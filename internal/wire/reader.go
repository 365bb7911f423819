package wire

import (
	"bufio"
	"bytes"
	"github.com/pkg/errors"
	"io"
	"my_http/internal/http_"
	"net"
	"os"
	"strconv"
	"strings"
)

var (
	ErrTimeout    = errors.New("read deadline exceeded")
	ErrConnection = errors.New("connection closed or reset by peer")
	ErrMalformed  = errors.New("malformed HTTP message")
)

const maxLineLength = 1 << 16

// Reader decodes lines, headers and bodies from a byte stream. Deadlines
// are the business of whoever owns the underlying connection.
type Reader struct {
	r *bufio.Reader
}

func NewReader(r io.Reader) *Reader {
	if br, ok := r.(*bufio.Reader); ok {
		return &Reader{br}
	}
	return &Reader{bufio.NewReader(r)}
}

func classify(op string, err error) error {
	var netError net.Error
	if errors.Is(err, os.ErrDeadlineExceeded) || (errors.As(err, &netError) && netError.Timeout()) {
		return errors.WithMessagef(ErrTimeout, "%s: %v", op, err)
	}
	return errors.WithMessagef(ErrConnection, "%s: %v", op, err)
}

func malformed(format string, args ...any) error {
	return errors.WithMessagef(ErrMalformed, format, args...)
}

// ReadLine reads up to and including the next CRLF and returns the line without it.
func (r *Reader) ReadLine() (string, error) {
	var line []byte
	for {
		b, err := r.r.ReadByte()
		if err != nil {
			return "", classify("read line", err)
		}
		line = append(line, b)
		n := len(line)
		if n >= 2 && line[n-2] == '\r' && line[n-1] == '\n' {
			return string(line[:n-2]), nil
		}
		if n > maxLineLength {
			return "", malformed("line longer than %d bytes", maxLineLength)
		}
	}
}

// ReadBytes reads n bytes. A stream closed before the first byte yields nil;
// one closed part way yields the bytes read so far. Neither is an error.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n <= 0 {
		return nil, nil
	}
	buf := bytes.Buffer{}
	copied, err := io.CopyN(&buf, r.r, int64(n))
	if err != nil {
		if err != io.EOF {
			return nil, classify("read bytes", err)
		}
		if copied == 0 {
			return nil, nil
		}
	}
	return buf.Bytes(), nil
}

// ReadHeaders reads header lines up to the empty line. A line starting with
// a space or a tab continues the value of the previous header.
func (r *Reader) ReadHeaders() (http_.Header, error) {
	header := http_.Header{}
	var name string
	for {
		line, err := r.ReadLine()
		if err != nil {
			return nil, err
		}
		if line == "" {
			return header, nil
		}
		if line[0] == ' ' || line[0] == '\t' {
			if name == "" {
				return nil, malformed("continuation line %q without a header", line)
			}
			header[name] = strings.TrimSpace(header[name] + " " + strings.TrimSpace(line))
			continue
		}
		colon := strings.IndexByte(line, ':')
		if colon <= 0 {
			return nil, malformed("header line %q", line)
		}
		name = http_.CanonicalName(line[:colon])
		header[name] = strings.TrimSpace(line[colon+1:])
	}
}

// ReadMessage decodes a body framed by chunked transfer coding, by
// Content-Length, or by the peer closing the stream, in that order of
// precedence. Trailing headers of a chunked body are left on the stream.
func (r *Reader) ReadMessage(header http_.Header) ([]byte, error) {
	if IsChunked(header) {
		return r.readChunked()
	}
	if header.Has("Content-Length") {
		value := header.Get("Content-Length")
		length, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || length < 0 {
			return nil, malformed("Content-Length %q", value)
		}
		return r.ReadBytes(length)
	}
	return r.readUntilClose()
}

// ReadBody is ReadMessage followed by merging the trailers of a chunked body
// into header. The result is never nil.
func (r *Reader) ReadBody(header http_.Header) ([]byte, error) {
	body, err := r.ReadMessage(header)
	if err != nil {
		return nil, err
	}
	if IsChunked(header) {
		footers, err := r.ReadHeaders()
		if err != nil {
			return nil, err
		}
		header.Merge(footers)
	}
	if body == nil {
		body = []byte{}
	}
	return body, nil
}

func (r *Reader) readChunked() ([]byte, error) {
	body := bytes.Buffer{}
	for {
		line, err := r.ReadLine()
		if err != nil {
			return nil, err
		}
		size, err := parseChunkSize(line)
		if err != nil {
			return nil, err
		}
		if size == 0 {
			return body.Bytes(), nil
		}
		chunk, err := r.ReadBytes(size)
		if err != nil {
			return nil, err
		}
		if len(chunk) < size {
			return nil, errors.WithMessagef(ErrConnection, "chunk of %d bytes cut after %d", size, len(chunk))
		}
		body.Write(chunk)
		if line, err = r.ReadLine(); err != nil {
			return nil, err
		}
		if line != "" {
			return nil, malformed("missing CRLF after chunk data")
		}
	}
}

func parseChunkSize(line string) (int, error) {
	if i := strings.IndexByte(line, ';'); i >= 0 {
		line = line[:i]
	}
	size, err := strconv.ParseInt(strings.TrimSpace(line), 16, 32)
	if err != nil || size < 0 {
		return 0, malformed("chunk size %q", line)
	}
	return int(size), nil
}

func (r *Reader) readUntilClose() ([]byte, error) {
	body, err := io.ReadAll(r.r)
	if err != nil {
		return nil, classify("read until close", err)
	}
	return body, nil
}

// IsChunked reports whether chunked is the final transfer coding.
func IsChunked(header http_.Header) bool {
	codings := strings.Split(header.Get("Transfer-Encoding"), ",")
	return strings.EqualFold(strings.TrimSpace(codings[len(codings)-1]), "chunked")
}

// EndsWithClose reports whether a body with this header is delimited by the
// peer closing the connection.
func EndsWithClose(header http_.Header) bool {
	return !IsChunked(header) && !header.Has("Content-Length")
}
