package wire

import (
	"bufio"
	"io"
	"my_http/internal/errors_"
	"my_http/internal/http_"
)

type bufferedWriterInterface interface {
	WriteString(string) (int, error)
	Write(p []byte) (n int, err error)
	Flush() error
}

// Writer encodes one message at a time and flushes it as a whole.
type Writer struct {
	bufferedWriterInterface
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{bufio.NewWriter(w)}
}

const (
	crlf       = "\r\n"
	colonSpace = ": "
)

func (w *Writer) WriteRequest(request *http_.Request) error {
	return w.writeMessage(request.RequestLine(), request.Header, request.Body)
}

func (w *Writer) WriteResponse(response *http_.Response) error {
	return w.writeMessage(response.StatusLine(), response.Header, response.Body)
}

func (w *Writer) writeMessage(startLine string, header http_.Header, body []byte) error {
	if err := w.writeLine(startLine); err != nil {
		return errors_.Format(w.writeMessage, err)
	}
	if err := w.writeHeaders(header); err != nil {
		return errors_.Format(w.writeMessage, err)
	}
	if err := w.writeBody(body); err != nil {
		return errors_.Format(w.writeMessage, err)
	}
	if err := w.Flush(); err != nil {
		return errors_.Format(w.writeMessage, err)
	}
	return nil
}

func (w *Writer) writeLine(line string) error {
	if _, err := w.WriteString(line + crlf); err != nil {
		return errors_.Format(w.writeLine, err)
	}
	return nil
}

func (w *Writer) writeHeaders(header http_.Header) error {
	for _, name := range header.Names() {
		if _, err := w.WriteString(name + colonSpace + header[name] + crlf); err != nil {
			return errors_.Format(w.writeHeaders, err)
		}
	}
	if _, err := w.WriteString(crlf); err != nil {
		return errors_.Format(w.writeHeaders, err)
	}
	return nil
}

func (w *Writer) writeBody(body []byte) error {
	if len(body) == 0 {
		return nil
	}
	if _, err := w.Write(body); err != nil {
		return errors_.Format(w.writeBody, err)
	}
	return nil
}
