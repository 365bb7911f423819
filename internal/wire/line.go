package wire

import (
	"strconv"
	"strings"
)

// ParseRequestLine splits "METHOD SP target SP version".
func ParseRequestLine(line string) (method, target, version string, err error) {
	fields := strings.Split(line, " ")
	if len(fields) != 3 || fields[0] == "" || fields[1] == "" || !strings.HasPrefix(fields[2], "HTTP/") {
		return "", "", "", malformed("request line %q", line)
	}
	return fields[0], fields[1], fields[2], nil
}

// ParseStatusLine splits "version SP code SP reason-phrase"; the reason phrase is dropped.
func ParseStatusLine(line string) (version string, statusCode int, err error) {
	fields := strings.SplitN(line, " ", 3)
	if len(fields) < 2 || !strings.HasPrefix(fields[0], "HTTP/") || len(fields[1]) != 3 {
		return "", 0, malformed("status line %q", line)
	}
	statusCode, err = strconv.Atoi(fields[1])
	if err != nil || statusCode < 100 {
		return "", 0, malformed("status code in %q", line)
	}
	return fields[0], statusCode, nil
}
