package client

import (
	"github.com/pkg/errors"
	"net"
	"path"
	"strconv"
	"strings"
)

const DefaultPort = 80

// Address is where a client request goes: host, port and request path.
type Address struct {
	Host string
	Port int
	Path string
}

var schemePrefixes = []string{"http://", "https://", "//"}

// ParseAddress reads [http://|https://|//]host[:port][/path]. The port
// defaults to 80 and the path to "/".
func ParseAddress(address string) (Address, error) {
	for _, prefix := range schemePrefixes {
		if strings.HasPrefix(address, prefix) {
			address = address[len(prefix):]
			break
		}
	}
	hostPort, requestPath := address, "/"
	if i := strings.IndexByte(address, '/'); i >= 0 {
		hostPort, requestPath = address[:i], address[i:]
	}
	host, port := hostPort, DefaultPort
	if i := strings.LastIndexByte(hostPort, ':'); i >= 0 {
		parsedPort, err := strconv.Atoi(hostPort[i+1:])
		if err != nil || parsedPort <= 0 || parsedPort > 65535 {
			return Address{}, errors.Errorf("invalid port in address %q", address)
		}
		host, port = hostPort[:i], parsedPort
	}
	if host == "" {
		return Address{}, errors.Errorf("no host in address %q", address)
	}
	return Address{Host: host, Port: port, Path: requestPath}, nil
}

// Resolve returns the address a Location header value points to, relative to a.
func (a Address) Resolve(location string) (Address, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return Address{}, errors.New("empty location")
	}
	for _, prefix := range schemePrefixes {
		if strings.HasPrefix(location, prefix) {
			return ParseAddress(location)
		}
	}
	resolved := a
	if strings.HasPrefix(location, "/") {
		resolved.Path = location
	} else {
		resolved.Path = path.Join(path.Dir(a.Path), location)
		// Join drops the trailing slash that names a directory
		if strings.HasSuffix(location, "/") && !strings.HasSuffix(resolved.Path, "/") {
			resolved.Path += "/"
		}
	}
	return resolved, nil
}

// Addr is the host:port pair to dial.
func (a Address) Addr() string {
	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// HostHeader omits the port when it is the default one.
func (a Address) HostHeader() string {
	if a.Port == DefaultPort {
		return a.Host
	}
	return a.Addr()
}

func (a Address) String() string {
	return a.HostHeader() + a.Path
}
