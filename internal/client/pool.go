package client

import (
	"my_http/internal/errors_"
	"my_http/internal/http_"
)

// Pool keeps one Connection per host:port and reopens the ones that were
// closed. Not safe for concurrent use.
type Pool struct {
	connections map[string]*Connection
}

func NewPool() *Pool {
	return &Pool{connections: map[string]*Connection{}}
}

func (p *Pool) Execute(request *Request) (*http_.Response, error) {
	key := request.Address.Addr()
	connection, err := p.connection(key, request.Address)
	if err != nil {
		return nil, err
	}
	response, err := connection.Execute(request)
	if connection.addr() != key {
		// a redirect moved the connection to another target
		delete(p.connections, key)
		if previous, ok := p.connections[connection.addr()]; ok {
			previous.Close()
		}
		p.connections[connection.addr()] = connection
	}
	return response, err
}

func (p *Pool) connection(key string, address Address) (*Connection, error) {
	connection, ok := p.connections[key]
	if !ok {
		connection, err := Open(address.Host, address.Port)
		if err != nil {
			return nil, err
		}
		p.connections[key] = connection
		return connection, nil
	}
	if connection.Closed() {
		if err := connection.Initialize(); err != nil {
			return nil, err
		}
	}
	return connection, nil
}

func (p *Pool) Close() {
	for key, connection := range p.connections {
		if err := connection.Close(); err != nil {
			errors_.Log(p.Close, err)
		}
		delete(p.connections, key)
	}
}
