package http_

import (
	"net/textproto"
	"sort"
	"strings"
)

// Header holds at most one value per name; names are stored in canonical form.
// Not map[string][]string, unlike net/http.
type Header map[string]string

func CanonicalName(name string) string {
	return textproto.CanonicalMIMEHeaderKey(strings.TrimSpace(name))
}

func (h Header) Get(name string) string {
	return h[CanonicalName(name)]
}

func (h Header) Has(name string) bool {
	_, ok := h[CanonicalName(name)]
	return ok
}

func (h Header) Set(name, value string) {
	h[CanonicalName(name)] = value
}

// SetDefault sets the value only if the header is not present yet.
func (h Header) SetDefault(name, value string) {
	if !h.Has(name) {
		h.Set(name, value)
	}
}

func (h Header) Del(name string) {
	delete(h, CanonicalName(name))
}

// Is compares the header value case-insensitively.
func (h Header) Is(name, value string) bool {
	return strings.EqualFold(strings.TrimSpace(h.Get(name)), value)
}

// Merge copies every entry of other into h, overwriting existing values.
func (h Header) Merge(other Header) {
	for name, value := range other {
		h.Set(name, value)
	}
}

func (h Header) Clone() Header {
	clone := make(Header, len(h))
	for name, value := range h {
		clone[name] = value
	}
	return clone
}

// Names returns the header names in lexical order.
func (h Header) Names() []string {
	names := make([]string, 0, len(h))
	for name := range h {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
