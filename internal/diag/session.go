package diag

import (
	"strconv"
	"sync/atomic"
)

// Session hands out message ids for one macro expansion or analysis run.
// Ids are unique within the session; the counter is shared by all workers.
type Session struct {
	domain string
	next   atomic.Uint64
}

func NewSession(domain string) *Session {
	if domain == "" {
		domain = DefaultDomain
	}
	return &Session{domain: domain}
}

func (s *Session) Domain() string {
	return s.domain
}

// Next returns a fresh id of the form "<domain>.<n>".
func (s *Session) Next() MessageID {
	n := s.next.Add(1)
	return MessageID{Domain: s.domain, ID: strconv.FormatUint(n, 10)}
}

// Named returns an id with a caller chosen name, e.g. "Model.cannotInferType.count".
// Named ids are stable across runs, which keeps `fix --id` usable.
func (s *Session) Named(id string) MessageID {
	return MessageID{Domain: s.domain, ID: id}
}
