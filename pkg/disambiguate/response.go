package disambiguate

import (
	"strconv"
	"strings"
)

// Response is a parsed operator reply. It is one of Terminate, SelectIndex
// or Unrecognized.
type Response interface {
	isResponse()
}

// Terminate ends the session without a result for the current query.
type Terminate struct{}

// SelectIndex picks the displayed row at Index.
type SelectIndex struct {
	Index int
}

// Unrecognized is any reply that is neither the termination token nor an
// integer.
type Unrecognized struct {
	Raw string
}

func (Terminate) isResponse()    {}
func (SelectIndex) isResponse()  {}
func (Unrecognized) isResponse() {}

// ParseResponse classifies a raw reply. Surrounding whitespace is ignored.
// SelectIndex is returned for any integer; range checks happen against the
// displayed rows.
func ParseResponse(raw, token string) Response {
	trimmed := strings.TrimSpace(raw)
	if trimmed == token {
		return Terminate{}
	}
	if n, err := strconv.Atoi(trimmed); err == nil {
		return SelectIndex{Index: n}
	}
	return Unrecognized{Raw: raw}
}
