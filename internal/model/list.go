package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// List is an ordered collection of todos, in insertion order.
type List []Todo

// Find returns the position of the todo with the given id, or -1.
func (l List) Find(id uuid.UUID) int {
	for i, t := range l {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Stats counts done and pending todos.
func (l List) Stats() (done, pending int) {
	for _, t := range l {
		if t.Done {
			done++
		} else {
			pending++
		}
	}
	return
}

var (
	ErrIndexOutOfRange = errors.New("index out of bounds")
	ErrInvalidRef      = errors.New("invalid reference")
	ErrAmbiguousRef    = errors.New("reference matches several todos")
)

const minPrefixLen = 4

// Ref is what a user types to point at a todo: a 1-based index,
// a full identifier or a hex prefix of one. A long enough number carries
// both Index and Prefix.
type Ref struct {
	Index  int
	ID     uuid.UUID
	Prefix string
}

func (r Ref) String() string {
	switch {
	case r.Index > 0:
		return strconv.Itoa(r.Index)
	case r.ID != uuid.Nil:
		return r.ID.String()
	case r.Prefix != "":
		return r.Prefix
	}
	return strconv.Itoa(r.Index)
}

// ParseRef classifies s. All-digit input is an index, and also an id prefix
// once it is long enough. A leading # always means an id. Anything else must
// be a UUID or a hex prefix of at least four characters.
func ParseRef(s string) (Ref, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Ref{}, fmt.Errorf("%w: empty", ErrInvalidRef)
	}
	if rest, ok := strings.CutPrefix(s, "#"); ok {
		return parseID(rest)
	}
	if isDigits(s) {
		var r Ref
		if len(s) >= minPrefixLen {
			r.Prefix = s
		}
		n, err := strconv.Atoi(s)
		if err != nil && r.Prefix == "" {
			return Ref{}, fmt.Errorf("%w: %q", ErrInvalidRef, s)
		}
		if err == nil {
			r.Index = n
		}
		return r, nil
	}
	return parseID(s)
}

func parseID(s string) (Ref, error) {
	if id, err := uuid.Parse(s); err == nil {
		return Ref{ID: id}, nil
	}
	p := strings.ToLower(s)
	if len(p) < minPrefixLen || !isIDPrefix(p) {
		return Ref{}, fmt.Errorf("%w: %q", ErrInvalidRef, s)
	}
	return Ref{Prefix: p}, nil
}

// Resolve maps ref to an identifier. ok is false when an id prefix matches
// nothing; a full id is returned as is and left for the store to match.
// A numeric ref outside the list falls back to prefix matching before it
// is reported out of range.
func (l List) Resolve(ref Ref) (id uuid.UUID, ok bool, err error) {
	switch {
	case ref.ID != uuid.Nil:
		return ref.ID, true, nil
	case ref.Index >= 1 && ref.Index <= len(l):
		return l[ref.Index-1].ID, true, nil
	case ref.Prefix != "":
		id, ok, err := l.matchPrefix(ref.Prefix)
		if err != nil || ok || ref.Index == 0 {
			return id, ok, err
		}
	}
	return uuid.Nil, false, fmt.Errorf("%w: have %d, got %d", ErrIndexOutOfRange, len(l), ref.Index)
}

func (l List) matchPrefix(prefix string) (uuid.UUID, bool, error) {
	found := -1
	for i, t := range l {
		if strings.HasPrefix(t.ID.String(), prefix) {
			if found >= 0 {
				return uuid.Nil, false, fmt.Errorf("%w: %q", ErrAmbiguousRef, prefix)
			}
			found = i
		}
	}
	if found < 0 {
		return uuid.Nil, false, nil
	}
	return l[found].ID, true, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// isIDPrefix accepts hex digits and the dashes of the canonical form.
func isIDPrefix(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r == '-':
		default:
			return false
		}
	}
	return true
}
