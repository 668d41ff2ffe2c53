package flatfile

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/idilsaglam/todoprompt/internal/model"
	"github.com/idilsaglam/todoprompt/internal/store"
)

// Line format, one todo per line:
//
//	[ ] - buy milk - id: 0c0e6d1e-...
//	[X] - call mum - id: 5b1f4b7a-...
const (
	pendingPrefix = "[ ] - "
	donePrefix    = "[X] - "
	idSeparator   = " - id: "
)

// Lines written before ids were tracked get an id derived from their
// position and text, stable until the file is rewritten.
var legacyNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/idilsaglam/todoprompt/legacy-line"))

// Marshal renders the whole list in file format.
func Marshal(list model.List) []byte {
	var b bytes.Buffer
	for _, t := range list {
		b.WriteString(t.Box())
		b.WriteString(" - ")
		b.WriteString(t.Message)
		b.WriteString(idSeparator)
		b.WriteString(t.ID.String())
		b.WriteByte('\n')
	}
	return b.Bytes()
}

// Unmarshal parses a whole file. It stops at the first bad record.
func Unmarshal(data []byte) (model.List, error) {
	list := model.List{}
	if len(data) == 0 {
		return list, nil
	}
	text := string(data)
	lines := strings.Split(text, "\n")
	if !strings.HasSuffix(text, "\n") {
		return nil, malformed(len(lines), "record is not terminated by a newline")
	}
	lines = lines[:len(lines)-1]

	seen := make(map[uuid.UUID]struct{}, len(lines))
	for i, line := range lines {
		n := i + 1
		t, err := parseLine(n, strings.TrimSuffix(line, "\r"))
		if err != nil {
			return nil, err
		}
		if _, dup := seen[t.ID]; dup {
			return nil, malformed(n, "duplicate id "+t.ID.String())
		}
		seen[t.ID] = struct{}{}
		list = append(list, t)
	}
	return list, nil
}

func parseLine(n int, line string) (model.Todo, error) {
	var t model.Todo
	var rest string
	switch {
	case strings.HasPrefix(line, donePrefix):
		t.Done = true
		rest = line[len(donePrefix):]
	case strings.HasPrefix(line, pendingPrefix):
		rest = line[len(pendingPrefix):]
	default:
		return model.Todo{}, malformed(n, "missing [ ] or [X] prefix")
	}

	if i := strings.LastIndex(rest, idSeparator); i >= 0 {
		id, err := uuid.Parse(rest[i+len(idSeparator):])
		if err != nil {
			return model.Todo{}, malformed(n, "invalid id: "+err.Error())
		}
		t.ID = id
		rest = rest[:i]
	} else {
		t.ID = uuid.NewSHA1(legacyNamespace, []byte(strconv.Itoa(n)+"\x00"+rest))
	}

	if strings.TrimSpace(rest) == "" {
		return model.Todo{}, malformed(n, "empty todo")
	}
	t.Message = rest
	return t, nil
}

func malformed(line int, reason string) error {
	return fmt.Errorf("line %d: %w: %s", line, store.ErrMalformedRecord, reason)
}
