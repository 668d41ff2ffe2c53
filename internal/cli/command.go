package cli

import (
	"strings"

	"github.com/idilsaglam/todoprompt/internal/model"
)

// CommandKind is what one input line asks for.
type CommandKind int

const (
	Unrecognized CommandKind = iota
	NewTodo
	RemoveTodo
	MarkDone
	ClearList
	ShowList
	Help
	Quit
)

func (k CommandKind) String() string {
	switch k {
	case NewTodo:
		return "new"
	case RemoveTodo:
		return "rm"
	case MarkDone:
		return "done"
	case ClearList:
		return "clear"
	case ShowList:
		return "list"
	case Help:
		return "help"
	case Quit:
		return "quit"
	}
	return "unrecognized"
}

// Command is a classified input line.
type Command struct {
	Kind CommandKind
	Ref  model.Ref // RemoveTodo and MarkDone only
	Raw  string
}

var refCommands = []struct {
	prefix string
	kind   CommandKind
}{
	{"rm ", RemoveTodo},
	{"done ", MarkDone},
}

// ParseCommand classifies one line. A bad reference after "rm " or "done "
// is a parse error, not an unrecognized command.
func ParseCommand(line string) (Command, error) {
	line = strings.TrimSpace(line)
	cmd := Command{Raw: line}

	switch line {
	case "y":
		cmd.Kind = NewTodo
		return cmd, nil
	case "help":
		cmd.Kind = Help
		return cmd, nil
	case "clear":
		cmd.Kind = ClearList
		return cmd, nil
	case "quit":
		cmd.Kind = Quit
		return cmd, nil
	case "list":
		cmd.Kind = ShowList
		return cmd, nil
	}

	for _, p := range refCommands {
		rest, ok := strings.CutPrefix(line, p.prefix)
		if !ok {
			continue
		}
		rest = strings.TrimSpace(rest)
		ref, err := model.ParseRef(rest)
		if err != nil {
			return Command{}, &Error{Kind: KindParse, Text: rest, Err: err}
		}
		cmd.Kind = p.kind
		cmd.Ref = ref
		return cmd, nil
	}

	cmd.Kind = Unrecognized
	return cmd, nil
}
