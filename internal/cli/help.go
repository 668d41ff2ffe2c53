package cli

import (
	"strings"

	"github.com/idilsaglam/todoprompt/internal/ui"
)

func helpText(t ui.Theme) string {
	var b strings.Builder
	b.WriteString(t.Title.Render("todo - a tiny interactive todo list"))
	b.WriteString(`

Commands:
  y              Add a new todo (you will be asked for the text)
  list           Show the list
  done <ref>     Mark a todo as done
  rm <ref>       Remove a todo
  clear          Remove every todo
  help           Show this help
  quit           Leave

<ref> is the number shown by list, or the start of the todo id (#1a2b3c4d).
A number that is not a list position is tried as an id; write the # to
always mean an id.

Examples:
  done 2
  rm 1a2b
  rm #1234
`)
	return strings.TrimRight(b.String(), "\n")
}
