package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/idilsaglam/todoprompt/internal/logging"
	"github.com/idilsaglam/todoprompt/internal/model"
	"github.com/idilsaglam/todoprompt/internal/store"
	"github.com/idilsaglam/todoprompt/internal/ui"
)

const (
	promptText     = "What do you want to do? (type help for commands)"
	askTodoText    = "Write your new todo:"
	invalidTodo    = "Please input a valid todo."
	notFoundText   = "Could not find that todo."
	removedText    = "Todo removed."
	doneText       = "Todo marked as done."
	clearedText    = "Todo list cleared."
	farewellText   = "Ok, quitting now."
	unrecognizedFm = "Unrecognized command %q. Type help to see what you can do."
)

// Options tune output behavior.
type Options struct {
	Theme  string
	Group  bool // list grouped by pending/done
	Logger *log.Logger
}

// Dispatcher runs the prompt loop: read a line, run one store operation,
// render the outcome, repeat. It owns its input and output for its lifetime.
type Dispatcher struct {
	store  store.Store
	in     *bufio.Reader
	out    io.Writer
	theme  ui.Theme
	group  bool
	logger *log.Logger
}

// New builds a dispatcher reading commands from in and writing to out.
func New(s store.Store, in io.Reader, out io.Writer, opt Options) *Dispatcher {
	logger := opt.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &Dispatcher{
		store:  s,
		in:     bufio.NewReader(in),
		out:    out,
		theme:  ui.NewTheme(opt.Theme, out),
		group:  opt.Group,
		logger: logger,
	}
}

// Run loops until quit or end of input. It returns nil on a normal exit and
// the *Error that stopped it otherwise.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		quit, err := d.Step(ctx)
		if err != nil {
			ce := classify(err)
			d.logger.Debug("command failed", "kind", ce.Kind, "fatal", ce.Fatal(), "err", ce.Err)
			if ce.Kind != KindStdout {
				if werr := d.println(d.theme.Fail(ce.Error())); werr != nil {
					return werr
				}
			}
			if ce.Fatal() {
				return ce
			}
			continue
		}
		if quit {
			return d.println(d.theme.Accent.Render(farewellText))
		}
	}
}

// Step handles exactly one command. quit is true once the loop should end.
func (d *Dispatcher) Step(ctx context.Context) (quit bool, err error) {
	if err := d.println(d.theme.Muted.Render(promptText)); err != nil {
		return false, err
	}
	line, eof, err := d.readLine()
	if err != nil {
		return false, err
	}
	if eof && line == "" {
		return true, nil
	}

	cmd, err := ParseCommand(line)
	if err != nil {
		return false, err
	}
	d.logger.Debug("command", "kind", cmd.Kind, "ref", cmd.Ref)

	switch cmd.Kind {
	case Quit:
		return true, nil
	case Help:
		return false, d.println(helpText(d.theme))
	case ShowList:
		return false, d.showList(ctx)
	case ClearList:
		if err := d.store.Clear(ctx); err != nil {
			return false, storageError(err)
		}
		return false, d.println(d.theme.OK(clearedText))
	case NewTodo:
		return d.addTodo(ctx)
	case RemoveTodo:
		return false, d.removeTodo(ctx, cmd.Ref)
	case MarkDone:
		return false, d.markDone(ctx, cmd.Ref)
	}
	return false, d.println(d.theme.Warn(fmt.Sprintf(unrecognizedFm, cmd.Raw)))
}

// addTodo asks for the message until it gets a usable one. End of input
// while asking ends the loop without adding anything.
func (d *Dispatcher) addTodo(ctx context.Context) (bool, error) {
	for {
		if err := d.println(askTodoText); err != nil {
			return false, err
		}
		line, eof, err := d.readLine()
		if err != nil {
			return false, err
		}
		todo, err := model.New(line)
		if err != nil {
			if eof {
				return true, nil
			}
			if err := d.println(d.theme.Warn(invalidTodo)); err != nil {
				return false, err
			}
			continue
		}
		if err := d.store.Add(ctx, todo); err != nil {
			return false, storageError(err)
		}
		if err := d.println(d.theme.OK("New todo added!")); err != nil {
			return false, err
		}
		return eof, d.showList(ctx)
	}
}

func (d *Dispatcher) removeTodo(ctx context.Context, ref model.Ref) error {
	id, ok, err := d.resolve(ctx, ref)
	if err != nil {
		return err
	}
	if !ok {
		return d.println(d.theme.Warn(notFoundText))
	}
	n, err := d.store.Remove(ctx, id)
	if err != nil {
		return storageError(err)
	}
	if n == 0 {
		return d.println(d.theme.Warn(notFoundText))
	}
	return d.println(d.theme.OK(removedText))
}

func (d *Dispatcher) markDone(ctx context.Context, ref model.Ref) error {
	id, ok, err := d.resolve(ctx, ref)
	if err != nil {
		return err
	}
	if !ok {
		return d.println(d.theme.Warn(notFoundText))
	}
	n, err := d.store.MarkDone(ctx, id)
	if err != nil {
		return storageError(err)
	}
	if n == 0 {
		return d.println(d.theme.Warn(notFoundText))
	}
	if err := d.println(d.theme.OK(doneText)); err != nil {
		return err
	}
	return d.showList(ctx)
}

// resolve turns an index or id prefix into an id using a fresh listing.
// Full ids go straight to the store.
func (d *Dispatcher) resolve(ctx context.Context, ref model.Ref) (uuid.UUID, bool, error) {
	if ref.ID != uuid.Nil {
		return ref.ID, true, nil
	}
	list, err := d.store.List(ctx)
	if err != nil {
		return uuid.Nil, false, storageError(err)
	}
	id, ok, err := list.Resolve(ref)
	switch {
	case errors.Is(err, model.ErrIndexOutOfRange):
		return uuid.Nil, false, &Error{Kind: KindIndex, Text: ref.String(), Err: err}
	case err != nil:
		return uuid.Nil, false, &Error{Kind: KindParse, Text: ref.String(), Err: err}
	}
	return id, ok, nil
}

func (d *Dispatcher) showList(ctx context.Context) error {
	list, err := d.store.List(ctx)
	if err != nil {
		return storageError(err)
	}
	if d.group {
		return d.println(d.theme.GroupedPanel(list))
	}
	return d.println(d.theme.ListPanel(list))
}

// readLine returns the next trimmed line. eof is set when the input ended,
// possibly after a final unterminated line.
func (d *Dispatcher) readLine() (line string, eof bool, err error) {
	raw, err := d.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			return strings.TrimSpace(raw), true, nil
		}
		return "", false, &Error{Kind: KindStdin, Err: err}
	}
	return strings.TrimSpace(raw), false, nil
}

func (d *Dispatcher) println(s string) error {
	if _, err := fmt.Fprintln(d.out, s); err != nil {
		return &Error{Kind: KindStdout, Err: err}
	}
	return nil
}
