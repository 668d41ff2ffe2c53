package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/idilsaglam/todoprompt/internal/store"
)

func run(t *testing.T, s *memStore, input string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	d := New(s, strings.NewReader(input), &out, Options{Theme: "mono"})
	err := d.Run(context.Background())
	return out.String(), err
}

func mustContain(t *testing.T, out string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunBuyMilkScenario(t *testing.T) {
	s := &memStore{}
	out, err := run(t, s, "y\nbuy milk\n")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(s.list) != 1 || s.list[0].Message != "buy milk" || s.list[0].Done {
		t.Fatalf("list = %+v", s.list)
	}
	mustContain(t, out, askTodoText, "New todo added!", "1. [ ] buy milk")

	out, err = run(t, s, "done 1\n")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !s.list[0].Done {
		t.Fatalf("list = %+v", s.list)
	}
	mustContain(t, out, doneText, "1. [X] buy milk")

	out, err = run(t, s, "rm 1\nquit\n")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(s.list) != 0 {
		t.Fatalf("list = %+v, want empty", s.list)
	}
	mustContain(t, out, removedText, farewellText)
}

func TestRunRepromptsEmptyTodo(t *testing.T) {
	s := &memStore{}
	out, err := run(t, s, "y\n\n   \nreal one\nquit\n")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if n := strings.Count(out, invalidTodo); n != 2 {
		t.Fatalf("invalid todo warnings = %d, want 2:\n%s", n, out)
	}
	if len(s.list) != 1 || s.list[0].Message != "real one" {
		t.Fatalf("list = %+v", s.list)
	}
}

func TestRunRemoveAbsentReference(t *testing.T) {
	s := &memStore{list: threeTodos()}
	out, err := run(t, s, "rm dddd4444-4444-4000-8000-000000000004\nrm dddd\ndone dddd\nquit\n")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if n := strings.Count(out, notFoundText); n != 3 {
		t.Fatalf("not found messages = %d, want 3:\n%s", n, out)
	}
	if len(s.list) != 3 {
		t.Fatalf("list = %+v, want 3 unchanged", s.list)
	}
	for _, td := range s.list {
		if td.Done {
			t.Fatalf("unexpected change %+v", td)
		}
	}
}

func TestRunByIDPrefix(t *testing.T) {
	s := &memStore{list: threeTodos()}
	if _, err := run(t, s, "done bbbb\nrm cccc\nquit\n"); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(s.list) != 2 || !s.list[1].Done || s.list[1].Message != "two" {
		t.Fatalf("list = %+v", s.list)
	}
}

func TestRunNumericShortID(t *testing.T) {
	s := &memStore{list: append(threeTodos(),
		todoWithID("12345678-1111-4000-8000-000000000004", "water plants"),
		todoWithID("20000000-2222-4000-8000-000000000005", "feed cat"),
	)}
	out, err := run(t, s, "done 12345678\nrm #2000\ndone 2\nquit\n")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if strings.Contains(out, "Index error") {
		t.Fatalf("unexpected index error:\n%s", out)
	}
	if len(s.list) != 4 {
		t.Fatalf("list = %+v", s.list)
	}
	if !s.list[3].Done || s.list[3].Message != "water plants" {
		t.Fatalf("short id did not reach the todo: %+v", s.list[3])
	}
	if !s.list[1].Done || s.list[1].Message != "two" {
		t.Fatalf("index 2 should still be an index: %+v", s.list[1])
	}
}

func TestRunGroupedList(t *testing.T) {
	s := &memStore{list: threeTodos()}
	s.list[0].Done = true
	var out bytes.Buffer
	d := New(s, strings.NewReader("list\nquit\n"), &out, Options{Theme: "mono", Group: true})
	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	got := out.String()
	mustContain(t, got, "Pending", "Done", " 2. [ ] two", " 1. [X] one")
	if strings.Index(got, " 2. [ ] two") > strings.Index(got, " 1. [X] one") {
		t.Fatalf("pending should come before done:\n%s", got)
	}
}

func TestRunIndexOutOfRangeIsRecoverable(t *testing.T) {
	s := &memStore{list: threeTodos()}
	out, err := run(t, s, "done 4\nrm 0\ndone 3\nquit\n")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if n := strings.Count(out, "Index error: index out of bounds"); n != 2 {
		t.Fatalf("index errors = %d, want 2:\n%s", n, out)
	}
	if !s.list[2].Done {
		t.Fatal("expected the valid command after the errors to run")
	}
	mustContain(t, out, farewellText)
}

func TestRunParseFailureIsRecoverable(t *testing.T) {
	s := &memStore{list: threeTodos()}
	out, err := run(t, s, "rm milk\nlist\nquit\n")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	mustContain(t, out, `Parse error: "milk"`, "3. [ ] three", farewellText)
}

func TestRunUnrecognized(t *testing.T) {
	s := &memStore{}
	out, err := run(t, s, "make coffee\nquit\n")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	mustContain(t, out, `Unrecognized command "make coffee"`)
	if len(s.calls) != 0 {
		t.Fatalf("store calls = %v, want none", s.calls)
	}
}

func TestRunHelpAndClear(t *testing.T) {
	s := &memStore{list: threeTodos()}
	out, err := run(t, s, "help\nclear\nlist\nquit\n")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	mustContain(t, out, "Commands:", clearedText, "no todos")
	if len(s.list) != 0 {
		t.Fatalf("list = %+v", s.list)
	}
}

func TestRunMarkDoneTwiceStillConfirms(t *testing.T) {
	s := &memStore{list: threeTodos()}
	out, err := run(t, s, "done 1\ndone 1\nquit\n")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if n := strings.Count(out, doneText); n != 2 {
		t.Fatalf("confirmations = %d, want 2", n)
	}
}

func TestRunEndOfInputQuits(t *testing.T) {
	s := &memStore{}
	out, err := run(t, s, "list")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	mustContain(t, out, "no todos", farewellText)
}

func TestRunEndOfInputWhileAskingForTodo(t *testing.T) {
	s := &memStore{}
	out, err := run(t, s, "y\n")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(s.list) != 0 {
		t.Fatalf("list = %+v", s.list)
	}
	mustContain(t, out, farewellText)
}

func TestRunStorageFailureIsFatal(t *testing.T) {
	s := &memStore{listErr: store.ReadFailure("read file", errDiskGone)}
	out, err := run(t, s, "list\nquit\n")
	var ce *Error
	if !errors.As(err, &ce) || ce.Kind != KindStorage || !ce.Fatal() {
		t.Fatalf("err = %v, want fatal storage error", err)
	}
	if !errors.Is(err, store.ErrRead) {
		t.Fatalf("err = %v, want ErrRead", err)
	}
	mustContain(t, out, "Error in storage")
	if strings.Contains(out, farewellText) {
		t.Fatalf("loop should stop before reading quit:\n%s", out)
	}
}

func TestRunWriteFailureIsFatal(t *testing.T) {
	s := &memStore{list: threeTodos(), writeErr: store.WriteFailure("write file", errDiskGone)}
	_, err := run(t, s, "rm 1\nquit\n")
	if !errors.Is(err, store.ErrWrite) {
		t.Fatalf("err = %v, want ErrWrite", err)
	}
	if got := s.calls; len(got) != 2 || got[0] != "list" || got[1] != "remove" {
		t.Fatalf("calls = %v", got)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("tty closed") }

func TestRunStdinFailureIsFatal(t *testing.T) {
	var out bytes.Buffer
	err := New(&memStore{}, failingReader{}, &out, Options{Theme: "mono"}).Run(context.Background())
	var ce *Error
	if !errors.As(err, &ce) || ce.Kind != KindStdin {
		t.Fatalf("err = %v, want stdin error", err)
	}
	mustContain(t, out.String(), "Input error: tty closed")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, io.ErrClosedPipe }

func TestRunStdoutFailureIsFatal(t *testing.T) {
	err := New(&memStore{}, strings.NewReader("list\n"), failingWriter{}, Options{Theme: "mono"}).Run(context.Background())
	var ce *Error
	if !errors.As(err, &ce) || ce.Kind != KindStdout {
		t.Fatalf("err = %v, want stdout error", err)
	}
	if !errors.Is(err, io.ErrClosedPipe) {
		t.Fatalf("err = %v, want ErrClosedPipe", err)
	}
}

func TestStepOneCommandAtATime(t *testing.T) {
	s := &memStore{list: threeTodos()}
	var out bytes.Buffer
	d := New(s, strings.NewReader("done 1\nrm 1\n"), &out, Options{Theme: "mono"})
	quit, err := d.Step(context.Background())
	if err != nil || quit {
		t.Fatalf("step = %v, %v", quit, err)
	}
	if len(s.list) != 3 || !s.list[0].Done {
		t.Fatalf("after first step list = %+v", s.list)
	}
	quit, err = d.Step(context.Background())
	if err != nil || quit {
		t.Fatalf("step = %v, %v", quit, err)
	}
	if len(s.list) != 2 {
		t.Fatalf("after second step list = %+v", s.list)
	}
}
