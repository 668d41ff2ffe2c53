package model

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// Todo is the domain model for a todo entry.
// ID is assigned once by New and never changes; Done only ever goes to true.
type Todo struct {
	ID      uuid.UUID
	Message string
	Done    bool
}

var (
	ErrEmptyMessage     = errors.New("todo message is empty")
	ErrMultilineMessage = errors.New("todo message spans several lines")
)

// New builds a pending todo with a fresh identifier.
func New(message string) (Todo, error) {
	message, err := CleanMessage(message)
	if err != nil {
		return Todo{}, err
	}
	return Todo{ID: uuid.New(), Message: message}, nil
}

// CleanMessage trims the message and checks it can be stored as one record.
func CleanMessage(message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", ErrEmptyMessage
	}
	if strings.ContainsAny(message, "\r\n") {
		return "", ErrMultilineMessage
	}
	return message, nil
}

// Box is the checkbox prefix used both on screen and in the flat file.
func (t Todo) Box() string {
	if t.Done {
		return "[X]"
	}
	return "[ ]"
}

func (t Todo) String() string {
	return t.Box() + " - " + t.Message
}

// ShortID is the prefix shown to users so they can address a todo by id.
func (t Todo) ShortID() string {
	return t.ID.String()[:8]
}
