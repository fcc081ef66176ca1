package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNoActiveProject is returned by every editor operation while no
	// project is selected.
	ErrNoActiveProject = errors.New("no active project")
	// ErrNotFound is wrapped by NotFoundError.
	ErrNotFound = errors.New("not found")

	ErrInvalidViewMode = errors.New("invalid report view mode")
	ErrUnknownDialog   = errors.New("unknown dialog")
)

// Kind names the level of an entity in the project tree.
type Kind string

const (
	KindProject Kind = "project"
	KindStreet  Kind = "street"
	KindSegment Kind = "segment"
	KindService Kind = "service"
	KindMeter   Kind = "meter"
)

// NotFoundError reports an id that does not resolve to an entity of the
// expected kind in the project it is addressed against.
type NotFoundError struct {
	Kind Kind
	ID   int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

func notFound(kind Kind, id int64) error {
	return &NotFoundError{Kind: kind, ID: id}
}
