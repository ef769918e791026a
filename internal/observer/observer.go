// Package observer provides the interface dial observers implement and the
// ordered registration list a telephone broadcasts through.
package observer

import (
	"github.com/Ephraimoffordile/Task-8-LearnAble/internal/types"
	"github.com/pkg/errors"
)

var (
	// ErrInvalidObserver is returned when a value cannot be registered as an observer.
	ErrInvalidObserver = errors.New("observer is not a valid Observer")

	// ErrNotImplemented is returned by UnimplementedObserver.
	ErrNotImplemented = errors.New("Update method must be implemented")
)

type Observer interface {
	// Update is called with the number being dialed
	Update(number types.PhoneNumber) error
}

// UnimplementedObserver can be embedded by types that are still growing their
// Update method. Calling Update on it always fails.
type UnimplementedObserver struct{}

func (UnimplementedObserver) Update(types.PhoneNumber) error {
	return ErrNotImplemented
}
