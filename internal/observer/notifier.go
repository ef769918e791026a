package observer

import (
	"reflect"

	"github.com/Ephraimoffordile/Task-8-LearnAble/internal/types"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Notifier keeps observers in registration order. The same observer may be
// registered more than once. Observers are compared by interface equality;
// Register only accepts observers whose dynamic type is comparable.
//
// Notifier is not safe for concurrent use; the owner serializes access.
type Notifier struct {
	observers []Observer
}

// Register appends o. Nil observers, including nil pointers wrapped in the
// interface, and observers of uncomparable types fail with ErrInvalidObserver.
func (n *Notifier) Register(o Observer) error {
	if err := validate(o); err != nil {
		return err
	}
	n.observers = append(n.observers, o)
	return nil
}

func validate(o Observer) error {
	if o == nil {
		return ErrInvalidObserver
	}
	v := reflect.ValueOf(o)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		if v.IsNil() {
			return errors.Wrapf(ErrInvalidObserver, "nil %T", o)
		}
	}
	if !v.Type().Comparable() {
		return errors.Wrapf(ErrInvalidObserver, "%T is not comparable", o)
	}
	return nil
}

// Unregister removes the earliest registration of o and reports whether one was found.
func (n *Notifier) Unregister(o Observer) bool {
	if validate(o) != nil {
		return false
	}
	for i, v := range n.observers {
		if v == o {
			n.observers = append(n.observers[:i], n.observers[i+1:]...)
			return true
		}
	}
	return false
}

func (n *Notifier) Len() int {
	return len(n.observers)
}

// Snapshot returns a copy whose list is unaffected by later registrations.
func (n *Notifier) Snapshot() Notifier {
	observers := make([]Observer, len(n.observers))
	copy(observers, n.observers)
	return Notifier{observers: observers}
}

// Notify calls Update on every observer in registration order. A failing
// observer does not stop the broadcast; all failures are returned together.
func (n *Notifier) Notify(number types.PhoneNumber) error {
	var result *multierror.Error
	for i, o := range n.observers {
		if err := o.Update(number); err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "observer %d (%T) failed", i, o))
		}
	}
	return result.ErrorOrNil()
}
