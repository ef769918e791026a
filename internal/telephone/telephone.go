// Package telephone implements the subject of the dial notifications: a set
// of known phone numbers and the observers told about every successful dial.
package telephone

import (
	"fmt"
	"sort"
	"sync"

	"github.com/Ephraimoffordile/Task-8-LearnAble/internal/constants"
	"github.com/Ephraimoffordile/Task-8-LearnAble/internal/observer"
	"github.com/Ephraimoffordile/Task-8-LearnAble/internal/types"
	"github.com/go-kit/kit/log"
	"github.com/google/uuid"
)

// Telephone is safe for concurrent use. A single mutex guards both the
// number set and the observer list.
type Telephone struct {
	mu       sync.Mutex
	numbers  map[types.PhoneNumber]struct{}
	notifier observer.Notifier

	// ctx is the logger context
	ctx *log.Context
}

func New(ctx *log.Context) *Telephone {
	return &Telephone{
		numbers: make(map[types.PhoneNumber]struct{}),
		ctx:     ctx,
	}
}

// AddNumber makes n dialable. Adding a known number is a no-op.
func (t *Telephone) AddNumber(n types.PhoneNumber) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.numbers[n] = struct{}{}
}

// RemoveNumber forgets n. Removing an unknown number is a no-op.
func (t *Telephone) RemoveNumber(n types.PhoneNumber) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.numbers, n)
}

func (t *Telephone) HasNumber(n types.PhoneNumber) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.numbers[n]
	return ok
}

// Numbers returns the known numbers in ascending order.
func (t *Telephone) Numbers() []types.PhoneNumber {
	t.mu.Lock()
	defer t.mu.Unlock()
	numbers := make([]types.PhoneNumber, 0, len(t.numbers))
	for n := range t.numbers {
		numbers = append(numbers, n)
	}
	sort.Slice(numbers, func(i, j int) bool { return numbers[i] < numbers[j] })
	return numbers
}

// AddObserver appends o to the observers notified on dial. It fails with
// observer.ErrInvalidObserver when o is nil, wraps a nil pointer or has an
// uncomparable type.
func (t *Telephone) AddObserver(o observer.Observer) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.notifier.Register(o)
}

// RemoveObserver removes the earliest registration of o, if any.
func (t *Telephone) RemoveObserver(o observer.Observer) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.notifier.Unregister(o)
}

func (t *Telephone) ObserverCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.notifier.Len()
}

// Dial notifies every registered observer, in registration order, when n is
// a known number. Unknown numbers are logged and nobody is notified.
// Observers run outside the lock and may call back into the telephone.
// The returned error aggregates failures of individual observers.
func (t *Telephone) Dial(n types.PhoneNumber) error {
	t.mu.Lock()
	_, known := t.numbers[n]
	var notifier observer.Notifier
	if known {
		notifier = t.notifier.Snapshot()
	}
	t.mu.Unlock()

	if !known {
		t.ctx.Log("event", "dial", "message", fmt.Sprintf(constants.NotFoundMessageFormat, n))
		return nil
	}

	ctx := t.ctx.With("dialId", uuid.New().String())
	ctx.Log("event", "dial", "message", fmt.Sprintf(constants.DialingMessageFormat, n))
	if err := notifier.Notify(n); err != nil {
		ctx.Log("event", "dial", "message", "one or more observers failed", "error", err)
		return err
	}
	return nil
}
