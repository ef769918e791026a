// Package dialobserver holds the observers that render a line for every
// number a telephone dials.
package dialobserver

import (
	"fmt"

	"github.com/Ephraimoffordile/Task-8-LearnAble/internal/constants"
	"github.com/Ephraimoffordile/Task-8-LearnAble/internal/observer"
	"github.com/Ephraimoffordile/Task-8-LearnAble/internal/sink"
	"github.com/Ephraimoffordile/Task-8-LearnAble/internal/types"
	"github.com/pkg/errors"
)

// OperationLogger records the dial operation: "Phone number dialed: {n}".
type OperationLogger struct {
	sink sink.Sink
}

func NewOperationLogger(s sink.Sink) *OperationLogger {
	return &OperationLogger{sink: s}
}

func (l *OperationLogger) Update(number types.PhoneNumber) error {
	return l.sink.Append(fmt.Sprintf(constants.OperationLogFormat, number))
}

// DialingMessageLogger shows the dialing banner: "Now Dialing {n}".
type DialingMessageLogger struct {
	sink sink.Sink
}

func NewDialingMessageLogger(s sink.Sink) *DialingMessageLogger {
	return &DialingMessageLogger{sink: s}
}

func (l *DialingMessageLogger) Update(number types.PhoneNumber) error {
	return l.sink.Append(fmt.Sprintf(constants.DialingLogFormat, number))
}

// New builds the observer variant named by kind, writing to s.
func New(kind string, s sink.Sink) (observer.Observer, error) {
	if s == nil {
		return nil, errors.Wrapf(observer.ErrInvalidObserver, "no sink for observer kind %q", kind)
	}

	switch kind {
	case types.ObserverKindOperation:
		return NewOperationLogger(s), nil
	case types.ObserverKindDialing:
		return NewDialingMessageLogger(s), nil
	default:
		return nil, errors.Wrapf(observer.ErrInvalidObserver, "unknown observer kind %q", kind)
	}
}
