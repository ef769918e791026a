// Package surface binds interactive front ends to a telephone. A front end
// only ever calls the three bindings: add a number, remove a number, dial.
package surface

import (
	"github.com/Ephraimoffordile/Task-8-LearnAble/internal/telephone"
	"github.com/Ephraimoffordile/Task-8-LearnAble/internal/types"
)

type Bindings interface {
	Add(text string)
	Remove(text string)
	Dial(text string) error
}

// Lister is implemented by bindings that can show the known numbers.
type Lister interface {
	Numbers() []types.PhoneNumber
}

type TelephoneBindings struct {
	tel *telephone.Telephone
}

func NewTelephoneBindings(tel *telephone.Telephone) *TelephoneBindings {
	return &TelephoneBindings{tel: tel}
}

func (b *TelephoneBindings) Add(text string) {
	if n, ok := types.ParsePhoneNumber(text); ok {
		b.tel.AddNumber(n)
	}
}

func (b *TelephoneBindings) Remove(text string) {
	if n, ok := types.ParsePhoneNumber(text); ok {
		b.tel.RemoveNumber(n)
	}
}

func (b *TelephoneBindings) Dial(text string) error {
	n, ok := types.ParsePhoneNumber(text)
	if !ok {
		return nil
	}
	return b.tel.Dial(n)
}

func (b *TelephoneBindings) Numbers() []types.PhoneNumber {
	return b.tel.Numbers()
}
