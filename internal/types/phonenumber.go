package types

import (
	"strings"

	"golang.org/x/text/width"
)

// PhoneNumber identifies a number known to a telephone. It is opaque: no
// numbering-plan validation is performed on it.
type PhoneNumber string

func (n PhoneNumber) String() string {
	return string(n)
}

// ParsePhoneNumber trims text and folds full-width characters, so "１２３"
// entered on an East Asian keyboard matches "123". Blank text yields no
// number.
func ParsePhoneNumber(text string) (PhoneNumber, bool) {
	s := width.Narrow.String(strings.TrimSpace(text))
	return PhoneNumber(s), s != ""
}
