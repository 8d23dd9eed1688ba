package types

import (
	"errors"
	"fmt"

	"github.com/LeJamon/goLibra/internal/codec/lcs"
)

// ErrInvalidIdentifier is returned for strings that are not valid
// module, struct, or currency identifiers.
var ErrInvalidIdentifier = errors.New("invalid identifier")

// Identifier names a module, struct, or currency. Valid identifiers
// start with a letter and continue with letters, digits, or
// underscores. Currency codes like "LBR" and "Coin1" are identifiers.
type Identifier string

// NewIdentifier validates s and returns it as an Identifier.
func NewIdentifier(s string) (Identifier, error) {
	if !ValidIdentifier(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidIdentifier, s)
	}
	return Identifier(s), nil
}

// ValidIdentifier reports whether s is a valid identifier.
func ValidIdentifier(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && (c == '_' || c >= '0' && c <= '9'):
		default:
			return false
		}
	}
	return true
}

// String implements fmt.Stringer.
func (id Identifier) String() string {
	return string(id)
}

// EncodeLCS writes the identifier as a length-prefixed UTF-8 string.
func (id Identifier) EncodeLCS(e *lcs.Encoder) {
	e.WriteString(string(id))
}
