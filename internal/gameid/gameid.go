// Package gameid generates table identifiers: a UUIDv7 rendered as 26
// characters of lower-case Crockford base32, so IDs sort by creation time.
package gameid

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length of an encoded ID.
const Length = 26

// New returns a fresh table ID.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("gameid: " + err.Error())
	}
	return Encode(id)
}

// Encode renders u as 130 bits (two leading zero bits, then the UUID) in
// groups of five.
func Encode(u uuid.UUID) string {
	var out [Length]byte
	for i := range Length {
		var v byte
		for b := range 5 {
			v <<= 1
			if bit := i*5 + b - 2; bit >= 0 && u[bit/8]&(0x80>>(bit%8)) != 0 {
				v |= 1
			}
		}
		out[i] = alphabet[v]
	}
	return string(out[:])
}

// Decode reverses Encode.
func Decode(id string) (uuid.UUID, error) {
	var u uuid.UUID
	if err := Validate(id); err != nil {
		return u, err
	}
	for i := range Length {
		v := strings.IndexByte(alphabet, id[i])
		for b := range 5 {
			bit := i*5 + b - 2
			if bit >= 0 && v&(0x10>>b) != 0 {
				u[bit/8] |= 0x80 >> (bit % 8)
			}
		}
	}
	return u, nil
}

// Validate checks that id could have come from New.
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("table ID must be exactly %d characters, got %d", Length, len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("table ID first character must be 0-7, got %c", id[0])
	}
	for i := range len(id) {
		if strings.IndexByte(alphabet, id[i]) < 0 {
			return fmt.Errorf("invalid character %c at position %d", id[i], i)
		}
	}
	return nil
}
