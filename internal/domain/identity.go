package domain

import "strings"

// Identity is the stable hex-encoded address identifying a peer to the
// transport.
type Identity string

func (id Identity) Valid() bool {
	if len(id) != AddressHexLength {
		return false
	}

	for _, c := range id {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}

	return true
}

// Equal compares two identities ignoring hex case.
func (id Identity) Equal(other Identity) bool {
	return strings.EqualFold(string(id), string(other))
}

func (id Identity) Normalized() Identity {
	return Identity(strings.ToUpper(string(id)))
}
