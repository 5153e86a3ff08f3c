package util

import "github.com/google/uuid"

// IsValidID reports whether s is a well-formed record identifier.
func IsValidID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

func ParseID(s string) (uuid.UUID, bool) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
