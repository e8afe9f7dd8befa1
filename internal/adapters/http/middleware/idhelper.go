package middleware

import (
	"github.com/google/uuid"
)

// uuidV4Len is the length of the canonical 8-4-4-4-12 form.
const uuidV4Len = 36

// resolveID returns inbound when trusted and well formed, otherwise a fresh
// version-4 UUID.
func resolveID(inbound string, trust bool) string {
	if trust && isUUIDv4(inbound) {
		return inbound
	}

	return uuid.NewString()
}

// isUUIDv4 accepts only the canonical lowercase or uppercase hyphenated form
// with version 4 and the RFC 4122 variant.
func isUUIDv4(s string) bool {
	if len(s) != uuidV4Len {
		return false
	}

	id, err := uuid.Parse(s)
	if err != nil {
		return false
	}

	return id.Version() == 4 && id.Variant() == uuid.RFC4122
}
