package cart

import "strings"

// FallbackItemID is used when a display name yields an empty identifier.
const FallbackItemID = "ITEM001"

const itemIDMaxLen = 10

// DeriveItemID derives the analytics item identifier from a display name:
// upper-case, keep only [A-Z0-9], truncate to 10 characters. Every
// event-producing path must go through this function; the identifier is
// not the cart's key, only the analytics record's.
func DeriveItemID(name string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(name) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			if b.Len() == itemIDMaxLen {
				break
			}
		}
	}
	if b.Len() == 0 {
		return FallbackItemID
	}
	return b.String()
}
