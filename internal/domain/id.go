package domain

import "github.com/oklog/ulid/v2"

// NewID mints an entity-prefixed ULID, e.g. "post_01J...". ULIDs are
// timestamp-ordered, so identifiers sort roughly by creation time without a
// central counter.
func NewID(prefix string) string {
	return prefix + "_" + ulid.Make().String()
}
