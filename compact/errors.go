package compact

import (
	"errors"
	"fmt"
)

var (
	// ErrCapacityExceeded is returned when a probe sequence visits every
	// slot without finding an empty or matching one. The table is sized for
	// a load factor of at most 0.5, so this indicates a sizing or hashing
	// bug, not a recoverable runtime condition. The whole operation aborts
	// and no partial output is returned.
	ErrCapacityExceeded = errors.New("compact: id table capacity exceeded")

	// ErrInconsistentSlot is returned when a lookup observes a slot whose
	// key matches but whose value was never published. It can only mean the
	// build-phase barrier was violated.
	ErrInconsistentSlot = errors.New("compact: inconsistent id table slot")
)

// ErrMissingID indicates a lookup for an identifier that was never inserted
// during the build phase.
//
// The original underlying id can be accessed via the RawID field.
type ErrMissingID struct {
	RawID int64
}

func (e *ErrMissingID) Error() string {
	return fmt.Sprintf("compact: id %d not present in table", e.RawID)
}
