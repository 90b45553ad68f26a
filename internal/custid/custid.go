package custid

import (
	"errors"
	"fmt"
	"strconv"
)

const minPadWidth = 4

var (
	// ErrContention signals the compare-and-swap retry budget was exhausted
	// without winning an allocation.
	ErrContention = errors.New("customer id allocation contention")

	// ErrMalformedID indicates a stored counter value whose suffix is not a
	// decimal number.
	ErrMalformedID = errors.New("malformed customer id")
)

// Increment parses the trailing decimal suffix of id, adds one and re-renders
// it with the original zero-pad width. The width never shrinks below four
// digits and grows naturally once the value outgrows it ("WPAY9999" →
// "WPAY10000").
func Increment(id string) (string, error) {
	prefix, n, width, err := split(id)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%0*d", prefix, width, n+1), nil
}

// Seed returns the initial counter value for a prefix, e.g. "WPAY0000".
func Seed(prefix string) string {
	return fmt.Sprintf("%s%0*d", prefix, minPadWidth, 0)
}

// Suffix returns the numeric suffix of an allocated id.
func Suffix(id string) (uint64, error) {
	_, n, _, err := split(id)
	return n, err
}

func split(id string) (prefix string, n uint64, width int, err error) {
	i := len(id)
	for i > 0 && id[i-1] >= '0' && id[i-1] <= '9' {
		i--
	}
	digits := id[i:]
	if digits == "" {
		return "", 0, 0, fmt.Errorf("%w: %q has no numeric suffix", ErrMalformedID, id)
	}
	n, err = strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return "", 0, 0, fmt.Errorf("%w: %q", ErrMalformedID, id)
	}
	width = len(digits)
	if width < minPadWidth {
		width = minPadWidth
	}
	return id[:i], n, width, nil
}
