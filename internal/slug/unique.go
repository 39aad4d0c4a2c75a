package slug

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// ExistsFunc reports whether slug is already assigned to a record of the
// entity being named. Repositories expose one per table.
type ExistsFunc func(ctx context.Context, slug string) (bool, error)

// Unique returns a slug for s that exists does not report as taken.
//
// The plain slug is tried first; after that the suffixes "-1", "-2", … are
// appended, shortening the base so the whole slug never exceeds maxLength.
// A non-positive maxLength selects DefaultMaxLength.
//
// Errors from exists are wrapped and returned as-is; Unique never retries.
func Unique(ctx context.Context, exists ExistsFunc, s string, maxLength int) (string, error) {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}

	base := Make(s, maxLength)
	if base == "" {
		return "", ErrEmpty
	}

	candidate := base
	for n := 1; ; n++ {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("slug.Unique: %w", err)
		}

		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("slug.Unique: %w", err)
		}
		if !taken {
			return candidate, nil
		}

		suffix := "-" + strconv.Itoa(n)
		keep := maxLength - len(suffix)
		if keep < 1 {
			return "", ErrExhausted
		}
		candidate = strings.TrimRight(base[:min(keep, len(base))], "-") + suffix
	}
}
