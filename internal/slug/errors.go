package slug

import "errors"

var (
	// ErrEmpty is returned by Unique when the source text contains no letter
	// or digit that survives slugification.
	ErrEmpty = errors.New("slug: empty after normalization")

	// ErrExhausted is returned by Unique when the length budget is too small
	// to hold a numeric suffix.
	ErrExhausted = errors.New("slug: no free slug within length budget")
)
