// Package slug turns artist names and song titles into URL-safe identifiers.
//
// Greek text is transliterated to Latin letters first, remaining diacritics
// are folded to ASCII, and every run of other characters becomes a single
// hyphen:
//
//	slug.Make("Τυχαίο όνομα από τραγούδι", -1)
//	// Output: "tyxaio-onoma-apo-tragoudi"
//
// Unique resolves collisions against an injected lookup by appending "-1",
// "-2", … while keeping the result within the length budget:
//
//	s, err := slug.Unique(ctx, songs.SlugExists, "Random Song", -1)
//	// "random-song", or "random-song-1" when "random-song" is taken
//
// The lookup only answers whether a slug is taken. Two concurrent writers can
// still race between the check and the insert, so callers keep a uniqueness
// constraint in storage and regenerate on conflict.
package slug
