package slug

import "strings"

// greekToLatin is the single transliteration table used for slugs.
// Accented and diaeresis forms map to their base letter; final sigma maps
// like sigma. Θ, Ξ and Ψ expand to two letters.
var greekToLatin = map[rune]string{
	'α': "a", 'ά': "a",
	'β': "b",
	'γ': "g",
	'δ': "d",
	'ε': "e", 'έ': "e",
	'ζ': "z",
	'η': "h", 'ή': "h",
	'θ': "th",
	'ι': "i", 'ί': "i", 'ϊ': "i", 'ΐ': "i",
	'κ': "k",
	'λ': "l",
	'μ': "m",
	'ν': "n",
	'ξ': "ks",
	'ο': "o", 'ό': "o",
	'π': "p",
	'ρ': "r",
	'σ': "s", 'ς': "s",
	'τ': "t",
	'υ': "y", 'ύ': "y", 'ϋ': "y", 'ΰ': "y",
	'φ': "f",
	'χ': "x",
	'ψ': "ps",
	'ω': "w", 'ώ': "w",

	'Α': "A", 'Ά': "A",
	'Β': "B",
	'Γ': "G",
	'Δ': "D",
	'Ε': "E", 'Έ': "E",
	'Ζ': "Z",
	'Η': "H", 'Ή': "H",
	'Θ': "Th",
	'Ι': "I", 'Ί': "I", 'Ϊ': "I",
	'Κ': "K",
	'Λ': "L",
	'Μ': "M",
	'Ν': "N",
	'Ξ': "Ks",
	'Ο': "O", 'Ό': "O",
	'Π': "P",
	'Ρ': "R",
	'Σ': "S",
	'Τ': "T",
	'Υ': "Y", 'Ύ': "Y", 'Ϋ': "Y",
	'Φ': "F",
	'Χ': "X",
	'Ψ': "Ps",
	'Ω': "W", 'Ώ': "W",
}

// Transliterate replaces every Greek letter in s with its Latin mapping.
// An upsilon that follows an omicron is written "u" so that "ου" reads "ou",
// keeping the case of each letter ("ΟΥ" -> "OU", "Ου" -> "Ou"). Upsilon with
// diaeresis never joins the diphthong. All other runes are copied unchanged.
func Transliterate(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	afterOmicron := false
	for _, r := range s {
		switch {
		case afterOmicron && (r == 'υ' || r == 'ύ'):
			b.WriteByte('u')
		case afterOmicron && (r == 'Υ' || r == 'Ύ'):
			b.WriteByte('U')
		default:
			if latin, ok := greekToLatin[r]; ok {
				b.WriteString(latin)
			} else {
				b.WriteRune(r)
			}
		}
		afterOmicron = r == 'ο' || r == 'ό' || r == 'Ο' || r == 'Ό'
	}
	return b.String()
}
