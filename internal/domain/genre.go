package domain

// Genre is the three-letter code of a song's genre.
type Genre string

// Known genres.
const (
	GenreBlues       Genre = "BLU"
	GenreClassic     Genre = "CLA"
	GenreChant       Genre = "CHA"
	GenreEntexno     Genre = "EDE"
	GenreLaiko       Genre = "LAI"
	GenrePop         Genre = "POP"
	GenrePunk        Genre = "PUN"
	GenreRap         Genre = "RAP"
	GenreReggae      Genre = "REG"
	GenreRock        Genre = "ROC"
	GenreTraditional Genre = "TRA"
)

// DefaultGenre is used when a submission does not name one.
const DefaultGenre = GenreEntexno

var genreLabels = map[Genre]string{
	GenreBlues:       "Blues",
	GenreClassic:     "Classic",
	GenreChant:       "Chant",
	GenreEntexno:     "Entexno",
	GenreLaiko:       "Laiko",
	GenrePop:         "Pop",
	GenrePunk:        "Punk",
	GenreRap:         "Rap",
	GenreReggae:      "Reggae",
	GenreRock:        "Rock",
	GenreTraditional: "Traditional",
}

// Valid reports whether g is one of the known genre codes.
func (g Genre) Valid() bool {
	_, ok := genreLabels[g]
	return ok
}

// Label returns the display name of g, or the raw code if it is unknown.
func (g Genre) Label() string {
	if l, ok := genreLabels[g]; ok {
		return l
	}
	return string(g)
}
