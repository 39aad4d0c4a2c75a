package main

import (
	_ "embed"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/ilstam/guitarchords/internal/domain"
)

//go:embed default.yaml
var defaultFixture []byte

// seedUser publishes fixture songs and is the sender of those that name none.
const seedUser = "seed"

// Fixture is the YAML document loaded by the seed command.
type Fixture struct {
	Artists []ArtistFixture `yaml:"artists"`
}

// ArtistFixture is an artist and the songs filed under it.
type ArtistFixture struct {
	Name  string        `yaml:"name"`
	Songs []SongFixture `yaml:"songs"`
}

// SongFixture is one song of an ArtistFixture.
type SongFixture struct {
	Title     string       `yaml:"title"`
	Sender    string       `yaml:"sender"`
	Genre     domain.Genre `yaml:"genre"`
	Video     string       `yaml:"video"`
	Tabs      bool         `yaml:"tabs"`
	Published bool         `yaml:"published"`
	Content   string       `yaml:"content"`
}

// decodeFixture parses and sanity-checks a fixture. Field-level validation
// is left to the services.
func decodeFixture(r io.Reader) (Fixture, error) {
	var f Fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return Fixture{}, fmt.Errorf("decode fixture: %w", err)
	}

	var errs []error
	for i, a := range f.Artists {
		if a.Name == "" {
			errs = append(errs, fmt.Errorf("artists[%d]: name is required", i))
		}
		for j, s := range a.Songs {
			if s.Title == "" {
				errs = append(errs, fmt.Errorf("artists[%d].songs[%d]: title is required", i, j))
			}
		}
	}
	if len(errs) > 0 {
		return Fixture{}, errors.Join(errs...)
	}
	return f, nil
}

// submission converts s into what SongService.Submit expects.
func (s SongFixture) submission(artist string) domain.SongSubmission {
	sender := s.Sender
	if sender == "" {
		sender = seedUser
	}
	return domain.SongSubmission{
		Title:      s.Title,
		ArtistName: artist,
		Genre:      s.Genre,
		Video:      s.Video,
		Tabs:       s.Tabs,
		Content:    s.Content,
		Sender:     sender,
	}
}
