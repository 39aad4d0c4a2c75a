// Command seed fills a database with artists and songs from a YAML fixture.
// Without -file it loads a small built-in sample catalogue.
//
// Songs are skipped when their artist already has a published song with the
// same title, so the command can be re-run against a seeded database.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/ilstam/guitarchords/internal/cache"
	"github.com/ilstam/guitarchords/internal/config"
	"github.com/ilstam/guitarchords/internal/domain"
	"github.com/ilstam/guitarchords/internal/repo"
	"github.com/ilstam/guitarchords/internal/service"
	"github.com/ilstam/guitarchords/migrations"
)

func main() {
	file := flag.String("file", "", "YAML fixture to load (default: built-in sample)")
	configPath := flag.String("config", "", "optional config file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	if err := run(context.Background(), logger, *configPath, *file); err != nil {
		logger.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, configPath, file string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	var src io.Reader = bytes.NewReader(defaultFixture)
	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			return err
		}
		defer f.Close()
		src = f
	}
	fixture, err := decodeFixture(src)
	if err != nil {
		return err
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("create database pool: %w", err)
	}
	defer pool.Close()

	sqlDB := stdlib.OpenDBFromPool(pool)
	_, err = migrations.Up(ctx, sqlDB)
	_ = sqlDB.Close()
	if err != nil {
		return err
	}

	songRepo := repo.NewSongRepo(pool)
	slugLen := service.WithSlugMaxLength(cfg.SlugMaxLength)
	mods := service.WithModerators(seedUser)
	artists := service.NewArtistService(repo.NewArtistRepo(pool), songRepo, slugLen, mods)
	songs := service.NewSongService(songRepo, artists,
		cache.NewMemory[[]domain.Song](time.Minute), cache.NewMemory[domain.Stats](time.Minute), slugLen, mods)

	s := &seeder{artists: artists, songs: songs, logger: logger}
	return s.load(ctx, fixture)
}

type seeder struct {
	artists *service.ArtistService
	songs   *service.SongService
	logger  *slog.Logger
}

func (s *seeder) load(ctx context.Context, f Fixture) error {
	var created, skipped int
	for _, a := range f.Artists {
		artist, err := s.artists.FindOrCreate(ctx, a.Name)
		if err != nil {
			return fmt.Errorf("artist %q: %w", a.Name, err)
		}

		existing, err := s.artists.Songs(ctx, artist.Slug)
		if err != nil {
			return fmt.Errorf("artist %q: %w", a.Name, err)
		}
		have := make(map[string]bool, len(existing))
		for _, song := range existing {
			have[song.Title] = true
		}

		for _, sf := range a.Songs {
			if have[sf.Title] {
				skipped++
				continue
			}

			song, err := s.songs.Submit(ctx, sf.submission(artist.Name))
			if err != nil {
				return fmt.Errorf("song %q: %w", sf.Title, err)
			}
			if sf.Published {
				published := true
				if _, err := s.songs.Update(ctx, song.Slug, seedUser, domain.SongUpdate{Published: &published}); err != nil {
					return fmt.Errorf("publish %q: %w", sf.Title, err)
				}
			}
			s.logger.Info("song added", "artist", artist.Slug, "slug", song.Slug, "published", sf.Published)
			created++
		}
	}
	s.logger.Info("seed complete", "songs_added", created, "songs_skipped", skipped)
	return nil
}
