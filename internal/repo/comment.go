package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/ilstam/guitarchords/internal/domain"
)

// CommentRepo defines the persistence operations for Comments.
type CommentRepo interface {
	// Create inserts a comment and returns the persisted record.
	Create(ctx context.Context, comment domain.Comment) (domain.Comment, error)

	// ListBySong returns the comments on a song, oldest first.
	ListBySong(ctx context.Context, songID uuid.UUID) ([]domain.Comment, error)
}

type pgCommentRepo struct {
	db db
}

// NewCommentRepo constructs a CommentRepo backed by the provided db connection.
func NewCommentRepo(db db) CommentRepo {
	return &pgCommentRepo{db: db}
}

func (r *pgCommentRepo) Create(ctx context.Context, comment domain.Comment) (domain.Comment, error) {
	const q = `
		INSERT INTO comments (song_id, username, body)
		VALUES (@song_id, @username, @body)
		RETURNING id, song_id, username, body, created_at`

	args := pgx.NamedArgs{
		"song_id":  comment.SongID,
		"username": comment.Username,
		"body":     comment.Body,
	}
	result, err := scanComment(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Comment{}, fmt.Errorf("repo.CommentRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgCommentRepo) ListBySong(ctx context.Context, songID uuid.UUID) ([]domain.Comment, error) {
	const q = `
		SELECT id, song_id, username, body, created_at
		FROM comments
		WHERE song_id = @song_id
		ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"song_id": songID})
	if err != nil {
		return nil, fmt.Errorf("repo.CommentRepo.ListBySong: %w", err)
	}
	defer rows.Close()

	comments := []domain.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.CommentRepo.ListBySong: scan: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.CommentRepo.ListBySong: rows: %w", err)
	}
	return comments, nil
}

func scanComment(s scanner) (domain.Comment, error) {
	var (
		c      domain.Comment
		id     pgtype.UUID
		songID pgtype.UUID
	)
	if err := s.Scan(&id, &songID, &c.Username, &c.Body, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Comment{}, domain.ErrNotFound
		}
		return domain.Comment{}, err
	}
	c.ID = uuid.UUID(id.Bytes)
	c.SongID = uuid.UUID(songID.Bytes)
	return c, nil
}
