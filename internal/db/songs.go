package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SongRepository handles song database operations.
type SongRepository struct {
	pool *pgxpool.Pool
}

const songColumns = `id, title, artist, lyrics, source_file, position, created_at, updated_at`

// UpsertBatch inserts or updates multiple songs efficiently.
func (r *SongRepository) UpsertBatch(ctx context.Context, songs []Song) error {
	if len(songs) == 0 {
		return nil
	}

	query := `
		INSERT INTO songs (id, title, artist, lyrics, source_file, position, created_at, updated_at)
		SELECT id, title, artist, lyrics, source_file, position, ts, ts
		FROM unnest($1::text[], $2::text[], $3::text[], $4::text[], $5::text[], $6::int[], $7::timestamptz[])
			AS u(id, title, artist, lyrics, source_file, position, ts)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			artist = EXCLUDED.artist,
			lyrics = EXCLUDED.lyrics,
			source_file = EXCLUDED.source_file,
			position = EXCLUDED.position,
			updated_at = EXCLUDED.updated_at
	`

	ids := make([]string, len(songs))
	titles := make([]*string, len(songs))
	artists := make([]*string, len(songs))
	lyrics := make([]*string, len(songs))
	sources := make([]string, len(songs))
	positions := make([]int32, len(songs))
	timestamps := make([]time.Time, len(songs))

	now := time.Now()
	for i, s := range songs {
		ids[i] = s.ID
		titles[i] = s.Title
		artists[i] = s.Artist
		lyrics[i] = s.Lyrics
		sources[i] = s.SourceFile
		positions[i] = int32(s.Position)
		timestamps[i] = now
	}

	_, err := r.pool.Exec(ctx, query, ids, titles, artists, lyrics, sources, positions, timestamps)
	if err != nil {
		return fmt.Errorf("batch upserting songs: %w", err)
	}
	return nil
}

// Get retrieves a song by ID.
func (r *SongRepository) Get(ctx context.Context, id string) (*Song, error) {
	query := `SELECT ` + songColumns + ` FROM songs WHERE id = $1`

	var s Song
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID,
		&s.Title,
		&s.Artist,
		&s.Lyrics,
		&s.SourceFile,
		&s.Position,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying song: %w", err)
	}
	return &s, nil
}

// List returns all songs in import order.
func (r *SongRepository) List(ctx context.Context) ([]Song, error) {
	query := `SELECT ` + songColumns + ` FROM songs ORDER BY position, id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying songs: %w", err)
	}
	defer rows.Close()

	var songs []Song
	for rows.Next() {
		var s Song
		if err := rows.Scan(
			&s.ID,
			&s.Title,
			&s.Artist,
			&s.Lyrics,
			&s.SourceFile,
			&s.Position,
			&s.CreatedAt,
			&s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning song: %w", err)
		}
		songs = append(songs, s)
	}
	return songs, rows.Err()
}

// Count returns the number of stored songs.
func (r *SongRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM songs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting songs: %w", err)
	}
	return n, nil
}

// DeleteAll removes every song. Cached tags are kept; they are keyed by
// artist and title and stay valid across re-imports.
func (r *SongRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM songs`); err != nil {
		return fmt.Errorf("deleting songs: %w", err)
	}
	return nil
}
