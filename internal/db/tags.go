package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TagRepository handles song tag database operations.
type TagRepository struct {
	pool *pgxpool.Pool
}

// UpsertBatch inserts or updates multiple tags efficiently.
func (r *TagRepository) UpsertBatch(ctx context.Context, tags []SongTag) error {
	if len(tags) == 0 {
		return nil
	}

	query := `
		INSERT INTO song_tags (song_id, tag_name, tag_count, source, fetched_at)
		SELECT * FROM unnest($1::text[], $2::text[], $3::int[], $4::text[], $5::timestamptz[])
		ON CONFLICT (song_id, tag_name) DO UPDATE SET
			tag_count = EXCLUDED.tag_count,
			source = EXCLUDED.source,
			fetched_at = EXCLUDED.fetched_at
	`

	songIDs := make([]string, len(tags))
	tagNames := make([]string, len(tags))
	tagCounts := make([]int32, len(tags))
	sources := make([]string, len(tags))
	fetchedAts := make([]time.Time, len(tags))

	for i, t := range tags {
		songIDs[i] = t.SongID
		tagNames[i] = t.TagName
		tagCounts[i] = int32(t.TagCount)
		sources[i] = t.Source
		fetchedAts[i] = t.FetchedAt
	}

	_, err := r.pool.Exec(ctx, query, songIDs, tagNames, tagCounts, sources, fetchedAts)
	if err != nil {
		return fmt.Errorf("batch upserting tags: %w", err)
	}
	return nil
}

// GetForSongs retrieves tags for multiple songs, returning a map of song ID to tags
// ordered by count descending.
func (r *TagRepository) GetForSongs(ctx context.Context, songIDs []string) (map[string][]SongTag, error) {
	if len(songIDs) == 0 {
		return make(map[string][]SongTag), nil
	}

	query := `
		SELECT song_id, tag_name, tag_count, source, fetched_at
		FROM song_tags
		WHERE song_id = ANY($1)
		ORDER BY song_id, tag_count DESC
	`
	rows, err := r.pool.Query(ctx, query, songIDs)
	if err != nil {
		return nil, fmt.Errorf("querying song tags: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]SongTag)
	for rows.Next() {
		var tag SongTag
		if err := rows.Scan(
			&tag.SongID,
			&tag.TagName,
			&tag.TagCount,
			&tag.Source,
			&tag.FetchedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning tag: %w", err)
		}
		result[tag.SongID] = append(result[tag.SongID], tag)
	}
	return result, rows.Err()
}

// GetStale returns song IDs with tags fetched before olderThan.
func (r *TagRepository) GetStale(ctx context.Context, olderThan time.Time, limit int) ([]string, error) {
	query := `
		SELECT DISTINCT song_id
		FROM song_tags
		WHERE fetched_at < $1
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, olderThan, limit)
	if err != nil {
		return nil, fmt.Errorf("querying stale tags: %w", err)
	}
	defer rows.Close()

	var songIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning song ID: %w", err)
		}
		songIDs = append(songIDs, id)
	}
	return songIDs, rows.Err()
}

// DeleteForSong removes all tags for a song.
func (r *TagRepository) DeleteForSong(ctx context.Context, songID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM song_tags WHERE song_id = $1`, songID)
	if err != nil {
		return fmt.Errorf("deleting song tags: %w", err)
	}
	return nil
}
