package record

import (
	"context"
	"fmt"
	"time"

	"github.com/indieinfra/vitrine/model"
)

func (s *Store) CreateVideoLink(ctx context.Context, title, videoURL string) (model.VideoLink, error) {
	now := time.Now().UTC()

	query := fmt.Sprintf(
		"INSERT INTO %s (title, video_url, created_at, updated_at) VALUES (%s, %s, %s, %s)",
		s.table("video_links"),
		s.placeholderFor(1), s.placeholderFor(2), s.placeholderFor(3), s.placeholderFor(4),
	)

	id, err := s.insertID(ctx, query, title, videoURL, now, now)
	if err != nil {
		return model.VideoLink{}, err
	}

	return model.VideoLink{ID: id, Title: title, VideoURL: videoURL, CreatedAt: now, UpdatedAt: now}, nil
}

func (s *Store) ListVideoLinks(ctx context.Context) ([]model.VideoLink, error) {
	query := fmt.Sprintf(
		"SELECT id, title, video_url, created_at, updated_at FROM %s ORDER BY created_at DESC, id DESC",
		s.table("video_links"),
	)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.VideoLink
	for rows.Next() {
		var v model.VideoLink
		if err := rows.Scan(&v.ID, &v.Title, &v.VideoURL, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}

	return out, rows.Err()
}

func (s *Store) DeleteVideoLink(ctx context.Context, id int64) error {
	query := fmt.Sprintf(
		"DELETE FROM %s WHERE id = %s",
		s.table("video_links"), s.placeholderFor(1),
	)

	return s.execExpectingRow(ctx, query, id)
}
