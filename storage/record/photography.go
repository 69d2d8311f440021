package record

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/indieinfra/vitrine/model"
)

func scanPhotographyPhoto(row interface{ Scan(...any) error }) (model.PhotographyPhoto, error) {
	var p model.PhotographyPhoto
	err := row.Scan(&p.ID, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (s *Store) CreatePhotographyPhoto(ctx context.Context, imageURL string) (model.PhotographyPhoto, error) {
	now := time.Now().UTC()

	query := fmt.Sprintf(
		"INSERT INTO %s (image_url, created_at, updated_at) VALUES (%s, %s, %s)",
		s.table("photography_photos"),
		s.placeholderFor(1), s.placeholderFor(2), s.placeholderFor(3),
	)

	id, err := s.insertID(ctx, query, imageURL, now, now)
	if err != nil {
		return model.PhotographyPhoto{}, err
	}

	return model.PhotographyPhoto{ID: id, ImageURL: imageURL, CreatedAt: now, UpdatedAt: now}, nil
}

func (s *Store) GetPhotographyPhoto(ctx context.Context, id int64) (model.PhotographyPhoto, error) {
	query := fmt.Sprintf(
		"SELECT id, image_url, created_at, updated_at FROM %s WHERE id = %s",
		s.table("photography_photos"), s.placeholderFor(1),
	)

	p, err := scanPhotographyPhoto(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.PhotographyPhoto{}, ErrNotFound
		}
		return model.PhotographyPhoto{}, err
	}

	return p, nil
}

func (s *Store) ListPhotographyPhotos(ctx context.Context) ([]model.PhotographyPhoto, error) {
	query := fmt.Sprintf(
		"SELECT id, image_url, created_at, updated_at FROM %s ORDER BY created_at DESC, id DESC",
		s.table("photography_photos"),
	)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.PhotographyPhoto
	for rows.Next() {
		p, err := scanPhotographyPhoto(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, rows.Err()
}

func (s *Store) DeletePhotographyPhoto(ctx context.Context, id int64) error {
	query := fmt.Sprintf(
		"DELETE FROM %s WHERE id = %s",
		s.table("photography_photos"), s.placeholderFor(1),
	)

	return s.execExpectingRow(ctx, query, id)
}
