package record

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/indieinfra/vitrine/model"
)

func (s *Store) restaurantCols() string {
	return "id, name, slug, cover_image, created_at, updated_at"
}

func scanRestaurant(row interface{ Scan(...any) error }) (model.Restaurant, error) {
	var r model.Restaurant
	err := row.Scan(&r.ID, &r.Name, &r.Slug, &r.CoverImage, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}

// CreateRestaurant inserts a restaurant row with its cover path already final.
func (s *Store) CreateRestaurant(ctx context.Context, name, slug, coverPath string) (model.Restaurant, error) {
	now := time.Now().UTC()

	query := fmt.Sprintf(
		"INSERT INTO %s (name, slug, cover_image, created_at, updated_at) VALUES (%s, %s, %s, %s, %s)",
		s.table("restaurants"),
		s.placeholderFor(1), s.placeholderFor(2), s.placeholderFor(3), s.placeholderFor(4), s.placeholderFor(5),
	)

	id, err := s.insertID(ctx, query, name, slug, coverPath, now, now)
	if err != nil {
		return model.Restaurant{}, err
	}

	return model.Restaurant{
		ID:         id,
		Name:       name,
		Slug:       slug,
		CoverImage: coverPath,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

func (s *Store) GetRestaurant(ctx context.Context, id int64) (model.Restaurant, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE id = %s",
		s.restaurantCols(), s.table("restaurants"), s.placeholderFor(1),
	)

	r, err := scanRestaurant(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Restaurant{}, ErrNotFound
		}
		return model.Restaurant{}, err
	}

	return r, nil
}

func (s *Store) GetRestaurantBySlug(ctx context.Context, slug string) (model.Restaurant, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE slug = %s",
		s.restaurantCols(), s.table("restaurants"), s.placeholderFor(1),
	)

	r, err := scanRestaurant(s.db.QueryRowContext(ctx, query, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Restaurant{}, ErrNotFound
		}
		return model.Restaurant{}, err
	}

	return r, nil
}

func (s *Store) ListRestaurants(ctx context.Context) ([]model.Restaurant, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s ORDER BY created_at DESC, id DESC",
		s.restaurantCols(), s.table("restaurants"),
	)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Restaurant
	for rows.Next() {
		r, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}

	return out, rows.Err()
}

// SlugTaken reports whether another restaurant already uses slug. Pass
// excludeID 0 when creating; pass the restaurant's own id when renaming.
func (s *Store) SlugTaken(ctx context.Context, slug string, excludeID int64) (bool, error) {
	query := fmt.Sprintf(
		"SELECT 1 FROM %s WHERE slug = %s AND id <> %s",
		s.table("restaurants"), s.placeholderFor(1), s.placeholderFor(2),
	)

	var found int
	err := s.db.QueryRowContext(ctx, query, slug, excludeID).Scan(&found)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

// RenameRestaurant updates name and slug together.
func (s *Store) RenameRestaurant(ctx context.Context, id int64, name, slug string) error {
	query := fmt.Sprintf(
		"UPDATE %s SET name = %s, slug = %s, updated_at = %s WHERE id = %s",
		s.table("restaurants"),
		s.placeholderFor(1), s.placeholderFor(2), s.placeholderFor(3), s.placeholderFor(4),
	)

	return s.execExpectingRow(ctx, query, name, slug, time.Now().UTC(), id)
}

// SetRestaurantCover points the restaurant at a newly committed cover file.
// The statement is atomic at the engine level; the caller deletes the old
// file only after this returns.
func (s *Store) SetRestaurantCover(ctx context.Context, id int64, coverPath string) error {
	query := fmt.Sprintf(
		"UPDATE %s SET cover_image = %s, updated_at = %s WHERE id = %s",
		s.table("restaurants"),
		s.placeholderFor(1), s.placeholderFor(2), s.placeholderFor(3),
	)

	return s.execExpectingRow(ctx, query, coverPath, time.Now().UTC(), id)
}

func (s *Store) DeleteRestaurant(ctx context.Context, id int64) error {
	query := fmt.Sprintf(
		"DELETE FROM %s WHERE id = %s",
		s.table("restaurants"), s.placeholderFor(1),
	)

	return s.execExpectingRow(ctx, query, id)
}

func (s *Store) galleryCols() string {
	return "id, restaurant_id, image_url, created_at, updated_at"
}

func scanGalleryPhoto(row interface{ Scan(...any) error }) (model.GalleryPhoto, error) {
	var p model.GalleryPhoto
	err := row.Scan(&p.ID, &p.RestaurantID, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (s *Store) AddGalleryPhoto(ctx context.Context, restaurantID int64, imageURL string) (model.GalleryPhoto, error) {
	now := time.Now().UTC()

	query := fmt.Sprintf(
		"INSERT INTO %s (restaurant_id, image_url, created_at, updated_at) VALUES (%s, %s, %s, %s)",
		s.table("restaurant_photos"),
		s.placeholderFor(1), s.placeholderFor(2), s.placeholderFor(3), s.placeholderFor(4),
	)

	id, err := s.insertID(ctx, query, restaurantID, imageURL, now, now)
	if err != nil {
		return model.GalleryPhoto{}, err
	}

	return model.GalleryPhoto{
		ID:           id,
		RestaurantID: restaurantID,
		ImageURL:     imageURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (s *Store) GetGalleryPhoto(ctx context.Context, photoID int64) (model.GalleryPhoto, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE id = %s",
		s.galleryCols(), s.table("restaurant_photos"), s.placeholderFor(1),
	)

	p, err := scanGalleryPhoto(s.db.QueryRowContext(ctx, query, photoID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.GalleryPhoto{}, ErrNotFound
		}
		return model.GalleryPhoto{}, err
	}

	return p, nil
}

// ListGalleryPhotos returns a restaurant's photos in creation order.
func (s *Store) ListGalleryPhotos(ctx context.Context, restaurantID int64) ([]model.GalleryPhoto, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE restaurant_id = %s ORDER BY created_at ASC, id ASC",
		s.galleryCols(), s.table("restaurant_photos"), s.placeholderFor(1),
	)

	rows, err := s.db.QueryContext(ctx, query, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.GalleryPhoto
	for rows.Next() {
		p, err := scanGalleryPhoto(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, rows.Err()
}

// SetGalleryPhotoPath points an existing gallery photo at a new file.
func (s *Store) SetGalleryPhotoPath(ctx context.Context, photoID int64, imageURL string) error {
	query := fmt.Sprintf(
		"UPDATE %s SET image_url = %s, updated_at = %s WHERE id = %s",
		s.table("restaurant_photos"),
		s.placeholderFor(1), s.placeholderFor(2), s.placeholderFor(3),
	)

	return s.execExpectingRow(ctx, query, imageURL, time.Now().UTC(), photoID)
}

func (s *Store) DeleteGalleryPhoto(ctx context.Context, photoID int64) error {
	query := fmt.Sprintf(
		"DELETE FROM %s WHERE id = %s",
		s.table("restaurant_photos"), s.placeholderFor(1),
	)

	return s.execExpectingRow(ctx, query, photoID)
}
