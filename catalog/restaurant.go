// Package catalog implements the restaurant and photography services on top
// of the asset coordinator: slug management, ownership checks, and the
// cascade rules that keep files and rows consistent.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/gosimple/slug"

	"github.com/indieinfra/vitrine/asset"
	"github.com/indieinfra/vitrine/model"
	"github.com/indieinfra/vitrine/storage/blob"
	"github.com/indieinfra/vitrine/storage/record"
)

// RestaurantRecords is the slice of the record store the restaurant service
// depends on.
type RestaurantRecords interface {
	CreateRestaurant(ctx context.Context, name, slug, coverPath string) (model.Restaurant, error)
	GetRestaurant(ctx context.Context, id int64) (model.Restaurant, error)
	GetRestaurantBySlug(ctx context.Context, slug string) (model.Restaurant, error)
	ListRestaurants(ctx context.Context) ([]model.Restaurant, error)
	SlugTaken(ctx context.Context, slug string, excludeID int64) (bool, error)
	RenameRestaurant(ctx context.Context, id int64, name, slug string) error
	SetRestaurantCover(ctx context.Context, id int64, coverPath string) error
	DeleteRestaurant(ctx context.Context, id int64) error

	AddGalleryPhoto(ctx context.Context, restaurantID int64, imageURL string) (model.GalleryPhoto, error)
	GetGalleryPhoto(ctx context.Context, photoID int64) (model.GalleryPhoto, error)
	ListGalleryPhotos(ctx context.Context, restaurantID int64) ([]model.GalleryPhoto, error)
	SetGalleryPhotoPath(ctx context.Context, photoID int64, imageURL string) error
	DeleteGalleryPhoto(ctx context.Context, photoID int64) error
}

type RestaurantService struct {
	coord   *asset.Coordinator
	records RestaurantRecords
}

func NewRestaurantService(coord *asset.Coordinator, records RestaurantRecords) *RestaurantService {
	return &RestaurantService{coord: coord, records: records}
}

func mapRecordErr(err error) error {
	if errors.Is(err, record.ErrNotFound) {
		return asset.ErrNotFound
	}

	return err
}

// Create makes a restaurant together with its cover image in one logical
// operation; a restaurant cannot exist without a cover.
func (s *RestaurantService) Create(ctx context.Context, name string, cover asset.Upload) (model.Restaurant, error) {
	if len(name) < 2 {
		return model.Restaurant{}, fmt.Errorf("%w: name is required", asset.ErrValidation)
	}

	newSlug := slug.Make(name)
	taken, err := s.records.SlugTaken(ctx, newSlug, 0)
	if err != nil {
		return model.Restaurant{}, fmt.Errorf("check slug: %w", err)
	}
	if taken {
		return model.Restaurant{}, fmt.Errorf("%w: restaurant %q already exists", asset.ErrConflict, name)
	}

	var created model.Restaurant
	_, err = s.coord.Ingest(ctx, blob.FamilyRestaurants, cover, func(ctx context.Context, storagePath string) error {
		var insertErr error
		created, insertErr = s.records.CreateRestaurant(ctx, name, newSlug, storagePath)
		return insertErr
	})
	if err != nil {
		return model.Restaurant{}, err
	}

	return created, nil
}

// Update renames the restaurant and/or replaces its cover. Renames recompute
// the slug and re-check uniqueness before any write.
func (s *RestaurantService) Update(ctx context.Context, id int64, name string, cover *asset.Upload) (model.Restaurant, error) {
	r, err := s.records.GetRestaurant(ctx, id)
	if err != nil {
		return model.Restaurant{}, mapRecordErr(err)
	}

	if name != "" && name != r.Name {
		if len(name) < 2 {
			return model.Restaurant{}, fmt.Errorf("%w: name too short", asset.ErrValidation)
		}

		newSlug := slug.Make(name)
		taken, err := s.records.SlugTaken(ctx, newSlug, id)
		if err != nil {
			return model.Restaurant{}, fmt.Errorf("check slug: %w", err)
		}
		if taken {
			return model.Restaurant{}, fmt.Errorf("%w: restaurant %q already exists", asset.ErrConflict, name)
		}

		if err := s.records.RenameRestaurant(ctx, id, name, newSlug); err != nil {
			return model.Restaurant{}, mapRecordErr(err)
		}
	}

	if cover != nil {
		_, err := s.coord.Replace(ctx, blob.FamilyRestaurants, *cover, r.CoverImage, func(ctx context.Context, storagePath string) error {
			return s.records.SetRestaurantCover(ctx, id, storagePath)
		})
		if err != nil {
			return model.Restaurant{}, err
		}
	}

	updated, err := s.records.GetRestaurant(ctx, id)
	if err != nil {
		return model.Restaurant{}, mapRecordErr(err)
	}

	return updated, nil
}

// Delete cascades: every gallery photo (file then record), then the cover
// file, then the restaurant record. Children go before the parent because the
// storage engine does not enforce referential cascade; removing the parent
// first would strand child rows and their files with no deletion path.
func (s *RestaurantService) Delete(ctx context.Context, id int64) error {
	r, err := s.records.GetRestaurant(ctx, id)
	if err != nil {
		return mapRecordErr(err)
	}

	photos, err := s.records.ListGalleryPhotos(ctx, id)
	if err != nil {
		return fmt.Errorf("list gallery photos: %w", err)
	}

	for _, p := range photos {
		err := s.coord.Remove(ctx, p.ImageURL, func(ctx context.Context) error {
			if err := s.records.DeleteGalleryPhoto(ctx, p.ID); err != nil && !errors.Is(err, record.ErrNotFound) {
				return err
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("cascade photo %d: %w", p.ID, err)
		}
	}

	return s.coord.Remove(ctx, r.CoverImage, func(ctx context.Context) error {
		if err := s.records.DeleteRestaurant(ctx, id); err != nil {
			return mapRecordErr(err)
		}
		return nil
	})
}

func (s *RestaurantService) Get(ctx context.Context, id int64) (model.Restaurant, error) {
	r, err := s.records.GetRestaurant(ctx, id)
	if err != nil {
		return model.Restaurant{}, mapRecordErr(err)
	}

	photos, err := s.records.ListGalleryPhotos(ctx, id)
	if err != nil {
		return model.Restaurant{}, fmt.Errorf("list gallery photos: %w", err)
	}
	r.Photos = photos

	return r, nil
}

func (s *RestaurantService) List(ctx context.Context) ([]model.Restaurant, error) {
	return s.records.ListRestaurants(ctx)
}

// GalleryBySlug resolves a restaurant by slug and returns its photos.
func (s *RestaurantService) GalleryBySlug(ctx context.Context, restaurantSlug string) ([]model.GalleryPhoto, error) {
	r, err := s.records.GetRestaurantBySlug(ctx, restaurantSlug)
	if err != nil {
		return nil, mapRecordErr(err)
	}

	return s.records.ListGalleryPhotos(ctx, r.ID)
}

// AddGalleryPhotos ingests a batch of photos for one restaurant. Each photo
// commits independently; a failure partway leaves the earlier pairs intact
// and reports the error.
func (s *RestaurantService) AddGalleryPhotos(ctx context.Context, restaurantID int64, uploads []asset.Upload) ([]model.GalleryPhoto, error) {
	if len(uploads) == 0 {
		return nil, fmt.Errorf("%w: no photos uploaded", asset.ErrValidation)
	}

	if _, err := s.records.GetRestaurant(ctx, restaurantID); err != nil {
		return nil, mapRecordErr(err)
	}

	var photos []model.GalleryPhoto
	for _, up := range uploads {
		var photo model.GalleryPhoto
		_, err := s.coord.Ingest(ctx, blob.FamilyRestaurants, up, func(ctx context.Context, storagePath string) error {
			var insertErr error
			photo, insertErr = s.records.AddGalleryPhoto(ctx, restaurantID, storagePath)
			return insertErr
		})
		if err != nil {
			return photos, err
		}

		photos = append(photos, photo)
	}

	return photos, nil
}

// ReplaceGalleryPhoto swaps the file behind one gallery photo.
func (s *RestaurantService) ReplaceGalleryPhoto(ctx context.Context, restaurantID, photoID int64, up asset.Upload) (model.GalleryPhoto, error) {
	photo, err := s.ownedGalleryPhoto(ctx, restaurantID, photoID)
	if err != nil {
		return model.GalleryPhoto{}, err
	}

	newPath, err := s.coord.Replace(ctx, blob.FamilyRestaurants, up, photo.ImageURL, func(ctx context.Context, storagePath string) error {
		return s.records.SetGalleryPhotoPath(ctx, photoID, storagePath)
	})
	if err != nil {
		return model.GalleryPhoto{}, err
	}

	photo.ImageURL = newPath
	return photo, nil
}

// DeleteGalleryPhoto removes one owned photo, file first.
func (s *RestaurantService) DeleteGalleryPhoto(ctx context.Context, restaurantID, photoID int64) error {
	photo, err := s.ownedGalleryPhoto(ctx, restaurantID, photoID)
	if err != nil {
		return err
	}

	return s.coord.Remove(ctx, photo.ImageURL, func(ctx context.Context) error {
		if err := s.records.DeleteGalleryPhoto(ctx, photoID); err != nil {
			return mapRecordErr(err)
		}
		return nil
	})
}

// ownedGalleryPhoto loads a photo and verifies the claimed owner; a photo
// under a different restaurant is reported as missing, not forbidden.
func (s *RestaurantService) ownedGalleryPhoto(ctx context.Context, restaurantID, photoID int64) (model.GalleryPhoto, error) {
	photo, err := s.records.GetGalleryPhoto(ctx, photoID)
	if err != nil {
		return model.GalleryPhoto{}, mapRecordErr(err)
	}

	if photo.RestaurantID != restaurantID {
		return model.GalleryPhoto{}, fmt.Errorf("%w: photo %d does not belong to restaurant %d", asset.ErrNotFound, photoID, restaurantID)
	}

	return photo, nil
}
