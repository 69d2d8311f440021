package catalog

import (
	"context"

	"github.com/indieinfra/vitrine/asset"
	"github.com/indieinfra/vitrine/model"
	"github.com/indieinfra/vitrine/storage/blob"
)

// PhotographyRecords is the slice of the record store the photography
// service depends on.
type PhotographyRecords interface {
	CreatePhotographyPhoto(ctx context.Context, imageURL string) (model.PhotographyPhoto, error)
	GetPhotographyPhoto(ctx context.Context, id int64) (model.PhotographyPhoto, error)
	ListPhotographyPhotos(ctx context.Context) ([]model.PhotographyPhoto, error)
	DeletePhotographyPhoto(ctx context.Context, id int64) error
}

// PhotographyService manages the unowned photo family.
type PhotographyService struct {
	coord   *asset.Coordinator
	records PhotographyRecords
}

func NewPhotographyService(coord *asset.Coordinator, records PhotographyRecords) *PhotographyService {
	return &PhotographyService{coord: coord, records: records}
}

func (s *PhotographyService) Create(ctx context.Context, up asset.Upload) (model.PhotographyPhoto, error) {
	var created model.PhotographyPhoto
	_, err := s.coord.Ingest(ctx, blob.FamilyPhotography, up, func(ctx context.Context, storagePath string) error {
		var insertErr error
		created, insertErr = s.records.CreatePhotographyPhoto(ctx, storagePath)
		return insertErr
	})
	if err != nil {
		return model.PhotographyPhoto{}, err
	}

	return created, nil
}

func (s *PhotographyService) List(ctx context.Context) ([]model.PhotographyPhoto, error) {
	return s.records.ListPhotographyPhotos(ctx)
}

func (s *PhotographyService) Delete(ctx context.Context, id int64) error {
	photo, err := s.records.GetPhotographyPhoto(ctx, id)
	if err != nil {
		return mapRecordErr(err)
	}

	return s.coord.Remove(ctx, photo.ImageURL, func(ctx context.Context) error {
		if err := s.records.DeletePhotographyPhoto(ctx, id); err != nil {
			return mapRecordErr(err)
		}
		return nil
	})
}
