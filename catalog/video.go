package catalog

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/indieinfra/vitrine/asset"
	"github.com/indieinfra/vitrine/model"
)

// VideoRecords is the slice of the record store the video service depends on.
type VideoRecords interface {
	CreateVideoLink(ctx context.Context, title, videoURL string) (model.VideoLink, error)
	ListVideoLinks(ctx context.Context) ([]model.VideoLink, error)
	DeleteVideoLink(ctx context.Context, id int64) error
}

// VideoService manages video links, a record-only resource with no files.
type VideoService struct {
	records  VideoRecords
	validate *validator.Validate
}

func NewVideoService(records VideoRecords) *VideoService {
	return &VideoService{
		records:  records,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (s *VideoService) Create(ctx context.Context, title, videoURL string) (model.VideoLink, error) {
	if title == "" || len(title) > 120 {
		return model.VideoLink{}, fmt.Errorf("%w: title is required and at most 120 characters", asset.ErrValidation)
	}

	if err := s.validate.Var(videoURL, "required,url"); err != nil {
		return model.VideoLink{}, fmt.Errorf("%w: videoUrl must be a valid url", asset.ErrValidation)
	}

	return s.records.CreateVideoLink(ctx, title, videoURL)
}

func (s *VideoService) List(ctx context.Context) ([]model.VideoLink, error) {
	return s.records.ListVideoLinks(ctx)
}

func (s *VideoService) Delete(ctx context.Context, id int64) error {
	if err := s.records.DeleteVideoLink(ctx, id); err != nil {
		return mapRecordErr(err)
	}

	return nil
}
