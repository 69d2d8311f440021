package s3

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/indieinfra/vitrine/config"
	storageutil "github.com/indieinfra/vitrine/storage/util"
)

// s3Client is the slice of the minio client the store needs; tests swap it.
type s3Client interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

var newMinioClient = func(endpoint string, opts *minio.Options) (s3Client, error) {
	return minio.New(endpoint, opts)
}

// StoreImpl writes media to S3 or any compatible service (R2, Backblaze,
// MinIO). Object removal is already idempotent at the S3 API level, which
// satisfies the delete-of-missing contract for free.
type StoreImpl struct {
	client     s3Client
	bucket     string
	publicBase string
}

func NewS3BlobStore(cfg *config.S3Strategy) (*StoreImpl, error) {
	if cfg == nil {
		return nil, fmt.Errorf("s3 blob config is nil")
	}

	region := strings.TrimSpace(cfg.Region)
	if strings.EqualFold(region, "auto") {
		region = ""
	}

	endpointHost := strings.TrimSpace(cfg.Endpoint)
	if endpointHost == "" {
		if region == "" {
			endpointHost = "s3.amazonaws.com"
		} else {
			endpointHost = fmt.Sprintf("s3.%s.amazonaws.com", region)
		}
	} else {
		if parsed, err := url.Parse(endpointHost); err == nil && parsed.Host != "" {
			endpointHost = parsed.Host
		}
	}

	client, err := newMinioClient(endpointHost, &minio.Options{
		Creds:        credentials.NewStaticV4(cfg.AccessKeyId, cfg.SecretKeyId, ""),
		Secure:       true,
		Region:       region,
		BucketLookup: minio.BucketLookupAuto,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create s3 client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to verify s3 bucket %q: %w", cfg.Bucket, err)
	}
	if !exists {
		return nil, fmt.Errorf("s3 bucket %q does not exist or is not accessible", cfg.Bucket)
	}

	return &StoreImpl{
		client:     client,
		bucket:     cfg.Bucket,
		publicBase: storageutil.NormalizeBaseURL(cfg.PublicBaseUrl),
	}, nil
}

func (s *StoreImpl) Write(ctx context.Context, src io.Reader, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("blob name is required")
	}

	// Size -1 lets minio stream without knowing the length up front; recoded
	// uploads arrive as in-memory buffers of unknown-to-the-caller size.
	if _, err := s.client.PutObject(ctx, s.bucket, name, src, -1, minio.PutObjectOptions{}); err != nil {
		return "", fmt.Errorf("upload to s3 failed: %w", err)
	}

	return s.publicBase + name, nil
}

func (s *StoreImpl) Delete(ctx context.Context, storagePath string) error {
	if !strings.HasPrefix(storagePath, s.publicBase) {
		return fmt.Errorf("storage path %q does not belong to this blob store", storagePath)
	}

	key := strings.TrimPrefix(storagePath, s.publicBase)
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete from s3 failed: %w", err)
	}

	return nil
}
