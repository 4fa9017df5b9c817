package infra

import (
	"context"
	"fmt"

	"rofoportal/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectStore holds the shared workbook in a MinIO bucket so several service
// instances (and the upstream planning refresh) see the same file. Implements
// store.WorkbookTransport.
type ObjectStore struct {
	client *minio.Client
	bucket string
	object string
}

func NewObjectStore(cfg *config.Config) (*ObjectStore, error) {
	client, err := minio.New(cfg.MinIOEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
		Secure: cfg.MinIOUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}
	return &ObjectStore{
		client: client,
		bucket: cfg.MinIOBucket,
		object: cfg.MinIOObject,
	}, nil
}

// Download fetches the workbook object to localPath.
func (o *ObjectStore) Download(ctx context.Context, localPath string) error {
	if err := o.client.FGetObject(ctx, o.bucket, o.object, localPath, minio.GetObjectOptions{}); err != nil {
		return fmt.Errorf("fetch %s/%s: %w", o.bucket, o.object, err)
	}
	return nil
}

// Upload pushes the workbook at localPath back to the bucket.
func (o *ObjectStore) Upload(ctx context.Context, localPath string) error {
	if _, err := o.client.FPutObject(ctx, o.bucket, o.object, localPath, minio.PutObjectOptions{
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	}); err != nil {
		return fmt.Errorf("push %s/%s: %w", o.bucket, o.object, err)
	}
	return nil
}
