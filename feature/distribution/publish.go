package distribution

import (
	"context"
	"fmt"

	"ota-server/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// PublishResult describes one uploaded artifact.
type PublishResult struct {
	Artifact Artifact `json:"artifact"`
	Key      string   `json:"key"`
	Size     int64    `json:"size"`
}

// Publisher uploads local backing files to the bucket read by BucketSource.
type Publisher struct {
	local  Source
	client storage.Client
	bucket string
	region string
	logger *zap.Logger
}

// NewPublisher creates a publisher reading from local and writing to bucket.
func NewPublisher(local Source, client storage.Client, bucket, region string, logger *zap.Logger) *Publisher {
	return &Publisher{
		local:  local,
		client: client,
		bucket: bucket,
		region: region,
		logger: logger,
	}
}

// EnsureBucket creates the bucket when it does not exist yet.
func (p *Publisher) EnsureBucket(ctx context.Context) error {
	exists, err := p.client.BucketExists(ctx, p.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", p.bucket, err)
	}
	if exists {
		return nil
	}

	p.logger.Info("Creating bucket", zap.String("bucket", p.bucket))
	if err := p.client.MakeBucket(ctx, p.bucket, minio.MakeBucketOptions{Region: p.region}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", p.bucket, err)
	}
	return nil
}

// Publish uploads every artifact of the catalog, stopping at the first failure.
func (p *Publisher) Publish(ctx context.Context, catalog Catalog) ([]PublishResult, error) {
	if err := p.EnsureBucket(ctx); err != nil {
		return nil, err
	}

	results := make([]PublishResult, 0, len(catalog))
	for _, a := range catalog {
		res, err := p.publishOne(ctx, a)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

func (p *Publisher) publishOne(ctx context.Context, a Artifact) (PublishResult, error) {
	obj, err := p.local.Open(ctx, a.Path)
	if err != nil {
		return PublishResult{}, fmt.Errorf("failed to read %s: %w", a.Name, err)
	}
	defer obj.Body.Close()

	key := ObjectKey(a.Path)
	_, err = p.client.PutObject(ctx, p.bucket, key, obj.Body, obj.Size, minio.PutObjectOptions{
		ContentType: a.ContentType,
	})
	if err != nil {
		return PublishResult{}, fmt.Errorf("failed to upload %s: %w", a.Name, err)
	}

	p.logger.Info("Published artifact",
		zap.String("artifact", a.Name),
		zap.String("key", key),
		zap.Int64("size", obj.Size))

	return PublishResult{Artifact: a, Key: key, Size: obj.Size}, nil
}
