package minio

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/Innovatorone/InnoBOOKweb/internal/config"
	"github.com/Innovatorone/InnoBOOKweb/internal/model"
)

// Internal adapter interface to enable mocking without a real MinIO server.
type minioAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PresignedGetObject(ctx context.Context, bucketName, objectName string, expires time.Duration, reqParams url.Values) (*url.URL, error)
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
}

var _ minioAPI = (*minio.Client)(nil)

var _ model.CoverStorage = (*Client)(nil)

// Client serves book covers and avatars from a bucket.
type Client struct {
	api    minioAPI
	bucket string
}

// Connect dials MinIO with static credentials from cfg.
func Connect(ctx context.Context, cfg config.Storage) (*Client, error) {
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	return NewClient(ctx, mc, cfg.Bucket)
}

// NewClient creates a new MinIO storage client using a real *minio.Client instance.
func NewClient(ctx context.Context, client *minio.Client, bucket string) (*Client, error) {
	return NewClientWithAPI(ctx, client, bucket)
}

// NewClientWithAPI allows injecting a mockable API (used in tests).
func NewClientWithAPI(ctx context.Context, api minioAPI, bucket string) (*Client, error) {
	c := &Client{
		api:    api,
		bucket: bucket,
	}

	// Ensure bucket exists
	err := c.ensureBucketExists(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure bucket exists: %w", err)
	}

	return c, nil
}

// ensureBucketExists creates the bucket if it doesn't exist
func (c *Client) ensureBucketExists(ctx context.Context) error {
	exists, err := c.api.BucketExists(ctx, c.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		err = c.api.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

// PresignedURL returns a time-limited GET URL for key.
func (c *Client) PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	u, err := c.api.PresignedGetObject(ctx, c.bucket, key, ttl, nil)
	if err != nil {
		return "", fmt.Errorf("failed to presign object: %w", err)
	}
	return u.String(), nil
}

// Exists checks if object exists in MinIO
func (c *Client) Exists(ctx context.Context, key string) (bool, error) {
	_, err := c.api.StatObject(ctx, c.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat object: %w", err)
	}
	return true, nil
}
