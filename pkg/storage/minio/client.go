package minio

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	miniolib "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/ttanapat/mealdiary-backend/pkg/config"
	"github.com/ttanapat/mealdiary-backend/pkg/logger"
)

// api is the slice of the MinIO SDK the client depends on; tests swap it out.
type api interface {
	BucketExists(ctx context.Context, bucket string) (bool, error)
	MakeBucket(ctx context.Context, bucket string, opts miniolib.MakeBucketOptions) error
	PutObject(ctx context.Context, bucket, object string, reader io.Reader, size int64, opts miniolib.PutObjectOptions) (miniolib.UploadInfo, error)
	RemoveObject(ctx context.Context, bucket, object string, opts miniolib.RemoveObjectOptions) error
}

type sdkWrapper struct{ c *miniolib.Client }

func (w sdkWrapper) BucketExists(ctx context.Context, bucket string) (bool, error) {
	return w.c.BucketExists(ctx, bucket)
}

func (w sdkWrapper) MakeBucket(ctx context.Context, bucket string, opts miniolib.MakeBucketOptions) error {
	return w.c.MakeBucket(ctx, bucket, opts)
}

func (w sdkWrapper) PutObject(ctx context.Context, bucket, object string, reader io.Reader, size int64, opts miniolib.PutObjectOptions) (miniolib.UploadInfo, error) {
	return w.c.PutObject(ctx, bucket, object, reader, size, opts)
}

func (w sdkWrapper) RemoveObject(ctx context.Context, bucket, object string, opts miniolib.RemoveObjectOptions) error {
	return w.c.RemoveObject(ctx, bucket, object, opts)
}

// Client wraps the MinIO SDK with the two image buckets the service owns.
type Client struct {
	api           api
	endpoint      string
	useSSL        bool
	publicBaseURL string
	foodBucket    string
	profileBucket string
}

// Pinger exposes the health-check surface.
type Pinger interface {
	Ping(ctx context.Context) error
}

// New connects to the object store and ensures both buckets exist.
func New(ctx context.Context, cfg config.MinioConfig, logg *logger.Logger) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint is required")
	}
	if cfg.FoodBucket == "" || cfg.ProfileBucket == "" {
		return nil, fmt.Errorf("minio bucket names are required")
	}

	raw, err := miniolib.New(cfg.Endpoint, &miniolib.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("creating minio client: %w", err)
	}

	client, err := newWithAPI(ctx, sdkWrapper{c: raw}, cfg)
	if err != nil {
		return nil, err
	}

	if logg != nil {
		logg.Info(ctx, "object storage client initialized")
	}
	return client, nil
}

func newWithAPI(ctx context.Context, a api, cfg config.MinioConfig) (*Client, error) {
	client := &Client{
		api:           a,
		endpoint:      cfg.Endpoint,
		useSSL:        cfg.UseSSL,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		foodBucket:    cfg.FoodBucket,
		profileBucket: cfg.ProfileBucket,
	}

	for _, bucket := range []string{cfg.FoodBucket, cfg.ProfileBucket} {
		if err := client.ensureBucket(ctx, bucket); err != nil {
			return nil, err
		}
	}
	return client, nil
}

func (c *Client) ensureBucket(ctx context.Context, bucket string) error {
	exists, err := c.api.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("checking bucket %q: %w", bucket, err)
	}
	if exists {
		return nil
	}
	if err := c.api.MakeBucket(ctx, bucket, miniolib.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("creating bucket %q: %w", bucket, err)
	}
	return nil
}

// FoodBucket returns the bucket name holding food entry images.
func (c *Client) FoodBucket() string {
	return c.foodBucket
}

// ProfileBucket returns the bucket name holding profile images.
func (c *Client) ProfileBucket() string {
	return c.profileBucket
}

// Upload writes the object and returns its public URL.
func (c *Client) Upload(ctx context.Context, bucket, key, contentType string, size int64, reader io.Reader) (string, error) {
	if bucket == "" || key == "" {
		return "", fmt.Errorf("bucket and key are required")
	}
	_, err := c.api.PutObject(ctx, bucket, key, reader, size, miniolib.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("uploading object %s/%s: %w", bucket, key, err)
	}
	return c.PublicURL(bucket, key), nil
}

// Remove deletes the object. Used by delete flows and by compensating
// cleanup when a record write fails after a successful upload.
func (c *Client) Remove(ctx context.Context, bucket, key string) error {
	if bucket == "" || key == "" {
		return fmt.Errorf("bucket and key are required")
	}
	if err := c.api.RemoveObject(ctx, bucket, key, miniolib.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("removing object %s/%s: %w", bucket, key, err)
	}
	return nil
}

// PublicURL resolves the browsable URL for an object.
func (c *Client) PublicURL(bucket, key string) string {
	escaped := url.PathEscape(key)
	if c.publicBaseURL != "" {
		return fmt.Sprintf("%s/%s/%s", c.publicBaseURL, bucket, escaped)
	}
	scheme := "http"
	if c.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, c.endpoint, bucket, escaped)
}

// Ping checks reachability by probing the food bucket.
func (c *Client) Ping(ctx context.Context) error {
	if c.api == nil {
		return fmt.Errorf("minio client not initialized")
	}
	if _, err := c.api.BucketExists(ctx, c.foodBucket); err != nil {
		return fmt.Errorf("ping object storage: %w", err)
	}
	return nil
}
