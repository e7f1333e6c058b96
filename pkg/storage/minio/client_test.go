package minio

import (
	"bytes"
	"context"
	"io"
	"testing"

	miniolib "github.com/minio/minio-go/v7"

	"github.com/ttanapat/mealdiary-backend/pkg/config"
)

type fakeAPI struct {
	buckets map[string]bool
	objects map[string][]byte
	putErr  error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{buckets: map[string]bool{}, objects: map[string][]byte{}}
}

func (f *fakeAPI) BucketExists(ctx context.Context, bucket string) (bool, error) {
	return f.buckets[bucket], nil
}

func (f *fakeAPI) MakeBucket(ctx context.Context, bucket string, opts miniolib.MakeBucketOptions) error {
	f.buckets[bucket] = true
	return nil
}

func (f *fakeAPI) PutObject(ctx context.Context, bucket, object string, reader io.Reader, size int64, opts miniolib.PutObjectOptions) (miniolib.UploadInfo, error) {
	if f.putErr != nil {
		return miniolib.UploadInfo{}, f.putErr
	}
	data, _ := io.ReadAll(reader)
	f.objects[bucket+"/"+object] = data
	return miniolib.UploadInfo{Bucket: bucket, Key: object}, nil
}

func (f *fakeAPI) RemoveObject(ctx context.Context, bucket, object string, opts miniolib.RemoveObjectOptions) error {
	delete(f.objects, bucket+"/"+object)
	return nil
}

func testMinioConfig() config.MinioConfig {
	return config.MinioConfig{
		Endpoint:      "localhost:9000",
		FoodBucket:    "food-images",
		ProfileBucket: "profile-images",
	}
}

func TestNewEnsuresBuckets(t *testing.T) {
	api := newFakeAPI()
	client, err := newWithAPI(context.Background(), api, testMinioConfig())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if !api.buckets["food-images"] || !api.buckets["profile-images"] {
		t.Fatalf("expected both buckets created, got %v", api.buckets)
	}
	if client.FoodBucket() != "food-images" {
		t.Fatalf("unexpected food bucket %q", client.FoodBucket())
	}
}

func TestUploadReturnsPublicURL(t *testing.T) {
	api := newFakeAPI()
	client, err := newWithAPI(context.Background(), api, testMinioConfig())
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	url, err := client.Upload(context.Background(), "food-images", "1715600000000_oatmeal.jpg", "image/jpeg", 4, bytes.NewReader([]byte("data")))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if url != "http://localhost:9000/food-images/1715600000000_oatmeal.jpg" {
		t.Fatalf("unexpected url %q", url)
	}
	if _, ok := api.objects["food-images/1715600000000_oatmeal.jpg"]; !ok {
		t.Fatalf("expected object stored")
	}
}

func TestPublicURLPrefersPublicBase(t *testing.T) {
	cfg := testMinioConfig()
	cfg.PublicBaseURL = "https://cdn.mealdiary.app/"
	client, err := newWithAPI(context.Background(), newFakeAPI(), cfg)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if got := client.PublicURL("food-images", "a b.png"); got != "https://cdn.mealdiary.app/food-images/a%20b.png" {
		t.Fatalf("unexpected url %q", got)
	}
}

func TestRemoveDeletesObject(t *testing.T) {
	api := newFakeAPI()
	client, err := newWithAPI(context.Background(), api, testMinioConfig())
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if _, err := client.Upload(context.Background(), "food-images", "k", "image/png", 1, bytes.NewReader([]byte("x"))); err != nil {
		t.Fatalf("upload: %v", err)
	}
	if err := client.Remove(context.Background(), "food-images", "k"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok := api.objects["food-images/k"]; ok {
		t.Fatalf("expected object removed")
	}
}
