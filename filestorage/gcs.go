package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/storage"
)

const (
	timeout = time.Second * 50
)

// GSCClient is a client for google cloud storage
type GSCClient struct {
	client *storage.Client
}

// NewGCSClient returns an instance of GCS using the default credentials.
func NewGCSClient(ctx context.Context) (FileStorage, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client, error %w", err)
	}
	return &GSCClient{
		client: client,
	}, nil
}

// Upload writes b to the bucket under fileName and returns the object URL.
func (gcs *GSCClient) Upload(ctx context.Context, b []byte, bucket, fileName string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	wc := gcs.client.Bucket(bucket).Object(fileName).NewWriter(ctx)
	if _, err := io.Copy(wc, bytes.NewReader(b)); err != nil {
		return "", fmt.Errorf("failed to copy content to GCS object (%s/%s), error %w", bucket, fileName, err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("failed to close GCS writer (%s/%s), error %w", bucket, fileName, err)
	}
	return fmt.Sprintf("gs://%s/%s", bucket, fileName), nil
}

// Download reads a whole object.
func (gcs *GSCClient) Download(ctx context.Context, bucket, fileName string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	rc, err := gcs.client.Bucket(bucket).Object(fileName).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open GCS object (%s/%s), error %w", bucket, fileName, err)
	}
	defer rc.Close()
	b, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read GCS object (%s/%s), error %w", bucket, fileName, err)
	}
	return b, nil
}

// FileExists checks if the object exists.
func (gcs *GSCClient) FileExists(ctx context.Context, bucket, fileName string) bool {
	_, err := gcs.client.Bucket(bucket).Object(fileName).Attrs(ctx)
	return err == nil
}
