package testutil

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type TestBucket struct {
	Name    string
	Cleanup func() error
}

// SetupTestBucket creates a fresh bucket and returns a cleanup that empties
// and removes it again.
func SetupTestBucket(endpoint, accessKey, secretKey, name string) (*TestBucket, error) {
	ctx := context.Background()
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: false,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create minio client: %w", err)
	}

	if err := client.MakeBucket(ctx, name, minio.MakeBucketOptions{}); err != nil {
		exists, err2 := client.BucketExists(ctx, name)
		if err2 != nil || !exists {
			return nil, fmt.Errorf("could not create bucket %q: %w", name, err)
		}
	}

	cleanup := func() error {
		for obj := range client.ListObjects(ctx, name, minio.ListObjectsOptions{Recursive: true}) {
			if obj.Err != nil {
				continue
			}
			_ = client.RemoveObject(ctx, name, obj.Key, minio.RemoveObjectOptions{})
		}
		if err := client.RemoveBucket(ctx, name); err != nil {
			return fmt.Errorf("could not remove bucket %q: %w", name, err)
		}
		return nil
	}

	return &TestBucket{Name: name, Cleanup: cleanup}, nil
}
