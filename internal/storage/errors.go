package storage

import (
	"fmt"

	"github.com/minio/minio-go/v7"

	"github.com/picstream/picstream-go/internal/usecase/asset"
)

func mapMinioErr(err error) error {
	if err == nil {
		return nil
	}
	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchKey":
		return asset.ErrObjectNotFound
	case "NoSuchBucket":
		return asset.ErrBucketNotFound
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return asset.ErrUnauthorized
	default:
		// catch everything else
		return fmt.Errorf("%w: %v", asset.ErrInternal, err)
	}
}
