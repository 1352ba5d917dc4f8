package asset

import "errors"

// Intake errors, surfaced synchronously to the caller. They never enter the
// queue.
var (
	ErrUnsupportedType = errors.New("intake: unsupported media type")
	ErrInvalidSize     = errors.New("intake: file size out of bounds")
	ErrStorageFailure  = errors.New("intake: could not store original")
	ErrPublishFailed   = errors.New("intake: could not publish processing job")
)

// ErrNotFound is returned by read operations for unknown asset ids.
var ErrNotFound = errors.New("asset: not found")

// ErrPermanentFailure marks a processing error that no amount of redelivery
// will fix (corrupt content, undecodable image). The worker acknowledges the
// job and records a failed completion event instead of retrying.
var ErrPermanentFailure = errors.New("processing: permanent failure")

// Storage sentinels the minio adapter maps driver errors onto.
var (
	ErrObjectNotFound = errors.New("storage: object not found")
	ErrBucketNotFound = errors.New("storage: bucket not found")
	ErrUnauthorized   = errors.New("storage: unauthorized")
	ErrInternal       = errors.New("storage: internal error")
)
