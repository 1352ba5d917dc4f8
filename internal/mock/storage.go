package mock

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/picstream/picstream-go/internal/port"
)

// Storage implements the storage interface for tests.
type Storage struct {
	// stored values
	StatInfoOut port.FileInfo
	GetOut      io.ReadSeeker
	ExistsOut   bool

	// captured inputs
	Bucket     string
	ObjectKey  string
	TTL        time.Duration
	SavedKeys  []string
	SavedData  map[string][]byte
	RemovedKey []string

	// errors
	InitBucketErr           error
	GenerateDownloadLinkErr error
	StatErr                 error
	RemoveErr               error
	GetErr                  error
	SaveErr                 error
	FileExistsErr           error

	// call flags
	InitBucketCalled           bool
	GenerateDownloadLinkCalled bool
	StatCalled                 bool
	RemoveCalled               bool
	GetCalled                  bool
	SaveCalled                 bool
	FileExistsCalled           bool
}

// compile-time check: *Storage must satisfy port.Storage
var _ port.Storage = (*Storage)(nil)

func (m *Storage) InitBucket(bucket string) error {
	m.InitBucketCalled = true
	m.Bucket = bucket
	return m.InitBucketErr
}

func (m *Storage) GeneratePresignedDownloadURL(ctx context.Context, bucket, fileKey string, expiry time.Duration) (string, error) {
	m.GenerateDownloadLinkCalled = true
	m.Bucket = bucket
	m.ObjectKey = fileKey
	m.TTL = expiry
	if m.GenerateDownloadLinkErr != nil {
		return "", m.GenerateDownloadLinkErr
	}
	return "https://example.com/download/" + fileKey, nil
}

func (m *Storage) FileExists(ctx context.Context, bucket, fileKey string) (bool, error) {
	m.FileExistsCalled = true
	if m.FileExistsErr != nil {
		return false, m.FileExistsErr
	}
	return m.ExistsOut, nil
}

func (m *Storage) StatFile(ctx context.Context, bucket, fileKey string) (port.FileInfo, error) {
	m.StatCalled = true
	if m.StatErr != nil {
		return port.FileInfo{}, m.StatErr
	}
	return m.StatInfoOut, nil
}

func (m *Storage) RemoveFile(ctx context.Context, bucket, fileKey string) error {
	m.RemoveCalled = true
	m.RemovedKey = append(m.RemovedKey, fileKey)
	return m.RemoveErr
}

func (m *Storage) GetFile(ctx context.Context, bucket, fileKey string) (io.ReadSeekCloser, error) {
	m.GetCalled = true
	m.ObjectKey = fileKey
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	if m.GetOut != nil {
		return noopRSC{m.GetOut}, nil
	}
	return noopRSC{bytes.NewReader([]byte("dummy"))}, nil
}

func (m *Storage) SaveFile(ctx context.Context, bucket, fileKey string, reader io.Reader, fileSize int64, opts map[string]string) error {
	m.SaveCalled = true
	m.Bucket = bucket
	m.SavedKeys = append(m.SavedKeys, fileKey)
	if m.SaveErr != nil {
		return m.SaveErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	if m.SavedData == nil {
		m.SavedData = make(map[string][]byte)
	}
	m.SavedData[fileKey] = data
	return nil
}
