package mock

import (
	"context"
	"time"

	"github.com/picstream/picstream-go/internal/assetid"
	"github.com/picstream/picstream-go/internal/port"
)

// Cache implements the cache interface for tests.
type Cache struct {
	DetailsOut []byte
	EtagOut    string

	GetErr     error
	GetEtagErr error
	DelErr     error
	DelEtagErr error

	GetCalled     bool
	GetEtagCalled bool
	SetCalled     bool
	SetEtagCalled bool
	DelCalled     bool
	DelEtagCalled bool

	SetData    []byte
	SetEtag    string
	ValidUntil time.Time
}

// compile-time check: *Cache must satisfy port.Cache
var _ port.Cache = (*Cache)(nil)

func (c *Cache) GetAssetDetails(ctx context.Context, id assetid.ID) ([]byte, error) {
	c.GetCalled = true
	if c.GetErr != nil {
		return nil, c.GetErr
	}
	return c.DetailsOut, nil
}

func (c *Cache) GetEtagAssetDetails(ctx context.Context, id assetid.ID) (string, error) {
	c.GetEtagCalled = true
	if c.GetEtagErr != nil {
		return "", c.GetEtagErr
	}
	return c.EtagOut, nil
}

func (c *Cache) SetAssetDetails(ctx context.Context, id assetid.ID, data []byte, validUntil time.Time) {
	c.SetCalled = true
	c.SetData = data
	c.ValidUntil = validUntil
}

func (c *Cache) SetEtagAssetDetails(ctx context.Context, id assetid.ID, etag string, validUntil time.Time) {
	c.SetEtagCalled = true
	c.SetEtag = etag
	c.ValidUntil = validUntil
}

func (c *Cache) DeleteAssetDetails(ctx context.Context, id assetid.ID) error {
	c.DelCalled = true
	return c.DelErr
}

func (c *Cache) DeleteEtagAssetDetails(ctx context.Context, id assetid.ID) error {
	c.DelEtagCalled = true
	return c.DelEtagErr
}
