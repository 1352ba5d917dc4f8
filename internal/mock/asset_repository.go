package mock

import (
	"context"

	"github.com/picstream/picstream-go/internal/assetid"
	"github.com/picstream/picstream-go/internal/model"
	"github.com/picstream/picstream-go/internal/port"
)

// AssetRepository implements asset persistence for tests.
type AssetRepository struct {
	AssetRecord *model.Asset
	ListOut     []*model.Asset

	GetErr    error
	CreateErr error
	UpdateErr error
	DeleteErr error
	ListErr   error

	GetCalled    bool
	CreateCalled bool
	UpdateCalled bool
	DeleteCalled bool
	ListCalled   bool

	Created   *model.Asset
	Updated   []*model.Asset
	DeletedID assetid.ID

	ListLimit  int
	ListOffset int
	ListOwner  string
}

// compile-time check: *AssetRepository must satisfy port.AssetRepository
var _ port.AssetRepository = (*AssetRepository)(nil)

func (m *AssetRepository) Create(ctx context.Context, a *model.Asset) error {
	m.CreateCalled = true
	m.Created = a
	return m.CreateErr
}

func (m *AssetRepository) Update(ctx context.Context, a *model.Asset) error {
	m.UpdateCalled = true
	m.Updated = append(m.Updated, a)
	return m.UpdateErr
}

func (m *AssetRepository) GetByID(ctx context.Context, id assetid.ID) (*model.Asset, error) {
	m.GetCalled = true
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.AssetRecord, nil
}

func (m *AssetRepository) Delete(ctx context.Context, id assetid.ID) error {
	m.DeleteCalled = true
	m.DeletedID = id
	return m.DeleteErr
}

func (m *AssetRepository) ListLatest(ctx context.Context, limit, offset int) ([]*model.Asset, error) {
	m.ListCalled = true
	m.ListLimit = limit
	m.ListOffset = offset
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.ListOut, nil
}

func (m *AssetRepository) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*model.Asset, error) {
	m.ListCalled = true
	m.ListOwner = ownerID
	m.ListLimit = limit
	m.ListOffset = offset
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.ListOut, nil
}
