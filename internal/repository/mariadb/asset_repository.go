package mariadb

import (
	"context"
	"database/sql"
	"log"

	"github.com/picstream/picstream-go/internal/assetid"
	"github.com/picstream/picstream-go/internal/model"
	"github.com/picstream/picstream-go/internal/port"
)

type AssetRepository struct {
	db *sql.DB
}

// compile-time check: *AssetRepository must satisfy port.AssetRepository
var _ port.AssetRepository = (*AssetRepository)(nil)

func NewAssetRepository(db *sql.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

const assetColumns = `id, owner_id, object_key, mime_type, comment, state, failure_message, renditions, uploaded_at, updated_at`

func (r *AssetRepository) Create(ctx context.Context, a *model.Asset) error {
	log.Printf("creating database record for asset #%s, at state %q...", a.ID, a.State)

	const query = `
      INSERT INTO assets
        (id, owner_id, object_key, mime_type, comment, state, failure_message, renditions)
      VALUES (?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.OwnerID, a.ObjectKey,
		a.MimeType, a.Comment, a.State,
		a.FailureMessage, a.Renditions,
	)
	if err != nil {
		return err
	}

	return nil
}

func (r *AssetRepository) Update(ctx context.Context, a *model.Asset) error {
	log.Printf("updating database record for asset #%s, with state %q...", a.ID, a.State)

	const query = `
      UPDATE assets
      SET
        object_key      = ?,
        mime_type       = ?,
        comment         = ?,
        state           = ?,
        failure_message = ?,
        renditions      = ?
      WHERE id = ?
    `
	_, err := r.db.ExecContext(ctx, query,
		a.ObjectKey,
		a.MimeType,
		a.Comment,
		a.State,
		a.FailureMessage,
		a.Renditions,
		a.ID, // WHERE clause
	)
	if err != nil {
		return err
	}

	return nil
}

func (r *AssetRepository) GetByID(ctx context.Context, id assetid.ID) (*model.Asset, error) {
	const query = `
      SELECT ` + assetColumns + `
      FROM assets
      WHERE id = ?
    `
	row := r.db.QueryRowContext(ctx, query, id)
	return scanAsset(row)
}

func (r *AssetRepository) Delete(ctx context.Context, id assetid.ID) error {
	log.Printf("deleting database record for asset #%s...", id)

	const query = `DELETE FROM assets WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *AssetRepository) ListLatest(ctx context.Context, limit, offset int) ([]*model.Asset, error) {
	const query = `
      SELECT ` + assetColumns + `
      FROM assets
      ORDER BY uploaded_at DESC
      LIMIT ? OFFSET ?
    `
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return scanAssets(rows)
}

func (r *AssetRepository) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*model.Asset, error) {
	const query = `
      SELECT ` + assetColumns + `
      FROM assets
      WHERE owner_id = ?
      ORDER BY uploaded_at DESC
      LIMIT ? OFFSET ?
    `
	rows, err := r.db.QueryContext(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return scanAssets(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAsset(row rowScanner) (*model.Asset, error) {
	var a model.Asset
	if err := row.Scan(
		&a.ID, &a.OwnerID, &a.ObjectKey,
		&a.MimeType, &a.Comment, &a.State,
		&a.FailureMessage, &a.Renditions,
		&a.UploadedAt, &a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &a, nil
}

func scanAssets(rows *sql.Rows) ([]*model.Asset, error) {
	var out []*model.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
