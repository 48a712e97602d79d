package postgres

import (
	"context"

	"wholesaler/wholesaler_catalog_service/models"
	"wholesaler/wholesaler_catalog_service/pkg/helper"
	"wholesaler/wholesaler_catalog_service/storage"
	"wholesaler/wholesaler_catalog_service/storage/schema"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
)

// sb is the shared statement builder for insert/update statements.
var sb = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

type wholesalerRepo struct {
	s *Store
}

func NewWholesalerRepo(s *Store) storage.WholesalerRepoI {
	return &wholesalerRepo{s: s}
}

func (r *wholesalerRepo) Create(ctx context.Context, req *models.Wholesaler) (*models.Wholesaler, error) {
	query, args, err := sb.Insert(schema.TableWholesalers).
		Columns("name", "region", "status", "dropship").
		Values(req.Name, req.Region, req.Status, req.Dropship).
		Suffix("RETURNING wholesaler_id, name, region, status, dropship, created_at").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build wholesaler insert")
	}

	var w models.Wholesaler
	err = r.s.db.QueryRow(ctx, query, args...).Scan(
		&w.WholesalerID,
		&w.Name,
		&w.Region,
		&w.Status,
		&w.Dropship,
		&w.CreatedAt,
	)
	if err != nil {
		return nil, helper.ClassifyDBError(err, "create wholesaler")
	}

	return &w, nil
}

func (r *wholesalerRepo) GetByID(ctx context.Context, id int64) (*models.Wholesaler, error) {
	query := `SELECT
		wholesaler_id,
		name,
		region,
		status,
		dropship,
		created_at
	FROM "wholesalers" WHERE wholesaler_id = $1`

	var w models.Wholesaler
	err := r.s.db.QueryRow(ctx, query, id).Scan(
		&w.WholesalerID,
		&w.Name,
		&w.Region,
		&w.Status,
		&w.Dropship,
		&w.CreatedAt,
	)
	if err != nil {
		return nil, helper.ClassifyDBError(err, "get wholesaler")
	}

	return &w, nil
}

func (r *wholesalerRepo) GetList(ctx context.Context, payload models.QueryPayload) (*models.QueryResult, error) {
	payload.From.Table = schema.TableWholesalers
	return r.s.Query().Run(ctx, payload)
}

func (r *wholesalerRepo) Update(ctx context.Context, req *models.Wholesaler) (*models.Wholesaler, error) {
	query, args, err := sb.Update(schema.TableWholesalers).
		SetMap(map[string]any{
			"name":     req.Name,
			"region":   req.Region,
			"status":   req.Status,
			"dropship": req.Dropship,
		}).
		Where(squirrel.Eq{"wholesaler_id": req.WholesalerID}).
		Suffix("RETURNING wholesaler_id, name, region, status, dropship, created_at").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build wholesaler update")
	}

	var w models.Wholesaler
	err = r.s.db.QueryRow(ctx, query, args...).Scan(
		&w.WholesalerID,
		&w.Name,
		&w.Region,
		&w.Status,
		&w.Dropship,
		&w.CreatedAt,
	)
	if err != nil {
		return nil, helper.ClassifyDBError(err, "update wholesaler")
	}

	return &w, nil
}

func (r *wholesalerRepo) Delete(ctx context.Context, req *models.DeleteRequest) (*models.DeleteResult, error) {
	return r.s.deleteEntity(ctx, schema.EntityWholesaler, req)
}
