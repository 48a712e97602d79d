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

type offeringRepo struct {
	s *Store
}

func NewOfferingRepo(s *Store) storage.OfferingRepoI {
	return &offeringRepo{s: s}
}

func (r *offeringRepo) Create(ctx context.Context, req *models.Offering) (*models.Offering, error) {
	query, args, err := sb.Insert(schema.TableOfferings).
		Columns("wholesaler_id", "product_def_id", "price", "currency", "size", "comment").
		Values(req.WholesalerID, req.ProductDefID, req.Price, req.Currency, req.Size, req.Comment).
		Suffix("RETURNING offering_id, wholesaler_id, product_def_id, price, currency, size, comment, created_at").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build offering insert")
	}

	var o models.Offering
	err = r.s.db.QueryRow(ctx, query, args...).Scan(
		&o.OfferingID,
		&o.WholesalerID,
		&o.ProductDefID,
		&o.Price,
		&o.Currency,
		&o.Size,
		&o.Comment,
		&o.CreatedAt,
	)
	if err != nil {
		return nil, helper.ClassifyDBError(err, "create offering")
	}

	return &o, nil
}

func (r *offeringRepo) GetByID(ctx context.Context, id int64) (*models.Offering, error) {
	query := `SELECT
		offering_id,
		wholesaler_id,
		product_def_id,
		price,
		currency,
		size,
		comment,
		created_at
	FROM "offerings" WHERE offering_id = $1`

	var o models.Offering
	err := r.s.db.QueryRow(ctx, query, id).Scan(
		&o.OfferingID,
		&o.WholesalerID,
		&o.ProductDefID,
		&o.Price,
		&o.Currency,
		&o.Size,
		&o.Comment,
		&o.CreatedAt,
	)
	if err != nil {
		return nil, helper.ClassifyDBError(err, "get offering")
	}

	return &o, nil
}

func (r *offeringRepo) GetList(ctx context.Context, payload models.QueryPayload) (*models.QueryResult, error) {
	payload.From.Table = schema.TableOfferings
	return r.s.Query().Run(ctx, payload)
}

func (r *offeringRepo) Update(ctx context.Context, req *models.Offering) (*models.Offering, error) {
	query, args, err := sb.Update(schema.TableOfferings).
		SetMap(map[string]any{
			"wholesaler_id":  req.WholesalerID,
			"product_def_id": req.ProductDefID,
			"price":          req.Price,
			"currency":       req.Currency,
			"size":           req.Size,
			"comment":        req.Comment,
		}).
		Where(squirrel.Eq{"offering_id": req.OfferingID}).
		Suffix("RETURNING offering_id, wholesaler_id, product_def_id, price, currency, size, comment, created_at").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build offering update")
	}

	var o models.Offering
	err = r.s.db.QueryRow(ctx, query, args...).Scan(
		&o.OfferingID,
		&o.WholesalerID,
		&o.ProductDefID,
		&o.Price,
		&o.Currency,
		&o.Size,
		&o.Comment,
		&o.CreatedAt,
	)
	if err != nil {
		return nil, helper.ClassifyDBError(err, "update offering")
	}

	return &o, nil
}

func (r *offeringRepo) Delete(ctx context.Context, req *models.DeleteRequest) (*models.DeleteResult, error) {
	return r.s.deleteEntity(ctx, schema.EntityOffering, req)
}
