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

type productCategoryRepo struct {
	s *Store
}

func NewProductCategoryRepo(s *Store) storage.ProductCategoryRepoI {
	return &productCategoryRepo{s: s}
}

func (r *productCategoryRepo) Create(ctx context.Context, req *models.ProductCategory) (*models.ProductCategory, error) {
	query, args, err := sb.Insert(schema.TableProductCategories).
		Columns("name", "description").
		Values(req.Name, req.Description).
		Suffix("RETURNING category_id, name, description, created_at").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build product category insert")
	}

	var c models.ProductCategory
	err = r.s.db.QueryRow(ctx, query, args...).Scan(
		&c.CategoryID,
		&c.Name,
		&c.Description,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, helper.ClassifyDBError(err, "create product category")
	}

	return &c, nil
}

func (r *productCategoryRepo) GetByID(ctx context.Context, id int64) (*models.ProductCategory, error) {
	query := `SELECT
		category_id,
		name,
		description,
		created_at
	FROM "product_categories" WHERE category_id = $1`

	var c models.ProductCategory
	err := r.s.db.QueryRow(ctx, query, id).Scan(
		&c.CategoryID,
		&c.Name,
		&c.Description,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, helper.ClassifyDBError(err, "get product category")
	}

	return &c, nil
}

func (r *productCategoryRepo) GetList(ctx context.Context, payload models.QueryPayload) (*models.QueryResult, error) {
	payload.From.Table = schema.TableProductCategories
	return r.s.Query().Run(ctx, payload)
}

func (r *productCategoryRepo) Update(ctx context.Context, req *models.ProductCategory) (*models.ProductCategory, error) {
	query, args, err := sb.Update(schema.TableProductCategories).
		SetMap(map[string]any{
			"name":        req.Name,
			"description": req.Description,
		}).
		Where(squirrel.Eq{"category_id": req.CategoryID}).
		Suffix("RETURNING category_id, name, description, created_at").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build product category update")
	}

	var c models.ProductCategory
	err = r.s.db.QueryRow(ctx, query, args...).Scan(
		&c.CategoryID,
		&c.Name,
		&c.Description,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, helper.ClassifyDBError(err, "update product category")
	}

	return &c, nil
}

func (r *productCategoryRepo) Delete(ctx context.Context, req *models.DeleteRequest) (*models.DeleteResult, error) {
	return r.s.deleteEntity(ctx, schema.EntityProductCategory, req)
}
