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

type productDefinitionRepo struct {
	s *Store
}

func NewProductDefinitionRepo(s *Store) storage.ProductDefinitionRepoI {
	return &productDefinitionRepo{s: s}
}

func (r *productDefinitionRepo) Create(ctx context.Context, req *models.ProductDefinition) (*models.ProductDefinition, error) {
	query, args, err := sb.Insert(schema.TableProductDefinitions).
		Columns("category_id", "title", "description").
		Values(req.CategoryID, req.Title, req.Description).
		Suffix("RETURNING product_def_id, category_id, title, description, created_at").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build product definition insert")
	}

	var d models.ProductDefinition
	err = r.s.db.QueryRow(ctx, query, args...).Scan(
		&d.ProductDefID,
		&d.CategoryID,
		&d.Title,
		&d.Description,
		&d.CreatedAt,
	)
	if err != nil {
		return nil, helper.ClassifyDBError(err, "create product definition")
	}

	return &d, nil
}

func (r *productDefinitionRepo) GetByID(ctx context.Context, id int64) (*models.ProductDefinition, error) {
	query := `SELECT
		product_def_id,
		category_id,
		title,
		description,
		created_at
	FROM "product_definitions" WHERE product_def_id = $1`

	var d models.ProductDefinition
	err := r.s.db.QueryRow(ctx, query, id).Scan(
		&d.ProductDefID,
		&d.CategoryID,
		&d.Title,
		&d.Description,
		&d.CreatedAt,
	)
	if err != nil {
		return nil, helper.ClassifyDBError(err, "get product definition")
	}

	return &d, nil
}

func (r *productDefinitionRepo) GetList(ctx context.Context, payload models.QueryPayload) (*models.QueryResult, error) {
	payload.From.Table = schema.TableProductDefinitions
	return r.s.Query().Run(ctx, payload)
}

func (r *productDefinitionRepo) Update(ctx context.Context, req *models.ProductDefinition) (*models.ProductDefinition, error) {
	query, args, err := sb.Update(schema.TableProductDefinitions).
		SetMap(map[string]any{
			"category_id": req.CategoryID,
			"title":       req.Title,
			"description": req.Description,
		}).
		Where(squirrel.Eq{"product_def_id": req.ProductDefID}).
		Suffix("RETURNING product_def_id, category_id, title, description, created_at").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build product definition update")
	}

	var d models.ProductDefinition
	err = r.s.db.QueryRow(ctx, query, args...).Scan(
		&d.ProductDefID,
		&d.CategoryID,
		&d.Title,
		&d.Description,
		&d.CreatedAt,
	)
	if err != nil {
		return nil, helper.ClassifyDBError(err, "update product definition")
	}

	return &d, nil
}

func (r *productDefinitionRepo) Delete(ctx context.Context, req *models.DeleteRequest) (*models.DeleteResult, error) {
	return r.s.deleteEntity(ctx, schema.EntityProductDefinition, req)
}
