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

type wholesalerCategoryRepo struct {
	s *Store
}

func NewWholesalerCategoryRepo(s *Store) storage.WholesalerCategoryRepoI {
	return &wholesalerCategoryRepo{s: s}
}

func (r *wholesalerCategoryRepo) Create(ctx context.Context, req *models.WholesalerItemCategory) (*models.WholesalerItemCategory, error) {
	query, args, err := sb.Insert(schema.TableWholesalerCategories).
		Columns("wholesaler_id", "category_id").
		Values(req.WholesalerID, req.CategoryID).
		Suffix("RETURNING assignment_id, wholesaler_id, category_id, created_at").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build category assignment insert")
	}

	var a models.WholesalerItemCategory
	err = r.s.db.QueryRow(ctx, query, args...).Scan(
		&a.AssignmentID,
		&a.WholesalerID,
		&a.CategoryID,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, helper.ClassifyDBError(err, "create category assignment")
	}

	return &a, nil
}

func (r *wholesalerCategoryRepo) GetByID(ctx context.Context, id int64) (*models.WholesalerItemCategory, error) {
	query := `SELECT
		assignment_id,
		wholesaler_id,
		category_id,
		created_at
	FROM "wholesaler_item_categories" WHERE assignment_id = $1`

	var a models.WholesalerItemCategory
	err := r.s.db.QueryRow(ctx, query, id).Scan(
		&a.AssignmentID,
		&a.WholesalerID,
		&a.CategoryID,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, helper.ClassifyDBError(err, "get category assignment")
	}

	return &a, nil
}

func (r *wholesalerCategoryRepo) GetList(ctx context.Context, payload models.QueryPayload) (*models.QueryResult, error) {
	payload.From.Table = schema.TableWholesalerCategories
	return r.s.Query().Run(ctx, payload)
}

// Update moves an assignment to another category; the unique
// (wholesaler_id, category_id) pair is re-checked by the database.
func (r *wholesalerCategoryRepo) Update(ctx context.Context, req *models.WholesalerItemCategory) (*models.WholesalerItemCategory, error) {
	query, args, err := sb.Update(schema.TableWholesalerCategories).
		SetMap(map[string]any{
			"category_id": req.CategoryID,
		}).
		Where(squirrel.Eq{"assignment_id": req.AssignmentID}).
		Suffix("RETURNING assignment_id, wholesaler_id, category_id, created_at").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build category assignment update")
	}

	var a models.WholesalerItemCategory
	err = r.s.db.QueryRow(ctx, query, args...).Scan(
		&a.AssignmentID,
		&a.WholesalerID,
		&a.CategoryID,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, helper.ClassifyDBError(err, "update category assignment")
	}

	return &a, nil
}

func (r *wholesalerCategoryRepo) Delete(ctx context.Context, req *models.DeleteRequest) (*models.DeleteResult, error) {
	return r.s.deleteEntity(ctx, schema.EntityWholesalerCategory, req)
}
