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

type offeringAttributeRepo struct {
	s *Store
}

func NewOfferingAttributeRepo(s *Store) storage.OfferingAttributeRepoI {
	return &offeringAttributeRepo{s: s}
}

func (r *offeringAttributeRepo) Create(ctx context.Context, req *models.OfferingAttribute) (*models.OfferingAttribute, error) {
	query, args, err := sb.Insert(schema.TableOfferingAttributes).
		Columns("offering_id", "attribute_name", "attribute_value", "sort_order").
		Values(req.OfferingID, req.AttributeName, req.AttributeValue, req.SortOrder).
		Suffix("RETURNING attribute_id, offering_id, attribute_name, attribute_value, sort_order").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build attribute insert")
	}

	var a models.OfferingAttribute
	err = r.s.db.QueryRow(ctx, query, args...).Scan(
		&a.AttributeID,
		&a.OfferingID,
		&a.AttributeName,
		&a.AttributeValue,
		&a.SortOrder,
	)
	if err != nil {
		return nil, helper.ClassifyDBError(err, "create offering attribute")
	}

	return &a, nil
}

func (r *offeringAttributeRepo) GetByID(ctx context.Context, id int64) (*models.OfferingAttribute, error) {
	query := `SELECT
		attribute_id,
		offering_id,
		attribute_name,
		attribute_value,
		sort_order
	FROM "offering_attributes" WHERE attribute_id = $1`

	var a models.OfferingAttribute
	err := r.s.db.QueryRow(ctx, query, id).Scan(
		&a.AttributeID,
		&a.OfferingID,
		&a.AttributeName,
		&a.AttributeValue,
		&a.SortOrder,
	)
	if err != nil {
		return nil, helper.ClassifyDBError(err, "get offering attribute")
	}

	return &a, nil
}

func (r *offeringAttributeRepo) GetList(ctx context.Context, payload models.QueryPayload) (*models.QueryResult, error) {
	payload.From.Table = schema.TableOfferingAttributes
	return r.s.Query().Run(ctx, payload)
}

func (r *offeringAttributeRepo) Update(ctx context.Context, req *models.OfferingAttribute) (*models.OfferingAttribute, error) {
	query, args, err := sb.Update(schema.TableOfferingAttributes).
		SetMap(map[string]any{
			"attribute_name":  req.AttributeName,
			"attribute_value": req.AttributeValue,
			"sort_order":      req.SortOrder,
		}).
		Where(squirrel.Eq{"attribute_id": req.AttributeID}).
		Suffix("RETURNING attribute_id, offering_id, attribute_name, attribute_value, sort_order").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build attribute update")
	}

	var a models.OfferingAttribute
	err = r.s.db.QueryRow(ctx, query, args...).Scan(
		&a.AttributeID,
		&a.OfferingID,
		&a.AttributeName,
		&a.AttributeValue,
		&a.SortOrder,
	)
	if err != nil {
		return nil, helper.ClassifyDBError(err, "update offering attribute")
	}

	return &a, nil
}

func (r *offeringAttributeRepo) Delete(ctx context.Context, req *models.DeleteRequest) (*models.DeleteResult, error) {
	return r.s.deleteEntity(ctx, schema.EntityOfferingAttribute, req)
}

type offeringLinkRepo struct {
	s *Store
}

func NewOfferingLinkRepo(s *Store) storage.OfferingLinkRepoI {
	return &offeringLinkRepo{s: s}
}

func (r *offeringLinkRepo) Create(ctx context.Context, req *models.OfferingLink) (*models.OfferingLink, error) {
	query, args, err := sb.Insert(schema.TableOfferingLinks).
		Columns("offering_id", "url", "notes").
		Values(req.OfferingID, req.URL, req.Notes).
		Suffix("RETURNING link_id, offering_id, url, notes, created_at").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build link insert")
	}

	var l models.OfferingLink
	err = r.s.db.QueryRow(ctx, query, args...).Scan(
		&l.LinkID,
		&l.OfferingID,
		&l.URL,
		&l.Notes,
		&l.CreatedAt,
	)
	if err != nil {
		return nil, helper.ClassifyDBError(err, "create offering link")
	}

	return &l, nil
}

func (r *offeringLinkRepo) GetByID(ctx context.Context, id int64) (*models.OfferingLink, error) {
	query := `SELECT
		link_id,
		offering_id,
		url,
		notes,
		created_at
	FROM "offering_links" WHERE link_id = $1`

	var l models.OfferingLink
	err := r.s.db.QueryRow(ctx, query, id).Scan(
		&l.LinkID,
		&l.OfferingID,
		&l.URL,
		&l.Notes,
		&l.CreatedAt,
	)
	if err != nil {
		return nil, helper.ClassifyDBError(err, "get offering link")
	}

	return &l, nil
}

func (r *offeringLinkRepo) GetList(ctx context.Context, payload models.QueryPayload) (*models.QueryResult, error) {
	payload.From.Table = schema.TableOfferingLinks
	return r.s.Query().Run(ctx, payload)
}

func (r *offeringLinkRepo) Update(ctx context.Context, req *models.OfferingLink) (*models.OfferingLink, error) {
	query, args, err := sb.Update(schema.TableOfferingLinks).
		SetMap(map[string]any{
			"url":   req.URL,
			"notes": req.Notes,
		}).
		Where(squirrel.Eq{"link_id": req.LinkID}).
		Suffix("RETURNING link_id, offering_id, url, notes, created_at").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build link update")
	}

	var l models.OfferingLink
	err = r.s.db.QueryRow(ctx, query, args...).Scan(
		&l.LinkID,
		&l.OfferingID,
		&l.URL,
		&l.Notes,
		&l.CreatedAt,
	)
	if err != nil {
		return nil, helper.ClassifyDBError(err, "update offering link")
	}

	return &l, nil
}

func (r *offeringLinkRepo) Delete(ctx context.Context, req *models.DeleteRequest) (*models.DeleteResult, error) {
	return r.s.deleteEntity(ctx, schema.EntityOfferingLink, req)
}
