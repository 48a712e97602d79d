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

type orderRepo struct {
	s *Store
}

func NewOrderRepo(s *Store) storage.OrderRepoI {
	return &orderRepo{s: s}
}

func (r *orderRepo) Create(ctx context.Context, req *models.Order) (*models.Order, error) {
	columns := []string{"wholesaler_id", "status"}
	values := []any{req.WholesalerID, req.Status}

	// A zero order date means the caller did not set one; let the column
	// default apply instead of storing 0001-01-01.
	if !req.OrderDate.IsZero() {
		columns = append(columns, "order_date")
		values = append(values, req.OrderDate)
	}

	query, args, err := sb.Insert(schema.TableOrders).
		Columns(columns...).
		Values(values...).
		Suffix("RETURNING order_id, wholesaler_id, status, order_date, created_at").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build order insert")
	}

	var o models.Order
	err = r.s.db.QueryRow(ctx, query, args...).Scan(
		&o.OrderID,
		&o.WholesalerID,
		&o.Status,
		&o.OrderDate,
		&o.CreatedAt,
	)
	if err != nil {
		return nil, helper.ClassifyDBError(err, "create order")
	}

	return &o, nil
}

func (r *orderRepo) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	query := `SELECT
		order_id,
		wholesaler_id,
		status,
		order_date,
		created_at
	FROM "orders" WHERE order_id = $1`

	var o models.Order
	err := r.s.db.QueryRow(ctx, query, id).Scan(
		&o.OrderID,
		&o.WholesalerID,
		&o.Status,
		&o.OrderDate,
		&o.CreatedAt,
	)
	if err != nil {
		return nil, helper.ClassifyDBError(err, "get order")
	}

	return &o, nil
}

func (r *orderRepo) GetList(ctx context.Context, payload models.QueryPayload) (*models.QueryResult, error) {
	payload.From.Table = schema.TableOrders
	return r.s.Query().Run(ctx, payload)
}

func (r *orderRepo) Update(ctx context.Context, req *models.Order) (*models.Order, error) {
	query, args, err := sb.Update(schema.TableOrders).
		SetMap(map[string]any{
			"status":     req.Status,
			"order_date": req.OrderDate,
		}).
		Where(squirrel.Eq{"order_id": req.OrderID}).
		Suffix("RETURNING order_id, wholesaler_id, status, order_date, created_at").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build order update")
	}

	var o models.Order
	err = r.s.db.QueryRow(ctx, query, args...).Scan(
		&o.OrderID,
		&o.WholesalerID,
		&o.Status,
		&o.OrderDate,
		&o.CreatedAt,
	)
	if err != nil {
		return nil, helper.ClassifyDBError(err, "update order")
	}

	return &o, nil
}

func (r *orderRepo) Delete(ctx context.Context, req *models.DeleteRequest) (*models.DeleteResult, error) {
	return r.s.deleteEntity(ctx, schema.EntityOrder, req)
}

type orderItemRepo struct {
	s *Store
}

func NewOrderItemRepo(s *Store) storage.OrderItemRepoI {
	return &orderItemRepo{s: s}
}

func (r *orderItemRepo) Create(ctx context.Context, req *models.OrderItem) (*models.OrderItem, error) {
	query, args, err := sb.Insert(schema.TableOrderItems).
		Columns("order_id", "offering_id", "quantity", "unit_price").
		Values(req.OrderID, req.OfferingID, req.Quantity, req.UnitPrice).
		Suffix("RETURNING order_item_id, order_id, offering_id, quantity, unit_price, created_at").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build order item insert")
	}

	var item models.OrderItem
	err = r.s.db.QueryRow(ctx, query, args...).Scan(
		&item.OrderItemID,
		&item.OrderID,
		&item.OfferingID,
		&item.Quantity,
		&item.UnitPrice,
		&item.CreatedAt,
	)
	if err != nil {
		return nil, helper.ClassifyDBError(err, "create order item")
	}

	return &item, nil
}

func (r *orderItemRepo) GetByID(ctx context.Context, id int64) (*models.OrderItem, error) {
	query := `SELECT
		order_item_id,
		order_id,
		offering_id,
		quantity,
		unit_price,
		created_at
	FROM "order_items" WHERE order_item_id = $1`

	var item models.OrderItem
	err := r.s.db.QueryRow(ctx, query, id).Scan(
		&item.OrderItemID,
		&item.OrderID,
		&item.OfferingID,
		&item.Quantity,
		&item.UnitPrice,
		&item.CreatedAt,
	)
	if err != nil {
		return nil, helper.ClassifyDBError(err, "get order item")
	}

	return &item, nil
}

func (r *orderItemRepo) GetList(ctx context.Context, payload models.QueryPayload) (*models.QueryResult, error) {
	payload.From.Table = schema.TableOrderItems
	return r.s.Query().Run(ctx, payload)
}

func (r *orderItemRepo) Update(ctx context.Context, req *models.OrderItem) (*models.OrderItem, error) {
	query, args, err := sb.Update(schema.TableOrderItems).
		SetMap(map[string]any{
			"quantity":   req.Quantity,
			"unit_price": req.UnitPrice,
		}).
		Where(squirrel.Eq{"order_item_id": req.OrderItemID}).
		Suffix("RETURNING order_item_id, order_id, offering_id, quantity, unit_price, created_at").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build order item update")
	}

	var item models.OrderItem
	err = r.s.db.QueryRow(ctx, query, args...).Scan(
		&item.OrderItemID,
		&item.OrderID,
		&item.OfferingID,
		&item.Quantity,
		&item.UnitPrice,
		&item.CreatedAt,
	)
	if err != nil {
		return nil, helper.ClassifyDBError(err, "update order item")
	}

	return &item, nil
}

func (r *orderItemRepo) Delete(ctx context.Context, req *models.DeleteRequest) (*models.DeleteResult, error) {
	return r.s.deleteEntity(ctx, schema.EntityOrderItem, req)
}
