package storage

import (
	"context"

	"wholesaler/wholesaler_catalog_service/models"
)

type StorageI interface {
	Wholesaler() WholesalerRepoI
	ProductCategory() ProductCategoryRepoI
	ProductDefinition() ProductDefinitionRepoI
	Offering() OfferingRepoI
	OfferingAttribute() OfferingAttributeRepoI
	OfferingLink() OfferingLinkRepoI
	Order() OrderRepoI
	OrderItem() OrderItemRepoI
	WholesalerCategory() WholesalerCategoryRepoI
	Query() QueryRepoI
	CloseDB()
}

// QueryRepoI runs compiled payload queries and returns flat rows keyed by
// the selected column names.
type QueryRepoI interface {
	Run(ctx context.Context, payload models.QueryPayload) (*models.QueryResult, error)
}

type WholesalerRepoI interface {
	Create(ctx context.Context, req *models.Wholesaler) (*models.Wholesaler, error)
	GetByID(ctx context.Context, id int64) (*models.Wholesaler, error)
	GetList(ctx context.Context, payload models.QueryPayload) (*models.QueryResult, error)
	Update(ctx context.Context, req *models.Wholesaler) (*models.Wholesaler, error)
	Delete(ctx context.Context, req *models.DeleteRequest) (*models.DeleteResult, error)
}

type ProductCategoryRepoI interface {
	Create(ctx context.Context, req *models.ProductCategory) (*models.ProductCategory, error)
	GetByID(ctx context.Context, id int64) (*models.ProductCategory, error)
	GetList(ctx context.Context, payload models.QueryPayload) (*models.QueryResult, error)
	Update(ctx context.Context, req *models.ProductCategory) (*models.ProductCategory, error)
	Delete(ctx context.Context, req *models.DeleteRequest) (*models.DeleteResult, error)
}

type ProductDefinitionRepoI interface {
	Create(ctx context.Context, req *models.ProductDefinition) (*models.ProductDefinition, error)
	GetByID(ctx context.Context, id int64) (*models.ProductDefinition, error)
	GetList(ctx context.Context, payload models.QueryPayload) (*models.QueryResult, error)
	Update(ctx context.Context, req *models.ProductDefinition) (*models.ProductDefinition, error)
	Delete(ctx context.Context, req *models.DeleteRequest) (*models.DeleteResult, error)
}

type OfferingRepoI interface {
	Create(ctx context.Context, req *models.Offering) (*models.Offering, error)
	GetByID(ctx context.Context, id int64) (*models.Offering, error)
	GetList(ctx context.Context, payload models.QueryPayload) (*models.QueryResult, error)
	Update(ctx context.Context, req *models.Offering) (*models.Offering, error)
	Delete(ctx context.Context, req *models.DeleteRequest) (*models.DeleteResult, error)
}

type OfferingAttributeRepoI interface {
	Create(ctx context.Context, req *models.OfferingAttribute) (*models.OfferingAttribute, error)
	GetByID(ctx context.Context, id int64) (*models.OfferingAttribute, error)
	GetList(ctx context.Context, payload models.QueryPayload) (*models.QueryResult, error)
	Update(ctx context.Context, req *models.OfferingAttribute) (*models.OfferingAttribute, error)
	Delete(ctx context.Context, req *models.DeleteRequest) (*models.DeleteResult, error)
}

type OfferingLinkRepoI interface {
	Create(ctx context.Context, req *models.OfferingLink) (*models.OfferingLink, error)
	GetByID(ctx context.Context, id int64) (*models.OfferingLink, error)
	GetList(ctx context.Context, payload models.QueryPayload) (*models.QueryResult, error)
	Update(ctx context.Context, req *models.OfferingLink) (*models.OfferingLink, error)
	Delete(ctx context.Context, req *models.DeleteRequest) (*models.DeleteResult, error)
}

type OrderRepoI interface {
	Create(ctx context.Context, req *models.Order) (*models.Order, error)
	GetByID(ctx context.Context, id int64) (*models.Order, error)
	GetList(ctx context.Context, payload models.QueryPayload) (*models.QueryResult, error)
	Update(ctx context.Context, req *models.Order) (*models.Order, error)
	Delete(ctx context.Context, req *models.DeleteRequest) (*models.DeleteResult, error)
}

type OrderItemRepoI interface {
	Create(ctx context.Context, req *models.OrderItem) (*models.OrderItem, error)
	GetByID(ctx context.Context, id int64) (*models.OrderItem, error)
	GetList(ctx context.Context, payload models.QueryPayload) (*models.QueryResult, error)
	Update(ctx context.Context, req *models.OrderItem) (*models.OrderItem, error)
	Delete(ctx context.Context, req *models.DeleteRequest) (*models.DeleteResult, error)
}

type WholesalerCategoryRepoI interface {
	Create(ctx context.Context, req *models.WholesalerItemCategory) (*models.WholesalerItemCategory, error)
	GetByID(ctx context.Context, id int64) (*models.WholesalerItemCategory, error)
	GetList(ctx context.Context, payload models.QueryPayload) (*models.QueryResult, error)
	Update(ctx context.Context, req *models.WholesalerItemCategory) (*models.WholesalerItemCategory, error)
	Delete(ctx context.Context, req *models.DeleteRequest) (*models.DeleteResult, error)
}
