package models

import "time"

type Wholesaler struct {
	WholesalerID int64     `json:"wholesaler_id"`
	Name         string    `json:"name"`
	Region       string    `json:"region"`
	Status       string    `json:"status"`
	Dropship     bool      `json:"dropship"`
	CreatedAt    time.Time `json:"created_at"`
}

type ProductCategory struct {
	CategoryID  int64     `json:"category_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type ProductDefinition struct {
	ProductDefID int64     `json:"product_def_id"`
	CategoryID   int64     `json:"category_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
}

type Offering struct {
	OfferingID   int64     `json:"offering_id"`
	WholesalerID int64     `json:"wholesaler_id"`
	ProductDefID int64     `json:"product_def_id"`
	Price        float64   `json:"price"`
	Currency     string    `json:"currency"`
	Size         string    `json:"size"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
}

type OfferingAttribute struct {
	AttributeID    int64  `json:"attribute_id"`
	OfferingID     int64  `json:"offering_id"`
	AttributeName  string `json:"attribute_name"`
	AttributeValue string `json:"attribute_value"`
	SortOrder      int32  `json:"sort_order"`
}

type OfferingLink struct {
	LinkID     int64     `json:"link_id"`
	OfferingID int64     `json:"offering_id"`
	URL        string    `json:"url"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
}

type Order struct {
	OrderID      int64     `json:"order_id"`
	WholesalerID int64     `json:"wholesaler_id"`
	Status       string    `json:"status"`
	OrderDate    time.Time `json:"order_date"`
	CreatedAt    time.Time `json:"created_at"`
}

type OrderItem struct {
	OrderItemID int64     `json:"order_item_id"`
	OrderID     int64     `json:"order_id"`
	OfferingID  int64     `json:"offering_id"`
	Quantity    int32     `json:"quantity"`
	UnitPrice   float64   `json:"unit_price"`
	CreatedAt   time.Time `json:"created_at"`
}

// WholesalerItemCategory assigns a wholesaler to a product category.
type WholesalerItemCategory struct {
	AssignmentID int64     `json:"assignment_id"`
	WholesalerID int64     `json:"wholesaler_id"`
	CategoryID   int64     `json:"category_id"`
	CreatedAt    time.Time `json:"created_at"`
}
