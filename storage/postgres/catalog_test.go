package postgres_test

import (
	"context"
	"testing"

	"wholesaler/wholesaler_catalog_service/models"
	"wholesaler/wholesaler_catalog_service/storage/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createWholesaler(t *testing.T) *models.Wholesaler {
	w, err := strg.Wholesaler().Create(context.Background(), &models.Wholesaler{
		Name:     fakeData.Company().Name(),
		Region:   fakeData.Address().CountryCode(),
		Status:   "active",
		Dropship: fakeData.Bool(),
	})
	require.NoError(t, err)
	require.NotZero(t, w.WholesalerID)
	return w
}

func createProductCategory(t *testing.T) *models.ProductCategory {
	c, err := strg.ProductCategory().Create(context.Background(), &models.ProductCategory{
		Name:        fakeData.Lorem().Word(),
		Description: fakeData.Lorem().Sentence(5),
	})
	require.NoError(t, err)
	require.NotZero(t, c.CategoryID)
	return c
}

func createProductDefinition(t *testing.T, categoryID int64) *models.ProductDefinition {
	d, err := strg.ProductDefinition().Create(context.Background(), &models.ProductDefinition{
		CategoryID:  categoryID,
		Title:       fakeData.Lorem().Sentence(3),
		Description: fakeData.Lorem().Sentence(8),
	})
	require.NoError(t, err)
	require.NotZero(t, d.ProductDefID)
	return d
}

func createOffering(t *testing.T, wholesalerID, productDefID int64) *models.Offering {
	o, err := strg.Offering().Create(context.Background(), &models.Offering{
		WholesalerID: wholesalerID,
		ProductDefID: productDefID,
		Price:        float64(fakeData.IntBetween(100, 9999)) / 100,
		Currency:     "EUR",
		Size:         "500g",
		Comment:      fakeData.Lorem().Sentence(4),
	})
	require.NoError(t, err)
	require.NotZero(t, o.OfferingID)
	return o
}

func createOfferingAttribute(t *testing.T, offeringID int64) *models.OfferingAttribute {
	a, err := strg.OfferingAttribute().Create(context.Background(), &models.OfferingAttribute{
		OfferingID:     offeringID,
		AttributeName:  fakeData.Lorem().Word(),
		AttributeValue: fakeData.Lorem().Word(),
		SortOrder:      int32(fakeData.IntBetween(1, 10)),
	})
	require.NoError(t, err)
	return a
}

func createOfferingLink(t *testing.T, offeringID int64) *models.OfferingLink {
	l, err := strg.OfferingLink().Create(context.Background(), &models.OfferingLink{
		OfferingID: offeringID,
		URL:        fakeData.Internet().URL(),
		Notes:      fakeData.Lorem().Sentence(3),
	})
	require.NoError(t, err)
	return l
}

func createOrder(t *testing.T, wholesalerID int64) *models.Order {
	o, err := strg.Order().Create(context.Background(), &models.Order{
		WholesalerID: wholesalerID,
		Status:       "draft",
	})
	require.NoError(t, err)
	require.NotZero(t, o.OrderID)
	return o
}

func createOrderItem(t *testing.T, orderID, offeringID int64) *models.OrderItem {
	i, err := strg.OrderItem().Create(context.Background(), &models.OrderItem{
		OrderID:    orderID,
		OfferingID: offeringID,
		Quantity:   int32(fakeData.IntBetween(1, 20)),
		UnitPrice:  float64(fakeData.IntBetween(100, 5000)) / 100,
	})
	require.NoError(t, err)
	return i
}

func assignCategory(t *testing.T, wholesalerID, categoryID int64) *models.WholesalerItemCategory {
	a, err := strg.WholesalerCategory().Create(context.Background(), &models.WholesalerItemCategory{
		WholesalerID: wholesalerID,
		CategoryID:   categoryID,
	})
	require.NoError(t, err)
	return a
}

func TestCreateAndGetWholesaler(t *testing.T) {
	requireDB(t)

	created := createWholesaler(t)

	got, err := strg.Wholesaler().GetByID(context.Background(), created.WholesalerID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, got.Name)
	assert.Equal(t, created.Region, got.Region)
	assert.Equal(t, "active", got.Status)
}

func TestUpdateWholesaler(t *testing.T) {
	requireDB(t)

	created := createWholesaler(t)
	created.Status = "suspended"
	created.Name = fakeData.Company().Name()

	updated, err := strg.Wholesaler().Update(context.Background(), created)
	require.NoError(t, err)
	assert.Equal(t, "suspended", updated.Status)
	assert.Equal(t, created.Name, updated.Name)
}

func TestGetListWholesalersByStatus(t *testing.T) {
	requireDB(t)

	created := createWholesaler(t)

	result, err := strg.Wholesaler().GetList(context.Background(), models.QueryPayload{
		Where: &models.WhereConditionGroup{
			Operator: models.LogicalAnd,
			Conditions: []models.WhereNode{
				models.WhereCondition{Key: "wholesaler_id", Operator: models.OperatorEq, Value: created.WholesalerID},
			},
		},
		Limit: 10,
	})
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, created.Name, result.Rows[0]["a.name"])
}

func TestQueryOfferingsJoined(t *testing.T) {
	requireDB(t)

	w := createWholesaler(t)
	c := createProductCategory(t)
	d := createProductDefinition(t, c.CategoryID)
	createOffering(t, w.WholesalerID, d.ProductDefID)
	createOffering(t, w.WholesalerID, d.ProductDefID)

	result, err := strg.Query().Run(context.Background(), models.QueryPayload{
		From:   models.FromClause{Table: schema.TableOfferings, Alias: "a"},
		Joins:  []string{"w", "pd"},
		Select: []string{"a.offering_id", "a.price", "w.name", "pd.title"},
		Where: &models.WhereConditionGroup{
			Operator: models.LogicalAnd,
			Conditions: []models.WhereNode{
				models.WhereCondition{Key: "w.wholesaler_id", Operator: models.OperatorEq, Value: w.WholesalerID},
				models.WhereCondition{Key: "price", Operator: models.OperatorGte, Value: 0},
			},
		},
		OrderBy: []models.SortDescriptor{
			{Key: "a.price", Direction: models.SortDesc},
		},
		Limit: 10,
	})
	require.NoError(t, err)
	require.Len(t, result.Rows, 2)
	assert.Equal(t, w.Name, result.Rows[0]["w.name"])
	assert.Equal(t, d.Title, result.Rows[0]["pd.title"])
	assert.Equal(t, 2, result.Meta.JoinCount)
}

func TestWholesalerCascadeDelete(t *testing.T) {
	requireDB(t)

	w := createWholesaler(t)
	c := createProductCategory(t)
	d := createProductDefinition(t, c.CategoryID)

	first := createOffering(t, w.WholesalerID, d.ProductDefID)
	second := createOffering(t, w.WholesalerID, d.ProductDefID)
	createOfferingAttribute(t, first.OfferingID)
	createOfferingAttribute(t, second.OfferingID)
	createOfferingLink(t, first.OfferingID)
	createOfferingLink(t, second.OfferingID)

	order := createOrder(t, w.WholesalerID)
	createOrderItem(t, order.OrderID, first.OfferingID)
	createOrderItem(t, order.OrderID, second.OfferingID)

	assignCategory(t, w.WholesalerID, c.CategoryID)

	result, err := strg.Wholesaler().Delete(context.Background(), &models.DeleteRequest{
		ID:      w.WholesalerID,
		Cascade: true,
	})
	require.NoError(t, err)

	assert.Equal(t, w.Name, result.Deleted["name"])
	assert.Equal(t, int64(2), result.Stats[schema.StatOfferings])
	assert.Equal(t, int64(2), result.Stats[schema.StatAttributes])
	assert.Equal(t, int64(2), result.Stats[schema.StatLinks])
	assert.Equal(t, int64(1), result.Stats[schema.StatOrders])
	assert.Equal(t, int64(2), result.Stats[schema.StatOrderItems])
	assert.Equal(t, int64(1), result.Stats[schema.StatWholesalerCategories])
	assert.Equal(t, int64(1), result.Stats[schema.StatWholesalers])
	assert.Equal(t, int64(10), result.Stats[models.StatTotal])

	_, err = strg.Wholesaler().GetByID(context.Background(), w.WholesalerID)
	var storeErr *models.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, models.ErrNotFound, storeErr.Kind)

	_, err = strg.Offering().GetByID(context.Background(), first.OfferingID)
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, models.ErrNotFound, storeErr.Kind)

	// The category itself survives; only the assignment goes.
	_, err = strg.ProductCategory().GetByID(context.Background(), c.CategoryID)
	assert.NoError(t, err)
}

func TestOfferingDeleteWithoutCascadeHitsForeignKey(t *testing.T) {
	requireDB(t)

	w := createWholesaler(t)
	c := createProductCategory(t)
	d := createProductDefinition(t, c.CategoryID)
	offering := createOffering(t, w.WholesalerID, d.ProductDefID)
	order := createOrder(t, w.WholesalerID)
	createOrderItem(t, order.OrderID, offering.OfferingID)

	_, err := strg.Offering().Delete(context.Background(), &models.DeleteRequest{
		ID:      offering.OfferingID,
		Cascade: false,
	})

	var storeErr *models.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, models.ErrForeignKeyViolation, storeErr.Kind)
	assert.Equal(t, "FK_order_items_offering", storeErr.Constraint)

	// The aborted transaction must leave the offering in place.
	_, err = strg.Offering().GetByID(context.Background(), offering.OfferingID)
	assert.NoError(t, err)
}

func TestOfferingDeleteWithoutCascadeWhenChildless(t *testing.T) {
	requireDB(t)

	w := createWholesaler(t)
	c := createProductCategory(t)
	d := createProductDefinition(t, c.CategoryID)
	offering := createOffering(t, w.WholesalerID, d.ProductDefID)

	result, err := strg.Offering().Delete(context.Background(), &models.DeleteRequest{
		ID:      offering.OfferingID,
		Cascade: false,
	})
	require.NoError(t, err)
	assert.Empty(t, result.Stats)
}

func TestDeleteMissingWholesaler(t *testing.T) {
	requireDB(t)

	_, err := strg.Wholesaler().Delete(context.Background(), &models.DeleteRequest{
		ID:      -1,
		Cascade: true,
	})

	var storeErr *models.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, models.ErrNotFound, storeErr.Kind)
}

func TestCreateOrderDefaultsOrderDate(t *testing.T) {
	requireDB(t)

	w := createWholesaler(t)
	order := createOrder(t, w.WholesalerID) // no order date supplied

	assert.False(t, order.OrderDate.IsZero(), "order date must fall back to the column default")

	got, err := strg.Order().GetByID(context.Background(), order.OrderID)
	require.NoError(t, err)
	assert.False(t, got.OrderDate.IsZero())
}

func TestUpdateOrderStatus(t *testing.T) {
	requireDB(t)

	w := createWholesaler(t)
	order := createOrder(t, w.WholesalerID)
	order.Status = "confirmed"

	updated, err := strg.Order().Update(context.Background(), order)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", updated.Status)
	assert.Equal(t, order.OrderID, updated.OrderID)
}

func TestUpdateOrderItemQuantity(t *testing.T) {
	requireDB(t)

	w := createWholesaler(t)
	c := createProductCategory(t)
	d := createProductDefinition(t, c.CategoryID)
	offering := createOffering(t, w.WholesalerID, d.ProductDefID)
	order := createOrder(t, w.WholesalerID)
	item := createOrderItem(t, order.OrderID, offering.OfferingID)

	item.Quantity = item.Quantity + 5
	item.UnitPrice = 3.25

	updated, err := strg.OrderItem().Update(context.Background(), item)
	require.NoError(t, err)
	assert.Equal(t, item.Quantity, updated.Quantity)
	assert.Equal(t, 3.25, updated.UnitPrice)
	assert.Equal(t, offering.OfferingID, updated.OfferingID)
}

func TestUpdateOfferingAttribute(t *testing.T) {
	requireDB(t)

	w := createWholesaler(t)
	c := createProductCategory(t)
	d := createProductDefinition(t, c.CategoryID)
	offering := createOffering(t, w.WholesalerID, d.ProductDefID)
	attr := createOfferingAttribute(t, offering.OfferingID)

	attr.AttributeValue = "granulated"
	attr.SortOrder = 42

	updated, err := strg.OfferingAttribute().Update(context.Background(), attr)
	require.NoError(t, err)
	assert.Equal(t, "granulated", updated.AttributeValue)
	assert.Equal(t, int32(42), updated.SortOrder)
}

func TestUpdateOfferingLink(t *testing.T) {
	requireDB(t)

	w := createWholesaler(t)
	c := createProductCategory(t)
	d := createProductDefinition(t, c.CategoryID)
	offering := createOffering(t, w.WholesalerID, d.ProductDefID)
	link := createOfferingLink(t, offering.OfferingID)

	link.URL = fakeData.Internet().URL()
	link.Notes = "updated source"

	updated, err := strg.OfferingLink().Update(context.Background(), link)
	require.NoError(t, err)
	assert.Equal(t, link.URL, updated.URL)
	assert.Equal(t, "updated source", updated.Notes)
}

func TestReassignWholesalerCategory(t *testing.T) {
	requireDB(t)

	w := createWholesaler(t)
	first := createProductCategory(t)
	second := createProductCategory(t)
	assignment := assignCategory(t, w.WholesalerID, first.CategoryID)

	assignment.CategoryID = second.CategoryID

	updated, err := strg.WholesalerCategory().Update(context.Background(), assignment)
	require.NoError(t, err)
	assert.Equal(t, second.CategoryID, updated.CategoryID)
	assert.Equal(t, w.WholesalerID, updated.WholesalerID)
}

func TestGetListOrderItemsByOrder(t *testing.T) {
	requireDB(t)

	w := createWholesaler(t)
	c := createProductCategory(t)
	d := createProductDefinition(t, c.CategoryID)
	offering := createOffering(t, w.WholesalerID, d.ProductDefID)
	order := createOrder(t, w.WholesalerID)
	createOrderItem(t, order.OrderID, offering.OfferingID)
	createOrderItem(t, order.OrderID, offering.OfferingID)

	result, err := strg.OrderItem().GetList(context.Background(), models.QueryPayload{
		Where: &models.WhereConditionGroup{
			Operator: models.LogicalAnd,
			Conditions: []models.WhereNode{
				models.WhereCondition{Key: "order_id", Operator: models.OperatorEq, Value: order.OrderID},
			},
		},
	})
	require.NoError(t, err)
	assert.Len(t, result.Rows, 2)
}

// Rows tying on the first sort key must be decided by the second.
func TestQuerySortTieBreaksOnSecondKey(t *testing.T) {
	requireDB(t)

	w := createWholesaler(t)
	c := createProductCategory(t)
	d := createProductDefinition(t, c.CategoryID)

	create := func() *models.Offering {
		o, err := strg.Offering().Create(context.Background(), &models.Offering{
			WholesalerID: w.WholesalerID,
			ProductDefID: d.ProductDefID,
			Price:        9.99,
			Currency:     "EUR",
		})
		require.NoError(t, err)
		return o
	}
	first := create()
	second := create()

	result, err := strg.Query().Run(context.Background(), models.QueryPayload{
		From:   models.FromClause{Table: schema.TableOfferings, Alias: "a"},
		Select: []string{"a.offering_id", "a.price"},
		Where: &models.WhereConditionGroup{
			Operator: models.LogicalAnd,
			Conditions: []models.WhereNode{
				models.WhereCondition{Key: "wholesaler_id", Operator: models.OperatorEq, Value: w.WholesalerID},
			},
		},
		OrderBy: []models.SortDescriptor{
			{Key: "price", Direction: models.SortAsc},
			{Key: "offering_id", Direction: models.SortAsc},
		},
	})
	require.NoError(t, err)
	require.Len(t, result.Rows, 2)
	assert.EqualValues(t, first.OfferingID, result.Rows[0]["a.offering_id"])
	assert.EqualValues(t, second.OfferingID, result.Rows[1]["a.offering_id"])

	// Same payload, descending tie-break, reversed row order.
	result, err = strg.Query().Run(context.Background(), models.QueryPayload{
		From:   models.FromClause{Table: schema.TableOfferings, Alias: "a"},
		Select: []string{"a.offering_id", "a.price"},
		Where: &models.WhereConditionGroup{
			Operator: models.LogicalAnd,
			Conditions: []models.WhereNode{
				models.WhereCondition{Key: "wholesaler_id", Operator: models.OperatorEq, Value: w.WholesalerID},
			},
		},
		OrderBy: []models.SortDescriptor{
			{Key: "price", Direction: models.SortAsc},
			{Key: "offering_id", Direction: models.SortDesc},
		},
	})
	require.NoError(t, err)
	require.Len(t, result.Rows, 2)
	assert.EqualValues(t, second.OfferingID, result.Rows[0]["a.offering_id"])
	assert.EqualValues(t, first.OfferingID, result.Rows[1]["a.offering_id"])
}

func TestOrderCascadeDelete(t *testing.T) {
	requireDB(t)

	w := createWholesaler(t)
	c := createProductCategory(t)
	d := createProductDefinition(t, c.CategoryID)
	offering := createOffering(t, w.WholesalerID, d.ProductDefID)
	order := createOrder(t, w.WholesalerID)
	createOrderItem(t, order.OrderID, offering.OfferingID)
	createOrderItem(t, order.OrderID, offering.OfferingID)

	result, err := strg.Order().Delete(context.Background(), &models.DeleteRequest{
		ID:      order.OrderID,
		Cascade: true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Stats[schema.StatOrderItems])
	assert.Equal(t, int64(2), result.Stats[models.StatTotal])

	// The offering the items pointed at is untouched.
	_, err = strg.Offering().GetByID(context.Background(), offering.OfferingID)
	assert.NoError(t, err)
}
