package schema

// Entity names used to look up cascade plans.
const (
	EntityWholesaler          = "wholesaler"
	EntityProductCategory     = "product_category"
	EntityProductDefinition   = "product_definition"
	EntityOffering            = "offering"
	EntityOfferingAttribute   = "offering_attribute"
	EntityOfferingLink        = "offering_link"
	EntityOrder               = "order"
	EntityOrderItem           = "order_item"
	EntityWholesalerCategory  = "wholesaler_item_category"
)

// Stat keys reported by the cascade engine.
const (
	StatOrderItems           = "deletedOrderItems"
	StatOrders               = "deletedOrders"
	StatLinks                = "deletedLinks"
	StatAttributes           = "deletedAttributes"
	StatOfferings            = "deletedOfferings"
	StatProductDefinitions   = "deletedProductDefinitions"
	StatWholesalerCategories = "deletedWholesalerCategories"
	StatWholesalers          = "deletedWholesalers"
	StatProductCategories    = "deletedProductCategories"
)

// StepFilter says how a lock or delete step finds its rows: by a column
// equal to the root entity's id, or by membership in a previously locked
// id-set (Set non-empty).
type StepFilter struct {
	Column string
	Set    string
}

// LockStep materializes a dependent id-set under FOR UPDATE before any child
// rows are removed, so a concurrent insert cannot slip a new dependent in
// between capture and deletion.
type LockStep struct {
	Name     string
	Table    string
	IDColumn string
	Filter   StepFilter
}

// DeleteStep removes rows of one dependent table and records the count under
// StatKey. Steps sharing a StatKey accumulate.
type DeleteStep struct {
	Table   string
	StatKey string
	Filter  StepFilter
}

// CascadePlan is the authored leaf-first deletion sequence for one entity
// type. Plans are data; a single generic executor runs them.
type CascadePlan struct {
	Entity          string
	Table           string
	PrimaryKey      string
	StatKey         string
	SnapshotColumns []string
	Locks           []LockStep
	Steps           []DeleteStep
}

var plans = buildPlans()

// PlanFor returns the cascade plan for the entity type.
func PlanFor(entity string) (*CascadePlan, bool) {
	p, ok := plans[entity]
	return p, ok
}

// Plans returns every authored plan, for validation.
func Plans() map[string]*CascadePlan {
	return plans
}

func buildPlans() map[string]*CascadePlan {
	byRoot := func(column string) StepFilter { return StepFilter{Column: column} }
	bySet := func(set, column string) StepFilter { return StepFilter{Set: set, Column: column} }

	list := []*CascadePlan{
		{
			Entity:          EntityWholesaler,
			Table:           TableWholesalers,
			PrimaryKey:      "wholesaler_id",
			StatKey:         StatWholesalers,
			SnapshotColumns: []string{"wholesaler_id", "name", "region", "status"},
			Locks: []LockStep{
				{Name: "offerings", Table: TableOfferings, IDColumn: "offering_id", Filter: byRoot("wholesaler_id")},
				{Name: "orders", Table: TableOrders, IDColumn: "order_id", Filter: byRoot("wholesaler_id")},
			},
			Steps: []DeleteStep{
				{Table: TableOrderItems, StatKey: StatOrderItems, Filter: bySet("orders", "order_id")},
				{Table: TableOrderItems, StatKey: StatOrderItems, Filter: bySet("offerings", "offering_id")},
				{Table: TableOrders, StatKey: StatOrders, Filter: byRoot("wholesaler_id")},
				{Table: TableOfferingLinks, StatKey: StatLinks, Filter: bySet("offerings", "offering_id")},
				{Table: TableOfferingAttributes, StatKey: StatAttributes, Filter: bySet("offerings", "offering_id")},
				{Table: TableOfferings, StatKey: StatOfferings, Filter: byRoot("wholesaler_id")},
				{Table: TableWholesalerCategories, StatKey: StatWholesalerCategories, Filter: byRoot("wholesaler_id")},
			},
		},
		{
			Entity:          EntityProductCategory,
			Table:           TableProductCategories,
			PrimaryKey:      "category_id",
			StatKey:         StatProductCategories,
			SnapshotColumns: []string{"category_id", "name"},
			Locks: []LockStep{
				{Name: "product_defs", Table: TableProductDefinitions, IDColumn: "product_def_id", Filter: byRoot("category_id")},
				{Name: "offerings", Table: TableOfferings, IDColumn: "offering_id", Filter: bySet("product_defs", "product_def_id")},
			},
			Steps: []DeleteStep{
				{Table: TableOrderItems, StatKey: StatOrderItems, Filter: bySet("offerings", "offering_id")},
				{Table: TableOfferingLinks, StatKey: StatLinks, Filter: bySet("offerings", "offering_id")},
				{Table: TableOfferingAttributes, StatKey: StatAttributes, Filter: bySet("offerings", "offering_id")},
				{Table: TableOfferings, StatKey: StatOfferings, Filter: bySet("product_defs", "product_def_id")},
				{Table: TableProductDefinitions, StatKey: StatProductDefinitions, Filter: byRoot("category_id")},
				{Table: TableWholesalerCategories, StatKey: StatWholesalerCategories, Filter: byRoot("category_id")},
			},
		},
		{
			Entity:          EntityProductDefinition,
			Table:           TableProductDefinitions,
			PrimaryKey:      "product_def_id",
			StatKey:         StatProductDefinitions,
			SnapshotColumns: []string{"product_def_id", "category_id", "title"},
			Locks: []LockStep{
				{Name: "offerings", Table: TableOfferings, IDColumn: "offering_id", Filter: byRoot("product_def_id")},
			},
			Steps: []DeleteStep{
				{Table: TableOrderItems, StatKey: StatOrderItems, Filter: bySet("offerings", "offering_id")},
				{Table: TableOfferingLinks, StatKey: StatLinks, Filter: bySet("offerings", "offering_id")},
				{Table: TableOfferingAttributes, StatKey: StatAttributes, Filter: bySet("offerings", "offering_id")},
				{Table: TableOfferings, StatKey: StatOfferings, Filter: byRoot("product_def_id")},
			},
		},
		{
			Entity:          EntityOffering,
			Table:           TableOfferings,
			PrimaryKey:      "offering_id",
			StatKey:         StatOfferings,
			SnapshotColumns: []string{"offering_id", "wholesaler_id", "product_def_id", "price", "currency"},
			Steps: []DeleteStep{
				{Table: TableOrderItems, StatKey: StatOrderItems, Filter: byRoot("offering_id")},
				{Table: TableOfferingLinks, StatKey: StatLinks, Filter: byRoot("offering_id")},
				{Table: TableOfferingAttributes, StatKey: StatAttributes, Filter: byRoot("offering_id")},
			},
		},
		{
			Entity:          EntityOrder,
			Table:           TableOrders,
			PrimaryKey:      "order_id",
			StatKey:         StatOrders,
			SnapshotColumns: []string{"order_id", "wholesaler_id", "status"},
			Steps: []DeleteStep{
				{Table: TableOrderItems, StatKey: StatOrderItems, Filter: byRoot("order_id")},
			},
		},
		{
			Entity:          EntityOrderItem,
			Table:           TableOrderItems,
			PrimaryKey:      "order_item_id",
			StatKey:         StatOrderItems,
			SnapshotColumns: []string{"order_item_id", "order_id", "offering_id", "quantity"},
		},
		{
			Entity:          EntityOfferingAttribute,
			Table:           TableOfferingAttributes,
			PrimaryKey:      "attribute_id",
			StatKey:         StatAttributes,
			SnapshotColumns: []string{"attribute_id", "offering_id", "attribute_name"},
		},
		{
			Entity:          EntityOfferingLink,
			Table:           TableOfferingLinks,
			PrimaryKey:      "link_id",
			StatKey:         StatLinks,
			SnapshotColumns: []string{"link_id", "offering_id", "url"},
		},
		{
			Entity:          EntityWholesalerCategory,
			Table:           TableWholesalerCategories,
			PrimaryKey:      "assignment_id",
			StatKey:         StatWholesalerCategories,
			SnapshotColumns: []string{"assignment_id", "wholesaler_id", "category_id"},
		},
	}

	out := make(map[string]*CascadePlan, len(list))
	for _, p := range list {
		out[p.Entity] = p
	}
	return out
}
