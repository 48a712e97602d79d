// Package schema is the static description of the catalog's relational
// shape: the table/column allow-list the query compiler checks every
// identifier against, the registry-fixed join descriptors, and the entity
// dependency graph the cascade engine executes. Everything here is built
// once and read-only afterwards.
package schema

// Catalog table names.
const (
	TableWholesalers          = "wholesalers"
	TableProductCategories    = "product_categories"
	TableProductDefinitions   = "product_definitions"
	TableOfferings            = "offerings"
	TableOfferingAttributes   = "offering_attributes"
	TableOfferingLinks        = "offering_links"
	TableOrders               = "orders"
	TableOrderItems           = "order_items"
	TableWholesalerCategories = "wholesaler_item_categories"
)

// JoinKind is the declared join type; the compiler never infers one.
type JoinKind string

const (
	JoinInner JoinKind = "INNER"
	JoinLeft  JoinKind = "LEFT"
)

// TableDescriptor holds the allow-list for one table: its primary key and
// every column eligible for selection, filtering and sorting.
type TableDescriptor struct {
	Name       string
	PrimaryKey string
	Columns    []string

	columnSet map[string]struct{}
}

// IsColumnAllowed ...
func (t *TableDescriptor) IsColumnAllowed(column string) bool {
	_, ok := t.columnSet[column]
	return ok
}

// JoinDescriptor is a registry-fixed join a payload may activate by alias.
// The ON clause is always <Alias>.<LocalColumn> = <baseAlias>.<BaseColumn>;
// payloads can never supply join text of their own.
type JoinDescriptor struct {
	Alias       string
	Table       string
	Kind        JoinKind
	LocalColumn string
	BaseColumn  string
}

// Registry is the allow-list all compiled SQL must respect.
type Registry struct {
	tables map[string]*TableDescriptor
	joins  map[string]map[string]*JoinDescriptor // base table -> alias -> join
}

// ResolveTable ...
func (r *Registry) ResolveTable(name string) (*TableDescriptor, bool) {
	t, ok := r.tables[name]
	return t, ok
}

// IsColumnAllowed reports whether the column may appear in SQL for the table.
func (r *Registry) IsColumnAllowed(table, column string) bool {
	t, ok := r.tables[table]
	if !ok {
		return false
	}
	return t.IsColumnAllowed(column)
}

// ResolveJoin looks up a registry-fixed join for the base table by alias.
func (r *Registry) ResolveJoin(baseTable, alias string) (*JoinDescriptor, bool) {
	byAlias, ok := r.joins[baseTable]
	if !ok {
		return nil, false
	}
	j, ok := byAlias[alias]
	return j, ok
}

func newTable(name, pk string, columns ...string) *TableDescriptor {
	set := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		set[c] = struct{}{}
	}
	return &TableDescriptor{Name: name, PrimaryKey: pk, Columns: columns, columnSet: set}
}

var defaultRegistry = buildRegistry()

// Default returns the process-wide registry. It is immutable and safe for
// concurrent reads.
func Default() *Registry {
	return defaultRegistry
}

func buildRegistry() *Registry {
	tables := []*TableDescriptor{
		newTable(TableWholesalers, "wholesaler_id",
			"wholesaler_id", "name", "region", "status", "dropship", "created_at"),
		newTable(TableProductCategories, "category_id",
			"category_id", "name", "description", "created_at"),
		newTable(TableProductDefinitions, "product_def_id",
			"product_def_id", "category_id", "title", "description", "created_at"),
		newTable(TableOfferings, "offering_id",
			"offering_id", "wholesaler_id", "product_def_id", "price", "currency", "size", "comment", "created_at"),
		newTable(TableOfferingAttributes, "attribute_id",
			"attribute_id", "offering_id", "attribute_name", "attribute_value", "sort_order"),
		newTable(TableOfferingLinks, "link_id",
			"link_id", "offering_id", "url", "notes", "created_at"),
		newTable(TableOrders, "order_id",
			"order_id", "wholesaler_id", "status", "order_date", "created_at"),
		newTable(TableOrderItems, "order_item_id",
			"order_item_id", "order_id", "offering_id", "quantity", "unit_price", "created_at"),
		newTable(TableWholesalerCategories, "assignment_id",
			"assignment_id", "wholesaler_id", "category_id", "created_at"),
	}

	r := &Registry{
		tables: make(map[string]*TableDescriptor, len(tables)),
		joins:  make(map[string]map[string]*JoinDescriptor),
	}
	for _, t := range tables {
		r.tables[t.Name] = t
	}

	addJoin := func(base string, j *JoinDescriptor) {
		if r.joins[base] == nil {
			r.joins[base] = make(map[string]*JoinDescriptor)
		}
		r.joins[base][j.Alias] = j
	}

	addJoin(TableOfferings, &JoinDescriptor{
		Alias: "w", Table: TableWholesalers, Kind: JoinInner,
		LocalColumn: "wholesaler_id", BaseColumn: "wholesaler_id",
	})
	addJoin(TableOfferings, &JoinDescriptor{
		Alias: "pd", Table: TableProductDefinitions, Kind: JoinInner,
		LocalColumn: "product_def_id", BaseColumn: "product_def_id",
	})

	addJoin(TableProductDefinitions, &JoinDescriptor{
		Alias: "pc", Table: TableProductCategories, Kind: JoinInner,
		LocalColumn: "category_id", BaseColumn: "category_id",
	})

	addJoin(TableOrders, &JoinDescriptor{
		Alias: "w", Table: TableWholesalers, Kind: JoinInner,
		LocalColumn: "wholesaler_id", BaseColumn: "wholesaler_id",
	})

	addJoin(TableOrderItems, &JoinDescriptor{
		Alias: "o", Table: TableOrders, Kind: JoinInner,
		LocalColumn: "order_id", BaseColumn: "order_id",
	})
	addJoin(TableOrderItems, &JoinDescriptor{
		Alias: "off", Table: TableOfferings, Kind: JoinInner,
		LocalColumn: "offering_id", BaseColumn: "offering_id",
	})

	addJoin(TableOfferingAttributes, &JoinDescriptor{
		Alias: "off", Table: TableOfferings, Kind: JoinInner,
		LocalColumn: "offering_id", BaseColumn: "offering_id",
	})
	addJoin(TableOfferingLinks, &JoinDescriptor{
		Alias: "off", Table: TableOfferings, Kind: JoinInner,
		LocalColumn: "offering_id", BaseColumn: "offering_id",
	})

	addJoin(TableWholesalerCategories, &JoinDescriptor{
		Alias: "w", Table: TableWholesalers, Kind: JoinInner,
		LocalColumn: "wholesaler_id", BaseColumn: "wholesaler_id",
	})
	addJoin(TableWholesalerCategories, &JoinDescriptor{
		Alias: "pc", Table: TableProductCategories, Kind: JoinLeft,
		LocalColumn: "category_id", BaseColumn: "category_id",
	})

	return r
}
