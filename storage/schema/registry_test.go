package schema_test

import (
	"testing"

	"wholesaler/wholesaler_catalog_service/storage/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTable(t *testing.T) {
	r := schema.Default()

	table, ok := r.ResolveTable(schema.TableOfferings)
	require.True(t, ok)
	assert.Equal(t, "offering_id", table.PrimaryKey)
	assert.True(t, table.IsColumnAllowed("price"))
	assert.False(t, table.IsColumnAllowed("secret"))

	_, ok = r.ResolveTable("information_schema.tables")
	assert.False(t, ok)
}

func TestIsColumnAllowed(t *testing.T) {
	r := schema.Default()

	assert.True(t, r.IsColumnAllowed(schema.TableWholesalers, "region"))
	assert.False(t, r.IsColumnAllowed(schema.TableWholesalers, "region; --"))
	assert.False(t, r.IsColumnAllowed("no_such_table", "region"))
}

func TestResolveJoin(t *testing.T) {
	r := schema.Default()

	join, ok := r.ResolveJoin(schema.TableOfferings, "w")
	require.True(t, ok)
	assert.Equal(t, schema.TableWholesalers, join.Table)
	assert.Equal(t, schema.JoinInner, join.Kind)

	join, ok = r.ResolveJoin(schema.TableWholesalerCategories, "pc")
	require.True(t, ok)
	assert.Equal(t, schema.JoinLeft, join.Kind)

	_, ok = r.ResolveJoin(schema.TableOfferings, "pc")
	assert.False(t, ok)
}

// Every join must point at a registered table and reference allow-listed
// columns on both sides; otherwise a compiled ON clause could smuggle in an
// unchecked identifier.
func TestJoinDescriptorsAreInternallyConsistent(t *testing.T) {
	r := schema.Default()

	bases := []string{
		schema.TableOfferings,
		schema.TableProductDefinitions,
		schema.TableOrders,
		schema.TableOrderItems,
		schema.TableOfferingAttributes,
		schema.TableOfferingLinks,
		schema.TableWholesalerCategories,
	}

	aliases := []string{"w", "pd", "pc", "o", "off"}

	for _, base := range bases {
		for _, alias := range aliases {
			join, ok := r.ResolveJoin(base, alias)
			if !ok {
				continue
			}

			_, registered := r.ResolveTable(join.Table)
			assert.True(t, registered, "join %s.%s targets unregistered table", base, alias)
			assert.True(t, r.IsColumnAllowed(join.Table, join.LocalColumn),
				"join %s.%s local column not allow-listed", base, alias)
			assert.True(t, r.IsColumnAllowed(base, join.BaseColumn),
				"join %s.%s base column not allow-listed", base, alias)
		}
	}
}
