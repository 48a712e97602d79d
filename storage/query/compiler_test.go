package query_test

import (
	"encoding/json"
	"strings"
	"testing"

	"wholesaler/wholesaler_catalog_service/models"
	"wholesaler/wholesaler_catalog_service/storage/query"
	"wholesaler/wholesaler_catalog_service/storage/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var compiler = query.NewCompiler(schema.Default())

func TestCompileSelectAllExpandsRegistryColumns(t *testing.T) {
	compiled, err := compiler.Compile(models.QueryPayload{
		From: models.FromClause{Table: schema.TableWholesalers, Alias: "a"},
	})
	require.NoError(t, err)

	assert.Equal(t,
		`SELECT a.wholesaler_id, a.name, a.region, a.status, a.dropship, a.created_at FROM "wholesalers" a`,
		compiled.SQL,
	)
	assert.Empty(t, compiled.ParamNames)
	assert.Equal(t, 0, compiled.Meta.ParamCount)
	assert.Equal(t, 6, len(compiled.Meta.Columns))
}

func TestCompileFullPayload(t *testing.T) {
	payload := models.QueryPayload{
		From:   models.FromClause{Table: schema.TableOfferings, Alias: "o"},
		Joins:  []string{"w"},
		Select: []string{"offering_id", "price", "w.name"},
		Where: &models.WhereConditionGroup{
			Operator: models.LogicalAnd,
			Conditions: []models.WhereNode{
				models.WhereCondition{Key: "price", Operator: models.OperatorGte, Value: 100},
				models.WhereConditionGroup{
					Operator: models.LogicalOr,
					Conditions: []models.WhereNode{
						models.WhereCondition{Key: "w.region", Operator: models.OperatorEq, Value: "EU"},
						models.WhereCondition{Key: "currency", Operator: models.OperatorIn, Value: []string{"EUR", "USD"}},
					},
				},
			},
		},
		OrderBy: []models.SortDescriptor{
			{Key: "price", Direction: models.SortDesc},
			{Key: "offering_id", Direction: models.SortAsc},
		},
		Limit:  20,
		Offset: 40,
	}

	compiled, err := compiler.Compile(payload)
	require.NoError(t, err)

	assert.Equal(t,
		`SELECT o.offering_id, o.price, w.name FROM "offerings" o`+
			` INNER JOIN "wholesalers" w ON w.wholesaler_id = o.wholesaler_id`+
			` WHERE (o.price >= @p0 AND (w.region = @p1 OR o.currency IN (@p2,@p3)))`+
			` ORDER BY o.price DESC, o.offering_id ASC`+
			` LIMIT @p4 OFFSET @p5`,
		compiled.SQL,
	)

	assert.Equal(t, []string{"p0", "p1", "p2", "p3", "p4", "p5"}, compiled.ParamNames)
	assert.Equal(t, 100, compiled.Args["p0"])
	assert.Equal(t, "EU", compiled.Args["p1"])
	assert.Equal(t, "EUR", compiled.Args["p2"])
	assert.Equal(t, "USD", compiled.Args["p3"])
	assert.Equal(t, 20, compiled.Args["p4"])
	assert.Equal(t, 40, compiled.Args["p5"])

	assert.Equal(t, 1, compiled.Meta.JoinCount)
	assert.Equal(t, 3, compiled.Meta.ConditionCount)
	assert.Equal(t, 6, compiled.Meta.ParamCount)
}

func TestCompileLeftJoinRenderedAsDeclared(t *testing.T) {
	compiled, err := compiler.Compile(models.QueryPayload{
		From:   models.FromClause{Table: schema.TableWholesalerCategories, Alias: "wc"},
		Joins:  []string{"pc"},
		Select: []string{"assignment_id", "pc.name"},
	})
	require.NoError(t, err)

	assert.Contains(t, compiled.SQL, `LEFT JOIN "product_categories" pc ON pc.category_id = wc.category_id`)
}

func TestCompileValuesNeverAppearInSQL(t *testing.T) {
	hostile := `'; DROP TABLE "wholesalers"; --`

	compiled, err := compiler.Compile(models.QueryPayload{
		From: models.FromClause{Table: schema.TableWholesalers, Alias: "a"},
		Where: &models.WhereConditionGroup{
			Operator: models.LogicalAnd,
			Conditions: []models.WhereNode{
				models.WhereCondition{Key: "name", Operator: models.OperatorLike, Value: hostile},
				models.WhereCondition{Key: "region", Operator: models.OperatorIn, Value: []string{hostile, "EU"}},
			},
		},
	})
	require.NoError(t, err)

	assert.NotContains(t, compiled.SQL, "DROP TABLE")
	assert.NotContains(t, compiled.SQL, hostile)
	assert.Equal(t, hostile, compiled.Args["p0"])
	assert.Equal(t, hostile, compiled.Args["p1"])
}

func TestCompileUnknownTable(t *testing.T) {
	_, err := compiler.Compile(models.QueryPayload{
		From: models.FromClause{Table: "pg_catalog", Alias: "a"},
	})

	var compileErr *models.CompileError
	require.ErrorAs(t, err, &compileErr)
	assert.Equal(t, models.CompileUnknownTable, compileErr.Kind)
}

func TestCompileUnknownJoinAlias(t *testing.T) {
	_, err := compiler.Compile(models.QueryPayload{
		From:  models.FromClause{Table: schema.TableWholesalers, Alias: "a"},
		Joins: []string{"zz"},
	})

	var compileErr *models.CompileError
	require.ErrorAs(t, err, &compileErr)
	assert.Equal(t, models.CompileUnknownAlias, compileErr.Kind)
}

func TestCompileUnknownColumnAlias(t *testing.T) {
	_, err := compiler.Compile(models.QueryPayload{
		From:   models.FromClause{Table: schema.TableOfferings, Alias: "o"},
		Select: []string{"x.name"},
	})

	var compileErr *models.CompileError
	require.ErrorAs(t, err, &compileErr)
	assert.Equal(t, models.CompileUnknownAlias, compileErr.Kind)
	assert.Equal(t, "x.name", compileErr.Ident)
}

func TestCompileColumnNotAllowed(t *testing.T) {
	for _, ref := range []string{"password", "name; --", "a.secret"} {
		_, err := compiler.Compile(models.QueryPayload{
			From:   models.FromClause{Table: schema.TableWholesalers, Alias: "a"},
			Select: []string{ref},
		})

		var compileErr *models.CompileError
		require.ErrorAs(t, err, &compileErr, "ref %q", ref)
		assert.Equal(t, models.CompileColumnNotAllowed, compileErr.Kind)
	}
}

func TestCompileOperatorArity(t *testing.T) {
	cases := []struct {
		name string
		cond models.WhereCondition
	}{
		{"in with scalar", models.WhereCondition{Key: "region", Operator: models.OperatorIn, Value: "EU"}},
		{"in with empty list", models.WhereCondition{Key: "region", Operator: models.OperatorIn, Value: []string{}}},
		{"eq with list", models.WhereCondition{Key: "region", Operator: models.OperatorEq, Value: []string{"EU"}}},
		{"unknown operator", models.WhereCondition{Key: "region", Operator: "regex", Value: "EU"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := compiler.Compile(models.QueryPayload{
				From: models.FromClause{Table: schema.TableWholesalers, Alias: "a"},
				Where: &models.WhereConditionGroup{
					Operator:   models.LogicalAnd,
					Conditions: []models.WhereNode{tc.cond},
				},
			})

			var compileErr *models.CompileError
			require.ErrorAs(t, err, &compileErr)
			assert.Equal(t, models.CompileOperatorArityMismatch, compileErr.Kind)
		})
	}
}

func TestCompileInvalidPayload(t *testing.T) {
	t.Run("negative limit", func(t *testing.T) {
		_, err := compiler.Compile(models.QueryPayload{
			From:  models.FromClause{Table: schema.TableWholesalers, Alias: "a"},
			Limit: -1,
		})

		var compileErr *models.CompileError
		require.ErrorAs(t, err, &compileErr)
		assert.Equal(t, models.CompileInvalidPayload, compileErr.Kind)
	})

	t.Run("empty condition group", func(t *testing.T) {
		_, err := compiler.Compile(models.QueryPayload{
			From:  models.FromClause{Table: schema.TableWholesalers, Alias: "a"},
			Where: &models.WhereConditionGroup{Operator: models.LogicalAnd},
		})

		var compileErr *models.CompileError
		require.ErrorAs(t, err, &compileErr)
		assert.Equal(t, models.CompileInvalidPayload, compileErr.Kind)
	})

	t.Run("hostile base alias", func(t *testing.T) {
		_, err := compiler.Compile(models.QueryPayload{
			From: models.FromClause{Table: schema.TableWholesalers, Alias: "a; DROP"},
		})

		var compileErr *models.CompileError
		require.ErrorAs(t, err, &compileErr)
		assert.Equal(t, models.CompileInvalidPayload, compileErr.Kind)
	})
}

func TestCompileErrorsProduceNoSQL(t *testing.T) {
	bad := []models.QueryPayload{
		{From: models.FromClause{Table: "nope"}},
		{From: models.FromClause{Table: schema.TableOrders}, Select: []string{"total_secret"}},
		{From: models.FromClause{Table: schema.TableOrders}, Joins: []string{"bogus"}},
	}

	for _, payload := range bad {
		compiled, err := compiler.Compile(payload)
		assert.Error(t, err)
		assert.Nil(t, compiled)
	}
}

func TestCompilePayloadFromJSON(t *testing.T) {
	raw := `{
		"from": {"table": "offerings", "alias": "o"},
		"joins": ["w"],
		"select": ["offering_id", "w.name"],
		"where": {
			"whereCondOp": "AND",
			"conditions": [
				{"key": "price", "operator": "lt", "value": 50},
				{
					"whereCondOp": "OR",
					"conditions": [
						{"key": "w.status", "operator": "eq", "value": "active"},
						{"key": "w.dropship", "operator": "eq", "value": true}
					]
				}
			]
		},
		"orderBy": [{"key": "price", "direction": "asc"}],
		"limit": 10
	}`

	var payload models.QueryPayload
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))

	compiled, err := compiler.Compile(payload)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(compiled.SQL, `SELECT o.offering_id, w.name FROM "offerings" o`))
	assert.Contains(t, compiled.SQL, `WHERE (o.price < @p0 AND (w.status = @p1 OR w.dropship = @p2))`)
	assert.Equal(t, float64(50), compiled.Args["p0"])
	assert.Equal(t, true, compiled.Args["p2"])
}
