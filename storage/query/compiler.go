// Package query compiles declarative QueryPayload values into parameterized
// SQL. Every identifier is resolved against the schema registry and every
// value becomes a named bind parameter; nothing caller-supplied is ever
// concatenated into the statement text.
package query

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"wholesaler/wholesaler_catalog_service/models"
	"wholesaler/wholesaler_catalog_service/storage/schema"

	"github.com/jackc/pgx/v5"
)

// Compiled is a ready-to-execute statement. ParamNames preserves allocation
// order for diagnostics; Args is what gets handed to pgx.
type Compiled struct {
	SQL        string
	Args       pgx.NamedArgs
	ParamNames []string
	Meta       models.QueryMeta
}

// Compiler turns payloads into SQL using one registry. Safe for concurrent
// use; it holds no per-query state.
type Compiler struct {
	registry *schema.Registry
}

func NewCompiler(registry *schema.Registry) *Compiler {
	return &Compiler{registry: registry}
}

var aliasPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Compile resolves and renders the payload. On any *models.CompileError no
// SQL is produced.
func (c *Compiler) Compile(payload models.QueryPayload) (*Compiled, error) {
	base, ok := c.registry.ResolveTable(payload.From.Table)
	if !ok {
		return nil, &models.CompileError{
			Kind:    models.CompileUnknownTable,
			Ident:   payload.From.Table,
			Message: "table is not registered",
		}
	}

	baseAlias := payload.From.Alias
	if baseAlias == "" {
		baseAlias = "a"
	}
	if !aliasPattern.MatchString(baseAlias) {
		return nil, &models.CompileError{
			Kind:    models.CompileInvalidPayload,
			Ident:   baseAlias,
			Message: "base alias must be a plain lowercase identifier",
		}
	}

	if payload.Limit < 0 || payload.Offset < 0 {
		return nil, &models.CompileError{
			Kind:    models.CompileInvalidPayload,
			Message: "limit and offset must be non-negative",
		}
	}

	st := &compileState{
		registry:  c.registry,
		base:      base,
		baseAlias: baseAlias,
		args:      pgx.NamedArgs{},
		joins:     make(map[string]*schema.JoinDescriptor, len(payload.Joins)),
	}

	for _, alias := range payload.Joins {
		join, ok := c.registry.ResolveJoin(base.Name, alias)
		if !ok {
			return nil, &models.CompileError{
				Kind:    models.CompileUnknownAlias,
				Ident:   alias,
				Message: "no registered join with this alias for the base table",
			}
		}
		st.joins[alias] = join
		st.joinOrder = append(st.joinOrder, join)
	}

	columns, err := st.selectColumns(payload.Select)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(columns, ", "))
	sb.WriteString(fmt.Sprintf(` FROM "%s" %s`, base.Name, baseAlias))

	for _, join := range st.joinOrder {
		sb.WriteString(fmt.Sprintf(` %s JOIN "%s" %s ON %s.%s = %s.%s`,
			join.Kind, join.Table, join.Alias,
			join.Alias, join.LocalColumn,
			baseAlias, join.BaseColumn,
		))
	}

	if payload.Where != nil {
		clause, err := st.renderGroup(payload.Where)
		if err != nil {
			return nil, err
		}
		sb.WriteString(" WHERE ")
		sb.WriteString(clause)
	}

	if len(payload.OrderBy) > 0 {
		orderBy, err := st.renderOrderBy(payload.OrderBy)
		if err != nil {
			return nil, err
		}
		sb.WriteString(" ORDER BY ")
		sb.WriteString(orderBy)
	}

	if payload.Limit > 0 {
		sb.WriteString(" LIMIT " + st.bind(payload.Limit))
	}
	if payload.Offset > 0 {
		sb.WriteString(" OFFSET " + st.bind(payload.Offset))
	}

	return &Compiled{
		SQL:        sb.String(),
		Args:       st.args,
		ParamNames: st.paramNames,
		Meta: models.QueryMeta{
			Columns:        columns,
			JoinCount:      len(st.joinOrder),
			ConditionCount: st.conditionCount,
			ParamCount:     len(st.paramNames),
		},
	}, nil
}

type compileState struct {
	registry  *schema.Registry
	base      *schema.TableDescriptor
	baseAlias string

	joins     map[string]*schema.JoinDescriptor
	joinOrder []*schema.JoinDescriptor

	args           pgx.NamedArgs
	paramNames     []string
	conditionCount int
}

// bind allocates the next named parameter for a value and returns its
// placeholder.
func (st *compileState) bind(value any) string {
	name := fmt.Sprintf("p%d", len(st.paramNames))
	st.paramNames = append(st.paramNames, name)
	st.args[name] = value
	return "@" + name
}

// resolveColumn maps a ColumnRef onto "alias.column", enforcing the
// allow-list of whichever table the alias stands for.
func (st *compileState) resolveColumn(ref string) (string, error) {
	alias := st.baseAlias
	column := ref
	table := st.base.Name

	if idx := strings.IndexByte(ref, '.'); idx >= 0 {
		alias = ref[:idx]
		column = ref[idx+1:]

		if alias != st.baseAlias {
			join, ok := st.joins[alias]
			if !ok {
				return "", &models.CompileError{
					Kind:    models.CompileUnknownAlias,
					Ident:   ref,
					Message: "alias does not match the base table or an activated join",
				}
			}
			table = join.Table
		}
	}

	if !st.registry.IsColumnAllowed(table, column) {
		return "", &models.CompileError{
			Kind:    models.CompileColumnNotAllowed,
			Ident:   ref,
			Message: fmt.Sprintf("column is not allow-listed on %q", table),
		}
	}

	return alias + "." + column, nil
}

func (st *compileState) selectColumns(refs []string) ([]string, error) {
	if len(refs) == 0 {
		columns := make([]string, 0, len(st.base.Columns))
		for _, col := range st.base.Columns {
			columns = append(columns, st.baseAlias+"."+col)
		}
		return columns, nil
	}

	columns := make([]string, 0, len(refs))
	for _, ref := range refs {
		resolved, err := st.resolveColumn(ref)
		if err != nil {
			return nil, err
		}
		columns = append(columns, resolved)
	}
	return columns, nil
}

func (st *compileState) renderGroup(group *models.WhereConditionGroup) (string, error) {
	if len(group.Conditions) == 0 {
		return "", &models.CompileError{
			Kind:    models.CompileInvalidPayload,
			Message: "condition group must not be empty",
		}
	}

	op := group.Operator
	if op != models.LogicalAnd && op != models.LogicalOr {
		return "", &models.CompileError{
			Kind:    models.CompileInvalidPayload,
			Ident:   string(op),
			Message: "group operator must be AND or OR",
		}
	}

	parts := make([]string, 0, len(group.Conditions))
	for _, node := range group.Conditions {
		switch n := node.(type) {
		case models.WhereCondition:
			rendered, err := st.renderCondition(n)
			if err != nil {
				return "", err
			}
			parts = append(parts, rendered)
		case *models.WhereCondition:
			rendered, err := st.renderCondition(*n)
			if err != nil {
				return "", err
			}
			parts = append(parts, rendered)
		case models.WhereConditionGroup:
			rendered, err := st.renderGroup(&n)
			if err != nil {
				return "", err
			}
			parts = append(parts, rendered)
		case *models.WhereConditionGroup:
			rendered, err := st.renderGroup(n)
			if err != nil {
				return "", err
			}
			parts = append(parts, rendered)
		default:
			return "", &models.CompileError{
				Kind:    models.CompileInvalidPayload,
				Message: fmt.Sprintf("unsupported condition node %T", node),
			}
		}
	}

	return "(" + strings.Join(parts, " "+string(op)+" ") + ")", nil
}

func (st *compileState) renderCondition(cond models.WhereCondition) (string, error) {
	column, err := st.resolveColumn(cond.Key)
	if err != nil {
		return "", err
	}

	sqlOp, known := cond.Operator.SQL()
	if !known {
		return "", &models.CompileError{
			Kind:    models.CompileOperatorArityMismatch,
			Ident:   string(cond.Operator),
			Message: "unknown comparison operator",
		}
	}

	st.conditionCount++

	if cond.Operator.NeedsSlice() {
		elements, ok := sliceValues(cond.Value)
		if !ok {
			return "", &models.CompileError{
				Kind:    models.CompileOperatorArityMismatch,
				Ident:   cond.Key,
				Message: string(cond.Operator) + " requires a non-empty list value",
			}
		}

		placeholders := make([]string, 0, len(elements))
		for _, el := range elements {
			placeholders = append(placeholders, st.bind(el))
		}
		return fmt.Sprintf("%s %s (%s)", column, sqlOp, strings.Join(placeholders, ",")), nil
	}

	if !isScalar(cond.Value) {
		return "", &models.CompileError{
			Kind:    models.CompileOperatorArityMismatch,
			Ident:   cond.Key,
			Message: string(cond.Operator) + " requires a scalar value",
		}
	}

	return fmt.Sprintf("%s %s %s", column, sqlOp, st.bind(cond.Value)), nil
}

func (st *compileState) renderOrderBy(descriptors []models.SortDescriptor) (string, error) {
	parts := make([]string, 0, len(descriptors))
	for _, d := range descriptors {
		column, err := st.resolveColumn(d.Key)
		if err != nil {
			return "", err
		}

		switch d.Direction {
		case models.SortAsc, "":
			parts = append(parts, column+" ASC")
		case models.SortDesc:
			parts = append(parts, column+" DESC")
		default:
			return "", &models.CompileError{
				Kind:    models.CompileInvalidPayload,
				Ident:   string(d.Direction),
				Message: "sort direction must be asc or desc",
			}
		}
	}
	return strings.Join(parts, ", "), nil
}

// sliceValues flattens any slice/array value into []any. Empty lists are
// rejected: IN () is not renderable.
func sliceValues(value any) ([]any, bool) {
	if value == nil {
		return nil, false
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	if rv.Len() == 0 {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func isScalar(value any) bool {
	if value == nil {
		return true
	}
	switch reflect.ValueOf(value).Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Struct, reflect.Ptr:
		return false
	}
	return true
}
