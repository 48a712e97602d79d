package models

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// ComparisonOperator is the closed set of operators a WhereCondition may carry.
type ComparisonOperator string

const (
	OperatorEq    ComparisonOperator = "eq"
	OperatorNeq   ComparisonOperator = "neq"
	OperatorLt    ComparisonOperator = "lt"
	OperatorLte   ComparisonOperator = "lte"
	OperatorGt    ComparisonOperator = "gt"
	OperatorGte   ComparisonOperator = "gte"
	OperatorIn    ComparisonOperator = "in"
	OperatorNotIn ComparisonOperator = "notin"
	OperatorLike  ComparisonOperator = "like"
)

// SQL returns the SQL token for the operator, or false for an unknown one.
func (op ComparisonOperator) SQL() (string, bool) {
	switch op {
	case OperatorEq:
		return "=", true
	case OperatorNeq:
		return "!=", true
	case OperatorLt:
		return "<", true
	case OperatorLte:
		return "<=", true
	case OperatorGt:
		return ">", true
	case OperatorGte:
		return ">=", true
	case OperatorIn:
		return "IN", true
	case OperatorNotIn:
		return "NOT IN", true
	case OperatorLike:
		return "LIKE", true
	}
	return "", false
}

// NeedsSlice reports whether the operator takes a list value.
func (op ComparisonOperator) NeedsSlice() bool {
	return op == OperatorIn || op == OperatorNotIn
}

// LogicalOperator combines the members of a WhereConditionGroup.
type LogicalOperator string

const (
	LogicalAnd LogicalOperator = "AND"
	LogicalOr  LogicalOperator = "OR"
)

// WhereNode is either a WhereCondition leaf or a nested WhereConditionGroup.
type WhereNode interface {
	isWhereNode()
}

// WhereCondition is a single column comparison. Key is a bare column name
// resolved against the query's base table, or an "alias.column" reference
// into one of the payload's joins.
type WhereCondition struct {
	Key      string             `json:"key"`
	Operator ComparisonOperator `json:"operator"`
	Value    any                `json:"value"`
}

func (WhereCondition) isWhereNode() {}

// WhereConditionGroup is a boolean tree node over conditions and sub-groups.
type WhereConditionGroup struct {
	Operator   LogicalOperator `json:"whereCondOp"`
	Conditions []WhereNode     `json:"conditions"`
}

func (WhereConditionGroup) isWhereNode() {}

// UnmarshalJSON discriminates leaf conditions from nested groups by the
// presence of the whereCondOp key.
func (g *WhereConditionGroup) UnmarshalJSON(data []byte) error {
	var raw struct {
		Operator   LogicalOperator   `json:"whereCondOp"`
		Conditions []json.RawMessage `json:"conditions"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, "unmarshal condition group")
	}

	g.Operator = raw.Operator
	g.Conditions = make([]WhereNode, 0, len(raw.Conditions))

	for _, member := range raw.Conditions {
		var probe map[string]json.RawMessage
		if err := json.Unmarshal(member, &probe); err != nil {
			return errors.Wrap(err, "unmarshal condition group member")
		}

		if _, ok := probe["whereCondOp"]; ok {
			var sub WhereConditionGroup
			if err := json.Unmarshal(member, &sub); err != nil {
				return err
			}
			g.Conditions = append(g.Conditions, sub)
			continue
		}

		var cond WhereCondition
		if err := json.Unmarshal(member, &cond); err != nil {
			return errors.Wrap(err, "unmarshal where condition")
		}
		g.Conditions = append(g.Conditions, cond)
	}

	return nil
}

// SortDirection ...
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortDescriptor is one key of a stable multi-key sort, applied left to right.
type SortDescriptor struct {
	Key       string        `json:"key"`
	Direction SortDirection `json:"direction"`
}

// FromClause names the base table of a query and the alias it is known by
// inside the compiled SQL.
type FromClause struct {
	Table string `json:"table"`
	Alias string `json:"alias"`
}

// QueryPayload is the declarative description of a single read query.
// Joins lists registry-declared join aliases to activate; a payload can
// never introduce its own ON clause. An empty Select means every
// allow-listed column of the base table.
type QueryPayload struct {
	From    FromClause           `json:"from"`
	Joins   []string             `json:"joins,omitempty"`
	Select  []string             `json:"select,omitempty"`
	Where   *WhereConditionGroup `json:"where,omitempty"`
	OrderBy []SortDescriptor     `json:"orderBy,omitempty"`
	Limit   int                  `json:"limit,omitempty"`
	Offset  int                  `json:"offset,omitempty"`
}

// QueryMeta describes a compiled statement for diagnostics.
type QueryMeta struct {
	Columns        []string `json:"columns"`
	JoinCount      int      `json:"join_count"`
	ConditionCount int      `json:"condition_count"`
	ParamCount     int      `json:"param_count"`
}

// QueryResult is the row set of an executed payload plus compile metadata.
type QueryResult struct {
	Rows []map[string]any `json:"rows"`
	Meta QueryMeta        `json:"meta"`
}
