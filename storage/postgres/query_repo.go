package postgres

import (
	"context"

	"wholesaler/wholesaler_catalog_service/models"
	"wholesaler/wholesaler_catalog_service/pkg/helper"
	"wholesaler/wholesaler_catalog_service/pkg/logger"
	"wholesaler/wholesaler_catalog_service/storage"
)

type queryRepo struct {
	s *Store
}

func NewQueryRepo(s *Store) storage.QueryRepoI {
	return &queryRepo{s: s}
}

// Run compiles the payload and executes it. Rows come back as flat objects
// keyed by the resolved select-list entries, in select-list order.
func (q *queryRepo) Run(ctx context.Context, payload models.QueryPayload) (*models.QueryResult, error) {
	compiled, err := q.s.compiler.Compile(payload)
	if err != nil {
		return nil, err
	}

	q.s.log.Debug("executing compiled query",
		logger.String("sql", compiled.SQL),
		logger.Int("params", compiled.Meta.ParamCount),
	)

	rows, err := q.s.db.Query(ctx, compiled.SQL, compiled.Args)
	if err != nil {
		return nil, helper.ClassifyDBError(err, "execute query on "+payload.From.Table)
	}
	defer rows.Close()

	result := &models.QueryResult{
		Rows: []map[string]any{},
		Meta: compiled.Meta,
	}

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, helper.ClassifyDBError(err, "read row from "+payload.From.Table)
		}

		row := make(map[string]any, len(compiled.Meta.Columns))
		for i, column := range compiled.Meta.Columns {
			if i < len(values) {
				row[column] = values[i]
			}
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, helper.ClassifyDBError(err, "iterate rows from "+payload.From.Table)
	}

	return result, nil
}
