package postgres

import (
	"context"
	"fmt"
	"strings"

	"wholesaler/wholesaler_catalog_service/models"
	"wholesaler/wholesaler_catalog_service/pkg/helper"
	"wholesaler/wholesaler_catalog_service/pkg/logger"
	"wholesaler/wholesaler_catalog_service/storage/schema"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// executor is the slice of pgx.Tx the cascade engine needs. Keeping it
// narrow lets the engine run against a fake in tests.
type executor interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// deleteEntity runs the entity's cascade plan inside one transaction and
// returns the snapshot plus per-table deletion stats.
func (s *Store) deleteEntity(ctx context.Context, entity string, req *models.DeleteRequest) (*models.DeleteResult, error) {
	plan, ok := schema.PlanFor(entity)
	if !ok {
		return nil, models.NewStoreError(models.ErrUnknown, fmt.Sprintf("no cascade plan for entity %q", entity), "", nil)
	}

	var result *models.DeleteResult

	err := s.WithTransaction(ctx, func(tx pgx.Tx) error {
		r, err := runCascadeDelete(ctx, tx, plan, req)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("entity deleted",
		logger.String("entity", entity),
		logger.Int64("id", req.ID),
		logger.Bool("cascade", req.Cascade),
		logger.Any("stats", result.Stats),
	)

	return result, nil
}

// runCascadeDelete executes one authored plan: snapshot, optional locked
// id-set capture, leaf-first dependent deletes, then the entity's own row.
// Every failure aborts the surrounding transaction, so a partial cascade is
// never persisted.
func runCascadeDelete(ctx context.Context, tx executor, plan *schema.CascadePlan, req *models.DeleteRequest) (*models.DeleteResult, error) {
	snapshot, err := snapshotEntity(ctx, tx, plan, req.ID)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return nil, models.NewStoreError(models.ErrNotFound,
			fmt.Sprintf("%s %d does not exist", plan.Entity, req.ID), "", nil)
	}

	stats := models.DeleteStats{}

	if !req.Cascade {
		// The caller is expected to have checked for dependents already;
		// existing children surface here as a classified FK violation.
		if err := deleteOwnRow(ctx, tx, plan, req.ID); err != nil {
			return nil, err
		}
		return &models.DeleteResult{Deleted: snapshot, Stats: stats}, nil
	}

	sets := make(map[string][]int64, len(plan.Locks))
	for _, lock := range plan.Locks {
		ids, err := lockDependentSet(ctx, tx, lock, req.ID, sets)
		if err != nil {
			return nil, err
		}
		sets[lock.Name] = ids
	}

	var total int64
	for _, step := range plan.Steps {
		affected, err := deleteDependents(ctx, tx, step, req.ID, sets)
		if err != nil {
			return nil, err
		}
		stats[step.StatKey] += affected
		total += affected
	}

	if err := deleteOwnRow(ctx, tx, plan, req.ID); err != nil {
		return nil, err
	}

	stats[plan.StatKey] = 1
	stats[models.StatTotal] = total

	return &models.DeleteResult{Deleted: snapshot, Stats: stats}, nil
}

// snapshotEntity reads the entity's identifying fields by primary key.
// Returns nil without error when the row does not exist.
func snapshotEntity(ctx context.Context, tx executor, plan *schema.CascadePlan, id int64) (map[string]any, error) {
	sql := fmt.Sprintf(`SELECT %s FROM "%s" WHERE %s = $1`,
		strings.Join(plan.SnapshotColumns, ", "), plan.Table, plan.PrimaryKey)

	rows, err := tx.Query(ctx, sql, id)
	if err != nil {
		return nil, helper.ClassifyDBError(err, "snapshot "+plan.Table)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, helper.ClassifyDBError(err, "snapshot "+plan.Table)
		}
		return nil, nil
	}

	values, err := rows.Values()
	if err != nil {
		return nil, helper.ClassifyDBError(err, "read snapshot "+plan.Table)
	}

	snapshot := make(map[string]any, len(values))
	for i, fd := range rows.FieldDescriptions() {
		snapshot[string(fd.Name)] = values[i]
	}

	return snapshot, nil
}

// lockDependentSet captures the ids of join-discovered dependents under
// FOR UPDATE, so no concurrent insert can add a dependent between capture
// and deletion.
func lockDependentSet(ctx context.Context, tx executor, lock schema.LockStep, rootID int64, sets map[string][]int64) ([]int64, error) {
	var (
		sql  string
		args []any
	)

	if lock.Filter.Set != "" {
		parent := sets[lock.Filter.Set]
		if len(parent) == 0 {
			return nil, nil
		}
		sql = fmt.Sprintf(`SELECT %s FROM "%s" WHERE %s = ANY($1) FOR UPDATE`,
			lock.IDColumn, lock.Table, lock.Filter.Column)
		args = []any{pq.Array(parent)}
	} else {
		sql = fmt.Sprintf(`SELECT %s FROM "%s" WHERE %s = $1 FOR UPDATE`,
			lock.IDColumn, lock.Table, lock.Filter.Column)
		args = []any{rootID}
	}

	rows, err := tx.Query(ctx, sql, args...)
	if err != nil {
		return nil, helper.ClassifyDBError(err, "lock "+lock.Table)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, helper.ClassifyDBError(err, "scan locked id from "+lock.Table)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, helper.ClassifyDBError(err, "lock "+lock.Table)
	}

	return ids, nil
}

func deleteDependents(ctx context.Context, tx executor, step schema.DeleteStep, rootID int64, sets map[string][]int64) (int64, error) {
	var (
		sql  string
		args []any
	)

	if step.Filter.Set != "" {
		ids := sets[step.Filter.Set]
		if len(ids) == 0 {
			return 0, nil
		}
		sql = fmt.Sprintf(`DELETE FROM "%s" WHERE %s = ANY($1)`, step.Table, step.Filter.Column)
		args = []any{pq.Array(ids)}
	} else {
		sql = fmt.Sprintf(`DELETE FROM "%s" WHERE %s = $1`, step.Table, step.Filter.Column)
		args = []any{rootID}
	}

	tag, err := tx.Exec(ctx, sql, args...)
	if err != nil {
		return 0, helper.ClassifyDBError(err, "delete dependents from "+step.Table)
	}

	return tag.RowsAffected(), nil
}

// deleteOwnRow removes the entity itself. Zero rows affected after a
// successful snapshot means another transaction removed the row mid-call;
// that is a race, not bad input, and is reported as such.
func deleteOwnRow(ctx context.Context, tx executor, plan *schema.CascadePlan, id int64) error {
	sql := fmt.Sprintf(`DELETE FROM "%s" WHERE %s = $1`, plan.Table, plan.PrimaryKey)

	tag, err := tx.Exec(ctx, sql, id)
	if err != nil {
		return helper.ClassifyDBError(err, "delete "+plan.Table)
	}

	if tag.RowsAffected() == 0 {
		return models.NewStoreError(models.ErrConcurrentModification,
			fmt.Sprintf("%s %d was removed by a concurrent transaction", plan.Entity, id), "", nil)
	}

	return nil
}
