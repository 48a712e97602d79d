package postgres

import (
	"context"
	"fmt"

	"wholesaler/wholesaler_catalog_service/config"
	"wholesaler/wholesaler_catalog_service/pkg/logger"
	"wholesaler/wholesaler_catalog_service/storage"
	"wholesaler/wholesaler_catalog_service/storage/query"
	"wholesaler/wholesaler_catalog_service/storage/schema"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
)

type Store struct {
	db  *DB
	log logger.LoggerI

	compiler *query.Compiler

	wholesaler         storage.WholesalerRepoI
	productCategory    storage.ProductCategoryRepoI
	productDefinition  storage.ProductDefinitionRepoI
	offering           storage.OfferingRepoI
	offeringAttribute  storage.OfferingAttributeRepoI
	offeringLink       storage.OfferingLinkRepoI
	order              storage.OrderRepoI
	orderItem          storage.OrderItemRepoI
	wholesalerCategory storage.WholesalerCategoryRepoI
	queryRepo          storage.QueryRepoI
}

// DatabaseURL builds the connection string for the configured database.
func DatabaseURL(cfg config.Config) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.PostgresUser,
		cfg.PostgresPassword,
		cfg.PostgresHost,
		cfg.PostgresPort,
		cfg.PostgresDatabase,
	)
}

func NewPostgres(ctx context.Context, cfg config.Config, log logger.LoggerI) (storage.StorageI, error) {
	poolConfig, err := pgxpool.ParseConfig(DatabaseURL(cfg))
	if err != nil {
		return nil, errors.Wrap(err, "parse postgres config")
	}

	poolConfig.MaxConns = cfg.PostgresMaxConnections

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, errors.Wrap(err, "create connection pool")
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, errors.Wrap(err, "ping postgres")
	}

	return &Store{
		db:       &DB{pool: pool},
		log:      log,
		compiler: query.NewCompiler(schema.Default()),
	}, nil
}

func (s *Store) CloseDB() {
	s.db.pool.Close()
}

// WithTransaction begins a transaction, runs fn, and commits when fn returns
// nil. Any error (or a panic unwinding through the deferred rollback) leaves
// the database untouched.
func (s *Store) WithTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		tx.Rollback(ctx)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		tx.Rollback(ctx)
		return errors.Wrap(err, "commit transaction")
	}

	return nil
}

// DB wraps the pgx pool with opentracing spans around every operation.
type DB struct {
	pool *pgxpool.Pool
}

func (b *DB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	dbSpan, ctx := opentracing.StartSpanFromContext(ctx, "pgx.QueryRow")
	defer dbSpan.Finish()

	dbSpan.SetTag("sql", sql)

	return b.pool.QueryRow(ctx, sql, args...)
}

func (b *DB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	dbSpan, ctx := opentracing.StartSpanFromContext(ctx, "pgx.Query")
	defer dbSpan.Finish()

	dbSpan.SetTag("sql", sql)

	return b.pool.Query(ctx, sql, args...)
}

func (b *DB) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	dbSpan, ctx := opentracing.StartSpanFromContext(ctx, "pgx.Exec")
	defer dbSpan.Finish()

	dbSpan.SetTag("sql", sql)

	return b.pool.Exec(ctx, sql, arguments...)
}

func (b *DB) Begin(ctx context.Context) (pgx.Tx, error) {
	dbSpan, ctx := opentracing.StartSpanFromContext(ctx, "pgx.Begin")
	defer dbSpan.Finish()

	tx, err := b.pool.Begin(ctx)
	if err != nil {
		dbSpan.SetTag("error", true)
		dbSpan.LogKV("error.message", err.Error())
		return nil, err
	}

	return tx, nil
}

func (s *Store) Wholesaler() storage.WholesalerRepoI {
	if s.wholesaler == nil {
		s.wholesaler = NewWholesalerRepo(s)
	}
	return s.wholesaler
}

func (s *Store) ProductCategory() storage.ProductCategoryRepoI {
	if s.productCategory == nil {
		s.productCategory = NewProductCategoryRepo(s)
	}
	return s.productCategory
}

func (s *Store) ProductDefinition() storage.ProductDefinitionRepoI {
	if s.productDefinition == nil {
		s.productDefinition = NewProductDefinitionRepo(s)
	}
	return s.productDefinition
}

func (s *Store) Offering() storage.OfferingRepoI {
	if s.offering == nil {
		s.offering = NewOfferingRepo(s)
	}
	return s.offering
}

func (s *Store) OfferingAttribute() storage.OfferingAttributeRepoI {
	if s.offeringAttribute == nil {
		s.offeringAttribute = NewOfferingAttributeRepo(s)
	}
	return s.offeringAttribute
}

func (s *Store) OfferingLink() storage.OfferingLinkRepoI {
	if s.offeringLink == nil {
		s.offeringLink = NewOfferingLinkRepo(s)
	}
	return s.offeringLink
}

func (s *Store) Order() storage.OrderRepoI {
	if s.order == nil {
		s.order = NewOrderRepo(s)
	}
	return s.order
}

func (s *Store) OrderItem() storage.OrderItemRepoI {
	if s.orderItem == nil {
		s.orderItem = NewOrderItemRepo(s)
	}
	return s.orderItem
}

func (s *Store) WholesalerCategory() storage.WholesalerCategoryRepoI {
	if s.wholesalerCategory == nil {
		s.wholesalerCategory = NewWholesalerCategoryRepo(s)
	}
	return s.wholesalerCategory
}

func (s *Store) Query() storage.QueryRepoI {
	if s.queryRepo == nil {
		s.queryRepo = NewQueryRepo(s)
	}
	return s.queryRepo
}
