package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/XSAM/otelsql"
	"github.com/storedesk/backoffice-api/internal/config"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	_ "github.com/lib/pq"
)

// Repositories bundles every store backed by the shared connection pool.
type Repositories struct {
	DB         *sql.DB
	Admins     AdminRepository
	Customers  CustomerRepository
	Categories CategoryRepository
	Brands     BrandRepository
	Products   ProductRepository
	Sales      SaleRepository
}

// OpenDB opens a traced PostgreSQL pool and checks that it is reachable.
func OpenDB(ctx context.Context, cfg *config.Database) (*sql.DB, error) {

	db, err := otelsql.Open("postgres", cfg.GetDSN(), otelsql.WithAttributes(semconv.DBSystemPostgreSQL))

	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func New(db *sql.DB) *Repositories {
	return &Repositories{
		DB:         db,
		Admins:     NewAdminRepo(db),
		Customers:  NewCustomerRepo(db),
		Categories: NewCategoryRepo(db),
		Brands:     NewBrandRepo(db),
		Products:   NewProductRepo(db),
		Sales:      NewSaleRepo(db),
	}
}

func (r *Repositories) Close() error {
	return r.DB.Close()
}
