// Package repository enforces the catalog invariants on top of the
// relational store: slug uniqueness, referential integrity, cascade deletes
// and at most one default variant per product.
package repository

import (
	"context"

	"furniture-catalog/logger"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const tracerName = "furniture-catalog/repository"

// CatalogRepository is safe for concurrent use. It keeps no state of its own;
// every mutation is a single store transaction.
type CatalogRepository struct {
	db     *gorm.DB
	log    *logger.Logger
	tracer trace.Tracer
}

func NewCatalogRepository(db *gorm.DB, log *logger.Logger) *CatalogRepository {
	if log == nil {
		log = logger.Nop()
	}
	return &CatalogRepository{
		db:     db,
		log:    log.With("component", "catalog_repository"),
		tracer: otel.Tracer(tracerName),
	}
}

func (r *CatalogRepository) startSpan(ctx context.Context, op string) (context.Context, trace.Span) {
	return r.tracer.Start(ctx, "CatalogRepository."+op)
}

// endSpan closes the span and records storage failures for operators.
// Caller-correctable kinds are tagged on the span only.
func (r *CatalogRepository) endSpan(span trace.Span, op string, err error) {
	defer span.End()
	if err == nil {
		return
	}
	kind := KindOf(err)
	span.SetAttributes(attribute.String("catalog.error_kind", string(kind)))
	if kind == KindStorage {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		r.log.Error("catalog operation failed", "op", op, "error", err)
	}
}

func (r *CatalogRepository) transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func forUpdate(tx *gorm.DB) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// parseID reports ok=false for anything that is not a UUID. Such ids can
// never match a stored row.
func parseID(id string) (uuid.UUID, bool) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, false
	}
	return parsed, true
}
