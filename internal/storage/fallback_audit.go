package storage

import (
	"context"
	"fmt"
)

// FallbackCallRecord audits one model fallback call during demographics
// extraction, so misbehaving providers can be traced per document.
type FallbackCallRecord struct {
	CallID       string
	SourceFile   string
	DocumentID   string
	ProviderName string
	Model        string
	Status       string
	ErrorType    string
}

type FallbackAuditRepo struct {
	db *DB
}

func NewFallbackAuditRepo(db *DB) *FallbackAuditRepo {
	return &FallbackAuditRepo{db: db}
}

func (r *FallbackAuditRepo) Insert(ctx context.Context, rec FallbackCallRecord) error {
	_, err := r.db.Pool.Exec(ctx, `
INSERT INTO fallback_calls(call_id, source_file, document_id, provider_name, model, status, error_type)
VALUES (COALESCE(NULLIF($1,'')::uuid, gen_random_uuid()), $2, NULLIF($3,''), $4, $5, $6, NULLIF($7,''))`,
		rec.CallID, rec.SourceFile, rec.DocumentID, rec.ProviderName, rec.Model, rec.Status, rec.ErrorType)
	if err != nil {
		return fmt.Errorf("insert fallback call: %w", err)
	}
	return nil
}
