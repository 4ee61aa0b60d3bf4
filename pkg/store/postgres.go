// Package store persists extraction results to PostgreSQL. One call writes
// one complete, self-consistent workbook snapshot across three record sets:
// table metadata, table data rows, and formula records, keyed so every row
// and formula references its owning table and sheet unambiguously. No
// upserts, transactions beyond the snapshot, or schema migration.
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hioki-d/xlsdoc/pkg/xlsdoc/models"
)

// Store writes workbook snapshots.
type Store interface {
	Save(ctx context.Context, res *models.ExtractionResult) error
	Close()
}

// Postgres is the pgx-backed Store.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres connects, verifies the connection, and bootstraps the schema.
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("store: connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	p := &Postgres{pool: pool}
	if err := p.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return p, nil
}

func (p *Postgres) Close() { p.pool.Close() }

const schema = `
CREATE TABLE IF NOT EXISTS table_metadata (
	id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	file_name VARCHAR(500) NOT NULL,
	sheet_name VARCHAR(255) NOT NULL,
	table_name VARCHAR(255) NOT NULL,
	table_type VARCHAR(50) NOT NULL,
	cell_range VARCHAR(100) NOT NULL,
	row_count INTEGER NOT NULL DEFAULT 0,
	headers JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS table_data (
	id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	metadata_id BIGINT NOT NULL REFERENCES table_metadata(id) ON DELETE CASCADE,
	row_number INTEGER NOT NULL,
	data JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS excel_formulas (
	id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	file_name VARCHAR(500) NOT NULL,
	sheet_name VARCHAR(255) NOT NULL,
	cell_address VARCHAR(50) NOT NULL,
	table_name VARCHAR(255),
	formula TEXT NOT NULL,
	readable_formula TEXT,
	dependencies JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

const indexes = `
CREATE INDEX IF NOT EXISTS idx_metadata_file_sheet ON table_metadata (file_name, sheet_name);
CREATE INDEX IF NOT EXISTS idx_metadata_table_name ON table_metadata (table_name);
CREATE INDEX IF NOT EXISTS idx_data_metadata_id ON table_data (metadata_id);
CREATE INDEX IF NOT EXISTS idx_data_gin ON table_data USING GIN (data);
CREATE INDEX IF NOT EXISTS idx_formula_file_sheet ON excel_formulas (file_name, sheet_name);
CREATE INDEX IF NOT EXISTS idx_formula_cell ON excel_formulas (cell_address);
`

func (p *Postgres) ensureSchema(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("store: create schema: %w", err)
	}
	return nil
}

// Save writes the whole result in one transaction: metadata first so data
// rows can carry their owning table's id, then bulk inserts via COPY.
// Indexes are created after the load.
func (p *Postgres) Save(ctx context.Context, res *models.ExtractionResult) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for si := range res.Sheets {
		sheet := &res.Sheets[si]
		for ti := range sheet.Tables {
			if err := saveTable(ctx, tx, res.BookName, &sheet.Tables[ti]); err != nil {
				return err
			}
		}
	}

	if err := saveFormulas(ctx, tx, res); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, indexes); err != nil {
		return fmt.Errorf("store: create indexes: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}
	return nil
}

func saveTable(ctx context.Context, tx pgx.Tx, fileName string, t *models.Table) error {
	headers, err := headersJSON(t)
	if err != nil {
		return err
	}

	var metadataID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO table_metadata
			(file_name, sheet_name, table_name, table_type, cell_range, row_count, headers)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		fileName, t.SheetName, t.Name, string(t.Provenance), t.Range, t.RowCount(), headers,
	).Scan(&metadataID)
	if err != nil {
		return fmt.Errorf("store: table %q: %w", t.Name, err)
	}

	if len(t.Rows) == 0 {
		return nil
	}
	rows, err := dataRows(metadataID, t)
	if err != nil {
		return err
	}
	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"table_data"},
		[]string{"metadata_id", "row_number", "data"},
		pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("store: table %q rows: %w", t.Name, err)
	}
	return nil
}

func saveFormulas(ctx context.Context, tx pgx.Tx, res *models.ExtractionResult) error {
	rows, err := formulaRows(res)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"excel_formulas"},
		[]string{"file_name", "sheet_name", "cell_address", "table_name", "formula", "readable_formula", "dependencies"},
		pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("store: formulas: %w", err)
	}
	return nil
}
