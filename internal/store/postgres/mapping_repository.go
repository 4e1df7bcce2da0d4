// Package postgres stores subject mappings in the subject_mapping table.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/coamigrate/internal/model"
)

// MappingRepository reads and writes subject_mapping rows.
type MappingRepository struct {
	db *sql.DB
}

// NewMappingRepository wraps an open database.
func NewMappingRepository(db *sql.DB) *MappingRepository {
	return &MappingRepository{db: db}
}

// OpenDB opens a Postgres database through the pgx driver and checks the connection.
func OpenDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

// EnsureSchema creates subject_mapping when it does not exist.
func (r *MappingRepository) EnsureSchema(ctx context.Context) error {
	const query = `
CREATE TABLE IF NOT EXISTS subject_mapping (
	id BIGSERIAL PRIMARY KEY,
	mapping_batch_id TEXT NOT NULL,
	source_subject_code TEXT,
	source_subject_name TEXT,
	source_parent_code TEXT,
	source_parent_name TEXT,
	source_subject_level INTEGER,
	source_subject_type TEXT,
	source_debit_credit TEXT,
	source_auxiliary_info TEXT,
	target_subject_code TEXT,
	target_subject_name TEXT,
	target_parent_code TEXT,
	target_parent_name TEXT,
	target_subject_level INTEGER,
	target_subject_type TEXT,
	target_debit_credit TEXT,
	target_auxiliary_info TEXT,
	match_type TEXT,
	match_method TEXT,
	match_score NUMERIC(5,2),
	match_confidence TEXT,
	match_reason TEXT,
	mapping_status TEXT NOT NULL,
	is_confirmed BOOLEAN NOT NULL DEFAULT FALSE,
	is_modified BOOLEAN NOT NULL DEFAULT FALSE,
	validation_result TEXT,
	conflict_flag BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_subject_mapping_batch ON subject_mapping(mapping_batch_id);
`
	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}
	return nil
}

const selectColumns = `
SELECT source_subject_code, source_subject_name, source_parent_code, source_parent_name,
	source_subject_level, source_subject_type, source_debit_credit, source_auxiliary_info,
	target_subject_code, target_subject_name, target_parent_code, target_parent_name,
	target_subject_level, target_subject_type, target_debit_credit, target_auxiliary_info,
	match_type, match_method, match_score, match_confidence, match_reason,
	mapping_status, is_confirmed, is_modified, validation_result, conflict_flag
FROM subject_mapping`

// List returns the mappings of a batch in insertion order. An empty batch
// lists every row.
func (r *MappingRepository) List(ctx context.Context, batch string) ([]model.Mapping, error) {
	query := selectColumns + `
WHERE ($1::text = '' OR mapping_batch_id = $1)
ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, batch)
	if err != nil {
		return nil, fmt.Errorf("query subject mappings: %w", err)
	}
	defer rows.Close()

	var out []model.Mapping
	for rows.Next() {
		m, err := scanMapping(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subject mappings: %w", err)
	}
	return out, nil
}

// nullableSubject holds the scan targets of one subject side.
type nullableSubject struct {
	code, name, parentCode, parentName sql.NullString
	categoryType, direction, auxiliary sql.NullString
	level                              sql.NullInt64
}

func (n *nullableSubject) dest() []any {
	return []any{&n.code, &n.name, &n.parentCode, &n.parentName, &n.level, &n.categoryType, &n.direction, &n.auxiliary}
}

func (n *nullableSubject) subject() model.Subject {
	return model.Subject{
		Code:         n.code.String,
		Name:         n.name.String,
		ParentCode:   n.parentCode.String,
		ParentName:   n.parentName.String,
		Level:        int(n.level.Int64),
		CategoryType: model.CategoryType(n.categoryType.String),
		Direction:    model.Direction(n.direction.String),
		Auxiliary:    n.auxiliary.String,
	}
}

func scanMapping(rows *sql.Rows) (model.Mapping, error) {
	var src, tgt nullableSubject
	var matchType, matchMethod, confidence, reason, status, validation sql.NullString
	var score decimal.NullDecimal
	var confirmed, modified, conflict sql.NullBool

	dest := append(src.dest(), tgt.dest()...)
	dest = append(dest, &matchType, &matchMethod, &score, &confidence, &reason, &status, &confirmed, &modified, &validation, &conflict)
	if err := rows.Scan(dest...); err != nil {
		return model.Mapping{}, fmt.Errorf("scan subject mapping: %w", err)
	}

	m := model.Mapping{
		Source:      src.subject(),
		Target:      tgt.subject(),
		MatchType:   matchType.String,
		MatchMethod: matchMethod.String,
		Confidence:  model.Confidence(confidence.String),
		Reason:      reason.String,
		Status:      model.MappingStatus(status.String),
		Confirmed:   confirmed.Bool,
		Modified:    modified.Bool,
		Validation:  validation.String,
		Conflict:    conflict.Bool,
	}
	if score.Valid {
		m.Score = score.Decimal
	}
	return m, nil
}

// ReplaceBatch deletes the rows of batch and inserts mappings in their place.
func (r *MappingRepository) ReplaceBatch(ctx context.Context, batch string, mappings []model.Mapping) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin batch tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM subject_mapping WHERE mapping_batch_id = $1`, batch); err != nil {
		return fmt.Errorf("clear batch %s: %w", batch, err)
	}

	const insert = `
INSERT INTO subject_mapping (
	mapping_batch_id,
	source_subject_code, source_subject_name, source_parent_code, source_parent_name,
	source_subject_level, source_subject_type, source_debit_credit, source_auxiliary_info,
	target_subject_code, target_subject_name, target_parent_code, target_parent_name,
	target_subject_level, target_subject_type, target_debit_credit, target_auxiliary_info,
	match_type, match_method, match_score, match_confidence, match_reason,
	mapping_status, is_confirmed, is_modified, validation_result, conflict_flag
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
	$18, $19, $20, $21, $22, $23, $24, $25, $26, $27
)`
	for i, m := range mappings {
		args := []any{batch}
		args = append(args, subjectArgs(m.Source)...)
		args = append(args, subjectArgs(m.Target)...)
		args = append(args,
			m.MatchType, m.MatchMethod, m.Score, string(m.Confidence), m.Reason,
			string(m.Status), m.Confirmed, m.Modified, m.Validation, m.Conflict,
		)
		if _, err := tx.ExecContext(ctx, insert, args...); err != nil {
			return fmt.Errorf("insert mapping %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch tx: %w", err)
	}
	return nil
}

func subjectArgs(s model.Subject) []any {
	level := sql.NullInt64{Int64: int64(s.Level), Valid: s.Level > 0}
	return []any{
		nullString(s.Code), nullString(s.Name), nullString(s.ParentCode), nullString(s.ParentName),
		level, nullString(string(s.CategoryType)), nullString(string(s.Direction)), nullString(s.Auxiliary),
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
