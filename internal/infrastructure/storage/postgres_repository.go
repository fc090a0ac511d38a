// Package storage persists briefings, explainer logs, and the scheduler
// topic cursor in Postgres.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"eazyhealth/internal/domain"
	"eazyhealth/internal/ports"
)

const uniqueViolation = "23505"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// PostgresRepository implements ports.BriefingRepository and
// ports.CursorStore over one sql.DB.
type PostgresRepository struct {
	db *sql.DB
}

var _ ports.BriefingRepository = (*PostgresRepository)(nil)
var _ ports.CursorStore = (*PostgresRepository)(nil)

// Open connects to Postgres and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// NewPostgresRepository wires a sql.DB implementation.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// InitSchema creates the tables when they do not exist yet.
func (r *PostgresRepository) InitSchema(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS briefings (
    id            BIGSERIAL PRIMARY KEY,
    title         TEXT NOT NULL,
    slug          TEXT NOT NULL UNIQUE,
    summary       TEXT NOT NULL,
    body          TEXT NOT NULL,
    source_type   TEXT NOT NULL,
    source_urls   TEXT[] NOT NULL,
    tags          TEXT[] NOT NULL DEFAULT '{}',
    reading_level TEXT NOT NULL,
    disclaimer    TEXT NOT NULL,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS briefings_created_at_idx ON briefings (created_at DESC);
CREATE INDEX IF NOT EXISTS briefings_source_type_idx ON briefings (source_type);

CREATE TABLE IF NOT EXISTS explainer_logs (
    id            TEXT PRIMARY KEY,
    query         TEXT,
    source_url    TEXT,
    input_excerpt TEXT,
    sources       JSONB,
    reading_level TEXT NOT NULL,
    output        JSONB NOT NULL,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS topic_cursor (
    id       SMALLINT PRIMARY KEY DEFAULT 1 CHECK (id = 1),
    position INTEGER NOT NULL
);`

	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// Create inserts the briefing atomically. A slug conflict maps to
// domain.ErrSlugCollision; the caller decides whether to skip or surface.
func (r *PostgresRepository) Create(ctx context.Context, b domain.Briefing) (domain.Briefing, error) {
	query, args, err := psql.Insert("briefings").
		Columns("title", "slug", "summary", "body", "source_type", "source_urls", "tags", "reading_level", "disclaimer", "created_at").
		Values(b.Title, b.Slug, b.Summary, b.Body, string(b.SourceType),
			pq.Array(b.SourceURLs), pq.Array(b.Tags), string(b.ReadingLevel), b.Disclaimer, b.CreatedAt).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return domain.Briefing{}, fmt.Errorf("build insert: %w", err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&b.ID, &b.CreatedAt); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.Briefing{}, fmt.Errorf("%w: %s", domain.ErrSlugCollision, b.Slug)
		}
		return domain.Briefing{}, fmt.Errorf("insert briefing: %w", err)
	}

	return b, nil
}

// List returns one page ordered newest first, plus the total count for the
// same filter.
func (r *PostgresRepository) List(ctx context.Context, filter ports.ListFilter) ([]domain.Briefing, int, error) {
	base := psql.Select().From("briefings")
	if filter.SourceType != "" {
		base = base.Where(sq.Eq{"source_type": string(filter.SourceType)})
	}

	countQuery, countArgs, err := base.Column("COUNT(*)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count: %w", err)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count briefings: %w", err)
	}

	page := base.Columns(briefingColumns...).
		OrderBy("created_at DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset))

	query, args, err := page.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query briefings: %w", err)
	}
	defer rows.Close()

	items, err := scanBriefings(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// GetBySlug fetches one briefing or domain.ErrNotFound.
func (r *PostgresRepository) GetBySlug(ctx context.Context, slug string) (domain.Briefing, error) {
	query, args, err := psql.Select(briefingColumns...).
		From("briefings").
		Where(sq.Eq{"slug": slug}).
		ToSql()
	if err != nil {
		return domain.Briefing{}, fmt.Errorf("build select: %w", err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	b, err := scanBriefing(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Briefing{}, fmt.Errorf("%w: briefing %s", domain.ErrNotFound, slug)
	}
	if err != nil {
		return domain.Briefing{}, fmt.Errorf("get briefing: %w", err)
	}
	return b, nil
}

// ListRecent returns briefings of the given type created at or after since.
func (r *PostgresRepository) ListRecent(ctx context.Context, since time.Time, sourceType domain.SourceType) ([]domain.Briefing, error) {
	query, args, err := psql.Select(briefingColumns...).
		From("briefings").
		Where(sq.Eq{"source_type": string(sourceType)}).
		Where(sq.GtOrEq{"created_at": since}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build recent: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query recent briefings: %w", err)
	}
	defer rows.Close()

	return scanBriefings(rows)
}

// SaveExplainerLog records one explainer request for analytics.
func (r *PostgresRepository) SaveExplainerLog(ctx context.Context, entry domain.ExplainerLog) error {
	sources, err := json.Marshal(entry.Sources)
	if err != nil {
		return fmt.Errorf("marshal sources: %w", err)
	}
	output, err := json.Marshal(entry.Output)
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}

	query, args, err := psql.Insert("explainer_logs").
		Columns("id", "query", "source_url", "input_excerpt", "sources", "reading_level", "output", "created_at").
		Values(entry.ID, entry.Query, entry.SourceURL, entry.InputExcerpt,
			sources, string(entry.ReadingLevel), output, entry.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert explainer log: %w", err)
	}
	return nil
}

// Load returns the persisted topic cursor, zero when none is stored yet.
func (r *PostgresRepository) Load(ctx context.Context) (int, error) {
	var position int
	err := r.db.QueryRowContext(ctx, `SELECT position FROM topic_cursor WHERE id = 1`).Scan(&position)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load cursor: %w", err)
	}
	return position, nil
}

// Store upserts the topic cursor.
func (r *PostgresRepository) Store(ctx context.Context, position int) error {
	const query = `INSERT INTO topic_cursor (id, position) VALUES (1, $1)
	               ON CONFLICT (id) DO UPDATE SET position = EXCLUDED.position`
	if _, err := r.db.ExecContext(ctx, query, position); err != nil {
		return fmt.Errorf("store cursor: %w", err)
	}
	return nil
}

var briefingColumns = []string{
	"id", "title", "slug", "summary", "body", "source_type",
	"source_urls", "tags", "reading_level", "disclaimer", "created_at",
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBriefing(row rowScanner) (domain.Briefing, error) {
	var (
		b          domain.Briefing
		sourceType string
		level      string
		urls       pq.StringArray
		tags       pq.StringArray
	)
	if err := row.Scan(&b.ID, &b.Title, &b.Slug, &b.Summary, &b.Body, &sourceType,
		&urls, &tags, &level, &b.Disclaimer, &b.CreatedAt); err != nil {
		return domain.Briefing{}, err
	}

	b.SourceType = domain.SourceType(sourceType)
	b.ReadingLevel = domain.ReadingLevel(level)
	b.SourceURLs = []string(urls)
	b.Tags = []string(tags)
	return b, nil
}

func scanBriefings(rows *sql.Rows) ([]domain.Briefing, error) {
	var items []domain.Briefing
	for rows.Next() {
		b, err := scanBriefing(rows)
		if err != nil {
			return nil, fmt.Errorf("scan briefing: %w", err)
		}
		items = append(items, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return items, nil
}
