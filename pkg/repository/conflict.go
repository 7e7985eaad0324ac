package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/jmoiron/sqlx"

	"github.com/mappin-app/mappin/pkg/domain"
	"github.com/mappin-app/mappin/pkg/geo"
)

// list limits
const (
	DefaultListLimit = 500
	MaxListLimit     = 5000
)

const conflictColumns = `id, title, description, source_url, url_key, published_at, latitude, longitude,
	location_name, category, severity, created_at, ai_analysis, narrative_analysis`

// ConflictRepository handles conflict-related database operations
type ConflictRepository struct {
	db *sqlx.DB
}

// NewConflictRepository creates a new conflict repository
func NewConflictRepository(db *sqlx.DB) *ConflictRepository {
	return &ConflictRepository{db: db}
}

// conflictSQL is the row form of a conflict
type conflictSQL struct {
	ID           int64          `db:"id"`
	Title        string         `db:"title"`
	Description  string         `db:"description"`
	SourceURL    string         `db:"source_url"`
	URLKey       string         `db:"url_key"`
	PublishedAt  time.Time      `db:"published_at"`
	Latitude     float64        `db:"latitude"`
	Longitude    float64        `db:"longitude"`
	LocationName string         `db:"location_name"`
	Category     string         `db:"category"`
	Severity     int            `db:"severity"`
	CreatedAt    time.Time      `db:"created_at"`
	AIAnalysis   sql.NullString `db:"ai_analysis"`
	Narrative    sql.NullString `db:"narrative_analysis"`
}

// Exists checks if a record with the dedup key is stored
func (r *ConflictRepository) Exists(ctx context.Context, urlKey string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, r.db.Rebind("SELECT EXISTS(SELECT 1 FROM conflicts WHERE url_key = ?)"), urlKey)
	if err != nil {
		return false, fmt.Errorf("check conflict exists: %w", err)
	}
	return exists, nil
}

// Create inserts a new record and sets its ID. A record with the same url key
// is left untouched and ErrDuplicate returned.
func (r *ConflictRepository) Create(ctx context.Context, c *domain.Conflict) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	c.CreatedAt = c.CreatedAt.UTC()
	c.PublishedAt = c.PublishedAt.UTC()

	query := r.db.Rebind(`
		INSERT INTO conflicts (
			title, description, source_url, url_key, published_at, latitude, longitude,
			location_name, category, severity, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (url_key) DO NOTHING
		RETURNING id
	`)

	return lockRetrier().Do(ctx, func() error {
		var id int64
		err := r.db.QueryRowxContext(ctx, query, c.Title, c.Description, c.SourceURL, c.URLKey, c.PublishedAt,
			c.Latitude, c.Longitude, c.LocationName, string(c.Category), c.Severity, c.CreatedAt).Scan(&id)
		switch {
		case err == nil:
			c.ID = id
			return nil
		case errors.Is(err, sql.ErrNoRows), isUniqueViolation(err):
			return &criticalError{err: fmt.Errorf("%w: %s", ErrDuplicate, c.URLKey)}
		case isLockError(err):
			return err // repeater will retry this
		default:
			return &criticalError{err: fmt.Errorf("create conflict: %w", err)}
		}
	}, errCritical)
}

// Get retrieves a record by ID
func (r *ConflictRepository) Get(ctx context.Context, id int64) (*domain.Conflict, error) {
	var row conflictSQL
	err := r.db.GetContext(ctx, &row, r.db.Rebind("SELECT "+conflictColumns+" FROM conflicts WHERE id = ?"), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("conflict %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get conflict: %w", err)
	}
	c := row.toDomain()
	return &c, nil
}

// List returns records matching the filter. With AfterID set records come in
// ascending id order, otherwise newest first by the filtered time field.
func (r *ConflictRepository) List(ctx context.Context, f domain.ConflictFilter) ([]domain.Conflict, error) {
	field := "published_at"
	if f.Field == domain.TimeCreated {
		field = "created_at"
	}

	query := "SELECT " + conflictColumns + " FROM conflicts WHERE 1=1"
	var args []any
	if !f.Since.IsZero() {
		query += " AND " + field + " >= ?"
		args = append(args, f.Since.UTC())
	}
	if f.Category != "" {
		query += " AND category = ?"
		args = append(args, string(f.Category))
	}
	if f.AfterID > 0 {
		query += " AND id > ? ORDER BY id ASC"
		args = append(args, f.AfterID)
	} else {
		query += " ORDER BY " + field + " DESC, id DESC"
	}

	limit := f.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	query += " LIMIT ?"
	args = append(args, min(limit, MaxListLimit))

	var rows []conflictSQL
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list conflicts: %w", err)
	}
	res := make([]domain.Conflict, len(rows))
	for i := range rows {
		res[i] = rows[i].toDomain()
	}
	return res, nil
}

// SaveEnrichment attaches an enrichment payload to the record, replacing the
// previous payload of the same kind
func (r *ConflictRepository) SaveEnrichment(ctx context.Context, id int64, e domain.Enrichment) error {
	if err := e.Validate(); err != nil {
		return fmt.Errorf("save enrichment: %w", err)
	}
	column := "ai_analysis"
	if e.Kind == domain.EnrichmentNarrative {
		column = "narrative_analysis"
	}
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal enrichment: %w", err)
	}

	query := r.db.Rebind("UPDATE conflicts SET " + column + " = ? WHERE id = ?")
	return lockRetrier().Do(ctx, func() error {
		res, err := r.db.ExecContext(ctx, query, string(data), id)
		if err != nil {
			if isLockError(err) {
				return err
			}
			return &criticalError{err: fmt.Errorf("update %s: %w", column, err)}
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return &criticalError{err: fmt.Errorf("conflict %d: %w", id, ErrNotFound)}
		}
		return nil
	}, errCritical)
}

// Related finds other records within radiusKm of c, published within window
// of it, nearest first. Records at the global event sentinel have no neighbors.
func (r *ConflictRepository) Related(ctx context.Context, c domain.Conflict, radiusKm float64, window time.Duration,
	limit int) ([]domain.RelatedReport, error) {
	if c.LocationName == domain.GlobalEvent || radiusKm <= 0 {
		return []domain.RelatedReport{}, nil
	}
	if limit <= 0 {
		limit = 10
	}

	dLat := radiusKm / 111.0
	dLon := radiusKm / (111.0 * math.Max(math.Cos(c.Latitude*math.Pi/180), 0.01))
	query := r.db.Rebind("SELECT " + conflictColumns + ` FROM conflicts
		WHERE id <> ? AND location_name <> ?
		AND latitude BETWEEN ? AND ? AND longitude BETWEEN ? AND ?
		AND published_at BETWEEN ? AND ?
		ORDER BY published_at DESC LIMIT ?`)

	var rows []conflictSQL
	err := r.db.SelectContext(ctx, &rows, query, c.ID, domain.GlobalEvent,
		c.Latitude-dLat, c.Latitude+dLat, c.Longitude-dLon, c.Longitude+dLon,
		c.PublishedAt.Add(-window).UTC(), c.PublishedAt.Add(window).UTC(), limit*5)
	if err != nil {
		return nil, fmt.Errorf("select related conflicts: %w", err)
	}

	res := make([]domain.RelatedReport, 0, len(rows))
	for _, row := range rows {
		dist := geo.DistanceKm(c.Latitude, c.Longitude, row.Latitude, row.Longitude)
		if dist > radiusKm {
			continue
		}
		res = append(res, domain.RelatedReport{ID: row.ID, Title: row.Title, SourceURL: row.SourceURL,
			LocationName: row.LocationName, PublishedAt: row.PublishedAt, DistanceKm: math.Round(dist*10) / 10})
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].DistanceKm < res[j].DistanceKm })
	if len(res) > limit {
		res = res[:limit]
	}
	return res, nil
}

// ListURLs returns id, source url and creation time of every record
func (r *ConflictRepository) ListURLs(ctx context.Context) ([]domain.Conflict, error) {
	var rows []struct {
		ID        int64     `db:"id"`
		SourceURL string    `db:"source_url"`
		CreatedAt time.Time `db:"created_at"`
	}
	if err := r.db.SelectContext(ctx, &rows, "SELECT id, source_url, created_at FROM conflicts ORDER BY id"); err != nil {
		return nil, fmt.Errorf("list conflict urls: %w", err)
	}
	res := make([]domain.Conflict, len(rows))
	for i, row := range rows {
		res[i] = domain.Conflict{ID: row.ID, SourceURL: row.SourceURL, CreatedAt: row.CreatedAt}
	}
	return res, nil
}

// DeleteConflicts removes records by id, returns the number of deleted rows
func (r *ConflictRepository) DeleteConflicts(ctx context.Context, ids []int64) (int64, error) {
	const chunk = 500
	var total int64
	for start := 0; start < len(ids); start += chunk {
		part := ids[start:min(start+chunk, len(ids))]
		query, args, err := sqlx.In("DELETE FROM conflicts WHERE id IN (?)", part)
		if err != nil {
			return total, fmt.Errorf("build delete query: %w", err)
		}
		res, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
		if err != nil {
			return total, fmt.Errorf("delete conflicts: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return total, fmt.Errorf("get deleted count: %w", err)
		}
		total += n
	}
	return total, nil
}

// Count returns the number of stored records
func (r *ConflictRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM conflicts"); err != nil {
		return 0, fmt.Errorf("count conflicts: %w", err)
	}
	return n, nil
}

func (c *conflictSQL) toDomain() domain.Conflict {
	res := domain.Conflict{
		ID:           c.ID,
		Title:        c.Title,
		Description:  c.Description,
		SourceURL:    c.SourceURL,
		URLKey:       c.URLKey,
		PublishedAt:  c.PublishedAt,
		Latitude:     c.Latitude,
		Longitude:    c.Longitude,
		LocationName: c.LocationName,
		Category:     domain.Category(c.Category),
		Severity:     c.Severity,
		CreatedAt:    c.CreatedAt,
	}
	if e, ok := decodeEnrichment(c.ID, c.AIAnalysis); ok {
		res.AIAnalysis = e.Analysis
	}
	if e, ok := decodeEnrichment(c.ID, c.Narrative); ok {
		res.Narrative = e.Narrative
	}
	return res
}

// decodeEnrichment parses a stored payload, broken payloads are logged and ignored
func decodeEnrichment(id int64, v sql.NullString) (domain.Enrichment, bool) {
	if !v.Valid || v.String == "" {
		return domain.Enrichment{}, false
	}
	var e domain.Enrichment
	if err := json.Unmarshal([]byte(v.String), &e); err != nil {
		log.Printf("[WARN] ignore enrichment of conflict %d: %v", id, err)
		return domain.Enrichment{}, false
	}
	return e, true
}
