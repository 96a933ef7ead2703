package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/sage-labs/sage-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/sage-labs/sage-cli/internal/core/domain"
	"github.com/sage-labs/sage-cli/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to
// all metadata store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.sage/data/sage.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".sage", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "sage.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// DomainStore returns a DomainStore interface backed by this store.
func (s *Store) DomainStore() driven.DomainStore {
	return &domainStore{store: s}
}

// PatternStore returns a PatternStore interface backed by this store.
func (s *Store) PatternStore() driven.PatternStore {
	return &patternStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Domain Store ====================

// domainStore implements driven.DomainStore.
type domainStore struct {
	store *Store
}

var _ driven.DomainStore = (*domainStore)(nil)

// Save stores or updates a domain configuration.
func (s *domainStore) Save(ctx context.Context, cfg domain.DomainConfig) error {
	if cfg.ID == "" {
		return domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	if cfg.CreatedAt.IsZero() {
		cfg.CreatedAt = now
	}
	cfg.UpdatedAt = now

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO domains (id, name, persona, library_path, patterns_enabled, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			persona = excluded.persona,
			library_path = excluded.library_path,
			patterns_enabled = excluded.patterns_enabled,
			updated_at = excluded.updated_at
	`, cfg.ID, cfg.Name, cfg.Persona, nullString(cfg.LibraryPath),
		cfg.PatternsEnabled, cfg.CreatedAt, cfg.UpdatedAt)

	if err != nil {
		return fmt.Errorf("saving domain: %w", err)
	}
	return nil
}

// Get retrieves a domain configuration by ID.
func (s *domainStore) Get(ctx context.Context, id string) (*domain.DomainConfig, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, name, persona, library_path, patterns_enabled, created_at, updated_at
		FROM domains WHERE id = ?
	`, id)

	cfg, err := scanDomain(row)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// List returns all domain configurations ordered by ID.
func (s *domainStore) List(ctx context.Context) ([]domain.DomainConfig, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, name, persona, library_path, patterns_enabled, created_at, updated_at
		FROM domains ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying domains: %w", err)
	}
	defer rows.Close()

	var configs []domain.DomainConfig //nolint:prealloc // size unknown from query
	for rows.Next() {
		cfg, err := scanDomainRows(rows)
		if err != nil {
			return nil, err
		}
		configs = append(configs, *cfg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating domains: %w", err)
	}

	return configs, nil
}

// Delete removes a domain configuration. Patterns referencing the domain
// are removed by the foreign-key cascade.
func (s *domainStore) Delete(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM domains WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting domain: %w", err)
	}
	return nil
}

// ==================== Pattern Store ====================

// patternStore implements driven.PatternStore.
type patternStore struct {
	store *Store
}

var _ driven.PatternStore = (*patternStore)(nil)

// Save stores or updates a pattern.
func (s *patternStore) Save(ctx context.Context, pattern domain.Pattern) error {
	if pattern.ID == "" {
		return domain.ErrInvalidInput
	}

	if pattern.CreatedAt.IsZero() {
		pattern.CreatedAt = time.Now().UTC()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO patterns (id, domain_id, matcher, answer, usage_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			domain_id = excluded.domain_id,
			matcher = excluded.matcher,
			answer = excluded.answer,
			usage_count = excluded.usage_count
	`, pattern.ID, pattern.DomainID, pattern.Match, pattern.Answer,
		pattern.UsageCount, pattern.CreatedAt)

	if err != nil {
		return fmt.Errorf("saving pattern: %w", err)
	}
	return nil
}

// Get retrieves a pattern by ID.
func (s *patternStore) Get(ctx context.Context, id string) (*domain.Pattern, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, domain_id, matcher, answer, usage_count, created_at
		FROM patterns WHERE id = ?
	`, id)

	var p domain.Pattern
	if err := row.Scan(&p.ID, &p.DomainID, &p.Match, &p.Answer, &p.UsageCount, &p.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning pattern: %w", err)
	}
	return &p, nil
}

// ListByDomain returns all patterns for a domain ordered by ID.
func (s *patternStore) ListByDomain(ctx context.Context, domainID string) ([]domain.Pattern, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, domain_id, matcher, answer, usage_count, created_at
		FROM patterns WHERE domain_id = ? ORDER BY id
	`, domainID)
	if err != nil {
		return nil, fmt.Errorf("querying patterns: %w", err)
	}
	defer rows.Close()

	var patterns []domain.Pattern //nolint:prealloc // size unknown from query
	for rows.Next() {
		var p domain.Pattern
		if err := rows.Scan(&p.ID, &p.DomainID, &p.Match, &p.Answer, &p.UsageCount, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning pattern: %w", err)
		}
		patterns = append(patterns, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating patterns: %w", err)
	}

	return patterns, nil
}

// Delete removes a pattern.
func (s *patternStore) Delete(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM patterns WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting pattern: %w", err)
	}
	return nil
}

// DeleteByDomain removes all patterns belonging to a domain.
func (s *patternStore) DeleteByDomain(ctx context.Context, domainID string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM patterns WHERE domain_id = ?", domainID)
	if err != nil {
		return fmt.Errorf("deleting domain patterns: %w", err)
	}
	return nil
}

// IncrementUsage bumps a pattern's usage count by one.
func (s *patternStore) IncrementUsage(ctx context.Context, id string) error {
	res, err := s.store.db.ExecContext(ctx,
		"UPDATE patterns SET usage_count = usage_count + 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("incrementing usage: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("incrementing usage: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ==================== Helper Functions ====================

// nullString converts an empty string to a SQL NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// scanDomain scans a single domain row.
func scanDomain(row *sql.Row) (*domain.DomainConfig, error) {
	var cfg domain.DomainConfig
	var libraryPath sql.NullString
	var createdAt, updatedAt sql.NullTime

	if err := row.Scan(&cfg.ID, &cfg.Name, &cfg.Persona, &libraryPath,
		&cfg.PatternsEnabled, &createdAt, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning domain: %w", err)
	}

	cfg.LibraryPath = libraryPath.String
	if createdAt.Valid {
		cfg.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		cfg.UpdatedAt = updatedAt.Time
	}

	return &cfg, nil
}

// scanDomainRows scans a domain from *sql.Rows.
func scanDomainRows(rows *sql.Rows) (*domain.DomainConfig, error) {
	var cfg domain.DomainConfig
	var libraryPath sql.NullString
	var createdAt, updatedAt sql.NullTime

	if err := rows.Scan(&cfg.ID, &cfg.Name, &cfg.Persona, &libraryPath,
		&cfg.PatternsEnabled, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("scanning domain: %w", err)
	}

	cfg.LibraryPath = libraryPath.String
	if createdAt.Valid {
		cfg.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		cfg.UpdatedAt = updatedAt.Time
	}

	return &cfg, nil
}
