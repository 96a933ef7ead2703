package library

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/sage-labs/sage-cli/internal/core/domain"
	"github.com/sage-labs/sage-cli/internal/core/ports/driven"
	"github.com/sage-labs/sage-cli/internal/logger"
)

// Ensure Loader implements the interface.
var _ driven.LibraryLoader = (*Loader)(nil)

// Default loader limits. The document caps are deployment configuration;
// the visit ceiling and deadline are hard walls against pathological trees.
const (
	DefaultMaxDocuments     = 50
	DefaultMaxDocumentChars = 50_000
	DefaultMaxVisited       = 10_000
	DefaultLoadDeadline     = 30 * time.Second
)

// Walk sentinels, mapped to domain errors after the walk.
var (
	errTooManyEntries = errors.New("visited entry ceiling reached")
	errDeadline       = errors.New("load deadline exceeded")
)

// Config holds loader limits. Zero values fall back to the defaults.
type Config struct {
	// MaxDocuments caps how many documents one load accepts.
	MaxDocuments int

	// MaxDocumentChars caps how much of each file is read.
	MaxDocumentChars int

	// MaxVisited caps directory entries examined, accepted or not.
	MaxVisited int

	// LoadDeadline caps the wall-clock time of one load.
	LoadDeadline time.Duration
}

// Loader loads documents from a library directory.
// It holds no per-load state and is safe for concurrent use.
type Loader struct {
	exclusions driven.ExclusionSource
	cfg        Config
}

// NewLoader creates a new library loader.
// The exclusions source is required; it is consulted on every load so
// that rule edits between queries take effect.
func NewLoader(exclusions driven.ExclusionSource, cfg Config) *Loader {
	if cfg.MaxDocuments <= 0 {
		cfg.MaxDocuments = DefaultMaxDocuments
	}
	if cfg.MaxDocumentChars <= 0 {
		cfg.MaxDocumentChars = DefaultMaxDocumentChars
	}
	if cfg.MaxVisited <= 0 {
		cfg.MaxVisited = DefaultMaxVisited
	}
	if cfg.LoadDeadline <= 0 {
		cfg.LoadDeadline = DefaultLoadDeadline
	}
	return &Loader{exclusions: exclusions, cfg: cfg}
}

// Load returns the accepted documents under basePath in lexicographic
// order by relative path. Excluded files are skipped silently so the
// result never leaks their existence.
func (l *Loader) Load(ctx context.Context, basePath string) ([]domain.LibraryDocument, error) {
	info, err := os.Stat(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrLibraryPath, basePath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrLibraryPath, basePath)
	}

	rules, err := l.loadRules(ctx)
	if err != nil {
		// The rule list is a security control: refuse to load without it.
		return nil, fmt.Errorf("exclusion rules: %w", err)
	}

	logger.Section("Library Load")
	logger.Debug("Base path: %s, rules: %d", basePath, len(rules))

	deadline := time.Now().Add(l.cfg.LoadDeadline)
	visited := 0
	docs := make([]domain.LibraryDocument, 0, l.cfg.MaxDocuments)

	walkErr := filepath.WalkDir(basePath, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		visited++
		if visited > l.cfg.MaxVisited {
			return errTooManyEntries
		}
		if time.Now().After(deadline) {
			return errDeadline
		}

		rel, relErr := filepath.Rel(basePath, path)
		if relErr != nil {
			// Unattributable path: excluded, not reported.
			return nil
		}
		id := filepath.ToSlash(rel)

		if walkErr != nil {
			if path == basePath {
				return fmt.Errorf("%w: %s: %v", domain.ErrLibraryPath, basePath, walkErr)
			}
			// Unreadable subtree entries are treated as excluded.
			logger.Debug("Skipping unreadable entry %s: %v", id, walkErr)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path != basePath && domain.IsExcluded(id+"/", rules) {
				return fs.SkipDir
			}
			return nil
		}

		// Symlinks and other irregular files are excluded.
		if !d.Type().IsRegular() {
			return nil
		}
		if domain.IsExcluded(id, rules) {
			return nil
		}
		if len(docs) >= l.cfg.MaxDocuments {
			// Cap reached; stop before paying any further I/O.
			return fs.SkipAll
		}

		content, truncated, readErr := readCapped(path, l.cfg.MaxDocumentChars)
		if readErr != nil {
			logger.Debug("Skipping unreadable file %s: %v", id, readErr)
			return nil
		}

		docs = append(docs, domain.LibraryDocument{
			ID:        id,
			Content:   content,
			Truncated: truncated,
		})
		return nil
	})

	if walkErr != nil {
		switch {
		case errors.Is(walkErr, errTooManyEntries), errors.Is(walkErr, errDeadline):
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrLoadTimeout, basePath, walkErr)
		case errors.Is(walkErr, domain.ErrLibraryPath):
			return nil, walkErr
		case errors.Is(walkErr, context.Canceled), errors.Is(walkErr, context.DeadlineExceeded):
			return nil, walkErr
		default:
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrLibraryPath, basePath, walkErr)
		}
	}

	logger.Info("Library load: %d documents accepted, %d entries visited", len(docs), visited)
	return docs, nil
}

// loadRules fetches the active exclusion rules.
func (l *Loader) loadRules(ctx context.Context) ([]domain.ExclusionRule, error) {
	if l.exclusions == nil {
		return nil, nil
	}
	return l.exclusions.Rules(ctx)
}

// readCapped reads at most cap characters of the file, reporting whether
// the content was truncated. One oversized file never fails a load.
func readCapped(path string, capChars int) (string, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", false, err
	}
	defer f.Close()

	// Read one byte past the cap to detect truncation without
	// paying for the rest of the file.
	buf, err := io.ReadAll(io.LimitReader(f, int64(capChars)+1))
	if err != nil {
		return "", false, err
	}
	if len(buf) > capChars {
		return string(buf[:capChars]), true, nil
	}
	return string(buf), false, nil
}
