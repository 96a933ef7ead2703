package library

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/sage-labs/sage-cli/internal/core/domain"
	"github.com/sage-labs/sage-cli/internal/core/ports/driven"
	"github.com/sage-labs/sage-cli/internal/logger"
)

// Ensure the sources implement the interface.
var (
	_ driven.ExclusionSource = (*FileRules)(nil)
	_ driven.ExclusionSource = (Static)(nil)
)

// Static is a fixed, in-memory exclusion source. Used in tests and as the
// built-in default when no rule document is configured.
type Static []domain.ExclusionRule

// Rules returns the static rule list.
func (s Static) Rules(_ context.Context) ([]domain.ExclusionRule, error) {
	return s, nil
}

// FileRules reads exclusion rules from a line-oriented rule document.
// Each non-empty, non-comment line is one case-sensitive substring rule.
//
// The parsed rules are cached between loads. When watching is enabled,
// an fsnotify watcher invalidates the cache on edits; without a watcher
// the document is re-read on every call, trading I/O for freshness.
type FileRules struct {
	path string

	mu      sync.RWMutex
	cached  []domain.ExclusionRule
	loaded  bool
	watcher *fsnotify.Watcher
}

// NewFileRules creates a rule source backed by the document at path.
// No I/O happens until the first Rules call.
func NewFileRules(path string) *FileRules {
	return &FileRules{path: path}
}

// Watch starts cache invalidation on document edits. The watcher observes
// the document's directory so renames and atomic rewrites are seen.
func (r *FileRules) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(r.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watching %s: %w", filepath.Dir(r.path), err)
	}

	r.mu.Lock()
	r.watcher = watcher
	r.mu.Unlock()

	go r.watchLoop(watcher)
	return nil
}

// Close stops the watcher, if any.
func (r *FileRules) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.watcher == nil {
		return nil
	}
	err := r.watcher.Close()
	r.watcher = nil
	return err
}

// Rules returns the current exclusion rules.
// A missing document yields no rules; an unreadable one is an error, so
// callers fail closed rather than loading unfiltered.
func (r *FileRules) Rules(_ context.Context) ([]domain.ExclusionRule, error) {
	r.mu.RLock()
	if r.loaded && r.watcher != nil {
		rules := make([]domain.ExclusionRule, len(r.cached))
		copy(rules, r.cached)
		r.mu.RUnlock()
		return rules, nil
	}
	r.mu.RUnlock()

	rules, err := parseRuleFile(r.path)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.cached = rules
	r.loaded = true
	r.mu.Unlock()

	out := make([]domain.ExclusionRule, len(rules))
	copy(out, rules)
	return out, nil
}

// Append adds one rule to the end of the rule document and invalidates
// the cache. Blank rules are rejected.
func (r *FileRules) Append(rule domain.ExclusionRule) error {
	trimmed := strings.TrimSpace(string(rule))
	if trimmed == "" {
		return fmt.Errorf("exclusion rule is empty")
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("opening rule document %s: %w", r.path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(trimmed + "\n"); err != nil {
		return fmt.Errorf("writing rule document %s: %w", r.path, err)
	}

	r.mu.Lock()
	r.loaded = false
	r.mu.Unlock()
	return nil
}

// watchLoop invalidates the cache when the rule document changes.
func (r *FileRules) watchLoop(watcher *fsnotify.Watcher) {
	name := filepath.Base(r.path)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			logger.Debug("Exclusion rules changed (%s), cache invalidated", event.Op)
			r.mu.Lock()
			r.loaded = false
			r.mu.Unlock()
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("Exclusion rule watcher error: %v", err)
			// Fail closed on watcher trouble: force re-reads.
			r.mu.Lock()
			r.loaded = false
			r.mu.Unlock()
		}
	}
}

// parseRuleFile reads the rule document. Comment lines start with '#';
// surrounding whitespace is not part of a rule.
func parseRuleFile(path string) ([]domain.ExclusionRule, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading rule document %s: %w", path, err)
	}
	defer f.Close()

	var rules []domain.ExclusionRule
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rules = append(rules, domain.ExclusionRule(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading rule document %s: %w", path, err)
	}
	return rules, nil
}

// WriteDefaultRules seeds a fresh rule document with the built-in rules.
// Existing documents are left untouched.
func WriteDefaultRules(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString("# Exclusion rules: one case-sensitive substring per line.\n")
	b.WriteString("# Files whose path or name contains a rule are never loaded.\n")
	for _, rule := range domain.DefaultExclusionRules() {
		b.WriteString(string(rule))
		b.WriteString("\n")
	}
	return os.WriteFile(path, []byte(b.String()), 0600)
}
