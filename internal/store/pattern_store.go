package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/yourusername/nogg-truth/internal/models"
	"github.com/yourusername/nogg-truth/internal/scoring"
)

// document is the persisted layout: one flat JSON object keyed by fingerprint.
type document map[string]models.PatternRecord

// PatternStore maps fingerprints to their outcome history. The whole history
// lives under a single key of the underlying KVStore.
type PatternStore struct {
	kv     KVStore
	key    string
	policy scoring.HistoryPolicy
	now    func() time.Time

	// mu serializes read-modify-write when kv has no AtomicUpdater.
	mu sync.Mutex
}

// NewPatternStore creates a pattern store over kv.
func NewPatternStore(kv KVStore, key string, policy scoring.HistoryPolicy) *PatternStore {
	return &PatternStore{
		kv:     kv,
		key:    key,
		policy: policy,
		now:    time.Now,
	}
}

func persistenceError(op string, err error) error {
	if errors.Is(err, ErrPersistence) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}

func decode(data []byte) (document, error) {
	doc := document{}
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w: %v", ErrPersistence, ErrCorruptDocument, err)
	}
	return doc, nil
}

func (ps *PatternStore) load(ctx context.Context) (document, error) {
	data, err := ps.kv.Get(ctx, ps.key)
	if errors.Is(err, ErrKeyNotFound) {
		return document{}, nil
	}
	if err != nil {
		return nil, persistenceError("read", err)
	}
	return decode(data)
}

// normalizeFingerprint trims fp and rejects keys that cannot round-trip
// through the JSON document.
func normalizeFingerprint(fp string) (string, error) {
	fp = strings.TrimSpace(fp)
	if fp == "" {
		return "", fmt.Errorf("%w: empty", models.ErrInvalidFingerprint)
	}
	if !utf8.ValidString(fp) {
		return "", fmt.Errorf("%w: not valid UTF-8", models.ErrInvalidFingerprint)
	}
	return fp, nil
}

// current returns the record for fingerprint if it was written under the
// active fingerprint scheme.
func current(doc document, fingerprint string) (models.PatternRecord, bool) {
	rec, ok := doc[fingerprint]
	if !ok || rec.Scheme != scoring.FingerprintScheme {
		return models.PatternRecord{}, false
	}
	return rec, true
}

// Lookup returns the history view of fingerprint. The returned lookup is always
// usable: on a storage failure it is the unknown-pattern shape and the error
// reports why.
func (ps *PatternStore) Lookup(ctx context.Context, fingerprint string) (models.HistoryLookup, error) {
	fingerprint, err := normalizeFingerprint(fingerprint)
	if err != nil {
		return models.HistoryLookup{}, err
	}
	doc, err := ps.load(ctx)
	if err != nil {
		return models.HistoryLookup{}, err
	}

	rec, ok := current(doc, fingerprint)
	if !ok {
		return models.HistoryLookup{}, nil
	}

	return models.HistoryLookup{
		Exists:    true,
		TotalSeen: rec.TotalSeen,
		Wins:      rec.Wins,
		Losses:    rec.Losses,
		WinRate:   rec.WinRate(),
		Confirmed: ps.policy.Confirmed(&rec),
	}, nil
}

// Get returns the stored record of fingerprint or models.ErrNotFound.
func (ps *PatternStore) Get(ctx context.Context, fingerprint string) (*models.PatternRecord, error) {
	fingerprint, err := normalizeFingerprint(fingerprint)
	if err != nil {
		return nil, err
	}
	doc, err := ps.load(ctx)
	if err != nil {
		return nil, err
	}
	rec, ok := current(doc, fingerprint)
	if !ok {
		return nil, fmt.Errorf("pattern %s: %w", fingerprint, models.ErrNotFound)
	}
	return &rec, nil
}

// RecordOutcome adds one win or loss to fingerprint, creating the record if
// needed. The document is written whole; on failure nothing is changed.
func (ps *PatternStore) RecordOutcome(ctx context.Context, fingerprint string, result models.Result) (*models.PatternRecord, error) {
	fingerprint, err := normalizeFingerprint(fingerprint)
	if err != nil {
		return nil, err
	}
	if result != models.ResultWin && result != models.ResultLoss {
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidResult, result)
	}

	var updated models.PatternRecord
	apply := func(data []byte, exists bool) ([]byte, error) {
		doc := document{}
		if exists {
			var err error
			if doc, err = decode(data); err != nil {
				return nil, err
			}
		}

		rec, ok := current(doc, fingerprint)
		if !ok {
			rec = models.PatternRecord{Scheme: scoring.FingerprintScheme}
		}

		rec.TotalSeen++
		if result == models.ResultWin {
			rec.Wins++
		} else {
			rec.Losses++
		}
		last := result
		rec.LastResult = &last
		rec.LastUpdatedAt = ps.now().UTC()

		doc[fingerprint] = rec
		updated = rec
		return json.Marshal(doc)
	}

	if err := ps.update(ctx, apply); err != nil {
		return nil, persistenceError("record outcome", err)
	}
	return &updated, nil
}

func (ps *PatternStore) update(ctx context.Context, fn UpdateFunc) error {
	if updater, ok := ps.kv.(AtomicUpdater); ok {
		return updater.Update(ctx, ps.key, fn)
	}

	ps.mu.Lock()
	defer ps.mu.Unlock()

	data, err := ps.kv.Get(ctx, ps.key)
	exists := err == nil
	if err != nil && !errors.Is(err, ErrKeyNotFound) {
		return err
	}
	next, err := fn(data, exists)
	if err != nil {
		return err
	}
	return ps.kv.Set(ctx, ps.key, next)
}

// ClearAll deletes every pattern record and returns how many were removed.
// A corrupt document is removed as well, reporting zero records.
func (ps *PatternStore) ClearAll(ctx context.Context) (int, error) {
	removed := 0
	doc, err := ps.load(ctx)
	switch {
	case err == nil:
		removed = len(doc)
	case !errors.Is(err, ErrCorruptDocument):
		return 0, err
	}

	if err := ps.kv.Delete(ctx, ps.key); err != nil {
		return 0, persistenceError("clear", err)
	}
	return removed, nil
}

// PatternEntry is one fingerprint with its record.
type PatternEntry struct {
	Fingerprint string `json:"fingerprint"`
	models.PatternRecord
	Confirmed bool `json:"confirmed"`
}

// Snapshot returns all current-scheme records sorted by fingerprint.
func (ps *PatternStore) Snapshot(ctx context.Context) ([]PatternEntry, error) {
	doc, err := ps.load(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]PatternEntry, 0, len(doc))
	for fp := range doc {
		rec, ok := current(doc, fp)
		if !ok {
			continue
		}
		entries = append(entries, PatternEntry{
			Fingerprint:   fp,
			PatternRecord: rec,
			Confirmed:     ps.policy.Confirmed(&rec),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Fingerprint < entries[j].Fingerprint
	})
	return entries, nil
}

// Stats aggregates the current-scheme records.
func (ps *PatternStore) Stats(ctx context.Context) (models.PatternStats, error) {
	entries, err := ps.Snapshot(ctx)
	if err != nil {
		return models.PatternStats{}, err
	}

	var stats models.PatternStats
	for _, e := range entries {
		stats.Patterns++
		if e.Confirmed {
			stats.ConfirmedPatterns++
		}
		stats.Wins += e.Wins
		stats.Losses += e.Losses
	}
	stats.RecordedOutcomes = stats.Wins + stats.Losses
	return stats, nil
}

// Ping checks the underlying backend when it supports it.
func (ps *PatternStore) Ping(ctx context.Context) error {
	if p, ok := ps.kv.(interface{ Ping(context.Context) error }); ok {
		return p.Ping(ctx)
	}
	return nil
}
