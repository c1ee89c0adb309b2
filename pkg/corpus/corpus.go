// Package corpus stores emitted record sets on disk under a single
// JSON manifest, one JSONL file per ingest run.
package corpus

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/banhbao/phapdien/pkg/index"
)

// Corpus is a directory of record files tracked by a manifest.
type Corpus struct {
	mu       sync.RWMutex
	root     string
	manifest *Manifest
}

// Exists reports whether root already holds a corpus manifest.
func Exists(root string) bool {
	_, err := os.Stat(filepath.Join(root, manifestFileName))
	return err == nil
}

// Open loads the corpus at root, creating the directory layout and an
// empty manifest when none exists yet. The corpus takes its name from
// the directory.
func Open(root string) (*Corpus, error) {
	if err := os.MkdirAll(filepath.Join(root, recordsDirName), 0755); err != nil {
		return nil, fmt.Errorf("creating corpus directory: %w", err)
	}

	c := &Corpus{root: root}
	data, err := os.ReadFile(c.manifestPath())
	switch {
	case os.IsNotExist(err):
		now := time.Now().UTC()
		c.manifest = &Manifest{
			Version:   manifestVersion,
			Name:      filepath.Base(filepath.Clean(root)),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := c.saveManifest(); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, fmt.Errorf("reading manifest: %w", err)
	default:
		var m Manifest
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("parsing manifest: %w", err)
		}
		c.manifest = &m
	}
	return c, nil
}

// AddMeta describes the record set being added.
type AddMeta struct {
	Dataset   string
	Laws      int
	Truncated int
}

// Add writes the records to a fresh JSONL file under records/ and
// registers a manifest entry for them. The returned entry carries the
// minted id and the file's checksum.
func (c *Corpus) Add(ctx context.Context, meta AddMeta, records []index.Record) (*Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := uuid.NewString()
	path := c.RecordsPath(id)

	sink, err := index.NewJSONLSink(path)
	if err != nil {
		return nil, err
	}
	if err := sink.Index(ctx, records); err != nil {
		sink.Close()
		os.Remove(path)
		return nil, err
	}
	if err := sink.Close(); err != nil {
		return nil, fmt.Errorf("closing records file: %w", err)
	}

	checksum, err := fileChecksum(path)
	if err != nil {
		return nil, err
	}

	entry := Entry{
		ID:        id,
		Dataset:   meta.Dataset,
		Laws:      meta.Laws,
		Records:   len(records),
		Truncated: meta.Truncated,
		AddedAt:   time.Now().UTC(),
		Checksum:  checksum,
	}
	c.manifest.Entries = append(c.manifest.Entries, entry)
	c.manifest.UpdatedAt = entry.AddedAt
	if err := c.saveManifest(); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Get returns the entry with the given id, or nil when absent.
func (c *Corpus) Get(id string) *Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for i := range c.manifest.Entries {
		if c.manifest.Entries[i].ID == id {
			entry := c.manifest.Entries[i]
			return &entry
		}
	}
	return nil
}

// List returns all entries, newest first.
func (c *Corpus) List() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Entry, len(c.manifest.Entries))
	copy(out, c.manifest.Entries)
	sort.Slice(out, func(i, j int) bool {
		return out[i].AddedAt.After(out[j].AddedAt)
	})
	return out
}

// Stats totals the manifest.
func (c *Corpus) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := Stats{Entries: len(c.manifest.Entries)}
	for i := range c.manifest.Entries {
		stats.Laws += c.manifest.Entries[i].Laws
		stats.Records += c.manifest.Entries[i].Records
		stats.Truncated += c.manifest.Entries[i].Truncated
	}
	return stats
}

// Name returns the corpus name recorded in the manifest.
func (c *Corpus) Name() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.manifest.Name
}

// RecordsPath returns where the entry's JSONL file lives.
func (c *Corpus) RecordsPath(id string) string {
	return filepath.Join(c.root, recordsDirName, id+".jsonl")
}

func (c *Corpus) manifestPath() string {
	return filepath.Join(c.root, manifestFileName)
}

// saveManifest writes the manifest through a temp file and rename so a
// crash never leaves a torn corpus.json. Callers hold the write lock.
func (c *Corpus) saveManifest() error {
	data, err := json.MarshalIndent(c.manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}

	path := c.manifestPath()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing manifest: %w", err)
	}
	return nil
}

func fileChecksum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening records file: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing records file: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
