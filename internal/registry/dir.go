package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"brtoolchain/internal/document"
)

const manifestFileName = "manifest.json"

// ManifestEntry records one document written by a DirSink.
type ManifestEntry struct {
	ID           string        `json:"id"`
	Kind         document.Kind `json:"kind"`
	Source       string        `json:"source"`
	File         string        `json:"file"`
	Session      string        `json:"session,omitempty"`
	RegisteredAt string        `json:"registered_at"`
}

// Manifest indexes the documents of an output directory by id.
type Manifest struct {
	Entries map[string]ManifestEntry `json:"entries"`
}

// DirSink writes every document to <Dir>/<id>.xml and records it in the
// directory manifest. An extension registry watching Dir picks the files up.
type DirSink struct {
	Dir     string
	Session string
	now     func() time.Time
}

// NewDirSink returns a sink writing into dir on behalf of session.
func NewDirSink(dir, session string) *DirSink {
	return &DirSink{Dir: dir, Session: session, now: time.Now}
}

// Register implements Sink.
func (s *DirSink) Register(ctx context.Context, doc document.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := doc.Bytes()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("prepare output directory: %w", err)
	}

	name := doc.ID + ".xml"
	if err := writeAtomic(filepath.Join(s.Dir, name), data, "document-*.xml"); err != nil {
		return fmt.Errorf("write document %s: %w", doc.ID, err)
	}

	manifest, err := LoadManifest(s.Dir)
	if err != nil {
		return err
	}
	now := time.Now
	if s.now != nil {
		now = s.now
	}
	manifest.Entries[doc.ID] = ManifestEntry{
		ID:           doc.ID,
		Kind:         doc.Kind,
		Source:       doc.Source,
		File:         name,
		Session:      s.Session,
		RegisteredAt: now().UTC().Format(time.RFC3339),
	}
	return saveManifest(s.Dir, manifest)
}

// LoadManifest reads the manifest of dir. A missing manifest is empty.
func LoadManifest(dir string) (Manifest, error) {
	contents, err := os.ReadFile(filepath.Join(dir, manifestFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Manifest{Entries: map[string]ManifestEntry{}}, nil
		}
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}

	var manifest Manifest
	if err := json.Unmarshal(contents, &manifest); err != nil {
		return Manifest{}, fmt.Errorf("unmarshal manifest: %w", err)
	}
	if manifest.Entries == nil {
		manifest.Entries = map[string]ManifestEntry{}
	}
	return manifest, nil
}

func saveManifest(dir string, m Manifest) error {
	buf, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := writeAtomic(filepath.Join(dir, manifestFileName), buf, "manifest-*.json"); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

func writeAtomic(path string, data []byte, pattern string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), pattern)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return nil
}
