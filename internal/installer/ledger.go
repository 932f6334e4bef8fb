package installer

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/afero"
	"go.yaml.in/yaml/v3"

	"github.com/lt-rawlins/AppImage-Install/internal/apperr"
	"github.com/lt-rawlins/AppImage-Install/internal/layout"
	"github.com/lt-rawlins/AppImage-Install/internal/platform"
)

// Record describes one installed bundle and every file written for it.
type Record struct {
	Slug        string    `yaml:"slug" json:"slug"`
	Name        string    `yaml:"name" json:"name"`
	Version     string    `yaml:"version,omitempty" json:"version,omitempty"`
	Source      string    `yaml:"source" json:"source"`
	Bundle      string    `yaml:"bundle" json:"bundle"`
	Desktop     string    `yaml:"desktop" json:"desktop"`
	Icon        string    `yaml:"icon" json:"icon"`
	Launcher    string    `yaml:"launcher" json:"launcher"`
	InstalledAt time.Time `yaml:"installed_at" json:"installed_at"`
}

type ledgerFile struct {
	Apps []Record `yaml:"apps"`
}

// Ledger is the YAML file that tracks installs.
type Ledger struct {
	fs   afero.Fs
	path string
}

// NewLedger returns a ledger stored at path.
func NewLedger(fs afero.Fs, path string) *Ledger {
	return &Ledger{fs: fs, path: path}
}

// Path returns the ledger file location.
func (l *Ledger) Path() string { return l.path }

// List returns all records sorted by slug. A missing file is an empty ledger.
func (l *Ledger) List() ([]Record, error) {
	data, err := afero.ReadFile(l.fs, l.path)
	if err != nil {
		if ok, _ := platform.Exists(l.fs, l.path); !ok {
			return nil, nil
		}
		return nil, fmt.Errorf("reading ledger %s: %w", l.path, err)
	}
	var f ledgerFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing ledger %s: %w", l.path, err)
	}
	sort.Slice(f.Apps, func(i, j int) bool { return f.Apps[i].Slug < f.Apps[j].Slug })
	return f.Apps, nil
}

// Get returns the record for slug.
func (l *Ledger) Get(slug string) (*Record, error) {
	records, err := l.List()
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].Slug == slug {
			return &records[i], nil
		}
	}
	return nil, apperr.New(apperr.CodeNotFound, "%s is not installed", slug)
}

// Put adds r, replacing any record with the same slug.
func (l *Ledger) Put(r Record) error {
	records, err := l.List()
	if err != nil {
		return err
	}
	out := records[:0]
	for _, existing := range records {
		if existing.Slug != r.Slug {
			out = append(out, existing)
		}
	}
	return l.save(append(out, r))
}

// Remove deletes the record for slug. Unknown slugs are NOT_FOUND errors.
func (l *Ledger) Remove(slug string) error {
	records, err := l.List()
	if err != nil {
		return err
	}
	out := records[:0]
	found := false
	for _, existing := range records {
		if existing.Slug == slug {
			found = true
			continue
		}
		out = append(out, existing)
	}
	if !found {
		return apperr.New(apperr.CodeNotFound, "%s is not installed", slug)
	}
	return l.save(out)
}

func (l *Ledger) save(records []Record) error {
	sort.Slice(records, func(i, j int) bool { return records[i].Slug < records[j].Slug })
	data, err := yaml.Marshal(ledgerFile{Apps: records})
	if err != nil {
		return fmt.Errorf("encoding ledger: %w", err)
	}
	if err := l.fs.MkdirAll(filepath.Dir(l.path), layout.DirPermNormal); err != nil {
		return fmt.Errorf("creating ledger directory: %w", err)
	}
	if err := afero.WriteFile(l.fs, l.path, data, layout.FilePermNormal); err != nil {
		return fmt.Errorf("writing ledger %s: %w", l.path, err)
	}
	return nil
}
