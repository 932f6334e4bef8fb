package installer

import (
	"path/filepath"

	"github.com/lt-rawlins/AppImage-Install/internal/apperr"
	"github.com/lt-rawlins/AppImage-Install/internal/platform"
)

// Uninstall removes the files recorded for slug and drops its ledger entry.
// Files that are already gone are skipped. The icon is only removed when it
// lives in the icon store.
func (i *Installer) Uninstall(slug string) (*Record, error) {
	if i.ledger == nil {
		return nil, apperr.New(apperr.CodeNotFound, "no install ledger configured")
	}
	rec, err := i.ledger.Get(slug)
	if err != nil {
		return nil, err
	}

	paths := []string{rec.Desktop, rec.Launcher, rec.Bundle}
	if rec.Icon != "" && rec.Icon != rec.Bundle && filepath.Dir(rec.Icon) == i.dirs.Icons {
		paths = append(paths, rec.Icon)
	}
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := platform.RemoveIfExists(i.fs, p); err != nil {
			return nil, apperr.Wrap(apperr.CodeFilesystem, "removing", p, err)
		}
		i.log.WithField("slug", slug).Debugf("removed %s", p)
	}

	if err := i.ledger.Remove(slug); err != nil {
		return nil, err
	}
	return rec, nil
}

// List returns the install ledger.
func (i *Installer) List() ([]Record, error) {
	if i.ledger == nil {
		return nil, nil
	}
	return i.ledger.List()
}
