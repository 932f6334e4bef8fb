package installer

import (
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/lt-rawlins/AppImage-Install/internal/apperr"
)

func TestLedgerMissingFileIsEmpty(t *testing.T) {
	l := NewLedger(afero.NewMemMapFs(), "/state/installed.yaml")
	records, err := l.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("List() = %v, want empty", records)
	}
}

func TestLedgerPutReplacesAndSorts(t *testing.T) {
	fs := afero.NewMemMapFs()
	l := NewLedger(fs, "/state/installed.yaml")

	for _, r := range []Record{
		{Slug: "zed", Name: "Zed"},
		{Slug: "krita", Name: "Krita", Version: "5.2.1"},
		{Slug: "krita", Name: "Krita", Version: "5.2.2"},
	} {
		if err := l.Put(r); err != nil {
			t.Fatalf("Put(%s) error = %v", r.Slug, err)
		}
	}

	records, err := l.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].Slug != "krita" || records[1].Slug != "zed" {
		t.Errorf("order = %s, %s", records[0].Slug, records[1].Slug)
	}
	if records[0].Version != "5.2.2" {
		t.Errorf("krita version = %q, want the replacement", records[0].Version)
	}

	data, err := afero.ReadFile(fs, "/state/installed.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "apps:\n") {
		t.Errorf("ledger file:\n%s", data)
	}
}

func TestLedgerGetAndRemove(t *testing.T) {
	l := NewLedger(afero.NewMemMapFs(), "/state/installed.yaml")
	if err := l.Put(Record{Slug: "myapp", Name: "MyApp"}); err != nil {
		t.Fatal(err)
	}

	rec, err := l.Get("myapp")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if rec.Name != "MyApp" {
		t.Errorf("Name = %q", rec.Name)
	}

	if _, err := l.Get("other"); !apperr.Is(err, apperr.CodeNotFound) {
		t.Errorf("Get(other) error = %v, want NOT_FOUND", err)
	}
	if err := l.Remove("other"); !apperr.Is(err, apperr.CodeNotFound) {
		t.Errorf("Remove(other) error = %v, want NOT_FOUND", err)
	}
	if err := l.Remove("myapp"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if records, _ := l.List(); len(records) != 0 {
		t.Errorf("records after Remove = %v", records)
	}
}

func TestLedgerCorruptFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/state/installed.yaml", []byte("apps: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewLedger(fs, "/state/installed.yaml").List(); err == nil {
		t.Error("expected a parse error")
	}
}
