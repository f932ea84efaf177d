package brief

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"shortcast/internal/script"
	"shortcast/internal/services"
)

func writeBrief(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "brief.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadParsesFields(t *testing.T) {
	path := writeBrief(t, `
product: AquaBottle
landing_url: https://example.com/aqua
style: humorous
language: ja
selling_points:
  - keeps drinks cold for 24 hours
  - fits cup holders
audience: commuters
auto_upload: true
`)
	b, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if b.Product != "AquaBottle" {
		t.Fatalf("product = %q", b.Product)
	}
	if b.ScriptStyle() != script.StyleHumorous {
		t.Fatalf("style = %q", b.ScriptStyle())
	}
	if len(b.SellingPts) != 2 {
		t.Fatalf("selling points = %v", b.SellingPts)
	}
	if !b.AutoUpload {
		t.Fatal("auto_upload not parsed")
	}
	if b.ProjectName() != "AquaBottle" {
		t.Fatalf("derived name = %q", b.ProjectName())
	}
}

func TestLoadRequiresProduct(t *testing.T) {
	path := writeBrief(t, "style: humorous\n")
	_, err := Load(path)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("err = %v, want validation marker", err)
	}
}

func TestLoadRejectsUnknownStyle(t *testing.T) {
	path := writeBrief(t, "product: X\nstyle: operatic\n")
	if _, err := Load(path); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("err = %v, want validation marker", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("err = %v, want configuration marker", err)
	}
}

func TestScriptStyleDefault(t *testing.T) {
	b := &Brief{Product: "X"}
	if b.ScriptStyle() != script.StyleEducational {
		t.Fatalf("default style = %q", b.ScriptStyle())
	}
}
