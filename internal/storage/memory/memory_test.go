// internal/storage/memory/memory_test.go
package memory

import (
	"errors"
	"sync"
	"testing"

	"github.com/OCAP2/mapedit/internal/geo"
	"github.com/OCAP2/mapedit/pkg/core"
)

func testFeature(t *testing.T, name, wkt string, bounds core.Bounds) core.Feature {
	t.Helper()
	g, err := geo.ParseWKT(wkt)
	if err != nil {
		t.Fatalf("parse %s: %v", wkt, err)
	}
	return core.Feature{Name: name, Geometry: g, Bounds: bounds}
}

func TestNew(t *testing.T) {
	b := New()

	if b == nil {
		t.Fatal("New returned nil")
	}
	if b.features == nil {
		t.Error("features map not initialized")
	}
	if err := b.Init(); err != nil {
		t.Errorf("Init returned error: %v", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	b := New()
	f := testFeature(t, "pin", "POINT(2 1)", core.Bounds{MinLat: 1, MinLng: 2, MaxLat: 1, MaxLng: 2})

	if err := b.SaveFeature(f); err != nil {
		t.Fatalf("SaveFeature returned error: %v", err)
	}

	got, err := b.LoadFeature("pin")
	if err != nil {
		t.Fatalf("LoadFeature returned error: %v", err)
	}
	if got.Geometry.AsText() != "POINT(2 1)" {
		t.Errorf("expected POINT(2 1), got %s", got.Geometry.AsText())
	}
	if got.UpdatedAt.IsZero() {
		t.Error("expected UpdatedAt to be set")
	}
}

func TestSaveReplaces(t *testing.T) {
	b := New()
	_ = b.SaveFeature(testFeature(t, "pin", "POINT(2 1)", core.Bounds{}))
	_ = b.SaveFeature(testFeature(t, "pin", "POINT(5 5)", core.Bounds{}))

	got, _ := b.LoadFeature("pin")
	if got.Geometry.AsText() != "POINT(5 5)" {
		t.Errorf("expected replaced geometry, got %s", got.Geometry.AsText())
	}
	if len(b.features) != 1 {
		t.Errorf("expected 1 feature, got %d", len(b.features))
	}
}

func TestLoadMissing(t *testing.T) {
	b := New()

	_, err := b.LoadFeature("missing")
	if !errors.Is(err, core.ErrFeatureNotFound) {
		t.Errorf("expected ErrFeatureNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	b := New()
	_ = b.SaveFeature(testFeature(t, "pin", "POINT(2 1)", core.Bounds{}))

	if err := b.DeleteFeature("pin"); err != nil {
		t.Fatalf("DeleteFeature returned error: %v", err)
	}
	if err := b.DeleteFeature("pin"); !errors.Is(err, core.ErrFeatureNotFound) {
		t.Errorf("expected ErrFeatureNotFound on second delete, got %v", err)
	}
}

func TestListSorted(t *testing.T) {
	b := New()
	for _, name := range []string{"charlie", "alpha", "bravo"} {
		_ = b.SaveFeature(testFeature(t, name, "POINT(0 0)", core.Bounds{}))
	}

	names, _ := b.ListFeatures()
	want := []string{"alpha", "bravo", "charlie"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, names)
		}
	}
}

func TestFeaturesIn(t *testing.T) {
	b := New()
	_ = b.SaveFeature(testFeature(t, "east", "POINT(10 10)", core.Bounds{MinLat: 5, MinLng: 5, MaxLat: 10, MaxLng: 10}))
	_ = b.SaveFeature(testFeature(t, "west", "POINT(-10 -10)", core.Bounds{MinLat: -10, MinLng: -10, MaxLat: -5, MaxLng: -5}))

	names, _ := b.FeaturesIn(core.Bounds{MinLat: 0, MinLng: 0, MaxLat: 6, MaxLng: 6})
	if len(names) != 1 || names[0] != "east" {
		t.Errorf("expected [east], got %v", names)
	}

	names, _ = b.FeaturesIn(core.Bounds{MinLat: 40, MinLng: 40, MaxLat: 50, MaxLng: 50})
	if len(names) != 0 {
		t.Errorf("expected no matches, got %v", names)
	}
}

func TestClose_DropsFeatures(t *testing.T) {
	b := New()
	_ = b.SaveFeature(testFeature(t, "pin", "POINT(2 1)", core.Bounds{}))

	_ = b.Close()

	names, _ := b.ListFeatures()
	if len(names) != 0 {
		t.Errorf("expected empty store after Close, got %v", names)
	}
}

func TestConcurrentSaves(t *testing.T) {
	b := New()
	g := testFeature(t, "", "POINT(0 0)", core.Bounds{})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			f := g
			f.Name = string(rune('a' + i%26))
			_ = b.SaveFeature(f)
		}(i)
	}
	wg.Wait()

	names, _ := b.ListFeatures()
	if len(names) != 26 {
		t.Errorf("expected 26 distinct names, got %d", len(names))
	}
}
