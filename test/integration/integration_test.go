//go:build integration

// Package integration provides end-to-end tests for go-colorspace.
// These tests verify that palette files, the Lua runtime, the registry and
// the conversion engine work together.
package integration

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/opd-ai/go-colorspace/internal/config"
	"github.com/opd-ai/go-colorspace/pkg/colorspace"
	"github.com/opd-ai/go-colorspace/pkg/palette"
	"github.com/opd-ai/go-colorspace/pkg/palettes"
)

// getTestConfigsDir returns the path to the test configs directory.
// It calls t.Fatal if runtime.Caller fails.
func getTestConfigsDir(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("runtime.Caller failed to get current file path")
	}
	return filepath.Join(filepath.Dir(file), "..", "configs")
}

func copyFixture(t *testing.T, name, dir string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(getTestConfigsDir(t), name))
	if err != nil {
		t.Fatalf("failed to read fixture %s: %v", name, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// TestFullPipelineIntegration loads INI and Lua fixtures into a registry
// and checks the generated colors against the conversion engine.
func TestFullPipelineIntegration(t *testing.T) {
	dir := t.TempDir()
	copyFixture(t, "ocean.conf", dir)
	copyFixture(t, "brand.lua", dir)

	r, err := palettes.New(&palettes.Options{Strict: true})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer r.Close()
	if err := r.Load(dir); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	builtin, err := r.Colors("Blue-Red", 5, palette.Settings{})
	if err != nil {
		t.Fatalf("Colors(Blue-Red) failed: %v", err)
	}
	brand, err := r.Colors("Brand Diverging", 5, palette.Settings{})
	if err != nil {
		t.Fatalf("Colors(Brand Diverging) failed: %v", err)
	}
	if diff := cmp.Diff(builtin, brand); diff != "" {
		t.Errorf("brand palette should match Blue-Red (-builtin +brand):\n%s", diff)
	}

	// The first color of a sequential palette is its h1/c1/l1 endpoint.
	deep, err := r.Colors("Deep Sea", 5, palette.Settings{})
	if err != nil {
		t.Fatalf("Colors(Deep Sea) failed: %v", err)
	}
	b, err := colorspace.NewHCL([]float64{260}, []float64{80}, []float64{30})
	if err != nil {
		t.Fatal(err)
	}
	if got := b.Colors(true, false)[0]; got != deep[0] {
		t.Errorf("Deep Sea starts at %s, want %s", deep[0], got)
	}
}

// TestConfigMigrationIntegration migrates an INI file to Lua and checks that
// the registry produces identical palettes from both.
func TestConfigMigrationIntegration(t *testing.T) {
	iniDir := t.TempDir()
	luaDir := t.TempDir()
	iniPath := copyFixture(t, "ocean.conf", iniDir)

	luaContent, err := config.MigrateLegacyFile(iniPath)
	if err != nil {
		t.Fatalf("MigrateLegacyFile failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(luaDir, "ocean.lua"), luaContent, 0o644); err != nil {
		t.Fatal(err)
	}

	load := func(dir string) *palettes.Registry {
		r, err := palettes.New(&palettes.Options{SkipBuiltin: true})
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		t.Cleanup(func() { r.Close() })
		if err := r.Load(dir); err != nil {
			t.Fatalf("Load(%s) failed: %v", dir, err)
		}
		return r
	}
	fromINI := load(iniDir)
	fromLua := load(luaDir)

	if diff := cmp.Diff(fromINI.Names(0), fromLua.Names(0)); diff != "" {
		t.Fatalf("names differ (-ini +lua):\n%s", diff)
	}
	for _, name := range fromINI.Names(0) {
		want, _ := fromINI.Colors(name, 9, palette.Settings{})
		got, err := fromLua.Colors(name, 9, palette.Settings{})
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("%s colors differ (-ini +lua):\n%s", name, diff)
		}
	}
}

// TestBuiltinRoundTrip converts every built-in palette through each color
// space and back to hex.
func TestBuiltinRoundTrip(t *testing.T) {
	r, err := palettes.New(nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer r.Close()

	for _, name := range r.Names(0) {
		hex, err := r.Colors(name, 7, palette.Settings{})
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		src, err := colorspace.NewHex(hex)
		if err != nil {
			t.Fatalf("%s: NewHex failed: %v", name, err)
		}
		for _, space := range colorspace.Spaces() {
			if space == colorspace.Hex {
				continue
			}
			via, err := src.Convert(space, true)
			if err != nil {
				t.Fatalf("%s: hex to %s failed: %v", name, space, err)
			}
			if diff := cmp.Diff(hex, via.Colors(true, false)); diff != "" {
				t.Errorf("%s via %s (-want +got):\n%s", name, space, diff)
			}
		}
	}
}

// TestHotReloadIntegration edits a watched file and waits for the registry
// to pick up the change.
func TestHotReloadIntegration(t *testing.T) {
	dir := t.TempDir()
	path := copyFixture(t, "ocean.conf", dir)

	r, err := palettes.New(&palettes.Options{WatchConfig: true, WatchDebounce: 50 * time.Millisecond})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer r.Close()

	reloaded := make(chan struct{}, 4)
	r.SetEventHandler(func(e palettes.Event) {
		if e.Type == palettes.EventReloaded {
			reloaded <- struct{}{}
		}
	})
	if err := r.Load(path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	edited := strings.Replace(string(data), "[palette Lagoon]", "[palette Atoll]", 1)
	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(path, []byte(edited), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case <-reloaded:
			if _, err := r.Get("Atoll"); err == nil {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for reload")
		}
	}
}

// TestConfigParsingErrors checks that broken fixtures are reported with
// their file name and leave the registry usable.
func TestConfigParsingErrors(t *testing.T) {
	r, err := palettes.New(&palettes.Options{Strict: true})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer r.Close()

	invalid := filepath.Join(getTestConfigsDir(t), "invalid.conf")
	err = r.Load(invalid)
	if err == nil {
		t.Fatal("expected invalid.conf to fail")
	}
	if !strings.Contains(err.Error(), "invalid.conf") {
		t.Errorf("error does not name the file: %v", err)
	}
	if r.ErrorTracker().Count(palettes.ErrorCategoryConfig) != 1 {
		t.Error("expected one config error to be tracked")
	}
	if _, err := r.Colors("Blue-Red", 3, palette.Settings{}); err != nil {
		t.Errorf("registry unusable after a failed load: %v", err)
	}
}
