// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
threaded = false

[window]
title = "Demo"
scale = 2

[atlas]
width = 512
`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Window.Title != "Demo" || cfg.Threaded {
		t.Errorf("settings not applied: %+v", cfg)
	}
	def := DefaultConfig()
	if cfg.Window.Width != def.Window.Width || cfg.Atlas.MaxHeight != def.Atlas.MaxHeight {
		t.Errorf("defaults not kept: %+v", cfg)
	}
	if m := cfg.Metric(); m.PxPerDp != 2 || m.PxPerSp != 2 {
		t.Errorf("metric %+v", m)
	}
}

func TestParseConfigErrors(t *testing.T) {
	for _, src := range []string{
		"[window\n",
		"[window]\nscale = 0\n",
		"[atlas]\nheight = 512\nmax_height = 256\n",
		"[log]\nlevel = \"loud\"\n",
	} {
		if _, err := ParseConfig([]byte(src)); err == nil {
			t.Errorf("%q: no error", src)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadConfig(filepath.Join(dir, "missing.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("missing file: got %+v", cfg)
	}

	want := DefaultConfig()
	want.Window.Title = "Saved"
	want.Log.Level = "debug"
	data, err := want.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "loom.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}

	if err := os.WriteFile(path, []byte("threaded = 3"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil || !strings.Contains(err.Error(), path) {
		t.Errorf("error %v does not name the file", err)
	}
}

func TestOptions(t *testing.T) {
	cfg := DefaultConfig()
	for _, o := range []Option{Title("T"), Size(10, 20), Scale(3), Threaded(false)} {
		o(&cfg)
	}
	if cfg.Window.Title != "T" || cfg.Window.Width != 10 || cfg.Window.Height != 20 || cfg.Window.Scale != 3 || cfg.Threaded {
		t.Errorf("options not applied: %+v", cfg)
	}
}

func TestNewLogger(t *testing.T) {
	l, err := NewLogger(new(bytes.Buffer), LogConfig{Level: "off"})
	if err != nil || l != nil {
		t.Errorf("off: got %v, %v", l, err)
	}
	var buf bytes.Buffer
	l, err = NewLogger(&buf, LogConfig{Level: "warn"})
	if err != nil {
		t.Fatal(err)
	}
	l.Info("hidden")
	l.Warn("shown")
	if out := buf.String(); strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("unexpected output %q", out)
	}
	if _, err := NewLogger(&buf, LogConfig{Level: "verbose"}); err == nil {
		t.Error("unknown level accepted")
	}
}
