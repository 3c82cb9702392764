package config

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PANEL_WIDTH", "PANEL_HEIGHT", "ASSET_DIR", "THEME_FILE", "MESSAGES_DIR", "SNAPSHOT_PATH", "WHITE_NAME", "BLACK_NAME"} {
		t.Setenv(k, "")
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PanelWidth != 640 || cfg.PanelHeight != 640 {
		t.Fatalf("unexpected panel %dx%d", cfg.PanelWidth, cfg.PanelHeight)
	}
	if cfg.WhiteName == "" || cfg.BlackName == "" || cfg.WhiteName == cfg.BlackName {
		t.Fatalf("expected two distinct generated names, got %q and %q", cfg.WhiteName, cfg.BlackName)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PANEL_WIDTH", "800")
	t.Setenv("PANEL_HEIGHT", " 600 ")
	t.Setenv("ASSET_DIR", "/tmp/pieces")
	t.Setenv("WHITE_NAME", "alice")
	t.Setenv("BLACK_NAME", "bob")
	t.Setenv("THEME_FILE", "")
	t.Setenv("MESSAGES_DIR", "/tmp/messages")
	t.Setenv("SNAPSHOT_PATH", "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := AppConfig{PanelWidth: 800, PanelHeight: 600, AssetDir: "/tmp/pieces", MessagesDir: "/tmp/messages", WhiteName: "alice", BlackName: "bob"}
	if diff := cmp.Diff(want, *cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRejectsBadPanel(t *testing.T) {
	t.Setenv("PANEL_HEIGHT", "")
	t.Setenv("PANEL_WIDTH", "abc")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for non-numeric width")
	}
	t.Setenv("PANEL_WIDTH", "50")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for tiny panel")
	}
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#deb887")
	if err != nil {
		t.Fatalf("ParseHex: %v", err)
	}
	if c != (color.NRGBA{R: 0xde, G: 0xb8, B: 0x87, A: 0xff}) {
		t.Fatalf("unexpected colour %v", c)
	}
	c, err = ParseHex("f6f66980")
	if err != nil || c.A != 0x80 || c.R != 0xf6 {
		t.Fatalf("unexpected colour %v err=%v", c, err)
	}
	for _, bad := range []string{"", "#fff", "#gggggg", "#1234567"} {
		if _, err := ParseHex(bad); !errors.Is(err, ErrInvalidColor) {
			t.Fatalf("ParseHex(%q) err = %v", bad, err)
		}
	}
}

func TestLoadTheme(t *testing.T) {
	th, err := LoadTheme("")
	if err != nil || th != DefaultTheme {
		t.Fatalf("empty path must give the default theme: %+v %v", th, err)
	}

	path := filepath.Join(t.TempDir(), "theme.yaml")
	if err := os.WriteFile(path, []byte("light_square: \"#ffffff\"\ndark_square: \"#000000\"\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	th, err = LoadTheme(path)
	if err != nil {
		t.Fatalf("LoadTheme: %v", err)
	}
	want := DefaultTheme
	want.LightSquare = "#ffffff"
	want.DarkSquare = "#000000"
	if diff := cmp.Diff(want, th); diff != "" {
		t.Fatalf("theme mismatch (-want +got):\n%s", diff)
	}
}

func TestParseThemeRejects(t *testing.T) {
	if _, err := ParseTheme([]byte("squares: red\n")); err == nil {
		t.Fatalf("expected unknown key error")
	}
	if _, err := ParseTheme([]byte("origin: \"blue\"\n")); !errors.Is(err, ErrInvalidColor) {
		t.Fatalf("expected ErrInvalidColor, got %v", err)
	}
	if th, err := ParseTheme(nil); err != nil || th != DefaultTheme {
		t.Fatalf("empty document must give the default theme: %v", err)
	}
}
