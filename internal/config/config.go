package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	petname "github.com/dustinkirkland/golang-petname"
)

// minPanelSize is the smallest accepted PNG panel edge in pixels.
const minPanelSize = 100

// AppConfig is the process configuration read from the environment.
// Panel sizes are the PNG snapshot size in pixels; the directories and
// files are optional overrides.
type AppConfig struct {
	PanelWidth  int
	PanelHeight int

	AssetDir     string
	ThemeFile    string
	MessagesDir  string
	SnapshotPath string

	WhiteName string
	BlackName string
}

// Load reads AppConfig from the environment. PANEL_WIDTH and PANEL_HEIGHT
// default to 640 and must be at least minPanelSize. Missing player names
// are generated, and the black name never repeats the white one.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		PanelWidth:  640,
		PanelHeight: 640,
	}

	if v := strings.TrimSpace(os.Getenv("PANEL_WIDTH")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("PANEL_WIDTH: %w", err)
		}
		cfg.PanelWidth = n
	}
	if v := strings.TrimSpace(os.Getenv("PANEL_HEIGHT")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("PANEL_HEIGHT: %w", err)
		}
		cfg.PanelHeight = n
	}
	if cfg.PanelWidth < minPanelSize || cfg.PanelHeight < minPanelSize {
		return nil, fmt.Errorf("panel must be at least %dx%d, got %dx%d", minPanelSize, minPanelSize, cfg.PanelWidth, cfg.PanelHeight)
	}

	cfg.AssetDir = strings.TrimSpace(os.Getenv("ASSET_DIR"))
	cfg.ThemeFile = strings.TrimSpace(os.Getenv("THEME_FILE"))
	cfg.MessagesDir = strings.TrimSpace(os.Getenv("MESSAGES_DIR"))
	cfg.SnapshotPath = strings.TrimSpace(os.Getenv("SNAPSHOT_PATH"))

	cfg.WhiteName = strings.TrimSpace(os.Getenv("WHITE_NAME"))
	if cfg.WhiteName == "" {
		cfg.WhiteName = petname.Generate(2, "-")
	}
	cfg.BlackName = strings.TrimSpace(os.Getenv("BLACK_NAME"))
	if cfg.BlackName == "" || cfg.BlackName == cfg.WhiteName {
		cfg.BlackName = petname.Generate(2, "-")
	}

	return cfg, nil
}
