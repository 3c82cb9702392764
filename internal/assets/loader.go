package assets

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/park285/dragchess/internal/domain"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"go.uber.org/zap"
)

//go:embed pieces/*.svg
var pieceFiles embed.FS

type cacheKey struct {
	key  domain.AssetKey
	size int
}

// Loader turns asset keys into square piece images. Files in the override
// directory win over the embedded set. Failures are logged once and
// produce a nil image; they never reach the caller as errors.
type Loader struct {
	overrideDir string
	logger      *zap.Logger

	mu    sync.RWMutex
	cache map[cacheKey]image.Image
}

// NewLoader returns a loader that checks overrideDir for <key>.svg before
// the embedded set. An empty overrideDir uses the embedded set only.
func NewLoader(overrideDir string, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		overrideDir: strings.TrimSpace(overrideDir),
		logger:      logger,
		cache:       make(map[cacheKey]image.Image),
	}
}

// Image returns the piece image for key at size×size pixels, or nil when
// the asset is missing or broken.
func (l *Loader) Image(key domain.AssetKey, size int) image.Image {
	if size <= 0 {
		return nil
	}
	ck := cacheKey{key: key, size: size}

	l.mu.RLock()
	img, ok := l.cache[ck]
	l.mu.RUnlock()
	if ok {
		return img
	}

	img, err := l.render(key, size)
	if err != nil {
		l.logger.Warn("asset_missing", zap.String("key", string(key)), zap.Int("size", size), zap.Error(err))
		img = nil
	}

	l.mu.Lock()
	l.cache[ck] = img
	l.mu.Unlock()
	return img
}

// Preload renders every piece at size and returns how many failed.
func (l *Loader) Preload(size int) int {
	failed := 0
	for _, key := range domain.AllAssetKeys() {
		if l.Image(key, size) == nil {
			failed++
		}
	}
	if failed > 0 {
		l.logger.Warn("asset_preload_incomplete", zap.Int("failed", failed), zap.Int("size", size))
	}
	return failed
}

func (l *Loader) read(key domain.AssetKey) ([]byte, error) {
	name := string(key) + ".svg"
	if l.overrideDir != "" {
		data, err := os.ReadFile(filepath.Join(l.overrideDir, name))
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read override asset %s: %w", name, err)
		}
	}
	data, err := pieceFiles.ReadFile("pieces/" + name)
	if err != nil {
		return nil, fmt.Errorf("read piece asset %s: %w", name, err)
	}
	return data, nil
}

func (l *Loader) render(key domain.AssetKey, size int) (image.Image, error) {
	data, err := l.read(key)
	if err != nil {
		return nil, err
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(sanitizeSVG(data)))
	if err != nil {
		return nil, fmt.Errorf("parse piece svg: %w", err)
	}
	if icon.ViewBox.W <= 0 {
		icon.ViewBox.W = float64(size)
	}
	if icon.ViewBox.H <= 0 {
		icon.ViewBox.H = float64(size)
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Transparent), image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)
	return img, nil
}
