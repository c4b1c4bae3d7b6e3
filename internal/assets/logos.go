package assets

import (
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	xdraw "golang.org/x/image/draw"

	"github.com/ChuckBuilds/ledmatrix-basketball-scoreboard/internal/domain"
	"github.com/ChuckBuilds/ledmatrix-basketball-scoreboard/internal/logging"
)

// LogoCache maps a team identifier to a ready-to-draw bitmap, loading and
// resizing from the local asset store on first access and reusing the
// decoded result for the process lifetime. The team roster is small and
// fixed per sport, so there is no eviction.
//
// The cache is explicitly constructed and passed into the renderer so
// tests can substitute an empty or pre-seeded instance.
type LogoCache struct {
	mu          sync.Mutex
	maxW, maxH  int
	dirs        map[domain.League]string
	logos       map[string]image.Image
	logger      *slog.Logger
	placeholder image.Image
}

// NewLogoCache builds a cache that fits logos inside maxW x maxH, loading
// assets from the per-league directories.
func NewLogoCache(maxW, maxH int, dirs map[domain.League]string, logger *slog.Logger) *LogoCache {
	return &LogoCache{
		maxW:        maxW,
		maxH:        maxH,
		dirs:        dirs,
		logos:       make(map[string]image.Image),
		logger:      logger,
		placeholder: image.NewRGBA(image.Rect(0, 0, maxW, maxH)),
	}
}

// Seed stores a pre-decoded logo, primarily for tests.
func (c *LogoCache) Seed(league domain.League, abbr string, img image.Image) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logos[cacheKey(league, abbr)] = img
}

// Logo returns the decoded, resized logo for a team. On load failure it
// returns a transparent placeholder rather than failing the render pass;
// the failure is cached so the disk is not probed on every frame.
func (c *LogoCache) Logo(league domain.League, abbr string) image.Image {
	key := cacheKey(league, abbr)

	c.mu.Lock()
	if img, ok := c.logos[key]; ok {
		c.mu.Unlock()
		return img
	}
	c.mu.Unlock()

	img, err := c.load(league, abbr)
	if err != nil {
		logging.Warn(c.logger, "logo unavailable, using placeholder",
			slog.String(logging.FieldLeague, string(league)),
			slog.String(logging.FieldTeam, abbr),
			"error", err,
		)
		img = c.placeholder
	}

	c.mu.Lock()
	c.logos[key] = img
	c.mu.Unlock()
	return img
}

func cacheKey(league domain.League, abbr string) string {
	return string(league) + "/" + strings.ToUpper(abbr)
}

func (c *LogoCache) load(league domain.League, abbr string) (image.Image, error) {
	dir, ok := c.dirs[league]
	if !ok || dir == "" {
		return nil, errors.Errorf("no logo directory for league %s", league)
	}

	for _, ext := range []string{".png", ".svg"} {
		path := filepath.Join(dir, strings.ToUpper(abbr)+ext)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if ext == ".svg" {
			return c.rasterizeSVG(path)
		}
		return c.loadPNG(path)
	}
	return nil, errors.Errorf("no logo asset for %s in %s", abbr, dir)
}

func (c *LogoCache) loadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open logo %s", path)
	}
	defer f.Close()

	src, err := png.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decode logo %s", path)
	}
	return c.resize(src), nil
}

func (c *LogoCache) rasterizeSVG(path string) (image.Image, error) {
	icon, err := oksvg.ReadIcon(path, oksvg.WarnErrorMode)
	if err != nil {
		return nil, errors.Wrapf(err, "read svg logo %s", path)
	}

	w, h := fit(int(icon.ViewBox.W), int(icon.ViewBox.H), c.maxW, c.maxH)
	icon.SetTarget(0, 0, float64(w), float64(h))

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, dst, dst.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)
	return dst, nil
}

func (c *LogoCache) resize(src image.Image) image.Image {
	sb := src.Bounds()
	w, h := fit(sb.Dx(), sb.Dy(), c.maxW, c.maxH)
	if w == sb.Dx() && h == sb.Dy() {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, sb, xdraw.Over, nil)
	return dst
}

// fit shrinks srcW x srcH to sit inside maxW x maxH preserving aspect
// ratio. Smaller images are kept at their native size.
func fit(srcW, srcH, maxW, maxH int) (int, int) {
	if srcW <= 0 || srcH <= 0 {
		return maxW, maxH
	}
	if srcW <= maxW && srcH <= maxH {
		return srcW, srcH
	}
	scaleW := float64(maxW) / float64(srcW)
	scaleH := float64(maxH) / float64(srcH)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	w := int(float64(srcW) * scale)
	h := int(float64(srcH) * scale)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}
