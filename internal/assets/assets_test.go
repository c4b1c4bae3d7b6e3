package assets

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/font/basicfont"

	"github.com/ChuckBuilds/ledmatrix-basketball-scoreboard/internal/domain"
	"github.com/ChuckBuilds/ledmatrix-basketball-scoreboard/internal/testutil"
)

func TestLoadFontsFallsBack(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()

	fonts := LoadFonts(
		FontSpec{Path: filepath.Join(t.TempDir(), "missing.ttf"), Size: 10},
		FontSpec{Path: filepath.Join(t.TempDir(), "missing.ttf"), Size: 8},
		logger,
	)

	if fonts.Score != basicfont.Face7x13 || fonts.Time != basicfont.Face7x13 {
		t.Fatal("expected built-in fallback faces for missing fonts")
	}
	if !strings.Contains(buf.String(), "font not found") {
		t.Fatalf("expected fallback to be logged, got %q", buf.String())
	}
}

func TestLoadFontsRejectsGarbage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.ttf")
	if err := os.WriteFile(path, []byte("not a font"), 0o644); err != nil {
		t.Fatalf("write font: %v", err)
	}

	logger, _ := testutil.NewBufferLogger()
	fonts := LoadFonts(FontSpec{Path: path, Size: 10}, FontSpec{Path: path, Size: 8}, logger)
	if fonts.Score != basicfont.Face7x13 {
		t.Fatal("expected fallback face for unparseable font")
	}
}

func writeLogoPNG(t *testing.T, dir, abbr string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	f, err := os.Create(filepath.Join(dir, abbr+".png"))
	if err != nil {
		t.Fatalf("create logo: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode logo: %v", err)
	}
}

func TestLogoLoadsAndResizes(t *testing.T) {
	dir := t.TempDir()
	writeLogoPNG(t, dir, "BOS", 200, 100)

	cache := NewLogoCache(48, 48, map[domain.League]string{domain.LeagueNBA: dir}, nil)
	logo := cache.Logo(domain.LeagueNBA, "bos")

	b := logo.Bounds()
	if b.Dx() != 48 || b.Dy() != 24 {
		t.Fatalf("expected 48x24 resized logo, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestLogoKeepsSmallImagesNative(t *testing.T) {
	dir := t.TempDir()
	writeLogoPNG(t, dir, "LAL", 20, 20)

	cache := NewLogoCache(48, 48, map[domain.League]string{domain.LeagueNBA: dir}, nil)
	logo := cache.Logo(domain.LeagueNBA, "LAL")

	b := logo.Bounds()
	if b.Dx() != 20 || b.Dy() != 20 {
		t.Fatalf("expected native 20x20 logo, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestLogoMissingAssetUsesPlaceholder(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	cache := NewLogoCache(48, 48, map[domain.League]string{domain.LeagueNBA: t.TempDir()}, logger)

	logo := cache.Logo(domain.LeagueNBA, "XXX")
	if logo == nil {
		t.Fatal("expected placeholder, got nil")
	}
	if !strings.Contains(buf.String(), "logo unavailable") {
		t.Fatalf("expected warning, got %q", buf.String())
	}

	// Second lookup must come from cache, not re-log.
	buf.Reset()
	cache.Logo(domain.LeagueNBA, "XXX")
	if buf.Len() != 0 {
		t.Fatal("expected cached failure, got another warning")
	}
}

func TestLogoCacheReusesDecodedImage(t *testing.T) {
	dir := t.TempDir()
	writeLogoPNG(t, dir, "MIA", 20, 20)

	cache := NewLogoCache(48, 48, map[domain.League]string{domain.LeagueNBA: dir}, nil)
	first := cache.Logo(domain.LeagueNBA, "MIA")

	// Remove the asset; the cached image must still be served.
	if err := os.Remove(filepath.Join(dir, "MIA.png")); err != nil {
		t.Fatalf("remove logo: %v", err)
	}
	second := cache.Logo(domain.LeagueNBA, "MIA")
	if first != second {
		t.Fatal("expected the same cached image instance")
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		name         string
		srcW, srcH   int
		maxW, maxH   int
		wantW, wantH int
	}{
		{name: "wide shrinks to width", srcW: 200, srcH: 100, maxW: 48, maxH: 48, wantW: 48, wantH: 24},
		{name: "tall shrinks to height", srcW: 100, srcH: 200, maxW: 48, maxH: 48, wantW: 24, wantH: 48},
		{name: "small stays native", srcW: 10, srcH: 10, maxW: 48, maxH: 48, wantW: 10, wantH: 10},
		{name: "degenerate source", srcW: 0, srcH: 0, maxW: 48, maxH: 48, wantW: 48, wantH: 48},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, h := fit(tc.srcW, tc.srcH, tc.maxW, tc.maxH)
			if w != tc.wantW || h != tc.wantH {
				t.Fatalf("expected %dx%d, got %dx%d", tc.wantW, tc.wantH, w, h)
			}
		})
	}
}
