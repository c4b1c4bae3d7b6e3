// Package render draws one game onto a destination pixel surface using a
// fixed scorebug layout: team logos at the edges, period/clock centered at
// the top, and the score centered mid-frame. All text carries a one-pixel
// black outline to stay legible against arbitrary logo colors.
package render

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/ChuckBuilds/ledmatrix-basketball-scoreboard/internal/assets"
	"github.com/ChuckBuilds/ledmatrix-basketball-scoreboard/internal/domain"
)

// Logo overhang past the frame edge, matching the original scorebug
// layout where oversized logos bleed off both sides.
const logoOverhang = 10

var (
	textFill    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	textOutline = color.RGBA{A: 255}
	background  = color.RGBA{A: 255}
	noGamesGrey = color.RGBA{R: 150, G: 150, B: 150, A: 255}
)

// outlineOffsets are the eight neighbor positions the outline is stamped
// at before the fill is drawn on top.
var outlineOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Renderer lays out one game on a pixel surface. It performs no network
// or file access; logos and fonts are resolved before drawing.
type Renderer struct {
	fonts assets.Fonts
	logos *assets.LogoCache
}

// New constructs a Renderer around preloaded fonts and a logo cache.
func New(fonts assets.Fonts, logos *assets.LogoCache) *Renderer {
	return &Renderer{fonts: fonts, logos: logos}
}

// Draw renders the game onto dst. The only observable effect is pixel
// mutation of dst; drawing the same game twice produces identical output.
func (r *Renderer) Draw(dst draw.Image, game domain.Game) {
	bounds := dst.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	draw.Draw(dst, bounds, image.NewUniform(background), image.Point{}, draw.Src)

	r.drawLogos(dst, game, w, h)

	status := game.StatusLine()
	statusX := (w - r.textWidth(r.fonts.Time, status)) / 2
	r.drawOutlinedText(dst, status, statusX, 1, r.fonts.Time)

	scoreText := game.AwayScore.String() + "-" + game.HomeScore.String()
	scoreX := (w - r.textWidth(r.fonts.Score, scoreText)) / 2
	r.drawOutlinedText(dst, scoreText, scoreX, h/2-3, r.fonts.Score)
}

// DrawNoGames renders the idle frame shown when no game is eligible.
func (r *Renderer) DrawNoGames(dst draw.Image) {
	bounds := dst.Bounds()
	draw.Draw(dst, bounds, image.NewUniform(background), image.Point{}, draw.Src)

	const msg = "No Games"
	x := (bounds.Dx() - r.textWidth(r.fonts.Time, msg)) / 2
	y := bounds.Dy()/2 - r.fonts.Time.Metrics().Ascent.Ceil()/2
	r.drawText(dst, msg, x, y, r.fonts.Time, noGamesGrey)
}

func (r *Renderer) drawLogos(dst draw.Image, game domain.Game, w, h int) {
	centerY := h / 2

	away := r.logos.Logo(game.League, game.AwayTeam.Abbreviation)
	awayBounds := away.Bounds()
	awayPos := image.Pt(-logoOverhang, centerY-awayBounds.Dy()/2)
	draw.Draw(dst, awayBounds.Sub(awayBounds.Min).Add(awayPos), away, awayBounds.Min, draw.Over)

	home := r.logos.Logo(game.League, game.HomeTeam.Abbreviation)
	homeBounds := home.Bounds()
	homePos := image.Pt(w-homeBounds.Dx()+logoOverhang, centerY-homeBounds.Dy()/2)
	draw.Draw(dst, homeBounds.Sub(homeBounds.Min).Add(homePos), home, homeBounds.Min, draw.Over)
}

// drawOutlinedText stamps the outline color at the eight neighbor offsets
// first, then the fill on top. x,y address the glyph box top-left.
func (r *Renderer) drawOutlinedText(dst draw.Image, text string, x, y int, face font.Face) {
	for _, off := range outlineOffsets {
		r.drawText(dst, text, x+off[0], y+off[1], face, textOutline)
	}
	r.drawText(dst, text, x, y, face, textFill)
}

func (r *Renderer) drawText(dst draw.Image, text string, x, y int, face font.Face, col color.Color) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)
}

func (r *Renderer) textWidth(face font.Face, text string) int {
	return font.MeasureString(face, text).Ceil()
}
