package assets

import (
	"log/slog"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/ChuckBuilds/ledmatrix-basketball-scoreboard/internal/logging"
)

// FontSpec names one TTF asset and the pixel size to rasterize it at.
type FontSpec struct {
	Path string
	Size float64
}

// Fonts holds the two faces used by the scorebug: the larger score face
// and the smaller period/clock face.
type Fonts struct {
	Score font.Face
	Time  font.Face
}

// LoadFonts loads both scorebug faces. A face that cannot be loaded falls
// back to the built-in 7x13 bitmap face so rendering always has a glyph
// source.
func LoadFonts(score, time FontSpec, logger *slog.Logger) Fonts {
	return Fonts{
		Score: loadFace(score, logger),
		Time:  loadFace(time, logger),
	}
}

func loadFace(spec FontSpec, logger *slog.Logger) font.Face {
	data, err := os.ReadFile(spec.Path)
	if err != nil {
		logging.Warn(logger, "font not found, using built-in face",
			slog.String(logging.FieldPath, spec.Path), "error", err)
		return basicfont.Face7x13
	}
	parsed, err := truetype.Parse(data)
	if err != nil {
		logging.Warn(logger, "font unreadable, using built-in face",
			slog.String(logging.FieldPath, spec.Path), "error", err)
		return basicfont.Face7x13
	}
	return truetype.NewFace(parsed, &truetype.Options{Size: spec.Size})
}
