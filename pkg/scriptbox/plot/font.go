package plot

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	fontsOnce sync.Once
	regular   *truetype.Font
	bold      *truetype.Font
	fontsErr  error
)

func loadFonts() error {
	fontsOnce.Do(func() {
		regular, fontsErr = truetype.Parse(goregular.TTF)
		if fontsErr != nil {
			fontsErr = fmt.Errorf("failed to parse regular TTF: %w", fontsErr)
			return
		}
		bold, fontsErr = truetype.Parse(gobold.TTF)
		if fontsErr != nil {
			fontsErr = fmt.Errorf("failed to parse bold TTF: %w", fontsErr)
		}
	})
	return fontsErr
}

func face(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}
