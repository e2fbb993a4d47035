// pkg/render/engo/assets.go
package engo

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/opd-ai/go-lander/pkg/entity"
)

// fontURL is the name the bundled monospace font is registered under.
// The seven segment face of the instrument panel is not shipped, so every
// text format falls back to it.
const fontURL = "gomono.ttf"

// Sprite patterns, one string per pixel row. '#' is opaque, anything else
// transparent. Sprites are white and tinted or scaled at draw time.
var spritePatterns = map[entity.ImageID][]string{
	entity.ImageRocket: {
		"....##....",
		"...####...",
		"...####...",
		"..######..",
		"..######..",
		"..######..",
		"..######..",
		"..######..",
		"..######..",
		"..######..",
		"..######..",
		".########.",
		"##########",
		"##......##",
		"#........#",
	},
	entity.ImageTrail: {
		"########",
		".######.",
		".######.",
		"..####..",
		"..####..",
		"...##...",
		"...##...",
	},
	entity.ImageArrow: {
		"....#...",
		"....##..",
		"#######.",
		"########",
		"#######.",
		"....##..",
		"....#...",
	},
}

type fontKey struct {
	size float64
	rgba color.RGBA
}

// AssetManager owns the textures and fonts drawn by the engo renderer.
// LoadAssets needs a GL context; until it has run every lookup returns nil.
type AssetManager struct {
	sprites    map[entity.ImageID]common.Drawable
	fonts      map[fontKey]*common.Font
	fontLoaded bool
}

// NewAssetManager creates a new asset manager
func NewAssetManager() *AssetManager {
	return &AssetManager{
		sprites: make(map[entity.ImageID]common.Drawable),
		fonts:   make(map[fontKey]*common.Font),
	}
}

// LoadAssets builds the sprite textures and registers the font.
func (am *AssetManager) LoadAssets() error {
	for id, pattern := range spritePatterns {
		img, err := patternImage(pattern)
		if err != nil {
			return fmt.Errorf("sprite %s: %w", id, err)
		}
		am.sprites[id] = common.NewTextureSingle(common.NewImageObject(img))
	}

	if err := engo.Files.LoadReaderData(fontURL, bytes.NewReader(gomono.TTF)); err != nil {
		return fmt.Errorf("load font: %w", err)
	}
	am.fontLoaded = true
	return nil
}

// patternImage converts a sprite pattern into an NRGBA image.
func patternImage(pattern []string) (*image.NRGBA, error) {
	if len(pattern) == 0 {
		return nil, fmt.Errorf("empty pattern")
	}
	width := len(pattern[0])
	img := image.NewNRGBA(image.Rect(0, 0, width, len(pattern)))
	for y, row := range pattern {
		if len(row) != width {
			return nil, fmt.Errorf("row %d has width %d, want %d", y, len(row), width)
		}
		for x, px := range row {
			if px == '#' {
				img.Set(x, y, color.NRGBA{255, 255, 255, 255})
			}
		}
	}
	return img, nil
}

// Sprite returns the texture for id, or nil when it is unknown or not loaded.
func (am *AssetManager) Sprite(id entity.ImageID) common.Drawable {
	return am.sprites[id]
}

// Font returns a font for the given format and color, creating it on first
// use. It returns nil before LoadAssets.
func (am *AssetManager) Font(format entity.TextFormat, c color.Color) *common.Font {
	if !am.fontLoaded {
		return nil
	}
	key := fontKey{size: format.Size, rgba: toRGBA(c)}
	if f, ok := am.fonts[key]; ok {
		return f
	}

	f := &common.Font{
		URL:  fontURL,
		FG:   key.rgba,
		Size: format.Size,
	}
	if err := f.CreatePreloaded(); err != nil {
		return nil
	}
	am.fonts[key] = f
	return f
}

func toRGBA(c color.Color) color.RGBA {
	if c == nil {
		return color.RGBA{255, 255, 255, 255}
	}
	r, g, b, a := c.RGBA()
	return color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}
