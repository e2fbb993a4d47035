package entity

import (
	"image/color"

	"github.com/opd-ai/go-lander/pkg/physics"
)

// ImageID names a sprite known to every renderer.
type ImageID string

// Sprites.
const (
	ImageRocket ImageID = "rocket"
	ImageTrail  ImageID = "rocket_trail"
	ImageArrow  ImageID = "arrow"
)

// TextFormat describes a font face.
type TextFormat struct {
	Font string
	Size float64
}

// Palette.
var (
	ColorTerrain    = color.RGBA{R: 139, G: 90, B: 43, A: 255}
	ColorPlatform   = color.RGBA{R: 169, G: 169, B: 169, A: 255}
	ColorLanding    = color.RGBA{R: 50, G: 205, B: 50, A: 255}
	ColorText       = color.RGBA{R: 250, G: 250, B: 210, A: 255}
	ColorInstrument = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	ColorSpin       = color.RGBA{R: 0, G: 191, B: 255, A: 255}
	ColorAttitude   = color.RGBA{R: 144, G: 238, B: 144, A: 255}
)

// Renderer receives draw calls from entities. Coordinates are in world
// space for ordinary objects and screen space for ScreenSpace objects.
type Renderer interface {
	// DrawImage draws a sprite into dest rotated by rotation degrees around pivot.
	DrawImage(image ImageID, dest physics.Rect, rotation float64, pivot physics.Vector2D)
	DrawLine(from, to physics.Vector2D, c color.Color, width float64)
	DrawRectangle(rect physics.Rect, c color.Color, width float64)
	FillRectangle(rect physics.Rect, c color.Color)
	// DrawArc sweeps from start around center by sweep degrees.
	DrawArc(start, center physics.Vector2D, sweep float64, c color.Color, width float64)
	DrawEllipse(center physics.Vector2D, radiusX, radiusY float64, c color.Color)
	DrawText(text string, format TextFormat, dest physics.Rect, c color.Color)
	CreateTextFormat(font string, size float64) TextFormat
	Size() physics.Size
}
