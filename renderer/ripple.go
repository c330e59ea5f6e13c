// Package renderer draws the ripple surface with raylib.
package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/ripples/palette"
)

// FieldSource is the read side of the ripple engine used for drawing.
type FieldSource interface {
	Size() int
	ForEachCell(fn func(x, y int, height, velocityMagnitude float32))
}

// RippleRenderer uploads the height field into a grid-sized texture each frame
// and stretches it over the screen.
type RippleRenderer struct {
	tex     rl.Texture2D
	size    int
	pixels  []color.RGBA
	palette palette.Palette

	screenW, screenH float32
	initialized      bool
}

// NewRippleRenderer creates a renderer for a screenW×screenH window.
func NewRippleRenderer(screenW, screenH int32) *RippleRenderer {
	return &RippleRenderer{
		screenW: float32(screenW),
		screenH: float32(screenH),
	}
}

// Init creates the texture (must be called after the raylib window is created).
func (r *RippleRenderer) Init(size int) {
	if r.initialized {
		return
	}
	r.size = size
	r.pixels = make([]color.RGBA, size*size)

	img := rl.GenImageColor(size, size, rl.Black)
	r.tex = rl.LoadTextureFromImage(img)
	rl.SetTextureFilter(r.tex, rl.FilterBilinear)
	rl.SetTextureWrap(r.tex, rl.WrapClamp)
	rl.UnloadImage(img)

	r.initialized = true
}

// SetPalette changes the color mapping used by subsequent updates.
func (r *RippleRenderer) SetPalette(p palette.Palette) {
	r.palette = p
}

// Palette returns the active color mapping.
func (r *RippleRenderer) Palette() palette.Palette {
	return r.palette
}

// Resize updates screen dimensions.
func (r *RippleRenderer) Resize(w, h float32) {
	r.screenW = w
	r.screenH = h
}

// Update shades every cell of src and uploads the result to the GPU.
func (r *RippleRenderer) Update(src FieldSource) {
	if !r.initialized {
		r.Init(src.Size())
	}
	if src.Size() != r.size {
		return
	}
	fill(r.pixels, r.size, r.palette, src)
	rl.UpdateTexture(r.tex, r.pixels)
}

// fill writes one shaded pixel per cell into pixels.
func fill(pixels []color.RGBA, size int, p palette.Palette, src FieldSource) {
	src.ForEachCell(func(x, y int, h, v float32) {
		pixels[y*size+x] = p.Shade(h, v)
	})
}

// Draw stretches the surface texture over the whole screen.
func (r *RippleRenderer) Draw() {
	if !r.initialized {
		return
	}
	srcRect := rl.Rectangle{X: 0, Y: 0, Width: float32(r.size), Height: float32(r.size)}
	dstRect := rl.Rectangle{X: 0, Y: 0, Width: r.screenW, Height: r.screenH}
	rl.DrawTexturePro(r.tex, srcRect, dstRect, rl.Vector2{}, 0, rl.White)
}

// Unload frees GPU resources.
func (r *RippleRenderer) Unload() {
	if !r.initialized {
		return
	}
	rl.UnloadTexture(r.tex)
	r.initialized = false
}
