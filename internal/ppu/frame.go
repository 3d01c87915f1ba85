package ppu

import (
	"image"
	"image/color"
)

// Frame is a complete picture, as RGB triplets indexed by
// line and then column.
type Frame [ScreenHeight][ScreenWidth][3]uint8

// Image converts the frame into an *image.RGBA.
func (f *Frame) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, ScreenWidth, ScreenHeight))
	for y := 0; y < ScreenHeight; y++ {
		for x := 0; x < ScreenWidth; x++ {
			img.SetRGBA(x, y, color.RGBA{R: f[y][x][0], G: f[y][x][1], B: f[y][x][2], A: 0xFF})
		}
	}
	return img
}

// Bytes returns the frame as a flat slice of RGB triplets.
func (f *Frame) Bytes() []byte {
	b := make([]byte, 0, ScreenWidth*ScreenHeight*3)
	for y := range f {
		for x := range f[y] {
			b = append(b, f[y][x][:]...)
		}
	}
	return b
}

// publish makes the frame that has just been drawn visible
// through Frame.
func (p *PPU) publish() {
	p.front = p.back
	p.frames++
}

// clearFrame blanks the screen, as happens when the LCD is
// turned off.
func (p *PPU) clearFrame() {
	white := [3]uint8{0xFF, 0xFF, 0xFF}
	for y := range p.back {
		for x := range p.back[y] {
			p.back[y][x] = white
		}
	}
	p.front = p.back
}

// Frame returns the last published frame. It must be copied
// before the PPU is advanced again.
func (p *PPU) Frame() *Frame {
	return &p.front
}

// Frames returns the number of frames that have been published.
func (p *PPU) Frames() uint64 {
	return p.frames
}
