package main

import (
	"github.com/retro8/chip8/chip8"
	"github.com/veandco/go-sdl2/sdl"
)

var (
	// Screen is the render target the VM display is drawn to at its
	// native 64x32 size before being stretched to the window.
	Screen *sdl.Texture
)

// colors for unlit and lit pixels
var (
	backColor  = sdl.Color{R: 17, G: 29, B: 43, A: 255}
	pixelColor = sdl.Color{R: 143, G: 145, B: 133, A: 255}
)

// InitScreen creates the render target for the CHIP-8 display.
func InitScreen() error {
	var err error

	Screen, err = Renderer.CreateTexture(
		sdl.PIXELFORMAT_RGBA8888,
		sdl.TEXTUREACCESS_TARGET,
		chip8.DisplayWidth,
		chip8.DisplayHeight,
	)

	return err
}

// Refresh redraws the window when the VM display changed since the
// last frame.
func Refresh() {
	if !VM.DisplayDirty() {
		return
	}

	RefreshScreen()
	VM.ClearDirty()

	// stretch the native-size target over the whole window
	Renderer.Copy(Screen, nil, nil)
	Renderer.Present()
}

// RefreshScreen redraws the render target from the VM display buffer.
func RefreshScreen() {
	Renderer.SetRenderTarget(Screen)

	Renderer.SetDrawColor(backColor.R, backColor.G, backColor.B, backColor.A)
	Renderer.Clear()

	// draw the lit pixels
	Renderer.SetDrawColor(pixelColor.R, pixelColor.G, pixelColor.B, pixelColor.A)

	for y := 0; y < chip8.DisplayHeight; y++ {
		for x := 0; x < chip8.DisplayWidth; x++ {
			if VM.Display[y*chip8.DisplayWidth+x] != 0 {
				Renderer.DrawPoint(int32(x), int32(y))
			}
		}
	}

	// restore the render target
	Renderer.SetRenderTarget(nil)
}
