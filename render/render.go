// Package render draws debug overlays for visual inspection of an analyzed
// page: every question's member regions outlined in the question's color,
// anchors labeled with the question number, and unassigned regions in gray.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/tsawler/ordina/model"
)

// Config holds overlay drawing options
type Config struct {
	// Palette is cycled per question in reading order
	Palette []color.RGBA

	// UnassignedColor outlines regions no question claimed
	UnassignedColor color.RGBA

	// LineWidth is the outline thickness in pixels
	LineWidth int

	// Labels draws the question number next to each anchor
	Labels bool
}

// DefaultConfig returns sensible drawing defaults
func DefaultConfig() Config {
	return Config{
		Palette: []color.RGBA{
			{R: 204, G: 0, B: 0, A: 255},
			{R: 0, G: 102, B: 204, A: 255},
			{R: 0, G: 153, B: 51, A: 255},
			{R: 204, G: 102, B: 0, A: 255},
			{R: 102, G: 0, B: 204, A: 255},
		},
		UnassignedColor: color.RGBA{R: 128, G: 128, B: 128, A: 255},
		LineWidth:       2,
		Labels:          true,
	}
}

// Renderer draws structured-document overlays
type Renderer struct {
	config Config
}

// New creates a renderer with default configuration
func New() *Renderer {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a renderer with custom configuration
func NewWithConfig(config Config) *Renderer {
	return &Renderer{config: config}
}

// Overlay draws the document's groups over base and returns the annotated
// copy. With a nil base, a white canvas of the page size is used.
func (r *Renderer) Overlay(base image.Image, page model.Page, doc *model.StructuredDocument) *image.RGBA {
	var canvas *image.RGBA
	if base != nil {
		canvas = image.NewRGBA(base.Bounds())
		draw.Draw(canvas, canvas.Bounds(), base, base.Bounds().Min, draw.Src)
	} else {
		canvas = image.NewRGBA(image.Rect(0, 0, int(page.Width), int(page.Height)))
		draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)
	}

	for i, q := range doc.Questions {
		c := r.questionColor(i)

		r.outline(canvas, q.Boundary.BBox, c)
		for _, category := range q.Categories.Categories() {
			for _, member := range q.Categories.Get(category) {
				r.outline(canvas, member.Region.BBox, c)
			}
		}
		for _, sub := range q.SubQuestions {
			r.outline(canvas, sub.Boundary.BBox, c)
		}

		if r.config.Labels {
			r.label(canvas, q.Boundary.BBox, "Q"+q.Number, c)
		}
	}

	for _, region := range doc.Unassigned {
		r.outline(canvas, region.BBox, r.config.UnassignedColor)
	}

	return canvas
}

// WritePNG encodes an annotated canvas as PNG
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding overlay: %w", err)
	}
	return nil
}

func (r *Renderer) questionColor(i int) color.RGBA {
	if len(r.config.Palette) == 0 {
		return color.RGBA{R: 204, A: 255}
	}
	return r.config.Palette[i%len(r.config.Palette)]
}

// outline draws a rectangle border of the configured width. Boxes partially
// outside the canvas are clipped by the image setter.
func (r *Renderer) outline(canvas *image.RGBA, box model.BBox, c color.RGBA) {
	if !box.IsValid() {
		return
	}

	x0, y0 := int(box.X), int(box.Y)
	x1, y1 := int(box.X+box.Width), int(box.Y+box.Height)
	width := r.config.LineWidth
	if width < 1 {
		width = 1
	}

	for t := 0; t < width; t++ {
		for x := x0; x <= x1; x++ {
			canvas.Set(x, y0+t, c)
			canvas.Set(x, y1-t, c)
		}
		for y := y0; y <= y1; y++ {
			canvas.Set(x0+t, y, c)
			canvas.Set(x1-t, y, c)
		}
	}
}

// label draws text just above the box's top-left corner, inside the box when
// there is no room above.
func (r *Renderer) label(canvas *image.RGBA, box model.BBox, text string, c color.RGBA) {
	face := basicfont.Face7x13

	x := int(box.X)
	y := int(box.Y) - 3
	if y-face.Ascent < canvas.Bounds().Min.Y {
		y = int(box.Y) + face.Ascent + 3
	}

	drawer := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	drawer.DrawString(text)
}
