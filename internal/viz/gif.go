package viz

import (
	"image"
	"image/color"
	"image/gif"
	"os"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/diffsim/internal/export"
	"github.com/san-kum/diffsim/internal/field"
	"github.com/san-kum/diffsim/internal/pde"
)

const (
	profileWidth  = 80
	profileHeight = 24
	charW, charH  = 8, 16
)

// GIFOptions controls SaveGIF. Zero values pick the defaults.
type GIFOptions struct {
	Stride int // keep every Stride-th frame, default 1
	Scale  int // pixels per heatmap cell, default 4
	Delay  int // hundredths of a second per frame, default 10
}

func (o GIFOptions) withDefaults() GIFOptions {
	if o.Stride < 1 {
		o.Stride = 1
	}
	if o.Scale < 1 {
		o.Scale = 4
	}
	if o.Delay < 1 {
		o.Delay = 10
	}
	return o
}

func heatPalette() color.Palette {
	p := make(color.Palette, 256)
	for i := range p {
		r, g, b := export.HeatColor(float64(i) / 255)
		p[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return p
}

// SaveGIF animates f frame by frame and writes it to path.
func SaveGIF(f *field.Field, path string, opts GIFOptions) error {
	if f == nil {
		return pde.Statef("viz.SaveGIF", "field must be set")
	}
	opts = opts.withDefaults()
	palette := heatPalette()

	all := f.Array().Elements
	lo, hi := floats.Min(all), floats.Max(all)

	canvas := NewCanvas(profileWidth, profileHeight)
	anim := gif.GIF{LoopCount: 0}
	for n := 0; n < f.Steps(); n += opts.Stride {
		var frame *image.Paletted
		if f.Dim() == 1 {
			frame = profileFrame(canvas, f.Slice(n), lo, hi, palette)
		} else {
			plane, nx, ny := export.Plane(f, n)
			frame = heatmapFrame(plane, nx, ny, lo, hi, opts.Scale, palette)
		}
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, opts.Delay)
	}

	return export.WriteAtomic(path, func(out *os.File) error {
		return gif.EncodeAll(out, &anim)
	})
}

func heatmapFrame(plane []float64, nx, ny int, lo, hi float64, scale int, palette color.Palette) *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, nx*scale, ny*scale), palette)
	span := hi - lo
	if span == 0 {
		span = 1
	}
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			u := (plane[j*nx+i] - lo) / span
			idx := uint8(0)
			if u > 0 {
				idx = uint8(min(u, 1)*255 + 0.5)
			}
			for py := 0; py < scale; py++ {
				for px := 0; px < scale; px++ {
					img.SetColorIndex(i*scale+px, j*scale+py, idx)
				}
			}
		}
	}
	return img
}

// profileFrame plots a 1-D slice on a braille canvas and rasterizes it.
func profileFrame(c *Canvas, values []float64, lo, hi float64, palette color.Palette) *image.Paletted {
	c.Reset()
	c.Plot(values, lo, hi)

	img := image.NewPaletted(image.Rect(0, 0, c.Cols*charW, c.Rows*charH), palette)
	dotW, dotH := charW/2, charH/4
	for y := 0; y < c.DotsHigh(); y++ {
		for x := 0; x < c.DotsWide(); x++ {
			if !c.On(x, y) {
				continue
			}
			for py := 0; py < dotH; py++ {
				for px := 0; px < dotW; px++ {
					img.SetColorIndex(x*dotW+px, y*dotH+py, 255)
				}
			}
		}
	}
	return img
}
