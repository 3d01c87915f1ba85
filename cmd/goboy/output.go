package main

import (
	"image"
	"io"
	"os"
	"time"

	"github.com/thelolagemann/gbcore/internal/gameboy"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// scaleFrame converts frame into an image scale times its size,
// keeping the pixels sharp.
func scaleFrame(frame *gameboy.Frame, scale int) image.Image {
	img := frame.Image()
	if scale <= 1 {
		return img
	}

	b := img.Bounds()
	scaled := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), img, b, draw.Src, nil)
	return scaled
}

func encodeScreenshot(w io.Writer, frame *gameboy.Frame, scale int) error {
	return bmp.Encode(w, scaleFrame(frame, scale))
}

func writeScreenshot(path string, frame *gameboy.Frame, scale int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encodeScreenshot(f, frame, scale); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// frameTimePlot plots the time taken by each frame in milliseconds.
func frameTimePlot(times []time.Duration) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Frame Time"
	p.X.Label.Text = "Frame"
	p.Y.Label.Text = "ms"

	points := make(plotter.XYs, len(times))
	for i, t := range times {
		points[i].X = float64(i)
		points[i].Y = float64(t.Microseconds()) / 1000
	}

	line, err := plotter.NewLine(points)
	if err != nil {
		return nil, err
	}
	p.Add(line)

	// reference line at the real hardware frame time
	target := 1000 / gameboy.FrameRate
	limit, err := plotter.NewLine(plotter.XYs{{X: 0, Y: target}, {X: float64(len(times)), Y: target}})
	if err != nil {
		return nil, err
	}
	limit.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	p.Add(limit)

	return p, nil
}

// plotFrameTimes saves the frame time plot to path. The format is
// taken from the file extension.
func plotFrameTimes(path string, times []time.Duration) error {
	p, err := frameTimePlot(times)
	if err != nil {
		return err
	}
	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}
