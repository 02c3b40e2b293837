package posekit

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/gogpu/gg"
	xdraw "golang.org/x/image/draw"
)

// RasterizeMask renders a mask at w×h: background, then base (resized to
// fit when its size differs), then every stroke in order. Strokes are
// quadratic-smoothed polylines with round caps and joins. A single-point
// stroke becomes a dot of the pen diameter.
func RasterizeMask(w, h int, base image.Image, strokes []Stroke, pen, eraser Color) (*image.RGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, ErrInvalidDimension
	}
	dc := gg.NewContext(w, h)
	defer dc.Close()

	dc.ClearWithColor(ggColor(eraser))

	if base != nil {
		b := base.Bounds()
		if b.Dx() != w || b.Dy() != h {
			base = imaging.Resize(base, w, h, imaging.Lanczos)
		}
		dc.DrawImageEx(gg.ImageBufFromImage(base), gg.DrawImageOptions{
			DstWidth:      float64(w),
			DstHeight:     float64(h),
			Interpolation: gg.InterpNearest,
		})
	}

	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)
	for i := range strokes {
		s := &strokes[i]
		if err := s.Validate(); err != nil {
			Logger().Warn("skipping stroke", "index", i, "err", err)
			continue
		}
		c := pen
		if s.Tool == ToolEraser {
			c = eraser
		}
		dc.SetColor(c.RGBA())
		if err := rasterStroke(dc, s); err != nil {
			return nil, fmt.Errorf("rasterize stroke %d: %w", i, err)
		}
	}

	src := dc.Image()
	if img, ok := src.(*image.RGBA); ok {
		return img, nil
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.Draw(img, img.Bounds(), src, src.Bounds().Min, xdraw.Src)
	return img, nil
}

func rasterStroke(dc *gg.Context, s *Stroke) error {
	n := s.Len()
	if n == 1 {
		p := s.Point(0)
		dc.DrawCircle(p.X, p.Y, float64(s.PenWidth)/2)
		return dc.Fill()
	}

	dc.SetLineWidth(float64(s.PenWidth))
	p0 := s.Point(0)
	dc.MoveTo(p0.X, p0.Y)
	for i := 1; i < n-1; i++ {
		cur, next := s.Point(i), s.Point(i+1)
		dc.QuadraticTo(cur.X, cur.Y, (cur.X+next.X)/2, (cur.Y+next.Y)/2)
	}
	last := s.Point(n - 1)
	dc.LineTo(last.X, last.Y)
	return dc.Stroke()
}

// ggColor converts a Color into gg's straight-alpha RGBA.
func ggColor(c Color) gg.RGBA {
	return gg.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}
