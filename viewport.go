package posekit

// ComputeFitRatio returns the uniform scale factor that fits a source raster
// of size (oW, oH) inside a display area of size (canvasW, canvasH). The
// result never exceeds 1: a source smaller than the canvas in both
// dimensions is shown at its natural size.
//
// A zero or negative source dimension means the image has not loaded yet.
// The neutral ratio 1 is returned together with ErrInvalidDimension.
func ComputeFitRatio(canvasW, canvasH, oW, oH float64) (float64, error) {
	if oW <= 0 || oH <= 0 {
		return 1, ErrInvalidDimension
	}
	if canvasW >= oW && canvasH >= oH {
		return 1, nil
	}
	if canvasW <= 0 || canvasH <= 0 {
		return 1, ErrInvalidDimension
	}

	// The limiting dimension is the one the source is relatively larger in,
	// measured against the canvas's own aspect.
	var ratio float64
	srcAspect := oW / oH
	canvasAspect := canvasW / canvasH
	switch {
	case srcAspect > canvasAspect:
		// Source is wider than the canvas: width limits.
		ratio = canvasW / oW
	case srcAspect < canvasAspect:
		// Source is taller than the canvas: height limits.
		ratio = canvasH / oH
	default:
		ratio = min(canvasW/oW, canvasH/oH)
	}
	return min(ratio, 1), nil
}

// ToDisplay maps an image-space point into display space.
func ToDisplay(p Point, ratio, offsetX, offsetY float64) Point {
	return Point{X: p.X*ratio + offsetX, Y: p.Y*ratio + offsetY}
}

// ToSource maps a display-space point back into image space. It is the exact
// inverse of ToDisplay for ratio > 0.
func ToSource(p Point, ratio, offsetX, offsetY float64) Point {
	return Point{X: (p.X - offsetX) / ratio, Y: (p.Y - offsetY) / ratio}
}

// Viewport places an image inside a display area: a uniform scale followed by
// a centering offset.
type Viewport struct {
	Ratio   float64
	OffsetX float64
	OffsetY float64

	// ImageWidth and ImageHeight are the natural size of the fitted image.
	ImageWidth  float64
	ImageHeight float64
}

// IdentityViewport maps display space onto itself.
var IdentityViewport = Viewport{Ratio: 1}

// FitViewport fits an image of natural size (imgW, imgH) into a canvas of
// size (canvasW, canvasH) and centers it on both axes.
func FitViewport(canvasW, canvasH, imgW, imgH float64) (Viewport, error) {
	ratio, err := ComputeFitRatio(canvasW, canvasH, imgW, imgH)
	if err != nil {
		return Viewport{Ratio: 1, ImageWidth: imgW, ImageHeight: imgH}, err
	}
	return Viewport{
		Ratio:       ratio,
		OffsetX:     (canvasW - imgW*ratio) / 2,
		OffsetY:     (canvasH - imgH*ratio) / 2,
		ImageWidth:  imgW,
		ImageHeight: imgH,
	}, nil
}

// ToDisplay maps an image-space point into display space.
func (v Viewport) ToDisplay(p Point) Point {
	return ToDisplay(p, v.ratio(), v.OffsetX, v.OffsetY)
}

// ToSource maps a display-space point into image space.
func (v Viewport) ToSource(p Point) Point {
	return ToSource(p, v.ratio(), v.OffsetX, v.OffsetY)
}

// ImageRect returns the image's own pixel rectangle in image space.
func (v Viewport) ImageRect() Rect {
	return Rect{Width: v.ImageWidth, Height: v.ImageHeight}
}

// DisplayRect returns where the image lands in display space.
func (v Viewport) DisplayRect() Rect {
	r := v.ratio()
	return Rect{X: v.OffsetX, Y: v.OffsetY, Width: v.ImageWidth * r, Height: v.ImageHeight * r}
}

// Matrix returns the image→display affine matrix.
func (v Viewport) Matrix() [6]float64 {
	return scaleTranslate(v.ratio(), v.OffsetX, v.OffsetY)
}

// Inverse returns the display→image affine matrix.
func (v Viewport) Inverse() [6]float64 {
	return invertAffine(v.Matrix())
}

// ratio guards the zero-value Viewport, which behaves as identity.
func (v Viewport) ratio() float64 {
	if v.Ratio <= 0 {
		return 1
	}
	return v.Ratio
}
