package decoder

import (
	"math"

	"github.com/tpcreative070/pdf417decoder"
	"github.com/tpcreative070/pdf417decoder/bitmatrix"
)

// BoundingBox is the axis-aligned region of interest clipped to the image.
type BoundingBox struct {
	image                  *bitmatrix.Matrix
	topLeft, bottomLeft    pdf417decoder.Point
	topRight, bottomRight  pdf417decoder.Point
	minX, maxX, minY, maxY int
}

// NewBoundingBox builds a BoundingBox from the four corner points. Either
// the left pair or the right pair (or both) must be non-nil; a missing side
// is projected from the other side out to the image edge.
func NewBoundingBox(image *bitmatrix.Matrix, topLeft, bottomLeft, topRight, bottomRight *pdf417decoder.Point) (*BoundingBox, error) {
	haveLeft := topLeft != nil && bottomLeft != nil
	haveRight := topRight != nil && bottomRight != nil
	if !haveLeft && !haveRight {
		return nil, pdf417decoder.ErrNotFound
	}

	tl, bl := topLeft, bottomLeft
	if !haveLeft {
		left := pdf417decoder.Point{X: 0, Y: topRight.Y}
		leftBottom := pdf417decoder.Point{X: 0, Y: bottomRight.Y}
		tl, bl = &left, &leftBottom
	}
	tr, br := topRight, bottomRight
	if !haveRight {
		rightEdge := float64(image.Width() - 1)
		right := pdf417decoder.Point{X: rightEdge, Y: topLeft.Y}
		rightBottom := pdf417decoder.Point{X: rightEdge, Y: bottomLeft.Y}
		tr, br = &right, &rightBottom
	}

	return &BoundingBox{
		image:       image,
		topLeft:     *tl,
		bottomLeft:  *bl,
		topRight:    *tr,
		bottomRight: *br,
		minX:        int(math.Min(tl.X, bl.X)),
		maxX:        int(math.Max(tr.X, br.X)),
		minY:        int(math.Min(tl.Y, tr.Y)),
		maxY:        int(math.Max(bl.Y, br.Y)),
	}, nil
}

// copyBoundingBox returns a shallow copy of bb.
func copyBoundingBox(bb *BoundingBox) *BoundingBox {
	dup := *bb
	return &dup
}

// MergeBoundingBoxes merges a left and right bounding box. If one is nil,
// the other is returned unchanged.
func MergeBoundingBoxes(leftBox, rightBox *BoundingBox) (*BoundingBox, error) {
	switch {
	case leftBox == nil:
		return rightBox, nil
	case rightBox == nil:
		return leftBox, nil
	default:
		tl, bl := leftBox.topLeft, leftBox.bottomLeft
		tr, br := rightBox.topRight, rightBox.bottomRight
		return NewBoundingBox(leftBox.image, &tl, &bl, &tr, &br)
	}
}

// clampRow shifts y by delta rows and clips the result to [0, height).
func clampRow(y float64, delta, height int) float64 {
	row := int(y) + delta
	switch {
	case row < 0:
		row = 0
	case row >= height:
		row = height - 1
	}
	return float64(row)
}

// AddMissingRows extends the box vertically by missingStartRows at the top
// and missingEndRows at the bottom, on the side named by isLeft, clipped to
// the image bounds.
func (bb *BoundingBox) AddMissingRows(missingStartRows, missingEndRows int, isLeft bool) (*BoundingBox, error) {
	tl, bl, tr, br := bb.topLeft, bb.bottomLeft, bb.topRight, bb.bottomRight
	height := bb.image.Height()

	if missingStartRows > 0 {
		if isLeft {
			tl.Y = clampRow(tl.Y, -missingStartRows, height)
		} else {
			tr.Y = clampRow(tr.Y, -missingStartRows, height)
		}
	}
	if missingEndRows > 0 {
		if isLeft {
			bl.Y = clampRow(bl.Y, missingEndRows, height)
		} else {
			br.Y = clampRow(br.Y, missingEndRows, height)
		}
	}
	return NewBoundingBox(bb.image, &tl, &bl, &tr, &br)
}

// MinX returns the minimum x coordinate.
func (bb *BoundingBox) MinX() int { return bb.minX }

// MaxX returns the maximum x coordinate.
func (bb *BoundingBox) MaxX() int { return bb.maxX }

// MinY returns the minimum y coordinate.
func (bb *BoundingBox) MinY() int { return bb.minY }

// MaxY returns the maximum y coordinate.
func (bb *BoundingBox) MaxY() int { return bb.maxY }

// TopLeft returns the top-left corner point.
func (bb *BoundingBox) TopLeft() pdf417decoder.Point { return bb.topLeft }

// TopRight returns the top-right corner point.
func (bb *BoundingBox) TopRight() pdf417decoder.Point { return bb.topRight }

// BottomLeft returns the bottom-left corner point.
func (bb *BoundingBox) BottomLeft() pdf417decoder.Point { return bb.bottomLeft }

// BottomRight returns the bottom-right corner point.
func (bb *BoundingBox) BottomRight() pdf417decoder.Point { return bb.bottomRight }
