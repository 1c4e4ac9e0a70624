package decoder

import (
	"testing"

	"github.com/tpcreative070/pdf417decoder"
	"github.com/tpcreative070/pdf417decoder/bitmatrix"
)

func TestNewBoundingBoxAllCorners(t *testing.T) {
	img := bitmatrix.New(100, 50)
	tl := pdf417decoder.Point{X: 10, Y: 5}
	bl := pdf417decoder.Point{X: 10, Y: 40}
	tr := pdf417decoder.Point{X: 90, Y: 5}
	br := pdf417decoder.Point{X: 90, Y: 40}

	bb, err := NewBoundingBox(img, &tl, &bl, &tr, &br)
	if err != nil {
		t.Fatalf("NewBoundingBox: %v", err)
	}
	if bb.MinX() != 10 || bb.MaxX() != 90 || bb.MinY() != 5 || bb.MaxY() != 40 {
		t.Fatalf("bounds = (%d,%d)-(%d,%d), want (10,5)-(90,40)", bb.MinX(), bb.MinY(), bb.MaxX(), bb.MaxY())
	}
}

func TestNewBoundingBoxMissingRightInferred(t *testing.T) {
	img := bitmatrix.New(100, 50)
	tl := pdf417decoder.Point{X: 10, Y: 5}
	bl := pdf417decoder.Point{X: 10, Y: 40}

	bb, err := NewBoundingBox(img, &tl, &bl, nil, nil)
	if err != nil {
		t.Fatalf("NewBoundingBox: %v", err)
	}
	if bb.MaxX() != img.Width()-1 {
		t.Fatalf("inferred MaxX = %d, want %d", bb.MaxX(), img.Width()-1)
	}
}

func TestNewBoundingBoxNoCornersFails(t *testing.T) {
	img := bitmatrix.New(100, 50)
	if _, err := NewBoundingBox(img, nil, nil, nil, nil); err != pdf417decoder.ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestAddMissingRowsClipsToImage(t *testing.T) {
	img := bitmatrix.New(100, 50)
	tl := pdf417decoder.Point{X: 10, Y: 2}
	bl := pdf417decoder.Point{X: 10, Y: 48}
	tr := pdf417decoder.Point{X: 90, Y: 2}
	br := pdf417decoder.Point{X: 90, Y: 48}
	bb, err := NewBoundingBox(img, &tl, &bl, &tr, &br)
	if err != nil {
		t.Fatalf("NewBoundingBox: %v", err)
	}

	extended, err := bb.AddMissingRows(10, 10, true)
	if err != nil {
		t.Fatalf("AddMissingRows: %v", err)
	}
	if extended.MinY() != 0 {
		t.Fatalf("MinY = %d, want clipped to 0", extended.MinY())
	}
	if extended.MaxY() != img.Height()-1 {
		t.Fatalf("MaxY = %d, want clipped to %d", extended.MaxY(), img.Height()-1)
	}
}
