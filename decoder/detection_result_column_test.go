package decoder

import (
	"testing"

	"github.com/tpcreative070/pdf417decoder"
	"github.com/tpcreative070/pdf417decoder/bitmatrix"
)

func newTestBoundingBox(t *testing.T) *BoundingBox {
	t.Helper()
	img := bitmatrix.New(100, 50)
	tl := pdf417decoder.Point{X: 10, Y: 0}
	bl := pdf417decoder.Point{X: 10, Y: 49}
	tr := pdf417decoder.Point{X: 90, Y: 0}
	br := pdf417decoder.Point{X: 90, Y: 49}
	bb, err := NewBoundingBox(img, &tl, &bl, &tr, &br)
	if err != nil {
		t.Fatalf("NewBoundingBox: %v", err)
	}
	return bb
}

func TestDetectionResultColumnSetAndGet(t *testing.T) {
	col := newDetectionResultColumn(newTestBoundingBox(t))
	cw := newCodeword(10, 27, 0, 5)
	col.SetCodeword(3, cw)

	if got := col.Codeword(3); got != cw {
		t.Fatalf("Codeword(3) = %v, want %v", got, cw)
	}
	if got := col.Codeword(4); got != nil {
		t.Fatalf("Codeword(4) = %v, want nil", got)
	}
}

func TestDetectionResultColumnCodewordNearby(t *testing.T) {
	col := newDetectionResultColumn(newTestBoundingBox(t))
	cw := newCodeword(10, 27, 0, 5)
	col.SetCodeword(3, cw)

	if got := col.CodewordNearby(5); got != cw {
		t.Fatalf("CodewordNearby(5) = %v, want the codeword at row 3", got)
	}
	if got := col.CodewordNearby(3 + maxNearbyDistance + 1); got != nil {
		t.Fatal("CodewordNearby should not search beyond maxNearbyDistance")
	}
}

func TestDetectionResultRowIndicatorColumnSetRowNumbers(t *testing.T) {
	col := newDetectionResultRowIndicatorColumn(newTestBoundingBox(t), true)
	cw := newCodeword(10, 27, 3, 95)
	col.SetCodeword(0, cw)

	col.setRowNumbers()
	want := (95/30)*3 + 3/3
	if cw.RowNumber() != want {
		t.Fatalf("RowNumber() = %d, want %d", cw.RowNumber(), want)
	}
	if !col.IsLeft() {
		t.Fatal("IsLeft() should be true")
	}
}
