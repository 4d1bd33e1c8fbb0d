package geo

import "testing"

func TestNewRasterBandGridShape(t *testing.T) {
	band := NewRasterBand(PolarLocation{}, 20, 20, 3, 3, 1)
	if band.Len() != 9 {
		t.Fatalf("Len() = %d, want 9", band.Len())
	}
	// Corners span [-10, 10] in both axes.
	if got := band.East(0); got != -10 {
		t.Errorf("East(0) = %v, want -10", got)
	}
	if got := band.East(8); got != 10 {
		t.Errorf("East(8) = %v, want 10", got)
	}
}

func TestRasterBandImageRowMajor(t *testing.T) {
	band := NewRasterBand(PolarLocation{}, 10, 10, 2, 2, 1)
	for i := 0; i < band.Len(); i++ {
		_ = band.SetRow(i, []float64{float64(i)})
	}
	img := band.Image(0)
	if img[0][0] != 0 || img[0][1] != 1 || img[1][0] != 2 || img[1][1] != 3 {
		t.Errorf("Image() = %v, want row-major [[0 1] [2 3]]", img)
	}
}
