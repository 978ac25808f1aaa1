package untile

import (
	"errors"
	"testing"

	"github.com/HueyNemud/grabs/internal/model"
)

func planImage() *model.TiledImage {
	return &model.TiledImage{
		Width:    4000,
		Height:   3000,
		TileSize: 256,
		Overlap:  1,
		TilesURL: "https://host/tiles/pf123_files",
		Format:   "jpg",
	}
}

func TestNewPlan_FullResolution(t *testing.T) {
	im := planImage()
	maxZoom := im.MaxZoom() // 13 for 4000x3000 @ 256

	plan, err := NewPlan(im, maxZoom)
	if err != nil {
		t.Fatalf("NewPlan failed: %v", err)
	}

	if plan.ScaledWidth != 4000 || plan.ScaledHeight != 3000 {
		t.Errorf("scaled dims = %dx%d, want 4000x3000", plan.ScaledWidth, plan.ScaledHeight)
	}
	if plan.Columns != 16 || plan.Rows != 12 {
		t.Errorf("grid = %dx%d, want 16x12", plan.Columns, plan.Rows)
	}
	if plan.Tiles() != 192 {
		t.Errorf("Tiles() = %d, want 192", plan.Tiles())
	}
	if plan.Degenerate {
		t.Error("plan should not be degenerate")
	}
}

func TestNewPlan_ScaledLevels(t *testing.T) {
	im := planImage()
	maxZoom := im.MaxZoom()

	tests := []struct {
		zoom                 int
		wantW, wantH         int
		wantCols, wantRows   int
	}{
		{maxZoom - 1, 2000, 1500, 8, 6},
		{maxZoom - 2, 1000, 750, 4, 3},
		{maxZoom - 3, 500, 375, 2, 2},
	}

	for _, tt := range tests {
		plan, err := NewPlan(im, tt.zoom)
		if err != nil {
			t.Fatalf("NewPlan(zoom=%d) failed: %v", tt.zoom, err)
		}
		if plan.ScaledWidth != tt.wantW || plan.ScaledHeight != tt.wantH {
			t.Errorf("zoom %d: scaled = %dx%d, want %dx%d", tt.zoom, plan.ScaledWidth, plan.ScaledHeight, tt.wantW, tt.wantH)
		}
		if plan.Columns != tt.wantCols || plan.Rows != tt.wantRows {
			t.Errorf("zoom %d: grid = %dx%d, want %dx%d", tt.zoom, plan.Columns, plan.Rows, tt.wantCols, tt.wantRows)
		}
	}
}

func TestNewPlan_InvalidZoom(t *testing.T) {
	im := planImage()

	_, err := NewPlan(im, im.MaxZoom()+1)
	if err == nil {
		t.Fatal("expected error for zoom above maximum")
	}

	var zoomErr *InvalidZoomError
	if !errors.As(err, &zoomErr) {
		t.Fatalf("error type = %T, want *InvalidZoomError", err)
	}
	if zoomErr.Requested != im.MaxZoom()+1 || zoomErr.Max != im.MaxZoom() {
		t.Errorf("error fields = %+v", zoomErr)
	}
}

func TestNewPlan_Degenerate(t *testing.T) {
	im := planImage()

	// At zoom 1 the scale divisor exceeds the image dimensions.
	plan, err := NewPlan(im, 1)
	if err != nil {
		t.Fatalf("NewPlan failed: %v", err)
	}

	if !plan.Degenerate {
		t.Error("plan should be degenerate")
	}
	if plan.Tiles() != 0 {
		t.Errorf("Tiles() = %d, want 0", plan.Tiles())
	}
	if len(plan.Coordinates()) != 0 {
		t.Errorf("Coordinates() = %v, want empty", plan.Coordinates())
	}
}

func TestPlan_TileURL(t *testing.T) {
	im := planImage()
	plan, err := NewPlan(im, 13)
	if err != nil {
		t.Fatalf("NewPlan failed: %v", err)
	}

	tests := []struct {
		col, row int
		want     string
	}{
		{0, 0, "https://host/tiles/pf123_files/13/0_0.jpg"},
		{2, 5, "https://host/tiles/pf123_files/13/2_5.jpg"},
		{15, 11, "https://host/tiles/pf123_files/13/15_11.jpg"},
	}

	for _, tt := range tests {
		if got := plan.TileURL(tt.col, tt.row); got != tt.want {
			t.Errorf("TileURL(%d, %d) = %q, want %q", tt.col, tt.row, got, tt.want)
		}
	}
}

func TestPlan_CoordinatesRowMajor(t *testing.T) {
	im := &model.TiledImage{Width: 512, Height: 512, TileSize: 256, TilesURL: "https://host/t", Format: "png"}
	plan, err := NewPlan(im, im.MaxZoom())
	if err != nil {
		t.Fatalf("NewPlan failed: %v", err)
	}

	want := []Coordinate{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	got := plan.Coordinates()
	if len(got) != len(want) {
		t.Fatalf("got %d coordinates, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Coordinates()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
