package ioutils

import (
	"context"
	"encoding/json"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
)

func TestWriteFileCreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "out.txt")
	if err := WriteFile(context.Background(), path, []byte("data")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(got) != "data" {
		t.Errorf("content = %q", got)
	}
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meta.json")
	payload := map[string]int{"width": 4000}
	if err := WriteJSON(context.Background(), path, payload); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	var decoded map[string]int
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("written file is not JSON: %v", err)
	}
	if decoded["width"] != 4000 {
		t.Errorf("decoded = %v", decoded)
	}
}

func TestSaveRaster(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.NRGBA{R: 200, G: 10, B: 10, A: 255})
		}
	}

	path := filepath.Join(t.TempDir(), "out", "raster.png")
	if err := SaveRaster(context.Background(), path, img); err != nil {
		t.Fatalf("SaveRaster failed: %v", err)
	}

	loaded, err := imaging.Open(path)
	if err != nil {
		t.Fatalf("reading saved raster: %v", err)
	}
	if loaded.Bounds().Dx() != 4 || loaded.Bounds().Dy() != 4 {
		t.Errorf("bounds = %v", loaded.Bounds())
	}
}

func TestSaveRasterUnknownExtension(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	path := filepath.Join(t.TempDir(), "raster.tilde")
	if err := SaveRaster(context.Background(), path, img); err == nil {
		t.Fatal("expected an error for an unknown extension")
	}
}
