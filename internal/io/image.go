package ioutils

import (
	"context"
	"image"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// jpegQuality is the encoding quality used for reconstructed JPEG rasters.
const jpegQuality = 90

// SaveRaster encodes a reconstructed raster to path.
//
// The encoder is selected from the file extension (.jpg/.jpeg/.png), so the
// path should come from TiledImage.OutputPath. Parent directories are
// created as needed.
//
// Example:
//
//	res, _ := reconstructor.Build(ctx, img, zoom, client.Get)
//	err := SaveRaster(ctx, img.OutputPath(outDir), res.Image)
func SaveRaster(ctx context.Context, path string, img image.Image) error {
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	return imaging.Save(img, path, imaging.JPEGQuality(jpegQuality))
}
