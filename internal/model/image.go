package model

import (
	"math"
	"path/filepath"
	"regexp"
	"strings"
)

// BaseZoom is the lowest zoom level served by the deep-zoom tile host.
// Zoom levels count upward from here to MaxZoom.
const BaseZoom = 10

// DefaultFormat is the tile encoding assumed when the manifest does not
// declare one.
const DefaultFormat = "jpg"

// TiledImage describes one deep-zoom image served as a pyramid of tiles.
//
// TiledImage is an immutable value produced by the biblio resolver from a
// viewer page and its deep-zoom manifest. It carries everything the untile
// engine needs to plan and fetch the tile grid:
//   - Width/Height/TileSize/Overlap from the manifest
//   - TilesURL, the root under which tiles live
//   - Format, which selects the decode path and output color model
//
// The struct is JSON-taggable so it can be dumped as a metadata file next to
// the reconstructed image.
//
// Example:
//
//	img := &model.TiledImage{
//	    Width: 4000, Height: 3000, TileSize: 256,
//	    TilesURL: "https://host/tiles/img_files", Format: "jpg",
//	}
//	fmt.Println(img.MaxZoom()) // 13
type TiledImage struct {
	// IID is the viewer instance identifier scraped from the page.
	IID string `json:"iid"`

	// ARK is the archival resource key of the image view (ends in /vNNNN).
	ARK string `json:"ark"`

	// ManifestURL locates the deep-zoom XML manifest.
	ManifestURL string `json:"manifest_url"`

	// TilesURL is the root location tiles are served under. Tile URLs are
	// derived as {TilesURL}/{zoom}/{col}_{row}.{Format}.
	TilesURL string `json:"tiles_url"`

	// ViewerURL is the page the image was discovered on, if any.
	ViewerURL string `json:"viewer_url,omitempty"`

	// Title is the pagination label of the view, if any.
	Title string `json:"title,omitempty"`

	// Description is the free-text description of the view, if any.
	Description string `json:"description,omitempty"`

	// ParentURL points at the document the image belongs to, if known.
	ParentURL string `json:"parent_url,omitempty"`

	// FileName is the suggested output file name, derived from the manifest
	// basename plus the tile format extension.
	FileName string `json:"file_name,omitempty"`

	// Format is the tile encoding: "jpg", "jpeg" or "png".
	Format string `json:"format"`

	// Width and Height are the full-resolution pixel dimensions.
	Width  int `json:"width"`
	Height int `json:"height"`

	// TileSize is the edge length of a square tile at full resolution.
	TileSize int `json:"tile_size"`

	// Overlap is the pixel width of the border duplicated between adjacent
	// tiles by the tile server.
	Overlap int `json:"overlap"`
}

// MaxZoom returns the highest valid zoom level for this image:
// BaseZoom + floor(log2(max(Width,Height)/TileSize)).
func (im *TiledImage) MaxZoom() int {
	longest := im.Width
	if im.Height > longest {
		longest = im.Height
	}
	n := float64(longest) / float64(im.TileSize)
	return BaseZoom + int(math.Floor(math.Log2(n)))
}

// Identity returns a stable identifier for the image, used as a memo key.
// The ARK is preferred; the IID or tiles root serve as fallbacks.
func (im *TiledImage) Identity() string {
	if im.ARK != "" {
		return im.ARK
	}
	if im.IID != "" {
		return im.IID
	}
	return im.TilesURL
}

// OutputPath returns the path the reconstructed raster should be saved to
// under dir, based on the sanitized FileName.
func (im *TiledImage) OutputPath(dir string) string {
	name := im.FileName
	if name == "" {
		name = SanitizeFileName(im.Identity()) + "." + im.Format
	}
	return filepath.Join(dir, SanitizeFileName(name))
}

// MetadataPath returns the path the JSON metadata dump should be saved to
// under dir.
func (im *TiledImage) MetadataPath(dir string) string {
	return filepath.Join(dir, SanitizeFileName(im.Identity())+".json")
}

// SanitizeFileName removes or replaces characters that are invalid in
// file/folder names, so ARKs (which contain slashes) and scraped titles can
// be used directly as file names.
func SanitizeFileName(name string) string {
	invalidChars := regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	name = invalidChars.ReplaceAllString(name, "_")

	// Windows rejects names ending with dots.
	name = regexp.MustCompile(`\.+$`).ReplaceAllString(name, "")

	name = regexp.MustCompile(`\s+`).ReplaceAllString(name, " ")
	return strings.TrimRight(name, " ")
}
