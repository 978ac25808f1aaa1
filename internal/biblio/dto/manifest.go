// Package dto contains the JSON shapes returned by the library's REST
// endpoints and embedded in its viewer pages.
package dto

// TileSource is the response of the getTileSource endpoint after the
// quoting wrapper has been stripped.
type TileSource struct {
	Image *TileSourceImage `json:"Image"`
}

// TileSourceImage carries the deep-zoom parameters of one image.
type TileSourceImage struct {
	Format   string         `json:"Format"`
	Overlap  int            `json:"Overlap"`
	TileSize int            `json:"TileSize"`
	Size     TileSourceSize `json:"Size"`
}

// TileSourceSize is the full-resolution pixel size of the image.
type TileSourceSize struct {
	Width  int `json:"Width"`
	Height int `json:"Height"`
}
