package untile

import (
	"fmt"

	"github.com/HueyNemud/grabs/internal/model"
)

// Coordinate identifies one tile by its zero-based grid position.
type Coordinate struct {
	Col int
	Row int
}

// Plan is the tile grid of an image at one zoom level: how many tiles it
// spans, the pixel dimensions of the reconstructed raster, and the URL of
// every tile. A Plan performs no I/O and is safe to share.
type Plan struct {
	// Zoom is the zoom level the plan was computed for.
	Zoom int

	// Columns and Rows are the grid dimensions.
	Columns int
	Rows    int

	// ScaledWidth and ScaledHeight are the pixel dimensions of the image at
	// this zoom level.
	ScaledWidth  int
	ScaledHeight int

	// Degenerate reports that the scaled dimensions round below one pixel.
	// The grid is then empty but still valid.
	Degenerate bool

	tilesRoot string
	format    string
}

// NewPlan computes the tile grid for im at the given zoom level.
//
// The scaled dimensions are floor(dim / 2^(maxZoom-zoom)) and the grid is
// ceil(scaled/tileSize) tiles in each direction. Requesting a zoom level
// above im.MaxZoom() fails with InvalidZoomError.
func NewPlan(im *model.TiledImage, zoom int) (*Plan, error) {
	maxZoom := im.MaxZoom()
	if zoom > maxZoom {
		return nil, &InvalidZoomError{Requested: zoom, Max: maxZoom}
	}

	shift := uint(maxZoom - zoom)
	scaledW := im.Width >> shift
	scaledH := im.Height >> shift

	p := &Plan{
		Zoom:         zoom,
		ScaledWidth:  scaledW,
		ScaledHeight: scaledH,
		Columns:      ceilDiv(scaledW, im.TileSize),
		Rows:         ceilDiv(scaledH, im.TileSize),
		Degenerate:   scaledW < 1 || scaledH < 1,
		tilesRoot:    im.TilesURL,
		format:       im.Format,
	}
	return p, nil
}

// Tiles returns the number of tiles in the grid.
func (p *Plan) Tiles() int {
	return p.Columns * p.Rows
}

// TileURL returns the URL of the tile at (col, row):
// {tilesRoot}/{zoom}/{col}_{row}.{format}.
func (p *Plan) TileURL(col, row int) string {
	return fmt.Sprintf("%s/%d/%d_%d.%s", p.tilesRoot, p.Zoom, col, row, p.format)
}

// Coordinates returns every grid coordinate in row-major order. Compositing
// iterates this slice so the output is deterministic regardless of fetch
// completion order.
func (p *Plan) Coordinates() []Coordinate {
	coords := make([]Coordinate, 0, p.Tiles())
	for row := 0; row < p.Rows; row++ {
		for col := 0; col < p.Columns; col++ {
			coords = append(coords, Coordinate{Col: col, Row: row})
		}
	}
	return coords
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
