package untile

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"time"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"github.com/HueyNemud/grabs/internal/model"
)

const (
	// DefaultMaxWorkers bounds how many tiles are fetched concurrently when
	// the Reconstructor does not specify a limit.
	DefaultMaxWorkers = 10

	// DefaultFetchTimeout bounds the aggregate wait for all tiles of one
	// reconstruction when the Reconstructor does not specify one.
	DefaultFetchTimeout = 20 * time.Second
)

// FetchFunc retrieves the raw bytes behind a tile URL. The transport is
// injected so tests can substitute an in-memory tile set for HTTP.
type FetchFunc func(ctx context.Context, url string) ([]byte, error)

// Result is the outcome of one reconstruction call.
//
// Per-tile failures never fail the call; they are listed in Failed and
// reflected in SuccessRatio, and their destination regions are left blank
// on the canvas. Tiles still pending when the aggregate timeout fired are
// counted as missing but not listed in Failed.
type Result struct {
	// Image is the composited raster, sized ScaledWidth x ScaledHeight of
	// the plan. RGBA for jpg/jpeg tiles, NRGBA for png tiles.
	Image image.Image

	// Zoom is the zoom level the raster was reconstructed at.
	Zoom int

	// Width and Height are the raster dimensions in pixels.
	Width  int
	Height int

	// TilesRequested and TilesSucceeded count the grid coordinates and how
	// many of them were fetched and decoded in time.
	TilesRequested int
	TilesSucceeded int

	// Failed lists tiles that failed to fetch or decode before the deadline.
	Failed []TileFailure

	// TimedOut reports that the aggregate wait expired before every tile
	// settled.
	TimedOut bool

	// Degenerate reports that the grid was empty because the scaled
	// dimensions rounded below one pixel.
	Degenerate bool
}

// SuccessRatio returns TilesSucceeded / TilesRequested in [0, 1]. An empty
// grid counts as fully successful.
func (r *Result) SuccessRatio() float64 {
	if r.TilesRequested == 0 {
		return 1
	}
	return float64(r.TilesSucceeded) / float64(r.TilesRequested)
}

// Complete reports whether every requested tile made it onto the canvas.
func (r *Result) Complete() bool {
	return r.TilesSucceeded == r.TilesRequested
}

// Reconstructor fetches all tiles of an image at one zoom level and stitches
// them into a single raster.
//
// Fetching fans out over a bounded worker pool and decoding happens per
// tile; compositing runs single-threaded once every tile has settled, so
// the canvas has no concurrent writers. A Reconstructor holds no state and
// may be used for concurrent Build calls.
type Reconstructor struct {
	// MaxWorkers bounds concurrent tile fetches. Zero means
	// DefaultMaxWorkers.
	MaxWorkers int

	// FetchTimeout bounds the aggregate wait for all tiles. Zero means
	// DefaultFetchTimeout. Tiles still in flight when it fires are treated
	// as missing; their late results are discarded.
	FetchTimeout time.Duration
}

// NewReconstructor returns a Reconstructor with default limits.
func NewReconstructor() *Reconstructor {
	return &Reconstructor{
		MaxWorkers:   DefaultMaxWorkers,
		FetchTimeout: DefaultFetchTimeout,
	}
}

type tileResult struct {
	coord Coordinate
	img   image.Image
	err   error
}

// Build reconstructs im at the given zoom level using fetch as transport.
//
// Only an invalid zoom level or an unsupported tile format fail the call.
// Everything else — individual fetch or decode errors, the aggregate
// timeout — is absorbed into the Result: missing tiles leave visible gaps
// and lower the success ratio.
func (r *Reconstructor) Build(ctx context.Context, im *model.TiledImage, zoom int, fetch FetchFunc) (*Result, error) {
	plan, err := NewPlan(im, zoom)
	if err != nil {
		return nil, err
	}

	canvas, err := newCanvas(im.Format, plan.ScaledWidth, plan.ScaledHeight)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Image:          canvas,
		Zoom:           plan.Zoom,
		Width:          plan.ScaledWidth,
		Height:         plan.ScaledHeight,
		TilesRequested: plan.Tiles(),
		Degenerate:     plan.Degenerate,
	}
	if res.TilesRequested == 0 {
		return res, nil
	}

	workers := r.MaxWorkers
	if workers <= 0 {
		workers = DefaultMaxWorkers
	}
	timeout := r.FetchTimeout
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}

	coords := plan.Coordinates()

	fetchCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// Buffered to the full grid so workers never block on send: results
	// arriving after the deadline land in the channel and are discarded
	// with it instead of leaking goroutines.
	results := make(chan tileResult, len(coords))

	g := new(errgroup.Group)
	g.SetLimit(workers)

	// The spawning loop itself blocks while the pool is saturated, so it
	// runs apart from the collector.
	go func() {
		for _, c := range coords {
			c := c
			url := plan.TileURL(c.Col, c.Row)
			g.Go(func() error {
				data, err := fetch(fetchCtx, url)
				if err != nil {
					results <- tileResult{coord: c, err: &TileFetchError{URL: url, Err: err}}
					return nil
				}
				tile, err := decodeTile(im.Format, data)
				if err != nil {
					results <- tileResult{coord: c, err: &TileDecodeError{URL: url, Err: err}}
					return nil
				}
				results <- tileResult{coord: c, img: tile}
				return nil
			})
		}
	}()

	tiles := make(map[Coordinate]image.Image, len(coords))

collect:
	for settled := 0; settled < len(coords); {
		select {
		case tr := <-results:
			settled++
			if tr.err != nil {
				res.Failed = append(res.Failed, TileFailure{Coord: tr.coord, Err: tr.err})
				continue
			}
			tiles[tr.coord] = tr.img
		case <-fetchCtx.Done():
			res.TimedOut = true
			break collect
		}
	}

	res.TilesSucceeded = len(tiles)
	r.composite(canvas, im, coords, tiles)

	return res, nil
}

// composite pastes every fetched tile onto the canvas in row-major order.
// The tile server embeds its duplicated border only on the side shared with
// a lower-indexed neighbour, so tiles in the first column carry no left
// overlap and tiles in the first row no top overlap.
func (r *Reconstructor) composite(canvas draw.Image, im *model.TiledImage, coords []Coordinate, tiles map[Coordinate]image.Image) {
	for _, c := range coords {
		tile, ok := tiles[c]
		if !ok {
			continue
		}

		overlapX, overlapY := 0, 0
		if c.Col > 0 {
			overlapX = im.Overlap
		}
		if c.Row > 0 {
			overlapY = im.Overlap
		}

		// Edge tiles are smaller than TileSize, so the crop window is
		// clipped to what the tile actually holds.
		b := tile.Bounds()
		crop := image.Rect(
			overlapX,
			overlapY,
			minInt(overlapX+im.TileSize, b.Dx()),
			minInt(overlapY+im.TileSize, b.Dy()),
		)
		if crop.Empty() {
			continue
		}

		cropped := imaging.Crop(tile, crop)
		origin := image.Pt(c.Col*im.TileSize, c.Row*im.TileSize)
		draw.Copy(canvas, origin, cropped, cropped.Bounds(), draw.Src, nil)
	}
}

// newCanvas allocates the destination raster for the declared tile format:
// jpg/jpeg tiles have no alpha channel and composite onto RGBA, png tiles
// keep their alpha on NRGBA.
func newCanvas(format string, width, height int) (draw.Image, error) {
	rect := image.Rect(0, 0, width, height)
	switch format {
	case "jpg", "jpeg":
		return image.NewRGBA(rect), nil
	case "png":
		return image.NewNRGBA(rect), nil
	default:
		return nil, fmt.Errorf("unsupported tile format %q", format)
	}
}

func decodeTile(format string, data []byte) (image.Image, error) {
	switch format {
	case "jpg", "jpeg":
		return jpeg.Decode(bytes.NewReader(data))
	case "png":
		return png.Decode(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("unsupported tile format %q", format)
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
