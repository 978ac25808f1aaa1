package untile

import "fmt"

// InvalidZoomError is returned when a requested zoom level exceeds the
// maximum zoom of the image. It aborts reconstruction before any fetch.
type InvalidZoomError struct {
	// Requested is the zoom level that was asked for.
	Requested int

	// Max is the highest valid zoom level for the image.
	Max int
}

func (e *InvalidZoomError) Error() string {
	return fmt.Sprintf("zoom level %d is greater than the maximum possible zoom %d for this image", e.Requested, e.Max)
}

// TileFetchError reports that a single tile could not be retrieved. It is
// recovered locally: the tile is treated as missing and reconstruction
// continues.
type TileFetchError struct {
	URL string
	Err error
}

func (e *TileFetchError) Error() string {
	return fmt.Sprintf("fetch tile %s: %v", e.URL, e.Err)
}

func (e *TileFetchError) Unwrap() error { return e.Err }

// TileDecodeError reports that fetched tile bytes could not be decoded in
// the image's declared format. Like TileFetchError it is recovered locally.
type TileDecodeError struct {
	URL string
	Err error
}

func (e *TileDecodeError) Error() string {
	return fmt.Sprintf("decode tile %s: %v", e.URL, e.Err)
}

func (e *TileDecodeError) Unwrap() error { return e.Err }

// TileFailure pairs a failed grid coordinate with the error that caused it.
type TileFailure struct {
	Coord Coordinate
	Err   error
}
