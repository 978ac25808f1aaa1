// Package http provides an HTTP client configured for the digital library.
//
// The Client in this package handles:
//   - User-Agent pinning
//   - Timeout handling
//   - Context-aware GETs for pages, manifests and tiles
//
// # Basic Usage
//
//	client := http.NewClient("")
//
//	// Fetch a viewer page
//	html, err := client.GetString(ctx, viewerURL)
//
//	// Serve as the tile transport of the untile engine
//	res, err := reconstructor.Build(ctx, img, zoom, client.Get)
package http
