// Package model defines the core data structures shared across grabs.
//
// # TiledImage
//
// TiledImage describes a deep-zoom image pyramid: full-resolution dimensions,
// tile size, overlap, tile root URL and format. It is an immutable value
// assembled by the biblio resolver and consumed by the untile engine:
//
//	img, _ := resolver.ResolveImage(ctx, viewerURL, "", "")
//	fmt.Println(img.MaxZoom()) // highest requestable zoom level
//
// # Document
//
// Document represents a library record: scraped properties, attached images
// and subview URLs. Collections can be walked recursively via SubviewURLs.
//
// # Paths
//
// Both types compute sanitized output paths for their metadata dumps, and
// TiledImage additionally for its reconstructed raster:
//
//	img.OutputPath("/out")   // /out/<file name>.<format>
//	img.MetadataPath("/out") // /out/<ark>.json
package model
