// Package download orchestrates the whole pipeline from input URLs to saved
// rasters.
//
// The Manager resolves URLs through the biblio package, writes JSON metadata
// dumps, and reconstructs each image with the untile engine over a bounded
// pool of concurrent image builds. Progress is reported through a callback
// so the CLI and TUI front ends can render it their own way.
//
// # Basic Usage
//
//	manager := download.NewManager(settings, func(e download.ProgressEvent) {
//	    fmt.Println(e.Message)
//	})
//
//	if err := manager.Initialize(ctx, urls); err != nil { ... }
//	if err := manager.StartDownloads(ctx); err != nil { ... }
package download
