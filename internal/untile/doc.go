// Package untile reconstructs a deep-zoom tiled image into a single flat
// raster at a requested zoom level.
//
// # Grid planning
//
// NewPlan turns a TiledImage and a zoom level into the tile grid without
// performing any I/O:
//
//	plan, err := untile.NewPlan(img, zoom)
//	// plan.Columns, plan.Rows, plan.ScaledWidth, plan.ScaledHeight
//	// plan.TileURL(col, row)
//
// # Reconstruction
//
// Reconstructor.Build fetches every tile of the plan concurrently through an
// injected FetchFunc, bounded by MaxWorkers and an aggregate FetchTimeout,
// then composites the decoded tiles in row-major order, stripping the
// overlap border tiles share with their upper/left neighbours:
//
//	r := untile.NewReconstructor()
//	res, err := r.Build(ctx, img, zoom, client.Get)
//	fmt.Printf("%.0f%% of tiles fetched\n", res.SuccessRatio()*100)
//
// Individual tile failures and the aggregate timeout never fail the call;
// they lower the success ratio and leave blank regions on the canvas. Only
// an invalid zoom level or an unsupported format is fatal.
//
// # Memoization
//
// Cache is an optional, injectable memo of results keyed by image identity
// and zoom level; MemoryCache is a lock-guarded in-memory implementation.
package untile
