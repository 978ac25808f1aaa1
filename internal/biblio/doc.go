// Package biblio resolves pages of the Bibliothèques spécialisées de la
// Ville de Paris into model values.
//
// The site has no public metadata API, so the package scrapes what the pages
// embed:
//   - JS variable declarations (iid, ark, zmat, parent_iid, currLocale)
//   - the pictureList array naming the deep-zoom manifest of each view
//   - NormalField blocks carrying the descriptive properties
//
// plus two REST endpoints: getTileSource, which expands a deep-zoom manifest
// into the image geometry, and the searchSVC geoquery, which lists the
// children of a collection.
//
// # Basic Usage
//
//	resolver := biblio.NewResolver(client)
//
//	// A document page with its views and children
//	doc, err := resolver.ResolveDocument(ctx, docURL)
//
//	// A single image view
//	img, err := resolver.ResolveImage(ctx, viewerURL, "", "")
package biblio
