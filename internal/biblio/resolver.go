package biblio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/HueyNemud/grabs/internal/biblio/dto"
	"github.com/HueyNemud/grabs/internal/model"
)

var (
	// ErrNoSource indicates that an image cannot be resolved because neither
	// a viewer URL nor a manifest URL was supplied.
	ErrNoSource = errors.New("either a viewer URL or a manifest URL is required")

	// ErrNoManifest indicates that a viewer page declared no deep-zoom
	// manifest for the requested view.
	ErrNoManifest = errors.New("no deep-zoom manifest found")
)

// Getter fetches a URL and returns the response body as a string.
// *http.Client of the internal http package satisfies it.
type Getter interface {
	GetString(ctx context.Context, url string) (string, error)
}

// Resolver turns library pages into model values.
//
// The site exposes no stable metadata API, so the resolver scrapes what the
// pages embed: JS variable declarations, the pictureList array, NormalField
// property blocks, and the getTileSource and searchSVC REST endpoints.
type Resolver struct {
	client Getter
}

// NewResolver creates a resolver backed by the given HTTP client.
func NewResolver(client Getter) *Resolver {
	return &Resolver{client: client}
}

// ResolveImage builds a TiledImage from a viewer page and/or a deep-zoom
// manifest URL.
//
// When viewerURL is set, the page is scraped for the view's IID, ARK and its
// pictureList entry (pagination, description, manifest). When manifestURL is
// empty it is taken from the pictureList. The manifest is then resolved
// through the getTileSource endpoint to obtain the pixel dimensions, tile
// size, overlap and format. An empty tilesURL defaults to the manifest URL
// with its .xml extension removed.
func (r *Resolver) ResolveImage(ctx context.Context, viewerURL, manifestURL, tilesURL string) (*model.TiledImage, error) {
	if viewerURL == "" && manifestURL == "" {
		return nil, ErrNoSource
	}

	im := &model.TiledImage{
		ViewerURL: viewerURL,
		Format:    model.DefaultFormat,
	}

	if viewerURL != "" {
		page, err := r.client.GetString(ctx, viewerURL)
		if err != nil {
			return nil, fmt.Errorf("fetching viewer page %s: %w", viewerURL, err)
		}
		im.IID = jsVar(page, "iid")
		im.ARK = jsVar(page, "ark")

		var pics []dto.Picture
		if raw := jsVar(page, "pictureList"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &pics); err != nil {
				return nil, fmt.Errorf("parsing pictureList of %s: %w", viewerURL, err)
			}
		}

		if parent, number, ok := splitViewARK(im.ARK); ok {
			im.ParentURL = SiteURL(parent)
			if idx := number - 1; idx >= 0 && idx < len(pics) {
				pic := pics[idx]
				im.Title = pic.Pagination
				im.Description = pic.Description
				if manifestURL == "" && pic.DeepZoomManifest != "" {
					manifestURL = SiteURL(pic.DeepZoomManifest)
				}
			}
		}
	}

	if manifestURL == "" {
		return nil, fmt.Errorf("%w on %s", ErrNoManifest, viewerURL)
	}

	if err := r.applyTileSource(ctx, im, manifestURL, tilesURL); err != nil {
		return nil, err
	}
	return im, nil
}

// ResolveDocument scrapes a document page into a Document, resolving every
// attached image view and listing the child documents, if any.
func (r *Resolver) ResolveDocument(ctx context.Context, pageURL string) (*model.Document, error) {
	page, err := r.client.GetString(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetching document page %s: %w", pageURL, err)
	}

	doc := &model.Document{
		URL:            pageURL,
		ARK:            arkRe.FindString(pageURL),
		Category:       jsVar(page, "zmat"),
		IID:            jsVar(page, "instanceiid"),
		ParentIID:      jsVar(page, "parent_iid"),
		PropertiesLang: jsVar(page, "currLocale"),
		Properties:     parseProperties(page),
	}

	var pics []dto.Picture
	if raw := jsVar(page, "pictureList"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &pics); err != nil {
			return nil, fmt.Errorf("parsing pictureList of %s: %w", pageURL, err)
		}
	}
	for i, pic := range pics {
		if pic.DeepZoomManifest == "" {
			continue
		}
		im, err := r.imageFromPicture(ctx, pic, doc, i+1)
		if err != nil {
			return nil, fmt.Errorf("resolving view %d of %s: %w", i+1, doc.Identity(), err)
		}
		doc.Images = append(doc.Images, im)
	}

	if doc.IID != "" {
		subviews, err := r.resolveChildren(ctx, doc.IID)
		if err != nil {
			return nil, err
		}
		doc.SubviewURLs = subviews
	}
	return doc, nil
}

// imageFromPicture builds the TiledImage for one pictureList entry of a
// document page. The entry already carries the title, description and
// manifest, so only the tile source round trip is needed; number is the
// 1-based position of the view.
func (r *Resolver) imageFromPicture(ctx context.Context, pic dto.Picture, doc *model.Document, number int) (*model.TiledImage, error) {
	im := &model.TiledImage{
		Title:       pic.Pagination,
		Description: pic.Description,
		Format:      model.DefaultFormat,
	}
	if doc.ARK != "" {
		im.ARK = fmt.Sprintf("%s/v%04d", doc.ARK, number)
		im.ViewerURL = SiteURL(im.ARK)
		im.ParentURL = SiteURL(doc.ARK)
	}
	if err := r.applyTileSource(ctx, im, SiteURL(pic.DeepZoomManifest), ""); err != nil {
		return nil, err
	}
	return im, nil
}

// applyTileSource resolves a deep-zoom manifest through the getTileSource
// endpoint and fills the image's geometry, format, tiles root and file name.
func (r *Resolver) applyTileSource(ctx context.Context, im *model.TiledImage, manifestURL, tilesURL string) error {
	raw, err := r.client.GetString(ctx, manifestEndpoint(manifestURL))
	if err != nil {
		return fmt.Errorf("fetching tile source for %s: %w", manifestURL, err)
	}
	body, err := unwrapManifest(raw)
	if err != nil {
		return fmt.Errorf("tile source for %s: %w", manifestURL, err)
	}
	var src dto.TileSource
	if err := json.Unmarshal([]byte(body), &src); err != nil {
		return fmt.Errorf("parsing tile source for %s: %w", manifestURL, err)
	}
	if src.Image == nil {
		return fmt.Errorf("tile source for %s carries no image metadata", manifestURL)
	}

	im.ManifestURL = manifestURL
	if src.Image.Format != "" {
		im.Format = src.Image.Format
	}
	im.Width = src.Image.Size.Width
	im.Height = src.Image.Size.Height
	im.TileSize = src.Image.TileSize
	im.Overlap = src.Image.Overlap

	im.TilesURL = tilesURL
	if im.TilesURL == "" {
		im.TilesURL = strings.TrimSuffix(manifestURL, ".xml")
	}
	if base := manifestBaseName(manifestURL); base != "" {
		im.FileName = base + "." + im.Format
	}
	return nil
}

// resolveChildren queries the search endpoint for documents whose parent_iid
// matches iid and returns their page URLs.
func (r *Resolver) resolveChildren(ctx context.Context, iid string) ([]string, error) {
	raw, err := r.client.GetString(ctx, childrenQuery(iid))
	if err != nil {
		return nil, fmt.Errorf("querying children of %s: %w", iid, err)
	}
	body, err := unwrapJSONP(raw)
	if err != nil {
		return nil, fmt.Errorf("children of %s: %w", iid, err)
	}
	var res dto.SearchResults
	if err := json.Unmarshal([]byte(body), &res); err != nil {
		return nil, fmt.Errorf("parsing children of %s: %w", iid, err)
	}

	var urls []string
	for _, hit := range res.Results {
		if hit.InterviewID == nil || hit.InterviewID.Value == "" {
			continue
		}
		urls = append(urls, SiteURL(hit.InterviewID.Value))
	}
	return urls, nil
}
