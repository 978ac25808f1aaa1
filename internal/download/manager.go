package download

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/HueyNemud/grabs/internal/biblio"
	"github.com/HueyNemud/grabs/internal/config"
	"github.com/HueyNemud/grabs/internal/http"
	ioutils "github.com/HueyNemud/grabs/internal/io"
	"github.com/HueyNemud/grabs/internal/model"
	"github.com/HueyNemud/grabs/internal/untile"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a download progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// resolver abstracts the biblio metadata resolution for tests.
type resolver interface {
	ResolveImage(ctx context.Context, viewerURL, manifestURL, tilesURL string) (*model.TiledImage, error)
	ResolveDocument(ctx context.Context, url string) (*model.Document, error)
}

// Manager coordinates image downloads: it resolves the input URLs into
// documents and tiled images, dumps their metadata, and reconstructs each
// image from its tiles.
type Manager struct {
	settings *config.Settings
	resolver resolver
	builder  *untile.Reconstructor
	memo     untile.Cache
	fetch    untile.FetchFunc

	documents []*model.Document
	images    []*model.TiledImage

	totalTiles   int32
	fetchedTiles int32
	totalImages  int32
	savedImages  int32

	onProgress func(ProgressEvent)
}

// NewManager creates a new download Manager.
func NewManager(settings *config.Settings, onProgress func(ProgressEvent)) *Manager {
	client := http.NewClient(settings.UserAgent)
	return &Manager{
		settings: settings,
		resolver: biblio.NewResolver(client),
		builder: &untile.Reconstructor{
			MaxWorkers:   settings.MaxTileWorkers,
			FetchTimeout: settings.FetchTimeout(),
		},
		memo:       untile.NewMemoryCache(),
		fetch:      client.Get,
		onProgress: onProgress,
	}
}

// Initialize resolves the input URLs into documents and images.
//
// Image view URLs (ARKs with a /vNNNN suffix) resolve to a single image;
// anything else is treated as a document page. With Recursive set, child
// documents are followed; visited pages are tracked so collection cycles
// terminate. Resolution errors are reported and skipped.
func (m *Manager) Initialize(ctx context.Context, inputURLs string) error {
	urls := m.parseInputURLs(inputURLs)

	visited := make(map[string]bool)
	for _, inputURL := range urls {
		if biblio.IsImageViewURL(inputURL) {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Resolving image view: %s", inputURL), Level: LevelVerbose})
			im, err := m.resolver.ResolveImage(ctx, inputURL, "", "")
			if err != nil {
				m.progress(ProgressEvent{Message: fmt.Sprintf("Error resolving %s: %v", inputURL, err), Level: LevelError})
				continue
			}
			m.images = append(m.images, im)
			m.progress(ProgressEvent{Message: fmt.Sprintf("Found image: %s (%dx%d)", im.Identity(), im.Width, im.Height), Level: LevelInfo})
			continue
		}
		m.collectDocument(ctx, inputURL, visited)
	}

	m.calculateTotals()
	return nil
}

// StartDownloads dumps the metadata of everything resolved, then
// reconstructs and saves each image.
func (m *Manager) StartDownloads(ctx context.Context) error {
	if err := m.writeMetadata(ctx); err != nil {
		return err
	}
	if m.settings.MetadataOnly {
		m.progress(ProgressEvent{Message: "Metadata only, skipping image reconstruction", Level: LevelInfo})
		return nil
	}

	workers := m.settings.MaxConcurrentImages
	if workers <= 0 {
		workers = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, im := range m.images {
		im := im // capture
		g.Go(func() error {
			return m.downloadImage(ctx, im)
		})
	}

	return g.Wait()
}

// GetProgress returns current download progress in tiles and images.
func (m *Manager) GetProgress() (tilesFetched, tilesTotal, imagesSaved, imagesTotal int32) {
	return atomic.LoadInt32(&m.fetchedTiles), m.totalTiles,
		atomic.LoadInt32(&m.savedImages), m.totalImages
}

// GetImageNames returns display names for all resolved images.
func (m *Manager) GetImageNames() []string {
	names := make([]string, len(m.images))
	for i, im := range m.images {
		label := im.Title
		if label == "" {
			label = im.Identity()
		}
		names[i] = fmt.Sprintf("%s (%dx%d, zoom %d)", label, im.Width, im.Height, m.zoomFor(im))
	}
	return names
}

func (m *Manager) parseInputURLs(input string) []string {
	lines := strings.Split(input, "\n")
	var urls []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" && (strings.HasPrefix(line, "http://") || strings.HasPrefix(line, "https://")) {
			urls = append(urls, line)
		}
	}
	return urls
}

func (m *Manager) collectDocument(ctx context.Context, pageURL string, visited map[string]bool) {
	if visited[pageURL] {
		return
	}
	visited[pageURL] = true

	m.progress(ProgressEvent{Message: fmt.Sprintf("Resolving document: %s", pageURL), Level: LevelVerbose})
	doc, err := m.resolver.ResolveDocument(ctx, pageURL)
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error resolving %s: %v", pageURL, err), Level: LevelError})
		return
	}

	m.documents = append(m.documents, doc)
	m.images = append(m.images, doc.Images...)
	m.progress(ProgressEvent{Message: fmt.Sprintf("Found document: %s (%d views, %d children)", doc.Identity(), len(doc.Images), len(doc.SubviewURLs)), Level: LevelInfo})

	if m.settings.Recursive {
		for _, child := range doc.SubviewURLs {
			m.collectDocument(ctx, child, visited)
		}
	}
}

func (m *Manager) calculateTotals() {
	for _, im := range m.images {
		m.totalImages++
		plan, err := untile.NewPlan(im, m.zoomFor(im))
		if err != nil {
			continue
		}
		m.totalTiles += int32(plan.Tiles())
	}
}

// zoomFor selects the zoom level for an image: the configured level, or the
// image's own maximum when the setting is zero.
func (m *Manager) zoomFor(im *model.TiledImage) int {
	if m.settings.ZoomLevel > 0 {
		return m.settings.ZoomLevel
	}
	return im.MaxZoom()
}

func (m *Manager) writeMetadata(ctx context.Context) error {
	if err := ioutils.EnsureDir(m.settings.OutputDir); err != nil {
		return err
	}
	for _, doc := range m.documents {
		path := doc.MetadataPath(m.settings.OutputDir)
		if err := ioutils.WriteJSON(ctx, path, doc); err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error writing metadata for %s: %v", doc.Identity(), err), Level: LevelWarning})
			continue
		}
		m.progress(ProgressEvent{Message: fmt.Sprintf("Wrote metadata: %s", path), Level: LevelVerbose})
	}
	for _, im := range m.images {
		path := im.MetadataPath(m.settings.OutputDir)
		if err := ioutils.WriteJSON(ctx, path, im); err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error writing metadata for %s: %v", im.Identity(), err), Level: LevelWarning})
			continue
		}
		m.progress(ProgressEvent{Message: fmt.Sprintf("Wrote metadata: %s", path), Level: LevelVerbose})
	}
	return nil
}

func (m *Manager) downloadImage(ctx context.Context, im *model.TiledImage) error {
	zoom := m.zoomFor(im)

	key := untile.CacheKey{Identity: im.Identity(), Zoom: zoom}
	if _, ok := m.memo.Get(key); ok {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Skipping already reconstructed: %s", im.Identity()), Level: LevelVerbose})
		return nil
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Reconstructing %s at zoom %d", im.Identity(), zoom), Level: LevelInfo})

	res, err := m.builder.Build(ctx, im, zoom, m.tileFetch)
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error reconstructing %s: %v", im.Identity(), err), Level: LevelError})
		return nil // Continue with other images
	}

	for _, f := range res.Failed {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Tile (%d,%d) of %s failed: %v", f.Coord.Col, f.Coord.Row, im.Identity(), f.Err), Level: LevelVerbose})
	}
	if res.TimedOut {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Timed out waiting for tiles of %s", im.Identity()), Level: LevelWarning})
	}

	path := im.OutputPath(m.settings.OutputDir)
	if err := ioutils.SaveRaster(ctx, path, res.Image); err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error saving %s: %v", path, err), Level: LevelError})
		return nil
	}

	m.memo.Put(key, res)
	atomic.AddInt32(&m.savedImages, 1)

	if res.Complete() {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Saved %s (%d/%d tiles)", path, res.TilesSucceeded, res.TilesRequested), Level: LevelSuccess})
	} else {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Saved %s with gaps (%d/%d tiles, %.0f%%)", path, res.TilesSucceeded, res.TilesRequested, res.SuccessRatio()*100), Level: LevelWarning})
	}
	return nil
}

// tileFetch wraps the transport to keep the fetched-tile counter current.
func (m *Manager) tileFetch(ctx context.Context, url string) ([]byte, error) {
	data, err := m.fetch(ctx, url)
	if err == nil {
		atomic.AddInt32(&m.fetchedTiles, 1)
	}
	return data, err
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
