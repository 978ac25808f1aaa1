package dto

// Picture is one entry of the pictureList JS variable embedded in viewer
// and document pages.
type Picture struct {
	DeepZoomManifest string `json:"deepZoomManifest"`
	Pagination       string `json:"pagination"`
	Description      string `json:"description"`
}

// SearchResults is the payload of the searchSVC geoquery endpoint after the
// JSONP wrapper has been stripped.
type SearchResults struct {
	Results []SearchResult `json:"results"`
}

// SearchResult is one child record of a query; only the InterviewId field
// is requested.
type SearchResult struct {
	InterviewID *FieldValue `json:"InterviewId"`
}

// FieldValue wraps a single field value of a search result.
type FieldValue struct {
	Value string `json:"value"`
}
