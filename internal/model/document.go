package model

import "path/filepath"

// CollectionCategories lists the document categories that are collections of
// further documents rather than leaf records.
var CollectionCategories = []string{"CollectionIconography"}

// Property is one descriptive field scraped from a document page, such as an
// author or a date. A property keeps its display name together with every
// value the page lists for it.
type Property struct {
	// Name is the human-readable label of the property.
	Name string `json:"name"`

	// Values holds the property values in page order.
	Values []string `json:"values"`
}

// Document represents one record of the digital library: a page describing
// either a single digitized item or a collection with subviews.
//
// A Document may carry zero or more attached TiledImages (the scanned views)
// and zero or more subview URLs pointing at child documents.
type Document struct {
	// URL is the document page the record was scraped from.
	URL string `json:"url"`

	// ARK is the archival resource key of the document.
	ARK string `json:"ark"`

	// IID is the instance identifier scraped from the page.
	IID string `json:"iid"`

	// Category is the document type declared by the page (zmat JS variable).
	Category string `json:"category"`

	// ParentIID is the instance identifier of the parent document, if any.
	ParentIID string `json:"parent_iid"`

	// Properties maps property keys to their scraped name and values.
	Properties map[string]Property `json:"properties"`

	// PropertiesLang is the locale the properties were rendered in.
	PropertiesLang string `json:"properties_lang"`

	// Images holds the tiled images attached to this document.
	Images []*TiledImage `json:"images"`

	// SubviewURLs lists the URLs of child documents.
	SubviewURLs []string `json:"subview_urls"`
}

// Prop returns the named property and whether it exists.
func (d *Document) Prop(key string) (Property, bool) {
	p, ok := d.Properties[key]
	return p, ok
}

// IsCollection reports whether the document groups further documents, either
// by declared category or because it has subviews.
func (d *Document) IsCollection() bool {
	for _, c := range CollectionCategories {
		if d.Category == c {
			return true
		}
	}
	return len(d.SubviewURLs) > 0
}

// Identity returns a stable identifier for the document, preferring the ARK.
func (d *Document) Identity() string {
	if d.ARK != "" {
		return d.ARK
	}
	return d.URL
}

// MetadataPath returns the path the JSON metadata dump should be saved to
// under dir.
func (d *Document) MetadataPath(dir string) string {
	return filepath.Join(dir, SanitizeFileName(d.Identity())+".json")
}
