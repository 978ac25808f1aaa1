package model

import (
	"path/filepath"
	"testing"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"normal-file.jpg", "normal-file.jpg"},
		{"ark:_73873_pf0000123", "ark__73873_pf0000123"},
		{"file:with:colons.png", "file_with_colons.png"},
		{"file/with\\slashes.jpg", "file_with_slashes.jpg"},
		{"file<with>brackets.jpg", "file_with_brackets.jpg"},
		{"file?with*wildcards.jpg", "file_with_wildcards.jpg"},
		{"trailing dots...", "trailing dots"},
		{"multiple   spaces", "multiple spaces"},
		{"trailing spaces   ", "trailing spaces"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := SanitizeFileName(tt.input)
			if got != tt.want {
				t.Errorf("SanitizeFileName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTiledImage_MaxZoom(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		tileSize      int
		want          int
	}{
		// 4000/256 = 15.6, log2 = 3.96 -> floor 3
		{"landscape 4000x3000", 4000, 3000, 256, 13},
		// height dominates: 8192/256 = 32, log2 = 5
		{"portrait 3000x8192", 3000, 8192, 256, 15},
		// exactly one tile: log2(1) = 0
		{"single tile", 256, 256, 256, 10},
		{"two tiles wide", 512, 256, 256, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			im := &TiledImage{Width: tt.width, Height: tt.height, TileSize: tt.tileSize}
			if got := im.MaxZoom(); got != tt.want {
				t.Errorf("MaxZoom() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTiledImage_Identity(t *testing.T) {
	im := &TiledImage{ARK: "ark:/73873/pf123/v0001", IID: "iid-1", TilesURL: "https://host/tiles"}
	if got := im.Identity(); got != "ark:/73873/pf123/v0001" {
		t.Errorf("Identity() = %q, want ARK", got)
	}

	im.ARK = ""
	if got := im.Identity(); got != "iid-1" {
		t.Errorf("Identity() = %q, want IID fallback", got)
	}

	im.IID = ""
	if got := im.Identity(); got != "https://host/tiles" {
		t.Errorf("Identity() = %q, want tiles URL fallback", got)
	}
}

func TestTiledImage_Paths(t *testing.T) {
	im := &TiledImage{
		ARK:      "ark:/73873/pf123/v0001",
		FileName: "pf123_0001.jpg",
		Format:   "jpg",
	}

	if got, want := im.OutputPath("/out"), filepath.Join("/out", "pf123_0001.jpg"); got != want {
		t.Errorf("OutputPath = %q, want %q", got, want)
	}
	if got, want := im.MetadataPath("/out"), filepath.Join("/out", "ark__73873_pf123_v0001.json"); got != want {
		t.Errorf("MetadataPath = %q, want %q", got, want)
	}

	// Without a file name, fall back to the sanitized identity.
	im.FileName = ""
	if got, want := im.OutputPath("/out"), filepath.Join("/out", "ark__73873_pf123_v0001.jpg"); got != want {
		t.Errorf("OutputPath without FileName = %q, want %q", got, want)
	}
}

func TestDocument_IsCollection(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		want bool
	}{
		{"leaf record", Document{Category: "Iconography"}, false},
		{"collection category", Document{Category: "CollectionIconography"}, true},
		{"has subviews", Document{Category: "Iconography", SubviewURLs: []string{"https://host/child"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.doc.IsCollection(); got != tt.want {
				t.Errorf("IsCollection() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDocument_Prop(t *testing.T) {
	doc := Document{
		Properties: map[string]Property{
			"author": {Name: "Auteur", Values: []string{"Atget, Eugène"}},
		},
	}

	p, ok := doc.Prop("author")
	if !ok {
		t.Fatal("Prop(author) not found")
	}
	if p.Name != "Auteur" || len(p.Values) != 1 {
		t.Errorf("unexpected property: %+v", p)
	}

	if _, ok := doc.Prop("missing"); ok {
		t.Error("Prop(missing) should not be found")
	}
}
