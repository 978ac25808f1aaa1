package biblio

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	scheme = "https"
	host   = "bibliotheques-specialisees.paris.fr"
)

// SiteURL builds an absolute URL on the library site from a relative part
// such as an ARK or a REST path. Absolute URLs pass through unchanged.
func SiteURL(parts string) string {
	if strings.HasPrefix(parts, "http://") || strings.HasPrefix(parts, "https://") {
		return parts
	}
	return scheme + "://" + host + "/" + strings.TrimPrefix(parts, "/")
}

// IsImageViewURL reports whether a URL points at a single image view
// (an ARK with a /vNNNN suffix) rather than a document page.
func IsImageViewURL(u string) bool {
	return imageViewRe.MatchString(u)
}

// manifestEndpoint returns the REST URL resolving a deep-zoom manifest to
// its tile source JSON.
func manifestEndpoint(manifestURL string) string {
	return SiteURL("in/rest/pictureListSVC/getTileSource?deepZoomManifest=" + url.QueryEscape(manifestURL))
}

// childrenQuery returns the JSONP search URL listing the child documents of
// the given instance identifier.
func childrenQuery(iid string) string {
	q := url.Values{
		"callback": {""},
		"query":    {"*"},
		"fq":       {fmt.Sprintf(`parent_iid:%q`, iid)},
		"fl":       {"InterviewId"},
	}
	return SiteURL("in/rest/searchSVC/jsonp/geoquery?" + q.Encode())
}
