package biblio

import (
	"errors"
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/HueyNemud/grabs/internal/model"
)

var (
	arkRe       = regexp.MustCompile(`ark:/[^?#]+`)
	imageViewRe = regexp.MustCompile(`ark:.+/v\d+`)
	viewARKRe   = regexp.MustCompile(`(.+)/v(\d+)$`)

	manifestNameRe = regexp.MustCompile(`([^/]+)\.xml$`)

	normalFieldRe = regexp.MustCompile(`<div[^>]*class="[^"]*NormalField[^"]*"[^>]*>`)
	propKeyRe     = regexp.MustCompile(`property_([A-Za-z0-9_-]+)`)
	propNameRe    = regexp.MustCompile(`(?s)<span[^>]*>(.*?)</span>`)
	propValueRe   = regexp.MustCompile(`(?s)<div[^>]*>\s*<div[^>]*>(.*?)</div>`)

	tagRe = regexp.MustCompile(`<[^>]+>`)
)

// jsVar extracts the value of a JS variable declaration from a page.
// Both quoted and bare values are handled; returns "" when the variable is
// not declared.
func jsVar(page, name string) string {
	re := regexp.MustCompile(`var\s+` + regexp.QuoteMeta(name) + `\s*=\s*(.+?)\s*;`)
	m := re.FindStringSubmatch(page)
	if m == nil {
		return ""
	}
	return strings.Trim(m[1], `"'`)
}

// splitViewARK splits an image view ARK into its parent document ARK and the
// 1-based view number.
func splitViewARK(ark string) (parent string, number int, ok bool) {
	m := viewARKRe.FindStringSubmatch(ark)
	if m == nil {
		return "", 0, false
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return "", 0, false
	}
	return m[1], n, true
}

// manifestBaseName returns the manifest file name without its .xml
// extension, or "" when the URL does not end in .xml.
func manifestBaseName(manifestURL string) string {
	m := manifestNameRe.FindStringSubmatch(manifestURL)
	if m == nil {
		return ""
	}
	return m[1]
}

// unwrapManifest strips the JSON-string envelope the getTileSource endpoint
// wraps its payload in: the body is a quoted, backslash-escaped JSON object.
func unwrapManifest(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if len(raw) < 2 || raw[0] != '"' || raw[len(raw)-1] != '"' {
		return "", errors.New("unexpected tile source envelope")
	}
	return strings.ReplaceAll(raw[1:len(raw)-1], `\`, ""), nil
}

// unwrapJSONP strips the callback wrapper of a JSONP response, returning the
// JSON between the outermost parentheses.
func unwrapJSONP(raw string) (string, error) {
	open := strings.Index(raw, "(")
	end := strings.LastIndex(raw, ")")
	if open < 0 || end < open {
		return "", errors.New("unexpected JSONP envelope")
	}
	return raw[open+1 : end], nil
}

// parseProperties scrapes the NormalField blocks of a document page into
// keyed properties. Repeated blocks with the same property key accumulate
// their values in page order.
func parseProperties(page string) map[string]model.Property {
	locs := normalFieldRe.FindAllStringIndex(page, -1)
	if locs == nil {
		return map[string]model.Property{}
	}

	props := make(map[string]model.Property, len(locs))
	for i, loc := range locs {
		end := len(page)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		chunk := page[loc[0]:end]

		keyMatch := propKeyRe.FindStringSubmatch(chunk)
		if keyMatch == nil {
			continue
		}
		key := keyMatch[1]

		// The value block follows the name span in the same container.
		nameLoc := propNameRe.FindStringSubmatchIndex(chunk)
		if nameLoc == nil {
			continue
		}
		name := cleanText(chunk[nameLoc[2]:nameLoc[3]])

		var value string
		if m := propValueRe.FindStringSubmatch(chunk[nameLoc[1]:]); m != nil {
			value = cleanText(m[1])
		}
		if value == "" {
			continue
		}

		entry := props[key]
		if entry.Name == "" {
			entry.Name = name
		}
		entry.Values = append(entry.Values, value)
		props[key] = entry
	}
	return props
}

// cleanText strips markup and entities from a scraped HTML fragment.
func cleanText(fragment string) string {
	text := tagRe.ReplaceAllString(fragment, "")
	return strings.TrimSpace(html.UnescapeString(text))
}
