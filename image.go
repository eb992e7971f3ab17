package pageblocks

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ResolveImageURL turns an image source attribute into a fetchable URL.
// Absolute http(s) URLs pass through, "//host" URLs take the page scheme,
// "/path" sources are appended to the site root, and other relative
// sources are resolved against the page URL. An empty page falls back to
// the root.
func ResolveImageURL(src, root, page string) (string, error) {
	if page == "" {
		page = root
	}
	src = strings.TrimSpace(src)
	switch {
	case src == "":
		return "", Errorf(EINVALID, "empty image source")
	case strings.HasPrefix(src, "data:"):
		return "", Errorf(EUNRECOGNIZED, "inline data image")
	case strings.HasPrefix(src, "https:"), strings.HasPrefix(src, "http:"):
		return src, nil
	case strings.HasPrefix(src, "//"):
		scheme := "https"
		if u, err := url.Parse(page); err == nil && u.Scheme != "" {
			scheme = u.Scheme
		}
		return scheme + ":" + src, nil
	case strings.HasPrefix(src, "/"):
		return strings.TrimSuffix(root, "/") + src, nil
	}

	b, err := url.Parse(page)
	if err != nil || !b.IsAbs() {
		return "", Errorf(EINVALID, "cannot resolve image %q against page %q", src, page)
	}
	ref, err := url.Parse(src)
	if err != nil {
		return "", Errorf(EINVALID, "invalid image source %q: %v", src, err)
	}
	return b.ResolveReference(ref).String(), nil
}

// SniffImageType returns the image type of a URL from its extension:
// png, jpg (for jpg and jpeg), tiff or svg. When the URL itself does not
// end in a known extension, the query string is stripped from the last
// path segment and the check is repeated once.
// Returns EUNRECOGNIZED if neither check matches.
func SniffImageType(rawURL string) (string, error) {
	if typ := imageTypeBySuffix(rawURL); typ != "" {
		return typ, nil
	}

	name := rawURL[strings.LastIndex(rawURL, "/")+1:]
	if i := strings.Index(name, "?"); i >= 0 {
		name = name[:i]
	}
	if typ := imageTypeBySuffix(name); typ != "" {
		return typ, nil
	}

	return "", Errorf(EUNRECOGNIZED, "unrecognized image type: %s", rawURL)
}

func imageTypeBySuffix(s string) string {
	s = strings.ToLower(s)
	switch {
	case strings.HasSuffix(s, "png"):
		return "png"
	case strings.HasSuffix(s, "jpg"), strings.HasSuffix(s, "jpeg"):
		return "jpg"
	case strings.HasSuffix(s, "tiff"):
		return "tiff"
	case strings.HasSuffix(s, "svg"):
		return "svg"
	}
	return ""
}

// ImageName returns the local name of the counter-th image of a crawl.
func ImageName(counter int, typ string) string {
	return fmt.Sprintf("image%d.%s", counter, typ)
}

// DocumentImageName rewrites an extraction-time image name such as
// "image7.png" into its document-store form "image<docID>_7.png".
// The numeric part is preserved exactly.
func DocumentImageName(name, docID string) (string, error) {
	core, typ, ok := strings.Cut(strings.TrimPrefix(name, "image"), ".")
	if !strings.HasPrefix(name, "image") || !ok || typ == "" || strings.Contains(typ, ".") {
		return "", Errorf(EINVALID, "malformed image name %q", name)
	}
	if _, err := strconv.ParseUint(core, 10, 64); err != nil {
		return "", Errorf(EINVALID, "malformed image name %q", name)
	}
	return "image" + docID + "_" + core + "." + typ, nil
}
