package domain

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	whitespaceRe  = regexp.MustCompile(`\s+`)
	nonWordRe     = regexp.MustCompile(`[^\w-]+`)
	multiHyphenRe = regexp.MustCompile(`--+`)
	unsafeIndexRe = regexp.MustCompile(`[^a-zA-Z0-9.-]`)
)

// Slugify lowercases and trims text, turns whitespace runs into single
// hyphens, strips everything outside [a-z0-9_-], and collapses repeated
// hyphens. It is idempotent: Slugify(Slugify(s)) == Slugify(s).
func Slugify(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = whitespaceRe.ReplaceAllString(s, "-")
	s = nonWordRe.ReplaceAllString(s, "")
	s = multiHyphenRe.ReplaceAllString(s, "-")
	return s
}

// ItemSlug builds the URL path segment for an item from its display name
// and type display name, e.g. "i-80-at-donner-summit-cctv". Items that slug
// to nothing fall back to "unknown-{type}-item".
func ItemSlug(it Item) string {
	typeName := string(it.Type)
	if ft, ok := FeedTypeByID(it.Type); ok {
		typeName = ft.Name
	}

	name := it.LocationName()
	if name == "" {
		name = "unknown"
	}

	s := Slugify(name + "-" + typeName)
	if s == "" {
		s = fmt.Sprintf("unknown-%s-item", it.Type)
	}
	return s
}

// ItemID builds the stable identifier "{type}-d{district}-i{index}" for an
// item pulled from the given district. The same upstream record always
// yields the same id, which is what makes deep links durable across pulls.
// Items without an upstream index get no id; the second return is false.
func ItemID(it Item, district int) (string, bool) {
	index, ok := it.Index()
	if !ok {
		return "", false
	}

	safe := whitespaceRe.ReplaceAllString(index, "-")
	safe = unsafeIndexRe.ReplaceAllString(safe, "")
	if safe == "" {
		return "", false
	}

	return fmt.Sprintf("%s-d%s-i%s", it.Type, DistrictID(district), safe), true
}
