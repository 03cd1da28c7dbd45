package domain

import (
	"regexp"
	"strings"
)

// highwayRe matches a route designation at the start of a location name,
// e.g. "I-80 at Donner Summit" or "SR99 Bridge". The hyphen is optional
// because upstream naming is inconsistent.
var highwayRe = regexp.MustCompile(`(?i)^(I|US|SR|OR)-?(\d+)`)

// pointLocation returns the single location of a point feature, or nil for
// line features, unknown items, and items missing their payload.
func (it Item) pointLocation() *PointLocation {
	switch it.Type {
	case TypeCamera:
		if it.CCTV != nil {
			return &it.CCTV.Location
		}
	case TypeChainControl:
		if it.CC != nil {
			return &it.CC.Location
		}
	case TypeMessageSign:
		if it.CMS != nil {
			return &it.CMS.Location
		}
	case TypeWeatherStation:
		if it.RWIS != nil {
			return &it.RWIS.Location
		}
	}
	return nil
}

// span returns the begin/end pair of a line feature; both are nil for point
// features and unknown items.
func (it Item) span() (*BeginLocation, *EndLocation) {
	switch it.Type {
	case TypeLaneClosure:
		if it.LCS != nil {
			return it.LCS.Location.Begin, it.LCS.Location.End
		}
	case TypeTravelTime:
		if it.TT != nil {
			return it.TT.Location.Begin, it.TT.Location.End
		}
	}
	return nil, nil
}

// LocationName derives the display name for an item. Point features use
// their location name directly. Line features join distinct begin/end names
// with an arrow; if only one endpoint is named, that name stands alone.
// Unknown or nameless items yield "".
func (it Item) LocationName() string {
	if loc := it.pointLocation(); loc != nil {
		return trimmed(loc.LocationName)
	}

	begin, end := it.span()
	var beginName, endName string
	if begin != nil {
		beginName = trimmed(begin.LocationName)
	}
	if end != nil {
		endName = trimmed(end.LocationName)
	}
	if beginName != "" && endName != "" && beginName != endName {
		return beginName + " → " + endName
	}
	if beginName != "" {
		return beginName
	}
	return endName
}

// Highway extracts a canonical highway token ("I-80", "SR-99") from a
// location name. The second return is false when the name does not start
// with a recognized route designation; this is a heuristic over free text,
// not a structured field.
func Highway(locationName string) (string, bool) {
	m := highwayRe.FindStringSubmatch(locationName)
	if m == nil {
		return "", false
	}
	return strings.ToUpper(m[1]) + "-" + m[2], true
}

// Highway extracts the highway token from the item's display name.
func (it Item) Highway() (string, bool) {
	return Highway(it.LocationName())
}

// NearbyPlaces collects the item's nearby-place fields: one for point
// features, up to two (begin and end) for line features. Unreported values
// are dropped.
func (it Item) NearbyPlaces() []string {
	if loc := it.pointLocation(); loc != nil {
		return collect(loc.NearbyPlace)
	}
	begin, end := it.span()
	var b, e Reported[string]
	if begin != nil {
		b = begin.NearbyPlace
	}
	if end != nil {
		e = end.NearbyPlace
	}
	return collect(b, e)
}

// Counties collects the item's county fields with the same begin/end
// handling as NearbyPlaces.
func (it Item) Counties() []string {
	if loc := it.pointLocation(); loc != nil {
		return collect(loc.County)
	}
	begin, end := it.span()
	var b, e Reported[string]
	if begin != nil {
		b = begin.County
	}
	if end != nil {
		e = end.County
	}
	return collect(b, e)
}

// District returns the item's district number, taken from the begin
// location for line features. Zero means unreported.
func (it Item) District() int {
	if loc := it.pointLocation(); loc != nil {
		return loc.District.Or(0)
	}
	if begin, _ := it.span(); begin != nil {
		return begin.District.Or(0)
	}
	return 0
}

// Index returns the item's upstream index field. The second return is false
// for unknown items and records published without an index.
func (it Item) Index() (string, bool) {
	var idx string
	switch it.Type {
	case TypeCamera:
		if it.CCTV != nil {
			idx = it.CCTV.Index
		}
	case TypeChainControl:
		if it.CC != nil {
			idx = it.CC.Index
		}
	case TypeMessageSign:
		if it.CMS != nil {
			idx = it.CMS.Index
		}
	case TypeWeatherStation:
		if it.RWIS != nil {
			idx = it.RWIS.Index
		}
	case TypeLaneClosure:
		if it.LCS != nil {
			idx = it.LCS.Index
		}
	case TypeTravelTime:
		if it.TT != nil {
			idx = it.TT.Index
		}
	}
	if idx == "" {
		return "", false
	}
	return idx, true
}

// InService reports whether the item is marked in service. Line features
// and unreported values count as not in service.
func (it Item) InService() bool {
	switch it.Type {
	case TypeCamera:
		return it.CCTV != nil && it.CCTV.InService.Or(false)
	case TypeChainControl:
		return it.CC != nil && it.CC.InService.Or(false)
	case TypeMessageSign:
		return it.CMS != nil && it.CMS.InService.Or(false)
	case TypeWeatherStation:
		return it.RWIS != nil && it.RWIS.InService.Or(false)
	}
	return false
}

func trimmed(r Reported[string]) string {
	return strings.TrimSpace(r.Or(""))
}

func collect(values ...Reported[string]) []string {
	var out []string
	for _, v := range values {
		if s := trimmed(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}
