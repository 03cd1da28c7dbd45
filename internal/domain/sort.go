package domain

import "sort"

// restrictionRank maps a chain-control status code to its ordering weight.
// R-4 (closed) outranks lower restrictions; anything unrecognized, including
// unreported, ranks below R-0.
func restrictionRank(status Reported[string]) int {
	switch status.Or("") {
	case "R-4":
		return 4
	case "R-3":
		return 3
	case "R-2":
		return 2
	case "R-1":
		return 1
	case "R-0":
		return 0
	}
	return -1
}

// RestrictionActive reports whether a chain-control status carries an
// active restriction (R-1 through R-4).
func RestrictionActive(status Reported[string]) bool {
	return restrictionRank(status) >= 1
}

// priority computes an item's sort key for its type. Lower sorts earlier.
// Each type ranks operationally significant records first: in-service
// before out-of-service, then a type-specific informativeness rule.
func priority(it Item) (int, int) {
	switch it.Type {
	case TypeChainControl:
		var rank int
		if it.CC != nil {
			rank = restrictionRank(it.CC.StatusData.Status)
		} else {
			rank = -1
		}
		return rankBool(it.InService()), -rank
	case TypeCamera:
		return rankBool(it.InService()), rankBool(it.CCTV.HasCurrentImage())
	case TypeMessageSign:
		return rankBool(it.InService()), rankBool(it.CMS.HasMessage())
	case TypeWeatherStation:
		return rankBool(it.InService()), 0
	case TypeLaneClosure:
		return rankBool(it.LCS.Valid()), 0
	case TypeTravelTime:
		return rankBool(it.TT.Valid()), 0
	}
	return 0, 0
}

func rankBool(b bool) int {
	if b {
		return 0
	}
	return 1
}

// SortItems returns a new slice ordered by operational priority. The sort
// is stable: items with equal priority keep their upstream relative order,
// so re-sorting the same pull always yields the same sequence.
func SortItems(items []Item) []Item {
	type ranked struct {
		a, b int
		item Item
	}

	rs := make([]ranked, len(items))
	for i, it := range items {
		a, b := priority(it)
		rs[i] = ranked{a: a, b: b, item: it}
	}

	sort.SliceStable(rs, func(i, j int) bool {
		if rs[i].a != rs[j].a {
			return rs[i].a < rs[j].a
		}
		return rs[i].b < rs[j].b
	})

	sorted := make([]Item, len(items))
	for i, r := range rs {
		sorted[i] = r.item
	}
	return sorted
}
