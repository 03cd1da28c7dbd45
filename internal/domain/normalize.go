package domain

import "time"

// NormalizedItem is the flat, display-ready view of a feed record: the
// derived strings the site and the sink topic consume, with none of the
// upstream's sentinel or key-probing conventions left.
type NormalizedItem struct {
	ID           string   `json:"id"`
	Slug         string   `json:"slug"`
	Type         DataType `json:"type"`
	District     int      `json:"district"`
	Name         string   `json:"name,omitempty"`
	Highway      string   `json:"highway,omitempty"`
	Counties     []string `json:"counties,omitempty"`
	NearbyPlaces []string `json:"nearby_places,omitempty"`
	InService    bool     `json:"in_service"`

	ProcessedAt time.Time `json:"processed_at"`
}

// Normalize derives the flat view of an item pulled from the given
// district. Items without an upstream index have no stable identity and
// are not normalizable; the second return is false.
func Normalize(it Item, district int) (NormalizedItem, bool) {
	id, ok := ItemID(it, district)
	if !ok {
		return NormalizedItem{}, false
	}

	highway, _ := it.Highway()
	return NormalizedItem{
		ID:           id,
		Slug:         ItemSlug(it),
		Type:         it.Type,
		District:     district,
		Name:         it.LocationName(),
		Highway:      highway,
		Counties:     it.Counties(),
		NearbyPlaces: it.NearbyPlaces(),
		InService:    it.InService(),
		ProcessedAt:  clock.Now(),
	}, true
}
