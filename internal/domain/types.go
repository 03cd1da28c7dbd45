package domain

import "fmt"

// DataType identifies one of the six CWWP feed families by its upstream
// type code.
type DataType string

const (
	TypeChainControl   DataType = "cc"
	TypeCamera         DataType = "cctv"
	TypeMessageSign    DataType = "cms"
	TypeLaneClosure    DataType = "lcs"
	TypeWeatherStation DataType = "rwis"
	TypeTravelTime     DataType = "tt"
)

// FeedType describes one feed family: its type code, human-readable display
// name, and the districts Caltrans publishes it for.
type FeedType struct {
	ID        DataType
	Name      string
	Districts []int
}

// feedTypes is the registry of published feeds. District coverage varies:
// chain controls stop at district 11, weather stations and travel times are
// only published for a handful of districts.
var feedTypes = []FeedType{
	{ID: TypeChainControl, Name: "Chain Controls", Districts: []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}},
	{ID: TypeCamera, Name: "CCTV", Districts: []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}},
	{ID: TypeMessageSign, Name: "Message Signs", Districts: []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}},
	{ID: TypeLaneClosure, Name: "Lane Closures", Districts: []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}},
	{ID: TypeWeatherStation, Name: "Weather Stations", Districts: []int{2, 3, 6, 8, 9, 10}},
	{ID: TypeTravelTime, Name: "Travel Times", Districts: []int{3, 8, 11, 12}},
}

// FeedTypes returns the registered feed families in catalog order.
func FeedTypes() []FeedType {
	out := make([]FeedType, len(feedTypes))
	copy(out, feedTypes)
	return out
}

// FeedTypeByID looks up a feed family by its type code.
func FeedTypeByID(id DataType) (FeedType, bool) {
	for _, ft := range feedTypes {
		if ft.ID == id {
			return ft, true
		}
	}
	return FeedType{}, false
}

// District is one of the twelve Caltrans administrative regions.
type District struct {
	ID   int
	Name string
}

// Districts lists all twelve districts in numeric order.
var Districts = []District{
	{1, "Eureka"},
	{2, "Redding"},
	{3, "Marysville"},
	{4, "Bay Area"},
	{5, "San Luis Obispo"},
	{6, "Fresno"},
	{7, "Los Angeles"},
	{8, "San Bernardino"},
	{9, "Bishop"},
	{10, "Stockton"},
	{11, "San Diego"},
	{12, "Orange County"},
}

// DistrictID renders a district number in the zero-padded two-digit form
// used in feed URLs and derived ids.
func DistrictID(district int) string {
	return fmt.Sprintf("%02d", district)
}

// FeedURL builds the upstream status URL for a (type, district) pull. The
// path carries the district twice: unpadded in the directory segment and
// zero-padded in the file name.
func FeedURL(baseURL string, id DataType, district int) string {
	return fmt.Sprintf("%s/data/d%d/%s/%sStatusD%s.json", baseURL, district, id, id, DistrictID(district))
}
