// Command genmock writes mock CWWP status documents and their normalized
// counterparts for test suites and local development. It runs the actual
// domain normalization with a fixed clock so fixture ids and timestamps are
// reproducible.
//
// Usage:
//
//	go run ./cmd/genmock -out-dir data/mock -district 4
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/californiaroad/cwwp-catalog/internal/domain"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	outDir := flag.String("out-dir", "", "directory to write fixture files into")
	district := flag.Int("district", 4, "district number to stamp into fixtures")
	flag.Parse()

	if *outDir == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out-dir")
	}

	// Fixed clock for reproducible processed_at timestamps.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2026, time.January, 15, 8, 30, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	feeds := mockFeeds(*district)

	var normalized []domain.NormalizedItem
	for id, items := range feeds {
		name := fmt.Sprintf("%sStatusD%s.json", id, domain.DistrictID(*district))
		if err := writeJSON(filepath.Join(*outDir, name), map[string]any{"data": items}); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
		log.Printf("%s: %d records", name, len(items))

		for _, it := range domain.SortItems(items) {
			if norm, ok := domain.Normalize(it, *district); ok {
				normalized = append(normalized, norm)
			}
		}
	}

	normName := fmt.Sprintf("normalizedD%s.json", domain.DistrictID(*district))
	if err := writeJSON(filepath.Join(*outDir, normName), normalized); err != nil {
		return fmt.Errorf("writing %s: %w", normName, err)
	}
	log.Printf("%s: %d records", normName, len(normalized))
	return nil
}

// mockFeeds builds one small, representative document per feed family:
// in-service and out-of-service records, active and lifted restrictions,
// valid and endpoint-less line features.
func mockFeeds(district int) map[domain.DataType][]domain.Item {
	point := func(name, place, county string) domain.PointLocation {
		return domain.PointLocation{
			District:     domain.ReportedValue(district),
			LocationName: domain.ReportedValue(name),
			NearbyPlace:  domain.ReportedValue(place),
			County:       domain.ReportedValue(county),
		}
	}

	liveCam := domain.Item{Type: domain.TypeCamera, CCTV: &domain.CameraPayload{
		Index:     "401",
		Location:  point("I-80 at Gilman St", "Berkeley", "Alameda"),
		InService: domain.ReportedValue(true),
	}}
	liveCam.CCTV.ImageData.Static.CurrentImageURL = domain.ReportedValue("https://example.org/cam401.jpg")

	darkCam := domain.Item{Type: domain.TypeCamera, CCTV: &domain.CameraPayload{
		Index:     "402",
		Location:  point("US-101 at Broadway", "Burlingame", "San Mateo"),
		InService: domain.ReportedValue(false),
	}}

	chained := domain.Item{Type: domain.TypeChainControl, CC: &domain.ChainControlPayload{
		Index:     "SR89-1",
		Location:  point("SR-89 North of Truckee", "Truckee", "Nevada"),
		InService: domain.ReportedValue(true),
		StatusData: domain.ChainControlStatus{
			Status:            domain.ReportedValue("R-2"),
			StatusDescription: domain.ReportedValue("Chains required on all vehicles except 4WD with snow tires"),
		},
	}}

	lifted := domain.Item{Type: domain.TypeChainControl, CC: &domain.ChainControlPayload{
		Index:     "SR89-2",
		Location:  point("SR-89 South of Truckee", "Truckee", "Placer"),
		InService: domain.ReportedValue(true),
		StatusData: domain.ChainControlStatus{
			Status: domain.ReportedValue("R-0"),
		},
	}}

	sign := domain.Item{Type: domain.TypeMessageSign, CMS: &domain.MessageSignPayload{
		Index:     "30",
		Location:  point("I-80 at Powell St", "Emeryville", "Alameda"),
		InService: domain.ReportedValue(true),
		Message: domain.SignMessage{
			Display: domain.ReportedValue("1 Page (Normal)"),
			Phase1: domain.SignPhase1{
				Line1: domain.ReportedValue("CRASH AHEAD"),
				Line2: domain.ReportedValue("EXPECT DELAYS"),
			},
		},
	}}

	closure := domain.Item{Type: domain.TypeLaneClosure, LCS: &domain.LaneClosurePayload{
		Index: "C80-1",
		Location: domain.ClosureLocation{
			Begin: &domain.BeginLocation{
				District:     domain.ReportedValue(district),
				LocationName: domain.ReportedValue("I-80 at University Ave"),
				NearbyPlace:  domain.ReportedValue("Berkeley"),
				County:       domain.ReportedValue("Alameda"),
			},
			End: &domain.EndLocation{
				District:     domain.ReportedValue(district),
				LocationName: domain.ReportedValue("I-80 at Ashby Ave"),
				NearbyPlace:  domain.ReportedValue("Berkeley"),
				County:       domain.ReportedValue("Alameda"),
			},
		},
		Closure: &domain.ClosureDetails{
			TypeOfClosure: domain.ReportedValue("Lane"),
			TypeOfWork:    domain.ReportedValue("Paving"),
			LanesClosed:   domain.ReportedValue(1),
		},
	}}

	station := domain.Item{Type: domain.TypeWeatherStation, RWIS: &domain.WeatherStationPayload{
		Index:     "ST-9",
		Location:  point("SR-88 at Carson Pass", "Kirkwood", "Alpine"),
		InService: domain.ReportedValue(true),
	}}

	route := domain.Item{Type: domain.TypeTravelTime, TT: &domain.TravelTimePayload{
		Index: "1.1.1",
		Location: domain.RouteLocation{
			Begin: &domain.BeginLocation{
				District:     domain.ReportedValue(district),
				LocationName: domain.ReportedValue("Sacramento"),
				County:       domain.ReportedValue("Sacramento"),
			},
			End: &domain.EndLocation{
				District:     domain.ReportedValue(district),
				LocationName: domain.ReportedValue("Davis"),
				County:       domain.ReportedValue("Yolo"),
			},
		},
		TravelTime: &domain.TravelTimeData{
			CalculatedTravelTime: domain.ReportedValue(18),
		},
	}}

	return map[domain.DataType][]domain.Item{
		domain.TypeCamera:         {darkCam, liveCam},
		domain.TypeChainControl:   {lifted, chained},
		domain.TypeMessageSign:    {sign},
		domain.TypeLaneClosure:    {closure},
		domain.TypeWeatherStation: {station},
		domain.TypeTravelTime:     {route},
	}
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}
