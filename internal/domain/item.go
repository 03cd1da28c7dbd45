package domain

import "encoding/json"

// RecordStamp is the shared record-timestamp wrapper. The epoch member is
// absent from several feed families.
type RecordStamp struct {
	RecordDate  Reported[string] `json:"recordDate"`
	RecordTime  Reported[string] `json:"recordTime"`
	RecordEpoch Reported[int64]  `json:"recordEpoch"`
}

// PointLocation is the single-coordinate location wrapper shared by the
// point feature families (cctv, cc, cms, rwis).
type PointLocation struct {
	District       Reported[int]     `json:"district"`
	LocationName   Reported[string]  `json:"locationName"`
	NearbyPlace    Reported[string]  `json:"nearbyPlace"`
	Longitude      Reported[float64] `json:"longitude"`
	Latitude       Reported[float64] `json:"latitude"`
	Elevation      Reported[float64] `json:"elevation"`
	Direction      Reported[string]  `json:"direction"`
	County         Reported[string]  `json:"county"`
	Route          Reported[string]  `json:"route"`
	RouteSuffix    Reported[string]  `json:"routeSuffix"`
	PostmilePrefix Reported[string]  `json:"postmilePrefix"`
	Postmile       Reported[float64] `json:"postmile"`
	Alignment      Reported[string]  `json:"alignment"`
	Milepost       Reported[float64] `json:"milepost"`
}

// BeginLocation is the begin endpoint of a line feature. Upstream prefixes
// every field name, so the begin and end shapes need distinct tag sets.
type BeginLocation struct {
	District       Reported[int]     `json:"beginDistrict"`
	LocationName   Reported[string]  `json:"beginLocationName"`
	Description    Reported[string]  `json:"beginFreeFormDescription"`
	NearbyPlace    Reported[string]  `json:"beginNearbyPlace"`
	Longitude      Reported[float64] `json:"beginLongitude"`
	Latitude       Reported[float64] `json:"beginLatitude"`
	Elevation      Reported[float64] `json:"beginElevation"`
	Direction      Reported[string]  `json:"beginDirection"`
	County         Reported[string]  `json:"beginCounty"`
	Route          Reported[string]  `json:"beginRoute"`
	RouteSuffix    Reported[string]  `json:"beginRouteSuffix"`
	PostmilePrefix Reported[string]  `json:"beginPostmilePrefix"`
	Postmile       Reported[float64] `json:"beginPostmile"`
	Alignment      Reported[string]  `json:"beginAlignment"`
	Milepost       Reported[float64] `json:"beginMilepost"`
}

// EndLocation is the end endpoint of a line feature.
type EndLocation struct {
	District       Reported[int]     `json:"endDistrict"`
	LocationName   Reported[string]  `json:"endLocationName"`
	Description    Reported[string]  `json:"endFreeFormDescription"`
	NearbyPlace    Reported[string]  `json:"endNearbyPlace"`
	Longitude      Reported[float64] `json:"endLongitude"`
	Latitude       Reported[float64] `json:"endLatitude"`
	Elevation      Reported[float64] `json:"endElevation"`
	Direction      Reported[string]  `json:"endDirection"`
	County         Reported[string]  `json:"endCounty"`
	Route          Reported[string]  `json:"endRoute"`
	RouteSuffix    Reported[string]  `json:"endRouteSuffix"`
	PostmilePrefix Reported[string]  `json:"endPostmilePrefix"`
	Postmile       Reported[float64] `json:"endPostmile"`
	Alignment      Reported[string]  `json:"endAlignment"`
	Milepost       Reported[float64] `json:"endMilepost"`
}

// CameraPayload is a cctv record: a camera location plus its image and
// stream URLs.
type CameraPayload struct {
	Index           string          `json:"index"`
	RecordTimestamp RecordStamp     `json:"recordTimestamp"`
	Location        PointLocation   `json:"location"`
	InService       Reported[bool]  `json:"inService"`
	ImageData       CameraImageData `json:"imageData"`
}

// CameraImageData wraps the streaming URL and static image set of a camera.
type CameraImageData struct {
	ImageDescription  Reported[string]   `json:"imageDescription"`
	StreamingVideoURL Reported[string]   `json:"streamingVideoURL"`
	Static            CameraStaticImages `json:"static"`
}

// CameraStaticImages holds the current snapshot and up to twelve reference
// images taken at increasing ages.
type CameraStaticImages struct {
	CurrentImageUpdateFrequency   Reported[int]    `json:"currentImageUpdateFrequency"`
	CurrentImageURL               Reported[string] `json:"currentImageURL"`
	ReferenceImageUpdateFrequency Reported[int]    `json:"referenceImageUpdateFrequency"`
	ReferenceImage1UpdateAgoURL   Reported[string] `json:"referenceImage1UpdateAgoURL"`
	ReferenceImage2UpdateAgoURL   Reported[string] `json:"referenceImage2UpdateAgoURL"`
	ReferenceImage3UpdateAgoURL   Reported[string] `json:"referenceImage3UpdateAgoURL"`
	ReferenceImage4UpdateAgoURL   Reported[string] `json:"referenceImage4UpdateAgoURL"`
	ReferenceImage5UpdateAgoURL   Reported[string] `json:"referenceImage5UpdateAgoURL"`
	ReferenceImage6UpdateAgoURL   Reported[string] `json:"referenceImage6UpdateAgoURL"`
	ReferenceImage7UpdateAgoURL   Reported[string] `json:"referenceImage7UpdateAgoURL"`
	ReferenceImage8UpdateAgoURL   Reported[string] `json:"referenceImage8UpdateAgoURL"`
	ReferenceImage9UpdateAgoURL   Reported[string] `json:"referenceImage9UpdateAgoURL"`
	ReferenceImage10UpdateAgoURL  Reported[string] `json:"referenceImage10UpdateAgoURL"`
	ReferenceImage11UpdateAgoURL  Reported[string] `json:"referenceImage11UpdateAgoURL"`
	ReferenceImage12UpdateAgoURL  Reported[string] `json:"referenceImage12UpdateAgoURL"`
}

// HasCurrentImage reports whether the camera has a resolvable current
// snapshot URL.
func (p *CameraPayload) HasCurrentImage() bool {
	return p != nil && p.ImageData.Static.CurrentImageURL.Known
}

// ChainControlPayload is a cc record: a control point and its restriction
// status.
type ChainControlPayload struct {
	Index           string             `json:"index"`
	RecordTimestamp RecordStamp        `json:"recordTimestamp"`
	Location        PointLocation      `json:"location"`
	InService       Reported[bool]     `json:"inService"`
	StatusData      ChainControlStatus `json:"statusData"`
}

// ChainControlStatus carries the restriction code (R-0 through R-4) and its
// free-text description.
type ChainControlStatus struct {
	StatusTimestamp   StatusStamp      `json:"statusTimestamp"`
	Status            Reported[string] `json:"status"`
	StatusDescription Reported[string] `json:"statusDescription"`
}

// StatusStamp is the date/time pair recording when a status last changed.
type StatusStamp struct {
	StatusDate Reported[string] `json:"statusDate"`
	StatusTime Reported[string] `json:"statusTime"`
}

// MessageSignPayload is a cms record: a sign location and its current
// multi-phase message.
type MessageSignPayload struct {
	Index           string         `json:"index"`
	RecordTimestamp RecordStamp    `json:"recordTimestamp"`
	Location        PointLocation  `json:"location"`
	InService       Reported[bool] `json:"inService"`
	Message         SignMessage    `json:"message"`
}

// SignMessage wraps the display mode and the two message phases.
type SignMessage struct {
	MessageTimestamp MessageStamp     `json:"messageTimestamp"`
	Display          Reported[string] `json:"display"`
	DisplayTime      Reported[string] `json:"displayTime"`
	Phase1           SignPhase1       `json:"phase1"`
	Phase2           SignPhase2       `json:"phase2"`
}

// MessageStamp is the date/time pair recording when the message changed.
type MessageStamp struct {
	MessageDate Reported[string] `json:"messageDate"`
	MessageTime Reported[string] `json:"messageTime"`
}

// SignPhase1 is the first message phase (up to three 16-character lines).
type SignPhase1 struct {
	Font  Reported[string] `json:"phase1Font"`
	Line1 Reported[string] `json:"phase1Line1"`
	Line2 Reported[string] `json:"phase1Line2"`
	Line3 Reported[string] `json:"phase1Line3"`
}

// SignPhase2 is the second message phase.
type SignPhase2 struct {
	Font  Reported[string] `json:"phase2Font"`
	Line1 Reported[string] `json:"phase2Line1"`
	Line2 Reported[string] `json:"phase2Line2"`
	Line3 Reported[string] `json:"phase2Line3"`
}

// HasMessage reports whether the sign is showing anything: a non-blank
// display mode and at least one non-blank line in either phase.
func (p *MessageSignPayload) HasMessage() bool {
	if p == nil {
		return false
	}
	if p.Message.Display.Or("") == "Blank" {
		return false
	}
	phase1 := p.Message.Phase1
	phase2 := p.Message.Phase2
	return hasLineText(phase1.Line1, phase1.Line2, phase1.Line3) ||
		hasLineText(phase2.Line1, phase2.Line2, phase2.Line3)
}

func hasLineText(lines ...Reported[string]) bool {
	for _, l := range lines {
		if trimmed(l) != "" {
			return true
		}
	}
	return false
}

// LaneClosurePayload is an lcs record: a closure segment and its metadata.
type LaneClosurePayload struct {
	Index           string          `json:"index"`
	RecordTimestamp RecordStamp     `json:"recordTimestamp"`
	Location        ClosureLocation `json:"location"`
	Closure         *ClosureDetails `json:"closure"`
}

// ClosureLocation is the begin/end pair a closure spans.
type ClosureLocation struct {
	TravelFlowDirection Reported[string] `json:"travelFlowDirection"`
	Begin               *BeginLocation   `json:"begin"`
	End                 *EndLocation     `json:"end"`
}

// ClosureDetails carries the closure's identity, schedule, and lane counts.
type ClosureDetails struct {
	ClosureID          Reported[string] `json:"closureID"`
	LogNumber          Reported[int]    `json:"logNumber"`
	ClosureTimestamp   ClosureStamp     `json:"closureTimestamp"`
	Facility           Reported[string] `json:"facility"`
	TypeOfClosure      Reported[string] `json:"typeOfClosure"`
	TypeOfWork         Reported[string] `json:"typeOfWork"`
	DurationOfClosure  Reported[string] `json:"durationOfClosure"`
	EstimatedDelay     Reported[int]    `json:"estimatedDelay"`
	LanesClosed        Reported[int]    `json:"lanesClosed"`
	TotalExistingLanes Reported[int]    `json:"totalExistingLanes"`
	IsCHINReportable   Reported[bool]   `json:"isCHINReportable"`
}

// ClosureStamp is the requested/start/end schedule of a closure. An
// indefinite closure carries the 2999-12-31 placeholder end date and the
// isClosureEndIndefinite flag.
type ClosureStamp struct {
	ClosureRequestDate     Reported[string] `json:"closureRequestDate"`
	ClosureRequestTime     Reported[string] `json:"closureRequestTime"`
	ClosureRequestEpoch    Reported[int64]  `json:"closureRequestEpoch"`
	ClosureStartDate       Reported[string] `json:"closureStartDate"`
	ClosureStartTime       Reported[string] `json:"closureStartTime"`
	ClosureStartEpoch      Reported[int64]  `json:"closureStartEpoch"`
	ClosureEndDate         Reported[string] `json:"closureEndDate"`
	ClosureEndTime         Reported[string] `json:"closureEndTime"`
	ClosureEndEpoch        Reported[int64]  `json:"closureEndEpoch"`
	IsClosureEndIndefinite Reported[bool]   `json:"isClosureEndIndefinite"`
}

// Valid reports whether the closure record is usable for display: it needs
// a begin location and closure metadata.
func (p *LaneClosurePayload) Valid() bool {
	return p != nil && p.Location.Begin != nil && p.Closure != nil
}

// WeatherStationPayload is an rwis record: a station location and its
// sensor readings.
type WeatherStationPayload struct {
	Index           string         `json:"index"`
	RecordTimestamp RecordStamp    `json:"recordTimestamp"`
	Location        PointLocation  `json:"location"`
	InService       Reported[bool] `json:"inService"`
	RwisData        WeatherData    `json:"rwisData"`
}

// WeatherData groups the station's sensor families. Sensor error values
// (65535, 1001, 361, ...) pass through as-is; only "Not Reported" is mapped
// to an unknown.
type WeatherData struct {
	StationData     StationData     `json:"stationData"`
	WindData        WindData        `json:"windData"`
	TemperatureData TemperatureData `json:"temperatureData"`
	HumidityPrecip  HumidityPrecip  `json:"humidityPrecipData"`
	VisibilityData  VisibilityData  `json:"visibilityData"`
	PavementSensors PavementSensors `json:"pavementSensorData"`
}

type StationData struct {
	EssAtmosphericPressure Reported[int] `json:"essAtmosphericPressure"`
}

type WindData struct {
	EssAvgWindDirection  Reported[int] `json:"essAvgWindDirection"`
	EssAvgWindSpeed      Reported[int] `json:"essAvgWindSpeed"`
	EssSpotWindDirection Reported[int] `json:"essSpotWindDirection"`
	EssSpotWindSpeed     Reported[int] `json:"essSpotWindSpeed"`
	EssMaxWindGustSpeed  Reported[int] `json:"essMaxWindGustSpeed"`
	EssMaxWindGustDir    Reported[int] `json:"essMaxWindGustDir"`
}

type TemperatureData struct {
	EssNumTemperatureSensors Reported[int]     `json:"essNumTemperatureSensors"`
	EssWetbulbTemp           Reported[float64] `json:"essWetbulbTemp"`
	EssDewpointTemp          Reported[float64] `json:"essDewpointTemp"`
	EssMaxTemp               Reported[float64] `json:"essMaxTemp"`
	EssMinTemp               Reported[float64] `json:"essMinTemp"`
}

type HumidityPrecip struct {
	EssRelativeHumidity     Reported[int]    `json:"essRelativeHumidity"`
	EssPrecipRate           Reported[int]    `json:"essPrecipRate"`
	EssPrecipSituation      Reported[string] `json:"essPrecipSituation"`
	EssPrecipitationOneHour Reported[int]    `json:"essPrecipitationOneHour"`
	EssPrecipitation24Hours Reported[int]    `json:"essPrecipitation24Hours"`
}

type VisibilityData struct {
	EssVisibility          Reported[int]    `json:"essVisibility"`
	EssVisibilitySituation Reported[string] `json:"essVisibilitySituation"`
}

type PavementSensors struct {
	NumEssPavementSensors   Reported[int] `json:"numEssPavementSensors"`
	NumEssSubSurfaceSensors Reported[int] `json:"numEssSubSurfaceSensors"`
}

// TravelTimePayload is a tt record: a route segment and its computed time.
type TravelTimePayload struct {
	Index           string          `json:"index"`
	RecordTimestamp RecordStamp     `json:"recordTimestamp"`
	Location        RouteLocation   `json:"location"`
	TravelTime      *TravelTimeData `json:"traveltime"`
}

// RouteLocation is the begin/end pair a travel-time route spans.
type RouteLocation struct {
	TrafficFlowDirection Reported[string] `json:"trafficFlowDirection"`
	Begin                *BeginLocation   `json:"begin"`
	End                  *EndLocation     `json:"end"`
}

// TravelTimeData carries the computed minutes and route identity.
type TravelTimeData struct {
	TravelTimeRouteID         Reported[int64]   `json:"traveltimeRouteID"`
	CalculatedTravelTime      Reported[int]     `json:"calculatedTraveltime"`
	RouteTravelTime           Reported[int]     `json:"routeTravelTime"`
	TravelTimeUpdateFrequency Reported[int]     `json:"traveltimeUpdateFrequency"`
	TravelTimeAccuracy        Reported[float64] `json:"traveltimeAccuracy"`
}

// Valid reports whether the travel-time record is usable for display: both
// endpoints and travel-time data must be present.
func (p *TravelTimePayload) Valid() bool {
	return p != nil && p.Location.Begin != nil && p.Location.End != nil && p.TravelTime != nil
}

// Item is the tagged union over the six feed families. Exactly one payload
// pointer is non-nil and Type names it; a record with no recognized wrapper
// key classifies as unknown (empty Type, all payloads nil).
type Item struct {
	Type DataType

	CC   *ChainControlPayload
	CCTV *CameraPayload
	CMS  *MessageSignPayload
	LCS  *LaneClosurePayload
	RWIS *WeatherStationPayload
	TT   *TravelTimePayload
}

// UnmarshalJSON classifies the record by its single wrapper key and decodes
// the matching payload. This is the one place the key-presence idiom of the
// upstream format is interpreted.
func (it *Item) UnmarshalJSON(data []byte) error {
	*it = Item{}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return err
	}

	decode := func(raw json.RawMessage, t DataType, payload any) error {
		if err := json.Unmarshal(raw, payload); err != nil {
			return err
		}
		it.Type = t
		return nil
	}

	switch {
	case wrapper["cctv"] != nil:
		it.CCTV = &CameraPayload{}
		return decode(wrapper["cctv"], TypeCamera, it.CCTV)
	case wrapper["cc"] != nil:
		it.CC = &ChainControlPayload{}
		return decode(wrapper["cc"], TypeChainControl, it.CC)
	case wrapper["cms"] != nil:
		it.CMS = &MessageSignPayload{}
		return decode(wrapper["cms"], TypeMessageSign, it.CMS)
	case wrapper["lcs"] != nil:
		it.LCS = &LaneClosurePayload{}
		return decode(wrapper["lcs"], TypeLaneClosure, it.LCS)
	case wrapper["rwis"] != nil:
		it.RWIS = &WeatherStationPayload{}
		return decode(wrapper["rwis"], TypeWeatherStation, it.RWIS)
	case wrapper["tt"] != nil:
		it.TT = &TravelTimePayload{}
		return decode(wrapper["tt"], TypeTravelTime, it.TT)
	}
	return nil
}

// MarshalJSON writes the item back in its single-key wrapper form.
func (it Item) MarshalJSON() ([]byte, error) {
	switch it.Type {
	case TypeCamera:
		return json.Marshal(map[string]*CameraPayload{"cctv": it.CCTV})
	case TypeChainControl:
		return json.Marshal(map[string]*ChainControlPayload{"cc": it.CC})
	case TypeMessageSign:
		return json.Marshal(map[string]*MessageSignPayload{"cms": it.CMS})
	case TypeLaneClosure:
		return json.Marshal(map[string]*LaneClosurePayload{"lcs": it.LCS})
	case TypeWeatherStation:
		return json.Marshal(map[string]*WeatherStationPayload{"rwis": it.RWIS})
	case TypeTravelTime:
		return json.Marshal(map[string]*TravelTimePayload{"tt": it.TT})
	}
	return []byte("{}"), nil
}
