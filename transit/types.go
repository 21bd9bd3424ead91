// transit/types.go
package transit

// Station is a rail station code as used by the prediction API, e.g. "K04".
type Station string

// Code returns the raw station code.
func (s Station) Code() string { return string(s) }

// A few commonly used codes. Any valid code string works.
const (
	StationAll         Station = "All"
	StationMetroCenter Station = "A01"
	StationGalleryPl   Station = "B01"
	StationCourtHouse  Station = "K01"
	StationBallston    Station = "K04"
)

// Prediction is one arrival row from the prediction feed. The feed reports
// minutes as a string: a number, "ARR" (arriving) or "BRD" (boarding).
type Prediction struct {
	Line            string // two-letter line code, e.g. "GR"
	Cars            string // car count, may be empty
	Destination     string // short destination name
	DestinationCode string
	DestinationName string
	LocationCode    string
	LocationName    string
	Min             string
}
