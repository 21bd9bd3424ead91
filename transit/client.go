// transit/client.go
package transit

import (
	"context"
	"io"
	"net/http"
	"time"

	"stationboard-go/errcode"
	"stationboard-go/x/strx"
)

const (
	DefaultBaseURL = "https://api.wmata.com"
	userAgent      = "stationboard-go"

	predictionPath = "/StationPrediction.svc/json/GetPrediction/"
)

// Client fetches rail predictions. The API key travels as an opaque header;
// there is no further authentication.
type Client struct {
	hc   *http.Client
	base string
	key  string
}

// NewClient builds a client. hc may be nil (a 5s-timeout default is used);
// baseURL may be empty for the production endpoint.
func NewClient(hc *http.Client, baseURL, apiKey string) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 5 * time.Second}
	}
	return &Client{
		hc:   hc,
		base: strx.Coalesce(baseURL, DefaultBaseURL),
		key:  apiKey,
	}
}

// NextTrains returns the next arrivals for one station, or for every station
// with StationAll. An empty slice is a valid answer when the feed has no
// predictions.
func (c *Client) NextTrains(ctx context.Context, st Station) ([]Prediction, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+predictionPath+st.Code(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("api_key", c.key)
	req.Header.Set("User-Agent", userAgent)

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, &errcode.E{C: errcode.Upstream, Op: "next_trains", Msg: res.Status}
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	return decodePredictions(body)
}
