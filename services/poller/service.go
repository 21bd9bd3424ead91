// services/poller/service.go
package poller

import (
	"context"
	"time"

	"stationboard-go/bus"
	"stationboard-go/transit"
	"stationboard-go/x/conv"
)

var topicPredictions = bus.Topic{"transit", "predictions"}

const defaultInterval = 10 * time.Second

// Fetcher is the slice of the transit client the poller needs.
type Fetcher interface {
	NextTrains(ctx context.Context, st transit.Station) ([]transit.Prediction, error)
}

// Service polls the prediction feed on a fixed cadence. Before each fetch it
// reads the supervisor's liveness signal and skips the round while offline;
// fetch errors are logged and never fatal.
type Service struct {
	client   Fetcher
	station  transit.Station
	interval time.Duration
	online   func() bool
	conn     *bus.Connection // optional, may be nil
}

func New(client Fetcher, station transit.Station, interval time.Duration, online func() bool, conn *bus.Connection) *Service {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Service{
		client:   client,
		station:  station,
		interval: interval,
		online:   online,
		conn:     conn,
	}
}

// Run polls until ctx is cancelled. The first round happens immediately.
func (s *Service) Run(ctx context.Context) {
	tick := time.NewTicker(s.interval)
	defer tick.Stop()

	var row []byte
	for {
		s.pollOnce(ctx, &row)
		select {
		case <-ctx.Done():
			println("[poller] stopping")
			return
		case <-tick.C:
		}
	}
}

func (s *Service) pollOnce(ctx context.Context, row *[]byte) {
	if s.online != nil && !s.online() {
		println("[poller] offline, skipping fetch")
		return
	}

	preds, err := s.client.NextTrains(ctx, s.station)
	if err != nil {
		println("[poller] fetch failed:", err.Error())
		return
	}

	var nbuf [8]byte
	println("[poller] update, rows:", string(conv.Itoa(nbuf[:], int64(len(preds)))))
	for _, p := range preds {
		*row = transit.AppendDisplay((*row)[:0], p)
		println(string(*row))
	}

	if s.conn != nil {
		s.conn.Publish(s.conn.NewMessage(topicPredictions, preds, true))
	}
}
