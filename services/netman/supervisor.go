// services/netman/supervisor.go
package netman

import (
	"context"
	"sync/atomic"
	"time"

	"stationboard-go/bus"
)

var (
	topicNetState = bus.Topic{"net", "state"}
	topicNetEvent = bus.Topic{"net", "event"}
)

// Config carries the supervisor's immutable inputs. Credentials are received
// read-only at spawn time; the supervisor never mutates or re-reads them.
type Config struct {
	SSID string
	Pass string

	// Unrecoverable decides whether a disconnect left the radio stack in a
	// state where further connect calls are useless until a full stop. The
	// trigger is an empirically observed hardware quirk, so it is injected
	// per radio rather than hardcoded. nil means plain retry/backoff always.
	Unrecoverable func(DisconnectEvent) bool
}

// Supervisor keeps a station-mode radio associated to one network for the
// lifetime of the device, recovering from failures with counted backoff and,
// for unrecoverable faults, a forced stop/reconfigure/restart.
type Supervisor struct {
	radio Radio
	cfg   Config
	conn  *bus.Connection // optional observability, may be nil

	state    atomic.Uint32
	failures atomic.Int32
}

// New builds a supervisor. conn may be nil; when present, state transitions
// are published retained on net/state and failures on net/event/#.
func New(radio Radio, cfg Config, conn *bus.Connection) *Supervisor {
	return &Supervisor{radio: radio, cfg: cfg, conn: conn}
}

// State returns the supervisor's observed radio state.
func (s *Supervisor) State() State { return State(s.state.Load()) }

// Online is the liveness signal other tasks read before using the network.
func (s *Supervisor) Online() bool { return s.State() == Connected }

// Failures returns the count of consecutive failed attempts since the last
// successful connect.
func (s *Supervisor) Failures() int { return int(s.failures.Load()) }

// Run drives the state machine until ctx is cancelled. On device builds the
// context never is: the supervisor has no normal termination.
func (s *Supervisor) Run(ctx context.Context) {
	println("[netman] supervisor running for ssid:", s.cfg.SSID)
	for ctx.Err() == nil {
		switch s.State() {
		case Stopped:
			s.startRadio(ctx)
		case StartedDisconnected:
			s.connect(ctx)
		case Connected:
			s.awaitDisconnect(ctx)
		default:
			s.setState(Stopped)
		}
	}
	println("[netman] supervisor stopped")
}

// startRadio applies credentials and brings the radio up. An already-started
// radio (e.g. right after boot) is left alone.
func (s *Supervisor) startRadio(ctx context.Context) {
	if !s.pause(ctx) {
		return
	}
	if err := s.radio.ApplyStationConfig(s.cfg.SSID, s.cfg.Pass); err != nil {
		println("[netman] apply config failed:", err.Error())
		s.fail("apply_config")
		return
	}
	if started, err := s.radio.IsStarted(); err == nil && started {
		s.setState(StartedDisconnected)
		return
	}
	if err := s.radio.Start(ctx); err != nil {
		println("[netman] start failed:", err.Error())
		s.fail("start")
		return
	}
	println("[netman] radio started")
	s.setState(StartedDisconnected)
}

func (s *Supervisor) connect(ctx context.Context) {
	if !s.pause(ctx) {
		return
	}
	s.setState(Connecting)
	if err := s.radio.Connect(ctx); err != nil {
		println("[netman] connect failed:", err.Error())
		s.fail("connect")
		s.setState(StartedDisconnected)
		return
	}
	s.failures.Store(0)
	s.setState(Connected)
	println("[netman] connected")
}

// awaitDisconnect parks until the radio reports the association is gone.
// A disconnect counts as a failure so a flapping link backs off instead of
// busy-looping.
func (s *Supervisor) awaitDisconnect(ctx context.Context) {
	select {
	case <-ctx.Done():
	case ev := <-s.radio.DisconnectEvents():
		println("[netman] disconnected:", ev.Desc)
		s.publishEvent("disconnected", ev.Desc)
		if s.cfg.Unrecoverable != nil && s.cfg.Unrecoverable(ev) {
			s.forceRestart(ctx)
			return
		}
		s.fail("disconnect")
		s.setState(StartedDisconnected)
	}
}

// forceRestart recovers from a radio stack that will not accept further
// connect calls: full stop, then reconfigure and start again from Stopped.
// Bypasses the failure counter, since connect retries cannot help here.
func (s *Supervisor) forceRestart(ctx context.Context) {
	println("[netman] unrecoverable radio fault, forcing restart")
	s.publishEvent("radio_fault", "forced restart")
	if err := s.radio.Disconnect(ctx); err != nil {
		println("[netman] disconnect failed:", err.Error())
	}
	if err := s.radio.Stop(ctx); err != nil {
		println("[netman] stop failed:", err.Error())
	}
	s.setState(Stopped)
}

func (s *Supervisor) fail(what string) {
	s.failures.Add(1)
	s.publishEvent("failure", what)
}

// pause awaits the current backoff delay. Returns false if ctx ended first.
func (s *Supervisor) pause(ctx context.Context) bool {
	d := Delay(s.Failures())
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func (s *Supervisor) setState(st State) {
	s.state.Store(uint32(st))
	if s.conn != nil {
		s.conn.Publish(s.conn.NewMessage(topicNetState, st.String(), true))
	}
}

func (s *Supervisor) publishEvent(kind, detail string) {
	if s.conn == nil {
		return
	}
	topic := append(append(bus.Topic{}, topicNetEvent...), kind)
	s.conn.Publish(s.conn.NewMessage(topic, detail, false))
}
