// services/console/console_test.go
package console

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"stationboard-go/configstore"
	"stationboard-go/storage"
)

// scriptPort feeds scripted input and captures output.
type scriptPort struct {
	mu  sync.Mutex
	in  chan []byte
	out []byte
}

func newScriptPort() *scriptPort {
	return &scriptPort{in: make(chan []byte, 16)}
}

func (p *scriptPort) Write(b []byte) (int, error) {
	p.mu.Lock()
	p.out = append(p.out, b...)
	p.mu.Unlock()
	return len(b), nil
}

func (p *scriptPort) RecvSomeContext(ctx context.Context, buf []byte) (int, error) {
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case chunk := <-p.in:
		return copy(buf, chunk), nil
	}
}

func (p *scriptPort) send(s string) { p.in <- []byte(s) }

func (p *scriptPort) output() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return string(p.out)
}

func (p *scriptPort) waitForOutput(t *testing.T, want string) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(p.output(), want) {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("output %q never contained %q", p.output(), want)
}

func startConsole(t *testing.T) (*scriptPort, *storage.Mem) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	port := newScriptPort()
	dev := storage.NewMem(64*1024, 4096)
	go New(port, dev, nil).Run(ctx)
	return port, dev
}

func TestSetStoresValidRecord(t *testing.T) {
	port, dev := startConsole(t)

	port.send("set home secretpw key123\n")
	port.waitForOutput(t, "saved")

	rec, err := configstore.Load(dev)
	if err != nil {
		t.Fatalf("Load after set: %v", err)
	}
	if rec.SSID() != "home" || rec.Pass() != "secretpw" || rec.APIKey() != "key123" {
		t.Fatalf("stored %q %q %q", rec.SSID(), rec.Pass(), rec.APIKey())
	}
}

func TestSetQuotedSSID(t *testing.T) {
	port, dev := startConsole(t)

	port.send("set \"my wifi\" \"pass word\" key123\n")
	port.waitForOutput(t, "saved")

	rec, err := configstore.Load(dev)
	if err != nil {
		t.Fatal(err)
	}
	if rec.SSID() != "my wifi" || rec.Pass() != "pass word" {
		t.Fatalf("stored %q %q", rec.SSID(), rec.Pass())
	}
}

func TestSetOversizedRejectedAndNothingWritten(t *testing.T) {
	port, dev := startConsole(t)

	port.send("set " + strings.Repeat("a", 33) + " pw key\n")
	port.waitForOutput(t, "err invalid_params")

	if _, err := configstore.Load(dev); err == nil {
		t.Fatal("device has a record after rejected set")
	}
}

func TestSetUsage(t *testing.T) {
	port, _ := startConsole(t)
	port.send("set onlyssid\n")
	port.waitForOutput(t, "usage: set")
}

func TestShowWithoutConfig(t *testing.T) {
	port, _ := startConsole(t)
	port.send("show\n")
	port.waitForOutput(t, "err no_config")
}

func TestShowMasksSecrets(t *testing.T) {
	port, _ := startConsole(t)

	port.send("set home secretpw key123\n")
	port.waitForOutput(t, "saved")
	port.send("show\n")
	port.waitForOutput(t, "ssid:    home")

	out := port.output()
	if strings.Contains(out, "secretpw") || strings.Contains(out, "key123") {
		t.Fatalf("secrets leaked: %q", out)
	}
	if !strings.Contains(out, "<8 bytes>") {
		t.Fatalf("missing masked pass length: %q", out)
	}
}

func TestClear(t *testing.T) {
	port, dev := startConsole(t)

	port.send("set home secretpw key123\n")
	port.waitForOutput(t, "saved")
	port.send("clear\n")
	port.waitForOutput(t, "cleared")

	if _, err := configstore.Load(dev); err == nil {
		t.Fatal("record survived clear")
	}
}

func TestUnknownCommand(t *testing.T) {
	port, _ := startConsole(t)
	port.send("reboot\n")
	port.waitForOutput(t, "err unknown_command")
}

func TestSplitAcrossReads(t *testing.T) {
	port, dev := startConsole(t)

	// Command arrives byte-dribbled across reads.
	for _, b := range "set home secretpw key123\n" {
		port.send(string(b))
	}
	port.waitForOutput(t, "saved")

	if _, err := configstore.Load(dev); err != nil {
		t.Fatalf("Load: %v", err)
	}
}
