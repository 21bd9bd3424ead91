// services/console/console.go
package console

import (
	"context"

	"github.com/google/shlex"

	"stationboard-go/bus"
	"stationboard-go/configstore"
	"stationboard-go/errcode"
	"stationboard-go/storage"
	"stationboard-go/x/conv"
)

var topicConfigSaved = bus.Topic{"config", "event", "saved"}

const maxLine = 160

// Port is the byte-stream serial port the console runs on: a tinygo-uartx
// UART on device, a scripted pipe in tests.
type Port interface {
	Write(p []byte) (int, error)
	RecvSomeContext(ctx context.Context, buf []byte) (int, error)
}

// Service is a line-oriented provisioning shell. It writes credentials to
// the reserved flash sector; the running supervisor keeps its spawn-time
// credentials, so a `set` takes effect on the next boot.
type Service struct {
	port Port
	dev  storage.Device
	conn *bus.Connection // optional, may be nil

	line []byte
}

func New(port Port, dev storage.Device, conn *bus.Connection) *Service {
	return &Service{port: port, dev: dev, conn: conn}
}

// Run reads the port until ctx is cancelled.
func (s *Service) Run(ctx context.Context) {
	s.writeLine("console ready, try 'help'")
	var buf [64]byte
	for {
		n, err := s.port.RecvSomeContext(ctx, buf[:])
		if err != nil {
			println("[console] stopping:", err.Error())
			return
		}
		for _, b := range buf[:n] {
			switch b {
			case '\r':
				// CRLF terminals; the '\n' does the work.
			case '\n':
				s.handleLine(string(s.line))
				s.line = s.line[:0]
			default:
				if len(s.line) < maxLine {
					s.line = append(s.line, b)
				}
			}
		}
	}
}

func (s *Service) handleLine(line string) {
	args, err := shlex.Split(line)
	if err != nil {
		s.writeErr(errcode.InvalidParams, "unbalanced quotes")
		return
	}
	if len(args) == 0 {
		return
	}

	switch args[0] {
	case "help":
		s.writeLine("commands:")
		s.writeLine("  show                      print stored credentials")
		s.writeLine("  set <ssid> <pass> <key>   store credentials (quote values with spaces)")
		s.writeLine("  clear                     erase stored credentials")
	case "show":
		s.cmdShow()
	case "set":
		s.cmdSet(args[1:])
	case "clear":
		s.cmdClear()
	default:
		s.writeErr(errcode.UnknownCommand, args[0])
	}
}

func (s *Service) cmdShow() {
	rec, err := configstore.Load(s.dev)
	if err != nil {
		s.writeErr(errcode.NoConfig, err.Error())
		return
	}
	var nbuf [8]byte
	s.writeLine("ssid:    " + rec.SSID())
	s.writeLine("pass:    <" + string(conv.Itoa(nbuf[:], int64(len(rec.Pass())))) + " bytes>")
	s.writeLine("api key: <" + string(conv.Itoa(nbuf[:], int64(len(rec.APIKey())))) + " bytes>")
}

func (s *Service) cmdSet(args []string) {
	if len(args) != 3 {
		s.writeErr(errcode.InvalidParams, "usage: set <ssid> <pass> <key>")
		return
	}
	rec, err := configstore.New(args[0], args[1], args[2])
	if err != nil {
		s.writeErr(errcode.InvalidParams, err.Error())
		return
	}
	if err := configstore.Save(rec, s.dev); err != nil {
		s.writeErr(errcode.StorageFail, err.Error())
		return
	}
	s.writeLine("saved, reboot to apply")
	if s.conn != nil {
		s.conn.Publish(s.conn.NewMessage(topicConfigSaved, rec.SSID(), false))
	}
}

func (s *Service) cmdClear() {
	if err := configstore.Clear(s.dev); err != nil {
		s.writeErr(errcode.StorageFail, err.Error())
		return
	}
	s.writeLine("cleared, fallback credentials apply on next boot")
}

func (s *Service) writeLine(msg string) {
	_, _ = s.port.Write([]byte(msg + "\r\n"))
}

func (s *Service) writeErr(c errcode.Code, detail string) {
	s.writeLine("err " + string(c) + ": " + detail)
}
