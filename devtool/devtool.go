// Package devtool provides adapters that mirror brick state transitions
// to inspection tools: a console logger, an in-memory recorder, and an
// HTTP server exposing the recorder.
package devtool

import (
	"log/slog"

	"github.com/k0kubun/pp"
	"github.com/tj-513/bricksy-experimental/brick"
)

// Discard drops every transition. It is the adapter to attach when
// inspection is disabled.
var Discard brick.Devtool = discard{}

type discard struct{}

func (discard) Send(string, any) {}

// Multi fans out every transition to each sender in order.
func Multi(senders ...brick.Devtool) brick.Devtool {
	return multi(senders)
}

type multi []brick.Devtool

func (m multi) Send(label string, payload any) {
	for _, s := range m {
		s.Send(label, payload)
	}
}

// NewConsole returns an adapter that logs transitions through slog.
func NewConsole(name string) Console {
	return Console{name: name}
}

type Console struct {
	name string
}

func (c Console) Send(label string, payload any) {
	slog.Debug("State transition",
		slog.String("brick", c.name),
		slog.String("label", label),
		slog.String("payload", pp.Sprint(payload)),
	)
}
