package listener

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"sync"
	"syscall"

	"github.com/iammegalith/telnet"
)

// TelnetListener serves the console over plain telnet.
type TelnetListener struct {
	host string
	port uint16
	cm   *ConnectionManager

	sessions sync.WaitGroup
}

func NewTelnetListener(host string, port uint16, cm *ConnectionManager) *TelnetListener {
	return &TelnetListener{
		host: host,
		port: port,
		cm:   cm,
	}
}

func (l *TelnetListener) Start(ctx context.Context) error {
	addr := net.JoinHostPort(l.host, strconv.Itoa(int(l.port)))

	// Sessions outlive Start's caller only until shutdown begins.
	connCtx, cancelConns := context.WithCancel(context.Background())
	defer cancelConns()

	svr := telnet.NewServer(addr, &telnetSessions{ctx: connCtx, l: l})
	stop := context.AfterFunc(ctx, func() {
		svr.Stop()
		cancelConns()
		l.sessions.Wait()
	})
	defer stop()

	slog.InfoContext(ctx, "listening for telnet", "addr", addr)
	err := svr.ListenAndServe()
	switch {
	case errors.Is(err, syscall.EADDRINUSE):
		return fmt.Errorf("telnet port %d is already in use", l.port)
	case err != nil && ctx.Err() == nil:
		return fmt.Errorf("serving telnet on %s: %w", addr, err)
	}
	return nil
}

// telnetSessions adapts the telnet server's handler to the connection manager.
type telnetSessions struct {
	ctx context.Context
	l   *TelnetListener
}

func (h *telnetSessions) HandleTelnet(conn *telnet.Connection) {
	h.l.sessions.Add(1)
	defer h.l.sessions.Done()
	defer func() {
		if err := conn.Close(); err != nil {
			slog.Warn("closing telnet connection", "port", h.l.port, "error", err)
		}
	}()

	h.l.cm.AcceptConnection(h.ctx, conn)
}
