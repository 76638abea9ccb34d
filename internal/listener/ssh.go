package listener

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/crypto/ssh"
)

type SshListenerOpt func(*SshListener)

// WithAuthorizedKeys only admits clients holding one of keys. Without it any
// client may connect.
func WithAuthorizedKeys(keys []ssh.PublicKey) SshListenerOpt {
	return func(l *SshListener) {
		l.authorized = map[string]bool{}
		for _, k := range keys {
			l.authorized[string(k.Marshal())] = true
		}
	}
}

// SshListener serves the console over ssh. A shell request opens an
// interactive session; an exec request runs its command line as a single
// console command and closes.
type SshListener struct {
	host       string
	port       uint16
	cm         *ConnectionManager
	hostKey    ssh.Signer
	authorized map[string]bool
}

func NewSshListener(host string, port uint16, cm *ConnectionManager, hostKey ssh.Signer, opts ...SshListenerOpt) *SshListener {
	l := &SshListener{
		host:    host,
		port:    port,
		cm:      cm,
		hostKey: hostKey,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *SshListener) serverConfig() *ssh.ServerConfig {
	config := &ssh.ServerConfig{}
	if l.authorized == nil {
		config.NoClientAuth = true
	} else {
		config.PublicKeyCallback = func(meta ssh.ConnMetadata, key ssh.PublicKey) (*ssh.Permissions, error) {
			if l.authorized[string(key.Marshal())] {
				return &ssh.Permissions{}, nil
			}
			return nil, fmt.Errorf("key %s not authorized for %s", ssh.FingerprintSHA256(key), meta.User())
		}
	}
	config.AddHostKey(l.hostKey)
	return config
}

func (l *SshListener) Start(ctx context.Context) error {
	addr := net.JoinHostPort(l.host, strconv.Itoa(int(l.port)))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	slog.InfoContext(ctx, "listening for ssh", "addr", addr)

	return l.serve(ctx, ln)
}

// serve accepts connections from ln until ctx ends, then waits for open
// sessions to finish.
func (l *SshListener) serve(ctx context.Context, ln net.Listener) error {
	config := l.serverConfig()

	connCtx, cancelConns := context.WithCancel(context.Background())
	defer cancelConns()
	stop := context.AfterFunc(ctx, func() {
		ln.Close()
		cancelConns()
	})
	defer stop()

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			slog.ErrorContext(ctx, "accepting ssh connection", "error", err)
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			l.handleConn(connCtx, conn, config)
		}()
	}
}

func (l *SshListener) handleConn(ctx context.Context, conn net.Conn, config *ssh.ServerConfig) {
	defer conn.Close()

	sshConn, chans, reqs, err := ssh.NewServerConn(conn, config)
	if err != nil {
		slog.WarnContext(ctx, "ssh handshake", "remote", conn.RemoteAddr(), "error", err)
		return
	}
	defer sshConn.Close()
	stop := context.AfterFunc(ctx, func() { sshConn.Close() })
	defer stop()

	slog.InfoContext(ctx, "ssh client connected", "remote", conn.RemoteAddr(), "user", sshConn.User())
	go ssh.DiscardRequests(reqs)

	for newChan := range chans {
		if newChan.ChannelType() != "session" {
			newChan.Reject(ssh.UnknownChannelType, "only session channels are supported")
			continue
		}
		l.handleSession(ctx, newChan)
	}
}

// sessionStart is how the client asked to use a session channel.
type sessionStart struct {
	// command is set for exec requests.
	command string
}

func (l *SshListener) handleSession(ctx context.Context, newChan ssh.NewChannel) {
	ch, requests, err := newChan.Accept()
	if err != nil {
		slog.ErrorContext(ctx, "accepting ssh channel", "error", err)
		return
	}
	defer ch.Close()

	started := make(chan sessionStart, 1)
	go answerRequests(requests, started)

	var start sessionStart
	select {
	case start = <-started:
	case <-ctx.Done():
		return
	}

	var rw io.ReadWriter = newCRLFReadWriter(ch)
	if start.command != "" {
		rw = &execReadWriter{
			Reader: strings.NewReader(start.command + "\nquit\n"),
			Writer: rw,
		}
	}

	l.cm.AcceptConnection(ctx, rw)
	sendExitStatus(ch, 0)
}

// answerRequests replies to channel requests for the life of the channel and
// reports the first shell or exec request on started.
func answerRequests(in <-chan *ssh.Request, started chan<- sessionStart) {
	sent := false
	for req := range in {
		switch req.Type {
		case "shell", "exec":
			if sent {
				req.Reply(false, nil)
				continue
			}
			var start sessionStart
			if req.Type == "exec" {
				var payload struct{ Command string }
				if err := ssh.Unmarshal(req.Payload, &payload); err != nil {
					req.Reply(false, nil)
					continue
				}
				start.command = strings.TrimSpace(payload.Command)
			}
			req.Reply(true, nil)
			started <- start
			sent = true
		default:
			// pty-req included: the console is line based and relies on the
			// client's local echo.
			req.Reply(false, nil)
		}
	}
}

func sendExitStatus(ch ssh.Channel, status uint32) {
	payload := ssh.Marshal(struct{ Status uint32 }{status})
	ch.SendRequest("exit-status", false, payload)
}

// execReadWriter feeds a fixed script to the console while its output goes
// back to the client.
type execReadWriter struct {
	io.Reader
	io.Writer
}

// ParseAuthorizedKeys reads keys in authorized_keys format.
func ParseAuthorizedKeys(data []byte) ([]ssh.PublicKey, error) {
	var keys []ssh.PublicKey
	for len(bytes.TrimSpace(data)) > 0 {
		key, _, _, rest, err := ssh.ParseAuthorizedKey(data)
		if err != nil {
			return nil, fmt.Errorf("parsing authorized key %d: %w", len(keys)+1, err)
		}
		keys = append(keys, key)
		data = rest
	}
	return keys, nil
}
