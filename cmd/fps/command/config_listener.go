package command

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"log/slog"
	"os"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-fps/internal/listener"
	"github.com/pixil98/go-service"
	"golang.org/x/crypto/ssh"
)

type ListenerType int

const (
	ListenerTypeTelnet ListenerType = iota
	ListenerTypeSSH
)

func (lt *ListenerType) UnmarshalText(text []byte) error {
	switch string(text) {
	case "telnet":
		*lt = ListenerTypeTelnet
	case "ssh":
		*lt = ListenerTypeSSH
	default:
		return fmt.Errorf("unknown listener type: %s", text)
	}
	return nil
}

// ConsoleConfig exposes the admin console over telnet or ssh.
type ConsoleConfig struct {
	MaxSessions int              `json:"max_sessions"`
	Listeners   []ListenerConfig `json:"listeners"`
}

func (c *ConsoleConfig) validate() error {
	el := errors.NewErrorList()

	if c.MaxSessions < 0 {
		el.Add(fmt.Errorf("consoles: max_sessions must not be negative"))
	}
	for i, l := range c.Listeners {
		if err := l.validate(); err != nil {
			el.Add(fmt.Errorf("consoles: listener %d: %w", i, err))
		}
	}

	return el.Err()
}

type ListenerConfig struct {
	Protocol    ListenerType `json:"protocol"`
	Host        string       `json:"host"`
	Port        uint16       `json:"port"`
	HostKeyPath string       `json:"host_key_path,omitempty"`
	// AuthorizedKeysPath restricts ssh consoles to the listed keys.
	AuthorizedKeysPath string `json:"authorized_keys_path,omitempty"`
}

func (cl *ListenerConfig) validate() error {
	el := errors.NewErrorList()

	if cl.Port == 0 {
		el.Add(fmt.Errorf("port must be set to a positive integer"))
	}
	if cl.Protocol != ListenerTypeSSH && (cl.HostKeyPath != "" || cl.AuthorizedKeysPath != "") {
		el.Add(fmt.Errorf("host_key_path and authorized_keys_path only apply to ssh listeners"))
	}

	return el.Err()
}

func (cl *ListenerConfig) BuildListener(cm *listener.ConnectionManager) (service.Worker, error) {
	switch cl.Protocol {
	case ListenerTypeTelnet:
		return listener.NewTelnetListener(cl.Host, cl.Port, cm), nil
	case ListenerTypeSSH:
		hostKey, err := cl.loadOrGenerateHostKey()
		if err != nil {
			return nil, fmt.Errorf("setting up ssh host key: %w", err)
		}
		var opts []listener.SshListenerOpt
		if cl.AuthorizedKeysPath != "" {
			data, err := os.ReadFile(cl.AuthorizedKeysPath)
			if err != nil {
				return nil, fmt.Errorf("reading authorized keys %q: %w", cl.AuthorizedKeysPath, err)
			}
			keys, err := listener.ParseAuthorizedKeys(data)
			if err != nil {
				return nil, fmt.Errorf("loading authorized keys %q: %w", cl.AuthorizedKeysPath, err)
			}
			opts = append(opts, listener.WithAuthorizedKeys(keys))
		}
		return listener.NewSshListener(cl.Host, cl.Port, cm, hostKey, opts...), nil
	default:
		return nil, fmt.Errorf("unknown listener type: %v", cl.Protocol)
	}
}

func (cl *ListenerConfig) loadOrGenerateHostKey() (ssh.Signer, error) {
	if cl.HostKeyPath != "" {
		keyBytes, err := os.ReadFile(cl.HostKeyPath)
		if err != nil {
			return nil, fmt.Errorf("reading host key %q: %w", cl.HostKeyPath, err)
		}
		signer, err := ssh.ParsePrivateKey(keyBytes)
		if err != nil {
			return nil, fmt.Errorf("parsing host key %q: %w", cl.HostKeyPath, err)
		}
		return signer, nil
	}

	slog.Warn("no host_key_path configured for ssh console, generating ephemeral key", "port", cl.Port)
	_, privKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generating ephemeral key: %w", err)
	}
	signer, err := ssh.NewSignerFromKey(privKey)
	if err != nil {
		return nil, fmt.Errorf("creating signer from ephemeral key: %w", err)
	}
	return signer, nil
}
