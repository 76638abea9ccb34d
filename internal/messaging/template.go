package messaging

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/pixil98/go-fps/internal/game"
)

// templateFuncs provides utility functions for templates.
var templateFuncs = sprig.TxtFuncMap()

// DefaultTemplates are the banner texts shown for notable events. Templates
// see the Notification being published.
var DefaultTemplates = map[game.EventKind]string{
	game.EventPlayerLevelUp:       "LEVEL UP! {{ .Previous }} → {{ .Current }}",
	game.EventPrestige:            "PRESTIGE {{ .Current }}!",
	game.EventWeaponLevelUp:       "{{ .Name }} LEVEL UP! {{ .Current }}",
	game.EventAttachmentUnlocked:  "{{ .ID | replace \"_\" \" \" | title }} unlocked for {{ .Name }}",
	game.EventKillStreakAvailable: "{{ .Name | upper }} AVAILABLE!",
	game.EventKillStreakActivated: "{{ .Name }} inbound",
	game.EventStorageCorrupted:    "Saved progress could not be read and was reset",
}

func parseTemplates(srcs map[game.EventKind]string) (map[game.EventKind]*template.Template, error) {
	out := make(map[game.EventKind]*template.Template, len(srcs))
	for kind, src := range srcs {
		tmpl, err := template.New(kind.String()).Funcs(templateFuncs).Parse(src)
		if err != nil {
			return nil, fmt.Errorf("parsing %s template: %w", kind, err)
		}
		out[kind] = tmpl
	}
	return out, nil
}

// ExpandTemplate expands a template string using the provided data.
func ExpandTemplate(tmplStr string, data any) (string, error) {
	tmpl, err := template.New("").Funcs(templateFuncs).Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}
	return execute(tmpl, data)
}

func execute(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	err := tmpl.Execute(&buf, data)
	if err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}
	return buf.String(), nil
}
