package game

import (
	"fmt"
	"regexp"

	"github.com/pixil98/go-errors"
)

var hexColorPattern = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

type Crosshair struct {
	Style     string  `json:"style"`
	Color     string  `json:"color"`
	Size      float64 `json:"size"`
	Gap       float64 `json:"gap"`
	Thickness float64 `json:"thickness"`
	Opacity   float64 `json:"opacity"`
	Dot       bool    `json:"dot"`
}

func (c *Crosshair) Validate() error {
	el := errors.NewErrorList()

	switch c.Style {
	case "default", "dot", "cross", "circle":
	default:
		el.Add(fmt.Errorf("crosshair style %q is not supported", c.Style))
	}
	if !hexColorPattern.MatchString(c.Color) {
		el.Add(fmt.Errorf("crosshair color %q must be a hex color", c.Color))
	}
	if c.Size < 0 || c.Gap < 0 || c.Thickness < 0 {
		el.Add(fmt.Errorf("crosshair dimensions must not be negative"))
	}
	if c.Opacity < 0 || c.Opacity > 1 {
		el.Add(fmt.Errorf("crosshair opacity must be between 0 and 1"))
	}

	return el.Err()
}

// AudioSettings are volume levels from 0 to 100.
type AudioSettings struct {
	Master  float64 `json:"master"`
	Music   float64 `json:"music"`
	Effects float64 `json:"effects"`
}

func (a *AudioSettings) Validate() error {
	el := errors.NewErrorList()
	for name, v := range map[string]float64{"master": a.Master, "music": a.Music, "effects": a.Effects} {
		if v < 0 || v > 100 {
			el.Add(fmt.Errorf("%s volume must be between 0 and 100", name))
		}
	}
	return el.Err()
}

type GraphicsSettings struct {
	Quality      string `json:"quality"`
	Shadows      bool   `json:"shadows"`
	AntiAliasing bool   `json:"antiAliasing"`
}

func (g *GraphicsSettings) Validate() error {
	switch g.Quality {
	case "low", "medium", "high", "ultra":
		return nil
	}
	return fmt.Errorf("graphics quality %q is not supported", g.Quality)
}

type ControlSettings struct {
	InvertY      bool `json:"invertY"`
	AutoReload   bool `json:"autoReload"`
	ToggleAim    bool `json:"toggleAim"`
	ToggleCrouch bool `json:"toggleCrouch"`
}

// Settings are the user preferences.
type Settings struct {
	Sensitivity float64          `json:"sensitivity"`
	FOV         float64          `json:"fov"`
	Brightness  float64          `json:"brightness"`
	Crosshair   Crosshair        `json:"crosshair"`
	Audio       AudioSettings    `json:"audio"`
	Graphics    GraphicsSettings `json:"graphics"`
	Controls    ControlSettings  `json:"controls"`
}

func (s *Settings) Validate() error {
	el := errors.NewErrorList()

	if s.Sensitivity <= 0 || s.Sensitivity > 10 {
		el.Add(fmt.Errorf("sensitivity must be greater than 0 and at most 10"))
	}
	if s.FOV < 60 || s.FOV > 120 {
		el.Add(fmt.Errorf("fov must be between 60 and 120"))
	}
	if s.Brightness < 0 || s.Brightness > 100 {
		el.Add(fmt.Errorf("brightness must be between 0 and 100"))
	}
	el.Add(s.Crosshair.Validate())
	el.Add(s.Audio.Validate())
	el.Add(s.Graphics.Validate())

	return el.Err()
}

// SettingsUpdate carries the settings groups to replace. Nil fields are left as is.
type SettingsUpdate struct {
	Sensitivity *float64
	FOV         *float64
	Brightness  *float64
	Crosshair   *Crosshair
	Audio       *AudioSettings
	Graphics    *GraphicsSettings
	Controls    *ControlSettings
}

func (u SettingsUpdate) apply(s *Settings) {
	setIf(&s.Sensitivity, u.Sensitivity)
	setIf(&s.FOV, u.FOV)
	setIf(&s.Brightness, u.Brightness)
	setIf(&s.Crosshair, u.Crosshair)
	setIf(&s.Audio, u.Audio)
	setIf(&s.Graphics, u.Graphics)
	setIf(&s.Controls, u.Controls)
}
