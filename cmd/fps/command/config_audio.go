package command

import (
	"fmt"

	"github.com/gopxl/beep"
	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-fps/internal/audio"
)

type AudioConfig struct {
	Enabled    bool `json:"enabled"`
	SampleRate int  `json:"sample_rate"`
	Muted      bool `json:"muted"`
}

func (c *AudioConfig) validate() error {
	el := errors.NewErrorList()

	if c.SampleRate != 0 && (c.SampleRate < 8000 || c.SampleRate > 192000) {
		el.Add(fmt.Errorf("audio: sample_rate %d out of range", c.SampleRate))
	}

	return el.Err()
}

func (c *AudioConfig) buildSynth(opts ...audio.SynthOpt) *audio.Synth {
	if c.SampleRate != 0 {
		opts = append(opts, audio.WithSampleRate(beep.SampleRate(c.SampleRate)))
	}
	if c.Muted {
		opts = append(opts, audio.WithMuted(true))
	}
	return audio.NewSynth(opts...)
}
