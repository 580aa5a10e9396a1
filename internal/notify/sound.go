package notify

import (
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/speaker"
)

const sampleRate = beep.SampleRate(44100)

var (
	speakerOnce sync.Once
	speakerErr  error
)

func initSpeaker() error {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(sampleRate, sampleRate.N(time.Second/10))
	})

	return speakerErr
}

// tone is a single note of the chime.
type tone struct {
	freq float64
	dur  time.Duration
}

var chimeTones = []tone{
	{freq: 880, dur: 120 * time.Millisecond},
	{freq: 0, dur: 60 * time.Millisecond},
	{freq: 1318.5, dur: 220 * time.Millisecond},
}

// chime builds the notification sound.
func chime() (beep.Streamer, error) {
	streams := make([]beep.Streamer, 0, len(chimeTones))

	for _, t := range chimeTones {
		n := sampleRate.N(t.dur)

		if t.freq == 0 {
			streams = append(streams, beep.Silence(n))
			continue
		}

		sine, err := generators.SineTone(sampleRate, t.freq)
		if err != nil {
			return nil, err
		}

		streams = append(streams, beep.Take(n, sine))
	}

	return &effects.Volume{
		Streamer: beep.Seq(streams...),
		Base:     2,
		Volume:   -2,
	}, nil
}

// playChime plays the chime and blocks until it has finished.
func playChime() error {
	if err := initSpeaker(); err != nil {
		return err
	}

	stream, err := chime()
	if err != nil {
		return err
	}

	done := make(chan struct{})

	speaker.Play(beep.Seq(stream, beep.Callback(func() {
		close(done)
	})))

	<-done

	return nil
}
