// Package sound provides fire-and-forget audio feedback for game events.
package sound

import (
	"bytes"
	"encoding/binary"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/bunbaker/bunbakery/internal/domain"
	"github.com/bunbaker/bunbakery/internal/logger"
)

const (
	SampleRate   = 44100
	ChannelCount = 1
)

// Compile-time interface check.
var _ domain.Notifier = (*Player)(nil)

// note is one synthesized tone segment.
type note struct {
	freq   float64
	dur    time.Duration
	square bool
}

// effects maps each game event to a short tone sequence. Squares read as
// harsh, sines as soft; rising sequences signal reward.
var effects = map[domain.Event][]note{
	domain.EventPlace:         {{freq: 320, dur: 60 * time.Millisecond}},
	domain.EventSuccess:       {{freq: 523, dur: 90 * time.Millisecond}, {freq: 659, dur: 90 * time.Millisecond}, {freq: 784, dur: 140 * time.Millisecond}},
	domain.EventWrong:         {{freq: 160, dur: 220 * time.Millisecond, square: true}},
	domain.EventBonus:         {{freq: 880, dur: 80 * time.Millisecond}, {freq: 1175, dur: 120 * time.Millisecond}},
	domain.EventLevelUp:       {{freq: 440, dur: 80 * time.Millisecond}, {freq: 554, dur: 80 * time.Millisecond}, {freq: 659, dur: 80 * time.Millisecond}, {freq: 880, dur: 160 * time.Millisecond}},
	domain.EventCoin:          {{freq: 988, dur: 60 * time.Millisecond}, {freq: 1319, dur: 110 * time.Millisecond}},
	domain.EventSizzle:        {{freq: 220, dur: 150 * time.Millisecond, square: true}},
	domain.EventChop:          {{freq: 500, dur: 40 * time.Millisecond, square: true}},
	domain.EventCustomerHappy: {{freq: 587, dur: 100 * time.Millisecond}, {freq: 740, dur: 140 * time.Millisecond}},
	domain.EventCustomerAngry: {{freq: 196, dur: 180 * time.Millisecond, square: true}, {freq: 147, dur: 220 * time.Millisecond, square: true}},
	domain.EventPurchase:      {{freq: 660, dur: 70 * time.Millisecond}, {freq: 880, dur: 120 * time.Millisecond}},
	domain.EventClick:         {{freq: 700, dur: 30 * time.Millisecond}},
}

// Player synthesizes and plays short PCM tones via oto. Playback is
// fire-and-forget; the game loop never blocks on audio.
type Player struct {
	ctx *oto.Context
	log *logger.Logger

	mu    sync.Mutex
	muted bool

	tones map[domain.Event][]byte
}

// NewPlayer creates an audio player. Initializes the system audio context
// and pre-renders every effect. Returns an error if the audio device is
// unavailable; callers should degrade to the log notifier.
func NewPlayer(log *logger.Logger) (*Player, error) {
	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: ChannelCount,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-readyChan

	tones := make(map[domain.Event][]byte, len(effects))
	for ev, seq := range effects {
		tones[ev] = render(seq)
	}

	log.Debug("audio player initialized (rate=%d, channels=%d, %d effects)", SampleRate, ChannelCount, len(tones))
	return &Player{ctx: ctx, log: log, tones: tones}, nil
}

// Notify plays the tone for an event without blocking the caller.
func (p *Player) Notify(ev domain.Event) {
	p.mu.Lock()
	muted := p.muted
	p.mu.Unlock()
	if muted {
		return
	}

	data, ok := p.tones[ev]
	if !ok {
		p.log.Warn("no effect for event %s", ev)
		return
	}

	go func() {
		player := p.ctx.NewPlayer(bytes.NewReader(data))
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		if err := player.Close(); err != nil {
			p.log.Debug("audio player: close: %v", err)
		}
	}()
}

// SetMuted toggles playback without tearing down the audio context.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	p.muted = muted
	p.mu.Unlock()
}

// Muted reports whether playback is suppressed.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// render synthesizes a note sequence into s16le mono PCM. Each note gets
// a linear decay envelope so segments end without clicks.
func render(seq []note) []byte {
	var out []byte
	for _, n := range seq {
		samples := int(float64(SampleRate) * n.dur.Seconds())
		buf := make([]byte, samples*2)
		for i := 0; i < samples; i++ {
			t := float64(i) / SampleRate
			v := math.Sin(2 * math.Pi * n.freq * t)
			if n.square {
				if v >= 0 {
					v = 1
				} else {
					v = -1
				}
			}
			env := 1 - float64(i)/float64(samples)
			sample := int16(v * env * 0.25 * math.MaxInt16)
			binary.LittleEndian.PutUint16(buf[i*2:], uint16(sample))
		}
		out = append(out, buf...)
	}
	return out
}
