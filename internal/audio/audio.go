// Package audio plays synthesized movement sounds through beep. Footsteps
// and landing thumps are generated procedurally rather than loaded from
// clips, and are attenuated by distance from the listener.
package audio

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/Versifine/stride/internal/anim"
	"github.com/Versifine/stride/internal/config"
)

const sampleRate = beep.SampleRate(48000)

// footstepVariants is the number of pitch variants cycled through at random
// so consecutive steps do not sound machine-stamped.
const footstepVariants = 4

// Sink mixes movement sounds onto the speaker. All methods are safe to call
// on an uninitialized or disabled sink; they simply do nothing.
type Sink struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	rng         *rand.Rand
	listener    mgl64.Vec3
	volume      float64
	rolloff     float64
	enabled     bool
	initialized bool
}

func NewSink(cfg config.AudioConfig) *Sink {
	return &Sink{
		mixer:   &beep.Mixer{},
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		volume:  cfg.Volume,
		rolloff: cfg.RolloffPerUnit,
		enabled: cfg.Enabled,
	}
}

// Init opens the speaker. A failure leaves the sink in its no-op state, so
// the simulation keeps running without sound.
func (s *Sink) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled || s.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

func (s *Sink) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	s.mixer.Clear()
	s.initialized = false
}

// Attach subscribes the sink to animation-clip events.
func (s *Sink) Attach(events *anim.Events) {
	events.Subscribe(anim.EventFootstep, s.OnFootstep)
	events.Subscribe(anim.EventLand, s.OnLand)
}

// SetListener records the listener position used for distance attenuation.
// Called once per frame with the camera position.
func (s *Sink) SetListener(pos mgl64.Vec3) {
	s.mu.Lock()
	s.listener = pos
	s.mu.Unlock()
}

func (s *Sink) OnFootstep(evt anim.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	vol := s.attenuatedLocked(evt.Position)
	if vol <= 0 {
		return
	}
	variant := s.rng.Intn(footstepVariants)
	gen := newFootstepGenerator(sampleRate, variant, vol, s.rng.Int63())
	s.mixer.Add(beep.Take(sampleRate.N(time.Millisecond*120), gen))
}

func (s *Sink) OnLand(evt anim.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	vol := s.attenuatedLocked(evt.Position)
	if vol <= 0 {
		return
	}
	gen := newLandGenerator(sampleRate, vol, s.rng.Int63())
	s.mixer.Add(beep.Take(sampleRate.N(time.Millisecond*250), gen))
}

// attenuatedLocked scales the configured volume by distance from the
// listener. Callers hold s.mu.
func (s *Sink) attenuatedLocked(at mgl64.Vec3) float64 {
	dist := at.Sub(s.listener).Len()
	return attenuate(s.volume, dist, s.rolloff)
}

func attenuate(volume, dist, rolloff float64) float64 {
	return volume / (1 + dist*rolloff)
}

// footstepGenerator produces a short filtered noise burst. The variant
// index shifts the scrape frequency so repeated steps vary in pitch.
type footstepGenerator struct {
	sr      beep.SampleRate
	pos     int
	seed    int64
	volume  float64
	freq    float64
	prev    float64
	smoothK float64
}

func newFootstepGenerator(sr beep.SampleRate, variant int, volume float64, seed int64) *footstepGenerator {
	return &footstepGenerator{
		sr:      sr,
		seed:    seed,
		volume:  volume,
		freq:    180 + 40*float64(variant),
		smoothK: 0.25,
	}
}

func (g *footstepGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		envelope := math.Exp(-t * 40)

		g.seed = (g.seed*1103515245 + 12345) & 0x7fffffff
		noise := float64(g.seed)/float64(0x7fffffff)*2 - 1

		// one-pole smoothing takes the hiss off the raw noise
		g.prev += g.smoothK * (noise - g.prev)

		scrape := 0.3 * math.Sin(2*math.Pi*g.freq*t)
		sample := g.volume * envelope * (0.5*g.prev + scrape)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *footstepGenerator) Err() error { return nil }

// landGenerator produces a low thump with a pitch drop, the usual
// kick-drum trick.
type landGenerator struct {
	sr     beep.SampleRate
	pos    int
	seed   int64
	volume float64
}

func newLandGenerator(sr beep.SampleRate, volume float64, seed int64) *landGenerator {
	return &landGenerator{sr: sr, seed: seed, volume: volume}
}

func (g *landGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		envelope := math.Exp(-t * 14)
		freq := 55 * (1 + 2*envelope)
		thump := 0.6 * envelope * math.Sin(2*math.Pi*freq*t)

		g.seed = (g.seed*1103515245 + 12345) & 0x7fffffff
		noise := float64(g.seed)/float64(0x7fffffff)*2 - 1
		impact := 0.15 * math.Exp(-t*60) * noise

		sample := g.volume * (thump + impact)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *landGenerator) Err() error { return nil }
