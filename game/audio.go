package game

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog/log"

	"github.com/alice-viola/NCC-1701-D/sim"
)

const audioSampleRate = beep.SampleRate(48000)

// SoundManager synthesizes every effect procedurally and maps simulation
// events onto playback. The simulation never manages playback state; it only
// emits events.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	warpCtrl    *beep.Ctrl
	initialized bool
	volume      float64
	muted       bool
}

// NewSoundManager creates an uninitialized manager; call Initialize before
// the first frame.
func NewSoundManager(config Config) *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: config.MasterVolume,
		muted:  config.Muted,
	}
}

// Initialize opens the speaker and starts the master mixer.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || sm.muted {
		return nil
	}
	if err := speaker.Init(audioSampleRate, audioSampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}

	master := &effects.Volume{
		Streamer: sm.mixer,
		Base:     2,
		Volume:   volumeGain(sm.volume),
		Silent:   sm.volume <= 0,
	}
	speaker.Play(master)
	sm.initialized = true
	return nil
}

// volumeGain maps linear [0,1] volume onto the log scale effects.Volume uses.
func volumeGain(v float64) float64 {
	if v <= 0 {
		return -10
	}
	return math.Log2(v)
}

// Cleanup silences everything. The speaker has no close; clearing the mixer
// is the shutdown.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	if sm.warpCtrl != nil {
		sm.warpCtrl.Paused = true
	}
	sm.mixer.Clear()
	sm.initialized = false
}

// HandleEvent maps one simulation event to an effect.
func (sm *SoundManager) HandleEvent(ev sim.Event) {
	switch ev.Kind {
	case sim.EventPhaserFired:
		sm.playOneShot(newSweepTone(820, 320, 90*time.Millisecond, 0.10))
	case sim.EventTorpedoFired:
		sm.playOneShot(newSweepTone(220, 90, 350*time.Millisecond, 0.16))
	case sim.EventShieldRaised:
		sm.playOneShot(newSweepTone(300, 600, 180*time.Millisecond, 0.12))
	case sim.EventShieldDropped:
		sm.playOneShot(newSweepTone(600, 250, 180*time.Millisecond, 0.12))
	case sim.EventShieldHit:
		sm.playOneShot(newSweepTone(500, 440, 70*time.Millisecond, 0.10))
	case sim.EventHullHit, sim.EventBodyCollision:
		sm.playOneShot(newNoiseBurst(120*time.Millisecond, 0.18))
	case sim.EventShipDestroyed:
		sm.playOneShot(newNoiseBurst(900*time.Millisecond, 0.3))
	case sim.EventWarpEngaged:
		sm.playOneShot(newSweepTone(140, 700, 500*time.Millisecond, 0.14))
	case sim.EventWarpDisengaged:
		sm.playOneShot(newSweepTone(700, 140, 400*time.Millisecond, 0.14))
	}
}

// SetWarpActive keeps the warp rumble loop in sync with the drive state.
// The loop streamer never ends; pause/resume is the whole lifecycle.
func (sm *SoundManager) SetWarpActive(active bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	if sm.warpCtrl == nil {
		if !active {
			return
		}
		sm.warpCtrl = &beep.Ctrl{Streamer: newRumble(0.08)}
		sm.mixer.Add(sm.warpCtrl)
		return
	}
	speaker.Lock()
	sm.warpCtrl.Paused = !active
	speaker.Unlock()
}

func (sm *SoundManager) playOneShot(s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	sm.mixer.Add(s)
}

// sweepTone is a finite sine whose frequency glides between two values with
// an attack/release envelope.
type sweepTone struct {
	fromHz, toHz float64
	amp          float64
	pos, total   int
}

func newSweepTone(fromHz, toHz float64, d time.Duration, amp float64) *sweepTone {
	return &sweepTone{fromHz: fromHz, toHz: toHz, amp: amp, total: audioSampleRate.N(d)}
}

func (t *sweepTone) Stream(samples [][2]float64) (int, bool) {
	if t.pos >= t.total {
		return 0, false
	}
	n := 0
	for i := range samples {
		if t.pos >= t.total {
			break
		}
		frac := float64(t.pos) / float64(t.total)
		freq := t.fromHz + (t.toHz-t.fromHz)*frac
		env := math.Sin(frac * math.Pi) // fade in and out
		v := t.amp * env * math.Sin(2*math.Pi*freq*float64(t.pos)/float64(audioSampleRate))
		samples[i][0] = v
		samples[i][1] = v
		t.pos++
		n++
	}
	return n, true
}

func (t *sweepTone) Err() error { return nil }

// noiseBurst is a finite decaying white-noise hit.
type noiseBurst struct {
	amp        float64
	pos, total int
	state      uint64
}

func newNoiseBurst(d time.Duration, amp float64) *noiseBurst {
	return &noiseBurst{amp: amp, total: audioSampleRate.N(d), state: 0x9e3779b97f4a7c15}
}

func (nb *noiseBurst) Stream(samples [][2]float64) (int, bool) {
	if nb.pos >= nb.total {
		return 0, false
	}
	n := 0
	for i := range samples {
		if nb.pos >= nb.total {
			break
		}
		// xorshift keeps the burst allocation-free.
		nb.state ^= nb.state << 13
		nb.state ^= nb.state >> 7
		nb.state ^= nb.state << 17
		r := float64(int64(nb.state)) / float64(math.MaxInt64)
		decay := 1 - float64(nb.pos)/float64(nb.total)
		v := nb.amp * decay * r
		samples[i][0] = v
		samples[i][1] = v
		nb.pos++
		n++
	}
	return n, true
}

func (nb *noiseBurst) Err() error { return nil }

// rumble is the infinite warp-drive loop: two detuned low sines with a slow
// amplitude wobble. It never reports completion; a Ctrl pauses it.
type rumble struct {
	amp float64
	pos int
}

func newRumble(amp float64) *rumble {
	return &rumble{amp: amp}
}

func (r *rumble) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		t := float64(r.pos) / float64(audioSampleRate)
		wobble := 0.7 + 0.3*math.Sin(2*math.Pi*0.8*t)
		v := r.amp * wobble * (math.Sin(2*math.Pi*55*t) + 0.6*math.Sin(2*math.Pi*61*t))
		samples[i][0] = v
		samples[i][1] = v
		r.pos++
	}
	return len(samples), true
}

func (r *rumble) Err() error { return nil }

// LogInitError reports a failed audio bring-up without aborting the game.
func (sm *SoundManager) LogInitError(err error) {
	log.Warn().Err(err).Msg("audio unavailable, continuing silent")
}
