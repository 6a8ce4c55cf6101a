package game

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/alice-viola/NCC-1701-D/sim"
)

// Game is the ebiten host: it owns the simulation, the device adapters and
// the presentation layers, and drives them from ebiten's frame callback.
type Game struct {
	sim      *sim.Simulation
	input    *InputAdapter
	renderer *Renderer
	hud      *HUD
	audio    *SoundManager
	config   Config
	logger   zerolog.Logger

	snap sim.Snapshot

	// Wall-clock delta time; ebiten's Update runs at a fixed TPS but the
	// simulation integrates real elapsed time.
	lastUpdateTime time.Time

	// Frame stats, logged periodically rather than drawn.
	statFrames int
	statTimer  float64
}

// NewGame wires the host around a fresh simulation.
func NewGame(config Config) *Game {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := sim.NewSimulation(seed)
	s.Univ.Discover(config.HomeSystem)

	g := &Game{
		sim:            s,
		input:          NewInputAdapter(),
		renderer:       NewRenderer(config),
		hud:            NewHUD(config),
		audio:          NewSoundManager(config),
		config:         config,
		logger:         log.With().Str("component", "game").Logger(),
		lastUpdateTime: time.Now(),
	}
	s.Mission.OnNarrationStart = g.hud.StartNarration
	if err := g.audio.Initialize(); err != nil {
		g.audio.LogInitError(err)
	}
	g.snap = s.Snapshot()
	return g
}

// Update advances the simulation by real elapsed time and pumps events out
// to the audio and logging listeners.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.audio.Cleanup()
		return ebiten.Termination
	}

	now := time.Now()
	dt := now.Sub(g.lastUpdateTime).Seconds()
	g.lastUpdateTime = now
	if dt > 0.1 {
		// A long stall (window hidden, debugger) collapses to one clamped
		// tick instead of a burst of catch-up.
		dt = 0.1
	}

	if g.hud.Update(dt) {
		g.sim.Mission.NarrationDone = true
	}

	in := g.input.Sample()
	g.sim.Tick(in, dt)
	g.snap = g.sim.Snapshot()

	for _, ev := range g.sim.Events.Drain() {
		g.audio.HandleEvent(ev)
		g.logEvent(ev)
	}
	g.audio.SetWarpActive(g.snap.IsWarp)

	g.statFrames++
	g.statTimer += dt
	if g.statTimer >= 5.0 {
		g.logger.Debug().
			Float64("fps", float64(g.statFrames)/g.statTimer).
			Str("phase", g.snap.Phase.String()).
			Float64("speed", g.snap.Speed).
			Msg("frame stats")
		g.statFrames = 0
		g.statTimer = 0
	}
	return nil
}

// logEvent records state-transition events; high-frequency fire events stay
// at trace level so default output is readable.
func (g *Game) logEvent(ev sim.Event) {
	switch ev.Kind {
	case sim.EventPhaserFired, sim.EventShieldHit, sim.EventHullHit:
		g.logger.Trace().Str("who", ev.Who.String()).Msg(ev.Kind.String())
	case sim.EventPhaseChanged:
		g.logger.Info().Str("phase", ev.Phase.String()).Msg("phase changed")
	default:
		g.logger.Debug().Str("who", ev.Who.String()).Msg(ev.Kind.String())
	}
}

// Draw renders the world then the HUD overlay from the frame snapshot.
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, &g.snap, g.sim.Env)
	g.hud.Draw(screen, &g.snap)
}

// Layout reports the fixed render resolution.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.config.ScreenWidth, g.config.ScreenHeight
}
