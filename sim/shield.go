package sim

// Shield constants
const (
	ShieldStrengthMax = 100.0
	shieldDrainRate   = 1.5 // strength per second while active
	shieldPulseMax    = 1.0 // feedback timer reset value on any toggle
	shieldPulseDecay  = 1.6 // pulse units per second, linear
	shieldOpacityRate = 5.0 // opacity approach rate, 1/s
)

// ShieldSystem is the toggleable defensive layer. The combat model writes
// the strength pool back after absorption; everything else here is owned by
// this component.
type ShieldSystem struct {
	Active   bool
	Strength float64 // [0,100]

	// Pulse is a purely cosmetic activation-feedback timer; it gates
	// nothing and decays linearly to zero.
	Pulse float64

	// Opacity smoothly follows Active for the bubble visual, on its own
	// timer independent of Pulse.
	Opacity float64
}

// NewShieldSystem returns shields down at full strength.
func NewShieldSystem() *ShieldSystem {
	return &ShieldSystem{Strength: ShieldStrengthMax}
}

// Reset restores initial defaults.
func (s *ShieldSystem) Reset() {
	*s = ShieldSystem{Strength: ShieldStrengthMax}
}

// Toggle flips activation from an edge-triggered intent. Raising depleted
// shields is refused silently.
func (s *ShieldSystem) Toggle(who Participant, events *EventQueue) {
	if !s.Active && s.Strength <= 0 {
		return
	}
	s.Active = !s.Active
	s.Pulse = shieldPulseMax
	if s.Active {
		events.Emit(EventShieldRaised, who)
	} else {
		events.Emit(EventShieldDropped, who)
	}
}

// Update drains strength while active and decays the feedback timers. The
// zero-strength force-drop is re-checked here every frame because passive
// drain can zero the pool without any toggle event.
func (s *ShieldSystem) Update(who Participant, events *EventQueue, dt float64) {
	if s.Active {
		s.Strength -= shieldDrainRate * dt
		if s.Strength <= 0 {
			s.Strength = 0
			s.Active = false
			s.Pulse = shieldPulseMax
			events.Emit(EventShieldDropped, who)
		}
	}

	s.Pulse -= shieldPulseDecay * dt
	if s.Pulse < 0 {
		s.Pulse = 0
	}

	target := 0.0
	if s.Active {
		target = 1.0
	}
	s.Opacity += (target - s.Opacity) * clamp(shieldOpacityRate*dt, 0, 1)
}

// Absorbed applies the combat model's write-back after a hit: the new pool
// value, with the force-drop rule applied mid-hit.
func (s *ShieldSystem) Absorbed(newStrength float64, who Participant, events *EventQueue) {
	if newStrength < 0 {
		newStrength = 0
	}
	s.Strength = newStrength
	if s.Active && s.Strength == 0 {
		s.Active = false
		s.Pulse = shieldPulseMax
		events.Emit(EventShieldDropped, who)
	}
}
