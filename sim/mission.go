package sim

// MissionPhase is the top-level game state gating which systems run.
type MissionPhase int

const (
	PhaseFree MissionPhase = iota
	PhaseBriefing
	PhaseActive
	PhaseVictory
	PhaseDefeat
)

func (p MissionPhase) String() string {
	switch p {
	case PhaseFree:
		return "free"
	case PhaseBriefing:
		return "briefing"
	case PhaseActive:
		return "active"
	case PhaseVictory:
		return "victory"
	case PhaseDefeat:
		return "defeat"
	default:
		return "unknown"
	}
}

// Mission is the linear phase machine:
// free -> briefing -> active -> victory|defeat -> free (via reset).
// Transitions only move forward; victory/defeat exit solely through the
// explicit reset.
type Mission struct {
	Phase MissionPhase

	// NarrationDone is set by the presentation layer when the briefing
	// script finishes playing, or by the skip affordance. Confirmation is
	// refused until it flips.
	NarrationDone bool

	// OnNarrationStart lets the presentation layer begin its script when
	// the briefing opens. Optional.
	OnNarrationStart func()
}

// NewMission starts in free roam.
func NewMission() *Mission {
	return &Mission{Phase: PhaseFree}
}

// StartBriefing moves free -> briefing and kicks off narration.
func (m *Mission) StartBriefing(events *EventQueue) bool {
	if m.Phase != PhaseFree {
		return false
	}
	m.Phase = PhaseBriefing
	m.NarrationDone = false
	if m.OnNarrationStart != nil {
		m.OnNarrationStart()
	}
	events.EmitPhase(m.Phase)
	return true
}

// SkipNarration marks the briefing script complete early.
func (m *Mission) SkipNarration() {
	if m.Phase == PhaseBriefing {
		m.NarrationDone = true
	}
}

// Confirm moves briefing -> active once narration has completed or been
// skipped. The caller spawns the enemy on a true return.
func (m *Mission) Confirm(events *EventQueue) bool {
	if m.Phase != PhaseBriefing || !m.NarrationDone {
		return false
	}
	m.Phase = PhaseActive
	events.EmitPhase(m.Phase)
	return true
}

// Conclude moves active -> victory/defeat from the combat verdict. Polled
// once per frame; anything but a settled verdict is a no-op.
func (m *Mission) Conclude(result Outcome, events *EventQueue) {
	if m.Phase != PhaseActive || result == OutcomeNone {
		return
	}
	if result == OutcomeVictory {
		m.Phase = PhaseVictory
	} else {
		m.Phase = PhaseDefeat
	}
	events.EmitPhase(m.Phase)
}

// Reset moves victory/defeat -> free. The caller performs the full state
// teardown; this only resolves the phase.
func (m *Mission) Reset(events *EventQueue) bool {
	if m.Phase != PhaseVictory && m.Phase != PhaseDefeat {
		return false
	}
	m.Phase = PhaseFree
	m.NarrationDone = false
	events.EmitPhase(m.Phase)
	return true
}

// CombatActive reports whether AI and combat evaluation run this phase.
func (m *Mission) CombatActive() bool {
	return m.Phase == PhaseActive
}
