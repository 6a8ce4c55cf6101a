package sim

// Participant identifies one of the two combatants.
type Participant int

const (
	ParticipantPlayer Participant = iota
	ParticipantEnemy
)

func (p Participant) String() string {
	if p == ParticipantEnemy {
		return "enemy"
	}
	return "player"
}

// EventKind labels a simulation event for the presentation layers. The core
// emits events fire-and-forget; audio/UI listeners map them to effects.
type EventKind int

const (
	EventPhaserFired EventKind = iota
	EventTorpedoFired
	EventShieldRaised
	EventShieldDropped
	EventWarpEngaged
	EventWarpDisengaged
	EventShieldHit
	EventHullHit
	EventShipDestroyed
	EventBodyCollision
	EventPhaseChanged
)

func (k EventKind) String() string {
	switch k {
	case EventPhaserFired:
		return "phaser_fired"
	case EventTorpedoFired:
		return "torpedo_fired"
	case EventShieldRaised:
		return "shield_raised"
	case EventShieldDropped:
		return "shield_dropped"
	case EventWarpEngaged:
		return "warp_engaged"
	case EventWarpDisengaged:
		return "warp_disengaged"
	case EventShieldHit:
		return "shield_hit"
	case EventHullHit:
		return "hull_hit"
	case EventShipDestroyed:
		return "ship_destroyed"
	case EventBodyCollision:
		return "body_collision"
	case EventPhaseChanged:
		return "phase_changed"
	default:
		return "unknown"
	}
}

// Event is one outbound notification from the core.
type Event struct {
	Kind  EventKind
	Who   Participant  // originator or victim, depending on Kind
	Phase MissionPhase // set for EventPhaseChanged
}

// EventQueue accumulates events during a tick. The host drains it once per
// frame; the core never blocks on listeners.
type EventQueue struct {
	events []Event
}

// Emit appends an event attributed to a participant.
func (q *EventQueue) Emit(kind EventKind, who Participant) {
	q.events = append(q.events, Event{Kind: kind, Who: who})
}

// EmitPhase appends a phase-change event.
func (q *EventQueue) EmitPhase(phase MissionPhase) {
	q.events = append(q.events, Event{Kind: EventPhaseChanged, Phase: phase})
}

// Drain returns all pending events and empties the queue.
func (q *EventQueue) Drain() []Event {
	out := q.events
	q.events = nil
	return out
}
