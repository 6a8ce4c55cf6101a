package sim

import (
	"math"
	"testing"
)

func TestShieldToggleEvents(t *testing.T) {
	s := NewShieldSystem()
	q := &EventQueue{}

	s.Toggle(ParticipantPlayer, q)
	if !s.Active {
		t.Fatal("shields did not raise")
	}
	if !hasEvent(q.Drain(), EventShieldRaised) {
		t.Fatal("no raised event")
	}

	s.Toggle(ParticipantPlayer, q)
	if s.Active {
		t.Fatal("shields did not drop")
	}
	if !hasEvent(q.Drain(), EventShieldDropped) {
		t.Fatal("no dropped event")
	}
}

func TestShieldRefusesRaisingDepleted(t *testing.T) {
	s := NewShieldSystem()
	q := &EventQueue{}
	s.Strength = 0

	s.Toggle(ParticipantPlayer, q)
	if s.Active {
		t.Fatal("depleted shields raised")
	}
	if len(q.Drain()) != 0 {
		t.Fatal("refused toggle emitted events")
	}
}

func TestShieldPassiveDrain(t *testing.T) {
	s := NewShieldSystem()
	q := &EventQueue{}
	s.Toggle(ParticipantPlayer, q)

	s.Update(ParticipantPlayer, q, 2.0)
	want := ShieldStrengthMax - shieldDrainRate*2.0
	if math.Abs(s.Strength-want) > 1e-9 {
		t.Fatalf("strength after 2s = %v, want %v", s.Strength, want)
	}
	if !s.Active {
		t.Fatal("shields dropped with strength remaining")
	}
}

func TestShieldDrainForceDrop(t *testing.T) {
	s := NewShieldSystem()
	q := &EventQueue{}
	s.Toggle(ParticipantPlayer, q)
	q.Drain()
	s.Strength = 0.01

	s.Update(ParticipantPlayer, q, 1.0)
	if s.Active {
		t.Fatal("shields survived drain to zero")
	}
	if s.Strength != 0 {
		t.Fatalf("strength = %v, want 0", s.Strength)
	}
	if !hasEvent(q.Drain(), EventShieldDropped) {
		t.Fatal("no dropped event on force-drop")
	}
}

func TestShieldAbsorbedWriteBack(t *testing.T) {
	s := NewShieldSystem()
	q := &EventQueue{}
	s.Toggle(ParticipantPlayer, q)
	q.Drain()

	s.Absorbed(40, ParticipantPlayer, q)
	if s.Strength != 40 || !s.Active {
		t.Fatalf("write-back state: strength %v active %v", s.Strength, s.Active)
	}

	// Depleting the pool mid-hit forces the drop.
	s.Absorbed(0, ParticipantPlayer, q)
	if s.Active {
		t.Fatal("shields survived absorbed depletion")
	}
	if !hasEvent(q.Drain(), EventShieldDropped) {
		t.Fatal("no dropped event from absorption")
	}

	// Negative write-backs clamp to zero.
	s.Absorbed(-3, ParticipantPlayer, q)
	if s.Strength != 0 {
		t.Fatalf("strength = %v, want 0", s.Strength)
	}
}

func TestShieldPulseAndOpacity(t *testing.T) {
	s := NewShieldSystem()
	q := &EventQueue{}

	s.Toggle(ParticipantPlayer, q)
	if s.Pulse != shieldPulseMax {
		t.Fatalf("pulse = %v, want %v", s.Pulse, shieldPulseMax)
	}

	s.Update(ParticipantPlayer, q, 0.25)
	if s.Pulse >= shieldPulseMax {
		t.Fatal("pulse did not decay")
	}
	if s.Opacity <= 0 {
		t.Fatal("opacity not rising toward active")
	}

	s.Update(ParticipantPlayer, q, 10)
	if s.Pulse != 0 {
		t.Fatalf("pulse floor violated: %v", s.Pulse)
	}
}
