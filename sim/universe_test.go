package sim

import (
	"testing"

	"github.com/alice-viola/NCC-1701-D/vmath"
)

func TestUniverseLookup(t *testing.T) {
	u := NewUniverse()

	s := u.SystemByID("sol-station")
	if s == nil {
		t.Fatal("home system missing")
	}
	if s.Name != "Sol Station" {
		t.Fatalf("name = %q", s.Name)
	}

	// Unknown ids return the nil sentinel, never panic.
	if got := u.SystemByID("romulus"); got != nil {
		t.Fatalf("unknown id returned %+v", got)
	}
}

func TestUniverseConnectionsUndirected(t *testing.T) {
	u := NewUniverse()

	pairs := [][2]string{
		{"sol-station", "vega-prime"},
		{"sol-station", "wolf-359"},
		{"vega-prime", "keplers-rest"},
		{"wolf-359", "regula"},
	}
	for _, p := range pairs {
		if !u.Connected(p[0], p[1]) {
			t.Errorf("%s -> %s not connected", p[0], p[1])
		}
		if !u.Connected(p[1], p[0]) {
			t.Errorf("%s -> %s missing mirrored edge", p[1], p[0])
		}
	}

	if u.Connected("sol-station", "regula") {
		t.Fatal("non-adjacent systems reported connected")
	}
	if u.Connected("romulus", "sol-station") {
		t.Fatal("unknown system reported connected")
	}
}

func TestUniverseDiscover(t *testing.T) {
	u := NewUniverse()

	if u.SystemByID("vega-prime").Discovered {
		t.Fatal("vega-prime discovered at start")
	}
	u.Discover("vega-prime")
	if !u.SystemByID("vega-prime").Discovered {
		t.Fatal("discover did not stick")
	}

	// Unknown ids are ignored.
	u.Discover("romulus")
}

func TestBuildSceneFromSystem(t *testing.T) {
	u := NewUniverse()
	env := BuildScene(u.SystemByID("vega-prime"))

	if env.SystemID != "vega-prime" {
		t.Fatalf("system id = %q", env.SystemID)
	}
	// One star plus every planet.
	if want := 1 + len(u.SystemByID("vega-prime").Planets); len(env.Bodies) != want {
		t.Fatalf("bodies = %d, want %d", len(env.Bodies), want)
	}
	if env.Bodies[0].Kind != BodyStar {
		t.Fatal("first body is not the star")
	}

	// Nil system yields an empty scene, not a fault.
	empty := BuildScene(nil)
	if len(empty.Bodies) != 0 {
		t.Fatal("nil system produced bodies")
	}
}

func TestAdvanceOrbitsMovesPlanets(t *testing.T) {
	u := NewUniverse()
	env := BuildScene(u.SystemByID("sol-station"))

	star := env.Bodies[0].Position
	planet := env.Bodies[1].Position
	env.AdvanceOrbits(10)

	if env.Bodies[0].Position != star {
		t.Fatal("star moved")
	}
	if env.Bodies[1].Position == planet {
		t.Fatal("planet did not orbit")
	}
	// Orbit radius is preserved.
	before := vmath.V3Dist(planet, star)
	after := vmath.V3Dist(env.Bodies[1].Position, star)
	if diff := before - after; diff > 1e-6 || diff < -1e-6 {
		t.Fatalf("orbit radius drifted: %v -> %v", before, after)
	}
}

func TestCollideShipBounces(t *testing.T) {
	u := NewUniverse()
	env := BuildScene(u.SystemByID("sol-station"))
	q := &EventQueue{}
	star := &env.Bodies[0]

	// Park the ship inside the star, flying inward.
	tr := &ShipTransform{
		Position: vmath.V3Add(star.Position, vmath.Vec3{X: star.Radius - 5}),
		Velocity: vmath.Vec3{X: -20},
	}
	hit := env.CollideShip(tr, ParticipantPlayer, q)
	if hit == nil || hit.ID != star.ID {
		t.Fatalf("collision body = %+v, want the star", hit)
	}
	if d := vmath.V3Dist(tr.Position, star.Position); d < star.Radius+shipHullRadius {
		t.Fatalf("ship still overlapping after pushback: %v", d)
	}
	if tr.Velocity.X <= 0 {
		t.Fatalf("inward velocity not reflected: %+v", tr.Velocity)
	}
	if !hasEvent(q.Drain(), EventBodyCollision) {
		t.Fatal("no collision event")
	}

	// Clear space reports the nil sentinel.
	far := &ShipTransform{Position: vmath.Vec3{X: 99999}}
	if env.CollideShip(far, ParticipantPlayer, q) != nil {
		t.Fatal("collision reported in clear space")
	}
}

func TestBodyByID(t *testing.T) {
	u := NewUniverse()
	env := BuildScene(u.SystemByID("sol-station"))

	if env.BodyByID(1) == nil {
		t.Fatal("star lookup failed")
	}
	if env.BodyByID(999) != nil {
		t.Fatal("unknown body id returned a record")
	}
}
