package sim

import (
	"math"

	"github.com/alice-viola/NCC-1701-D/vmath"
)

// Body kinds for the renderer's material lookup.
const (
	BodyStar = iota
	BodyPlanet
)

// Environment constants
const (
	bodyPushback   = 1.5   // extra clearance added when resolving a collision
	shipHullRadius = 3.0   // collision radius of either ship
	planetPlaneY   = -40.0 // orbital plane sits below the combat volume
)

// Body is one positioned world object built from system data. Position is a
// fixed world coordinate; only the backdrop follows the camera.
type Body struct {
	ID          int
	Kind        int
	Name        string
	Position    vmath.Vec3
	Radius      float64
	TextureKey  string
	Color       string
	Spin        float64 // accumulated self-rotation, radians
	orbitCenter vmath.Vec3
	orbitRadius float64
	orbitAngle  float64
	orbitSpeed  float64
	spinSpeed   float64
	HasRings    bool
}

// Environment holds the built scene for the current system.
type Environment struct {
	SystemID string
	Bodies   []Body
}

// BuildScene positions a system's star and planets in world space. A nil
// system yields an empty environment rather than a fault.
func BuildScene(s *StarSystem) *Environment {
	env := &Environment{}
	if s == nil {
		return env
	}
	env.SystemID = s.ID

	// The star anchors the scene well behind the combat volume.
	center := vmath.Vec3{X: 0, Y: planetPlaneY, Z: -1600}
	env.Bodies = append(env.Bodies, Body{
		ID:       1,
		Kind:     BodyStar,
		Name:     s.Name,
		Position: center,
		Radius:   s.Star.Radius,
		Color:    s.Star.Color,
	})

	for i, p := range s.Planets {
		b := Body{
			ID:          i + 2,
			Kind:        BodyPlanet,
			Name:        p.Name,
			Radius:      p.Radius,
			TextureKey:  p.TextureKey,
			orbitCenter: center,
			orbitRadius: p.OrbitRadius,
			orbitAngle:  p.OrbitAngle,
			orbitSpeed:  p.OrbitSpeed,
			spinSpeed:   p.RotationSpeed,
			HasRings:    p.HasRings,
		}
		b.Position = orbitPosition(b.orbitCenter, b.orbitRadius, b.orbitAngle)
		env.Bodies = append(env.Bodies, b)
	}
	return env
}

// AdvanceOrbits steps planet orbits and self-rotation. Star stays fixed.
func (e *Environment) AdvanceOrbits(dt float64) {
	for i := range e.Bodies {
		b := &e.Bodies[i]
		if b.Kind != BodyPlanet {
			continue
		}
		b.orbitAngle += b.orbitSpeed * dt
		b.Position = orbitPosition(b.orbitCenter, b.orbitRadius, b.orbitAngle)
		b.Spin += b.spinSpeed * dt
	}
}

// CollideShip resolves ship-vs-body overlap with a positional pushback and a
// velocity reflection, returning the body hit or nil when clear. Bumping a
// planet is not a damage source; it only emits an event for the audio layer.
func (e *Environment) CollideShip(t *ShipTransform, who Participant, events *EventQueue) *Body {
	var hit *Body
	for i := range e.Bodies {
		b := &e.Bodies[i]
		minDist := b.Radius + shipHullRadius
		delta := vmath.V3Sub(t.Position, b.Position)
		distSq := vmath.V3MagSq(delta)
		if distSq >= minDist*minDist {
			continue
		}

		var normal vmath.Vec3
		if distSq < 1e-9 {
			normal = Up
		} else {
			normal = vmath.V3Scale(delta, 1/math.Sqrt(distSq))
		}
		t.Position = vmath.V3Add(b.Position, vmath.V3Scale(normal, minDist+bodyPushback))

		// Reflect only the inward velocity component.
		inward := vmath.V3Dot(t.Velocity, normal)
		if inward < 0 {
			t.Velocity = vmath.V3Sub(t.Velocity, vmath.V3Scale(normal, 2*inward))
		}
		events.Emit(EventBodyCollision, who)
		hit = b
	}
	return hit
}

// BodyByID returns the body with the given id, or nil when absent.
func (e *Environment) BodyByID(id int) *Body {
	for i := range e.Bodies {
		if e.Bodies[i].ID == id {
			return &e.Bodies[i]
		}
	}
	return nil
}

func orbitPosition(center vmath.Vec3, radius, angle float64) vmath.Vec3 {
	return vmath.V3Add(center, vmath.Vec3{
		X: math.Cos(angle) * radius,
		Z: math.Sin(angle) * radius,
	})
}
