// Package scene models the room floor: where the player stands, where they
// look, and which interactable sits under the crosshair.
package scene

import (
	"math"

	"github.com/tatianab/escape-room/internal/models"
)

// Step lengths per move command.
const (
	WalkStep = 0.5
	RunStep  = 0.8
)

// Direction is a movement relative to the player's heading.
type Direction int

const (
	Forward Direction = iota
	Back
	Left
	Right
)

// Pose is the player's position and heading. Yaw is in radians; zero faces
// negative Z and positive values turn left.
type Pose struct {
	Position models.Vec2
	Yaw      float64
	Bounds   float64
}

// NewPose places the player at spawn facing heading degrees.
func NewPose(room *models.Room) Pose {
	return Pose{
		Position: room.Spawn,
		Yaw:      normalizeYaw(room.Heading * math.Pi / 180),
		Bounds:   room.Bounds,
	}
}

// Forward returns the unit view vector on the floor plane.
func (p Pose) Forward() models.Vec2 {
	return models.Vec2{X: -math.Sin(p.Yaw), Z: -math.Cos(p.Yaw)}
}

// Right returns the unit strafe vector.
func (p Pose) Right() models.Vec2 {
	return models.Vec2{X: math.Cos(p.Yaw), Z: -math.Sin(p.Yaw)}
}

// Move returns the pose after one step in dir, clamped to the walls.
func (p Pose) Move(dir Direction, run bool) Pose {
	step := WalkStep
	if run {
		step = RunStep
	}
	var v models.Vec2
	switch dir {
	case Forward:
		v = p.Forward()
	case Back:
		v = p.Forward().Scale(-1)
	case Right:
		v = p.Right()
	case Left:
		v = p.Right().Scale(-1)
	}
	p.Position = p.clamp(p.Position.Add(v.Scale(step)))
	return p
}

// Turn returns the pose rotated by degrees; positive turns left. A
// non-finite angle leaves the pose unchanged.
func (p Pose) Turn(degrees float64) Pose {
	if math.IsNaN(degrees) || math.IsInf(degrees, 0) {
		return p
	}
	p.Yaw = normalizeYaw(p.Yaw + degrees*math.Pi/180)
	return p
}

// Face returns the pose turned towards target.
func (p Pose) Face(target models.Vec2) Pose {
	p.Yaw = YawToward(p.Position, target)
	return p
}

// Degrees returns the heading in [0, 360).
func (p Pose) Degrees() float64 {
	return p.Yaw * 180 / math.Pi
}

// Compass names the heading, with north being the door wall.
func (p Pose) Compass() string {
	names := [...]string{"N", "NW", "W", "SW", "S", "SE", "E", "NE"}
	idx := int(math.Round(p.Degrees()/45)) % len(names)
	return names[idx]
}

func (p Pose) clamp(v models.Vec2) models.Vec2 {
	if p.Bounds <= 0 {
		return v
	}
	v.X = math.Max(-p.Bounds, math.Min(p.Bounds, v.X))
	v.Z = math.Max(-p.Bounds, math.Min(p.Bounds, v.Z))
	return v
}

// YawToward returns the yaw that looks from one point to another.
func YawToward(from, to models.Vec2) float64 {
	return normalizeYaw(math.Atan2(-(to.X - from.X), -(to.Z - from.Z)))
}

func normalizeYaw(y float64) float64 {
	y = math.Mod(y, 2*math.Pi)
	if y < 0 {
		y += 2 * math.Pi
	}
	return y
}
