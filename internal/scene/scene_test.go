package scene

import (
	"math"
	"testing"

	"github.com/tatianab/escape-room/internal/models"
)

func studyObjects(t *testing.T) (*models.Room, []*models.Interactable) {
	t.Helper()
	room, err := models.DefaultRoom()
	if err != nil {
		t.Fatalf("DefaultRoom: %v", err)
	}
	objects, err := room.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return room, objects
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestSpawnFacesDoor(t *testing.T) {
	room, objects := studyObjects(t)
	p := NewPose(room)

	h, ok := NewRaycaster().Target(p, objects)
	if !ok || h != "door" {
		t.Fatalf("Target() = %q, %v; want door", h, ok)
	}
	if p.Compass() != "N" {
		t.Errorf("Compass() = %s, want N", p.Compass())
	}
}

func TestFacingEachObjectTargetsIt(t *testing.T) {
	room, objects := studyObjects(t)
	rc := NewRaycaster()

	for _, obj := range objects {
		p := NewPose(room).Face(obj.Footprint.Center)
		h, ok := rc.Target(p, objects)
		if !ok || h != obj.Handle {
			t.Errorf("facing %s: Target() = %q, %v", obj.Handle, h, ok)
		}
	}
}

func TestRaycastMissesEmptyWall(t *testing.T) {
	room, objects := studyObjects(t)
	// Due south from the spawn point there is nothing but the wall.
	p := NewPose(room).Turn(180)
	if h, ok := NewRaycaster().Target(p, objects); ok {
		t.Fatalf("Target() = %q, want no hit", h)
	}
}

func TestRaycastPicksNearest(t *testing.T) {
	objects := []*models.Interactable{
		{Handle: "far", Footprint: models.Footprint{Center: models.Vec2{Z: -4}, Width: 1, Depth: 1}},
		{Handle: "near", Footprint: models.Footprint{Center: models.Vec2{Z: -2}, Width: 1, Depth: 1}},
	}
	h, dist, ok := Raycaster{}.Cast(models.Vec2{}, models.Vec2{Z: -1}, objects)
	if !ok || h != "near" {
		t.Fatalf("Cast() = %q, %v; want near", h, ok)
	}
	if !near(dist, 1.5) {
		t.Errorf("distance = %v, want 1.5", dist)
	}
}

func TestRaycastMaxDistance(t *testing.T) {
	objects := []*models.Interactable{
		{Handle: "far", Footprint: models.Footprint{Center: models.Vec2{Z: -4}, Width: 1, Depth: 1}},
	}
	rc := Raycaster{MaxDistance: 2}
	if _, _, ok := rc.Cast(models.Vec2{}, models.Vec2{Z: -1}, objects); ok {
		t.Fatal("Cast() hit an object beyond reach")
	}
}

func TestRaycastFromInsideFootprint(t *testing.T) {
	objects := []*models.Interactable{
		{Handle: "box", Footprint: models.Footprint{Width: 2, Depth: 2}},
	}
	_, dist, ok := Raycaster{}.Cast(models.Vec2{}, models.Vec2{X: 1}, objects)
	if !ok || dist != 0 {
		t.Fatalf("Cast() = %v, %v; want hit at 0", dist, ok)
	}
}

func TestMoveClampsToWalls(t *testing.T) {
	room, _ := studyObjects(t)
	p := NewPose(room)
	for i := 0; i < 20; i++ {
		p = p.Move(Forward, true)
	}
	if !near(p.Position.Z, -room.Bounds) || !near(p.Position.X, 0) {
		t.Errorf("Position = %+v, want clamped at z=%v", p.Position, -room.Bounds)
	}

	p = p.Move(Right, false)
	if !near(p.Position.X, WalkStep) {
		t.Errorf("strafe right X = %v, want %v", p.Position.X, WalkStep)
	}
	p = p.Move(Back, false)
	if !near(p.Position.Z, -room.Bounds+WalkStep) {
		t.Errorf("back Z = %v", p.Position.Z)
	}
}

func TestTurnLeftFacesWest(t *testing.T) {
	p := Pose{Bounds: 4.5}.Turn(90)
	f := p.Forward()
	if !near(f.X, -1) || math.Abs(f.Z) > 1e-9 {
		t.Errorf("Forward() after left turn = %+v, want (-1, 0)", f)
	}
	if p.Compass() != "W" {
		t.Errorf("Compass() = %s, want W", p.Compass())
	}
	if got := p.Turn(-270).Compass(); got != "S" {
		t.Errorf("Compass() after -270 = %s, want S", got)
	}
}

func TestTurnIgnoresNonFiniteAngles(t *testing.T) {
	room, objects := studyObjects(t)
	p := NewPose(room)
	for _, deg := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		got := p.Turn(deg)
		if got != p {
			t.Errorf("Turn(%v) = %+v, want unchanged %+v", deg, got, p)
		}
		got = got.Move(Forward, false)
		if math.IsNaN(got.Position.X) || math.IsNaN(got.Position.Z) {
			t.Errorf("Move after Turn(%v) gave position %+v", deg, got.Position)
		}
		if h, ok := NewRaycaster().Target(got.Turn(deg), objects); !ok || h != "door" {
			t.Errorf("Target after Turn(%v) = %q, %v; want door", deg, h, ok)
		}
	}
}

func TestNameMatcher(t *testing.T) {
	_, objects := studyObjects(t)

	tests := []struct {
		query string
		want  models.Handle
		ok    bool
	}{
		{"door", "door", true},
		{"The Safe", "safe", true},
		{"yellow book", "yellow-book", true},
		{"drawr", "drawer", true},
		{"picture", "painting", true},
		{"exit", "door", true},
		{"flower pot", "plant", true},
		{"chandelier", "", false},
		{"", "", false},
	}
	for _, tc := range tests {
		got, ok := NameMatcher{}.Match(tc.query, objects)
		if got != tc.want || ok != tc.ok {
			t.Errorf("Match(%q) = %q, %v; want %q, %v", tc.query, got, ok, tc.want, tc.ok)
		}
	}
}

func TestMinimap(t *testing.T) {
	room, objects := studyObjects(t)
	p := NewPose(room)

	var markers []Marker
	for _, obj := range objects {
		if obj.Handle == "door" {
			markers = append(markers, Marker{At: obj.Footprint.Center, Glyph: '#'})
		}
	}
	lines := Minimap(p, 11, 11, markers)
	if len(lines) != 11 {
		t.Fatalf("got %d lines, want 11", len(lines))
	}
	if got := []rune(lines[5])[5]; got != '^' {
		t.Errorf("player glyph = %q, want '^'", got)
	}
	if got := []rune(lines[0])[5]; got != '#' {
		t.Errorf("door glyph = %q, want '#'", got)
	}
}
