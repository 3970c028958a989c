// Package arena owns the shared spatial state: the chipmunk space agents and
// projectiles live in, the typed agent registry, and cluster/pocket anchors.
package arena

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/skirmish/ecs"
)

const (
	CollisionAgent cp.CollisionType = iota + 1
	CollisionProjectile
	CollisionObstacle
)

const (
	CategoryAgent uint = 1 << iota
	CategoryProjectile
	CategoryObstacle
)

// Impact is a projectile collision recorded by the space handlers and
// drained once per frame by the projectile system.
type Impact struct {
	Shape  *cp.Shape
	Owner  ecs.Entity
	Victim ecs.Entity // zero when the projectile hit an obstacle
	Point  cp.Vector
}

// Space wraps the chipmunk space for a flat arena. There is no gravity; the
// vertical axis only exists as an aim-pitch term on shooters.
type Space struct {
	space       *cp.Space
	shapeEntity map[*cp.Shape]ecs.Entity
	shapeOwner  map[*cp.Shape]ecs.Entity
	impacts     []Impact
	groupSeq    uint
}

// NewSpace creates an arena of the given size walled by static segments.
func NewSpace(width, height float64) *Space {
	space := cp.NewSpace()
	space.Iterations = 10

	s := &Space{
		space:       space,
		shapeEntity: make(map[*cp.Shape]ecs.Entity),
		shapeOwner:  make(map[*cp.Shape]ecs.Entity),
	}

	if width > 0 && height > 0 {
		walls := [][2]cp.Vector{
			{{X: 0, Y: 0}, {X: width, Y: 0}},
			{{X: 0, Y: height}, {X: width, Y: height}},
			{{X: 0, Y: 0}, {X: 0, Y: height}},
			{{X: width, Y: 0}, {X: width, Y: height}},
		}
		for _, seg := range walls {
			s.AddObstacleSegment(seg[0], seg[1], 1)
		}
	}

	s.setupHandlers()
	return s
}

// CP exposes the underlying space.
func (s *Space) CP() *cp.Space {
	return s.space
}

// Step advances the physics simulation.
func (s *Space) Step(dt float64) {
	if dt <= 0 {
		return
	}
	s.space.Step(dt)
}

// NextGroup hands out a fresh collision filter group. A shooter and its
// pooled projectiles share one group so they can never collide.
func (s *Space) NextGroup() uint {
	s.groupSeq++
	return s.groupSeq
}

// AddAgentBody creates a non-rotating dynamic body with a circle shape for
// an agent and registers it for impact lookup.
func (s *Space) AddAgentBody(e ecs.Entity, pos cp.Vector, radius float64, group uint) *cp.Body {
	body := cp.NewBody(1, cp.INFINITY)
	body.SetPosition(pos)
	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetCollisionType(CollisionAgent)
	shape.SetFilter(cp.NewShapeFilter(group, CategoryAgent, CategoryAgent|CategoryProjectile|CategoryObstacle))
	shape.SetFriction(0.4)
	s.space.AddBody(body)
	s.space.AddShape(shape)
	s.shapeEntity[shape] = e
	return body
}

// RemoveAgentBody detaches an agent's body and shapes from the space.
func (s *Space) RemoveAgentBody(body *cp.Body) {
	if body == nil {
		return
	}
	body.EachShape(func(shape *cp.Shape) {
		delete(s.shapeEntity, shape)
		s.space.RemoveShape(shape)
	})
	s.space.RemoveBody(body)
}

// AddObstacleSegment adds a static wall segment.
func (s *Space) AddObstacleSegment(a, b cp.Vector, radius float64) {
	shape := cp.NewSegment(s.space.StaticBody, a, b, radius)
	shape.SetCollisionType(CollisionObstacle)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, CategoryObstacle, CategoryAgent|CategoryProjectile))
	shape.SetFriction(0.6)
	s.space.AddShape(shape)
}

// BindProjectile registers a projectile shape's owning shooter so impacts
// can be attributed. Called by the pool at acquisition.
func (s *Space) BindProjectile(shape *cp.Shape, owner ecs.Entity) {
	if shape == nil {
		return
	}
	s.shapeOwner[shape] = owner
}

// UnbindProjectile forgets a released projectile shape.
func (s *Space) UnbindProjectile(shape *cp.Shape) {
	delete(s.shapeOwner, shape)
}

// LineOfSight reports whether the segment from a to b is clear of obstacles.
// The query only considers obstacle shapes, so agents never block each other.
func (s *Space) LineOfSight(a, b cp.Vector) bool {
	filter := cp.NewShapeFilter(cp.NO_GROUP, CategoryAgent, CategoryObstacle)
	info := s.space.SegmentQueryFirst(a, b, 0, filter)
	return info.Shape == nil
}

// DrainImpacts returns the impacts recorded since the last drain.
func (s *Space) DrainImpacts() []Impact {
	if len(s.impacts) == 0 {
		return nil
	}
	out := s.impacts
	s.impacts = nil
	return out
}

func (s *Space) setupHandlers() {
	agentHit := s.space.NewCollisionHandler(CollisionProjectile, CollisionAgent)
	agentHit.UserData = s
	agentHit.BeginFunc = func(arb *cp.Arbiter, _ *cp.Space, userData interface{}) bool {
		sp, ok := userData.(*Space)
		if !ok {
			return false
		}
		shapeA, shapeB := arb.Shapes()
		proj, victim := shapeA, shapeB
		if _, ok := sp.shapeOwner[shapeB]; ok {
			proj, victim = shapeB, shapeA
		}
		sp.impacts = append(sp.impacts, Impact{
			Shape:  proj,
			Owner:  sp.shapeOwner[proj],
			Victim: sp.shapeEntity[victim],
			Point:  proj.Body().Position(),
		})
		return false
	}

	wallHit := s.space.NewCollisionHandler(CollisionProjectile, CollisionObstacle)
	wallHit.UserData = s
	wallHit.BeginFunc = func(arb *cp.Arbiter, _ *cp.Space, userData interface{}) bool {
		sp, ok := userData.(*Space)
		if !ok {
			return false
		}
		shapeA, shapeB := arb.Shapes()
		proj := shapeA
		if _, ok := sp.shapeOwner[shapeB]; ok {
			proj = shapeB
		}
		sp.impacts = append(sp.impacts, Impact{
			Shape: proj,
			Owner: sp.shapeOwner[proj],
			Point: proj.Body().Position(),
		})
		return false
	}
}
