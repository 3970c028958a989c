// Package projectile manages pooled projectile bodies. Shots are recycled
// rather than destroyed so sustained fire does not churn the space.
package projectile

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/skirmish/arena"
	"github.com/milk9111/skirmish/ecs"
)

// Shot is one pooled projectile. Inactive shots keep their body and shape
// allocated but removed from the space.
type Shot struct {
	Active   bool
	Owner    ecs.Entity
	Body     *cp.Body
	Shape    *cp.Shape
	Deadline float64 // absolute sim time when the shot expires
}

// Pool hands out projectiles for one shooter. It grows monotonically: shots
// are created on demand and reused forever after.
type Pool struct {
	space      *arena.Space
	ownerGroup uint
	radius     float64
	lifetime   float64

	shots []*Shot
	inUse int
}

// NewPool builds a pool for a shooter. ownerGroup is the shooter's collision
// filter group; sharing it with every shot makes self-hits impossible.
func NewPool(space *arena.Space, ownerGroup uint, radius, lifetime float64) *Pool {
	return &Pool{
		space:      space,
		ownerGroup: ownerGroup,
		radius:     radius,
		lifetime:   lifetime,
	}
}

// Acquire fires a shot from pos with the given velocity. It reuses the first
// inactive shot, growing the pool only when every shot is in flight.
func (p *Pool) Acquire(owner ecs.Entity, pos, velocity cp.Vector, now float64) *Shot {
	shot := p.idle()
	if shot == nil {
		shot = p.grow()
	}

	// Filter and bookkeeping are set before the shot enters the space so
	// the first physics step already sees it as the shooter's.
	shot.Owner = owner
	shot.Shape.SetFilter(cp.NewShapeFilter(p.ownerGroup, arena.CategoryProjectile, arena.CategoryAgent|arena.CategoryObstacle))
	p.space.BindProjectile(shot.Shape, owner)

	shot.Body.SetPosition(pos)
	shot.Body.SetVelocity(velocity.X, velocity.Y)
	shot.Deadline = now + p.lifetime

	p.space.CP().AddBody(shot.Body)
	p.space.CP().AddShape(shot.Shape)
	shot.Active = true
	p.inUse++
	return shot
}

// Release retires a shot back to the pool. Order matters: velocity is
// zeroed, the body leaves the space, then the shot is marked inactive.
func (p *Pool) Release(shot *Shot) {
	if shot == nil || !shot.Active {
		return
	}
	shot.Body.SetVelocity(0, 0)
	shot.Body.SetAngularVelocity(0)
	p.space.UnbindProjectile(shot.Shape)
	p.space.CP().RemoveShape(shot.Shape)
	p.space.CP().RemoveBody(shot.Body)
	shot.Active = false
	shot.Owner = ecs.Entity(0)
	p.inUse--
}

// ReleaseAll retires every in-flight shot, used when the shooter dies.
func (p *Pool) ReleaseAll() {
	for _, shot := range p.shots {
		p.Release(shot)
	}
}

// ReleaseExpired retires shots whose lifetime has elapsed and returns how
// many were retired.
func (p *Pool) ReleaseExpired(now float64) int {
	n := 0
	for _, shot := range p.shots {
		if shot.Active && now >= shot.Deadline {
			p.Release(shot)
			n++
		}
	}
	return n
}

// Find returns the active shot backed by the given shape.
func (p *Pool) Find(shape *cp.Shape) *Shot {
	for _, shot := range p.shots {
		if shot.Active && shot.Shape == shape {
			return shot
		}
	}
	return nil
}

func (p *Pool) Size() int  { return len(p.shots) }
func (p *Pool) InUse() int { return p.inUse }

func (p *Pool) idle() *Shot {
	for _, shot := range p.shots {
		if !shot.Active {
			return shot
		}
	}
	return nil
}

func (p *Pool) grow() *Shot {
	body := cp.NewBody(0.1, cp.INFINITY)
	shape := cp.NewCircle(body, p.radius, cp.Vector{})
	shape.SetCollisionType(arena.CollisionProjectile)
	shape.SetSensor(true)
	shot := &Shot{Body: body, Shape: shape}
	p.shots = append(p.shots, shot)
	return shot
}
