// pkg/entity/entity.go
package entity

import (
	"context"

	"github.com/opd-ai/go-lander/pkg/event"
	"github.com/opd-ai/go-lander/pkg/input"
	"github.com/opd-ai/go-lander/pkg/physics"
)

// Entity is the base interface for all objects in the simulation
type Entity interface {
	Base() *Object
	// Update advances the entity by one fixed tick of dt seconds.
	Update(w World, dt float64)
	Draw(r Renderer)
	// RenderPriority orders drawing; higher values are drawn first.
	RenderPriority() int
}

// Collider is an entity that takes part in collision checks.
type Collider interface {
	Entity
	IsPointInside(p physics.Vector2D) bool
	OnCollision(w World, other Collider)
}

// World is the simulation context handed to entities on every tick.
type World interface {
	Colliders() []Collider
	Input() input.Source
	Bus() *event.Bus
	CurrentTick() uint64
	Context() context.Context
}

// Object holds the placement shared by every entity. Pos is the top-left
// corner in world space and Rotation is in degrees about the local center.
type Object struct {
	Pos      physics.Vector2D
	Size     physics.Size
	Rotation float64
	Enabled  bool
	Visible  bool
	// ScreenSpace objects ignore the camera.
	ScreenSpace bool
}

// NewObject creates an enabled, visible object.
func NewObject(pos physics.Vector2D, size physics.Size) Object {
	return Object{
		Pos:     pos,
		Size:    size,
		Enabled: true,
		Visible: true,
	}
}

// Base returns the object itself so embedding types satisfy Entity.
func (o *Object) Base() *Object {
	return o
}

// Center returns the local center point.
func (o *Object) Center() physics.Vector2D {
	return physics.Vector2D{X: o.Size.Width / 2, Y: o.Size.Height / 2}
}

// WorldCenter returns the center in world space.
func (o *Object) WorldCenter() physics.Vector2D {
	return o.Pos.Add(o.Center())
}

// Bounds returns the unrotated world rectangle.
func (o *Object) Bounds() physics.Rect {
	return physics.NewRect(o.Pos, o.Size)
}

// WorldToObject maps a world point into local, unrotated coordinates.
func (o *Object) WorldToObject(p physics.Vector2D) physics.Vector2D {
	return p.Sub(o.Pos).RotateAround(-o.Rotation, o.Center())
}

// ObjectToWorld maps a local point into world coordinates.
func (o *Object) ObjectToWorld(p physics.Vector2D) physics.Vector2D {
	return p.RotateAround(o.Rotation, o.Center()).Add(o.Pos)
}

func publish(w World, e event.Event) {
	if bus := w.Bus(); bus != nil {
		bus.Publish(e)
	}
}
