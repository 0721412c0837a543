package proxy

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrHostQuery wraps every failure reported by a Host.
var ErrHostQuery = errors.New("host query failed")

// Host is what a shape needs to know about the application it lives in.
// Values are re-read on every call; nothing here is cached.
//
//go:generate mockgen -destination=mocks/mock_host.go -package=mocks -source=host.go
type Host interface {
	// WorldMatrix returns the shape's inclusive world matrix.
	WorldMatrix() (mgl64.Mat4, error)
	// IsSelected reports whether the shape or its owning transform is in
	// the active selection.
	IsSelected() (bool, error)
	// LeadColor returns the highlight color for selected objects.
	LeadColor() (Color, error)
}

// StaticHost is a Host with fixed answers.
type StaticHost struct {
	World    mgl64.Mat4
	Selected bool
	Lead     Color
}

// NewStaticHost returns an unselected host at the origin.
func NewStaticHost(lead Color) *StaticHost {
	return &StaticHost{World: mgl64.Ident4(), Lead: lead}
}

// WorldMatrix returns h.World.
func (h *StaticHost) WorldMatrix() (mgl64.Mat4, error) { return h.World, nil }

// IsSelected returns h.Selected.
func (h *StaticHost) IsSelected() (bool, error) { return h.Selected, nil }

// LeadColor returns h.Lead.
func (h *StaticHost) LeadColor() (Color, error) { return h.Lead, nil }
