package proxy

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/Faultbox/controlshape/pkg/geom"
)

// DrawData is what a draw override hands to the renderer for one frame.
// Points is shared with the cache and must not be modified.
type DrawData struct {
	Points   []mgl64.Vec3
	Bounds   geom.Bounds
	Color    Color
	Selected bool
}

// CacheStats reports cache activity.
type CacheStats struct {
	Recomputes int
	Hits       int
}

// Cache holds the last derived geometry of one shape.
type Cache struct {
	geo        Geometry
	valid      bool
	seen       uint64
	world      mgl64.Mat4
	worldSpace bool
	stats      CacheStats
	log        *zap.Logger
}

// NewCache returns an empty cache.
func NewCache(log *zap.Logger) *Cache {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cache{log: log}
}

// Stale reports whether a lookup for generation gen and input in would
// recompute. In world space a different world matrix also counts, since
// moving the shape is not a parameter change.
func (c *Cache) Stale(gen uint64, in Input) bool {
	if !c.valid || c.seen != gen {
		return true
	}
	return in.WorldSpace && (!c.worldSpace || !sameBits(c.world, in.World))
}

// sameBits compares matrices bit for bit, so a matrix holding NaN still
// matches itself.
func sameBits(a, b mgl64.Mat4) bool {
	for i := range a {
		if math.Float64bits(a[i]) != math.Float64bits(b[i]) {
			return false
		}
	}
	return true
}

// Geometry returns the cached geometry, deriving it again when stale.
func (c *Cache) Geometry(gen uint64, in Input) Geometry {
	if !c.Stale(gen, in) {
		c.stats.Hits++
		return c.geo
	}

	c.geo = Derive(in)
	c.valid = true
	c.seen = gen
	c.world = in.World
	c.worldSpace = in.WorldSpace
	c.stats.Recomputes++

	c.log.Debug("geometry derived",
		zap.Uint64("generation", gen),
		zap.Int("triangles", c.geo.TriangleCount()),
		zap.Bool("worldSpace", in.WorldSpace),
		zap.Int("subsetFaces", len(in.Faces)),
	)
	if sk := c.geo.Skipped; sk.Any() {
		c.log.Warn("derivation skipped input",
			zap.Int("invalidFaces", sk.InvalidFaces),
			zap.Int("unsupportedFaces", sk.UnsupportedFaces),
			zap.Int("invalidTriangles", sk.InvalidTriangles),
			zap.Bool("singularWorld", sk.SingularWorld),
		)
	}
	return c.geo
}

// DrawData returns geometry plus a color resolved for the current
// selection state. The color is never cached.
func (c *Cache) DrawData(gen uint64, in Input, look Appearance, selected bool, lead Color) DrawData {
	g := c.Geometry(gen, in)
	return DrawData{
		Points:   g.Points,
		Bounds:   g.Bounds,
		Color:    look.Resolve(selected, lead),
		Selected: selected,
	}
}

// BoundingBox returns the bounds of the same geometry DrawData serves.
func (c *Cache) BoundingBox(gen uint64, in Input) geom.Bounds {
	return c.Geometry(gen, in).Bounds
}

// Invalidate drops the cached geometry.
func (c *Cache) Invalidate() {
	c.valid = false
	c.geo = Geometry{}
}

// Stats returns the recompute and hit counters.
func (c *Cache) Stats() CacheStats {
	return c.stats
}
