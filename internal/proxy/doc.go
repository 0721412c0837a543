// Package proxy derives the display geometry of a proxy control shape.
//
// A control shape shows an offset shell around a reference mesh, or a
// subset of its faces, so riggers can pick it in the viewport without
// touching the mesh itself. The package is split the same way a draw
// override is wired into a host application:
//
//   - Derive turns a mesh, a face subset and a set of transforms into a
//     triangle list and bounds. It is pure.
//   - Tracker decides which parameter changes invalidate cached draw data.
//   - Cache keeps the last derived geometry until the tracker says otherwise.
//   - Shape owns the parameters, the tracker and the cache for one instance.
//   - DrawOverride prepares per-frame draw data for one Shape, querying the
//     Host for selection state, highlight color and world matrix.
//
// Nothing in this package is safe for concurrent use; a Shape belongs to
// the host's draw thread.
package proxy
