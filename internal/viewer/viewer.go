// Package viewer implements the preview window: it hosts the scene's
// control shapes, draws them through their draw overrides and routes
// input to the editor.
package viewer

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/controlshape/internal/config"
	"github.com/Faultbox/controlshape/internal/editor"
	"github.com/Faultbox/controlshape/internal/engine/camera"
	"github.com/Faultbox/controlshape/internal/engine/debug"
	"github.com/Faultbox/controlshape/internal/engine/input"
	"github.com/Faultbox/controlshape/internal/engine/picking"
	"github.com/Faultbox/controlshape/internal/engine/renderer"
	"github.com/Faultbox/controlshape/internal/engine/window"
	"github.com/Faultbox/controlshape/internal/logger"
	"github.com/Faultbox/controlshape/internal/proxy"
	"github.com/Faultbox/controlshape/internal/scene"
)

// Mouse movement beyond this many pixels turns a click into a drag.
const dragThreshold = 4

// boundsPad keeps the wireframe off coplanar shell faces.
const boundsPad = 0.002

var boundsColor = proxy.Color{R: 0.7, G: 0.7, B: 0.7, A: 1}

// Viewer is the preview application.
type Viewer struct {
	cfg       *config.Config
	scene     *scene.Scene
	scenePath string
	editor    *editor.Editor
	bindings  input.Bindings
	lead      proxy.Color

	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera

	// Per-entry draw data reused across frames.
	drawData map[*scene.Entry]*proxy.DrawData

	screenshots *debug.Screenshots
	captureNext bool

	showBounds bool
	pressX     int
	pressY     int
	dragging   bool
	log        *zap.Logger
}

// New opens the window and prepares the scene for drawing.
func New(cfg *config.Config, sc *scene.Scene, scenePath string, entries []*scene.Entry) (*Viewer, error) {
	log := logger.Named("viewer")
	log.Info("initializing viewer",
		zap.String("scene", scenePath),
		zap.Int("shapes", len(entries)),
	)

	lc := cfg.Viewer.LeadColor
	v := &Viewer{
		cfg:        cfg,
		scene:      sc,
		scenePath:  scenePath,
		editor:     editor.New(entries, cfg.Viewer.OffsetStep, log),
		bindings:   input.DefaultBindings(),
		lead:       proxy.RGB(lc[0], lc[1], lc[2]),
		camera:     camera.NewOrbitCamera(),
		drawData:   make(map[*scene.Entry]*proxy.DrawData),
		showBounds: cfg.Viewer.ShowBounds,
		log:        log,

		screenshots: debug.NewScreenshots(cfg.Viewer.ScreenshotDir, "controlshape"),
	}
	v.camera.FOV = cfg.Viewer.FOV
	for _, e := range entries {
		e.Host.Lead = v.lead
	}

	var err error
	v.window, err = window.New(window.Config{
		Title:      "controlshape - " + scenePath,
		Width:      cfg.Viewer.Width,
		Height:     cfg.Viewer.Height,
		Fullscreen: cfg.Viewer.Fullscreen,
		VSync:      cfg.Viewer.VSync,
		Samples:    4,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer needs the GL context the window just created.
	w, h := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{
		Width:      w,
		Height:     h,
		Background: cfg.Viewer.Background,
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	v.renderer.Resize(w, h)

	v.input = input.New()
	v.camera.FitBounds(v.editor.Bounds())

	log.Info("viewer initialized")
	return v, nil
}

// Run starts the main loop.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	v.log.Info("starting main loop")

	for v.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		if v.input.Update() {
			v.running = false
			break
		}
		v.handleEvents()

		stats := v.render()
		if v.captureNext {
			v.captureNext = false
			v.capture()
		}
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("frame stats",
				zap.Int("fps", frameCount),
				zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)),
				zap.Int("drawables", stats.Drawables),
				zap.Int("triangles", stats.Triangles),
			)
			v.window.SetTitle(fmt.Sprintf("controlshape - %s - %d fps, %d tris",
				v.scenePath, frameCount, stats.Triangles))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close cleans up resources.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

func (v *Viewer) handleEvents() {
	events := v.input.Events()
	for _, e := range events {
		switch e.Type {
		case input.EventWindowResize:
			w, h := v.window.DrawableSize()
			v.renderer.Resize(w, h)

		case input.EventMouseDown:
			v.pressX, v.pressY = e.MouseX, e.MouseY
			v.dragging = false

		case input.EventMouseMove:
			v.handleDrag(e)

		case input.EventMouseUp:
			if e.Button == sdl.BUTTON_LEFT && !v.dragging {
				v.click(e.MouseX, e.MouseY, e.Shift())
			}
			v.dragging = false

		case input.EventMouseWheel:
			v.camera.HandleZoom(e.Wheel)
		}
	}

	for _, a := range v.bindings.Actions(events) {
		v.apply(a)
	}
}

func (v *Viewer) handleDrag(e input.Event) {
	left := v.input.IsButtonDown(sdl.BUTTON_LEFT)
	pan := v.input.IsButtonDown(sdl.BUTTON_MIDDLE) || v.input.IsButtonDown(sdl.BUTTON_RIGHT)
	if !left && !pan {
		return
	}
	if !v.dragging {
		dx, dy := e.MouseX-v.pressX, e.MouseY-v.pressY
		if dx*dx+dy*dy < dragThreshold*dragThreshold {
			return
		}
		v.dragging = true
	}
	if pan {
		v.camera.HandlePan(float32(e.DeltaX), float32(e.DeltaY))
	} else {
		v.camera.HandleDrag(float32(e.DeltaX), float32(e.DeltaY))
	}
}

// click selects the shape under the cursor.
func (v *Viewer) click(x, y int, toggle bool) {
	w, h := v.window.Size()
	vp := v.camera.ViewProjection(float32(w) / float32(h))
	var inv mgl64.Mat4
	for i, f := range vp.Inv() {
		inv[i] = float64(f)
	}
	ray := picking.ScreenToRay(float64(x), float64(y), float64(w), float64(h), inv)
	v.editor.Select(v.editor.PickAt(ray), toggle)
}

func (v *Viewer) apply(a input.Action) {
	v.log.Debug("action", zap.Stringer("action", a))
	switch a {
	case input.ActionQuit:
		v.running = false
	case input.ActionOffsetUp:
		v.editor.NudgeOffset(1)
	case input.ActionOffsetDown:
		v.editor.NudgeOffset(-1)
	case input.ActionToggleBounds:
		v.showBounds = !v.showBounds
	case input.ActionToggleWorldSpace:
		v.editor.ToggleWorldSpace()
	case input.ActionFrameAll:
		v.camera.FitBounds(v.editor.Bounds())
	case input.ActionDeselect:
		v.editor.ClearSelection()
	case input.ActionCycleFaces:
		v.editor.CycleFaces()
	case input.ActionScreenshot:
		v.captureNext = true
	case input.ActionSave:
		v.editor.Capture()
		if err := v.scene.Save(v.scenePath); err != nil {
			v.log.Error("failed to save scene", zap.String("path", v.scenePath), zap.Error(err))
			return
		}
		v.log.Info("scene saved", zap.String("path", v.scenePath))
	}
}

func (v *Viewer) capture() {
	pixels, w, h := v.renderer.ReadPixels()
	path, err := v.screenshots.SaveRGBA(pixels, w, h)
	if err != nil {
		v.log.Error("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}

// render draws every visible shape. A shape whose host queries fail is
// skipped for the frame; the others still draw.
func (v *Viewer) render() renderer.Stats {
	w, h := v.window.DrawableSize()
	v.renderer.Begin(v.camera.ViewProjection(float32(w) / float32(h)))

	for _, e := range v.editor.Entries() {
		if !e.Shape.Visible() {
			continue
		}
		world, err := e.Override.Transform(e.Host)
		if err != nil {
			v.log.Warn("skipping shape", zap.String("shape", e.Shape.Name()), zap.Error(err))
			continue
		}
		data, err := e.Override.PrepareForDraw(e.Host, v.drawData[e])
		if err != nil {
			v.log.Warn("skipping shape", zap.String("shape", e.Shape.Name()), zap.Error(err))
			continue
		}
		v.drawData[e] = data
		e.DrawDirty = false

		v.renderer.SetModel(world)
		if v.showBounds && !data.Bounds.IsEmpty() {
			c := boundsColor
			if data.Selected {
				c = v.lead.WithAlpha(1)
			}
			v.renderer.Lines(data.Bounds.Pad(boundsPad).Wireframe(), c)
		}
		e.Override.AddUIDrawables(v.renderer, data)
	}

	return v.renderer.End()
}
