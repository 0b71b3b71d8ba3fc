package main

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/distantland/cmd/landview/shaders"
	"github.com/Faultbox/distantland/internal/config"
	"github.com/Faultbox/distantland/internal/engine/camera"
	"github.com/Faultbox/distantland/internal/engine/debug"
	"github.com/Faultbox/distantland/internal/engine/input"
	"github.com/Faultbox/distantland/internal/engine/picking"
	"github.com/Faultbox/distantland/internal/engine/render"
	"github.com/Faultbox/distantland/internal/engine/window"
	"github.com/Faultbox/distantland/internal/landscape"
	"github.com/Faultbox/distantland/internal/logger"
	"github.com/Faultbox/distantland/pkg/geom"
	"github.com/Faultbox/distantland/pkg/quadtree"
)

type viewer struct {
	cfg    *config.Config
	log    *zap.Logger
	window *window.Window
	device *render.GLDevice
	input  *input.Input
	camera *camera.OrbitCamera
	tree   *quadtree.Tree
	pass   *render.Pass
	lines  *render.LineRenderer
	shots  *debug.ScreenshotCapture

	running bool
	// Overlays: node footprints (B) and visible mesh boxes (V).
	showNodes bool
	showBoxes bool
	nodeLines []float32
	boxLines  []float32
	wantShot  bool

	// frozen keeps culling with the frustum captured when F was pressed.
	frozen        bool
	frozenFrustum geom.Frustum
	frozenEye     mgl32.Vec3
}

func newViewer(cfg *config.Config) (*viewer, error) {
	v := &viewer{
		cfg: cfg,
		log: logger.Named("landview"),
	}

	scene, err := loadScene(cfg.Scene)
	if err != nil {
		return nil, err
	}

	v.tree, err = quadtree.New(cfg.Tree, logger.Named("quadtree"))
	if err != nil {
		return nil, errors.Wrap(err, "creating tree")
	}
	report, err := landscape.Populate(v.tree, scene, v.log)
	if err != nil {
		return nil, errors.Wrap(err, "building tree")
	}

	v.window, err = window.New(window.Config{
		Title:      "Distant Land",
		Width:      cfg.View.Width,
		Height:     cfg.View.Height,
		Fullscreen: cfg.View.Fullscreen,
		VSync:      cfg.View.VSync,
	}, logger.Named("window"))
	if err != nil {
		return nil, errors.Wrap(err, "creating window")
	}

	// The device needs the GL context from the window.
	v.device, err = render.NewGLDevice(shaders.LandVertexShader, shaders.LandFragmentShader, logger.Named("render"))
	if err != nil {
		v.window.Close()
		return nil, errors.Wrap(err, "creating device")
	}
	v.upload(scene)

	v.lines, err = render.NewLineRenderer(shaders.LineVertexShader, shaders.LineFragmentShader)
	if err != nil {
		v.Close()
		return nil, errors.Wrap(err, "creating line renderer")
	}
	v.nodeLines = debug.NodeLines(v.tree, 1, -1)
	v.shots = debug.NewScreenshotCapture("screenshots", "landview")

	order, err := render.ParseOrder(cfg.Cull.Sort)
	if err != nil {
		v.Close()
		return nil, err
	}
	v.pass = render.NewPass(v.tree, v.device, order)
	v.pass.ViewRadius = cfg.Cull.ViewRadius

	v.input = input.New()
	v.camera = camera.NewOrbitCamera()
	v.camera.Lens = camera.Lens{FOV: cfg.View.FOV, Near: cfg.View.Near, Far: cfg.View.Far}
	r := report.Root
	v.camera.FitToBounds(geom.NewBox(r.Center[0]-r.Size, 0, r.Center[1]-r.Size, r.Center[0]+r.Size, 0, r.Center[1]+r.Size))

	width, height := v.window.GetSize()
	v.camera.SetViewport(width, height)
	v.device.Resize(width, height)

	v.log.Info("viewer initialized",
		zap.Int("statics", report.Inserted),
		zap.Stringer("order", order),
		zap.Float32("view_radius", v.pass.ViewRadius),
	)
	return v, nil
}

func loadScene(cfg config.SceneConfig) (*landscape.Scene, error) {
	if cfg.Path != "" {
		scene, err := landscape.Load(cfg.Path)
		return scene, errors.Wrap(err, "loading scene")
	}
	opts := landscape.DefaultGenerateOptions()
	opts.Seed = cfg.Seed
	opts.Count = cfg.Count
	opts.Extent = cfg.Extent
	return landscape.Generate(opts), nil
}

// upload creates one box per mesh id and one flat color per texture id.
func (v *viewer) upload(scene *landscape.Scene) {
	for _, s := range lo.UniqBy(scene.Statics, func(s landscape.Static) uint64 { return s.Mesh }) {
		v.device.UploadBox(quadtree.ResourceID(s.Mesh), s.Extents)
	}
	textures := lo.Uniq(lo.Map(scene.Statics, func(s landscape.Static, _ int) uint64 { return s.Texture }))
	for _, id := range textures {
		v.device.UploadColorTexture(quadtree.ResourceID(id), paletteColor(id))
	}
	v.log.Debug("resources uploaded", zap.Int("textures", len(textures)))
}

// paletteColor derives a stable color from a texture id.
func paletteColor(id uint64) [4]uint8 {
	h := id * 0x9e3779b97f4a7c15
	return [4]uint8{
		uint8(80 + (h>>8)%150),
		uint8(80 + (h>>24)%150),
		uint8(60 + (h>>40)%120),
		255,
	}
}

// Close releases GPU and window resources.
func (v *viewer) Close() {
	if v.lines != nil {
		v.lines.Close()
		v.lines = nil
	}
	if v.device != nil {
		v.device.Close()
		v.device = nil
	}
	if v.window != nil {
		v.window.Close()
		v.window = nil
	}
}

// Run is the main loop.
func (v *viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()
	var last render.FrameStats

	v.log.Info("starting render loop")

	for v.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		if v.input.Update() {
			v.running = false
			break
		}
		v.handleEvents()
		v.move(dt)

		f, eye := v.camera.Frustum(), v.camera.Position()
		if v.frozen {
			f, eye = v.frozenFrustum, v.frozenEye
		}

		v.device.Begin(v.camera.ViewProjection(), v.camera.Position(), v.camera.Lens.Far)
		last = v.pass.Run(f, eye)
		v.device.End()
		v.drawOverlays()
		if v.wantShot {
			v.screenshot()
			v.wantShot = false
		}
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.window.SetTitle(fmt.Sprintf("Distant Land | %d fps | %d/%d visible | %d state changes | %s",
				frameCount, last.Visible, v.tree.MeshCount(), last.StateChanges(), v.pass.Order))
			v.log.Debug("frame",
				zap.Int("fps", frameCount),
				zap.Int("visible", last.Visible),
				zap.Int("faces", last.Faces),
				zap.Int("texture_binds", last.TextureBinds),
				zap.Int("geometry_binds", last.GeometryBinds),
				zap.Int("nodes_visited", last.Query.NodesVisited),
				zap.Int("nodes_rejected", last.Query.NodesRejected),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (v *viewer) handleEvents() {
	for _, event := range v.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			width, height := v.window.GetSize()
			v.device.Resize(width, height)
			v.camera.SetViewport(width, height)
		case input.EventMouseMove:
			if v.input.IsButtonDown(sdl.BUTTON_LEFT) {
				v.camera.HandleDrag(float32(event.DeltaX), float32(event.DeltaY))
			}
		case input.EventMouseDown:
			if event.Button == sdl.BUTTON_RIGHT {
				v.pick(event.MouseX, event.MouseY)
			}
		case input.EventMouseWheel:
			v.camera.HandleZoom(event.Wheel)
		case input.EventKeyDown:
			v.handleKey(event.Key)
		}
	}
}

func (v *viewer) handleKey(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		v.running = false
	case sdl.SCANCODE_1:
		v.pass.Order = render.OrderNone
	case sdl.SCANCODE_2:
		v.pass.Order = render.OrderState
	case sdl.SCANCODE_3:
		v.pass.Order = render.OrderTexture
	case sdl.SCANCODE_F:
		v.frozen = !v.frozen
		v.frozenFrustum, v.frozenEye = v.camera.Frustum(), v.camera.Position()
		v.log.Info("culling frustum", zap.Bool("frozen", v.frozen))
	case sdl.SCANCODE_B:
		v.showNodes = !v.showNodes
	case sdl.SCANCODE_V:
		v.showBoxes = !v.showBoxes
	case sdl.SCANCODE_F12:
		v.wantShot = true
	case sdl.SCANCODE_R:
		if v.pass.ViewRadius > 0 {
			v.pass.ViewRadius = 0
		} else {
			v.pass.ViewRadius = max(v.cfg.Cull.ViewRadius, v.camera.Lens.Far/4)
		}
		v.log.Info("view radius", zap.Float32("radius", v.pass.ViewRadius))
	}
}

func (v *viewer) drawOverlays() {
	viewProj := v.camera.ViewProjection()
	if v.showNodes {
		v.lines.Draw(viewProj, v.nodeLines)
	}
	if v.showBoxes {
		v.boxLines = debug.VisibleBoxLines(v.boxLines, v.pass.Visible(), mgl32.Vec3{1, 1, 1}, mgl32.Vec3{0.3, 0.6, 1})
		v.lines.Draw(viewProj, v.boxLines)
	}
}

// pick logs the nearest visible mesh under the cursor.
func (v *viewer) pick(x, y int) {
	width, height := v.window.LogicalSize()
	ray := picking.ScreenToRay(float32(x), float32(y), float32(width), float32(height), v.camera.ViewProjection().Inv())
	m, dist := picking.Pick(ray, v.pass.Visible())
	if m == nil {
		v.log.Info("pick: nothing under cursor")
		return
	}
	v.log.Info("pick",
		zap.Float32("distance", dist),
		zap.Float32s("center", m.Sphere.Center[:]),
		zap.Float32("radius", m.Sphere.Radius),
		zap.Uint64("texture", uint64(m.Texture)),
		zap.Uint64("mesh", uint64(m.VertexBuffer)),
		zap.Int("faces", m.Faces),
		zap.Bool("alpha", m.Alpha),
	)
}

func (v *viewer) screenshot() {
	width, height := v.window.GetSize()
	name, err := v.shots.CaptureFromPixels(render.ReadPixels(width, height), width, height)
	if err != nil {
		v.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", name))
}

func (v *viewer) move(dt float32) {
	// Movement speed is tuned for 60 fps.
	scale := dt * 60
	forward := v.input.Axis(sdl.SCANCODE_S, sdl.SCANCODE_W)
	right := v.input.Axis(sdl.SCANCODE_A, sdl.SCANCODE_D)
	up := v.input.Axis(sdl.SCANCODE_Q, sdl.SCANCODE_E)
	if forward != 0 || right != 0 || up != 0 {
		v.camera.HandleMovement(forward*scale, right*scale, up*scale)
	}
}
