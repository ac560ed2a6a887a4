package host

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/Versifine/stride/internal/anim"
	"github.com/Versifine/stride/internal/audio"
	"github.com/Versifine/stride/internal/controller"
	"github.com/Versifine/stride/internal/mathx"
	"github.com/Versifine/stride/internal/world"
)

const (
	screenWidth  = 960
	screenHeight = 540

	// the simulation steps at ebiten's tick rate
	simStep = 1.0 / 60.0

	pixelsPerUnit = 24.0
	eyeHeight     = 1.6
	strideLength  = 1.4
)

// Game drives the controller loop from ebiten's fixed tick and draws a
// top-down debug view of the collision world.
type Game struct {
	loop    *controller.Loop
	source  *Source
	sink    *audio.Sink        // optional
	emitter *anim.EventEmitter // optional
	params  *anim.Recorder
	world   *world.World
	configs <-chan controller.Config // optional
}

func NewGame(loop *controller.Loop, source *Source, w *world.World) *Game {
	params := anim.NewRecorder()
	loop.AttachAnimationSink(params)
	return &Game{
		loop:   loop,
		source: source,
		params: params,
		world:  w,
	}
}

// WithAudio wires the audio sink and the event emitter feeding it.
func (g *Game) WithAudio(sink *audio.Sink, emitter *anim.EventEmitter) {
	g.sink = sink
	g.emitter = emitter
}

// WithConfigUpdates applies live tuning revisions between frames.
func (g *Game) WithConfigUpdates(configs <-chan controller.Config) {
	g.configs = configs
}

func (g *Game) Update() error {
	if g.configs != nil {
		select {
		case cfg := <-g.configs:
			g.loop.ApplyConfig(cfg)
		default:
		}
	}

	g.source.Poll()
	g.loop.Update(simStep)
	g.loop.LateUpdate(simStep)

	pose := g.loop.Pose()
	if g.emitter != nil {
		g.emitter.Observe(pose.Position, g.loop.Grounded(), g.loop.Motion().InputMagnitude)
	}
	if g.sink != nil {
		g.sink.SetListener(pose.Position.Add(mgl64.Vec3{0, eyeHeight, 0}))
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 24, G: 26, B: 30, A: 255})

	for _, box := range g.world.Boxes() {
		g.drawBox(screen, box)
	}
	g.drawCharacter(screen)
	g.drawHUD(screen)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return screenWidth, screenHeight
}

// worldToScreen projects a world-space point onto the top-down view, with
// the world origin at screen center; +X right, +Z up.
func worldToScreen(p mgl64.Vec3) (float32, float32) {
	return float32(screenWidth/2 + p.X()*pixelsPerUnit),
		float32(screenHeight/2 - p.Z()*pixelsPerUnit)
}

func (g *Game) drawBox(screen *ebiten.Image, box world.Box) {
	// skip the implicit ground slab, it would fill the screen
	if box.Max.X()-box.Min.X() > 2*screenWidth/pixelsPerUnit {
		return
	}
	x0, y1 := worldToScreen(box.Min)
	x1, y0 := worldToScreen(box.Max)

	fill := color.RGBA{R: 80, G: 90, B: 110, A: 96}
	line := colornames.Slategray
	if box.Trigger {
		fill = color.RGBA{R: 110, G: 80, B: 40, A: 64}
		line = colornames.Darkorange
	}
	vector.FillRect(screen, x0, y0, x1-x0, y1-y0, fill, false)
	vector.StrokeRect(screen, x0, y0, x1-x0, y1-y0, 1.0, line, false)
}

func (g *Game) drawCharacter(screen *ebiten.Image) {
	pose := g.loop.Pose()
	cx, cy := worldToScreen(pose.Position)

	body := colornames.Lightgreen
	if !g.loop.Grounded() {
		body = colornames.Orange
	}
	vector.FillCircle(screen, cx, cy, 6, body, true)

	// facing line
	dir := mathx.YawToDir(pose.Yaw)
	fx, fy := worldToScreen(pose.Position.Add(dir.Mul(0.8)))
	vector.StrokeLine(screen, cx, cy, fx, fy, 2, colornames.White, true)

	// camera yaw line, third person orbits independently of the body
	_, camYaw := g.loop.CameraAngles()
	camDir := mathx.YawToDir(camYaw)
	gx, gy := worldToScreen(pose.Position.Add(camDir.Mul(1.2)))
	vector.StrokeLine(screen, cx, cy, gx, gy, 1, colornames.Skyblue, true)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	pose := g.loop.Pose()
	motion := g.loop.Motion()
	pitch, yaw := g.loop.CameraAngles()

	hud := fmt.Sprintf(
		"mode: %s   pos: (%.2f, %.2f, %.2f)\nspeed: %.2f  blend: %.2f  grounded: %v  jump: %v  freefall: %v\ncamera: yaw %.1f pitch %.1f\nWASD move  Shift sprint  Space jump  V toggle view  RMB drag look",
		g.loop.Mode(),
		pose.Position.X(), pose.Position.Y(), pose.Position.Z(),
		motion.Speed, motion.AnimationBlend, g.loop.Grounded(),
		g.params.Bools[anim.ParamJump], g.params.Bools[anim.ParamFreeFall],
		yaw, pitch,
	)
	ebitenutil.DebugPrintAt(screen, hud, 8, 8)
}

// Run opens the window and blocks until it closes.
func Run(g *Game) error {
	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("stride")
	return ebiten.RunGame(g)
}
