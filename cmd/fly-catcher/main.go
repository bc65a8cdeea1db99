package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/paulmach/orb"

	"github.com/lixenwraith/fly-catcher/audio"
	"github.com/lixenwraith/fly-catcher/capture"
	"github.com/lixenwraith/fly-catcher/core"
	"github.com/lixenwraith/fly-catcher/engine"
	"github.com/lixenwraith/fly-catcher/navigator"
	"github.com/lixenwraith/fly-catcher/room"
	"github.com/lixenwraith/fly-catcher/tuning"
	"github.com/lixenwraith/fly-catcher/vmath"
	"github.com/lixenwraith/fly-catcher/wave"
)

const (
	frameInterval = 16 * time.Millisecond // ~60 FPS
	pinchHold     = 120 * time.Millisecond
	aimStep       = 5 * math.Pi / 180
	openPinch     = 0.08 // thumb-index gap of a relaxed hand, meters
)

var (
	configFlag = flag.String("config", "", "YAML tuning file (built-in defaults when empty)")
	debugFlag  = flag.Bool("debug", false, "Write debug logs to logs/fly-catcher.log")
	seedFlag   = flag.Uint64("seed", 0, "Random seed (0 uses the current time)")
)

var (
	styleWall    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleTable   = tcell.StyleDefault.Foreground(tcell.ColorSaddleBrown)
	styleFrame   = tcell.StyleDefault.Foreground(tcell.ColorSkyblue)
	styleSeeking = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleFlying  = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	styleResting = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleCaught  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleTongue  = tcell.StyleDefault.Foreground(tcell.ColorHotPink)
	styleAim     = tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray)
	stylePlayer  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleStatus  = tcell.StyleDefault.Foreground(tcell.ColorSilver)
)

// Game is the terminal sandbox: a top-down view of the sample room with keyboard-driven hands
type Game struct {
	screen        tcell.Screen
	width, height int

	sim      *engine.Simulation
	director *wave.Director
	sound    *audio.SoundManager
	clock    *engine.PausableClock
	room     *room.Room
	logger   *slog.Logger

	// Viewpoint and aim of the apparatus
	eye        mgl64.Vec3
	yaw, pitch float64

	pinchUntil map[core.Hand]time.Time
}

func NewGame(cfg tuning.Config, seed uint64, logger *slog.Logger) (*Game, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	core.SetCrashCleanup(screen.Fini)

	r := room.Sample(vmath.NewFastRand(seed))
	clock := engine.NewPausableClock(engine.NewMonotonicTimeProvider())
	sim := engine.New(r, engine.Config{
		Tuning: cfg,
		Seed:   seed,
		Logger: logger,
		Clock:  clock,
	})

	director := wave.NewDirector(cfg, r, sim, sim.Rand(), logger.With("component", "wave"), sim.Status)
	sim.Subscribe(director)
	sim.AddSystem(director)

	g := &Game{
		screen:     screen,
		sim:        sim,
		director:   director,
		sound:      audio.NewSoundManager(),
		clock:      clock,
		room:       r,
		logger:     logger,
		eye:        mgl64.Vec3{0, 1.3, -room.SampleDepth/2 + 0.3},
		pinchUntil: make(map[core.Hand]time.Time),
	}
	g.width, g.height = screen.Size()

	// Non-fatal, the sandbox runs without sound
	if err := g.sound.Initialize(); err != nil {
		logger.Warn("audio initialization failed", "error", err)
	}
	sim.Subscribe(g.sound)

	return g, nil
}

// aim is the apparatus orientation chosen with the arrow keys
func (g *Game) aim() mgl64.Quat {
	dir := mgl64.Vec3{
		math.Sin(g.yaw) * math.Cos(g.pitch),
		math.Sin(g.pitch),
		math.Cos(g.yaw) * math.Cos(g.pitch),
	}
	return vmath.LookRotation(dir, vmath.Up)
}

// hand builds a tracking sample whose apparatus lands on the eye pointing along the aim
func (g *Game) hand(h core.Hand, now time.Time) capture.HandInput {
	off := g.sim.Reactor.Offset(h)
	rot := g.aim().Mul(off.Rotation.Inverse()).Normalize()
	root := vmath.Pose{
		Position: g.eye.Sub(rot.Rotate(off.Position)),
		Rotation: rot,
	}

	gap := openPinch
	if now.Before(g.pinchUntil[h]) {
		gap = 0
	}
	thumb := root.TransformPoint(mgl64.Vec3{0, 0, 0.05})
	return capture.HandInput{
		Tracked:  true,
		Root:     root,
		ThumbTip: thumb,
		IndexTip: thumb.Add(root.Right().Mul(gap)),
	}
}

func (g *Game) updateHands() {
	now := time.Now()
	g.sim.SetHands(capture.Hands{
		Left:  g.hand(core.HandLeft, now),
		Right: g.hand(core.HandRight, now),
	})
}

func (g *Game) pinch(h core.Hand) {
	g.pinchUntil[h] = time.Now().Add(pinchHold)
	g.logger.Debug("pinch", "hand", h)
}

// cullOldest removes the lowest-numbered live agent
func (g *Game) cullOldest() {
	entities := g.sim.Agents.Entities()
	if len(entities) == 0 {
		return
	}
	g.sim.CullAgent(entities[0])
}

func (g *Game) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			g.yaw -= aimStep
		case tcell.KeyRight:
			g.yaw += aimStep
		case tcell.KeyUp:
			g.pitch = min(g.pitch+aimStep, math.Pi/2-aimStep)
		case tcell.KeyDown:
			g.pitch = max(g.pitch-aimStep, -math.Pi/2+aimStep)
		case tcell.KeyRune:
			switch ev.Rune() {
			case ' ':
				g.pinch(core.HandRight)
			case 'l':
				g.pinch(core.HandLeft)
			case 'p':
				paused := g.clock.Toggle()
				g.logger.Info("pause toggled", "paused", paused)
			case 'x':
				g.cullOldest()
			case 'q':
				return false
			}
		}

	case *tcell.EventResize:
		g.width, g.height = g.screen.Size()
		g.screen.Sync()
	}

	return true
}

// project maps a world point onto the top-down map, +Z toward the top of the screen
func (g *Game) project(p mgl64.Vec3) (int, int, bool) {
	mapW, mapH := g.width, g.height-2
	if mapW < 2 || mapH < 2 {
		return 0, 0, false
	}
	u := (p[0] + room.SampleWidth/2) / room.SampleWidth
	v := (room.SampleDepth/2 - p[2]) / room.SampleDepth
	const slack = 0.01
	if u < -slack || u > 1+slack || v < -slack || v > 1+slack {
		return 0, 0, false
	}
	u, v = mgl64.Clamp(u, 0, 1), mgl64.Clamp(v, 0, 1)
	return int(u * float64(mapW-1)), int(v * float64(mapH-1)), true
}

func (g *Game) plot(p mgl64.Vec3, ch rune, style tcell.Style) {
	if x, y, ok := g.project(p); ok {
		g.screen.SetContent(x, y, ch, nil, style)
	}
}

// line plots a world-space segment with a fixed sample count
func (g *Game) line(a, b mgl64.Vec3, ch rune, style tcell.Style) {
	const steps = 48
	for i := 0; i <= steps; i++ {
		t := float64(i) / steps
		g.plot(a.Add(b.Sub(a).Mul(t)), ch, style)
	}
}

func (g *Game) drawRoom() {
	for _, a := range g.room.Anchors() {
		b := a.Boundary.Bound()
		switch {
		case a.Label&(core.LabelFloor|core.LabelCeiling) != 0:
			continue
		case a.Label&core.LabelWallFace != 0:
			y := (b.Min[1] + b.Max[1]) / 2
			g.line(a.ToWorld(orb.Point{b.Min[0], y}), a.ToWorld(orb.Point{b.Max[0], y}), '#', styleWall)
		case a.SurfaceType() == core.SurfaceFacingUp:
			for u := b.Min[0]; u <= b.Max[0]; u += 0.1 {
				g.line(a.ToWorld(orb.Point{u, b.Min[1]}), a.ToWorld(orb.Point{u, b.Max[1]}), '=', styleTable)
			}
		default:
			y := (b.Min[1] + b.Max[1]) / 2
			g.line(a.ToWorld(orb.Point{b.Min[0], y}), a.ToWorld(orb.Point{b.Max[0], y}), '|', styleFrame)
		}
	}
}

func (g *Game) drawAgents() {
	for _, a := range g.sim.Agents.Values() {
		ch, style := '?', styleSeeking
		switch {
		case a.Caught:
			ch, style = '@', styleCaught
		case a.State() == navigator.StateTraveling:
			ch, style = '*', styleFlying
		case a.State() == navigator.StateResting:
			ch, style = 'o', styleResting
		}
		g.plot(a.Pose.Position, ch, style)
	}
}

func (g *Game) drawApparatus() {
	r := g.sim.Reactor
	if r.Visible {
		g.line(r.Pose.Position, r.Tip().Position, '~', styleTongue)
		g.plot(r.Tip().Position, 'Q', styleTongue)
	} else {
		reach := g.sim.Tuning.Capture.CastDistance
		g.line(g.eye, g.eye.Add(g.aim().Rotate(vmath.Forward).Mul(reach)), '.', styleAim)
	}
	g.plot(g.eye, 'P', stylePlayer)
}

func (g *Game) drawText(x, y int, s string, style tcell.Style) {
	for i, ch := range s {
		if x+i >= g.width {
			return
		}
		g.screen.SetContent(x+i, y, ch, nil, style)
	}
}

func (g *Game) draw() {
	g.screen.Clear()

	g.drawRoom()
	g.drawAgents()
	g.drawApparatus()

	help := "arrows: aim | space/l: pinch right/left | x: cull | p: pause | esc: quit"
	if g.clock.IsPaused() {
		help = "[PAUSED] " + help
	}
	g.drawText(0, g.height-2, fmt.Sprintf("wave %d (%s) remaining %d | %s",
		g.director.Wave()+1, g.director.Profile().Name, g.director.Remaining(), help), styleStatus)
	g.drawText(0, g.height-1, g.sim.Status.Summary(), styleStatus)

	g.screen.Show()
}

func (g *Game) run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	core.Go(func() {
		for {
			eventChan <- g.screen.PollEvent()
		}
	})

	for {
		select {
		case ev := <-eventChan:
			if ev == nil || !g.handleInput(ev) {
				return
			}

		case <-ticker.C:
			g.updateHands()
			g.sim.Step()
			g.draw()
		}
	}
}

func (g *Game) cleanup() {
	g.sound.Cleanup()
	g.screen.Fini()
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()

	logFile := setupLogging(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}
	logger := slog.Default().With("session", uuid.NewString())

	cfg := tuning.Default()
	if *configFlag != "" {
		loaded, err := tuning.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	seed := *seedFlag
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	logger.Info("sandbox starting", "seed", seed, "waves", len(cfg.Waves))

	game, err := NewGame(cfg, seed, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer game.cleanup()

	game.run()
}
