// Package debug drives the controller loop headless from a raw-mode
// terminal. Useful for poking at tuning changes without a window.
package debug

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/term"

	"github.com/Versifine/stride/internal/controller"
	"github.com/Versifine/stride/internal/input"
	"github.com/Versifine/stride/internal/locomotion"
)

const (
	defaultTickInterval = 16 * time.Millisecond
	defaultMovePulse    = 180 * time.Millisecond
	lookStep            = 5.0
)

// Console owns the terminal and steps the loop on a fixed tick. It is the
// loop's input source: key presses accumulate between ticks and are folded
// into one frame at the start of each tick.
type Console struct {
	loop         *controller.Loop
	tickInterval time.Duration
	movePulse    time.Duration

	mu            sync.Mutex
	sprint        bool
	forwardUntil  time.Time
	backwardUntil time.Time
	leftUntil     time.Time
	rightUntil    time.Time
	jumpUntil     time.Time
	toggleUntil   time.Time
	pendingLook   mgl64.Vec2
	commandMode   bool
	commandBuf    []rune
	statusWidth   int

	// written only from the tick goroutine
	frame input.Frame
}

func NewConsole() *Console {
	return &Console{
		tickInterval: defaultTickInterval,
		movePulse:    defaultMovePulse,
	}
}

// Frame implements input.Source. The tick goroutine refreshes the frame
// before each loop step.
func (c *Console) Frame() *input.Frame { return &c.frame }

// LookDevice implements input.Source. Arrow keys deliver absolute degree
// steps, so they count as a pointer device.
func (c *Console) LookDevice() input.DeviceClass { return input.PointerDevice }

// Bind attaches the loop the console drives. Must be called before Start.
func (c *Console) Bind(loop *controller.Loop) { c.loop = loop }

// Start switches the terminal to raw mode and blocks until the context is
// cancelled or stdin closes.
func (c *Console) Start(ctx context.Context) error {
	if c.loop == nil {
		return fmt.Errorf("console has no loop bound")
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("set terminal raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
		fmt.Print("\r\n")
	}()

	fmt.Print("[debug] console started (W/A/S/D pulse, Space jump, V toggle view, arrows look, ] sprint, X clear, : commands)\r\n")
	c.renderStatusLine()

	go c.tickLoop(ctx)

	reader := bufio.NewReader(os.Stdin)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		b, err := reader.ReadByte()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read console input: %w", err)
		}
		if b == 'q' || b == 3 { // q or Ctrl-C
			return nil
		}
		c.handleKey(reader, b)
	}
}

func (c *Console) tickLoop(ctx context.Context) {
	ticker := time.NewTicker(c.tickInterval)
	defer ticker.Stop()

	dt := c.tickInterval.Seconds()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.frame = c.buildFrame()
			c.loop.Update(dt)
			c.loop.LateUpdate(dt)
			c.renderStatusLine()
		}
	}
}

// buildFrame folds the pulse timers and pending look delta into one input
// frame. The look delta is consumed; holding nothing yields a zero frame.
func (c *Console) buildFrame() input.Frame {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	var f input.Frame
	if now.Before(c.forwardUntil) {
		f.Move[1] += 1
	}
	if now.Before(c.backwardUntil) {
		f.Move[1] -= 1
	}
	if now.Before(c.leftUntil) {
		f.Move[0] -= 1
	}
	if now.Before(c.rightUntil) {
		f.Move[0] += 1
	}
	f.Jump = now.Before(c.jumpUntil)
	f.ToggleView = now.Before(c.toggleUntil)
	f.Sprint = c.sprint
	f.Look = c.pendingLook
	c.pendingLook = mgl64.Vec2{}
	return f
}

func (c *Console) handleKey(reader *bufio.Reader, b byte) {
	if c.isCommandMode() {
		c.handleCommandByte(b)
		return
	}

	switch b {
	case ':':
		c.enterCommandMode()
		return
	case 'w', 'W':
		c.pulse(&c.forwardUntil, &c.backwardUntil)
	case 's', 'S':
		c.pulse(&c.backwardUntil, &c.forwardUntil)
	case 'a', 'A':
		c.pulse(&c.leftUntil, &c.rightUntil)
	case 'd', 'D':
		c.pulse(&c.rightUntil, &c.leftUntil)
	case ' ':
		c.pulse(&c.jumpUntil, nil)
	case 'v', 'V':
		c.mu.Lock()
		c.toggleUntil = time.Now().Add(c.tickInterval * 2)
		c.mu.Unlock()
	case ']':
		c.mu.Lock()
		c.sprint = !c.sprint
		c.mu.Unlock()
	case 'x', 'X':
		c.clearInput()
	case 27: // ESC + arrow sequence
		next, err := reader.ReadByte()
		if err != nil || next != '[' {
			return
		}
		arrow, err := reader.ReadByte()
		if err != nil {
			return
		}
		switch arrow {
		case 'D': // left
			c.addLook(mgl64.Vec2{-lookStep, 0})
		case 'C': // right
			c.addLook(mgl64.Vec2{lookStep, 0})
		case 'A': // up
			c.addLook(mgl64.Vec2{0, -lookStep})
		case 'B': // down
			c.addLook(mgl64.Vec2{0, lookStep})
		}
	}
	c.renderStatusLine()
}

// pulse arms a movement timer and cancels its opposite.
func (c *Console) pulse(until, opposite *time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	*until = time.Now().Add(c.movePulse)
	if opposite != nil {
		*opposite = time.Time{}
	}
}

func (c *Console) addLook(delta mgl64.Vec2) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pendingLook = c.pendingLook.Add(delta)
}

func (c *Console) clearInput() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sprint = false
	c.forwardUntil = time.Time{}
	c.backwardUntil = time.Time{}
	c.leftUntil = time.Time{}
	c.rightUntil = time.Time{}
	c.jumpUntil = time.Time{}
	c.toggleUntil = time.Time{}
	c.pendingLook = mgl64.Vec2{}
}

func (c *Console) enterCommandMode() {
	c.mu.Lock()
	c.commandMode = true
	c.commandBuf = c.commandBuf[:0]
	c.mu.Unlock()
	fmt.Print("\r\n:")
}

func (c *Console) isCommandMode() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.commandMode
}

func (c *Console) handleCommandByte(b byte) {
	switch b {
	case 13, 10: // Enter
		c.mu.Lock()
		cmd := strings.TrimSpace(string(c.commandBuf))
		c.commandMode = false
		c.commandBuf = c.commandBuf[:0]
		c.mu.Unlock()

		fmt.Print("\r\n")
		if cmd != "" {
			c.executeCommand(cmd)
		}
		c.renderStatusLine()
	case 27: // ESC cancels command mode
		c.mu.Lock()
		c.commandMode = false
		c.commandBuf = c.commandBuf[:0]
		c.mu.Unlock()
		fmt.Print("\r\n[debug] command cancelled\r\n")
		c.renderStatusLine()
	case 8, 127: // Backspace
		c.mu.Lock()
		if len(c.commandBuf) > 0 {
			c.commandBuf = c.commandBuf[:len(c.commandBuf)-1]
		}
		buf := string(c.commandBuf)
		c.mu.Unlock()
		fmt.Printf("\r:%s ", buf)
		fmt.Printf("\r:%s", buf)
	default:
		if b < 32 || b > 126 {
			return
		}
		c.mu.Lock()
		c.commandBuf = append(c.commandBuf, rune(b))
		buf := string(c.commandBuf)
		c.mu.Unlock()
		fmt.Printf("\r:%s", buf)
	}
}

func (c *Console) executeCommand(cmd string) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return
	}

	switch parts[0] {
	case "help":
		c.printHelp()
	case "state":
		pose := c.loop.Pose()
		vert := c.loop.Vertical()
		pitch, yaw := c.loop.CameraAngles()
		fmt.Printf("[debug] pos=(%.3f,%.3f,%.3f) yaw=%.1f vvel=%.3f ground=%t cam=(%.1f,%.1f)\r\n",
			pose.Position.X(), pose.Position.Y(), pose.Position.Z(),
			pose.Yaw, vert.Velocity, c.loop.Grounded(), yaw, pitch,
		)
	case "tp":
		if len(parts) != 4 {
			fmt.Printf("[debug] usage: :tp <x> <y> <z>\r\n")
			return
		}
		x, err1 := strconv.ParseFloat(parts[1], 64)
		y, err2 := strconv.ParseFloat(parts[2], 64)
		z, err3 := strconv.ParseFloat(parts[3], 64)
		if err1 != nil || err2 != nil || err3 != nil {
			fmt.Printf("[debug] invalid tp args\r\n")
			return
		}
		c.loop.SetPose(locomotion.Pose{
			Position: mgl64.Vec3{x, y, z},
			Yaw:      c.loop.Pose().Yaw,
		})
		fmt.Printf("[debug] teleported to (%.3f, %.3f, %.3f)\r\n", x, y, z)
	default:
		fmt.Printf("[debug] unknown command: %s\r\n", parts[0])
	}
}

func (c *Console) printHelp() {
	fmt.Print("[debug] keys:\r\n")
	fmt.Print("  W/S/A/D: pulse movement (~180ms)\r\n")
	fmt.Print("  Space: jump\r\n")
	fmt.Print("  V: toggle view mode\r\n")
	fmt.Print("  ]: toggle sprint\r\n")
	fmt.Print("  Arrow keys: look +/-5 degrees\r\n")
	fmt.Print("  X: clear all input\r\n")
	fmt.Print("  Q: quit\r\n")
	fmt.Print("  : enter command mode\r\n")
	fmt.Print("[debug] commands: :state :tp <x> <y> <z> :help\r\n")
}

func (c *Console) renderStatusLine() {
	c.mu.Lock()
	if c.commandMode {
		c.mu.Unlock()
		return
	}
	sprint := c.sprint
	width := c.statusWidth
	c.mu.Unlock()

	pose := c.loop.Pose()
	motion := c.loop.Motion()
	pitch, yaw := c.loop.CameraAngles()

	line := fmt.Sprintf(
		"[%s SPR:%s | X:%.2f Y:%.2f Z:%.2f | spd:%.2f ground:%t | cam yaw:%.1f pit:%.1f]",
		c.loop.Mode(),
		boolLabel(sprint),
		pose.Position.X(), pose.Position.Y(), pose.Position.Z(),
		motion.Speed, c.loop.Grounded(), yaw, pitch,
	)

	padding := ""
	if width > len(line) {
		padding = strings.Repeat(" ", width-len(line))
	}
	fmt.Printf("\r%s%s", line, padding)

	c.mu.Lock()
	if len(line) > c.statusWidth {
		c.statusWidth = len(line)
	}
	c.mu.Unlock()
}

func boolLabel(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
