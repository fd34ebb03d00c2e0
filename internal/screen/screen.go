// Package screen defines the screen contract and the navigation stack that
// routes input to the topmost screen and owns every screen's render target.
package screen

import (
	"time"

	"github.com/gogpu/gg"

	"github.com/skygrel/panther/internal/logging"
)

// ID names a screen kind. Navigation commands carry an ID and the stack
// constructs the screen from its registry.
type ID string

const (
	Home    ID = "home"
	Active  ID = "active"
	Paused  ID = "paused"
	Records ID = "records"
	Stats   ID = "stats"
)

// Point is a position or delta in width units with y growing upwards:
// (0, 0) is the bottom-left corner and x = 1 is the right edge.
type Point struct {
	X, Y float64
}

type Op int

const (
	OpNone Op = iota
	OpPush
	OpPop
	OpExit
)

// Command is a navigation request returned from screen methods and applied
// by the stack after the method returns.
type Command struct {
	Op     Op
	Target ID
}

var None = Command{}

func Push(id ID) Command {
	return Command{Op: OpPush, Target: id}
}

func Pop() Command {
	return Command{Op: OpPop}
}

// Exit asks the application to quit regardless of what is below.
func Exit() Command {
	return Command{Op: OpExit}
}

func (c Command) String() string {
	switch c.Op {
	case OpPush:
		return "push(" + string(c.Target) + ")"
	case OpPop:
		return "pop"
	case OpExit:
		return "exit"
	default:
		return "none"
	}
}

// Screen is one full-view unit of the application. Embed Base to get the
// optional methods; Draw has no default.
type Screen interface {
	// StartScroll is asked at touch-down whether drag deltas should be
	// forwarded live.
	StartScroll(pos Point) bool
	Scroll(delta Point)
	Press(pos Point) Command
	Back() Command
	Update(now time.Time) Command
	Draw(c *gg.Context, now time.Time)
	// Expanded reports that the screen fully covers the view and the
	// screens below it can be released.
	Expanded(now time.Time) bool
}

// Base supplies the default behaviour for the optional Screen methods.
type Base struct {
	Name ID
}

func (Base) StartScroll(Point) bool { return true }
func (Base) Scroll(Point)           {}

func (b Base) Press(pos Point) Command {
	logging.L().Debug("press not handled", "screen", b.Name, "x", pos.X, "y", pos.Y)
	return None
}

func (Base) Back() Command            { return None }
func (Base) Update(time.Time) Command { return None }
func (Base) Expanded(time.Time) bool  { return false }

// Factory constructs a screen for a push command.
type Factory func() (Screen, error)

// Registry maps screen IDs to their constructors.
type Registry map[ID]Factory
