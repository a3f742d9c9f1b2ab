// Package robot implements input.Driver on top of robotgo, driving the real
// mouse and keyboard of the machine running the game client.
package robot

import (
	"github.com/go-vgo/robotgo"

	"github.com/dayti/agribot/internal/input"
)

// Driver sends real OS-level input events.
type Driver struct{}

// New returns a robotgo-backed driver.
func New() *Driver {
	return &Driver{}
}

var _ input.Driver = (*Driver)(nil)

// MoveTo moves the cursor with a smoothed, human-looking trajectory.
func (d *Driver) MoveTo(x, y int) {
	robotgo.MoveSmooth(x, y, 0.8, 1.2)
}

// Click moves to the position and clicks there.
func (d *Driver) Click(b input.Button, x, y int) {
	d.MoveTo(x, y)
	robotgo.Click(string(b), false)
}

// ClickCurrent clicks at the current cursor position without moving.
func (d *Driver) ClickCurrent(b input.Button) {
	robotgo.Click(string(b), false)
}

// KeyTap presses and releases a key with optional modifiers.
func (d *Driver) KeyTap(key string, mods ...string) {
	args := make([]interface{}, len(mods))
	for i, m := range mods {
		args[i] = m
	}
	_ = robotgo.KeyTap(key, args...)
}

// KeyDown holds a key down.
func (d *Driver) KeyDown(key string) {
	_ = robotgo.KeyDown(key)
}

// KeyUp releases a held key.
func (d *Driver) KeyUp(key string) {
	_ = robotgo.KeyUp(key)
}

// TypeStr types a string character by character.
func (d *Driver) TypeStr(text string) {
	robotgo.TypeStr(text)
}

// SetClipboard replaces the system clipboard content.
func (d *Driver) SetClipboard(text string) error {
	return robotgo.WriteAll(text)
}
