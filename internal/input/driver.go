// Package input abstracts the simulated mouse and keyboard. The game client
// depends on the Driver interface only; tests use a recording fake and the
// real binary wires in the robotgo-backed driver.
package input

// Button identifies a mouse button.
type Button string

const (
	LeftButton  Button = "left"
	RightButton Button = "right"
)

// Driver simulates user input. Implementations perform the raw action and
// return immediately; pacing between actions is the caller's concern.
type Driver interface {
	// MoveTo moves the cursor to a screen position.
	MoveTo(x, y int)

	// Click moves to the position and clicks there.
	Click(b Button, x, y int)

	// ClickCurrent clicks at the current cursor position without moving.
	ClickCurrent(b Button)

	// KeyTap presses and releases a key, with optional modifiers ("ctrl").
	KeyTap(key string, mods ...string)

	// KeyDown holds a key down until KeyUp.
	KeyDown(key string)

	// KeyUp releases a held key.
	KeyUp(key string)

	// TypeStr types a string character by character.
	TypeStr(text string)

	// SetClipboard replaces the system clipboard content, enabling the
	// paste path for chat commands.
	SetClipboard(text string) error
}
