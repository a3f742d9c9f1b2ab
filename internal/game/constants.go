package game

import "time"

// Key bindings of the game client. These match the default Minecraft layout
// plus the server's water-refill macro key.
const (
	KeyChat   = "t"
	KeyEscape = "esc"
	KeyEnter  = "enter"
	KeyDrop   = "r"
	KeyCrouch = "shift"
	KeyPaste  = "v"
	KeyRefill = "f7"
	KeyDown   = "down"

	ModCtrl = "ctrl"
)

const (
	// TeleportWait covers the server-side teleport animation after /home.
	TeleportWait = 3 * time.Second
	// WorldLoadWait covers chunk loading after joining the server.
	WorldLoadWait = 10 * time.Second
)
