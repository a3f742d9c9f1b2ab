package session

import "time"

const (
	// SingleFillCap bounds the refill-deposit loop in 1-bucket mode.
	SingleFillCap = 50
	// DepositCap bounds deposits per station in 16-bucket mode so a missed
	// completion message never stalls the session.
	DepositCap = 32

	// DepositDelay spaces bucket actions far enough apart that the server
	// registers each one.
	DepositDelay = 3 * time.Second
	// StationOpenDelay covers the station menu opening after a right click.
	StationOpenDelay = 3 * time.Second
	// DrainDelay spaces the end-of-session bucket emptying clicks.
	DrainDelay = time.Second

	// KeyEmptyHand deselects the hotbar so opening a station cannot consume
	// whatever is held.
	KeyEmptyHand = "0"
)
