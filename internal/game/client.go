// Package game translates bot intentions into sequences of simulated input
// against the running game client. Every action is paced with humanized
// delays and aborts promptly when the context is cancelled.
package game

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/dayti/agribot/internal/config"
	"github.com/dayti/agribot/internal/domain"
	"github.com/dayti/agribot/internal/input"
)

// Client is the surface the session driver works through.
type Client interface {
	// Connect clicks through the server list and join confirmation.
	Connect(ctx context.Context) error
	// Disconnect leaves the server via the pause menu.
	Disconnect(ctx context.Context) error
	// SendCommand opens chat, enters a slash command and submits it.
	SendCommand(ctx context.Context, cmd string) error
	// SendChat opens chat, enters a plain message and submits it.
	SendChat(ctx context.Context, msg string) error
	// Home teleports to a named home and waits out the teleport.
	Home(ctx context.Context, name string) error
	// SelectSlot presses the hotbar digit for slot (1-9).
	SelectSlot(ctx context.Context, slot int) error
	// DropItems presses the drop key count times.
	DropItems(ctx context.Context, count int) error
	// ClickAt moves to a named configured position and clicks there.
	ClickAt(ctx context.Context, b input.Button, posKey string) error
	// ClickCurrent clicks at the current cursor position.
	ClickCurrent(ctx context.Context, b input.Button) error
	// ShiftClickAt holds crouch while left-clicking a configured position,
	// moving a whole stack in a container screen.
	ShiftClickAt(ctx context.Context, posKey string) error
	// PressKey taps a single key with a short pause after it.
	PressKey(ctx context.Context, key string) error
	// RefillBuckets triggers the server's fill-all macro.
	RefillBuckets(ctx context.Context) error
	// CloseMenus returns the client to the in-world state from any screen.
	CloseMenus(ctx context.Context) error
	// PlantSeed crouches and right-clicks to plant on the block under the
	// crosshair.
	PlantSeed(ctx context.Context) error
	// Harvest clicks the station's harvest spot with the given button,
	// falling back to the default harvest position.
	Harvest(ctx context.Context, st domain.Station, b input.Button) error
	// Pause sleeps for a humanized duration, honoring ctx.
	Pause(ctx context.Context, base time.Duration) error
}

type client struct {
	drv input.Driver
	cfg *config.Config
	log *slog.Logger
}

// NewClient wires a client over the given input driver.
func NewClient(drv input.Driver, cfg *config.Config, log *slog.Logger) Client {
	if log == nil {
		log = slog.Default()
	}
	return &client{drv: drv, cfg: cfg, log: log}
}

// Connect clicks the server entry, highlights it, opens its context menu and
// confirms the join, then closes any screen left over from the world load.
func (c *client) Connect(ctx context.Context) error {
	c.log.Info("connecting to server")
	if err := c.ClickAt(ctx, input.LeftButton, config.PosServerConnect); err != nil {
		return err
	}
	if err := c.Pause(ctx, c.longDelay()); err != nil {
		return err
	}
	if err := c.PressKey(ctx, KeyDown); err != nil {
		return err
	}
	if err := c.ClickCurrent(ctx, input.RightButton); err != nil {
		return err
	}
	if err := c.ClickAt(ctx, input.LeftButton, config.PosServerConfirm); err != nil {
		return err
	}
	if err := c.Pause(ctx, WorldLoadWait); err != nil {
		return err
	}
	return c.CloseMenus(ctx)
}

func (c *client) Disconnect(ctx context.Context) error {
	c.log.Info("disconnecting from server")
	if err := c.PressKey(ctx, KeyEscape); err != nil {
		return err
	}
	if err := c.Pause(ctx, c.mediumDelay()); err != nil {
		return err
	}
	if err := c.ClickAt(ctx, input.LeftButton, config.PosDisconnect); err != nil {
		return err
	}
	return c.Pause(ctx, c.mediumDelay())
}

func (c *client) SendCommand(ctx context.Context, cmd string) error {
	c.log.Debug("sending command", "command", cmd)
	return c.typeInChat(ctx, cmd)
}

func (c *client) SendChat(ctx context.Context, msg string) error {
	c.log.Debug("sending chat message")
	return c.typeInChat(ctx, msg)
}

// typeInChat prefers the clipboard paste path because the in-game chat box
// drops accented characters when typed key by key.
func (c *client) typeInChat(ctx context.Context, text string) error {
	if err := c.PressKey(ctx, KeyChat); err != nil {
		return err
	}
	if err := c.drv.SetClipboard(text); err != nil {
		c.log.Warn("clipboard unavailable, typing directly", "error", err)
		c.drv.TypeStr(text)
	} else {
		c.drv.KeyTap(KeyPaste, ModCtrl)
	}
	if err := c.Pause(ctx, c.shortDelay()); err != nil {
		return err
	}
	return c.PressKey(ctx, KeyEnter)
}

func (c *client) Home(ctx context.Context, name string) error {
	c.log.Info("teleporting home", "home", name)
	if err := c.SendCommand(ctx, "/home "+name); err != nil {
		return err
	}
	return c.Pause(ctx, TeleportWait)
}

func (c *client) SelectSlot(ctx context.Context, slot int) error {
	if slot < 1 || slot > 9 {
		return fmt.Errorf("hotbar slot %d out of range [1,9]", slot)
	}
	return c.PressKey(ctx, strconv.Itoa(slot))
}

func (c *client) DropItems(ctx context.Context, count int) error {
	c.log.Debug("dropping items", "count", count)
	for i := 0; i < count; i++ {
		if err := c.PressKey(ctx, KeyDrop); err != nil {
			return err
		}
	}
	return nil
}

func (c *client) ClickAt(ctx context.Context, b input.Button, posKey string) error {
	pos, ok := c.cfg.Position(posKey)
	if !ok {
		return fmt.Errorf("position %q is not configured", posKey)
	}
	c.drv.Click(b, pos.X, pos.Y)
	return c.Pause(ctx, c.shortDelay())
}

func (c *client) ClickCurrent(ctx context.Context, b input.Button) error {
	c.drv.ClickCurrent(b)
	return c.Pause(ctx, c.shortDelay())
}

func (c *client) ShiftClickAt(ctx context.Context, posKey string) error {
	pos, ok := c.cfg.Position(posKey)
	if !ok {
		return fmt.Errorf("position %q is not configured", posKey)
	}
	c.drv.KeyDown(KeyCrouch)
	c.drv.Click(input.LeftButton, pos.X, pos.Y)
	c.drv.KeyUp(KeyCrouch)
	return c.Pause(ctx, c.shortDelay())
}

func (c *client) PressKey(ctx context.Context, key string) error {
	c.drv.KeyTap(key)
	return c.Pause(ctx, c.shortDelay())
}

func (c *client) RefillBuckets(ctx context.Context) error {
	c.log.Debug("refilling buckets")
	return c.PressKey(ctx, KeyRefill)
}

// CloseMenus taps the chat key before escape. Opening then closing chat
// resets the client's focus, which also dismisses container screens that
// swallow a bare escape.
func (c *client) CloseMenus(ctx context.Context) error {
	if err := c.PressKey(ctx, KeyChat); err != nil {
		return err
	}
	return c.PressKey(ctx, KeyEscape)
}

func (c *client) PlantSeed(ctx context.Context) error {
	c.drv.KeyDown(KeyCrouch)
	if err := c.Pause(ctx, c.shortDelay()); err != nil {
		c.drv.KeyUp(KeyCrouch)
		return err
	}
	c.drv.ClickCurrent(input.RightButton)
	err := c.Pause(ctx, c.shortDelay())
	c.drv.KeyUp(KeyCrouch)
	return err
}

func (c *client) Harvest(ctx context.Context, st domain.Station, b input.Button) error {
	pos := st.HarvestPos
	if pos == nil || pos.IsZero() {
		def, ok := c.cfg.Position(config.PosDefaultHarvest)
		if !ok {
			return fmt.Errorf("station %q: %w", st.Name, domain.ErrHarvestPosMissing)
		}
		pos = &def
	}
	c.log.Debug("harvesting", "station", st.Name, "button", string(b))
	c.drv.Click(b, pos.X, pos.Y)
	return c.Pause(ctx, c.mediumDelay())
}

func (c *client) Pause(ctx context.Context, base time.Duration) error {
	d := input.Humanize(base, c.cfg.Delays.HumanVariation)
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (c *client) shortDelay() time.Duration {
	return secondsToDuration(c.cfg.Delays.Short)
}

func (c *client) mediumDelay() time.Duration {
	return secondsToDuration(c.cfg.Delays.Medium)
}

func (c *client) longDelay() time.Duration {
	return secondsToDuration(c.cfg.Delays.Long)
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
