package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/tomz197/campus-invaders/internal/draw"
	"github.com/tomz197/campus-invaders/internal/loop"
	"github.com/tomz197/campus-invaders/internal/loop/config"
)

// flashThickness is the width of the damage frame in logical units.
const flashThickness = 8.0

var (
	hudColor    = draw.White
	titleColor  = draw.Cyan
	accentColor = draw.Gold
	dimColor    = draw.Gray
	borderColor = draw.Gray
	flashColor  = draw.Red
)

// Present draws the current frame: the world's canvas with effects on top,
// the HUD row above it and the active screen.
func (c *Client) Present() error {
	c.updateScreen()

	// On screen or inactivity transitions, do a full terminal clear
	// so UI elements from the previous screen don't persist.
	if c.state.Screen != c.state.prevScreen || c.state.isInactive != c.state.wasInactive {
		c.term.Clear()
		c.state.prevScreen = c.state.Screen
		c.state.wasInactive = c.state.isInactive
	}

	c.drawEffects()
	c.term.DrawCanvas(c.canvas)

	// The border doubles as the damage cue when there is room for it.
	col := borderColor
	if c.Flashing() {
		col = flashColor
	}
	c.term.DrawBorder(c.canvas, col)

	c.drawHUD()
	c.drawUI()

	return c.term.Flush()
}

// updateScreen handles terminal resize, clamping to the max render area.
// On actual size changes, clears the terminal to remove residual cells
// outside the new canvas area.
func (c *Client) updateScreen() {
	cols, rows, err := c.term.Size()
	if err != nil {
		return
	}
	if draw.Fit(cols, rows, c.limits).Apply(c.canvas) {
		c.term.Clear()
	}
}

// drawEffects updates and paints debris and the damage frame onto the canvas.
func (c *Client) drawEffects() {
	kept := c.particles[:0]
	for _, p := range c.particles {
		if p.Update() {
			p.Release()
			continue
		}
		p.Draw(c.canvas)
		kept = append(kept, p)
	}
	clear(c.particles[len(kept):])
	c.particles = kept

	if c.Flashing() {
		w, h := c.canvas.Width(), c.canvas.Height()
		t := flashThickness
		c.canvas.FillRect(0, 0, w, t, flashColor)
		c.canvas.FillRect(0, h-t, w, t, flashColor)
		c.canvas.FillRect(0, 0, t, h, flashColor)
		c.canvas.FillRect(w-t, 0, t, h, flashColor)
	}
}

// area returns the 1-based bounds and centre of the render area.
func (c *Client) area() (left, top, width, height, centerX, centerY int) {
	left = c.canvas.OffsetCol() + 1
	top = c.canvas.OffsetRow() + 1
	width = c.canvas.TerminalWidth()
	height = c.canvas.TerminalHeight()
	return left, top, width, height, left + width/2, top + height/2
}

// writeCentered writes s centred on col by display width.
func (c *Client) writeCentered(col, row int, s string, fg draw.Color) {
	c.term.WriteAt(col-runewidth.StringWidth(s)/2, row, s, fg)
}

// drawHUD draws score, time and lives in the row above the canvas.
func (c *Client) drawHUD() {
	left, top, width, _, centerX, _ := c.area()
	row := top - 1
	if row < 1 {
		return
	}

	// Blank the row first so shrinking values leave nothing behind.
	c.term.WriteAt(left, row, strings.Repeat(" ", width), hudColor)

	score := fmt.Sprintf("Score: %d", c.state.Score)
	c.term.WriteAt(left+1, row, score, hudColor)

	timeText := fmt.Sprintf("Time: %ds", c.state.TimeLeft)
	timeColor := hudColor
	if c.state.Screen == ScreenPlaying && c.state.TimeLeft <= 10 {
		timeColor = accentColor
	}
	c.writeCentered(centerX, row, timeText, timeColor)

	lives := fmt.Sprintf("Lives: %d", c.state.Lives)
	c.term.WriteAt(left+width-runewidth.StringWidth(lives)-1, row, lives, hudColor)
}

// drawUI draws the overlay for the current screen.
func (c *Client) drawUI() {
	_, _, _, _, centerX, centerY := c.area()

	if c.state.Screen == ScreenShutdown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	switch c.state.Screen {
	case ScreenTitle:
		c.drawStartScreen(centerX, centerY)
	case ScreenResult:
		c.drawResultScreen(centerX, centerY)
	}
}

// blinkOn alternates every 600ms, for prompts.
func (c *Client) blinkOn() bool {
	return c.now().UnixMilli()/600%2 == 0
}

// drawStartScreen draws the title screen.
func (c *Client) drawStartScreen(centerX, centerY int) {
	titleArt := []string{
		`  ___   _   __  __ ___ _   _ ___  `,
		` / __| /_\ |  \/  | _ \ | | / __| `,
		`| (__ / _ \| |\/| |  _/ |_| \__ \ `,
		` \___/_/ \_\_|  |_|_|  \___/|___/ `,
		`      I  N  V  A  D  E  R  S      `,
	}

	titleStartY := centerY - 8
	for i, line := range titleArt {
		c.writeCentered(centerX, titleStartY+i, line, titleColor)
	}

	y := titleStartY + len(titleArt) + 1
	if name := c.displayName(); name != "" {
		c.writeCentered(centerX, y, "Welcome, "+name, accentColor)
	}
	subtitle := fmt.Sprintf("~ Survive %d seconds of semester ~", c.gameSeconds)
	c.writeCentered(centerX, y+1, subtitle, dimColor)

	controlsY := y + 3
	c.writeCentered(centerX, controlsY, "Controls", hudColor)
	controlLines := []string{
		"A D / < >  . . . . . Move",
		"SPACE / Up . . . . . Fire",
		"ENTER / R  . . . . . Start",
		"Q  . . . . . . . . . Quit",
	}
	for i, line := range controlLines {
		c.writeCentered(centerX, controlsY+1+i, line, dimColor)
	}

	if c.state.StartEnabled && c.blinkOn() {
		c.writeCentered(centerX, controlsY+len(controlLines)+2, ">>  Press ENTER to Start  <<", accentColor)
	}
}

// drawResultScreen draws the result panel and, with a lobby, the leaderboard.
func (c *Client) drawResultScreen(centerX, centerY int) {
	r := c.state.Result
	y := centerY - 5

	c.writeCentered(centerX, y, "GAME OVER", flashColor)
	c.writeCentered(centerX, y+2, r.Title, accentColor)
	c.writeCentered(centerX, y+3, r.Message, hudColor)

	reason := "Time's up!"
	if r.Reason == loop.EndLives {
		reason = "Out of lives!"
	}
	c.writeCentered(centerX, y+5, reason, dimColor)

	y += 7
	if c.lobby != nil {
		top := c.lobby.TopScores()
		if len(top) > 0 {
			c.writeCentered(centerX, y, "Top scores", hudColor)
			for i, e := range top {
				line := fmt.Sprintf("%d. %-*s %5d", i+1, config.MaxUsernameLength, truncate(e.Username), e.Score)
				c.writeCentered(centerX, y+1+i, line, dimColor)
			}
			y += len(top) + 2
		}
	}

	if c.state.StartEnabled && c.blinkOn() {
		c.writeCentered(centerX, y, ">>  Press ENTER or R to Play Again  <<", accentColor)
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	c.writeCentered(centerX, centerY-2, "INACTIVITY WARNING", accentColor)

	left := c.opts.InactivityDisconnect - c.now().Sub(c.state.lastInput)
	msg := fmt.Sprintf("You will be disconnected in %d seconds.", max(int(left.Seconds()), 0))
	c.writeCentered(centerX, centerY, msg, hudColor)

	c.writeCentered(centerX, centerY+2, "Press any key to continue", dimColor)
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	c.writeCentered(centerX, centerY-3, "SERVER SHUTTING DOWN", flashColor)
	c.writeCentered(centerX, centerY-1, "The server is restarting for maintenance.", hudColor)
	c.writeCentered(centerX, centerY, "Please reconnect in a moment.", hudColor)

	remaining := c.state.shutdownAt.Sub(c.now())
	countdown := fmt.Sprintf("Disconnecting in %d seconds...", int(remaining/time.Second)+1)
	c.writeCentered(centerX, centerY+2, countdown, dimColor)

	c.writeCentered(centerX, centerY+4, "Press Q to disconnect now", dimColor)
}

func (c *Client) displayName() string {
	return truncate(c.opts.Username)
}

// truncate shortens a username to the display limit.
func truncate(name string) string {
	return runewidth.Truncate(name, config.MaxUsernameLength, "…")
}
