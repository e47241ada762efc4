// Package tray provides a system tray menu for the glove tracker.
package tray

import (
	"strings"
	"sync"

	"github.com/ayusman/glovetrack/internal/detector"
	"github.com/getlantern/systray"
)

// Tray represents the system tray application.
type Tray struct {
	onToggle func(enabled bool)
	onStream func()
	onQuit   func()
	enabled  bool
	fingers  string
	mu       sync.RWMutex

	// Menu items stored for later updates
	menuToggle  *systray.MenuItem
	menuFingers *systray.MenuItem
}

// New creates a new Tray instance with enabled state set to true by default.
func New() *Tray {
	return &Tray{
		enabled: true,
	}
}

// OnToggle sets the callback function to be called when the enabled state is toggled.
func (t *Tray) OnToggle(fn func(enabled bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggle = fn
}

// OnStream sets the callback function to be called when the stream menu item is clicked.
func (t *Tray) OnStream(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onStream = fn
}

// OnQuit sets the callback function to be called when the quit menu item is clicked.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the system tray application.
// This function blocks until systray.Quit() is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// onReady is called when the system tray is ready.
// It sets up the menu structure.
func (t *Tray) onReady() {
	// Set the tray title and tooltip
	systray.SetTitle("Glovetrack")
	systray.SetTooltip("Glovetrack hand tracking")

	t.mu.Lock()
	t.menuToggle = systray.AddMenuItem(toggleTitle(t.enabled), "Toggle hand tracking")
	systray.AddSeparator()

	t.menuFingers = systray.AddMenuItem(fingersTitle(t.fingers), "Fingers seen in the last frame")
	t.menuFingers.Disable()
	t.mu.Unlock()
	systray.AddSeparator()

	menuStream := systray.AddMenuItem("Open Stream...", "Open the annotated camera stream in a browser")
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit Glovetrack")

	// Handle menu item clicks in a separate goroutine
	go func() {
		for {
			select {
			case <-t.menuToggle.ClickedCh:
				t.handleToggle()
			case <-menuStream.ClickedCh:
				t.handleStream()
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

// onExit is called when the system tray is about to exit.
// It performs cleanup tasks.
func (t *Tray) onExit() {
	// Cleanup resources if needed
}

// handleToggle handles the toggle menu item click.
func (t *Tray) handleToggle() {
	t.mu.Lock()
	t.enabled = !t.enabled
	enabled := t.enabled

	if t.menuToggle != nil {
		t.menuToggle.SetTitle(toggleTitle(enabled))
	}

	callback := t.onToggle
	t.mu.Unlock()

	// Call the callback outside the lock to prevent deadlocks
	if callback != nil {
		callback(enabled)
	}
}

// handleStream handles the stream menu item click.
func (t *Tray) handleStream() {
	t.mu.RLock()
	callback := t.onStream
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

// handleQuit handles the quit menu item click.
func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}

	systray.Quit()
}

// SetFingers updates the finger names shown in the menu. Repeated names are
// not redrawn.
func (t *Tray) SetFingers(names []detector.FingerName) {
	text := FormatFingers(names)

	t.mu.Lock()
	defer t.mu.Unlock()

	if text == t.fingers {
		return
	}
	t.fingers = text
	if t.menuFingers != nil {
		t.menuFingers.SetTitle(fingersTitle(text))
	}
}

// Fingers returns the finger names currently shown.
func (t *Tray) Fingers() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.fingers
}

// FormatFingers joins the known finger names, skipping unknown tips.
func FormatFingers(names []detector.FingerName) string {
	parts := make([]string, 0, len(names))
	for _, n := range names {
		if n != detector.Unknown {
			parts = append(parts, n.String())
		}
	}
	return strings.Join(parts, ", ")
}

func toggleTitle(enabled bool) string {
	if enabled {
		return "● Tracking"
	}
	return "○ Paused"
}

func fingersTitle(fingers string) string {
	if fingers == "" {
		return "Fingers: none"
	}
	return "Fingers: " + fingers
}

// IsEnabled returns the current enabled state.
func (t *Tray) IsEnabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.enabled
}
