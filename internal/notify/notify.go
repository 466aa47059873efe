// Package notify shows desktop notifications for events the user should see even
// when the overlay is hidden.
package notify

import (
	"log"
	"sync"

	"github.com/gen2brain/beeep"
	"github.com/kino-6/q-deck-launcher-sub002/internal/config"
)

var (
	notifyFn = beeep.Notify
	alertFn  = beeep.Alert
)

// Desktop sends notifications through the OS notification service. Sending
// happens in the background so callers on the engine loop never wait on it.
type Desktop struct {
	enabled bool
	wg      sync.WaitGroup
}

func NewDesktop(enabled bool) *Desktop {
	return &Desktop{enabled: enabled}
}

func (d *Desktop) SetEnabled(enabled bool) { d.enabled = enabled }

func (d *Desktop) Info(title, message string) {
	if !d.enabled {
		return
	}
	d.send(func() {
		if err := notifyFn(config.AppName+": "+title, message, ""); err != nil {
			log.Printf("Failed to send notification: %v", err)
		}
	})
}

func (d *Desktop) Warn(title, message string) {
	if !d.enabled {
		return
	}
	d.send(func() {
		if err := alertFn(config.AppName+": "+title, message, ""); err != nil {
			log.Printf("Failed to send alert: %v", err)
		}
	})
}

func (d *Desktop) send(fn func()) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		fn()
	}()
}

// Wait blocks until every notification sent so far has been handed to the OS.
func (d *Desktop) Wait() { d.wg.Wait() }
