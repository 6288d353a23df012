package views

import (
	"time"

	"journey/internal/application"
)

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// SetError shows err, or clears the message when err is nil
func (s *ViewState) SetError(err error) {
	if err == nil {
		s.ClearMessage()
		return
	}
	s.SetMessage(err.Error(), true)
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// Clock returns the current time
type Clock func() time.Time

// Navigation messages between views

type SwitchToComposeMsg struct {
	// Date, when set, selects the day to write
	Date string
}

type SwitchToCalendarMsg struct{}

type SwitchToFilesMsg struct{}

type SwitchToPeriodsMsg struct{}

type SwitchToHelpMsg struct{}

// SourcesChangedMsg is sent after the set of open sources changed
type SourcesChangedMsg struct {
	Stats application.SyncStats
}
