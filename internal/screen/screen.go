// Package screen models the client flow as an explicit state machine. The
// server never stores a visitor's screen; it only tells the client which
// screen follows an action, so invalid flows are unrepresentable and every
// transition is auditable in one table.
package screen

import (
	"errors"
	"fmt"
)

// Screen names one client view.
type Screen string

const (
	QR               Screen = "qr"
	Welcome          Screen = "welcome"
	Registration     Screen = "registration"
	CodeVerification Screen = "codeVerification"
	CheckedIn        Screen = "checkedIn"
	Program          Screen = "program"
	Resources        Screen = "resources"
	Feedback         Screen = "feedback"
	AdminLogin       Screen = "adminLogin"
	AdminDashboard   Screen = "adminDashboard"
	PostEvent        Screen = "postEvent"
)

// Event names a client action that can move between screens.
type Event string

const (
	JoinScanned        Event = "joinScanned"
	StartRegistration  Event = "startRegistration"
	Registered         Event = "registered"
	ExistingUser       Event = "existingUser"
	EnterCode          Event = "enterCode"
	CodeVerified       Event = "codeVerified"
	OpenProgram        Event = "openProgram"
	OpenResources      Event = "openResources"
	OpenFeedback       Event = "openFeedback"
	FeedbackSubmitted  Event = "feedbackSubmitted"
	OpenAdminLogin     Event = "openAdminLogin"
	AdminAuthenticated Event = "adminAuthenticated"
	Back               Event = "back"
	Logout             Event = "logout"
)

// ErrInvalidTransition is returned when an event is not legal in a state.
var ErrInvalidTransition = errors.New("invalid screen transition")

var transitions = map[Screen]map[Event]Screen{
	QR: {
		JoinScanned:    Welcome,
		EnterCode:      CodeVerification,
		OpenAdminLogin: AdminLogin,
	},
	Welcome: {
		StartRegistration: Registration,
		OpenAdminLogin:    AdminLogin,
	},
	Registration: {
		Registered:   CheckedIn,
		ExistingUser: CodeVerification,
		Back:         Welcome,
	},
	CodeVerification: {
		CodeVerified: CheckedIn,
		Back:         QR,
	},
	CheckedIn: {
		OpenProgram:   Program,
		OpenResources: Resources,
		OpenFeedback:  Feedback,
	},
	Program: {
		OpenResources: Resources,
		OpenFeedback:  Feedback,
		Back:          CheckedIn,
	},
	Resources: {
		OpenProgram: Program,
		Back:        CheckedIn,
	},
	Feedback: {
		FeedbackSubmitted: Program,
		Back:              CheckedIn,
	},
	AdminLogin: {
		AdminAuthenticated: AdminDashboard,
		Back:               QR,
	},
	AdminDashboard: {
		Logout: QR,
	},
	PostEvent: {
		OpenAdminLogin: AdminLogin,
	},
}

// Next returns the screen that follows event in state.
func Next(current Screen, event Event) (Screen, error) {
	if next, ok := transitions[current][event]; ok {
		return next, nil
	}
	return current, fmt.Errorf("%w: %s on %s", ErrInvalidTransition, event, current)
}

// Initial returns the screen a fresh page load starts on. An inactive event
// shows the post-event landing page; a scan of the join QR goes straight to
// the welcome flow.
func Initial(joinIntent, eventActive bool) Screen {
	if !eventActive {
		return PostEvent
	}
	if joinIntent {
		return Welcome
	}
	return QR
}
