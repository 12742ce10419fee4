package session

import (
	"strconv"
	"time"
)

// State of the session as seen by the tracker.
type State int

const (
	Anonymous State = iota
	Active
	IdleExpired
)

func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case IdleExpired:
		return "idle-expired"
	default:
		return "anonymous"
	}
}

// Decision is the outcome of a guarded navigation check.
type Decision struct {
	Allow      bool
	RedirectTo string
}

// LoginPath is where expired or anonymous sessions are sent.
const LoginPath = "/login"

// Tracker enforces the idle timeout on top of a Store. The check is lazy:
// nothing runs in the background, expiry is detected at the next guarded
// navigation. The idle window is independent of server-side token expiry;
// a token the server still accepts is abandoned once the user has been
// inactive past the window.
type Tracker struct {
	store       Store
	idleTimeout time.Duration
	now         func() time.Time
}

func NewTracker(store Store, idleTimeout time.Duration) *Tracker {
	return &Tracker{
		store:       store,
		idleTimeout: idleTimeout,
		now:         time.Now,
	}
}

// WithClock pins the tracker clock; used by tests.
func (t *Tracker) WithClock(now func() time.Time) *Tracker {
	t.now = now
	return t
}

// Login stores the issued token and user payload and stamps activity.
func (t *Tracker) Login(token string, userJSON string) {
	t.store.Set(KeyToken, token)
	t.store.Set(KeyUser, userJSON)
	t.Touch()
}

// Logout clears every session key.
func (t *Tracker) Logout() {
	t.store.Clear()
}

// Touch re-stamps lastActivity. Called on user interaction while the
// session is live.
func (t *Tracker) Touch() {
	millis := t.now().UnixMilli()
	t.store.Set(KeyLastActivity, strconv.FormatInt(millis, 10))
}

// Token returns the stored credential, empty when anonymous.
func (t *Tracker) Token() string {
	return t.store.Get(KeyToken)
}

// State reports the session state without side effects.
func (t *Tracker) State() State {
	token := t.store.Get(KeyToken)
	if token == "" {
		return Anonymous
	}

	last := t.lastActivity()
	if last.IsZero() || t.now().Sub(last) > t.idleTimeout {
		return IdleExpired
	}
	return Active
}

// Check is the navigation guard. An idle-expired session is cleared on the
// spot and redirected to login; an anonymous one is redirected without
// clearing. Active sessions pass and get a fresh activity stamp.
func (t *Tracker) Check() Decision {
	switch t.State() {
	case Active:
		t.Touch()
		return Decision{Allow: true}
	case IdleExpired:
		t.store.Clear()
		return Decision{RedirectTo: LoginPath}
	default:
		return Decision{RedirectTo: LoginPath}
	}
}

func (t *Tracker) lastActivity() time.Time {
	raw := t.store.Get(KeyLastActivity)
	if raw == "" {
		return time.Time{}
	}

	millis, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.UnixMilli(millis)
}
