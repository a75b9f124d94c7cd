package navigation

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/till-api/internal/domain/enum"
	"github.com/sangkips/till-api/internal/sale"
	"github.com/sangkips/till-api/pkg/logger"
	"github.com/sirupsen/logrus"
)

const (
	resourceSettings  = "settings"
	resourceDocuments = "dashboard-documents"
)

// ErrNoDraft is returned when a draft edit arrives while no draft is open
var ErrNoDraft = errors.New("no draft is open on this terminal")

// SettingsLoader fetches a user's till settings. A nil result with a nil
// error means the user has none and the defaults stay.
type SettingsLoader interface {
	FetchUserSettings(ctx context.Context, userID uuid.UUID) (*sale.Settings, error)
}

// DocumentLoader fetches the documents shown for a dashboard customer
type DocumentLoader interface {
	FetchDashboardDocuments(ctx context.Context, mode enum.DashboardMode, customerID uuid.UUID) ([]DocumentSummary, error)
}

// Options configures a Controller
type Options struct {
	TerminalID  string
	Settings    SettingsLoader
	Documents   DocumentLoader
	Logger      logrus.FieldLogger
	LoadTimeout time.Duration
}

// Controller owns the navigation state of one terminal. Intents are applied
// one at a time; background loads apply their result only if no newer load
// for the same resource was issued in the meantime.
type Controller struct {
	mu      sync.Mutex
	state   State
	machine Machine
	gens    *Generations
	wg      sync.WaitGroup

	ctx        context.Context
	terminalID string
	settings   SettingsLoader
	documents  DocumentLoader
	log        logrus.FieldLogger
	timeout    time.Duration
}

// NewController creates a controller on the login screen. ctx bounds every
// background load the controller starts.
func NewController(ctx context.Context, machine Machine, opts Options) *Controller {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	timeout := opts.LoadTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Controller{
		state:      machine.Initial(),
		machine:    machine,
		gens:       NewGenerations(),
		ctx:        ctx,
		terminalID: opts.TerminalID,
		settings:   opts.Settings,
		documents:  opts.Documents,
		log:        log.WithField("terminal", opts.TerminalID),
		timeout:    timeout,
	}
}

// TerminalID returns the terminal this controller drives
func (c *Controller) TerminalID() string {
	return c.terminalID
}

// State returns a copy of the current state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Fire applies ev and returns the resulting state and whether it changed anything
func (c *Controller) Fire(ev Event) (State, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev := c.state
	res := c.machine.Fire(prev, ev)
	if !res.Applied {
		c.log.WithFields(logrus.Fields{
			"intent": ev.Intent.String(),
			"screen": prev.Screen.String(),
		}).Debug("intent ignored")
		return c.state.Clone(), false
	}

	c.state = res.State
	c.log.WithFields(logrus.Fields{
		"intent": ev.Intent.String(),
		"from":   prev.Screen.String(),
		"to":     c.state.Screen.String(),
	}).Info("navigation")

	c.afterTransition(prev, res)
	return c.state.Clone(), true
}

// EditDraft runs fn on a copy of the open draft and keeps the copy only if
// fn succeeds.
func (c *Controller) EditDraft(fn func(d *sale.Draft) error) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Draft == nil || !c.state.Screen.HasDraftEditor() {
		return c.state.Clone(), ErrNoDraft
	}
	work := c.state.Draft.Clone()
	if err := fn(work); err != nil {
		return c.state.Clone(), err
	}
	c.state.Draft = work
	return c.state.Clone(), nil
}

// Wait blocks until every background load has finished
func (c *Controller) Wait() {
	c.wg.Wait()
}

// afterTransition must be called with c.mu held
func (c *Controller) afterTransition(prev State, res Result) {
	next := res.State

	if prev.User != nil && (next.User == nil || next.User.UserID != prev.User.UserID) {
		c.gens.Invalidate(resourceSettings)
	}
	if res.LoadSettings() && next.User != nil && c.settings != nil {
		c.loadSettings(c.gens.Next(resourceSettings), *next.User)
	}

	switch {
	case res.LoadDocuments() && c.documents != nil && next.Dashboard.Complete():
		c.loadDocuments(c.gens.Next(resourceDocuments), next.Dashboard.Mode, next.Dashboard.Customer.ID)
	case next.Dashboard == nil:
		c.gens.Invalidate(resourceDocuments)
	}
}

func (c *Controller) loadSettings(token Token, user Identity) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		ctx, cancel := context.WithTimeout(c.ctx, c.timeout)
		defer cancel()
		loaded, err := c.settings.FetchUserSettings(ctx, user.UserID)

		c.mu.Lock()
		defer c.mu.Unlock()

		if !c.gens.IsCurrent(token) || c.state.User == nil || c.state.User.UserID != user.UserID {
			c.log.WithField("user", user.Username).Debug("discarding stale settings load")
			return
		}
		if err != nil {
			logger.LogError(c.log, "navigation", "loadSettings", "keeping default settings", user.Username, err)
			return
		}
		if loaded == nil {
			return
		}
		c.state.Settings = loaded.WithFallback(c.machine.Defaults())
		c.state.SettingsLoaded = true
	}()
}

func (c *Controller) loadDocuments(token Token, mode enum.DashboardMode, customerID uuid.UUID) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		ctx, cancel := context.WithTimeout(c.ctx, c.timeout)
		defer cancel()
		docs, err := c.documents.FetchDashboardDocuments(ctx, mode, customerID)

		c.mu.Lock()
		defer c.mu.Unlock()

		dash := c.state.Dashboard
		if !c.gens.IsCurrent(token) || !dash.Complete() || dash.Customer.ID != customerID || dash.Mode != mode {
			c.log.WithField("customer", customerID).Debug("discarding stale dashboard documents")
			return
		}
		if err != nil {
			logger.LogError(c.log, "navigation", "loadDocuments", mode.String(), customerID, err)
			return
		}
		if docs == nil {
			docs = []DocumentSummary{}
		}
		dash.Documents = docs
		dash.DocumentsLoaded = true
	}()
}
