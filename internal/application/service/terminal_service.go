package service

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/till-api/internal/domain/entity"
	"github.com/sangkips/till-api/internal/navigation"
	"github.com/sangkips/till-api/internal/sale"
	"github.com/sangkips/till-api/pkg/apperror"
	"github.com/sirupsen/logrus"
)

var (
	ErrTerminalNotSignedIn = apperror.NewAppError(http.StatusConflict, "Nobody is signed in at this terminal")
	ErrTerminalInUse       = apperror.NewAppError(http.StatusForbidden, "Another user is signed in at this terminal")
)

// CustomerLookup resolves the customer picked on the dashboard
type CustomerLookup interface {
	GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
}

// SaleCommitter stores a completed draft
type SaleCommitter interface {
	Commit(ctx context.Context, input *CommitInput) (*entity.Transaction, error)
}

// TerminalDeps wires a TerminalService
type TerminalDeps struct {
	Machine     navigation.Machine
	Settings    navigation.SettingsLoader
	Documents   navigation.DocumentLoader
	Customers   CustomerLookup
	Committer   SaleCommitter
	Logger      logrus.FieldLogger
	LoadTimeout time.Duration
}

type terminal struct {
	// mu serialises commands that read and then change the controller
	mu   sync.Mutex
	ctrl *navigation.Controller
}

// TerminalService keeps one navigation controller per till terminal and
// runs every till command against it.
type TerminalService struct {
	deps TerminalDeps
	ctx  context.Context

	mu        sync.Mutex
	terminals map[string]*terminal
}

// NewTerminalService creates the registry. ctx bounds the background loads
// of every controller; cancel it on shutdown.
func NewTerminalService(ctx context.Context, deps TerminalDeps) *TerminalService {
	if deps.Logger == nil {
		deps.Logger = logrus.StandardLogger()
	}
	return &TerminalService{
		deps:      deps,
		ctx:       ctx,
		terminals: make(map[string]*terminal),
	}
}

func (s *TerminalService) terminal(id string) *terminal {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.terminals[id]
	if !ok {
		t = &terminal{ctrl: navigation.NewController(s.ctx, s.deps.Machine, navigation.Options{
			TerminalID:  id,
			Settings:    s.deps.Settings,
			Documents:   s.deps.Documents,
			Logger:      s.deps.Logger,
			LoadTimeout: s.deps.LoadTimeout,
		})}
		s.terminals[id] = t
		s.deps.Logger.WithField("terminal", id).Info("terminal registered")
	}
	return t
}

// State returns the navigation state of a terminal
func (s *TerminalService) State(terminalID string) navigation.State {
	return s.terminal(terminalID).ctrl.State()
}

// SignIn logs user in at the terminal, replacing whoever was signed in
func (s *TerminalService) SignIn(ctx context.Context, terminalID string, user *navigation.Identity) navigation.State {
	t := s.terminal(terminalID)
	t.mu.Lock()
	defer t.mu.Unlock()

	state, _ := t.ctrl.Fire(navigation.Event{Intent: navigation.IntentLogin, User: user})
	return state
}

// FireInput is a navigation intent sent by a till
type FireInput struct {
	TerminalID string
	UserID     uuid.UUID
	Intent     navigation.Intent
	CustomerID *uuid.UUID
}

// FireOutput is the state after an intent and whether it changed anything
type FireOutput struct {
	State       navigation.State
	Applied     bool
	Transaction *entity.Transaction
}

// Fire applies an intent at the terminal on behalf of its signed in user.
// Login goes through SignIn; complete stores the open draft first.
func (s *TerminalService) Fire(ctx context.Context, input *FireInput) (*FireOutput, error) {
	if input.Intent == navigation.IntentLogin {
		return nil, apperror.NewBadRequestError("use the login endpoint to sign in")
	}
	if input.Intent == navigation.IntentComplete {
		return s.CompleteSale(ctx, input.TerminalID, input.UserID)
	}

	t := s.terminal(input.TerminalID)
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := ownedBy(t.ctrl.State(), input.UserID); err != nil {
		return nil, err
	}

	ev := navigation.Event{Intent: input.Intent}
	if input.Intent == navigation.IntentSelectCustomer {
		if input.CustomerID == nil {
			return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "customer_id", Message: "is required"}})
		}
		customer, err := s.deps.Customers.GetCustomer(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		ev.Customer = SaleCustomer(customer)
	}

	state, applied := t.ctrl.Fire(ev)
	return &FireOutput{State: state, Applied: applied}, nil
}

// CompleteSale stores the open draft, when it has lines, and then returns
// the terminal to the menu. If storing fails the draft stays open.
func (s *TerminalService) CompleteSale(ctx context.Context, terminalID string, userID uuid.UUID) (*FireOutput, error) {
	t := s.terminal(terminalID)
	t.mu.Lock()
	defer t.mu.Unlock()

	state := t.ctrl.State()
	if err := ownedBy(state, userID); err != nil {
		return nil, err
	}

	out := &FireOutput{}
	if state.Draft != nil && !state.Draft.IsEmpty() {
		if err := state.Draft.Header.Validate(); err != nil {
			return nil, apperror.FromValidation(err)
		}
		txn, err := s.deps.Committer.Commit(ctx, &CommitInput{
			Draft:    state.Draft,
			Settings: state.Settings,
			User:     state.User,
		})
		if err != nil {
			s.deps.Logger.WithError(err).WithField("terminal", terminalID).Error("failed to commit sale")
			return nil, err
		}
		out.Transaction = txn
	}

	out.State, out.Applied = t.ctrl.Fire(navigation.Event{Intent: navigation.IntentComplete})
	return out, nil
}

// UpdateHeader replaces the header of the open draft
func (s *TerminalService) UpdateHeader(ctx context.Context, terminalID string, userID uuid.UUID, header sale.Header) (navigation.State, error) {
	return s.editDraft(terminalID, userID, func(d *sale.Draft) error {
		return d.SetHeader(header)
	})
}

// AddLine appends a line to the open draft
func (s *TerminalService) AddLine(ctx context.Context, terminalID string, userID uuid.UUID, line sale.Line) (navigation.State, error) {
	return s.editDraft(terminalID, userID, func(d *sale.Draft) error {
		return d.AddLine(line)
	})
}

// RemoveLine drops a line of the open draft by position
func (s *TerminalService) RemoveLine(ctx context.Context, terminalID string, userID uuid.UUID, index int) (navigation.State, error) {
	return s.editDraft(terminalID, userID, func(d *sale.Draft) error {
		return d.RemoveLine(index)
	})
}

func (s *TerminalService) editDraft(terminalID string, userID uuid.UUID, fn func(*sale.Draft) error) (navigation.State, error) {
	t := s.terminal(terminalID)
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := ownedBy(t.ctrl.State(), userID); err != nil {
		return navigation.State{}, err
	}
	state, err := t.ctrl.EditDraft(fn)
	if err != nil {
		return navigation.State{}, draftError(err)
	}
	return state, nil
}

// Wait blocks until no terminal has a background load running
func (s *TerminalService) Wait() {
	s.mu.Lock()
	terms := make([]*terminal, 0, len(s.terminals))
	for _, t := range s.terminals {
		terms = append(terms, t)
	}
	s.mu.Unlock()

	for _, t := range terms {
		t.ctrl.Wait()
	}
}

func ownedBy(state navigation.State, userID uuid.UUID) error {
	if state.User == nil {
		return ErrTerminalNotSignedIn
	}
	if state.User.UserID != userID {
		return ErrTerminalInUse
	}
	return nil
}

func draftError(err error) error {
	switch {
	case errors.Is(err, navigation.ErrNoDraft):
		return apperror.ErrNoDraft
	case errors.Is(err, sale.ErrLineIndex):
		return apperror.NewNotFoundError("Line")
	case errors.Is(err, sale.ErrDiscountTooLarge):
		return apperror.NewValidationError([]apperror.FieldError{{Field: "discount_amount", Message: err.Error()}})
	}
	return apperror.FromValidation(err)
}
