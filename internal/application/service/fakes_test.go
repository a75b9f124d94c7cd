package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sangkips/till-api/internal/domain/entity"
	"github.com/sangkips/till-api/internal/domain/repository"
	"github.com/sangkips/till-api/pkg/pagination"
)

type memUsers struct {
	users map[uuid.UUID]*entity.User
}

func newMemUsers(users ...*entity.User) *memUsers {
	m := &memUsers{users: map[uuid.UUID]*entity.User{}}
	for _, u := range users {
		if u.ID == uuid.Nil {
			u.ID = uuid.New()
		}
		m.users[u.ID] = u
	}
	return m
}

func (m *memUsers) find(match func(*entity.User) bool) (*entity.User, error) {
	for _, u := range m.users {
		if match(u) {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	m.users[u.ID] = u
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return m.find(func(u *entity.User) bool { return u.ID == id })
}

func (m *memUsers) GetByUsername(_ context.Context, name string) (*entity.User, error) {
	return m.find(func(u *entity.User) bool { return u.Username == name })
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return m.find(func(u *entity.User) bool { return u.Email == email })
}

func (m *memUsers) Update(_ context.Context, u *entity.User) error {
	c := *u
	m.users[u.ID] = &c
	return nil
}

type memSettings struct {
	byUser map[uuid.UUID]*entity.UserSettings
	err    error
}

func newMemSettings() *memSettings {
	return &memSettings{byUser: map[uuid.UUID]*entity.UserSettings{}}
}

func (m *memSettings) GetByUserID(_ context.Context, id uuid.UUID) (*entity.UserSettings, error) {
	if m.err != nil {
		return nil, m.err
	}
	s, ok := m.byUser[id]
	if !ok {
		return nil, nil
	}
	c := *s
	return &c, nil
}

func (m *memSettings) GetOrCreate(_ context.Context, s *entity.UserSettings) (*entity.UserSettings, error) {
	if m.err != nil {
		return nil, m.err
	}
	if existing, ok := m.byUser[s.UserID]; ok {
		c := *existing
		return &c, nil
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	c := *s
	m.byUser[s.UserID] = &c
	return s, nil
}

func (m *memSettings) Update(_ context.Context, s *entity.UserSettings) error {
	c := *s
	m.byUser[s.UserID] = &c
	return nil
}

type memCustomers struct {
	customers []entity.Customer
	lastQuery repository.CustomerSearch
}

func (m *memCustomers) Create(_ context.Context, c *entity.Customer) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	m.customers = append(m.customers, *c)
	return nil
}

func (m *memCustomers) GetByID(_ context.Context, id uuid.UUID) (*entity.Customer, error) {
	for _, c := range m.customers {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, nil
}

func (m *memCustomers) GetByAccountNumber(_ context.Context, account string) (*entity.Customer, error) {
	for _, c := range m.customers {
		if c.AccountNumber == account {
			return &c, nil
		}
	}
	return nil, nil
}

func (m *memCustomers) Search(_ context.Context, s repository.CustomerSearch, _ *pagination.PaginationParams) ([]entity.Customer, int64, error) {
	m.lastQuery = s
	var out []entity.Customer
	for _, c := range m.customers {
		switch {
		case s.PhoneE164 != "" && c.PhoneE164 != nil && *c.PhoneE164 == s.PhoneE164:
			out = append(out, c)
		case s.Name != "" && strings.Contains(strings.ToLower(c.Name), strings.ToLower(s.Name)):
			out = append(out, c)
		}
	}
	return out, int64(len(out)), nil
}

type memTransactions struct {
	mu        sync.Mutex
	txns      []entity.Transaction
	createErr error
	lastList  repository.TransactionFilter
}

func (m *memTransactions) Create(_ context.Context, t *entity.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	for _, e := range m.txns {
		if e.DocumentNo == t.DocumentNo {
			return errors.New("duplicate document number")
		}
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	m.txns = append(m.txns, *t)
	return nil
}

func (m *memTransactions) CreateBatch(ctx context.Context, ts []entity.Transaction) error {
	for i := range ts {
		if err := m.Create(ctx, &ts[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *memTransactions) GetByID(_ context.Context, id uuid.UUID) (*entity.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.txns {
		if t.ID == id {
			return &t, nil
		}
	}
	return nil, nil
}

func (m *memTransactions) GetByDocumentNo(_ context.Context, no string) (*entity.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.txns {
		if t.DocumentNo == no {
			return &t, nil
		}
	}
	return nil, nil
}

func (m *memTransactions) List(_ context.Context, f *repository.TransactionFilter) ([]entity.Transaction, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastList = *f

	var match []entity.Transaction
	for _, t := range m.txns {
		if f.StartDate != nil && t.OccurredAt.Before(*f.StartDate) {
			continue
		}
		if f.EndDate != nil && !t.OccurredAt.Before(*f.EndDate) {
			continue
		}
		if f.CustomerID != nil && (t.CustomerID == nil || *t.CustomerID != *f.CustomerID) {
			continue
		}
		if len(f.Kinds) > 0 {
			ok := false
			for _, k := range f.Kinds {
				ok = ok || k == t.Kind
			}
			if !ok {
				continue
			}
		}
		match = append(match, t)
	}
	sort.SliceStable(match, func(i, j int) bool { return match[i].OccurredAt.Before(match[j].OccurredAt) })

	p := f.Pagination
	p.Validate()
	start := min(p.Offset(), len(match))
	end := min(start+p.PerPage, len(match))
	return match[start:end], int64(len(match)), nil
}

func (m *memTransactions) NextSequence(_ context.Context, prefix string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, t := range m.txns {
		if strings.HasPrefix(t.DocumentNo, prefix) {
			n++
		}
	}
	return n + 1, nil
}
