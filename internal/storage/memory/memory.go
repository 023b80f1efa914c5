// Package memory provides an in-memory implementation of the storage.Store interface.
package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage"
)

// Ensure MemoryStore implements storage.Store
var _ storage.Store = (*MemoryStore)(nil)

// MemoryStore implements storage.Store with a map guarded by a RWMutex.
type MemoryStore struct {
	mu          sync.RWMutex
	sessions    map[string]*models.Session
	order       []string
	maxSessions int
	now         func() time.Time
}

// Option configures a MemoryStore.
type Option func(*MemoryStore)

// WithMaxSessions caps the number of sessions held at once. Zero means unlimited.
func WithMaxSessions(n int) Option {
	return func(s *MemoryStore) { s.maxSessions = n }
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *MemoryStore) { s.now = now }
}

// New creates an empty MemoryStore.
func New(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		sessions: make(map[string]*models.Session),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close drops all sessions.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = make(map[string]*models.Session)
	s.order = nil
	return nil
}

// CreateSession stores a new session.
func (s *MemoryStore) CreateSession(ctx context.Context, session *models.Session) error {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	if session.CreatedAt == 0 {
		session.CreatedAt = s.now().Unix()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.maxSessions > 0 && len(s.sessions) >= s.maxSessions {
		return fmt.Errorf("failed to create session: %w", storage.ErrLimitReached)
	}
	if _, exists := s.sessions[session.ID]; exists {
		return fmt.Errorf("session already exists: %s", session.ID)
	}

	s.sessions[session.ID] = cloneSession(session)
	s.order = append(s.order, session.ID)
	return nil
}

// GetSession returns a copy of the session with its title filled in.
func (s *MemoryStore) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	return snapshot(session), nil
}

// ListSessions returns copies of all sessions in creation order.
func (s *MemoryStore) ListSessions(ctx context.Context) ([]*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return lo.Map(s.order, func(id string, _ int) *models.Session {
		return snapshot(s.sessions[id])
	}), nil
}

// DeleteSession removes a session by ID.
func (s *MemoryStore) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.lookup(sessionID); err != nil {
		return err
	}
	delete(s.sessions, sessionID)
	s.order = lo.Without(s.order, sessionID)
	return nil
}

// AddParticipant appends a participant to the session.
func (s *MemoryStore) AddParticipant(ctx context.Context, sessionID string, participant *models.Participant) error {
	if participant.ID == "" {
		participant.ID = uuid.New().String()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.lookup(sessionID)
	if err != nil {
		return err
	}
	if _, found := findParticipant(session, participant.ID); found {
		return fmt.Errorf("participant already exists: %s", participant.ID)
	}

	session.Participants = append(session.Participants, *participant)
	touch(session)
	return nil
}

// RemoveParticipant removes a participant and cascades to the session's expenses.
func (s *MemoryStore) RemoveParticipant(ctx context.Context, sessionID, participantID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.lookup(sessionID)
	if err != nil {
		return err
	}
	idx, found := findParticipant(session, participantID)
	if !found {
		return fmt.Errorf("participant %s: %w", participantID, storage.ErrNotFound)
	}

	session.Participants = slices.Delete(session.Participants, idx, idx+1)

	expenses := session.Expenses[:0]
	for _, e := range session.Expenses {
		if e.PaidBy == participantID {
			continue
		}
		e.SplitAmong = lo.Without(e.SplitAmong, participantID)
		if len(e.SplitAmong) == 0 {
			continue
		}
		expenses = append(expenses, e)
	}
	session.Expenses = expenses

	touch(session)
	return nil
}

// AddExpense appends an expense after checking its participant references.
func (s *MemoryStore) AddExpense(ctx context.Context, sessionID string, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = s.now().Unix()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.lookup(sessionID)
	if err != nil {
		return err
	}

	if _, found := findParticipant(session, expense.PaidBy); !found {
		return &models.UnknownParticipantError{ParticipantID: expense.PaidBy, ExpenseID: expense.ID, Field: "paid_by"}
	}
	for _, id := range expense.SplitAmong {
		if _, found := findParticipant(session, id); !found {
			return &models.UnknownParticipantError{ParticipantID: id, ExpenseID: expense.ID, Field: "split_among"}
		}
	}

	session.Expenses = append(session.Expenses, cloneExpense(*expense))
	touch(session)
	return nil
}

// RemoveExpense removes an expense by ID.
func (s *MemoryStore) RemoveExpense(ctx context.Context, sessionID, expenseID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.lookup(sessionID)
	if err != nil {
		return err
	}
	idx := slices.IndexFunc(session.Expenses, func(e models.Expense) bool { return e.ID == expenseID })
	if idx < 0 {
		return fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}

	session.Expenses = slices.Delete(session.Expenses, idx, idx+1)
	touch(session)
	return nil
}

// ClearExpenses removes all expenses and the last result.
func (s *MemoryStore) ClearExpenses(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.lookup(sessionID)
	if err != nil {
		return err
	}
	if len(session.Expenses) == 0 && session.Result == nil {
		return nil
	}
	session.Expenses = nil
	touch(session)
	return nil
}

// SaveResult stores a calculation result if the session is still at version.
func (s *MemoryStore) SaveResult(ctx context.Context, sessionID string, version int64, result *models.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.lookup(sessionID)
	if err != nil {
		return err
	}
	if session.Version != version {
		return fmt.Errorf("session %s at version %d, result for %d: %w",
			sessionID, session.Version, version, storage.ErrConflict)
	}

	session.Result = cloneResult(result)
	return nil
}

// ClearResult discards the last result.
func (s *MemoryStore) ClearResult(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.lookup(sessionID)
	if err != nil {
		return err
	}
	session.Result = nil
	return nil
}

// lookup must be called with s.mu held.
func (s *MemoryStore) lookup(sessionID string) (*models.Session, error) {
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", sessionID, storage.ErrNotFound)
	}
	return session, nil
}

// touch records a change to participants or expenses. Any cached result is stale after it.
func touch(session *models.Session) {
	session.Version++
	session.Result = nil
}

func findParticipant(session *models.Session, id string) (int, bool) {
	idx := slices.IndexFunc(session.Participants, func(p models.Participant) bool { return p.ID == id })
	return idx, idx >= 0
}

// snapshot copies a session and fills in a generated title when none was given.
func snapshot(session *models.Session) *models.Session {
	c := cloneSession(session)
	if c.Title == "" {
		c.Title = generateTitle(c)
	}
	return c
}

func cloneSession(session *models.Session) *models.Session {
	c := *session
	c.Participants = slices.Clone(session.Participants)
	c.Expenses = lo.Map(session.Expenses, func(e models.Expense, _ int) models.Expense {
		return cloneExpense(e)
	})
	c.Result = cloneResult(session.Result)
	return &c
}

func cloneExpense(e models.Expense) models.Expense {
	e.SplitAmong = slices.Clone(e.SplitAmong)
	return e
}

func cloneResult(r *models.Result) *models.Result {
	if r == nil {
		return nil
	}
	c := *r
	c.Balances = make(models.Balances, len(r.Balances))
	for id, v := range r.Balances {
		c.Balances[id] = v
	}
	c.Settlements = slices.Clone(r.Settlements)
	return &c
}

// generateTitle creates an auto-generated title from participant names.
func generateTitle(session *models.Session) string {
	names := lo.Map(session.Participants, func(p models.Participant, _ int) string { return p.Name })
	if len(names) == 0 {
		return fmt.Sprintf("Session - %s", time.Unix(session.CreatedAt, 0).UTC().Format("Jan 2, 2006"))
	}
	if len(names) <= 3 {
		return fmt.Sprintf("Split with %s", strings.Join(names, ", "))
	}
	return fmt.Sprintf("Split with %s and %d others",
		strings.Join(names[:2], ", "),
		len(names)-2,
	)
}
