package services_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/taskmgr_backend/internal/apperrors"
	"github.com/SscSPs/taskmgr_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/taskmgr_backend/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// --- Stateful in-memory credential store ---

type memStore struct {
	mu            sync.Mutex
	users         map[string]domain.User
	sessions      map[string]domain.Session
	verifications map[string]domain.EmailVerification
	verifySeq     map[string]int
	resets        map[string]domain.PasswordReset
	links         map[string]domain.OAuthLink
	seq           int

	// Failure injection.
	deleteAllSessionsErr error
}

func newMemStore() *memStore {
	return &memStore{
		users:         make(map[string]domain.User),
		sessions:      make(map[string]domain.Session),
		verifications: make(map[string]domain.EmailVerification),
		verifySeq:     make(map[string]int),
		resets:        make(map[string]domain.PasswordReset),
		links:         make(map[string]domain.OAuthLink),
	}
}

type memSnapshot struct {
	users         map[string]domain.User
	sessions      map[string]domain.Session
	verifications map[string]domain.EmailVerification
	verifySeq     map[string]int
	resets        map[string]domain.PasswordReset
	links         map[string]domain.OAuthLink
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *memStore) snapshot() memSnapshot {
	return memSnapshot{
		users:         cloneMap(s.users),
		sessions:      cloneMap(s.sessions),
		verifications: cloneMap(s.verifications),
		verifySeq:     cloneMap(s.verifySeq),
		resets:        cloneMap(s.resets),
		links:         cloneMap(s.links),
	}
}

func (s *memStore) restore(snap memSnapshot) {
	s.users = snap.users
	s.sessions = snap.sessions
	s.verifications = snap.verifications
	s.verifySeq = snap.verifySeq
	s.resets = snap.resets
	s.links = snap.links
}

func (s *memStore) provider(r *memRepos) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:              r,
		SessionRepo:           r,
		EmailVerificationRepo: r,
		PasswordResetRepo:     r,
		OAuthRepo:             r,
		TxManager:             s,
	}
}

// Provider returns repositories that lock the store per call.
func (s *memStore) Provider() portsrepo.RepositoryProvider {
	return s.provider(&memRepos{s: s})
}

// WithinTx serialises transactions and restores the previous state on error or panic.
func (s *memStore) WithinTx(ctx context.Context, fn portsrepo.TxFunc) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	defer func() {
		if p := recover(); p != nil {
			s.restore(snap)
			panic(p)
		}
	}()

	if err = fn(ctx, s.provider(&memRepos{s: s, inTx: true})); err != nil {
		s.restore(snap)
	}
	return err
}

func (s *memStore) userCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

func (s *memStore) sessionCount(userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, sess := range s.sessions {
		if sess.UserID == userID {
			n++
		}
	}
	return n
}

func (s *memStore) linkCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.links)
}

func (s *memStore) hasReset(email string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.resets[strings.ToLower(email)]
	return ok
}

type memRepos struct {
	s    *memStore
	inTx bool
}

func (r *memRepos) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *memRepos) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	defer r.lock()()
	u, ok := r.s.users[userID]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *memRepos) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	defer r.lock()()
	if email == "" {
		return nil, nil
	}
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *memRepos) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	defer r.lock()()
	for _, u := range r.s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *memRepos) conflict(userID, email, username string) error {
	for id, u := range r.s.users {
		if id == userID {
			continue
		}
		if email != "" && strings.EqualFold(u.Email, email) {
			return apperrors.ErrDuplicateEmail
		}
		if username != "" && u.Username == username {
			return apperrors.ErrDuplicateUsername
		}
	}
	return nil
}

func (r *memRepos) CreateUser(ctx context.Context, user *domain.User) error {
	defer r.lock()()
	if err := r.conflict(user.UserID, user.Email, user.Username); err != nil {
		return err
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.s.users[user.UserID] = *user
	return nil
}

func (r *memRepos) UpdateUser(ctx context.Context, userID string, update domain.UserUpdate) (*domain.User, error) {
	defer r.lock()()
	u, ok := r.s.users[userID]
	if !ok {
		return nil, nil
	}
	var email, username string
	if update.Email != nil {
		email = *update.Email
	}
	if update.Username != nil {
		username = *update.Username
	}
	if err := r.conflict(userID, email, username); err != nil {
		return nil, err
	}
	if update.Username != nil {
		u.Username = *update.Username
	}
	if update.Email != nil {
		u.Email = *update.Email
	}
	if update.Password != nil {
		u.Password = *update.Password
	}
	if update.Verified != nil {
		u.Verified = *update.Verified
	}
	if update.Avatar != nil {
		u.Avatar = update.Avatar
	}
	u.UpdatedAt = time.Now()
	r.s.users[userID] = u
	return &u, nil
}

func (r *memRepos) DeleteUser(ctx context.Context, userID string) error {
	defer r.lock()()
	if _, ok := r.s.users[userID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.s.users, userID)
	for k, sess := range r.s.sessions {
		if sess.UserID == userID {
			delete(r.s.sessions, k)
		}
	}
	for k, v := range r.s.verifications {
		if v.UserID == userID {
			delete(r.s.verifications, k)
		}
	}
	for k, l := range r.s.links {
		if l.UserID == userID {
			delete(r.s.links, k)
		}
	}
	return nil
}

func (r *memRepos) CreateSession(ctx context.Context, session *domain.Session) error {
	defer r.lock()()
	if _, ok := r.s.sessions[session.Token]; ok {
		return apperrors.ErrDuplicate
	}
	r.s.sessions[session.Token] = *session
	return nil
}

func (r *memRepos) FindSessionByToken(ctx context.Context, token string) (*domain.Session, error) {
	defer r.lock()()
	sess, ok := r.s.sessions[token]
	if !ok {
		return nil, nil
	}
	return &sess, nil
}

func (r *memRepos) DeleteSession(ctx context.Context, token string) (int64, error) {
	defer r.lock()()
	if _, ok := r.s.sessions[token]; !ok {
		return 0, nil
	}
	delete(r.s.sessions, token)
	return 1, nil
}

func (r *memRepos) DeleteAllSessionsForUser(ctx context.Context, userID string) (int64, error) {
	defer r.lock()()
	if r.s.deleteAllSessionsErr != nil {
		return 0, r.s.deleteAllSessionsErr
	}
	var n int64
	for k, sess := range r.s.sessions {
		if sess.UserID == userID {
			delete(r.s.sessions, k)
			n++
		}
	}
	return n, nil
}

func (r *memRepos) DeleteExpiredSessions(ctx context.Context, before time.Time) (int64, error) {
	defer r.lock()()
	var n int64
	for k, sess := range r.s.sessions {
		if !sess.ExpiresAt.After(before) {
			delete(r.s.sessions, k)
			n++
		}
	}
	return n, nil
}

func (r *memRepos) CreateEmailVerification(ctx context.Context, record *domain.EmailVerification) error {
	defer r.lock()()
	r.s.seq++
	r.s.verifications[record.ID] = *record
	r.s.verifySeq[record.ID] = r.s.seq
	return nil
}

func (r *memRepos) FindValidEmailVerification(ctx context.Context, userID string, now time.Time) (*domain.EmailVerification, error) {
	defer r.lock()()
	var candidates []domain.EmailVerification
	for _, v := range r.s.verifications {
		if v.UserID == userID && now.Before(v.ExpiresAt) {
			candidates = append(candidates, v)
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	sort.Slice(candidates, func(i, j int) bool {
		return r.s.verifySeq[candidates[i].ID] > r.s.verifySeq[candidates[j].ID]
	})
	return &candidates[0], nil
}

func (r *memRepos) DeleteEmailVerification(ctx context.Context, id string) (int64, error) {
	defer r.lock()()
	if _, ok := r.s.verifications[id]; !ok {
		return 0, nil
	}
	delete(r.s.verifications, id)
	return 1, nil
}

func (r *memRepos) UpsertPasswordReset(ctx context.Context, record *domain.PasswordReset) error {
	defer r.lock()()
	r.s.resets[strings.ToLower(record.Email)] = *record
	return nil
}

func (r *memRepos) FindValidPasswordReset(ctx context.Context, email string, now time.Time) (*domain.PasswordReset, error) {
	defer r.lock()()
	rec, ok := r.s.resets[strings.ToLower(email)]
	if !ok || !now.Before(rec.ExpiresAt) {
		return nil, nil
	}
	return &rec, nil
}

func (r *memRepos) DeletePasswordReset(ctx context.Context, id string) (int64, error) {
	defer r.lock()()
	for k, rec := range r.s.resets {
		if rec.ID == id {
			delete(r.s.resets, k)
			return 1, nil
		}
	}
	return 0, nil
}

func linkKey(providerID, providerUserID string) string {
	return providerID + "|" + providerUserID
}

func (r *memRepos) CreateOAuthLink(ctx context.Context, link domain.OAuthLink) error {
	defer r.lock()()
	key := linkKey(link.ProviderID, link.ProviderUserID)
	if _, ok := r.s.links[key]; ok {
		return nil
	}
	r.s.links[key] = link
	return nil
}

func (r *memRepos) FindOAuthLink(ctx context.Context, providerID, providerUserID string) (*domain.OAuthLink, error) {
	defer r.lock()()
	link, ok := r.s.links[linkKey(providerID, providerUserID)]
	if !ok {
		return nil, nil
	}
	return &link, nil
}

var (
	_ portsrepo.UserRepositoryFacade        = (*memRepos)(nil)
	_ portsrepo.SessionRepository           = (*memRepos)(nil)
	_ portsrepo.EmailVerificationRepository = (*memRepos)(nil)
	_ portsrepo.PasswordResetRepository     = (*memRepos)(nil)
	_ portsrepo.OAuthRepository             = (*memRepos)(nil)
	_ portsrepo.TransactionManager          = (*memStore)(nil)
)

// --- Mock EmailSender ---

type sentMail struct {
	To       string
	Template string
	Props    map[string]any
}

type MockMailer struct {
	mock.Mock
	mu   sync.Mutex
	sent []sentMail
}

func (m *MockMailer) Send(ctx context.Context, to string, templateName string, props map[string]any) error {
	args := m.Called(ctx, to, templateName, props)
	if args.Error(0) == nil {
		m.mu.Lock()
		m.sent = append(m.sent, sentMail{To: to, Template: templateName, Props: props})
		m.mu.Unlock()
	}
	return args.Error(0)
}

// last returns the most recent delivered mail with the given template.
func (m *MockMailer) last(templateName string) (sentMail, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.sent) - 1; i >= 0; i-- {
		if m.sent[i].Template == templateName {
			return m.sent[i], true
		}
	}
	return sentMail{}, false
}

func (m *MockMailer) count(templateName string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, s := range m.sent {
		if s.Template == templateName {
			n++
		}
	}
	return n
}

// --- Clock ---

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

var errStoreDown = errors.New("store unavailable")
