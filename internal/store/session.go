package store

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"otakumart/internal/kvstore"
	"otakumart/internal/logger"
	"otakumart/internal/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// account is the registry record. Unlike models.User it carries the
// password hash in its persisted form; it never crosses the store boundary.
type account struct {
	ID           string      `json:"id"`
	Username     string      `json:"username"`
	Email        string      `json:"email"`
	Role         models.Role `json:"role"`
	PasswordHash string      `json:"passwordHash"`
}

func (a account) user() models.User {
	return models.User{
		ID:       a.ID,
		Username: a.Username,
		Email:    a.Email,
		Role:     a.Role,
	}
}

// SessionStore holds the account registry, the active-user snapshot and the
// HTTP session tokens. The snapshot under the "user" key is overwritten in
// the same call as any mutation that changes the current user, so a restart
// restores the latest state.
type SessionStore struct {
	kv              kvstore.Store
	mu              sync.RWMutex
	accounts        []account
	current         *models.User
	sessions        map[string]models.Session
	sessionDuration time.Duration
}

func NewSessionStore(kv kvstore.Store, sessionDuration time.Duration) (*SessionStore, error) {
	s := &SessionStore{
		kv:              kv,
		sessions:        make(map[string]models.Session),
		sessionDuration: sessionDuration,
	}

	if _, err := load(kv, keyUsers, &s.accounts); err != nil {
		return nil, err
	}

	var current models.User
	if ok, err := load(kv, keyUser, &current); err != nil {
		return nil, err
	} else if ok {
		s.current = &current
	}

	if _, err := load(kv, keySessions, &s.sessions); err != nil {
		return nil, err
	}
	if s.sessions == nil {
		s.sessions = make(map[string]models.Session)
	}

	return s, nil
}

// SeedAdmin installs the built-in admin account when the registry is empty.
func (s *SessionStore) SeedAdmin(username, email, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.accounts) > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	s.accounts = append(s.accounts, account{
		ID:           "admin-" + uuid.New().String(),
		Username:     username,
		Email:        email,
		Role:         models.RoleAdmin,
		PasswordHash: string(hash),
	})

	logger.Info("Seeded admin account", "username", username, "email", email)
	return persist(s.kv, keyUsers, s.accounts)
}

// SignIn authenticates against the registry and makes the matched user
// current. No side effects on failure.
func (s *SessionStore) SignIn(username, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.accounts {
		if a.Username != username {
			continue
		}
		if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
			return ErrInvalidCredentials
		}
		user := a.user()
		s.current = &user
		return persist(s.kv, keyUser, user)
	}

	return ErrInvalidCredentials
}

// SignUp registers a new account with role "user". It does not sign the
// user in; a nil return only means registration succeeded.
func (s *SessionStore) SignUp(username, email, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.accounts {
		if a.Username == username || a.Email == email {
			return ErrUserExists
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	s.accounts = append(s.accounts, account{
		ID:           "user-" + uuid.New().String(),
		Username:     username,
		Email:        email,
		Role:         models.RoleUser,
		PasswordHash: string(hash),
	})

	return persist(s.kv, keyUsers, s.accounts)
}

// SignOut clears the current user and its persisted snapshot.
func (s *SessionStore) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	if err := s.kv.Delete(keyUser); err != nil {
		logger.Warn("Failed to delete user snapshot", "error", err)
	}
}

// CurrentUser returns the active-session user, if any.
func (s *SessionStore) CurrentUser() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return models.User{}, false
	}
	return *s.current, true
}

// Users returns every account with the password hash stripped. Authorization
// is the caller's concern.
func (s *SessionStore) Users() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]models.User, 0, len(s.accounts))
	for _, a := range s.accounts {
		users = append(users, a.user())
	}
	return users
}

// UserByID returns the stripped account record for id.
func (s *SessionStore) UserByID(id string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.accounts {
		if a.ID == id {
			return a.user(), true
		}
	}
	return models.User{}, false
}

// UpdateProfile rewrites the current user's username and email in both the
// registry and the active session. Uniqueness is not re-checked against
// other accounts.
func (s *SessionStore) UpdateProfile(username, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return ErrNoCurrentUser
	}
	return s.updateProfileLocked(s.current.ID, username, email)
}

// UpdateProfileFor rewrites username and email on the account with userID.
// Callers resolving a user from a session token use this so the mutation is
// bound to the token's account, never to whoever signed in last. The
// current-user snapshot is refreshed only when it is the same account.
func (s *SessionStore) UpdateProfileFor(userID, username, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateProfileLocked(userID, username, email)
}

func (s *SessionStore) updateProfileLocked(userID, username, email string) error {
	for i := range s.accounts {
		if s.accounts[i].ID != userID {
			continue
		}
		s.accounts[i].Username = username
		s.accounts[i].Email = email
		if err := persist(s.kv, keyUsers, s.accounts); err != nil {
			return err
		}
		if s.current != nil && s.current.ID == userID {
			s.current.Username = username
			s.current.Email = email
			return persist(s.kv, keyUser, *s.current)
		}
		return nil
	}
	return ErrUserNotFound
}

// UpdatePassword overwrites the current user's password after verifying the
// old one. The session snapshot never contains the password, so it is
// untouched.
func (s *SessionStore) UpdatePassword(current, next string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return ErrNoCurrentUser
	}
	return s.updatePasswordLocked(s.current.ID, current, next)
}

// UpdatePasswordFor is the session-token variant: the verify-then-set runs
// against the account with userID regardless of the current-user snapshot.
func (s *SessionStore) UpdatePasswordFor(userID, current, next string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatePasswordLocked(userID, current, next)
}

func (s *SessionStore) updatePasswordLocked(userID, current, next string) error {
	for i := range s.accounts {
		if s.accounts[i].ID != userID {
			continue
		}
		if err := bcrypt.CompareHashAndPassword([]byte(s.accounts[i].PasswordHash), []byte(current)); err != nil {
			return ErrWrongPassword
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		s.accounts[i].PasswordHash = string(hash)
		return persist(s.kv, keyUsers, s.accounts)
	}

	return ErrUserNotFound
}

// SessionDuration reports the configured token lifetime.
func (s *SessionStore) SessionDuration() time.Duration {
	return s.sessionDuration
}

// CreateSession issues an opaque token bound to userID.
func (s *SessionStore) CreateSession(userID string) (models.Session, error) {
	token, err := generateSecureToken()
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to generate session token: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	session := models.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: now.Add(s.sessionDuration),
		CreatedAt: now,
	}

	s.pruneExpiredLocked(now)
	s.sessions[token] = session

	if err := persist(s.kv, keySessions, s.sessions); err != nil {
		delete(s.sessions, token)
		return models.Session{}, err
	}
	return session, nil
}

// ValidateSession resolves a token to its user. Expired tokens are deleted
// on the spot instead of lingering until the next login prunes them.
func (s *SessionStore) ValidateSession(token string) (models.User, error) {
	s.mu.Lock()
	session, ok := s.sessions[token]
	if ok && time.Now().After(session.ExpiresAt) {
		delete(s.sessions, token)
		if err := persist(s.kv, keySessions, s.sessions); err != nil {
			logger.Warn("Failed to persist sessions", "error", err)
		}
		ok = false
	}
	s.mu.Unlock()

	if !ok {
		return models.User{}, ErrSessionNotFound
	}

	user, found := s.UserByID(session.UserID)
	if !found {
		return models.User{}, ErrSessionNotFound
	}
	return user, nil
}

// DeleteSession removes a token. Unknown tokens are ignored.
func (s *SessionStore) DeleteSession(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, token)
	if err := persist(s.kv, keySessions, s.sessions); err != nil {
		logger.Warn("Failed to persist sessions", "error", err)
	}
}

func (s *SessionStore) pruneExpiredLocked(now time.Time) {
	for token, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, token)
		}
	}
}

func generateSecureToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
