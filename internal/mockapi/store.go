package mockapi

import (
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"sync"

	"github.com/mcavalcanti/billquest/internal/domain"
)

var ErrNotFound = errors.New("record not found")

// Store holds the three collections in memory. IDs are incrementing numeric
// strings, matching the hosted mock-API convention the app was built
// against.
type Store struct {
	mu       sync.Mutex
	accounts map[string]domain.Account
	users    map[string]domain.User
	profiles map[string]domain.GameProfile
	nextID   int
}

func NewStore() *Store {
	return &Store{
		accounts: make(map[string]domain.Account),
		users:    make(map[string]domain.User),
		profiles: make(map[string]domain.GameProfile),
		nextID:   1,
	}
}

func (s *Store) newIDLocked() string {
	id := strconv.Itoa(s.nextID)
	s.nextID++
	return id
}

func sortedIDs[T any](m map[string]T) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, _ := strconv.Atoi(ids[i])
		b, _ := strconv.Atoi(ids[j])
		return a < b
	})
	return ids
}

func (s *Store) ListAccounts() []domain.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Account, 0, len(s.accounts))
	for _, id := range sortedIDs(s.accounts) {
		out = append(out, s.accounts[id])
	}
	return out
}

func (s *Store) GetAccount(id string) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[id]
	if !ok {
		return domain.Account{}, ErrNotFound
	}
	return acc, nil
}

func (s *Store) CreateAccount(acc domain.Account) domain.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc.ID = s.newIDLocked()
	s.accounts[acc.ID] = acc
	return acc
}

func (s *Store) ReplaceAccount(id string, acc domain.Account) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[id]; !ok {
		return domain.Account{}, ErrNotFound
	}
	acc.ID = id
	s.accounts[id] = acc
	return acc, nil
}

// PatchAccount merges the raw JSON patch over the stored record, so partial
// updates touch only the fields they name.
func (s *Store) PatchAccount(id string, patch []byte) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[id]
	if !ok {
		return domain.Account{}, ErrNotFound
	}
	if err := json.Unmarshal(patch, &acc); err != nil {
		return domain.Account{}, err
	}
	acc.ID = id
	s.accounts[id] = acc
	return acc, nil
}

func (s *Store) DeleteAccount(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[id]; !ok {
		return ErrNotFound
	}
	delete(s.accounts, id)
	return nil
}

func (s *Store) ListUsers() []domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.User, 0, len(s.users))
	for _, id := range sortedIDs(s.users) {
		out = append(out, s.users[id])
	}
	return out
}

func (s *Store) CreateUser(user domain.User) domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	user.ID = s.newIDLocked()
	s.users[user.ID] = user
	return user
}

func (s *Store) ListProfiles() []domain.GameProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.GameProfile, 0, len(s.profiles))
	for _, id := range sortedIDs(s.profiles) {
		out = append(out, s.profiles[id])
	}
	return out
}

func (s *Store) CreateProfile(profile domain.GameProfile) domain.GameProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile.ID = s.newIDLocked()
	s.profiles[profile.ID] = profile
	return profile
}

func (s *Store) ReplaceProfile(id string, profile domain.GameProfile) (domain.GameProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[id]; !ok {
		return domain.GameProfile{}, ErrNotFound
	}
	profile.ID = id
	s.profiles[id] = profile
	return profile, nil
}
