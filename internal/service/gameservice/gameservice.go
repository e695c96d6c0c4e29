package gameservice

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/mcavalcanti/billquest/internal/domain"
	"go.uber.org/zap"
)

// ProfilesAPI is the achievements collection of the gamification service.
type ProfilesAPI interface {
	ListProfiles(ctx context.Context) ([]domain.GameProfile, error)
	CreateProfile(ctx context.Context, profile domain.GameProfile) (*domain.GameProfile, error)
	ReplaceProfile(ctx context.Context, id string, profile domain.GameProfile) (*domain.GameProfile, error)
}

// State of the engine within a user session.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
)

const (
	defaultSaveDebounce = 1500 * time.Millisecond
	// NotificationDuration how long a transient notification stays visible.
	NotificationDuration = 3 * time.Second
	saveTimeout          = 10 * time.Second
)

// Notifier receives transient, display-only messages (XP gains, level-ups,
// achievement unlocks). Not part of persisted state.
type Notifier func(message string)

// Engine owns the level/xp/achievements profile for the signed-in user and
// persists it to the achievements collection, debounced: rapid mutations
// coalesce into one remote write by resetting a single pending timer.
type Engine struct {
	api      ProfilesAPI
	debounce time.Duration
	notify   Notifier

	mu      sync.Mutex
	state   State
	email   string
	profile domain.GameProfile
	timer   *time.Timer
}

type Option func(*Engine)

func WithDebounce(d time.Duration) Option {
	return func(e *Engine) { e.debounce = d }
}

func WithNotifier(n Notifier) Option {
	return func(e *Engine) { e.notify = n }
}

func New(api ProfilesAPI, opts ...Option) *Engine {
	e := &Engine{
		api:      api,
		debounce: defaultSaveDebounce,
		profile:  domain.NewProfile(""),
		notify: func(message string) {
			zap.L().Info("notification", zap.String("message", message))
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Load adopts the remote profile for email, or defaults when none exists (a
// record is created lazily on first save). Loading never fails the session;
// a late result for a superseded session is discarded.
func (e *Engine) Load(ctx context.Context, email string) error {
	e.mu.Lock()
	e.state = StateLoading
	e.email = email
	e.mu.Unlock()

	profile := domain.NewProfile(email)
	profiles, err := e.api.ListProfiles(ctx)
	if err != nil {
		zap.L().Error("failed to load game profile, using defaults", zap.Error(err))
	} else {
		for _, p := range profiles {
			if p.Email == email {
				profile = p
				if profile.Achievements == nil {
					profile.Achievements = []domain.AchievementID{}
				}
				break
			}
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.email != email {
		zap.L().Info("discarding stale profile load", zap.String("email", email))
		return nil
	}
	e.profile = profile
	e.state = StateReady
	return nil
}

// AddXP applies a signed XP delta and resolves at most one level-up,
// carrying the remainder forward. A single large award can leave xp at or
// above the new threshold until the next one; cascading is intentionally not
// done. Zero is a no-op.
func (e *Engine) AddXP(amount int) {
	if amount == 0 {
		return
	}

	e.mu.Lock()
	e.profile.XP += amount
	leveledUp := false
	if e.profile.XP >= e.profile.XPToNextLevel {
		e.profile.XP -= e.profile.XPToNextLevel
		e.profile.Level++
		e.profile.XPToNextLevel = int(math.Floor(float64(e.profile.XPToNextLevel) * 1.5))
		leveledUp = true
	}
	level := e.profile.Level
	e.scheduleSaveLocked()
	e.mu.Unlock()

	if amount > 0 {
		e.notify(fmt.Sprintf("+%d XP ganho!", amount))
	}
	if leveledUp {
		e.notify(fmt.Sprintf("Level Up! Agora você é nível %d", level))
	}
}

// Unlock adds the achievement to the profile. Idempotent: a second call for
// the same id changes nothing and stays silent.
func (e *Engine) Unlock(id domain.AchievementID) {
	e.mu.Lock()
	if e.profile.Unlocked(id) {
		e.mu.Unlock()
		return
	}
	e.profile.Achievements = append(e.profile.Achievements, id)
	e.scheduleSaveLocked()
	e.mu.Unlock()

	if a, ok := domain.AchievementCatalog[id]; ok {
		e.notify("Conquista: " + a.Name)
	}
}

// Profile returns a copy of the current profile.
func (e *Engine) Profile() domain.GameProfile {
	e.mu.Lock()
	defer e.mu.Unlock()
	p := e.profile
	p.Achievements = append([]domain.AchievementID(nil), e.profile.Achievements...)
	return p
}

func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Reset cancels any pending save and returns the engine to defaults. Called
// on logout; the pending timer must not outlive the session, or a reset (or
// previous user's) profile would be written over remote state.
func (e *Engine) Reset() {
	e.mu.Lock()
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	e.state = StateUninitialized
	e.email = ""
	e.profile = domain.NewProfile("")
	e.mu.Unlock()
}

// SaveNow cancels the pending debounce and persists immediately. Used when
// the process is about to exit before the timer would fire.
func (e *Engine) SaveNow(ctx context.Context) error {
	e.mu.Lock()
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	if e.state != StateReady || e.email == "" {
		e.mu.Unlock()
		return nil
	}
	e.mu.Unlock()
	return e.save(ctx)
}

// scheduleSaveLocked coalesces mutations into one pending write. Only one
// timer ever exists; each mutation resets it instead of stacking another.
// No save is scheduled before the initial load settles.
func (e *Engine) scheduleSaveLocked() {
	if e.state != StateReady {
		return
	}
	if e.timer != nil {
		e.timer.Reset(e.debounce)
		return
	}
	e.timer = time.AfterFunc(e.debounce, func() {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		if err := e.save(ctx); err != nil {
			zap.L().Error("failed to save game profile", zap.Error(err))
		}
	})
}

// save writes the profile state as of fire time, never a stale snapshot.
func (e *Engine) save(ctx context.Context) error {
	e.mu.Lock()
	if e.state != StateReady || e.email == "" {
		e.mu.Unlock()
		return nil
	}
	snapshot := e.profile
	snapshot.Achievements = append([]domain.AchievementID(nil), e.profile.Achievements...)
	e.mu.Unlock()

	if snapshot.ID == "" {
		created, err := e.api.CreateProfile(ctx, snapshot)
		if err != nil {
			return err
		}
		e.mu.Lock()
		if e.email == snapshot.Email {
			e.profile.ID = created.ID
		}
		e.mu.Unlock()
		zap.L().Info("game profile created", zap.String("email", snapshot.Email), zap.String("id", created.ID))
		return nil
	}

	if _, err := e.api.ReplaceProfile(ctx, snapshot.ID, snapshot); err != nil {
		return err
	}
	zap.L().Debug("game profile saved", zap.String("email", snapshot.Email))
	return nil
}
