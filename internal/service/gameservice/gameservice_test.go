package gameservice

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/mcavalcanti/billquest/internal/domain"
)

type notificationRecorder struct {
	mu       sync.Mutex
	messages []string
}

func (r *notificationRecorder) record(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, message)
}

func (r *notificationRecorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.messages...)
}

func newEngine(t *testing.T, opts ...Option) (*Engine, *MockProfilesAPI, *notificationRecorder) {
	ctrl := gomock.NewController(t)
	api := NewMockProfilesAPI(ctrl)
	rec := &notificationRecorder{}
	opts = append([]Option{WithNotifier(rec.record), WithDebounce(20 * time.Millisecond)}, opts...)
	return New(api, opts...), api, rec
}

func loadDefaults(t *testing.T, e *Engine, api *MockProfilesAPI, email string) {
	api.EXPECT().ListProfiles(gomock.Any()).Return(nil, nil)
	require.NoError(t, e.Load(context.Background(), email))
	require.Equal(t, StateReady, e.State())
}

func TestAddXPZeroIsNoOp(t *testing.T) {
	e, _, rec := newEngine(t)

	e.AddXP(0)

	p := e.Profile()
	assert.Equal(t, 0, p.XP)
	assert.Empty(t, rec.all())
}

func TestAddXPLevelUpCarriesRemainder(t *testing.T) {
	e, _, rec := newEngine(t)

	e.AddXP(150)
	p := e.Profile()
	assert.Equal(t, 1, p.Level)
	assert.Equal(t, 150, p.XP)

	e.AddXP(100)
	p = e.Profile()
	assert.Equal(t, 2, p.Level)
	assert.Equal(t, 50, p.XP)
	assert.Equal(t, 300, p.XPToNextLevel)

	assert.Contains(t, rec.all(), "+150 XP ganho!")
	assert.Contains(t, rec.all(), "Level Up! Agora você é nível 2")
}

func TestAddXPResolvesSingleLevelPerCall(t *testing.T) {
	e, _, _ := newEngine(t)

	// 500 jumps past two thresholds but only one level-up resolves; the
	// remainder stays until the next award.
	e.AddXP(500)

	p := e.Profile()
	assert.Equal(t, 2, p.Level)
	assert.Equal(t, 300, p.XP)
	assert.Equal(t, 300, p.XPToNextLevel)
}

func TestAddXPInvariantAfterEachCall(t *testing.T) {
	e, _, _ := newEngine(t)

	for i := 0; i < 50; i++ {
		e.AddXP(domain.XPPayOnTime)
		p := e.Profile()
		assert.GreaterOrEqual(t, p.XP, 0)
		assert.Less(t, p.XP, p.XPToNextLevel)
	}
}

func TestThresholdGrowth(t *testing.T) {
	e, _, _ := newEngine(t)

	expected := []int{300, 450, 675, 1012}
	for _, want := range expected {
		p := e.Profile()
		e.AddXP(p.XPToNextLevel - p.XP)
		assert.Equal(t, want, e.Profile().XPToNextLevel)
	}
	assert.Equal(t, 5, e.Profile().Level)
}

func TestAddXPNegativeNotClamped(t *testing.T) {
	e, _, rec := newEngine(t)

	e.AddXP(domain.XPDeleteAccount)

	p := e.Profile()
	assert.Equal(t, -5, p.XP)
	// Negative awards stay silent.
	assert.Empty(t, rec.all())
}

func TestUnlockIdempotent(t *testing.T) {
	e, _, rec := newEngine(t)

	e.Unlock(domain.AchievementFirstBlood)
	e.Unlock(domain.AchievementFirstBlood)

	p := e.Profile()
	assert.Equal(t, []domain.AchievementID{domain.AchievementFirstBlood}, p.Achievements)
	assert.Equal(t, []string{"Conquista: Primeiro Pagamento!"}, rec.all())
}

func TestLoadAdoptsRemoteProfile(t *testing.T) {
	e, api, _ := newEngine(t)

	remote := domain.GameProfile{
		ID:            "7",
		Email:         "a@x.com",
		Level:         3,
		XP:            120,
		XPToNextLevel: 450,
		Achievements:  []domain.AchievementID{domain.AchievementFirstBlood},
	}
	api.EXPECT().ListProfiles(gomock.Any()).Return([]domain.GameProfile{
		{ID: "1", Email: "b@x.com", Level: 9},
		remote,
	}, nil)

	require.NoError(t, e.Load(context.Background(), "a@x.com"))

	p := e.Profile()
	assert.Equal(t, 3, p.Level)
	assert.Equal(t, 120, p.XP)
	assert.Equal(t, "7", p.ID)
	assert.Equal(t, StateReady, e.State())
}

func TestLoadMissUsesDefaults(t *testing.T) {
	e, api, _ := newEngine(t)

	api.EXPECT().ListProfiles(gomock.Any()).Return([]domain.GameProfile{
		{ID: "1", Email: "someone-else@x.com"},
	}, nil)

	require.NoError(t, e.Load(context.Background(), "a@x.com"))

	p := e.Profile()
	assert.Equal(t, 1, p.Level)
	assert.Equal(t, domain.StartingXPThreshold, p.XPToNextLevel)
	assert.Empty(t, p.ID)
	assert.Equal(t, StateReady, e.State())
}

func TestLoadErrorStillReady(t *testing.T) {
	e, api, _ := newEngine(t)

	api.EXPECT().ListProfiles(gomock.Any()).Return(nil, errors.New("network down"))

	require.NoError(t, e.Load(context.Background(), "a@x.com"))
	assert.Equal(t, StateReady, e.State())
	assert.Equal(t, 1, e.Profile().Level)
}

func TestLoadStaleSessionDiscarded(t *testing.T) {
	e, api, _ := newEngine(t)

	api.EXPECT().ListProfiles(gomock.Any()).DoAndReturn(func(context.Context) ([]domain.GameProfile, error) {
		// The user logs out while the lookup is in flight.
		e.Reset()
		return []domain.GameProfile{{ID: "7", Email: "a@x.com", Level: 5}}, nil
	})

	require.NoError(t, e.Load(context.Background(), "a@x.com"))

	assert.Equal(t, StateUninitialized, e.State())
	assert.Equal(t, 1, e.Profile().Level)
}

func TestDebouncedSaveCoalesces(t *testing.T) {
	e, api, _ := newEngine(t)
	loadDefaults(t, e, api, "a@x.com")

	saved := make(chan domain.GameProfile, 1)
	api.EXPECT().CreateProfile(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p domain.GameProfile) (*domain.GameProfile, error) {
			created := p
			created.ID = "42"
			saved <- p
			return &created, nil
		}).Times(1)

	// Rapid mutations must coalesce into one write of the latest state.
	e.AddXP(10)
	e.AddXP(10)
	e.Unlock(domain.AchievementFirstBlood)

	select {
	case p := <-saved:
		assert.Equal(t, 20, p.XP)
		assert.Equal(t, []domain.AchievementID{domain.AchievementFirstBlood}, p.Achievements)
	case <-time.After(time.Second):
		t.Fatal("debounced save never fired")
	}

	// The created ID is adopted so later saves replace instead of create.
	assert.Eventually(t, func() bool {
		return e.Profile().ID == "42"
	}, time.Second, 10*time.Millisecond)
}

func TestSaveReplacesExistingProfile(t *testing.T) {
	e, api, _ := newEngine(t)

	api.EXPECT().ListProfiles(gomock.Any()).Return([]domain.GameProfile{
		{ID: "7", Email: "a@x.com", Level: 1, XP: 0, XPToNextLevel: 200},
	}, nil)
	require.NoError(t, e.Load(context.Background(), "a@x.com"))

	replaced := make(chan domain.GameProfile, 1)
	api.EXPECT().ReplaceProfile(gomock.Any(), "7", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, p domain.GameProfile) (*domain.GameProfile, error) {
			replaced <- p
			return &p, nil
		}).Times(1)

	e.AddXP(10)

	select {
	case p := <-replaced:
		assert.Equal(t, 10, p.XP)
	case <-time.After(time.Second):
		t.Fatal("debounced save never fired")
	}
}

func TestResetCancelsPendingSave(t *testing.T) {
	e, api, _ := newEngine(t)
	loadDefaults(t, e, api, "a@x.com")

	// No CreateProfile/ReplaceProfile expectations: any write after the
	// reset fails the test.
	e.AddXP(10)
	e.Reset()

	time.Sleep(100 * time.Millisecond)

	p := e.Profile()
	assert.Equal(t, StateUninitialized, e.State())
	assert.Equal(t, 0, p.XP)
	assert.Empty(t, p.Email)
}

func TestSaveNowFlushesImmediately(t *testing.T) {
	e, api, _ := newEngine(t, WithDebounce(time.Hour))
	loadDefaults(t, e, api, "a@x.com")

	api.EXPECT().CreateProfile(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p domain.GameProfile) (*domain.GameProfile, error) {
			created := p
			created.ID = "42"
			return &created, nil
		}).Times(1)

	e.AddXP(10)
	require.NoError(t, e.SaveNow(context.Background()))
	assert.Equal(t, "42", e.Profile().ID)
}

func TestSaveNowWithoutSessionIsNoOp(t *testing.T) {
	e, _, _ := newEngine(t)
	require.NoError(t, e.SaveNow(context.Background()))
}
