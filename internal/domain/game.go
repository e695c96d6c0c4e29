package domain

// XP deltas awarded per event.
const (
	XPPayOnTime      = 50
	XPPayEarly       = 75
	XPAddAccount     = 10
	XPMonthlyPerfect = 200
	XPDeleteAccount  = -5
)

const (
	// StartingXPThreshold XP needed to leave level 1.
	StartingXPThreshold = 200
	// EarlyPaymentDays days before due date that qualify as an early payment.
	EarlyPaymentDays = 5
)

type AchievementID string

const (
	AchievementFirstBlood     AchievementID = "FIRST_BLOOD"
	AchievementOnTimeStreak3  AchievementID = "ON_TIME_STREAK_3"
	AchievementOnTimeStreak10 AchievementID = "ON_TIME_STREAK_10"
	AchievementEarlyBird      AchievementID = "EARLY_BIRD"
	AchievementAccountManager AchievementID = "ACCOUNT_MANAGER"
	AchievementSaver          AchievementID = "SAVER"
)

type Achievement struct {
	ID          AchievementID `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
}

// AchievementCatalog is the fixed set of unlockable achievements.
var AchievementCatalog = map[AchievementID]Achievement{
	AchievementFirstBlood: {
		ID:          AchievementFirstBlood,
		Name:        "Primeiro Pagamento!",
		Description: "Você pagou sua primeira conta.",
	},
	AchievementOnTimeStreak3: {
		ID:          AchievementOnTimeStreak3,
		Name:        "Pontualidade",
		Description: "Pagou 3 contas em dia seguidas.",
	},
	AchievementOnTimeStreak10: {
		ID:          AchievementOnTimeStreak10,
		Name:        "Mestre da Pontualidade",
		Description: "Pagou 10 contas em dia seguidas.",
	},
	AchievementEarlyBird: {
		ID:          AchievementEarlyBird,
		Name:        "Pássaro Madrugador",
		Description: "Pagou uma conta com 5+ dias de antecedência.",
	},
	AchievementAccountManager: {
		ID:          AchievementAccountManager,
		Name:        "Gerente de Contas",
		Description: "Adicionou 10 contas.",
	},
	AchievementSaver: {
		ID:          AchievementSaver,
		Name:        "Economizador",
		Description: "Pagou todas as contas do mês em dia.",
	},
}

// GameProfile is the per-user gamification state persisted in the
// achievements collection.
type GameProfile struct {
	ID            string          `json:"id,omitempty"`
	Email         string          `json:"email"`
	Level         int             `json:"level"`
	XP            int             `json:"xp"`
	XPToNextLevel int             `json:"xpToNextLevel"`
	Achievements  []AchievementID `json:"unlockedAchievements"`
}

func NewProfile(email string) GameProfile {
	return GameProfile{
		Email:         email,
		Level:         1,
		XP:            0,
		XPToNextLevel: StartingXPThreshold,
		Achievements:  []AchievementID{},
	}
}

// Unlocked reports whether the achievement is already in the profile.
func (p GameProfile) Unlocked(id AchievementID) bool {
	for _, a := range p.Achievements {
		if a == id {
			return true
		}
	}
	return false
}
