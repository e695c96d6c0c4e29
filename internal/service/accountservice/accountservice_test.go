package accountservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/mcavalcanti/billquest/internal/domain"
)

func NewMock(t *testing.T) (*Service, *MockAPI) {
	ctrl := gomock.NewController(t)
	api := NewMockAPI(ctrl)
	service := New(api)
	return service, api
}

func fixedNow(t *testing.T, s *Service, date string) {
	t.Helper()
	d := domain.Date(date)
	moment, err := d.Time()
	require.NoError(t, err)
	s.now = func() time.Time { return moment }
}

func TestFetchFiltersByEmail(t *testing.T) {
	service, api := NewMock(t)

	api.EXPECT().ListAccounts(gomock.Any()).Return([]domain.Account{
		{ID: "1", Email: "a@x.com", Nome: "Luz"},
		{ID: "2", Email: "b@x.com", Nome: "Internet"},
		{ID: "3", Email: "a@x.com", Nome: "Água"},
	}, nil)

	accounts, err := service.Fetch(context.Background(), "a@x.com")

	require.NoError(t, err)
	require.Len(t, accounts, 2)
	for _, acc := range accounts {
		assert.Equal(t, "a@x.com", acc.Email)
	}
	assert.False(t, service.Loading())
	assert.NoError(t, service.Err())
}

func TestFetchEmptyEmailClearsWithoutNetwork(t *testing.T) {
	service, api := NewMock(t)

	api.EXPECT().ListAccounts(gomock.Any()).Return([]domain.Account{
		{ID: "1", Email: "a@x.com"},
	}, nil)
	_, err := service.Fetch(context.Background(), "a@x.com")
	require.NoError(t, err)
	require.Len(t, service.Accounts(), 1)

	// No ListAccounts expectation here: an empty email must not hit the API.
	accounts, err := service.Fetch(context.Background(), "")

	require.NoError(t, err)
	assert.Nil(t, accounts)
	assert.Empty(t, service.Accounts())
}

func TestFetchFailureLeavesListEmpty(t *testing.T) {
	service, api := NewMock(t)

	api.EXPECT().ListAccounts(gomock.Any()).Return(nil, errors.New("network down"))

	_, err := service.Fetch(context.Background(), "a@x.com")

	require.Error(t, err)
	assert.Empty(t, service.Accounts())
	assert.False(t, service.Loading())
	assert.Error(t, service.Err())
}

func TestAddStampsEmailAndDerivesFields(t *testing.T) {
	service, api := NewMock(t)
	fixedNow(t, service, "2025-07-01")

	api.EXPECT().ListAccounts(gomock.Any()).Return(nil, nil)
	_, err := service.Fetch(context.Background(), "a@x.com")
	require.NoError(t, err)

	api.EXPECT().CreateAccount(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, acc domain.Account) (*domain.Account, error) {
			assert.Equal(t, "a@x.com", acc.Email)
			assert.Equal(t, domain.Date("2025-07-01"), acc.Data)
			assert.Equal(t, domain.StatusPending, acc.Status)
			assert.Len(t, acc.Parcelas, 2)
			created := acc
			created.ID = "10"
			return &created, nil
		})

	created, err := service.Add(context.Background(), domain.Account{
		Nome:       "Cartão",
		ValorTotal: 200,
		Vencimento: "2025-07-15",
		QtdParcela: 2,
	})

	require.NoError(t, err)
	assert.Equal(t, "10", created.ID)
	assert.Len(t, service.Accounts(), 1)
}

func TestAddPastDueStartsOverdue(t *testing.T) {
	service, api := NewMock(t)
	fixedNow(t, service, "2025-07-20")

	api.EXPECT().CreateAccount(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, acc domain.Account) (*domain.Account, error) {
			assert.Equal(t, domain.StatusOverdue, acc.Status)
			created := acc
			created.ID = "1"
			return &created, nil
		})

	_, err := service.Add(context.Background(), domain.Account{
		Nome:       "Aluguel",
		ValorTotal: 900,
		Vencimento: "2025-07-10",
		QtdParcela: 1,
	})
	require.NoError(t, err)
}

func TestAddInvalidAccountSkipsNetwork(t *testing.T) {
	service, _ := NewMock(t)

	_, err := service.Add(context.Background(), domain.Account{ValorTotal: 10, QtdParcela: 1})

	assert.ErrorIs(t, err, domain.ErrNameRequired)
}

func TestMarkPaid(t *testing.T) {
	tests := []struct {
		name          string
		today         string
		due           domain.Date
		expectedEarly int
	}{
		{name: "five days early", today: "2025-07-05", due: "2025-07-10", expectedEarly: 5},
		{name: "on the due date", today: "2025-07-10", due: "2025-07-10", expectedEarly: 0},
		{name: "already late", today: "2025-07-15", due: "2025-07-10", expectedEarly: -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, api := NewMock(t)
			fixedNow(t, service, tt.today)

			api.EXPECT().ListAccounts(gomock.Any()).Return([]domain.Account{
				{ID: "1", Email: "a@x.com", Nome: "Luz", Vencimento: tt.due},
			}, nil)
			_, err := service.Fetch(context.Background(), "a@x.com")
			require.NoError(t, err)

			api.EXPECT().PatchAccount(gomock.Any(), "1", gomock.Any()).DoAndReturn(
				func(_ context.Context, id string, patch domain.AccountPatch) (*domain.Account, error) {
					require.NotNil(t, patch.Status)
					require.NotNil(t, patch.DataPagamento)
					assert.Equal(t, domain.StatusPaid, *patch.Status)
					assert.Equal(t, domain.Date(tt.today), *patch.DataPagamento)
					return &domain.Account{ID: id}, nil
				})

			result, err := service.MarkPaid(context.Background(), "1")

			require.NoError(t, err)
			assert.Equal(t, tt.expectedEarly, result.DaysEarly)
			assert.Equal(t, domain.StatusPaid, result.Account.Status)
			assert.Equal(t, domain.Date(tt.today), result.Account.DataPagamento)

			accounts := service.Accounts()
			require.Len(t, accounts, 1)
			assert.Equal(t, domain.StatusPaid, accounts[0].Status)
		})
	}
}

func TestMarkPaidUnknownAccount(t *testing.T) {
	service, _ := NewMock(t)

	_, err := service.MarkPaid(context.Background(), "404")

	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestMarkPaidNoDueDate(t *testing.T) {
	service, api := NewMock(t)

	api.EXPECT().ListAccounts(gomock.Any()).Return([]domain.Account{
		{ID: "1", Email: "a@x.com", Nome: "Luz"},
	}, nil)
	_, err := service.Fetch(context.Background(), "a@x.com")
	require.NoError(t, err)

	_, err = service.MarkPaid(context.Background(), "1")

	assert.ErrorIs(t, err, ErrNoDueDate)
}

func TestMarkPaidRemoteFailureKeepsLocalState(t *testing.T) {
	service, api := NewMock(t)
	fixedNow(t, service, "2025-07-05")

	api.EXPECT().ListAccounts(gomock.Any()).Return([]domain.Account{
		{ID: "1", Email: "a@x.com", Nome: "Luz", Vencimento: "2025-07-10"},
	}, nil)
	_, err := service.Fetch(context.Background(), "a@x.com")
	require.NoError(t, err)

	api.EXPECT().PatchAccount(gomock.Any(), "1", gomock.Any()).Return(nil, errors.New("network down"))

	_, err = service.MarkPaid(context.Background(), "1")

	require.Error(t, err)
	accounts := service.Accounts()
	require.Len(t, accounts, 1)
	assert.Equal(t, domain.StatusPending, accounts[0].Status)
	assert.Empty(t, accounts[0].DataPagamento)
}

func TestUpdateReplacesRecord(t *testing.T) {
	service, api := NewMock(t)

	api.EXPECT().ListAccounts(gomock.Any()).Return([]domain.Account{
		{ID: "1", Email: "a@x.com", Nome: "Luz", ValorTotal: 100, QtdParcela: 1},
	}, nil)
	_, err := service.Fetch(context.Background(), "a@x.com")
	require.NoError(t, err)

	api.EXPECT().ReplaceAccount(gomock.Any(), "1", gomock.Any()).DoAndReturn(
		func(_ context.Context, id string, acc domain.Account) (*domain.Account, error) {
			assert.Equal(t, id, acc.ID)
			assert.Len(t, acc.Parcelas, 3)
			return &acc, nil
		})

	updated, err := service.Update(context.Background(), "1", domain.Account{
		Email:      "a@x.com",
		Nome:       "Luz",
		ValorTotal: 300,
		Vencimento: "2025-08-10",
		QtdParcela: 3,
	})

	require.NoError(t, err)
	assert.Equal(t, 300.0, updated.ValorTotal)

	accounts := service.Accounts()
	require.Len(t, accounts, 1)
	assert.Equal(t, 300.0, accounts[0].ValorTotal)
}

func TestDeleteRemovesRecord(t *testing.T) {
	service, api := NewMock(t)

	api.EXPECT().ListAccounts(gomock.Any()).Return([]domain.Account{
		{ID: "1", Email: "a@x.com"},
		{ID: "2", Email: "a@x.com"},
	}, nil)
	_, err := service.Fetch(context.Background(), "a@x.com")
	require.NoError(t, err)

	api.EXPECT().DeleteAccount(gomock.Any(), "1").Return(nil)

	require.NoError(t, service.Delete(context.Background(), "1"))

	accounts := service.Accounts()
	require.Len(t, accounts, 1)
	assert.Equal(t, "2", accounts[0].ID)
}

func TestDeleteRemoteFailure(t *testing.T) {
	service, api := NewMock(t)

	api.EXPECT().ListAccounts(gomock.Any()).Return([]domain.Account{
		{ID: "1", Email: "a@x.com"},
	}, nil)
	_, err := service.Fetch(context.Background(), "a@x.com")
	require.NoError(t, err)

	api.EXPECT().DeleteAccount(gomock.Any(), "1").Return(errors.New("network down"))

	require.Error(t, service.Delete(context.Background(), "1"))
	assert.Len(t, service.Accounts(), 1)
}

func TestClear(t *testing.T) {
	service, api := NewMock(t)

	api.EXPECT().ListAccounts(gomock.Any()).Return([]domain.Account{
		{ID: "1", Email: "a@x.com"},
	}, nil)
	_, err := service.Fetch(context.Background(), "a@x.com")
	require.NoError(t, err)

	service.Clear()

	assert.Empty(t, service.Accounts())
}
