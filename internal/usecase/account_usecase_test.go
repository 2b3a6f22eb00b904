package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"vermafarm/internal/domain/entities"
	mock_interfaces "vermafarm/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

type accountMocks struct {
	users     *mock_interfaces.MockIUserRepository
	inventory *mock_interfaces.MockIInventoryRepository
	tokens    *mock_interfaces.MockITokenIssuer
	hasher    *mock_interfaces.MockIPasswordHasher
}

func newAccountUC(t *testing.T) (*AccountUseCase, accountMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := accountMocks{
		users:     mock_interfaces.NewMockIUserRepository(ctrl),
		inventory: mock_interfaces.NewMockIInventoryRepository(ctrl),
		tokens:    mock_interfaces.NewMockITokenIssuer(ctrl),
		hasher:    mock_interfaces.NewMockIPasswordHasher(ctrl),
	}
	return NewAccountUseCase(m.users, m.inventory, m.tokens, m.hasher), m
}

func validRegistration(userType entities.UserType) RegisterInput {
	return RegisterInput{
		Name:     "Asha",
		Email:    " Asha@Farm.io ",
		Password: "secret1",
		Phone:    "9876543210",
		UserType: userType,
		Location: "Kochi",
	}
}

func TestAccountUseCase_Register(t *testing.T) {
	t.Run("validation", func(t *testing.T) {
		uc, _ := newAccountUC(t)
		in := validRegistration(entities.UserTypeFarmer)
		in.Password = "123"
		_, _, err := uc.Register(context.Background(), in)
		if !errors.Is(err, entities.ErrValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		uc, m := newAccountUC(t)
		m.users.EXPECT().GetByEmail(gomock.Any(), "asha@farm.io").Return(entities.User{ID: "u-1"}, nil)

		_, _, err := uc.Register(context.Background(), validRegistration(entities.UserTypeFarmer))
		if !errors.Is(err, ErrEmailTaken) || !errors.Is(err, entities.ErrConflict) {
			t.Fatalf("expected ErrEmailTaken, got %v", err)
		}
	})

	t.Run("farmer gets starter inventory", func(t *testing.T) {
		uc, m := newAccountUC(t)
		m.users.EXPECT().GetByEmail(gomock.Any(), "asha@farm.io").Return(entities.User{}, nil)
		m.hasher.EXPECT().Hash("secret1").Return("hashed", nil)
		m.users.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, u entities.User) (entities.User, error) {
				if u.ID == "" || u.Email != "asha@farm.io" || u.PasswordHash != "hashed" || !u.IsActive {
					t.Fatalf("unexpected user: %+v", u)
				}
				return u, nil
			},
		)
		m.inventory.EXPECT().CreateMany(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, items []entities.InventoryItem) error {
				if len(items) != 4 {
					t.Fatalf("expected 4 starter items, got %d", len(items))
				}
				return nil
			},
		)
		m.tokens.EXPECT().Issue(gomock.Any()).Return("tok", nil)

		u, token, err := uc.Register(context.Background(), validRegistration(entities.UserTypeFarmer))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token != "tok" || u.UserType != entities.UserTypeFarmer {
			t.Fatalf("unexpected result: %+v %s", u, token)
		}
	})

	t.Run("landowner gets default service charge", func(t *testing.T) {
		uc, m := newAccountUC(t)
		m.users.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(entities.User{}, nil)
		m.hasher.EXPECT().Hash(gomock.Any()).Return("hashed", nil)
		m.users.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, u entities.User) (entities.User, error) { return u, nil },
		)
		m.tokens.EXPECT().Issue(gomock.Any()).Return("tok", nil)

		u, _, err := uc.Register(context.Background(), validRegistration(entities.UserTypeLandowner))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if u.LandownerStats.ServiceChargePercent != entities.DefaultLandownerServiceChargePercent {
			t.Fatalf("expected default charge, got %v", u.LandownerStats.ServiceChargePercent)
		}
	})
}

func TestAccountUseCase_Login(t *testing.T) {
	stored := entities.User{ID: "u-1", Email: "asha@farm.io", PasswordHash: "hashed", IsActive: true, UserType: entities.UserTypeFarmer}

	t.Run("missing credentials", func(t *testing.T) {
		uc, _ := newAccountUC(t)
		_, _, err := uc.Login(context.Background(), "", "")
		if !errors.Is(err, ErrMissingCredentials) {
			t.Fatalf("expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		uc, m := newAccountUC(t)
		m.users.EXPECT().GetByEmail(gomock.Any(), "asha@farm.io").Return(entities.User{}, nil)

		_, _, err := uc.Login(context.Background(), "ASHA@farm.io", "secret1")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		uc, m := newAccountUC(t)
		m.users.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(stored, nil)
		m.hasher.EXPECT().Compare("hashed", "nope").Return(errors.New("mismatch"))

		_, _, err := uc.Login(context.Background(), "asha@farm.io", "nope")
		if !errors.Is(err, entities.ErrAuthentication) {
			t.Fatalf("expected authentication error, got %v", err)
		}
	})

	t.Run("inactive", func(t *testing.T) {
		uc, m := newAccountUC(t)
		inactive := stored
		inactive.IsActive = false
		m.users.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(inactive, nil)
		m.hasher.EXPECT().Compare(gomock.Any(), gomock.Any()).Return(nil)

		_, _, err := uc.Login(context.Background(), "asha@farm.io", "secret1")
		if !errors.Is(err, ErrAccountDeactivated) {
			t.Fatalf("expected ErrAccountDeactivated, got %v", err)
		}
	})

	t.Run("success touches last login", func(t *testing.T) {
		uc, m := newAccountUC(t)
		m.users.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(stored, nil)
		m.hasher.EXPECT().Compare("hashed", "secret1").Return(nil)
		m.users.EXPECT().TouchLastLogin(gomock.Any(), "u-1", gomock.AssignableToTypeOf(time.Time{})).Return(nil)
		m.tokens.EXPECT().Issue(gomock.Any()).Return("tok", nil)

		u, token, err := uc.Login(context.Background(), "asha@farm.io", "secret1")
		if err != nil || token != "tok" || u.LastLogin.IsZero() {
			t.Fatalf("unexpected result: %+v %s %v", u, token, err)
		}
	})
}

func TestAccountUseCase_Authenticate(t *testing.T) {
	t.Run("bad token", func(t *testing.T) {
		uc, m := newAccountUC(t)
		m.tokens.EXPECT().Parse("bad").Return(entities.Caller{}, errors.New("signature"))

		_, err := uc.Authenticate(context.Background(), "bad")
		if !errors.Is(err, ErrNotAuthenticated) {
			t.Fatalf("expected ErrNotAuthenticated, got %v", err)
		}
	})

	t.Run("deleted user", func(t *testing.T) {
		uc, m := newAccountUC(t)
		m.tokens.EXPECT().Parse("tok").Return(entities.Caller{UserID: "u-1"}, nil)
		m.users.EXPECT().GetByID(gomock.Any(), "u-1").Return(entities.User{}, nil)

		_, err := uc.Authenticate(context.Background(), "tok")
		if !errors.Is(err, ErrNotAuthenticated) {
			t.Fatalf("expected ErrNotAuthenticated, got %v", err)
		}
	})

	t.Run("active user", func(t *testing.T) {
		uc, m := newAccountUC(t)
		m.tokens.EXPECT().Parse("tok").Return(entities.Caller{UserID: "u-1"}, nil)
		m.users.EXPECT().GetByID(gomock.Any(), "u-1").Return(entities.User{ID: "u-1", IsActive: true}, nil)

		u, err := uc.Authenticate(context.Background(), "tok")
		if err != nil || u.ID != "u-1" {
			t.Fatalf("unexpected result: %+v %v", u, err)
		}
	})
}

func TestAccountUseCase_UpdateDetails(t *testing.T) {
	caller := entities.Caller{UserID: "u-1", UserType: entities.UserTypeFarmer}
	pct := 20.0

	t.Run("farmer cannot set service charge", func(t *testing.T) {
		uc, m := newAccountUC(t)
		m.users.EXPECT().GetByID(gomock.Any(), "u-1").Return(entities.User{ID: "u-1", UserType: entities.UserTypeFarmer}, nil)

		_, err := uc.UpdateDetails(context.Background(), caller, UpdateDetailsInput{ServiceChargePercent: &pct})
		if !errors.Is(err, ErrInvalidChargeTarget) {
			t.Fatalf("expected ErrInvalidChargeTarget, got %v", err)
		}
	})

	t.Run("landowner updates charge and name", func(t *testing.T) {
		uc, m := newAccountUC(t)
		name := " New Name "
		m.users.EXPECT().GetByID(gomock.Any(), "u-1").Return(entities.User{ID: "u-1", UserType: entities.UserTypeLandowner}, nil)
		m.users.EXPECT().UpdateProfile(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, u entities.User) (entities.User, error) {
				if u.Name != "New Name" || u.LandownerStats.ServiceChargePercent != 20 {
					t.Fatalf("unexpected profile: %+v", u)
				}
				return u, nil
			},
		)

		_, err := uc.UpdateDetails(context.Background(), caller, UpdateDetailsInput{Name: &name, ServiceChargePercent: &pct})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("bad phone", func(t *testing.T) {
		uc, m := newAccountUC(t)
		phone := "12"
		m.users.EXPECT().GetByID(gomock.Any(), "u-1").Return(entities.User{ID: "u-1"}, nil)

		_, err := uc.UpdateDetails(context.Background(), caller, UpdateDetailsInput{Phone: &phone})
		if !errors.Is(err, entities.ErrValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}

func TestAccountUseCase_UpdatePassword(t *testing.T) {
	caller := entities.Caller{UserID: "u-1", UserType: entities.UserTypeBuyer}

	t.Run("wrong current password", func(t *testing.T) {
		uc, m := newAccountUC(t)
		m.users.EXPECT().GetByID(gomock.Any(), "u-1").Return(entities.User{ID: "u-1", PasswordHash: "h"}, nil)
		m.hasher.EXPECT().Compare("h", "old").Return(errors.New("mismatch"))

		_, _, err := uc.UpdatePassword(context.Background(), caller, "old", "newsecret")
		if !errors.Is(err, ErrIncorrectPassword) {
			t.Fatalf("expected ErrIncorrectPassword, got %v", err)
		}
	})

	t.Run("success issues fresh token", func(t *testing.T) {
		uc, m := newAccountUC(t)
		m.users.EXPECT().GetByID(gomock.Any(), "u-1").Return(entities.User{ID: "u-1", PasswordHash: "h"}, nil)
		m.hasher.EXPECT().Compare("h", "old").Return(nil)
		m.hasher.EXPECT().Hash("newsecret").Return("h2", nil)
		m.users.EXPECT().UpdatePassword(gomock.Any(), "u-1", "h2").Return(entities.User{ID: "u-1", PasswordHash: "h2"}, nil)
		m.tokens.EXPECT().Issue(gomock.Any()).Return("tok2", nil)

		_, token, err := uc.UpdatePassword(context.Background(), caller, "old", "newsecret")
		if err != nil || token != "tok2" {
			t.Fatalf("unexpected result: %s %v", token, err)
		}
	})
}

func TestAccountLedger_Apply(t *testing.T) {
	t.Run("one write per user", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		users := mock_interfaces.NewMockIUserRepository(ctrl)
		ledger := NewAccountLedger(users)

		ev := entities.RequestCompleted{ServiceRequestID: "sr-1", FarmerID: "f", LandownerID: "l", FarmerEarnings: 850, ServiceCharge: 150}
		gomock.InOrder(
			users.EXPECT().IncrementStats(gomock.Any(), "f", entities.StatDeltas{
				entities.StatFarmerActiveRequests: -1,
				entities.StatFarmerRevenue:        850,
			}).Return(nil),
			users.EXPECT().IncrementStats(gomock.Any(), "l", entities.StatDeltas{
				entities.StatLandownerCompletedProjects: 1,
				entities.StatLandownerActiveProjects:    -1,
				entities.StatLandownerServiceRevenue:    150,
			}).Return(nil),
		)

		if err := ledger.Apply(context.Background(), ev); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("store error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		users := mock_interfaces.NewMockIUserRepository(ctrl)
		ledger := NewAccountLedger(users)
		users.EXPECT().IncrementStats(gomock.Any(), "f", gomock.Any()).Return(errors.New("db"))

		err := ledger.Apply(context.Background(), entities.RequestCreated{ServiceRequestID: "sr-1", FarmerID: "f"})
		if err == nil {
			t.Fatalf("expected error")
		}
	})
}
