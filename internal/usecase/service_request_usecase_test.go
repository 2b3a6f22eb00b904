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

var (
	farmer     = entities.Caller{UserID: "farmer-1", UserType: entities.UserTypeFarmer}
	landowner  = entities.Caller{UserID: "landowner-1", UserType: entities.UserTypeLandowner}
	landowner2 = entities.Caller{UserID: "landowner-2", UserType: entities.UserTypeLandowner}
	buyer      = entities.Caller{UserID: "buyer-1", UserType: entities.UserTypeBuyer}
)

func newServiceRequestUC(t *testing.T) (*ServiceRequestUseCase, *mock_interfaces.MockIServiceRequestRepository, *mock_interfaces.MockIAccountLedger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mock_interfaces.NewMockIServiceRequestRepository(ctrl)
	ledger := mock_interfaces.NewMockIAccountLedger(ctrl)
	uc := NewServiceRequestUseCase(repo, ledger)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return fixed }
	return uc, repo, ledger
}

func pendingRequest() entities.ServiceRequest {
	return entities.ServiceRequest{
		ID:                   "sr-1",
		FarmerID:             "farmer-1",
		MaterialType:         entities.MaterialDryLeaves,
		Quantity:             50,
		Unit:                 entities.UnitKg,
		ServiceChargePercent: 15,
		EstimatedRevenue:     1000,
		Status:               entities.ServiceRequestStatusPending,
	}
}

func echoTransition(_ context.Context, r entities.ServiceRequest, _ entities.ServiceRequestStatus) (entities.ServiceRequest, error) {
	return r, nil
}

func TestServiceRequestUseCase_Create(t *testing.T) {
	t.Run("non farmer", func(t *testing.T) {
		uc, _, _ := newServiceRequestUC(t)
		_, err := uc.Create(context.Background(), landowner, entities.NewServiceRequestParams{MaterialType: entities.MaterialDryLeaves, Quantity: 5})
		if !errors.Is(err, entities.ErrAuthorization) {
			t.Fatalf("expected authorization error, got %v", err)
		}
	})

	t.Run("validation", func(t *testing.T) {
		uc, _, _ := newServiceRequestUC(t)
		_, err := uc.Create(context.Background(), farmer, entities.NewServiceRequestParams{MaterialType: entities.MaterialDryLeaves, Quantity: 0})
		if !errors.Is(err, entities.ErrValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("repo error", func(t *testing.T) {
		uc, repo, _ := newServiceRequestUC(t)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.ServiceRequest{}, errors.New("db"))

		_, err := uc.Create(context.Background(), farmer, entities.NewServiceRequestParams{MaterialType: entities.MaterialDryLeaves, Quantity: 5})
		if err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})

	t.Run("success publishes RequestCreated", func(t *testing.T) {
		uc, repo, ledger := newServiceRequestUC(t)

		repo.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.ServiceRequest{})).DoAndReturn(
			func(_ context.Context, r entities.ServiceRequest) (entities.ServiceRequest, error) {
				if r.ID == "" || r.FarmerID != "farmer-1" || r.Status != entities.ServiceRequestStatusPending {
					t.Fatalf("unexpected request: %+v", r)
				}
				if r.EstimatedRevenue != 2000 || r.LandownerID != "" {
					t.Fatalf("expected estimate 2000 and no landowner, got %+v", r)
				}
				return r, nil
			},
		)
		ledger.EXPECT().Apply(gomock.Any(), gomock.AssignableToTypeOf(entities.RequestCreated{})).DoAndReturn(
			func(_ context.Context, ev entities.ServiceRequestEvent) error {
				if ev.Deltas()["farmer-1"][entities.StatFarmerActiveRequests] != 1 {
					t.Fatalf("expected +1 active request, got %+v", ev.Deltas())
				}
				return nil
			},
		)

		// FarmerID in the payload is ignored in favour of the caller.
		res, err := uc.Create(context.Background(), farmer, entities.NewServiceRequestParams{
			FarmerID:     "someone-else",
			MaterialType: entities.MaterialPoultryWaste,
			Quantity:     100,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.FarmerID != "farmer-1" {
			t.Fatalf("expected caller as farmer, got %s", res.FarmerID)
		}
	})
}

func TestServiceRequestUseCase_Accept(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		uc, _, _ := newServiceRequestUC(t)
		_, err := uc.Accept(context.Background(), landowner, "  ")
		if !errors.Is(err, ErrInvalidServiceRequestID) {
			t.Fatalf("expected ErrInvalidServiceRequestID, got %v", err)
		}
	})

	t.Run("not found before authorization", func(t *testing.T) {
		uc, repo, _ := newServiceRequestUC(t)
		repo.EXPECT().GetByID(gomock.Any(), "sr-x").Return(entities.ServiceRequest{}, nil)

		_, err := uc.Accept(context.Background(), farmer, "sr-x")
		if !errors.Is(err, entities.ErrServiceRequestNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	t.Run("farmer cannot accept", func(t *testing.T) {
		uc, repo, _ := newServiceRequestUC(t)
		repo.EXPECT().GetByID(gomock.Any(), "sr-1").Return(pendingRequest(), nil)

		_, err := uc.Accept(context.Background(), farmer, "sr-1")
		if !errors.Is(err, entities.ErrServiceRequestForbidden) {
			t.Fatalf("expected forbidden, got %v", err)
		}
	})

	t.Run("already accepted", func(t *testing.T) {
		uc, repo, _ := newServiceRequestUC(t)
		r := pendingRequest()
		r.Status = entities.ServiceRequestStatusAccepted
		r.LandownerID = "landowner-1"
		repo.EXPECT().GetByID(gomock.Any(), "sr-1").Return(r, nil)

		_, err := uc.Accept(context.Background(), landowner2, "sr-1")
		if !errors.Is(err, entities.ErrRequestNotAvailable) {
			t.Fatalf("expected not available, got %v", err)
		}
	})

	t.Run("lost race", func(t *testing.T) {
		uc, repo, _ := newServiceRequestUC(t)
		repo.EXPECT().GetByID(gomock.Any(), "sr-1").Return(pendingRequest(), nil)
		repo.EXPECT().ApplyTransition(gomock.Any(), gomock.Any(), entities.ServiceRequestStatusPending).
			Return(entities.ServiceRequest{}, nil)

		_, err := uc.Accept(context.Background(), landowner2, "sr-1")
		if !errors.Is(err, entities.ErrRequestNotAvailable) {
			t.Fatalf("expected not available, got %v", err)
		}
	})

	t.Run("success binds landowner and publishes", func(t *testing.T) {
		uc, repo, ledger := newServiceRequestUC(t)
		repo.EXPECT().GetByID(gomock.Any(), "sr-1").Return(pendingRequest(), nil)
		repo.EXPECT().ApplyTransition(gomock.Any(), gomock.Any(), entities.ServiceRequestStatusPending).DoAndReturn(
			func(_ context.Context, r entities.ServiceRequest, _ entities.ServiceRequestStatus) (entities.ServiceRequest, error) {
				if r.LandownerID != "landowner-1" || r.Status != entities.ServiceRequestStatusAccepted || r.AcceptedAt == nil {
					t.Fatalf("unexpected transition: %+v", r)
				}
				return r, nil
			},
		)
		ledger.EXPECT().Apply(gomock.Any(), entities.RequestAccepted{ServiceRequestID: "sr-1", LandownerID: "landowner-1"}).Return(nil)

		res, err := uc.Accept(context.Background(), landowner, "sr-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.LandownerID != "landowner-1" {
			t.Fatalf("expected landowner-1, got %s", res.LandownerID)
		}
	})

	t.Run("ledger failure does not fail the transition", func(t *testing.T) {
		uc, repo, ledger := newServiceRequestUC(t)
		repo.EXPECT().GetByID(gomock.Any(), "sr-1").Return(pendingRequest(), nil)
		repo.EXPECT().ApplyTransition(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(echoTransition)
		ledger.EXPECT().Apply(gomock.Any(), gomock.Any()).Return(errors.New("throttled"))

		res, err := uc.Accept(context.Background(), landowner, "sr-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Status != entities.ServiceRequestStatusAccepted {
			t.Fatalf("expected accepted, got %s", res.Status)
		}
	})
}

func TestServiceRequestUseCase_StartAndComplete(t *testing.T) {
	accepted := pendingRequest()
	accepted.Status = entities.ServiceRequestStatusAccepted
	accepted.LandownerID = "landowner-1"

	t.Run("start by other landowner", func(t *testing.T) {
		uc, repo, _ := newServiceRequestUC(t)
		repo.EXPECT().GetByID(gomock.Any(), "sr-1").Return(accepted, nil)

		_, err := uc.Start(context.Background(), landowner2, "sr-1")
		if !errors.Is(err, entities.ErrServiceRequestForbidden) {
			t.Fatalf("expected forbidden, got %v", err)
		}
	})

	t.Run("start on pending request", func(t *testing.T) {
		uc, repo, _ := newServiceRequestUC(t)
		repo.EXPECT().GetByID(gomock.Any(), "sr-1").Return(pendingRequest(), nil)

		_, err := uc.Start(context.Background(), landowner, "sr-1")
		if !errors.Is(err, entities.ErrRequestMustBeAccepted) {
			t.Fatalf("expected must be accepted, got %v", err)
		}
		if !errors.Is(err, entities.ErrInvalidState) {
			t.Fatalf("expected an invalid state error, got %v", err)
		}
	})

	t.Run("complete on pending request", func(t *testing.T) {
		uc, repo, _ := newServiceRequestUC(t)
		repo.EXPECT().GetByID(gomock.Any(), "sr-1").Return(pendingRequest(), nil)

		_, _, err := uc.Complete(context.Background(), landowner2, "sr-1", 500)
		if !errors.Is(err, entities.ErrProjectMustBeInProgress) || errors.Is(err, entities.ErrAuthorization) {
			t.Fatalf("expected must be in progress, got %v", err)
		}
	})

	t.Run("farmer cannot start", func(t *testing.T) {
		uc, repo, _ := newServiceRequestUC(t)
		repo.EXPECT().GetByID(gomock.Any(), "sr-1").Return(accepted, nil)

		_, err := uc.Start(context.Background(), farmer, "sr-1")
		if !errors.Is(err, entities.ErrServiceRequestForbidden) {
			t.Fatalf("expected forbidden, got %v", err)
		}
	})

	t.Run("start success", func(t *testing.T) {
		uc, repo, _ := newServiceRequestUC(t)
		repo.EXPECT().GetByID(gomock.Any(), "sr-1").Return(accepted, nil)
		repo.EXPECT().ApplyTransition(gomock.Any(), gomock.Any(), entities.ServiceRequestStatusAccepted).DoAndReturn(echoTransition)

		res, err := uc.Start(context.Background(), landowner, "sr-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Status != entities.ServiceRequestStatusInProgress || res.StartedAt == nil {
			t.Fatalf("unexpected result: %+v", res)
		}
	})

	t.Run("complete before start", func(t *testing.T) {
		uc, repo, _ := newServiceRequestUC(t)
		repo.EXPECT().GetByID(gomock.Any(), "sr-1").Return(accepted, nil)

		_, _, err := uc.Complete(context.Background(), landowner, "sr-1", 0)
		if !errors.Is(err, entities.ErrProjectMustBeInProgress) {
			t.Fatalf("expected must be in progress, got %v", err)
		}
	})

	t.Run("complete settles and publishes", func(t *testing.T) {
		uc, repo, ledger := newServiceRequestUC(t)
		inProgress := accepted
		inProgress.Status = entities.ServiceRequestStatusInProgress

		repo.EXPECT().GetByID(gomock.Any(), "sr-1").Return(inProgress, nil)
		repo.EXPECT().ApplyTransition(gomock.Any(), gomock.Any(), entities.ServiceRequestStatusInProgress).DoAndReturn(echoTransition)
		ledger.EXPECT().Apply(gomock.Any(), entities.RequestCompleted{
			ServiceRequestID: "sr-1",
			FarmerID:         "farmer-1",
			LandownerID:      "landowner-1",
			FarmerEarnings:   1020,
			ServiceCharge:    180,
		}).Return(nil)

		res, s, err := uc.Complete(context.Background(), landowner, "sr-1", 1200)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Status != entities.ServiceRequestStatusCompleted || res.ActualRevenue != 1200 || res.CompletedAt == nil {
			t.Fatalf("unexpected result: %+v", res)
		}
		if s.ServiceCharge != 180 || s.FarmerEarnings != 1020 {
			t.Fatalf("unexpected settlement: %+v", s)
		}
	})

	t.Run("repo error on transition", func(t *testing.T) {
		uc, repo, _ := newServiceRequestUC(t)
		repo.EXPECT().GetByID(gomock.Any(), "sr-1").Return(accepted, nil)
		repo.EXPECT().ApplyTransition(gomock.Any(), gomock.Any(), gomock.Any()).Return(entities.ServiceRequest{}, errors.New("db"))

		_, err := uc.Start(context.Background(), landowner, "sr-1")
		if err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})
}

func TestServiceRequestUseCase_Cancel(t *testing.T) {
	t.Run("other farmer", func(t *testing.T) {
		uc, repo, _ := newServiceRequestUC(t)
		repo.EXPECT().GetByID(gomock.Any(), "sr-1").Return(pendingRequest(), nil)

		_, err := uc.Cancel(context.Background(), entities.Caller{UserID: "farmer-2", UserType: entities.UserTypeFarmer}, "sr-1")
		if !errors.Is(err, entities.ErrServiceRequestForbidden) {
			t.Fatalf("expected forbidden, got %v", err)
		}
	})

	t.Run("accepted request", func(t *testing.T) {
		uc, repo, _ := newServiceRequestUC(t)
		r := pendingRequest()
		r.Status = entities.ServiceRequestStatusAccepted
		r.LandownerID = "landowner-1"
		repo.EXPECT().GetByID(gomock.Any(), "sr-1").Return(r, nil)

		_, err := uc.Cancel(context.Background(), farmer, "sr-1")
		if !errors.Is(err, entities.ErrOnlyPendingCanBeCancelled) {
			t.Fatalf("expected only pending, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		uc, repo, ledger := newServiceRequestUC(t)
		repo.EXPECT().GetByID(gomock.Any(), "sr-1").Return(pendingRequest(), nil)
		repo.EXPECT().ApplyTransition(gomock.Any(), gomock.Any(), entities.ServiceRequestStatusPending).DoAndReturn(echoTransition)
		ledger.EXPECT().Apply(gomock.Any(), entities.RequestCancelled{ServiceRequestID: "sr-1", FarmerID: "farmer-1"}).Return(nil)

		res, err := uc.Cancel(context.Background(), farmer, "sr-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Status != entities.ServiceRequestStatusCancelled {
			t.Fatalf("expected cancelled, got %s", res.Status)
		}
	})
}

func TestServiceRequestUseCase_Review(t *testing.T) {
	completed := pendingRequest()
	completed.Status = entities.ServiceRequestStatusCompleted
	completed.LandownerID = "landowner-1"

	t.Run("buyer", func(t *testing.T) {
		uc, _, _ := newServiceRequestUC(t)
		_, err := uc.Review(context.Background(), buyer, "sr-1", nil, "")
		if !errors.Is(err, entities.ErrServiceRequestRole) {
			t.Fatalf("expected role error, got %v", err)
		}
	})

	t.Run("not completed", func(t *testing.T) {
		uc, repo, _ := newServiceRequestUC(t)
		repo.EXPECT().GetByID(gomock.Any(), "sr-1").Return(pendingRequest(), nil)

		_, err := uc.Review(context.Background(), farmer, "sr-1", nil, "ok")
		if !errors.Is(err, entities.ErrOnlyCompletedCanBeRated) {
			t.Fatalf("expected only completed, got %v", err)
		}
	})

	t.Run("farmer rates", func(t *testing.T) {
		uc, repo, _ := newServiceRequestUC(t)
		rating := 5
		repo.EXPECT().GetByID(gomock.Any(), "sr-1").Return(completed, nil)
		repo.EXPECT().SaveReview(gomock.Any(), gomock.Any(), entities.UserTypeFarmer).DoAndReturn(
			func(_ context.Context, r entities.ServiceRequest, _ entities.UserType) (entities.ServiceRequest, error) {
				if r.QualityRating == nil || *r.QualityRating != 5 || r.FarmerReview != "great compost" {
					t.Fatalf("unexpected review: %+v", r)
				}
				return r, nil
			},
		)

		res, err := uc.Review(context.Background(), farmer, "sr-1", &rating, " great compost ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Status != entities.ServiceRequestStatusCompleted {
			t.Fatalf("review must not change status, got %s", res.Status)
		}
	})
}

func TestServiceRequestUseCase_Queries(t *testing.T) {
	older := pendingRequest()
	older.ID = "sr-old"
	older.CreatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := pendingRequest()
	newer.ID = "sr-new"
	newer.CreatedAt = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	taken := pendingRequest()
	taken.ID = "sr-taken"
	taken.LandownerID = "landowner-9"

	t.Run("available is landowner only", func(t *testing.T) {
		uc, _, _ := newServiceRequestUC(t)
		_, err := uc.ListAvailable(context.Background(), farmer)
		if !errors.Is(err, entities.ErrAuthorization) {
			t.Fatalf("expected authorization error, got %v", err)
		}
	})

	t.Run("available filters and sorts newest first", func(t *testing.T) {
		uc, repo, _ := newServiceRequestUC(t)
		repo.EXPECT().ListAvailable(gomock.Any()).Return([]entities.ServiceRequest{older, taken, newer}, nil)

		res, err := uc.ListAvailable(context.Background(), landowner)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res) != 2 || res[0].ID != "sr-new" || res[1].ID != "sr-old" {
			t.Fatalf("unexpected result: %+v", res)
		}
	})

	t.Run("mine by role", func(t *testing.T) {
		uc, repo, _ := newServiceRequestUC(t)
		repo.EXPECT().ListByFarmer(gomock.Any(), "farmer-1").Return([]entities.ServiceRequest{older, newer}, nil)
		repo.EXPECT().ListByLandowner(gomock.Any(), "landowner-1").Return(nil, nil)

		res, err := uc.ListMine(context.Background(), farmer)
		if err != nil || len(res) != 2 || res[0].ID != "sr-new" {
			t.Fatalf("unexpected farmer result: %+v, %v", res, err)
		}
		res, err = uc.ListMine(context.Background(), landowner)
		if err != nil || len(res) != 0 {
			t.Fatalf("unexpected landowner result: %+v, %v", res, err)
		}
		_, err = uc.ListMine(context.Background(), buyer)
		if !errors.Is(err, entities.ErrServiceRequestRole) {
			t.Fatalf("expected role error, got %v", err)
		}
	})

	t.Run("get visibility", func(t *testing.T) {
		uc, repo, _ := newServiceRequestUC(t)
		repo.EXPECT().GetByID(gomock.Any(), "sr-taken").Return(taken, nil).Times(2)

		if _, err := uc.GetByID(context.Background(), landowner, "sr-taken"); !errors.Is(err, entities.ErrServiceRequestForbidden) {
			t.Fatalf("expected forbidden, got %v", err)
		}
		if _, err := uc.GetByID(context.Background(), farmer, "sr-taken"); err != nil {
			t.Fatalf("farmer should see own request, got %v", err)
		}
	})
}
