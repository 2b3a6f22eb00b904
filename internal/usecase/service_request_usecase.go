package usecase

import (
	"context"
	"slices"
	"strings"
	"time"

	"vermafarm/internal/domain/entities"
	"vermafarm/internal/infrastructure/metrics"
	"vermafarm/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var ErrInvalidServiceRequestID = entities.NewValidationError("Invalid service request id")

// IServiceRequestUseCase exposes the service-request lifecycle.
//
//   - farmer: Create, Cancel, Review
//   - landowner: ListAvailable, Accept, Start, Complete, Review
//   - both: GetByID, ListMine
type IServiceRequestUseCase interface {
	Create(ctx context.Context, caller entities.Caller, p entities.NewServiceRequestParams) (entities.ServiceRequest, error)
	Accept(ctx context.Context, caller entities.Caller, id string) (entities.ServiceRequest, error)
	Start(ctx context.Context, caller entities.Caller, id string) (entities.ServiceRequest, error)
	Complete(ctx context.Context, caller entities.Caller, id string, actualRevenue float64) (entities.ServiceRequest, entities.Settlement, error)
	Cancel(ctx context.Context, caller entities.Caller, id string) (entities.ServiceRequest, error)
	Review(ctx context.Context, caller entities.Caller, id string, rating *int, review string) (entities.ServiceRequest, error)
	GetByID(ctx context.Context, caller entities.Caller, id string) (entities.ServiceRequest, error)
	ListAvailable(ctx context.Context, caller entities.Caller) ([]entities.ServiceRequest, error)
	ListMine(ctx context.Context, caller entities.Caller) ([]entities.ServiceRequest, error)
}

// transitionGuard is the authorization rule of one operation: the caller must
// hold role and, unless binding is BindingNone, be the user stored in that
// binding field. An unbound field is left to the state precondition, so a
// landowner starting a pending request gets the state error, not 403.
// raceErr is returned when the conditional write loses.
type transitionGuard struct {
	role    entities.UserType
	binding entities.BindingField
	raceErr error
}

var (
	createGuard   = transitionGuard{role: entities.UserTypeFarmer, binding: entities.BindingNone}
	acceptGuard   = transitionGuard{role: entities.UserTypeLandowner, binding: entities.BindingNone, raceErr: entities.ErrRequestNotAvailable}
	startGuard    = transitionGuard{role: entities.UserTypeLandowner, binding: entities.BindingLandowner, raceErr: entities.ErrRequestMustBeAccepted}
	completeGuard = transitionGuard{role: entities.UserTypeLandowner, binding: entities.BindingLandowner, raceErr: entities.ErrProjectMustBeInProgress}
	cancelGuard   = transitionGuard{role: entities.UserTypeFarmer, binding: entities.BindingFarmer, raceErr: entities.ErrOnlyPendingCanBeCancelled}
)

func (g transitionGuard) check(caller entities.Caller, r *entities.ServiceRequest) error {
	if caller.UserType != g.role {
		return entities.ErrServiceRequestForbidden
	}
	if r == nil || g.binding == entities.BindingNone {
		return nil
	}
	if bound := r.BoundParty(g.binding); bound != "" && bound != caller.UserID {
		return entities.ErrServiceRequestForbidden
	}
	return nil
}

type ServiceRequestUseCase struct {
	repo   interfaces.IServiceRequestRepository
	ledger interfaces.IAccountLedger
	now    func() time.Time
}

var _ IServiceRequestUseCase = (*ServiceRequestUseCase)(nil)

func NewServiceRequestUseCase(repo interfaces.IServiceRequestRepository, ledger interfaces.IAccountLedger) *ServiceRequestUseCase {
	return &ServiceRequestUseCase{
		repo:   repo,
		ledger: ledger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (u *ServiceRequestUseCase) Create(ctx context.Context, caller entities.Caller, p entities.NewServiceRequestParams) (entities.ServiceRequest, error) {
	if err := createGuard.check(caller, nil); err != nil {
		return entities.ServiceRequest{}, err
	}
	p.FarmerID = caller.UserID

	r, err := entities.NewServiceRequest(uuid.NewString(), p, u.now())
	if err != nil {
		return entities.ServiceRequest{}, err
	}
	created, err := u.repo.Create(ctx, r)
	if err != nil {
		return entities.ServiceRequest{}, err
	}

	logrus.WithFields(logrus.Fields{
		"request_id": created.ID,
		"farmer_id":  created.FarmerID,
		"material":   created.MaterialType,
		"quantity":   created.Quantity,
	}).Info("[service-request][usecase] created")
	u.publish(ctx, entities.RequestCreated{ServiceRequestID: created.ID, FarmerID: created.FarmerID})
	return created, nil
}

func (u *ServiceRequestUseCase) Accept(ctx context.Context, caller entities.Caller, id string) (entities.ServiceRequest, error) {
	updated, err := u.transition(ctx, caller, id, acceptGuard, func(r *entities.ServiceRequest, now time.Time) error {
		return r.Accept(caller.UserID, now)
	})
	if err != nil {
		return entities.ServiceRequest{}, err
	}
	u.publish(ctx, entities.RequestAccepted{ServiceRequestID: updated.ID, LandownerID: updated.LandownerID})
	return updated, nil
}

func (u *ServiceRequestUseCase) Start(ctx context.Context, caller entities.Caller, id string) (entities.ServiceRequest, error) {
	return u.transition(ctx, caller, id, startGuard, func(r *entities.ServiceRequest, now time.Time) error {
		return r.Start(now)
	})
}

func (u *ServiceRequestUseCase) Complete(ctx context.Context, caller entities.Caller, id string, actualRevenue float64) (entities.ServiceRequest, entities.Settlement, error) {
	var settlement entities.Settlement
	updated, err := u.transition(ctx, caller, id, completeGuard, func(r *entities.ServiceRequest, now time.Time) error {
		s, err := r.Complete(actualRevenue, now)
		settlement = s
		return err
	})
	if err != nil {
		return entities.ServiceRequest{}, entities.Settlement{}, err
	}

	u.publish(ctx, entities.RequestCompleted{
		ServiceRequestID: updated.ID,
		FarmerID:         updated.FarmerID,
		LandownerID:      updated.LandownerID,
		FarmerEarnings:   settlement.FarmerEarnings,
		ServiceCharge:    settlement.ServiceCharge,
	})
	return updated, settlement, nil
}

func (u *ServiceRequestUseCase) Cancel(ctx context.Context, caller entities.Caller, id string) (entities.ServiceRequest, error) {
	updated, err := u.transition(ctx, caller, id, cancelGuard, func(r *entities.ServiceRequest, now time.Time) error {
		return r.Cancel(now)
	})
	if err != nil {
		return entities.ServiceRequest{}, err
	}
	u.publish(ctx, entities.RequestCancelled{ServiceRequestID: updated.ID, FarmerID: updated.FarmerID})
	return updated, nil
}

func (u *ServiceRequestUseCase) Review(ctx context.Context, caller entities.Caller, id string, rating *int, review string) (entities.ServiceRequest, error) {
	var g transitionGuard
	switch caller.UserType {
	case entities.UserTypeFarmer:
		g = transitionGuard{role: entities.UserTypeFarmer, binding: entities.BindingFarmer}
	case entities.UserTypeLandowner:
		g = transitionGuard{role: entities.UserTypeLandowner, binding: entities.BindingLandowner}
	default:
		return entities.ServiceRequest{}, entities.ErrServiceRequestRole
	}

	current, err := u.load(ctx, id)
	if err != nil {
		return entities.ServiceRequest{}, err
	}
	if err := g.check(caller, &current); err != nil {
		return entities.ServiceRequest{}, err
	}
	if err := current.Review(caller.UserType, rating, strings.TrimSpace(review), u.now()); err != nil {
		return entities.ServiceRequest{}, err
	}

	updated, err := u.repo.SaveReview(ctx, current, caller.UserType)
	if err != nil {
		return entities.ServiceRequest{}, err
	}
	if updated.ID == "" {
		return entities.ServiceRequest{}, entities.ErrOnlyCompletedCanBeRated
	}
	return updated, nil
}

func (u *ServiceRequestUseCase) GetByID(ctx context.Context, caller entities.Caller, id string) (entities.ServiceRequest, error) {
	r, err := u.load(ctx, id)
	if err != nil {
		return entities.ServiceRequest{}, err
	}
	switch caller.UserType {
	case entities.UserTypeFarmer, entities.UserTypeLandowner:
	default:
		return entities.ServiceRequest{}, entities.ErrServiceRequestRole
	}
	// Landowners may look at an open request before accepting it.
	open := r.Status == entities.ServiceRequestStatusPending && r.LandownerID == ""
	if !r.Participant(caller.UserID) && !(open && caller.UserType == entities.UserTypeLandowner) {
		return entities.ServiceRequest{}, entities.ErrServiceRequestForbidden
	}
	return r, nil
}

func (u *ServiceRequestUseCase) ListAvailable(ctx context.Context, caller entities.Caller) ([]entities.ServiceRequest, error) {
	if caller.UserType != entities.UserTypeLandowner {
		return nil, entities.ErrServiceRequestForbidden
	}
	items, err := u.repo.ListAvailable(ctx)
	if err != nil {
		return nil, err
	}
	available := items[:0]
	for _, r := range items {
		if r.Status == entities.ServiceRequestStatusPending && r.LandownerID == "" {
			available = append(available, r)
		}
	}
	return newestFirst(available), nil
}

func (u *ServiceRequestUseCase) ListMine(ctx context.Context, caller entities.Caller) ([]entities.ServiceRequest, error) {
	var (
		items []entities.ServiceRequest
		err   error
	)
	switch caller.UserType {
	case entities.UserTypeFarmer:
		items, err = u.repo.ListByFarmer(ctx, caller.UserID)
	case entities.UserTypeLandowner:
		items, err = u.repo.ListByLandowner(ctx, caller.UserID)
	default:
		return nil, entities.ErrServiceRequestRole
	}
	if err != nil {
		return nil, err
	}
	return newestFirst(items), nil
}

func (u *ServiceRequestUseCase) load(ctx context.Context, id string) (entities.ServiceRequest, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.ServiceRequest{}, ErrInvalidServiceRequestID
	}
	r, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.ServiceRequest{}, err
	}
	if r.ID == "" {
		return entities.ServiceRequest{}, entities.ErrServiceRequestNotFound
	}
	return r, nil
}

// transition loads the request, authorizes the caller, applies the state
// change in memory and persists it conditionally on the status that was read.
func (u *ServiceRequestUseCase) transition(
	ctx context.Context,
	caller entities.Caller,
	id string,
	g transitionGuard,
	apply func(r *entities.ServiceRequest, now time.Time) error,
) (entities.ServiceRequest, error) {
	current, err := u.load(ctx, id)
	if err != nil {
		return entities.ServiceRequest{}, err
	}
	if err := g.check(caller, &current); err != nil {
		return entities.ServiceRequest{}, err
	}

	from := current.Status
	next := current
	if err := apply(&next, u.now()); err != nil {
		return entities.ServiceRequest{}, err
	}

	updated, err := u.repo.ApplyTransition(ctx, next, from)
	if err != nil {
		metrics.RecordTransition(string(next.Status), metrics.OutcomeError)
		return entities.ServiceRequest{}, err
	}
	if updated.ID == "" {
		metrics.RecordTransition(string(next.Status), metrics.OutcomeRejected)
		logrus.WithFields(logrus.Fields{
			"request_id": next.ID,
			"from":       from,
			"to":         next.Status,
		}).Warn("[service-request][usecase] transition lost a concurrent update")
		return entities.ServiceRequest{}, g.raceErr
	}

	metrics.RecordTransition(string(updated.Status), metrics.OutcomeOK)
	logrus.WithFields(logrus.Fields{
		"request_id": updated.ID,
		"from":       from,
		"to":         updated.Status,
		"user_id":    caller.UserID,
	}).Info("[service-request][usecase] transition applied")
	return updated, nil
}

// publish hands a committed transition to the account ledger. The transition
// is already persisted, so a ledger failure is logged and not returned.
func (u *ServiceRequestUseCase) publish(ctx context.Context, ev entities.ServiceRequestEvent) {
	if u.ledger == nil {
		return
	}
	if err := u.ledger.Apply(ctx, ev); err != nil {
		logrus.WithError(err).WithField("request_id", ev.RequestID()).
			Error("[service-request][usecase] failed to apply account counters")
	}
}

func newestFirst(items []entities.ServiceRequest) []entities.ServiceRequest {
	slices.SortStableFunc(items, func(a, b entities.ServiceRequest) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return items
}
