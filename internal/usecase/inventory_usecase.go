package usecase

import (
	"context"
	"strings"

	"vermafarm/internal/domain/entities"
	"vermafarm/internal/usecase/interfaces"

	"github.com/sirupsen/logrus"
)

var (
	ErrInventoryFarmerOnly = entities.NewAuthorizationError("Only farmers can manage inventory")
	ErrInventoryForbidden  = entities.NewAuthorizationError("Not authorized to update this item")
	ErrInvalidInventoryID  = entities.NewValidationError("Invalid inventory item id")
)

// IInventoryUseCase exposes a farmer's material stock.
type IInventoryUseCase interface {
	List(ctx context.Context, caller entities.Caller) ([]entities.InventoryItem, float64, error)
	Update(ctx context.Context, caller entities.Caller, id string, quantity float64, notes *string) (entities.InventoryItem, error)
	BulkUpdate(ctx context.Context, caller entities.Caller, updates []entities.InventoryUpdate) ([]entities.InventoryItem, error)
}

type InventoryUseCase struct {
	repo  interfaces.IInventoryRepository
	users interfaces.IUserRepository
}

var _ IInventoryUseCase = (*InventoryUseCase)(nil)

func NewInventoryUseCase(repo interfaces.IInventoryRepository, users interfaces.IUserRepository) *InventoryUseCase {
	return &InventoryUseCase{repo: repo, users: users}
}

// List returns the caller's items and their total quantity, which is also
// written back to the farmer's totalInventory counter.
func (u *InventoryUseCase) List(ctx context.Context, caller entities.Caller) ([]entities.InventoryItem, float64, error) {
	if caller.UserType != entities.UserTypeFarmer {
		return nil, 0, ErrInventoryFarmerOnly
	}
	items, err := u.repo.ListByUser(ctx, caller.UserID)
	if err != nil {
		return nil, 0, err
	}

	var total float64
	for _, it := range items {
		total += it.Quantity
	}
	if err := u.users.SetStat(ctx, caller.UserID, entities.StatFarmerTotalInventory, total); err != nil {
		logrus.WithError(err).WithField("user_id", caller.UserID).
			Warn("[inventory][usecase] failed to refresh total inventory")
	}
	return items, total, nil
}

func (u *InventoryUseCase) Update(ctx context.Context, caller entities.Caller, id string, quantity float64, notes *string) (entities.InventoryItem, error) {
	if caller.UserType != entities.UserTypeFarmer {
		return entities.InventoryItem{}, ErrInventoryFarmerOnly
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.InventoryItem{}, ErrInvalidInventoryID
	}

	item, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.InventoryItem{}, err
	}
	if item.ID == "" {
		return entities.InventoryItem{}, entities.ErrInventoryNotFound
	}
	if item.UserID != caller.UserID {
		return entities.InventoryItem{}, ErrInventoryForbidden
	}

	var n string
	if notes != nil {
		n = *notes
	}
	if err := entities.ValidateInventoryChange(quantity, n); err != nil {
		return entities.InventoryItem{}, err
	}

	updated, err := u.repo.UpdateQuantity(ctx, id, caller.UserID, quantity, notes)
	if err != nil {
		return entities.InventoryItem{}, err
	}
	if updated.ID == "" {
		return entities.InventoryItem{}, entities.ErrInventoryNotFound
	}
	return updated, nil
}

// BulkUpdate writes every update restricted to the caller's items. Items that
// do not exist or belong to someone else are skipped.
func (u *InventoryUseCase) BulkUpdate(ctx context.Context, caller entities.Caller, updates []entities.InventoryUpdate) ([]entities.InventoryItem, error) {
	if caller.UserType != entities.UserTypeFarmer {
		return nil, ErrInventoryFarmerOnly
	}
	for _, up := range updates {
		if strings.TrimSpace(up.ID) == "" {
			return nil, ErrInvalidInventoryID
		}
		if err := entities.ValidateInventoryChange(up.Quantity, ""); err != nil {
			return nil, err
		}
	}

	for _, up := range updates {
		updated, err := u.repo.UpdateQuantity(ctx, strings.TrimSpace(up.ID), caller.UserID, up.Quantity, nil)
		if err != nil {
			return nil, err
		}
		if updated.ID == "" {
			logrus.WithFields(logrus.Fields{
				"user_id": caller.UserID,
				"item_id": up.ID,
			}).Debug("[inventory][usecase] bulk update skipped item")
		}
	}
	return u.repo.ListByUser(ctx, caller.UserID)
}
