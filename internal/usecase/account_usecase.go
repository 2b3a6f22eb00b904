package usecase

import (
	"context"
	"strings"
	"time"

	"vermafarm/internal/domain/entities"
	"vermafarm/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrEmailTaken          = entities.NewConflictError("User with this email already exists")
	ErrMissingCredentials  = entities.NewValidationError("Please provide an email and password")
	ErrInvalidCredentials  = entities.NewAuthenticationError("Invalid credentials")
	ErrIncorrectPassword   = entities.NewAuthenticationError("Password is incorrect")
	ErrNotAuthenticated    = entities.NewAuthenticationError("Not authorized to access this route")
	ErrAccountDeactivated  = entities.NewAuthorizationError("Account is deactivated")
	ErrUserNotFound        = entities.NewNotFoundError("User not found")
	ErrInvalidChargeTarget = entities.NewAuthorizationError("Only land owners can set a service charge")
)

const (
	MinLandownerChargePercent = 1.0
	MaxLandownerChargePercent = 50.0
)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	UserType entities.UserType
	Location string
}

// UpdateDetailsInput carries the profile fields a user may change. Nil fields
// are left untouched.
type UpdateDetailsInput struct {
	Name                 *string
	Phone                *string
	Location             *string
	ServiceChargePercent *float64
}

// IAccountUseCase exposes registration, authentication and profile operations.
type IAccountUseCase interface {
	Register(ctx context.Context, in RegisterInput) (entities.User, string, error)
	Login(ctx context.Context, email, password string) (entities.User, string, error)
	Authenticate(ctx context.Context, token string) (entities.User, error)
	Me(ctx context.Context, caller entities.Caller) (entities.User, error)
	UpdateDetails(ctx context.Context, caller entities.Caller, in UpdateDetailsInput) (entities.User, error)
	UpdatePassword(ctx context.Context, caller entities.Caller, currentPassword, newPassword string) (entities.User, string, error)
}

type AccountUseCase struct {
	users     interfaces.IUserRepository
	inventory interfaces.IInventoryRepository
	tokens    interfaces.ITokenIssuer
	hasher    interfaces.IPasswordHasher
	now       func() time.Time
}

var _ IAccountUseCase = (*AccountUseCase)(nil)

func NewAccountUseCase(
	users interfaces.IUserRepository,
	inventory interfaces.IInventoryRepository,
	tokens interfaces.ITokenIssuer,
	hasher interfaces.IPasswordHasher,
) *AccountUseCase {
	return &AccountUseCase{
		users:     users,
		inventory: inventory,
		tokens:    tokens,
		hasher:    hasher,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (u *AccountUseCase) Register(ctx context.Context, in RegisterInput) (entities.User, string, error) {
	if err := entities.ValidateRegistration(in.Name, in.Email, in.Password, in.Phone, in.UserType, in.Location); err != nil {
		return entities.User{}, "", err
	}
	email := entities.NormalizeEmail(in.Email)

	if existing, err := u.users.GetByEmail(ctx, email); err != nil {
		return entities.User{}, "", err
	} else if existing.ID != "" {
		return entities.User{}, "", ErrEmailTaken
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return entities.User{}, "", err
	}

	now := u.now()
	user := entities.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hash,
		Phone:        strings.TrimSpace(in.Phone),
		UserType:     in.UserType,
		Location:     strings.TrimSpace(in.Location),
		IsActive:     true,
		LastLogin:    now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if user.UserType == entities.UserTypeLandowner {
		user.LandownerStats.ServiceChargePercent = entities.DefaultLandownerServiceChargePercent
	}

	created, err := u.users.Create(ctx, user)
	if err != nil {
		return entities.User{}, "", err
	}
	if created.ID == "" {
		return entities.User{}, "", ErrEmailTaken
	}

	if created.UserType == entities.UserTypeFarmer {
		items := entities.StarterInventory(created.ID, uuid.NewString, now)
		if err := u.inventory.CreateMany(ctx, items); err != nil {
			return entities.User{}, "", err
		}
	}

	token, err := u.tokens.Issue(created)
	if err != nil {
		return entities.User{}, "", err
	}
	logrus.WithFields(logrus.Fields{
		"user_id":   created.ID,
		"user_type": created.UserType,
	}).Info("[account][usecase] registered")
	return created, token, nil
}

func (u *AccountUseCase) Login(ctx context.Context, email, password string) (entities.User, string, error) {
	email = entities.NormalizeEmail(email)
	if email == "" || password == "" {
		return entities.User{}, "", ErrMissingCredentials
	}

	user, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		return entities.User{}, "", err
	}
	if user.ID == "" {
		return entities.User{}, "", ErrInvalidCredentials
	}
	if err := u.hasher.Compare(user.PasswordHash, password); err != nil {
		return entities.User{}, "", ErrInvalidCredentials
	}
	if !user.IsActive {
		return entities.User{}, "", ErrAccountDeactivated
	}

	now := u.now()
	if err := u.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		return entities.User{}, "", err
	}
	user.LastLogin = now

	token, err := u.tokens.Issue(user)
	if err != nil {
		return entities.User{}, "", err
	}
	return user, token, nil
}

// Authenticate resolves a bearer token to an active user.
func (u *AccountUseCase) Authenticate(ctx context.Context, token string) (entities.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return entities.User{}, ErrNotAuthenticated
	}
	caller, err := u.tokens.Parse(token)
	if err != nil {
		return entities.User{}, ErrNotAuthenticated
	}

	user, err := u.users.GetByID(ctx, caller.UserID)
	if err != nil {
		return entities.User{}, err
	}
	if user.ID == "" {
		return entities.User{}, ErrNotAuthenticated
	}
	if !user.IsActive {
		return entities.User{}, ErrAccountDeactivated
	}
	return user, nil
}

func (u *AccountUseCase) Me(ctx context.Context, caller entities.Caller) (entities.User, error) {
	return u.load(ctx, caller.UserID)
}

func (u *AccountUseCase) UpdateDetails(ctx context.Context, caller entities.Caller, in UpdateDetailsInput) (entities.User, error) {
	user, err := u.load(ctx, caller.UserID)
	if err != nil {
		return entities.User{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" || len(name) > entities.MaxUserNameLength {
			return entities.User{}, entities.NewValidationError("Name must be between 1 and 50 characters")
		}
		user.Name = name
	}
	if in.Phone != nil {
		if err := entities.ValidatePhone(*in.Phone); err != nil {
			return entities.User{}, err
		}
		user.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Location != nil {
		location := strings.TrimSpace(*in.Location)
		if location == "" {
			return entities.User{}, entities.NewValidationError("Please provide your location")
		}
		user.Location = location
	}
	if in.ServiceChargePercent != nil {
		if user.UserType != entities.UserTypeLandowner {
			return entities.User{}, ErrInvalidChargeTarget
		}
		pct := *in.ServiceChargePercent
		if pct < MinLandownerChargePercent || pct > MaxLandownerChargePercent {
			return entities.User{}, entities.NewValidationError("Service charge must be between 1 and 50 percent")
		}
		user.LandownerStats.ServiceChargePercent = pct
	}
	user.UpdatedAt = u.now()

	updated, err := u.users.UpdateProfile(ctx, user)
	if err != nil {
		return entities.User{}, err
	}
	if updated.ID == "" {
		return entities.User{}, ErrUserNotFound
	}
	return updated, nil
}

func (u *AccountUseCase) UpdatePassword(ctx context.Context, caller entities.Caller, currentPassword, newPassword string) (entities.User, string, error) {
	user, err := u.load(ctx, caller.UserID)
	if err != nil {
		return entities.User{}, "", err
	}
	if err := u.hasher.Compare(user.PasswordHash, currentPassword); err != nil {
		return entities.User{}, "", ErrIncorrectPassword
	}
	if len(newPassword) < entities.MinPasswordLength {
		return entities.User{}, "", entities.NewValidationError("Password must be at least 6 characters")
	}

	hash, err := u.hasher.Hash(newPassword)
	if err != nil {
		return entities.User{}, "", err
	}
	updated, err := u.users.UpdatePassword(ctx, user.ID, hash)
	if err != nil {
		return entities.User{}, "", err
	}
	if updated.ID == "" {
		return entities.User{}, "", ErrUserNotFound
	}

	token, err := u.tokens.Issue(updated)
	if err != nil {
		return entities.User{}, "", err
	}
	logrus.WithField("user_id", updated.ID).Info("[account][usecase] password changed")
	return updated, token, nil
}

func (u *AccountUseCase) load(ctx context.Context, id string) (entities.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.User{}, ErrNotAuthenticated
	}
	user, err := u.users.GetByID(ctx, id)
	if err != nil {
		return entities.User{}, err
	}
	if user.ID == "" {
		return entities.User{}, ErrUserNotFound
	}
	return user, nil
}
