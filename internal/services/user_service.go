package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eventmngt/eventapi/internal/dto"
	"github.com/eventmngt/eventapi/internal/helpers"
	"github.com/eventmngt/eventapi/internal/models"
	"github.com/google/uuid"
)

type UserService struct {
	userRepo    models.UserRepo
	sessionRepo models.SessionRepo
	tokens      *helpers.TokenManager
	sessionTTL  time.Duration
	now         func() time.Time
}

func NewUserService(userRepo models.UserRepo, sessionRepo models.SessionRepo, tokens *helpers.TokenManager, sessionTTL time.Duration) *UserService {
	return &UserService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		tokens:      tokens,
		sessionTTL:  sessionTTL,
		now:         time.Now,
	}
}

// Register creates an organizer or customer account. Admin accounts only come
// from EnsureAdmin.
func (us *UserService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	trim(req.Name)
	trim(req.Email)
	errs := validate(req)
	if errs.Has("email") || req.Email == nil {
		return nil, errs
	}

	email := helpers.NormalizeEmail(*req.Email)
	exists, err := us.userRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		errs.Add("email", msgEmailTaken)
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	hash, err := helpers.HashPassword(*req.Password)
	if err != nil {
		if errors.Is(err, helpers.ErrPasswordTooLong) {
			return nil, models.NewFieldError("password", "Ensure this field has no more than 72 bytes.")
		}
		return nil, err
	}

	user := &models.User{
		Name:         *req.Name,
		Email:        email,
		PasswordHash: hash,
		Role:         models.Role(*req.Role),
		Status:       models.UserStatusActive,
		IsActive:     true,
	}
	if err := us.userRepo.CreateUser(ctx, user); err != nil {
		if models.IsDuplicate(err) {
			return nil, models.NewFieldError("email", msgEmailTaken)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Login checks the credentials, opens a server-side session and returns a
// token naming it.
func (us *UserService) Login(ctx context.Context, req *dto.LoginRequest) (*models.User, string, error) {
	trim(req.Email)
	if err := validate(req).Err(); err != nil {
		return nil, "", err
	}

	user, err := us.userRepo.GetUserByEmail(ctx, helpers.NormalizeEmail(*req.Email))
	if err != nil {
		if models.IsNotFound(err) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !helpers.CheckPassword(user.PasswordHash, *req.Password) || !user.IsActive {
		return nil, "", ErrInvalidCredentials
	}
	if user.Status != models.UserStatusActive {
		return nil, "", ErrAccountSuspended
	}

	now := us.now()
	session := &models.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(us.sessionTTL),
	}
	if err := us.sessionRepo.CreateSession(ctx, session); err != nil {
		return nil, "", err
	}

	token, err := us.tokens.IssueToken(user.ID, session.ID, now, session.ExpiresAt)
	if err != nil {
		_ = us.sessionRepo.DeleteSession(ctx, session.ID)
		return nil, "", err
	}
	return user, token, nil
}

// Logout ends the session named by the token. Unknown or expired tokens are
// ignored.
func (us *UserService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	claims, err := us.tokens.ValidateToken(token)
	if err != nil {
		return nil
	}
	return us.sessionRepo.DeleteSession(ctx, claims.SessionID())
}

// Authenticate resolves a token to the caller. Role and status always come
// from the database.
func (us *UserService) Authenticate(ctx context.Context, token string) (*helpers.Principal, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}
	claims, err := us.tokens.ValidateToken(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, ErrInvalidToken
	}

	session, err := us.sessionRepo.GetSession(ctx, claims.SessionID())
	if err != nil {
		if errors.Is(err, models.ErrSessionNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if session.UserID != userID {
		return nil, ErrInvalidToken
	}

	user, err := us.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if models.IsNotFound(err) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if !user.CanLogin() {
		return nil, ErrAccountSuspended
	}

	return &helpers.Principal{
		UserID:    user.ID,
		Role:      user.Role,
		Email:     user.Email,
		SessionID: session.ID,
	}, nil
}

func (us *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := us.userRepo.GetUserByID(ctx, id)
	if err != nil {
		if models.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// SetStatus suspends or reactivates an account. Suspended users are rejected
// on their next request.
func (us *UserService) SetStatus(ctx context.Context, actor *helpers.Principal, id uint, req *dto.UserStatusRequest) (*models.User, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if err := validate(req).Err(); err != nil {
		return nil, err
	}
	if actor.IsOwner(id) && models.UserStatus(*req.Status) == models.UserStatusSuspended {
		return nil, models.NewFieldError("status", "You cannot suspend your own account.")
	}

	user, err := us.userRepo.UpdateUserStatus(ctx, id, models.UserStatus(*req.Status))
	if err != nil {
		if models.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// DeleteUser removes an account together with everything it owns.
func (us *UserService) DeleteUser(ctx context.Context, actor *helpers.Principal, id uint) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	if err := us.userRepo.DeleteUser(ctx, id); err != nil {
		if models.IsNotFound(err) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// EnsureAdmin creates the bootstrap admin account unless a user with that
// email already exists. It reports whether an account was created.
func (us *UserService) EnsureAdmin(ctx context.Context, name, email, password string) (bool, error) {
	if email == "" || password == "" {
		return false, nil
	}
	email = helpers.NormalizeEmail(email)
	exists, err := us.userRepo.EmailExists(ctx, email)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return false, err
	}
	if name == "" {
		name = "Administrator"
	}
	admin := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		Status:       models.UserStatusActive,
		IsActive:     true,
		IsStaff:      true,
	}
	if err := us.userRepo.CreateUser(ctx, admin); err != nil {
		if models.IsDuplicate(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create admin: %w", err)
	}
	return true, nil
}
