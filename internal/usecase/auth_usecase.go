package usecase

import (
	"context"

	"github.com/sirupsen/logrus"

	"storefront_client/internal/clients"
	"storefront_client/internal/domain"
	"storefront_client/internal/session"
	"storefront_client/internal/validate"
)

// AuthUseCase drives the session lifecycle: restore at startup, fill at
// login, wipe at logout. Registration preconditions are checked before any
// request leaves the process.
type AuthUseCase interface {
	Login(ctx context.Context, email, password string) (*domain.User, error)
	Register(ctx context.Context, reg domain.Registration) (*domain.User, error)
	Logout() error
	Restore() error
	CurrentUser() *domain.User
}

type authUseCase struct {
	api     clients.AuthAPI
	session *session.Session
	store   *session.Store
	log     *logrus.Logger
}

func NewAuthUseCase(api clients.AuthAPI, sess *session.Session, store *session.Store, logger *logrus.Logger) AuthUseCase {
	return &authUseCase{
		api:     api,
		session: sess,
		store:   store,
		log:     logger,
	}
}

func (uc *authUseCase) Login(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, &domain.ValidationError{Message: "email and password are required"}
	}

	result, err := uc.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	user := result.User
	uc.session.Set(&user, result.AccessToken, result.RefreshToken)
	if err := uc.store.Save(&user, result.AccessToken, result.RefreshToken); err != nil {
		uc.log.Warnf("Auth: session persisted state could not be written: %v", err)
	}
	uc.log.Infof("Auth: user %s logged in (role %s)", user.Username, user.Role)
	return &user, nil
}

func (uc *authUseCase) Register(ctx context.Context, reg domain.Registration) (*domain.User, error) {
	if reg.Password != reg.PasswordConfirmation {
		return nil, &domain.ValidationError{Message: "Passwords do not match"}
	}
	if err := validate.Check(reg); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}
	if err := validate.CheckPhone(reg.PhoneNumber); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}
	if reg.Role == "" {
		reg.Role = domain.RoleCustomer
	}
	if !domain.IsValidRole(reg.Role) {
		return nil, &domain.ValidationError{Message: "role must be customer or seller"}
	}

	user, err := uc.api.Register(ctx, reg)
	if err != nil {
		return nil, err
	}
	uc.log.Infof("Auth: registered user %s (role %s)", user.Username, user.Role)
	return user, nil
}

// Logout wipes the in-memory session and the persisted copy together.
func (uc *authUseCase) Logout() error {
	user := uc.session.User()
	uc.session.Clear()
	if err := uc.store.Clear(); err != nil {
		return err
	}
	if user != nil {
		uc.log.Infof("Auth: user %s logged out", user.Username)
	}
	return nil
}

// Restore loads a previously persisted session, if any. An unreadable stored
// user clears everything and the caller proceeds signed out.
func (uc *authUseCase) Restore() error {
	return uc.store.Load(uc.session)
}

func (uc *authUseCase) CurrentUser() *domain.User {
	return uc.session.User()
}
