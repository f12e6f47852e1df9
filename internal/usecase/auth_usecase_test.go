package usecase_test

import (
	"context"
	"errors"
	"testing"

	"storefront_client/internal/clients"
	"storefront_client/internal/domain"
	"storefront_client/internal/session"
	"storefront_client/internal/usecase"
)

type fakeAuthAPI struct {
	calls       int
	loginResult *clients.LoginResult
	loginErr    error
	registered  *domain.Registration
}

func (f *fakeAuthAPI) Login(ctx context.Context, email, password string) (*clients.LoginResult, error) {
	f.calls++
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginResult, nil
}

func (f *fakeAuthAPI) Register(ctx context.Context, reg domain.Registration) (*domain.User, error) {
	f.calls++
	f.registered = &reg
	return &domain.User{ID: 42, Username: reg.Username, Email: reg.Email, Role: reg.Role}, nil
}

var _ clients.AuthAPI = (*fakeAuthAPI)(nil)

func memStore(t *testing.T) *session.Store {
	t.Helper()
	store, err := session.OpenStore(":memory:", quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func validRegistration() domain.Registration {
	return domain.Registration{
		Username:             "ana",
		Email:                "ana@example.com",
		Password:             "hunter2hunter2",
		PasswordConfirmation: "hunter2hunter2",
		FirstName:            "Ana",
		LastName:             "Silva",
		PhoneNumber:          "+31612345678",
		Role:                 domain.RoleCustomer,
	}
}

func TestRegisterPasswordMismatchFailsBeforeAnyNetworkCall(t *testing.T) {
	api := &fakeAuthAPI{}
	uc := usecase.NewAuthUseCase(api, session.New(), memStore(t), quietLogger())

	reg := validRegistration()
	reg.PasswordConfirmation = "something else"

	_, err := uc.Register(context.Background(), reg)
	var validationErr *domain.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	if validationErr.Message != "Passwords do not match" {
		t.Fatalf("want 'Passwords do not match', got %q", validationErr.Message)
	}
	if api.calls != 0 {
		t.Fatalf("mismatched passwords must not reach the server, saw %d calls", api.calls)
	}
}

func TestRegisterRejectsBadPhoneClientSide(t *testing.T) {
	api := &fakeAuthAPI{}
	uc := usecase.NewAuthUseCase(api, session.New(), memStore(t), quietLogger())

	reg := validRegistration()
	reg.PhoneNumber = "not-a-number"

	_, err := uc.Register(context.Background(), reg)
	var validationErr *domain.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	if api.calls != 0 {
		t.Fatal("invalid phone must not reach the server")
	}
}

func TestRegisterDefaultsRoleToCustomer(t *testing.T) {
	api := &fakeAuthAPI{}
	uc := usecase.NewAuthUseCase(api, session.New(), memStore(t), quietLogger())

	reg := validRegistration()
	reg.Role = ""

	if _, err := uc.Register(context.Background(), reg); err != nil {
		t.Fatal(err)
	}
	if api.registered.Role != domain.RoleCustomer {
		t.Fatalf("want customer default, got %q", api.registered.Role)
	}
}

func TestLoginFillsSessionAndPersistsIt(t *testing.T) {
	api := &fakeAuthAPI{loginResult: &clients.LoginResult{
		AccessToken:  "tok-a",
		RefreshToken: "tok-r",
		User:         domain.User{ID: 7, Username: "ana", Role: domain.RoleCustomer},
	}}
	sess := session.New()
	store := memStore(t)
	uc := usecase.NewAuthUseCase(api, sess, store, quietLogger())

	user, err := uc.Login(context.Background(), "ana@example.com", "pw")
	if err != nil {
		t.Fatal(err)
	}
	if user.ID != 7 || sess.Token() != "tok-a" || !sess.SignedIn() {
		t.Fatalf("session not filled: user=%+v token=%q", user, sess.Token())
	}

	// A fresh session restores from the same store.
	restored := session.New()
	if err := store.Load(restored); err != nil {
		t.Fatal(err)
	}
	if restored.Token() != "tok-a" || restored.User() == nil || restored.User().ID != 7 {
		t.Fatalf("session not persisted: token=%q user=%+v", restored.Token(), restored.User())
	}
}

func TestLogoutWipesSessionAndStore(t *testing.T) {
	api := &fakeAuthAPI{loginResult: &clients.LoginResult{
		AccessToken: "tok-a",
		User:        domain.User{ID: 7, Username: "ana", Role: domain.RoleCustomer},
	}}
	sess := session.New()
	store := memStore(t)
	uc := usecase.NewAuthUseCase(api, sess, store, quietLogger())

	if _, err := uc.Login(context.Background(), "ana@example.com", "pw"); err != nil {
		t.Fatal(err)
	}
	if err := uc.Logout(); err != nil {
		t.Fatal(err)
	}
	if sess.SignedIn() {
		t.Fatal("session still signed in after logout")
	}

	restored := session.New()
	if err := store.Load(restored); err != nil {
		t.Fatal(err)
	}
	if restored.SignedIn() {
		t.Fatal("store still holds a session after logout")
	}
}

func TestLoginErrorDoesNotTouchSession(t *testing.T) {
	api := &fakeAuthAPI{loginErr: &domain.AuthError{Reason: "bad credentials"}}
	sess := session.New()
	uc := usecase.NewAuthUseCase(api, sess, memStore(t), quietLogger())

	_, err := uc.Login(context.Background(), "ana@example.com", "wrong")
	var authErr *domain.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("want AuthError, got %v", err)
	}
	if sess.SignedIn() {
		t.Fatal("failed login must not fill the session")
	}
}
