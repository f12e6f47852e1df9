package session_test

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"storefront_client/internal/domain"
	"storefront_client/internal/session"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func openStore(t *testing.T, path string) *session.Store {
	t.Helper()
	store, err := session.OpenStore(path, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	path := t.TempDir() + "/session.db"
	store := openStore(t, path)

	user := &domain.User{ID: 7, Username: "ana", Email: "ana@example.com", Role: domain.RoleCustomer}
	if err := store.Save(user, "tok-a", "tok-r"); err != nil {
		t.Fatal(err)
	}

	// Reopen to prove it survives the process, not just the handle.
	store2 := openStore(t, path)
	sess := session.New()
	if err := store2.Load(sess); err != nil {
		t.Fatal(err)
	}
	if sess.Token() != "tok-a" || sess.RefreshToken() != "tok-r" {
		t.Fatalf("tokens lost: %q %q", sess.Token(), sess.RefreshToken())
	}
	got := sess.User()
	if got == nil || got.ID != 7 || got.Role != domain.RoleCustomer {
		t.Fatalf("user lost: %+v", got)
	}
}

func TestLoadEmptyStoreRestoresNothing(t *testing.T) {
	store := openStore(t, ":memory:")
	sess := session.New()
	if err := store.Load(sess); err != nil {
		t.Fatal(err)
	}
	if sess.SignedIn() {
		t.Fatal("empty store must not sign anyone in")
	}
}

func TestCorruptUserDataClearsWholeSession(t *testing.T) {
	path := t.TempDir() + "/session.db"
	store := openStore(t, path)
	if err := store.Save(&domain.User{ID: 7}, "tok-a", "tok-r"); err != nil {
		t.Fatal(err)
	}
	store.Close()

	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`UPDATE session SET value = '{broken' WHERE key = 'user_data'`); err != nil {
		t.Fatal(err)
	}
	db.Close()

	store2 := openStore(t, path)
	sess := session.New()
	if err := store2.Load(sess); err != nil {
		t.Fatal(err)
	}
	if sess.SignedIn() {
		t.Fatal("corrupt session must restore as signed out")
	}

	// The tokens must be gone too, not just the user.
	sess2 := session.New()
	if err := store2.Load(sess2); err != nil {
		t.Fatal(err)
	}
	if sess2.Token() != "" {
		t.Fatal("corrupt session left a token behind")
	}
}

func TestClearRemovesEverything(t *testing.T) {
	store := openStore(t, ":memory:")
	if err := store.Save(&domain.User{ID: 7}, "tok-a", "tok-r"); err != nil {
		t.Fatal(err)
	}
	if err := store.Clear(); err != nil {
		t.Fatal(err)
	}

	sess := session.New()
	if err := store.Load(sess); err != nil {
		t.Fatal(err)
	}
	if sess.SignedIn() || sess.Token() != "" {
		t.Fatal("clear left session state behind")
	}
}
