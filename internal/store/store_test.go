package store

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestMemory_RoundTrip(t *testing.T) {
	s := NewMemory()
	if _, err := s.Get(KeyAuthToken); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get on empty store = %v, want ErrNotFound", err)
	}
	if err := s.Set(KeyAuthToken, "tok"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, err := s.Get(KeyAuthToken)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v != "tok" {
		t.Errorf("Get = %q, want %q", v, "tok")
	}
	if err := s.Delete(KeyAuthToken); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(KeyAuthToken); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Delete = %v, want ErrNotFound", err)
	}
	if err := s.Delete("missing"); err != nil {
		t.Errorf("Delete missing key = %v, want nil", err)
	}
}

func TestFile_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.bin")
	s, err := OpenFile(path, "passphrase")
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if err := s.Set(KeyAuthToken, "tok-abc"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(KeyAuthUser, `{"id":"u1"}`); err != nil {
		t.Fatalf("Set: %v", err)
	}

	reopened, err := OpenFile(path, "passphrase")
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	v, err := reopened.Get(KeyAuthToken)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v != "tok-abc" {
		t.Errorf("Get = %q, want %q", v, "tok-abc")
	}
	u, err := reopened.Get(KeyAuthUser)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if u != `{"id":"u1"}` {
		t.Errorf("Get user = %q", u)
	}
}

func TestFile_WrongPassphraseRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.bin")
	s, err := OpenFile(path, "right")
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if err := s.Set(KeyAuthToken, "tok"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, err := OpenFile(path, "wrong"); !errors.Is(err, ErrBadPassphrase) {
		t.Errorf("OpenFile with wrong passphrase = %v, want ErrBadPassphrase", err)
	}
}

func TestFile_DeleteRewritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.bin")
	s, err := OpenFile(path, "p")
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if err := s.Set(KeyAdminToken, "admin-tok"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Delete(KeyAdminToken); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	reopened, err := OpenFile(path, "p")
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if _, err := reopened.Get(KeyAdminToken); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Delete+reopen = %v, want ErrNotFound", err)
	}
}

func TestSealOpen_RoundTrip(t *testing.T) {
	blob, err := seal("pass", []byte(`{"authToken":"x"}`))
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	plain, err := open("pass", blob)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if string(plain) != `{"authToken":"x"}` {
		t.Errorf("open = %q", plain)
	}
	if _, err := open("other", blob); !errors.Is(err, ErrBadPassphrase) {
		t.Errorf("open with wrong passphrase = %v, want ErrBadPassphrase", err)
	}
	if _, err := open("pass", blob[:10]); err == nil {
		t.Error("open of truncated blob should fail")
	}
}
