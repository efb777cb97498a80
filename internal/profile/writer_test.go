package profile

import (
	"errors"
	"testing"

	"github.com/tbarron/m365prof/internal/shared"
	"github.com/tbarron/m365prof/internal/store"
	tu "github.com/tbarron/m365prof/internal/testing"
)

func newTestWriter(s store.Store) *Writer {
	return NewWriter(s, shared.NewLogger(nil))
}

func mustGetAttr(t *testing.T, s store.Store, path, name string) store.Value {
	t.Helper()
	v, err := s.GetAttr(path, name)
	if err != nil {
		t.Fatalf("failed to get attribute %s on %s: %v", name, path, err)
	}
	return v
}

func assertNode(t *testing.T, s store.Store, path string) {
	t.Helper()
	exists, err := s.Exists(path)
	if err != nil {
		t.Fatalf("failed to check existence of %s: %v", path, err)
	}
	if !exists {
		t.Errorf("expected node %s to exist", path)
	}
}

func TestWriter(t *testing.T) {
	const (
		identity    = "alice@example.com"
		profileName = "M365 Profile - alice@example.com"
	)

	t.Run("Create on fresh store", func(t *testing.T) {
		s := store.NewMemoryStore()
		w := newTestWriter(s)

		outcome := w.Create(profileName, identity, false)
		if outcome.Status != Created {
			t.Fatalf("expected Created, got %s (%v)", outcome.Status, outcome.Err)
		}

		root := RootPath(profileName)
		peer := SubsystemPath(profileName)
		account := root + "/" + AccountsContainerID + "/" + AccountEntryID
		service := peer + "/" + ServiceSectionID

		assertNode(t, s, root)
		assertNode(t, s, peer)
		assertNode(t, s, root+"/"+AccountsContainerID)
		assertNode(t, s, account)
		assertNode(t, s, service)

		if v := mustGetAttr(t, s, root, "NextAccountID"); !v.Equal(store.DWordValue(1)) {
			t.Errorf("NextAccountID = %+v, want dword 1", v)
		}
		if v := mustGetAttr(t, s, root, "NextServiceID"); !v.Equal(store.DWordValue(2)) {
			t.Errorf("NextServiceID = %+v, want dword 2", v)
		}

		for _, name := range []string{"Account Name", "Display Name", "Email", "User"} {
			if v := mustGetAttr(t, s, account, name); !v.Equal(store.StringValue(identity)) {
				t.Errorf("%s = %+v, want %q", name, v, identity)
			}
		}
		if v := mustGetAttr(t, s, account, "Server"); !v.Equal(store.StringValue("outlook.office365.com")) {
			t.Errorf("Server = %+v, want fixed endpoint host", v)
		}

		uid := mustGetAttr(t, s, account, "Service UID")
		want := []byte{0x54, 0x94, 0xA1, 0xC0, 0x29, 0x7F, 0x10, 0x1B, 0xA5, 0x87, 0x08, 0x00, 0x2B, 0x2A, 0x25, 0x17}
		if !uid.Equal(store.BinaryValue(want)) {
			t.Errorf("Service UID = % X, want % X", uid.Bytes, want)
		}

		if v := mustGetAttr(t, s, peer, "NextServiceID"); !v.Equal(store.DWordValue(2)) {
			t.Errorf("subsystem NextServiceID = %+v, want dword 2", v)
		}
		if v := mustGetAttr(t, s, service, "Service Name"); !v.Equal(store.StringValue("MSEMS")) {
			t.Errorf("Service Name = %+v, want MSEMS", v)
		}

		// Not requested as default, so no default attribute is written.
		if _, err := s.GetAttr(ClientSettingsRoot, AttrDefaultProfile); err == nil {
			t.Error("default profile attribute should not be set")
		}
	})

	t.Run("Create against sqlite store", func(t *testing.T) {
		db, err := shared.NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()
		if err := shared.RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}
		s, err := store.NewSQLiteStore(db)
		if err != nil {
			t.Fatalf("failed to create store: %v", err)
		}

		outcome := newTestWriter(s).Create(profileName, identity, true)
		if outcome.Status != Created {
			t.Fatalf("expected Created, got %s (%v)", outcome.Status, outcome.Err)
		}

		uid := mustGetAttr(t, s, RootPath(profileName)+"/"+AccountsContainerID+"/"+AccountEntryID, "Service UID")
		if !uid.Equal(store.BinaryValue(ServiceUID[:])) {
			t.Errorf("Service UID = % X, want % X", uid.Bytes, ServiceUID[:])
		}
	})

	t.Run("Create twice skips and leaves store unchanged", func(t *testing.T) {
		s := store.NewMemoryStore()
		w := newTestWriter(s)

		if outcome := w.Create(profileName, identity, false); outcome.Status != Created {
			t.Fatalf("first create: expected Created, got %s", outcome.Status)
		}

		account := RootPath(profileName) + "/" + AccountsContainerID + "/" + AccountEntryID
		before, err := s.Attrs(account)
		if err != nil {
			t.Fatalf("failed to snapshot attributes: %v", err)
		}

		outcome := w.Create(profileName, "other@example.com", false)
		if outcome.Status != Skipped {
			t.Fatalf("second create: expected Skipped, got %s", outcome.Status)
		}
		if !errors.Is(outcome.Err, shared.ErrProfileExists) {
			t.Errorf("expected ErrProfileExists, got %v", outcome.Err)
		}

		after, err := s.Attrs(account)
		if err != nil {
			t.Fatalf("failed to re-read attributes: %v", err)
		}
		if len(after) != len(before) {
			t.Fatalf("store mutated on skip: %d attrs vs %d", len(after), len(before))
		}
		for name, v := range before {
			if !after[name].Equal(v) {
				t.Errorf("attribute %s changed on skip", name)
			}
		}
	})

	t.Run("makeDefault sets default profile attribute", func(t *testing.T) {
		s := store.NewMemoryStore()
		w := newTestWriter(s)

		if outcome := w.Create(profileName, identity, true); outcome.Status != Created {
			t.Fatalf("expected Created, got %s", outcome.Status)
		}

		v := mustGetAttr(t, s, ClientSettingsRoot, AttrDefaultProfile)
		if !v.Equal(store.StringValue(profileName)) {
			t.Errorf("default profile = %+v, want %q", v, profileName)
		}
	})

	t.Run("write failure aborts remaining steps without rollback", func(t *testing.T) {
		inner := store.NewMemoryStore()
		// Enough budget for the profile root and subsystem peer, then fail.
		s := tu.NewLimitedStore(inner, 2)
		w := newTestWriter(s)

		outcome := w.Create(profileName, identity, false)
		if outcome.Status != Failed {
			t.Fatalf("expected Failed, got %s", outcome.Status)
		}
		if !errors.Is(outcome.Err, shared.ErrStoreWrite) {
			t.Errorf("expected ErrStoreWrite, got %v", outcome.Err)
		}

		// The partial record stays behind: the root node exists with no
		// attributes, and a rerun short-circuits to Skipped.
		assertNode(t, inner, RootPath(profileName))
		attrs, err := inner.Attrs(RootPath(profileName))
		if err != nil {
			t.Fatalf("failed to list attributes: %v", err)
		}
		if len(attrs) != 0 {
			t.Errorf("expected no attributes on partial root, got %d", len(attrs))
		}

		rerun := newTestWriter(inner).Create(profileName, identity, false)
		if rerun.Status != Skipped {
			t.Errorf("rerun after partial failure: expected Skipped, got %s", rerun.Status)
		}
	})

	t.Run("empty arguments fail without writes", func(t *testing.T) {
		s := store.NewMemoryStore()
		w := newTestWriter(s)

		for _, tc := range []struct{ name, identity string }{
			{"", identity},
			{profileName, ""},
		} {
			outcome := w.Create(tc.name, tc.identity, false)
			if outcome.Status != Failed {
				t.Errorf("expected Failed for (%q, %q), got %s", tc.name, tc.identity, outcome.Status)
			}
		}

		exists, err := s.Exists(ProfilesRoot)
		if err != nil {
			t.Fatalf("failed to check existence: %v", err)
		}
		if exists {
			t.Error("store should be untouched after argument validation failures")
		}
	})
}

func TestName(t *testing.T) {
	got := Name("M365 Profile", "bob@example.com")
	want := "M365 Profile - bob@example.com"
	if got != want {
		t.Errorf("Name() = %q, want %q", got, want)
	}
}
