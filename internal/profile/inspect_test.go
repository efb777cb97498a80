package profile

import (
	"errors"
	"testing"

	"github.com/tbarron/m365prof/internal/shared"
	"github.com/tbarron/m365prof/internal/store"
)

func seedProfiles(t *testing.T) store.Store {
	t.Helper()
	s := store.NewMemoryStore()
	w := NewWriter(s, nil)
	if out := w.Create(Name(DefaultBaseName, "alice@contoso.com"), "alice@contoso.com", true); out.Status != Created {
		t.Fatalf("seed alice: %v", out.Err)
	}
	if out := w.Create(Name(DefaultBaseName, "bob@contoso.com"), "bob@contoso.com", false); out.Status != Created {
		t.Fatalf("seed bob: %v", out.Err)
	}
	return s
}

func TestList(t *testing.T) {
	t.Run("returns every profile with identity and default flag", func(t *testing.T) {
		s := seedProfiles(t)

		infos, err := List(s)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(infos) != 2 {
			t.Fatalf("expected 2 profiles, got %d", len(infos))
		}

		alice := infos[0]
		if alice.Name != "M365 Profile - alice@contoso.com" {
			t.Errorf("unexpected first profile %q", alice.Name)
		}
		if alice.Identity != "alice@contoso.com" {
			t.Errorf("expected identity alice@contoso.com, got %q", alice.Identity)
		}
		if !alice.Default {
			t.Error("expected first profile to be default")
		}
		if infos[1].Default {
			t.Error("expected second profile not to be default")
		}
	})

	t.Run("empty store yields no profiles", func(t *testing.T) {
		infos, err := List(store.NewMemoryStore())
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(infos) != 0 {
			t.Errorf("expected no profiles, got %d", len(infos))
		}
	})
}

func TestInspect(t *testing.T) {
	t.Run("returns account and service attributes", func(t *testing.T) {
		s := seedProfiles(t)

		d, err := Inspect(s, "M365 Profile - bob@contoso.com")
		if err != nil {
			t.Fatalf("Inspect failed: %v", err)
		}
		if d.Identity != "bob@contoso.com" {
			t.Errorf("expected identity bob@contoso.com, got %q", d.Identity)
		}
		if got := d.Account["Server"]; got.Str != ServerHost {
			t.Errorf("expected server %s, got %q", ServerHost, got.Str)
		}
		if got := d.Service["Service Name"]; got.Str != ServiceTag {
			t.Errorf("expected service name %s, got %q", ServiceTag, got.Str)
		}
	})

	t.Run("unknown profile returns ErrProfileNotFound", func(t *testing.T) {
		s := seedProfiles(t)
		if _, err := Inspect(s, "no such profile"); !errors.Is(err, shared.ErrProfileNotFound) {
			t.Errorf("expected ErrProfileNotFound, got %v", err)
		}
	})
}

func TestRemove(t *testing.T) {
	t.Run("deletes both trees", func(t *testing.T) {
		s := seedProfiles(t)
		name := "M365 Profile - bob@contoso.com"

		if err := Remove(s, name); err != nil {
			t.Fatalf("Remove failed: %v", err)
		}
		if ok, _ := s.Exists(RootPath(name)); ok {
			t.Error("profile root still exists")
		}
		if ok, _ := s.Exists(SubsystemPath(name)); ok {
			t.Error("subsystem entry still exists")
		}

		infos, err := List(s)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(infos) != 1 {
			t.Errorf("expected 1 remaining profile, got %d", len(infos))
		}
	})

	t.Run("clears default marker when removing the default profile", func(t *testing.T) {
		s := seedProfiles(t)

		if err := Remove(s, "M365 Profile - alice@contoso.com"); err != nil {
			t.Fatalf("Remove failed: %v", err)
		}
		if def := DefaultName(s); def != "" {
			t.Errorf("expected default cleared, got %q", def)
		}
	})

	t.Run("unknown profile returns ErrProfileNotFound", func(t *testing.T) {
		s := seedProfiles(t)
		if err := Remove(s, "no such profile"); !errors.Is(err, shared.ErrProfileNotFound) {
			t.Errorf("expected ErrProfileNotFound, got %v", err)
		}
	})
}
