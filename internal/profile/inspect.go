package profile

import (
	"fmt"

	"github.com/tbarron/m365prof/internal/shared"
	"github.com/tbarron/m365prof/internal/store"
)

// Info summarizes a provisioned profile for listings.
type Info struct {
	Name     string `json:"name"`
	Identity string `json:"identity"`
	Default  bool   `json:"default"`
}

// Details carries the full attribute view of a single profile.
type Details struct {
	Info
	Account map[string]store.Value
	Service map[string]store.Value
}

// AccountEntryPath returns the node path of the account entry for a profile name.
func AccountEntryPath(name string) string {
	return RootPath(name) + "/" + AccountsContainerID + "/" + AccountEntryID
}

// ServiceSectionPath returns the node path of the service entry for a profile name.
func ServiceSectionPath(name string) string {
	return SubsystemPath(name) + "/" + ServiceSectionID
}

// DefaultName returns the profile currently marked as default, or "" when no
// default is set.
func DefaultName(s store.Store) string {
	v, err := s.GetAttr(ClientSettingsRoot, AttrDefaultProfile)
	if err != nil {
		return ""
	}
	return v.Str
}

// List returns every provisioned profile under the profiles root, sorted by
// name. A store that has never been written to yields an empty slice.
func List(s store.Store) ([]Info, error) {
	ok, err := s.Exists(ProfilesRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to check profiles root: %w", err)
	}
	if !ok {
		return nil, nil
	}

	names, err := s.Children(ProfilesRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	def := DefaultName(s)
	infos := make([]Info, 0, len(names))
	for _, name := range names {
		infos = append(infos, Info{
			Name:     name,
			Identity: identityOf(s, name),
			Default:  name == def,
		})
	}
	return infos, nil
}

// identityOf reads the mailbox identity off the account entry. Profiles
// created by other tooling may not carry one.
func identityOf(s store.Store, name string) string {
	v, err := s.GetAttr(AccountEntryPath(name), attrEmail)
	if err != nil {
		return ""
	}
	return v.Str
}

// Inspect returns the account and service attributes of a named profile.
func Inspect(s store.Store, name string) (*Details, error) {
	ok, err := s.Exists(RootPath(name))
	if err != nil {
		return nil, fmt.Errorf("failed to check profile %s: %w", name, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", shared.ErrProfileNotFound, name)
	}

	d := &Details{Info: Info{
		Name:     name,
		Identity: identityOf(s, name),
		Default:  name == DefaultName(s),
	}}

	if ok, _ := s.Exists(AccountEntryPath(name)); ok {
		if d.Account, err = s.Attrs(AccountEntryPath(name)); err != nil {
			return nil, fmt.Errorf("failed to read account attributes: %w", err)
		}
	}
	if ok, _ := s.Exists(ServiceSectionPath(name)); ok {
		if d.Service, err = s.Attrs(ServiceSectionPath(name)); err != nil {
			return nil, fmt.Errorf("failed to read service attributes: %w", err)
		}
	}
	return d, nil
}

// Remove deletes a profile from both trees. When the removed profile was the
// default, the default marker is cleared rather than reassigned.
func Remove(s store.Store, name string) error {
	ok, err := s.Exists(RootPath(name))
	if err != nil {
		return fmt.Errorf("failed to check profile %s: %w", name, err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", shared.ErrProfileNotFound, name)
	}

	wasDefault := name == DefaultName(s)

	if err := s.DeleteTree(RootPath(name)); err != nil {
		return fmt.Errorf("%w: delete profile root: %v", shared.ErrStoreWrite, err)
	}
	// A failed run can leave the subsystem peer missing; tolerate that here.
	if ok, _ := s.Exists(SubsystemPath(name)); ok {
		if err := s.DeleteTree(SubsystemPath(name)); err != nil {
			return fmt.Errorf("%w: delete subsystem entry: %v", shared.ErrStoreWrite, err)
		}
	}
	if wasDefault {
		if err := s.SetAttr(ClientSettingsRoot, AttrDefaultProfile, store.StringValue("")); err != nil {
			return fmt.Errorf("%w: clear default profile: %v", shared.ErrStoreWrite, err)
		}
	}
	return nil
}
