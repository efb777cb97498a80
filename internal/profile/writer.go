package profile

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/tbarron/m365prof/internal/shared"
	"github.com/tbarron/m365prof/internal/store"
)

// Writer provisions one profile at a time into a settings store.
//
// The write sequence for a profile is not transactional: a failed step aborts
// the remaining ones and nothing already written is rolled back. A rerun
// against the same name short-circuits to Skipped on the existence check, even
// when the prior attempt left a partial record. `profiles remove` is the
// manual cleanup path for that case.
type Writer struct {
	store  store.Store
	logger *log.Logger
}

// NewWriter creates a Writer over the given store.
func NewWriter(s store.Store, logger *log.Logger) *Writer {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Writer{store: s, logger: logger}
}

type writeStep struct {
	desc string
	fn   func() error
}

// Create provisions the profile template for one identity.
//
// The existence check on the profile-root node is the sole idempotency guard;
// it is name-based, not content-based. When makeDefault is set the profile is
// additionally recorded as the client's default.
func (w *Writer) Create(profileName, identity string, makeDefault bool) Outcome {
	if profileName == "" {
		return failedOut(fmt.Errorf("%w: profile name is empty", shared.ErrInvalidArgument))
	}
	if identity == "" {
		return failedOut(fmt.Errorf("%w: identity is empty", shared.ErrInvalidArgument))
	}

	root := RootPath(profileName)
	peer := SubsystemPath(profileName)
	account := root + "/" + AccountsContainerID + "/" + AccountEntryID
	service := peer + "/" + ServiceSectionID

	exists, err := w.store.Exists(root)
	if err != nil {
		return failedOut(fmt.Errorf("%w: existence check: %v", shared.ErrStoreWrite, err))
	}
	if exists {
		w.logger.Warn("profile already exists, skipping", "profile", profileName)
		return skipped(fmt.Errorf("%w: %s", shared.ErrProfileExists, profileName))
	}

	set := func(path, name string, v store.Value) func() error {
		return func() error { return w.store.SetAttr(path, name, v) }
	}
	create := func(path string) func() error {
		return func() error { return w.store.CreateNode(path) }
	}

	steps := []writeStep{
		{"create profile root", create(root)},
		{"create subsystem peer", create(peer)},
		{"seed next account id", set(root, attrNextAccountID, store.DWordValue(1))},
		{"seed next service id", set(root, attrNextServiceID, store.DWordValue(2))},
		{"create account container", create(root + "/" + AccountsContainerID)},
		{"create account entry", create(account)},
		{"set account name", set(account, attrAccountName, store.StringValue(identity))},
		{"set display name", set(account, attrDisplayName, store.StringValue(identity))},
		{"set email", set(account, attrEmail, store.StringValue(identity))},
		{"set server", set(account, attrServer, store.StringValue(ServerHost))},
		{"set user", set(account, attrUser, store.StringValue(identity))},
		{"set provider uid", set(account, attrServiceUID, store.BinaryValue(ServiceUID[:]))},
		{"seed subsystem service counter", set(peer, attrNextServiceID, store.DWordValue(2))},
		{"create service section", create(service)},
		{"set service name", set(service, attrServiceName, store.StringValue(ServiceTag))},
	}
	if makeDefault {
		// ClientSettingsRoot is an ancestor of the profile root, so the
		// first step already guarantees it exists.
		steps = append(steps, writeStep{
			"set default profile",
			set(ClientSettingsRoot, AttrDefaultProfile, store.StringValue(profileName)),
		})
	}

	for _, step := range steps {
		if err := step.fn(); err != nil {
			w.logger.Error("profile write failed", "profile", profileName, "step", step.desc, "error", err)
			return failedOut(fmt.Errorf("%w: %s: %v", shared.ErrStoreWrite, step.desc, err))
		}
	}

	w.logger.Info("profile created", "profile", profileName, "identity", identity, "default", makeDefault)
	return created()
}
