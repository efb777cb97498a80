// package profile writes mail-client profile records into the settings store.
//
// A profile is a fixed template of nodes and attributes under two well-known
// roots: the client's own Profiles tree and the parallel messaging-subsystem
// tree. All literal identifiers below are the constants the client matches at
// profile-load time; they are reproduced exactly, never derived.
package profile

const (
	// ClientSettingsRoot is the client's top-level settings node. The
	// default-profile attribute lives here.
	ClientSettingsRoot = "Software/Microsoft/Office/16.0/Outlook"

	// ProfilesRoot holds one child node per provisioned profile.
	ProfilesRoot = ClientSettingsRoot + "/Profiles"

	// SubsystemProfilesRoot is the messaging-subsystem tree mirroring the
	// profile structure.
	SubsystemProfilesRoot = "Software/Microsoft/Windows NT/CurrentVersion/Windows Messaging Subsystem/Profiles"

	// AccountsContainerID is the fixed identifier of the node that holds
	// mail account entries inside a profile.
	AccountsContainerID = "9375CFF0413111d3B88A00104B2A6676"

	// AccountEntryID numbers the first (and only) account entry.
	AccountEntryID = "00000001"

	// ServiceSectionID is the fixed identifier of the service entry in the
	// subsystem tree.
	ServiceSectionID = "13dbb0c8aa05101a9bb000aa002fc45a"

	// ServerHost is the cloud mailbox endpoint every account points at.
	ServerHost = "outlook.office365.com"

	// ServiceTag names the mail-service handler on the service entry.
	ServiceTag = "MSEMS"

	// DefaultBaseName prefixes generated profile names when no base name is given.
	DefaultBaseName = "M365 Profile"

	nameSeparator = " - "
)

// Attribute names written by the profile template.
const (
	AttrDefaultProfile = "DefaultProfile"

	attrNextAccountID = "NextAccountID"
	attrNextServiceID = "NextServiceID"
	attrAccountName   = "Account Name"
	attrDisplayName   = "Display Name"
	attrEmail         = "Email"
	attrServer        = "Server"
	attrUser          = "User"
	attrServiceUID    = "Service UID"
	attrServiceName   = "Service Name"
)

// ServiceUID is the 16-byte provider identifier the client uses to select the
// connection handler for cloud-mailbox accounts. Must stay byte-exact.
var ServiceUID = [16]byte{
	0x54, 0x94, 0xA1, 0xC0, 0x29, 0x7F, 0x10, 0x1B,
	0xA5, 0x87, 0x08, 0x00, 0x2B, 0x2A, 0x25, 0x17,
}

// Name derives the per-user profile name from a base name and an identity.
// Uniqueness is only as strong as identity uniqueness in the input.
func Name(base, identity string) string {
	return base + nameSeparator + identity
}

// RootPath returns the profile-root node path for a profile name.
func RootPath(name string) string {
	return ProfilesRoot + "/" + name
}

// SubsystemPath returns the subsystem peer node path for a profile name.
func SubsystemPath(name string) string {
	return SubsystemProfilesRoot + "/" + name
}
