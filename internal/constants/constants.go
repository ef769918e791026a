package constants

const (
	// SettingsPathEnvName names the environment variable holding the path of
	// the settings file. Defaults apply when it is unset.
	SettingsPathEnvName = "TELEPHONE_SETTINGS"

	// DefaultListenAddress is used by serve when settings do not name one.
	DefaultListenAddress = ":8080"

	// Lines written by the telephone itself.
	DialingMessageFormat  = "Dialing %s..."
	NotFoundMessageFormat = "Phone number %s not found."

	// Lines written by the observer variants.
	OperationLogFormat = "Phone number dialed: %s"
	DialingLogFormat   = "Now Dialing %s"
)
