package constants

const (
	// Exit codes
	ExitCode_Okay = 0

	ExitCode_IncorrectUsage  = 2
	ExitCode_SettingsInvalid = -10
)
