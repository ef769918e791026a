package types

// Observer kinds accepted in settings.
const (
	ObserverKindOperation = "operation"
	ObserverKindDialing   = "dialing"
)

// Sink names accepted in settings.
const (
	// SinkSurface is the output of whichever front end runs: the terminal for
	// the console, the page output for the HTTP server, the log for the demo.
	SinkSurface = "surface"
	SinkLog     = "log"
	SinkBlob    = "blob"
)

// TelephoneSettings is the parsed settings file.
type TelephoneSettings struct {
	Numbers       []PhoneNumber    `json:"numbers"`
	Observers     []ObserverConfig `json:"observers"`
	ListenAddress string           `json:"listenAddress"`
	LogFile       *LogFileConfig   `json:"logFile,omitempty"`
	BlobOutput    *BlobOutput      `json:"blobOutput,omitempty"`
}

// ObserverConfig selects an observer variant and the sink it renders to.
type ObserverConfig struct {
	Kind string `json:"kind"`
	Sink string `json:"sink"`
}

// LogFileConfig describes a rotating log file used instead of stdout.
type LogFileConfig struct {
	Path       string `json:"path"`
	MaxSizeMB  int    `json:"maxSizeMB"`
	MaxBackups int    `json:"maxBackups"`
	MaxAgeDays int    `json:"maxAgeDays"`
}

// BlobOutput is the append blob that observers with the "blob" sink write to.
// When SASToken is empty the managed identity of the machine is used.
type BlobOutput struct {
	URI                     string `json:"uri"`
	SASToken                string `json:"sasToken"`
	ManagedIdentityClientID string `json:"managedIdentityClientId"`
}
