// Package settings reads and validates the telephone settings file.
package settings

import (
	"encoding/json"
	"os"

	"github.com/Ephraimoffordile/Task-8-LearnAble/internal/constants"
	"github.com/Ephraimoffordile/Task-8-LearnAble/internal/types"
	"github.com/go-kit/kit/log"
	"github.com/pkg/errors"
)

var (
	errBlobOutputMissing = errors.New("an observer uses the 'blob' sink but 'blobOutput' is not specified")
)

// Default is used when no settings file is given: both observer variants
// render to the surface of the running command.
func Default() types.TelephoneSettings {
	return types.TelephoneSettings{
		Observers: []types.ObserverConfig{
			{Kind: types.ObserverKindOperation, Sink: types.SinkSurface},
			{Kind: types.ObserverKindDialing, Sink: types.SinkSurface},
		},
		ListenAddress: constants.DefaultListenAddress,
	}
}

// Load reads the settings file named by the TELEPHONE_SETTINGS environment
// variable, or returns the defaults when it is unset.
func Load(ctx *log.Context) (types.TelephoneSettings, error) {
	path := os.Getenv(constants.SettingsPathEnvName)
	if path == "" {
		ctx.Log("event", "no settings file given, using defaults")
		return Default(), nil
	}
	return ReadFile(ctx, path)
}

func ReadFile(ctx *log.Context, path string) (s types.TelephoneSettings, _ error) {
	ctx.Log("event", "reading settings from "+path)
	b, err := os.ReadFile(path)
	if err != nil {
		return s, errors.Wrapf(err, "failed to read settings file %s", path)
	}

	s, err = Parse(b)
	if err != nil {
		return s, errors.Wrapf(err, "settings file %s", path)
	}
	ctx.Log("event", "validated settings")
	return s, nil
}

// Parse validates b against the settings schema and logically, then fills in
// defaults for what it leaves out.
func Parse(b []byte) (s types.TelephoneSettings, _ error) {
	if err := validateSettingsJSON(string(b)); err != nil {
		return s, err
	}
	if len(b) > 0 {
		if err := json.Unmarshal(b, &s); err != nil {
			return s, errors.Wrap(err, "failed to parse settings json")
		}
	}
	if err := validate(s); err != nil {
		return s, err
	}

	d := Default()
	if s.Observers == nil {
		s.Observers = d.Observers
	}
	if s.ListenAddress == "" {
		s.ListenAddress = d.ListenAddress
	}
	return s, nil
}

func validate(s types.TelephoneSettings) error {
	for _, o := range s.Observers {
		if o.Sink == types.SinkBlob && s.BlobOutput == nil {
			return errBlobOutputMissing
		}
	}
	return nil
}
