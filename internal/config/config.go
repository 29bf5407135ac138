package config // import "github.com/jebrand/jebman/internal/config"

import (
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Load builds the runtime options: defaults, then the optional config
// file, then the library override from the command line. The returned
// struct is handed to the store, the controller and the logger at
// construction time; nothing reads configuration through package state.
func Load(configFile, libraryOverride string) (*Options, error) {
	opts := DefaultOptions()

	if configFile != "" {
		if err := parseFile(configFile, opts); err != nil {
			return nil, err
		}
	}
	if libraryOverride != "" {
		opts.Library = libraryOverride
	}

	library, err := checkLibraryDir(opts.Library)
	if err != nil {
		return nil, errors.Wrap(err, "checking library directory")
	}
	opts.Library = library
	opts.DSN = filepath.Join(opts.Library, defaultDatabaseFile)

	return opts, nil
}

func parseFile(file string, opts *Options) error {
	if _, err := os.Stat(file); err != nil {
		return errors.Wrapf(err, "unable to access config file %s", file)
	}

	viper.SetConfigFile(file)
	if err := viper.ReadInConfig(); err != nil {
		return err
	}
	return viper.Unmarshal(opts)
}

func checkLibraryDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		absDir, err := filepath.Abs(dataDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return "", errors.Wrapf(err, "unable to access library folder %s", dataDir)
		}
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			if errors.Is(err, os.ErrPermission) && dataDir == defaultLibrary {
				// Permission denied on the system default, fall back to the
				// user's home directory.
				return homeLibraryDir()
			}
			return "", errors.Wrapf(err, "unable to create library folder %s", dataDir)
		}
	}
	return dataDir, nil
}

func homeLibraryDir() (string, error) {
	currentUser, err := user.Current()
	if err != nil {
		return "", errors.Wrap(err, "unable to get current user")
	}
	if currentUser.HomeDir == "" {
		return "", errors.New("unable to get home directory")
	}

	homeLibrary := filepath.Join(currentUser.HomeDir, ".jebman")
	if _, err := os.Stat(homeLibrary); err == nil {
		return homeLibrary, nil
	}
	if err := os.MkdirAll(homeLibrary, 0755); err != nil {
		return "", errors.Wrapf(err, "unable to create library folder %s", homeLibrary)
	}
	return homeLibrary, nil
}
