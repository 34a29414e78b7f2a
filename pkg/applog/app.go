package applog

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// DebuggableEnv is read by LocalApp to decide whether the app is debuggable.
const DebuggableEnv = "APPLOG_DEBUGGABLE"

// AppContext is the application the logger works for: where its private
// files live and its package metadata.
type AppContext interface {
	// FilesDir is the app-private storage directory. Empty means no storage.
	FilesDir() string
	// PackageName identifies the app.
	PackageName() string
	// Debuggable reports whether the app was built for debugging.
	Debuggable() (bool, error)
}

// StaticApp is an AppContext with fixed values.
type StaticApp struct {
	Dir          string
	Package      string
	IsDebuggable bool
	// Err, when set, is returned from Debuggable.
	Err error
}

// FilesDir implements AppContext.
func (a StaticApp) FilesDir() string { return a.Dir }

// PackageName implements AppContext.
func (a StaticApp) PackageName() string { return a.Package }

// Debuggable implements AppContext.
func (a StaticApp) Debuggable() (bool, error) { return a.IsDebuggable, a.Err }

// localApp stores files under the user's data directory.
type localApp struct {
	pkg string
	dir string
}

// LocalApp returns an AppContext for a package installed on this machine.
// Files go to DataDir()/applog/<pkg>/files. The debuggable flag comes from
// APPLOG_DEBUGGABLE; unset means not debuggable.
func LocalApp(pkg string) AppContext {
	return localApp{pkg: pkg, dir: LocalFilesDir(pkg)}
}

func (a localApp) FilesDir() string { return a.dir }
func (a localApp) PackageName() string { return a.pkg }

func (a localApp) Debuggable() (bool, error) {
	v := os.Getenv(DebuggableEnv)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", DebuggableEnv, v, err)
	}
	return b, nil
}

// DataDir returns the base directory for app data.
// It follows XDG: $XDG_DATA_HOME, else ~/.local/share, else the temp dir.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return xdg
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return os.TempDir()
	}
	return filepath.Join(home, ".local", "share")
}

// LocalFilesDir returns the private files directory for pkg.
func LocalFilesDir(pkg string) string {
	return filepath.Join(DataDir(), "applog", pkg, "files")
}
