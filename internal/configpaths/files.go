// Package configpaths resolves OS-standard config locations: the daemon's
// own CLI config file (JSON/YAML/TOML, layered per cmd/jukeboxd) and the
// profile store's default JSON path (§6: "JukeBoxDesktop/config.json").
package configpaths

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
)

// appDirName is the directory this application owns under the platform's
// config root.
const appDirName = "JukeBoxDesktop"

// DefaultConfigDir returns the platform-specific configuration directory.
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		if appdata := os.Getenv("AppData"); appdata != "" {
			return filepath.Join(appdata, appDirName), nil
		}
		return "", errors.New("configpaths: AppData not set")
	case "darwin":
		if home := os.Getenv("HOME"); home != "" {
			return filepath.Join(home, "Library", "Application Support", appDirName), nil
		}
		return "", errors.New("configpaths: HOME not set")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appDirName), nil
		}
		if home := os.Getenv("HOME"); home != "" {
			return filepath.Join(home, ".config", appDirName), nil
		}
		return "", errors.New("configpaths: HOME not set")
	}
}

// ProfileStorePath returns the default path to the profile config JSON
// document named in §6. The run command's ConfigPath flag overrides it.
func ProfileStorePath() (string, error) {
	dir, err := DefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// EnsureDir makes sure the directory holding filePath exists.
func EnsureDir(filePath string) error {
	return os.MkdirAll(filepath.Dir(filePath), 0o755)
}

// DefaultNamedConfigPath returns the daemon CLI config path for the given
// format (json/yaml/toml) and base name, mirroring the teacher's
// multi-format layered config resolution.
func DefaultNamedConfigPath(baseName, format string) (string, error) {
	dir, err := DefaultConfigDir()
	if err != nil {
		return "", err
	}
	ext := "json"
	switch format {
	case "yaml", "yml":
		ext = "yaml"
	case "toml":
		ext = "toml"
	}
	return filepath.Join(dir, baseName+"."+ext), nil
}

// ConfigCandidatePaths builds candidate CLI config paths per format. If
// userPath is provided, it is prioritized and routed to the matching loader
// by extension.
func ConfigCandidatePaths(userPath string) (jsonPaths, yamlPaths, tomlPaths []string) {
	add := func(slice *[]string, p string) { *slice = append(*slice, p) }

	if userPath != "" {
		switch ext := filepath.Ext(userPath); ext {
		case ".json":
			add(&jsonPaths, userPath)
		case ".yaml", ".yml":
			add(&yamlPaths, userPath)
		case ".toml":
			add(&tomlPaths, userPath)
		default:
			add(&jsonPaths, userPath)
		}
	}

	wd, _ := os.Getwd()
	add(&jsonPaths, filepath.Join(wd, "jukeboxd.json"))
	add(&yamlPaths, filepath.Join(wd, "jukeboxd.yaml"))
	add(&yamlPaths, filepath.Join(wd, "jukeboxd.yml"))
	add(&tomlPaths, filepath.Join(wd, "jukeboxd.toml"))

	if dir, err := DefaultConfigDir(); err == nil {
		add(&jsonPaths, filepath.Join(dir, "jukeboxd.json"))
		add(&yamlPaths, filepath.Join(dir, "jukeboxd.yaml"))
		add(&yamlPaths, filepath.Join(dir, "jukeboxd.yml"))
		add(&tomlPaths, filepath.Join(dir, "jukeboxd.toml"))
	}

	if runtime.GOOS != "windows" {
		add(&jsonPaths, filepath.Join("/etc/jukeboxd", "jukeboxd.json"))
		add(&yamlPaths, filepath.Join("/etc/jukeboxd", "jukeboxd.yaml"))
		add(&yamlPaths, filepath.Join("/etc/jukeboxd", "jukeboxd.yml"))
		add(&tomlPaths, filepath.Join("/etc/jukeboxd", "jukeboxd.toml"))
	}

	return
}
