package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"devfactory/internal/filemanager"
	"devfactory/internal/logging"
	"devfactory/pkg/fileops"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const APP_NAME = "devfactory" // application name used for the XDG config directory

// ConfigFileName is the file the installer writes next to each server binary.
const ConfigFileName = "dev-factory.config.json"

// ErrConfigNotFound is returned when no candidate location holds a config file.
var ErrConfigNotFound = errors.New("config not found")

// ExtensionConfig is the per-extension block of the config file.
type ExtensionConfig struct {
	DocsDir string `yaml:"docsDir" json:"docsDir"`
}

// File mirrors the config file shape: {"extensions": {"<key>": {"docsDir": "..."}}}.
type File struct {
	Extensions map[string]ExtensionConfig `yaml:"extensions" json:"extensions"`
}

// DocsConfig is the resolved docs location for one extension. It is built
// once at startup and only read afterwards.
type DocsConfig struct {
	extension  string
	dir        string
	configPath string
}

func (c DocsConfig) Extension() string  { return c.extension }
func (c DocsConfig) Dir() string        { return c.dir }
func (c DocsConfig) ConfigPath() string { return c.configPath }

// Options controls how the docs directory is resolved.
type Options struct {
	// ExtensionKey selects the block under "extensions", e.g. "kit-mcp".
	ExtensionKey string
	// ConfigPath is an explicit config file; when set no other location is tried.
	ConfigPath string
	// DocsDir bypasses the config file entirely.
	DocsDir string
	// WorkDir is the project root docsDir is relative to.
	WorkDir string
	// Logger receives resolution details. Defaults to logging.GetDefault().
	Logger *logging.AppLogger
}

// XDGConfigPath returns the per-user fallback config location.
func XDGConfigPath() string {
	return filepath.Join(xdg.ConfigHome, APP_NAME, "config.yaml")
}

// CandidatePaths lists config locations in lookup order: the explicit path
// alone if one is given, otherwise next to the executable, the working
// directory and the XDG config directory.
func CandidatePaths(explicit, workDir string) []string {
	if explicit != "" {
		return []string{explicit}
	}

	var paths []string
	if exe, err := os.Executable(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(exe), ConfigFileName))
	}
	if workDir != "" {
		paths = append(paths, filepath.Join(workDir, ConfigFileName))
	}
	paths = append(paths, XDGConfigPath())
	return paths
}

// FindConfigFile returns the first existing candidate, and whether one exists.
// When none exists the first candidate is returned for error messages.
func FindConfigFile(explicit, workDir string) (string, bool) {
	candidates := CandidatePaths(explicit, workDir)
	for _, p := range candidates {
		info, err := os.Stat(p)
		if err == nil && !info.IsDir() {
			return p, true
		}
	}
	return candidates[0], false
}

// LoadFrom reads a config file. Files ending in .json are decoded as JSON,
// anything else as YAML.
func LoadFrom(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}

	var f File
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &f)
	} else {
		err = yaml.Unmarshal(data, &f)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &f, nil
}

// DocsDir returns the raw docsDir for key.
func (f *File) DocsDir(key string) (string, error) {
	ext, ok := f.Extensions[key]
	if !ok || strings.TrimSpace(ext.DocsDir) == "" {
		return "", fmt.Errorf("Missing %q in %s", "extensions."+key+".docsDir", ConfigFileName)
	}
	return ext.DocsDir, nil
}

// ResolveDocsDir finds the docs directory for opts.ExtensionKey. A relative
// docsDir is resolved against opts.WorkDir, and the result must be an
// existing directory.
func ResolveDocsDir(opts Options) (DocsConfig, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.GetDefault()
	}

	workDir := opts.WorkDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return DocsConfig{}, fmt.Errorf("cannot determine working directory: %w", err)
		}
		workDir = wd
	}

	if opts.DocsDir != "" {
		dir, err := resolveExisting(workDir, opts.DocsDir, "")
		if err != nil {
			return DocsConfig{}, err
		}
		logger.Info("Using docs directory from flag", "extension", opts.ExtensionKey, "dir", dir)
		return DocsConfig{extension: opts.ExtensionKey, dir: dir}, nil
	}

	configPath, exists := FindConfigFile(opts.ConfigPath, workDir)
	if !exists {
		return DocsConfig{}, fmt.Errorf("%w: %s\nRun the dev-factory installer to generate the config", ErrConfigNotFound, configPath)
	}

	logger.Debug("Reading config file", "path", configPath)
	f, err := LoadFrom(configPath)
	if err != nil {
		return DocsConfig{}, err
	}
	raw, err := f.DocsDir(opts.ExtensionKey)
	if err != nil {
		return DocsConfig{}, err
	}

	dir, err := resolveExisting(workDir, raw, configPath)
	if err != nil {
		return DocsConfig{}, err
	}

	logger.Info("Resolved docs directory", "extension", opts.ExtensionKey, "dir", dir, "config", configPath)
	return DocsConfig{extension: opts.ExtensionKey, dir: dir, configPath: configPath}, nil
}

// resolveExisting expands a leading "~/" before resolving, so docsDir may
// point into the user's home directory.
func resolveExisting(workDir, dir, configPath string) (string, error) {
	abs, err := fileops.ResolvePath(workDir, filemanager.ExpandPath(dir))
	if err != nil {
		return "", fmt.Errorf("invalid docs directory %q: %w", dir, err)
	}
	if err := fileops.ValidateDirectory(abs); err != nil {
		if configPath != "" {
			return "", fmt.Errorf("Docs directory not found: %s\nEnsure the path in %s is correct relative to project root: %w", abs, configPath, err)
		}
		return "", fmt.Errorf("Docs directory not found: %s: %w", abs, err)
	}
	return abs, nil
}
