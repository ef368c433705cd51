package utils

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
)

// PathResolver finds the config and template directories for an app.
type PathResolver struct {
	app            string
	executablePath string
	executableDir  string
	homeDir        string
	configDir      string
}

// NewPathResolver creates a resolver for app, keyed off the running executable.
func NewPathResolver(app string) (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}
	if resolved, err := filepath.EvalSymlinks(execPath); err == nil {
		execPath = resolved
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}

	pr := &PathResolver{
		app:            app,
		executablePath: execPath,
		executableDir:  filepath.Dir(execPath),
		homeDir:        homeDir,
		configDir:      platformConfigDir(app, homeDir),
	}
	log.Debugf("PathResolver initialized: exec=%s, configDir=%s", pr.executablePath, pr.configDir)
	return pr, nil
}

func platformConfigDir(app, homeDir string) string {
	switch runtime.GOOS {
	case "darwin", "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, app)
		}
		return filepath.Join(homeDir, ".config", app)
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, app)
		}
		return filepath.Join(homeDir, "AppData", "Roaming", app)
	default:
		return filepath.Join(homeDir, "."+app)
	}
}

// ConfigDir returns the platform config directory.
func (pr *PathResolver) ConfigDir() string {
	return pr.configDir
}

// HomeDir returns the user's home directory.
func (pr *PathResolver) HomeDir() string {
	return pr.homeDir
}

// ExecutableDir returns the directory containing the executable
func (pr *PathResolver) ExecutableDir() string {
	return pr.executableDir
}

// TemplateDir resolves the directory holding template files. It tries, in
// order: userPath (absolute, or relative to the working directory), the
// "templates" dir under the config dir, then next to the executable. The
// first directory holding at least one .toml/.yaml/.yml file wins; "" when
// none does.
func (pr *PathResolver) TemplateDir(userPath string) string {
	for _, dir := range pr.templateDirCandidates(userPath) {
		if isTemplateDir(dir) {
			log.Debugf("Found template directory: %s", dir)
			return dir
		}
		log.Debugf("Template directory candidate not valid: %s", dir)
	}
	return ""
}

func (pr *PathResolver) templateDirCandidates(userPath string) []string {
	var candidates []string
	if userPath != "" {
		userPath = ExpandHome(userPath)
		if filepath.IsAbs(userPath) {
			candidates = append(candidates, userPath)
		} else if cwd, err := os.Getwd(); err == nil {
			candidates = append(candidates, filepath.Join(cwd, userPath))
		}
		return candidates
	}
	return append(candidates,
		filepath.Join(pr.configDir, "templates"),
		filepath.Join(pr.executableDir, "templates"),
	)
}

func isTemplateDir(path string) bool {
	entries, err := os.ReadDir(path)
	if err != nil {
		return false
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".toml", ".yaml", ".yml":
			return true
		}
	}
	return false
}

// RuntimeInfo returns debug information about paths and platform.
func (pr *PathResolver) RuntimeInfo() map[string]string {
	cwd, _ := os.Getwd()
	info := map[string]string{
		"executable_path": pr.executablePath,
		"current_dir":     cwd,
		"config_dir":      pr.configDir,
		"os":              runtime.GOOS,
		"arch":            runtime.GOARCH,
	}
	for _, envVar := range []string{"XDG_CONFIG_HOME", "APPDATA"} {
		if value := os.Getenv(envVar); value != "" {
			info["env_"+strings.ToLower(envVar)] = value
		}
	}
	return info
}
