package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/eventcreator-deploy/internal/domain/config"
)

const (
	// DataDirName holds local state such as the SQLite registry
	DataDirName = ".ecdeploy"
	envPrefix   = "ECDEPLOY"

	DefaultNetwork = "localhost"
	DefaultTimeout = 10 * time.Minute
)

// projectMarkers identify a project root, in addition to the config files
var projectMarkers = []string{"foundry.toml", "hardhat.config.js", "hardhat.config.ts"}

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	loadEnvFiles(projectRoot)

	configFile := findConfigFile(projectRoot)
	file, err := LoadFileConfig(configFile)
	if err != nil {
		return nil, err
	}

	timeout, err := durationSetting(v, "timeout", file.Timeout, DefaultTimeout)
	if err != nil {
		return nil, err
	}
	pollInterval, err := durationSetting(v, "poll_interval", file.PollInterval, 0)
	if err != nil {
		return nil, err
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		DataDir:        filepath.Join(projectRoot, DataDirName),
		ConfigFile:     configFile,
		ArtifactsDir:   firstNonEmpty(v.GetString("artifacts"), file.Artifacts),
		DeploymentsDir: resolvePath(projectRoot, firstNonEmpty(v.GetString("deployments"), file.Deployments)),
		NetworkName:    firstNonEmpty(v.GetString("network"), DefaultNetwork),
		Networks:       file.RuntimeNetworks(),
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		AssumeYes:      v.GetBool("yes"),
		JSON:           v.GetBool("json"),
		Timeout:        timeout,
		PollInterval:   pollInterval,
		RegistryDriver: firstNonEmpty(v.GetString("registry.driver"), file.Registry.Driver, "file"),
		RegistryDSN:    firstNonEmpty(v.GetString("registry.dsn"), file.Registry.DSN),
		DeployerKey:    firstNonEmpty(v.GetString("deployer_key"), file.Accounts.DeployerKey),
		Service:        firstNonEmpty(v.GetString("service"), file.Accounts.Service),
		Deploy:         file.DeployConfig(),
	}

	return cfg, nil
}

// FindProjectRoot walks up from the current directory to the first
// directory holding a config file or a Foundry/Hardhat project file. The
// current directory is used when none is found.
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	markers := append(append([]string{}, ConfigFileNames...), projectMarkers...)
	for dir := cwd; ; {
		for _, marker := range markers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd, nil
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	// Set up config file
	v.SetConfigName("config.local")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, DataDirName))

	// Set up environment variables
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("project_root", projectRoot)

	// Try to read config file (ignore error if not found)
	_ = v.ReadInConfig()

	if cmd != nil {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			if err := v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f); err != nil {
				panic(err)
			}
		})
	}

	return v
}

func durationSetting(v *viper.Viper, key, fromFile string, fallback time.Duration) (time.Duration, error) {
	raw := firstNonEmpty(v.GetString(key), fromFile)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return d, nil
}

func resolvePath(root, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
