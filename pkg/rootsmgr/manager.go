// Package rootsmgr bundles the configuration, logging and client state
// shared by every roots3 CLI command.
package rootsmgr

import (
	"github.com/joho/godotenv"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/rootstorage/roots3/pkg/roots3"
)

// Manager holds one CLI session: a private viper config, a logger and the
// constructed gateway client.
type Manager struct {
	Client *roots3.Client
	Logger *logrus.Logger
	Cfg    *viper.Viper
}

// NewManager builds a Manager from user options. Recognized keys:
//
//	"config-file" (string)  explicit config file path
//	"logger"      (*logrus.Logger)  custom logger
//	"url", "api-key" (string), "project" (int)  override config values,
//	    typically from command-line flags
//
// Configuration precedence: explicit options, then environment (ROOTS3_URL,
// ROOTS3_API_KEY, ROOTS3_PROJECT_ID, with a .env file honored), then a
// .roots3 config file, then defaults.
func NewManager(userCfg map[string]interface{}) (*Manager, error) {
	var err error
	mgr := &Manager{}

	if cfgPathRaw, ok := userCfg["config-file"]; ok {
		if cfgPath, ok := cfgPathRaw.(string); ok {
			err = mgr.initConfig(&cfgPath)
		} else {
			return nil, errors.New("option 'config-file' must be of type string")
		}
	} else {
		err = mgr.initConfig(nil)
	}
	if err != nil {
		return nil, err
	}

	if loggerRaw, ok := userCfg["logger"]; ok {
		if logger, ok := loggerRaw.(*logrus.Logger); ok {
			mgr.Logger = logger
		} else {
			return nil, errors.New("option 'logger' must be of type *logrus.Logger")
		}
	} else {
		mgr.Logger = logrus.New()
	}

	for _, key := range []string{"url", "api-key", "project"} {
		if v, ok := userCfg[key]; ok {
			mgr.Cfg.Set(key, v)
		}
	}

	if err := mgr.initClient(); err != nil {
		return nil, err
	}

	return mgr, nil
}

func (mgr *Manager) initConfig(cfgPath *string) error {
	// A .env file in the working directory feeds the environment before
	// viper reads it. Missing files are fine.
	_ = godotenv.Load()

	// This is a private viper context just for roots3 (so as not to
	// conflict with the importer's usage).
	mgr.Cfg = viper.New()

	mgr.Cfg.SetDefault("url", "http://localhost:9000")
	mgr.Cfg.BindEnv("url", "ROOTS3_URL")
	mgr.Cfg.BindEnv("api-key", "ROOTS3_API_KEY")
	mgr.Cfg.BindEnv("project", "ROOTS3_PROJECT_ID")

	if cfgPath != nil {
		// Use the config file from the flag; it must exist.
		mgr.Cfg.SetConfigFile(*cfgPath)
		if err := mgr.Cfg.ReadInConfig(); err != nil {
			return errors.Wrap(err, "Failed to load config")
		}
		return nil
	}

	// Default search path is ~/.roots3.* then ./.roots3.*; not having a
	// config file at all is fine.
	if home, err := homedir.Dir(); err == nil {
		mgr.Cfg.AddConfigPath(home)
	}
	mgr.Cfg.AddConfigPath(".")
	mgr.Cfg.SetConfigName(".roots3")

	if err := mgr.Cfg.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return errors.Wrap(err, "Failed to load config")
		}
	}
	return nil
}

func (mgr *Manager) initClient() error {
	url := mgr.Cfg.GetString("url")
	apiKey := mgr.Cfg.GetString("api-key")
	project := mgr.Cfg.GetInt("project")

	if apiKey == "" {
		return errors.New("No api key configured (set --api-key or ROOTS3_API_KEY)")
	}
	if project <= 0 {
		return errors.New("No project configured (set --project or ROOTS3_PROJECT_ID)")
	}

	client, err := roots3.New(url, apiKey, project)
	if err != nil {
		return errors.Wrap(err, "Failed to initialize gateway client")
	}
	mgr.Client = client
	return nil
}
