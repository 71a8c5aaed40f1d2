package config

import (
	"path/filepath"
	"strings"
)

type EnvVars struct {
	Port    string `env:"PORT" envDefault:"8080"`
	AppName string `env:"APP_NAME" envDefault:"Portfolio CMS"`
	Env     string `env:"ENV" envDefault:"DEV"`
}

var _ EnvConfig = EnvVars{}

func (e EnvVars) GetPort() string {
	port := e.Port
	if port == "" {
		port = "8080"
	}
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}
	return port
}

func (e EnvVars) GetAppName() string {
	return e.AppName
}

// GetEnv returns the deployment environment, DEV when unset.
func (e EnvVars) GetEnv() string {
	if e.Env == "" {
		return "DEV"
	}
	return strings.ToUpper(e.Env)
}

type Storage struct {
	DataFolder string `env:"DATA_FOLDER" envDefault:"./data"`
	DBFile     string `env:"DB_FILE" envDefault:"portfolio.db"`
}

var _ StorageConfig = Storage{}

func (s Storage) GetDataFolder() string {
	return s.DataFolder
}

// GetDatabasePath joins the data folder and database file name, unless DB_FILE is already absolute.
func (s Storage) GetDatabasePath() string {
	if filepath.IsAbs(s.DBFile) {
		return s.DBFile
	}
	return filepath.Join(s.DataFolder, s.DBFile)
}
