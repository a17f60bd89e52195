package config

import (
	"path/filepath"

	"github.com/apex/log"
	"github.com/mitchellh/go-homedir"
)

var configer Configer = &DotenvConfig{}

func SetConfig(c Configer) {
	configer = c
}

func GetConfig() Configer {
	return configer
}

// MustLoadFromDotenv loads the .env for the service, looking in the current
// directory first and then in $HOME/.mceln/.env. A missing file is fatal;
// every daemon needs at least the database settings.
func MustLoadFromDotenv() Configer {
	if err := LoadFromPath(".env"); err == nil {
		return configer
	}

	home, err := homedir.Dir()
	if err != nil {
		log.Fatalf("Unable to determine home directory: %s", err)
	}

	dotenvPath := filepath.Join(home, ".mceln", ".env")
	if err := LoadFromPath(dotenvPath); err != nil {
		log.Fatalf("Unable to load %s: %s", dotenvPath, err)
	}

	return configer
}

func LoadFromPath(path string) error {
	return configer.LoadFromPath(path)
}

func Load() error {
	return configer.Load()
}

func GetKey(key string) string {
	return configer.GetKey(key)
}

func MustGetKey(key string) string {
	return configer.MustGetKey(key)
}

func GetKeyWithDefault(key, defaultValue string) string {
	return configer.GetKeyWithDefault(key, defaultValue)
}

func GetIntKey(key string) int {
	return configer.GetIntKey(key)
}

func MustGetIntKey(key string) int {
	return configer.MustGetIntKey(key)
}

func GetIntKeyWithDefault(key string, defaultValue int) int {
	return configer.GetIntKeyWithDefault(key, defaultValue)
}

func GetBoolKeyWithDefault(key string, defaultValue bool) bool {
	return configer.GetBoolKeyWithDefault(key, defaultValue)
}
