package env

import (
	"os"
)

// PodName example: k8ssta-escrow-api-6868d88fbd-bz8zv
func PodName() string {
	return os.Getenv("PODNAME")
}

// EnvName example: k8ssta
func EnvName() string {
	return os.Getenv("ENV_NAME")
}

// AppName example: api
func AppName() string {
	return os.Getenv("APP_NAME")
}

// ConfigFile returns CONFIG_FILE or the default config location
func ConfigFile() string {
	if f := os.Getenv("CONFIG_FILE"); f != "" {
		return f
	}
	return "infra/configs/config.yaml"
}
