package endpoint

import (
	"github.com/aniko-app/aniko/key"
	"github.com/spf13/viper"
)

// Config carries everything the resolver needs: the upstream origin, an optional
// access-key credential, and the endpoint template table.
//
// It is built once at startup and injected explicitly; resolution itself never
// reads ambient state, which keeps resolved URLs usable as cache keys.
type Config struct {
	BaseURL   string
	AccessKey string
	Endpoints map[Key]string
}

// FromViper materializes a Config from the ambient configuration store.
// Overridden templates win key-by-key; endpoints absent from the override keep
// their built-in defaults. This is the single read-from-ambient-storage step.
func FromViper() Config {
	endpoints := make(map[Key]string, len(Defaults))
	for k, def := range Defaults {
		endpoints[k] = def
		if override := viper.GetString(key.Endpoint(string(k))); override != "" {
			endpoints[k] = override
		}
	}

	return Config{
		BaseURL:   viper.GetString(key.APIBaseURL),
		AccessKey: viper.GetString(key.APIAccessKey),
		Endpoints: endpoints,
	}
}
