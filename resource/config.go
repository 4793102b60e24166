package resource

import (
	"fmt"

	"github.com/mzki/puzzlescene/filesystem"
)

const (
	DefaultManifestFile = "resource.toml"
	DefaultCacheSize    = 256
)

// Resource Config
type Config struct {
	// path of the manifest file.
	Manifest string `toml:"manifest"`
	// max number of cached resources.
	CacheSize int `toml:"cache_size"`
}

func NewConfig() Config {
	return Config{
		Manifest:  DefaultManifestFile,
		CacheSize: DefaultCacheSize,
	}
}

func (c Config) Validate() error {
	if c.Manifest == "" {
		return fmt.Errorf("resource: manifest path is empty")
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("resource: cache size must be >= 0, got %d", c.CacheSize)
	}
	return nil
}

// Load loads the manifest by config and returns cached catalog over it.
func Load(ldr filesystem.Loader, config Config) (*Cache, *Manifest, error) {
	if err := config.Validate(); err != nil {
		return nil, nil, err
	}
	m, err := LoadManifest(ldr, config.Manifest)
	if err != nil {
		return nil, nil, err
	}
	return NewCache(m, config.CacheSize), m, nil
}
