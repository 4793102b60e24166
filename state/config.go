package state

const (
	DefaultSaveFileDir = "sav"
	DefaultSaveExt     = ".sav"
)

// Save Config
type Config struct {
	SaveFileDir string `toml:"savefile_dir"`
}

// return new default config
func NewConfig() Config {
	return Config{
		SaveFileDir: DefaultSaveFileDir,
	}
}
