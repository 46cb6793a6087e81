package config

const (
	defaultProjectRoot  = "."
	defaultStateDirName = ".reel"
	defaultAPIBind      = "127.0.0.1:7488"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
)

// DefaultSteps is the full pipeline in dependency order.
var DefaultSteps = []string{"outline", "script", "shotlist", "package"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	steps := make([]string, len(DefaultSteps))
	copy(steps, DefaultSteps)
	return Config{
		Paths: Paths{
			ProjectRoot: defaultProjectRoot,
		},
		Pipeline: Pipeline{
			DefaultSteps: steps,
			LockEpisodes: true,
		},
		History: History{
			Enabled: true,
		},
		API: API{
			Bind: defaultAPIBind,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
