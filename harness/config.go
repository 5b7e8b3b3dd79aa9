package harness

import (
	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
	"github.com/nvr-ai/go-pngbench/images"
	"github.com/pkg/errors"
)

// ConfigPathEnv names the environment variable holding the optional TOML
// config file path.
const ConfigPathEnv = "PNGBENCH_CONFIG"

const envPrefix = "pngbench"

// Mode selects what Harness.Run does after decoding the input.
type Mode string

const (
	// ModeBench benchmarks every configured run and prints the reports.
	ModeBench Mode = "bench"
	// ModeDisplay shows the decoded image in a window.
	ModeDisplay Mode = "display"
	// ModeAll benchmarks, then shows the image.
	ModeAll Mode = "all"
)

func (m Mode) benchmarks() bool { return m == ModeBench || m == ModeAll }
func (m Mode) displays() bool   { return m == ModeDisplay || m == ModeAll }

// RunConfig is one benchmarked decoding path.
type RunConfig struct {
	// Name labels the report. Defaults to the decoder name.
	Name string `toml:"name"`
	// Decoder is a registered decoder name, see images.DecoderNames.
	Decoder string `toml:"decoder"`
	// Layout is the requested layout hint: "native", "rgb" or "rgba".
	Layout string `toml:"layout"`
	// FromFile re-reads the image file inside every timed iteration.
	FromFile bool `toml:"from_file"`
}

// ParityConfig configures the decoder parity checks.
type ParityConfig struct {
	// Decoders are compared against the first one on the input image.
	Decoders []string `toml:"decoders"`
	// Dir and CheckDir, when both set, pair every PNG in Dir with the
	// same-named file in CheckDir.
	Dir      string `toml:"dir"`
	CheckDir string `toml:"check_dir" split_words:"true"`
}

// Config drives a Harness.
type Config struct {
	ImagePath   string       `toml:"image_path" split_words:"true"`
	Mode        Mode         `toml:"mode"`
	Iterations  int          `toml:"iterations"`
	WindowTitle string       `toml:"window_title" split_words:"true"`
	LogLevel    string       `toml:"log_level" split_words:"true"`
	Runs        []RunConfig  `toml:"runs" ignored:"true"`
	Parity      ParityConfig `toml:"parity"`

	undecoded []string
}

// DefaultConfig returns the configuration used when nothing overrides it.
// It has no image path: one must come from the config file or
// PNGBENCH_IMAGE_PATH.
func DefaultConfig() *Config {
	return &Config{
		Mode:        ModeAll,
		Iterations:  100,
		WindowTitle: "pngbench",
		LogLevel:    "info",
		Runs: []RunConfig{
			{Name: "opencv", Decoder: "opencv", Layout: "native", FromFile: true},
			{Name: "std", Decoder: "std", Layout: "rgb"},
		},
	}
}

// LoadConfig layers the TOML file at path (skipped when empty) and then
// PNGBENCH_* environment variables over DefaultConfig. The result is
// validated.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		// Runs from the file replace the defaults instead of merging into them.
		runs := cfg.Runs
		cfg.Runs = nil
		md, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return nil, errors.Wrapf(err, "load config %s", path)
		}
		if !md.IsDefined("runs") {
			cfg.Runs = runs
		}
		for _, key := range md.Undecoded() {
			cfg.undecoded = append(cfg.undecoded, key.String())
		}
	}

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, errors.Wrap(err, "processing env vars")
	}

	for i := range cfg.Runs {
		if cfg.Runs[i].Name == "" {
			cfg.Runs[i].Name = cfg.Runs[i].Decoder
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// UnknownKeys returns the keys of the config file that matched no field.
func (c *Config) UnknownKeys() []string {
	return c.undecoded
}

// Validate checks that every mode, decoder and layout name is known.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeBench, ModeDisplay, ModeAll:
	default:
		return errors.Errorf("invalid mode %q: want %q, %q or %q", c.Mode, ModeBench, ModeDisplay, ModeAll)
	}
	if c.ImagePath == "" {
		return errors.New("image path is required: set image_path or PNGBENCH_IMAGE_PATH")
	}
	if c.Iterations < 0 {
		return errors.Errorf("invalid iterations %d", c.Iterations)
	}
	if c.Mode.benchmarks() && len(c.Runs) == 0 {
		return errors.Errorf("mode %s requires at least one run", c.Mode)
	}

	names := make(map[string]bool, len(c.Runs))
	for i, run := range c.Runs {
		if err := validDecoder(run.Decoder); err != nil {
			return errors.Wrapf(err, "run %d", i)
		}
		if _, err := images.ParseLayout(run.Layout); err != nil {
			return errors.Wrapf(err, "run %d", i)
		}
		if names[run.Name] {
			return errors.Errorf("run %d: duplicate name %q", i, run.Name)
		}
		names[run.Name] = true
	}

	for _, name := range c.Parity.Decoders {
		if err := validDecoder(name); err != nil {
			return errors.Wrap(err, "parity")
		}
	}
	if (c.Parity.Dir == "") != (c.Parity.CheckDir == "") {
		return errors.New("parity: dir and check_dir must be set together")
	}
	return nil
}

func validDecoder(name string) error {
	_, err := images.LookupDecoder(name)
	return err
}
