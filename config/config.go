package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	log "github.com/golang/glog"
	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalid  = errors.New("config: invalid value")
	ErrUnsetEnv = errors.New("config: environment variable not set")
)

// names of the environment variables pointing at the corpus files
type EnvVars struct {
	Training   string `yaml:"training"`
	Vocabulary string `yaml:"vocabulary"`
	TestTagged string `yaml:"test_tagged"`
	TestWords  string `yaml:"test_words"`
}

type Config struct {
	Model    string  `yaml:"model"`
	Alpha    float64 `yaml:"alpha"`
	MinCount int     `yaml:"min_count"`
	// dotenv file loaded before the variables are resolved
	EnvFile string  `yaml:"env_file"`
	Env     EnvVars `yaml:"env"`
}

// Paths are the resolved corpus files, an empty path was not set
type Paths struct {
	Training   string
	Vocabulary string
	TestTagged string
	TestWords  string
}

func Default() *Config {
	return &Config{
		Model:    "hmm",
		Alpha:    0.001,
		MinCount: 2,
		Env: EnvVars{
			Training:   "WALL_STREET_JOURNAL_POS",
			Vocabulary: "WALL_STREET_JOURNAL_VOCABULARY",
			TestTagged: "WALL_STREET_JOURNAL_TEST_POS",
			TestWords:  "WALL_STREET_JOURNAL_TEST_WORDS",
		},
	}
}

// Load reads the yaml file over the defaults, keys absent from the file
// keep their default. an empty fn gives the defaults.
func Load(fn string) (*Config, error) {
	c := Default()
	if fn == "" {
		return c, nil
	}

	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if err := c.decode(f); err != nil {
		return nil, fmt.Errorf("config %s: %w", fn, err)
	}
	log.Infof("loaded config from %s", fn)
	return c, nil
}

// Parse is Load for an in-memory document
func Parse(r io.Reader) (*Config, error) {
	c := Default()
	if err := c.decode(r); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return c.Validate()
}

// Validate reports every bad value at once
func (c *Config) Validate() error {
	var errs *multierror.Error
	if c.Model == "" {
		errs = multierror.Append(errs, fmt.Errorf("%w: model is empty", ErrInvalid))
	}
	if !(c.Alpha > 0) {
		errs = multierror.Append(errs, fmt.Errorf("%w: alpha must be positive, got %v", ErrInvalid, c.Alpha))
	}
	if c.MinCount < 1 {
		errs = multierror.Append(errs, fmt.Errorf("%w: min_count must be at least 1, got %d", ErrInvalid, c.MinCount))
	}
	return errs.ErrorOrNil()
}

// LoadEnv loads the dotenv file, variables already set are kept
func (c *Config) LoadEnv() error {
	if c.EnvFile == "" {
		return nil
	}
	if err := godotenv.Load(c.EnvFile); err != nil {
		return fmt.Errorf("env file %s: %w", c.EnvFile, err)
	}
	log.Infof("loaded environment from %s", c.EnvFile)
	return nil
}

// Paths resolves every variable. each variable named in required must
// be set, all the unset ones are reported together.
func (c *Config) Paths(required ...string) (*Paths, error) {
	p := &Paths{
		Training:   os.Getenv(c.Env.Training),
		Vocabulary: os.Getenv(c.Env.Vocabulary),
		TestTagged: os.Getenv(c.Env.TestTagged),
		TestWords:  os.Getenv(c.Env.TestWords),
	}

	var errs *multierror.Error
	for _, name := range required {
		if os.Getenv(name) == "" {
			errs = multierror.Append(errs, fmt.Errorf("%w: %s", ErrUnsetEnv, name))
		}
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return p, nil
}
