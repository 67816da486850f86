// Package cfgloader provides a simple way to load and validate configuration at the start of an application.
package cfgloader

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"slices"

	"github.com/code19m/errx"
	"github.com/creasty/defaults"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/rise-and-shine/mediator/val"
)

const (
	EnvProduction = "production"
	EnvStaging    = "staging"
	EnvDev        = "dev"
	EnvLocal      = "local"
	EnvTest       = "test"
)

// Load loads and validates configuration from a YAML file based on the ENVIRONMENT variable.
// The files must be named in the format ${ENVIRONMENT}.yaml and located in the config
// directory at the root of the project (override with WithDir).
//
// The configuration struct should use `yaml` struct tags to map fields to the YAML file
// structure. Default values can be set using the `default` struct tag; they are applied
// before validation if the corresponding fields are not defined in the YAML file.
// Validations use the go-playground/validator tags.
//
// Example:
//
//	type Config struct {
//	    Host     string `yaml:"host" validate:"required"`
//	    Port     int    `yaml:"port" default:"8080"`
//	    LogLevel string `yaml:"log_level" default:"info"`
//	}
func Load[T any](opts ...Option) (T, error) {
	var config T

	options := Options{}
	for _, opt := range opts {
		opt(&options)
	}

	if reflect.ValueOf(config).Kind() == reflect.Ptr {
		return config, errx.New("[cfgloader]: type argument must not be a pointer")
	}

	_ = godotenv.Load()

	env, err := defineEnvironment()
	if err != nil {
		return config, err
	}

	data, err := readConfigFile(configPath(options, env))
	if err != nil {
		return config, err
	}

	// Substitute ${VAR} references before unmarshalling so secrets can
	// stay out of the yaml files.
	data = []byte(os.ExpandEnv(string(data)))

	if err = yaml.Unmarshal(data, &config); err != nil {
		return config, errx.Wrap(err, errx.WithDetails(errx.D{"environment": env}))
	}

	if err = defaults.Set(&config); err != nil {
		return config, errx.Wrap(err)
	}

	if violations := val.CheckSchema(config); len(violations) > 0 {
		fields := make(errx.M, len(violations))
		for _, v := range violations {
			fields[v.Field] = v.Message
		}
		return config, errx.New(
			fmt.Sprintf("[cfgloader]: invalid fields in %s config", env),
			errx.WithType(errx.T_Validation),
			errx.WithFields(fields),
		)
	}

	if !options.Silent {
		printConfig(config)
	}

	return config, nil
}

// MustLoad is like Load but logs the error and exits the process on failure.
// Intended for use in main during startup.
func MustLoad[T any](opts ...Option) T {
	config, err := Load[T](opts...)
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
	return config
}

func defineEnvironment() (string, error) {
	env := os.Getenv("ENVIRONMENT")
	choices := []string{EnvProduction, EnvStaging, EnvDev, EnvLocal, EnvTest}
	if !slices.Contains(choices, env) {
		return "", errx.New(
			"[cfgloader]: ENVIRONMENT env variable is not set or invalid. " +
				"Choices are: production, staging, dev, local, test",
		)
	}
	return env, nil
}

func configPath(options Options, env string) string {
	dir := options.Dir
	if dir == "" {
		dir = "./config"
	}
	return filepath.Join(dir, env+".yaml")
}

func readConfigFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errx.New(fmt.Sprintf(
			"[cfgloader]: config file not found in the path %s - "+
				"Make sure that the yaml file exists for each environment", path,
		))
	}
	if err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(errx.D{"path": path}))
	}
	return data, nil
}
