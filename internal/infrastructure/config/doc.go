// Package config loads and validates Incubadora Core configuration.
//
// Configuration is read from a YAML file, with defaults applied first and
// environment variables (INCUBADORA_*) applied last. A missing config file
// is not an error: the service can run entirely from defaults + environment,
// which is how the embedded deployment on the incubator gateway works.
package config
