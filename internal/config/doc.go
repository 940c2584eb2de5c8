// Package config handles configuration loading and validation. Settings come
// from an optional config.yaml and from TASKAPI_-prefixed environment
// variables, with the environment taking precedence. The loaded Config is
// validated before use so the server fails fast on a bad deployment instead
// of misbehaving at runtime.
package config
