// Package config holds cczukit's runtime configuration: portal endpoints,
// account credentials, transport limits and report preferences.
//
// Values are layered in this order, later layers winning: NewConfig
// defaults, the YAML file found by FindConfigFile, the CCZU_USERNAME and
// CCZU_PASSWORD environment variables, and finally command-line flags.
package config
