// Package configs provides the embedded settings template for applog.
//
// The template is embedded at build time so `applog config init` works from
// any distribution. Configuration hierarchy (see internal/config Load):
//  1. Hardcoded defaults (internal/config NewConfig)
//  2. User config ($XDG_CONFIG_HOME/applog/config.yaml)
//  3. Project config (.applog.yaml)
//  4. Environment variables (APPLOG_*)
package configs

import _ "embed"

// ConfigTemplate is the commented settings template written by
// `applog config init`, for both the user and the project file.
//
//go:embed config.example.yaml
var ConfigTemplate string
