// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// Every reconciliation threshold that has drifted between revisions of the
// service (departure grace, freeze threshold, match window) lives here so
// behaviour differences are a config change, not a code fork.
package config
