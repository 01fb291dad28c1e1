// Package config provides configuration management for the provisioner.
//
// It utilizes Viper for loading configuration from a java-properties style
// config.properties file, a .env file, and environment variables. Defaults
// are declared as struct tags and bound by reflection, so every recognized
// key exists even when no file sets it.
//
// # Precedence
//
// defaults < config.properties < .env < process environment.
//
// A missing config.properties aborts startup: the tool cannot provision
// without the tenant URL, token, and target hierarchy names.
package config
