// Package config manages user-level settings stored at ~/.pystarter/config.yaml.
// Settings can also come from PYSTARTER_* environment variables. The file is
// validated against an embedded JSON Schema by "pystarter config validate".
package config
