// Package env keeps names of environment variables with special significance to
// zi.
package env

// Environment variables with special significance to zi.
const (
	HOME            = "HOME"
	XDG_CONFIG_HOME = "XDG_CONFIG_HOME"
	ZI_CONFIG       = "ZI_CONFIG"
)
