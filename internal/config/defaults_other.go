// internal/config/defaults_other.go
//go:build !windows

package config

func defaultSerialPort() string { return "/dev/ttyACM0" }
