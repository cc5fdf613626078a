// internal/config/defaults_windows.go
//go:build windows

package config

func defaultSerialPort() string { return "COM3" }
