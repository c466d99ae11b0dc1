//go:build !debug
// +build !debug

package photonvox

func DebugLog(format string, args ...interface{})     {}
func DebugLogOnce(format string, args ...interface{}) {}
