//go:build !windows && !darwin

package internal

// skipSystemLocale can be set to true in tests to skip OS-level locale detection
var skipSystemLocale = false

// detectSystemLocale returns the locale from the environment.
// Numbers are what we format, so LC_NUMERIC and LC_MONETARY win over LC_ALL and LANG.
func detectSystemLocale() string {
	return localeFromEnv("LC_NUMERIC", "LC_MONETARY", "LC_ALL", "LANG")
}
