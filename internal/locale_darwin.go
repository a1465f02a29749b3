//go:build darwin

package internal

import (
	"os/exec"
	"strings"
)

// skipSystemLocale can be set to true in tests to skip OS-level locale detection
var skipSystemLocale = false

// detectSystemLocale checks the environment first (terminal overrides) and
// then the AppleLocale preference, which already has the "de_DE" shape.
func detectSystemLocale() string {
	if locale := localeFromEnv("LC_NUMERIC", "LC_MONETARY", "LC_ALL", "LANG"); locale != "" {
		return locale
	}
	if skipSystemLocale {
		return ""
	}

	out, err := exec.Command("defaults", "read", "-g", "AppleLocale").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
