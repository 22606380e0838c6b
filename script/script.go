// Package script renders and writes scripts that switch the local machine's
// system time zone to a dashboard entry's offset.
package script

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/philtim/offsetclock/offset"
	"github.com/philtim/offsetclock/zones"
)

// Kind selects the target platform of a script
type Kind string

const (
	// Windows renders a .bat file that runs tzutil elevated
	Windows Kind = "windows"
	// Shell renders a POSIX shell script that runs timedatectl through sudo
	Shell Kind = "shell"
)

var whitespace = regexp.MustCompile(`\s+`)

// ParseKind converts a config value into a Kind
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case Windows, Shell:
		return k, nil
	default:
		return "", fmt.Errorf("unknown script kind '%s'", s)
	}
}

// Ext returns the file extension for the kind
func (k Kind) Ext() string {
	if k == Windows {
		return ".bat"
	}
	return ".sh"
}

// Render returns the script body for entry
func Render(kind Kind, e zones.Entry) string {
	if kind == Windows {
		zone := e.WindowsZone
		if zone == "" {
			zone = offset.WindowsZone(e.Offset)
		}
		return Bat(zone)
	}
	return Sh(e.Offset)
}

// Bat returns the two-line batch file that sets the Windows time zone
func Bat(windowsZone string) string {
	return "@echo off\r\n" +
		fmt.Sprintf(`powershell -Command "Start-Process cmd -ArgumentList '/c tzutil /s \"%s\"' -Verb runAs"`, windowsZone) +
		"\r\n"
}

// Sh returns the shell script that sets a fixed-offset zone via timedatectl
func Sh(o offset.Offset) string {
	return "#!/bin/sh\n" + fmt.Sprintf("sudo timedatectl set-timezone %s\n", EtcZone(o))
}

// EtcZone returns the Etc/GMT zone name for o. The sign is inverted:
// UTC+9 is Etc/GMT-9.
func EtcZone(o offset.Offset) string {
	switch {
	case o == 0:
		return "Etc/UTC"
	case o > 0:
		return fmt.Sprintf("Etc/GMT-%d", int(o))
	default:
		return fmt.Sprintf("Etc/GMT+%d", -int(o))
	}
}

// FileName returns set_timezone_<name>.<ext> with whitespace runs replaced by underscores
func FileName(kind Kind, name string) string {
	return "set_timezone_" + whitespace.ReplaceAllString(name, "_") + kind.Ext()
}

// Export writes the script for entry into dir and returns its path
func Export(dir string, kind Kind, e zones.Entry) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	name := strings.ReplaceAll(FileName(kind, e.Name), string(filepath.Separator), "_")
	path := filepath.Join(dir, name)

	mode := os.FileMode(0o644)
	if kind == Shell {
		mode = 0o755
	}
	if err := os.WriteFile(path, []byte(Render(kind, e)), mode); err != nil {
		return "", fmt.Errorf("failed to write script: %w", err)
	}
	return path, nil
}
