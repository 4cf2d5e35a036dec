package version

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strconv"
	"strings"
	"sync"
)

const Header = "X-Client-Version"

const (
	versionDevel   = "devel"
	versionUnknown = "unknown"
)

// version is set via ldflags at build time.
// falls back to debug.ReadBuildInfo for go install.
var version = versionDevel

var once sync.Once

func Get() string {
	once.Do(func() {
		if version != versionDevel {
			return
		}
		info, ok := debug.ReadBuildInfo()
		if !ok {
			return
		}
		if v := info.Main.Version; v != "" && v != "("+versionDevel+")" {
			version = v
		}
	})
	return version
}

// IsDevelopment returns true for versions that should skip compatibility checks.
func IsDevelopment(v string) bool {
	return v == versionDevel || v == versionUnknown || v == "" ||
		strings.Contains(v, "dirty") ||
		strings.Contains(v, "-0.")
}

// ParseMajor extracts the major version number from a semver string.
// Returns "0" for unparseable versions.
func ParseMajor(v string) string {
	v = strings.TrimPrefix(v, "v")
	if idx := strings.Index(v, "."); idx > 0 {
		return v[:idx]
	}
	return "0"
}

// IsNewer reports whether latest is a higher release than current.
// Development builds are never considered outdated.
func IsNewer(current, latest string) bool {
	if IsDevelopment(current) {
		return false
	}
	cur, ok := parse(current)
	if !ok {
		return false
	}
	lat, ok := parse(latest)
	if !ok {
		return false
	}
	for i := range cur {
		if lat[i] != cur[i] {
			return lat[i] > cur[i]
		}
	}
	return false
}

func parse(v string) ([3]int, bool) {
	var out [3]int
	v = strings.TrimPrefix(v, "v")
	if idx := strings.IndexAny(v, "-+"); idx >= 0 {
		v = v[:idx]
	}
	parts := strings.Split(v, ".")
	if len(parts) != 3 {
		return out, false
	}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return out, false
		}
		out[i] = n
	}
	return out, true
}

// IncompatibleError reports a client whose major version differs from the
// proxy's.
type IncompatibleError struct {
	ClientVersion string
	ProxyVersion  string
	MinVersion    string
}

func (e *IncompatibleError) Error() string {
	return fmt.Sprintf("client version %s is incompatible with proxy %s, upgrade to %s or later",
		e.ClientVersion, e.ProxyVersion, e.MinVersion)
}

// CheckCompatibility compares the client's major version with this build's.
func CheckCompatibility(clientVersion string) *IncompatibleError {
	return checkCompatibility(clientVersion, Get())
}

func checkCompatibility(clientVersion, proxyVersion string) *IncompatibleError {
	if IsDevelopment(clientVersion) || IsDevelopment(proxyVersion) {
		return nil
	}
	proxyMajor := ParseMajor(proxyVersion)
	if ParseMajor(clientVersion) == proxyMajor {
		return nil
	}
	return &IncompatibleError{
		ClientVersion: clientVersion,
		ProxyVersion:  proxyVersion,
		MinVersion:    "v" + proxyMajor + ".0.0",
	}
}

// IsHomebrew reports whether the running binary was installed by Homebrew.
func IsHomebrew() bool {
	exe, err := os.Executable()
	if err != nil {
		return false
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return isHomebrewPath(exe)
}

func isHomebrewPath(p string) bool {
	p = filepath.ToSlash(p)
	return strings.Contains(p, "/Cellar/") || strings.Contains(p, "/homebrew/")
}
