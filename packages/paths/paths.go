package paths

import (
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
)

var winDrivePattern = regexp.MustCompile(`^[A-Za-z]:[\\/]`)

// IsAbs reports whether pth is an absolute path on the current platform.
// On Windows that means a drive-letter prefix (C:\ or C:/) or a // UNC
// prefix; everywhere else a leading slash.
func IsAbs(pth string) bool {
	if pth == "" {
		return false
	}
	if runtime.GOOS == "windows" {
		return winDrivePattern.MatchString(pth) || strings.HasPrefix(pth, "//")
	}
	return strings.HasPrefix(pth, "/")
}

// ExpandUser replaces a leading ~ with the current user's home directory.
// Paths naming another user (~bob/...) are returned unchanged.
func ExpandUser(pth string) string {
	if !strings.HasPrefix(pth, "~") {
		return pth
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return pth
	}
	if pth == "~" {
		return home
	}
	if strings.HasPrefix(pth, "~/") || strings.HasPrefix(pth, `~\`) {
		return filepath.Join(home, pth[2:])
	}
	return pth
}

// Exists reports whether pth names an existing file or directory.
func Exists(pth string) bool {
	_, err := os.Stat(pth)
	return err == nil
}

// IsDir reports whether pth names an existing directory.
func IsDir(pth string) bool {
	info, err := os.Stat(pth)
	return err == nil && info.IsDir()
}

// ResolveMeta resolves a path supplied in document metadata.
//
// An absolute path must exist; when it doesn't the result is "". A
// relative path is joined against the document's directory first and the
// configured basepath second, and the first join that exists wins. When
// neither base produces an existing path the expanded value is returned
// as given so the caller can decide what to do with it.
func ResolveMeta(target, docDir, basepath string) string {
	if target == "" {
		return ""
	}
	target = ExpandUser(target)
	if IsAbs(target) {
		if !Exists(target) {
			return ""
		}
		return target
	}
	for _, base := range []string{docDir, basepath} {
		if base == "" {
			continue
		}
		joined := filepath.Join(base, target)
		if Exists(joined) {
			return joined
		}
	}
	return target
}

// BasePath derives the base directory used when resolving relative
// metadata paths. An explicit candidate wins when it expands to an
// absolute, existing directory; otherwise the directory of an existing
// document path is used; otherwise the result is "", meaning the
// document is an unsaved buffer with no physical location.
func BasePath(candidate, docPath string) string {
	if candidate != "" {
		candidate = ExpandUser(candidate)
		if IsAbs(candidate) && IsDir(candidate) {
			return candidate
		}
	}
	if docPath != "" && Exists(docPath) {
		return filepath.Dir(docPath)
	}
	return ""
}
