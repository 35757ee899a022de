package iconversion

import (
	"path/filepath"
	"regexp"
	"strings"
)

var appIconSetName = regexp.MustCompile(`([^.]+)(\.appiconset)`)

// VersionedPath returns the path of the versioned catalog copy,
// e.g. "AppIcon.appiconset" becomes "AppIcon-Versioned.appiconset".
func VersionedPath(path string) string {
	return appIconSetName.ReplaceAllString(path, "${1}-Versioned${2}")
}

// suffixPath inserts "_text" before the file extension.
func suffixPath(path, text string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_" + text + ext
}
