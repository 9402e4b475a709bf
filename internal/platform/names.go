package platform

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// Title sanitization constants
const (
	MaxTitleLength = 120
	FallbackTitle  = "video"
)

// ExtPlaceholder is the engine's output-template extension token
const ExtPlaceholder = "%(ext)s"

var (
	illegalChars  = regexp.MustCompile(`[\\/:*?"<>|]`)
	whitespaceRun = regexp.MustCompile(`\s+`)
)

// SanitizeTitle turns a raw title into a safe file base name: illegal
// characters become underscores, whitespace runs collapse to single spaces,
// the result is trimmed and truncated. An empty result falls back to a
// generic name.
func SanitizeTitle(raw string) string {
	s := illegalChars.ReplaceAllString(raw, "_")
	s = whitespaceRun.ReplaceAllString(s, " ")
	s = strings.Trim(s, "_ ")

	if runes := []rune(s); len(runes) > MaxTitleLength {
		s = strings.Trim(string(runes[:MaxTitleLength]), "_ ")
	}

	if s == "" {
		return FallbackTitle
	}
	return s
}

// ResolveTarget computes the output path for a new download. In non-overwrite
// mode it probes base, base(1), base(2)… until a free path is found. In
// overwrite mode the exact base path is returned regardless of existing files;
// the caller removes any prior file. The returned template is the same path
// with the extension replaced by the engine's %(ext)s token.
func ResolveTarget(dir, title, ext string, overwrite bool) (template, target string) {
	base := SanitizeTitle(title)

	if overwrite {
		target = filepath.Join(dir, base+"."+ext)
		return templateFor(target, ext), target
	}

	name := base
	for i := 1; ; i++ {
		candidate := filepath.Join(dir, name+"."+ext)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return templateFor(candidate, ext), candidate
		}
		name = fmt.Sprintf("%s(%d)", base, i)
	}
}

// ResolveRenamePath computes the final path for a downloaded file. Probing is
// the same as ResolveTarget, except a candidate equal to currentPath is
// accepted immediately so an already well-named file needs no rename.
func ResolveRenamePath(dir, title, ext, currentPath string) string {
	base := SanitizeTitle(title)

	name := base
	for i := 1; ; i++ {
		candidate := filepath.Join(dir, name+"."+ext)
		if candidate == currentPath {
			return candidate
		}
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
		name = fmt.Sprintf("%s(%d)", base, i)
	}
}

// TitleFromURL derives a display title from the last path segment of a URL.
// Malformed or bare URLs yield a timestamped generic name; this never fails.
func TitleFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Path == "" || u.Path == "/" {
		return genericTitle()
	}

	segment := path.Base(u.Path)
	segment = strings.TrimSuffix(segment, path.Ext(segment))
	if segment == "" || segment == "." || segment == "/" {
		return genericTitle()
	}
	return segment
}

func genericTitle() string {
	return fmt.Sprintf("download-%d", time.Now().Unix())
}

func templateFor(target, ext string) string {
	return strings.TrimSuffix(target, "."+ext) + "." + ExtPlaceholder
}
