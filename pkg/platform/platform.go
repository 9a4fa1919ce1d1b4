// Package platform classifies the running host into a platform tag and
// scores package variants for compatibility.
//
// Platform tags follow the repository's fixed vocabulary ("linux_x86_64",
// "macosx_11_0_arm64", "win_amd64", ...) plus two broad-compatibility tags
// that only appear on artifacts, never on hosts: "any" and
// "macosx_10_9_universal2".
package platform

import (
	"runtime"
	"sort"
	"strings"

	"github.com/magland/mip/pkg/manifest"
)

// TagUniversal2 is the macOS fat-binary tag. It is compatible with both
// Intel and Apple Silicon hosts but is never produced by detection.
const TagUniversal2 = "macosx_10_9_universal2"

// DetectTag returns the platform tag for the running host.
//
// Unknown OS/architecture combinations degrade to a best-effort
// "{os}_{arch}" tag rather than failing.
func DetectTag() string {
	return tagFor(runtime.GOOS, runtime.GOARCH)
}

// tagFor composes a tag from a GOOS/GOARCH pair. Architecture aliases are
// normalized first: amd64 means x86_64, arm64 means aarch64 on Linux and
// arm64 on macOS, 386 means i686.
func tagFor(goos, goarch string) string {
	arch := goarch
	switch goarch {
	case "amd64":
		arch = "x86_64"
	case "arm64":
		if goos == "linux" {
			arch = "aarch64"
		}
	case "386":
		arch = "i686"
	}

	switch goos {
	case "linux":
		return "linux_" + arch
	case "darwin":
		switch arch {
		case "x86_64":
			return "macosx_10_9_x86_64"
		case "arm64":
			return "macosx_11_0_arm64"
		default:
			return "macosx_10_9_" + arch
		}
	case "windows":
		switch arch {
		case "x86_64":
			return "win_amd64"
		case "arm64":
			return "win_arm64"
		case "i686":
			return "win32"
		default:
			return "win_" + arch
		}
	default:
		return goos + "_" + arch
	}
}

// Compatible reports whether an artifact built for variantTag can run on a
// host identified by hostTag.
//
// "any" is always compatible, exact matches are compatible, and
// "macosx_10_9_universal2" artifacts run on both macOS host tags. The
// special case is one-directional: universal2 is only ever a variant tag.
func Compatible(variantTag, hostTag string) bool {
	if variantTag == manifest.TagAny {
		return true
	}
	if variantTag == hostTag {
		return true
	}
	if variantTag == TagUniversal2 {
		return hostTag == "macosx_10_9_x86_64" || hostTag == "macosx_11_0_arm64"
	}
	return false
}

// SelectBestVariant picks the preferred compatible variant for hostTag.
//
// Preference order: exact tag match, then universal2 on macOS hosts, then
// "any". Within a preference class the first variant in input order wins;
// input order is assumed to already encode preference (e.g., newest first).
// Returns ok=false when variants is empty or nothing is compatible.
func SelectBestVariant(variants []manifest.Variant, hostTag string) (manifest.Variant, bool) {
	var compatible []manifest.Variant
	for _, v := range variants {
		if Compatible(v.PlatformTag, hostTag) {
			compatible = append(compatible, v)
		}
	}
	if len(compatible) == 0 {
		return manifest.Variant{}, false
	}

	for _, v := range compatible {
		if v.PlatformTag == hostTag {
			return v, true
		}
	}
	if strings.HasPrefix(hostTag, "macosx_") {
		for _, v := range compatible {
			if v.PlatformTag == TagUniversal2 {
				return v, true
			}
		}
	}
	for _, v := range compatible {
		if v.PlatformTag == manifest.TagAny {
			return v, true
		}
	}

	// Unreachable for host tags produced by DetectTag, but Compatible may
	// admit future tag classes.
	return compatible[0], true
}

// Tags returns the sorted unique platform tags present in variants.
func Tags(variants []manifest.Variant) []string {
	seen := make(map[string]bool, len(variants))
	var tags []string
	for _, v := range variants {
		if !seen[v.PlatformTag] {
			seen[v.PlatformTag] = true
			tags = append(tags, v.PlatformTag)
		}
	}
	sort.Strings(tags)
	return tags
}
