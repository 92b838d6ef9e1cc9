package platform

import "strings"

// osMap maps runtime.GOOS values to canonical OS tokens.
var osMap = map[string]string{
	"linux":   OSLinux,
	"darwin":  OSDarwin,
	"windows": OSWindows,
}

// archMap maps runtime.GOARCH values to canonical architecture tokens.
var archMap = map[string]string{
	"amd64": ArchX8664,
	"arm64": ArchARM64,
	"arm":   ArchARMv7,
}

// familyMap maps distribution and family strings reported by gopsutil to
// canonical family names.
var familyMap = map[string]string{
	"debian":   FamilyDebian,
	"ubuntu":   FamilyDebian,
	"rhel":     FamilyRHEL,
	"centos":   FamilyRHEL,
	"rocky":    FamilyRHEL,
	"alma":     FamilyRHEL,
	"fedora":   FamilyFedora,
	"suse":     FamilySUSE,
	"opensuse": FamilySUSE,
	"arch":     FamilyArch,
	"manjaro":  FamilyArch,
	"alpine":   FamilyAlpine,
}

// normalizeOS converts a GOOS value to its canonical token.
// Unknown systems map to OSOther rather than failing.
func normalizeOS(goos string) string {
	if canonical, ok := osMap[strings.ToLower(goos)]; ok {
		return canonical
	}
	return OSOther
}

// normalizeArch converts a GOARCH value to its canonical token.
// Unknown architectures map to ArchOther rather than failing.
func normalizeArch(goarch string) string {
	if canonical, ok := archMap[strings.ToLower(goarch)]; ok {
		return canonical
	}
	return ArchOther
}

// mapFamily maps a distribution family string to a canonical family name.
func mapFamily(family string) string {
	normalized := strings.ToLower(strings.TrimSpace(family))
	if canonical, ok := familyMap[normalized]; ok {
		return canonical
	}
	return FamilyOther
}

// normalizeDistro converts distro IDs and versions to lowercase for
// consistency.
func normalizeDistro(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
