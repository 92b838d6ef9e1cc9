// Package platform detects the host operating system, CPU architecture,
// and (on Linux) distribution family, and exposes the result both to Go
// callers and as a read-only table inside Lua recipe files.
//
// Detection happens once per process; the profile is immutable afterwards.
// Unknown values map to the "other" category, which matches no OS- or
// arch-specific rule downstream.
package platform

import "context"

// Canonical OS tokens.
const (
	OSLinux   = "linux"
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSOther   = "other"
)

// Canonical architecture tokens.
const (
	ArchX8664 = "x86_64"
	ArchARM64 = "arm64"
	ArchARMv7 = "armv7"
	ArchOther = "other"
)

// Linux distribution family constants, used to decide which packaging
// formats (.deb, .rpm) are installable on this host.
const (
	FamilyDebian = "debian" // Debian, Ubuntu, Linux Mint
	FamilyRHEL   = "rhel"   // RHEL, CentOS, Rocky, AlmaLinux
	FamilyFedora = "fedora" // Fedora
	FamilySUSE   = "suse"   // openSUSE, SLES
	FamilyArch   = "arch"   // Arch Linux, Manjaro
	FamilyAlpine = "alpine" // Alpine Linux
	FamilyOther  = "other"  // non-Linux hosts or unrecognized distributions
)

// Profile contains the detected host platform.
type Profile struct {
	OS      string // canonical OS token
	Arch    string // canonical architecture token
	ArchRaw string // original GOARCH value (e.g. "amd64")
	// Family is the Linux distribution family, FamilyOther elsewhere.
	Family string
	// Distro is the distribution ID (e.g. "ubuntu"), Linux only.
	Distro string
	// DistroVersion is the distribution version (e.g. "22.04"), Linux only.
	DistroVersion string
}

// IsLinux reports whether the host runs Linux.
func (p *Profile) IsLinux() bool { return p.OS == OSLinux }

// IsMacOS reports whether the host runs macOS.
func (p *Profile) IsMacOS() bool { return p.OS == OSDarwin }

// IsWindows reports whether the host runs Windows.
func (p *Profile) IsWindows() bool { return p.OS == OSWindows }

// AcceptsDeb reports whether .deb packages are installable on this host.
// Plain Linux without a detected family keeps both packaging formats
// acceptable rather than rejecting either.
func (p *Profile) AcceptsDeb() bool {
	if !p.IsLinux() {
		return false
	}
	return p.Family == FamilyDebian || p.Family == FamilyOther
}

// AcceptsRPM reports whether .rpm packages are installable on this host.
func (p *Profile) AcceptsRPM() bool {
	if !p.IsLinux() {
		return false
	}
	switch p.Family {
	case FamilyRHEL, FamilyFedora, FamilySUSE, FamilyOther:
		return true
	}
	return false
}

// Detector is the interface for platform detection.
type Detector interface {
	Detect(ctx context.Context) (*Profile, error)
}
