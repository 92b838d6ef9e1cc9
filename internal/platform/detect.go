package platform

import (
	"context"
	"runtime"
	"sync"

	"github.com/shirou/gopsutil/v4/host"
)

// RealDetector implements Detector using the running host.
type RealDetector struct{}

// NewDetector creates a new platform detector.
func NewDetector() Detector {
	return &RealDetector{}
}

// Detect reads the host OS and CPU architecture from the Go runtime and,
// on Linux, asks gopsutil for distribution details. It never fails on
// unknown platforms: unrecognized values normalize to the "other" category.
//
// Distro detection failure is not an error: the profile keeps Family
// "other" and asset filtering simply treats the host as generic Linux.
func (d *RealDetector) Detect(ctx context.Context) (*Profile, error) {
	profile := &Profile{
		OS:      normalizeOS(runtime.GOOS),
		Arch:    normalizeArch(runtime.GOARCH),
		ArchRaw: runtime.GOARCH,
		Family:  FamilyOther,
	}

	if profile.OS == OSLinux {
		distro, family, version, err := host.PlatformInformationWithContext(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return profile, nil
		}
		profile.Distro = normalizeDistro(distro)
		profile.DistroVersion = normalizeDistro(version)
		// Some distros report the family under the platform field instead.
		profile.Family = mapFamily(family)
		if profile.Family == FamilyOther {
			profile.Family = mapFamily(distro)
		}
	}

	return profile, nil
}

var (
	currentOnce    sync.Once
	currentProfile *Profile
)

// Current returns the process-wide platform profile, detecting it on first
// use. The profile is immutable; later calls return the same value.
func Current() *Profile {
	currentOnce.Do(func() {
		profile, err := NewDetector().Detect(context.Background())
		if err != nil {
			// Detection only errors on context cancellation, which cannot
			// happen with a background context. Fall back to runtime values.
			profile = &Profile{
				OS:      normalizeOS(runtime.GOOS),
				Arch:    normalizeArch(runtime.GOARCH),
				ArchRaw: runtime.GOARCH,
				Family:  FamilyOther,
			}
		}
		currentProfile = profile
	})
	return currentProfile
}
