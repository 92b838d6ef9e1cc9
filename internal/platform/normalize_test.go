package platform

import "testing"

func TestNormalizeOS(t *testing.T) {
	tests := []struct {
		name string
		goos string
		want string
	}{
		{"linux", "linux", OSLinux},
		{"darwin", "darwin", OSDarwin},
		{"windows", "windows", OSWindows},
		{"mixed_case", "Linux", OSLinux},
		{"freebsd_maps_to_other", "freebsd", OSOther},
		{"plan9_maps_to_other", "plan9", OSOther},
		{"empty_maps_to_other", "", OSOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeOS(tt.goos); got != tt.want {
				t.Errorf("normalizeOS(%q) = %q, want %q", tt.goos, got, tt.want)
			}
		})
	}
}

func TestNormalizeArch(t *testing.T) {
	tests := []struct {
		name   string
		goarch string
		want   string
	}{
		{"amd64", "amd64", ArchX8664},
		{"arm64", "arm64", ArchARM64},
		{"arm", "arm", ArchARMv7},
		{"riscv64_maps_to_other", "riscv64", ArchOther},
		{"s390x_maps_to_other", "s390x", ArchOther},
		{"empty_maps_to_other", "", ArchOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeArch(tt.goarch); got != tt.want {
				t.Errorf("normalizeArch(%q) = %q, want %q", tt.goarch, got, tt.want)
			}
		})
	}
}

func TestMapFamily(t *testing.T) {
	tests := []struct {
		name   string
		family string
		want   string
	}{
		{"debian", "debian", FamilyDebian},
		{"ubuntu_is_debian", "ubuntu", FamilyDebian},
		{"centos_is_rhel", "centos", FamilyRHEL},
		{"fedora", "fedora", FamilyFedora},
		{"opensuse", "opensuse", FamilySUSE},
		{"manjaro_is_arch", "manjaro", FamilyArch},
		{"alpine", "alpine", FamilyAlpine},
		{"whitespace_trimmed", "  debian  ", FamilyDebian},
		{"case_insensitive", "Debian", FamilyDebian},
		{"unknown", "slackware", FamilyOther},
		{"empty", "", FamilyOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapFamily(tt.family); got != tt.want {
				t.Errorf("mapFamily(%q) = %q, want %q", tt.family, got, tt.want)
			}
		})
	}
}
