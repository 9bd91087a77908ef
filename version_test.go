package remindr

import "testing"

func TestVersion_IsSemver(t *testing.T) {
	if !IsSemver(Version()) {
		t.Fatalf("embedded version must be semver: got %q", Version())
	}
}

func TestIsSemver(t *testing.T) {
	cases := []struct {
		version string
		want    bool
	}{
		{version: "0.1.0", want: true},
		{version: "1.2.3-alpha.1", want: true},
		{version: "2.0.0+build.7", want: true},
		{version: "v1.2.3", want: false},
		{version: "1.2", want: false},
		{version: "01.2.3", want: false},
	}

	for _, tc := range cases {
		got := IsSemver(tc.version)
		if got != tc.want {
			t.Fatalf("IsSemver(%q): got %v, want %v", tc.version, got, tc.want)
		}
	}
}

func TestBuildInfo_String(t *testing.T) {
	cases := []struct {
		info BuildInfo
		want string
	}{
		{info: BuildInfo{Version: "0.1.0"}, want: "0.1.0"},
		{info: BuildInfo{Version: "0.1.0", GoVersion: "go1.25.7"}, want: "0.1.0 go1.25.7"},
		{
			info: BuildInfo{Version: "0.1.0", Revision: "0123456789abcdef", Modified: true, GoVersion: "go1.25.7"},
			want: "0.1.0 (0123456789ab-dirty) go1.25.7",
		},
	}
	for _, tc := range cases {
		if got := tc.info.String(); got != tc.want {
			t.Fatalf("String(): got %q, want %q", got, tc.want)
		}
	}
}

func TestReadBuildInfo_CarriesVersion(t *testing.T) {
	if got := ReadBuildInfo().Version; got != Version() {
		t.Fatalf("version: got %q, want %q", got, Version())
	}
}
