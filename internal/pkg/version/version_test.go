package version

import (
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func stubBuildInfo(t *testing.T, info *debug.BuildInfo, ok bool) {
	t.Helper()
	orig := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) { return info, ok }
	t.Cleanup(func() { readBuildInfo = orig })
}

func TestResolve(t *testing.T) {
	vcs := &debug.BuildInfo{
		Main: debug.Module{Version: "v1.2.3"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abcdef0123456789"},
			{Key: "vcs.time", Value: "2026-01-01T00:00:00Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}

	tests := []struct {
		name    string
		in      Info
		info    *debug.BuildInfo
		ok      bool
		want    Info
	}{
		{
			name: "빌드 정보 없음",
			in:   Info{},
			ok:   false,
			want: Info{Version: unknown, Commit: unknown},
		},
		{
			name: "VCS 정보로 보강",
			in:   Info{},
			info: vcs,
			ok:   true,
			want: Info{Version: "v1.2.3", Commit: "abcdef0123456789", BuildDate: "2026-01-01T00:00:00Z", DirtyBuild: true},
		},
		{
			name: "주입된 값 우선",
			in:   Info{Version: "1.0.0", Commit: "1111111", BuildDate: "2026-02-02"},
			info: vcs,
			ok:   true,
			want: Info{Version: "1.0.0", Commit: "1111111", BuildDate: "2026-02-02", DirtyBuild: true},
		},
		{
			name: "devel 버전은 무시",
			in:   Info{Commit: "none"},
			info: &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}},
			ok:   true,
			want: Info{Version: unknown, Commit: unknown},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubBuildInfo(t, tt.info, tt.ok)

			got := resolve(tt.in)

			tt.want.GoVersion = runtime.Version()
			tt.want.OS = runtime.GOOS
			tt.want.Arch = runtime.GOARCH
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGet(t *testing.T) {
	bi := Get()
	assert.NotEmpty(t, bi.Version)
	assert.NotEmpty(t, bi.Commit)
	assert.Equal(t, runtime.Version(), bi.GoVersion)
}

func TestInfo_String(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{"빈 버전", Info{}, unknown},
		{"버전만", Info{Version: "1.0.0", Commit: unknown}, "1.0.0"},
		{
			"전체",
			Info{Version: "1.0.0", Commit: "abcdef0123", BuildNumber: "12", BuildDate: "2026-01-01", GoVersion: "go1.24.11", OS: "linux", Arch: "amd64", DirtyBuild: true},
			"1.0.0+dirty (commit: abcdef0, build: 12, date: 2026-01-01, go_version: go1.24.11, os: linux, arch: amd64)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.info.String())
		})
	}
}

func TestInfo_ToMap(t *testing.T) {
	m := Info{Version: "1.0.0", DirtyBuild: true}.ToMap()
	assert.Equal(t, "1.0.0", m["version"])
	assert.Equal(t, true, m["dirty_build"])
	assert.Len(t, m, 8)
}
