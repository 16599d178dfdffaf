// Package version 링커 플래그로 주입된 빌드 메타데이터와 런타임 정보를 제공합니다.
//
//	go build -ldflags "-X github.com/darkkaiser/fastnext-orchestrator/internal/pkg/version.appVersion=1.0.0"
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"sync/atomic"
)

const unknown = "unknown"

// 빌드 시점에 -ldflags "-X ..."로 주입됩니다. 직접 참조하지 말고 Get()을 사용합니다.
var (
	appVersion    = ""
	gitCommitHash = ""
	gitTreeState  = ""
	buildDate     = ""
	buildNumber   = ""
)

var current atomic.Pointer[Info]

// readBuildInfo 테스트에서 교체할 수 있습니다.
var readBuildInfo = debug.ReadBuildInfo

func init() {
	bi := resolve(Info{
		Version:     strings.TrimSpace(appVersion),
		Commit:      strings.TrimSpace(gitCommitHash),
		BuildDate:   strings.TrimSpace(buildDate),
		BuildNumber: strings.TrimSpace(buildNumber),
		DirtyBuild:  strings.EqualFold(strings.TrimSpace(gitTreeState), "dirty"),
	})
	current.Store(&bi)
}

// Info 빌드 정보
type Info struct {
	Version     string `json:"version"`
	Commit      string `json:"commit"`
	BuildDate   string `json:"build_date"`
	BuildNumber string `json:"build_number"`
	GoVersion   string `json:"go_version"`
	OS          string `json:"os"`
	Arch        string `json:"arch"`
	DirtyBuild  bool   `json:"dirty_build"`
}

// Get 프로세스의 빌드 정보를 반환합니다.
func Get() Info {
	if bi := current.Load(); bi != nil {
		return *bi
	}
	return Info{Version: unknown, Commit: unknown, BuildDate: unknown, BuildNumber: "0"}
}

// resolve 비어 있는 필드를 런타임 정보와 debug.BuildInfo의 VCS 정보로 채웁니다.
// ldflags로 주입된 값이 항상 우선합니다.
func resolve(bi Info) Info {
	bi.GoVersion = orDefault(bi.GoVersion, runtime.Version())
	bi.OS = orDefault(bi.OS, runtime.GOOS)
	bi.Arch = orDefault(bi.Arch, runtime.GOARCH)

	if info, ok := readBuildInfo(); ok && info != nil {
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if isBlank(bi.Commit) {
					bi.Commit = s.Value
				}
			case "vcs.time":
				if isBlank(bi.BuildDate) {
					bi.BuildDate = s.Value
				}
			case "vcs.modified":
				bi.DirtyBuild = bi.DirtyBuild || s.Value == "true"
			}
		}
		if bi.Version == "" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			bi.Version = info.Main.Version
		}
	}

	if isBlank(bi.Version) {
		bi.Version = unknown
	}
	if isBlank(bi.Commit) {
		bi.Commit = unknown
	}
	return bi
}

func isBlank(s string) bool {
	return s == "" || s == unknown || s == "none"
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// ToMap 구조적 로깅용 필드 맵을 반환합니다.
func (i Info) ToMap() map[string]any {
	return map[string]any{
		"version":      i.Version,
		"commit":       i.Commit,
		"build_date":   i.BuildDate,
		"build_number": i.BuildNumber,
		"go_version":   i.GoVersion,
		"os":           i.OS,
		"arch":         i.Arch,
		"dirty_build":  i.DirtyBuild,
	}
}

// String 예: "1.0.0+dirty (commit: f25b8bf, build: 12, go_version: go1.24.11, os: linux, arch: amd64)"
func (i Info) String() string {
	if i.Version == "" {
		return unknown
	}

	v := i.Version
	if i.DirtyBuild {
		v += "+dirty"
	}

	var details []string
	if !isBlank(i.Commit) {
		details = append(details, "commit: "+shortCommit(i.Commit))
	}
	if i.BuildNumber != "" {
		details = append(details, "build: "+i.BuildNumber)
	}
	if !isBlank(i.BuildDate) {
		details = append(details, "date: "+i.BuildDate)
	}
	for _, kv := range [][2]string{{"go_version", i.GoVersion}, {"os", i.OS}, {"arch", i.Arch}} {
		if kv[1] != "" {
			details = append(details, kv[0]+": "+kv[1])
		}
	}

	if len(details) == 0 {
		return v
	}
	return fmt.Sprintf("%s (%s)", v, strings.Join(details, ", "))
}

func shortCommit(c string) string {
	if len(c) > 7 {
		return c[:7]
	}
	return c
}
