// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"runtime"
	"strings"
	"testing"
)

// setBuild overrides the ldflags variables for one test.
func setBuild(t *testing.T, commit, dirty, buildTime, version string) {
	t.Helper()
	saved := [4]string{GitCommit, GitDirty, BuildTime, Version}
	t.Cleanup(func() {
		GitCommit, GitDirty, BuildTime, Version = saved[0], saved[1], saved[2], saved[3]
	})
	GitCommit, GitDirty, BuildTime, Version = commit, dirty, buildTime, version
}

func TestInfo(t *testing.T) {
	setBuild(t, "abc1234", "false", "2026-10-18T00:00:00Z", "1.2.3")

	if got, want := Info(), "1.2.3 (abc1234, 2026-10-18T00:00:00Z)"; got != want {
		t.Errorf("Info() = %q, want %q", got, want)
	}
	if got := Short(); got != "1.2.3" {
		t.Errorf("Short() = %q", got)
	}
}

func TestInfoDirty(t *testing.T) {
	setBuild(t, "abc1234", "true", "now", "1.2.3")

	if got := Info(); !strings.Contains(got, "abc1234-dirty") {
		t.Errorf("Info() = %q, want dirty marker", got)
	}
}

func TestFull(t *testing.T) {
	setBuild(t, "abc1234", "false", "now", "1.2.3")

	full := Full()
	if !strings.HasPrefix(full, Info()+"\n") {
		t.Errorf("Full() does not start with Info(): %q", full)
	}
	if !strings.Contains(full, runtime.GOOS+"/"+runtime.GOARCH) {
		t.Errorf("Full() missing platform: %q", full)
	}
}

func TestCurrent(t *testing.T) {
	setBuild(t, "abc1234", "true", "now", "1.2.3")

	build := Current()
	if build.Commit != "abc1234" || !build.Dirty || build.Version != "1.2.3" {
		t.Errorf("Current() = %+v", build)
	}
	if build.Go != runtime.Version() {
		t.Errorf("Go = %q, want %q", build.Go, runtime.Version())
	}
}
