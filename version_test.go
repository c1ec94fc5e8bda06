/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package columnorm

import (
	"runtime"
	"strings"
	"testing"
)

func TestGetVersionInfo(t *testing.T) {
	saved := GitCommit
	t.Cleanup(func() { GitCommit = saved })

	GitCommit = "abc123"
	info := GetVersionInfo()

	if info.Version != Version {
		t.Errorf("Expected version %s, got %s", Version, info.Version)
	}
	if info.GitCommit != "abc123" {
		t.Errorf("Expected linker commit to win, got %s", info.GitCommit)
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("Expected %s, got %s", runtime.Version(), info.GoVersion)
	}
	if info.BuildDate == "" {
		t.Error("BuildDate should never be empty")
	}
	if s := info.String(); !strings.Contains(s, "abc123") || !strings.HasPrefix(s, "columnorm "+Version) {
		t.Errorf("Unexpected version string %q", s)
	}
}
