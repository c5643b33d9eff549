package pingsweep

import (
	"bufio"
	"go/build/constraint"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var unixGOOS = map[string]bool{
	"aix": true, "android": true, "darwin": true, "dragonfly": true, "freebsd": true,
	"hurd": true, "illumos": true, "ios": true, "linux": true, "netbsd": true,
	"openbsd": true, "solaris": true,
}

func buildConstraint(t *testing.T, path string) constraint.Expr {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open %s: %v", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if constraint.IsGoBuild(line) {
			expr, err := constraint.Parse(line)
			if err != nil {
				t.Fatalf("Failed to parse %s constraint: %v", path, err)
			}
			return expr
		}
		if strings.HasPrefix(line, "package ") {
			break
		}
	}
	t.Fatalf("%s has no build constraint", path)
	return nil
}

func TestPrivilegeFilesCoverEveryGOOS(t *testing.T) {
	files, err := filepath.Glob("privilege_*.go")
	if err != nil {
		t.Fatalf("Glob() error = %v", err)
	}

	var exprs []constraint.Expr
	for _, file := range files {
		if strings.HasSuffix(file, "_test.go") {
			continue
		}
		exprs = append(exprs, buildConstraint(t, file))
	}

	for _, goos := range []string{"linux", "darwin", "freebsd", "solaris", "windows", "js", "wasip1", "plan9"} {
		matches := 0
		for _, expr := range exprs {
			if expr.Eval(func(tag string) bool {
				return tag == goos || (tag == "unix" && unixGOOS[goos])
			}) {
				matches++
			}
		}
		if matches != 1 {
			t.Errorf("GOOS=%s builds %d privilege implementations, want 1", goos, matches)
		}
	}
}
