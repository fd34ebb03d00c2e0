package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const walkTrace = `
name: ten meters north
epoch: 1714550400
events:
  - at: 0s
    provider: enabled
  - at: 15s
    lat: 52.0
    lon: 13.0
    accuracy: 3
  - at: 20s
    lat: 52.0000898315
    lon: 13.0
    accuracy: 4
`

// isolate points config lookup and the data dir at a fresh temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	t.Setenv("PANTHER_DATA_DIR", filepath.Join(dir, "data"))
	return dir
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("panther %s: %v\n%s", strings.Join(args, " "), err, out.String())
	}
	return out.String()
}

func TestReplaySavesRecord(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "walk.yaml")
	if err := os.WriteFile(path, []byte(walkTrace), 0o644); err != nil {
		t.Fatal(err)
	}

	out := execute(t, "replay", path, "--save")
	for _, want := range []string{"ten meters north", "10.00 m", "5.00 s", "saved record"} {
		if !strings.Contains(out, want) {
			t.Errorf("replay output missing %q:\n%s", want, out)
		}
	}

	out = execute(t, "records", "stats")
	if !strings.Contains(out, "10.00 m") {
		t.Errorf("stats output missing distance:\n%s", out)
	}
	out = execute(t, "records", "list")
	if !strings.Contains(out, "10.00") || strings.Contains(out, "no records") {
		t.Errorf("list output:\n%s", out)
	}
}

func TestRecordsListEmpty(t *testing.T) {
	isolate(t)
	if out := execute(t, "records", "list"); !strings.Contains(out, "no records") {
		t.Errorf("list output = %q", out)
	}
}

func TestSnapshotWritesPNG(t *testing.T) {
	dir := isolate(t)
	out := filepath.Join(dir, "stats.png")
	execute(t, "snapshot", "--screen", "home,stats", "--out", out, "--width", "90", "--height", "160", "--frames", "40")

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 90 || b.Dy() != 160 {
		t.Errorf("bounds = %v, want 90x160", b)
	}
}

func TestSnapshotUnknownScreen(t *testing.T) {
	isolate(t)
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"snapshot", "--screen", "settings", "--out", "x.png"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an error for an unknown screen")
	}
}

func TestInvalidLogLevel(t *testing.T) {
	isolate(t)
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--log-level", "loud", "records", "stats"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an error for an invalid log level")
	}
}
