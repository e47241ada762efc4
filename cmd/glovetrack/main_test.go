package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStreamURL(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{addr: ":8080", want: "http://localhost:8080/api/stream"},
		{addr: "127.0.0.1:9000", want: "http://127.0.0.1:9000/api/stream"},
	}

	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			if got := streamURL(tt.addr); got != tt.want {
				t.Errorf("streamURL(%q) = %q, want %q", tt.addr, got, tt.want)
			}
		})
	}
}

func TestFindWebDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "web"), 0755); err != nil {
		t.Fatal(err)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	got := findWebDir()
	if filepath.Base(got) != "web" || !filepath.IsAbs(got) {
		t.Errorf("findWebDir() = %q, want absolute path to web", got)
	}
}
