package browser

import (
	"runtime"
	"slices"
	"testing"
)

func TestCommand(t *testing.T) {
	tests := []struct {
		goos     string
		wantName string
		wantArgs []string
	}{
		{"darwin", "open", []string{"https://qiita.com/a"}},
		{"linux", "xdg-open", []string{"https://qiita.com/a"}},
		{"windows", "rundll32", []string{"url.dll,FileProtocolHandler", "https://qiita.com/a"}},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			name, args, err := command(tt.goos, "https://qiita.com/a")
			if err != nil {
				t.Fatal(err)
			}
			if name != tt.wantName || !slices.Equal(args, tt.wantArgs) {
				t.Errorf("command(%q) = %s %v, want %s %v", tt.goos, name, args, tt.wantName, tt.wantArgs)
			}
		})
	}
	if _, _, err := command("plan9", "https://qiita.com"); err == nil {
		t.Error("expected error for unsupported OS")
	}
}

func TestOpen(t *testing.T) {
	if _, _, err := command(runtime.GOOS, ""); err != nil {
		t.Skipf("no browser command on %s", runtime.GOOS)
	}
	var got []string
	orig := start
	start = func(name string, args ...string) error {
		got = append([]string{name}, args...)
		return nil
	}
	t.Cleanup(func() { start = orig })

	if err := Open("https://qiita.com/kaleidot725"); err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if len(got) == 0 || got[len(got)-1] != "https://qiita.com/kaleidot725" {
		t.Errorf("started %v, want URL as last argument", got)
	}
}

func TestOpenRejectsNonWebURLs(t *testing.T) {
	orig := start
	start = func(string, ...string) error {
		t.Error("start called for rejected URL")
		return nil
	}
	t.Cleanup(func() { start = orig })

	for _, u := range []string{"", "file:///etc/passwd", "javascript:alert(1)", "qiita.com/a", "https://", "%zz"} {
		if err := Open(u); err == nil {
			t.Errorf("Open(%q) = nil, want error", u)
		}
	}
}
