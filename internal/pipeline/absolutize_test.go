package pipeline

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestAbsolutizeResourcePaths(t *testing.T) {
	dir := t.TempDir()

	t.Run("relative src rewritten", func(t *testing.T) {
		got, err := AbsolutizeResourcePaths(`<p><img src="img/x.png" alt="x"/></p>`, dir)
		if err != nil {
			t.Fatalf("AbsolutizeResourcePaths: %v", err)
		}

		wantPath := "file://" + filepath.ToSlash(filepath.Join(dir, "img", "x.png"))
		if !strings.Contains(got, `src="`+wantPath+`"`) {
			t.Errorf("got %q, want src %q", got, wantPath)
		}
		if !strings.Contains(got, `alt="x"`) {
			t.Errorf("other attributes must survive: %q", got)
		}
	})

	t.Run("empty note dir is a no-op", func(t *testing.T) {
		in := `<img src="img/x.png"/>`
		got, err := AbsolutizeResourcePaths(in, "")
		if err != nil {
			t.Fatalf("AbsolutizeResourcePaths: %v", err)
		}
		if got != in {
			t.Errorf("got %q, want unchanged", got)
		}
	})

	t.Run("already resolvable sources untouched", func(t *testing.T) {
		sources := []string{
			"http://example.com/x.png",
			"https://example.com/x.png",
			"file:///abs/x.png",
			"qrc:/styles/x.png",
			"data:image/png;base64,AAAA",
			"//cdn.example.com/x.png",
			"#anchor",
		}

		for _, src := range sources {
			in := `<img src="` + src + `"/>`
			got, err := AbsolutizeResourcePaths(in, dir)
			if err != nil {
				t.Fatalf("AbsolutizeResourcePaths(%q): %v", src, err)
			}
			if !strings.Contains(got, src) {
				t.Errorf("source %q must survive unchanged, got %q", src, got)
			}
		}
	})

	t.Run("paths escaping the note dir untouched", func(t *testing.T) {
		in := `<img src="../../etc/passwd"/>`
		got, err := AbsolutizeResourcePaths(in, dir)
		if err != nil {
			t.Fatalf("AbsolutizeResourcePaths: %v", err)
		}
		if strings.Contains(got, "file://") {
			t.Errorf("traversing path must not be absolutized: %q", got)
		}
	})

	t.Run("non-img elements untouched", func(t *testing.T) {
		in := `<a href="doc/x.md">link</a><script src="x.js"></script>`
		got, err := AbsolutizeResourcePaths(in, dir)
		if err != nil {
			t.Fatalf("AbsolutizeResourcePaths: %v", err)
		}
		if strings.Contains(got, "file://") {
			t.Errorf("only img src is rewritten, got %q", got)
		}
	})
}

func TestIsRelativeResource(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"img/x.png", true},
		{"x.png", true},
		{"./x.png", true},
		{"", false},
		{"#frag", false},
		{"//host/x.png", false},
		{"http://h/x.png", false},
		{"data:image/png;base64,A", false},
		{"/abs/x.png", false},
	}

	for _, tt := range tests {
		if got := isRelativeResource(tt.src); got != tt.want {
			t.Errorf("isRelativeResource(%q) = %v, want %v", tt.src, got, tt.want)
		}
	}
}
