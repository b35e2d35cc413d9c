package resolve

import (
	"errors"
	"testing"
)

func TestPath(t *testing.T) {
	base := Request{
		Filename:    "config.json",
		RootFolder:  "/work/project",
		GlobalDir:   "/home/u/.statekit",
		StateFolder: ".statekit",
	}

	tests := []struct {
		name string
		mod  func(r *Request)
		want string
	}{
		{
			name: "plain root",
			mod:  func(r *Request) {},
			want: "/work/project/config.json",
		},
		{
			name: "global",
			mod:  func(r *Request) { r.IsGlobal = true },
			want: "/home/u/.statekit/config.json",
		},
		{
			name: "global wins over state",
			mod:  func(r *Request) { r.IsGlobal = true; r.IsState = true },
			want: "/home/u/.statekit/config.json",
		},
		{
			name: "state folder",
			mod:  func(r *Request) { r.IsState = true },
			want: "/work/project/.statekit/config.json",
		},
		{
			name: "custom file path",
			mod:  func(r *Request) { r.FilePath = "conf.d" },
			want: "/work/project/conf.d/config.json",
		},
		{
			name: "custom file path wins over state",
			mod:  func(r *Request) { r.FilePath = "conf.d"; r.IsState = true },
			want: "/work/project/conf.d/config.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base
			tt.mod(&req)
			got, err := Path(req)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestPathMissingFilename(t *testing.T) {
	_, err := Path(Request{RootFolder: "/work"})
	if !errors.Is(err, ErrMissingFilename) {
		t.Fatalf("expected ErrMissingFilename, got %v", err)
	}
}
