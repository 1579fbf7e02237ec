package app

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rorycl/tdlayout/config"
)

// call records a single Layouter invocation.
type call struct {
	Method string
	Path   string
	FwTop  uint64
}

// fakeLayouter records its calls and returns canned results.
type fakeLayouter struct {
	calls    []call
	artifact string
	err      error
}

func (f *fakeLayouter) Memory(src config.Source) (string, error) {
	f.calls = append(f.calls, call{Method: "memory", Path: src.Path})
	return f.artifact, f.err
}

func (f *fakeLayouter) Image(src config.Source, fwTop uint64) (string, error) {
	f.calls = append(f.calls, call{Method: "image", Path: src.Path, FwTop: fwTop})
	return f.artifact, f.err
}

func TestDispatch(t *testing.T) {

	src := config.Source{Path: "layout.yaml"}
	tests := []struct {
		name      string
		mode      ConfigMode
		wantCalls []call
		isErr     bool
	}{
		{
			name:      "memory",
			mode:      MemoryMode,
			wantCalls: []call{{Method: "memory", Path: "layout.yaml"}},
		},
		{
			name:      "image",
			mode:      ImageMode,
			wantCalls: []call{{Method: "image", Path: "layout.yaml", FwTop: 0x1000}},
		},
		{
			name:  "invalid",
			mode:  InvalidMode,
			isErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeLayouter{artifact: "artifact"}
			got, err := Dispatch(fake, tt.mode, src, 0x1000)
			if tt.isErr {
				var ue *UsageError
				if !errors.As(err, &ue) {
					t.Fatalf("expected UsageError, got %v", err)
				}
				if len(fake.calls) != 0 {
					t.Errorf("unexpected calls %v", fake.calls)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != "artifact" {
				t.Errorf("got %q", got)
			}
			if diff := cmp.Diff(tt.wantCalls, fake.calls); diff != "" {
				t.Errorf("calls mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDispatchCollaboratorError(t *testing.T) {
	want := errors.New("syntax error")
	fake := &fakeLayouter{err: want}
	if _, err := Dispatch(fake, ImageMode, config.Source{}, 0x1000); !errors.Is(err, want) {
		t.Errorf("got %v want %v", err, want)
	}
	if got := len(fake.calls); got != 1 {
		t.Errorf("got %d calls, want 1", got)
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]ConfigMode{"memory": MemoryMode, "image": ImageMode, "IMAGE": ImageMode} {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Errorf("%s: got %s, %v", in, got, err)
		}
	}
	_, err := ParseMode("json")
	var ue *UsageError
	if !errors.As(err, &ue) {
		t.Errorf("expected UsageError, got %v", err)
	}
}
