package frameplayer

import "testing"

func TestLibraryRegisterAndGet(t *testing.T) {
	lib := NewLibrary()
	lib.Register("walk", PlaybackOptions{From: 0, To: 3})
	lib.Register("jump", PlaybackOptions{From: 4, To: 7, Loop: 1})
	lib.Register("", PlaybackOptions{From: 9})

	opts, ok := lib.Get("jump")
	if !ok {
		t.Fatalf("expected jump clip")
	}
	if opts.From != 4 || opts.To != 7 || opts.Loop != 1 {
		t.Fatalf("unexpected clip %+v", opts)
	}

	if _, ok := lib.Get("run"); ok {
		t.Fatalf("did not expect run clip")
	}
	if _, ok := lib.Get(""); ok {
		t.Fatalf("empty clip name must not resolve")
	}

	names := lib.Names()
	if len(names) != 2 || names[0] != "jump" || names[1] != "walk" {
		t.Fatalf("unexpected names %v", names)
	}
}

func TestLibraryNilReceiver(t *testing.T) {
	var lib *Library
	lib.Register("walk", PlaybackOptions{})
	if _, ok := lib.Get("walk"); ok {
		t.Fatalf("nil library must not resolve clips")
	}
	if names := lib.Names(); names != nil {
		t.Fatalf("nil library must have no names, got %v", names)
	}
}
