package frameplayer

import "sort"

// Library stores named playback options, so hosts can refer to clips like
// "walk" or "explode" instead of raw frame ranges.
type Library struct {
	clips map[string]PlaybackOptions
}

// NewLibrary creates an empty library.
func NewLibrary() *Library {
	return &Library{clips: make(map[string]PlaybackOptions)}
}

// Register adds a clip to the library.
func (l *Library) Register(name string, opts PlaybackOptions) {
	if l == nil || name == "" {
		return
	}
	l.clips[name] = opts
}

// Names returns the registered clip names in sorted order.
func (l *Library) Names() []string {
	if l == nil {
		return nil
	}
	names := make([]string, 0, len(l.clips))
	for name := range l.clips {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns a clip by name.
func (l *Library) Get(name string) (PlaybackOptions, bool) {
	if l == nil || name == "" {
		return PlaybackOptions{}, false
	}
	opts, ok := l.clips[name]
	return opts, ok
}
