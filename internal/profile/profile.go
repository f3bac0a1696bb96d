package profile

import "sort"

// Profile is a named output format and quality pairing.
type Profile struct {
	Name    string
	Format  string // encoder format name
	Quality int    // 0-100, rescaled per format
}

// DefaultName is the profile used when a requested name is unknown.
const DefaultName = "web"

// Built-in profiles.
var profiles = map[string]Profile{
	"web": {
		Name:    "web",
		Format:  "jpeg",
		Quality: 82,
	},
	"web-hq": {
		Name:    "web-hq",
		Format:  "jpeg",
		Quality: 92,
	},
	"lossless": {
		Name:    "lossless",
		Format:  "png",
		Quality: 100,
	},
	"fast": {
		Name:    "fast",
		Format:  "png",
		Quality: 10,
	},
	"thumbnail": {
		Name:    "thumbnail",
		Format:  "jpeg",
		Quality: 70,
	},
	"webp": {
		Name:    "webp",
		Format:  "webp",
		Quality: 80,
	},
}

// Get returns a profile by name. Falls back to the default profile if
// unknown, keeping the requested name.
func Get(name string) Profile {
	if p, ok := profiles[name]; ok {
		return p
	}
	p := profiles[DefaultName]
	p.Name = name
	return p
}

// Lookup is Get without the fallback.
func Lookup(name string) (Profile, bool) {
	p, ok := profiles[name]
	return p, ok
}

// Names lists the built-in profiles alphabetically.
func Names() []string {
	names := make([]string, 0, len(profiles))
	for n := range profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Override returns p with format and quality replaced where set.
func (p Profile) Override(format string, quality int) Profile {
	if format != "" {
		p.Format = format
	}
	if quality > 0 {
		p.Quality = min(quality, 100)
	}
	return p
}
