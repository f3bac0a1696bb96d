package profile

// canvases maps preset names to [width, height].
var canvases = map[string][2]int{
	"720p":             {1280, 720},
	"1080p":            {1920, 1080},
	"4k":               {3840, 2160},
	"instagram_square": {1080, 1080},
	"instagram_story":  {1080, 1920},
	"youtube_thumb":    {1280, 720},
	"og_image":         {1200, 630},
	"twitter_card":     {1200, 675},
}

// Canvas returns the dimensions of a named stage size.
func Canvas(name string) (w, h int, ok bool) {
	d, ok := canvases[name]
	return d[0], d[1], ok
}
