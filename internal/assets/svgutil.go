package assets

import "regexp"

// paintProp matches a paint declaration inside a style attribute, with
// optional space after the colon and an optional '#' before a hex colour.
var paintProp = regexp.MustCompile(`\b(fill|stroke|stop-color):\s*#?([0-9a-fA-F]{6}|[0-9a-fA-F]{3})\b`)

// sanitizeSVG normalises paint declarations oksvg rejects, such as
// "fill: #fff" or "stroke:000000", to the "prop:#hex" form.
func sanitizeSVG(svg []byte) []byte {
	return paintProp.ReplaceAll(svg, []byte("$1:#$2"))
}
