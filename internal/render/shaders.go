package render

import _ "embed"

// Default shader sources compiled into the binary. On-disk copies live
// under shaders/ at the repository root and can be selected (and
// hot-reloaded) with the -vert/-frag flags.

//go:embed shaders/rt.vert
var defaultVertSrc string

//go:embed shaders/rt.frag
var defaultFragSrc string
