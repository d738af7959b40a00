package renderer

import "github.com/unrolled/render"

// New returns the JSON renderer shared by every handler. Development mode indents output.
func New(isDevelopment bool) *render.Render {
	return render.New(render.Options{
		IndentJSON:   isDevelopment,
		UnEscapeHTML: true,
	})
}
