package tracegen

import "strings"

type NameStyle interface {
	Format(name string) string
}

type NameStyleFunc func(name string) string

func (f NameStyleFunc) Format(name string) string {
	return f(name)
}

// BigCamelStyle turns snake_case tracepoint names into exported Go / track
// event identifiers: "start_render_pass" -> "StartRenderPass".
var BigCamelStyle NameStyleFunc = func(name string) string {
	words := strings.Split(name, "_")
	var out []string
	for _, word := range words {
		if word == "" {
			continue
		}
		out = append(out, strings.ToUpper(word[:1])+word[1:])
	}
	return strings.Join(out, "")
}

// MacroStyle turns tracepoint names into C macro identifiers:
// "render_pass" -> "RENDER_PASS".
var MacroStyle NameStyleFunc = func(name string) string {
	return strings.ToUpper(name)
}
