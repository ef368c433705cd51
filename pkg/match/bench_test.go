package match

import (
	"testing"

	"github.com/bastiangx/cadprompt/pkg/template"
)

// keystrokes returns every prefix of text, the inputs a typist produces.
func keystrokes(text string) []string {
	out := make([]string, 0, len(text))
	for i := 1; i <= len(text); i++ {
		out = append(out, text[:i])
	}
	return out
}

var typedPrompts = []string{
	"Generate a cylinder with 12.5 mm height",
	"Create a spur gear with 24 teeth and module 2 mm",
	"Create a box 10 x 20 x 0.5 inches",
	"Hello there, please make something round",
}

func BenchmarkPlanKeystrokes(b *testing.B) {
	reg := template.MustRegistry(template.Builtin()...)
	var inputs []string
	for _, p := range typedPrompts {
		inputs = append(inputs, keystrokes(p)...)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Plan(reg, inputs[i%len(inputs)])
	}
}

func BenchmarkPlanParallel(b *testing.B) {
	reg := template.MustRegistry(template.Builtin()...)
	inputs := keystrokes(typedPrompts[0])

	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			Plan(reg, inputs[i%len(inputs)])
			i++
		}
	})
}
