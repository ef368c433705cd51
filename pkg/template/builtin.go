package template

import "strconv"

// shapeDimensions maps a basic shape to the dimension kinds it is described by.
var shapeDimensions = Lookup{
	"cube":         {"sides"},
	"sphere":       {"radius"},
	"cylinder":     {"radius", "height"},
	"cone":         {"radius", "height"},
	LookupFallback: {"dimension"},
}

// BasicShape is the "Generate a {shape} with {dimension} {unit} {type}" template.
func BasicShape() *Template {
	return &Template{
		ID:          "basic-shape",
		Name:        "3D Shape Generator",
		Description: "Generate basic 3D shapes with specific dimensions",
		Example:     "Generate a cube with 5 cm sides",
		Parts: []Part{
			Lit("Generate a "),
			Param(&Parameter{
				Name:        "shape",
				Kind:        KindOptions,
				Options:     Static("cube", "sphere", "cylinder", "cone"),
				Description: "Choose the type of 3D shape",
			}),
			Lit(" with "),
			Param(&Parameter{
				Name:        "dimension",
				Kind:        KindNumber,
				Suggestions: Static("1", "5", "10", "50", "100"),
				Rules:       &Rules{Required: true, Min: Float(0.1), Max: Float(1000)},
				Placeholder: "Enter size",
				Description: "Size of the shape",
			}),
			Lit(" "),
			Param(&Parameter{
				Name:        "unit",
				Kind:        KindOptions,
				Options:     Static("cm", "mm", "m", "inches"),
				Description: "Unit of measurement",
			}),
			Lit(" "),
			Param(&Parameter{
				Name:        "type",
				Kind:        KindOptions,
				Options:     shapeDimensions.Source("shape"),
				Description: "Type of dimension",
			}),
		},
	}
}

// SpurGear describes a spur gear by tooth count and module.
func SpurGear() *Template {
	t := MustParsePattern("spur-gear",
		"Create a spur gear with {teeth:number 6-200} teeth and module {module:number 0.1-50} mm", nil)
	t.Name = "Spur Gear"
	t.Description = "Generate an involute spur gear"
	t.Example = "Create a spur gear with 24 teeth and module 2 mm"
	for _, p := range t.Parameters() {
		switch p.Name {
		case "teeth":
			p.Description = "Number of teeth"
			p.Suggestions = Static("12", "18", "24", "36")
			p.Rules.Custom = func(value string, _ Context) bool {
				_, err := strconv.Atoi(value)
				return err == nil
			}
		case "module":
			p.Description = "Gear module (pitch diameter / teeth)"
			p.Suggestions = Static("0.5", "1", "1.5", "2")
		}
	}
	return t
}

// Box describes a rectangular box or plate by its three edge lengths.
func Box() *Template {
	t := MustParsePattern("box",
		"Create a box {length:number 0.1-1000} x {width:number 0.1-1000} x {height:number 0.1-1000} {unit:mm|cm|m|inches}", nil)
	t.Name = "Box"
	t.Description = "Generate a box or plate from its edge lengths"
	t.Example = "Create a box 10 x 20 x 5 mm"
	return t
}

// Builtin returns fresh copies of the templates compiled into the binary, in
// priority order.
func Builtin() []*Template {
	return []*Template{BasicShape(), SpurGear(), Box()}
}
