package markup

// schemaElem is one row of the fixed document schema: the element name,
// its cardinality within the parent ('!' exactly one, '?' at most one,
// '*' any number), the allowed attributes and the allowed children.
type schemaElem struct {
	name     string
	card     byte
	attrs    []string
	children []*schemaElem
}

var compositeSchema = &schemaElem{
	name: "composite",
	card: '*',
	attrs: []string{
		"prefix", "type", "count", "spacing", "offset", "flatinertia",
		"solrefsmooth", "solimpsmooth", "vertex", "face", "initial",
		"curve", "size", "origin",
	},
	children: []*schemaElem{
		{
			name: "joint", card: '*',
			attrs: []string{
				"kind", "group", "stiffness", "damping", "armature",
				"solreffix", "solimpfix", "type", "axis",
				"limited", "range", "margin", "solreflimit", "solimplimit",
				"frictionloss", "solreffriction", "solimpfriction",
			},
		},
		{
			name: "tendon", card: '*',
			attrs: []string{
				"kind", "group", "stiffness", "damping",
				"solreffix", "solimpfix",
				"limited", "range", "margin", "solreflimit", "solimplimit",
				"frictionloss", "solreffriction", "solimpfriction",
				"material", "rgba", "width",
			},
		},
		{
			name: "skin", card: '?',
			attrs: []string{"texcoord", "material", "group", "rgba", "inflate", "subgrid"},
		},
		{
			name: "geom", card: '?',
			attrs: []string{
				"type", "contype", "conaffinity", "condim", "group", "priority",
				"size", "material", "rgba", "friction", "mass", "density",
				"solmix", "solref", "solimp", "margin", "gap",
			},
		},
		{
			name: "site", card: '?',
			attrs: []string{"group", "size", "material", "rgba"},
		},
		{name: "pin", card: '*', attrs: []string{"coord"}},
		{
			name: "plugin", card: '*',
			attrs: []string{"plugin", "instance"},
			children: []*schemaElem{
				{name: "config", card: '*', attrs: []string{"key", "value"}},
			},
		},
	},
}

var bodySchema = &schemaElem{
	name:  "body",
	card:  '*',
	attrs: []string{"name", "pos", "quat"},
}

var documentSchema = &schemaElem{
	name:     "lattice",
	card:     '!',
	attrs:    []string{"name"},
	children: []*schemaElem{bodySchema, compositeSchema},
}

func init() {
	// Bodies nest and carry composites.
	bodySchema.children = []*schemaElem{bodySchema, compositeSchema}
}

// validateSchema checks the node tree against the schema rooted at s.
func validateSchema(n *Node, s *schemaElem) error {
	if n.Name != s.name {
		return errAt(n, "unexpected element %q, want %q", n.Name, s.name)
	}

	for a := range n.Attrs {
		if !contains(s.attrs, a) {
			return errAt(n, "unknown attribute %q in element %q", a, n.Name)
		}
	}

	counts := make(map[string]int)
	for _, c := range n.Children {
		sub := findSchemaChild(s, c.Name)
		if sub == nil {
			return errAt(c, "unknown element %q in %q", c.Name, n.Name)
		}
		counts[c.Name]++
		if sub.card == '?' && counts[c.Name] > 1 {
			return errAt(c, "element %q appears more than once in %q", c.Name, n.Name)
		}
		if err := validateSchema(c, sub); err != nil {
			return err
		}
	}
	for _, sub := range s.children {
		if sub.card == '!' && counts[sub.name] != 1 {
			return errAt(n, "element %q requires exactly one %q child", n.Name, sub.name)
		}
	}
	return nil
}

func findSchemaChild(s *schemaElem, name string) *schemaElem {
	for _, c := range s.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
