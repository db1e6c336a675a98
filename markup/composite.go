package markup

import (
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lattice-sim/lattice"
	"github.com/lattice-sim/lattice/model"
)

// readComposite fills a composite specification from its element and
// expands it under parent. The read order is load-bearing: top-level
// attributes and the skin sub-element must land before SetDefault, the
// smoothing solver attributes and the remaining sub-elements after, so
// user values override the shape-specific defaults.
func (r *Reader) readComposite(n *Node, m *model.Model, parent *model.Body) error {
	c := lattice.NewSpec()
	c.Log = r.log

	attrText(n, "prefix", &c.Prefix)

	var tv int
	if _, err := attrKeyword(n, "type", shapeTable, &tv, true); err != nil {
		return err
	}
	c.Type = lattice.Shape(tv)

	if _, err := attrInts(n, "count", c.Count[:], false, false); err != nil {
		return err
	}
	if err := attrFloat(n, "spacing", &c.Spacing, false); err != nil {
		return err
	}
	if _, err := attrFloats(n, "offset", c.Offset[:], false, true); err != nil {
		return err
	}
	if err := attrFloat(n, "flatinertia", &c.FlatInertia, false); err != nil {
		return err
	}
	var origin [1]int
	cnt, err := attrInts(n, "origin", origin[:], false, true)
	if err != nil {
		return err
	}
	if cnt > 0 {
		c.Origin = origin[0]
		c.HasOrigin = true
	}

	if eplugin := n.First("plugin"); eplugin != nil {
		if err := r.readPlugin(eplugin, m, c); err != nil {
			return err
		}
	}

	// Cable attributes.
	if curves, ok := n.Attr("curve"); ok {
		fields := strings.Fields(curves)
		if len(fields) > 3 {
			return errAt(n, "the curve array must have a maximum of 3 components")
		}
		for i, f := range fields {
			v, ok := curveTable[f]
			if !ok {
				return errAt(n, "invalid curve keyword %q", f)
			}
			c.Curve[i] = lattice.CurveKind(v)
		}
	}
	var iv int
	ok, err := attrKeyword(n, "initial", initialTable, &iv, false)
	if err != nil {
		return err
	}
	if ok {
		c.Initial = lattice.EndCondition(iv)
	}
	if _, err := attrFloats(n, "size", c.Size[:], false, false); err != nil {
		return err
	}
	if c.UserVert, err = attrFloatList(n, "vertex"); err != nil {
		return err
	}
	if c.UserFace, err = attrIntList(n, "face"); err != nil {
		return err
	}

	if eskin := n.First("skin"); eskin != nil {
		if err := readSkin(eskin, c); err != nil {
			return err
		}
	}

	c.SetDefault()

	// Smoothing solver parameters override the type defaults.
	if _, err := attrFloats(n, "solrefsmooth", c.SolRefSmooth[:], false, false); err != nil {
		return err
	}
	if _, err := attrFloats(n, "solimpsmooth", c.SolImpSmooth[:], false, false); err != nil {
		return err
	}

	if egeom := n.First("geom"); egeom != nil {
		if err := readGeomDefaults(egeom, &c.Def[lattice.KindJoint].Geom); err != nil {
			return err
		}
	}
	if esite := n.First("site"); esite != nil {
		if err := readSiteDefaults(esite, &c.Def[lattice.KindJoint].Site); err != nil {
			return err
		}
	}

	for _, ejnt := range n.All("joint") {
		if err := readJointDefaults(ejnt, c); err != nil {
			return err
		}
	}
	for _, eten := range n.All("tendon") {
		if err := readTendonDefaults(eten, c); err != nil {
			return err
		}
	}

	for _, epin := range n.All("pin") {
		coord := [2]int{0, 0}
		if _, err := attrInts(epin, "coord", coord[:], true, false); err != nil {
			return err
		}
		// The second coordinate stays zero for 1-D composites.
		c.Pin = append(c.Pin, coord[0], coord[1])
	}

	if err := c.Make(m, parent); err != nil {
		return wrapAt(n, err)
	}
	return nil
}

// readPlugin resolves or creates the plugin instance of a composite. An
// anonymous plugin element gets an implicit instance keyed by the
// composite prefix.
func (r *Reader) readPlugin(n *Node, m *model.Model, c *lattice.CompositeSpec) error {
	attrText(n, "plugin", &c.PluginName)
	attrText(n, "instance", &c.PluginInstanceName)
	if c.PluginInstanceName == "" {
		c.PluginInstance = m.AddPlugin(model.Plugin{Name: "composite" + c.Prefix})
		c.PluginInstanceName = c.PluginInstance.Name
	} else {
		c.PluginInstance = m.FindPlugin(c.PluginInstanceName)
		if c.PluginInstance == nil {
			c.PluginInstance = m.AddPlugin(model.Plugin{Name: c.PluginInstanceName})
		}
	}
	for _, econf := range n.All("config") {
		var key, value string
		if !attrText(econf, "key", &key) {
			return errAt(econf, "plugin config requires a key")
		}
		attrText(econf, "value", &value)
		c.PluginInstance.Config[key] = value
	}
	return nil
}

func readSkin(n *Node, c *lattice.CompositeSpec) error {
	c.Skin.Enable = true
	if _, err := attrBool(n, "texcoord", &c.Skin.TexCoord); err != nil {
		return err
	}
	attrText(n, "material", &c.Skin.Material)
	if err := attrRGBA(n, "rgba", &c.Skin.RGBA); err != nil {
		return err
	}
	if err := attrFloat(n, "inflate", &c.Skin.Inflate, false); err != nil {
		return err
	}
	if err := attrInt(n, "subgrid", &c.Skin.Subgrid, false); err != nil {
		return err
	}
	if err := attrInt(n, "group", &c.Skin.Group, false); err != nil {
		return err
	}
	if c.Skin.Group < 0 || c.Skin.Group > 5 {
		return errAt(n, "skin group must be between 0 and 5")
	}
	return nil
}

func readGeomDefaults(n *Node, g *model.Geom) error {
	var tv int
	ok, err := attrKeyword(n, "type", geomTypeTable, &tv, false)
	if err != nil {
		return err
	}
	if ok {
		g.Type = model.GeomType(tv)
	}
	var size [3]float64
	size[0], size[1], size[2] = g.Size.X, g.Size.Y, g.Size.Z
	if _, err := attrFloats(n, "size", size[:], false, false); err != nil {
		return err
	}
	g.Size = r3.Vec{X: size[0], Y: size[1], Z: size[2]}

	if err := attrInt(n, "contype", &g.ConType, false); err != nil {
		return err
	}
	if err := attrInt(n, "conaffinity", &g.ConAffinity, false); err != nil {
		return err
	}
	if err := attrInt(n, "condim", &g.ConDim, false); err != nil {
		return err
	}
	if err := attrInt(n, "group", &g.Group, false); err != nil {
		return err
	}
	if err := attrInt(n, "priority", &g.Priority, false); err != nil {
		return err
	}
	if _, err := attrFloats(n, "friction", g.Friction[:], false, false); err != nil {
		return err
	}
	if err := attrFloat(n, "solmix", &g.SolMix, false); err != nil {
		return err
	}
	if _, err := attrFloats(n, "solref", g.SolRef[:], false, false); err != nil {
		return err
	}
	if _, err := attrFloats(n, "solimp", g.SolImp[:], false, false); err != nil {
		return err
	}
	if err := attrFloat(n, "margin", &g.Margin, false); err != nil {
		return err
	}
	if err := attrFloat(n, "gap", &g.Gap, false); err != nil {
		return err
	}
	attrText(n, "material", &g.Material)
	if err := attrRGBA(n, "rgba", &g.RGBA); err != nil {
		return err
	}
	if err := attrFloat(n, "mass", &g.Mass, false); err != nil {
		return err
	}
	return attrFloat(n, "density", &g.Density, false)
}

func readSiteDefaults(n *Node, s *model.Site) error {
	var size [3]float64
	size[0], size[1], size[2] = s.Size.X, s.Size.Y, s.Size.Z
	if _, err := attrFloats(n, "size", size[:], false, false); err != nil {
		return err
	}
	s.Size = r3.Vec{X: size[0], Y: size[1], Z: size[2]}
	if err := attrInt(n, "group", &s.Group, false); err != nil {
		return err
	}
	attrText(n, "material", &s.Material)
	return attrRGBA(n, "rgba", &s.RGBA)
}

func readJointDefaults(n *Node, c *lattice.CompositeSpec) error {
	var kv int
	if _, err := attrKeyword(n, "kind", jointKindTable, &kv, true); err != nil {
		return err
	}
	kind := lattice.Kind(kv)

	// A repeated kind appends a fresh joint template.
	if c.Add[kind] {
		if err := c.AddDefaultJoint(); err != nil {
			return wrapAt(n, err)
		}
	}
	c.Add[kind] = true
	j := &c.DefJoint[kind][len(c.DefJoint[kind])-1]

	var tv int
	ok, err := attrKeyword(n, "type", jointTypeTable, &tv, false)
	if err != nil {
		return err
	}
	if ok {
		j.Type = model.JointType(tv)
	}
	var axis [3]float64
	axis[0], axis[1], axis[2] = j.Axis.X, j.Axis.Y, j.Axis.Z
	if _, err := attrFloats(n, "axis", axis[:], false, true); err != nil {
		return err
	}
	j.Axis = r3.Vec{X: axis[0], Y: axis[1], Z: axis[2]}

	// The fix parameters feed the equality constraint generated for this
	// kind, not the joint itself.
	if _, err := attrFloats(n, "solreffix", c.Def[kind].Equality.SolRef[:], false, false); err != nil {
		return err
	}
	if _, err := attrFloats(n, "solimpfix", c.Def[kind].Equality.SolImp[:], false, false); err != nil {
		return err
	}

	if _, err := attrBool(n, "limited", &j.Limited); err != nil {
		return err
	}
	if err := attrInt(n, "group", &j.Group, false); err != nil {
		return err
	}
	if _, err := attrFloats(n, "solreflimit", j.SolRefLimit[:], false, false); err != nil {
		return err
	}
	if _, err := attrFloats(n, "solimplimit", j.SolImpLimit[:], false, false); err != nil {
		return err
	}
	if _, err := attrFloats(n, "solreffriction", j.SolRefFriction[:], false, false); err != nil {
		return err
	}
	if _, err := attrFloats(n, "solimpfriction", j.SolImpFriction[:], false, false); err != nil {
		return err
	}
	if err := attrFloat(n, "stiffness", &j.Stiffness, false); err != nil {
		return err
	}
	if _, err := attrFloats(n, "range", j.Range[:], false, true); err != nil {
		return err
	}
	if err := attrFloat(n, "margin", &j.Margin, false); err != nil {
		return err
	}
	if err := attrFloat(n, "armature", &j.Armature, false); err != nil {
		return err
	}
	if err := attrFloat(n, "damping", &j.Damping, false); err != nil {
		return err
	}
	return attrFloat(n, "frictionloss", &j.FrictionLoss, false)
}

func readTendonDefaults(n *Node, c *lattice.CompositeSpec) error {
	var kv int
	if _, err := attrKeyword(n, "kind", tendonKindTable, &kv, true); err != nil {
		return err
	}
	kind := lattice.Kind(kv)
	c.Add[kind] = true
	t := &c.Def[kind].Tendon

	if _, err := attrFloats(n, "solreffix", c.Def[kind].Equality.SolRef[:], false, false); err != nil {
		return err
	}
	if _, err := attrFloats(n, "solimpfix", c.Def[kind].Equality.SolImp[:], false, false); err != nil {
		return err
	}

	if _, err := attrBool(n, "limited", &t.Limited); err != nil {
		return err
	}
	if err := attrInt(n, "group", &t.Group, false); err != nil {
		return err
	}
	if _, err := attrFloats(n, "solreflimit", t.SolRefLimit[:], false, false); err != nil {
		return err
	}
	if _, err := attrFloats(n, "solimplimit", t.SolImpLimit[:], false, false); err != nil {
		return err
	}
	if _, err := attrFloats(n, "solreffriction", t.SolRefFriction[:], false, false); err != nil {
		return err
	}
	if _, err := attrFloats(n, "solimpfriction", t.SolImpFriction[:], false, false); err != nil {
		return err
	}
	if _, err := attrFloats(n, "range", t.Range[:], false, true); err != nil {
		return err
	}
	if err := attrFloat(n, "margin", &t.Margin, false); err != nil {
		return err
	}
	if err := attrFloat(n, "stiffness", &t.Stiffness, false); err != nil {
		return err
	}
	if err := attrFloat(n, "damping", &t.Damping, false); err != nil {
		return err
	}
	if err := attrFloat(n, "frictionloss", &t.FrictionLoss, false); err != nil {
		return err
	}
	attrText(n, "material", &t.Material)
	if err := attrRGBA(n, "rgba", &t.RGBA); err != nil {
		return err
	}
	return attrFloat(n, "width", &t.Width, false)
}
