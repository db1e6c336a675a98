// Package model is the in-memory physics model container. It exposes an
// ordered builder API: entities are appended under their owners, keep
// first-insertion order, and are addressable by unique name strings
// through an incrementally maintained registry.
package model

// Model owns every generated entity. It is mutated by exactly one
// expansion call at a time; there is no internal locking.
type Model struct {
	World *Body

	Tendons    []*Tendon
	Equalities []*Equality
	Excludes   []*Exclude
	Skins      []*Skin
	Texts      []*Text
	Plugins    []*Plugin

	bodies  []*Body
	joints  []*Joint
	geoms   []*Geom
	sites   []*Site
	byName  map[regKey]any
	dupered []string
}

type regKey struct {
	space string
	name  string
}

// New returns an empty model with a world body.
func New() *Model {
	m := &Model{
		World:  &Body{Name: "world"},
		byName: make(map[regKey]any),
	}
	m.bodies = append(m.bodies, m.World)
	m.register("body", m.World.Name, m.World)
	return m
}

func (m *Model) register(space, name string, v any) {
	if name == "" {
		return
	}
	k := regKey{space, name}
	if _, taken := m.byName[k]; taken {
		m.dupered = append(m.dupered, space+" "+name)
		return
	}
	m.byName[k] = v
}

// DuplicateNames reports every name registered more than once within its
// namespace, in the order the collisions happened. A non-empty result
// means the generated model violates the unique-name invariant.
func (m *Model) DuplicateNames() []string { return m.dupered }

// AddBody appends a child body under parent and registers its name.
func (m *Model) AddBody(parent *Body, b Body) *Body {
	nb := b
	nb.parent = parent
	parent.Children = append(parent.Children, &nb)
	m.bodies = append(m.bodies, &nb)
	m.register("body", nb.Name, &nb)
	return &nb
}

// AddJoint appends a joint to body.
func (m *Model) AddJoint(body *Body, j Joint) *Joint {
	nj := j
	body.Joints = append(body.Joints, &nj)
	m.joints = append(m.joints, &nj)
	m.register("joint", nj.Name, &nj)
	return &nj
}

// AddGeom appends a geom to body.
func (m *Model) AddGeom(body *Body, g Geom) *Geom {
	ng := g
	body.Geoms = append(body.Geoms, &ng)
	m.geoms = append(m.geoms, &ng)
	m.register("geom", ng.Name, &ng)
	return &ng
}

// AddSite appends a site to body.
func (m *Model) AddSite(body *Body, s Site) *Site {
	ns := s
	body.Sites = append(body.Sites, &ns)
	m.sites = append(m.sites, &ns)
	m.register("site", ns.Name, &ns)
	return &ns
}

// AddTendon appends a model-level tendon.
func (m *Model) AddTendon(t Tendon) *Tendon {
	nt := t
	m.Tendons = append(m.Tendons, &nt)
	m.register("tendon", nt.Name, &nt)
	return &nt
}

// AddEquality appends an equality constraint.
func (m *Model) AddEquality(e Equality) *Equality {
	ne := e
	m.Equalities = append(m.Equalities, &ne)
	m.register("equality", ne.Name, &ne)
	return &ne
}

// AddExclude appends a contact exclusion pair.
func (m *Model) AddExclude(e Exclude) *Exclude {
	ne := e
	m.Excludes = append(m.Excludes, &ne)
	return &ne
}

// AddSkin appends a skin.
func (m *Model) AddSkin(s Skin) *Skin {
	ns := s
	m.Skins = append(m.Skins, &ns)
	m.register("skin", ns.Name, &ns)
	return &ns
}

// AddText appends a custom text record.
func (m *Model) AddText(t Text) *Text {
	nt := t
	m.Texts = append(m.Texts, &nt)
	m.register("text", nt.Name, &nt)
	return &nt
}

// AddPlugin appends a plugin instance owned by the model.
func (m *Model) AddPlugin(p Plugin) *Plugin {
	np := p
	if np.Config == nil {
		np.Config = make(map[string]string)
	}
	m.Plugins = append(m.Plugins, &np)
	m.register("plugin", np.Name, &np)
	return &np
}

// Bodies returns every body including the world, in insertion order.
func (m *Model) Bodies() []*Body { return m.bodies }

// Joints returns every joint in insertion order.
func (m *Model) Joints() []*Joint { return m.joints }

// Geoms returns every geom in insertion order.
func (m *Model) Geoms() []*Geom { return m.geoms }

// Sites returns every site in insertion order.
func (m *Model) Sites() []*Site { return m.sites }

// FindBody resolves a body by name, nil if absent.
func (m *Model) FindBody(name string) *Body {
	if v, ok := m.byName[regKey{"body", name}]; ok {
		return v.(*Body)
	}
	return nil
}

// FindJoint resolves a joint by name, nil if absent.
func (m *Model) FindJoint(name string) *Joint {
	if v, ok := m.byName[regKey{"joint", name}]; ok {
		return v.(*Joint)
	}
	return nil
}

// FindSite resolves a site by name, nil if absent.
func (m *Model) FindSite(name string) *Site {
	if v, ok := m.byName[regKey{"site", name}]; ok {
		return v.(*Site)
	}
	return nil
}

// FindTendon resolves a tendon by name, nil if absent.
func (m *Model) FindTendon(name string) *Tendon {
	if v, ok := m.byName[regKey{"tendon", name}]; ok {
		return v.(*Tendon)
	}
	return nil
}

// FindPlugin resolves a plugin instance by name, nil if absent.
func (m *Model) FindPlugin(name string) *Plugin {
	if v, ok := m.byName[regKey{"plugin", name}]; ok {
		return v.(*Plugin)
	}
	return nil
}
