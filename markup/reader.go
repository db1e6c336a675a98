package markup

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lattice-sim/lattice/model"
)

// Document is a parsed and schema-validated lattice document, ready to
// be built into a model any number of times.
type Document struct {
	root *Node
}

// Reader builds models from documents.
type Reader struct {
	log *zap.Logger
}

// NewReader returns a reader logging through log; a nil log disables
// diagnostics.
func NewReader(log *zap.Logger) *Reader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Reader{log: log}
}

// Parse reads a document and validates it against the schema.
func Parse(r io.Reader) (*Document, error) {
	root, err := ParseNodes(r)
	if err != nil {
		return nil, err
	}
	if err := validateSchema(root, documentSchema); err != nil {
		return nil, err
	}
	return &Document{root: root}, nil
}

// Build expands the document into a fresh model. Any error discards the
// model.
func (r *Reader) Build(doc *Document) (*model.Model, error) {
	m := model.New()

	for _, eb := range doc.root.All("body") {
		if err := r.readBody(eb, m, m.World); err != nil {
			return nil, err
		}
	}
	for _, ec := range doc.root.All("composite") {
		// Top-level composites expand under the world body.
		if err := r.readComposite(ec, m, m.World); err != nil {
			return nil, err
		}
	}

	if dups := m.DuplicateNames(); len(dups) > 0 {
		return nil, fmt.Errorf("markup: duplicate names in generated model: %s",
			strings.Join(dups, ", "))
	}
	return m, nil
}

// readBody creates one body with its nested bodies and composites.
func (r *Reader) readBody(n *Node, m *model.Model, parent *model.Body) error {
	b := model.Body{Quat: quat.Number{Real: 1}}
	attrText(n, "name", &b.Name)

	var pos [3]float64
	if _, err := attrFloats(n, "pos", pos[:], false, true); err != nil {
		return err
	}
	b.Pos = r3.Vec{X: pos[0], Y: pos[1], Z: pos[2]}

	q := [4]float64{1, 0, 0, 0}
	cnt, err := attrFloats(n, "quat", q[:], false, true)
	if err != nil {
		return err
	}
	if cnt > 0 {
		b.Quat = quat.Number{Real: q[0], Imag: q[1], Jmag: q[2], Kmag: q[3]}
	}

	body := m.AddBody(parent, b)

	for _, c := range n.Children {
		switch c.Name {
		case "body":
			if err := r.readBody(c, m, body); err != nil {
				return err
			}
		case "composite":
			if err := r.readComposite(c, m, body); err != nil {
				return err
			}
		}
	}
	return nil
}
