package render

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/chewxy/math32"
	"gonum.org/v1/gonum/spatial/r3"
)

// CreateSTL writes a triangle mesh to a binary STL file.
func CreateSTL(path string, model []r3.Triangle) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteSTL(file, model)
}

// WriteSTL writes model triangles to a writer in STL file format.
func WriteSTL(w io.Writer, model []r3.Triangle) error {
	if len(model) == 0 {
		return errors.New("empty triangle slice")
	}
	header := stlHeader{
		Count: uint32(len(model)),
	}
	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return err
	}
	var d stlTriangle
	for _, triangle := range model {
		var b [50]byte
		n := normal(triangle)
		d.Normal[0] = float32(n.X)
		d.Normal[1] = float32(n.Y)
		d.Normal[2] = float32(n.Z)
		d.Vertex1[0] = float32(triangle[0].X)
		d.Vertex1[1] = float32(triangle[0].Y)
		d.Vertex1[2] = float32(triangle[0].Z)
		d.Vertex2[0] = float32(triangle[1].X)
		d.Vertex2[1] = float32(triangle[1].Y)
		d.Vertex2[2] = float32(triangle[1].Z)
		d.Vertex3[0] = float32(triangle[2].X)
		d.Vertex3[1] = float32(triangle[2].Y)
		d.Vertex3[2] = float32(triangle[2].Z)
		d.put(b[:])
		_, err := io.Copy(w, bytes.NewReader(b[:]))
		if err != nil {
			return err
		}
	}
	return nil
}

// stlHeader defines the STL file header.
type stlHeader struct {
	_     [80]uint8 // Header
	Count uint32    // Number of triangles
}

// ReadSTL reads a binary STL file. Triangles with inf/NaN fields are
// rejected; a stored normal that disagrees with the computed one is
// tolerated since many exporters leave it stale.
func ReadSTL(r io.Reader) (output []r3.Triangle, readErr error) {
	var header stlHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, errors.New("encountered EOF while reading STL header")
		}
		return nil, errors.New("STL header read failed: " + err.Error())
	}
	if header.Count == 0 {
		return nil, errors.New("STL header indicates 0 triangles present")
	}
	var (
		buf [50]byte
		d   stlTriangle
		i   int
	)
	defer func() {
		if readErr != nil {
			readErr = fmt.Errorf("%d/%d STL triangles read: %w", i+1, header.Count, readErr)
		}
	}()
	for i = 0; i < int(header.Count); i++ {
		var n int
		for n < 50 {
			nr, err := r.Read(buf[n:])
			if err != nil {
				return nil, err
			}
			n += nr
		}
		d.get(buf[:])
		if err := d.validate(); err != nil {
			return nil, err
		}
		output = append(output, d.toTriangle())
	}
	return output, nil
}

// stlTriangle defines the triangle data within an STL file.
type stlTriangle struct {
	Normal  [3]float32
	Vertex1 [3]float32
	Vertex2 [3]float32
	Vertex3 [3]float32
	_       uint16 // Attribute byte count
}

func (t stlTriangle) put(b []byte) {
	if len(b) < 50 {
		panic("need length 50 to marshal stlTriangle")
	}
	put3F32(b, t.Normal)
	put3F32(b[12:], t.Vertex1)
	put3F32(b[24:], t.Vertex2)
	put3F32(b[36:], t.Vertex3)
	binary.LittleEndian.PutUint16(b[48:], 0)
}

func (t *stlTriangle) get(b []byte) {
	if len(b) < 50 {
		panic("need length 50 to unmarshal stlTriangle")
	}
	get3F32(b, &t.Normal)
	get3F32(b[12:], &t.Vertex1)
	get3F32(b[24:], &t.Vertex2)
	get3F32(b[36:], &t.Vertex3)
	// no attributes supported yet.
}

func put3F32(b []byte, f [3]float32) {
	_ = b[11] // early bounds check
	binary.LittleEndian.PutUint32(b, math.Float32bits(f[0]))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(f[1]))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(f[2]))
}

func get3F32(b []byte, f *[3]float32) {
	_ = b[11] // early bounds check
	f[0] = math.Float32frombits(binary.LittleEndian.Uint32(b))
	f[1] = math.Float32frombits(binary.LittleEndian.Uint32(b[4:]))
	f[2] = math.Float32frombits(binary.LittleEndian.Uint32(b[8:]))
}

func bad3F32(f [3]float32) bool {
	return math32.IsNaN(f[0]) || math32.IsInf(f[0], 0) ||
		math32.IsNaN(f[1]) || math32.IsInf(f[1], 0) ||
		math32.IsNaN(f[2]) || math32.IsInf(f[2], 0)
}

func (t stlTriangle) validate() error {
	if bad3F32(t.Normal) {
		return errors.New("inf/NaN STL triangle normal")
	}
	if bad3F32(t.Vertex1) || bad3F32(t.Vertex2) || bad3F32(t.Vertex3) {
		return errors.New("inf/NaN STL triangle vertex")
	}
	return nil
}

func r3From3F32(f [3]float32) r3.Vec {
	return r3.Vec{X: float64(f[0]), Y: float64(f[1]), Z: float64(f[2])}
}

func (t stlTriangle) toTriangle() r3.Triangle {
	return r3.Triangle{
		r3From3F32(t.Vertex1),
		r3From3F32(t.Vertex2),
		r3From3F32(t.Vertex3),
	}
}
