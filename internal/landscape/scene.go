// Package landscape describes distant land content: the static objects drawn
// beyond the normal view distance, and how they are loaded into a quadtree.
package landscape

import (
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/distantland/pkg/geom"
	"github.com/Faultbox/distantland/pkg/quadtree"
)

// Root is the quadtree footprint on the X/Z plane. Size is the half-extent;
// zero means fit to the statics.
type Root struct {
	Center [2]float32 `yaml:"center"`
	Size   float32    `yaml:"size"`
}

// Static is one placed object.
type Static struct {
	Name     string     `yaml:"name,omitempty"`
	Position [3]float32 `yaml:"position"`
	Yaw      float32    `yaml:"yaw,omitempty"` // degrees around +Y
	Scale    float32    `yaml:"scale"`
	// Extents are model-space half sizes of the object's box.
	Extents [3]float32 `yaml:"extents"`
	// Radius overrides the bounding sphere radius in model space.
	Radius float32 `yaml:"radius,omitempty"`

	Texture  uint64 `yaml:"texture"`
	Mesh     uint64 `yaml:"mesh"`
	Vertices int    `yaml:"vertices"`
	Faces    int    `yaml:"faces"`
	Alpha    bool   `yaml:"alpha,omitempty"`
}

// Scene is a distant land description.
type Scene struct {
	Root    Root     `yaml:"root"`
	Statics []Static `yaml:"statics"`
}

// Transform returns the world matrix: translate * rotate * scale.
func (s Static) Transform() mgl32.Mat4 {
	return mgl32.Translate3D(s.Position[0], s.Position[1], s.Position[2]).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(s.Yaw))).
		Mul4(mgl32.Scale3D(s.Scale, s.Scale, s.Scale))
}

// Bounds returns the world-space box and bounding sphere.
func (s Static) Bounds() (geom.Box, geom.Sphere) {
	e := s.Extents
	box := geom.NewBox(-e[0], -e[1], -e[2], e[0], e[1], e[2]).Transform(s.Transform())
	sphere := box.BoundingSphere()
	if s.Radius > 0 {
		sphere = geom.Sphere{
			Center: mgl32.Vec3{s.Position[0], s.Position[1], s.Position[2]},
			Radius: s.Radius * s.Scale,
		}
	}
	return box, sphere
}

// ToMesh converts the static into a quadtree mesh record. The mesh id is used
// for both the vertex and index buffers.
func (s Static) ToMesh() quadtree.Mesh {
	box, sphere := s.Bounds()
	return quadtree.Mesh{
		Sphere:       sphere,
		Box:          box,
		Transform:    s.Transform(),
		Texture:      quadtree.ResourceID(s.Texture),
		VertexBuffer: quadtree.ResourceID(s.Mesh),
		IndexBuffer:  quadtree.ResourceID(s.Mesh),
		Vertices:     s.Vertices,
		Faces:        s.Faces,
		Alpha:        s.Alpha,
	}
}

// Validate reports every malformed static.
func (sc *Scene) Validate() error {
	var err error
	if sc.Root.Size < 0 {
		err = multierr.Append(err, errors.Errorf("root size must be >= 0, got %v", sc.Root.Size))
	}
	for i, s := range sc.Statics {
		if s.Scale <= 0 {
			err = multierr.Append(err, errors.Errorf("static %d (%s): scale must be > 0, got %v", i, s.Name, s.Scale))
			continue
		}
		if s.Extents[0] < 0 || s.Extents[1] < 0 || s.Extents[2] < 0 || s.Radius < 0 {
			err = multierr.Append(err, errors.Errorf("static %d (%s): negative extents", i, s.Name))
			continue
		}
		if s.Vertices < 0 || s.Faces < 0 {
			err = multierr.Append(err, errors.Errorf("static %d (%s): negative vertex or face count", i, s.Name))
			continue
		}
		box, sphere := s.Bounds()
		if !box.Valid() || !sphere.Valid() {
			err = multierr.Append(err, errors.Errorf("static %d (%s): non-finite bounds", i, s.Name))
		}
	}
	return err
}

// FitRoot returns the root footprint: the configured one, or the smallest
// square centered on the statics that contains all their spheres.
func (sc *Scene) FitRoot() Root {
	if sc.Root.Size > 0 {
		return sc.Root
	}
	if len(sc.Statics) == 0 {
		return Root{Center: sc.Root.Center, Size: 1}
	}

	minX, minZ := float32(0), float32(0)
	maxX, maxZ := float32(0), float32(0)
	for i, s := range sc.Statics {
		_, sp := s.Bounds()
		x0, x1 := sp.Center[0]-sp.Radius, sp.Center[0]+sp.Radius
		z0, z1 := sp.Center[2]-sp.Radius, sp.Center[2]+sp.Radius
		if i == 0 {
			minX, maxX, minZ, maxZ = x0, x1, z0, z1
			continue
		}
		minX, maxX = min(minX, x0), max(maxX, x1)
		minZ, maxZ = min(minZ, z0), max(maxZ, z1)
	}

	size := max(maxX-minX, maxZ-minZ) / 2
	if size <= 0 {
		size = 1
	}
	return Root{
		Center: [2]float32{(minX + maxX) / 2, (minZ + maxZ) / 2},
		Size:   size,
	}
}

// Load reads and validates a scene file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading scene")
	}

	sc := &Scene{}
	if err := yaml.Unmarshal(data, sc); err != nil {
		return nil, errors.Wrapf(err, "parsing scene %s", path)
	}
	if err := sc.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid scene %s", path)
	}
	return sc, nil
}

// Save writes the scene as YAML.
func (sc *Scene) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(sc)
	if err != nil {
		return errors.Wrap(err, "encoding scene")
	}
	return os.WriteFile(path, data, 0644)
}
