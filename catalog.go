package voxmorph

import (
	"sync"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// ShapeId tags a named voxel shape in the catalog.
type ShapeId string

// AssetId identifies one decoded model. Ids are opaque and unique per load.
type AssetId string

func makeAssetId() AssetId {
	return AssetId(uuid.NewString())
}

// Object is an immutable decoded voxel shape: cube coordinates in engine axes
// (vox Z becomes engine Y) and one linear-space color per cube.
type Object struct {
	Cubes  []mgl32.Vec3
	Colors []mgl32.Vec3
}

// Catalog maps shape tags to decoded voxel objects. Shapes that fail to decode
// are logged and left absent, so transitions against them hit the
// missing-shape path. Safe for concurrent reads with a background reloader.
type Catalog struct {
	mu      sync.RWMutex
	objects map[AssetId]*Object
	shapes  map[ShapeId]AssetId
	sources map[ShapeId]string
	log     Logger
}

func NewCatalog(log Logger) *Catalog {
	if log == nil {
		log = NewNopLogger()
	}
	return &Catalog{
		objects: make(map[AssetId]*Object),
		shapes:  make(map[ShapeId]AssetId),
		sources: make(map[ShapeId]string),
		log:     log,
	}
}

// AddShape decodes a .vox file and registers its first model under id. On
// decode failure the catalog is left without an entry for id.
func (c *Catalog) AddShape(id ShapeId, path string) {
	voxFile, err := LoadVoxFile(path)
	if err != nil {
		c.log.Warnf("failed to load voxel file %q for shape %q: %v", path, id, err)
		return
	}
	if len(voxFile.Models) == 0 {
		c.log.Warnf("voxel file %q for shape %q contains no models", path, id)
		return
	}
	obj := objectFromModel(voxFile.Models[0], voxFile.Palette)

	c.mu.Lock()
	defer c.mu.Unlock()
	assetId := makeAssetId()
	c.objects[assetId] = obj
	c.shapes[id] = assetId
	c.sources[id] = path
}

// Put registers an already-built object, for procedural shapes and tests.
func (c *Catalog) Put(id ShapeId, obj *Object) {
	c.mu.Lock()
	defer c.mu.Unlock()
	assetId := makeAssetId()
	c.objects[assetId] = obj
	c.shapes[id] = assetId
}

// Object looks up the decoded shape for id.
func (c *Catalog) Object(id ShapeId) (*Object, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	assetId, ok := c.shapes[id]
	if !ok {
		return nil, false
	}
	obj, ok := c.objects[assetId]
	return obj, ok
}

// Has reports whether id decoded successfully.
func (c *Catalog) Has(id ShapeId) bool {
	_, ok := c.Object(id)
	return ok
}

// Shapes returns the registered tags, in no particular order.
func (c *Catalog) Shapes() []ShapeId {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]ShapeId, 0, len(c.shapes))
	for id := range c.shapes {
		out = append(out, id)
	}
	return out
}

func (c *Catalog) sourcePaths() map[ShapeId]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[ShapeId]string, len(c.sources))
	for id, path := range c.sources {
		out[id] = path
	}
	return out
}

func objectFromModel(model VoxModel, palette VoxPalette) *Object {
	obj := &Object{
		Cubes:  make([]mgl32.Vec3, 0, len(model.Voxels)),
		Colors: make([]mgl32.Vec3, 0, len(model.Voxels)),
	}
	for _, v := range model.Voxels {
		// MagicaVoxel is Z-up; the engine is Y-up.
		obj.Cubes = append(obj.Cubes, mgl32.Vec3{float32(v.X), float32(v.Z), float32(v.Y)})
		color := palette[v.ColorIndex]
		obj.Colors = append(obj.Colors, mgl32.Vec3{
			srgbChannel(color[0]),
			srgbChannel(color[1]),
			srgbChannel(color[2]),
		})
	}
	return obj
}

// srgbChannel applies the gamma curve used when object-native colors are
// requested for a morph target.
func srgbChannel(c byte) float32 {
	return math32.Pow((float32(c)/255+0.055)/1.055, 2.4)
}
