package voxmorph

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeChunk(buf *bytes.Buffer, id string, data []byte) {
	buf.WriteString(id)
	binary.Write(buf, binary.LittleEndian, int32(len(data)))
	binary.Write(buf, binary.LittleEndian, int32(0))
	buf.Write(data)
}

// buildVox assembles a minimal single-model .vox stream.
func buildVox(voxels []Voxel, firstColor [4]byte) []byte {
	var buf bytes.Buffer
	buf.WriteString(voxMagicNumber)
	binary.Write(&buf, binary.LittleEndian, int32(150))

	writeChunk(&buf, "MAIN", nil)

	size := make([]byte, 12)
	binary.LittleEndian.PutUint32(size[0:4], 4)
	binary.LittleEndian.PutUint32(size[4:8], 4)
	binary.LittleEndian.PutUint32(size[8:12], 4)
	writeChunk(&buf, "SIZE", size)

	xyzi := make([]byte, 4+len(voxels)*4)
	binary.LittleEndian.PutUint32(xyzi[0:4], uint32(len(voxels)))
	for i, v := range voxels {
		copy(xyzi[4+i*4:], []byte{v.X, v.Y, v.Z, v.ColorIndex})
	}
	writeChunk(&buf, "XYZI", xyzi)

	rgba := make([]byte, 256*4)
	copy(rgba[0:4], firstColor[:])
	writeChunk(&buf, "RGBA", rgba)

	return buf.Bytes()
}

func TestParseVox_MinimalModel(t *testing.T) {
	data := buildVox([]Voxel{
		{X: 0, Y: 0, Z: 0, ColorIndex: 1},
		{X: 1, Y: 2, Z: 3, ColorIndex: 1},
	}, [4]byte{255, 0, 0, 255})

	voxFile, err := ParseVox(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 150, voxFile.Version)
	require.Len(t, voxFile.Models, 1)
	assert.Equal(t, uint32(4), voxFile.Models[0].SizeX)
	require.Len(t, voxFile.Models[0].Voxels, 2)
	assert.Equal(t, Voxel{X: 1, Y: 2, Z: 3, ColorIndex: 1}, voxFile.Models[0].Voxels[1])
	assert.Equal(t, [4]byte{255, 0, 0, 255}, voxFile.Palette[1])
}

func TestParseVox_RejectsBadMagic(t *testing.T) {
	_, err := ParseVox(bytes.NewReader([]byte("NOPE\x00\x00\x00\x00")))
	require.Error(t, err)
}

func TestCatalog_AddShapeDecodesAndSwapsAxes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shape.vox")
	data := buildVox([]Voxel{{X: 1, Y: 2, Z: 3, ColorIndex: 1}}, [4]byte{255, 255, 255, 255})
	require.NoError(t, os.WriteFile(path, data, 0o644))

	catalog := NewCatalog(NewNopLogger())
	catalog.AddShape("test", path)

	obj, ok := catalog.Object("test")
	require.True(t, ok)
	require.Len(t, obj.Cubes, 1)
	// Vox is Z-up, engine is Y-up: (x, y, z) decodes to (x, z, y).
	assert.Equal(t, mgl32.Vec3{1, 3, 2}, obj.Cubes[0])

	require.Len(t, obj.Colors, 1)
	assert.InDelta(t, 1, obj.Colors[0].X(), 1e-5, "white decodes to 1 after gamma")
}

func TestCatalog_FailedDecodeLeavesNoEntry(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.vox")
	require.NoError(t, os.WriteFile(path, []byte("not a vox file"), 0o644))

	catalog := NewCatalog(NewNopLogger())
	catalog.AddShape("broken", path)

	assert.False(t, catalog.Has("broken"))
	assert.Empty(t, catalog.Shapes())
}

func TestSrgbChannel_Gamma(t *testing.T) {
	assert.InDelta(t, 1, srgbChannel(255), 1e-5)
	assert.InDelta(t, 0.00083, srgbChannel(0), 1e-4)
	assert.Less(t, srgbChannel(128), float32(0.5), "gamma curve darkens midtones")
}
