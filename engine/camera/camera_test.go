package camera

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-ui/common"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera()

	assert.Equal(t, float32(math32.Pi/2), c.Fov())
	assert.Equal(t, float32(1), c.Aspect())
	assert.Equal(t, float32(0.1), c.Near())
	assert.Equal(t, float32(10), c.Far())
	x, y, z := c.Up()
	assert.Equal(t, [3]float32{0, 1, 0}, [3]float32{x, y, z})
	require.NotNil(t, c.BindGroupProvider())
}

func TestCameraOptions(t *testing.T) {
	c := NewCamera(
		WithPosition(1, 2, 3),
		WithTarget(0, 1, 0),
		WithUp(0, 0, 1),
		WithFov(1),
		WithAspect(2),
		WithAspect(-1),
		WithNear(0.5),
		WithFar(50),
	)

	x, y, z := c.Position()
	assert.Equal(t, [3]float32{1, 2, 3}, [3]float32{x, y, z})
	x, y, z = c.Target()
	assert.Equal(t, [3]float32{0, 1, 0}, [3]float32{x, y, z})
	x, y, z = c.Up()
	assert.Equal(t, [3]float32{0, 0, 1}, [3]float32{x, y, z})
	assert.Equal(t, float32(1), c.Fov())
	assert.Equal(t, float32(2), c.Aspect())
	assert.Equal(t, float32(0.5), c.Near())
	assert.Equal(t, float32(50), c.Far())
}

func TestSetAspectIgnoresNonPositive(t *testing.T) {
	c := NewCamera()
	before := c.ProjectionMatrix()

	c.SetAspect(0)
	c.SetAspect(-3)
	assert.Equal(t, float32(1), c.Aspect())
	assert.Equal(t, before, c.ProjectionMatrix())

	c.SetAspect(2)
	assert.Equal(t, float32(2), c.Aspect())
	assert.NotEqual(t, before, c.ProjectionMatrix())
}

func TestViewProjectionPlacesTargetAtScreenCenter(t *testing.T) {
	c := NewCamera()
	c.SetPosition(2*math32.Cos(0.7), 2*math32.Sin(0.7), 2)
	c.SetTarget(0, 0, 0)

	vp := c.ViewProjectionMatrix()
	clip := common.Transform4(vp[:], 0, 0, 0)
	require.Greater(t, clip[3], float32(0))
	assert.InDelta(t, 0, clip[0]/clip[3], 1e-5)
	assert.InDelta(t, 0, clip[1]/clip[3], 1e-5)

	depth := clip[2] / clip[3]
	assert.Greater(t, depth, float32(0))
	assert.Less(t, depth, float32(1))
}

func TestUniformMarshal(t *testing.T) {
	c := NewCamera(WithPosition(1, 2, 3))

	u := c.Uniform()
	assert.Equal(t, c.ViewProjectionMatrix(), u.ViewProj)

	buf := u.Marshal()
	require.Len(t, buf, ViewUniformSize)
	assert.Equal(t, u.ViewProj[5], math.Float32frombits(binary.LittleEndian.Uint32(buf[20:])))
	assert.Equal(t, u.ViewProj[15], math.Float32frombits(binary.LittleEndian.Uint32(buf[60:])))
}

func TestUniformSourceHoldsOnlyViewProj(t *testing.T) {
	assert.Contains(t, UniformSource, "struct CameraUniform")
	assert.Contains(t, UniformSource, "view_proj: mat4x4<f32>")
	assert.NotContains(t, UniformSource, "camera_position")
}
