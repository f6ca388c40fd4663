package color

import (
	stdcolor "image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNone(t *testing.T) {
	assert.True(t, IsNone(""))
	assert.True(t, IsNone("none"))
	assert.True(t, IsNone(" NONE "))
	assert.False(t, IsNone("yellow"))
	assert.False(t, IsNone("#000"))
}

func TestParse(t *testing.T) {
	c, err := Parse(Yellow)
	assert.Nil(t, err)
	assert.Equal(t, stdcolor.NRGBA{R: 255, G: 255, B: 0, A: 255}, c)

	c, err = Parse("#ff000080")
	assert.Nil(t, err)
	assert.Equal(t, uint8(255), c.R)
	assert.Equal(t, uint8(128), c.A)

	_, err = Parse(None)
	assert.NotNil(t, err)

	_, err = Parse("not-a-color")
	assert.NotNil(t, err)
}

func TestWithAlpha(t *testing.T) {
	c, err := WithAlpha(Black, 0.5)
	assert.Nil(t, err)
	assert.Equal(t, stdcolor.NRGBA{R: 0, G: 0, B: 0, A: 128}, c)
}

func TestHex(t *testing.T) {
	h, err := Hex(Orange)
	assert.Nil(t, err)
	assert.Equal(t, "#ffa500", h)

	o, err := Opacity("rgba(0, 0, 0, 0.25)")
	assert.Nil(t, err)
	assert.Equal(t, 0.25, o)
}
