package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointDistanceTo(t *testing.T) {
	p1 := &Point{0, 0}
	p2 := &Point{30, 40}

	if d := p1.DistanceTo(p2); d != 50.0 {
		t.Fatalf("Expected 50.0 and got %v", d)
	}
}

func TestPointRound(t *testing.T) {
	x, y := NewPoint(24.5, -12.5).Round()
	assert.Equal(t, 25, x)
	assert.Equal(t, -13, y)

	x, y = NewPoint(75.49, 37.51).Round()
	assert.Equal(t, 75, x)
	assert.Equal(t, 38, y)
}

func TestPointsEquals(t *testing.T) {
	a := Points{NewPoint(1, 2), NewPoint(3, 4)}
	assert.True(t, a.Equals(a.Copy()))
	assert.False(t, a.Equals(Points{NewPoint(3, 4), NewPoint(1, 2)}), "order matters")
	assert.False(t, a.Equals(Points{NewPoint(1, 2)}))
	assert.False(t, a.Equals(nil))
	assert.True(t, Points(nil).Equals(nil))
}

func TestBoxCenter(t *testing.T) {
	b := NewBox(NewPoint(10, 20), 100, 50)
	assert.True(t, b.Center().Equals(NewPoint(60, 45)))
	assert.Equal(t, 110.0, b.Right())
	assert.Equal(t, 70.0, b.Bottom())
	assert.False(t, b.IsDegenerate())
	assert.True(t, NewBox(NewPoint(0, 0), 0, 10).IsDegenerate())
	assert.True(t, NewBox(NewPoint(0, 0), 10, -1).IsDegenerate())
}
