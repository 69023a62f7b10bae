package scenegraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type tagComponent struct {
	Name string
}

type otherComponent struct {
	Value int
}

func TestAttachAndLookup(t *testing.T) {
	p := NewPool()
	e := p.Create()

	Attach(p, e, &tagComponent{Name: "crate"})

	c := Component[tagComponent](e)
	if assert.NotNil(t, c) {
		assert.Equal(t, "crate", c.Name)
	}
	assert.Nil(t, Component[otherComponent](e))
}

func TestAttachReplacesSameType(t *testing.T) {
	p := NewPool()
	e := p.Create()

	Attach(p, e, &tagComponent{Name: "first"})
	Attach(p, e, &tagComponent{Name: "second"})

	assert.Equal(t, "second", Component[tagComponent](e).Name)
	assert.Len(t, Group[tagComponent](p), 1)
}

func TestGroupIteratesOnlyCarriers(t *testing.T) {
	p := NewPool()
	tagged := p.Create()
	Attach(p, tagged, &tagComponent{})
	p.Create() // no components

	group := Group[tagComponent](p)
	assert.Len(t, group, 1)
	assert.Equal(t, tagged, group[0])
	assert.Equal(t, 2, p.Len())
}

func TestDestroyRemovesFromGroups(t *testing.T) {
	p := NewPool()
	e := p.Create()
	Attach(p, e, &tagComponent{})
	Attach(p, e, &otherComponent{})

	p.Destroy(e)

	assert.False(t, p.Contains(e))
	assert.Empty(t, Group[tagComponent](p))
	assert.Empty(t, Group[otherComponent](p))
	assert.Nil(t, Component[tagComponent](e))
}

func TestDestroyTwiceIsHarmless(t *testing.T) {
	p := NewPool()
	e := p.Create()
	p.Destroy(e)
	p.Destroy(e)
	p.Destroy(nil)
	assert.Equal(t, 0, p.Len())
}
