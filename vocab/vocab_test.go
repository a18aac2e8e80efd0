package vocab

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainerMemberIndex(t *testing.T) {
	n, ok := ContainerMemberIndex(RDF + "_1")
	assert.True(t, ok)
	assert.Equal(t, 1, n)

	n, ok = ContainerMemberIndex(RDF + "_42")
	assert.True(t, ok)
	assert.Equal(t, 42, n)

	_, ok = ContainerMemberIndex(RDF + "_0")
	assert.False(t, ok)
	_, ok = ContainerMemberIndex(RDF + "_x")
	assert.False(t, ok)
	_, ok = ContainerMemberIndex(RDFType)
	assert.False(t, ok)
}

func TestContainerMemberRoundTrip(t *testing.T) {
	for _, n := range []int{1, 7, 100} {
		got, ok := ContainerMemberIndex(ContainerMember(n))
		assert.True(t, ok)
		assert.Equal(t, n, got)
	}
}
