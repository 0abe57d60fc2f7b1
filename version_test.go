package snarkvm

import (
	"testing"

	"github.com/blang/semver/v4"
	"github.com/stretchr/testify/require"
)

func TestVersion(t *testing.T) {
	assert := require.New(t)

	parsed, err := semver.ParseTolerant(Version.String())
	assert.NoError(err)
	assert.Equal(0, parsed.Compare(Version))
}
