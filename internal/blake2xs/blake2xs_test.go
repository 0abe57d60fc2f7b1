package blake2xs

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

var persona = []byte("AleoHtC0")

func TestBlake2sCore(t *testing.T) {
	// RFC 7693 appendix A test vector for unkeyed BLAKE2s-256("abc").
	p := parameters{digestLength: 32, fanout: 1, depth: 1}
	got := hash(&p, []byte("abc"))
	require.Equal(t, "508c5e8c327c14e2e1a72ba34eeb452f37458b209ed63a294d999b4c86675982", hex.EncodeToString(got))
}

func TestSum(t *testing.T) {
	assert := require.New(t)

	for _, tc := range []struct {
		input  string
		length uint16
		want   string
	}{
		{"Aleo BLS12-377 G1 in 0", 32, "87a989b05d8fdddf0cc2f031120385908cf1ebf58f164c800cae76f191e6e9d4"},
		// two output blocks
		{"Aleo BLS12-377 G1 in 0", 64, "bc719eb4608642624ae4d9393e7b06f2507e61ade0aff3989788e24422b274e7c4e222d8fe6de0da5b3de94574705b3485929e70327b634fb9ec45dea48b4c43"},
		// truncated final block
		{"abc", 17, "02b49bc49b22b69cd5f34e2d2dc3bb77df"},
		{"", 48, "bea8e89becb0f33376547405bc8d2da81c8f226c13550c770bfa4a91e91d537954abc4d1dbaecbdf6f74b035e8361014"},
	} {
		got := Sum([]byte(tc.input), tc.length, persona)
		assert.Equal(tc.want, hex.EncodeToString(got), "input %q length %d", tc.input, tc.length)
	}
}

func TestSumPersonalization(t *testing.T) {
	a := Sum([]byte("abc"), 32, persona)
	b := Sum([]byte("abc"), 32, []byte("AleoHtC1"))
	require.NotEqual(t, a, b)
}

func TestSumXofLengthBindsOutput(t *testing.T) {
	// The XOF length is part of the parameter block, so a shorter output
	// is not a prefix of a longer one.
	a := Sum([]byte("abc"), 32, persona)
	b := Sum([]byte("abc"), 64, persona)
	require.NotEqual(t, a, b[:32])
}
