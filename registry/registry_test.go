package registry_test

import (
	"bytes"
	"testing"

	"github.com/dargueta/squish"
	"github.com/dargueta/squish/registry"
	"github.com/dargueta/squish/schemes/none"
	"github.com/dargueta/squish/schemes/runlength"
	squishtest "github.com/dargueta/squish/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault__Names(t *testing.T) {
	reg := registry.Default()
	assert.Equal(
		t,
		[]string{"gzip", "lz4", "none", "rle8", "rle8+gzip", "rle90", "runlength", "snappy", "zstd"},
		reg.Names(),
	)
	assert.Equal(t, 9, reg.Len())

	algorithms := reg.Algorithms()
	assert.Equal(t, "none", algorithms[0].Name, "registration order not kept")
	assert.Equal(t, "runlength", algorithms[1].Name, "registration order not kept")
}

func TestDefault__EveryAlgorithmRoundTrips(t *testing.T) {
	reg := registry.Default()
	data := squishtest.RoundTripDataSets(t)

	for _, alg := range reg.Algorithms() {
		for name, original := range data {
			t.Run(
				alg.Name+"/"+name,
				func(t *testing.T) {
					squishtest.RoundTrip(t, alg, original)
				},
			)
		}
	}
}

func TestLookup(t *testing.T) {
	reg := registry.Default()

	alg, err := reg.Lookup("runlength")
	require.NoError(t, err)
	assert.Equal(t, squish.SchemeRunLength, alg.Scheme)

	_, err = reg.Lookup("huffman")
	assert.ErrorIs(t, err, squish.ErrUnknownAlgorithm)
	assert.Contains(t, err.Error(), "huffman")

	assert.Panics(t, func() { reg.MustLookup("huffman") })
	assert.NotPanics(t, func() { reg.MustLookup("none") })
}

func TestSelect(t *testing.T) {
	reg := registry.Default()

	selected, err := reg.Select([]string{"runlength", "none"})
	require.NoError(t, err)
	require.Len(t, selected, 2)
	assert.Equal(t, "runlength", selected[0].Name)
	assert.Equal(t, "none", selected[1].Name)

	selected, err = reg.Select(nil)
	require.NoError(t, err)
	assert.Len(t, selected, reg.Len())

	_, err = reg.Select([]string{"none", "nope"})
	assert.ErrorIs(t, err, squish.ErrUnknownAlgorithm)
}

func TestNew__RejectsDuplicates(t *testing.T) {
	_, err := registry.New(none.Algorithm(), runlength.Algorithm(), none.Algorithm())
	assert.ErrorIs(t, err, squish.ErrDuplicateAlgorithm)
}

func TestNew__RejectsInvalid(t *testing.T) {
	broken := none.Algorithm()
	broken.NewCompressor = nil
	_, err := registry.New(broken)
	assert.ErrorIs(t, err, squish.ErrInvalidArgument)
}

func TestAlgorithmsIsACopy(t *testing.T) {
	reg, err := registry.New(none.Algorithm())
	require.NoError(t, err)

	algorithms := reg.Algorithms()
	algorithms[0].Name = "changed"
	assert.Equal(t, []string{"none"}, reg.Names())
}

func TestPassThroughIsIdentity(t *testing.T) {
	alg := registry.Default().MustLookup("none")
	original := []byte{0, 1, 2, 0xff, '\n'}

	compressed := bytes.Buffer{}
	_, err := alg.Compress(bytes.NewReader(original), &compressed)
	require.NoError(t, err)
	assert.Equal(t, original, compressed.Bytes())

	decompressed := bytes.Buffer{}
	_, err = alg.Decompress(bytes.NewReader(original), &decompressed)
	require.NoError(t, err)
	assert.Equal(t, original, decompressed.Bytes())
}
