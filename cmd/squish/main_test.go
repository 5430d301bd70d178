package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dargueta/squish"
	"github.com/dargueta/squish/schemes/runlength"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runApp(t *testing.T, stdin []byte, args ...string) (string, error) {
	stdout := bytes.Buffer{}
	stderr := bytes.Buffer{}
	app := newApp(bytes.NewReader(stdin), &stdout, &stderr)
	err := app.Run(append([]string{"squish"}, args...))
	return stdout.String(), err
}

func TestList(t *testing.T) {
	output, err := runApp(t, nil, "list")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(output), "\n")
	assert.Len(t, lines, 9)
	assert.Contains(t, output, "runlength")
	assert.Contains(t, output, "rle8+gzip")
}

func TestCompressDecompress__Files(t *testing.T) {
	dir := t.TempDir()
	original := bytes.Repeat([]byte("aaaaaaaabbbbbbbbxyz"), 100)
	sourcePath := filepath.Join(dir, "source.bin")
	compressedPath := filepath.Join(dir, "source.rl")
	restoredPath := filepath.Join(dir, "restored.bin")
	require.NoError(t, os.WriteFile(sourcePath, original, 0o644))

	_, err := runApp(t, nil, "compress", "-a", "runlength", sourcePath, compressedPath)
	require.NoError(t, err)

	compressed, err := os.ReadFile(compressedPath)
	require.NoError(t, err)
	assert.Less(t, len(compressed), len(original))

	_, err = runApp(t, nil, "decompress", "-a", "runlength", compressedPath, restoredPath)
	require.NoError(t, err)

	restored, err := os.ReadFile(restoredPath)
	require.NoError(t, err)
	assert.Equal(t, original, restored)
}

func TestCompress__StandardStreams(t *testing.T) {
	output, err := runApp(t, []byte("ab"), "compress", "-a", "runlength")
	require.NoError(t, err)
	assert.Equal(t, "\x00\x02ab", output)
}

func TestCompress__UnknownAlgorithm(t *testing.T) {
	_, err := runApp(t, []byte("ab"), "compress", "-a", "huffman")
	assert.ErrorIs(t, err, squish.ErrUnknownAlgorithm)
}

func TestDecompress__Malformed(t *testing.T) {
	_, err := runApp(t, []byte{0x80, 0x05, 0x00, 'a'}, "decompress", "-a", "runlength")
	assert.ErrorIs(t, err, squish.ErrFormat)
}

func TestBench__SampleMessage(t *testing.T) {
	output, err := runApp(t, nil, "bench", "-a", "none", "-a", "runlength")
	require.NoError(t, err)
	assert.Contains(t, output, "Best algorithm: runlength")
	assert.NotContains(t, output, "rle90")
}

func TestBench__FormatsAndMetrics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "message.txt")
	require.NoError(t, os.WriteFile(path, []byte("zzzzzzzzzzzzzzzzzzzzzzzzzzzzzz"), 0o644))

	output, err := runApp(t, nil, "bench", "-a", "runlength", "--format", "csv", "--metrics", path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(output, "algorithm,scheme,"))
	assert.Contains(t, output, `squish_harness_runs_total{algorithm="runlength"} 1`)
}

func TestBench__Dump(t *testing.T) {
	output, err := runApp(t, nil, "bench", "-a", "runlength", "--dump", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, output, "Compressed data (runlength):")
	assert.Contains(t, output, "RawHex: ")
	assert.Contains(t, output, `"best": "runlength"`)
}

func TestBench__BadFormat(t *testing.T) {
	_, err := runApp(t, nil, "bench", "--format", "xml")
	assert.ErrorIs(t, err, squish.ErrInvalidArgument)
}

func TestInspect(t *testing.T) {
	original := append(bytes.Repeat([]byte{'q'}, runlength.MaxRunLength), 'r')
	compressed, err := runlength.CompressBytes(original)
	require.NoError(t, err)

	output, err := runApp(t, compressed, "inspect")
	require.NoError(t, err)
	assert.Contains(t, output, "2 frames (1 run)")
	assert.Contains(t, output, "32768 bytes original")
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "squish.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: yaml\nalgorithms: [none]\n"), 0o644))

	output, err := runApp(t, nil, "--config", path, "bench")
	require.NoError(t, err)
	assert.Contains(t, output, "best: none")

	_, err = runApp(t, nil, "--config", path, "--log-level", "shouty", "list")
	assert.ErrorIs(t, err, squish.ErrInvalidArgument)
}
