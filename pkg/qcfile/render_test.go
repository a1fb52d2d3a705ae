package qcfile

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ha1tch/qubit-toolkit/pkg/qubit"
)

func TestProjection(t *testing.T) {
	p := newProjection(DefaultRenderOptions())

	x, y := p.apply(qubit.Point{X: 0, Y: 8})
	assert.Equal(t, 50.0, x)
	assert.Equal(t, 50.0, y, "y=8 is the top line")

	x, y = p.apply(qubit.Point{X: 16, Y: 0})
	assert.Equal(t, 650.0, x)
	assert.Equal(t, 350.0, y)
}

func TestRenderSVG(t *testing.T) {
	r := testRegistry(t)
	opts := DefaultRenderOptions()
	opts.Title = "a < b"

	out := RenderSVG(r.Snapshot(), opts)

	assert.True(t, strings.HasPrefix(out, "<svg "))
	assert.True(t, strings.HasSuffix(out, "</svg>\n"))
	assert.Contains(t, out, "a &lt; b")
	for _, id := range []string{"pauli-x-1", "pauli-x-4", "pauli-y-1", "pauli-y-4"} {
		assert.Contains(t, out, `id="`+id+`"`)
	}
	for _, text := range []string{">+<", ">+i<", ">- i<", ">1/2<"} {
		assert.Contains(t, out, text)
	}
	for _, id := range []string{"qubit-1", "qubit-2", "qubit-3"} {
		assert.Contains(t, out, `id="`+id+`"`)
	}

	assert.Contains(t, out, ">Qubit 1, Qubit 2<", "collocated qubits share one label")
	assert.Contains(t, out, ">Qubit 3<")
	assert.Equal(t, 2, strings.Count(out, `class="label"`))
	assert.NotContains(t, out, `class="path"`)
}

func TestRenderSVGPaths(t *testing.T) {
	r := testRegistry(t)
	opts := DefaultRenderOptions()
	opts.ShowPaths = true

	snap := r.Snapshot()
	out := RenderSVG(snap, opts)

	// Only the last gate keeps a path: the Hadamard on qubit 3. Its first
	// arc crosses x=0, so it is drawn in pieces.
	want := 0
	for _, run := range SplitAtWrap(snap[2].AnimationPath) {
		if len(run) > 1 {
			want++
		}
	}
	assert.Greater(t, want, 1)
	assert.Equal(t, want, strings.Count(out, `class="path"`))
	assert.Contains(t, out, " C ")
	assert.Contains(t, out, `class="trail"`)
}

func TestRenderSVGEscapesColor(t *testing.T) {
	q := []qubit.Qubit{{ID: 1, Position: qubit.DefaultStart, Color: `"/><script>`}}
	out := RenderSVG(q, RenderOptions{})
	assert.NotContains(t, out, "<script>")
}

func TestRenderSVGEmpty(t *testing.T) {
	out := RenderSVG(nil, RenderOptions{})
	assert.NotContains(t, out, "<circle")
	assert.Contains(t, out, `id="pauli-y-2"`)
}

func TestRenderPNG(t *testing.T) {
	q := []qubit.Qubit{{ID: 1, Position: qubit.DefaultStart, Color: "#ff0000"}}
	opts := DefaultRenderOptions()
	opts.Title = "demo"
	opts.ShowPaths = true

	var buf bytes.Buffer
	require.NoError(t, RenderPNG(q, &buf, opts))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 700, img.Bounds().Dx())
	assert.Equal(t, 400, img.Bounds().Dy())

	r, g, b, _ := img.At(1, 1).RGBA()
	for _, c := range []uint32{r, g, b} {
		assert.Greater(t, c>>8, uint32(250), "background")
	}

	// The marker for (2, 8) sits at pixel (125, 50).
	r, g, _, _ = img.At(125, 50).RGBA()
	assert.Greater(t, r>>8, uint32(200))
	assert.Less(t, g>>8, uint32(60))
}

func TestParseColor(t *testing.T) {
	r, g, b, _ := parseColor("#00ff00").RGBA()
	assert.Equal(t, []uint32{0, 0xffff, 0}, []uint32{r, g, b})
	assert.Equal(t, colorMarker, parseColor("green"))
}
