package scanner

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMarker = "// --- MARKER --- //"

func TestLocator_Locate(t *testing.T) {
	doc := "<html>\n<script>\nvar early = 1;\n</script>\n<body>\n<script>\n    " + testMarker + "\n    function a() {\n    }\n</script>\n<script>\nlate();\n</script>\n"

	region, err := NewLocator(testMarker).Locate(doc)
	require.NoError(t, err)

	assert.Equal(t, 6, region.StartLine)
	assert.Equal(t, 10, region.EndLine())
	assert.NotContains(t, region.Text, "early")
	assert.NotContains(t, region.Text, "late()")
	assert.NotContains(t, region.Text, "<script>")

	lines := region.Lines()
	require.Len(t, lines, 5)
	assert.Equal(t, "", lines[0].Raw, "line 1 is the remainder of the tag line")
	assert.Equal(t, testMarker, lines[1].Trimmed)
	assert.Equal(t, 3, lines[2].Number)
	assert.Equal(t, "function a() {", lines[2].Trimmed)
}

func TestLocator_Failures(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"no marker", "<script>\nfoo();\n</script>", ErrMarkerNotFound},
		{"no start tag before marker", testMarker + "\n<script>\n</script>", ErrScriptTagNotFound},
		{"no end tag", "<script>\n" + testMarker + "\n", ErrScriptEndNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			region, err := NewLocator(testMarker).Locate(tt.doc)
			assert.Nil(t, region)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestLocator_EmptyMarker(t *testing.T) {
	_, err := NewLocator("").Locate("<script></script>")
	assert.ErrorIs(t, err, ErrScriptTagNotFound)
}

func TestLocator_CustomTags(t *testing.T) {
	l := &Locator{Marker: "MARK", StartTag: `<script type="module">`, EndTag: "</script>"}
	region, err := l.Locate("<p>\n<script type=\"module\">MARK\n{\n</script>")
	require.NoError(t, err)

	assert.Equal(t, 2, region.StartLine)
	assert.Equal(t, "MARK\n{\n", region.Text)
}

func TestSourceLine(t *testing.T) {
	line := SourceLine{Raw: "      // note", Trimmed: "// note"}
	assert.True(t, line.Skipped())
	assert.Equal(t, 6, line.Indent())

	line = SourceLine{Raw: "   ", Trimmed: ""}
	assert.True(t, line.Skipped())

	line = SourceLine{Raw: "x = 1 // trailing", Trimmed: "x = 1 // trailing"}
	assert.False(t, line.Skipped())
	assert.Equal(t, 0, line.Indent())
}
