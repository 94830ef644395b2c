package parsing

import (
	"testing"

	"github.com/gofta/gofta/internal/lexing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classify(t *testing.T, source string) []lexing.Line {
	t.Helper()
	lines, err := lexing.Classify(source)
	require.NoError(t, err)
	return lines
}

func TestGroupImplicitFirstParagraph(t *testing.T) {
	paragraphs, err := Group(classify(t, "- times: 1\n"))
	require.NoError(t, err)
	require.Len(t, paragraphs, 1)
	assert.Nil(t, paragraphs[0].Header)
	require.Len(t, paragraphs[0].Properties, 1)
	assert.Equal(t, "times", paragraphs[0].Properties[0].Key)
}

func TestGroupSeparatesOnBlankLines(t *testing.T) {
	source := "Model: M1\n- model_type: Fixed\n\nGate: G1\n- type: OR\n"
	paragraphs, err := Group(classify(t, source))
	require.NoError(t, err)
	require.Len(t, paragraphs, 2)
	assert.Equal(t, "M1", paragraphs[0].Header.ID)
	assert.Equal(t, "G1", paragraphs[1].Header.ID)
}

func TestGroupCommentsDoNotBreakParagraph(t *testing.T) {
	source := "Model: M1\n# a note\n- model_type: Fixed\n"
	paragraphs, err := Group(classify(t, source))
	require.NoError(t, err)
	require.Len(t, paragraphs, 1)
	require.Len(t, paragraphs[0].Properties, 1)
}

func TestGroupSmotheredObject(t *testing.T) {
	source := "Model: M1\nGate: G1\n"
	_, err := Group(classify(t, source))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SmotheredObject")
}

func TestGroupDanglingProperty(t *testing.T) {
	source := "Model: M1\n- model_type: Fixed\n\n- label: oops\n"
	_, err := Group(classify(t, source))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DanglingProperty")
}

func TestGroupObjectAfterPropertyInSameParagraphIsSmothered(t *testing.T) {
	source := "Model: M1\n- model_type: Fixed\nGate: G1\n"
	_, err := Group(classify(t, source))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SmotheredObject")
}
