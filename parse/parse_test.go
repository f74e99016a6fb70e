package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputSizes(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected [][]int64
	}{
		{
			name:     "two inputs",
			input:    "1,3,224,224;1,1,256,256",
			expected: [][]int64{{1, 3, 224, 224}, {1, 1, 256, 256}},
		},
		{
			name:     "single input with spaces",
			input:    " 3, 640 ,640 ",
			expected: [][]int64{{3, 640, 640}},
		},
		{
			name:     "negative dynamic axis",
			input:    "-1,3,512,512",
			expected: [][]int64{{-1, 3, 512, 512}},
		},
		{
			name:     "empty",
			input:    "",
			expected: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sizes, err := InputSizes(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, sizes)
		})
	}
}

func TestInputSizesMalformed(t *testing.T) {
	for _, input := range []string{"1,3,abc,224", "1,3;;2", "1.5,3"} {
		t.Run(input, func(t *testing.T) {
			sizes, err := InputSizes(input)
			assert.Error(t, err)
			assert.Nil(t, sizes, "no partial result on error")
		})
	}
}

func TestFormatInputSizes(t *testing.T) {
	sizes := [][]int64{{1, 3, 224, 224}, {1, 1, 256, 256}}
	assert.Equal(t, "1,3,224,224;1,1,256,256", FormatInputSizes(sizes))
	assert.Equal(t, "", FormatInputSizes(nil))

	back, err := InputSizes(FormatInputSizes(sizes))
	require.NoError(t, err)
	assert.Equal(t, sizes, back)
}

func TestFloatList(t *testing.T) {
	values, err := FloatList("0.485, 0.456,0.406", ",")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.485, 0.456, 0.406}, values)

	_, err = FloatList("0.1,x", ",")
	assert.Error(t, err)
}

func TestIntList(t *testing.T) {
	values, err := IntList("1|2| 3", "|")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, values)

	_, err = IntList("1|2.5", "|")
	assert.Error(t, err)
}

func TestStringList(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, StringList(" a ,b,  c", ","))
	assert.Equal(t, []string{"a", ""}, StringList("a,", ","))
	assert.Empty(t, StringList("   ", ","))
}
