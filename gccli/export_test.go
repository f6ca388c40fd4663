package gccli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"oss.terrastruct.com/util-go/go2"
)

func TestOutputFormat(t *testing.T) {
	type testCase struct {
		stdoutFormatFlag string
		outputPath       string
		extension        exportExtension
		isBinary         bool
	}
	testCases := []testCase{
		{
			outputPath: "/out.svg",
			extension:  ".svg",
		},
		{
			// assumes SVG by default
			outputPath: "/out",
			extension:  ".svg",
		},
		{
			outputPath: "-",
			extension:  ".svg",
		},
		{
			outputPath: "/OUT.PNG",
			extension:  ".png",
			isBinary:   true,
		},
		{
			outputPath: "/out.txt",
			extension:  ".txt",
		},
		{
			stdoutFormatFlag: "PNG",
			outputPath:       "-",
			extension:        ".png",
			isBinary:         true,
		},
		{
			stdoutFormatFlag: "ascii",
			outputPath:       "-",
			extension:        ".txt",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.stdoutFormatFlag+tc.outputPath, func(t *testing.T) {
			extension, err := getOutputFormat(&tc.stdoutFormatFlag, tc.outputPath)
			assert.NoError(t, err)
			assert.Equal(t, tc.extension, extension)
			assert.Equal(t, tc.isBinary, extension.isBinary())
		})
	}

	_, err := getOutputFormat(go2.Pointer("pdf"), "-")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "pdf is not a supported format")
}

func TestParse(t *testing.T) {
	t.Parallel()

	r, err := parseRect(" 10, 20,30 ,40")
	assert.NoError(t, err)
	assert.Equal(t, []float64{10, 20, 30, 40}, []float64{r.X, r.Y, r.Width, r.Height})

	_, err = parseRect("10,20,30")
	assert.Error(t, err)
	_, err = parseRect("10,20,30,x")
	assert.Error(t, err)

	p, err := parsePoint("")
	assert.NoError(t, err)
	assert.Nil(t, p)
	p, err = parsePoint("1.5,-2")
	assert.NoError(t, err)
	assert.Equal(t, 1.5, p.X)
	assert.Equal(t, -2.0, p.Y)

	scale, err := parseScale("4,8")
	assert.NoError(t, err)
	assert.Equal(t, 4.0, scale.CellWidth)
	_, err = parseScale("0,8")
	assert.Error(t, err)
}
