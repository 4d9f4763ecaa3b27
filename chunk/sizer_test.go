package chunk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docqa/types"
)

func TestSizeCategoryBreakpoints(t *testing.T) {
	cases := []struct {
		fileType types.FileType
		size     int64
		want     types.SizeCategory
	}{
		{types.FilePDF, 50_000, types.SizeSmall},
		{types.FilePDF, 100*1024 - 1, types.SizeSmall},
		{types.FilePDF, 100 * 1024, types.SizeMedium},
		{types.FilePDF, 250_000, types.SizeMedium},
		{types.FilePDF, 500 * 1024, types.SizeLarge},
		{types.FilePDF, 1024 * 1024, types.SizeXLarge},
		{types.FileCSV, 10_000, types.SizeSmall},
		{types.FileCSV, 50 * 1024, types.SizeMedium},
		{types.FileCSV, 200 * 1024, types.SizeLarge},
		{types.FileCSV, 500 * 1024, types.SizeXLarge},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, SizeCategoryFor(c.fileType, c.size),
			"%s %d bytes", c.fileType, c.size)
	}
}

func TestParamsForMediumPDF(t *testing.T) {
	params := ParamsFor(types.FilePDF, 250_000)

	require.Equal(t, types.SizeMedium, params.SizeCategory)
	assert.Equal(t, 2500, params.ChunkSize)
	assert.Equal(t, 375, params.ChunkOverlap) // 15% of 2500
	assert.Equal(t, 50, params.MaxChunks)
}

func TestParamsForSmallCSV(t *testing.T) {
	params := ParamsFor(types.FileCSV, 10_000)

	require.Equal(t, types.SizeSmall, params.SizeCategory)
	assert.Equal(t, 1500, params.ChunkSize)
	assert.Equal(t, 150, params.ChunkOverlap) // 10% of 1500
	assert.Equal(t, 15, params.MaxChunks)
}

func TestParamsDeterministic(t *testing.T) {
	first := ParamsFor(types.FilePDF, 750_000)
	second := ParamsFor(types.FilePDF, 750_000)
	assert.Equal(t, first, second)
}

func TestOverlapAlwaysBelowChunkSize(t *testing.T) {
	sizes := []int64{0, 10_000, 60_000, 150_000, 300_000, 600_000, 2_000_000}
	for _, fileType := range []types.FileType{types.FilePDF, types.FileCSV} {
		for _, size := range sizes {
			params := ParamsFor(fileType, size)
			assert.Less(t, params.ChunkOverlap, params.ChunkSize,
				"%s %d bytes", fileType, size)
			assert.Positive(t, params.MaxChunks)
		}
	}
}
