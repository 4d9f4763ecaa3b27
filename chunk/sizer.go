// Package chunk implements adaptive chunk sizing and sliding-window
// text splitting. Both are pure functions of their inputs.
package chunk

import "docqa/types"

// Params holds the chunking parameters chosen for one document.
type Params struct {
	ChunkSize    int
	ChunkOverlap int
	MaxChunks    int
	SizeCategory types.SizeCategory
}

// Chunk sizes in characters per (file type, size category).
var chunkSizes = map[types.FileType]map[types.SizeCategory]int{
	types.FilePDF: {
		types.SizeSmall:  2000,
		types.SizeMedium: 2500,
		types.SizeLarge:  3000,
		types.SizeXLarge: 3500,
	},
	types.FileCSV: {
		types.SizeSmall:  1500,
		types.SizeMedium: 2000,
		types.SizeLarge:  2500,
		types.SizeXLarge: 3000,
	},
}

// Overlap as a fraction of chunk size. PDFs get more overlap for
// context retention; CSV rows need less.
var overlapFractions = map[types.FileType]float64{
	types.FilePDF: 0.15,
	types.FileCSV: 0.10,
}

// Hard cap on chunk count per (file type, size category), bounding
// worst-case embedding cost regardless of text length.
var maxChunks = map[types.FileType]map[types.SizeCategory]int{
	types.FilePDF: {
		types.SizeSmall:  20,
		types.SizeMedium: 50,
		types.SizeLarge:  80,
		types.SizeXLarge: 120,
	},
	types.FileCSV: {
		types.SizeSmall:  15,
		types.SizeMedium: 30,
		types.SizeLarge:  50,
		types.SizeXLarge: 75,
	},
}

// SizeCategoryFor buckets a file by byte size. Breakpoints differ per
// file type.
func SizeCategoryFor(fileType types.FileType, fileSize int64) types.SizeCategory {
	if fileType == types.FilePDF {
		switch {
		case fileSize < 100*1024:
			return types.SizeSmall
		case fileSize < 500*1024:
			return types.SizeMedium
		case fileSize < 1024*1024:
			return types.SizeLarge
		default:
			return types.SizeXLarge
		}
	}
	switch {
	case fileSize < 50*1024:
		return types.SizeSmall
	case fileSize < 200*1024:
		return types.SizeMedium
	case fileSize < 500*1024:
		return types.SizeLarge
	default:
		return types.SizeXLarge
	}
}

// ParamsFor returns the chunking parameters for a file. The overlap is
// the per-type fraction of the chunk size, truncated to whole
// characters, and is always clamped below the chunk size so the
// splitter's cursor cannot stall.
func ParamsFor(fileType types.FileType, fileSize int64) Params {
	category := SizeCategoryFor(fileType, fileSize)
	size := chunkSizes[fileType][category]
	overlap := int(float64(size) * overlapFractions[fileType])
	if overlap >= size {
		overlap = size - 1
	}
	return Params{
		ChunkSize:    size,
		ChunkOverlap: overlap,
		MaxChunks:    maxChunks[fileType][category],
		SizeCategory: category,
	}
}
