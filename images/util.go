package images

import (
	"runtime"
	"sync"
)

// Clamp restricts a value to the specified range [min, max].
// This is used to prevent overflow in color calculations.
//
// Arguments:
// - value: The value to Clamp.
// - min: Minimum allowed value.
// - max: Maximum allowed value.
//
// Returns:
// - The clamped value within [min, max].
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// ClampUint8 rounds a channel value to the nearest integer and clamps it
// to the valid [0, 255] channel domain. NaN clamps to zero.
func ClampUint8(value float64) uint8 {
	if !(value > 0) { // catches NaN as well as negatives
		return 0
	}
	if value >= 255 {
		return 255
	}
	return uint8(value + 0.5)
}

// EdgeMode defines how to handle coordinates that are out of bounds.
type EdgeMode string

const (
	// ClampEdgeMode clamps the coordinate to the nearest valid value.
	ClampEdgeMode EdgeMode = "clamp"
	// MirrorEdgeMode mirrors the coordinate around the edge.
	MirrorEdgeMode EdgeMode = "mirror"
	// WrapEdgeMode wraps the coordinate around the edge.
	WrapEdgeMode EdgeMode = "wrap"
)

// MapCoord maps a coordinate to a valid value based on the edge mode.
//
// Arguments:
// - coord: The coordinate to map.
// - max: The exclusive upper bound of the coordinate.
// - mode: The edge mode to use.
func MapCoord(coord, max int, mode EdgeMode) int {
	switch mode {
	case ClampEdgeMode:
		if coord < 0 {
			return 0
		} else if coord >= max {
			return max - 1
		}
		return coord
	case MirrorEdgeMode:
		for coord < 0 || coord >= max {
			if coord < 0 {
				coord = -coord - 1
			} else {
				coord = 2*max - coord - 1
			}
		}
		return coord
	case WrapEdgeMode:
		return (coord%max + max) % max
	default:
		return coord // fallback to Clamp
	}
}

// Parallel executes a function in parallel across multiple goroutines.
// This improves performance on multi-core systems.
//
// Arguments:
// - dataSize: The size of the data to process.
// - fn: Function to execute for each partition (receives start and end indices).
//
// Returns:
// - None.
//
// @example
//
//	Parallel(height, func(start, end int) {
//	    for y := start; y < end; y++ {
//	        // Process row y
//	    }
//	})
func Parallel(dataSize int, fn func(partStart, partEnd int)) {
	// Use the number of CPU cores for optimal parallelism.
	numGoroutines := runtime.NumCPU()

	// For small data sizes, parallel processing overhead isn't worth it.
	if dataSize < numGoroutines*2 {
		fn(0, dataSize)
		return
	}

	partSize := dataSize / numGoroutines

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		partStart := i * partSize
		partEnd := partStart + partSize

		// Last partition gets any remaining data.
		if i == numGoroutines-1 {
			partEnd = dataSize
		}

		go func(start, end int) {
			defer wg.Done()
			fn(start, end)
		}(partStart, partEnd)
	}

	wg.Wait()
}
