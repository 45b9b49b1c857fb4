package util

func IfThenElse[T any](condition bool, a T, b T) T {
	if condition {
		return a
	}
	return b
}

// PixelCount returns width*height as an int, computed in 64 bits so
// callers can compare against slice lengths without wraparound.
func PixelCount(width uint32, height uint32) int {
	return int(uint64(width) * uint64(height))
}
