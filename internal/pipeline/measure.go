package pipeline

import "os"

// Measure stats the produced output and computes the reduction against
// srcSize. An output that cannot be stat'd yields Unknown, never an error:
// the conversion itself already succeeded.
func Measure(srcSize int64, output string) (Reduction, int64) {
	if output == "" {
		return Unknown, 0
	}
	fi, err := os.Stat(output)
	if err != nil {
		return Unknown, 0
	}
	return ComputeReduction(srcSize, fi.Size()), fi.Size()
}
