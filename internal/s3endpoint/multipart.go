package s3endpoint

import (
	"github.com/chadvoegele/s7/internal/constants"
)

// partSizeLogger receives a notice whenever choosePartSize adjusts the part
// size, so the backend can route it through its own logger.
type partSizeLogger interface {
	Noticef(format string, args ...any)
}

// choosePartSize computes the multipart part size for an upload of size
// bytes: start at the minimum part size, double it while the object would
// need more than MaxPartsPerUpload parts, then clip into
// [MinPartSize, MaxPartSize].
func choosePartSize(size int64, log partSizeLogger) int64 {
	partSize := int64(constants.MinPartSize)

	for numParts(size, partSize) > constants.MaxPartsPerUpload {
		partSize *= 2
		if log != nil {
			log.Noticef("Increasing part size to %d bytes for a %d byte upload", partSize, size)
		}
	}

	if partSize > constants.MaxPartSize {
		if log != nil {
			log.Noticef("Clipping part size down to %d bytes", constants.MaxPartSize)
		}
		partSize = constants.MaxPartSize
	}
	if partSize < constants.MinPartSize {
		if log != nil {
			log.Noticef("Clipping part size up to %d bytes", constants.MinPartSize)
		}
		partSize = constants.MinPartSize
	}

	return partSize
}

// numParts returns ceil(size / partSize), treating a zero-byte upload as a
// single part.
func numParts(size, partSize int64) int64 {
	if size <= 0 {
		return 1
	}
	n := size / partSize
	if size%partSize != 0 {
		n++
	}
	return n
}
