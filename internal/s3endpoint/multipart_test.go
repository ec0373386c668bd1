package s3endpoint

import (
	"testing"

	"github.com/chadvoegele/s7/internal/constants"
)

func TestChoosePartSizeSmallFile(t *testing.T) {
	got := choosePartSize(1024, nil)
	if got != constants.MinPartSize {
		t.Errorf("choosePartSize(1KiB) = %d, want %d", got, constants.MinPartSize)
	}
}

func TestChoosePartSizeDoublesForManyParts(t *testing.T) {
	// 60 GiB at the 5 MiB minimum would need 12288 parts, over the 10000
	// limit, so the algorithm must double at least once.
	size := int64(60) * 1024 * 1024 * 1024
	got := choosePartSize(size, nil)

	if got <= constants.MinPartSize {
		t.Fatalf("choosePartSize(60GiB) = %d, want > %d", got, constants.MinPartSize)
	}
	if numParts(size, got) > constants.MaxPartsPerUpload {
		t.Errorf("chosen part size %d still needs %d parts, over the %d limit",
			got, numParts(size, got), constants.MaxPartsPerUpload)
	}
}

func TestChoosePartSizeClipsToMax(t *testing.T) {
	got := choosePartSize(constants.MaxObjectSize, nil)
	if got > constants.MaxPartSize {
		t.Errorf("choosePartSize(max object size) = %d, want <= %d", got, constants.MaxPartSize)
	}
}

func TestNumPartsZeroSize(t *testing.T) {
	if n := numParts(0, constants.MinPartSize); n != 1 {
		t.Errorf("numParts(0, ...) = %d, want 1", n)
	}
}

type recordingLogger struct{ notices []string }

func (r *recordingLogger) Noticef(format string, args ...any) {
	r.notices = append(r.notices, format)
}

func TestChoosePartSizeLogsOnAdjustment(t *testing.T) {
	rl := &recordingLogger{}
	size := int64(60) * 1024 * 1024 * 1024
	choosePartSize(size, rl)

	if len(rl.notices) == 0 {
		t.Error("expected at least one notice when part size is adjusted")
	}
}
