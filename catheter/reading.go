package catheter

import (
	"math"
	"time"
)

const (
	// UrineOutputThreshold is the output change (ml) a reading must exceed to be stored.
	UrineOutputThreshold = 2.0
	// FlowRateThreshold is the flow rate change a reading must exceed to be stored.
	FlowRateThreshold = 0.1
	// BagVolumeThreshold is the bag volume change (ml) a reading must exceed to be stored.
	BagVolumeThreshold = 2.0

	// FullBagVolume is the bag volume (ml) at which the actual time is recorded.
	FullBagVolume = 800.0

	// ActualTimeLayout formats the wall-clock time of a crossing as HH:MM.
	ActualTimeLayout = "15:04"
)

// Changed reports whether next differs from prev enough to be persisted.
// Remaining volume and the prediction are not tracked.
func Changed(prev, next Reading) bool {
	return math.Abs(prev.UrineOutput-next.UrineOutput) > UrineOutputThreshold ||
		math.Abs(prev.UrineFlowRate-next.UrineFlowRate) > FlowRateThreshold ||
		math.Abs(prev.CatheterBagVolume-next.CatheterBagVolume) > BagVolumeThreshold
}

// CrossingTime returns the actual time to record for a reading with the
// given bag volume, or nil when the bag has not reached FullBagVolume.
// Every reading at or above the threshold gets its own stamp.
func CrossingTime(bagVolume float64, now time.Time) *string {
	if bagVolume < FullBagVolume {
		return nil
	}
	stamp := now.Format(ActualTimeLayout)
	return &stamp
}
