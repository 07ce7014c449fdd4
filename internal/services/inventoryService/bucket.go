package inventoryservice

import convert "github.com/redjax/hwsum/internal/utils/convert"

// canonicalSizesGiB are the "marketing" capacities disks are rounded to.
var canonicalSizesGiB = [...]uint64{120, 240, 500, 1000, 2000, 4000}

// CanonicalSizes returns a copy of the bucket table in ascending order.
func CanonicalSizes() []uint64 {
	out := make([]uint64, len(canonicalSizesGiB))
	copy(out, canonicalSizesGiB[:])
	return out
}

// BucketGiB converts a raw byte count to GiB and rounds it to the nearest
// canonical size. Ties resolve to the smaller size. There is no distance
// threshold, so the result is always a canonical value.
func BucketGiB(bytes uint64) uint64 {
	return NearestCanonical(convert.BytesToGiB(bytes))
}

// NearestCanonical rounds an already converted GiB value to the closest
// canonical size.
func NearestCanonical(gib uint64) uint64 {
	closest := canonicalSizesGiB[0]
	minDiff := absDiff(gib, closest)

	for _, n := range canonicalSizesGiB[1:] {
		if d := absDiff(gib, n); d < minDiff {
			minDiff = d
			closest = n
		}
	}

	return closest
}

func absDiff(a, b uint64) uint64 {
	if a > b {
		return a - b
	}
	return b - a
}
