// Monte-Carlo moment estimation over realized maps: component C.
package spatial

import (
	"hash/fnv"
	"math/rand"

	"github.com/kohaut/promis/internal/geo"
	"github.com/kohaut/promis/internal/monitoring"
)

// DeriveSeed mixes a master seed with a (relation, type) pair so every slot
// draws from an independent, reproducible stream (spec §5, §9).
func DeriveSeed(master int64, relationName, locationType string) int64 {
	h := fnv.New64a()
	h.Write([]byte(relationName))
	h.Write([]byte{0})
	h.Write([]byte(locationType))
	return master ^ int64(h.Sum64())
}

// EstimateMoments samples K realizations of relevantMap, evaluates kernel
// at every support location in each realization, and reduces to per-point
// (mean, population variance). If relevantMap has no features, every
// location gets the empty-map sentinel. If kernel fails anywhere, the
// entire slot reverts to the sentinel for every location, with a
// diagnostic — a partial column would corrupt the moment estimate.
func EstimateMoments(
	relevantMap *geo.CartesianMap,
	support []geo.CartesianLocation,
	k int,
	kernel KernelFunc,
	seed int64,
	emptyMean, emptyVariance float64,
	diagnosticLabel string,
) (means, variances []float64) {
	n := len(support)
	means = make([]float64, n)
	variances = make([]float64, n)

	if len(relevantMap.Features) == 0 {
		fillSentinel(means, variances, emptyMean, emptyVariance)
		return
	}

	rng := rand.New(rand.NewSource(seed))
	indexes := make([]*geo.Index, k)
	for r := 0; r < k; r++ {
		geometries := make([]geo.Geometry, len(relevantMap.Features))
		for f, feature := range relevantMap.Features {
			geometries[f] = feature.Sample(rng).Geometry
		}
		indexes[r] = geo.NewIndex(geometries)
	}

	draws := make([][]float64, n)
	for i := range draws {
		draws[i] = make([]float64, k)
	}

	for r, idx := range indexes {
		for i, loc := range support {
			v, err := kernel(loc, idx)
			if err != nil {
				monitoring.Logf("spatial: kernel failure for %s at point %d (realization %d): %v; reverting slot to empty-map sentinel", diagnosticLabel, i, r, err)
				fillSentinel(means, variances, emptyMean, emptyVariance)
				return
			}
			draws[i][r] = v
		}
	}

	for i, vals := range draws {
		var sum float64
		for _, v := range vals {
			sum += v
		}
		mean := sum / float64(k)

		var sq float64
		for _, v := range vals {
			d := v - mean
			sq += d * d
		}
		variance := sq / float64(k)

		means[i] = mean
		variances[i] = variance
	}
	return
}

func fillSentinel(means, variances []float64, mean, variance float64) {
	for i := range means {
		means[i] = mean
		variances[i] = variance
	}
}
