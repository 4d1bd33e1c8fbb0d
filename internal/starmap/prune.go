package starmap

import (
	"math/rand"
	"sort"

	"github.com/kohaut/promis/internal/geo"
	"github.com/kohaut/promis/internal/logic"
	"github.com/kohaut/promis/internal/spatial"
)

type unionFind struct{ parent []int }

func newUnionFind(n int) *unionFind {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return &unionFind{parent: p}
}

func (u *unionFind) find(x int) int {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra != rb {
		u.parent[ra] = rb
	}
}

// clusterIndexes single-linkage clusters coords under threshold and returns,
// for each resulting cluster, the smallest original index it contains —
// Prune keeps that representative and drops the rest.
func clusterIndexes(coords [][2]float64, threshold float64) []int {
	n := len(coords)
	uf := newUnionFind(n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			de := coords[i][0] - coords[j][0]
			dn := coords[i][1] - coords[j][1]
			if de*de+dn*dn <= threshold*threshold {
				uf.union(i, j)
			}
		}
	}

	best := make(map[int]int)
	for i := 0; i < n; i++ {
		root := uf.find(i)
		if cur, ok := best[root]; !ok || i < cur {
			best[root] = i
		}
	}

	keep := make([]int, 0, len(best))
	for _, i := range best {
		keep = append(keep, i)
	}
	sort.Ints(keep)
	return keep
}

// Prune collapses support points closer than threshold to each other within
// every slot, keeping the earliest-added point of each cluster, and marks
// affected slots stale.
func (m *StarMap) Prune(threshold float64) error {
	for _, s := range m.slots {
		keep := clusterIndexes(s.Support.Coordinates(), threshold)
		if len(keep) == s.Support.Len() {
			continue
		}
		pruned := geo.NewCollection(s.Support.Origin, s.Support.Dim)
		for _, i := range keep {
			row := s.Support.Row(i)
			if err := pruned.Append(s.Support.East(i), s.Support.North(i), row...); err != nil {
				return err
			}
		}
		s.Support = pruned
		s.Fitted = false
	}
	return nil
}

// AutoImprove draws n target locations per slot via probability-weighted
// sampling without replacement over the L1-normalized predictive-std image,
// adds k Monte-Carlo samples there, and refits. It only applies when the
// StaR Map's method is gaussian_process and Target is a dense raster band,
// since predictive std and the notion of resampling a grid cell only make
// sense there.
func (m *StarMap) AutoImprove(k, n int) error {
	if m.Method != MethodGaussianProcess {
		return ErrAutoImproveRequiresGaussianProcess
	}
	if _, ok := m.Target.(*geo.CartesianRasterBand); !ok {
		return ErrAutoImproveRequiresRasterBand
	}

	refs := sortedRefs(m.slots)
	targetCoords := targetCoordinates(m.Target)
	queryCoords := coordinatePairs(m.Target)

	for _, ref := range refs {
		s := m.slots[ref]
		stdApprox, ok := s.Approximator.(StdApproximator)
		if !ok || !s.Fitted {
			continue
		}
		stds, err := stdApprox.PredictStd(queryCoords)
		if err != nil {
			return err
		}

		rng := rand.New(rand.NewSource(spatial.DeriveSeed(m.Cfg.GetMasterSeed(), ref.Name, ref.LocationType)))
		picked := weightedSampleWithoutReplacement(rng, normalizeL1(stds), n)
		resample := make([]geo.CartesianLocation, len(picked))
		for i, idx := range picked {
			resample[i] = targetCoords[idx]
		}

		if err := m.AddSupportPoints(resample, k, []logic.RelationRef{ref}); err != nil {
			return err
		}
	}
	return m.Fit(refs)
}

// normalizeL1 scales weights to sum to 1, falling back to a uniform
// distribution when every weight is zero (e.g. an unfitted constant slot).
func normalizeL1(weights []float64) []float64 {
	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	out := make([]float64, len(weights))
	if sum <= 0 {
		for i := range out {
			out[i] = 1.0 / float64(len(weights))
		}
		return out
	}
	for i, w := range weights {
		out[i] = w / sum
	}
	return out
}

// weightedSampleWithoutReplacement draws up to n indexes, each round
// renormalizing the remaining weights, matching numpy.random.choice's
// replace=False semantics.
func weightedSampleWithoutReplacement(rng *rand.Rand, weights []float64, n int) []int {
	if n > len(weights) {
		n = len(weights)
	}
	remaining := append([]float64(nil), weights...)
	available := make([]int, len(weights))
	for i := range available {
		available[i] = i
	}

	selected := make([]int, 0, n)
	for len(selected) < n {
		total := 0.0
		for _, i := range available {
			total += remaining[i]
		}

		var pick int
		if total <= 0 {
			pick = rng.Intn(len(available))
		} else {
			r := rng.Float64() * total
			cum := 0.0
			pick = len(available) - 1
			for idx, i := range available {
				cum += remaining[i]
				if r <= cum {
					pick = idx
					break
				}
			}
		}

		selected = append(selected, available[pick])
		available = append(available[:pick], available[pick+1:]...)
	}
	return selected
}
