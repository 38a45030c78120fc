package ml

import (
	"errors"
	"math"
	"math/rand"
	"sort"
)

// isoNode is one node of a random partition tree. Leaves record how many
// training points they absorbed so truncated paths can be extended by the
// expected remaining depth.
type isoNode struct {
	Feature   int      `json:"f,omitempty"`
	Threshold float64  `json:"t,omitempty"`
	Left      *isoNode `json:"l,omitempty"`
	Right     *isoNode `json:"r,omitempty"`
	Size      int      `json:"s,omitempty"`
}

// IsolationForest scores points by how quickly random axis-aligned
// partitions isolate them. Scores follow the convention of negated
// anomaly mass: every score is in [-1, 0), and lower means more
// anomalous. Points scoring below the fitted Offset are flagged; Offset
// is the contamination-quantile of the training scores.
type IsolationForest struct {
	NumTrees      int        `json:"num_trees"`
	SubsampleSize int        `json:"subsample_size"`
	Contamination float64    `json:"contamination"`
	Seed          int64      `json:"seed"`
	Offset        float64    `json:"offset"`
	Trees         []*isoNode `json:"trees"`
}

// NewIsolationForest creates an unfitted ensemble. Contamination is the
// expected anomaly proportion used to place the decision boundary.
func NewIsolationForest(numTrees int, contamination float64, seed int64) *IsolationForest {
	return &IsolationForest{
		NumTrees:      numTrees,
		Contamination: contamination,
		Seed:          seed,
	}
}

// IsFitted reports whether Fit has been called
func (f *IsolationForest) IsFitted() bool {
	return len(f.Trees) > 0
}

// Fit builds the partition trees on X and fixes the decision offset from
// the contamination fraction
func (f *IsolationForest) Fit(X [][]float64) error {
	if len(X) == 0 {
		return errors.New("isolation forest: empty training set")
	}

	f.SubsampleSize = len(X)
	if f.SubsampleSize > 256 {
		f.SubsampleSize = 256
	}
	maxDepth := int(math.Ceil(math.Log2(float64(f.SubsampleSize))))
	if maxDepth < 1 {
		maxDepth = 1
	}

	rng := rand.New(rand.NewSource(f.Seed))
	f.Trees = make([]*isoNode, f.NumTrees)
	for t := 0; t < f.NumTrees; t++ {
		sample := make([]int, f.SubsampleSize)
		perm := rng.Perm(len(X))
		copy(sample, perm[:f.SubsampleSize])
		f.Trees[t] = growIsoTree(X, sample, 0, maxDepth, rng)
	}

	// Decision boundary: the contamination-quantile of training scores
	scores := make([]float64, len(X))
	for i, x := range X {
		scores[i] = f.Score(x)
	}
	sort.Float64s(scores)
	f.Offset = quantile(scores, f.Contamination)

	return nil
}

// Score returns the anomaly score of one point; lower is more anomalous
func (f *IsolationForest) Score(x []float64) float64 {
	var total float64
	for _, tree := range f.Trees {
		total += pathLength(tree, x, 0)
	}
	avgPath := total / float64(len(f.Trees))
	return -math.Pow(2, -avgPath/averagePathLength(f.SubsampleSize))
}

// IsAnomaly reports whether the score falls below the decision boundary
func (f *IsolationForest) IsAnomaly(score float64) bool {
	return score < f.Offset
}

func growIsoTree(X [][]float64, indices []int, depth, maxDepth int, rng *rand.Rand) *isoNode {
	if depth >= maxDepth || len(indices) <= 1 {
		return &isoNode{Size: len(indices)}
	}

	feature := rng.Intn(len(X[indices[0]]))
	minVal, maxVal := X[indices[0]][feature], X[indices[0]][feature]
	for _, idx := range indices[1:] {
		v := X[idx][feature]
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if minVal == maxVal {
		return &isoNode{Size: len(indices)}
	}

	threshold := minVal + rng.Float64()*(maxVal-minVal)
	var left, right []int
	for _, idx := range indices {
		if X[idx][feature] < threshold {
			left = append(left, idx)
		} else {
			right = append(right, idx)
		}
	}

	return &isoNode{
		Feature:   feature,
		Threshold: threshold,
		Left:      growIsoTree(X, left, depth+1, maxDepth, rng),
		Right:     growIsoTree(X, right, depth+1, maxDepth, rng),
	}
}

func pathLength(node *isoNode, x []float64, depth int) float64 {
	if node.Left == nil && node.Right == nil {
		return float64(depth) + averagePathLength(node.Size)
	}
	if x[node.Feature] < node.Threshold {
		return pathLength(node.Left, x, depth+1)
	}
	return pathLength(node.Right, x, depth+1)
}

// averagePathLength is c(n), the expected path length of an unsuccessful
// BST search over n points
func averagePathLength(n int) float64 {
	if n <= 1 {
		return 0
	}
	if n == 2 {
		return 1
	}
	h := math.Log(float64(n-1)) + 0.5772156649015329
	return 2*h - 2*float64(n-1)/float64(n)
}

// quantile returns the q-quantile of ascending-sorted values with linear
// interpolation
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower == upper {
		return sorted[lower]
	}
	frac := pos - float64(lower)
	return sorted[lower]*(1-frac) + sorted[upper]*frac
}
