package ml

import (
	"errors"
	"math"
	"math/rand"
	"sort"
)

// TreeNode is one node of a decision tree. Internal nodes route on
// Feature/Threshold; leaves carry per-class sample counts.
type TreeNode struct {
	Feature     int       `json:"f,omitempty"`
	Threshold   float64   `json:"t,omitempty"`
	Left        *TreeNode `json:"l,omitempty"`
	Right       *TreeNode `json:"r,omitempty"`
	ClassCounts []int     `json:"c,omitempty"`
}

func (n *TreeNode) isLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// majorityClass returns the leaf's winning class, lowest index on ties
func (n *TreeNode) majorityClass() int {
	best, bestCount := 0, -1
	for class, count := range n.ClassCounts {
		if count > bestCount {
			best, bestCount = class, count
		}
	}
	return best
}

// Forest is an ensemble of randomized decision trees. Each tree is grown
// on a bootstrap sample with sqrt-feature subsampling and Gini splits;
// prediction aggregates per-tree majority votes into class fractions.
type Forest struct {
	NumTrees   int         `json:"num_trees"`
	MaxDepth   int         `json:"max_depth"`
	NumClasses int         `json:"num_classes"`
	Seed       int64       `json:"seed"`
	Trees      []*TreeNode `json:"trees"`
}

// NewForest creates an unfitted forest with a fixed random seed for
// reproducible training
func NewForest(numTrees, maxDepth int, seed int64) *Forest {
	return &Forest{NumTrees: numTrees, MaxDepth: maxDepth, Seed: seed}
}

// IsFitted reports whether Fit has been called
func (f *Forest) IsFitted() bool {
	return len(f.Trees) > 0
}

// Fit trains the ensemble on feature rows X with class labels y in
// [0, numClasses)
func (f *Forest) Fit(X [][]float64, y []int, numClasses int) error {
	if len(X) == 0 || len(X) != len(y) {
		return errors.New("forest: feature and label counts must match and be non-empty")
	}
	if numClasses < 2 {
		return errors.New("forest: need at least two classes")
	}

	f.NumClasses = numClasses
	f.Trees = make([]*TreeNode, f.NumTrees)

	rng := rand.New(rand.NewSource(f.Seed))
	n := len(X)
	featuresPerSplit := int(math.Sqrt(float64(len(X[0]))))
	if featuresPerSplit < 1 {
		featuresPerSplit = 1
	}

	for t := 0; t < f.NumTrees; t++ {
		indices := make([]int, n)
		for i := range indices {
			indices[i] = rng.Intn(n)
		}
		f.Trees[t] = f.growTree(X, y, indices, 0, featuresPerSplit, rng)
	}

	return nil
}

// Probabilities returns per-class vote fractions for a single feature row
func (f *Forest) Probabilities(x []float64) ([]float64, error) {
	if !f.IsFitted() {
		return nil, ErrNotFitted
	}

	votes := make([]float64, f.NumClasses)
	for _, tree := range f.Trees {
		node := tree
		for !node.isLeaf() {
			if x[node.Feature] <= node.Threshold {
				node = node.Left
			} else {
				node = node.Right
			}
		}
		votes[node.majorityClass()]++
	}

	total := float64(len(f.Trees))
	for i := range votes {
		votes[i] /= total
	}
	return votes, nil
}

func (f *Forest) growTree(X [][]float64, y, indices []int, depth, featuresPerSplit int, rng *rand.Rand) *TreeNode {
	counts := make([]int, f.NumClasses)
	for _, idx := range indices {
		counts[y[idx]]++
	}

	if depth >= f.MaxDepth || len(indices) < 2 || isPure(counts) {
		return &TreeNode{ClassCounts: counts}
	}

	feature, threshold, ok := f.bestSplit(X, y, indices, featuresPerSplit, rng)
	if !ok {
		return &TreeNode{ClassCounts: counts}
	}

	var left, right []int
	for _, idx := range indices {
		if X[idx][feature] <= threshold {
			left = append(left, idx)
		} else {
			right = append(right, idx)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return &TreeNode{ClassCounts: counts}
	}

	return &TreeNode{
		Feature:   feature,
		Threshold: threshold,
		Left:      f.growTree(X, y, left, depth+1, featuresPerSplit, rng),
		Right:     f.growTree(X, y, right, depth+1, featuresPerSplit, rng),
	}
}

// bestSplit scans a random feature subset for the threshold minimizing
// weighted Gini impurity
func (f *Forest) bestSplit(X [][]float64, y, indices []int, featuresPerSplit int, rng *rand.Rand) (int, float64, bool) {
	numFeatures := len(X[indices[0]])
	candidates := rng.Perm(numFeatures)[:featuresPerSplit]

	bestFeature, bestThreshold := -1, 0.0
	bestImpurity := math.Inf(1)

	for _, feature := range candidates {
		seen := make(map[float64]struct{}, len(indices))
		values := make([]float64, 0, len(indices))
		for _, idx := range indices {
			if _, ok := seen[X[idx][feature]]; !ok {
				seen[X[idx][feature]] = struct{}{}
				values = append(values, X[idx][feature])
			}
		}
		if len(values) < 2 {
			continue
		}
		// Sorted scan keeps training deterministic for a fixed seed
		sort.Float64s(values)

		for _, threshold := range values {
			leftCounts := make([]int, f.NumClasses)
			rightCounts := make([]int, f.NumClasses)
			nLeft, nRight := 0, 0
			for _, idx := range indices {
				if X[idx][feature] <= threshold {
					leftCounts[y[idx]]++
					nLeft++
				} else {
					rightCounts[y[idx]]++
					nRight++
				}
			}
			if nLeft == 0 || nRight == 0 {
				continue
			}

			total := float64(nLeft + nRight)
			impurity := float64(nLeft)/total*gini(leftCounts, nLeft) +
				float64(nRight)/total*gini(rightCounts, nRight)
			if impurity < bestImpurity {
				bestImpurity = impurity
				bestFeature = feature
				bestThreshold = threshold
			}
		}
	}

	return bestFeature, bestThreshold, bestFeature >= 0
}

func gini(counts []int, total int) float64 {
	impurity := 1.0
	for _, c := range counts {
		p := float64(c) / float64(total)
		impurity -= p * p
	}
	return impurity
}

func isPure(counts []int) bool {
	nonZero := 0
	for _, c := range counts {
		if c > 0 {
			nonZero++
		}
	}
	return nonZero <= 1
}
