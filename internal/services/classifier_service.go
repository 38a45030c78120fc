package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"finsight/internal/ml"
	"finsight/internal/models"
	"finsight/internal/repositories"
)

const (
	classifierVocabularySize = 100
	classifierTreeCount      = 100
	classifierTreeDepth      = 10

	// alternativeMinConfidence filters weak alternative suggestions
	alternativeMinConfidence = 0.10
	maxAlternatives          = 2
)

// classifierState is the persisted form of a trained classifier
type classifierState struct {
	Vectorizer *ml.Vectorizer `json:"vectorizer"`
	Forest     *ml.Forest     `json:"forest"`
	Labels     []string       `json:"labels"`
}

// textClassifier categorizes expenses from title and description text
// using TF-IDF features and a randomized decision forest
type textClassifier struct {
	mu      sync.Mutex
	store   repositories.ModelStoreInterface
	metrics MetricsRecorderInterface
	seed    int64

	vectorizer *ml.Vectorizer
	forest     *ml.Forest
	labels     []string
	trained    bool
}

// NewTextClassifier creates an untrained classifier. Training happens
// lazily on first use or explicitly via EnsureInitialized.
func NewTextClassifier(store repositories.ModelStoreInterface, metrics MetricsRecorderInterface, seed int64) TextClassifierInterface {
	return &textClassifier{
		store:   store,
		metrics: metrics,
		seed:    seed,
		labels:  models.Categories(),
	}
}

// IsTrained reports whether the classifier holds fitted state
func (c *textClassifier) IsTrained() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.trained
}

// EnsureInitialized loads persisted state or trains from the seed corpus.
// At most one training pass runs per instance; concurrent callers block
// until initialization completes.
func (c *textClassifier) EnsureInitialized() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ensureInitializedLocked()
}

func (c *textClassifier) ensureInitializedLocked() error {
	if c.trained {
		return nil
	}

	blob, err := c.store.Load(models.ModelKeyExpenseClassifier)
	if err == nil {
		var state classifierState
		if jsonErr := json.Unmarshal(blob, &state); jsonErr == nil &&
			state.Vectorizer != nil && state.Forest != nil && len(state.Labels) > 0 {
			c.vectorizer = state.Vectorizer
			c.forest = state.Forest
			c.labels = state.Labels
			c.trained = true
			slog.Info("expense classifier loaded from store")
			return nil
		}
		// Corrupt state falls back to retraining from the seed corpus
		slog.Warn("persisted classifier state is corrupt, retraining from seed corpus")
	} else if !errors.Is(err, repositories.ErrModelNotFound) {
		slog.Error("failed to load classifier state", "error", err)
	}

	return c.trainFromSeedLocked()
}

func (c *textClassifier) trainFromSeedLocked() error {
	start := time.Now()
	examples := seedTrainingData()

	texts := make([]string, len(examples))
	y := make([]int, len(examples))
	for i, ex := range examples {
		texts[i] = ex.Title + " " + ex.Description
		idx, ok := c.labelIndex(ex.Category)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownCategory, ex.Category)
		}
		y[i] = idx
	}

	c.vectorizer = ml.NewVectorizer(classifierVocabularySize)
	X, err := c.vectorizer.FitTransform(texts)
	if err != nil {
		return fmt.Errorf("failed to fit vectorizer: %w", err)
	}

	c.forest = ml.NewForest(classifierTreeCount, classifierTreeDepth, c.seed)
	if err := c.forest.Fit(X, y, len(c.labels)); err != nil {
		return fmt.Errorf("failed to fit classifier: %w", err)
	}

	c.trained = true
	c.saveLocked()
	c.metrics.RecordTraining("classifier")
	slog.Info("expense classifier trained from seed corpus",
		"examples", len(examples),
		"features", c.vectorizer.NumFeatures(),
		"duration", time.Since(start))

	return nil
}

// saveLocked persists the trained state; persistence failures are logged
// but never block inference
func (c *textClassifier) saveLocked() {
	state := classifierState{
		Vectorizer: c.vectorizer,
		Forest:     c.forest,
		Labels:     c.labels,
	}
	blob, err := json.Marshal(state)
	if err != nil {
		slog.Error("failed to encode classifier state", "error", err)
		return
	}
	if err := c.store.Save(models.ModelKeyExpenseClassifier, blob); err != nil {
		slog.Error("failed to save classifier state", "error", err)
	}
}

// Predict classifies the combined title and description text. Blank input
// soft-fails to the catch-all category with zero confidence.
func (c *textClassifier) Predict(title, description string) (*models.ClassificationResult, error) {
	if err := c.EnsureInitialized(); err != nil {
		return nil, err
	}

	text := strings.TrimSpace(title + " " + description)
	if text == "" {
		return &models.ClassificationResult{
			Category:     models.CategoryOther,
			Confidence:   0.0,
			Alternatives: []models.CategoryConfidence{},
		}, nil
	}

	rows, err := c.vectorizer.Transform([]string{text})
	if err != nil {
		return nil, fmt.Errorf("failed to vectorize text: %w", err)
	}

	probs, err := c.forest.Probabilities(rows[0])
	if err != nil {
		return nil, fmt.Errorf("failed to compute class probabilities: %w", err)
	}

	// Rank labels by probability descending; sorting is stable, so ties
	// keep the canonical label order.
	order := make([]int, len(probs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return probs[order[i]] > probs[order[j]]
	})

	top := order[0]
	alternatives := make([]models.CategoryConfidence, 0, maxAlternatives)
	for _, idx := range order[1:] {
		if len(alternatives) == maxAlternatives {
			break
		}
		if probs[idx] > alternativeMinConfidence {
			alternatives = append(alternatives, models.CategoryConfidence{
				Category:   c.labels[idx],
				Confidence: probs[idx],
			})
		}
	}

	return &models.ClassificationResult{
		Category:     c.labels[top],
		Confidence:   probs[top],
		Alternatives: alternatives,
	}, nil
}

// Retrain refits the forest on new labeled examples. The vectorizer
// vocabulary is intentionally frozen after initial training: new examples
// are transformed with the original vocabulary, and terms outside it are
// ignored. Changing this would silently alter classification behavior for
// existing callers.
func (c *textClassifier) Retrain(examples []models.TrainingExample) error {
	if len(examples) == 0 {
		return ErrNoTrainingExamples
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ensureInitializedLocked(); err != nil {
		return err
	}

	texts := make([]string, len(examples))
	y := make([]int, len(examples))
	for i, ex := range examples {
		texts[i] = ex.Title + " " + ex.Description
		idx, ok := c.labelIndex(ex.Category)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownCategory, ex.Category)
		}
		y[i] = idx
	}

	X, err := c.vectorizer.Transform(texts)
	if err != nil {
		return fmt.Errorf("failed to vectorize training examples: %w", err)
	}

	forest := ml.NewForest(classifierTreeCount, classifierTreeDepth, c.seed)
	if err := forest.Fit(X, y, len(c.labels)); err != nil {
		return fmt.Errorf("failed to refit classifier: %w", err)
	}

	c.forest = forest
	c.saveLocked()
	c.metrics.RecordTraining("classifier")
	slog.Info("expense classifier retrained", "examples", len(examples))

	return nil
}

func (c *textClassifier) labelIndex(category string) (int, bool) {
	for i, label := range c.labels {
		if label == category {
			return i, true
		}
	}
	return 0, false
}
