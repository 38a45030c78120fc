package repositories

import (
	"testing"

	"finsight/internal/database"
	"finsight/internal/models"

	"github.com/stretchr/testify/suite"
)

func TestModelStateRepository(t *testing.T) {
	suite.Run(t, new(ModelStateRepositorySuite))
}

type ModelStateRepositorySuite struct {
	suite.Suite
	db    *database.DB
	store ModelStoreInterface
}

func (s *ModelStateRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.store = NewModelStateRepository(s.db.DB)
}

func (s *ModelStateRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *ModelStateRepositorySuite) TestSaveAndLoad() {
	blob := []byte(`{"vocabulary": {"rent": 0}}`)
	s.Require().NoError(s.store.Save(models.ModelKeyExpenseClassifier, blob))

	loaded, err := s.store.Load(models.ModelKeyExpenseClassifier)
	s.Require().NoError(err)
	s.Equal(blob, loaded)
}

func (s *ModelStateRepositorySuite) TestLoad_MissingKey() {
	_, err := s.store.Load("no_such_model")
	s.ErrorIs(err, ErrModelNotFound)
}

func (s *ModelStateRepositorySuite) TestSave_UpsertBumpsVersion() {
	key := models.ModelKeyAnomalyDetector
	s.Require().NoError(s.store.Save(key, []byte(`{"v": 1}`)))
	s.Require().NoError(s.store.Save(key, []byte(`{"v": 2}`)))

	loaded, err := s.store.Load(key)
	s.Require().NoError(err)
	s.Equal([]byte(`{"v": 2}`), loaded)

	var state models.ModelState
	s.Require().NoError(s.db.First(&state, "key = ?", key).Error)
	s.Equal(2, state.Version)
	s.False(state.TrainedAt.IsZero())
}

func (s *ModelStateRepositorySuite) TestDelete() {
	key := models.ModelKeyExpenseClassifier
	s.Require().NoError(s.store.Save(key, []byte(`{}`)))
	s.Require().NoError(s.store.Delete(key))

	_, err := s.store.Load(key)
	s.ErrorIs(err, ErrModelNotFound)
}

func (s *ModelStateRepositorySuite) TestDelete_MissingKeyNotError() {
	s.NoError(s.store.Delete("no_such_model"))
}

func (s *ModelStateRepositorySuite) TestKeysAreIsolated() {
	s.Require().NoError(s.store.Save(models.ModelKeyExpenseClassifier, []byte(`{"a": 1}`)))
	s.Require().NoError(s.store.Save(models.ModelKeyAnomalyDetector, []byte(`{"b": 2}`)))

	classifier, err := s.store.Load(models.ModelKeyExpenseClassifier)
	s.Require().NoError(err)
	detector, err := s.store.Load(models.ModelKeyAnomalyDetector)
	s.Require().NoError(err)

	s.NotEqual(classifier, detector)
}
