package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"finsight/internal/dto"
	"finsight/internal/errors"
	"finsight/internal/models"
	"finsight/internal/services"

	"github.com/stretchr/testify/suite"
)

type CategorizeHandlerTestSuite struct {
	suite.Suite
	handler *CategorizeHandler
}

func TestCategorizeHandlerSuite(t *testing.T) {
	suite.Run(t, new(CategorizeHandlerTestSuite))
}

func (s *CategorizeHandlerTestSuite) SetupTest() {
	classifier := services.NewTextClassifier(newMemoryStore(), services.NewNoopMetrics(), 42)
	s.handler = NewCategorizeHandler(classifier, services.NewNoopMetrics())
}

func (s *CategorizeHandlerTestSuite) TestCategorize_Success() {
	e := newTestEcho()
	c, rec := newJSONContext(e, http.MethodPost, "/categorize",
		`{"title": "Office rent", "description": "Monthly office space rental"}`)

	s.Require().NoError(s.handler.Categorize(c))
	s.Equal(http.StatusOK, rec.Code)

	var resp dto.CategorizeResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal(models.CategoryRent, resp.Category)
	s.Greater(resp.Confidence, 0.5)
	s.NotNil(resp.Alternatives)
}

func (s *CategorizeHandlerTestSuite) TestCategorize_MissingTitle() {
	e := newTestEcho()
	c, rec := newJSONContext(e, http.MethodPost, "/categorize", `{"description": "no title here"}`)

	s.Require().NoError(s.handler.Categorize(c))
	s.Equal(http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal(string(errors.ValidationRequiredField), resp.Error.Code)
}

func (s *CategorizeHandlerTestSuite) TestCategorize_WhitespaceTitle() {
	e := newTestEcho()
	c, rec := newJSONContext(e, http.MethodPost, "/categorize", `{"title": "   "}`)

	s.Require().NoError(s.handler.Categorize(c))
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *CategorizeHandlerTestSuite) TestCategorize_MalformedBody() {
	e := newTestEcho()
	c, rec := newJSONContext(e, http.MethodPost, "/categorize", `{"title": `)

	s.Require().NoError(s.handler.Categorize(c))
	s.Equal(http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal(string(errors.ValidationGeneral), resp.Error.Code)
}
