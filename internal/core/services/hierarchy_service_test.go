package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/dcastano/contable_app/internal/core/domain"
	"github.com/dcastano/contable_app/internal/core/hierarchy"
	portssvc "github.com/dcastano/contable_app/internal/core/ports/services"
	"github.com/dcastano/contable_app/internal/core/services"
)

// --- Test Suite ---
type HierarchyServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  portssvc.HierarchySvcFacade
}

func (suite *HierarchyServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.service = services.NewHierarchyService(suite.mockRepo, hierarchy.Options{})
}

func chartSample() []domain.Account {
	mk := func(code, name string) domain.Account {
		return domain.Account{
			AccountID: "a-" + code,
			Code:      code,
			Name:      name,
			Nature:    domain.NatureDebit,
			Status:    domain.StatusActive,
		}
	}
	return []domain.Account{
		mk("1", "Activo"),
		mk("11", "Disponible"),
		mk("1105", "Caja"),
		mk("110505", "Caja general"),
		mk("4", "Ingresos"),
	}
}

// --- Test Cases ---

func (suite *HierarchyServiceTestSuite) TestVisibleRows_CollapsedShowsRoots() {
	ctx := context.Background()

	suite.mockRepo.On("ListAllAccounts", ctx).Return(chartSample(), nil).Once()

	rows, warnings, err := suite.service.VisibleRows(ctx, hierarchy.Filter{}, nil, hierarchy.Ascending)

	suite.Require().NoError(err)
	suite.Empty(warnings)
	suite.Require().Len(rows, 2)
	suite.Equal("1", rows[0].Account.Code)
	suite.Equal("4", rows[1].Account.Code)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *HierarchyServiceTestSuite) TestVisibleRows_ExpansionFollowsParents() {
	ctx := context.Background()

	suite.mockRepo.On("ListAllAccounts", ctx).Return(chartSample(), nil).Once()

	rows, _, err := suite.service.VisibleRows(ctx, hierarchy.Filter{}, []string{"a-1", "a-11"}, hierarchy.Ascending)

	suite.Require().NoError(err)
	codes := make([]string, len(rows))
	for i, r := range rows {
		codes[i] = r.Account.Code
	}
	suite.Equal([]string{"1", "11", "1105", "4"}, codes)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *HierarchyServiceTestSuite) TestVisibleRows_FilterRevealsAncestors() {
	ctx := context.Background()

	suite.mockRepo.On("ListAllAccounts", ctx).Return(chartSample(), nil).Once()

	rows, _, err := suite.service.VisibleRows(ctx, hierarchy.Filter{Text: "caja general"}, nil, hierarchy.Ascending)

	suite.Require().NoError(err)
	codes := make([]string, len(rows))
	for i, r := range rows {
		codes[i] = r.Account.Code
	}
	suite.Equal([]string{"1", "11", "1105", "110505"}, codes)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *HierarchyServiceTestSuite) TestVisibleRows_SurfacesWarnings() {
	ctx := context.Background()
	chart := chartSample()
	// Two accounts carrying the same code.
	chart = append(chart, domain.Account{AccountID: "a-dup", Code: "11", Name: "Duplicado", Status: domain.StatusActive})

	suite.mockRepo.On("ListAllAccounts", ctx).Return(chart, nil).Once()

	_, warnings, err := suite.service.VisibleRows(ctx, hierarchy.Filter{}, nil, hierarchy.Ascending)

	suite.Require().NoError(err)
	suite.NotEmpty(warnings)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *HierarchyServiceTestSuite) TestVisibleRows_RepoError() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockRepo.On("ListAllAccounts", ctx).Return(nil, expectedErr).Once()

	rows, warnings, err := suite.service.VisibleRows(ctx, hierarchy.Filter{}, nil, hierarchy.Ascending)

	suite.Require().Error(err)
	suite.ErrorIs(err, expectedErr)
	suite.Nil(rows)
	suite.Nil(warnings)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestHierarchyService(t *testing.T) {
	suite.Run(t, new(HierarchyServiceTestSuite))
}
