package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/frontandrew/viabus/internal/domain"
	"github.com/frontandrew/viabus/internal/pkg/logger"
	"github.com/frontandrew/viabus/internal/usecase/report"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockReportService - мок для report service
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) CreateReport(ctx context.Context, authorID uuid.UUID, req *report.CreateReportRequest) (*domain.Report, error) {
	args := m.Called(ctx, authorID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

func (m *MockReportService) GetReportByID(ctx context.Context, id uuid.UUID) (*domain.Report, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

func (m *MockReportService) GetReportsByRoute(ctx context.Context, routeID uuid.UUID, limit, offset int) ([]*domain.Report, error) {
	args := m.Called(ctx, routeID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Report), args.Error(1)
}

func (m *MockReportService) GetReportsByAuthor(ctx context.Context, authorID uuid.UUID, limit, offset int) ([]*domain.Report, error) {
	args := m.Called(ctx, authorID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Report), args.Error(1)
}

func (m *MockReportService) UpdateReport(ctx context.Context, id, actorID uuid.UUID, req *report.UpdateReportRequest) (*domain.Report, error) {
	args := m.Called(ctx, id, actorID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

func (m *MockReportService) DeleteReport(ctx context.Context, id, actorID uuid.UUID) error {
	args := m.Called(ctx, id, actorID)
	return args.Error(0)
}

var _ ReportService = (*MockReportService)(nil)

// TestReportHandler_CreateReport тестирует создание жалобы
func TestReportHandler_CreateReport(t *testing.T) {
	userID := uuid.New()
	routeID := uuid.New()

	tests := []struct {
		name           string
		authenticated  bool
		mockSetup      func(*MockReportService)
		expectedStatus int
	}{
		{
			name:          "успешное создание",
			authenticated: true,
			mockSetup: func(m *MockReportService) {
				m.On("CreateReport", mock.Anything, userID, mock.AnythingOfType("*report.CreateReportRequest")).
					Return(&domain.Report{
						ID:       uuid.New(),
						RouteID:  routeID,
						AuthorID: userID,
						Type:     domain.ReportTypeDelay,
						Title:    "Bus was late",
						Body:     "Waited 40 minutes",
					}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:          "маршрут не найден",
			authenticated: true,
			mockSetup: func(m *MockReportService) {
				m.On("CreateReport", mock.Anything, userID, mock.AnythingOfType("*report.CreateReportRequest")).
					Return(nil, domain.ErrRouteNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "без аутентификации",
			authenticated:  false,
			mockSetup:      func(m *MockReportService) {},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockReportService)
			tt.mockSetup(mockService)

			handler := NewReportHandler(mockService, logger.NewNoop())

			body, _ := json.Marshal(map[string]interface{}{
				"route_id": routeID,
				"type":     domain.ReportTypeDelay,
				"title":    "Bus was late",
				"body":     "Waited 40 minutes",
			})
			req := httptest.NewRequest(http.MethodPost, "/api/v1/reports", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			if tt.authenticated {
				req = req.WithContext(CreateAuthContext(t, userID, "rider@example.com", domain.RoleCommuter))
			}
			w := httptest.NewRecorder()

			handler.CreateReport(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

// TestReportHandler_UpdateReport тестирует изменение жалобы
func TestReportHandler_UpdateReport(t *testing.T) {
	reportID := uuid.New()
	authorID := uuid.New()
	strangerID := uuid.New()

	t.Run("автор изменяет свою жалобу", func(t *testing.T) {
		mockService := new(MockReportService)
		mockService.On("UpdateReport", mock.Anything, reportID, authorID, mock.AnythingOfType("*report.UpdateReportRequest")).
			Return(&domain.Report{
				ID:       reportID,
				AuthorID: authorID,
				Type:     domain.ReportTypeDelay,
				Title:    "Updated title",
				Body:     "Body",
			}, nil)

		handler := NewReportHandler(mockService, logger.NewNoop())

		body, _ := json.Marshal(map[string]interface{}{"title": "Updated title"})
		req := httptest.NewRequest(http.MethodPut, "/api/v1/reports/"+reportID.String(), bytes.NewReader(body))
		req = req.WithContext(CreateAuthContext(t, authorID, "author@example.com", domain.RoleCommuter))
		req = withURLParam(req, "id", reportID.String())
		w := httptest.NewRecorder()

		handler.UpdateReport(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("чужой пользователь получает 403", func(t *testing.T) {
		mockService := new(MockReportService)
		mockService.On("UpdateReport", mock.Anything, reportID, strangerID, mock.AnythingOfType("*report.UpdateReportRequest")).
			Return(nil, domain.ErrNotReportAuthor)

		handler := NewReportHandler(mockService, logger.NewNoop())

		body, _ := json.Marshal(map[string]interface{}{"title": "Hijacked"})
		req := httptest.NewRequest(http.MethodPut, "/api/v1/reports/"+reportID.String(), bytes.NewReader(body))
		req = req.WithContext(CreateAuthContext(t, strangerID, "stranger@example.com", domain.RoleCommuter))
		req = withURLParam(req, "id", reportID.String())
		w := httptest.NewRecorder()

		handler.UpdateReport(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

// TestReportHandler_DeleteReport тестирует удаление жалобы
func TestReportHandler_DeleteReport(t *testing.T) {
	reportID := uuid.New()
	authorID := uuid.New()

	t.Run("автор удаляет свою жалобу", func(t *testing.T) {
		mockService := new(MockReportService)
		mockService.On("DeleteReport", mock.Anything, reportID, authorID).Return(nil)

		handler := NewReportHandler(mockService, logger.NewNoop())

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/reports/"+reportID.String(), nil)
		req = req.WithContext(CreateAuthContext(t, authorID, "author@example.com", domain.RoleCommuter))
		req = withURLParam(req, "id", reportID.String())
		w := httptest.NewRecorder()

		handler.DeleteReport(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("удаление чужой жалобы запрещено", func(t *testing.T) {
		strangerID := uuid.New()

		mockService := new(MockReportService)
		mockService.On("DeleteReport", mock.Anything, reportID, strangerID).
			Return(domain.ErrNotReportAuthor)

		handler := NewReportHandler(mockService, logger.NewNoop())

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/reports/"+reportID.String(), nil)
		req = req.WithContext(CreateAuthContext(t, strangerID, "stranger@example.com", domain.RoleCommuter))
		req = withURLParam(req, "id", reportID.String())
		w := httptest.NewRecorder()

		handler.DeleteReport(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

// TestReportHandler_GetRouteReports тестирует список жалоб по маршруту
func TestReportHandler_GetRouteReports(t *testing.T) {
	routeID := uuid.New()

	mockService := new(MockReportService)
	mockService.On("GetReportsByRoute", mock.Anything, routeID, 50, 0).
		Return([]*domain.Report{
			{ID: uuid.New(), RouteID: routeID, Title: "First"},
			{ID: uuid.New(), RouteID: routeID, Title: "Second"},
		}, nil)

	handler := NewReportHandler(mockService, logger.NewNoop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/routes/"+routeID.String()+"/reports", nil)
	req = withURLParam(req, "id", routeID.String())
	w := httptest.NewRecorder()

	handler.GetRouteReports(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response["data"].([]interface{}), 2)

	mockService.AssertExpectations(t)
}
