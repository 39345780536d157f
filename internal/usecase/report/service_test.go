package report

import (
	"context"
	"testing"

	"github.com/frontandrew/viabus/internal/domain"
	"github.com/frontandrew/viabus/internal/pkg/logger"
	"github.com/frontandrew/viabus/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockReportRepository - мок для report repository
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) Create(ctx context.Context, report *domain.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Report, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

func (m *MockReportRepository) GetByRoute(ctx context.Context, routeID uuid.UUID, limit, offset int) ([]*domain.Report, error) {
	args := m.Called(ctx, routeID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Report), args.Error(1)
}

func (m *MockReportRepository) GetByAuthor(ctx context.Context, authorID uuid.UUID, limit, offset int) ([]*domain.Report, error) {
	args := m.Called(ctx, authorID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Report), args.Error(1)
}

func (m *MockReportRepository) Update(ctx context.Context, report *domain.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockRouteRepository - мок для route repository
type MockRouteRepository struct {
	mock.Mock
}

func (m *MockRouteRepository) Create(ctx context.Context, route *domain.Route) error {
	args := m.Called(ctx, route)
	return args.Error(0)
}

func (m *MockRouteRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Route, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Route), args.Error(1)
}

func (m *MockRouteRepository) GetByName(ctx context.Context, name string) (*domain.Route, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Route), args.Error(1)
}

func (m *MockRouteRepository) List(ctx context.Context, limit, offset int) ([]*domain.Route, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Route), args.Error(1)
}

func (m *MockRouteRepository) Update(ctx context.Context, route *domain.Route) error {
	args := m.Called(ctx, route)
	return args.Error(0)
}

func (m *MockRouteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockUserRepository - мок для user repository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var (
	_ repository.ReportRepository = (*MockReportRepository)(nil)
	_ repository.RouteRepository  = (*MockRouteRepository)(nil)
	_ repository.UserRepository   = (*MockUserRepository)(nil)
)

// TestService_CreateReport тестирует создание жалобы с проверкой ссылок
func TestService_CreateReport(t *testing.T) {
	routeID := uuid.New()
	authorID := uuid.New()

	validReq := &CreateReportRequest{
		RouteID: routeID,
		Type:    domain.ReportTypeDelay,
		Title:   "Bus was late",
		Body:    "Waited 40 minutes at the terminus",
	}

	tests := []struct {
		name      string
		req       *CreateReportRequest
		mockSetup func(*MockReportRepository, *MockRouteRepository, *MockUserRepository)
		wantErr   error
	}{
		{
			name: "успешное создание",
			req:  validReq,
			mockSetup: func(rep *MockReportRepository, r *MockRouteRepository, u *MockUserRepository) {
				r.On("GetByID", mock.Anything, routeID).
					Return(&domain.Route{ID: routeID}, nil)
				u.On("GetByID", mock.Anything, authorID).
					Return(&domain.User{ID: authorID}, nil)
				rep.On("Create", mock.Anything, mock.AnythingOfType("*domain.Report")).
					Return(nil)
			},
		},
		{
			name: "маршрут не найден - жалоба не сохраняется",
			req:  validReq,
			mockSetup: func(rep *MockReportRepository, r *MockRouteRepository, u *MockUserRepository) {
				r.On("GetByID", mock.Anything, routeID).
					Return(nil, domain.ErrRouteNotFound)
			},
			wantErr: domain.ErrRouteNotFound,
		},
		{
			name: "автор не найден - жалоба не сохраняется",
			req:  validReq,
			mockSetup: func(rep *MockReportRepository, r *MockRouteRepository, u *MockUserRepository) {
				r.On("GetByID", mock.Anything, routeID).
					Return(&domain.Route{ID: routeID}, nil)
				u.On("GetByID", mock.Anything, authorID).
					Return(nil, domain.ErrUserNotFound)
			},
			wantErr: domain.ErrUserNotFound,
		},
		{
			name: "неизвестная категория",
			req: &CreateReportRequest{
				RouteID: routeID,
				Type:    domain.ReportType(9),
				Title:   "Late",
				Body:    "Body",
			},
			mockSetup: func(rep *MockReportRepository, r *MockRouteRepository, u *MockUserRepository) {},
			wantErr:   domain.ErrInvalidReportType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reportRepo := new(MockReportRepository)
			routeRepo := new(MockRouteRepository)
			userRepo := new(MockUserRepository)
			tt.mockSetup(reportRepo, routeRepo, userRepo)

			service := NewService(reportRepo, routeRepo, userRepo, logger.NewNoop(), nil)

			created, err := service.CreateReport(context.Background(), authorID, tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, created)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, authorID, created.AuthorID)
			}

			reportRepo.AssertExpectations(t)
		})
	}
}

// TestService_UpdateReport тестирует правило "изменяет только автор"
func TestService_UpdateReport(t *testing.T) {
	reportID := uuid.New()
	authorID := uuid.New()
	strangerID := uuid.New()

	newReport := func() *domain.Report {
		return &domain.Report{
			ID:       reportID,
			RouteID:  uuid.New(),
			AuthorID: authorID,
			Type:     domain.ReportTypeDelay,
			Title:    "Original title",
			Body:     "Original body",
		}
	}

	t.Run("автор может изменить жалобу", func(t *testing.T) {
		reportRepo := new(MockReportRepository)
		reportRepo.On("GetByID", mock.Anything, reportID).Return(newReport(), nil)
		reportRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Report")).Return(nil)

		service := NewService(reportRepo, new(MockRouteRepository), new(MockUserRepository), logger.NewNoop(), nil)

		newTitle := "Updated title"
		updated, err := service.UpdateReport(context.Background(), reportID, authorID, &UpdateReportRequest{
			Title: &newTitle,
		})

		assert.NoError(t, err)
		assert.Equal(t, "Updated title", updated.Title)
		assert.Equal(t, "Original body", updated.Body)
		reportRepo.AssertExpectations(t)
	})

	t.Run("чужой пользователь получает отказ", func(t *testing.T) {
		reportRepo := new(MockReportRepository)
		reportRepo.On("GetByID", mock.Anything, reportID).Return(newReport(), nil)

		service := NewService(reportRepo, new(MockRouteRepository), new(MockUserRepository), logger.NewNoop(), nil)

		newTitle := "Hijacked"
		_, err := service.UpdateReport(context.Background(), reportID, strangerID, &UpdateReportRequest{
			Title: &newTitle,
		})

		assert.ErrorIs(t, err, domain.ErrNotReportAuthor)
		// Update не вызывался
		reportRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

// TestService_DeleteReport тестирует правила удаления жалобы,
// включая опциональное привилегированное переопределение
func TestService_DeleteReport(t *testing.T) {
	reportID := uuid.New()
	authorID := uuid.New()
	strangerID := uuid.New()
	adminID := uuid.New()

	report := &domain.Report{ID: reportID, AuthorID: authorID}

	tests := []struct {
		name     string
		actorID  uuid.UUID
		override *uuid.UUID
		wantErr  error
	}{
		{name: "автор удаляет свою жалобу", actorID: authorID},
		{name: "чужой пользователь получает отказ", actorID: strangerID, wantErr: domain.ErrNotReportAuthor},
		{name: "привилегированный пользователь удаляет чужую жалобу", actorID: adminID, override: &adminID},
		{name: "без настройки переопределение не работает", actorID: adminID, wantErr: domain.ErrNotReportAuthor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reportRepo := new(MockReportRepository)
			reportRepo.On("GetByID", mock.Anything, reportID).Return(report, nil)
			if tt.wantErr == nil {
				reportRepo.On("Delete", mock.Anything, reportID).Return(nil)
			}

			service := NewService(reportRepo, new(MockRouteRepository), new(MockUserRepository), logger.NewNoop(), tt.override)

			err := service.DeleteReport(context.Background(), reportID, tt.actorID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				reportRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
			}

			reportRepo.AssertExpectations(t)
		})
	}
}
