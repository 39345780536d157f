package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// TestReport_Validate тестирует валидацию данных жалобы
func TestReport_Validate(t *testing.T) {
	routeID := uuid.New()
	authorID := uuid.New()

	tests := []struct {
		name    string
		report  *Report
		wantErr error
	}{
		{
			name: "корректная жалоба",
			report: &Report{
				RouteID:  routeID,
				AuthorID: authorID,
				Type:     ReportTypeDelay,
				Title:    "Bus was 40 minutes late",
				Body:     "Waited at the terminus from 08:00 to 08:40",
			},
		},
		{
			name: "нет маршрута",
			report: &Report{
				AuthorID: authorID,
				Type:     ReportTypeDelay,
				Title:    "Late",
				Body:     "Body",
			},
			wantErr: ErrInvalidReportData,
		},
		{
			name: "неизвестная категория",
			report: &Report{
				RouteID:  routeID,
				AuthorID: authorID,
				Type:     ReportType(9),
				Title:    "Late",
				Body:     "Body",
			},
			wantErr: ErrInvalidReportType,
		},
		{
			name: "пустой заголовок",
			report: &Report{
				RouteID:  routeID,
				AuthorID: authorID,
				Type:     ReportTypeSafety,
				Title:    "   ",
				Body:     "Body",
			},
			wantErr: ErrInvalidReportData,
		},
		{
			name: "слишком длинный заголовок",
			report: &Report{
				RouteID:  routeID,
				AuthorID: authorID,
				Type:     ReportTypeSafety,
				Title:    strings.Repeat("x", 101),
				Body:     "Body",
			},
			wantErr: ErrInvalidReportData,
		},
		{
			name: "пустой текст",
			report: &Report{
				RouteID:  routeID,
				AuthorID: authorID,
				Type:     ReportTypeOther,
				Title:    "Title",
				Body:     "",
			},
			wantErr: ErrInvalidReportData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.report.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

// TestReport_Ownership тестирует правила владения жалобой
func TestReport_Ownership(t *testing.T) {
	author := uuid.New()
	stranger := uuid.New()
	admin := uuid.New()

	report := &Report{AuthorID: author}

	// Изменять может только автор, без исключений
	assert.True(t, report.CanBeUpdatedBy(author))
	assert.False(t, report.CanBeUpdatedBy(stranger))
	assert.False(t, report.CanBeUpdatedBy(admin))

	// Удалять может автор всегда
	assert.True(t, report.CanBeDeletedBy(author, nil))
	assert.True(t, report.CanBeDeletedBy(author, &admin))

	// Чужой пользователь не может удалять
	assert.False(t, report.CanBeDeletedBy(stranger, nil))
	assert.False(t, report.CanBeDeletedBy(stranger, &admin))

	// Привилегированный пользователь может удалять, если настроен
	assert.False(t, report.CanBeDeletedBy(admin, nil))
	assert.True(t, report.CanBeDeletedBy(admin, &admin))
}

// TestReportType_Valid тестирует границы диапазона категорий
func TestReportType_Valid(t *testing.T) {
	assert.True(t, ReportTypeDelay.Valid())
	assert.True(t, ReportTypeOther.Valid())
	assert.False(t, ReportType(0).Valid())
	assert.False(t, ReportType(6).Valid())
}
