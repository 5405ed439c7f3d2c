package waitlist

import (
	"context"
	"testing"

	"github.com/storytimehq/storytime-api/internal/log"
	"github.com/storytimehq/storytime-api/internal/mailer"
	"github.com/storytimehq/storytime-api/internal/models"
	apperrors "github.com/storytimehq/storytime-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newServiceUnderTest(t *testing.T) (WaitlistService, *MockWaitlistRepository, *mailer.MockMailer) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockRepo := NewMockWaitlistRepository(ctrl)
	mockMailer := mailer.NewMockMailer(ctrl)
	logger := log.NewLogger()

	return NewWaitlistService(logger, mockRepo, mockMailer), mockRepo, mockMailer
}

func TestWaitlistService_Subscribe(t *testing.T) {
	t.Run("successful subscription sends welcome email", func(t *testing.T) {
		service, mockRepo, mockMailer := newServiceUnderTest(t)

		req := &SubscribeRequest{Email: "jane@example.com", Name: "Jane"}

		mockRepo.EXPECT().
			FindEntryByEmail(gomock.Any(), "jane@example.com").
			Return(nil, nil)
		mockRepo.EXPECT().
			CreateEntry(gomock.Any(), gomock.Any()).
			Return(&models.WaitlistEntry{Email: "jane@example.com", Name: "Jane"}, nil)
		mockMailer.EXPECT().
			SendWelcome(gomock.Any(), "jane@example.com", "Jane").
			Return(nil)

		result, err := service.Subscribe(context.Background(), req)

		assert.NoError(t, err)
		assert.NotNil(t, result)
		assert.Equal(t, "jane@example.com", result.Email)
		assert.Equal(t, "Jane", result.Name)
	})

	t.Run("duplicate email rejected before insert", func(t *testing.T) {
		service, mockRepo, _ := newServiceUnderTest(t)

		mockRepo.EXPECT().
			FindEntryByEmail(gomock.Any(), "jane@example.com").
			Return(&models.WaitlistEntry{Email: "jane@example.com", Name: "Jane"}, nil)
		// No CreateEntry and no SendWelcome expectations: neither may happen.

		result, err := service.Subscribe(context.Background(), &SubscribeRequest{
			Email: "jane@example.com",
			Name:  "Someone Else",
		})

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.Equal(t, apperrors.ErrorTypeConflict, apperrors.GetErrorType(err))
	})

	t.Run("constraint violation on insert surfaces the same conflict", func(t *testing.T) {
		service, mockRepo, _ := newServiceUnderTest(t)

		mockRepo.EXPECT().
			FindEntryByEmail(gomock.Any(), "jane@example.com").
			Return(nil, nil)
		mockRepo.EXPECT().
			CreateEntry(gomock.Any(), gomock.Any()).
			Return(nil, newDuplicateEmailError(nil))

		result, err := service.Subscribe(context.Background(), &SubscribeRequest{
			Email: "jane@example.com",
			Name:  "Jane",
		})

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.Equal(t, apperrors.ErrorTypeConflict, apperrors.GetErrorType(err))
	})

	t.Run("dispatch failure does not void the subscription", func(t *testing.T) {
		service, mockRepo, mockMailer := newServiceUnderTest(t)

		mockRepo.EXPECT().
			FindEntryByEmail(gomock.Any(), "jane@example.com").
			Return(nil, nil)
		mockRepo.EXPECT().
			CreateEntry(gomock.Any(), gomock.Any()).
			Return(&models.WaitlistEntry{Email: "jane@example.com", Name: "Jane"}, nil)
		mockMailer.EXPECT().
			SendWelcome(gomock.Any(), "jane@example.com", "Jane").
			Return(mailer.ErrSendFailed)

		result, err := service.Subscribe(context.Background(), &SubscribeRequest{
			Email: "jane@example.com",
			Name:  "Jane",
		})

		assert.NoError(t, err)
		assert.NotNil(t, result)
		assert.Equal(t, "jane@example.com", result.Email)
	})

	t.Run("repository error during pre-check aborts", func(t *testing.T) {
		service, mockRepo, _ := newServiceUnderTest(t)

		mockRepo.EXPECT().
			FindEntryByEmail(gomock.Any(), "jane@example.com").
			Return(nil, apperrors.NewDatabaseError("database down", nil))

		result, err := service.Subscribe(context.Background(), &SubscribeRequest{
			Email: "jane@example.com",
			Name:  "Jane",
		})

		assert.Error(t, err)
		assert.Nil(t, result)
	})

	t.Run("nil request rejected", func(t *testing.T) {
		service, _, _ := newServiceUnderTest(t)

		result, err := service.Subscribe(context.Background(), nil)

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.Equal(t, apperrors.ErrorTypeInvalidRequest, apperrors.GetErrorType(err))
	})

	t.Run("whitespace-only name rejected before the pre-check", func(t *testing.T) {
		service, _, _ := newServiceUnderTest(t)

		result, err := service.Subscribe(context.Background(), &SubscribeRequest{
			Email: "blank@example.com",
			Name:  "   ",
		})

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.Equal(t, apperrors.ErrorTypeInvalidRequest, apperrors.GetErrorType(err))
	})
}

func TestWaitlistService_ListPaginated(t *testing.T) {
	entries := []*models.WaitlistEntry{
		{Email: "c@example.com", Name: "C"},
		{Email: "b@example.com", Name: "B"},
	}

	t.Run("metadata for a middle page", func(t *testing.T) {
		service, mockRepo, _ := newServiceUnderTest(t)

		mockRepo.EXPECT().
			Paginate(gomock.Any(), 2, 10).
			Return(entries, int64(25), nil)

		result, err := service.ListPaginated(context.Background(), 2, 10)

		assert.NoError(t, err)
		assert.Len(t, result.Entries, 2)
		assert.Equal(t, 2, result.Pagination.Page)
		assert.Equal(t, 10, result.Pagination.Limit)
		assert.Equal(t, int64(25), result.Pagination.Total)
		assert.Equal(t, 3, result.Pagination.TotalPages)
		assert.True(t, result.Pagination.HasNext)
		assert.True(t, result.Pagination.HasPrevious)
	})

	t.Run("out-of-range page and limit are clamped", func(t *testing.T) {
		service, mockRepo, _ := newServiceUnderTest(t)

		mockRepo.EXPECT().
			Paginate(gomock.Any(), 1, 10).
			Return(entries, int64(2), nil)

		result, err := service.ListPaginated(context.Background(), -3, 0)

		assert.NoError(t, err)
		assert.Equal(t, 1, result.Pagination.Page)
		assert.Equal(t, 10, result.Pagination.Limit)
	})

	t.Run("oversized limit capped at 1000", func(t *testing.T) {
		service, mockRepo, _ := newServiceUnderTest(t)

		mockRepo.EXPECT().
			Paginate(gomock.Any(), 1, 1000).
			Return(entries, int64(2), nil)

		result, err := service.ListPaginated(context.Background(), 1, 5000)

		assert.NoError(t, err)
		assert.Equal(t, 1000, result.Pagination.Limit)
	})

	t.Run("empty table yields zero pages", func(t *testing.T) {
		service, mockRepo, _ := newServiceUnderTest(t)

		mockRepo.EXPECT().
			Paginate(gomock.Any(), 1, 10).
			Return(nil, int64(0), nil)

		result, err := service.ListPaginated(context.Background(), 1, 10)

		assert.NoError(t, err)
		assert.Empty(t, result.Entries)
		assert.Equal(t, 0, result.Pagination.TotalPages)
		assert.False(t, result.Pagination.HasNext)
		assert.False(t, result.Pagination.HasPrevious)
	})

	t.Run("page beyond the end returns empty data", func(t *testing.T) {
		service, mockRepo, _ := newServiceUnderTest(t)

		mockRepo.EXPECT().
			Paginate(gomock.Any(), 9, 10).
			Return(nil, int64(25), nil)

		result, err := service.ListPaginated(context.Background(), 9, 10)

		assert.NoError(t, err)
		assert.Empty(t, result.Entries)
		assert.Equal(t, 3, result.Pagination.TotalPages)
		assert.False(t, result.Pagination.HasNext)
		assert.True(t, result.Pagination.HasPrevious)
	})
}

func TestWaitlistService_ListAll(t *testing.T) {
	service, mockRepo, _ := newServiceUnderTest(t)

	mockRepo.EXPECT().
		Paginate(gomock.Any(), 1, 1000).
		Return([]*models.WaitlistEntry{{Email: "a@example.com", Name: "A"}}, int64(1), nil)

	result, err := service.ListAll(context.Background())

	assert.NoError(t, err)
	assert.Len(t, result, 1)
	assert.Equal(t, "a@example.com", result[0].Email)
}
