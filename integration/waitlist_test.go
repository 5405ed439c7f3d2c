package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/storytimehq/storytime-api/config"
	"github.com/storytimehq/storytime-api/config/router"
	"github.com/storytimehq/storytime-api/domain"
	"github.com/storytimehq/storytime-api/internal/log"
	"github.com/storytimehq/storytime-api/internal/models"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// recordingMailer captures outbound email calls so suites can assert what
// was dispatched without touching a real provider.
type recordingMailer struct {
	mu sync.Mutex

	welcomes      []string
	confirmations []string
	notifications []string

	failWelcome      error
	failConfirmation error
	failNotification error
}

func (m *recordingMailer) SendWelcome(ctx context.Context, email, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWelcome != nil {
		return m.failWelcome
	}
	m.welcomes = append(m.welcomes, email)
	return nil
}

func (m *recordingMailer) SendContactConfirmation(ctx context.Context, name, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failConfirmation != nil {
		return m.failConfirmation
	}
	m.confirmations = append(m.confirmations, email)
	return nil
}

func (m *recordingMailer) SendContactNotification(ctx context.Context, name, email, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failNotification != nil {
		return m.failNotification
	}
	m.notifications = append(m.notifications, email)
	return nil
}

func (m *recordingMailer) reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.welcomes = nil
	m.confirmations = nil
	m.notifications = nil
	m.failWelcome = nil
	m.failConfirmation = nil
	m.failNotification = nil
}

type WaitlistAPITestSuite struct {
	suite.Suite
	db        *gorm.DB
	server    *httptest.Server
	baseURL   string
	logger    *log.Logger
	appConfig *config.ApplicationConfig
	mailer    *recordingMailer
}

func (suite *WaitlistAPITestSuite) SetupSuite() {
	var err error
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(&models.WaitlistEntry{})
	suite.Require().NoError(err)

	suite.logger = log.NewLogger()
	suite.mailer = &recordingMailer{}

	suite.appConfig = &config.ApplicationConfig{
		DB:     suite.db,
		Logger: suite.logger,
		Mailer: suite.mailer,
	}

	suite.appConfig.RouterService = router.CreateRouterService(suite.logger, nil, &router.RouterConfig{
		RateLimitRequests: 1000,
		RateLimitWindow:   time.Minute,
		RequestTimeout:    30 * time.Second,
	})

	domain.SetupCoreDomain(suite.appConfig)

	suite.server = httptest.NewServer(suite.appConfig.RouterService.GetEngine())
	suite.baseURL = suite.server.URL
}

func (suite *WaitlistAPITestSuite) TearDownSuite() {
	if suite.server != nil {
		suite.server.Close()
	}
	if suite.db != nil {
		sqlDB, _ := suite.db.DB()
		sqlDB.Close()
	}
}

func (suite *WaitlistAPITestSuite) SetupTest() {
	suite.db.Exec("DELETE FROM waitlist_entries")
	suite.mailer.reset()
}

func (suite *WaitlistAPITestSuite) postJSON(path string, body any) (*http.Response, map[string]interface{}) {
	jsonBody, err := json.Marshal(body)
	suite.Require().NoError(err)

	resp, err := http.Post(suite.baseURL+path, "application/json", bytes.NewBuffer(jsonBody))
	suite.Require().NoError(err)
	defer resp.Body.Close()

	var response map[string]interface{}
	suite.Require().NoError(json.NewDecoder(resp.Body).Decode(&response))
	return resp, response
}

func (suite *WaitlistAPITestSuite) getJSON(path string) (*http.Response, map[string]interface{}) {
	resp, err := http.Get(suite.baseURL + path)
	suite.Require().NoError(err)
	defer resp.Body.Close()

	var response map[string]interface{}
	suite.Require().NoError(json.NewDecoder(resp.Body).Decode(&response))
	return resp, response
}

func (suite *WaitlistAPITestSuite) seedEntries(n int) {
	for i := 1; i <= n; i++ {
		entry := models.WaitlistEntry{
			Email: fmt.Sprintf("user%03d@example.com", i),
			Name:  fmt.Sprintf("User %03d", i),
		}
		suite.Require().NoError(suite.db.Create(&entry).Error)
	}
}

func (suite *WaitlistAPITestSuite) TestHealthCheck() {
	resp, response := suite.getJSON("/health")

	suite.Equal(http.StatusOK, resp.StatusCode)
	suite.Equal("success", response["status"])
	suite.Contains(response["message"], "health check completed")

	data := response["data"].(map[string]interface{})
	suite.Equal(float64(1), data["database"])
	suite.Equal(float64(1), data["mailer"])
	suite.Contains(data, "uptime")
}

func (suite *WaitlistAPITestSuite) TestSubscribe() {
	resp, response := suite.postJSON("/v1/waitlist/subscribe", map[string]string{
		"email": "jane.doe@example.com",
		"name":  "Jane Doe",
	})

	suite.Equal(http.StatusCreated, resp.StatusCode)
	suite.Equal("success", response["status"])
	suite.Nil(response["error"])

	data := response["data"].(map[string]interface{})
	suite.Equal("jane.doe@example.com", data["email"])
	suite.Equal("Jane Doe", data["name"])

	suite.Equal([]string{"jane.doe@example.com"}, suite.mailer.welcomes)

	var count int64
	suite.db.Model(&models.WaitlistEntry{}).Count(&count)
	suite.Equal(int64(1), count)
}

func (suite *WaitlistAPITestSuite) TestSubscribeValidationError() {
	resp, response := suite.postJSON("/v1/waitlist/subscribe", map[string]string{
		"email": "not-an-email",
		"name":  "",
	})

	suite.Equal(http.StatusBadRequest, resp.StatusCode)
	suite.Equal("error", response["status"])
	suite.Nil(response["data"])
	suite.Contains(response["message"], "Invalid request payload")

	fieldErrors := response["error"].([]interface{})
	suite.True(len(fieldErrors) >= 2)

	fields := make(map[string]string, len(fieldErrors))
	for _, item := range fieldErrors {
		fe := item.(map[string]interface{})
		fields[fe["field"].(string)] = fe["message"].(string)
	}
	suite.Contains(fields, "email")
	suite.Contains(fields, "name")

	// Validation failed before the store or the mailer were touched.
	suite.Empty(suite.mailer.welcomes)
	var count int64
	suite.db.Model(&models.WaitlistEntry{}).Count(&count)
	suite.Equal(int64(0), count)
}

func (suite *WaitlistAPITestSuite) TestSubscribeWhitespaceName() {
	// Passes binding (non-empty string) but must still be rejected.
	resp, response := suite.postJSON("/v1/waitlist/subscribe", map[string]string{
		"email": "blank@example.com",
		"name":  "   ",
	})

	suite.Equal(http.StatusBadRequest, resp.StatusCode)
	suite.Equal("error", response["status"])
	suite.Nil(response["data"])

	suite.Empty(suite.mailer.welcomes)
	var count int64
	suite.db.Model(&models.WaitlistEntry{}).Count(&count)
	suite.Equal(int64(0), count)
}

func (suite *WaitlistAPITestSuite) TestSubscribeDuplicateEmail() {
	seed := models.WaitlistEntry{Email: "taken@example.com", Name: "First"}
	suite.Require().NoError(suite.db.Create(&seed).Error)

	resp, response := suite.postJSON("/v1/waitlist/subscribe", map[string]string{
		"email": "taken@example.com",
		"name":  "Second",
	})

	suite.Equal(http.StatusConflict, resp.StatusCode)
	suite.Equal("error", response["status"])
	suite.Equal("CONFLICT", response["error"])
	suite.Contains(response["message"], "already on the waitlist")

	// Duplicate signups never dispatch and never insert.
	suite.Empty(suite.mailer.welcomes)
	var count int64
	suite.db.Model(&models.WaitlistEntry{}).Count(&count)
	suite.Equal(int64(1), count)
}

func (suite *WaitlistAPITestSuite) TestSubscribeSurvivesDispatchFailure() {
	suite.mailer.failWelcome = fmt.Errorf("smtp host unreachable")

	resp, response := suite.postJSON("/v1/waitlist/subscribe", map[string]string{
		"email": "jane@example.com",
		"name":  "Jane",
	})

	suite.Equal(http.StatusCreated, resp.StatusCode)
	suite.Equal("success", response["status"])

	var count int64
	suite.db.Model(&models.WaitlistEntry{}).Count(&count)
	suite.Equal(int64(1), count)
}

func (suite *WaitlistAPITestSuite) TestListEmails() {
	suite.seedEntries(3)

	resp, response := suite.getJSON("/v1/waitlist/emails")

	suite.Equal(http.StatusOK, resp.StatusCode)
	suite.Equal("success", response["status"])

	data := response["data"].([]interface{})
	suite.Len(data, 3)

	emails := make([]string, 0, len(data))
	for _, item := range data {
		entry := item.(map[string]interface{})
		emails = append(emails, entry["email"].(string))
	}
	suite.Contains(emails, "user001@example.com")
	suite.Contains(emails, "user003@example.com")
}

func (suite *WaitlistAPITestSuite) TestListEmailsPaginated() {
	suite.seedEntries(25)

	resp, response := suite.getJSON("/v1/waitlist/emails/paginated?page=2&limit=10")

	suite.Equal(http.StatusOK, resp.StatusCode)
	suite.Equal("success", response["status"])

	data := response["data"].(map[string]interface{})
	entries := data["entries"].([]interface{})
	suite.Len(entries, 10)

	meta := data["pagination"].(map[string]interface{})
	suite.Equal(float64(2), meta["page"])
	suite.Equal(float64(10), meta["limit"])
	suite.Equal(float64(25), meta["total"])
	suite.Equal(float64(3), meta["total_pages"])
	suite.Equal(true, meta["has_next"])
	suite.Equal(true, meta["has_previous"])

	// Newest-first with id as tie-break: page 2 starts at the 15th-newest
	// entry, which is the one seeded 15th.
	first := entries[0].(map[string]interface{})
	suite.Equal("user015@example.com", first["email"])
}

func (suite *WaitlistAPITestSuite) TestPaginationDefaultsAndClamps() {
	suite.seedEntries(5)

	_, response := suite.getJSON("/v1/waitlist/emails/paginated?page=0&limit=-5")
	meta := response["data"].(map[string]interface{})["pagination"].(map[string]interface{})
	suite.Equal(float64(1), meta["page"])
	suite.Equal(float64(10), meta["limit"])

	_, response = suite.getJSON("/v1/waitlist/emails/paginated?limit=5000")
	meta = response["data"].(map[string]interface{})["pagination"].(map[string]interface{})
	suite.Equal(float64(1000), meta["limit"])

	_, response = suite.getJSON("/v1/waitlist/emails/paginated?page=abc&limit=xyz")
	meta = response["data"].(map[string]interface{})["pagination"].(map[string]interface{})
	suite.Equal(float64(1), meta["page"])
	suite.Equal(float64(10), meta["limit"])
}

func (suite *WaitlistAPITestSuite) TestPaginationBeyondEnd() {
	suite.seedEntries(5)

	resp, response := suite.getJSON("/v1/waitlist/emails/paginated?page=99&limit=10")

	suite.Equal(http.StatusOK, resp.StatusCode)

	data := response["data"].(map[string]interface{})
	suite.Empty(data["entries"])

	meta := data["pagination"].(map[string]interface{})
	suite.Equal(float64(99), meta["page"])
	suite.Equal(float64(5), meta["total"])
	suite.Equal(false, meta["has_next"])
	suite.Equal(true, meta["has_previous"])
}

func TestWaitlistAPISuite(t *testing.T) {
	// Skip integration tests unless explicitly requested
	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("Skipping integration tests. Set RUN_INTEGRATION_TESTS=true to run them")
	}

	suite.Run(t, new(WaitlistAPITestSuite))
}
