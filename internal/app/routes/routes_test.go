package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appauth "github.com/tailorwise/tailorwise/internal/app/auth"
	"github.com/tailorwise/tailorwise/internal/app/controllers"
	"github.com/tailorwise/tailorwise/internal/app/models"
	"github.com/tailorwise/tailorwise/internal/app/models/dto"
	"github.com/tailorwise/tailorwise/internal/app/repositories"
	"github.com/tailorwise/tailorwise/internal/app/services"
	"github.com/tailorwise/tailorwise/internal/middleware"
	"github.com/tailorwise/tailorwise/internal/pkg/auth"
)

// newTestRouter builds the full route tree over an unconnected repository
// layer. Authentication and role checks run purely on token claims, so
// requests rejected by them never touch the database.
func newTestRouter(t *testing.T) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "routes-test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "tailorwise-test",
	})

	repos := repositories.NewRepositories(nil)
	svcs := services.NewServices(repos, jwtService, nil, nil, zerolog.Nop())
	authz := appauth.NewAuthorizationService(
		repos.UserRepository,
		repos.StudentRepository,
		repos.CourseRepository,
		repos.BatchRepository,
	)
	lgr := zerolog.Nop()

	c := &Controllers{
		Auth:         controllers.NewAuthController(svcs.AuthService, svcs.UserService, lgr),
		User:         controllers.NewUserController(svcs.UserService, lgr),
		Enquiry:      controllers.NewEnquiryController(svcs.StudentService, lgr),
		Student:      controllers.NewStudentController(svcs.StudentService, svcs.BatchService, authz, lgr),
		Course:       controllers.NewCourseController(svcs.CourseService, lgr),
		Batch:        controllers.NewBatchController(svcs.BatchService, lgr),
		Attendance:   controllers.NewAttendanceController(svcs.AttendanceService, authz, lgr),
		Finance:      controllers.NewFinanceController(svcs.FinanceService, authz, lgr),
		Inventory:    controllers.NewInventoryController(svcs.InventoryService, lgr),
		Certificate:  controllers.NewCertificateController(svcs.CertificateService, authz, lgr),
		Event:        controllers.NewEventController(svcs.EventService, lgr),
		Messaging:    controllers.NewMessagingController(svcs.MessagingService, lgr),
		Notification: controllers.NewNotificationController(svcs.NotificationService, lgr),
	}

	router := gin.New()
	SetupRouter(router, c, middleware.NewAuthMiddleware(jwtService, repos.UserRepository))
	return router, jwtService
}

func tokenFor(t *testing.T, jwtService *auth.JWTService, role models.RoleType) string {
	t.Helper()
	access, _, _, _, err := jwtService.GenerateTokenPair(&models.User{
		ID:       42,
		Username: "routes.test",
		RoleType: role,
	})
	require.NoError(t, err)
	return access
}

func doRequest(router *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCertificatePDFRequiresAuthentication(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(router, http.MethodGet, "/api/v1/certificates/1/pdf", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCertificatePDFForbiddenForTrainers(t *testing.T) {
	router, jwtService := newTestRouter(t)
	token := tokenFor(t, jwtService, models.RoleTrainer)

	rec := doRequest(router, http.MethodGet, "/api/v1/certificates/1/pdf", token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), string(dto.ErrorCodeForbidden))
}

func TestConversationMessagesForbiddenForTrainers(t *testing.T) {
	router, jwtService := newTestRouter(t)
	token := tokenFor(t, jwtService, models.RoleTrainer)

	rec := doRequest(router, http.MethodGet, "/api/v1/conversations/1/messages", token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminInboxStaffOnly(t *testing.T) {
	router, jwtService := newTestRouter(t)

	for _, role := range []models.RoleType{models.RoleTrainer, models.RoleStudent} {
		token := tokenFor(t, jwtService, role)
		rec := doRequest(router, http.MethodGet, "/api/v1/conversations", token)
		assert.Equal(t, http.StatusForbidden, rec.Code, "role %s", role)
	}
}

func TestStudentAndMeasurementRoutesRegistered(t *testing.T) {
	router, _ := newTestRouter(t)

	want := map[string]string{
		"DELETE /api/v1/students/:id":     "",
		"GET /api/v1/measurements/:id":    "",
		"PUT /api/v1/measurements/:id":    "",
		"DELETE /api/v1/measurements/:id": "",
	}
	for _, route := range router.Routes() {
		delete(want, route.Method+" "+route.Path)
	}
	assert.Empty(t, want, "routes missing from the tree")
}

func TestStudentDeleteStaffOnly(t *testing.T) {
	router, jwtService := newTestRouter(t)
	token := tokenFor(t, jwtService, models.RoleStudent)

	rec := doRequest(router, http.MethodDelete, "/api/v1/students/7", token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
