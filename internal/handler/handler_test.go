package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-recordshop/internal/middleware"
	"go-recordshop/internal/model"
	"go-recordshop/internal/repository"
	"go-recordshop/internal/service"
	"go-recordshop/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type testEnv struct {
	app  *fiber.App
	auth service.AuthService
}

func newTestEnv(t *testing.T, enforce bool, limiter fiber.Handler) *testEnv {
	t.Helper()

	users, err := repository.NewUserRepo(model.DefaultUsers)
	require.NoError(t, err)
	authService := service.NewAuthService(users, jwt.NewManager("test-secret", "test", time.Hour), zap.NewNop())
	recordService := service.NewRecordService(repository.NewRecordRepo(model.DefaultRecords), nil, zap.NewNop())

	app := NewApp(AppConfig{Name: "test"})
	SetupRoutes(app, Routes{
		Auth:         NewAuthHandler(authService),
		Records:      NewRecordHandler(recordService),
		AuthService:  authService,
		Enforce:      enforce,
		LoginLimiter: limiter,
	})
	return &testEnv{app: app, auth: authService}
}

// do sends a request and decodes a JSON response into out when out is non-nil.
func (e *testEnv) do(t *testing.T, method, path string, body any, token string, out any) int {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (e *testEnv) token(t *testing.T, email string) string {
	t.Helper()
	res, err := e.auth.Login(email, "password")
	require.NoError(t, err)
	return res.Token
}

type message struct {
	Message string `json:"message"`
	Errors  []struct {
		Field string `json:"field"`
		Tag   string `json:"tag"`
	} `json:"errors"`
}

var newRecord = map[string]any{
	"title": "X", "artist": "Y", "format": "CD", "genre": "Pop",
	"releaseYear": 2020, "price": 9.99, "stockQty": 3,
}

// ============ OPEN API ============

type OpenAPISuite struct {
	suite.Suite
	env *testEnv
}

func (s *OpenAPISuite) SetupTest() {
	s.env = newTestEnv(s.T(), false, nil)
}

func TestOpenAPISuite(t *testing.T) {
	suite.Run(t, new(OpenAPISuite))
}

func (s *OpenAPISuite) TestLiveness() {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, err := s.env.app.Test(req, -1)
	s.Require().NoError(err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("Record Shop API is running", string(body))
}

func (s *OpenAPISuite) TestReferenceLists() {
	var formats, genres []string
	s.Equal(http.StatusOK, s.env.do(s.T(), http.MethodGet, "/api/formats", nil, "", &formats))
	s.Equal(http.StatusOK, s.env.do(s.T(), http.MethodGet, "/api/genres", nil, "", &genres))
	s.Equal([]string{"Vinyl", "CD"}, formats)
	s.Equal([]string{"Rock", "Pop", "Jazz", "Hip-Hop", "Classical", "Electronic"}, genres)
}

func (s *OpenAPISuite) TestListSeed() {
	var records []model.Record
	s.Equal(http.StatusOK, s.env.do(s.T(), http.MethodGet, "/api/records", nil, "", &records))
	s.Len(records, 6)
	s.Equal("Californication", records[0].Title)
	s.Equal("29.99", records[0].Price.StringFixed(2))
}

func (s *OpenAPISuite) TestCreateGetDelete() {
	var created map[string]any
	s.Equal(http.StatusCreated, s.env.do(s.T(), http.MethodPost, "/api/records", newRecord, "", &created))
	s.EqualValues(7, created["id"])
	s.Equal("", created["customerId"])
	s.Equal("", created["customerEmail"])
	s.EqualValues(9.99, created["price"])

	var got map[string]any
	s.Equal(http.StatusOK, s.env.do(s.T(), http.MethodGet, "/api/records/7", nil, "", &got))
	s.Equal(created, got)

	var deleted struct {
		Message string       `json:"message"`
		Record  model.Record `json:"record"`
	}
	s.Equal(http.StatusOK, s.env.do(s.T(), http.MethodDelete, "/api/records/7", nil, "", &deleted))
	s.Equal("Record deleted.", deleted.Message)
	s.Equal(7, deleted.Record.ID)

	var msg message
	s.Equal(http.StatusNotFound, s.env.do(s.T(), http.MethodGet, "/api/records/7", nil, "", &msg))
	s.Equal("Record not found.", msg.Message)
}

func (s *OpenAPISuite) TestUpdateResetsOmittedCustomerFields() {
	withCustomer := map[string]any{}
	for k, v := range newRecord {
		withCustomer[k] = v
	}
	withCustomer["customerId"] = "12A"
	withCustomer["customerLastName"] = "Smith"

	var rec model.Record
	s.Equal(http.StatusOK, s.env.do(s.T(), http.MethodPut, "/api/records/1", withCustomer, "", &rec))
	s.Equal(1, rec.ID)
	s.Equal("12A", rec.CustomerID)

	s.Equal(http.StatusOK, s.env.do(s.T(), http.MethodPut, "/api/records/1", newRecord, "", &rec))
	s.Equal("", rec.CustomerID)
	s.Equal("", rec.CustomerLastName)
	s.Equal("X", rec.Title)
}

func (s *OpenAPISuite) TestNotFound() {
	cases := []struct{ method, path string }{
		{http.MethodGet, "/api/records/99"},
		{http.MethodGet, "/api/records/abc"},
		{http.MethodGet, "/api/records/0"},
		{http.MethodPut, "/api/records/99"},
		{http.MethodDelete, "/api/records/99"},
		{http.MethodDelete, "/api/records/-1"},
		{http.MethodGet, "/api/records/1abc"},
		{http.MethodPut, "/api/records/1abc"},
		{http.MethodDelete, "/api/records/1abc"},
	}
	for _, c := range cases {
		var body any
		if c.method == http.MethodPut {
			body = newRecord
		}
		var msg message
		s.Equal(http.StatusNotFound, s.env.do(s.T(), c.method, c.path, body, "", &msg), c.path)
		s.Equal("Record not found.", msg.Message)
	}

	// Record 1 survives the DELETE /api/records/1abc above.
	s.Equal(http.StatusOK, s.env.do(s.T(), http.MethodGet, "/api/records/1", nil, "", nil))
}

func (s *OpenAPISuite) TestUpdateMissingDoesNotCreate() {
	s.Equal(http.StatusNotFound, s.env.do(s.T(), http.MethodPut, "/api/records/99", newRecord, "", nil))

	var records []model.Record
	s.env.do(s.T(), http.MethodGet, "/api/records", nil, "", &records)
	s.Len(records, 6)
}

func (s *OpenAPISuite) TestValidation() {
	var msg message
	s.Equal(http.StatusBadRequest, s.env.do(s.T(), http.MethodPost, "/api/records", "{not json", "", &msg))
	s.Equal("Invalid JSON", msg.Message)

	noPrice := map[string]any{}
	for k, v := range newRecord {
		if k != "price" {
			noPrice[k] = v
		}
	}
	msg = message{}
	s.Equal(http.StatusBadRequest, s.env.do(s.T(), http.MethodPost, "/api/records", noPrice, "", &msg))
	s.Contains(msg.Message, "Validation failed")
	s.Require().Len(msg.Errors, 1)
	s.Equal("price", msg.Errors[0].Field)
	s.Equal("required", msg.Errors[0].Tag)

	zeroStock := map[string]any{}
	for k, v := range newRecord {
		zeroStock[k] = v
	}
	zeroStock["stockQty"] = 0
	s.Equal(http.StatusCreated, s.env.do(s.T(), http.MethodPost, "/api/records", zeroStock, "", nil))
}

func (s *OpenAPISuite) TestLogin() {
	var res struct {
		model.Principal
		Token string `json:"token"`
	}
	body := map[string]string{"email": "admin@recordshop.com", "password": "password"}
	s.Equal(http.StatusOK, s.env.do(s.T(), http.MethodPost, "/api/login", body, "", &res))
	s.Equal(model.Principal{ID: 3, Name: "Alex Admin", Email: "admin@recordshop.com", Role: "admin"}, res.Principal)
	s.NotEmpty(res.Token)

	var msg message
	body["password"] = "wrong"
	s.Equal(http.StatusUnauthorized, s.env.do(s.T(), http.MethodPost, "/api/login", body, "", &msg))
	s.Equal("Invalid email or password.", msg.Message)

	for _, body := range []map[string]string{
		{"email": "admin@recordshop.com", "password": ""},
		{"email": "admin@recordshop.com"},
		{"password": "password"},
		{"email": "admin@recordshop.com", "password": "password\x00password"},
	} {
		msg = message{}
		s.Equal(http.StatusUnauthorized, s.env.do(s.T(), http.MethodPost, "/api/login", body, "", &msg), body)
		s.Equal("Invalid email or password.", msg.Message)
	}

	msg = message{}
	s.Equal(http.StatusBadRequest, s.env.do(s.T(), http.MethodPost, "/api/login", "{not json", "", &msg))
	s.Equal("Invalid JSON", msg.Message)
}

func (s *OpenAPISuite) TestValidateToken() {
	token := s.env.token(s.T(), "manager@recordshop.com")

	var res service.TokenValidationResponse
	s.Equal(http.StatusOK, s.env.do(s.T(), http.MethodPost, "/api/validate-token", map[string]string{"token": token}, "", &res))
	s.Equal(model.RoleManager, res.User.Role)
	s.Contains(res.Privileges, model.PrivRecordUpdate)

	s.Equal(http.StatusUnauthorized, s.env.do(s.T(), http.MethodPost, "/api/validate-token", map[string]string{"token": "junk"}, "", nil))
	s.Equal(http.StatusBadRequest, s.env.do(s.T(), http.MethodPost, "/api/validate-token", map[string]string{}, "", nil))
}

func (s *OpenAPISuite) TestBadTokenIsIgnoredWhenOpen() {
	s.Equal(http.StatusOK, s.env.do(s.T(), http.MethodGet, "/api/records", nil, "junk", nil))
}

func (s *OpenAPISuite) TestRoles() {
	var roles []model.Role
	s.Equal(http.StatusOK, s.env.do(s.T(), http.MethodGet, "/api/roles", nil, "", &roles))
	s.Len(roles, 3)

	var privileges []model.Privilege
	s.Equal(http.StatusOK, s.env.do(s.T(), http.MethodGet, "/api/privileges", nil, "", &privileges))
	s.Len(privileges, 4)
}

// ============ ENFORCED ACCESS CONTROL ============

type EnforcedSuite struct {
	suite.Suite
	env *testEnv
}

func (s *EnforcedSuite) SetupTest() {
	s.env = newTestEnv(s.T(), true, nil)
}

func TestEnforcedSuite(t *testing.T) {
	suite.Run(t, new(EnforcedSuite))
}

func (s *EnforcedSuite) TestMissingToken() {
	var msg message
	s.Equal(http.StatusUnauthorized, s.env.do(s.T(), http.MethodGet, "/api/records", nil, "", &msg))
	s.Equal("Missing authorization token", msg.Message)
}

func (s *EnforcedSuite) TestPublicRoutesStayOpen() {
	s.Equal(http.StatusOK, s.env.do(s.T(), http.MethodGet, "/api/formats", nil, "", nil))
	s.Equal(http.StatusOK, s.env.do(s.T(), http.MethodGet, "/api/genres", nil, "", nil))
}

func (s *EnforcedSuite) TestRolePrivileges() {
	clerk := s.env.token(s.T(), "clerk@recordshop.com")
	manager := s.env.token(s.T(), "manager@recordshop.com")
	admin := s.env.token(s.T(), "admin@recordshop.com")

	s.Equal(http.StatusOK, s.env.do(s.T(), http.MethodGet, "/api/records", nil, clerk, nil))
	s.Equal(http.StatusCreated, s.env.do(s.T(), http.MethodPost, "/api/records", newRecord, clerk, nil))

	s.Equal(http.StatusForbidden, s.env.do(s.T(), http.MethodPut, "/api/records/1", newRecord, clerk, nil))
	s.Equal(http.StatusOK, s.env.do(s.T(), http.MethodPut, "/api/records/1", newRecord, manager, nil))

	s.Equal(http.StatusForbidden, s.env.do(s.T(), http.MethodDelete, "/api/records/1", nil, manager, nil))
	s.Equal(http.StatusOK, s.env.do(s.T(), http.MethodDelete, "/api/records/1", nil, admin, nil))
}

// ============ LOGIN RATE LIMIT ============

func TestLoginRateLimit(t *testing.T) {
	limiter := middleware.NewIPRateLimiter(0.001, 2)
	env := newTestEnv(t, false, limiter.Handler())

	body := map[string]string{"email": "admin@recordshop.com", "password": "wrong"}
	require.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodPost, "/api/login", body, "", nil))
	require.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodPost, "/api/login", body, "", nil))

	var msg message
	require.Equal(t, http.StatusTooManyRequests, env.do(t, http.MethodPost, "/api/login", body, "", &msg))
	require.NotEmpty(t, msg.Message)
}
