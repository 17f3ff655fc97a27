package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/estadio/stadium-api/internal/api/handler/v1/response"
	"github.com/estadio/stadium-api/internal/api/middleware"
	"github.com/estadio/stadium-api/internal/config"
	"github.com/estadio/stadium-api/internal/domain"
	"github.com/estadio/stadium-api/internal/pkg/jwthelper"
	"github.com/estadio/stadium-api/internal/service"
)

var (
	admin    = domain.Identity{ID: 1, Name: "admin", Scopes: domain.Scopes{domain.ScopeAdmin}}
	customer = domain.Identity{ID: 7, Name: "ana", Scopes: domain.Scopes{domain.ScopeNotMember}}
)

func init() {
	gin.SetMode(gin.TestMode)
}

// as injects identity the way VerifyJWT would.
func as(identity domain.Identity) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		middleware.SetIdentity(ctx, identity)
		ctx.Next()
	}
}

func do(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

type authServiceMock struct{ mock.Mock }

func (m *authServiceMock) Register(ctx context.Context, user domain.User) (domain.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *authServiceMock) Login(ctx context.Context, name, password string) (domain.User, error) {
	args := m.Called(ctx, name, password)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *authServiceMock) Me(ctx context.Context, id uint) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}

func newAuthRouter(svc AuthService) (*gin.Engine, *config.APIConfig) {
	conf := &config.APIConfig{JWTSigningKey: "handler-test-key", TokenTTL: time.Hour, CookieSecure: true}
	h := NewAuthHandler(conf, svc)

	r := gin.New()
	r.POST("/auth/register", h.HandleRegister)
	r.POST("/auth/login", h.HandleLogin)
	r.GET("/auth/logout", h.HandleLogout)
	r.GET("/auth/me", as(customer), h.HandleMe)

	return r, conf
}

func TestHandleLogin(t *testing.T) {
	svc := new(authServiceMock)
	user := domain.User{ID: 7, Name: "ana", Role: domain.Role{Scopes: domain.Scopes{domain.ScopeNotMember}}}
	svc.On("Login", mock.Anything, "ana", "secret12").Return(user, nil)
	svc.On("Login", mock.Anything, "ana", "wrong123").Return(domain.User{}, service.ErrWrongPassword)

	r, conf := newAuthRouter(svc)

	t.Run("ok", func(t *testing.T) {
		rec := do(r, http.MethodPost, "/auth/login", map[string]string{"name": "ana", "password": "secret12"})
		require.Equal(t, http.StatusOK, rec.Code)

		body := decode(t, rec)
		assert.Equal(t, true, body["auth"])

		key, _ := conf.Token()
		claims, err := jwthelper.ParseToken(key, body["token"].(string))
		require.NoError(t, err)
		assert.Equal(t, uint(7), claims.UserID)
		assert.Equal(t, []string{"notMember"}, claims.Role)

		cookie := rec.Result().Cookies()
		require.Len(t, cookie, 1)
		assert.Equal(t, middleware.TokenCookie, cookie[0].Name)
		assert.True(t, cookie[0].HttpOnly)
		assert.True(t, cookie[0].Secure)
		assert.Equal(t, http.SameSiteNoneMode, cookie[0].SameSite)
		assert.Equal(t, 3600, cookie[0].MaxAge)
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := do(r, http.MethodPost, "/auth/login", map[string]string{"name": "ana", "password": "wrong123"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, false, decode(t, rec)["auth"])
	})

	t.Run("missing fields", func(t *testing.T) {
		rec := do(r, http.MethodPost, "/auth/login", map[string]string{"name": "ana"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleRegister_OnlyAdmin(t *testing.T) {
	svc := new(authServiceMock)
	svc.On("Register", mock.Anything, mock.Anything).Return(domain.User{}, service.ErrOnlyAdmin)

	r, _ := newAuthRouter(svc)
	rec := do(r, http.MethodPost, "/auth/register", map[string]interface{}{
		"name":      "bob",
		"email":     "bob@example.com",
		"password":  "abcdefg1",
		"role":      map[string]interface{}{"name": "user", "scope": "notMember"},
		"address":   "Rua 1",
		"country":   "PT",
		"taxNumber": 123456789,
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Only create Admin", decode(t, rec)["message"])
}

func TestHandleLogout(t *testing.T) {
	r, _ := newAuthRouter(new(authServiceMock))

	rec := do(r, http.MethodGet, "/auth/logout", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["logout"])

	cookie := rec.Result().Cookies()
	require.Len(t, cookie, 1)
	assert.Empty(t, cookie[0].Value)
	assert.Negative(t, cookie[0].MaxAge)
}

func TestHandleMe_ReadsStore(t *testing.T) {
	svc := new(authServiceMock)
	svc.On("Me", mock.Anything, uint(7)).Return(domain.User{
		ID:   7,
		Name: "ana",
		Role: domain.Role{Scopes: domain.Scopes{domain.ScopeNotMember, domain.ScopeMember}},
	}, nil)

	r, _ := newAuthRouter(svc)
	rec := do(r, http.MethodGet, "/auth/me", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	role := decode(t, rec)["role"].(map[string]interface{})
	assert.Equal(t, []interface{}{"notMember", "member"}, role["scope"])
}

type membershipMock struct{ mock.Mock }

func (m *membershipMock) Submit(ctx context.Context, userID uint) (domain.MemberRequest, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.MemberRequest), args.Error(1)
}

func (m *membershipMock) Approve(ctx context.Context, requestID, adminID uint) (domain.MemberRequest, error) {
	args := m.Called(ctx, requestID, adminID)
	return args.Get(0).(domain.MemberRequest), args.Error(1)
}

func (m *membershipMock) Reject(ctx context.Context, requestID, adminID uint, reason string) (domain.MemberRequest, error) {
	args := m.Called(ctx, requestID, adminID, reason)
	return args.Get(0).(domain.MemberRequest), args.Error(1)
}

func (m *membershipMock) ListMine(ctx context.Context, userID uint) ([]domain.MemberRequest, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.MemberRequest), args.Error(1)
}

func (m *membershipMock) ListAll(ctx context.Context, page domain.Pagination, status domain.MemberRequestStatus) ([]domain.MemberRequest, error) {
	args := m.Called(ctx, page, status)
	return args.Get(0).([]domain.MemberRequest), args.Error(1)
}

func newMembershipRouter(svc MembershipService) *gin.Engine {
	h := NewMemberRequestHandler(svc)

	r := gin.New()
	r.POST("/member-requests", as(customer), h.HandleSubmit)
	r.GET("/member-requests", as(admin), h.HandleListRequests)
	r.GET("/member-requests/my-requests", as(customer), h.HandleMyRequests)
	r.PUT("/member-requests/:requestID/approve", as(admin), h.HandleApprove)
	r.PUT("/member-requests/:requestID/reject", as(admin), h.HandleReject)

	return r
}

func TestHandleSubmit(t *testing.T) {
	svc := new(membershipMock)
	svc.On("Submit", mock.Anything, customer.ID).Return(domain.MemberRequest{
		ID:     1,
		UserID: customer.ID,
		Status: domain.MemberRequestPending,
	}, nil).Once()
	svc.On("Submit", mock.Anything, customer.ID).Return(domain.MemberRequest{}, service.ErrPendingRequestExists).Once()

	r := newMembershipRouter(svc)

	rec := do(r, http.MethodPost, "/member-requests", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Membership request submitted successfully", body["message"])
	assert.Equal(t, "pending", body["request"].(map[string]interface{})["status"])

	rec = do(r, http.MethodPost, "/member-requests", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "You already have a pending membership request", decode(t, rec)["message"])
}

func TestHandleApprove(t *testing.T) {
	svc := new(membershipMock)
	svc.On("Approve", mock.Anything, uint(1), admin.ID).Return(domain.MemberRequest{ID: 1, Status: domain.MemberRequestApproved}, nil)
	svc.On("Approve", mock.Anything, uint(2), admin.ID).Return(domain.MemberRequest{}, service.ErrRequestNotPending)
	svc.On("Approve", mock.Anything, uint(3), admin.ID).Return(domain.MemberRequest{}, service.ErrRequestNotFound)

	r := newMembershipRouter(svc)

	tests := []struct {
		path        string
		wantCode    int
		wantMessage string
	}{
		{"/member-requests/1/approve", http.StatusOK, "Membership request approved"},
		{"/member-requests/2/approve", http.StatusBadRequest, "Request is not pending"},
		{"/member-requests/3/approve", http.StatusNotFound, "member request with ID 3 not found"},
		{"/member-requests/abc/approve", http.StatusBadRequest, `invalid requestID: "abc"`},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := do(r, http.MethodPut, tt.path, nil)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantMessage, decode(t, rec)["message"])
		})
	}
}

func TestHandleReject_OptionalBody(t *testing.T) {
	svc := new(membershipMock)
	svc.On("Reject", mock.Anything, uint(4), admin.ID, "").Return(domain.MemberRequest{
		ID: 4, Status: domain.MemberRequestRejected, Reason: "No reason provided",
	}, nil)
	svc.On("Reject", mock.Anything, uint(5), admin.ID, "missing docs").Return(domain.MemberRequest{
		ID: 5, Status: domain.MemberRequestRejected, Reason: "missing docs",
	}, nil)

	r := newMembershipRouter(svc)

	rec := do(r, http.MethodPut, "/member-requests/4/reject", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "No reason provided", decode(t, rec)["request"].(map[string]interface{})["reason"])

	rec = do(r, http.MethodPut, "/member-requests/5/reject", map[string]string{"reason": "missing docs"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Membership request rejected", decode(t, rec)["message"])
}

func TestHandleListRequests(t *testing.T) {
	svc := new(membershipMock)
	svc.On("ListAll", mock.Anything, domain.Pagination{Limit: 10}, domain.MemberRequestStatus("")).
		Return([]domain.MemberRequest{{ID: 2}, {ID: 1}}, nil)
	svc.On("ListAll", mock.Anything, mock.Anything, domain.MemberRequestStatus("bogus")).
		Return([]domain.MemberRequest(nil), service.ErrInvalidStatus)

	r := newMembershipRouter(svc)

	rec := do(r, http.MethodGet, "/member-requests", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var body response.MemberRequestsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Auth)
	assert.Len(t, body.Requests, 2)

	rec = do(r, http.MethodGet, "/member-requests?status=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleMyRequests(t *testing.T) {
	svc := new(membershipMock)
	svc.On("ListMine", mock.Anything, customer.ID).
		Return([]domain.MemberRequest{{ID: 1, UserID: customer.ID, Status: domain.MemberRequestPending}}, nil)

	r := newMembershipRouter(svc)

	rec := do(r, http.MethodGet, "/member-requests/my-requests", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, true, body["auth"])
	requests := body["requests"].([]interface{})
	require.Len(t, requests, 1)
	assert.Equal(t, "pending", requests[0].(map[string]interface{})["status"])
}

type ticketServiceMock struct{ mock.Mock }

func (m *ticketServiceMock) Purchase(ctx context.Context, userID, gameID uint, sector string) (domain.Purchase, error) {
	args := m.Called(ctx, userID, gameID, sector)
	return args.Get(0).(domain.Purchase), args.Error(1)
}

func (m *ticketServiceMock) CreateForUser(ctx context.Context, ticket domain.Ticket) (domain.Ticket, error) {
	args := m.Called(ctx, ticket)
	return args.Get(0).(domain.Ticket), args.Error(1)
}

func (m *ticketServiceMock) List(ctx context.Context, caller domain.Identity, page domain.Pagination) ([]domain.Ticket, error) {
	args := m.Called(ctx, caller, page)
	return args.Get(0).([]domain.Ticket), args.Error(1)
}

func (m *ticketServiceMock) ListByGame(ctx context.Context, gameID uint) ([]domain.Ticket, error) {
	args := m.Called(ctx, gameID)
	return args.Get(0).([]domain.Ticket), args.Error(1)
}

func (m *ticketServiceMock) Get(ctx context.Context, id uint) (domain.Ticket, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Ticket), args.Error(1)
}

func (m *ticketServiceMock) Update(ctx context.Context, id uint, patch domain.TicketPatch) (domain.Ticket, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(domain.Ticket), args.Error(1)
}

func TestHandlePurchase(t *testing.T) {
	svc := new(ticketServiceMock)
	ticket := domain.Ticket{ID: 9, Sector: "Norte A", Price: 25, GameID: 3, UserID: customer.ID, IsMember: true}
	svc.On("Purchase", mock.Anything, customer.ID, uint(3), "Norte").
		Return(domain.Purchase{Ticket: ticket, Price: 25, IsMember: true}, nil)
	svc.On("Purchase", mock.Anything, customer.ID, uint(3), "Z").
		Return(domain.Purchase{}, service.ErrSectorNotFound)
	svc.On("Purchase", mock.Anything, customer.ID, uint(4), "Norte").
		Return(domain.Purchase{}, service.ErrGameNotFound)

	h := NewTicketHandler(svc)
	r := gin.New()
	r.POST("/tickets/purchase", as(customer), h.HandlePurchase)

	t.Run("ok", func(t *testing.T) {
		rec := do(r, http.MethodPost, "/tickets/purchase", map[string]interface{}{"gameId": 3, "sector": "Norte"})
		require.Equal(t, http.StatusOK, rec.Code)

		body := decode(t, rec)
		assert.Equal(t, "Ticket purchased successfully", body["message"])
		assert.Equal(t, float64(25), body["price"])
		assert.Equal(t, true, body["isMember"])
		assert.Equal(t, "Norte A", body["ticket"].(map[string]interface{})["sector"])
	})

	failures := []struct {
		name        string
		body        map[string]interface{}
		wantCode    int
		wantMessage string
	}{
		{"missing sector", map[string]interface{}{"gameId": 3}, http.StatusBadRequest, "gameId and sector are required"},
		{"unknown sector", map[string]interface{}{"gameId": 3, "sector": "Z"}, http.StatusNotFound, `Sector "Z" not found in this stadium`},
		{"unknown game", map[string]interface{}{"gameId": 4, "sector": "Norte"}, http.StatusNotFound, "Game not found"},
	}

	for _, tt := range failures {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(r, http.MethodPost, "/tickets/purchase", tt.body)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantMessage, decode(t, rec)["message"])
		})
	}
}

func TestHandleListTickets_Pagination(t *testing.T) {
	svc := new(ticketServiceMock)
	svc.On("List", mock.Anything, customer, domain.Pagination{Limit: 5}).Return([]domain.Ticket{{ID: 1}}, nil)
	svc.On("List", mock.Anything, customer, domain.Pagination{Limit: 100, Skip: 20}).Return([]domain.Ticket{}, nil)

	h := NewTicketHandler(svc)
	r := gin.New()
	r.GET("/tickets", as(customer), h.HandleListTickets)

	rec := do(r, http.MethodGet, "/tickets", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["tickets"], 1)

	rec = do(r, http.MethodGet, "/tickets?limit=5000&skip=20", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(r, http.MethodGet, "/tickets?limit=-1", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	svc.AssertExpectations(t)
}

type gameServiceMock struct{ mock.Mock }

func (m *gameServiceMock) CreateGame(ctx context.Context, game domain.Game) (domain.Game, error) {
	args := m.Called(ctx, game)
	return args.Get(0).(domain.Game), args.Error(1)
}

func (m *gameServiceMock) GetGame(ctx context.Context, id uint) (domain.Game, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Game), args.Error(1)
}

func (m *gameServiceMock) ListGames(ctx context.Context, page domain.Pagination) ([]domain.Game, domain.PageInfo, error) {
	args := m.Called(ctx, page)
	return args.Get(0).([]domain.Game), args.Get(1).(domain.PageInfo), args.Error(2)
}

func (m *gameServiceMock) UpdateGame(ctx context.Context, id uint, patch domain.GamePatch) (domain.Game, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(domain.Game), args.Error(1)
}

func TestPublicGames(t *testing.T) {
	svc := new(gameServiceMock)
	page := domain.Pagination{Limit: 10}
	svc.On("ListGames", mock.Anything, page).
		Return([]domain.Game{{ID: 1, Name: "Derby"}}, domain.NewPageInfo(page, 1), nil)
	svc.On("GetGame", mock.Anything, uint(1)).Return(domain.Game{ID: 1, Name: "Derby"}, nil)
	svc.On("GetGame", mock.Anything, uint(2)).Return(domain.Game{}, service.ErrGameNotFound)

	h := NewGameHandler(svc)
	r := gin.New()
	r.GET("/games/public", h.HandleListPublicGames)
	r.GET("/games/public/:gameID", h.HandleGetPublicGame)

	rec := do(r, http.MethodGet, "/games/public", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, false, body["auth"])
	assert.Equal(t, float64(1), body["pagination"].(map[string]interface{})["total"])
	assert.Equal(t, false, body["pagination"].(map[string]interface{})["hasMore"])

	rec = do(r, http.MethodGet, "/games/public/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Derby", decode(t, rec)["game"].(map[string]interface{})["name"])

	rec = do(r, http.MethodGet, "/games/public/2", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Game not found", decode(t, rec)["message"])
}

type userServiceMock struct{ mock.Mock }

func (m *userServiceMock) ListUsers(ctx context.Context, page domain.Pagination) ([]domain.User, error) {
	args := m.Called(ctx, page)
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *userServiceMock) UpdateUser(ctx context.Context, id uint, patch domain.UserPatch) (domain.User, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *userServiceMock) AttachMember(ctx context.Context, userID uint, member domain.Member) (domain.User, error) {
	args := m.Called(ctx, userID, member)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *userServiceMock) ListMembers(ctx context.Context, page domain.Pagination) ([]domain.Member, domain.PageInfo, error) {
	args := m.Called(ctx, page)
	return args.Get(0).([]domain.Member), args.Get(1).(domain.PageInfo), args.Error(2)
}

func (m *userServiceMock) GetMember(ctx context.Context, id uint) (domain.Member, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Member), args.Error(1)
}

func (m *userServiceMock) GetMemberByTaxNumber(ctx context.Context, taxNumber int64) (domain.Member, error) {
	args := m.Called(ctx, taxNumber)
	return args.Get(0).(domain.Member), args.Error(1)
}

func (m *userServiceMock) UpdateMemberOfUser(ctx context.Context, userID uint, patch domain.MemberPatch) (domain.Member, error) {
	args := m.Called(ctx, userID, patch)
	return args.Get(0).(domain.Member), args.Error(1)
}

func TestHandleUpdateMemberOfUser_NoMember(t *testing.T) {
	svc := new(userServiceMock)
	svc.On("UpdateMemberOfUser", mock.Anything, uint(7), mock.Anything).Return(domain.Member{}, service.ErrUserHasNoMember)

	h := NewUserHandler(svc, nil)
	r := gin.New()
	r.PUT("/users/:userID/member", as(admin), h.HandleUpdateMemberOfUser)

	rec := do(r, http.MethodPut, "/users/7/member", map[string]interface{}{"cash": 12.5})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User does not have an associated member", decode(t, rec)["message"])
}

func TestHandleGetMemberByTaxNumber(t *testing.T) {
	svc := new(userServiceMock)
	svc.On("GetMemberByTaxNumber", mock.Anything, int64(123456789)).Return(domain.Member{ID: 2, TaxNumber: 123456789}, nil)
	svc.On("GetMemberByTaxNumber", mock.Anything, int64(1)).Return(domain.Member{}, service.ErrMemberNotFound)

	h := NewUserHandler(svc, nil)
	r := gin.New()
	r.GET("/users/member/tax/:taxNumber", h.HandleGetMemberByTaxNumber)

	rec := do(r, http.MethodGet, "/users/member/tax/123456789", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), decode(t, rec)["id"])

	rec = do(r, http.MethodGet, "/users/member/tax/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(r, http.MethodGet, "/users/member/tax/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
