package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/rumonkh0/quizbackend/internal/core/domain"
	"github.com/rumonkh0/quizbackend/internal/infra/security"
	"github.com/rumonkh0/quizbackend/internal/repository"
	"github.com/rumonkh0/quizbackend/internal/usecase"
)

type memAccountRepo struct {
	accounts map[string]*domain.Account
}

func (r *memAccountRepo) Create(_ context.Context, account domain.Account) error {
	for _, existing := range r.accounts {
		if existing.Email == account.Email {
			return &repository.DuplicateKeyError{Constraint: "accounts_email_key"}
		}
		if existing.Username == account.Username {
			return &repository.DuplicateKeyError{Constraint: "accounts_username_key"}
		}
	}
	copied := account
	r.accounts[account.ID] = &copied
	return nil
}

func (r *memAccountRepo) GetByID(_ context.Context, id string) (*domain.Account, error) {
	if account, ok := r.accounts[id]; ok {
		copied := *account
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (r *memAccountRepo) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	for _, account := range r.accounts {
		if account.Email == email {
			copied := *account
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memAccountRepo) GetByUsername(_ context.Context, username string) (*domain.Account, error) {
	for _, account := range r.accounts {
		if account.Username == username {
			copied := *account
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memAccountRepo) Save(_ context.Context, account domain.Account) error {
	if _, ok := r.accounts[account.ID]; !ok {
		return repository.ErrNotFound
	}
	copied := account
	r.accounts[account.ID] = &copied
	return nil
}

type memQuizRepo struct{}

func (memQuizRepo) Create(context.Context, domain.Quiz) error { return nil }
func (memQuizRepo) GetByID(context.Context, string) (*domain.Quiz, error) {
	return nil, repository.ErrNotFound
}
func (memQuizRepo) List(context.Context) ([]domain.Quiz, error)  { return nil, nil }
func (memQuizRepo) Delete(context.Context, string) error         { return nil }
func (memQuizRepo) CreateAttempt(context.Context, domain.QuizAttempt) error {
	return nil
}
func (memQuizRepo) AttemptedQuizIDs(context.Context, string) ([]string, error) {
	return nil, nil
}
func (memQuizRepo) ListAttemptsByAccount(context.Context, string) ([]domain.QuizAttempt, error) {
	return nil, nil
}
func (memQuizRepo) ListAttemptsByQuiz(context.Context, string) ([]domain.QuizAttempt, error) {
	return nil, nil
}
func (memQuizRepo) ListWithAttemptCounts(context.Context) ([]domain.QuizOverview, error) {
	return nil, nil
}
func (memQuizRepo) Update(context.Context, domain.Quiz) error { return nil }

func newAuthRouter(t *testing.T) (*gin.Engine, *memAccountRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	issuer, err := security.NewTokenIssuer("handler-test-secret", "quizbackend-test")
	require.NoError(t, err)

	repo := &memAccountRepo{accounts: make(map[string]*domain.Account)}
	auth := usecase.NewAuthService(repo, memQuizRepo{}, issuer, nil, nil, nil)

	router := gin.New()
	NewAuthHandler(auth, nil).RegisterRoutes(router)
	return router, repo
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func TestRegisterLoginLockoutFlow(t *testing.T) {
	router, repo := newAuthRouter(t)

	rr := doJSON(t, router, http.MethodPost, "/register", RegisterRequest{
		Username:        "learner",
		Email:           "learner@example.com",
		Password:        "correct-horse",
		ConfirmPassword: "correct-horse",
		Role:            "user",
	})
	require.Equal(t, http.StatusOK, rr.Code)
	resp := decodeResponse(t, rr)
	require.True(t, resp.Success)
	require.Equal(t, "User created successfully", resp.Message)

	// Three wrong passwords walk the counter to the threshold.
	for i, wantMsg := range []string{
		"Invalid credentials. 2 attempts remaining.",
		"Invalid credentials. 1 attempts remaining.",
	} {
		rr = doJSON(t, router, http.MethodPost, "/login", LoginRequest{
			Email:    "learner@example.com",
			Password: fmt.Sprintf("wrong-%d", i),
		})
		require.Equal(t, http.StatusBadRequest, rr.Code)
		require.Equal(t, wantMsg, decodeResponse(t, rr).Error)
	}

	rr = doJSON(t, router, http.MethodPost, "/login", LoginRequest{
		Email:    "learner@example.com",
		Password: "wrong-3",
	})
	require.Equal(t, http.StatusLocked, rr.Code)
	require.Equal(t,
		"Account locked due to 3 failed login attempts. Please try again after 15 minutes.",
		decodeResponse(t, rr).Error)

	// The correct password is still rejected while the window is open.
	rr = doJSON(t, router, http.MethodPost, "/login", LoginRequest{
		Email:    "learner@example.com",
		Password: "correct-horse",
	})
	require.Equal(t, http.StatusLocked, rr.Code)
	require.Equal(t,
		"Account is temporarily locked due to too many failed login attempts. Please try again later.",
		decodeResponse(t, rr).Error)

	// Simulate the window elapsing.
	var accountID string
	for id, account := range repo.accounts {
		accountID = id
		elapsed := time.Now().UTC().Add(-time.Minute)
		account.LockUntil = &elapsed
	}

	rr = doJSON(t, router, http.MethodPost, "/login", LoginRequest{
		Email:    "learner@example.com",
		Password: "correct-horse",
	})
	require.Equal(t, http.StatusOK, rr.Code)
	resp = decodeResponse(t, rr)
	require.True(t, resp.Success)
	require.Equal(t, "User logged in successfully", resp.Message)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var login LoginData
	require.NoError(t, json.Unmarshal(data, &login))
	require.NotEmpty(t, login.Token)
	require.Equal(t, "learner@example.com", login.User.Email)
	require.NotNil(t, login.User.AttemptedQuizzes)
	require.Empty(t, login.User.AttemptedQuizzes)

	var sawCookie bool
	for _, cookie := range rr.Result().Cookies() {
		if cookie.Name == "token" {
			sawCookie = true
			require.True(t, cookie.HttpOnly)
			require.Equal(t, int(security.CookieTTL.Seconds()), cookie.MaxAge)
		}
	}
	require.True(t, sawCookie, "expected a token cookie on successful login")

	stored := repo.accounts[accountID]
	require.Zero(t, stored.FailedLoginAttempts)
	require.False(t, stored.AccountLocked)
	require.Nil(t, stored.LockUntil)
}

func TestLoginUnknownEmailMessage(t *testing.T) {
	router, _ := newAuthRouter(t)

	rr := doJSON(t, router, http.MethodPost, "/login", LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Equal(t, "User not found", decodeResponse(t, rr).Error)
}

func TestLoginMissingFieldsMessage(t *testing.T) {
	router, _ := newAuthRouter(t)

	rr := doJSON(t, router, http.MethodPost, "/login", LoginRequest{Email: "learner@example.com"})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Equal(t, "Please fill all the fields", decodeResponse(t, rr).Error)
}

func TestRegisterDuplicateEmailMessage(t *testing.T) {
	router, _ := newAuthRouter(t)

	req := RegisterRequest{
		Username:        "learner",
		Email:           "learner@example.com",
		Password:        "pw123456",
		ConfirmPassword: "pw123456",
		Role:            "user",
	}
	rr := doJSON(t, router, http.MethodPost, "/register", req)
	require.Equal(t, http.StatusOK, rr.Code)

	req.Username = "someone-else"
	rr = doJSON(t, router, http.MethodPost, "/register", req)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Equal(t, "Email is already registered, Please log in", decodeResponse(t, rr).Error)
}

func TestRegisterPasswordMismatchMessage(t *testing.T) {
	router, _ := newAuthRouter(t)

	rr := doJSON(t, router, http.MethodPost, "/register", RegisterRequest{
		Username:        "learner",
		Email:           "learner@example.com",
		Password:        "pw123456",
		ConfirmPassword: "different",
		Role:            "user",
	})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Equal(t, "Password and Confirm Password should be same", decodeResponse(t, rr).Error)
}
