//go:build unit

package session_test

import (
	"context"
	"log/slog"
	"testing"

	"futsalku-client/internal/api/request"
	"futsalku-client/internal/api/response"
	"futsalku-client/internal/pkg/errs"
	"futsalku-client/internal/session"
	sessionmock "futsalku-client/tests/mock/session"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type StoreTestSuite struct {
	suite.Suite
	mockCtrl *gomock.Controller
	mockAPI  *sessionmock.MockAuthAPI
	store    *session.Store
}

func (s *StoreTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockAPI = sessionmock.NewMockAuthAPI(s.mockCtrl)
	s.store = session.NewStore(s.mockAPI, slog.New(slog.DiscardHandler))
}

func (s *StoreTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func adminUser() *response.User {
	return &response.User{ID: uuid.New(), Name: "Admin", Email: "admin@futsalku.id", Role: response.RoleAdmin}
}

func regularUser() *response.User {
	return &response.User{ID: uuid.New(), Name: "Budi", Email: "budi@example.com", Role: response.RoleUser}
}

func (s *StoreTestSuite) TestLoginStoresUser() {
	user := regularUser()
	s.mockAPI.EXPECT().
		Login(gomock.Any(), request.LoginRequest{Email: "budi@example.com", Password: "rahasia-123"}).
		Return(user, nil)

	got, err := s.store.Login(context.Background(), "budi@example.com", "rahasia-123")
	s.Require().NoError(err)
	s.Equal(user.Email, got.Email)

	current, ok := s.store.Current()
	s.True(ok)
	s.Equal(user.ID, current.ID)
	s.False(s.store.IsAdmin())
}

func (s *StoreTestSuite) TestLoginFailureKeepsStoreEmpty() {
	s.mockAPI.EXPECT().
		Login(gomock.Any(), gomock.Any()).
		Return(nil, errs.Mark(errs.New("email atau password salah"), errs.ErrUnauthorized))

	_, err := s.store.Login(context.Background(), "budi@example.com", "password-salah")
	s.Require().Error(err)

	_, ok := s.store.Current()
	s.False(ok)
}

func (s *StoreTestSuite) TestLogoutAlwaysDropsLocalSession() {
	s.mockAPI.EXPECT().Login(gomock.Any(), gomock.Any()).Return(regularUser(), nil)
	_, err := s.store.Login(context.Background(), "budi@example.com", "rahasia-123")
	s.Require().NoError(err)

	s.mockAPI.EXPECT().Logout(gomock.Any()).
		Return(errs.Mark(errs.New("connection refused"), errs.ErrTransport))

	err = s.store.Logout(context.Background())
	s.Error(err)

	_, ok := s.store.Current()
	s.False(ok, "local session dropped even when the server call fails")
}

func (s *StoreTestSuite) TestRefreshClearsDeadSession() {
	s.mockAPI.EXPECT().Login(gomock.Any(), gomock.Any()).Return(adminUser(), nil)
	_, err := s.store.Login(context.Background(), "admin@futsalku.id", "rahasia-123")
	s.Require().NoError(err)
	s.True(s.store.IsAdmin())

	s.mockAPI.EXPECT().Me(gomock.Any()).
		Return(nil, errs.Mark(errs.New("session expired"), errs.ErrUnauthorized))

	_, err = s.store.Refresh(context.Background())
	s.True(errs.Is(err, errs.ErrNotLoggedIn))

	_, ok := s.store.Current()
	s.False(ok)
}

func (s *StoreTestSuite) TestRefreshTransportErrorKeepsUser() {
	s.mockAPI.EXPECT().Login(gomock.Any(), gomock.Any()).Return(regularUser(), nil)
	_, err := s.store.Login(context.Background(), "budi@example.com", "rahasia-123")
	s.Require().NoError(err)

	s.mockAPI.EXPECT().Me(gomock.Any()).
		Return(nil, errs.Mark(errs.New("timeout"), errs.ErrTransport))

	_, err = s.store.Refresh(context.Background())
	s.Require().Error(err)

	// an offline blip does not log the user out
	_, ok := s.store.Current()
	s.True(ok)
}

func (s *StoreTestSuite) TestRequireAdmin() {
	s.True(errs.Is(s.store.RequireAdmin(), errs.ErrNotLoggedIn))

	s.mockAPI.EXPECT().Login(gomock.Any(), gomock.Any()).Return(regularUser(), nil)
	_, err := s.store.Login(context.Background(), "budi@example.com", "rahasia-123")
	s.Require().NoError(err)
	s.True(errs.Is(s.store.RequireAdmin(), errs.ErrForbidden))

	s.mockAPI.EXPECT().Login(gomock.Any(), gomock.Any()).Return(adminUser(), nil)
	_, err = s.store.Login(context.Background(), "admin@futsalku.id", "rahasia-123")
	s.Require().NoError(err)
	s.NoError(s.store.RequireAdmin())
}
