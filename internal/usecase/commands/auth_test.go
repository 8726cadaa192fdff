//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"island-eats/internal/domain/user"
	"island-eats/internal/pkg/jwt"
	"island-eats/internal/pkg/password"
	"island-eats/internal/usecase/commands"
	"island-eats/internal/usecase/queries"
	"island-eats/internal/usecase/shared"
	"island-eats/tests/common/builder"
	queriesmock "island-eats/tests/mock/queries"
	sharedmock "island-eats/tests/mock/shared"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthCommandsTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	uow       *sharedmock.MockUnitOfWork
	readStore *queriesmock.MockUserReadStore
	users     *sharedmock.MockUserRepository
	tx        *sharedmock.MockTx

	uc commands.AuthCommands
}

func (s *AuthCommandsTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.uow = sharedmock.NewMockUnitOfWork(s.ctrl)
	s.readStore = queriesmock.NewMockUserReadStore(s.ctrl)
	s.users = sharedmock.NewMockUserRepository(s.ctrl)
	s.tx = sharedmock.NewMockTx(s.ctrl)

	jwtService := jwt.NewService("test-secret-key", time.Hour)
	s.uc = commands.NewAuthCommands(s.uow, s.readStore, jwtService)
}

func (s *AuthCommandsTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestAuthCommandsSuite(t *testing.T) {
	suite.Run(t, new(AuthCommandsTestSuite))
}

func (s *AuthCommandsTestSuite) credentials(email, pw string) user.Credentials {
	creds, err := user.NewCredentials(email, pw)
	s.Require().NoError(err)
	return creds
}

func (s *AuthCommandsTestSuite) TestLogin_Success() {
	view := builder.NewUserBuilder().BuildReadModel()
	hash, err := password.HashPassword("password123")
	s.Require().NoError(err)

	s.readStore.EXPECT().FindByEmail(gomock.Any(), view.Email).
		Return(view, hash, nil).Times(1)

	s.tx.EXPECT().Users().Return(s.users).AnyTimes()
	s.tx.EXPECT().DB().Return(nil).AnyTimes()
	s.users.EXPECT().UpdateLastLogin(gomock.Any(), gomock.Any(), view.ID).Return(nil).Times(1)
	s.uow.EXPECT().Within(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, s.tx)
		}).Times(1)

	result, err := s.uc.Login(context.Background(), s.credentials(view.Email, "password123"))

	s.Require().NoError(err)
	s.Equal(view.ID, result.UserID)
	s.NotEmpty(result.AccessToken)
}

func (s *AuthCommandsTestSuite) TestLogin_WrongPassword() {
	view := builder.NewUserBuilder().BuildReadModel()
	hash, err := password.HashPassword("password123")
	s.Require().NoError(err)

	s.readStore.EXPECT().FindByEmail(gomock.Any(), view.Email).
		Return(view, hash, nil).Times(1)

	_, err = s.uc.Login(context.Background(), s.credentials(view.Email, "wrongpassword"))

	s.ErrorIs(err, commands.ErrInvalidCredentials)
}

func (s *AuthCommandsTestSuite) TestLogin_UnknownEmailMapsToInvalidCredentials() {
	s.readStore.EXPECT().FindByEmail(gomock.Any(), "ghost@example.com").
		Return(nil, "", queries.ErrUserNotFound).Times(1)

	_, err := s.uc.Login(context.Background(), s.credentials("ghost@example.com", "password123"))

	s.ErrorIs(err, commands.ErrInvalidCredentials)
}

func (s *AuthCommandsTestSuite) TestLogin_InactiveUser() {
	view := builder.NewUserBuilder().AsInactive().BuildReadModel()
	hash, err := password.HashPassword("password123")
	s.Require().NoError(err)

	s.readStore.EXPECT().FindByEmail(gomock.Any(), view.Email).
		Return(view, hash, nil).Times(1)

	_, err = s.uc.Login(context.Background(), s.credentials(view.Email, "password123"))

	s.ErrorIs(err, commands.ErrUserInactive)
}

func (s *AuthCommandsTestSuite) TestLogin_LastLoginFailureDoesNotFailLogin() {
	view := builder.NewUserBuilder().BuildReadModel()
	hash, err := password.HashPassword("password123")
	s.Require().NoError(err)

	s.readStore.EXPECT().FindByEmail(gomock.Any(), view.Email).
		Return(view, hash, nil).Times(1)
	s.uow.EXPECT().Within(gomock.Any(), gomock.Any()).
		Return(queries.ErrUserNotFound).Times(1)

	result, err := s.uc.Login(context.Background(), s.credentials(view.Email, "password123"))

	s.Require().NoError(err)
	s.NotEmpty(result.AccessToken)
}
