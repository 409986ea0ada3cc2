package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jfonseca/inventorypro/internal/auth"
)

func TestService_Login(t *testing.T) {
	hash, err := auth.HashPassword("s3cret")
	require.NoError(t, err)

	user := &auth.User{ID: uuid.New(), Email: "admin@example.com", PasswordHash: hash}

	type testCase struct {
		name      string
		email     string
		password  string
		setupMock func(m *auth.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name:     "Success",
			email:    "admin@example.com",
			password: "s3cret",
			setupMock: func(m *auth.MockRepository) {
				m.EXPECT().GetUserByEmail(gomock.Any(), "admin@example.com").Return(user, nil)
			},
		},
		{
			name:     "WrongPassword",
			email:    "admin@example.com",
			password: "nope",
			setupMock: func(m *auth.MockRepository) {
				m.EXPECT().GetUserByEmail(gomock.Any(), "admin@example.com").Return(user, nil)
			},
			wantErr: auth.ErrInvalidCredentials,
		},
		{
			name:     "UnknownEmail",
			email:    "ghost@example.com",
			password: "s3cret",
			setupMock: func(m *auth.MockRepository) {
				m.EXPECT().GetUserByEmail(gomock.Any(), "ghost@example.com").Return(nil, auth.ErrUserNotFound)
			},
			wantErr: auth.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := auth.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := auth.NewService(repo, "test-secret", time.Hour)
			token, err := svc.Login(context.Background(), tt.email, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)

				return
			}

			require.NoError(t, err)
			require.NotEmpty(t, token)

			userID, err := svc.VerifyToken(token)
			require.NoError(t, err)
			assert.Equal(t, user.ID, userID)
		})
	}
}

func TestService_EnsureAdmin(t *testing.T) {
	t.Run("SeedsFreshDatabase", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := auth.NewMockRepository(ctrl)

		repo.EXPECT().GetUserByEmail(gomock.Any(), "admin@example.com").
			Return(nil, auth.ErrUserNotFound)

		var created *auth.User

		repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u *auth.User) error {
				u.ID = uuid.New()
				created = u
				return nil
			})

		svc := auth.NewService(repo, "test-secret", time.Hour)
		require.NoError(t, svc.EnsureAdmin(context.Background(), "admin@example.com", "s3cret"))

		require.NotNil(t, created)
		assert.Equal(t, "admin@example.com", created.Email)
		assert.NotEqual(t, "s3cret", created.PasswordHash)

		// The seeded account can log in.
		repo.EXPECT().GetUserByEmail(gomock.Any(), "admin@example.com").Return(created, nil)

		token, err := svc.Login(context.Background(), "admin@example.com", "s3cret")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("ExistingAccountUntouched", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := auth.NewMockRepository(ctrl)

		repo.EXPECT().GetUserByEmail(gomock.Any(), "admin@example.com").
			Return(&auth.User{ID: uuid.New(), Email: "admin@example.com"}, nil)

		svc := auth.NewService(repo, "test-secret", time.Hour)
		assert.NoError(t, svc.EnsureAdmin(context.Background(), "admin@example.com", "changed"))
	})
}

func TestService_VerifyToken_Invalid(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := auth.NewService(auth.NewMockRepository(ctrl), "test-secret", time.Hour)

	_, err := svc.VerifyToken("not-a-token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	// Tokens signed with another secret are rejected.
	other := auth.NewService(auth.NewMockRepository(ctrl), "other-secret", time.Hour)

	hash, err := auth.HashPassword("pw")
	require.NoError(t, err)

	repo := auth.NewMockRepository(ctrl)
	repo.EXPECT().GetUserByEmail(gomock.Any(), gomock.Any()).
		Return(&auth.User{ID: uuid.New(), PasswordHash: hash}, nil)

	token, err := auth.NewService(repo, "test-secret", time.Hour).Login(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)

	_, err = other.VerifyToken(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestMiddleware(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := auth.NewMockRepository(ctrl)

	hash, err := auth.HashPassword("pw")
	require.NoError(t, err)

	userID := uuid.New()
	repo.EXPECT().GetUserByEmail(gomock.Any(), gomock.Any()).
		Return(&auth.User{ID: userID, PasswordHash: hash}, nil)

	svc := auth.NewService(repo, "test-secret", time.Hour)
	token, err := svc.Login(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)

	var gotID uuid.UUID

	handler := svc.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := auth.UserID(r.Context())
		require.True(t, ok)
		gotID = id
	}))

	// Valid token passes through with the user ID in context.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, gotID)

	// Missing header is rejected.
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
