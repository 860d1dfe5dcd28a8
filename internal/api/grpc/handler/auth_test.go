package handler

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/Innovatorone/InnoBOOKweb/internal/api/grpc/bookbitespb"
	"github.com/Innovatorone/InnoBOOKweb/internal/mocks"
	"github.com/Innovatorone/InnoBOOKweb/internal/model"
	"github.com/Innovatorone/InnoBOOKweb/internal/testutil"
)

func TestAuth_Login(t *testing.T) {
	t.Parallel()

	svc := mocks.NewAuthService(t)
	lg := testutil.MakeNoopLogger()
	user := model.User{ID: uuid.New(), Name: "Ali", Phone: "+998901234567", Plan: "premium", Type: "user"}

	svc.On("Login", mock.Anything, "+998901234567", "secret").Return(model.LoginResult{User: user, AccessToken: "acc"}, nil)

	h := NewAuth(svc, lg)
	out, err := h.Login(context.Background(), bookbitespb.LoginRequest{Phone: "+998901234567", Password: "secret"}.Struct())
	require.NoError(t, err)

	resp, err := bookbitespb.ParseLoginResponse(out)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), resp.UserID)
	assert.Equal(t, "acc", resp.AccessToken)
	assert.Equal(t, "premium", resp.Plan)
}

func TestAuth_Login_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		req      *structpb.Struct
		svcErr   error
		wantCode codes.Code
	}{
		{
			name:     "missing password",
			req:      &structpb.Struct{Fields: map[string]*structpb.Value{bookbitespb.FieldPhone: structpb.NewStringValue("p")}},
			wantCode: codes.InvalidArgument,
		},
		{
			name:     "bad credentials",
			req:      bookbitespb.LoginRequest{Phone: "p", Password: "bad"}.Struct(),
			svcErr:   model.ErrInvalidCredentials,
			wantCode: codes.Unauthenticated,
		},
		{
			name:     "internal",
			req:      bookbitespb.LoginRequest{Phone: "p", Password: "pw"}.Struct(),
			svcErr:   assert.AnError,
			wantCode: codes.Internal,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := mocks.NewAuthService(t)
			if tt.svcErr != nil {
				svc.On("Login", mock.Anything, mock.Anything, mock.Anything).Return(model.LoginResult{}, tt.svcErr)
			}

			h := NewAuth(svc, testutil.MakeNoopLogger())
			out, err := h.Login(context.Background(), tt.req)
			assert.Nil(t, out)
			assert.Equal(t, tt.wantCode, status.Code(err))
		})
	}
}

func TestAuth_SignUp(t *testing.T) {
	t.Parallel()

	svc := mocks.NewAuthService(t)
	userID := uuid.New()
	params := model.SignUpParams{Phone: "+998901234567", Password: "secret", Name: "Ali", Avatar: "avatars/ali.png"}

	svc.On("SignUp", mock.Anything, params).Return(model.LoginResult{User: model.User{ID: userID, Name: "Ali"}, AccessToken: "acc"}, nil)

	h := NewAuth(svc, testutil.MakeNoopLogger())
	out, err := h.SignUp(context.Background(), bookbitespb.SignUpRequest{
		Phone: params.Phone, Password: params.Password, Name: params.Name, Avatar: params.Avatar,
	}.Struct())
	require.NoError(t, err)

	resp, err := bookbitespb.ParseLoginResponse(out)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), resp.UserID)
}

func TestAuth_SignUp_PhoneTaken(t *testing.T) {
	t.Parallel()

	svc := mocks.NewAuthService(t)
	svc.On("SignUp", mock.Anything, mock.Anything).Return(model.LoginResult{}, model.ErrAlreadyExists)

	h := NewAuth(svc, testutil.MakeNoopLogger())
	_, err := h.SignUp(context.Background(), bookbitespb.SignUpRequest{Phone: "p", Password: "pw", Name: "n"}.Struct())
	assert.Equal(t, codes.AlreadyExists, status.Code(err))
}
