package handler

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Innovatorone/InnoBOOKweb/internal/model"
)

func handleError(err error) error {
	switch {
	case errors.Is(err, model.ErrInvalidArgument):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, model.ErrInvalidCredentials):
		return status.Error(codes.Unauthenticated, model.ErrInvalidCredentials.Error())
	case errors.Is(err, model.ErrUnauthorized):
		return status.Error(codes.Unauthenticated, model.ErrUnauthorized.Error())
	case errors.Is(err, model.ErrAlreadyExists):
		return status.Error(codes.AlreadyExists, "phone already registered")
	case errors.Is(err, model.ErrNotFound):
		return status.Error(codes.NotFound, "not found")
	default:
		return status.Error(codes.Internal, "internal server error")
	}
}
