package client

import (
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Innovatorone/InnoBOOKweb/internal/model"
)

// fromStatus maps a gRPC status back onto the model sentinel errors.
func fromStatus(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	var sentinel error
	switch st.Code() {
	case codes.InvalidArgument:
		sentinel = model.ErrInvalidArgument
	case codes.Unauthenticated:
		sentinel = model.ErrUnauthorized
		if st.Message() == model.ErrInvalidCredentials.Error() {
			return model.ErrInvalidCredentials
		}
	case codes.AlreadyExists:
		sentinel = model.ErrAlreadyExists
	case codes.NotFound:
		sentinel = model.ErrNotFound
	default:
		return fmt.Errorf("rpc failed: %w", err)
	}
	return fmt.Errorf("%w: %s", sentinel, st.Message())
}
