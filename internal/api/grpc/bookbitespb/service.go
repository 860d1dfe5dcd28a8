// Package bookbitespb declares the BookBites gRPC services. Messages are
// protobuf well-known types so no code generation step is needed.
package bookbitespb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	AuthServiceName        = "bookbites.Auth"
	CollectionsServiceName = "bookbites.Collections"
	BooksServiceName       = "bookbites.Books"

	Auth_Login_FullMethodName               = "/bookbites.Auth/Login"
	Auth_SignUp_FullMethodName              = "/bookbites.Auth/SignUp"
	Collections_ListMembers_FullMethodName  = "/bookbites.Collections/ListMembers"
	Collections_AddMember_FullMethodName    = "/bookbites.Collections/AddMember"
	Collections_RemoveMember_FullMethodName = "/bookbites.Collections/RemoveMember"
	Books_GetBooks_FullMethodName           = "/bookbites.Books/GetBooks"
)

// AuthServer is the server API for the Auth service.
type AuthServer interface {
	Login(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SignUp(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// CollectionsServer is the server API for the Collections service.
type CollectionsServer interface {
	ListMembers(context.Context, *structpb.Struct) (*structpb.ListValue, error)
	AddMember(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	RemoveMember(context.Context, *structpb.Struct) (*emptypb.Empty, error)
}

// BooksServer is the server API for the Books service.
type BooksServer interface {
	GetBooks(context.Context, *structpb.ListValue) (*structpb.ListValue, error)
}

func unary[Req proto.Message](newReq func() Req, fullMethod string, call func(srv any, ctx context.Context, req Req) (any, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := newReq()
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv, ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv, ctx, req.(Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func newStruct() *structpb.Struct      { return &structpb.Struct{} }
func newListValue() *structpb.ListValue { return &structpb.ListValue{} }

// Auth_ServiceDesc is the grpc.ServiceDesc for the Auth service.
var Auth_ServiceDesc = grpc.ServiceDesc{
	ServiceName: AuthServiceName,
	HandlerType: (*AuthServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Login",
			Handler: unary(newStruct, Auth_Login_FullMethodName, func(srv any, ctx context.Context, req *structpb.Struct) (any, error) {
				return srv.(AuthServer).Login(ctx, req)
			}),
		},
		{
			MethodName: "SignUp",
			Handler: unary(newStruct, Auth_SignUp_FullMethodName, func(srv any, ctx context.Context, req *structpb.Struct) (any, error) {
				return srv.(AuthServer).SignUp(ctx, req)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "bookbites.proto",
}

// Collections_ServiceDesc is the grpc.ServiceDesc for the Collections service.
var Collections_ServiceDesc = grpc.ServiceDesc{
	ServiceName: CollectionsServiceName,
	HandlerType: (*CollectionsServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ListMembers",
			Handler: unary(newStruct, Collections_ListMembers_FullMethodName, func(srv any, ctx context.Context, req *structpb.Struct) (any, error) {
				return srv.(CollectionsServer).ListMembers(ctx, req)
			}),
		},
		{
			MethodName: "AddMember",
			Handler: unary(newStruct, Collections_AddMember_FullMethodName, func(srv any, ctx context.Context, req *structpb.Struct) (any, error) {
				return srv.(CollectionsServer).AddMember(ctx, req)
			}),
		},
		{
			MethodName: "RemoveMember",
			Handler: unary(newStruct, Collections_RemoveMember_FullMethodName, func(srv any, ctx context.Context, req *structpb.Struct) (any, error) {
				return srv.(CollectionsServer).RemoveMember(ctx, req)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "bookbites.proto",
}

// Books_ServiceDesc is the grpc.ServiceDesc for the Books service.
var Books_ServiceDesc = grpc.ServiceDesc{
	ServiceName: BooksServiceName,
	HandlerType: (*BooksServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetBooks",
			Handler: unary(newListValue, Books_GetBooks_FullMethodName, func(srv any, ctx context.Context, req *structpb.ListValue) (any, error) {
				return srv.(BooksServer).GetBooks(ctx, req)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "bookbites.proto",
}

func RegisterAuthServer(s grpc.ServiceRegistrar, srv AuthServer) {
	s.RegisterService(&Auth_ServiceDesc, srv)
}

func RegisterCollectionsServer(s grpc.ServiceRegistrar, srv CollectionsServer) {
	s.RegisterService(&Collections_ServiceDesc, srv)
}

func RegisterBooksServer(s grpc.ServiceRegistrar, srv BooksServer) {
	s.RegisterService(&Books_ServiceDesc, srv)
}

// AuthClient is the client API for the Auth service.
type AuthClient interface {
	Login(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	SignUp(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type authClient struct {
	cc grpc.ClientConnInterface
}

func NewAuthClient(cc grpc.ClientConnInterface) AuthClient {
	return &authClient{cc}
}

func (c *authClient) Login(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, Auth_Login_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *authClient) SignUp(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, Auth_SignUp_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// CollectionsClient is the client API for the Collections service.
type CollectionsClient interface {
	ListMembers(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.ListValue, error)
	AddMember(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error)
	RemoveMember(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error)
}

type collectionsClient struct {
	cc grpc.ClientConnInterface
}

func NewCollectionsClient(cc grpc.ClientConnInterface) CollectionsClient {
	return &collectionsClient{cc}
}

func (c *collectionsClient) ListMembers(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, Collections_ListMembers_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *collectionsClient) AddMember(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, Collections_AddMember_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *collectionsClient) RemoveMember(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, Collections_RemoveMember_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// BooksClient is the client API for the Books service.
type BooksClient interface {
	GetBooks(ctx context.Context, in *structpb.ListValue, opts ...grpc.CallOption) (*structpb.ListValue, error)
}

type booksClient struct {
	cc grpc.ClientConnInterface
}

func NewBooksClient(cc grpc.ClientConnInterface) BooksClient {
	return &booksClient{cc}
}

func (c *booksClient) GetBooks(ctx context.Context, in *structpb.ListValue, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, Books_GetBooks_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
