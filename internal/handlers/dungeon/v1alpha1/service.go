package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "dungeon.v1alpha1.DungeonService"

// Full method names
const (
	DungeonService_GenerateDungeon_FullMethodName = "/" + ServiceName + "/GenerateDungeon"
	DungeonService_StartRun_FullMethodName        = "/" + ServiceName + "/StartRun"
	DungeonService_GetRun_FullMethodName          = "/" + ServiceName + "/GetRun"
	DungeonService_Traverse_FullMethodName        = "/" + ServiceName + "/Traverse"
	DungeonService_ClearRoom_FullMethodName       = "/" + ServiceName + "/ClearRoom"
	DungeonService_FailRun_FullMethodName         = "/" + ServiceName + "/FailRun"
)

// DungeonServiceServer is the server API for the dungeon service. Messages are
// google.protobuf.Struct so the default proto codec carries them.
type DungeonServiceServer interface {
	GenerateDungeon(context.Context, *structpb.Struct) (*structpb.Struct, error)
	StartRun(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetRun(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Traverse(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ClearRoom(context.Context, *structpb.Struct) (*structpb.Struct, error)
	FailRun(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(ctx context.Context, srv DungeonServiceServer, in *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryCall) grpc.MethodHandler {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(ctx, srv.(DungeonServiceServer), in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(ctx, srv.(DungeonServiceServer), req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// DungeonService_ServiceDesc is the grpc.ServiceDesc for the dungeon service
var DungeonService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DungeonServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GenerateDungeon",
			Handler: unaryHandler(DungeonService_GenerateDungeon_FullMethodName,
				func(ctx context.Context, srv DungeonServiceServer, in *structpb.Struct) (*structpb.Struct, error) {
					return srv.GenerateDungeon(ctx, in)
				}),
		},
		{
			MethodName: "StartRun",
			Handler: unaryHandler(DungeonService_StartRun_FullMethodName,
				func(ctx context.Context, srv DungeonServiceServer, in *structpb.Struct) (*structpb.Struct, error) {
					return srv.StartRun(ctx, in)
				}),
		},
		{
			MethodName: "GetRun",
			Handler: unaryHandler(DungeonService_GetRun_FullMethodName,
				func(ctx context.Context, srv DungeonServiceServer, in *structpb.Struct) (*structpb.Struct, error) {
					return srv.GetRun(ctx, in)
				}),
		},
		{
			MethodName: "Traverse",
			Handler: unaryHandler(DungeonService_Traverse_FullMethodName,
				func(ctx context.Context, srv DungeonServiceServer, in *structpb.Struct) (*structpb.Struct, error) {
					return srv.Traverse(ctx, in)
				}),
		},
		{
			MethodName: "ClearRoom",
			Handler: unaryHandler(DungeonService_ClearRoom_FullMethodName,
				func(ctx context.Context, srv DungeonServiceServer, in *structpb.Struct) (*structpb.Struct, error) {
					return srv.ClearRoom(ctx, in)
				}),
		},
		{
			MethodName: "FailRun",
			Handler: unaryHandler(DungeonService_FailRun_FullMethodName,
				func(ctx context.Context, srv DungeonServiceServer, in *structpb.Struct) (*structpb.Struct, error) {
					return srv.FailRun(ctx, in)
				}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "dungeon/v1alpha1/dungeon.proto",
}

// RegisterDungeonServiceServer registers srv on s
func RegisterDungeonServiceServer(s grpc.ServiceRegistrar, srv DungeonServiceServer) {
	s.RegisterService(&DungeonService_ServiceDesc, srv)
}

// DungeonServiceClient is the client API for the dungeon service
type DungeonServiceClient interface {
	GenerateDungeon(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	StartRun(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetRun(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Traverse(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ClearRoom(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	FailRun(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type dungeonServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewDungeonServiceClient creates a client over cc
func NewDungeonServiceClient(cc grpc.ClientConnInterface) DungeonServiceClient {
	return &dungeonServiceClient{cc: cc}
}

func (c *dungeonServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts []grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *dungeonServiceClient) GenerateDungeon(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, DungeonService_GenerateDungeon_FullMethodName, in, opts)
}

func (c *dungeonServiceClient) StartRun(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, DungeonService_StartRun_FullMethodName, in, opts)
}

func (c *dungeonServiceClient) GetRun(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, DungeonService_GetRun_FullMethodName, in, opts)
}

func (c *dungeonServiceClient) Traverse(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, DungeonService_Traverse_FullMethodName, in, opts)
}

func (c *dungeonServiceClient) ClearRoom(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, DungeonService_ClearRoom_FullMethodName, in, opts)
}

func (c *dungeonServiceClient) FailRun(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, DungeonService_FailRun_FullMethodName, in, opts)
}
