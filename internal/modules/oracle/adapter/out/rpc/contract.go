package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const (
	PluginMapKey        = "scrub"
	serviceName         = "scrub.oracle.v1.Oracle"
	jsonCodecName       = "json"
	methodGetMetadata   = "/" + serviceName + "/GetMetadata"
	methodGenerateTasks = "/" + serviceName + "/GenerateTasks"
	methodJudgeCleaning = "/" + serviceName + "/JudgeCleaning"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "SCRUB_ORACLE",
	MagicCookieValue: "scrub",
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return jsonCodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type Empty struct{}

type Metadata struct {
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	Capabilities []string `json:"capabilities"`
}

type TaskSpec struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Points int32  `json:"points"`
}

type GenerateTasksRequest struct {
	PhotoPath string `json:"photo_path"`
	Persona   string `json:"persona"`
	FilterID  string `json:"filter_id"`
}

type GenerateTasksResponse struct {
	Tasks           []TaskSpec `json:"tasks"`
	VisionImagePath string     `json:"vision_image_path"`
}

type JudgeCleaningRequest struct {
	BeforePhotoPath string   `json:"before_photo_path"`
	AfterPhotoPath  string   `json:"after_photo_path"`
	TaskTitles      []string `json:"task_titles"`
}

type JudgeCleaningResponse struct {
	Passed     bool    `json:"passed"`
	Confidence float64 `json:"confidence"`
	Remarks    string  `json:"remarks"`
}

type OracleServer interface {
	GetMetadata(ctx context.Context, in *Empty) (*Metadata, error)
	GenerateTasks(ctx context.Context, in *GenerateTasksRequest) (*GenerateTasksResponse, error)
	JudgeCleaning(ctx context.Context, in *JudgeCleaningRequest) (*JudgeCleaningResponse, error)
}

type OracleClient interface {
	GetMetadata(ctx context.Context) (*Metadata, error)
	GenerateTasks(ctx context.Context, in *GenerateTasksRequest) (*GenerateTasksResponse, error)
	JudgeCleaning(ctx context.Context, in *JudgeCleaningRequest) (*JudgeCleaningResponse, error)
}

type oracleClient struct {
	conn *grpc.ClientConn
}

func NewOracleClient(conn *grpc.ClientConn) OracleClient {
	return &oracleClient{conn: conn}
}

func (c *oracleClient) GetMetadata(ctx context.Context) (*Metadata, error) {
	out := &Metadata{}
	if err := c.conn.Invoke(ctx, methodGetMetadata, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *oracleClient) GenerateTasks(ctx context.Context, in *GenerateTasksRequest) (*GenerateTasksResponse, error) {
	out := &GenerateTasksResponse{}
	if err := c.conn.Invoke(ctx, methodGenerateTasks, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *oracleClient) JudgeCleaning(ctx context.Context, in *JudgeCleaningRequest) (*JudgeCleaningResponse, error) {
	out := &JudgeCleaningResponse{}
	if err := c.conn.Invoke(ctx, methodJudgeCleaning, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func RegisterOracleServer(server grpc.ServiceRegistrar, impl OracleServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*OracleServer)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "GetMetadata",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &Empty{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.GetMetadata(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGetMetadata}
					handler := func(ctx context.Context, req any) (any, error) {
						empty, ok := req.(*Empty)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.GetMetadata(ctx, empty)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
			{
				MethodName: "GenerateTasks",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &GenerateTasksRequest{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.GenerateTasks(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGenerateTasks}
					handler := func(ctx context.Context, req any) (any, error) {
						inReq, ok := req.(*GenerateTasksRequest)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.GenerateTasks(ctx, inReq)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
			{
				MethodName: "JudgeCleaning",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &JudgeCleaningRequest{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.JudgeCleaning(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodJudgeCleaning}
					handler := func(ctx context.Context, req any) (any, error) {
						inReq, ok := req.(*JudgeCleaningRequest)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.JudgeCleaning(ctx, inReq)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "schemas/oracle-rpc-v1.proto",
	}, impl)
}

type GRPCPlugin struct {
	plugin.NetRPCUnsupportedPlugin
	Impl OracleServer
}

func (p *GRPCPlugin) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterOracleServer(server, p.Impl)
	return nil
}

func (p *GRPCPlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewOracleClient(conn), nil
}

func PluginMap(impl OracleServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginMapKey: &GRPCPlugin{Impl: impl},
	}
}
