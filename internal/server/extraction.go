package server

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/joseph-ayodele/letters-tracker/internal/common"
	"github.com/joseph-ayodele/letters-tracker/internal/core"
)

// Extractor is the processing surface the transports call into.
type Extractor interface {
	ProcessFile(ctx context.Context, fileID uuid.UUID) (uuid.UUID, error)
	ReExtract(ctx context.Context, fileID uuid.UUID) (core.Result, error)
	ExtractText(ctx context.Context, text string) (core.Result, error)
}

const (
	extractionServiceName = "letters.v1.ExtractionService"
	extractMethod         = "/" + extractionServiceName + "/Extract"
	reExtractMethod       = "/" + extractionServiceName + "/ReExtract"
)

// ExtractionServer is the server API for letters.v1.ExtractionService.
// Requests and responses are google.protobuf.Struct values:
//
//	Extract   {text: string}    -> record
//	ReExtract {file_id: string} -> record
type ExtractionServer interface {
	Extract(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ReExtract(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

func RegisterExtractionServer(s grpc.ServiceRegistrar, srv ExtractionServer) {
	s.RegisterService(&extractionServiceDesc, srv)
}

var extractionServiceDesc = grpc.ServiceDesc{
	ServiceName: extractionServiceName,
	HandlerType: (*ExtractionServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Extract", Handler: extractHandler},
		{MethodName: "ReExtract", Handler: reExtractHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "letters/v1/extraction.proto",
}

func extractHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ExtractionServer).Extract(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: extractMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ExtractionServer).Extract(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func reExtractHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ExtractionServer).ReExtract(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: reExtractMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ExtractionServer).ReExtract(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// ExtractionClient is the client API for letters.v1.ExtractionService.
type ExtractionClient struct {
	cc grpc.ClientConnInterface
}

func NewExtractionClient(cc grpc.ClientConnInterface) *ExtractionClient {
	return &ExtractionClient{cc: cc}
}

func (c *ExtractionClient) Extract(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, extractMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ExtractionClient) ReExtract(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, reExtractMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// ExtractionService implements ExtractionServer on top of the processor.
type ExtractionService struct {
	proc   Extractor
	logger *slog.Logger
}

func NewExtractionService(proc Extractor, logger *slog.Logger) *ExtractionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExtractionService{proc: proc, logger: logger}
}

func (s *ExtractionService) Extract(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	text := req.GetFields()["text"].GetStringValue()
	if strings.TrimSpace(text) == "" {
		return nil, status.Error(codes.InvalidArgument, "text is required")
	}
	res, err := s.proc.ExtractText(ctx, text)
	if err != nil {
		s.logger.Error("extract failed", "err", err)
		return nil, common.ToGRPCStatus(err)
	}
	return structpb.NewStruct(res.Record.Map())
}

func (s *ExtractionService) ReExtract(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fileID, err := uuid.Parse(strings.TrimSpace(req.GetFields()["file_id"].GetStringValue()))
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "file_id must be a UUID")
	}
	res, err := s.proc.ReExtract(ctx, fileID)
	if err != nil {
		s.logger.Error("re-extract failed", "file_id", fileID, "err", err)
		return nil, common.ToGRPCStatus(err)
	}
	s.logger.Info("re-extracted", "file_id", fileID, "job_id", res.JobID)
	return structpb.NewStruct(res.Record.Map())
}

// UnaryLogging tags each call with a request id and logs its outcome.
func UnaryLogging(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		reqID := ""
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if v := md.Get("x-request-id"); len(v) > 0 {
				reqID = v[0]
			}
		}
		if reqID == "" {
			reqID = uuid.NewString()
		}
		l := logger.With("request_id", reqID, "method", info.FullMethod)
		ctx = common.WithLogger(common.WithRequestID(ctx, reqID), l)

		start := time.Now()
		resp, err := handler(ctx, req)
		l.Info("grpc call", "code", status.Code(err).String(), "elapsed_ms", time.Since(start).Milliseconds())
		return resp, err
	}
}
