package grpcapi

import (
	"context"

	"flagviewer/internal/metrics"
	"flagviewer/internal/viewer"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "flagviewer.FileViewer"

// ViewMethod is the full method path for View.
const ViewMethod = "/" + ServiceName + "/View"

// ViewRequest mirrors the file query parameter of GET /view.
type ViewRequest struct {
	File string `json:"file"`
}

// ViewResponse carries the decision and the exact HTTP body.
type ViewResponse struct {
	Outcome string `json:"outcome"`
	Body    string `json:"body"`
}

// FileViewerServer describes the View RPC.
type FileViewerServer interface {
	View(context.Context, *ViewRequest) (*ViewResponse, error)
}

type viewService struct {
	viewer  *viewer.Viewer
	metrics *metrics.Metrics
}

// NewViewService returns the View implementation backed by v.
func NewViewService(v *viewer.Viewer, m *metrics.Metrics) FileViewerServer {
	return viewService{viewer: v, metrics: m}
}

func (s viewService) View(ctx context.Context, req *ViewRequest) (*ViewResponse, error) {
	res := s.viewer.View(req.File)
	s.metrics.ObserveDecision(res.Kind.String(), res.Source)
	return &ViewResponse{Outcome: res.Kind.String(), Body: res.Response()}, nil
}

// RegisterFileViewer registers srv on a gRPC server.
func RegisterFileViewer(s *grpc.Server, srv FileViewerServer) {
	s.RegisterService(&grpc.ServiceDesc{
		ServiceName: ServiceName,
		HandlerType: (*FileViewerServer)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "View",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := new(ViewRequest)
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return srv.(FileViewerServer).View(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ViewMethod}
					handler := func(ctx context.Context, req any) (any, error) {
						return srv.(FileViewerServer).View(ctx, req.(*ViewRequest))
					}
					return interceptor(ctx, in, info, handler)
				},
			},
		},
		Metadata: "flagviewer/file_viewer",
	}, srv)
}
