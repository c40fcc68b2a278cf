package logger

import (
	"context"
	"path"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// transient codes are logged at warn level, the rest of the failures at error
var transientCodes = map[codes.Code]bool{
	codes.Canceled:          true,
	codes.DeadlineExceeded:  true,
	codes.ResourceExhausted: true,
	codes.Aborted:           true,
	codes.Unavailable:       true,
}

func splitMethod(fullMethod string) (string, string) {
	return path.Dir(fullMethod)[1:], path.Base(fullMethod)
}

func codeOf(err error) codes.Code {
	if err == nil {
		return codes.OK
	}
	if st, ok := status.FromError(err); ok {
		return st.Code()
	}
	return codes.Unknown
}

func logCall(logger *zap.Logger, msg string, code codes.Code, err error, fields ...zap.Field) {
	fields = append(fields, zap.String("grpc.code", code.String()))
	switch {
	case code == codes.OK:
		logger.Info(msg+" completed", fields...)
	case transientCodes[code]:
		logger.Warn(msg+" failed", append(fields, zap.Error(err))...)
	default:
		logger.Error(msg+" errored", append(fields, zap.Error(err))...)
	}
}

// NewGrpcUnaryServerInterceptor logs every unary call with its status and duration
func NewGrpcUnaryServerInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		service, method := splitMethod(info.FullMethod)

		resp, err := handler(ctx, req)

		logCall(logger, "gRPC request", codeOf(err), err,
			zap.String("grpc.service", service),
			zap.String("grpc.method", method),
			zap.Duration("grpc.duration", time.Since(start)))
		return resp, err
	}
}

// NewGrpcStreamServerInterceptor logs every stream with message counts
func NewGrpcStreamServerInterceptor(logger *zap.Logger) grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		start := time.Now()
		service, method := splitMethod(info.FullMethod)

		wrapped := &countingServerStream{ServerStream: ss}
		err := handler(srv, wrapped)

		logCall(logger, "gRPC stream", codeOf(err), err,
			zap.String("grpc.service", service),
			zap.String("grpc.method", method),
			zap.Int("grpc.recv_count", wrapped.recvCount),
			zap.Int("grpc.send_count", wrapped.sendCount),
			zap.Duration("grpc.duration", time.Since(start)))
		return err
	}
}

type countingServerStream struct {
	grpc.ServerStream
	recvCount int
	sendCount int
}

func (w *countingServerStream) RecvMsg(m interface{}) error {
	err := w.ServerStream.RecvMsg(m)
	if err == nil {
		w.recvCount++
	}
	return err
}

func (w *countingServerStream) SendMsg(m interface{}) error {
	err := w.ServerStream.SendMsg(m)
	if err == nil {
		w.sendCount++
	}
	return err
}
