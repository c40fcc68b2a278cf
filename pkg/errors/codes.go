package errors

// Error codes shared by the HTTP and gRPC surfaces
const (
	ErrInternal                 = "INTERNAL"
	ErrNotFound                 = "NOT_FOUND"
	ErrInvalidArgument          = "INVALID_ARGUMENT"
	ErrUnauthenticated          = "UNAUTHENTICATED"
	ErrUnauthorized             = "UNAUTHORIZED"
	ErrConflict                 = "CONFLICT"
	ErrTimeout                  = "TIMEOUT"
	ErrNotImplemented           = "NOT_IMPLEMENTED"
	ErrInvalidSubscriptionState = "INVALID_SUBSCRIPTION_STATE"
)
