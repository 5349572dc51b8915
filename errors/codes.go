package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Registration errors
const (
	// ErrCodeDuplicateRegistration indicates a service or module key is already registered.
	ErrCodeDuplicateRegistration ErrorCode = "DUPLICATE_REGISTRATION"
	// ErrCodeInvalidRegistration indicates a registration request that can never be served.
	ErrCodeInvalidRegistration ErrorCode = "INVALID_REGISTRATION"
	// ErrCodeInvalidProducer indicates a producer of an unsupported shape.
	ErrCodeInvalidProducer ErrorCode = "INVALID_PRODUCER"
)

// Resolution errors
const (
	// ErrCodeInvalidArgs indicates producer arguments that do not fit the producer.
	ErrCodeInvalidArgs ErrorCode = "INVALID_ARGS"
	// ErrCodeProducerFailed indicates the producer returned an error or panicked.
	ErrCodeProducerFailed ErrorCode = "PRODUCER_FAILED"
	// ErrCodeServiceNotFound indicates nothing is registered for the requested key.
	ErrCodeServiceNotFound ErrorCode = "SERVICE_NOT_FOUND"
	// ErrCodeDependencyCycle indicates a producer that depends on its own service.
	ErrCodeDependencyCycle ErrorCode = "DEPENDENCY_CYCLE"
)

// Configuration errors
const (
	// ErrCodeInvalidConfig indicates configuration that failed validation.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
)
