package requests

// Payload is a validated request body that maps onto a resource model.
type Payload[T any] interface {
	ToModel() T
}
