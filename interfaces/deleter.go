package interfaces

import "context"

// Deleter issues an HTTP DELETE.
//
// Implemented by adapters/httpdelete. Called from service.Broadcaster for every router.
//
//go:generate moq -stub -out mock/deleter.go -pkg mock . Deleter
type Deleter interface {
	// Delete sends DELETE to url and returns an error on transport failure or a non-2xx answer.
	Delete(ctx context.Context, url string) error
}
