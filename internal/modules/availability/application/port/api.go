package port

import "context"

// SessionAPI is the slice of the upstream client the availability use cases
// depend on. Payloads come back undecoded beyond JSON: the domain extractor
// owns shape classification.
type SessionAPI interface {
	FetchSessions(ctx context.Context, productCode, startTimeLocal, endTimeLocal string) (any, error)
	FetchPickups(ctx context.Context, productCode string) (any, error)
}
