package ports

import "context"

// ClipLengthener extends an arrangement clip beyond its current length:
// looping clips extend by loop repetition, non-looping clips expose
// additional underlying content up to what is available. The engine
// only decides when to invoke it, never how lengthening is performed.
type ClipLengthener interface {
	Lengthen(ctx context.Context, clipID string, length float64) error
}

// ClipLengthenerFunc adapts a function to the ClipLengthener interface.
type ClipLengthenerFunc func(ctx context.Context, clipID string, length float64) error

func (f ClipLengthenerFunc) Lengthen(ctx context.Context, clipID string, length float64) error {
	return f(ctx, clipID, length)
}
