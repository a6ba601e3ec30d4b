package generator

import "context"

// Static returns a fixed response or error. It honours cancellation.
type Static struct {
	Text  string
	Usage Usage
	Err   error
}

// Generate returns the configured response.
func (s Static) Generate(ctx context.Context, _ Request) (Response, error) {
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}
	if s.Err != nil {
		return Response{}, s.Err
	}
	return Response{Text: s.Text, Model: "static", Usage: s.Usage}, nil
}
