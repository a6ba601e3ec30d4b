package generator

import (
	"context"
	"fmt"
	"os"
)

// Replay returns a recorded response from disk. It is used for offline runs
// and for reproducing a previous analysis.
type Replay struct {
	Path string
}

// Generate reads the recorded response. The request is ignored.
func (r Replay) Generate(ctx context.Context, _ Request) (Response, error) {
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}
	data, err := os.ReadFile(r.Path)
	if err != nil {
		return Response{}, fmt.Errorf("read replay file: %w", err)
	}
	return Response{Text: string(data), Model: "replay"}, nil
}
