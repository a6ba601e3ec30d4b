package document

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Prepare classifies every document and extracts text from the
// text-extractable ones, using up to workers goroutines. Results keep the
// input order.
func Prepare(docs []Input, workers int) []Prepared {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	prepared := make([]Prepared, len(docs))
	var group errgroup.Group
	group.SetLimit(workers)
	for i, doc := range docs {
		group.Go(func() error {
			prepared[i] = prepareOne(doc)
			return nil
		})
	}
	_ = group.Wait()
	return prepared
}

func prepareOne(doc Input) Prepared {
	class, mediaType := Classify(doc)
	doc.Role = doc.EffectiveRole()
	out := Prepared{Input: doc, Class: class, MediaType: mediaType}
	if class != ClassTextExtract {
		return out
	}
	text, err := Extract(doc, mediaType)
	if err != nil {
		out.Failure = err.Error()
		return out
	}
	out.Text = text
	out.Extracted = true
	return out
}

// Summary counts prepared documents by outcome.
type Summary struct {
	Submitted   int
	Attached    int
	Extracted   int
	Failed      []string
	Unsupported []string
}

// Summarize tallies prepared documents for narratives and telemetry.
func Summarize(prepared []Prepared) Summary {
	summary := Summary{Submitted: len(prepared)}
	for _, p := range prepared {
		switch {
		case p.Class == ClassDirectAttach:
			summary.Attached++
		case p.Class == ClassTextExtract && p.Extracted:
			summary.Extracted++
		case p.Class == ClassTextExtract:
			summary.Failed = append(summary.Failed, p.Input.FileName)
		default:
			summary.Unsupported = append(summary.Unsupported, p.Input.FileName)
		}
	}
	return summary
}

// Usable reports the number of documents the generator can consume.
func (s Summary) Usable() int {
	return s.Attached + s.Extracted
}
