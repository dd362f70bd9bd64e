package analysis

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ModelReport labels one model's narrative report in a comparison run.
type ModelReport struct {
	Model  string `json:"model"`
	Report string `json:"report"`
}

// Compare runs the report prompt against every configured model over the
// same evidence, concurrently, and joins the labeled results in the
// configured order.
func (p *Pipeline) Compare(ctx context.Context, packageName string) ([]ModelReport, error) {
	if len(p.models) == 0 {
		return nil, fmt.Errorf("analysis: no comparison models configured")
	}
	ev, err := p.aur.Collect(ctx, packageName)
	if err != nil {
		return nil, err
	}

	out := make([]ModelReport, len(p.models))
	g, gctx := errgroup.WithContext(ctx)
	for i, ref := range p.models {
		g.Go(func() error {
			client, err := p.factory(gctx, ref.Model)
			if err != nil {
				return fmt.Errorf("model %s: %w", ref.Name, err)
			}
			defer client.Close()
			report, err := GenerateReport(gctx, client, ev)
			if err != nil {
				return fmt.Errorf("model %s: %w", ref.Name, err)
			}
			out[i] = ModelReport{Model: ref.Name, Report: report}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
