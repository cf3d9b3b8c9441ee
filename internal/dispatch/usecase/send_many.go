package usecase

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"escalation-srv/internal/channel"
	"escalation-srv/internal/dispatch"
)

func (uc *implUseCase) SendToMany(ctx context.Context, webhookConfigIDs []string, note channel.Notification) dispatch.BatchOutput {
	if len(webhookConfigIDs) == 0 {
		return dispatch.BatchOutput{}
	}

	// errSlots keeps one slot per target so the reported errors stay in
	// input order regardless of completion order.
	errSlots := make([]string, len(webhookConfigIDs))
	results := make([]bool, len(webhookConfigIDs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.fanout)
	for i, id := range webhookConfigIDs {
		g.Go(func() error {
			out, err := uc.Send(gctx, id, note)
			switch {
			case err != nil:
				errSlots[i] = fmt.Sprintf("%s: %v", id, err)
			case !out.Success:
				errSlots[i] = fmt.Sprintf("%s: delivery failed", id)
			default:
				results[i] = true
			}
			return nil
		})
	}
	_ = g.Wait()

	out := dispatch.BatchOutput{}
	for i := range webhookConfigIDs {
		if results[i] {
			out.Sent++
			continue
		}
		out.Failed++
		out.Errors = append(out.Errors, errSlots[i])
	}

	uc.l.Infof(ctx, "internal.dispatch.usecase.SendToMany: sent=%d failed=%d", out.Sent, out.Failed)
	return out
}
