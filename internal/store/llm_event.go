package store

import (
	"context"
	"sort"
	"time"
)

// maxLLMEvents caps the request log; the oldest events are dropped first.
const maxLLMEvents = 500

// eventRepo implements EventRepo over the llm events bucket. IDs are
// max+1; trimming drops the oldest events, so IDs stay monotonic.
type eventRepo struct {
	c collection[LLMEvent]
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	return r.c.update(ctx, func(events []LLMEvent) ([]LLMEvent, error) {
		next := 1
		for _, e := range events {
			if e.ID >= next {
				next = e.ID + 1
			}
		}
		events = append(events, LLMEvent{
			ID:           next,
			Timestamp:    time.Now().UTC(),
			Provider:     data.Provider,
			Model:        data.Model,
			Purpose:      data.Purpose,
			InputTokens:  data.InputTokens,
			OutputTokens: data.OutputTokens,
			LatencyMs:    data.LatencyMs,
			Success:      data.Success,
			ErrorMessage: data.ErrorMessage,
			RequestBody:  data.RequestBody,
			ResponseBody: data.ResponseBody,
		})
		if len(events) > maxLLMEvents {
			events = events[len(events)-maxLLMEvents:]
		}
		return events, nil
	})
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error) {
	events, err := r.c.filter(ctx, func(e *LLMEvent) bool {
		if opts.Purpose != "" && e.Purpose != opts.Purpose {
			return false
		}
		if !opts.From.IsZero() && e.Timestamp.Before(opts.From) {
			return false
		}
		if !opts.To.IsZero() && e.Timestamp.After(opts.To) {
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(events, func(i, j int) bool { return events[i].ID > events[j].ID })
	if opts.Limit > 0 && len(events) > opts.Limit {
		events = events[:opts.Limit]
	}
	return events, nil
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error) {
	return r.c.first(ctx, func(e *LLMEvent) bool { return e.ID == id })
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error) {
	return r.usage(ctx, func(e *LLMEvent) LLMUsage { return LLMUsage{Purpose: e.Purpose} })
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]LLMUsage, error) {
	return r.usage(ctx, func(e *LLMEvent) LLMUsage { return LLMUsage{Model: e.Model} })
}

func (r *eventRepo) usage(ctx context.Context, group func(*LLMEvent) LLMUsage) ([]LLMUsage, error) {
	events, err := r.c.all(ctx)
	if err != nil {
		return nil, err
	}

	type acc struct {
		LLMUsage
		latency int64
	}
	byKey := map[LLMUsage]*acc{}
	var order []LLMUsage
	for i := range events {
		e := &events[i]
		k := group(e)
		a, ok := byKey[k]
		if !ok {
			a = &acc{LLMUsage: k}
			byKey[k] = a
			order = append(order, k)
		}
		a.Calls++
		a.InputTokens += e.InputTokens
		a.OutputTokens += e.OutputTokens
		a.latency += e.LatencyMs
	}

	out := make([]LLMUsage, 0, len(order))
	for _, k := range order {
		a := byKey[k]
		u := a.LLMUsage
		u.AvgLatencyMs = a.latency / int64(a.Calls)
		out = append(out, u)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Calls > out[j].Calls })
	return out, nil
}
