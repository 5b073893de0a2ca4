package chart

import "sort"

// Attachment records which chart currently occupies a canvas
type Attachment struct {
	CanvasID   string `json:"canvasId"`
	Type       string `json:"type"`
	Generation uint64 `json:"generation"`
}

// Registry tracks at most one chart per canvas. It is plain data so a session
// store can persist it between requests.
type Registry struct {
	Generation uint64                `json:"generation"`
	Attached   map[string]Attachment `json:"attached"`
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry {
	return &Registry{Attached: make(map[string]Attachment)}
}

// Replace releases whatever chart is attached to cfg's canvas, then attaches cfg
// under a fresh generation. The released attachment is returned when there was one.
func (r *Registry) Replace(cfg *Config) (Attachment, bool) {
	if r.Attached == nil {
		r.Attached = make(map[string]Attachment)
	}

	prev, had := r.Attached[cfg.CanvasID]
	if had {
		delete(r.Attached, cfg.CanvasID)
	}

	r.Generation++
	cfg.Generation = r.Generation
	r.Attached[cfg.CanvasID] = Attachment{
		CanvasID:   cfg.CanvasID,
		Type:       cfg.Type,
		Generation: r.Generation,
	}
	return prev, had
}

// Release detaches the chart on canvasID, if any
func (r *Registry) Release(canvasID string) (Attachment, bool) {
	prev, ok := r.Attached[canvasID]
	if ok {
		delete(r.Attached, canvasID)
	}
	return prev, ok
}

// ReplaceAll attaches a whole result set. Every canvas that held a chart before
// and is neither part of the new set nor listed in retain is released too, since
// its container was replaced. It returns the sorted ids of every released canvas.
func (r *Registry) ReplaceAll(configs []*Config, retain ...string) []string {
	keep := make(map[string]struct{}, len(configs)+len(retain))
	for _, id := range retain {
		keep[id] = struct{}{}
	}
	released := make([]string, 0)

	for _, cfg := range configs {
		keep[cfg.CanvasID] = struct{}{}
		if prev, ok := r.Replace(cfg); ok {
			released = append(released, prev.CanvasID)
		}
	}

	for id := range r.Attached {
		if _, ok := keep[id]; !ok {
			delete(r.Attached, id)
			released = append(released, id)
		}
	}

	sort.Strings(released)
	return released
}

// Len returns the number of attached charts
func (r *Registry) Len() int {
	return len(r.Attached)
}
