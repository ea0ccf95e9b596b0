package engine

import (
	"sort"
	"time"

	"latentd/pkg/types"
)

// Status builds a detailed status response for /status.
func (e *Engine) Status() types.StatusResponse {
	e.mu.RLock()
	defer e.mu.RUnlock()
	resp := types.StatusResponse{
		DefaultModel:   e.defaultModel,
		Error:          e.err,
		UptimeSeconds:  int64(time.Since(e.startTime).Seconds()),
		ServerTimeUnix: time.Now().Unix(),
		EvalsTotal:     e.evalsTotal,
	}
	resp.Instances = make([]types.InstanceStatus, 0, len(e.instances))
	for _, inst := range e.instances {
		var lastUsed int64
		if !inst.LastUsed.IsZero() {
			lastUsed = inst.LastUsed.Unix()
		}
		resp.Instances = append(resp.Instances, types.InstanceStatus{
			ModelID:       inst.ID,
			LastUsed:      lastUsed,
			QueueLen:      len(inst.queueCh),
			Inflight:      len(inst.genCh),
			MaxQueueDepth: cap(inst.queueCh),
			EvalsTotal:    inst.EvalsTotal,
		})
	}
	sort.Slice(resp.Instances, func(i, j int) bool {
		return resp.Instances[i].ModelID < resp.Instances[j].ModelID
	})
	return resp
}
