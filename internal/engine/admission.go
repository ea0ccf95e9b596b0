package engine

import (
	"context"
	"time"
)

// beginEval reserves a queue slot and then the single in-flight slot for
// inst. Returns a release func to be deferred. Adapter instances are not
// reentrant by contract, so evaluation is strictly serialized per instance.
func (e *Engine) beginEval(ctx context.Context, inst *Instance) (func(), error) {
	// Try to reserve a queue slot with timeout.
	select {
	case inst.queueCh <- struct{}{}:
		// reserved queue slot
	case <-ctx.Done():
		return func() {}, ctx.Err()
	case <-time.After(e.maxWait):
		return func() {}, tooBusyError{modelID: inst.ID}
	}

	// Wait to acquire the single in-flight slot.
	acquired := false
	defer func() {
		if !acquired {
			<-inst.queueCh
		}
	}()
	select {
	case inst.genCh <- struct{}{}:
		acquired = true
		e.mu.Lock()
		inst.LastUsed = time.Now()
		e.mu.Unlock()
		return func() { <-inst.genCh; <-inst.queueCh }, nil
	case <-ctx.Done():
		return func() {}, ctx.Err()
	case <-time.After(e.maxWait):
		return func() {}, tooBusyError{modelID: inst.ID}
	}
}
