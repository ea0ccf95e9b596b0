package engine

import (
	"context"

	"latentd/internal/adapter"
	"latentd/internal/binding"
	"latentd/internal/plan"
)

// countEval updates per-instance and engine-wide counters after a
// completed call.
func (e *Engine) countEval(inst *Instance) {
	e.mu.Lock()
	inst.EvalsTotal++
	e.evalsTotal++
	e.mu.Unlock()
}

// LogProb evaluates log p(xs, zs) on the named model.
func (e *Engine) LogProb(ctx context.Context, id string, xs, zs binding.Binding) (float64, error) {
	inst, err := e.resolve(id)
	if err != nil {
		return 0, err
	}
	release, err := e.beginEval(ctx, inst)
	if err != nil {
		return 0, err
	}
	defer release()
	v, err := inst.Model.LogProb(xs, zs)
	if err != nil {
		return 0, err
	}
	e.countEval(inst)
	return v, nil
}

// LogLik evaluates log p(xs | zs). The cached capability set is checked
// before dispatch; relying on the adapter's own failure would make
// missing-capability errors a control-flow mechanism.
func (e *Engine) LogLik(ctx context.Context, id string, xs, zs binding.Binding) (float64, error) {
	inst, err := e.resolve(id)
	if err != nil {
		return 0, err
	}
	if !inst.Caps.Has(adapter.CapLogLik) {
		return 0, adapter.ErrUnsupportedOperation(adapter.CapLogLik)
	}
	release, err := e.beginEval(ctx, inst)
	if err != nil {
		return 0, err
	}
	defer release()
	v, err := adapter.LogLik(inst.Model, xs, zs)
	if err != nil {
		return 0, err
	}
	e.countEval(inst)
	return v, nil
}

// Predict returns the likelihood means for each data point under zs.
func (e *Engine) Predict(ctx context.Context, id string, xs, zs binding.Binding) (binding.Binding, error) {
	inst, err := e.resolve(id)
	if err != nil {
		return binding.Binding{}, err
	}
	if !inst.Caps.Has(adapter.CapPredict) {
		return binding.Binding{}, adapter.ErrUnsupportedOperation(adapter.CapPredict)
	}
	release, err := e.beginEval(ctx, inst)
	if err != nil {
		return binding.Binding{}, err
	}
	defer release()
	out, err := adapter.Predict(inst.Model, xs, zs)
	if err != nil {
		return binding.Binding{}, err
	}
	e.countEval(inst)
	return out, nil
}

// SamplePrior draws one realization of every latent from the prior.
func (e *Engine) SamplePrior(ctx context.Context, id string) (binding.Binding, error) {
	inst, err := e.resolve(id)
	if err != nil {
		return binding.Binding{}, err
	}
	if !inst.Caps.Has(adapter.CapSamplePrior) {
		return binding.Binding{}, adapter.ErrUnsupportedOperation(adapter.CapSamplePrior)
	}
	release, err := e.beginEval(ctx, inst)
	if err != nil {
		return binding.Binding{}, err
	}
	defer release()
	out, err := adapter.SamplePrior(inst.Model)
	if err != nil {
		return binding.Binding{}, err
	}
	e.countEval(inst)
	return out, nil
}

// SampleLikelihood draws one replicated data set from p(x_new | zs).
func (e *Engine) SampleLikelihood(ctx context.Context, id string, zs binding.Binding) (binding.Binding, error) {
	inst, err := e.resolve(id)
	if err != nil {
		return binding.Binding{}, err
	}
	if !inst.Caps.Has(adapter.CapSampleLikelihood) {
		return binding.Binding{}, adapter.ErrUnsupportedOperation(adapter.CapSampleLikelihood)
	}
	release, err := e.beginEval(ctx, inst)
	if err != nil {
		return binding.Binding{}, err
	}
	defer release()
	out, err := adapter.SampleLikelihood(inst.Model, zs)
	if err != nil {
		return binding.Binding{}, err
	}
	e.countEval(inst)
	return out, nil
}

// ValidatePlan applies the configuration-time dispatch restrictions for
// running p against the named model. No admission is needed: validation
// never touches the adapter's data path.
func (e *Engine) ValidatePlan(id string, p plan.Plan) error {
	inst, err := e.resolve(id)
	if err != nil {
		return err
	}
	return plan.Validate(p, inst.Model)
}
