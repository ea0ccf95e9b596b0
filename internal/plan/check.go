package plan

import (
	"latentd/internal/adapter"
	"latentd/internal/binding"
)

// CheckFunc computes a scalar statistic over a data binding, optionally
// conditioned on the latent realization that produced the replicate. The
// latent binding is always passed, even to statistics that ignore it; the
// uniformity keeps check procedures interchangeable across adapter
// variants.
type CheckFunc func(data, latents binding.Binding) (float64, error)

// CheckResult pairs the statistic on the observed data with the same
// statistic on one replicate drawn from p(x_new | zs).
type CheckResult struct {
	Observed  float64
	Replicate float64
}

// PredictiveCheck draws one replicated data set from the adapter's
// likelihood under latents and evaluates stat on both the observed data
// and the replicate. The latent binding is mandatory: a zero binding fails
// with MissingLatentBinding before the adapter is touched.
func PredictiveCheck(m adapter.Model, observed, latents binding.Binding, stat CheckFunc) (CheckResult, error) {
	if latents.IsZero() {
		return CheckResult{}, ErrMissingLatentBinding()
	}
	replicate, err := adapter.SampleLikelihood(m, latents)
	if err != nil {
		return CheckResult{}, err
	}
	obs, err := stat(observed, latents)
	if err != nil {
		return CheckResult{}, err
	}
	rep, err := stat(replicate, latents)
	if err != nil {
		return CheckResult{}, err
	}
	return CheckResult{Observed: obs, Replicate: rep}, nil
}
