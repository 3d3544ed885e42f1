package investigator

import "github.com/mabhi256/jprobe/internal/meta"

// BestEffort wraps an Investigator for callers that prefer degraded results
// over errors: failures become zero values and are logged at debug level.
type BestEffort struct {
	inv *Investigator
}

func (inv *Investigator) BestEffort() BestEffort {
	return BestEffort{inv: inv}
}

// InvokeInt returns 0 when the call fails.
func (b BestEffort) InvokeInt(name string, args ...meta.Value) int {
	n, err := b.inv.InvokeInt(name, args...)
	if err != nil {
		b.inv.logger.Debug("degraded to zero", "err", err)
		return 0
	}
	return n
}

// CreateInstance returns nil when construction fails.
func (b BestEffort) CreateInstance(argc int, args ...meta.Value) *meta.Object {
	obj, err := b.inv.CreateInstance(argc, args...)
	if err != nil {
		b.inv.logger.Debug("degraded to nil", "err", err)
		return nil
	}
	return obj
}

// ElevateAndInvoke returns nil when the call fails.
func (b BestEffort) ElevateAndInvoke(name string, params []*meta.Class, args ...meta.Value) meta.Value {
	v, err := b.inv.ElevateAndInvoke(name, params, args...)
	if err != nil {
		b.inv.logger.Debug("degraded to nil", "err", err)
		return nil
	}
	return v
}
