package investigator

import (
	"errors"
	"fmt"
)

// Failure kinds. Every MemberError carries exactly one of them.
var (
	ErrNotLoaded    = errors.New("no target loaded")
	ErrNoSuchMember = errors.New("no such member")
	ErrInaccessible = errors.New("member not accessible")
	ErrInvocation   = errors.New("invocation failed")
)

var (
	ErrNotIntegral      = errors.New("result is not integral")
	ErrArgumentMismatch = errors.New("argument mismatch")
)

// MemberError reports why a member could not be resolved or invoked.
// errors.Is matches both Kind and the underlying cause.
type MemberError struct {
	Op     string // invoke, create or elevate
	Member string
	Kind   error
	Err    error
}

func (e *MemberError) Error() string {
	msg := fmt.Sprintf("%s %s: %v", e.Op, e.Member, e.Kind)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MemberError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func (inv *Investigator) fail(op, member string, kind, cause error) *MemberError {
	err := &MemberError{Op: op, Member: member, Kind: kind, Err: cause}
	inv.logger.Debug("member call failed", "op", op, "member", member, "err", err)
	return err
}
