package uml

import "reflect"

// MemberFilter decides whether a member is shown, given the visibility
// and declared-here-only policy of an [Options] value.
type MemberFilter struct {
	opts Options
}

// NewMemberFilter creates a filter for the given options.
func NewMemberFilter(opts Options) *MemberFilter {
	return &MemberFilter{opts: opts}
}

// Displayable reports whether a member with the given visibility is
// shown. Public members always are; protected and private ones only
// when the corresponding option is set.
func (f *MemberFilter) Displayable(v Visibility) bool {
	switch v {
	case VisibilityProtected:
		return f.opts.ShowProtected
	case VisibilityPrivate:
		return f.opts.ShowPrivate
	default:
		return true
	}
}

// OwnMember reports whether a member declared by declaredBy should be
// shown on the type current. Without the onlySelf option every member
// passes; with it, members declared by an ancestor are suppressed. An
// empty declaredBy (bare callables carry no declaring type) always
// passes.
func (f *MemberFilter) OwnMember(declaredBy, current string) bool {
	if !f.opts.OnlySelf || declaredBy == "" {
		return true
	}
	return declaredBy == current
}

// OwnConstant reports whether the constant name=value should be shown on
// a type whose parent is given (nil for root types).
//
// Constants carry no declaring-type information, so under onlySelf
// ownership is approximated by value equality: the constant is treated
// as inherited only when the parent defines a constant of the same name
// with an identical value. A subclass that redefines a constant to the
// same value is therefore treated as not overriding it.
func (f *MemberFilter) OwnConstant(name string, value any, parent *TypeDescriptor) bool {
	if !f.opts.OnlySelf || parent == nil {
		return true
	}
	pv, ok := parent.Constants[name]
	if !ok {
		return true
	}
	return !reflect.DeepEqual(pv, value)
}
