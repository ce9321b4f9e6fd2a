package nbt

import (
	"errors"
	"fmt"
	"strings"
)

var ErrMixedList = errors.New("nbt: list elements must share one kind")

// List is an ordered sequence of tags of a single kind. An empty list has
// element kind KindEnd.
type List struct {
	elem  Kind
	elems []Tag
}

// NewList builds a list from elems, which must all be of the same kind.
func NewList(elems ...Tag) (*List, error) {
	l := &List{}
	for _, e := range elems {
		if err := l.Append(e); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func (*List) Kind() Kind { return KindList }
func (*List) tag()       {}

// ElemKind is the kind shared by all elements.
func (l *List) ElemKind() Kind {
	if l == nil {
		return KindEnd
	}
	return l.elem
}

func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.elems)
}

func (l *List) At(i int) Tag { return l.elems[i] }

func (l *List) Append(v Tag) error {
	if len(l.elems) == 0 {
		l.elem = v.Kind()
	} else if v.Kind() != l.elem {
		return fmt.Errorf("%w: appending %s to list of %s", ErrMixedList, v.Kind(), l.elem)
	}
	l.elems = append(l.elems, v)
	return nil
}

func (l *List) Copy() Tag {
	out := &List{elem: l.ElemKind(), elems: make([]Tag, 0, l.Len())}
	for i := 0; i < l.Len(); i++ {
		out.elems = append(out.elems, l.elems[i].Copy())
	}
	return out
}

func (l *List) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i := 0; i < l.Len(); i++ {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(l.elems[i].String())
	}
	sb.WriteByte(']')
	return sb.String()
}
