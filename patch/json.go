package patch

import (
	"fmt"

	"github.com/signadot/go-mutate/ir"
)

// ToNode returns the wire form of p as a record
//
//	{p: string, action: int, v?: value, next?: [...]}
func (p *Patch) ToNode() *ir.Node {
	kvs := []ir.KeyVal{
		{Key: "p", Val: ir.FromString(p.P)},
		{Key: "action", Val: ir.FromInt(int64(p.Action))},
	}
	if p.V != nil {
		kvs = append(kvs, ir.KeyVal{Key: "v", Val: p.V})
	}
	if p.Next != nil {
		kvs = append(kvs, ir.KeyVal{Key: "next", Val: ListToNode(p.Next)})
	}
	return ir.FromKeyVals(kvs)
}

func ListToNode(ps []*Patch) *ir.Node {
	vs := make([]*ir.Node, len(ps))
	for i, p := range ps {
		vs[i] = p.ToNode()
	}
	return ir.FromSlice(vs)
}

// FromNode decodes the wire form of a patch.  A present null v is kept
// distinct from an absent one, and so is an empty next.  The result is not
// validated.
func FromNode(n *ir.Node) (*Patch, error) {
	if n.Type != ir.RecordType {
		return nil, fmt.Errorf("%w: expected record, got %s", ErrMalformedPatch, n.Type)
	}
	res := &Patch{}
	hasP, hasAction := false, false
	for i, k := range n.Keys {
		v := n.Values[i]
		switch k {
		case "p":
			if v.Type != ir.StringType {
				return nil, fmt.Errorf("%w: p must be a string, got %s", ErrMalformedPatch, v.Type)
			}
			res.P, hasP = v.String, true
		case "action":
			a, err := actionFromNode(v)
			if err != nil {
				return nil, err
			}
			res.Action, hasAction = a, true
		case "v":
			res.V = v
		case "next":
			next, err := ListFromNode(v)
			if err != nil {
				return nil, err
			}
			res.Next = next
		default:
			return nil, fmt.Errorf("%w: unknown field %q", ErrMalformedPatch, k)
		}
	}
	if !hasP || !hasAction {
		return nil, fmt.Errorf("%w: p and action are required", ErrMalformedPatch)
	}
	return res, nil
}

func ListFromNode(n *ir.Node) ([]*Patch, error) {
	if n.Type != ir.SequenceType {
		return nil, fmt.Errorf("%w: expected list of patches, got %s", ErrMalformedPatch, n.Type)
	}
	res := make([]*Patch, len(n.Values))
	for i, v := range n.Values {
		p, err := FromNode(v)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		res[i] = p
	}
	return res, nil
}

func actionFromNode(v *ir.Node) (Action, error) {
	switch v.Type {
	case ir.NumberType:
		i, ok := v.Int()
		if !ok {
			return 0, fmt.Errorf("%w: action must be an integer", ErrMalformedPatch)
		}
		return Action(i), nil
	case ir.StringType:
		return ParseAction(v.String)
	}
	return 0, fmt.Errorf("%w: action must be a number or name, got %s", ErrMalformedPatch, v.Type)
}

func (p *Patch) MarshalJSON() ([]byte, error) {
	return p.ToNode().MarshalJSON()
}

func (p *Patch) UnmarshalJSON(d []byte) error {
	n, err := ir.ParseJSON(d)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedPatch, err)
	}
	res, err := FromNode(n)
	if err != nil {
		return err
	}
	*p = *res
	return nil
}

// ParseJSON decodes a JSON list of patches.
func ParseJSON(d []byte) ([]*Patch, error) {
	n, err := ir.ParseJSON(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPatch, err)
	}
	return ListFromNode(n)
}
