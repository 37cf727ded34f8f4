package mir

import "github.com/sunholo/corehir/internal/typeid"

// FreeVariables returns the set of variable names referenced in e that are
// not bound within e itself, in the traversal shape of original_source's
// analysis/lambda_lifting/escape.rs (every binding form removes its own
// names from the recursive result rather than special-casing shadowing
// after the fact).
func FreeVariables(e Expression) map[string]bool {
	out := map[string]bool{}
	collectFree(e, out)
	return out
}

func collectFree(e Expression, out map[string]bool) {
	switch v := e.(type) {
	case *BooleanLiteral, *NoneLiteral, *NumberLiteral, *ByteStringLiteral:
	case *Variable:
		out[v.Name] = true
	case *ArithmeticOperation:
		collectFree(v.Lhs, out)
		collectFree(v.Rhs, out)
	case *ComparisonOperation:
		collectFree(v.Lhs, out)
		collectFree(v.Rhs, out)
	case *Call:
		collectFree(v.Function, out)
		for _, a := range v.Args {
			collectFree(a, out)
		}
	case *If:
		collectFree(v.Cond, out)
		collectFree(v.Then, out)
		collectFree(v.Else, out)
	case *Let:
		collectFree(v.Bound, out)
		sub := map[string]bool{}
		collectFree(v.Body, sub)
		delete(sub, v.Name)
		for n := range sub {
			out[n] = true
		}
	case *LetRecursive:
		sub := map[string]bool{}
		for _, a := range v.Definition.Environment {
			sub[a.Name] = true
		}
		bodyFree := map[string]bool{}
		collectFree(v.Definition.Body, bodyFree)
		for _, a := range v.Definition.Arguments {
			delete(bodyFree, a.Name)
		}
		delete(bodyFree, v.Definition.Name)
		for n := range bodyFree {
			sub[n] = true
		}
		outerFree := map[string]bool{}
		collectFree(v.Body, outerFree)
		delete(outerFree, v.Definition.Name)
		for n := range sub {
			out[n] = true
		}
		for n := range outerFree {
			out[n] = true
		}
	case *Case:
		collectFree(v.Argument, out)
		for _, alt := range v.Alternatives {
			sub := map[string]bool{}
			collectFree(alt.Body, sub)
			delete(sub, alt.Name)
			for n := range sub {
				out[n] = true
			}
		}
		if v.Default != nil {
			sub := map[string]bool{}
			collectFree(v.Default.Body, sub)
			delete(sub, v.Default.Name)
			for n := range sub {
				out[n] = true
			}
		}
	case *Variant:
		collectFree(v.Payload, out)
	case *Record:
		for _, f := range v.Fields {
			collectFree(f, out)
		}
	case *RecordField:
		collectFree(v.Record, out)
	case *RecordUpdate:
		collectFree(v.Record, out)
		for _, f := range v.Fields {
			collectFree(f.Expression, out)
		}
	case *TryOperation:
		collectFree(v.Operand, out)
		sub := map[string]bool{}
		collectFree(v.Then, sub)
		delete(sub, v.Name)
		for n := range sub {
			out[n] = true
		}
	case *CloneVariables:
		collectFree(v.Expr, out)
	case *DropVariables:
		collectFree(v.Expr, out)
	case *Synchronize:
		collectFree(v.Expr, out)
	}
}

// SortedNames returns the keys of a name set in ascending order, so
// environment/argument lists are built deterministically (spec §5).
func SortedNames(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	typeid.SortStrings(out)
	return out
}
