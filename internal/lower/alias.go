package lower

import "github.com/sunholo/corehir/internal/mir"

// removeAliasesAll runs alias removal (below) over every top-level
// function body, matching original_source's analysis/normalization/
// alias_removal.rs post-pass.
func removeAliasesAll(defs []*mir.FunctionDefinition) []*mir.FunctionDefinition {
	out := make([]*mir.FunctionDefinition, len(defs))
	for i, d := range defs {
		nd := *d
		nd.Body = removeAliases(d.Body, nil)
		out[i] = &nd
	}
	return out
}

// removeAliases substitutes `let x = y in body` (y a bare Variable) with
// body[x := y], eliminating the binding entirely — spec §4.8: "Let desugars
// to MIR Let or to direct substitution when the bound expression is a
// variable (handled by alias removal post-pass)".
func removeAliases(e mir.Expression, subst map[string]string) mir.Expression {
	if e == nil {
		return nil
	}
	switch n := e.(type) {
	case *mir.Variable:
		if r, ok := subst[n.Name]; ok {
			return &mir.Variable{Base: n.Base, Name: r}
		}
		return n

	case *mir.Let:
		bound := removeAliases(n.Bound, subst)
		if v, ok := bound.(*mir.Variable); ok {
			inner := extend(subst, n.Name, v.Name)
			return removeAliases(n.Body, inner)
		}
		nn := *n
		nn.Bound = bound
		nn.Body = removeAliases(n.Body, subst)
		return &nn

	case *mir.LetRecursive:
		nn := *n
		def := *n.Definition
		def.Body = removeAliases(n.Definition.Body, subst)
		nn.Definition = &def
		nn.Body = removeAliases(n.Body, subst)
		return &nn

	case *mir.If:
		nn := *n
		nn.Cond = removeAliases(n.Cond, subst)
		nn.Then = removeAliases(n.Then, subst)
		nn.Else = removeAliases(n.Else, subst)
		return &nn

	case *mir.Case:
		nn := *n
		nn.Argument = removeAliases(n.Argument, subst)
		alts := make([]mir.Alternative, len(n.Alternatives))
		for i, a := range n.Alternatives {
			alts[i] = mir.Alternative{Types: a.Types, Name: a.Name, Body: removeAliases(a.Body, subst)}
		}
		nn.Alternatives = alts
		if n.Default != nil {
			nn.Default = &mir.DefaultAlternative{Name: n.Default.Name, Body: removeAliases(n.Default.Body, subst)}
		}
		return &nn

	case *mir.Call:
		nn := *n
		nn.Function = removeAliases(n.Function, subst)
		args := make([]mir.Expression, len(n.Args))
		for i, a := range n.Args {
			args[i] = removeAliases(a, subst)
		}
		nn.Args = args
		return &nn

	case *mir.ArithmeticOperation:
		nn := *n
		nn.Lhs, nn.Rhs = removeAliases(n.Lhs, subst), removeAliases(n.Rhs, subst)
		return &nn

	case *mir.ComparisonOperation:
		nn := *n
		nn.Lhs, nn.Rhs = removeAliases(n.Lhs, subst), removeAliases(n.Rhs, subst)
		return &nn

	case *mir.Variant:
		nn := *n
		nn.Payload = removeAliases(n.Payload, subst)
		return &nn

	case *mir.Record:
		nn := *n
		fields := make([]mir.Expression, len(n.Fields))
		for i, f := range n.Fields {
			fields[i] = removeAliases(f, subst)
		}
		nn.Fields = fields
		return &nn

	case *mir.RecordField:
		nn := *n
		nn.Record = removeAliases(n.Record, subst)
		return &nn

	case *mir.RecordUpdate:
		nn := *n
		nn.Record = removeAliases(n.Record, subst)
		fields := make([]mir.RecordUpdateField, len(n.Fields))
		for i, f := range n.Fields {
			fields[i] = mir.RecordUpdateField{Index: f.Index, Expression: removeAliases(f.Expression, subst)}
		}
		nn.Fields = fields
		return &nn

	case *mir.TryOperation:
		nn := *n
		nn.Operand = removeAliases(n.Operand, subst)
		nn.Then = removeAliases(n.Then, subst)
		return &nn

	case *mir.CloneVariables:
		nn := *n
		nn.Expr = removeAliases(n.Expr, subst)
		return &nn

	case *mir.DropVariables:
		nn := *n
		nn.Expr = removeAliases(n.Expr, subst)
		return &nn

	case *mir.Synchronize:
		nn := *n
		nn.Expr = removeAliases(n.Expr, subst)
		return &nn

	default:
		return e
	}
}

func extend(subst map[string]string, name, target string) map[string]string {
	out := make(map[string]string, len(subst)+1)
	for k, v := range subst {
		out[k] = v
	}
	out[name] = target
	return out
}
