package infer

import (
	"github.com/sunholo/corehir/internal/errors"
	"github.com/sunholo/corehir/internal/hir"
	"github.com/sunholo/corehir/internal/hirtypes"
)

// Module runs inference over every function definition in m (spec §4.3),
// returning a new module whose expressions all have their InferredType
// slot populated, or the first error encountered.
func Module(m *hir.Module, env *hirtypes.Environment) (*hir.Module, error) {
	globals := varEnv{}
	for _, d := range m.ForeignDeclarations {
		globals[d.Name] = d.Type
	}
	for _, d := range m.FunctionDeclarations {
		globals[d.Name] = d.Type
	}
	for _, d := range m.FunctionDefinitions {
		globals[d.Name] = lambdaType(d.Lambda)
	}

	out := m.Clone()
	defs := make([]*hir.FunctionDefinition, len(m.FunctionDefinitions))
	for i, def := range m.FunctionDefinitions {
		lambda, _, err := inferLambda(def.Lambda, globals, env)
		if err != nil {
			return nil, err
		}
		nd := *def
		nd.Lambda = lambda
		defs[i] = &nd
	}
	out.FunctionDefinitions = defs
	return out, nil
}

func lambdaType(l *hir.Lambda) *hirtypes.Function {
	args := make([]hirtypes.Type, len(l.Args))
	for i, a := range l.Args {
		args[i] = a.Type
	}
	return &hirtypes.Function{Pos: l.Pos, Args: args, Result: l.ResultType}
}

func inferLambda(l *hir.Lambda, env varEnv, tenv *hirtypes.Environment) (*hir.Lambda, hirtypes.Type, error) {
	inner := env
	for _, a := range l.Args {
		inner = inner.with(a.Name, a.Type)
	}
	body, _, err := inferExpr(l.Body, l.ResultType, inner, tenv)
	if err != nil {
		return nil, nil, err
	}
	nl := *l
	nl.Body = body
	return &nl, lambdaType(&nl), nil
}

// inferExpr infers expr's type, propagating expected downward where spec
// §4.3 calls for it, and returns a rebuilt node with InferredType set.
func inferExpr(expr hir.Expression, expected hirtypes.Type, env varEnv, tenv *hirtypes.Environment) (hir.Expression, hirtypes.Type, error) {
	switch e := expr.(type) {
	case *hir.BooleanLiteral:
		return settle(e, &hirtypes.Boolean{Pos: e.Pos})
	case *hir.NoneLiteral:
		return settle(e, &hirtypes.None{Pos: e.Pos})
	case *hir.NumberLiteral:
		return settle(e, &hirtypes.Number{Pos: e.Pos})
	case *hir.StringLiteral:
		return settle(e, &hirtypes.String{Pos: e.Pos})

	case *hir.Variable:
		t, ok := env[e.Name]
		if !ok {
			return nil, nil, errors.VariableNotFound(e.Name, e.Pos)
		}
		return settle(e, t)

	case *hir.Lambda:
		nl, t, err := inferLambda(e, env, tenv)
		if err != nil {
			return nil, nil, err
		}
		nl.SetInferredType(t)
		return nl, t, nil

	case *hir.Call:
		fn, fnType, err := inferExpr(e.Function, nil, env, tenv)
		if err != nil {
			return nil, nil, err
		}
		fnFn, ok, err := hirtypes.CanonicalizeFunction(fnType, tenv)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			return nil, nil, errors.FunctionExpected(e.Pos)
		}
		if len(fnFn.Args) != len(e.Args) {
			return nil, nil, errors.WrongArgumentCount(e.Pos)
		}
		args := make([]hir.Expression, len(e.Args))
		for i, a := range e.Args {
			na, at, err := inferExpr(a, fnFn.Args[i], env, tenv)
			if err != nil {
				return nil, nil, err
			}
			ok, err := hirtypes.Subsumes(at, fnFn.Args[i], tenv)
			if err != nil {
				return nil, nil, err
			}
			if !ok {
				return nil, nil, errors.TypesNotMatched(na.Position(), fnFn.Args[i].Position())
			}
			args[i] = na
		}
		n := *e
		n.Function = fn
		n.Args = args
		n.FunctionType = fnFn
		return settle(&n, fnFn.Result)

	case *hir.Let:
		expectedBound := e.Declared
		bound, boundType, err := inferExpr(e.Bound, expectedBound, env, tenv)
		if err != nil {
			return nil, nil, err
		}
		bodyEnv := env
		if e.HasName {
			bodyEnv = env.with(e.Name, boundType)
		}
		body, bodyType, err := inferExpr(e.Body, expected, bodyEnv, tenv)
		if err != nil {
			return nil, nil, err
		}
		n := *e
		n.Bound, n.Body = bound, body
		return settle(&n, bodyType)

	case *hir.If:
		cond, _, err := inferExpr(e.Cond, &hirtypes.Boolean{Pos: e.Pos}, env, tenv)
		if err != nil {
			return nil, nil, err
		}
		then, thenType, err := inferExpr(e.Then, expected, env, tenv)
		if err != nil {
			return nil, nil, err
		}
		els, elseType, err := inferExpr(e.Else, expected, env, tenv)
		if err != nil {
			return nil, nil, err
		}
		n := *e
		n.Cond, n.Then, n.Else = cond, then, els
		result, err := unionOf(thenType, elseType, e.Pos, tenv)
		if err != nil {
			return nil, nil, err
		}
		return settle(&n, result)

	case *hir.IfList:
		list, listType, err := inferExpr(e.List, nil, env, tenv)
		if err != nil {
			return nil, nil, err
		}
		listT, ok, err := hirtypes.CanonicalizeList(listType, tenv)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			return nil, nil, errors.ListExpected(e.Pos)
		}
		innerEnv := env.with(e.First, listT.Element).with(e.Rest, listT)
		then, thenType, err := inferExpr(e.Then, expected, innerEnv, tenv)
		if err != nil {
			return nil, nil, err
		}
		els, elseType, err := inferExpr(e.Else, expected, env, tenv)
		if err != nil {
			return nil, nil, err
		}
		n := *e
		n.List, n.Then, n.Else, n.ElementType = list, then, els, listT.Element
		result, err := unionOf(thenType, elseType, e.Pos, tenv)
		if err != nil {
			return nil, nil, err
		}
		return settle(&n, result)

	case *hir.IfMap:
		mapExpr, mapType, err := inferExpr(e.Map, nil, env, tenv)
		if err != nil {
			return nil, nil, err
		}
		mapT, ok, err := hirtypes.CanonicalizeMap(mapType, tenv)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			return nil, nil, errors.MapExpected(e.Pos)
		}
		key, _, err := inferExpr(e.Key, mapT.Key, env, tenv)
		if err != nil {
			return nil, nil, err
		}
		innerEnv := env.with(e.Name, mapT.Value)
		then, thenType, err := inferExpr(e.Then, expected, innerEnv, tenv)
		if err != nil {
			return nil, nil, err
		}
		els, elseType, err := inferExpr(e.Else, expected, env, tenv)
		if err != nil {
			return nil, nil, err
		}
		n := *e
		n.Map, n.Key, n.Then, n.Else = mapExpr, key, then, els
		n.KeyType, n.ValueType = mapT.Key, mapT.Value
		result, err := unionOf(thenType, elseType, e.Pos, tenv)
		if err != nil {
			return nil, nil, err
		}
		return settle(&n, result)

	case *hir.IfType:
		arg, argType, err := inferExpr(e.Argument, nil, env, tenv)
		if err != nil {
			return nil, nil, err
		}
		scrutineeMembers, err := hirtypes.UnionMembers(argType, tenv)
		if err != nil {
			return nil, nil, err
		}
		branches := make([]hir.IfTypeBranch, len(e.Branches))
		var branchResultTypes []hirtypes.Type
		var coveredTypes []hirtypes.Type
		for i, b := range e.Branches {
			innerEnv := env.with(e.ScrutineeName, b.Type)
			be, bt, err := inferExpr(b.Expression, expected, innerEnv, tenv)
			if err != nil {
				return nil, nil, err
			}
			branches[i] = hir.IfTypeBranch{Type: b.Type, Expression: be}
			branchResultTypes = append(branchResultTypes, bt)
			coveredTypes = append(coveredTypes, b.Type)
		}
		n := *e
		n.Argument = arg
		n.Branches = branches
		if e.Else != nil {
			residual := subtractMembers(scrutineeMembers, coveredTypes)
			residualType, ok := hirtypes.CreateUnion(residual, e.Pos)
			if !ok {
				residualType = &hirtypes.None{Pos: e.Pos}
			}
			innerEnv := env.with(e.ScrutineeName, residualType)
			be, bt, err := inferExpr(e.Else.Expression, expected, innerEnv, tenv)
			if err != nil {
				return nil, nil, err
			}
			n.Else = &hir.IfTypeElseBranch{Type: residualType, Expression: be}
			branchResultTypes = append(branchResultTypes, bt)
		}
		result, err := unionOfMany(branchResultTypes, e.Pos, tenv)
		if err != nil {
			return nil, nil, err
		}
		return settle(&n, result)

	case *hir.List:
		els := make([]hir.ListElement, len(e.Elements))
		for i, el := range e.Elements {
			expectedElem := e.ElementType
			if el.Kind == hir.ListElementMultiple {
				expectedElem = &hirtypes.List{Pos: e.Pos, Element: e.ElementType}
			}
			ne, _, err := inferExpr(el.Expression, expectedElem, env, tenv)
			if err != nil {
				return nil, nil, err
			}
			els[i] = hir.ListElement{Kind: el.Kind, Expression: ne}
		}
		n := *e
		n.Elements = els
		return settle(&n, &hirtypes.List{Pos: e.Pos, Element: e.ElementType})

	case *hir.ListComprehension:
		branches := make([]hir.ComprehensionBranch, len(e.Branches))
		innerEnv := env
		for i, b := range e.Branches {
			nl, lt, err := inferExpr(b.List, nil, innerEnv, tenv)
			if err != nil {
				return nil, nil, err
			}
			listT, ok, err := hirtypes.CanonicalizeList(lt, tenv)
			if err != nil {
				return nil, nil, err
			}
			if !ok {
				return nil, nil, errors.ListExpected(b.List.Position())
			}
			branches[i] = hir.ComprehensionBranch{Name: b.Name, List: nl}
			innerEnv = innerEnv.with(b.Name, listT.Element)
		}
		elem, _, err := inferExpr(e.Element, nil, innerEnv, tenv)
		if err != nil {
			return nil, nil, err
		}
		n := *e
		n.Branches = branches
		n.Element = elem
		return settle(&n, &hirtypes.List{Pos: e.Pos, Element: e.OutputType})

	case *hir.Map:
		els := make([]hir.MapElement, len(e.Elements))
		for i, el := range e.Elements {
			switch el.Kind {
			case hir.MapElementSingle:
				k, _, err := inferExpr(el.Key, e.KeyType, env, tenv)
				if err != nil {
					return nil, nil, err
				}
				v, _, err := inferExpr(el.Value, e.ValueType, env, tenv)
				if err != nil {
					return nil, nil, err
				}
				els[i] = hir.MapElement{Kind: el.Kind, Key: k, Value: v}
			case hir.MapElementMultiple:
				mv, _, err := inferExpr(el.Map, &hirtypes.Map{Pos: e.Pos, Key: e.KeyType, Value: e.ValueType}, env, tenv)
				if err != nil {
					return nil, nil, err
				}
				els[i] = hir.MapElement{Kind: el.Kind, Map: mv}
			case hir.MapElementRemoval:
				k, _, err := inferExpr(el.Key, e.KeyType, env, tenv)
				if err != nil {
					return nil, nil, err
				}
				els[i] = hir.MapElement{Kind: el.Kind, Key: k}
			}
		}
		n := *e
		n.Elements = els
		return settle(&n, &hirtypes.Map{Pos: e.Pos, Key: e.KeyType, Value: e.ValueType})

	case *hir.RecordConstruction:
		def, err := recordDefOfType(e.Type, tenv)
		if err != nil {
			return nil, nil, err
		}
		fields := make([]hir.RecordFieldValue, len(e.Fields))
		for i, f := range e.Fields {
			ft, ok := def.FieldType(f.Name)
			if !ok {
				return nil, nil, errors.UnknownRecordField(f.Name, e.Pos)
			}
			nf, _, err := inferExpr(f.Expression, ft, env, tenv)
			if err != nil {
				return nil, nil, err
			}
			fields[i] = hir.RecordFieldValue{Name: f.Name, Expression: nf}
		}
		n := *e
		n.Fields = fields
		return settle(&n, e.Type)

	case *hir.RecordDeconstruction:
		rec, recType, err := inferExpr(e.Record, nil, env, tenv)
		if err != nil {
			return nil, nil, err
		}
		recCanon, err := hirtypes.Canonicalize(recType, tenv)
		if err != nil {
			return nil, nil, err
		}
		recordT, ok := recCanon.(*hirtypes.Record)
		if !ok {
			return nil, nil, errors.RecordExpected(e.Pos)
		}
		def, ok := tenv.Record(recordT.Name)
		if !ok {
			return nil, nil, errors.UnresolvedReference(recordT.Name, e.Pos)
		}
		ft, ok := def.FieldType(e.FieldName)
		if !ok {
			return nil, nil, errors.UnknownRecordField(e.FieldName, e.Pos)
		}
		n := *e
		n.Record = rec
		n.RecordType = recordT
		return settle(&n, ft)

	case *hir.RecordUpdate:
		def, err := recordDefOfType(e.Type, tenv)
		if err != nil {
			return nil, nil, err
		}
		rec, _, err := inferExpr(e.Record, e.Type, env, tenv)
		if err != nil {
			return nil, nil, err
		}
		fields := make([]hir.RecordFieldValue, len(e.Fields))
		for i, f := range e.Fields {
			ft, ok := def.FieldType(f.Name)
			if !ok {
				return nil, nil, errors.UnknownRecordField(f.Name, e.Pos)
			}
			nf, _, err := inferExpr(f.Expression, ft, env, tenv)
			if err != nil {
				return nil, nil, err
			}
			fields[i] = hir.RecordFieldValue{Name: f.Name, Expression: nf}
		}
		n := *e
		n.Record = rec
		n.Fields = fields
		return settle(&n, e.Type)

	case *hir.Thunk:
		body, bodyType, err := inferExpr(e.Expr, nil, env, tenv)
		if err != nil {
			return nil, nil, err
		}
		n := *e
		n.Expr = body
		n.BodyType = bodyType
		return settle(&n, &hirtypes.Function{Pos: e.Pos, Result: bodyType})

	case *hir.TypeCoercion:
		arg, _, err := inferExpr(e.Argument, e.From, env, tenv)
		if err != nil {
			return nil, nil, err
		}
		n := *e
		n.Argument = arg
		return settle(&n, e.To)

	case *hir.ArithmeticOperation:
		lhs, _, err := inferExpr(e.Lhs, &hirtypes.Number{Pos: e.Pos}, env, tenv)
		if err != nil {
			return nil, nil, err
		}
		rhs, _, err := inferExpr(e.Rhs, &hirtypes.Number{Pos: e.Pos}, env, tenv)
		if err != nil {
			return nil, nil, err
		}
		n := *e
		n.Lhs, n.Rhs = lhs, rhs
		return settle(&n, &hirtypes.Number{Pos: e.Pos})

	case *hir.BooleanOperation:
		lhs, _, err := inferExpr(e.Lhs, &hirtypes.Boolean{Pos: e.Pos}, env, tenv)
		if err != nil {
			return nil, nil, err
		}
		rhs, _, err := inferExpr(e.Rhs, &hirtypes.Boolean{Pos: e.Pos}, env, tenv)
		if err != nil {
			return nil, nil, err
		}
		n := *e
		n.Lhs, n.Rhs = lhs, rhs
		return settle(&n, &hirtypes.Boolean{Pos: e.Pos})

	case *hir.EqualityOperation:
		lhs, lt, err := inferExpr(e.Lhs, nil, env, tenv)
		if err != nil {
			return nil, nil, err
		}
		rhs, _, err := inferExpr(e.Rhs, lt, env, tenv)
		if err != nil {
			return nil, nil, err
		}
		ct, err := hirtypes.Canonicalize(lt, tenv)
		if err != nil {
			return nil, nil, err
		}
		n := *e
		n.Lhs, n.Rhs, n.Type = lhs, rhs, ct
		return settle(&n, &hirtypes.Boolean{Pos: e.Pos})

	case *hir.OrderOperation:
		lhs, _, err := inferExpr(e.Lhs, &hirtypes.Number{Pos: e.Pos}, env, tenv)
		if err != nil {
			return nil, nil, err
		}
		rhs, _, err := inferExpr(e.Rhs, &hirtypes.Number{Pos: e.Pos}, env, tenv)
		if err != nil {
			return nil, nil, err
		}
		n := *e
		n.Lhs, n.Rhs = lhs, rhs
		return settle(&n, &hirtypes.Boolean{Pos: e.Pos})

	case *hir.NotOperation:
		arg, _, err := inferExpr(e.Expression, &hirtypes.Boolean{Pos: e.Pos}, env, tenv)
		if err != nil {
			return nil, nil, err
		}
		n := *e
		n.Expression = arg
		return settle(&n, &hirtypes.Boolean{Pos: e.Pos})

	case *hir.TryOperation:
		inner, innerType, err := inferExpr(e.Expression, nil, env, tenv)
		if err != nil {
			return nil, nil, err
		}
		members, err := hirtypes.UnionMembers(innerType, tenv)
		if err != nil {
			return nil, nil, err
		}
		var remainder []hirtypes.Type
		for _, m := range members {
			if _, isErr := m.(*hirtypes.Error); !isErr {
				remainder = append(remainder, m)
			}
		}
		remainderType, ok := hirtypes.CreateUnion(remainder, e.Pos)
		if !ok {
			remainderType = &hirtypes.None{Pos: e.Pos}
		}
		n := *e
		n.Expression = inner
		n.Type = remainderType
		return settle(&n, remainderType)

	case *hir.SpawnOperation:
		lambda, lt, err := inferLambda(e.Function, env, tenv)
		if err != nil {
			return nil, nil, err
		}
		n := *e
		n.Function = lambda
		return settle(&n, lt.(*hirtypes.Function).Result)

	default:
		return expr, expr.InferredType(), nil
	}
}

func settle(e hir.Expression, t hirtypes.Type) (hir.Expression, hirtypes.Type, error) {
	e.SetInferredType(t)
	return e, t, nil
}

func unionOf(a, b hirtypes.Type, pos hirtypes.Position, env *hirtypes.Environment) (hirtypes.Type, error) {
	return unionOfMany([]hirtypes.Type{a, b}, pos, env)
}

func unionOfMany(ts []hirtypes.Type, pos hirtypes.Position, env *hirtypes.Environment) (hirtypes.Type, error) {
	var members []hirtypes.Type
	for _, t := range ts {
		if t == nil {
			continue
		}
		ms, err := hirtypes.UnionMembers(t, env)
		if err != nil {
			return nil, err
		}
		for _, m := range ms {
			found := false
			for _, existing := range members {
				if hirtypes.Equal(existing, m) {
					found = true
					break
				}
			}
			if !found {
				members = append(members, m)
			}
		}
	}
	u, ok := hirtypes.CreateUnion(members, pos)
	if !ok {
		return &hirtypes.None{Pos: pos}, nil
	}
	return hirtypes.Canonicalize(u, env)
}

func subtractMembers(all []hirtypes.Type, remove []hirtypes.Type) []hirtypes.Type {
	var out []hirtypes.Type
	for _, m := range all {
		removed := false
		for _, r := range remove {
			if hirtypes.Equal(m, r) {
				removed = true
				break
			}
		}
		if !removed {
			out = append(out, m)
		}
	}
	return out
}

func recordDefOfType(t hirtypes.Type, env *hirtypes.Environment) (*hirtypes.RecordDefinition, error) {
	c, err := hirtypes.Canonicalize(t, env)
	if err != nil {
		return nil, err
	}
	rec, ok := c.(*hirtypes.Record)
	if !ok {
		return nil, errors.RecordExpected(t.Position())
	}
	def, ok := env.Record(rec.Name)
	if !ok {
		return nil, errors.UnresolvedReference(rec.Name, t.Position())
	}
	return def, nil
}
