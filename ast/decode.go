package ast

import (
	"encoding/json"
	"fmt"
	"io"

	"tigerc/report"
)

// jsonNode is the interchange encoding of a single AST node as produced by
// the external parser.  Which fields are meaningful depends on the kind.
type jsonNode struct {
	Kind string `json:"kind"`
	Span []int  `json:"span"`

	Value json.RawMessage `json:"value"`
	Op    string          `json:"op"`
	Name  string          `json:"name"`
	Func  string          `json:"func"`
	Type  string          `json:"type"`
	Var   string          `json:"var"`

	Left  json.RawMessage `json:"left"`
	Right json.RawMessage `json:"right"`
	Cond  json.RawMessage `json:"cond"`
	Then  json.RawMessage `json:"then"`
	Else  json.RawMessage `json:"else"`
	Body  json.RawMessage `json:"body"`
	Low   json.RawMessage `json:"low"`
	High  json.RawMessage `json:"high"`
	Lhs   json.RawMessage `json:"lhs"`
	Rhs   json.RawMessage `json:"rhs"`
	Init  json.RawMessage `json:"init"`

	Exprs []json.RawMessage `json:"exprs"`
	Decls []json.RawMessage `json:"decls"`
	Args  []json.RawMessage `json:"args"`

	Params   []jsonParam `json:"params"`
	External bool        `json:"external"`
}

type jsonParam struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Span []int  `json:"span"`
}

// Decode reads a program AST in the JSON interchange format.
func Decode(r io.Reader) (Expr, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding AST: %w", err)
	}

	return decodeExpr(raw)
}

// decodeSpan converts a `[startLine, startCol, endLine, endCol]` array.
func decodeSpan(span []int) (*report.TextSpan, error) {
	switch len(span) {
	case 0:
		return nil, nil
	case 4:
		return &report.TextSpan{StartLine: span[0], StartCol: span[1], EndLine: span[2], EndCol: span[3]}, nil
	}

	return nil, fmt.Errorf("malformed span %v: expected 4 elements", span)
}

func unmarshalNode(raw json.RawMessage) (*jsonNode, *report.TextSpan, error) {
	if len(raw) == 0 {
		return nil, nil, fmt.Errorf("missing AST node")
	}

	node := &jsonNode{}
	if err := json.Unmarshal(raw, node); err != nil {
		return nil, nil, fmt.Errorf("decoding AST node: %w", err)
	}

	span, err := decodeSpan(node.Span)
	if err != nil {
		return nil, nil, err
	}

	return node, span, nil
}

func decodeExprList(raws []json.RawMessage) ([]Expr, error) {
	exprs := make([]Expr, len(raws))
	for i, raw := range raws {
		expr, err := decodeExpr(raw)
		if err != nil {
			return nil, err
		}

		exprs[i] = expr
	}

	return exprs, nil
}

func decodeExpr(raw json.RawMessage) (Expr, error) {
	node, span, err := unmarshalNode(raw)
	if err != nil {
		return nil, err
	}

	switch node.Kind {
	case "int":
		var value int32
		if err := json.Unmarshal(node.Value, &value); err != nil {
			return nil, fmt.Errorf("%s: invalid integer literal: %w", span, err)
		}

		return NewIntegerLiteral(span, value), nil
	case "string":
		var value string
		if err := json.Unmarshal(node.Value, &value); err != nil {
			return nil, fmt.Errorf("%s: invalid string literal: %w", span, err)
		}

		return NewStringLiteral(span, value), nil
	case "binop":
		op, ok := LookupOperator(node.Op)
		if !ok {
			return nil, fmt.Errorf("%s: unknown operator `%s`", span, node.Op)
		}

		lhs, err := decodeExpr(node.Left)
		if err != nil {
			return nil, err
		}

		rhs, err := decodeExpr(node.Right)
		if err != nil {
			return nil, err
		}

		return NewBinaryOp(span, op, lhs, rhs), nil
	case "seq":
		exprs, err := decodeExprList(node.Exprs)
		if err != nil {
			return nil, err
		}

		return NewSequence(span, exprs...), nil
	case "let":
		decls := make([]Decl, len(node.Decls))
		for i, rawDecl := range node.Decls {
			if decls[i], err = decodeDecl(rawDecl); err != nil {
				return nil, err
			}
		}

		var rawBody []json.RawMessage
		if len(node.Body) > 0 {
			if err := json.Unmarshal(node.Body, &rawBody); err != nil {
				return nil, fmt.Errorf("%s: let body must be a list: %w", span, err)
			}
		}

		body, err := decodeExprList(rawBody)
		if err != nil {
			return nil, err
		}

		return NewLet(span, decls, body...), nil
	case "id":
		return NewIdentifier(span, node.Name), nil
	case "if":
		cond, err := decodeExpr(node.Cond)
		if err != nil {
			return nil, err
		}

		then, err := decodeExpr(node.Then)
		if err != nil {
			return nil, err
		}

		var els Expr
		if len(node.Else) > 0 && string(node.Else) != "null" {
			if els, err = decodeExpr(node.Else); err != nil {
				return nil, err
			}
		}

		return NewIfThenElse(span, cond, then, els), nil
	case "while":
		cond, err := decodeExpr(node.Cond)
		if err != nil {
			return nil, err
		}

		body, err := decodeExpr(node.Body)
		if err != nil {
			return nil, err
		}

		return NewWhileLoop(span, cond, body), nil
	case "for":
		low, err := decodeExpr(node.Low)
		if err != nil {
			return nil, err
		}

		high, err := decodeExpr(node.High)
		if err != nil {
			return nil, err
		}

		body, err := decodeExpr(node.Body)
		if err != nil {
			return nil, err
		}

		return NewForLoop(span, node.Var, low, high, body), nil
	case "break":
		return NewBreak(span), nil
	case "assign":
		lhsExpr, err := decodeExpr(node.Lhs)
		if err != nil {
			return nil, err
		}

		lhs, ok := lhsExpr.(*Identifier)
		if !ok {
			return nil, fmt.Errorf("%s: left-hand side of assignment must be an identifier", span)
		}

		rhs, err := decodeExpr(node.Rhs)
		if err != nil {
			return nil, err
		}

		return NewAssign(span, lhs, rhs), nil
	case "call":
		args, err := decodeExprList(node.Args)
		if err != nil {
			return nil, err
		}

		return NewFunCall(span, node.Func, args...), nil
	case "":
		return nil, fmt.Errorf("%s: AST node is missing its kind", span)
	}

	return nil, fmt.Errorf("%s: unknown expression kind `%s`", span, node.Kind)
}

func decodeDecl(raw json.RawMessage) (Decl, error) {
	node, span, err := unmarshalNode(raw)
	if err != nil {
		return nil, err
	}

	switch node.Kind {
	case "var":
		init, err := decodeExpr(node.Init)
		if err != nil {
			return nil, err
		}

		return NewVarDecl(span, node.Name, node.Type, init), nil
	case "function":
		params := make([]*VarDecl, len(node.Params))
		for i, jp := range node.Params {
			pspan, err := decodeSpan(jp.Span)
			if err != nil {
				return nil, err
			}

			params[i] = NewParam(pspan, jp.Name, jp.Type)
		}

		var body Expr
		if len(node.Body) > 0 && string(node.Body) != "null" {
			if body, err = decodeExpr(node.Body); err != nil {
				return nil, err
			}
		}

		return NewFunDecl(span, node.Name, params, node.Type, body, node.External), nil
	}

	return nil, fmt.Errorf("%s: unknown declaration kind `%s`", span, node.Kind)
}
