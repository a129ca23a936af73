package ast

import (
	"fmt"
	"io"
	"strings"
)

// Print writes a node in Tiger concrete syntax.
func Print(w io.Writer, node ASTNode) error {
	p := &printer{}
	p.printNode(node)
	_, err := io.WriteString(w, p.sb.String())
	return err
}

// String returns a node in Tiger concrete syntax.
func String(node ASTNode) string {
	p := &printer{}
	p.printNode(node)
	return p.sb.String()
}

type printer struct {
	sb     strings.Builder
	indent int
}

func (p *printer) write(format string, args ...interface{}) {
	fmt.Fprintf(&p.sb, format, args...)
}

func (p *printer) newline() {
	p.sb.WriteByte('\n')
	p.sb.WriteString(strings.Repeat("  ", p.indent))
}

func (p *printer) printNode(node ASTNode) {
	switch v := node.(type) {
	case Expr:
		p.printExpr(v)
	case Decl:
		p.printDecl(v)
	default:
		p.write("<unknown node %T>", node)
	}
}

func (p *printer) printExpr(expr Expr) {
	switch v := expr.(type) {
	case *IntegerLiteral:
		p.write("%d", v.Value)
	case *StringLiteral:
		p.write("\"%s\"", escapeString(v.Value))
	case *BinaryOp:
		p.write("(")
		p.printExpr(v.Lhs)
		p.write(" %s ", v.Op)
		p.printExpr(v.Rhs)
		p.write(")")
	case *Sequence:
		p.write("(")
		p.printExprList(v.Exprs)
		p.write(")")
	case *Let:
		p.write("let")
		p.indent++
		for _, decl := range v.Decls {
			p.newline()
			p.printDecl(decl)
		}
		p.indent--
		p.newline()
		p.write("in")
		p.indent++
		p.newline()
		p.printExprList(v.Body.Exprs)
		p.indent--
		p.newline()
		p.write("end")
	case *Identifier:
		p.write("%s", v.Name)
	case *IfThenElse:
		p.write("if ")
		p.printExpr(v.Cond)
		p.write(" then ")
		p.printExpr(v.Then)
		if v.HasElse() {
			p.write(" else ")
			p.printExpr(v.Else)
		}
	case *WhileLoop:
		p.write("while ")
		p.printExpr(v.Cond)
		p.write(" do ")
		p.printExpr(v.Body)
	case *ForLoop:
		p.write("for %s := ", v.Var.Name)
		p.printExpr(v.Var.Init)
		p.write(" to ")
		p.printExpr(v.High)
		p.write(" do ")
		p.printExpr(v.Body)
	case *Break:
		p.write("break")
	case *Assign:
		p.write("%s := ", v.Lhs.Name)
		p.printExpr(v.Rhs)
	case *FunCall:
		p.write("%s(", v.FuncName)
		for i, arg := range v.Args {
			if i > 0 {
				p.write(", ")
			}
			p.printExpr(arg)
		}
		p.write(")")
	default:
		p.write("<unknown expression %T>", expr)
	}
}

func (p *printer) printExprList(exprs []Expr) {
	for i, expr := range exprs {
		if i > 0 {
			p.write("; ")
		}
		p.printExpr(expr)
	}
}

func (p *printer) printDecl(decl Decl) {
	switch v := decl.(type) {
	case *VarDecl:
		p.write("var %s", v.Name)
		if v.TypeName != "" {
			p.write(": %s", v.TypeName)
		}
		if v.Init != nil {
			p.write(" := ")
			p.printExpr(v.Init)
		}
	case *FunDecl:
		if v.Body == nil {
			p.write("primitive %s(", v.Name)
		} else {
			p.write("function %s(", v.Name)
		}

		for i, param := range v.Params {
			if i > 0 {
				p.write(", ")
			}
			p.write("%s: %s", param.Name, param.TypeName)
		}
		p.write(")")

		if v.TypeName != "" {
			p.write(": %s", v.TypeName)
		}

		if v.Body != nil {
			p.write(" =")
			p.indent++
			p.newline()
			p.printExpr(v.Body)
			p.indent--
		}
	default:
		p.write("<unknown declaration %T>", decl)
	}
}

// escapeString escapes a string using Tiger's escape sequences.
func escapeString(s string) string {
	sb := strings.Builder{}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			sb.WriteString("\\\"")
		case c == '\\':
			sb.WriteString("\\\\")
		case c == '\n':
			sb.WriteString("\\n")
		case c == '\t':
			sb.WriteString("\\t")
		case c < 32 || c > 126:
			fmt.Fprintf(&sb, "\\%03d", c)
		default:
			sb.WriteByte(c)
		}
	}

	return sb.String()
}
