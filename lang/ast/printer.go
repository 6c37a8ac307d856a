package ast

import (
	"fmt"
	"io"
	"strings"
)

// Printer pretty-prints a statement list, one node per line, indented by
// nesting depth. It backs the "parse" and "resolve" debug subcommands; it is
// not on the path the evaluator runs and has no effect on execution.
type Printer struct {
	Output io.Writer
}

// Print walks stmts and writes one line per node to p.Output.
func (p *Printer) Print(stmts []Stmt) error {
	pp := &printer{w: p.Output}
	for _, s := range stmts {
		Walk(pp, s)
		if pp.err != nil {
			return pp.err
		}
	}
	return nil
}

type printer struct {
	w     io.Writer
	depth int
	err   error
}

func (p *printer) Visit(n Node, dir VisitDirection) Visitor {
	if dir == VisitExit {
		p.depth--
		return nil
	}
	p.printNode(n)
	p.depth++
	return p
}

func (p *printer) printNode(n Node) {
	if p.err != nil {
		return
	}
	start, end := n.Span()
	_, p.err = fmt.Fprintf(p.w, "%s[%d:%d] %s\n", strings.Repeat(". ", p.depth), start, end, describe(n))
}

func describe(n Node) string {
	switch n := n.(type) {
	case *Literal:
		return fmt.Sprintf("literal %v", n.Value)
	case *Grouping:
		return "group"
	case *Unary:
		return "unary " + n.Op.Lexeme
	case *Binary:
		return "binary " + n.Op.Lexeme
	case *Logical:
		return "logical " + n.Op.Lexeme
	case *Variable:
		return "var " + n.Name.Lexeme
	case *Assignment:
		return "assign " + n.Name.Lexeme
	case *Call:
		return fmt.Sprintf("call (%d args)", len(n.Args))
	case *Get:
		return "get ." + n.Name.Lexeme
	case *Set:
		return "set ." + n.Name.Lexeme
	case *This:
		return "this"
	case *Expression:
		return "expr stmt"
	case *Print:
		return "print"
	case *Var:
		return "var decl " + n.Name.Lexeme
	case *Block:
		return "block"
	case *If:
		return "if"
	case *While:
		return "while"
	case *Function:
		return "fn " + n.Name.Lexeme
	case *Return:
		return "return"
	case *Class:
		lbl := "class " + n.Name.Lexeme
		if n.Superclass != nil {
			lbl += " < " + n.Superclass.Name.Lexeme
		}
		return lbl
	default:
		return fmt.Sprintf("%T", n)
	}
}
