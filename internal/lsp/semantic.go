package lsp

import (
	"kanso/internal/ast"
)

// SemanticToken represents a single LSP semantic token entry
// Line and StartChar are 0-based positions
// TokenType is an index into the SemanticTokenTypes array
// TokenModifiers is a bitmask based on SemanticTokenModifiers
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int // index into SemanticTokenTypes
	TokenModifiers int // bitmask
}

func collectSemanticTokens(contract *ast.Contract) []SemanticToken {
	var tokens []SemanticToken

	if contract == nil {
		return tokens
	}

	if contract.Name.Value != "" {
		tokens = append(tokens, makeToken(contract.Name.Pos, contract.Name.EndPos, contract.Name.Value, "namespace", 1))
	}

	for _, item := range contract.Items {
		tokens = append(tokens, walkContractItem(item)...)
	}

	return tokens
}

func walkContractItem(item ast.ContractItem) []SemanticToken {
	switch it := item.(type) {
	case *ast.Use:
		return walkUse(it)
	case *ast.Struct:
		return walkStruct(it)
	case *ast.Function:
		return walkFunction(it)
	default:
		return nil
	}
}

func walkUse(u *ast.Use) []SemanticToken {
	var tokens []SemanticToken
	for _, ns := range u.Namespaces {
		tokens = append(tokens, makeToken(ns.Name.Pos, ns.Name.EndPos, ns.Name.Value, "namespace", 0))
	}
	for _, imp := range u.Imports {
		tokens = append(tokens, makeToken(imp.Name.Pos, imp.Name.EndPos, imp.Name.Value, "type", 0))
	}
	return tokens
}

func walkStruct(s *ast.Struct) []SemanticToken {
	var tokens []SemanticToken

	if s.Attribute != nil {
		tokens = append(tokens, makeToken(s.Attribute.Pos, s.Attribute.EndPos, s.Attribute.Name, "modifier", 0))
	}
	if s.Name.Value != "" {
		tokens = append(tokens, makeToken(s.Name.Pos, s.Name.EndPos, s.Name.Value, "type", 1))
	}

	for _, item := range s.Items {
		field, ok := item.(*ast.StructField)
		if !ok {
			continue
		}
		tokens = append(tokens, makeToken(field.Name.Pos, field.Name.EndPos, field.Name.Value, "property", 1))
		tokens = append(tokens, typeReferenceToken(field.VariableType)...)
	}

	return tokens
}

func walkFunction(f *ast.Function) []SemanticToken {
	var tokens []SemanticToken

	if f.Attribute != nil {
		tokens = append(tokens, makeToken(f.Attribute.Pos, f.Attribute.EndPos, f.Attribute.Name, "modifier", 0))
	}
	if f.Name.Value != "" {
		tokens = append(tokens, makeToken(f.Name.Pos, f.Name.EndPos, f.Name.Value, "function", 1))
	}

	for _, p := range f.Params {
		tokens = append(tokens, makeToken(p.Name.Pos, p.Name.EndPos, p.Name.Value, "parameter", 0))
		tokens = append(tokens, typeReferenceToken(p.Type)...)
	}
	tokens = append(tokens, typeReferenceToken(f.Return)...)

	for _, r := range f.Reads {
		tokens = append(tokens, makeToken(r.Pos, r.EndPos, r.Value, "type", 0))
	}
	for _, w := range f.Writes {
		tokens = append(tokens, makeToken(w.Pos, w.EndPos, w.Value, "type", 0))
	}

	tokens = append(tokens, walkFunctionBlock(f.Body)...)
	return tokens
}

func walkFunctionBlock(fb *ast.FunctionBlock) []SemanticToken {
	var tokens []SemanticToken

	if fb == nil {
		return tokens
	}

	for _, item := range fb.Items {
		tokens = append(tokens, walkBlockItem(item)...)
	}

	if fb.TailExpr != nil {
		tokens = append(tokens, walkExpr(fb.TailExpr.Expr)...)
	}

	return tokens
}

func walkBlockItem(item ast.FunctionBlockItem) []SemanticToken {
	switch stmt := item.(type) {
	case *ast.LetStmt:
		var tokens []SemanticToken
		if stmt.Name.Value != "" {
			tokens = append(tokens, makeToken(stmt.Name.Pos, stmt.Name.EndPos, stmt.Name.Value, "variable", 1))
		}
		tokens = append(tokens, typeReferenceToken(stmt.Type)...)
		tokens = append(tokens, walkExpr(stmt.Expr)...)
		return tokens
	case *ast.AssignStmt:
		tokens := walkExpr(stmt.Target)
		tokens = append(tokens, walkExpr(stmt.Value)...)
		return tokens
	case *ast.RequireStmt:
		var tokens []SemanticToken
		for _, arg := range stmt.Args {
			tokens = append(tokens, walkExpr(arg)...)
		}
		return tokens
	case *ast.AssertStmt:
		var tokens []SemanticToken
		for _, arg := range stmt.Args {
			tokens = append(tokens, walkExpr(arg)...)
		}
		return tokens
	case *ast.IfStmt:
		tokens := walkExpr(stmt.Condition)
		tokens = append(tokens, walkFunctionBlock(stmt.ThenBlock)...)
		tokens = append(tokens, walkFunctionBlock(stmt.ElseBlock)...)
		return tokens
	case *ast.ReturnStmt:
		return walkExpr(stmt.Value)
	case *ast.ExprStmt:
		return walkExpr(stmt.Expr)
	default:
		return nil
	}
}

func walkExpr(expr ast.Expr) []SemanticToken {
	if expr == nil {
		return nil
	}

	switch e := expr.(type) {
	case *ast.BinaryExpr:
		tokens := walkExpr(e.Left)
		return append(tokens, walkExpr(e.Right)...)
	case *ast.UnaryExpr:
		return walkExpr(e.Value)
	case *ast.ParenExpr:
		return walkExpr(e.Value)
	case *ast.TupleExpr:
		var tokens []SemanticToken
		for _, el := range e.Elements {
			tokens = append(tokens, walkExpr(el)...)
		}
		return tokens
	case *ast.IndexExpr:
		tokens := walkExpr(e.Target)
		return append(tokens, walkExpr(e.Index)...)
	case *ast.FieldAccessExpr:
		return walkExpr(e.Target)
	case *ast.CallExpr:
		return walkCallExpr(e)
	case *ast.CalleePath:
		var tokens []SemanticToken
		for _, part := range e.Parts {
			tokens = append(tokens, makeToken(part.Pos, part.EndPos, part.Value, "function", 0))
		}
		return tokens
	case *ast.IdentExpr:
		return []SemanticToken{makeToken(e.Pos, e.EndPos, e.Name, "variable", 0)}
	case *ast.StructLiteralExpr:
		var tokens []SemanticToken
		for _, field := range e.Fields {
			tokens = append(tokens, makeToken(field.Name.Pos, field.Name.EndPos, field.Name.Value, "property", 0))
			tokens = append(tokens, walkExpr(field.Value)...)
		}
		return tokens
	default:
		return nil
	}
}

func walkCallExpr(call *ast.CallExpr) []SemanticToken {
	tokens := walkExpr(call.Callee)

	for _, g := range call.Generic {
		tokens = append(tokens, typeReferenceToken(&g)...)
	}
	for _, arg := range call.Args {
		tokens = append(tokens, walkExpr(arg)...)
	}

	return tokens
}

func makeToken(pos, endPos ast.Position, value, tokenType string, decl int) SemanticToken {
	length := endPos.Column - pos.Column
	if length <= 0 {
		length = len(value)
	}

	return SemanticToken{
		Line:           uint32(pos.Line - 1),
		StartChar:      uint32(pos.Column - 1),
		Length:         uint32(length),
		TokenType:      indexOf(tokenType, SemanticTokenTypes),
		TokenModifiers: decl << indexOf("declaration", SemanticTokenModifiers),
	}
}

// typeReferenceToken collects a token for a type reference
// (e.g., parameter types, return types, generic types)
func typeReferenceToken(t *ast.VariableType) []SemanticToken {
	if t == nil || t.Name.Value == "" {
		return nil
	}
	return []SemanticToken{
		makeToken(t.Name.Pos, t.Name.EndPos, t.Name.Value, "type", 0),
	}
}

// indexOf returns the index of a string in a list, or -1 if not found
func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return -1
}
