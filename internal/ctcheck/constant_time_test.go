package ctcheck

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

// secretPackages handle key material and must compare it in constant time.
var secretPackages = []string{
	"github.com/go-i2p/cryptokit",
	"github.com/go-i2p/cryptokit/backend",
	"github.com/go-i2p/cryptokit/buffer",
	"github.com/go-i2p/cryptokit/memory",
}

func load(t *testing.T, patterns ...string) []*packages.Package {
	t.Helper()
	cfg := &packages.Config{
		Mode: packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo | packages.NeedFiles | packages.NeedName,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			t.Fatalf("%s: %v", pkg.PkgPath, e)
		}
	}
	return pkgs
}

func TestNoDirectByteComparison(t *testing.T) {
	var findings []string
	for _, pkg := range load(t, secretPackages...) {
		for _, file := range pkg.Syntax {
			ast.Inspect(file, func(n ast.Node) bool {
				switch n := n.(type) {
				case *ast.BinaryExpr:
					if n.Op != token.EQL && n.Op != token.NEQ {
						return true
					}
					if isBytes(pkg.TypesInfo.TypeOf(n.X)) && isBytes(pkg.TypesInfo.TypeOf(n.Y)) {
						findings = append(findings, fmt.Sprintf("%s: avoid == on byte arrays; use cryptokit.Equal",
							pkg.Fset.Position(n.Pos())))
					}
				case *ast.SelectorExpr:
					obj := pkg.TypesInfo.Uses[n.Sel]
					if obj == nil || obj.Pkg() == nil || obj.Pkg().Path() != "bytes" {
						return true
					}
					if name := obj.Name(); name == "Equal" || name == "Compare" {
						findings = append(findings, fmt.Sprintf("%s: bytes.%s exits early; use cryptokit.Equal",
							pkg.Fset.Position(n.Pos()), name))
					}
				}
				return true
			})
		}
	}
	if len(findings) > 0 {
		t.Fatalf("constant-time policy violation:\n%s", strings.Join(findings, "\n"))
	}
}

func TestCompareLoopHasNoEarlyExit(t *testing.T) {
	pkgs := load(t, "github.com/go-i2p/cryptokit")
	var found bool
	for _, pkg := range pkgs {
		for _, file := range pkg.Syntax {
			for _, decl := range file.Decls {
				fn, ok := decl.(*ast.FuncDecl)
				if !ok || fn.Recv != nil || fn.Name.Name != "ConstantTimeCompare" {
					continue
				}
				found = true
				ast.Inspect(fn.Body, func(n ast.Node) bool {
					loop, ok := n.(*ast.ForStmt)
					if !ok {
						return true
					}
					ast.Inspect(loop.Body, func(n ast.Node) bool {
						switch n := n.(type) {
						case *ast.ReturnStmt, *ast.BranchStmt, *ast.IfStmt, *ast.SwitchStmt:
							t.Errorf("%s: data-dependent control flow in compare loop", pkg.Fset.Position(n.Pos()))
						}
						return true
					})
					return false
				})
			}
		}
	}
	if !found {
		t.Fatal("ConstantTimeCompare not found")
	}
}

func isBytes(typ types.Type) bool {
	if typ == nil {
		return false
	}
	switch tt := typ.(type) {
	case *types.Slice:
		return isByte(tt.Elem())
	case *types.Array:
		return isByte(tt.Elem())
	case *types.Pointer:
		return isBytes(tt.Elem())
	case *types.Named:
		return isBytes(tt.Underlying())
	default:
		return false
	}
}

func isByte(t types.Type) bool {
	basic, ok := t.(*types.Basic)
	return ok && basic.Kind() == types.Byte
}
