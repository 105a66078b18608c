// Package codegen exports a pattern as Go source that reproduces the
// tester's matching behaviour with github.com/dlclark/regexp2.
package codegen

import (
	"bytes"
	"fmt"
	"go/token"
	"strings"
	"unicode"

	"github.com/dave/jennifer/jen"
	"github.com/dlclark/regexp2"

	"github.com/zjrosen/rexy/internal/log"
	"github.com/zjrosen/rexy/internal/regex"
)

const regexp2Path = "github.com/dlclark/regexp2"

// Config holds the configuration for code generation.
type Config struct {
	Pattern string
	Flags   regex.Flags
	Dialect regex.Dialect
	Package string // defaults to "main"
	Func    string // defaults to "Match"
}

// Generator renders Go source for one pattern.
type Generator struct {
	config Config
	engine *regex.Regexp2Engine
	file   *jen.File
}

// New creates a generator, filling in defaults.
func New(config Config) *Generator {
	if config.Package == "" {
		config.Package = "main"
	}
	if config.Func == "" {
		config.Func = "Match"
	}
	return &Generator{
		config: config,
		engine: regex.NewRegexp2Engine(config.Dialect, 0),
		file:   jen.NewFile(config.Package),
	}
}

// Generate validates the pattern and returns formatted Go source. An invalid
// pattern fails with a *regex.PatternError.
func (g *Generator) Generate() ([]byte, error) {
	if !token.IsIdentifier(g.config.Package) {
		return nil, fmt.Errorf("invalid package name %q", g.config.Package)
	}
	if !token.IsIdentifier(g.config.Func) {
		return nil, fmt.Errorf("invalid function name %q", g.config.Func)
	}
	if g.config.Package == "main" && (g.config.Func == "main" || g.config.Func == "init") {
		return nil, fmt.Errorf("function name %q is reserved in package main", g.config.Func)
	}
	if g.config.Pattern == "" {
		return nil, &regex.PatternError{Kind: regex.InvalidSyntax, Message: "empty pattern"}
	}
	compiled, err := g.engine.Compile(g.config.Pattern, g.config.Flags)
	if err != nil {
		return nil, err
	}

	g.file.HeaderComment(fmt.Sprintf("Code generated by rexy for pattern: %s", oneLine(g.config.Pattern)))
	g.file.HeaderComment("DO NOT EDIT.")

	g.groupConstants(compiled.Groups())
	g.patternVar()
	g.matchFunc()
	if g.config.Package == "main" {
		g.mainFunc()
	}

	var buf bytes.Buffer
	if err := g.file.Render(&buf); err != nil {
		return nil, fmt.Errorf("rendering generated code: %w", err)
	}
	log.Debug(log.CatRegex, "Generated code", "func", g.config.Func, "bytes", buf.Len())
	return buf.Bytes(), nil
}

func (g *Generator) patternName() string {
	fn := []rune(g.config.Func)
	fn[0] = unicode.ToLower(fn[0])
	return string(fn) + "Pattern"
}

// groupConstants declares <Func>Group<Name> for every named group.
func (g *Generator) groupConstants(groups []regex.GroupInfo) {
	var defs []jen.Code
	for _, group := range groups {
		if group.Name == "" {
			continue
		}
		name := g.config.Func + "Group" + exportName(group.Name)
		if !token.IsIdentifier(name) {
			continue
		}
		defs = append(defs, jen.Id(name).Op("=").Lit(group.Number))
	}
	if len(defs) == 0 {
		return
	}
	g.file.Comment("Capture group numbers by name.")
	g.file.Const().Defs(defs...)
}

func (g *Generator) patternVar() {
	g.file.Commentf("%s was compiled from %s with flags %q.", g.patternName(), oneLine(g.config.Pattern), g.config.Flags.String())
	g.file.Var().Id(g.patternName()).Op("=").Qual(regexp2Path, "MustCompile").Call(
		jen.Lit(g.config.Pattern),
		g.optionsExpr(),
	)
}

func (g *Generator) optionsExpr() *jen.Statement {
	names := optionNames(g.engine.Options(g.config.Flags))
	if len(names) == 0 {
		return jen.Qual(regexp2Path, "None")
	}
	expr := jen.Qual(regexp2Path, names[0])
	for _, name := range names[1:] {
		expr = expr.Op("|").Qual(regexp2Path, name)
	}
	return expr
}

func (g *Generator) matchFunc() {
	flags := g.config.Flags
	pattern := jen.Id(g.patternName())

	var body []jen.Code
	body = append(body,
		jen.Var().Id("out").Index().String(),
		jen.List(jen.Id("m"), jen.Err()).Op(":=").Add(pattern).Dot("FindStringMatch").Call(jen.Id("s")),
	)
	if flags.Sticky {
		body = append(body, jen.Id("next").Op(":=").Lit(0))
	}

	var loop []jen.Code
	if flags.Sticky {
		loop = append(loop,
			jen.If(jen.Id("m").Dot("Index").Op("!=").Id("next")).Block(jen.Break()),
			jen.Id("next").Op("=").Id("m").Dot("Index").Op("+").Id("m").Dot("Length"),
			// FindNextMatch steps past an empty match, so the cursor must too.
			jen.If(jen.Id("m").Dot("Length").Op("==").Lit(0)).Block(jen.Id("next").Op("++")),
		)
	}
	loop = append(loop, jen.Id("out").Op("=").Append(jen.Id("out"), jen.Id("m").Dot("String").Call()))
	if flags.Global {
		loop = append(loop, jen.List(jen.Id("m"), jen.Err()).Op("=").Add(pattern).Dot("FindNextMatch").Call(jen.Id("m")))
	} else {
		loop = append(loop, jen.Break())
	}

	body = append(body,
		jen.For(jen.Err().Op("==").Nil().Op("&&").Id("m").Op("!=").Nil()).Block(loop...),
		jen.Return(jen.Id("out"), jen.Err()),
	)

	what := "the first match"
	if flags.Global {
		what = "every match"
	}
	g.file.Commentf("%s returns the text of %s of the pattern in s.", g.config.Func, what)
	g.file.Func().Id(g.config.Func).
		Params(jen.Id("s").String()).
		Params(jen.Index().String(), jen.Error()).
		Block(body...)
}

func (g *Generator) mainFunc() {
	fail := func() jen.Code {
		return jen.If(jen.Err().Op("!=").Nil()).Block(
			jen.Qual("fmt", "Fprintln").Call(jen.Qual("os", "Stderr"), jen.Err()),
			jen.Qual("os", "Exit").Call(jen.Lit(1)),
		)
	}
	g.file.Func().Id("main").Params().Block(
		jen.List(jen.Id("input"), jen.Err()).Op(":=").Qual("io", "ReadAll").Call(jen.Qual("os", "Stdin")),
		fail(),
		jen.List(jen.Id("matches"), jen.Err()).Op(":=").Id(g.config.Func).Call(jen.String().Call(jen.Id("input"))),
		fail(),
		jen.For(jen.List(jen.Id("_"), jen.Id("m")).Op(":=").Range().Id("matches")).Block(
			jen.Qual("fmt", "Println").Call(jen.Id("m")),
		),
	)
}

var optionIdents = []struct {
	opt  regexp2.RegexOptions
	name string
}{
	{regexp2.ECMAScript, "ECMAScript"},
	{regexp2.RE2, "RE2"},
	{regexp2.IgnoreCase, "IgnoreCase"},
	{regexp2.Multiline, "Multiline"},
	{regexp2.Singleline, "Singleline"},
	{regexp2.Unicode, "Unicode"},
}

// optionNames lists the regexp2 option identifiers set in opts.
func optionNames(opts regexp2.RegexOptions) []string {
	var names []string
	for _, o := range optionIdents {
		if opts&o.opt != 0 {
			names = append(names, o.name)
		}
	}
	return names
}

func exportName(s string) string {
	var b strings.Builder
	upper := true
	for _, r := range s {
		if r == '_' {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

func oneLine(s string) string {
	return strings.NewReplacer("\r", `\r`, "\n", `\n`).Replace(s)
}
