package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/npillmayer/lalr"
	"github.com/npillmayer/lalr/parser"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022–2023 Norbert Pillmayer <norbert@pillmayer.com>

*/

// lalrepl is an interactive sandbox for experimenting with LALR(1)
// grammars. Users enter productions, build the parse table for a target
// symbol, inspect it, and parse space-separated sentences, watching the
// reduction sequence.
//
//    lalrepl> E -> E + E
//    lalrepl> E -> x
//    lalrepl> :left +
//    lalrepl> :table E
//    lalrepl> :parse x + x + x
//
func main() {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	flag.Parse()
	gtrace.SyntaxTracer.SetTraceLevel(traceLevel(*tlevel))
	pterm.Info.Println("Welcome to lalrepl")
	pterm.Info.Println("Enter productions as 'E -> E + E', then ':table E'; ':help' lists commands")
	repl, err := readline.New("lalrepl> ")
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(3)
	}
	defer repl.Close()
	interp := &intp{repl: repl}
	interp.loop()
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func traceLevel(l string) tracing.TraceLevel {
	return tracing.TraceLevelFromString(l)
}

// intp is our interpreter object.
type intp struct {
	repl    *readline.Instance
	prods   []*lalr.Production
	classes []lalr.PrecedenceClass
	table   *lalr.ParseTable
}

func (intp *intp) loop() {
	pterm.Info.Println("Quit with <ctrl>D")
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF on ctrl-D
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if err := intp.eval(line); err != nil {
			pterm.Error.Println(err.Error())
		}
	}
}

func (intp *intp) eval(line string) error {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":help":
		intp.help()
		return nil
	case ":rules":
		for _, p := range intp.prods {
			pterm.Info.Println(p.String())
		}
		return nil
	case ":left":
		intp.classes = append(intp.classes, lalr.Left(symbols(fields[1:])...))
		intp.table = nil
		return nil
	case ":right":
		intp.classes = append(intp.classes, lalr.Right(symbols(fields[1:])...))
		intp.table = nil
		return nil
	case ":reset":
		intp.prods, intp.classes, intp.table = nil, nil, nil
		return nil
	case ":table":
		if len(fields) != 2 {
			return fmt.Errorf("usage: :table <target>")
		}
		return intp.buildTable(fields[1])
	case ":dot":
		if len(fields) != 2 {
			return fmt.Errorf("usage: :dot <filename>")
		}
		return intp.exportDOT(fields[1])
	case ":parse":
		return intp.parse(fields[1:])
	}
	return intp.addRule(fields)
}

func (intp *intp) help() {
	pterm.Info.Println("A -> X Y Z      add a production")
	pterm.Info.Println(":left t …       add a left-associative precedence class (ascending)")
	pterm.Info.Println(":right t …      add a right-associative precedence class (ascending)")
	pterm.Info.Println(":rules          list productions")
	pterm.Info.Println(":table <t>      build the parse table for target <t>")
	pterm.Info.Println(":dot <file>     export the state graph to Graphviz")
	pterm.Info.Println(":parse x y z    parse a sentence of space-separated terminals")
	pterm.Info.Println(":reset          discard grammar and table")
}

func (intp *intp) addRule(fields []string) error {
	if len(fields) < 3 || fields[1] != "->" {
		return fmt.Errorf("not a production (expected 'A -> X …'): %s", strings.Join(fields, " "))
	}
	intp.prods = append(intp.prods, lalr.NewProduction(fields[0], symbols(fields[2:])...))
	intp.table = nil
	return nil
}

func (intp *intp) buildTable(target string) error {
	g, err := lalr.NewGrammar(intp.prods,
		lalr.WithName("repl"), lalr.WithPrecedence(intp.classes...))
	if err != nil {
		return err
	}
	table, err := lalr.NewParseTable(g, target)
	if err != nil {
		return err
	}
	intp.table = table
	pterm.Info.Println(fmt.Sprintf("table built: %d states", len(table.States())))
	return nil
}

func (intp *intp) exportDOT(filename string) error {
	if intp.table == nil {
		return fmt.Errorf("no table built yet, use :table <target>")
	}
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	intp.table.ExportDOT(f)
	return nil
}

func (intp *intp) parse(words []string) error {
	if intp.table == nil {
		return fmt.Errorf("no table built yet, use :table <target>")
	}
	tokens := make([]interface{}, len(words))
	for i, w := range words {
		tokens[i] = w
	}
	result, err := parser.Parse(intp.table, parser.Tokens(tokens...),
		func(prod *lalr.Production, values ...interface{}) (interface{}, error) {
			pterm.Info.Println(fmt.Sprintf("reduce %v", prod))
			if len(values) == 1 {
				return values[0], nil
			}
			parts := make([]string, len(values))
			for i, v := range values {
				parts[i] = fmt.Sprint(v)
			}
			return "(" + strings.Join(parts, " ") + ")", nil
		})
	if err != nil {
		return err
	}
	pterm.Info.Println(fmt.Sprintf("accepted: %v", result))
	return nil
}

func symbols(words []string) []lalr.Symbol {
	syms := make([]lalr.Symbol, len(words))
	for i, w := range words {
		syms[i] = w
	}
	return syms
}
