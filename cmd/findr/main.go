// Command findr walks directory trees and prints the entries matching a
// find-style predicate expression.
//
//	findr src -name *.go ! -path */vendor/*
//	findr / -type d -empty
//	findr --ast -size +1M -or -mtime -7
//
// Arguments before the first operator or test are the roots to walk; with
// none given the walk starts at the current directory. An empty expression
// matches everything.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pbrass/findr/core/ast"
	"github.com/pbrass/findr/runtime/eval"
	"github.com/pbrass/findr/runtime/parser"
	"github.com/pbrass/findr/runtime/walker"
)

func main() {
	rootCmd := newRootCmd()

	if err := rootCmd.Execute(); err != nil {
		var perr *parser.ParseError
		if errors.As(err, &perr) {
			fmt.Fprintln(os.Stderr, perr.Diagnostic())
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "findr [flags] [root...] [expression]",
		Short: "Search directory trees with find-style expressions",
		// The expression grammar owns the '-' words, so cobra must not
		// try to parse them as flags.
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args)
		},
	}
	return cmd
}

type options struct {
	printAST bool
	debug    bool
}

// extractFlags pulls our own flags out of the raw argument list. Flag
// recognition ends at the first expression token: past that point every
// word, including one spelled --ast, belongs to the expression grammar.
func extractFlags(args []string) (options, []string, bool) {
	var opts options
	rest := make([]string, 0, len(args))
	for i, a := range args {
		switch a {
		case "--ast":
			opts.printAST = true
		case "--debug":
			opts.debug = true
		case "-h", "--help":
			return opts, nil, true
		default:
			if startsExpression(a) {
				return opts, append(rest, args[i:]...), false
			}
			rest = append(rest, a)
		}
	}
	return opts, rest, false
}

func startsExpression(a string) bool {
	return strings.HasPrefix(a, "-") || a == "(" || a == ")" || a == "!"
}

// splitArgs separates leading root paths from the expression. The expression
// begins at the first argument that can only be expression syntax.
func splitArgs(args []string) (roots, expr []string) {
	for i, a := range args {
		if startsExpression(a) {
			return args[:i], args[i:]
		}
	}
	return args, nil
}

func run(cmd *cobra.Command, args []string) error {
	opts, rest, help := extractFlags(args)
	if help {
		return cmd.Help()
	}
	if opts.debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	roots, exprArgs := splitArgs(rest)
	if len(roots) == 0 {
		roots = []string{"."}
	}

	input := strings.Join(exprArgs, " ")
	if strings.TrimSpace(input) == "" {
		input = "-true"
	}

	expr, err := parser.Parse(input)
	if err != nil {
		return err
	}

	if opts.printAST {
		fmt.Fprintln(cmd.OutOrStdout(), expr.String())
		return nil
	}

	return findAll(cmd, expr, roots)
}

func findAll(cmd *cobra.Command, expr ast.Expr, roots []string) error {
	matcher, err := eval.Compile(expr)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	w := walker.New(matcher, logrus.StandardLogger())
	return w.Walk(cmd.Context(), roots, func(path string, _ fs.DirEntry) error {
		_, err := fmt.Fprintln(out, path)
		return err
	})
}
