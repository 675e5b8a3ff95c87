package main

import (
	"fmt"
	"io"
	"os"

	"github.com/tinyrange/cfront/internal/diag"
	lx "github.com/tinyrange/cfront/internal/lexer"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: debug_tokens <file>")
		os.Exit(2)
	}
	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "read error: %v\n", err)
		os.Exit(1)
	}
	ok, err := dumpTokens(os.Stdout, os.Stderr, os.Args[1], string(data))
	if err != nil {
		fmt.Fprintf(os.Stderr, "write error: %v\n", err)
		os.Exit(1)
	}
	if !ok {
		os.Exit(1)
	}
}

// dumpTokens lists the tokens of src on out and its lexical errors on errw.
func dumpTokens(out, errw io.Writer, file, src string) (bool, error) {
	issues := &diag.Collector{}
	for _, t := range lx.Tokenize(src, file, issues) {
		if _, err := fmt.Fprintf(out, "%d %q at %d:%d-%d:%d\n", t.Type, t.String(), t.Range.Start.Line, t.Range.Start.Col, t.Range.End.Line, t.Range.End.Col); err != nil {
			return false, err
		}
	}
	if err := issues.Show(errw); err != nil {
		return false, err
	}
	return issues.OK(), nil
}
