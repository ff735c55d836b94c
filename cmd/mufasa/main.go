// Command mufasa runs Muffasa programs and hosts the REPL.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	mufasa "github.com/LidorTubul/Mufasalang"
)

const (
	appName     = "mufasa"
	historyFile = ".mufasa_history"
	promptMain  = ">>> "
	promptCont  = "... "
)

var (
	errColor    = color.New(color.FgRed)
	bannerColor = color.New(color.FgCyan)
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch cmd := os.Args[1]; cmd {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl())
	case "version":
		fmt.Println(mufasa.Version)
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`Mufasa %s

Usage:
  %s run [-vars] <file.muf>   Run a script; -vars dumps the final variables.
  %s repl                     Start the REPL.
  %s version                  Print the interpreter version.

`, mufasa.Version, appName, appName, appName)
}

// -----------------------------------------------------------------------------
// run
// -----------------------------------------------------------------------------

func cmdRun(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	vars := fs.Bool("vars", false, "print the final environment after the run")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s run [-vars] <file.muf>\n", appName)
		return 2
	}
	file := fs.Arg(0)

	src, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, file, err)
		return 1
	}

	in := mufasa.New()
	env, err := in.EvalSource(string(src))
	if err != nil {
		errColor.Fprintln(os.Stderr, mufasa.WrapErrorWithSource(err, string(src)))
		return 1
	}
	if *vars {
		fmt.Print(mufasa.DumpEnv(env))
	}
	return 0
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

func cmdRepl() int {
	bannerColor.Printf("Mufasa %s REPL\n", mufasa.Version)
	fmt.Println("Ctrl+C cancels input, Ctrl+D exits. Type :quit to exit.")

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	in := mufasa.New()
	env := mufasa.NewEnv()

	for {
		code, ok := readStatement(ln)
		if !ok {
			fmt.Println()
			return 0
		}
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit":
				return 0
			case ":vars":
				fmt.Print(mufasa.DumpEnv(env))
			default:
				fmt.Println("unknown command. Type :quit to exit.")
			}
			continue
		}

		prog, err := mufasa.ParseSource(code)
		if err != nil {
			errColor.Fprintln(os.Stderr, mufasa.WrapErrorWithSource(err, code))
			continue
		}
		if err := in.Execute(prog, env); err != nil {
			errColor.Fprintln(os.Stderr, mufasa.WrapErrorWithSource(err, code))
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}
}

// readStatement reads input lines until every opened brace is closed, so
// multi-line blocks can be typed at the REPL.
func readStatement(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if openBraces(b.String()) <= 0 {
			return b.String(), true
		}
	}
}

// openBraces counts unclosed '{' outside string literals.
func openBraces(src string) int {
	depth := 0
	inStr := false
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '"':
			inStr = !inStr
		case '{':
			if !inStr {
				depth++
			}
		case '}':
			if !inStr {
				depth--
			}
		}
	}
	return depth
}
