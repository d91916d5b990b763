package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"github.com/hashemi/Sift/sift"
)

const (
	appName      = "sift"
	historyFile  = ".sift_history"
	historyEnv   = "SIFT_HISTORY"
	maxDepthEnv  = "SIFT_MAX_DEPTH"
	defaultDepth = 100000
	promptMain   = "sift> "
	promptCont   = "  ... "
)

var banner = fmt.Sprintf("Sift %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.", sift.Version)

func red(s string) string  { return "\x1b[31m" + s + "\x1b[0m" }
func blue(s string) string { return "\x1b[94m" + s + "\x1b[0m" }

func main() {
	if len(os.Args) < 2 {
		os.Exit(cmdRepl(nil))
	}

	cmd := os.Args[1]
	switch cmd {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl(os.Args[2:]))
	case "version":
		fmt.Println(sift.Version)
		return
	case "-h", "--help", "help":
		usage()
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`Sift %s (built %s)

Usage:
  %s run [-depth N] <file>     Evaluate every expression in a file.
  %s repl [-depth N]           Start the REPL (default when no command is given).
  %s version                   Print the compiled version

Environment:
  %s   default for -depth (0 = unlimited)
  %s     REPL history file (default ~/%s)

`, sift.Version, sift.BuildDate, appName, appName, appName, maxDepthEnv, historyEnv, historyFile)
}

// depthFlag registers -depth with a default taken from SIFT_MAX_DEPTH.
func depthFlag(fs *flag.FlagSet) *int {
	def := defaultDepth
	if s := os.Getenv(maxDepthEnv); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 0 {
			def = n
		} else {
			fmt.Fprintf(os.Stderr, "%s: ignoring invalid %s=%q\n", appName, maxDepthEnv, s)
		}
	}
	return fs.Int("depth", def, "maximum evaluation depth; 0 means no limit")
}

func newInterpreter(depth int) *sift.Interpreter {
	ip := sift.NewInterpreter(sift.WithMaxDepth(depth))
	sift.RegisterFileBuiltins(ip)
	return ip
}

// -----------------------------------------------------------------------------
// run
// -----------------------------------------------------------------------------

func cmdRun(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	depth := depthFlag(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s run [-depth N] <file>\n", appName)
		return 2
	}

	file := fs.Arg(0)
	src, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, file, err)
		return 1
	}

	ip := newInterpreter(*depth)
	if _, err := ip.EvalSourceNamed(file, string(src)); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}
	return 0
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

func historyPath() string {
	if p := os.Getenv(historyEnv); p != "" {
		return p
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, historyFile)
}

func cmdRepl(args []string) int {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	depth := depthFlag(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	fmt.Println(banner)
	histPath := historyPath()

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
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
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

	ip := newInterpreter(*depth)

	for {
		code, ok := readByParseProbe(ln, promptMain, promptCont)
		if !ok {
			fmt.Println()
			break
		}

		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if trimmed == ":quit" || trimmed == "quit" {
			return 0
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))

		v, err := ip.EvalSourceNamed("<repl>", code)
		if err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
			continue
		}
		fmt.Println(blue(sift.FormatValue(v)))
	}

	return 0
}

// readByParseProbe keeps prompting for continuation lines while the input
// so far ends inside an unfinished list, string or quote.
func readByParseProbe(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if _, perr := sift.ParseAll(src); sift.IsIncomplete(perr) {
			continue
		}
		return src, true
	}
}
