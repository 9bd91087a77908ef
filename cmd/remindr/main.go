package main

import (
	"flag"
	"fmt"
	"io"
	"os"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(argv []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("remindr", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to remindr.toml")
	fs.Usage = func() { printUsage(stderr) }
	if err := fs.Parse(argv); err != nil {
		return err
	}

	args := fs.Args()
	cmd := "open"
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}

	switch cmd {
	case "open":
		return cmdOpen(*configPath, args)
	case "list":
		return cmdList(*configPath, stdout)
	case "new":
		return cmdNew(*configPath, args, stdout)
	case "export":
		return cmdExport(*configPath, args, stdout)
	case "version", "-v", "--version":
		fmt.Fprintf(stdout, "remindr version %s\n", versionString())
		return nil
	case "help", "-h", "--help":
		printUsage(stdout)
		return nil
	default:
		printUsage(stderr)
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `remindr - block notes in the terminal

Usage: remindr [--config path] <command> [args]

Commands:
  open [id]          Open the editor (default), optionally on a document
  list               List documents
  new <title>        Create a document and print its id
  export [--render] <id>
                     Print a document as Markdown
  version            Print version information
  help               Show this help message

Config is read from --config, then $REMINDR_CONFIG, then
$XDG_CONFIG_HOME/remindr/remindr.toml.`)
}
