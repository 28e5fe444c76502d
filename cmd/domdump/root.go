package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	dom "github.com/dpotapov/go-dom"
)

type options struct {
	format  string
	query   string
	indent  int
	verbose bool
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "domdump [file]",
		Short: "Parse a markup document and print its tree",
		Long: `domdump parses a markup document (from a file, or stdin when the file is
omitted or "-") and prints the resulting tree.

Formats:
  tree  - indented node listing
  html  - HTML
  xml   - XML
  yaml  - YAML`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "-"
			if len(args) == 1 {
				name = args[0]
			}
			return run(cmd, name, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "tree", "output format: tree, html, xml or yaml")
	cmd.Flags().StringVarP(&opts.query, "select", "s", "", "print only nodes matching this expression")
	cmd.Flags().IntVar(&opts.indent, "indent", 2, "XML indentation, negative for none")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")

	return cmd
}

func run(cmd *cobra.Command, name string, opts options) error {
	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: level,
	}))

	write, err := writer(opts)
	if err != nil {
		return report(cmd, err)
	}

	src, err := readSource(cmd.InOrStdin(), name)
	if err != nil {
		return report(cmd, err)
	}
	logger.Debug("read source", slog.String("file", name), slog.Int("bytes", len(src)))

	root, err := dom.Parse(src)
	if err != nil {
		var perr *dom.ParseError
		if errors.As(err, &perr) {
			logger.Debug("parse failed",
				slog.String("kind", perr.Kind.String()),
				slog.Int("offset", perr.Offset))
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n%s\n", name, err, perr.Context(src))
			return err
		}
		return report(cmd, err)
	}

	nodes := []*dom.Node{root}
	if opts.query != "" {
		nodes, err = dom.Select(root, opts.query)
		if err != nil {
			return report(cmd, err)
		}
		logger.Debug("selected nodes", slog.String("query", opts.query), slog.Int("count", len(nodes)))
	}

	for _, n := range nodes {
		if err := write(cmd.OutOrStdout(), n); err != nil {
			return report(cmd, err)
		}
	}
	return nil
}

// writer returns the serializer for the requested format.
func writer(opts options) (func(io.Writer, *dom.Node) error, error) {
	switch opts.format {
	case "tree":
		return dom.Dump, nil
	case "html":
		return func(w io.Writer, n *dom.Node) error {
			if err := dom.Render(w, n); err != nil {
				return err
			}
			_, err := io.WriteString(w, "\n")
			return err
		}, nil
	case "xml":
		return func(w io.Writer, n *dom.Node) error {
			return dom.WriteXML(w, n, opts.indent)
		}, nil
	case "yaml":
		return dom.WriteYAML, nil
	}
	return nil, fmt.Errorf("unknown format %q", opts.format)
}

func readSource(stdin io.Reader, name string) (string, error) {
	var (
		b   []byte
		err error
	)
	if name == "-" {
		b, err = io.ReadAll(stdin)
	} else {
		b, err = os.ReadFile(name)
	}
	if err != nil {
		return "", fmt.Errorf("read source: %w", err)
	}
	return string(b), nil
}

func report(cmd *cobra.Command, err error) error {
	fmt.Fprintf(cmd.ErrOrStderr(), "domdump: %v\n", err)
	return err
}
