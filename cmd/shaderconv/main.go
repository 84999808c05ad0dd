// Command shaderconv exposes the Lowerer, Deprecation Converter, and
// Dialect classifier as a single CLI (spec §6/§2 ambient stack).
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/nikitalita/shaderconv/action"
	"github.com/nikitalita/shaderconv/convert"
	"github.com/nikitalita/shaderconv/lex"
	"github.com/nikitalita/shaderconv/lower"
	"github.com/nikitalita/shaderconv/parse"
)

var fs afero.Fs = afero.NewOsFs()

func newLogger(verbose bool) zerolog.Logger {
	if !verbose {
		return zerolog.Nop()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}

func readFile(path string) (string, error) {
	b, err := afero.ReadFile(fs, path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(b), nil
}

func newRootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:   "shaderconv",
		Short: "Lower and migrate shader DSL source",
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable structured logging to stderr")
	root.AddCommand(newCompileCmd(&verbose), newConvertCmd(&verbose), newClassifyCmd(&verbose))
	return root
}

func newCompileCmd(verbose *bool) *cobra.Command {
	var lowEnd bool
	cmd := &cobra.Command{
		Use:   "compile <shader.shd>",
		Short: "Lower a current-dialect shader to GLSL text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(*verbose)
			source, err := readFile(args[0])
			if err != nil {
				return err
			}
			toks, err := lex.Tokenize(source)
			if err != nil {
				return fmt.Errorf("lex: %w", err)
			}
			shader, err := parse.Parse(toks)
			if err != nil {
				return fmt.Errorf("parse: %w", err)
			}
			gen, err := lower.Compile(shader, lower.Options{
				Mode:       shader.Mode,
				Path:       args[0],
				Defaults:   action.NewDefaultIdentifierActions(),
				Actions:    action.NewIdentifierActions(),
				LowEndMode: lowEnd,
			})
			if err != nil {
				return fmt.Errorf("compile: %w", err)
			}
			log.Debug().Str("path", args[0]).Int("defines", len(gen.Defines)).Msg("lowered shader")
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(gen)
		},
	}
	cmd.Flags().BoolVar(&lowEnd, "low-end", false, "emit low-end-mode sampler references")
	return cmd
}

func newConvertCmd(verbose *bool) *cobra.Command {
	var addComments, failOnUnported, write bool
	cmd := &cobra.Command{
		Use:   "convert <shader.shd>",
		Short: "Migrate legacy-dialect shader source to the current dialect",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(*verbose)
			source, err := readFile(args[0])
			if err != nil {
				return err
			}
			c := convert.New(source)
			c.AddComments = addComments
			c.FailOnUnported = failOnUnported
			c.Log = log
			if !c.Convert() {
				return fmt.Errorf("%s:%d: %s", args[0], c.ErrorLine(), c.ErrorText())
			}
			out := c.Emit()
			if write {
				return afero.WriteFile(fs, args[0], []byte(out), 0o644)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().BoolVar(&addComments, "comments", true, "stamp unsupported/ambiguous sites with a diagnostic comment")
	cmd.Flags().BoolVar(&failOnUnported, "fail-on-unported", true, "fail when a construct has no current-dialect equivalent")
	cmd.Flags().BoolVar(&write, "write", false, "overwrite the input file instead of printing to stdout")
	return cmd
}

func newClassifyCmd(verbose *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify <shader.shd>",
		Short: "Report whether a shader is written in the legacy dialect",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(*verbose)
			source, err := readFile(args[0])
			if err != nil {
				return err
			}
			c := convert.New(source)
			legacy := c.IsLegacy()
			log.Debug().Str("path", args[0]).Bool("legacy", legacy).Msg("classified shader")
			if legacy {
				fmt.Fprintln(cmd.OutOrStdout(), "legacy")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "current")
			}
			return nil
		},
	}
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "shaderconv:", err)
		os.Exit(1)
	}
}
