// Package shell implements the interactive figmatest REPL.
package shell

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/ormasoftchile/figmatest/pkg/extract"
	"github.com/ormasoftchile/figmatest/pkg/generator"
	"github.com/ormasoftchile/figmatest/pkg/render"
	"github.com/ormasoftchile/figmatest/pkg/service"
)

// Backend is the part of service.Service the shell drives.
type Backend interface {
	Generate(ctx context.Context, req service.Request) (*service.Response, error)
	Extract(ctx context.Context, fileKey, where string) (*extract.Result, error)
}

// Shell is a line-oriented front end over a Backend.
type Shell struct {
	backend Backend
	output  io.Writer
	mode    string
}

// New creates a shell whose generate command defaults to mode.
func New(backend Backend, mode string) *Shell {
	if mode == "" {
		mode = string(generator.ModeFixed)
	}
	return &Shell{backend: backend, output: os.Stdout, mode: mode}
}

// SetOutput redirects command output.
func (s *Shell) SetOutput(w io.Writer) { s.output = w }

// Run starts the interactive loop. It returns nil on quit, Ctrl-C or EOF.
func (s *Shell) Run(ctx context.Context) error {
	completer := readline.NewPrefixCompleter(
		readline.PcItem("extract"),
		readline.PcItem("generate"),
		readline.PcItem("mode",
			readline.PcItem(string(generator.ModeFixed)),
			readline.PcItem(string(generator.ModeAdaptive)),
			readline.PcItem(string(generator.ModeAI)),
		),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          s.prompt(),
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return fmt.Errorf("init readline: %w", err)
	}
	defer rl.Close()

	fmt.Fprintf(s.output, "figmatest shell, mode=%s\n", s.mode)
	fmt.Fprintf(s.output, "Type 'help' for available commands.\n\n")

	for {
		rl.SetPrompt(s.prompt())
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt || err == io.EOF {
				return nil
			}
			return err
		}
		if quit := s.Exec(ctx, line); quit {
			return nil
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

func (s *Shell) prompt() string {
	return fmt.Sprintf("figmatest[%s]> ", s.mode)
}

// Exec runs one command line and reports whether the shell should exit.
func (s *Shell) Exec(ctx context.Context, line string) (quit bool) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}

	switch parts[0] {
	case "extract", "x":
		s.handleExtract(ctx, parts)
	case "generate", "g":
		s.handleGenerate(ctx, parts)
	case "mode", "m":
		s.handleMode(parts)
	case "help", "?":
		s.handleHelp()
	case "quit", "q", "exit":
		fmt.Fprintln(s.output, "Bye.")
		return true
	default:
		fmt.Fprintf(s.output, "Unknown command: %q. Type 'help' for available commands.\n", parts[0])
	}
	return false
}

// handleExtract runs: extract <file_key> [filter expression...]
func (s *Shell) handleExtract(ctx context.Context, parts []string) {
	if len(parts) < 2 {
		fmt.Fprintln(s.output, "Usage: extract <file_key> [filter]")
		return
	}
	where := strings.Join(parts[2:], " ")
	result, err := s.backend.Extract(ctx, parts[1], where)
	if err != nil {
		fmt.Fprintf(s.output, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.output, "%s: %d elements\n", result.FileName, result.TotalElements)
	if err := render.Elements(s.output, result.Elements); err != nil {
		fmt.Fprintf(s.output, "Error: %v\n", err)
	}
}

// handleGenerate runs: generate <file_key> [mode] [instructions...]
func (s *Shell) handleGenerate(ctx context.Context, parts []string) {
	if len(parts) < 2 {
		fmt.Fprintln(s.output, "Usage: generate <file_key> [mode] [instructions...]")
		return
	}
	req := service.Request{FileKey: parts[1], Mode: s.mode}
	if len(parts) > 2 {
		req.Mode = parts[2]
		req.Instructions = strings.Join(parts[3:], " ")
	}

	resp, err := s.backend.Generate(ctx, req)
	if err != nil {
		fmt.Fprintf(s.output, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.output, "%s: %d elements, mode=%s\n", resp.FileName, resp.TotalElements, resp.Mode)
	if err := render.Steps(s.output, resp.TestCases); err != nil {
		fmt.Fprintf(s.output, "Error: %v\n", err)
	}
}

func (s *Shell) handleMode(parts []string) {
	if len(parts) < 2 {
		fmt.Fprintf(s.output, "mode=%s\n", s.mode)
		return
	}
	s.mode = string(generator.ParseMode(parts[1]))
	fmt.Fprintf(s.output, "mode=%s\n", s.mode)
}

func (s *Shell) handleHelp() {
	fmt.Fprintln(s.output, "Available commands:")
	fmt.Fprintln(s.output, "  extract (x) <key> [filter]          List interactive elements, optionally filtered")
	fmt.Fprintln(s.output, "  generate (g) <key> [mode] [text]    Generate test steps; text is passed as instructions")
	fmt.Fprintln(s.output, "  mode (m) [fixed|adaptive|ai]        Show or set the default mode")
	fmt.Fprintln(s.output, "  help (?)                            Show this help")
	fmt.Fprintln(s.output, "  quit (q)                            Exit the shell")
}
