package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"learnassist/internal/domain/entity"
	"learnassist/internal/infrastructure/validator"
	"learnassist/internal/prompt"
)

// promptKinds maps the CLI verb to a fresh request value.
var promptKinds = map[string]func() entity.Request{
	"analyze":   func() entity.Request { return &entity.AnalyzeContentRequest{} },
	"generate":  func() entity.Request { return &entity.GenerateContentRequest{} },
	"recommend": func() entity.Request { return &entity.RecommendationRequest{} },
	"schedule":  func() entity.Request { return &entity.ScheduleRequest{} },
}

func newPromptCmd() *cobra.Command {
	var (
		file   string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:       "prompt <analyze|generate|recommend|schedule>",
		Short:     "Print the instructions a request would send, without calling the provider",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"analyze", "generate", "recommend", "schedule"},
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if file != "" && file != "-" {
				f, err := os.Open(file)
				if err != nil {
					return fmt.Errorf("open request file: %w", err)
				}
				defer f.Close()
				in = f
			}
			return runPrompt(cmd.OutOrStdout(), cmd.ErrOrStderr(), in, args[0], asJSON)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON request body (default stdin)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the prompt as JSON")
	return cmd
}

func runPrompt(out, errOut io.Writer, in io.Reader, kind string, asJSON bool) error {
	newReq, ok := promptKinds[kind]
	if !ok {
		return fmt.Errorf("unknown request kind %q", kind)
	}

	ptr := newReq()
	if err := json.NewDecoder(in).Decode(ptr); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode request: %w", err)
	}
	req := deref(ptr)

	rep := validator.NewRequestValidator().Inspect(req)
	if !rep.OK() {
		fmt.Fprintf(errOut, "warning: missing required fields: %s\n", strings.Join(rep.Missing, ", "))
	}
	if rep.UnknownMode {
		fmt.Fprintf(errOut, "warning: mode %q adds no instructions (known: %s)\n",
			req.Mode(), strings.Join(prompt.Modes(req.Endpoint()), ", "))
	}

	p, err := prompt.Build(req)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	}
	fmt.Fprintf(out, "== system ==\n%s\n\n== user ==\n%s\n", p.System, p.User)
	return nil
}

// deref turns the decode target back into the value type the builder switches on.
func deref(req entity.Request) entity.Request {
	switch r := req.(type) {
	case *entity.AnalyzeContentRequest:
		return *r
	case *entity.GenerateContentRequest:
		return *r
	case *entity.RecommendationRequest:
		return *r
	case *entity.ScheduleRequest:
		return *r
	default:
		return req
	}
}
