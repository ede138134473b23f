package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"httpclient/application/http"
	"httpclient/application/http/actor/client"
	"httpclient/application/http/status"
	"httpclient/application/util/uri"
	"httpclient/transport"
	"httpclient/transport/tcp"

	"github.com/benbjohnson/clock"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const usageLine = "Usage: httpclient [METHOD] URL"

var (
	errUsage       = errors.New("no URL given")
	errInvalidData = errors.New("form argument must be key=value")
)

type flags struct {
	data        []string
	readTimeout time.Duration
	maxSize     uint
	verbose     bool
	color       string
}

// run executes the command line in args and returns the process exit status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(stdout, usageLine)
		} else {
			fmt.Fprintf(stderr, "error: %v\n", err)
		}
		return 1
	}
	return 0
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "httpclient [METHOD] URL",
		Short: "Send one HTTP/1.1 request and print the response",
		Long: `httpclient sends a single GET or POST request over a plain TCP connection,
reads until the server closes it, and prints the status code and body.

METHOD is POST or GET. Anything other than POST sends a GET.
With more than two arguments the first one is taken as the URL.`,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(cmd.Context(), args, f, stdout, stderr)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.Flags().StringArrayVarP(&f.data, "data", "d", nil, "POST form argument as key=value, repeatable")
	cmd.Flags().DurationVar(&f.readTimeout, "read-timeout", 0, "give up reading the response after this long (0 waits forever)")
	cmd.Flags().UintVar(&f.maxSize, "max-size", 0, "fail when the response is larger than this many bytes (0 is unlimited)")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "log request stages to stderr")
	cmd.Flags().StringVar(&f.color, "color", "auto", "colour the status line: auto, always or never")

	return cmd
}

func execute(ctx context.Context, args []string, f flags, stdout, stderr io.Writer) error {
	method, rawURL, err := parseArgs(args)
	if err != nil {
		return err
	}

	form, err := parseForm(f.data)
	if err != nil {
		return err
	}

	paint, err := statusPainter(f.color, stdout)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if f.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	c := client.New(tcp.NewDialer(), logger, clock.New(), client.Options{
		Transport: transport.Options{
			ReadTimeout:     f.readTimeout,
			MaxResponseSize: f.maxSize,
		},
		Dump: stdout,
	})

	res, err := c.Command(ctx, rawURL, method, form)
	if err != nil {
		return err
	}

	st := res.Status()
	fmt.Fprintln(stdout, paint(st))
	fmt.Fprintln(stdout, res.Body)
	return nil
}

// parseArgs picks method and URL out of the positional arguments.
func parseArgs(args []string) (method, rawURL string, err error) {
	switch len(args) {
	case 0:
		return "", "", errUsage
	case 2:
		return args[0], args[1], nil
	default:
		return http.MethodGet, args[0], nil
	}
}

func parseForm(data []string) (uri.Form, error) {
	var form uri.Form
	for _, kv := range data {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return nil, errors.Wrapf(errInvalidData, "got %q", kv)
		}
		form.Add(key, value)
	}
	return form, nil
}

// statusPainter returns a function rendering a status line, coloured by status class.
func statusPainter(mode string, w io.Writer) (func(status.Status) string, error) {
	var enabled bool
	switch mode {
	case "always":
		enabled = true
	case "never":
		enabled = false
	case "auto":
		enabled = isTerminal(w)
	default:
		return nil, errors.Errorf("unknown color mode %q", mode)
	}

	return func(s status.Status) string {
		c := color.New(classColor(s.Class()))
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.Sprint(s.String())
	}, nil
}

func classColor(class status.Class) color.Attribute {
	switch class {
	case status.ClassSuccessful:
		return color.FgGreen
	case status.ClassRedirection:
		return color.FgCyan
	case status.ClassClientError:
		return color.FgYellow
	case status.ClassServerError:
		return color.FgRed
	}
	return color.Reset
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
