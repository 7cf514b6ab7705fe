package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gopkg.in/yaml.v3"

	tweetie "github.com/jason-yu1/Tweet-Sentiment-Analysis"
	"github.com/jason-yu1/Tweet-Sentiment-Analysis/internal/config"
	"github.com/jason-yu1/Tweet-Sentiment-Analysis/internal/httpapi"
	"github.com/jason-yu1/Tweet-Sentiment-Analysis/internal/logging"
	"github.com/jason-yu1/Tweet-Sentiment-Analysis/internal/metrics"
)

const shutdownTimeout = 10 * time.Second

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cmd := ""
	if len(args) > 0 {
		cmd = args[0]
	}

	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}

	switch cmd {
	case "tweets":
		err = cmdTweets(cfg, args[1:], stdout)
	case "following":
		err = cmdFollowing(cfg, args[1:], stdout)
	case "serve":
		err = cmdServe(cfg, args[1:])
	default:
		printHelp(stderr)
		return 2
	}
	if err != nil {
		var usage usageError
		if errors.As(err, &usage) {
			fmt.Fprintln(stderr, usage)
			return 2
		}
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	return 0
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "Usage: tweetie <command> [options]")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tweets <screen_name>      Recent posts with sentiment scores")
	fmt.Fprintln(w, "  following <screen_name>   Followed accounts, most followed first")
	fmt.Fprintln(w, "  serve                     Serve both lookups over HTTP")
}

type usageError string

func (e usageError) Error() string { return string(e) }

// common holds the flags every subcommand accepts.
type common struct {
	keys      *string
	logLevel  *string
	logFormat *string
}

func commonFlags(fs *flag.FlagSet, cfg *config.Config) common {
	return common{
		keys:      fs.String("keys", cfg.KeysFile, "credential file (consumer key, secret, access token, secret)"),
		logLevel:  fs.String("log-level", cfg.LogLevel, "debug, info, warn or error"),
		logFormat: fs.String("log-format", cfg.LogFormat, "text or json"),
	}
}

func (c common) client(cfg *config.Config, hook func(string, bool, bool)) (*tweetie.Client, error) {
	logging.Init(*c.logLevel, *c.logFormat)
	return tweetie.Authenticate(*c.keys, tweetie.ClientConfig{
		BaseURL:     cfg.BaseURL,
		Timeout:     cfg.Timeout,
		Proxy:       cfg.Proxy,
		MetricsHook: hook,
	})
}

// screenName parses fs and returns its single positional argument.
func screenName(fs *flag.FlagSet, args []string) (string, error) {
	if err := fs.Parse(args); err != nil {
		return "", usageError(err.Error())
	}
	if fs.NArg() != 1 {
		return "", usageError(fmt.Sprintf("usage: tweetie %s [options] <screen_name>", fs.Name()))
	}
	return fs.Arg(0), nil
}

func cmdTweets(cfg *config.Config, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("tweets", flag.ContinueOnError)
	com := commonFlags(fs, cfg)
	format := fs.String("format", "json", "output format: json or yaml")
	limit := fs.Int("limit", tweetie.DefaultLimit, "maximum number of posts")
	name, err := screenName(fs, args)
	if err != nil {
		return err
	}
	if err := checkFormat(*format); err != nil {
		return err
	}

	client, err := com.client(cfg, nil)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tl, err := tweetie.FetchTweets(ctx, client, name, tweetie.WithLimit(*limit))
	if err != nil {
		return err
	}
	return render(stdout, *format, tl)
}

func cmdFollowing(cfg *config.Config, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("following", flag.ContinueOnError)
	com := commonFlags(fs, cfg)
	format := fs.String("format", "json", "output format: json or yaml")
	limit := fs.Int("limit", tweetie.DefaultLimit, "maximum number of accounts")
	name, err := screenName(fs, args)
	if err != nil {
		return err
	}
	if err := checkFormat(*format); err != nil {
		return err
	}

	client, err := com.client(cfg, nil)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	friends, err := tweetie.FetchFollowing(ctx, client, name, tweetie.WithLimit(*limit))
	if err != nil {
		return err
	}
	return render(stdout, *format, friends)
}

func cmdServe(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	com := commonFlags(fs, cfg)
	addr := fs.String("addr", cfg.Addr, "listen address")
	if err := fs.Parse(args); err != nil {
		return usageError(err.Error())
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	client, err := com.client(cfg, m.Hook())
	if err != nil {
		return err
	}
	if _, err := client.VerifyCredentials(context.Background()); err != nil {
		slog.Warn("credential check failed, serving anyway", slog.Any("error", err))
	}

	srv := httpapi.New(httpapi.Config{
		Timeline:  client,
		Following: client,
		Metrics:   m,
		Gatherer:  reg,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- srv.Start(*addr) }()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func checkFormat(format string) error {
	switch format {
	case "json", "", "yaml", "yml":
		return nil
	}
	return usageError(fmt.Sprintf("unknown format %q (want json or yaml)", format))
}

// render writes v to w as indented JSON or YAML.
func render(w io.Writer, format string, v any) error {
	if err := checkFormat(format); err != nil {
		return err
	}
	switch format {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
