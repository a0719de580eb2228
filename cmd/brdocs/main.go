package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/davidleathers/brdocs/internal/domain/cnpj"
	"github.com/davidleathers/brdocs/internal/domain/cpf"
	"github.com/davidleathers/brdocs/internal/domain/digits"
	"github.com/davidleathers/brdocs/internal/domain/errors"
	"github.com/davidleathers/brdocs/internal/domain/phone"
	"github.com/davidleathers/brdocs/internal/domain/validation"
	"github.com/davidleathers/brdocs/internal/infrastructure/config"
	"github.com/davidleathers/brdocs/internal/infrastructure/telemetry"
	"github.com/davidleathers/brdocs/internal/metrics"
	"github.com/davidleathers/brdocs/internal/service/document"
)

const usage = `usage: brdocs [-config path] <command> [args]

commands:
  validate <cpf|cnpj|phone> <value>
  format   <cpf|cnpj|phone> <value> [-style international|national|local]
  mask     cpf <value>
  parse    phone <value>
  process  <cpf|cnpj|phone> <value>
  generate <cpf|cnpj|phone> [-n count] [-formatted]
  demo
`

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

// app carries what every command needs
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	svc    document.Service
	out    io.Writer
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("brdocs", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Path to configuration file")
	fs.Usage = func() { fmt.Fprint(stderr, usage) }

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "failed to load configuration: %v\n", err)
		return 1
	}

	logger, err := telemetry.NewLogger(cfg.LogLevel, cfg.Environment)
	if err != nil {
		fmt.Fprintf(stderr, "failed to setup logger: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	a, err := newApp(cfg, logger, stdout)
	if err != nil {
		logger.Error("failed to initialize", zap.Error(err))
		return 1
	}

	if err := a.dispatch(ctx, fs.Arg(0), fs.Args()[1:]); err != nil {
		code := errors.Code(err)
		logger.Debug("command failed",
			zap.String("command", fs.Arg(0)),
			zap.String("code", code),
			zap.Error(err))

		if code != "" {
			fmt.Fprintf(stderr, "%v (%s)\n", err, code)
		} else {
			fmt.Fprintln(stderr, err)
		}
		return 1
	}
	return 0
}

func newApp(cfg *config.Config, logger *zap.Logger, out io.Writer) (*app, error) {
	reg, err := metrics.NewRegistry(cfg.Metrics.MeterName)
	if err != nil {
		return nil, errors.Wrap(err, "creating metrics registry")
	}

	var src digits.Source
	if cfg.Generator.Seed != 0 {
		src = digits.NewSource(cfg.Generator.Seed)
	} else {
		src = digits.NewRandomSource()
	}

	svc, err := document.NewService(document.Options{
		PhoneStyle:  phone.Style(cfg.Phone.Style),
		MaskCPF:     cfg.CPF.Mask,
		Concurrency: cfg.Batch.Concurrency,
	}, logger, reg, src)
	if err != nil {
		return nil, err
	}

	return &app{cfg: cfg, logger: logger, svc: svc, out: out}, nil
}

func (a *app) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "validate":
		return a.validate(args)
	case "format":
		return a.format(args)
	case "mask":
		return a.mask(args)
	case "parse":
		return a.parse(args)
	case "process":
		return a.process(ctx, args)
	case "generate":
		return a.generate(ctx, args)
	case "demo":
		return a.demo(ctx)
	default:
		return fmt.Errorf("unknown command %q\n%s", cmd, usage)
	}
}

// kindAndValue reads "<kind> <value>" followed by optional flags
func kindAndValue(args []string, fs *flag.FlagSet) (document.Kind, string, error) {
	if len(args) < 2 {
		return "", "", fmt.Errorf("expected <kind> <value>")
	}

	kind, err := document.ParseKind(args[0])
	if err != nil {
		return "", "", err
	}

	if fs != nil {
		if err := fs.Parse(args[2:]); err != nil {
			return "", "", err
		}
	}
	return kind, args[1], nil
}

func (a *app) validate(args []string) error {
	kind, value, err := kindAndValue(args, nil)
	if err != nil {
		return err
	}

	switch kind {
	case document.KindCPF:
		err = validation.ValidateCPF(value)
	case document.KindCNPJ:
		err = validation.ValidateCNPJ(value)
	case document.KindPhone:
		err = validation.ValidateBRPhone(value)
	}
	if err != nil {
		return errors.Wrap(err, value)
	}

	fmt.Fprintln(a.out, "valid")
	return nil
}

func (a *app) format(args []string) error {
	fs := flag.NewFlagSet("format", flag.ContinueOnError)
	style := fs.String("style", a.cfg.Phone.Style, "Phone output style")

	kind, value, err := kindAndValue(args, fs)
	if err != nil {
		return err
	}

	switch kind {
	case document.KindCPF:
		fmt.Fprintln(a.out, cpf.Format(value))
	case document.KindCNPJ:
		fmt.Fprintln(a.out, cnpj.Format(value))
	case document.KindPhone:
		fmt.Fprintln(a.out, phone.Format(value, phone.Style(*style)))
	}
	return nil
}

func (a *app) mask(args []string) error {
	kind, value, err := kindAndValue(args, nil)
	if err != nil {
		return err
	}
	if kind != document.KindCPF {
		return fmt.Errorf("mask is only defined for cpf")
	}

	fmt.Fprintln(a.out, cpf.Mask(value))
	return nil
}

func (a *app) parse(args []string) error {
	kind, value, err := kindAndValue(args, nil)
	if err != nil {
		return err
	}
	if kind != document.KindPhone {
		return fmt.Errorf("parse is only defined for phone")
	}

	parsed, err := phone.Parse(value)
	if err != nil {
		return err
	}
	return a.printJSON(parsed)
}

func (a *app) process(ctx context.Context, args []string) error {
	kind, value, err := kindAndValue(args, nil)
	if err != nil {
		return err
	}

	var record document.Record
	switch kind {
	case document.KindCPF:
		record.CPF = value
	case document.KindCNPJ:
		record.CNPJ = value
	case document.KindPhone:
		record.Phone = value
	}

	res, err := a.svc.ProcessRecord(ctx, record)
	if err != nil {
		return err
	}
	if err := a.printJSON(res); err != nil {
		return err
	}
	if !res.Valid() {
		return fmt.Errorf("%s", res.Errors[string(kind)])
	}
	return nil
}

func (a *app) generate(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("expected <kind>")
	}
	kind, err := document.ParseKind(args[0])
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	n := fs.Int("n", a.cfg.Generator.Count, "Number of documents")
	formatted := fs.Bool("formatted", a.cfg.Generator.Formatted, "Format the output")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	docs, err := a.svc.Generate(ctx, kind, *n, *formatted)
	if err != nil {
		return errors.Wrap(err, "generate")
	}
	for _, d := range docs {
		fmt.Fprintln(a.out, d)
	}
	return nil
}

func (a *app) printJSON(v interface{}) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
