// Package main is the command-line entrypoint for decoding, encoding and verifying transactions.
package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/goodnatureofminers/blockinsight7000-txcodec/internal/interchange"
	"github.com/goodnatureofminers/blockinsight7000-txcodec/internal/metrics"
	"github.com/goodnatureofminers/blockinsight7000-txcodec/internal/service"
	"github.com/goodnatureofminers/blockinsight7000-txcodec/internal/txcodec"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

type options struct {
	Verbose     bool   `short:"v" long:"verbose" env:"TXCODEC_VERBOSE" description:"enable debug logging"`
	Workers     int    `long:"workers" env:"TXCODEC_WORKERS" description:"concurrent decoders for batch input" default:"4"`
	MetricsFile string `long:"metrics-file" env:"TXCODEC_METRICS_FILE" description:"write codec metrics in Prometheus text format to this file on exit"`
}

// environment carries what every command needs once flags are parsed.
type environment struct {
	ctx    context.Context
	opts   *options
	level  zap.AtomicLevel
	logger *zap.Logger
	codec  *service.Codec
	stdin  io.Reader
	stdout io.Writer
}

type decodeCommand struct {
	Format string `long:"format" env:"TXCODEC_FORMAT" description:"output format" choice:"dump" choice:"json" default:"dump"`
	File   string `long:"file" description:"read one hex transaction per line from file, - for stdin"`
	Args   struct {
		Hex []string `positional-arg-name:"hex"`
	} `positional-args:"yes"`

	env *environment
}

type encodeCommand struct {
	File string `long:"file" description:"transaction record in JSON, - for stdin" default:"-"`

	env *environment
}

type verifyCommand struct {
	File string `long:"file" description:"JSON array of test vectors, - for stdin" required:"true"`

	env *environment
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = level
	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("can't initialize zap logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	opts := options{}
	env := &environment{ctx: ctx, opts: &opts, level: level, logger: logger, stdin: stdin, stdout: stdout}

	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	commands := []struct {
		name, short, long string
		data              any
	}{
		{"decode", "Decode hex transactions", "Decode hex-encoded transactions given as arguments or read from a file.", &decodeCommand{env: env}},
		{"encode", "Encode a transaction record", "Encode a JSON transaction record to its hex wire form.", &encodeCommand{env: env}},
		{"verify", "Verify test vectors", "Check that every vector's record and hex agree in both directions.", &verifyCommand{env: env}},
	}
	for _, c := range commands {
		if _, err := parser.AddCommand(c.name, c.short, c.long, c.data); err != nil {
			return fmt.Errorf("register %s command: %w", c.name, err)
		}
	}
	parser.CommandHandler = func(command flags.Commander, args []string) error {
		if command == nil {
			return nil
		}
		if err := env.init(); err != nil {
			return err
		}
		err := command.Execute(args)
		if werr := env.writeMetrics(); werr != nil {
			return errors.Join(err, werr)
		}
		return err
	}

	if _, err := parser.ParseArgs(args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			_, _ = fmt.Fprintln(stdout, ferr.Message)
			return nil
		}
		logger.Error("txcodec failed", zap.Error(err))
		return err
	}
	return nil
}

func (e *environment) init() error {
	if e.opts.Verbose {
		e.level.SetLevel(zap.DebugLevel)
	}
	codec, err := service.NewCodec(metrics.NewCodec(), e.opts.Workers, e.logger)
	if err != nil {
		return fmt.Errorf("init codec: %w", err)
	}
	e.codec = codec
	return nil
}

func (e *environment) writeMetrics() error {
	if e.opts.MetricsFile == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(e.opts.MetricsFile, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	e.logger.Debug("metrics written", zap.String("path", e.opts.MetricsFile))
	return nil
}

func (e *environment) readInput(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(e.stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// Execute decodes every input and prints each transaction in the selected format.
func (c *decodeCommand) Execute(_ []string) error {
	raws := append([]string(nil), c.Args.Hex...)
	if c.File != "" {
		data, err := c.env.readInput(c.File)
		if err != nil {
			return err
		}
		scanner := bufio.NewScanner(bytes.NewReader(data))
		scanner.Buffer(make([]byte, 0, 64*1024), len(data)+1)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			raws = append(raws, line)
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("scan %s: %w", c.File, err)
		}
	}
	if len(raws) == 0 {
		return errors.New("no transactions to decode")
	}

	results, err := c.env.codec.DecodeHexBatch(c.env.ctx, raws)
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			c.env.logger.Error("decode failed", zap.Int("index", r.Index), zap.Error(r.Err))
			continue
		}
		if err := c.print(r.Transaction); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d transactions failed to decode", failed, len(results))
	}
	return nil
}

func (c *decodeCommand) print(tx txcodec.BitcoinTransaction) error {
	var out string
	switch c.Format {
	case "json":
		data, err := interchange.Marshal(tx)
		if err != nil {
			return err
		}
		out = string(data) + "\n"
	default:
		out = tx.String()
	}
	if _, err := io.WriteString(c.env.stdout, out); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// Execute reads one transaction record and prints its hex wire form.
func (c *encodeCommand) Execute(_ []string) error {
	data, err := c.env.readInput(c.File)
	if err != nil {
		return err
	}
	tx, err := interchange.Unmarshal[txcodec.BitcoinTransaction](data)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(c.env.stdout, c.env.codec.EncodeHex(tx)); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// Execute checks every vector and fails if any disagrees.
func (c *verifyCommand) Execute(_ []string) error {
	vectors, err := c.load()
	if err != nil {
		return err
	}

	failed := 0
	for _, v := range vectors {
		if err := v.Check(); err != nil {
			failed++
			c.env.logger.Error("vector failed", zap.String("name", v.Name), zap.Error(err))
			continue
		}
		c.env.logger.Debug("vector passed", zap.String("name", v.Name))
	}
	if _, err := fmt.Fprintf(c.env.stdout, "%d/%d vectors passed\n", len(vectors)-failed, len(vectors)); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if failed > 0 {
		return fmt.Errorf("%d vectors failed", failed)
	}
	return nil
}

func (c *verifyCommand) load() ([]interchange.Vector, error) {
	if c.File != "-" {
		return interchange.LoadVectors(c.File)
	}
	data, err := c.env.readInput(c.File)
	if err != nil {
		return nil, err
	}
	return interchange.ParseVectors(data)
}
