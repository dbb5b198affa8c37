package app

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/openmotive/carmd-go/internal/config"
	"github.com/openmotive/carmd-go/internal/logger"
	"github.com/openmotive/carmd-go/pkg/carmd"
	"github.com/openmotive/carmd-go/pkg/httpclient"
)

// CLI dispatches subcommands to the CarMD client and prints raw response
// bodies to stdout.
type CLI struct {
	cfg    *config.Config
	client *carmd.Client
	log    logger.Logger
	out    io.Writer
}

// NewCLI builds the command runtime from config.
func NewCLI(cfg *config.Config, log logger.Logger) (*CLI, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}

	client, err := carmd.NewClient(carmd.ClientConfig{
		BaseURL: cfg.BaseURL,
		Key:     cfg.Key,
		Secret:  cfg.Secret,
		HTTP:    httpclient.NewRestyClient(cfg.HTTPTimeout),
	})
	if err != nil {
		return nil, fmt.Errorf("build carmd client: %w", err)
	}

	return &CLI{cfg: cfg, client: client, log: log, out: os.Stdout}, nil
}

// Run executes one subcommand. args is the command name followed by its
// arguments, e.g. ["models", "2010", "Toyota"].
func (c *CLI) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no command given")
	}
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "decode":
		fs := flag.NewFlagSet("decode", flag.ContinueOnError)
		file := fs.String("f", "", "YAML file listing VINs to decode")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if *file != "" {
			return c.decodeFile(ctx, *file)
		}
		if fs.NArg() != 1 {
			return fmt.Errorf("usage: carmd decode <vin> | carmd decode -f <file>")
		}
		return c.emit(c.client.DecodeVIN(ctx, fs.Arg(0)))

	case "makes":
		if len(rest) != 0 {
			return fmt.Errorf("usage: carmd makes")
		}
		return c.emit(c.client.Makes(ctx))

	case "years":
		if len(rest) != 1 {
			return fmt.Errorf("usage: carmd years <make>")
		}
		return c.emit(c.client.Years(ctx, rest[0]))

	case "models":
		if len(rest) != 2 {
			return fmt.Errorf("usage: carmd models <year> <make>")
		}
		year, err := strconv.Atoi(rest[0])
		if err != nil {
			return fmt.Errorf("invalid year %q: %w", rest[0], err)
		}
		return c.emit(c.client.Models(ctx, year, rest[1]))

	case "maint":
		if len(rest) != 2 {
			return fmt.Errorf("usage: carmd maint <vin> <mileage>")
		}
		mileage, err := strconv.Atoi(rest[1])
		if err != nil {
			return fmt.Errorf("invalid mileage %q: %w", rest[1], err)
		}
		return c.emit(c.client.NextMaintenance(ctx, rest[0], mileage))

	case "recalls":
		if len(rest) != 1 {
			return fmt.Errorf("usage: carmd recalls <vehicleID>")
		}
		return c.emit(c.client.SafetyRecalls(ctx, rest[0]))

	case "warranty":
		if len(rest) != 1 {
			return fmt.Errorf("usage: carmd warranty <vehicleID>")
		}
		return c.emit(c.client.Warranty(ctx, rest[0]))

	case "repairs":
		fs := flag.NewFlagSet("repairs", flag.ContinueOnError)
		vehicle := fs.String("vehicle", "", "CarMD vehicle ID")
		tag := fs.String("tag", "", "fleet tag")
		fleet := fs.String("fleet", "", "fleet ID")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		return c.emit(c.client.PredictedRepairs(ctx, carmd.RepairQuery{
			VehicleID: *vehicle,
			Tag:       *tag,
			FleetID:   *fleet,
		}))

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// decodeFile decodes every VIN listed in a YAML batch file, one request per
// VIN, stopping at the first failure.
func (c *CLI) decodeFile(ctx context.Context, path string) error {
	vins, err := LoadVINFile(path)
	if err != nil {
		return err
	}
	c.log.InfoObj("decoding vin batch", "batch_meta", map[string]any{
		"file":  path,
		"count": len(vins),
	})

	for _, vin := range vins {
		if err := c.emit(c.client.DecodeVIN(ctx, vin)); err != nil {
			return fmt.Errorf("decode %s: %w", vin, err)
		}
	}
	return nil
}

// emit prints the raw response body to the output. The body is printed even
// for non-2xx statuses; those still fail the command so scripts notice.
func (c *CLI) emit(resp *carmd.Response, err error) error {
	if err != nil {
		return err
	}

	c.log.DebugObj("carmd response", "response_meta", map[string]any{
		"status": resp.StatusCode,
		"bytes":  len(resp.Body),
	})

	if _, err := c.out.Write(resp.Body); err != nil {
		return fmt.Errorf("write response: %w", err)
	}
	if _, err := io.WriteString(c.out, "\n"); err != nil {
		return fmt.Errorf("write response: %w", err)
	}

	if !resp.OK() {
		return fmt.Errorf("carmd responded with HTTP %d", resp.StatusCode)
	}
	return nil
}
