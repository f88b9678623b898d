package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/blueprint"
	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/composition"
	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/logging"
	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/serializer"
	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/transport"
)

type options struct {
	blueprint   string
	name        string
	asJSON      bool
	submit      bool
	provisioner string
	timeout     time.Duration
}

func main() {
	var opts options
	flag.StringVar(&opts.blueprint, "f", "", "Blueprint YAML file (required)")
	flag.StringVar(&opts.name, "name", "", "Slice name (overrides the blueprint's)")
	flag.BoolVar(&opts.asJSON, "json", false, "Print the provisioning request as JSON")
	flag.BoolVar(&opts.submit, "submit", false, "Submit the slice to the provisioner")
	flag.StringVar(&opts.provisioner, "provisioner", envOr("SLICE_PROVISIONER_URL", "http://localhost:5000/create_slice"), "Provisioner endpoint")
	flag.DurationVar(&opts.timeout, "timeout", 30*time.Second, "Submission timeout")
	flag.Parse()

	if opts.blueprint == "" {
		fmt.Fprintln(os.Stderr, errorStyle.Render("missing -f blueprint file"))
		flag.Usage()
		os.Exit(2)
	}

	if err := run(context.Background(), opts, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: "+err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, out io.Writer) error {
	bp, err := blueprint.LoadFile(opts.blueprint)
	if err != nil {
		return err
	}

	req, err := compose(bp, opts.name)
	if err != nil {
		return err
	}

	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(req); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(out, renderSummary(req))
	}

	if !opts.submit {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	logger := logging.NewFromEnv(os.Stderr, "warn")
	client := transport.NewClient(opts.provisioner, opts.timeout, transport.WithLogger(logger))
	if _, err := client.Submit(ctx, req); err != nil {
		var submitErr *transport.SubmitError
		if errors.As(err, &submitErr) && submitErr.Message != "" {
			return fmt.Errorf("provisioner: %s", submitErr.Message)
		}
		return err
	}
	fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("slice %q submitted to %s", req.Name, client.Endpoint())))
	return nil
}

// compose replays bp into a fresh composition and serializes it. A non-empty
// name replaces the blueprint's slice name.
func compose(bp *blueprint.Blueprint, name string) (*serializer.SliceRequest, error) {
	store := composition.NewStore()
	if _, err := bp.Apply(store); err != nil {
		return nil, err
	}

	snap := store.Snapshot()
	if name == "" {
		name = snap.SliceName
	}
	return serializer.ToRequest(snap, name)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
