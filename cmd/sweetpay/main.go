package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	sweetpay "github.com/sweetpay/sweetpay-go"
	"github.com/sweetpay/sweetpay-go/internal/config"
	"github.com/sweetpay/sweetpay-go/internal/observability"
	"github.com/sweetpay/sweetpay-go/internal/relay"
	"go.uber.org/fx"
)

func main() {
	_ = godotenv.Load()
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "sweetpay",
		Short:         "Sweetpay CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newSubscriptionCmd(),
		newCreditcheckCmd(),
		newCheckoutCmd(),
		newRelayCmd(),
	)
	return root
}

func newClient() (*sweetpay.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cfg.APIToken == "" {
		return nil, fmt.Errorf("no API token configured, set SWEETPAY_API_TOKEN")
	}
	opts := []sweetpay.Option{sweetpay.WithTimeout(cfg.Timeout)}
	if cfg.Stage {
		opts = append(opts, sweetpay.WithStage())
	}
	return sweetpay.NewClient(cfg.APIToken, opts...), nil
}

type operation func(ctx context.Context, c *sweetpay.Client) (*sweetpay.Response, error)

// runOp executes one SDK operation and prints the envelope as JSON.
func runOp(cmd *cobra.Command, op operation) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	resp, err := op(cmd.Context(), client)
	if err != nil {
		if apiErr, ok := sweetpay.AsError(err); ok {
			return fmt.Errorf("%s (status=%s, http=%d)", apiErr.Kind, apiErr.Status, apiErr.StatusCode)
		}
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{
		"status": resp.Status,
		"data":   resp.Data,
	})
}

// readParams decodes the --data flag, or stdin when the flag is "-".
func readParams(cmd *cobra.Command) (map[string]any, error) {
	raw, err := cmd.Flags().GetString("data")
	if err != nil {
		return nil, err
	}
	if raw == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, err
		}
		raw = string(b)
	}
	if raw == "" {
		return nil, nil
	}
	var params map[string]any
	if err := json.Unmarshal([]byte(raw), &params); err != nil {
		return nil, fmt.Errorf("parse --data: %w", err)
	}
	return params, nil
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid subscription id %q", arg)
	}
	return id, nil
}

func withDataFlag(cmd *cobra.Command) *cobra.Command {
	cmd.Flags().String("data", "", `request parameters as JSON ("-" reads stdin)`)
	return cmd
}

func newSubscriptionCmd() *cobra.Command {
	sub := &cobra.Command{Use: "subscription", Short: "Manage subscriptions"}

	sub.AddCommand(withDataFlag(&cobra.Command{
		Use:   "create",
		Short: "Create a subscription",
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := readParams(cmd)
			if err != nil {
				return err
			}
			return runOp(cmd, func(ctx context.Context, c *sweetpay.Client) (*sweetpay.Response, error) {
				return c.Subscription().Create(ctx, params)
			})
		},
	}))

	sub.AddCommand(&cobra.Command{
		Use:   "query <id>",
		Short: "Query a subscription",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return runOp(cmd, func(ctx context.Context, c *sweetpay.Client) (*sweetpay.Response, error) {
				return c.Subscription().Query(ctx, id)
			})
		},
	})

	sub.AddCommand(withDataFlag(&cobra.Command{
		Use:   "update <id>",
		Short: "Update a subscription",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			params, err := readParams(cmd)
			if err != nil {
				return err
			}
			return runOp(cmd, func(ctx context.Context, c *sweetpay.Client) (*sweetpay.Response, error) {
				return c.Subscription().Update(ctx, id, params)
			})
		},
	}))

	sub.AddCommand(withDataFlag(&cobra.Command{
		Use:   "search",
		Short: "Search subscriptions",
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := readParams(cmd)
			if err != nil {
				return err
			}
			return runOp(cmd, func(ctx context.Context, c *sweetpay.Client) (*sweetpay.Response, error) {
				return c.Subscription().Search(ctx, params)
			})
		},
	}))

	sub.AddCommand(&cobra.Command{
		Use:   "log <id>",
		Short: "List subscription log entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return runOp(cmd, func(ctx context.Context, c *sweetpay.Client) (*sweetpay.Response, error) {
				return c.Subscription().ListLog(ctx, id)
			})
		},
	})

	sub.AddCommand(&cobra.Command{
		Use:   "regret <id>",
		Short: "Regret a subscription",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return runOp(cmd, func(ctx context.Context, c *sweetpay.Client) (*sweetpay.Response, error) {
				return c.Subscription().Regret(ctx, id)
			})
		},
	})

	sub.AddCommand(withDataFlag(&cobra.Command{
		Use:   "extend <id>",
		Short: "Extend a subscription",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			params, err := readParams(cmd)
			if err != nil {
				return err
			}
			return runOp(cmd, func(ctx context.Context, c *sweetpay.Client) (*sweetpay.Response, error) {
				return c.Subscription().Extend(ctx, id, params)
			})
		},
	}))

	sub.AddCommand(&cobra.Command{
		Use:   "expire <id>",
		Short: "Expire a subscription",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return runOp(cmd, func(ctx context.Context, c *sweetpay.Client) (*sweetpay.Response, error) {
				return c.Subscription().Expire(ctx, id)
			})
		},
	})

	return sub
}

func newCreditcheckCmd() *cobra.Command {
	cc := &cobra.Command{Use: "creditcheck", Short: "Run credit checks"}

	cc.AddCommand(withDataFlag(&cobra.Command{
		Use:   "check",
		Short: "Perform a credit check",
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := readParams(cmd)
			if err != nil {
				return err
			}
			return runOp(cmd, func(ctx context.Context, c *sweetpay.Client) (*sweetpay.Response, error) {
				return c.Creditcheck().Check(ctx, params)
			})
		},
	}))

	cc.AddCommand(withDataFlag(&cobra.Command{
		Use:   "search",
		Short: "Search previous credit checks",
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := readParams(cmd)
			if err != nil {
				return err
			}
			return runOp(cmd, func(ctx context.Context, c *sweetpay.Client) (*sweetpay.Response, error) {
				return c.Creditcheck().Search(ctx, params)
			})
		},
	}))

	return cc
}

func newCheckoutCmd() *cobra.Command {
	co := &cobra.Command{Use: "checkout", Short: "Manage checkout sessions"}

	co.AddCommand(withDataFlag(&cobra.Command{
		Use:   "create",
		Short: "Create a checkout session",
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := readParams(cmd)
			if err != nil {
				return err
			}
			return runOp(cmd, func(ctx context.Context, c *sweetpay.Client) (*sweetpay.Response, error) {
				return c.Checkout().CreateSession(ctx, params)
			})
		},
	}))

	return co
}

func newRelayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "relay",
		Short: "Run the callback relay server",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fx.New(
				config.Module,
				observability.Module,
				relay.Module,
			)
			app.Run()
			return nil
		},
	}
}
