// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

// Package plugin provides the xmsg command tree, usable standalone or mounted
// under the Lux CLI.
package plugin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/common/hexutil"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/luxfi/xmsg"
	"github.com/luxfi/xmsg/backend"
	"github.com/luxfi/xmsg/config"
	"github.com/luxfi/xmsg/deploy"
	"github.com/luxfi/xmsg/payload"
)

type app struct {
	cfg    config.Config
	logger *zap.Logger
	sys    *deploy.System
}

// NewXmsgCmd creates the xmsg command
func NewXmsgCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:   "xmsg",
		Short: "Cross-chain last-message store and relay proxy",
		Long: `xmsg keeps the latest message and its sender, accepting writes directly
from local accounts or relayed from a trusted cross-chain messaging layer.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	config.AddFlags(cmd.PersistentFlags())

	cmd.AddCommand(newNetworksCmd())
	cmd.AddCommand(newAddressesCmd(a))
	cmd.AddCommand(newEncodeCmd())
	cmd.AddCommand(newDecodeCmd())
	cmd.AddCommand(newSetCmd(a))
	cmd.AddCommand(newRelayCmd(a))
	cmd.AddCommand(newGetCmd(a))
	return cmd
}

func (a *app) init(cmd *cobra.Command) error {
	v, err := config.BuildViper(cmd.Flags())
	if err != nil {
		return err
	}
	cfg, err := config.NewConfig(v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	zcfg := zap.NewProductionConfig()
	if cfg.Level() <= zapcore.DebugLevel {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(cfg.Level())
	zcfg.OutputPaths = []string{"stderr"}
	logger, err := zcfg.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	a.logger = logger.With(zap.String("network", cfg.NetworkPreset().Name))
	return nil
}

// system opens the persisted store and deploys the proxy over it
func (a *app) system() (*deploy.System, error) {
	if a.sys != nil {
		return a.sys, nil
	}
	b, err := backend.NewFileBackend(a.cfg.StatePath)
	if err != nil {
		return nil, err
	}
	sys, err := deploy.Deploy(a.cfg.DeployParams(), b, a.logger, prometheus.NewRegistry())
	if err != nil {
		return nil, err
	}
	a.sys = sys
	return sys, nil
}

func newNetworksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "networks",
		Short: "List network presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, n := range config.Networks() {
				fmt.Fprintf(out, "%s\tchain %d\t%s\tlayer %s\n", n.Name, n.ChainID, n.RPCURL, n.CrossChainLayer)
			}
			return nil
		},
	}
}

func newAddressesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "addresses",
		Short: "Show the store, proxy and trusted layer addresses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sys, err := a.system()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Store: %s\n", sys.Store.Address())
			fmt.Fprintf(out, "Proxy: %s\n", sys.Proxy.Address())
			fmt.Fprintf(out, "Cross-chain layer: %s\n", sys.Proxy.Trust().TrustedRelayer)
			return nil
		},
	}
}

func newEncodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode <message>",
		Short: "Encode a text message as a relay payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := payload.NewTextMessage(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hexutil.Encode(msg.Bytes()))
			return nil
		},
	}
}

func newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <hex payload>",
		Short: "Decode a relay payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := hexutil.Decode(args[0])
			if err != nil {
				return fmt.Errorf("%w: %w", xmsg.ErrMalformedPayload, err)
			}
			msg, err := payload.ParseTextMessage(b)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg.Message)
			return nil
		},
	}
}

func newSetCmd(a *app) *cobra.Command {
	var sender string
	cmd := &cobra.Command{
		Use:   "set <message>",
		Short: "Set the message directly as --sender",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			caller, err := parseAddress("sender", sender)
			if err != nil {
				return err
			}
			sys, err := a.system()
			if err != nil {
				return err
			}
			ev, err := sys.Store.SetMessage(cmd.Context(), caller, args[0])
			if err != nil {
				return err
			}
			return printEvent(cmd.OutOrStdout(), sys.Store.Address(), ev)
		},
	}
	cmd.Flags().StringVar(&sender, "sender", "", "Account calling the store")
	_ = cmd.MarkFlagRequired("sender")
	return cmd
}

func newRelayCmd(a *app) *cobra.Command {
	var origin string
	cmd := &cobra.Command{
		Use:   "relay <message>",
		Short: "Deliver a message through the proxy as the trusted layer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			originSender, err := parseAddress("origin", origin)
			if err != nil {
				return err
			}
			msg, err := payload.NewTextMessage(args[0])
			if err != nil {
				return err
			}
			sys, err := a.system()
			if err != nil {
				return err
			}
			ev, err := sys.Layer.Deliver(cmd.Context(), originSender, msg.Bytes())
			if err != nil {
				return err
			}
			return printEvent(cmd.OutOrStdout(), sys.Store.Address(), ev)
		},
	}
	cmd.Flags().StringVar(&origin, "origin", "", "Sender on the origin chain")
	_ = cmd.MarkFlagRequired("origin")
	return cmd
}

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show the current message and its sender",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sys, err := a.system()
			if err != nil {
				return err
			}
			record := sys.Store.Record()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Message: %q\n", record.Text)
			fmt.Fprintf(out, "Sender: %s\n", record.Sender)
			fmt.Fprintf(out, "Sequence: %d\n", record.Sequence)
			return nil
		},
	}
}

func printEvent(out io.Writer, emitter common.Address, ev *xmsg.MessageReceived) error {
	log, err := ev.Log(emitter)
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "MessageReceived %s\n%s\n", ev.ID(), b)
	return nil
}

func parseAddress(name string, s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("invalid %s address %q", name, s)
	}
	return common.HexToAddress(s), nil
}

// Execute runs the command tree with [args]
func Execute(ctx context.Context, args []string, out io.Writer) error {
	cmd := NewXmsgCmd()
	cmd.SetArgs(args)
	cmd.SetOut(out)
	return cmd.ExecuteContext(ctx)
}
