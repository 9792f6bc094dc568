package main

import (
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/yelpmcp/config"
	"github.com/effective-security/yelpmcp/encoding"
	"github.com/effective-security/yelpmcp/mcp"
	"github.com/effective-security/yelpmcp/pkg/llmutils"
	"github.com/effective-security/yelpmcp/tools"
	"github.com/effective-security/yelpmcp/tools/yelp"
	"github.com/spf13/cobra"
)

func (c *cli) serveCmd() *cobra.Command {
	var transport, port string

	cmd := &cobra.Command{
		Use:   "serve [port]",
		Short: "Serve the Yelp tools over MCP",
		Long: `Serves the Yelp tools over the Model Context Protocol.

The default transport is stdio.
A port given as the argument or with --port selects the streamable HTTP
transport on that port, unless --transport stdio is set explicitly.`,
		Example: `  yelp-mcp serve
  yelp-mcp serve 8000
  yelp-mcp serve --transport http --port 8000`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.setup(); err != nil {
				return err
			}
			if len(args) == 1 && port == "" {
				port = args[0]
			}
			if transport != "" {
				c.cfg.Server.Transport = transport
			}
			if port != "" {
				addr, err := parsePort(port)
				if err != nil {
					return err
				}
				c.cfg.Server.Addr = addr
				if transport == "" {
					c.cfg.Server.Transport = config.TransportHTTP
				}
			}
			if err := c.cfg.Validate(); err != nil {
				return err
			}

			list, err := c.newTools()
			if err != nil {
				return err
			}
			server, err := mcp.New(c.cfg, list...)
			if err != nil {
				return err
			}
			return server.Serve(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&transport, "transport", "", "transport: stdio or http")
	cmd.Flags().StringVarP(&port, "port", "p", "", "port for http transport")
	return cmd
}

func (c *cli) toolsCmd() *cobra.Command {
	var withSchema bool

	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List the tools with descriptions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.setup(); err != nil {
				return err
			}
			list, err := c.newTools()
			if err != nil {
				return err
			}
			if withSchema {
				for _, t := range list {
					fmt.Fprintf(cmd.OutOrStdout(), "%s:\n%s\n", t.Name(), llmutils.ToJSONIndent(t.Parameters()))
				}
				return nil
			}
			var all []tools.ITool
			for _, t := range list {
				all = append(all, t)
			}
			fmt.Fprint(cmd.OutOrStdout(), tools.GetDescriptions(all...))
			return nil
		},
	}
	cmd.Flags().BoolVar(&withSchema, "schema", false, "print the parameters schema of the tools")
	return cmd
}

func (c *cli) callCmd() *cobra.Command {
	var (
		raw    bool
		format string
	)

	cmd := &cobra.Command{
		Use:   "call <tool> [arguments]",
		Short: "Call a tool and print the response",
		Long: `Calls a tool with the arguments and prints the response body.
The arguments are read from stdin when provided as "-".`,
		Example: `  yelp-mcp call yelp_search '{"location":"Austin, TX","limit":5}'
  yelp-mcp call yelp_business_details '{"business_id_or_alias":"gary-danko-san-francisco"}'
  echo 'phone: "+14159083801"' | yelp-mcp call yelp_phone_search - --format yaml`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.setup(); err != nil {
				return err
			}
			list, err := c.newTools()
			if err != nil {
				return err
			}
			tool, err := yelp.Find(list, args[0])
			if err != nil {
				return err
			}

			var input []byte
			if len(args) == 2 {
				input = []byte(args[1])
				if args[1] == "-" {
					if input, err = io.ReadAll(cmd.InOrStdin()); err != nil {
						return errors.Wrap(err, "failed to read arguments")
					}
				}
			}
			js, err := encoding.ToJSON(format, input)
			if err != nil {
				return err
			}

			res, err := tool.Call(cmd.Context(), string(js))
			if err != nil {
				return errors.WithMessagef(err, "%s failed", tool.Name())
			}
			if !raw {
				res = llmutils.JSONIndent([]byte(res))
			}
			fmt.Fprintln(cmd.OutOrStdout(), res)
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print the response as received")
	cmd.Flags().StringVarP(&format, "format", "f", encoding.ModeDefault, "arguments format: json, yaml or toml")
	return cmd
}

func (c *cli) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.setup(); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), llmutils.ToYAML(c.cfg.Redacted()))
			return nil
		},
	}
}

func (c *cli) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), Version)
		},
	}
}
