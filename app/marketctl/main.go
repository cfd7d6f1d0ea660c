package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"golang.org/x/xerrors"

	"github.com/x-xyz/escrow/app/internal/setup"
	"github.com/x-xyz/escrow/base/ctx"
	"github.com/x-xyz/escrow/base/env"
	"github.com/x-xyz/escrow/base/log"
	"github.com/x-xyz/escrow/domain"
	"github.com/x-xyz/escrow/domain/fee"
	"github.com/x-xyz/escrow/domain/listing"
)

var stores *setup.Stores

func main() {
	app := &cli.App{
		Name:  "marketctl",
		Usage: "operate the escrow marketplace from a shell",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: env.ConfigFile(), Usage: "path of the yaml config"},
			&cli.StringFlag{Name: "caller", Value: "", Usage: "acting administrator, defaults to the first configured admin"},
		},
		Before: connect,
		After:  disconnect,
		Commands: []*cli.Command{
			{
				Name:  "fee",
				Usage: "read or change the marketplace fee rate",
				Subcommands: []*cli.Command{
					{
						Name:   "get",
						Usage:  "print the current fee rate",
						Action: getFee,
					},
					{
						Name:      "set",
						Usage:     "set the fee rate, a whole percentage in [0, 100)",
						ArgsUsage: "<rate>",
						Action:    setFee,
					},
				},
			},
			{
				Name:  "reconciliations",
				Usage: "inspect and settle fatal inconsistencies",
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "print reconciliation records",
						Action: listReconciliations,
						Flags: []cli.Flag{
							&cli.BoolFlag{Name: "all", Usage: "include resolved records"},
							&cli.IntFlag{Name: "offset", Value: 0},
							&cli.IntFlag{Name: "limit", Value: 50},
						},
					},
					{
						Name:      "resolve",
						Usage:     "retry the owed transfer and mark the record resolved",
						ArgsUsage: "<reconciliationId>",
						Action:    resolveReconciliation,
					},
				},
			},
			{
				Name:  "listings",
				Usage: "inspect listings",
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "print listings",
						Action: listListings,
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "seller", Value: ""},
							&cli.StringFlag{Name: "collection", Value: ""},
							&cli.IntFlag{Name: "offset", Value: 0},
							&cli.IntFlag{Name: "limit", Value: 50},
						},
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Log().WithField("err", err).Error("marketctl failed")
		os.Exit(1)
	}
}

func connect(c *cli.Context) error {
	if err := setup.LoadConfig([]string{"--config", c.String("config")}); err != nil {
		return err
	}
	s, err := setup.New(ctx.Background())
	if err != nil {
		return err
	}
	stores = s
	return nil
}

func disconnect(c *cli.Context) error {
	if stores != nil {
		stores.Close(ctx.Background())
	}
	return nil
}

func caller(c *cli.Context) (domain.Address, error) {
	if a := c.String("caller"); a != "" {
		return domain.Address(a).ToLower(), nil
	}
	if len(stores.Admins) == 0 {
		return "", xerrors.Errorf("no --caller and admin.addresses is empty: %w", domain.ErrUnauthorized)
	}
	return stores.Admins[0], nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// FEE
func getFee(c *cli.Context) error {
	rate, err := stores.Fee.GetFeeRate(ctx.Background())
	if err != nil {
		return err
	}
	return printJSON(map[string]interface{}{"rate": rate, "recipient": stores.FeeRecipient})
}

func setFee(c *cli.Context) error {
	var rate int64
	if _, err := fmt.Sscan(c.Args().First(), &rate); err != nil {
		return xerrors.Errorf("rate %q: %w", c.Args().First(), domain.ErrInvalidArgument)
	}
	admin, err := caller(c)
	if err != nil {
		return err
	}
	cont := ctx.WithValue(ctx.Background(), "caller", admin)
	if err := stores.Fee.SetFeeRate(cont, admin, fee.Rate(rate)); err != nil {
		return err
	}
	cont.WithField("rate", rate).Info("fee rate updated")
	return nil
}

// RECONCILIATIONS
func listReconciliations(c *cli.Context) error {
	opts := []listing.ReconciliationFindAllOptionsFunc{
		listing.ReconciliationWithPagination(int32(c.Int("offset")), int32(c.Int("limit"))),
	}
	if !c.Bool("all") {
		opts = append(opts, listing.ReconciliationWithResolved(false))
	}
	recs, err := stores.Reconciliations.FindAll(ctx.Background(), opts...)
	if err != nil {
		return err
	}
	return printJSON(recs)
}

func resolveReconciliation(c *cli.Context) error {
	id := c.Args().First()
	if id == "" {
		return xerrors.Errorf("missing reconciliationId: %w", domain.ErrInvalidArgument)
	}
	admin, err := caller(c)
	if err != nil {
		return err
	}
	rec, err := stores.Reconciliations.Resolve(ctx.WithValue(ctx.Background(), "caller", admin), admin, id)
	if err != nil {
		return err
	}
	return printJSON(rec)
}

// LISTINGS
func listListings(c *cli.Context) error {
	opts := []listing.FindAllOptionsFunc{
		listing.WithPagination(int32(c.Int("offset")), int32(c.Int("limit"))),
	}
	if seller := c.String("seller"); seller != "" {
		opts = append(opts, listing.WithSeller(domain.Address(seller)))
	}
	if collection := c.String("collection"); collection != "" {
		opts = append(opts, listing.WithCollection(domain.Address(collection)))
	}
	ls, err := stores.Listings.FindAll(ctx.Background(), opts...)
	if err != nil {
		return err
	}
	return printJSON(ls)
}
