package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"

	"github.com/eth2030/headerid/core/types"
	"github.com/eth2030/headerid/geth"
)

// errMismatch is returned by verify when any header disagrees.
var errMismatch = errors.New("header identity mismatch")

func newHashCmd(a *app) *cobra.Command {
	var withRLP bool
	cmd := &cobra.Command{
		Use:   "hash [file...]",
		Short: "Print the number and hash of each header",
		Long: `Reads header JSON (one object or an array) from each file, or from
stdin when no file is given, and prints "<number> <hash>" per header.
Examples:
  headerid hash headers.json
  headerid hash --rlp < header.json
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			headers, err := a.loadHeaders(args)
			if err != nil {
				return err
			}
			for _, h := range headers {
				fmt.Fprintf(a.stdout, "%s %s\n", h.Number.Dec(), h.Hash())
				if withRLP {
					fmt.Fprintf(a.stdout, "  rlp %s\n", hexutil.Encode(h.EncodeRLP()))
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&withRLP, "rlp", false, "also print the canonical encoding")
	return cmd
}

func newEncodeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "encode [file]",
		Short: "Print the canonical RLP encoding of each header",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			headers, err := a.loadHeaders(args)
			if err != nil {
				return err
			}
			for _, h := range headers {
				fmt.Fprintln(a.stdout, hexutil.Encode(h.EncodeRLP()))
			}
			return nil
		},
	}
}

func newDecodeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "decode <hex>",
		Short: "Decode a canonical RLP header encoding into JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := strings.TrimSpace(args[0])
			if !strings.HasPrefix(input, "0x") && !strings.HasPrefix(input, "0X") {
				input = "0x" + input
			}
			enc, err := hexutil.Decode(input)
			if err != nil {
				return fmt.Errorf("invalid hex: %w", err)
			}
			h, err := types.DecodeHeaderRLP(enc)
			if err != nil {
				return err
			}
			return a.writeJSON(h)
		},
	}
}

// splitHeader is the output of the split command.
type splitHeader struct {
	Partial          *types.PartialHeader `json:"partial"`
	OmmersHash       types.Hash           `json:"sha3Uncles"`
	TransactionsRoot types.Hash           `json:"transactionsRoot"`
	Hash             types.Hash           `json:"hash"`
}

func newSplitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "split [file]",
		Short: "Split headers into partial header, ommers hash and transactions root",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			headers, err := a.loadHeaders(args)
			if err != nil {
				return err
			}
			out := make([]splitHeader, len(headers))
			for i, h := range headers {
				out[i] = splitHeader{
					Partial:          types.PartialHeaderFromHeader(h),
					OmmersHash:       h.OmmersHash,
					TransactionsRoot: h.TransactionsRoot,
					Hash:             h.Hash(),
				}
			}
			return a.writeJSON(out)
		},
	}
}

func newVerifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "verify [file]",
		Short: "Cross-check header hashes against go-ethereum",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			headers, err := a.loadHeaders(args)
			if err != nil {
				return err
			}
			failed := 0
			for _, h := range headers {
				c, err := geth.CheckHeader(h)
				if err != nil {
					return err
				}
				status := "ok"
				if !c.OK() {
					status = "MISMATCH geth=" + c.GethHash.Hex()
					failed++
					a.log.Warn("Header identity mismatch",
						"number", h.Number.Dec(),
						"hash", c.Hash,
						"geth", c.GethHash,
						"encodingMatch", c.EncodingMatch,
					)
				}
				fmt.Fprintf(a.stdout, "%s %s %s\n", h.Number.Dec(), c.Hash, status)
			}
			if failed > 0 {
				return fmt.Errorf("%w: %d of %d headers", errMismatch, failed, len(headers))
			}
			return nil
		},
	}
}
