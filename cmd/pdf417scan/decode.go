package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tpcreative070/pdf417decoder"
	"github.com/tpcreative070/pdf417decoder/bitmatrix"
	"github.com/tpcreative070/pdf417decoder/decoder"
	"github.com/tpcreative070/pdf417decoder/internal/config"
)

// scanFile is the on-disk shape of a pre-binarized scan: a dense bit grid
// (one string of '0'/'1' per row) plus the four approximate corner points
// located by an upstream finder-pattern detector. Any corner may be omitted
// when that side of the symbol runs off the edge of the capture.
type scanFile struct {
	Width       int                  `json:"width"`
	Height      int                  `json:"height"`
	Rows        []string             `json:"rows"`
	TopLeft     *pdf417decoder.Point `json:"top_left,omitempty"`
	BottomLeft  *pdf417decoder.Point `json:"bottom_left,omitempty"`
	TopRight    *pdf417decoder.Point `json:"top_right,omitempty"`
	BottomRight *pdf417decoder.Point `json:"bottom_right,omitempty"`
}

func newDecodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode <scan.json>",
		Short: "Decode a scan file into text",
		Args:  cobra.ExactArgs(1),
		RunE:  runDecode,
	}
	cmd.Flags().Int("min-width", 0, "minimum codeword width in pixels (0 = use config default)")
	cmd.Flags().Int("max-width", 0, "maximum codeword width in pixels (0 = use config default)")
	viper.BindPFlag("min_codeword_width_override", cmd.Flags().Lookup("min-width"))
	viper.BindPFlag("max_codeword_width_override", cmd.Flags().Lookup("max-width"))
	return cmd
}

func runDecode(cmd *cobra.Command, args []string) error {
	cfg, err := config.NewLoader().Load()
	if err != nil {
		return err
	}
	minWidth, maxWidth := cfg.MinCodewordWidth, cfg.MaxCodewordWidth
	if override := viper.GetInt("min_codeword_width_override"); override > 0 {
		minWidth = override
	}
	if override := viper.GetInt("max_codeword_width_override"); override > 0 {
		maxWidth = override
	}

	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading scan file: %w", err)
	}
	var sf scanFile
	if err := json.Unmarshal(raw, &sf); err != nil {
		return fmt.Errorf("parsing scan file: %w", err)
	}
	image, err := sf.toMatrix()
	if err != nil {
		return err
	}

	decoded, err := decoder.Decode(image, sf.TopLeft, sf.BottomLeft, sf.TopRight, sf.BottomRight, minWidth, maxWidth)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), decoded.Text)
	if decoded.ErrorsCorrected > 0 || decoded.Erasures > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "corrected %d error(s), %d erasure(s)\n", decoded.ErrorsCorrected, decoded.Erasures)
	}
	return nil
}

func (sf *scanFile) toMatrix() (*bitmatrix.Matrix, error) {
	if sf.Height != len(sf.Rows) {
		return nil, fmt.Errorf("scan file: height %d does not match %d row(s)", sf.Height, len(sf.Rows))
	}
	rows := make([][]bool, sf.Height)
	for y, row := range sf.Rows {
		if len(row) != sf.Width {
			return nil, fmt.Errorf("scan file: row %d has length %d, want %d", y, len(row), sf.Width)
		}
		bits := make([]bool, sf.Width)
		for x, ch := range row {
			bits[x] = ch == '1'
		}
		rows[y] = bits
	}
	return bitmatrix.FromBools(rows), nil
}
