package main

import (
	"fmt"

	"github.com/3nids/CadInput/pkg/constraint"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	alignSegment       string
	alignLast          string
	alignPrevious      string
	alignPerpendicular bool
	alignRelative      bool
)

var alignCmd = &cobra.Command{
	Use:   "align",
	Short: "Compute the angle lock parallel or perpendicular to a segment",
	Long: `Compute the angle that locks the next point parallel (default) or
perpendicular to a segment. With --relative the angle is given relative to the
last committed segment, from --previous to --last.`,
	Example: `  cadinput align --segment 0,0,10,0 --perpendicular
  cadinput align --segment 0,0,5,5 --relative --previous 0,0 --last 0,10`,
	Args: cobra.NoArgs,
	RunE: runAlign,
}

func init() {
	rootCmd.AddCommand(alignCmd)

	alignCmd.Flags().StringVar(&alignSegment, "segment", "", "segment as x1,y1,x2,y2")
	alignCmd.Flags().StringVar(&alignLast, "last", "", "last committed point as x,y")
	alignCmd.Flags().StringVar(&alignPrevious, "previous", "", "point committed before the last one as x,y")
	alignCmd.Flags().BoolVar(&alignPerpendicular, "perpendicular", false, "align perpendicular instead of parallel")
	alignCmd.Flags().BoolVar(&alignRelative, "relative", false, "report the angle relative to the last segment")

	alignCmd.MarkFlagRequired("segment")
}

func runAlign(cmd *cobra.Command, args []string) error {
	_, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	s, err := parseSegment(alignSegment)
	if err != nil {
		return fmt.Errorf("--segment: %w", err)
	}
	history, err := parseHistory(alignPrevious, alignLast)
	if err != nil {
		return err
	}

	mode := constraint.AlignParallel
	if alignPerpendicular {
		mode = constraint.AlignPerpendicular
	}

	segment := constraint.ReferenceSegment{Start: s.Start, End: s.End}
	angle := constraint.AlignAngleToSegment(segment, history, mode, alignRelative)
	log.Debug("aligned", zap.Stringer("mode", mode), zap.Float64("angle", angle))

	fmt.Printf("%s angle: %.6f degrees\n", mode, angle)
	return nil
}
