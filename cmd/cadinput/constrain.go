package main

import (
	"fmt"

	"github.com/3nids/CadInput/pkg/constraint"
	"github.com/3nids/CadInput/pkg/geometry"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cursorX, cursorY         float64
	lastPoint, previousPoint string
	lockX, lockY             float64
	lockAngle, lockDistance  float64
	relativeAxes             []string
	segmentFlag              string
)

var constrainCmd = &cobra.Command{
	Use:   "constrain",
	Short: "Constrain a single cursor position",
	Long: `Constrain a cursor position with the given locks and print the resulting
point together with the read-out of every axis.

Only the locks passed on the command line are applied. With --segment the
point also snaps onto that segment where a free axis allows it.`,
	Example: `  cadinput constrain --x 3 --y 4 --lock-angle 0
  cadinput constrain --x 4 --y 3 --lock-distance 5 --segment -10,2,10,2
  cadinput constrain --x 12 --y 3 --last 10,0 --previous 0,0 --lock-angle 90 --relative angle`,
	Args: cobra.NoArgs,
	RunE: runConstrain,
}

func init() {
	rootCmd.AddCommand(constrainCmd)

	constrainCmd.Flags().Float64Var(&cursorX, "x", 0.0, "X coordinate of the cursor")
	constrainCmd.Flags().Float64Var(&cursorY, "y", 0.0, "Y coordinate of the cursor")
	constrainCmd.Flags().StringVar(&lastPoint, "last", "", "last committed point as x,y")
	constrainCmd.Flags().StringVar(&previousPoint, "previous", "", "point committed before the last one as x,y")
	constrainCmd.Flags().Float64Var(&lockX, "lock-x", 0.0, "lock the X coordinate")
	constrainCmd.Flags().Float64Var(&lockY, "lock-y", 0.0, "lock the Y coordinate")
	constrainCmd.Flags().Float64Var(&lockAngle, "lock-angle", 0.0, "lock the angle in degrees")
	constrainCmd.Flags().Float64Var(&lockDistance, "lock-distance", 0.0, "lock the distance to the last point")
	constrainCmd.Flags().StringSliceVar(&relativeAxes, "relative", nil, "axes whose values are relative to the last point (x, y, angle)")
	constrainCmd.Flags().StringVar(&segmentFlag, "segment", "", "reference segment as x1,y1,x2,y2")

	constrainCmd.MarkFlagsRequiredTogether("x", "y")
}

func runConstrain(cmd *cobra.Command, args []string) error {
	_, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	history, err := parseHistory(previousPoint, lastPoint)
	if err != nil {
		return err
	}

	state := constraint.NewLockState()
	relative, err := parseAxes(relativeAxes)
	if err != nil {
		return err
	}
	for _, a := range relative {
		state.SetRelative(a, true)
	}

	locks := map[string]constraint.Axis{
		"lock-x":        constraint.AxisX,
		"lock-y":        constraint.AxisY,
		"lock-angle":    constraint.AxisAngle,
		"lock-distance": constraint.AxisDistance,
	}
	values := map[constraint.Axis]float64{
		constraint.AxisX:        lockX,
		constraint.AxisY:        lockY,
		constraint.AxisAngle:    lockAngle,
		constraint.AxisDistance: lockDistance,
	}
	for flag, axis := range locks {
		if cmd.Flags().Changed(flag) {
			state.Lock(axis, values[axis])
		}
	}

	cursor := geometry.NewPoint(cursorX, cursorY)
	var segment *constraint.ReferenceSegment
	if segmentFlag != "" {
		s, err := parseSegment(segmentFlag)
		if err != nil {
			return fmt.Errorf("--segment: %w", err)
		}
		segment = &constraint.ReferenceSegment{Start: s.Start, End: s.End, Nearest: s.ClosestPoint(cursor)}
	}

	point, out := constraint.Constrain(cursor, history.WithCurrent(cursor), state, segment)
	log.Debug("constrained",
		zap.Float64("x", point.X),
		zap.Float64("y", point.Y),
		zap.Bool("segment", segment != nil),
	)

	fmt.Println("Constrained Point")
	fmt.Println("=================")
	fmt.Printf("\nCursor: %s\n", formatPoint(cursor))
	fmt.Printf("Result: %s\n\n", formatPoint(point))
	printLocks(out)
	return nil
}

func printLocks(state constraint.LockState) {
	for _, a := range constraint.ResolutionOrder {
		axis := state.Axes[a]
		mode := "free"
		if axis.Locked {
			mode = "locked"
		}
		if axis.Relative {
			mode += ", relative"
		}
		fmt.Printf("  %-8s %14.6f  (%s)\n", a.String()+":", axis.Value, mode)
	}
}
