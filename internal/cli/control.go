package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

var controlRoom string

var pauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause a room",
	Long:  `Pause whatever a Sonos room is playing.`,
	Args:  cobra.NoArgs,
	RunE:  runPause,
}

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Resume a room",
	Long:  `Resume playback in a paused Sonos room.`,
	Args:  cobra.NoArgs,
	RunE:  runResume,
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop a room",
	Long:  `Stop playback in a Sonos room.`,
	Args:  cobra.NoArgs,
	RunE:  runStop,
}

var (
	volumeUp   bool
	volumeDown bool
)

var volumeCmd = &cobra.Command{
	Use:   "volume [level]",
	Short: "Set or adjust volume",
	Long: `Set a room's volume (0-100) or adjust it up/down.

Examples:
  dial volume 50      # Set volume to 50%
  dial volume --up    # Increase volume by 10%
  dial volume --down  # Decrease volume by 10%`,
	Args: cobra.MaximumNArgs(1),
	RunE: runVolume,
}

func init() {
	for _, c := range []*cobra.Command{pauseCmd, resumeCmd, stopCmd, volumeCmd} {
		c.Flags().StringVarP(&controlRoom, "room", "r", "", "Sonos room")
		rootCmd.AddCommand(c)
	}
	volumeCmd.Flags().BoolVar(&volumeUp, "up", false, "Increase volume by 10%")
	volumeCmd.Flags().BoolVar(&volumeDown, "down", false, "Decrease volume by 10%")
}

func controlContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), time.Duration(cfg.Sonos.DiscoveryTimeout+10)*time.Second)
}

func runPause(cmd *cobra.Command, args []string) error {
	ctx, cancel := controlContext(cmd)
	defer cancel()

	r, err := findRoom(ctx, controlRoom)
	if err != nil {
		return err
	}
	if err := r.client.Pause(ctx, r.device); err != nil {
		return fmt.Errorf("failed to pause: %w", err)
	}

	return report("paused", "⏸ Paused "+r.name)
}

func runResume(cmd *cobra.Command, args []string) error {
	ctx, cancel := controlContext(cmd)
	defer cancel()

	r, err := findRoom(ctx, controlRoom)
	if err != nil {
		return err
	}
	if err := r.client.Play(ctx, r.device); err != nil {
		return fmt.Errorf("failed to resume: %w", err)
	}

	return report("playing", "▶ Resumed "+r.name)
}

func runStop(cmd *cobra.Command, args []string) error {
	ctx, cancel := controlContext(cmd)
	defer cancel()

	r, err := findRoom(ctx, controlRoom)
	if err != nil {
		return err
	}
	if err := r.client.Stop(ctx, r.device); err != nil {
		return fmt.Errorf("failed to stop: %w", err)
	}

	return report("stopped", "⏹ Stopped "+r.name)
}

func runVolume(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !volumeUp && !volumeDown {
		return fmt.Errorf("specify a level (0-100) or use --up/--down")
	}

	ctx, cancel := controlContext(cmd)
	defer cancel()

	r, err := findRoom(ctx, controlRoom)
	if err != nil {
		return err
	}

	var level int
	if len(args) == 1 {
		level, err = strconv.Atoi(args[0])
		if err != nil || level < 0 || level > 100 {
			return fmt.Errorf("volume must be a number between 0 and 100")
		}
	} else {
		current, err := r.client.GetVolume(ctx, r.device)
		if err != nil {
			return fmt.Errorf("failed to read volume: %w", err)
		}
		level = adjustVolume(current, volumeUp, volumeDown)
	}

	if err := r.client.SetVolume(ctx, r.device, level); err != nil {
		return fmt.Errorf("failed to set volume: %w", err)
	}

	if JSONOutput() {
		return printJSON(map[string]any{"room": r.name, "volume": level})
	}
	fmt.Printf("🔊 %s volume: %d%%\n", r.name, level)
	return nil
}

// adjustVolume steps current by 10 in the requested direction, clamped to
// 0-100.
func adjustVolume(current int, up, down bool) int {
	switch {
	case up && !down:
		current += 10
	case down && !up:
		current -= 10
	}
	return max(0, min(100, current))
}

func report(status, message string) error {
	if JSONOutput() {
		return printJSON(map[string]string{"status": status})
	}
	fmt.Println(message)
	return nil
}
