package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/tessro/dial/internal/sonos"
)

var roomsCmd = &cobra.Command{
	Use:     "rooms",
	Aliases: []string{"zones"},
	Short:   "List Sonos rooms",
	Long: `Discover Sonos speakers on the network and list rooms. Grouped rooms
are shown as one zone; playback always goes to the zone coordinator.`,
	Args: cobra.NoArgs,
	RunE: runRooms,
}

func init() {
	rootCmd.AddCommand(roomsCmd)
}

type roomInfo struct {
	Name        string   `json:"name"`
	Coordinator string   `json:"coordinator"`
	Address     string   `json:"address"`
	Model       string   `json:"model,omitempty"`
	Members     []string `json:"members"`
	Default     bool     `json:"default"`
}

func runRooms(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(cfg.Sonos.DiscoveryTimeout+5)*time.Second)
	defer cancel()

	client := sonos.NewClient(time.Duration(cfg.Sonos.DiscoveryTimeout) * time.Second)
	seed, err := seedDevice(ctx, client)
	if err != nil {
		return err
	}

	zones, err := client.Zones(ctx, seed)
	if err != nil {
		return fmt.Errorf("list rooms: %w", err)
	}

	rooms := roomInfos(zones, cfg.Sonos.DefaultRoom)

	if JSONOutput() {
		return printJSON(rooms)
	}
	if len(rooms) == 0 {
		fmt.Println("No rooms found")
		return nil
	}

	t := NewTable("", "ROOM", "MEMBERS", "ADDRESS", "MODEL")
	for _, r := range rooms {
		t.Row(StatusIcon(r.Default), r.Name, strings.Join(r.Members, ", "), r.Address, r.Model)
	}
	t.Flush()

	if Verbose() {
		fmt.Println("\n● default room")
	}
	return nil
}

func roomInfos(zones []sonos.Zone, defaultRoom string) []roomInfo {
	rooms := make([]roomInfo, 0, len(zones))
	for _, z := range zones {
		info := roomInfo{Name: z.Name}
		if z.Coordinator != nil {
			c := z.Coordinator.Core()
			info.Coordinator = z.Coordinator.Name
			info.Address = c.Address
			info.Model = c.Model
		}
		for _, m := range z.Members {
			info.Members = append(info.Members, m.Name)
			if defaultRoom != "" && strings.EqualFold(m.Name, defaultRoom) {
				info.Default = true
			}
		}
		rooms = append(rooms, info)
	}
	return rooms
}
