package cli

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"github.com/tessro/dial/internal/config"
	"github.com/tessro/dial/internal/core"
	"github.com/tessro/dial/internal/sonos"
	"github.com/tessro/dial/internal/wizard"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Commands for viewing and editing dial configuration.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the effective configuration, after defaults and environment overrides.`,
	RunE:  runConfigShow,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit configuration file",
	Long:  `Open the configuration file in your default editor.`,
	RunE:  runConfigEdit,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long:  `Create a new configuration file with default values.`,
	RunE:  runConfigInit,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value.

Supported keys:
` + configKeyHelp() + `
Examples:
  dial config set sonos.default_room Kitchen
  dial config set playback.fallback ordered
  dial config set location.country India`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configSetRoomCmd = &cobra.Command{
	Use:   "set-room",
	Short: "Interactively select the default room",
	Long:  `Shows a picker to select the Sonos room used when --room is not given.`,
	RunE:  runConfigSetRoom,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configSetRoomCmd)
	rootCmd.AddCommand(configCmd)
}

type keyKind int

const (
	kindString keyKind = iota
	kindInt
	kindFloat
	kindBool
)

// configKeys lists the keys 'config set' accepts and how to parse them.
var configKeys = map[string]keyKind{
	"sonos.default_room":       kindString,
	"sonos.host":               kindString,
	"sonos.port":               kindInt,
	"sonos.discovery_timeout":  kindInt,
	"sonos.poll_interval":      kindInt,
	"playback.volume":          kindInt,
	"playback.fallback":        kindString,
	"playback.max_attempts":    kindInt,
	"playback.load_timeout":    kindInt,
	"location.country":         kindString,
	"location.default_country": kindString,
	"location.detect_timeout":  kindInt,
	"location.latitude":        kindFloat,
	"location.longitude":       kindFloat,
	"catalog.file":             kindString,
	"history.disabled":         kindBool,
	"history.path":             kindString,
	"tui.theme":                kindString,
	"tui.refresh_interval":     kindInt,
	"log.level":                kindString,
	"log.file":                 kindString,
	"log.json":                 kindBool,
}

func configKeyHelp() string {
	keys := make([]string, 0, len(configKeys))
	for k := range configKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString("  " + k + "\n")
	}
	return b.String()
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	if JSONOutput() {
		return printJSON(cfg)
	}

	encoder := toml.NewEncoder(os.Stdout)
	encoder.Indent = "  "
	return encoder.Encode(cfg)
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	configPath := getConfigPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return fmt.Errorf("config file not found at %s. Run 'dial config init' first", configPath)
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		for _, e := range []string{"nano", "vim", "vi", "notepad"} {
			if _, err := exec.LookPath(e); err == nil {
				editor = e
				break
			}
		}
	}
	if editor == "" {
		return fmt.Errorf("no editor found. Set EDITOR environment variable")
	}

	editorCmd := exec.Command(editor, configPath)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr

	return editorCmd.Run()
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configPath := getConfigPath()

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists at %s", configPath)
	}

	if err := writeConfigFile(configPath, config.Default()); err != nil {
		return err
	}

	if JSONOutput() {
		return printJSON(map[string]string{
			"status": "created",
			"path":   configPath,
		})
	}

	fmt.Printf("Created config file: %s\n", configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Run 'dial rooms' to find your Sonos rooms")
	fmt.Println("  2. Run 'dial config set-room' to pick a default room")
	fmt.Println("  3. Run 'dial recommend --auto' to find stations near you")
	return nil
}

func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if p := config.FindConfigFile(); p != "" {
		return p
	}
	return config.DefaultPath()
}

func writeConfigFile(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("# Dial Configuration\n")
	buf.WriteString("# https://github.com/tessro/dial\n\n")

	encoder := toml.NewEncoder(&buf)
	encoder.Indent = "  "
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return os.WriteFile(path, buf.Bytes(), 0600)
}

// parseConfigValue converts value to the type key expects.
func parseConfigValue(key, value string) (any, error) {
	kind, ok := configKeys[key]
	if !ok {
		return nil, fmt.Errorf("unknown key %q. Run 'dial config set --help' for supported keys", key)
	}

	switch kind {
	case kindInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("value must be an integer for %s", key)
		}
		return i, nil
	case kindFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("value must be a number for %s", key)
		}
		return f, nil
	case kindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("value must be true or false for %s", key)
		}
		return b, nil
	default:
		return value, nil
	}
}

// setConfigValue sets key in the TOML document raw, then checks that the
// result is still a valid config.
func setConfigValue(raw map[string]any, key, value string) error {
	typed, err := parseConfigValue(key, value)
	if err != nil {
		return err
	}

	section, field, _ := strings.Cut(key, ".")
	sectionMap, ok := raw[section].(map[string]any)
	if !ok {
		sectionMap = make(map[string]any)
		raw[section] = sectionMap
	}
	sectionMap[field] = typed

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(raw); err != nil {
		return err
	}
	var check config.Config
	if _, err := toml.Decode(buf.String(), &check); err != nil {
		return err
	}
	check.ApplyDefaults()
	return check.Validate()
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]
	configPath := getConfigPath()

	raw := make(map[string]any)
	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if _, err := toml.Decode(string(data), &raw); err != nil {
			return fmt.Errorf("failed to parse config: %w", err)
		}
	case !os.IsNotExist(err):
		return fmt.Errorf("failed to read config: %w", err)
	}

	if err := setConfigValue(raw, key, value); err != nil {
		return err
	}
	if err := writeConfigFile(configPath, raw); err != nil {
		return err
	}

	if JSONOutput() {
		return printJSON(map[string]string{
			"status": "updated",
			"key":    key,
			"value":  value,
		})
	}
	fmt.Printf("Set %s = %s\n", key, value)
	return nil
}

func runConfigSetRoom(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	client := sonos.NewClient(time.Duration(cfg.Sonos.DiscoveryTimeout) * time.Second)
	seed, err := seedDevice(ctx, client)
	if err != nil {
		return err
	}

	zones, err := client.Zones(ctx, seed)
	if err != nil {
		return fmt.Errorf("list rooms: %w", err)
	}

	var rooms []core.Device
	for _, z := range zones {
		for _, m := range z.Members {
			d := m.Core()
			d.IsActive = strings.EqualFold(m.Name, cfg.Sonos.DefaultRoom)
			rooms = append(rooms, d)
		}
	}
	if len(rooms) == 0 {
		return fmt.Errorf("no rooms found. Make sure your speakers are on this network")
	}

	picked, err := wizard.RunRoomPicker(rooms)
	if err != nil {
		return fmt.Errorf("selection cancelled: %w", err)
	}
	if picked == nil {
		return nil
	}

	return runConfigSet(cmd, []string{"sonos.default_room", picked.Name})
}
