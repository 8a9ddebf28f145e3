package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/retroenv/retrogolib/log"
	"github.com/spf13/cobra"

	"github.com/gbztools/gbzasm/internal/source"
	"github.com/gbztools/gbzasm/pkg/assembler"
	"github.com/gbztools/gbzasm/pkg/gbconfig"
	"github.com/gbztools/gbzasm/pkg/token"
)

func main() {
	var logLevel string
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "gbzasm",
		Short: "Game Boy (LR35902) assembler",
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: trace, debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Configuration file path")

	// assemble command
	var output string
	var fillStr string

	assembleCmd := &cobra.Command{
		Use:   "assemble <file.asm>",
		Short: "Assemble a source file into a ROM image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(logLevel)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			fill := byte(cfg.FillByte)
			if fillStr != "" {
				n, err := strconv.ParseUint(strings.TrimPrefix(fillStr, "0x"), 16, 8)
				if err != nil {
					return fmt.Errorf("invalid fill byte %q: %w", fillStr, err)
				}
				fill = byte(n)
			}

			in, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer in.Close()

			driver := assembler.NewDriver(assembler.NewContext(logger))
			if err := driver.Assemble(source.NewLineReader(in)); err != nil {
				return fmt.Errorf("assembling %s: %w", args[0], err)
			}

			rom := driver.Context().Image.Flatten(cfg.ROMSize(), fill)
			out := output
			if out == "" {
				base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
				out = filepath.Join(cfg.OutputDir, base+".gb")
			}
			if err := os.WriteFile(out, rom, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}

			fmt.Printf("Assembled %s\n", args[0])
			for _, seg := range driver.Context().Image.Segments() {
				fmt.Printf("  $%04X: %d bytes\n", seg.Address, len(seg.Bytes))
			}
			fmt.Printf("Written %d bytes to %s\n", len(rom), out)
			return nil
		},
	}
	assembleCmd.Flags().StringVarP(&output, "output", "o", "", "Output ROM file (default: input name with .gb extension)")
	assembleCmd.Flags().StringVar(&fillStr, "fill", "", "Fill byte for gaps, hex (default from config, else 00)")

	// tokens command
	tokensCmd := &cobra.Command{
		Use:   "tokens <file.asm>",
		Short: "Tokenize a source file and print each line's token group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer in.Close()

			tokenizer := token.NewTokenizer()
			reader := source.NewLineReader(in)
			lineNo := 0
			for {
				line, ok := reader.ReadLine()
				if !ok {
					break
				}
				lineNo++
				group := tokenizer.Tokenize(line)
				if len(group) == 0 {
					continue
				}
				fmt.Printf("%4d:", lineNo)
				for _, tok := range group {
					fmt.Printf(" %s(%s)", tok.Kind, tok.Value)
				}
				fmt.Println()
			}
			return nil
		},
	}

	rootCmd.AddCommand(assembleCmd, tokensCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(level string) (*log.Logger, error) {
	cfg := log.DefaultConfig()
	switch strings.ToLower(level) {
	case "trace":
		cfg.Level = log.TraceLevel
	case "debug":
		cfg.Level = log.DebugLevel
	case "info":
		cfg.Level = log.InfoLevel
	case "warn":
		cfg.Level = log.WarnLevel
	case "error":
		cfg.Level = log.ErrorLevel
	default:
		return nil, fmt.Errorf("unknown log level %q", level)
	}
	return log.NewWithConfig(cfg), nil
}

func loadConfig(path string) (gbconfig.Config, error) {
	if path == "" {
		return gbconfig.Default(), nil
	}
	return gbconfig.Load(path)
}
