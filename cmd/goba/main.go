// Command goba drives the ARMv4T core over a ROM image: load a BIOS and
// cartridge, wire them to a Bus, and step the CPU either a fixed number of
// instructions or until it faults.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"goba/internal/bus"
	"goba/internal/cartridge"
	"goba/internal/cpu"
	"goba/internal/interfaces"
	"goba/internal/io"
	"goba/internal/memory"
	"goba/rom"
)

var log = logrus.New()

func main() {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "goba",
		Short: "ARMv4T core runner for Game Boy Advance ROM images",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(cfgFile)
		},
	}
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.goba.yaml)")
	rootCmd.PersistentFlags().String("bios", "", "path to a 16KB GBA BIOS image (blank BIOS if omitted)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug-level logging")
	viper.BindPFlag("bios", rootCmd.PersistentFlags().Lookup("bios"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(newRunCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func loadConfig(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".goba")
		viper.SetConfigType("yaml")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}
	viper.SetEnvPrefix("GOBA")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	if viper.GetBool("verbose") {
		log.SetLevel(logrus.DebugLevel)
	}
	return nil
}

func newRunCmd() *cobra.Command {
	var steps int

	cmd := &cobra.Command{
		Use:   "run [rom]",
		Short: "Step the CPU over a cartridge image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runROM(args[0], viper.GetString("bios"), steps)
		},
	}
	cmd.Flags().IntVar(&steps, "steps", 1_000_000, "maximum instructions to execute")
	return cmd
}

func runROM(romPath, biosPath string, steps int) error {
	romImage, err := rom.Load(romPath)
	if err != nil {
		return fmt.Errorf("reading rom: %w", err)
	}

	biosDev, err := loadBIOS(biosPath)
	if err != nil {
		return err
	}

	b := bus.NewBus(biosDev, memory.NewEWRAM(), memory.NewIWRAM(), io.NewIORegs(), cartridge.NewCartridge(romImage.Data))
	core := cpu.NewCPU(b)
	core.Reset()

	log.WithFields(logrus.Fields{"rom": romPath, "steps": steps}).Info("starting run")

	executed := 0
	for ; executed < steps; executed++ {
		if _, err := core.Step(); err != nil {
			log.WithFields(logrus.Fields{
				"pc":       fmt.Sprintf("%08X", core.Registers().GetPC()),
				"executed": executed,
			}).WithError(err).Error("step faulted")
			return err
		}
	}

	log.WithField("executed", executed).Info("run complete")
	return nil
}

func loadBIOS(path string) (interfaces.MemoryDevice, error) {
	if path == "" {
		log.Warn("no --bios supplied, running against a blank boot ROM")
		return memory.NewBlankBIOS(), nil
	}
	return memory.NewBIOS(path)
}
