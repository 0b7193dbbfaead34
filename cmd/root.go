// cmd/root.go
package cmd

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ColonelBlimp/cwtrainer/internal/config"
	"github.com/ColonelBlimp/cwtrainer/internal/keyer"
	"github.com/ColonelBlimp/cwtrainer/internal/session"
	"github.com/ColonelBlimp/cwtrainer/internal/tui"
	"github.com/ColonelBlimp/cwtrainer/internal/wordgen"
)

var rootCmd = &cobra.Command{
	Use:   "cwtrainer",
	Short: "Morse code practice in the terminal",
	Long: `An interactive Morse code trainer: a target letter or word is shown,
you key it on the spacebar (tap to close the key, tap to open it), and the
timed presses are decoded into dits and dahs and checked against the target.`,
	SilenceUsage: true,
	RunE:         runPractice,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags (override config file)
	rootCmd.PersistentFlags().StringP("mode", "m", "letters", "practice mode: letters, digits or words")
	rootCmd.PersistentFlags().IntP("unit", "u", 150, "dit unit in milliseconds")
	rootCmd.PersistentFlags().StringP("word-api", "a", "", "word generator endpoint for word mode")
	rootCmd.PersistentFlags().BoolP("debug", "D", false, "enable debug output")

	// Bind flags to viper
	viper.BindPFlag("mode", rootCmd.PersistentFlags().Lookup("mode"))
	viper.BindPFlag("dit_unit_ms", rootCmd.PersistentFlags().Lookup("unit"))
	viper.BindPFlag("word_api_url", rootCmd.PersistentFlags().Lookup("word-api"))
	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
}

func initConfig() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
}

func runPractice(cmd *cobra.Command, _ []string) error {
	settings, err := config.Get()
	if err != nil {
		return err
	}

	k, err := keyer.New(keyer.Config{
		DitUnit:        time.Duration(settings.DitUnitMs) * time.Millisecond,
		SymbolBoundary: settings.SymbolBoundary,
		GapRatio:       settings.GapRatio,
	})
	if err != nil {
		return fmt.Errorf("keyer: %w", err)
	}

	var gen *wordgen.Client
	var targets []string
	switch settings.Mode {
	case config.ModeDigits:
		targets = session.DigitSequence()
	case config.ModeWords:
		gen = wordgen.NewClient(settings.WordAPIURL, settings.FallbackWord,
			time.Duration(settings.WordTimeoutMs)*time.Millisecond)
		targets = []string{gen.Fallback()}
	default:
		targets = session.LetterSequence()
	}

	sess, err := session.New(session.Config{
		AdvanceDelay: time.Duration(settings.AdvanceDelayMs) * time.Millisecond,
		RetryDelay:   time.Duration(settings.RetryDelayMs) * time.Millisecond,
	}, targets)
	if err != nil {
		return fmt.Errorf("session: %w", err)
	}
	defer sess.Close()

	model := tui.NewModel(k, sess, gen)
	program := tea.NewProgram(model, tea.WithAltScreen())
	model.Attach(program.Send)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run practice ui: %w", err)
	}
	return nil
}
