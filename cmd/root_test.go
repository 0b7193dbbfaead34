package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func resetViperForTest() {
	viper.Reset()
}

func TestRootCmd_HasExpectedFlags(t *testing.T) {
	flags := rootCmd.PersistentFlags()

	tests := []struct {
		name      string
		shorthand string
	}{
		{"mode", "m"},
		{"unit", "u"},
		{"word-api", "a"},
		{"debug", "D"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := flags.Lookup(tt.name)
			if flag == nil {
				t.Errorf("flag %q not found", tt.name)
				return
			}
			if flag.Shorthand != tt.shorthand {
				t.Errorf("flag %q shorthand = %q, want %q", tt.name, flag.Shorthand, tt.shorthand)
			}
		})
	}
}

func TestRootCmd_Properties(t *testing.T) {
	if rootCmd.Use != "cwtrainer" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "cwtrainer")
	}
	if rootCmd.Short == "" {
		t.Error("rootCmd.Short is empty")
	}
	if rootCmd.Long == "" {
		t.Error("rootCmd.Long is empty")
	}
}

func TestRootCmd_FlagDefaults(t *testing.T) {
	flags := rootCmd.PersistentFlags()

	tests := []struct {
		name         string
		defaultValue string
	}{
		{"mode", "letters"},
		{"unit", "150"},
		{"word-api", ""},
		{"debug", "false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := flags.Lookup(tt.name)
			if flag == nil {
				t.Fatalf("flag %q not found", tt.name)
			}
			if flag.DefValue != tt.defaultValue {
				t.Errorf("flag %q default = %q, want %q", tt.name, flag.DefValue, tt.defaultValue)
			}
		})
	}
}

func TestRootCmd_FlagDescriptions(t *testing.T) {
	flags := rootCmd.PersistentFlags()

	for _, name := range []string{"mode", "unit", "word-api", "debug"} {
		t.Run(name, func(t *testing.T) {
			flag := flags.Lookup(name)
			if flag == nil {
				t.Fatalf("flag %q not found", name)
			}
			if flag.Usage == "" {
				t.Errorf("flag %q has no description", name)
			}
		})
	}
}

func TestRootCmd_HelpOutput(t *testing.T) {
	resetViperForTest()

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{"--help"})

	err := rootCmd.Execute()
	if err != nil {
		t.Fatalf("Execute() with --help error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "cwtrainer") {
		t.Error("help output should contain 'cwtrainer'")
	}
	if !strings.Contains(output, "--mode") {
		t.Error("help output should contain '--mode'")
	}
	if !strings.Contains(output, "chart") {
		t.Error("help output should list the chart subcommand")
	}
}

func TestChartCmd_Registered(t *testing.T) {
	for _, c := range rootCmd.Commands() {
		if c.Name() == "chart" {
			return
		}
	}
	t.Error("chart subcommand is not registered")
}

func TestChartCmd_Output(t *testing.T) {
	var buf bytes.Buffer
	chartCmd.SetOut(&buf)

	chartCmd.Run(chartCmd, nil)

	output := buf.String()
	for _, line := range []string{"A  .-", "S  ...", "0  -----", "?  ..--.."} {
		if !strings.Contains(output, line) {
			t.Errorf("chart output missing %q", line)
		}
	}
}
