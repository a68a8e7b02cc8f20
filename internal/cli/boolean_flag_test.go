package cli

import (
	"slices"
	"testing"

	"github.com/spf13/cobra"
)

func TestRegisterBooleanFlagParsesValues(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name         string
		defaultValue bool
		arguments    []string
		expected     bool
		expectError  bool
	}{
		{name: "defaults_to_false", arguments: []string{}, expected: false},
		{name: "keeps_true_default", defaultValue: true, arguments: []string{}, expected: true},
		{name: "sets_true_without_value", arguments: []string{"--feature"}, expected: true},
		{name: "sets_false_with_equals", defaultValue: true, arguments: []string{"--feature=false"}, expected: false},
		{name: "sets_false_with_no_literal", defaultValue: true, arguments: []string{"--feature", "no"}, expected: false},
		{name: "sets_true_with_on_literal", arguments: []string{"--feature", "on"}, expected: true},
		{name: "rejects_unknown_literal", arguments: []string{"--feature=maybe"}, expectError: true},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			var target bool
			command := &cobra.Command{
				Use:  "probe",
				Args: cobra.NoArgs,
				RunE: func(*cobra.Command, []string) error { return nil },
			}
			command.SilenceErrors = true
			command.SilenceUsage = true
			registerBooleanFlag(command.Flags(), &target, "feature", testCase.defaultValue, "feature toggle")
			command.SetArgs(normalizeBooleanFlagArguments(command, testCase.arguments))
			executionError := command.Execute()
			if testCase.expectError {
				if executionError == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if executionError != nil {
				t.Fatalf("unexpected error: %v", executionError)
			}
			if target != testCase.expected {
				t.Fatalf("expected %v, got %v", testCase.expected, target)
			}
		})
	}
}

func TestNormalizeBooleanFlagArgumentsLeavesOtherFlags(t *testing.T) {
	t.Parallel()
	var target bool
	var name string
	command := &cobra.Command{Use: "probe"}
	registerBooleanFlag(command.Flags(), &target, "feature", false, "feature toggle")
	command.Flags().StringVar(&name, "output", "", "output name")

	arguments := []string{"--output", "yes", "--feature", "yes", "--", "--feature", "no"}
	expected := []string{"--output", "yes", "--feature=yes", "--", "--feature", "no"}
	if actual := normalizeBooleanFlagArguments(command, arguments); !slices.Equal(actual, expected) {
		t.Fatalf("expected %q, got %q", expected, actual)
	}
}
