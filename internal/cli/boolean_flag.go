package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	booleanFlagTypeName              = "bool"
	booleanFlagTrueLiteral           = "true"
	booleanFlagAcceptedValuesListing = "true, false, yes, no, on, off, 1, 0"
	booleanFlagInvalidValueFormat    = "invalid boolean value %q for --%s; accepted values: %s"
	flagPrefix                       = "--"
	endOfFlagsMarker                 = "--"
)

var booleanFlagLiterals = map[string]bool{
	"true":  true,
	"t":     true,
	"1":     true,
	"yes":   true,
	"y":     true,
	"on":    true,
	"false": false,
	"f":     false,
	"0":     false,
	"no":    false,
	"n":     false,
	"off":   false,
}

// booleanFlagValue is a pflag.Value accepting yes/no style literals in addition to true/false.
type booleanFlagValue struct {
	target  *bool
	flagKey string
}

func (value *booleanFlagValue) Set(input string) error {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		normalized = booleanFlagTrueLiteral
	}
	parsed, ok := booleanFlagLiterals[normalized]
	if !ok {
		return fmt.Errorf(booleanFlagInvalidValueFormat, input, value.flagKey, booleanFlagAcceptedValuesListing)
	}
	*value.target = parsed
	return nil
}

func (value *booleanFlagValue) String() string {
	if value == nil || value.target == nil {
		return strconv.FormatBool(false)
	}
	return strconv.FormatBool(*value.target)
}

func (value *booleanFlagValue) Type() string {
	return booleanFlagTypeName
}

func registerBooleanFlag(flagSet *pflag.FlagSet, target *bool, name string, defaultValue bool, usage string) {
	*target = defaultValue
	flagSet.Var(&booleanFlagValue{target: target, flagKey: name}, name, usage)
	if lookup := flagSet.Lookup(name); lookup != nil {
		lookup.DefValue = strconv.FormatBool(defaultValue)
		lookup.NoOptDefVal = booleanFlagTrueLiteral
	}
}

// normalizeBooleanFlagArguments rewrites "--flag literal" into "--flag=literal" for boolean
// flags of command, since pflag otherwise treats the literal as a positional argument.
func normalizeBooleanFlagArguments(command *cobra.Command, arguments []string) []string {
	booleanFlags := map[string]struct{}{}
	command.Flags().VisitAll(func(flag *pflag.Flag) {
		if flag.Value != nil && flag.Value.Type() == booleanFlagTypeName && flag.NoOptDefVal != "" {
			booleanFlags[flag.Name] = struct{}{}
		}
	})
	if len(booleanFlags) == 0 || len(arguments) == 0 {
		return arguments
	}

	normalized := make([]string, 0, len(arguments))
	for index := 0; index < len(arguments); index++ {
		currentArgument := arguments[index]
		if currentArgument == endOfFlagsMarker {
			return append(normalized, arguments[index:]...)
		}
		flagName := strings.TrimPrefix(currentArgument, flagPrefix)
		_, isBooleanFlag := booleanFlags[flagName]
		if isBooleanFlag && strings.HasPrefix(currentArgument, flagPrefix) && index+1 < len(arguments) {
			literal := strings.ToLower(strings.TrimSpace(arguments[index+1]))
			if _, valid := booleanFlagLiterals[literal]; valid {
				normalized = append(normalized, currentArgument+"="+arguments[index+1])
				index++
				continue
			}
		}
		normalized = append(normalized, currentArgument)
	}
	return normalized
}
