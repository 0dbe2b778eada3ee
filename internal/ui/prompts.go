package ui

import (
	"fmt"
	"strconv"

	"github.com/AlecAivazis/survey/v2"
)

// Input prompts for a single line of text
func Input(message, help, defaultValue string) (string, error) {
	var answer string
	prompt := &survey.Input{
		Message: message,
		Help:    help,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &answer); err != nil {
		return "", err
	}
	return answer, nil
}

// InputInt prompts for a positive integer
func InputInt(message, help string, defaultValue int) (int, error) {
	validator := func(val interface{}) error {
		str, ok := val.(string)
		if !ok {
			return fmt.Errorf("expected a number")
		}
		n, err := strconv.Atoi(str)
		if err != nil || n <= 0 {
			return fmt.Errorf("must be a positive integer")
		}
		return nil
	}

	var answer string
	prompt := &survey.Input{
		Message: message,
		Help:    help,
		Default: strconv.Itoa(defaultValue),
	}
	if err := survey.AskOne(prompt, &answer, survey.WithValidator(validator)); err != nil {
		return 0, err
	}
	return strconv.Atoi(answer)
}

// Confirm prompts for yes/no confirmation
func Confirm(message string, defaultValue bool) (bool, error) {
	var confirmed bool
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &confirmed); err != nil {
		return false, err
	}
	return confirmed, nil
}

// MultiSelect prompts for a subset of options
func MultiSelect(message string, options, defaults []string) ([]string, error) {
	var selected []string
	prompt := &survey.MultiSelect{
		Message: message,
		Options: options,
		Default: defaults,
	}
	if err := survey.AskOne(prompt, &selected); err != nil {
		return nil, err
	}
	return selected, nil
}
