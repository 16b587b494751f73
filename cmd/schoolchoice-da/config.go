package main

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tether-education/schoolchoice-da/policy"
)

// fileConfig mirrors the policy package's six feature flags plus grade order, in
// the shape an operator edits without recompiling the binary (SPEC_FULL.md
// §4.7 "Configuration").
type fileConfig struct {
	Order                   string `yaml:"order"`
	SiblingPriority         bool   `yaml:"sibling_priority"`
	LinkedPostulation       bool   `yaml:"linked_postulation"`
	SecuredEnrollment       bool   `yaml:"secured_enrollment"`
	ForcedSecuredEnrollment bool   `yaml:"forced_secured_enrollment"`
	TransferCapacity        bool   `yaml:"transfer_capacity"`
	CheckInputs             *bool  `yaml:"check_inputs"`
}

// loadConfig reads a fileConfig from path and converts it into policy
// options. An empty path yields the all-defaults option set.
func loadConfig(path string) ([]policy.Option, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, wrapf(err, "reading config %s", path)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return nil, wrapf(err, "parsing config %s", path)
	}

	opts := []policy.Option{
		policy.WithSiblingPriority(fc.SiblingPriority),
		policy.WithLinkedPostulation(fc.LinkedPostulation),
		policy.WithSecuredEnrollment(fc.SecuredEnrollment),
		policy.WithForcedSecuredEnrollment(fc.ForcedSecuredEnrollment),
		policy.WithTransferCapacity(fc.TransferCapacity),
	}
	if fc.Order == string(policy.OrderAscending) {
		opts = append(opts, policy.WithOrder(policy.OrderAscending))
	}
	if fc.CheckInputs != nil {
		opts = append(opts, policy.WithCheckInputs(*fc.CheckInputs))
	}
	return opts, nil
}
