package main

import (
	"fmt"
	"time"

	"fluentwd/wait"
)

// Config holds CLI defaults. Every field can come from a flag or from a
// JSON config file passed with -config; flags win.
type Config struct {
	Server    *string `json:"seleniumServer"`
	Browser   *string `json:"browser"`
	File      *string `json:"htmlFile"`
	Selector  *string `json:"selector"`
	Condition *string `json:"condition"`
	Argument  *string `json:"argument"`
	TimeoutMs *int    `json:"timeoutMs"`
	PollMs    *int    `json:"pollIntervalMs"`
}

func (c *Config) waitConfig() (wait.Config, error) {
	cfg := wait.DefaultConfig()
	if c.TimeoutMs != nil {
		if *c.TimeoutMs < 0 {
			return cfg, fmt.Errorf("negative timeout: %d", *c.TimeoutMs)
		}
		cfg.Timeout = time.Duration(*c.TimeoutMs) * time.Millisecond
	}
	if c.PollMs != nil {
		if *c.PollMs < 0 {
			return cfg, fmt.Errorf("negative poll interval: %d", *c.PollMs)
		}
		cfg.PollInterval = time.Duration(*c.PollMs) * time.Millisecond
	}
	return cfg, nil
}

func orEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
