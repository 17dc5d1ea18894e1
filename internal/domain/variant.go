package domain

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

type VariantName string

const (
	VariantStable  VariantName = "stable"
	VariantBeta    VariantName = "beta"
	VariantDev     VariantName = "dev"
	VariantSnekbox VariantName = "snekbox"
)

type Protocol string

const (
	ProtocolFormRun  Protocol = "form-run"
	ProtocolJSONEval Protocol = "json-eval"
)

const DefaultBackendTimeout = 20 * time.Second

func (p Protocol) Valid() bool {
	switch p {
	case ProtocolFormRun, ProtocolJSONEval:
		return true
	default:
		return false
	}
}

type Credential struct {
	User     string
	Password string
}

type Variant struct {
	Name       VariantName
	BaseURL    string
	Credential Credential
	Protocol   Protocol
	Language   string
}

func (v Variant) Validate() error {
	if strings.TrimSpace(string(v.Name)) == "" {
		return fmt.Errorf("variant name is required")
	}
	if !v.Protocol.Valid() {
		return fmt.Errorf("variant %s: unsupported protocol %q", v.Name, v.Protocol)
	}
	if v.BaseURL == "" {
		return nil
	}

	parsed, err := url.Parse(v.BaseURL)
	if err != nil {
		return fmt.Errorf("variant %s: parse base url: %w", v.Name, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("variant %s: base url must use http or https", v.Name)
	}
	if parsed.Host == "" {
		return fmt.Errorf("variant %s: base url host is required", v.Name)
	}

	return nil
}

func (v Variant) Configured() bool {
	return v.BaseURL != ""
}

type VariantSpec struct {
	Name        VariantName
	BaseURL     string
	User        string
	PasswordRef string
	Protocol    Protocol
	Language    string
}
